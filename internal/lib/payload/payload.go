package payload

import (
	"encoding/base64"
	"encoding/json"
	"fmt"

	internalErrors "github.com/tumbleweedd/shopify_klaviyo_sync/internal/lib/errors"
)

// Encode serializes v to JSON and returns it as standard, padded base64.
func Encode(v any) (string, error) {
	const op = "lib.payload.Encode"

	data, err := json.Marshal(v)
	if err != nil {
		return "", fmt.Errorf("%s: %w: %v", op, internalErrors.ErrEncoding, err)
	}

	return base64.StdEncoding.EncodeToString(data), nil
}

func Decode(token string, v any) error {
	const op = "lib.payload.Decode"

	data, err := base64.StdEncoding.DecodeString(token)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	if err = json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}
