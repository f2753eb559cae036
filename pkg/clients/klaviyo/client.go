package klaviyo

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/codes"

	"github.com/tumbleweedd/shopify_klaviyo_sync/internal/config"
	internalErrors "github.com/tumbleweedd/shopify_klaviyo_sync/internal/lib/errors"
	"github.com/tumbleweedd/shopify_klaviyo_sync/internal/tracing"
	"github.com/tumbleweedd/shopify_klaviyo_sync/pkg/logger"
)

const responseLimit = 1 << 20

type Client struct {
	log        *slog.Logger
	httpClient *http.Client
	trackURL   string
}

// New builds a track API client. Timeouts come from the caller's context so
// a single http.Client is shared across deliveries.
func New(log *slog.Logger, cfg config.KlaviyoConfig) *Client {
	return &Client{
		log:        log,
		httpClient: &http.Client{},
		trackURL:   cfg.TrackURL,
	}
}

// Track sends one base64 event. The sink body is returned whenever it is
// valid JSON, also alongside an error. Every failure wraps ErrDelivery.
func (c *Client) Track(ctx context.Context, token string) (response json.RawMessage, err error) {
	const op = "clients.klaviyo.Track"

	ctx, span := otel.Tracer(tracing.TracerName).Start(ctx, "klaviyo.track")
	defer func() {
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
			c.log.DebugContext(ctx, "track failed",
				slog.String("op", op),
				logger.Err(err),
				slog.String("response", string(response)),
			)
		}
		span.End()
	}()

	u, err := url.Parse(c.trackURL)
	if err != nil {
		return nil, fmt.Errorf("%s: %w: parse track url: %v", op, internalErrors.ErrDelivery, err)
	}

	query := u.Query()
	query.Set("data", token)
	u.RawQuery = query.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("%s: %w: build request: %v", op, internalErrors.ErrDelivery, err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%s: %w: %v", op, internalErrors.ErrDelivery, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, responseLimit))
	if err != nil {
		return nil, fmt.Errorf("%s: %w: read response: %v", op, internalErrors.ErrDelivery, err)
	}

	if json.Valid(body) {
		response = json.RawMessage(body)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return response, fmt.Errorf("%s: %w: status %s", op, internalErrors.ErrDelivery, resp.Status)
	}

	if response == nil {
		return nil, fmt.Errorf("%s: %w: malformed response %q", op, internalErrors.ErrDelivery, truncate(body))
	}

	if !successful(response) {
		return response, fmt.Errorf("%s: %w: %w", op, internalErrors.ErrDelivery, internalErrors.ErrUnsuccessfulTrack)
	}

	return response, nil
}

// successful reads the track API success indicator: 1, true, or an object
// whose "success" member is true.
func successful(body json.RawMessage) bool {
	var v any
	if err := json.Unmarshal(body, &v); err != nil {
		return false
	}

	switch indicator := v.(type) {
	case float64:
		return indicator == 1
	case bool:
		return indicator
	case map[string]any:
		success, _ := indicator["success"].(bool)
		return success
	default:
		return false
	}
}

func truncate(body []byte) string {
	const limit = 128
	if len(body) > limit {
		return string(body[:limit]) + "..."
	}

	return string(body)
}
