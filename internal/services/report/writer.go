package report

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/tumbleweedd/shopify_klaviyo_sync/internal/domain/models"
)

// WriterPublisher prints the delivery results as indented JSON.
type WriterPublisher struct {
	w io.Writer
}

func NewWriterPublisher(w io.Writer) *WriterPublisher {
	return &WriterPublisher{w: w}
}

func (p *WriterPublisher) Publish(_ context.Context, report models.Report) error {
	enc := json.NewEncoder(p.w)
	enc.SetIndent("", "  ")

	results := report.Results
	if results == nil {
		results = []models.DeliveryResult{}
	}

	if err := enc.Encode(results); err != nil {
		return fmt.Errorf("encode results: %w", err)
	}

	return nil
}
