package models

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

type Outcome struct {
	Success  bool            `json:"success"`
	Response json.RawMessage `json:"response,omitempty"`
	Error    string          `json:"error,omitempty"`
}

type ProductResult struct {
	ID      int64   `json:"id"`
	Outcome Outcome `json:"track_product_response"`
}

type DeliveryResult struct {
	Order        int64           `json:"order"`
	OrderOutcome Outcome         `json:"track_order_response"`
	Products     []ProductResult `json:"products"`
}

// Failed counts failed deliveries, order event included.
func (r DeliveryResult) Failed() int {
	var failed int
	if !r.OrderOutcome.Success {
		failed++
	}
	for _, p := range r.Products {
		if !p.Outcome.Success {
			failed++
		}
	}

	return failed
}

// Report is everything a sync run produced.
type Report struct {
	RunID         uuid.UUID        `json:"run_id"`
	CreatedAtMin  time.Time        `json:"created_at_min"`
	CreatedAtMax  time.Time        `json:"created_at_max"`
	StartedAt     time.Time        `json:"started_at"`
	FinishedAt    time.Time        `json:"finished_at"`
	OrdersFetched int              `json:"orders_fetched"`
	OrderEvents   int              `json:"order_events"`
	Results       []DeliveryResult `json:"results"`
}

func (r Report) FailedEvents() int {
	var failed int
	for _, result := range r.Results {
		failed += result.Failed()
	}

	return failed
}
