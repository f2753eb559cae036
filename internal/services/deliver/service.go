package deliver

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/tumbleweedd/shopify_klaviyo_sync/internal/domain/models"
	"github.com/tumbleweedd/shopify_klaviyo_sync/internal/lib/payload"
	"github.com/tumbleweedd/shopify_klaviyo_sync/internal/metrics"
	"github.com/tumbleweedd/shopify_klaviyo_sync/pkg/logger"
)

//go:generate mockgen -source=service.go -destination=mocks/mock_tracker.go -package=mocks

// Tracker delivers one encoded event to the sink and returns the sink's
// response body.
type Tracker interface {
	Track(ctx context.Context, token string) (json.RawMessage, error)
}

type Options struct {
	// Workers bounds how many orders are delivered at once. 1 keeps delivery
	// strictly sequential.
	Workers int
	// Timeout applies to each track call. Zero disables it.
	Timeout time.Duration
}

type Service struct {
	log     *slog.Logger
	metrics *metrics.Registry
	tracker Tracker

	workers int
	timeout time.Duration
}

func New(log *slog.Logger, metrics *metrics.Registry, tracker Tracker, opts Options) *Service {
	workers := opts.Workers
	if workers < 1 {
		workers = 1
	}

	return &Service{
		log:     log,
		metrics: metrics,
		tracker: tracker,
		workers: workers,
		timeout: opts.Timeout,
	}
}

// task is one track call.
type task struct {
	kind   string
	id     int64
	record any
}

// DeliverAll delivers every order event followed by the product events of its
// group. Results follow the order of orderEvents whatever the worker count;
// failures are recorded per event and never stop the batch.
func (s *Service) DeliverAll(
	ctx context.Context,
	orderEvents []models.OrderEvent,
	groups []models.OrderProductGroup,
) []models.DeliveryResult {
	const op = "services.deliver.DeliverAll"

	log := s.log.With(slog.String("op", op), slog.Int("workers", s.workers))

	index := indexGroups(groups)
	results := make([]models.DeliveryResult, len(orderEvents))

	if s.workers == 1 {
		for i := range orderEvents {
			results[i] = s.deliverOrder(ctx, orderEvents[i], index[orderEvents[i].Properties.EventID])
		}
	} else {
		g := new(errgroup.Group)
		g.SetLimit(s.workers)

		for i := range orderEvents {
			i := i
			g.Go(func() error {
				results[i] = s.deliverOrder(ctx, orderEvents[i], index[orderEvents[i].Properties.EventID])
				return nil
			})
		}

		_ = g.Wait()
	}

	var failed int
	for _, result := range results {
		failed += result.Failed()
	}

	log.InfoContext(ctx, "delivery finished",
		slog.Int("orders", len(results)),
		slog.Int("failed_events", failed),
	)

	return results
}

// indexGroups maps order ids to their product events. Several groups with the
// same order id are concatenated in input order.
func indexGroups(groups []models.OrderProductGroup) map[int64][]models.ProductEvent {
	index := make(map[int64][]models.ProductEvent, len(groups))
	for _, group := range groups {
		index[group.OrderID] = append(index[group.OrderID], group.Products...)
	}

	return index
}

func (s *Service) deliverOrder(ctx context.Context, order models.OrderEvent, products []models.ProductEvent) models.DeliveryResult {
	result := models.DeliveryResult{
		Order:    order.Properties.EventID,
		Products: make([]models.ProductResult, 0, len(products)),
	}

	result.OrderOutcome = s.run(ctx, task{kind: metrics.KindOrder, id: order.Properties.EventID, record: order})

	for _, product := range products {
		result.Products = append(result.Products, models.ProductResult{
			ID:      product.Properties.EventID,
			Outcome: s.run(ctx, task{kind: metrics.KindProduct, id: product.Properties.EventID, record: product}),
		})
	}

	return result
}

func (s *Service) run(ctx context.Context, t task) models.Outcome {
	const op = "services.deliver.run"

	log := s.log.With(slog.String("op", op), slog.String("kind", t.kind), slog.Int64("event_id", t.id))

	token, err := payload.Encode(t.record)
	if err != nil {
		s.metrics.Delivered(t.kind, false)
		log.ErrorContext(ctx, "failed to encode event", logger.Err(err))
		return models.Outcome{Error: err.Error()}
	}

	callCtx := ctx
	if s.timeout > 0 {
		var cancel context.CancelFunc
		callCtx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	start := time.Now()
	response, err := s.tracker.Track(callCtx, token)
	s.metrics.DeliveryLatency.Observe(time.Since(start).Seconds())

	if err != nil {
		s.metrics.Delivered(t.kind, false)
		log.WarnContext(ctx, "event delivery failed", logger.Err(err))
		return models.Outcome{Response: response, Error: err.Error()}
	}

	s.metrics.Delivered(t.kind, true)
	log.DebugContext(ctx, "event delivered")

	return models.Outcome{Success: true, Response: response}
}
