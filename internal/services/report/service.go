package report

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/tumbleweedd/shopify_klaviyo_sync/internal/domain/models"
	"github.com/tumbleweedd/shopify_klaviyo_sync/internal/metrics"
	"github.com/tumbleweedd/shopify_klaviyo_sync/pkg/logger"
)

//go:generate mockgen -source=service.go -destination=mocks/mock_publisher.go -package=mocks

type Publisher interface {
	Publish(ctx context.Context, report models.Report) error
}

type namedPublisher struct {
	name string
	Publisher
}

// Service hands a finished report to every registered publisher.
type Service struct {
	log     *slog.Logger
	metrics *metrics.Registry

	publishers []namedPublisher
}

func New(log *slog.Logger, metrics *metrics.Registry) *Service {
	return &Service{
		log:     log,
		metrics: metrics,
	}
}

func (s *Service) Register(name string, publisher Publisher) {
	s.publishers = append(s.publishers, namedPublisher{name: name, Publisher: publisher})
}

// Publish runs every publisher even when an earlier one fails and returns
// their errors joined.
func (s *Service) Publish(ctx context.Context, report models.Report) error {
	const op = "services.report.Publish"

	log := s.log.With(slog.String("op", op), slog.String("run_id", report.RunID.String()))

	var errs []error
	for _, publisher := range s.publishers {
		if err := publisher.Publish(ctx, report); err != nil {
			s.metrics.ReportPublishErrs.Inc()
			log.ErrorContext(ctx, "failed to publish report", slog.String("publisher", publisher.name), logger.Err(err))
			errs = append(errs, fmt.Errorf("%s: %s: %w", op, publisher.name, err))
			continue
		}

		log.DebugContext(ctx, "report published", slog.String("publisher", publisher.name))
	}

	return errors.Join(errs...)
}
