package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	httpapp "github.com/tumbleweedd/shopify_klaviyo_sync/internal/app/http"
	"github.com/tumbleweedd/shopify_klaviyo_sync/internal/cache_impl"
	"github.com/tumbleweedd/shopify_klaviyo_sync/internal/config"
	"github.com/tumbleweedd/shopify_klaviyo_sync/internal/metrics"
	reportRepository "github.com/tumbleweedd/shopify_klaviyo_sync/internal/repository/report"
	"github.com/tumbleweedd/shopify_klaviyo_sync/internal/services/deliver"
	"github.com/tumbleweedd/shopify_klaviyo_sync/internal/services/migration"
	"github.com/tumbleweedd/shopify_klaviyo_sync/internal/services/report"
	"github.com/tumbleweedd/shopify_klaviyo_sync/internal/services/transform"
	"github.com/tumbleweedd/shopify_klaviyo_sync/pkg/brokers/kafka/producer"
	"github.com/tumbleweedd/shopify_klaviyo_sync/pkg/clients/klaviyo"
	"github.com/tumbleweedd/shopify_klaviyo_sync/pkg/clients/shopify"
	"github.com/tumbleweedd/shopify_klaviyo_sync/pkg/databases/postgres"
)

type App struct {
	log *slog.Logger

	Migration *migration.Service
	// HTTPServer is nil unless http.enabled is set.
	HTTPServer *httpapp.App

	closers []closer
}

type closer struct {
	name  string
	close func() error
}

// NewApp builds the sync pipeline and the report publishers enabled in cfg.
// Results are printed to stdout unless report.quiet is set.
func NewApp(ctx context.Context, log *slog.Logger, cfg *config.Config, stdout io.Writer) (*App, error) {
	const op = "app.NewApp"

	application := &App{log: log}

	registry := metrics.NewRegistry()

	reportSvc, err := application.setupPublishers(ctx, registry, cfg, stdout)
	if err != nil {
		_ = application.closeAll()
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	orderSource := shopify.New(log, registry, cfg.Shopify)
	eventSink := klaviyo.New(log, cfg.Klaviyo)

	transformSvc := transform.New(log, registry, transform.Options{
		Token:              cfg.Klaviyo.PublicKey,
		QualifyingStatuses: cfg.Sync.QualifyingStatuses,
		LegacyItemPrice:    cfg.Sync.LegacyItemPrice,
	})
	deliverSvc := deliver.New(log, registry, eventSink, deliver.Options{
		Workers: cfg.Sync.Workers,
		Timeout: cfg.Klaviyo.Timeout,
	})

	application.Migration = migration.New(log, orderSource, transformSvc, deliverSvc, reportSvc)

	return application, nil
}

func (a *App) setupPublishers(
	ctx context.Context,
	registry *metrics.Registry,
	cfg *config.Config,
	stdout io.Writer,
) (*report.Service, error) {
	reportSvc := report.New(a.log, registry)

	if !cfg.Report.Quiet {
		reportSvc.Register("stdout", report.NewWriterPublisher(stdout))
	}

	if cfg.Report.Postgres {
		db, err := postgres.NewPostgresDB(ctx, a.log, cfg.Postgres.DSN())
		if err != nil {
			return nil, fmt.Errorf("failed to connect to postgres: %w", err)
		}
		a.closers = append(a.closers, closer{name: "postgres", close: db.Close})

		reportSvc.Register("postgres", reportRepository.NewReportRepository(a.log, db.GetDB()))
	}

	if cfg.Report.Kafka {
		syncProducer, err := producer.NewSyncProducer(cfg.Kafka.BrokerList)
		if err != nil {
			return nil, fmt.Errorf("failed to create kafka producer: %w", err)
		}

		kafkaProducer := producer.NewProducer(a.log, syncProducer, cfg.Kafka.ResultTopic)
		a.closers = append(a.closers, closer{name: "kafka", close: kafkaProducer.Close})

		reportSvc.Register("kafka", kafkaProducer)
	}

	if cfg.HTTP.Enabled {
		cache := cache_impl.NewExpirableCache(cfg.HTTP.CacheSize, cfg.HTTP.ResultTTL, a.log)
		reportSvc.Register("cache", cache)

		a.HTTPServer = httpapp.NewApp(a.log, cache, registry.Handler(), cfg.HTTP.Port)
	}

	return reportSvc, nil
}

func (a *App) Stop(ctx context.Context) error {
	var errs []error

	if a.HTTPServer != nil {
		if err := a.HTTPServer.Stop(ctx); err != nil {
			errs = append(errs, fmt.Errorf("failed to shutdown http server: %w", err))
		}
	}

	if err := a.closeAll(); err != nil {
		errs = append(errs, err)
	}

	return errors.Join(errs...)
}

func (a *App) closeAll() error {
	var errs []error
	for _, c := range a.closers {
		if err := c.close(); err != nil {
			errs = append(errs, fmt.Errorf("failed to close %s: %w", c.name, err))
			continue
		}

		a.log.Info("closed", slog.String("resource", c.name))
	}
	a.closers = nil

	return errors.Join(errs...)
}
