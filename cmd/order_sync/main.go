package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/tumbleweedd/shopify_klaviyo_sync/internal/app"
	"github.com/tumbleweedd/shopify_klaviyo_sync/internal/config"
	"github.com/tumbleweedd/shopify_klaviyo_sync/internal/tracing"
	"github.com/tumbleweedd/shopify_klaviyo_sync/pkg/logger"
)

const shutdownTimeout = 10 * time.Second

type flags struct {
	configPath string
	from       string
	to         string
	workers    int
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var f flags

	cmd := &cobra.Command{
		Use:          "order_sync",
		Short:        "Replay historical Shopify orders into Klaviyo as Placed Order and Ordered Product events",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return run(cmd.Context(), f)
		},
	}

	cmd.Flags().StringVar(&f.configPath, "config", os.Getenv("CONFIG_PATH"), "path to the YAML config file")
	cmd.Flags().StringVar(&f.from, "from", "", "first created_at day to sync, "+config.DateLayout)
	cmd.Flags().StringVar(&f.to, "to", "", "last created_at day to sync, "+config.DateLayout)
	cmd.Flags().IntVar(&f.workers, "workers", 0, "orders delivered concurrently, overrides sync.workers")

	return cmd
}

func loadConfig(f flags) (*config.Config, error) {
	cfg, err := config.Load(f.configPath)
	if err != nil {
		return nil, err
	}

	if f.from == "" && f.to == "" && f.workers == 0 {
		return cfg, nil
	}

	if f.from != "" {
		cfg.Sync.CreatedAtMin = f.from
	}
	if f.to != "" {
		cfg.Sync.CreatedAtMax = f.to
	}
	if f.workers != 0 {
		cfg.Sync.Workers = f.workers
	}

	if err = cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid flags: %w", err)
	}

	return cfg, nil
}

func run(ctx context.Context, f flags) error {
	cfg, err := loadConfig(f)
	if err != nil {
		return err
	}

	log := logger.SetupLogger(cfg.Env)

	ctx, cancel := signal.NotifyContext(ctx, syscall.SIGTERM, syscall.SIGINT)
	defer cancel()

	tp, err := tracing.Init(ctx, cfg.Tracing)
	if err != nil {
		return err
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		if err := tp.Shutdown(shutdownCtx); err != nil {
			log.Error("failed to shutdown tracer provider", logger.Err(err))
		}
	}()

	application, err := app.NewApp(ctx, log, cfg, os.Stdout)
	if err != nil {
		log.Error("failed to create app", logger.Err(err))
		return err
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		if err := application.Stop(shutdownCtx); err != nil {
			log.Error("failed to stop app", logger.Err(err))
		}

		log.Info("application stopped")
	}()

	if application.HTTPServer != nil {
		go application.HTTPServer.RunWithPanic()
	}

	from, to, err := cfg.Sync.Range()
	if err != nil {
		return err
	}

	report, err := application.Migration.Run(ctx, from, to)
	if err != nil && report.RunID == uuid.Nil {
		return err
	}
	if err != nil {
		log.Warn("sync finished but the report was not fully published", logger.Err(err))
	}

	log.Info("sync completed",
		slog.String("run_id", report.RunID.String()),
		slog.Int("orders", len(report.Results)),
		slog.Int("failed_events", report.FailedEvents()),
	)

	if application.HTTPServer != nil {
		log.Info("serving results until interrupted")
		<-ctx.Done()
	}

	return nil
}
