package httpapp

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	sync_http "github.com/tumbleweedd/shopify_klaviyo_sync/internal/delivery/http"
	"github.com/tumbleweedd/shopify_klaviyo_sync/internal/delivery/http/results"
	"github.com/tumbleweedd/shopify_klaviyo_sync/internal/domain/models"
)

const readHeaderTimeout = 5 * time.Second

type App struct {
	log        *slog.Logger
	httpServer *http.Server
	port       int
}

type resultGetter interface {
	Result(orderID int64) (models.DeliveryResult, bool)
	Results() []models.DeliveryResult
}

func NewApp(log *slog.Logger, resultGetter resultGetter, metrics http.Handler, port int) *App {
	handler := sync_http.NewHandler(results.NewHandler(log, resultGetter), metrics)

	httpServer := &http.Server{
		Addr:              fmt.Sprintf(":%d", port),
		Handler:           handler.InitRoutes(),
		ReadHeaderTimeout: readHeaderTimeout,
	}

	return &App{
		log:        log,
		httpServer: httpServer,
		port:       port,
	}
}

func (a *App) RunWithPanic() {
	if err := a.Run(); err != nil {
		panic(fmt.Sprintf("failed to run http server: %v", err))
	}
}

func (a *App) Run() error {
	const op = "httpapp.run"

	log := a.log.With(slog.String("op", op), slog.Int("port", a.port))

	log.Info("starting http server")

	if err := a.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

func (a *App) Stop(ctx context.Context) error {
	const op = "httpapp.stop"

	log := a.log.With(slog.String("op", op))

	log.Info("stopping http server")

	return a.httpServer.Shutdown(ctx)
}
