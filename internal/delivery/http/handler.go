package sync_http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

type resultsHandler interface {
	Results(w http.ResponseWriter, r *http.Request)
	ResultByOrderID(w http.ResponseWriter, r *http.Request)
}

type Handler struct {
	results resultsHandler
	metrics http.Handler
}

func NewHandler(results resultsHandler, metrics http.Handler) *Handler {
	return &Handler{
		results: results,
		metrics: metrics,
	}
}

func (h *Handler) InitRoutes() http.Handler {
	mux := chi.NewRouter()
	mux.Use(middleware.Recoverer)

	mux.Method(http.MethodGet, "/metrics", h.metrics)

	mux.Route("/results", func(r chi.Router) {
		r.Get("/", h.results.Results)
		r.Get("/{orderID}", h.results.ResultByOrderID)
	})

	return mux
}
