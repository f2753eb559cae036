package results

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/tumbleweedd/shopify_klaviyo_sync/internal/domain/models"
	internalErrors "github.com/tumbleweedd/shopify_klaviyo_sync/internal/lib/errors"
	"github.com/tumbleweedd/shopify_klaviyo_sync/pkg/logger"
)

type resultGetter interface {
	Result(orderID int64) (models.DeliveryResult, bool)
	Results() []models.DeliveryResult
}

type Handler struct {
	log *slog.Logger

	resultGetter resultGetter
}

func NewHandler(log *slog.Logger, resultGetter resultGetter) *Handler {
	return &Handler{
		log:          log,
		resultGetter: resultGetter,
	}
}

func (h *Handler) Results(w http.ResponseWriter, _ *http.Request) {
	const op = "delivery.http.results.Results"

	results := h.resultGetter.Results()
	if results == nil {
		results = []models.DeliveryResult{}
	}

	h.writeJSON(w, op, map[string]interface{}{
		"results": results,
	})
}

func (h *Handler) ResultByOrderID(w http.ResponseWriter, r *http.Request) {
	const op = "delivery.http.results.ResultByOrderID"

	request := ResultByOrderIDRequest{OrderID: chi.URLParam(r, "orderID")}
	if err := request.validate(); err != nil {
		h.log.Debug("failed to validate request", slog.String("op", op), logger.Err(err))
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	result, ok := h.resultGetter.Result(request.toServiceRepresentation())
	if !ok {
		http.Error(w, internalErrors.ErrResultNotFound.Error(), http.StatusNotFound)
		return
	}

	h.writeJSON(w, op, result)
}

func (h *Handler) writeJSON(w http.ResponseWriter, op string, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)

	if err := json.NewEncoder(w).Encode(v); err != nil {
		h.log.Error("failed to encode response", slog.String("op", op), logger.Err(err))
	}
}
