package suggestions

import (
	"errors"
	"log/slog"
	"net/http"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"

	"github.com/kitchenbuddy/kitchenbuddy/app/observability/metrics"
	"github.com/kitchenbuddy/kitchenbuddy/internal/api"
)

// SuggestionHandler exposes the recipe suggestion endpoint. It is mounted
// behind the Authenticate middleware.
type SuggestionHandler struct {
	suggestionService SuggestionService
	logger            *slog.Logger
}

func NewSuggestionHandler(suggestionService SuggestionService, logger *slog.Logger) *SuggestionHandler {
	return &SuggestionHandler{
		suggestionService: suggestionService,
		logger:            logger,
	}
}

// Suggest handles POST /recipes/suggestions.
func (h *SuggestionHandler) Suggest(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req SuggestionRequest
	if err := api.DecodeJSONBody(w, r, &req); err != nil {
		api.ErrorResponse(w, r, http.StatusBadRequest, err.Error())
		return
	}

	suggestions, err := h.suggestionService.Suggest(ctx, req.Ingredients)
	if err != nil {
		if errors.Is(err, api.ErrValidation) {
			metrics.Get().SuggestionRequestsTotal.Add(ctx, 1, metric.WithAttributes(attribute.String("outcome", "invalid")))
			api.ErrorResponse(w, r, http.StatusBadRequest, err.Error())
			return
		}
		h.logger.ErrorContext(ctx, "Failed to generate recipe suggestions", slog.Any("error", err))
		metrics.Get().SuggestionRequestsTotal.Add(ctx, 1, metric.WithAttributes(attribute.String("outcome", "error")))
		api.ErrorResponse(w, r, http.StatusBadGateway, "Could not generate suggestions at this time. Please try again.")
		return
	}

	metrics.Get().SuggestionRequestsTotal.Add(ctx, 1, metric.WithAttributes(attribute.String("outcome", "success")))
	api.WriteJSONResponse(w, r, http.StatusOK, api.SuccessResult(suggestions, ""))
}
