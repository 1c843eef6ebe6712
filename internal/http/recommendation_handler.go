package http

import (
	"errors"
	"net/http"

	"github.com/sureshdube/book-review-platform/internal/httpx"
	"github.com/sureshdube/book-review-platform/internal/usecase"
)

type RecommendationHandler struct {
	recommendations *usecase.RecommendationService
}

func NewRecommendationHandler(recommendations *usecase.RecommendationService) *RecommendationHandler {
	return &RecommendationHandler{recommendations: recommendations}
}

func (h *RecommendationHandler) Get(w http.ResponseWriter, r *http.Request) {
	titles, err := h.recommendations.Recommend(r.Context(), httpx.UserIDFrom(r))
	if err != nil {
		switch {
		case errors.Is(err, usecase.ErrNotConfigured):
			JSONError(w, http.StatusServiceUnavailable, "not_configured", "OpenAI API key not set", nil)
		case errors.Is(err, usecase.ErrNotFound):
			JSONError(w, http.StatusNotFound, "user_not_found", "user not found", nil)
		case errors.Is(err, usecase.ErrUpstream):
			JSONError(w, http.StatusBadGateway, "upstream_error", "OpenAI API error", nil)
		default:
			JSONError(w, http.StatusInternalServerError, "internal_error", "server error", nil)
		}
		return
	}
	JSONSuccess(w, map[string]any{"recommendations": titles}, nil)
}
