package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/sureshdube/book-review-platform/internal/httpx"
	"github.com/sureshdube/book-review-platform/internal/usecase"
)

type ReviewHandler struct {
	reviews *usecase.ReviewService
}

func NewReviewHandler(reviews *usecase.ReviewService) *ReviewHandler {
	return &ReviewHandler{reviews: reviews}
}

type createReviewRequest struct {
	Rating int    `json:"rating" validate:"required,gte=1,lte=5"`
	Text   string `json:"text" validate:"max=5000"`
}

type updateReviewRequest struct {
	Rating *int    `json:"rating" validate:"omitempty,gte=1,lte=5"`
	Text   *string `json:"text" validate:"omitempty,max=5000"`
}

func (h *ReviewHandler) ListForBook(w http.ResponseWriter, r *http.Request) {
	isbn, ok := pathISBN(w, r)
	if !ok {
		return
	}
	reviews, err := h.reviews.ListForBook(r.Context(), isbn)
	if err != nil {
		JSONError(w, http.StatusInternalServerError, "internal_error", "server error", nil)
		return
	}
	JSONSuccess(w, reviews, nil)
}

func (h *ReviewHandler) Create(w http.ResponseWriter, r *http.Request) {
	isbn, ok := pathISBN(w, r)
	if !ok {
		return
	}

	var req createReviewRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		JSONError(w, http.StatusBadRequest, "invalid_body", "request body must be valid JSON", nil)
		return
	}
	if errs := ValidateStruct(req); errs != nil {
		JSONError(w, http.StatusBadRequest, "validation_failed", "invalid review", validationDetails(errs))
		return
	}

	review, err := h.reviews.Create(r.Context(),
		httpx.UserIDFrom(r), httpx.UserEmailFrom(r), isbn, req.Rating, req.Text)
	if err != nil {
		switch {
		case errors.Is(err, usecase.ErrNotFound):
			JSONError(w, http.StatusBadRequest, "book_not_found", "book not found", nil)
		case errors.Is(err, usecase.ErrAlreadyReviewed):
			JSONError(w, http.StatusConflict, "already_reviewed", "you have already reviewed this book", nil)
		case errors.Is(err, usecase.ErrInvalidRating):
			JSONError(w, http.StatusBadRequest, "invalid_rating", err.Error(), nil)
		default:
			JSONError(w, http.StatusInternalServerError, "internal_error", "server error", nil)
		}
		return
	}
	JSONSuccessCreated(w, review)
}

func (h *ReviewHandler) Update(w http.ResponseWriter, r *http.Request) {
	isbn, ok := pathISBN(w, r)
	if !ok {
		return
	}

	var req updateReviewRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		JSONError(w, http.StatusBadRequest, "invalid_body", "request body must be valid JSON", nil)
		return
	}
	if errs := ValidateStruct(req); errs != nil {
		JSONError(w, http.StatusBadRequest, "validation_failed", "invalid review update", validationDetails(errs))
		return
	}

	review, err := h.reviews.Update(r.Context(),
		httpx.UserIDFrom(r), isbn, r.PathValue("id"), req.Rating, req.Text)
	if err != nil {
		switch {
		case errors.Is(err, usecase.ErrNotFound):
			JSONError(w, http.StatusNotFound, "review_not_found", "review not found or not owned by user", nil)
		case errors.Is(err, usecase.ErrInvalidRating):
			JSONError(w, http.StatusBadRequest, "invalid_rating", err.Error(), nil)
		default:
			JSONError(w, http.StatusInternalServerError, "internal_error", "server error", nil)
		}
		return
	}
	JSONSuccess(w, review, nil)
}

func (h *ReviewHandler) Delete(w http.ResponseWriter, r *http.Request) {
	isbn, ok := pathISBN(w, r)
	if !ok {
		return
	}
	err := h.reviews.Delete(r.Context(), httpx.UserIDFrom(r), isbn, r.PathValue("id"))
	if err != nil {
		if errors.Is(err, usecase.ErrNotFound) {
			JSONError(w, http.StatusNotFound, "review_not_found", "review not found or not owned by user", nil)
			return
		}
		JSONError(w, http.StatusInternalServerError, "internal_error", "server error", nil)
		return
	}
	JSONSuccessNoContent(w)
}
