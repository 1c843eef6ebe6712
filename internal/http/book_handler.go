package http

import (
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/sureshdube/book-review-platform/internal/catalog"
	"github.com/sureshdube/book-review-platform/internal/entity"
	"github.com/sureshdube/book-review-platform/internal/usecase"
)

type BookHandler struct {
	catalog *catalog.Service
	reviews usecase.ReviewRepository
}

func NewBookHandler(catalogService *catalog.Service, reviews usecase.ReviewRepository) *BookHandler {
	return &BookHandler{catalog: catalogService, reviews: reviews}
}

// List returns one page of the cached catalog, each entry decorated with its
// rating stats. Query params: page (1-indexed), limit, q (substring match on
// title or author).
func (h *BookHandler) List(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	page, _ := strconv.Atoi(r.URL.Query().Get("page"))
	if page < 1 {
		page = 1
	}
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	q := r.URL.Query().Get("q")

	result, err := h.catalog.ListPaged(ctx, page, limit, q)
	if err != nil {
		JSONError(w, http.StatusInternalServerError, "internal_error", "server error", nil)
		return
	}

	books := make([]entity.BookWithStats, len(result.Books))
	for i, b := range result.Books {
		stats, err := h.reviews.RatingStats(ctx, b.ISBN)
		if err != nil {
			log.Printf("list books: stats for %s: %v", b.ISBN, err)
		}
		books[i] = entity.BookWithStats{Book: b, RatingStats: stats}
	}

	JSONSuccess(w, map[string]any{"books": books}, map[string]any{
		"page":       result.Page,
		"limit":      result.Limit,
		"total":      result.Total,
		"totalPages": result.TotalPages,
	})
}

// GetByISBN serves a single book, lazily fetching and caching it from Open
// Library on a cache miss.
func (h *BookHandler) GetByISBN(w http.ResponseWriter, r *http.Request) {
	isbn, ok := pathISBN(w, r)
	if !ok {
		return
	}

	book, err := h.catalog.GetByISBN(r.Context(), isbn)
	if err != nil {
		switch {
		case errors.Is(err, usecase.ErrNotFound):
			JSONError(w, http.StatusNotFound, "book_not_found", "ISBN not found", nil)
		case errors.Is(err, usecase.ErrUpstream):
			JSONError(w, http.StatusBadGateway, "upstream_error", "book lookup failed upstream", nil)
		default:
			JSONError(w, http.StatusInternalServerError, "internal_error", "server error", nil)
		}
		return
	}
	JSONSuccess(w, book, nil)
}

// SeedDefaults populates an empty catalog from the default ISBN list. Always
// 200: partial progress and timeouts are reported in the payload.
func (h *BookHandler) SeedDefaults(w http.ResponseWriter, r *http.Request) {
	result := h.catalog.SeedDefaults(r.Context())
	JSONSuccess(w, result, nil)
}

// RefreshAll re-fetches every cached book and reports how many succeeded.
func (h *BookHandler) RefreshAll(w http.ResponseWriter, r *http.Request) {
	updated := h.catalog.RefreshAll(r.Context())
	JSONSuccess(w, map[string]int{"updated": updated}, nil)
}
