package http

import (
	"errors"
	"net/http"

	"github.com/sureshdube/book-review-platform/internal/httpx"
	"github.com/sureshdube/book-review-platform/internal/usecase"
)

type UserHandler struct {
	users *usecase.UserService
}

func NewUserHandler(users *usecase.UserService) *UserHandler {
	return &UserHandler{users: users}
}

func (h *UserHandler) AddFavourite(w http.ResponseWriter, r *http.Request) {
	isbn, ok := pathISBN(w, r)
	if !ok {
		return
	}
	already, err := h.users.AddFavourite(r.Context(), httpx.UserIDFrom(r), isbn)
	if err != nil {
		switch {
		case errors.Is(err, usecase.ErrNotFound):
			JSONError(w, http.StatusNotFound, "user_not_found", "user not found", nil)
		case errors.Is(err, usecase.ErrBookNotFound):
			JSONError(w, http.StatusNotFound, "book_not_found", "book not in catalog", nil)
		case errors.Is(err, usecase.ErrTooManyFavourites):
			JSONError(w, http.StatusBadRequest, "too_many_favourites", err.Error(), nil)
		default:
			JSONError(w, http.StatusInternalServerError, "internal_error", "server error", nil)
		}
		return
	}
	JSONSuccess(w, map[string]bool{"ok": true, "already": already}, nil)
}

func (h *UserHandler) RemoveFavourite(w http.ResponseWriter, r *http.Request) {
	isbn, ok := pathISBN(w, r)
	if !ok {
		return
	}
	err := h.users.RemoveFavourite(r.Context(), httpx.UserIDFrom(r), isbn)
	if err != nil {
		if errors.Is(err, usecase.ErrNotFound) {
			JSONError(w, http.StatusNotFound, "user_not_found", "user not found", nil)
			return
		}
		JSONError(w, http.StatusInternalServerError, "internal_error", "server error", nil)
		return
	}
	JSONSuccess(w, map[string]bool{"ok": true}, nil)
}

func (h *UserHandler) Profile(w http.ResponseWriter, r *http.Request) {
	profile, err := h.users.GetProfile(r.Context(), httpx.UserIDFrom(r))
	if err != nil {
		if errors.Is(err, usecase.ErrNotFound) {
			JSONError(w, http.StatusNotFound, "user_not_found", "user not found", nil)
			return
		}
		JSONError(w, http.StatusInternalServerError, "internal_error", "server error", nil)
		return
	}
	JSONSuccess(w, profile, nil)
}
