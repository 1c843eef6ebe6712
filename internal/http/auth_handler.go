package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/sureshdube/book-review-platform/internal/auth"
	"github.com/sureshdube/book-review-platform/internal/entity"
	"github.com/sureshdube/book-review-platform/internal/httpx"
	"github.com/sureshdube/book-review-platform/internal/usecase"
)

type AuthHandler struct {
	users     usecase.UserRepository
	jwtSecret string
}

func NewAuthHandler(users usecase.UserRepository, jwtSecret string) *AuthHandler {
	return &AuthHandler{users: users, jwtSecret: jwtSecret}
}

type signupRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,password_strength"`
}

type loginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type tokenResponse struct {
	ID           string `json:"id"`
	Email        string `json:"email"`
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

func (h *AuthHandler) Signup(w http.ResponseWriter, r *http.Request) {
	var req signupRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		JSONError(w, http.StatusBadRequest, "invalid_body", "request body must be valid JSON", nil)
		return
	}
	if errs := ValidateStruct(req); errs != nil {
		JSONError(w, http.StatusBadRequest, "validation_failed", "invalid signup request", validationDetails(errs))
		return
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		JSONError(w, http.StatusInternalServerError, "internal_error", "server error", nil)
		return
	}

	user := entity.User{Email: req.Email, Password: hash}
	if err := h.users.Create(r.Context(), &user); err != nil {
		if errors.Is(err, usecase.ErrAlreadyExists) {
			JSONError(w, http.StatusConflict, "email_taken", "email already exists", nil)
			return
		}
		JSONError(w, http.StatusInternalServerError, "internal_error", "server error", nil)
		return
	}

	access, refresh, err := auth.GenerateTokenPair(h.jwtSecret, user.ID, user.Role)
	if err != nil {
		JSONError(w, http.StatusInternalServerError, "internal_error", "server error", nil)
		return
	}
	JSONSuccessCreated(w, tokenResponse{
		ID:           user.ID,
		Email:        user.Email,
		AccessToken:  access,
		RefreshToken: refresh,
	})
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		JSONError(w, http.StatusBadRequest, "invalid_body", "request body must be valid JSON", nil)
		return
	}
	if errs := ValidateStruct(req); errs != nil {
		JSONError(w, http.StatusBadRequest, "validation_failed", "invalid login request", validationDetails(errs))
		return
	}

	user, err := h.users.GetByEmail(r.Context(), req.Email)
	if err != nil {
		if errors.Is(err, usecase.ErrNotFound) {
			JSONError(w, http.StatusUnauthorized, "invalid_credentials", "invalid email or password", nil)
			return
		}
		JSONError(w, http.StatusInternalServerError, "internal_error", "server error", nil)
		return
	}
	if !auth.VerifyPassword(user.Password, req.Password) {
		JSONError(w, http.StatusUnauthorized, "invalid_credentials", "invalid email or password", nil)
		return
	}

	access, refresh, err := auth.GenerateTokenPair(h.jwtSecret, user.ID, user.Role)
	if err != nil {
		JSONError(w, http.StatusInternalServerError, "internal_error", "server error", nil)
		return
	}
	JSONSuccess(w, tokenResponse{
		ID:           user.ID,
		Email:        user.Email,
		AccessToken:  access,
		RefreshToken: refresh,
	}, nil)
}

func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	user, err := h.users.GetByID(r.Context(), httpx.UserIDFrom(r))
	if err != nil {
		if errors.Is(err, usecase.ErrNotFound) {
			JSONError(w, http.StatusNotFound, "user_not_found", "user not found", nil)
			return
		}
		JSONError(w, http.StatusInternalServerError, "internal_error", "server error", nil)
		return
	}
	JSONSuccess(w, user, nil)
}
