package httpx

import (
	"context"
	"net/http"
	"strings"

	"github.com/sureshdube/book-review-platform/internal/auth"
	"github.com/sureshdube/book-review-platform/internal/entity"
)

// UserLookup resolves a user ID from a token to the stored user, so handlers
// can rely on the email in context without another query.
type UserLookup interface {
	GetByID(ctx context.Context, id string) (entity.User, error)
}

func AuthMiddleware(secret string, users UserLookup) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if !strings.HasPrefix(authHeader, "Bearer ") {
				http.Error(w, "unauthorized", http.StatusUnauthorized)
				return
			}
			token := strings.TrimPrefix(authHeader, "Bearer ")

			claims, err := auth.ParseToken(secret, token)
			if err != nil {
				http.Error(w, "unauthorized", http.StatusUnauthorized)
				return
			}

			email := ""
			if users != nil {
				if user, err := users.GetByID(r.Context(), claims.Sub); err == nil {
					email = user.Email
				}
			}

			ctx := ContextWithUser(r.Context(), claims.Sub, email, claims.Role)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
