package middlewares

import (
	"context"
	"net/http"
	"strings"

	"github.com/NjoguSimon-hub/sample-gemcart-backend/app/helpers"
	"github.com/NjoguSimon-hub/sample-gemcart-backend/app/models"
	"github.com/NjoguSimon-hub/sample-gemcart-backend/app/utils/apperr"
	"github.com/NjoguSimon-hub/sample-gemcart-backend/app/utils/renderer"
	"go.uber.org/zap"
)

type TokenParser interface {
	Parse(raw string) (uint, error)
}

type UserFinder interface {
	FindByID(ctx context.Context, id uint) (*models.User, error)
}

func bearerToken(r *http.Request) string {
	h := r.Header.Get("Authorization")
	scheme, raw, ok := strings.Cut(h, " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") {
		return ""
	}
	return strings.TrimSpace(raw)
}

// Authenticate resolves the bearer token to an active user and stores it in
// the request context.
func Authenticate(tokens TokenParser, users UserFinder, rs *renderer.Responder, log *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			raw := bearerToken(r)
			if raw == "" {
				rs.Error(w, r, apperr.Unauthenticated("Authentication required"))
				return
			}

			userID, err := tokens.Parse(raw)
			if err != nil {
				log.Debug("rejected token", zap.String("path", r.URL.Path), zap.Error(err))
				rs.Error(w, r, apperr.Unauthenticated("Invalid or expired token"))
				return
			}

			user, err := users.FindByID(r.Context(), userID)
			if err != nil {
				rs.Error(w, r, err)
				return
			}
			if user == nil || !user.IsActive {
				log.Info("token for missing or inactive user", zap.Uint("user_id", userID))
				rs.Error(w, r, apperr.Unauthenticated("Account not found or disabled"))
				return
			}

			next.ServeHTTP(w, r.WithContext(helpers.WithUser(r.Context(), user)))
		})
	}
}
