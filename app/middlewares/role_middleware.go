package middlewares

import (
	"net/http"
	"slices"

	"github.com/NjoguSimon-hub/sample-gemcart-backend/app/helpers"
	"github.com/NjoguSimon-hub/sample-gemcart-backend/app/models"
	"github.com/NjoguSimon-hub/sample-gemcart-backend/app/utils/apperr"
	"github.com/NjoguSimon-hub/sample-gemcart-backend/app/utils/renderer"
	"go.uber.org/zap"
)

// RequireRole must run after Authenticate.
func RequireRole(rs *renderer.Responder, log *zap.Logger, roles ...models.Role) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			user := helpers.UserFromContext(r.Context())
			if user == nil {
				rs.Error(w, r, apperr.Unauthenticated("Authentication required"))
				return
			}
			if !slices.Contains(roles, user.Role) {
				log.Info("role check failed",
					zap.Uint("user_id", user.ID),
					zap.String("role", string(user.Role)),
					zap.String("path", r.URL.Path))
				rs.Error(w, r, apperr.PermissionDenied("You do not have permission to access this resource"))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func RequireAdmin(rs *renderer.Responder, log *zap.Logger) func(http.Handler) http.Handler {
	return RequireRole(rs, log, models.RoleAdmin)
}

func RequireSeller(rs *renderer.Responder, log *zap.Logger) func(http.Handler) http.Handler {
	return RequireRole(rs, log, models.RoleSeller, models.RoleAdmin)
}
