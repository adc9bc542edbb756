package middleware

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/gorilla/mux"

	"sales-crm/internal/logger"
	"sales-crm/internal/models"
	"sales-crm/internal/tokenstore"
	"sales-crm/internal/utils"
)

// AuthMiddleware accepts a bearer session token and stores the user id and
// role in the request context.
func AuthMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			utils.RespondError(w, http.StatusUnauthorized, "Authorization header required")
			return
		}

		tokenString, found := strings.CutPrefix(authHeader, "Bearer ")
		if !found {
			utils.RespondError(w, http.StatusUnauthorized, "Bearer token required")
			return
		}

		claims, err := utils.ParseJWT(tokenString)
		if err != nil {
			utils.RespondError(w, http.StatusUnauthorized, "Invalid or expired token")
			return
		}

		ctx := context.WithValue(r.Context(), models.UserIDContextKey, claims.UserID)
		ctx = context.WithValue(ctx, models.RoleContextKey, claims.Role)
		ctx = context.WithValue(ctx, models.TokenIDContextKey, claims.ID)
		if claims.ExpiresAt != nil {
			ctx = context.WithValue(ctx, models.TokenExpiryContextKey, claims.ExpiresAt.Time)
		}
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// UserID returns the authenticated user id, or "" outside AuthMiddleware.
func UserID(ctx context.Context) string {
	id, _ := ctx.Value(models.UserIDContextKey).(string)
	return id
}

// Role returns the role claimed by the session token.
func Role(ctx context.Context) models.Role {
	role, _ := ctx.Value(models.RoleContextKey).(models.Role)
	return role
}

// TokenID is the jti of the bearer token, "" for tokens issued without one.
func TokenID(ctx context.Context) string {
	id, _ := ctx.Value(models.TokenIDContextKey).(string)
	return id
}

// TokenExpiry is when the bearer token stops being accepted.
func TokenExpiry(ctx context.Context) time.Time {
	exp, _ := ctx.Value(models.TokenExpiryContextKey).(time.Time)
	return exp
}

// RejectRevoked turns away tokens that were logged out. It runs after
// AuthMiddleware.
func RejectRevoked(store tokenstore.RevocationStore, log logger.Logger) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			revoked, err := store.IsRevoked(TokenID(r.Context()))
			if err != nil {
				log.Error("could not check token revocation: %v", err)
				utils.RespondError(w, http.StatusInternalServerError, "Internal server error")
				return
			}
			if revoked {
				utils.RespondError(w, http.StatusUnauthorized, "Session has been logged out")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// RequireElevated rejects representatives before the handler runs. The
// session service checks the role again against the stored user.
func RequireElevated(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !Role(r.Context()).Elevated() {
			utils.RespondError(w, http.StatusForbidden, "Managers and administrators only")
			return
		}
		next.ServeHTTP(w, r)
	})
}
