package middleware

import (
	"encoding/json"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"github.com/lasersoldier/MuseMemo/application/ports"
	"github.com/lasersoldier/MuseMemo/pkg/auth"
)

// Authenticate creates the authentication middleware. With a validator
// it checks the HS256 signature of the bearer token locally; without
// one (demo mode, where tokens are opaque) it resolves the token
// against the gateway instead.
func Authenticate(validator *auth.JWTValidator, gateway ports.Gateway, logger *zap.Logger) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := extractToken(r)
			if token == "" {
				respondUnauthorized(w, "Missing authentication token")
				return
			}

			var userCtx *auth.UserContext
			if validator != nil {
				claims, err := validator.ValidateToken(token)
				if err != nil {
					logger.Warn("Invalid token",
						zap.Error(err),
						zap.String("path", r.URL.Path),
					)
					switch err {
					case auth.ErrExpiredToken:
						respondUnauthorized(w, "Token has expired")
					case auth.ErrInvalidSignature:
						respondUnauthorized(w, "Invalid token signature")
					default:
						respondUnauthorized(w, "Invalid token")
					}
					return
				}
				userCtx = &auth.UserContext{
					UserID:      claims.Subject,
					Email:       claims.Email,
					AccessToken: token,
				}
			} else {
				ident, err := gateway.SessionUser(r.Context(), token)
				if err != nil {
					respondUnauthorized(w, "Invalid session")
					return
				}
				userCtx = &auth.UserContext{
					UserID:      ident.ID,
					Email:       ident.Email,
					AccessToken: token,
				}
			}

			ctx := auth.SetUserInContext(r.Context(), userCtx)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// extractToken extracts the bearer token from the Authorization header
func extractToken(r *http.Request) string {
	authHeader := r.Header.Get("Authorization")
	if authHeader == "" {
		return ""
	}
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) == 2 && strings.ToLower(parts[0]) == "bearer" {
		return strings.TrimSpace(parts[1])
	}
	return strings.TrimSpace(authHeader)
}

// respondUnauthorized sends an unauthorized response
func respondUnauthorized(w http.ResponseWriter, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	json.NewEncoder(w).Encode(map[string]interface{}{
		"error":   true,
		"message": message,
		"code":    http.StatusUnauthorized,
	})
}
