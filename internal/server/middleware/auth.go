// Package middleware provides HTTP middleware for the API server.
package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/hiredesk/hiredesk/internal/types"
)

type contextKey string

const principalContextKey contextKey = "principal"

// TokenValidator validates a bearer token and returns the acting principal.
type TokenValidator interface {
	ValidateToken(tokenString string) (types.Principal, error)
}

// RequireAuth rejects requests that do not carry a valid bearer token and
// stores the authenticated principal in the request context.
func RequireAuth(validator TokenValidator) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				unauthorized(w, "missing authorization header")
				return
			}

			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
				unauthorized(w, "invalid authorization header format")
				return
			}

			principal, err := validator.ValidateToken(parts[1])
			if err != nil {
				unauthorized(w, "invalid or expired token")
				return
			}

			ctx := context.WithValue(r.Context(), principalContextKey, principal)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// PrincipalFromContext returns the authenticated principal, if any.
func PrincipalFromContext(ctx context.Context) (types.Principal, bool) {
	principal, ok := ctx.Value(principalContextKey).(types.Principal)
	return principal, ok
}

// WithPrincipal returns a context carrying the given principal. Intended
// for tests that bypass token validation.
func WithPrincipal(ctx context.Context, principal types.Principal) context.Context {
	return context.WithValue(ctx, principalContextKey, principal)
}

func unauthorized(w http.ResponseWriter, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	json.NewEncoder(w).Encode(map[string]string{"error": message})
}
