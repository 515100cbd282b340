// Package auth resolves bearer tokens to users and guards protected routes.
package auth

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/diewo77/recipe-api/internal/httpx"
	"github.com/diewo77/recipe-api/internal/repository"
)

type ctxKey string

const userIDCtxKey = ctxKey("userID")

// Resolver maps a token key to a user ID.
type Resolver interface {
	Resolve(ctx context.Context, key string) (uint, error)
}

// WithUserID stores user id in context.
func WithUserID(ctx context.Context, userID uint) context.Context {
	return context.WithValue(ctx, userIDCtxKey, userID)
}

// UserIDFromContext extracts user id.
func UserIDFromContext(ctx context.Context) (uint, bool) {
	v := ctx.Value(userIDCtxKey)
	if v == nil {
		return 0, false
	}
	id, ok := v.(uint)
	return id, ok
}

// TokenFromHeader returns the key of an "Authorization: Bearer <key>" or
// "Token <key>" header.
func TokenFromHeader(h string) (string, bool) {
	scheme, key, ok := strings.Cut(strings.TrimSpace(h), " ")
	if !ok {
		return "", false
	}
	if !strings.EqualFold(scheme, "Bearer") && !strings.EqualFold(scheme, "Token") {
		return "", false
	}
	key = strings.TrimSpace(key)
	if key == "" || strings.ContainsAny(key, " \t") {
		return "", false
	}
	return key, true
}

// Middleware attaches the user id to the request context when the token resolves.
// A storage failure is answered with 500 rather than treated as anonymous.
func Middleware(resolver Resolver) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if key, ok := TokenFromHeader(r.Header.Get("Authorization")); ok {
				uid, err := resolver.Resolve(r.Context(), key)
				switch {
				case err == nil:
					r = r.WithContext(WithUserID(r.Context(), uid))
				case !errors.Is(err, repository.ErrInvalidToken):
					httpx.JSONError(w, http.StatusInternalServerError, httpx.CodeInternal, nil)
					return
				}
			}
			next.ServeHTTP(w, r)
		})
	}
}

// RequireAuth answers 401 JSON when no user is attached to the request.
func RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, ok := UserIDFromContext(r.Context()); !ok {
			w.Header().Set("WWW-Authenticate", "Token")
			httpx.JSONError(w, http.StatusUnauthorized, httpx.CodeUnauthorized, nil)
			return
		}
		next.ServeHTTP(w, r)
	})
}
