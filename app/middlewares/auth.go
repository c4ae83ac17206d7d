// Package middlewares holds the route-level middleware: token
// authentication and the shop subscription gate.
package middlewares

import (
	"context"
	"errors"
	"net/http"

	"github.com/drovo/backend/pkg/auth"
	"github.com/drovo/backend/pkg/response"
)

type contextKey int

const (
	accountIDKey contextKey = iota
	shopKey
)

// AccountIDFromContext returns the authenticated account id set by
// Authenticate (or by the subscription gate).
func AccountIDFromContext(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(accountIDKey).(string)
	return id, ok
}

// tokenFromRequest pulls the token from the `token` header, falling back to
// a bearer Authorization header. The frontend uses the former everywhere
// except the renewal flow.
func tokenFromRequest(r *http.Request) string {
	if t := r.Header.Get("token"); t != "" {
		return t
	}
	const prefix = "Bearer "
	if h := r.Header.Get("Authorization"); len(h) > len(prefix) && h[:len(prefix)] == prefix {
		return h[len(prefix):]
	}
	return ""
}

// Authenticate resolves the caller's token and stores the account id in the
// request context. Missing and expired tokens get 401; a forged or malformed
// token gets 500, matching the convention the frontend already handles.
func Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		accountID, err := auth.ResolveToken(tokenFromRequest(r))
		if err != nil {
			writeTokenError(w, err)
			return
		}
		ctx := context.WithValue(r.Context(), accountIDKey, accountID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func writeTokenError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, auth.ErrTokenMissing):
		response.Unauthorized(w, "Not authorized, login again")
	case errors.Is(err, auth.ErrTokenExpired):
		response.Unauthorized(w, "Session expired, login again")
	default:
		response.ServerError(w, "Invalid token")
	}
}
