package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/nairp/resort-booking/internal/auth"
)

// sessionVerifier is satisfied by *auth.Service.
type sessionVerifier interface {
	Verify(token string) (auth.Session, error)
}

// sessionKey is the context key under which the verified admin session is
// stored. Unexported so only SessionFromContext can read it back.
type sessionKey struct{}

// NewRequireAdmin returns a middleware that rejects requests lacking a valid
// Bearer session token with 401. The verified session is placed on the
// request context for downstream handlers.
func NewRequireAdmin(verifier sessionVerifier) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token, ok := bearerToken(r.Header.Get("Authorization"))
			if !ok {
				unauthorized(w)
				return
			}

			session, err := verifier.Verify(token)
			if err != nil {
				unauthorized(w)
				return
			}

			ctx := context.WithValue(r.Context(), sessionKey{}, session)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// SessionFromContext returns the admin session stored by NewRequireAdmin,
// or false when the request did not pass through it.
func SessionFromContext(ctx context.Context) (auth.Session, bool) {
	s, ok := ctx.Value(sessionKey{}).(auth.Session)
	return s, ok
}

// bearerToken extracts the token from an "Authorization: Bearer <token>"
// header value. The scheme comparison is case-insensitive per RFC 9110.
func bearerToken(header string) (string, bool) {
	const prefix = "Bearer "
	if len(header) <= len(prefix) || !strings.EqualFold(header[:len(prefix)], prefix) {
		return "", false
	}
	return header[len(prefix):], true
}

func unauthorized(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	//nolint:errcheck — nothing useful to do if the write fails.
	w.Write([]byte(`{"success":false,"error":{"code":"unauthorized","message":"missing or invalid session token"}}`))
}
