// Package middleware provides HTTP middleware for session authentication.
package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/SureshMalla-bit/mallalaunchpad/internal/auth"
)

// ContextKey is a typed key for context values to avoid collisions.
type ContextKey string

const sessionKey ContextKey = "session"

// Verifier validates a session token and returns the session it carries.
type Verifier interface {
	Verify(token string) (*auth.Session, error)
}

// Session validates the bearer token and stores the decoded session in the
// request context. Requests without a valid token are rejected with 401.
func Session(v Verifier) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token, ok := bearerToken(r)
			if !ok {
				unauthorized(w)
				return
			}

			session, err := v.Verify(token)
			if err != nil {
				unauthorized(w)
				return
			}

			ctx := context.WithValue(r.Context(), sessionKey, session)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// SessionFrom extracts the authenticated session from the request context.
func SessionFrom(r *http.Request) (*auth.Session, error) {
	session, ok := r.Context().Value(sessionKey).(*auth.Session)
	if !ok {
		return nil, &auth.ErrInvalidSession{}
	}
	return session, nil
}

// WithSession returns a context carrying the session. Exposed for handler
// tests that bypass the middleware.
func WithSession(ctx context.Context, s *auth.Session) context.Context {
	return context.WithValue(ctx, sessionKey, s)
}

// bearerToken parses the Authorization header, accepting a case-insensitive
// "Bearer" scheme.
func bearerToken(r *http.Request) (string, bool) {
	header := r.Header.Get("Authorization")
	if header == "" {
		return "", false
	}
	parts := strings.Fields(header)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return "", false
	}
	return parts[1], true
}

func unauthorized(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	_, _ = w.Write([]byte(`{"error":"invalid or expired session"}`))
}
