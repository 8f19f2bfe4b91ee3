// Package middleware holds the HTTP middleware for the REST interface.
package middleware

import (
	"net/http"
	"strings"

	"jobtrack/pkg/auth"
	"jobtrack/pkg/common"
	apperrors "jobtrack/pkg/errors"
)

// TokenVerifier checks a session token and returns the session it carries.
type TokenVerifier interface {
	Verify(token string) (auth.Session, error)
}

// Authenticator rejects requests without a valid session token and places
// the verified session on the request context for handlers.
type Authenticator struct {
	tokens TokenVerifier
}

// NewAuthenticator creates a new Authenticator
func NewAuthenticator(tokens TokenVerifier) *Authenticator {
	return &Authenticator{tokens: tokens}
}

// Middleware is the chi-compatible wrapper.
func (a *Authenticator) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := extractToken(r)
		if token == "" {
			common.RespondError(w, http.StatusUnauthorized, string(apperrors.ErrorTypeUnauthorized), "missing authentication token")
			return
		}

		session, err := a.tokens.Verify(token)
		if err != nil {
			common.RespondAppError(w, err)
			return
		}

		next.ServeHTTP(w, r.WithContext(auth.WithSession(r.Context(), session)))
	})
}

// extractToken prefers a bearer Authorization header and falls back to the
// auth cookie set at login.
func extractToken(r *http.Request) string {
	if header := r.Header.Get("Authorization"); header != "" {
		if strings.HasPrefix(header, "Bearer ") {
			return strings.TrimPrefix(header, "Bearer ")
		}
	}

	if cookie, err := r.Cookie(auth.CookieName); err == nil {
		return cookie.Value
	}

	return ""
}
