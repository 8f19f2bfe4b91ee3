package auth

import (
	"context"

	apperrors "jobtrack/pkg/errors"
)

type contextKey struct{}

// WithSession returns a context carrying the authenticated session.
func WithSession(ctx context.Context, session Session) context.Context {
	return context.WithValue(ctx, contextKey{}, session)
}

// SessionFromContext extracts the authenticated session set by the auth
// middleware.
func SessionFromContext(ctx context.Context) (Session, error) {
	session, ok := ctx.Value(contextKey{}).(Session)
	if !ok {
		return Session{}, apperrors.NewUnauthorizedError("no session in context")
	}
	return session, nil
}
