// Package auth signs and verifies the session tokens carried in the auth
// cookie, and exposes request-context helpers for the authenticated session.
package auth

import (
	"errors"
	"time"

	apperrors "jobtrack/pkg/errors"

	"github.com/golang-jwt/jwt/v5"
)

const (
	issuer   = "com.delightable"
	audience = "com.delightable"

	// TokenExpiry is deliberately shorter than the cookie lifetime: a valid
	// cookie can carry an expired token, and verification must reject it.
	TokenExpiry = 48 * time.Hour
)

// Session is the identity carried inside a signed token.
type Session struct {
	UserID string `json:"userId"`
	Email  string `json:"email"`
	Name   string `json:"name"`
}

type sessionClaims struct {
	UserID string `json:"userId"`
	Email  string `json:"email"`
	Name   string `json:"name"`
	jwt.RegisteredClaims
}

// TokenService signs and verifies HS256 session tokens.
type TokenService struct {
	secret []byte
	expiry time.Duration
	now    func() time.Time
}

// NewTokenService creates a new TokenService
func NewTokenService(secret string) *TokenService {
	return &TokenService{
		secret: []byte(secret),
		expiry: TokenExpiry,
		now:    time.Now,
	}
}

// Sign issues a signed token for the session, expiring TokenExpiry from now.
func (s *TokenService) Sign(session Session) (string, error) {
	now := s.now()

	claims := sessionClaims{
		UserID: session.UserID,
		Email:  session.Email,
		Name:   session.Name,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			Audience:  jwt.ClaimStrings{audience},
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.expiry)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", apperrors.NewInternalError("failed to sign session token").WithCause(err)
	}
	return signed, nil
}

// Verify checks the token's signature, issuer, audience, and expiry, and
// returns the embedded session. Expiry is checked here regardless of how long
// the enclosing cookie remains valid.
func (s *TokenService) Verify(tokenString string) (Session, error) {
	var claims sessionClaims

	_, err := jwt.ParseWithClaims(tokenString, &claims,
		func(token *jwt.Token) (interface{}, error) {
			return s.secret, nil
		},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(issuer),
		jwt.WithAudience(audience),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return Session{}, apperrors.NewUnauthorizedError("token has expired")
		}
		return Session{}, apperrors.NewUnauthorizedError("invalid token").WithCause(err)
	}

	return Session{
		UserID: claims.UserID,
		Email:  claims.Email,
		Name:   claims.Name,
	}, nil
}
