package auth

import (
	"errors"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const defaultTokenTTL = 24 * time.Hour

// Token verification failures. Handlers must not forward the specific kind
// to clients; the split exists for logs and tests.
var (
	ErrExpired          = errors.New("token expired")
	ErrInvalidSignature = errors.New("invalid token signature")
	ErrMalformed        = errors.New("malformed token")
)

// TokenService issues and verifies signed, time-bound identity tokens.
// It is stateless: tokens are never stored server-side, so possession of a
// valid, unexpired token is sufficient for identity.
type TokenService struct {
	secret []byte
	ttl    time.Duration
}

// NewTokenService constructs a TokenService with the given signing key.
// The key is injected here once; no key rotation.
func NewTokenService(secret string, ttl time.Duration) *TokenService {
	if ttl <= 0 {
		ttl = defaultTokenTTL
	}
	return &TokenService{
		secret: []byte(secret),
		ttl:    ttl,
	}
}

// Issue mints an HS256 token binding the given user id for the configured
// TTL. Registration and login both go through here, so every token expires.
func (s *TokenService) Issue(userID string) (string, error) {
	now := time.Now()
	claims := jwt.RegisteredClaims{
		Subject:   userID,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.secret)
}

// Verify validates the token and returns the bound user id. Only the
// subject claim is trusted. Failures map to ErrExpired,
// ErrInvalidSignature or ErrMalformed.
func (s *TokenService) Verify(tokenString string) (string, error) {
	claims := jwt.RegisteredClaims{}
	token, err := jwt.ParseWithClaims(tokenString, &claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidSignature
		}
		return s.secret, nil
	})
	if err != nil {
		switch {
		case errors.Is(err, jwt.ErrTokenExpired):
			return "", ErrExpired
		case errors.Is(err, jwt.ErrTokenSignatureInvalid):
			return "", ErrInvalidSignature
		default:
			return "", ErrMalformed
		}
	}
	if !token.Valid {
		return "", ErrMalformed
	}
	subject := strings.TrimSpace(claims.Subject)
	if subject == "" {
		return "", ErrMalformed
	}
	return subject, nil
}
