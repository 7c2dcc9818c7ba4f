package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret"

func TestTokenService_IssueAndVerify(t *testing.T) {
	tokens := NewTokenService(testSecret, 24*time.Hour)

	token, err := tokens.Issue("user-42")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	userID, err := tokens.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, "user-42", userID)
}

func TestTokenService_DifferentKeyFails(t *testing.T) {
	token, err := NewTokenService("key-a", time.Hour).Issue("user-1")
	require.NoError(t, err)

	_, err = NewTokenService("key-b", time.Hour).Verify(token)
	assert.ErrorIs(t, err, ErrInvalidSignature)
}

func TestTokenService_Expired(t *testing.T) {
	// Sign an already-expired token with the service's key.
	now := time.Now()
	claims := jwt.RegisteredClaims{
		Subject:   "user-1",
		IssuedAt:  jwt.NewNumericDate(now.Add(-25 * time.Hour)),
		ExpiresAt: jwt.NewNumericDate(now.Add(-time.Hour)),
	}
	expired, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
	require.NoError(t, err)

	_, err = NewTokenService(testSecret, time.Hour).Verify(expired)
	assert.ErrorIs(t, err, ErrExpired)
}

func TestTokenService_Malformed(t *testing.T) {
	tokens := NewTokenService(testSecret, time.Hour)

	for _, tokenString := range []string{"", "garbage", "a.b.c"} {
		_, err := tokens.Verify(tokenString)
		assert.ErrorIs(t, err, ErrMalformed, "token %q", tokenString)
	}
}

func TestTokenService_EmptySubjectRejected(t *testing.T) {
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	}).SignedString([]byte(testSecret))
	require.NoError(t, err)

	_, err = NewTokenService(testSecret, time.Hour).Verify(token)
	assert.ErrorIs(t, err, ErrMalformed)
}

func TestTokenService_WrongSigningMethod(t *testing.T) {
	// alg=none style tokens must not verify.
	token, err := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.RegisteredClaims{
		Subject: "user-1",
	}).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	_, err = NewTokenService(testSecret, time.Hour).Verify(token)
	assert.Error(t, err)
}
