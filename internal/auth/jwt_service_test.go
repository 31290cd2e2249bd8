package auth

import (
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/stretchr/testify/assert"
)

func TestJWTService_RoundTrip(t *testing.T) {
	svc := NewJWTService("test-secret")

	token, err := svc.GenerateToken(42, "a@x.com", "a")
	assert.NoError(t, err)
	assert.NotEmpty(t, token)

	claims, err := svc.ParseToken(token)
	assert.NoError(t, err)
	assert.Equal(t, uint(42), claims.UserID)
	assert.Equal(t, "a@x.com", claims.Email)
	assert.Equal(t, "a", claims.Username)
	assert.WithinDuration(t, time.Now().Add(TokenTTL), claims.ExpiresAt.Time, time.Minute)
}

func TestJWTService_InvalidTokens(t *testing.T) {
	svc := NewJWTService("test-secret")
	valid, err := svc.GenerateToken(42, "a@x.com", "a")
	assert.NoError(t, err)

	tests := []struct {
		name  string
		token string
	}{
		{
			name:  "malformed token",
			token: "not-a-token",
		},
		{
			name:  "tampered payload",
			token: tamper(valid),
		},
		{
			name:  "signed with different secret",
			token: mustSign(t, "other-secret", time.Now().Add(time.Hour)),
		},
		{
			name:  "expired token",
			token: mustSign(t, "test-secret", time.Now().Add(-time.Hour)),
		},
		{
			name:  "missing user id",
			token: mustSignClaims(t, "test-secret", &Claims{RegisteredClaims: jwt.RegisteredClaims{ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour))}}),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			claims, err := svc.ParseToken(tt.token)
			assert.Nil(t, claims)
			// every failure collapses to the same error
			assert.ErrorIs(t, err, ErrInvalidToken)
		})
	}
}

// tamper flips a character in the payload segment of a JWT.
func tamper(token string) string {
	parts := strings.Split(token, ".")
	payload := []byte(parts[1])
	if payload[0] == 'A' {
		payload[0] = 'B'
	} else {
		payload[0] = 'A'
	}
	parts[1] = string(payload)
	return strings.Join(parts, ".")
}

func mustSign(t *testing.T, secret string, expiry time.Time) string {
	t.Helper()
	return mustSignClaims(t, secret, &Claims{
		UserID: 42,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(expiry),
		},
	})
}

func mustSignClaims(t *testing.T, secret string, claims *Claims) string {
	t.Helper()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	assert.NoError(t, err)
	return token
}
