package auth

import (
	"context"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret"

func signToken(t *testing.T, secret string, claims jwt.MapClaims) string {
	t.Helper()

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(secret))
	require.NoError(t, err)
	return signed
}

func TestJWTVerifierExtractsIdentity(t *testing.T) {
	verifier := NewJWTVerifier(testSecret)

	token := signToken(t, testSecret, jwt.MapClaims{
		"sub":        "user-1",
		"email":      "coach@skillwave.test",
		"full_name":  "Coach Amina",
		"avatar_url": "https://cdn.example/a.png",
		"exp":        time.Now().Add(time.Hour).Unix(),
	})

	identity, err := verifier.Verify(context.Background(), token)
	require.NoError(t, err)
	assert.Equal(t, "user-1", identity.ID)
	assert.Equal(t, "coach@skillwave.test", identity.Email)
	assert.Equal(t, "Coach Amina", identity.Name)
	assert.Equal(t, "https://cdn.example/a.png", identity.Avatar)
}

func TestJWTVerifierPrefersNameClaim(t *testing.T) {
	verifier := NewJWTVerifier(testSecret)

	token := signToken(t, testSecret, jwt.MapClaims{
		"sub":       "user-1",
		"name":      "Amina",
		"full_name": "Coach Amina",
	})

	identity, err := verifier.Verify(context.Background(), token)
	require.NoError(t, err)
	assert.Equal(t, "Amina", identity.Name)
}

func TestJWTVerifierRejectsWrongSecret(t *testing.T) {
	verifier := NewJWTVerifier(testSecret)

	token := signToken(t, "other-secret", jwt.MapClaims{"sub": "user-1"})

	_, err := verifier.Verify(context.Background(), token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestJWTVerifierRejectsExpired(t *testing.T) {
	verifier := NewJWTVerifier(testSecret)

	token := signToken(t, testSecret, jwt.MapClaims{
		"sub": "user-1",
		"exp": time.Now().Add(-time.Hour).Unix(),
	})

	_, err := verifier.Verify(context.Background(), token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestJWTVerifierRejectsMissingSubject(t *testing.T) {
	verifier := NewJWTVerifier(testSecret)

	token := signToken(t, testSecret, jwt.MapClaims{"email": "x@y.z"})

	_, err := verifier.Verify(context.Background(), token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestJWTVerifierRejectsGarbage(t *testing.T) {
	verifier := NewJWTVerifier(testSecret)

	_, err := verifier.Verify(context.Background(), "not-a-jwt")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestDisplayNameOr(t *testing.T) {
	assert.Equal(t, "Coach Amina", Identity{Name: "Coach Amina", Email: "a@b.c"}.DisplayNameOr("Student"))
	assert.Equal(t, "runner", Identity{Email: "runner@skillwave.test"}.DisplayNameOr("Student"))
	assert.Equal(t, "Student", Identity{}.DisplayNameOr("Student"))
}
