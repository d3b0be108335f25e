package identity

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"
)

var testSecret = []byte("unit-test-secret")

func mintToken(t *testing.T, claims jwt.MapClaims, secret []byte) string {
	t.Helper()

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	raw, err := token.SignedString(secret)
	require.NoError(t, err)
	return raw
}

func TestVerifyExtractsClaims(t *testing.T) {
	t.Parallel()

	raw := mintToken(t, jwt.MapClaims{
		"sub":   "user-1",
		"email": "alice@example.com",
		"name":  "Alice",
		"exp":   time.Now().Add(time.Hour).Unix(),
	}, testSecret)

	v := &HS256Verifier{Secret: testSecret}
	claims, err := v.Verify(raw)
	require.NoError(t, err)
	require.Equal(t, "user-1", claims.Subject)
	require.Equal(t, "alice@example.com", claims.Email)
	require.Equal(t, "Alice", claims.Name)
}

func TestVerifyRejectsExpiredToken(t *testing.T) {
	t.Parallel()

	raw := mintToken(t, jwt.MapClaims{
		"sub": "user-1",
		"exp": time.Now().Add(-time.Minute).Unix(),
	}, testSecret)

	v := &HS256Verifier{Secret: testSecret}
	_, err := v.Verify(raw)
	require.ErrorIs(t, err, ErrExpiredToken)
}

func TestVerifyRejectsWrongSecret(t *testing.T) {
	t.Parallel()

	raw := mintToken(t, jwt.MapClaims{
		"sub": "user-1",
		"exp": time.Now().Add(time.Hour).Unix(),
	}, []byte("other-secret"))

	v := &HS256Verifier{Secret: testSecret}
	_, err := v.Verify(raw)
	require.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerifyRequiresSubject(t *testing.T) {
	t.Parallel()

	raw := mintToken(t, jwt.MapClaims{
		"exp": time.Now().Add(time.Hour).Unix(),
	}, testSecret)

	v := &HS256Verifier{Secret: testSecret}
	_, err := v.Verify(raw)
	require.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerifyEnforcesIssuerWhenConfigured(t *testing.T) {
	t.Parallel()

	raw := mintToken(t, jwt.MapClaims{
		"sub": "user-1",
		"iss": "someone-else",
		"exp": time.Now().Add(time.Hour).Unix(),
	}, testSecret)

	v := &HS256Verifier{Secret: testSecret, Issuer: "kasa-idp"}
	_, err := v.Verify(raw)
	require.ErrorIs(t, err, ErrInvalidToken)
}
