package auth

import (
	"testing"
	"time"

	jwt "github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "unit-test-secret"

func TestIssueAndDecodeToken(t *testing.T) {
	token, err := IssueToken(testSecret, "alice", time.Minute)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	subject, err := DecodeToken(testSecret, token)
	require.NoError(t, err)
	assert.Equal(t, "alice", subject)
}

func TestDecodeTokenWrongSecret(t *testing.T) {
	token, err := IssueToken(testSecret, "alice", time.Minute)
	require.NoError(t, err)

	_, err = DecodeToken("some-other-secret", token)
	assert.ErrorIs(t, err, ErrUnauthenticated)
}

func TestDecodeTokenExpired(t *testing.T) {
	claims := jwt.RegisteredClaims{
		Subject:   "alice",
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Minute)),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
	require.NoError(t, err)

	_, err = DecodeToken(testSecret, token)
	assert.ErrorIs(t, err, ErrUnauthenticated)
}

func TestDecodeTokenRejectsUnsignedToken(t *testing.T) {
	// alg=none tokens must never be accepted even with a valid shape.
	claims := jwt.RegisteredClaims{
		Subject:   "alice",
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Minute)),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodNone, claims).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	_, err = DecodeToken(testSecret, token)
	assert.ErrorIs(t, err, ErrUnauthenticated)
}

func TestDecodeTokenMissingSubject(t *testing.T) {
	claims := jwt.RegisteredClaims{
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Minute)),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
	require.NoError(t, err)

	_, err = DecodeToken(testSecret, token)
	assert.ErrorIs(t, err, ErrUnauthenticated)
}

func TestDecodeTokenGarbage(t *testing.T) {
	_, err := DecodeToken(testSecret, "not.a.token")
	assert.ErrorIs(t, err, ErrUnauthenticated)
}

func TestIssueTokenDefaultExpiry(t *testing.T) {
	token, err := IssueToken(testSecret, "alice", 0)
	require.NoError(t, err)

	subject, err := DecodeToken(testSecret, token)
	require.NoError(t, err)
	assert.Equal(t, "alice", subject)
}
