package auth

import (
	"errors"
	"time"

	jwt "github.com/golang-jwt/jwt/v5"
)

var (
	// ErrUnauthenticated covers every token failure: missing, malformed,
	// tampered, expired, or referencing an unknown user. Callers get no
	// finer detail than this.
	ErrUnauthenticated = errors.New("unauthenticated")
	// ErrForbidden means the caller is authenticated but the role check failed.
	ErrForbidden = errors.New("forbidden")
)

// DefaultTokenExpiry is the token lifetime when none is configured.
const DefaultTokenExpiry = 60 * time.Minute

// IssueToken signs an HS256 token asserting the username, valid for expire.
func IssueToken(secret, username string, expire time.Duration) (string, error) {
	if expire <= 0 {
		expire = DefaultTokenExpiry
	}
	claims := jwt.RegisteredClaims{
		Subject:   username,
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(expire)),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

// DecodeToken verifies signature and expiry and returns the subject claim.
// Any failure collapses to ErrUnauthenticated.
func DecodeToken(secret, tokenStr string) (string, error) {
	claims := &jwt.RegisteredClaims{}
	tok, err := jwt.ParseWithClaims(tokenStr, claims, func(t *jwt.Token) (interface{}, error) {
		if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, errors.New("unexpected signing method")
		}
		return []byte(secret), nil
	})
	if err != nil || !tok.Valid || claims.Subject == "" {
		return "", ErrUnauthenticated
	}
	return claims.Subject, nil
}
