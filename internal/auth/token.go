package auth

import (
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/mkorotovs/pocketvine/internal/common"
)

// Claims carries the registered claims plus the session's username.
type Claims struct {
	jwt.RegisteredClaims
	Username string `json:"username"`
}

// TokenManager mints and verifies HS256 session tokens.
type TokenManager struct {
	secret []byte
	ttl    time.Duration
}

// NewTokenManager returns a TokenManager signing with secret; tokens expire
// after ttl.
func NewTokenManager(secret []byte, ttl time.Duration) *TokenManager {
	return &TokenManager{secret: secret, ttl: ttl}
}

// Issue mints a signed token for username.
func (m *TokenManager) Issue(username string) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(m.ttl)),
		},
		Username: username,
	})
	return token.SignedString(m.secret)
}

// Verify parses and validates a token, returning the username it was issued
// for. Expired, malformed, or foreign-signed tokens yield
// common.ErrInvalidToken.
func (m *TokenManager) Verify(tokenString string) (string, error) {
	claims := &Claims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		return m.secret, nil
	})
	if err != nil {
		return "", common.ErrInvalidToken
	}
	if !token.Valid {
		return "", common.ErrInvalidToken
	}
	return claims.Username, nil
}
