// Package auth issues and verifies the signed bearer tokens handed out on
// registration and login.
package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/hotelbook/internal/common"
	"github.com/golang-jwt/jwt/v5"
)

// Claims carries the standard registered claims plus the principal id.
type Claims struct {
	jwt.RegisteredClaims
	UserID string `json:"id"`
}

// TokenManager signs tokens with a process-wide HMAC secret. There is no
// revocation list: a token stays valid until it expires.
type TokenManager struct {
	secret   []byte
	validity time.Duration
	now      func() time.Time
}

// NewTokenManager returns a manager issuing HS256 tokens valid for validity.
func NewTokenManager(secret []byte, validity time.Duration) (*TokenManager, error) {
	if len(secret) == 0 {
		return nil, errors.New("token secret is empty")
	}
	if validity <= 0 {
		return nil, fmt.Errorf("token validity must be positive, got %s", validity)
	}
	return &TokenManager{secret: secret, validity: validity, now: time.Now}, nil
}

// Issue returns a token for userID expiring one validity period from now.
func (m *TokenManager) Issue(userID string) (string, error) {
	return generateToken(userID, m.secret, m.now(), m.validity)
}

// Verify returns the principal id bound to token. Expired tokens yield
// common.ErrTokenExpired; malformed, unsigned or foreign tokens yield
// common.ErrInvalidToken.
func (m *TokenManager) Verify(token string) (string, error) {
	return parseToken(token, m.secret, m.now)
}

func generateToken(userID string, secretKey []byte, now time.Time, validity time.Duration) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(validity)),
		},
		UserID: userID,
	})

	tokenString, err := token.SignedString(secretKey)
	if err != nil {
		return "", err
	}

	return tokenString, nil
}

func parseToken(tokenString string, secretKey []byte, now func() time.Time) (string, error) {
	claims := &Claims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (any, error) {
		return secretKey, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(now),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return "", common.ErrTokenExpired
		}
		return "", fmt.Errorf("%w: %v", common.ErrInvalidToken, err)
	}

	if !token.Valid || claims.UserID == "" {
		return "", common.ErrInvalidToken
	}

	return claims.UserID, nil
}
