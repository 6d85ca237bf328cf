package token

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/mkravtsov/authgate/internal/model"
)

// Claims represents session token claims carrying the identity key.
type Claims struct {
	jwt.RegisteredClaims
	Username string `json:"userName"`
}

// JWT implements TokenManager backed by symmetric HMAC. Tokens are signed
// with a single service-wide secret; verification never depends on
// user-supplied material.
type JWT struct {
	secretKey string
	ttl       time.Duration
}

// NewJWT creates a new JWT token manager with the provided secret key.
// A zero ttl issues tokens without an expiry claim.
func NewJWT(secretKey string, ttl time.Duration) model.TokenManager {
	return &JWT{secretKey: secretKey, ttl: ttl}
}

// GenerateSessionToken creates a signed session token for the username.
func (j *JWT) GenerateSessionToken(username string) (string, error) {
	now := time.Now()
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt: jwt.NewNumericDate(now),
		},
		Username: username,
	}
	if j.ttl > 0 {
		claims.ExpiresAt = jwt.NewNumericDate(now.Add(j.ttl))
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	tokenString, err := token.SignedString([]byte(j.secretKey))
	if err != nil {
		return "", fmt.Errorf("failed to sign session token: %w", err)
	}

	return tokenString, nil
}

// ParseSessionToken validates the signature and extracts the username.
// Any failure, malformed input included, comes back as a plain error,
// never a panic.
func (j *JWT) ParseSessionToken(tokenString string) (string, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("wrong signing method %v", t.Header["alg"])
		}
		return []byte(j.secretKey), nil
	})
	if err != nil {
		return "", fmt.Errorf("failed to parse session token: %w", err)
	}
	if !token.Valid {
		return "", fmt.Errorf("session token is invalid")
	}
	if claims.Username == "" {
		return "", fmt.Errorf("session token carries no username")
	}
	return claims.Username, nil
}
