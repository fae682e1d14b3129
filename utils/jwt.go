package utils

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"time"

	"github.com/golang-jwt/jwt"
)

// AuthTokens signs and validates partner JWTs. Tokens are issued by the
// identity service with the partner ID as subject; this service only needs to
// verify them and check the Redis revocation cache.
type AuthTokens struct {
	secret []byte
}

func NewAuthTokens(secret string) *AuthTokens {
	return &AuthTokens{secret: []byte(secret)}
}

// Generate creates a signed JWT with the given subject (partner ID).
// Kept for test fixtures and local tooling.
func (a *AuthTokens) Generate(subject string, duration time.Duration) (string, error) {
	claims := jwt.MapClaims{
		"sub": subject,
		"iat": time.Now().Unix(),
		"exp": time.Now().Add(duration).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(a.secret)
}

// ExtractID parses and validates a token string and returns its subject.
func (a *AuthTokens) ExtractID(tokenString string) (string, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return a.secret, nil
	})
	if err != nil {
		return "", err
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return "", errors.New("invalid token")
	}

	sub, ok := claims["sub"].(string)
	if !ok || sub == "" {
		return "", errors.New("token does not contain a valid 'sub' claim")
	}
	return sub, nil
}

// HashToken computes a SHA-256 hash of the token string, used as the key in the
// revocation cache so raw tokens never land in Redis.
func HashToken(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}
