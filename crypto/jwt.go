package crypto

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/Carincrack/explosive-word-game/domain"
)

type sessionClaims struct {
	jwt.RegisteredClaims
}

type JWTManager struct {
	secretKey []byte
	tokenAge  time.Duration
}

func NewJWTManager(secretKey string, tokenAge time.Duration) *JWTManager {
	return &JWTManager{secretKey: []byte(secretKey), tokenAge: tokenAge}
}

func (m *JWTManager) Generate(userID string) (string, error) {
	claims := sessionClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(m.tokenAge)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(m.secretKey)
	if err != nil {
		return "", domain.UnexpectedTokenGenerationError
	}
	return signed, nil
}

// Verify returns the user id a valid token was issued for.
func (m *JWTManager) Verify(tokenString string) (string, error) {
	token, err := jwt.ParseWithClaims(tokenString, &sessionClaims{}, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, domain.ErrInvalidSigningAlg
		}
		return m.secretKey, nil
	})

	switch {
	case err == nil:
	case errors.Is(err, jwt.ErrTokenExpired):
		return "", domain.ErrExpiredToken
	case errors.Is(err, jwt.ErrTokenSignatureInvalid):
		return "", domain.ErrInvalidTokenSignature
	case errors.Is(err, domain.ErrInvalidSigningAlg):
		return "", domain.ErrInvalidSigningAlg
	default:
		return "", domain.ErrCorruptedToken
	}

	claims, ok := token.Claims.(*sessionClaims)
	if !ok || !token.Valid || claims.Subject == "" {
		return "", domain.ErrCorruptedToken
	}
	return claims.Subject, nil
}
