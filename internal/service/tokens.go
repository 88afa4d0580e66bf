package service

import (
	"fmt"
	"time"

	"github.com/yudhapratama/sakubudget-go/internal/domain"

	"github.com/golang-jwt/jwt/v5"
)

// JWTClaims represents the custom claims in access tokens issued by
// the main SakuBudget app. The engine validates, it never issues.
type JWTClaims struct {
	Sub  string `json:"sub"`
	Type string `json:"type"`
	jwt.RegisteredClaims
}

// TokenService validates access tokens on protected routes.
type TokenService struct {
	jwtSecret []byte
}

// NewTokenService creates a token validator over a shared HMAC secret.
func NewTokenService(jwtSecret []byte) *TokenService {
	return &TokenService{jwtSecret: jwtSecret}
}

func (s *TokenService) ValidateAccessToken(tokenString string) (*JWTClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &JWTClaims{}, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return s.jwtSecret, nil
	})
	if err != nil {
		return nil, &domain.ErrUnauthorized{Message: "invalid or expired token"}
	}

	claims, ok := token.Claims.(*JWTClaims)
	if !ok || !token.Valid {
		return nil, &domain.ErrUnauthorized{Message: "invalid token"}
	}

	if claims.Type != "access" {
		return nil, &domain.ErrUnauthorized{Message: "invalid token type"}
	}

	return claims, nil
}

// SignAccessToken issues a short-lived token with the same shape the
// main app produces. Used by tests and local tooling only.
func (s *TokenService) SignAccessToken(userID string, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := JWTClaims{
		Sub:  userID,
		Type: "access",
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			Issuer:    "sakubudget-api",
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.jwtSecret)
}
