package service_test

import (
	"errors"
	"testing"
	"time"

	"github.com/yudhapratama/sakubudget-go/internal/domain"
	"github.com/yudhapratama/sakubudget-go/internal/service"

	"github.com/golang-jwt/jwt/v5"
)

func TestValidateAccessToken_RoundTrip(t *testing.T) {
	svc := service.NewTokenService([]byte("test-secret"))

	token, err := svc.SignAccessToken("user-1", 15*time.Minute)
	if err != nil {
		t.Fatalf("sign: %v", err)
	}

	claims, err := svc.ValidateAccessToken(token)
	if err != nil {
		t.Fatalf("validate: %v", err)
	}
	if claims.Sub != "user-1" {
		t.Errorf("expected sub user-1, got %s", claims.Sub)
	}
}

func TestValidateAccessToken_WrongSecret(t *testing.T) {
	token, err := service.NewTokenService([]byte("secret-a")).SignAccessToken("user-1", 15*time.Minute)
	if err != nil {
		t.Fatalf("sign: %v", err)
	}

	_, err = service.NewTokenService([]byte("secret-b")).ValidateAccessToken(token)
	var unauthorized *domain.ErrUnauthorized
	if !errors.As(err, &unauthorized) {
		t.Fatalf("expected unauthorized, got %v", err)
	}
}

func TestValidateAccessToken_Expired(t *testing.T) {
	svc := service.NewTokenService([]byte("test-secret"))

	token, err := svc.SignAccessToken("user-1", -time.Minute)
	if err != nil {
		t.Fatalf("sign: %v", err)
	}

	if _, err := svc.ValidateAccessToken(token); err == nil {
		t.Fatal("expected expired token to be rejected")
	}
}

func TestValidateAccessToken_WrongType(t *testing.T) {
	secret := []byte("test-secret")
	claims := service.JWTClaims{
		Sub:  "user-1",
		Type: "refresh",
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(secret)
	if err != nil {
		t.Fatalf("sign: %v", err)
	}

	if _, err := service.NewTokenService(secret).ValidateAccessToken(token); err == nil {
		t.Fatal("expected non-access token to be rejected")
	}
}
