package services

import (
	"errors"
	"testing"
	"time"

	"shuttle_booking_backend/pkg/utils"
)

const testJWTSecret = "0123456789abcdef0123456789abcdef"

func TestLogin(t *testing.T) {
	hash, err := HashPassword("s3cret")
	if err != nil {
		t.Fatal(err)
	}
	svc := NewAuthService("ops", hash, testJWTSecret, time.Hour)

	resp, err := svc.Login(LoginRequest{Username: "ops", Password: "s3cret"})
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	claims, err := utils.ValidateToken([]byte(testJWTSecret), resp.AccessToken)
	if err != nil {
		t.Fatalf("issued token does not validate: %v", err)
	}
	if claims.Username != "ops" || claims.Role != RoleAdmin {
		t.Errorf("unexpected claims %+v", claims)
	}

	for _, req := range []LoginRequest{
		{Username: "ops", Password: "wrong"},
		{Username: "root", Password: "s3cret"},
	} {
		if _, err := svc.Login(req); !errors.Is(err, ErrInvalidCredentials) {
			t.Errorf("Login(%s) = %v, want ErrInvalidCredentials", req.Username, err)
		}
	}
}

func TestLoginWithoutConfiguredHash(t *testing.T) {
	svc := NewAuthService("ops", "", testJWTSecret, time.Hour)
	if _, err := svc.Login(LoginRequest{Username: "ops", Password: ""}); !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("got %v, want ErrInvalidCredentials", err)
	}
}
