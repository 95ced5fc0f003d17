package services

import (
	"crypto/subtle"
	"errors"
	"fmt"
	"time"

	"golang.org/x/crypto/bcrypt"

	"shuttle_booking_backend/pkg/utils"
)

// --- Custom Service Errors ---
var (
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrTokenGeneration    = errors.New("failed to generate token")
)

// RoleAdmin is the only role the admin API issues.
const RoleAdmin = "admin"

// LoginRequest DTO
type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// AuthResponse DTO
type AuthResponse struct {
	AccessToken string    `json:"access_token"`
	TokenType   string    `json:"token_type"`
	ExpiresAt   time.Time `json:"expires_at"`
}

// AuthService authenticates the configured operator account.
type AuthService interface {
	Login(req LoginRequest) (*AuthResponse, error)
}

type authService struct {
	username     string
	passwordHash []byte
	jwtSecret    []byte
	tokenTTL     time.Duration
}

// NewAuthService creates a new instance of AuthService. passwordHash is a bcrypt hash.
func NewAuthService(username, passwordHash, jwtSecret string, tokenTTL time.Duration) AuthService {
	return &authService{
		username:     username,
		passwordHash: []byte(passwordHash),
		jwtSecret:    []byte(jwtSecret),
		tokenTTL:     tokenTTL,
	}
}

// HashPassword returns the bcrypt hash to store as the admin password hash.
func HashPassword(password string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(hashed), nil
}

func (s *authService) Login(req LoginRequest) (*AuthResponse, error) {
	if len(s.passwordHash) == 0 {
		return nil, ErrInvalidCredentials
	}
	userOK := subtle.ConstantTimeCompare([]byte(req.Username), []byte(s.username)) == 1
	// bcrypt runs for unknown usernames too.
	passErr := bcrypt.CompareHashAndPassword(s.passwordHash, []byte(req.Password))
	if !userOK || passErr != nil {
		return nil, ErrInvalidCredentials
	}

	token, expiresAt, err := utils.GenerateAccessToken(s.jwtSecret, s.username, RoleAdmin, s.tokenTTL)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrTokenGeneration, err)
	}
	utils.LogInfo("Admin logged in", map[string]interface{}{"username": s.username})
	return &AuthResponse{AccessToken: token, TokenType: "Bearer", ExpiresAt: expiresAt}, nil
}
