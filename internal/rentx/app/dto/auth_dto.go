// Package dto contains the request and response shapes of the HTTP API.
package dto

import (
	"time"

	"rentx/internal/rentx/domain/entities"
	"rentx/internal/rentx/domain/services"
)

// RegisterRequest carries the data for registering a user.
type RegisterRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Username string `json:"username" validate:"required,min=3,max=50"`
	Password string `json:"password" validate:"required,min=8"`
}

// LoginRequest carries the data for logging a user in. Login accepts a
// username or an email.
type LoginRequest struct {
	Login    string `json:"login" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// TokenResponse carries the issued token pair.
type TokenResponse struct {
	UserID       string    `json:"user_id"`
	Username     string    `json:"username,omitempty"`
	AccessToken  string    `json:"access_token"`
	RefreshToken string    `json:"refresh_token"`
	ExpiresAt    time.Time `json:"expires_at"`
}

// RefreshRequest carries the data for refreshing tokens.
type RefreshRequest struct {
	RefreshToken string `json:"refresh_token" validate:"required"`
}

// LogoutRequest carries the data for logging a user out.
type LogoutRequest struct {
	RefreshToken string `json:"refresh_token" validate:"required"`
}

// AuthResponse carries the registered or authenticated user together with
// the issued token pair. The password hash never leaves the service.
type AuthResponse struct {
	User   *ProfileResponse `json:"user"`
	Tokens *TokenResponse   `json:"tokens"`
}

// NewAuthResponse maps a user and its token pair to the response shape.
func NewAuthResponse(user *entities.User, pair *services.TokenPair) *AuthResponse {
	return &AuthResponse{
		User:   NewProfileResponse(user, user.CompletionPercentage()),
		Tokens: NewTokenResponse(pair),
	}
}

// NewTokenResponse maps a domain token pair to its response shape.
func NewTokenResponse(pair *services.TokenPair) *TokenResponse {
	return &TokenResponse{
		UserID:       pair.UserID,
		Username:     pair.Username,
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
		ExpiresAt:    pair.ExpiresAt,
	}
}
