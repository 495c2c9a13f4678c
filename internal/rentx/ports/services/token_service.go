// Package services defines the service interfaces consumed by use cases.
package services

import (
	"context"
	"time"
)

// TokenService defines JWT token operations.
type TokenService interface {
	GenerateAccessToken(ctx context.Context, userID, username string) (string, time.Time, error)

	GenerateRefreshToken(ctx context.Context, userID string) (string, time.Time, error)

	// ValidateAccessToken returns the user ID the token identifies.
	ValidateAccessToken(ctx context.Context, token string) (string, error)
}
