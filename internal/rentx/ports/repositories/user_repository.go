// Package repositories defines the persistence interfaces of the service.
package repositories

import (
	"context"

	"rentx/internal/rentx/domain/entities"
)

// UserRepository defines user persistence operations.
type UserRepository interface {
	Create(ctx context.Context, user *entities.User) (*entities.User, error)

	FindByID(ctx context.Context, id string) (*entities.User, error)

	// FindByLogin resolves a username or an email to a user, whichever
	// matches first.
	FindByLogin(ctx context.Context, login string) (*entities.User, error)

	FindByEmail(ctx context.Context, email string) (*entities.User, error)

	FindByUsername(ctx context.Context, username string) (*entities.User, error)

	Update(ctx context.Context, user *entities.User) (*entities.User, error)
}
