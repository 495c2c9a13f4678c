package app

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"rentx/internal/rentx/domain/entities"
	"rentx/internal/rentx/ports/api"
	"rentx/internal/rentx/ports/repositories"
	"rentx/pkg/logger"
)

const (
	methodProfileGet    = "Get"
	methodProfileUpdate = "Update"

	msgFetchingProfile = "fetching profile"
	msgUpdatingProfile = "updating profile"
	msgProfileUpdated  = "profile updated"
	msgUserNotFound    = "user not found"

	msgErrFindUser   = "failed to find user"
	msgErrUpdateUser = "failed to update user"

	errCtxFindingProfile  = "finding profile"
	errCtxUpdatingProfile = "updating profile"
)

// ProfileUseCaseImpl implements the ProfileUseCase interface.
type ProfileUseCaseImpl struct {
	userRepo repositories.UserRepository
}

// NewProfileUseCase creates a new profile use case.
func NewProfileUseCase(userRepo repositories.UserRepository) api.ProfileUseCase {
	return &ProfileUseCaseImpl{userRepo: userRepo}
}

// Get returns the user's profile with its completion percentage recomputed
// from current field values.
func (p *ProfileUseCaseImpl) Get(ctx context.Context, userID string) (*entities.User, int, error) {
	log := logger.Log(ctx).With(zap.String("method", methodProfileGet), zap.String("userID", userID))
	log.Debug(ctx, msgFetchingProfile)

	user, err := p.userRepo.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, entities.ErrUserNotFound) {
			log.Debug(ctx, msgUserNotFound)
		} else {
			log.Error(ctx, msgErrFindUser, zap.Error(err))
		}
		return nil, 0, fmt.Errorf("%s: %w", errCtxFindingProfile, err)
	}

	return user, user.CompletionPercentage(), nil
}

// Update merges the patch into the stored profile. Only the editable profile
// fields can change; identity and credentials are untouched.
func (p *ProfileUseCaseImpl) Update(ctx context.Context, userID string, patch *entities.ProfilePatch) (*entities.User, int, error) {
	log := logger.Log(ctx).With(zap.String("method", methodProfileUpdate), zap.String("userID", userID))
	log.Debug(ctx, msgUpdatingProfile)

	user, err := p.userRepo.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, entities.ErrUserNotFound) {
			log.Debug(ctx, msgUserNotFound)
		} else {
			log.Error(ctx, msgErrFindUser, zap.Error(err))
		}
		return nil, 0, fmt.Errorf("%s: %w", errCtxFindingProfile, err)
	}

	user.Apply(patch)

	updated, err := p.userRepo.Update(ctx, user)
	if err != nil {
		log.Error(ctx, msgErrUpdateUser, zap.Error(err))
		return nil, 0, fmt.Errorf("%s: %w", errCtxUpdatingProfile, err)
	}

	log.Info(ctx, msgProfileUpdated, zap.Int("completion", updated.CompletionPercentage()))
	return updated, updated.CompletionPercentage(), nil
}
