package app_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"rentx/internal/rentx/app"
	"rentx/internal/rentx/domain/entities"
)

func TestProfileGet(t *testing.T) {
	userID := "user-123"

	t.Run("success - completion recomputed from current fields", func(t *testing.T) {
		userRepo := new(mockUserRepository)
		userRepo.On("FindByID", mock.Anything, userID).Return(&entities.User{
			ID:           userID,
			Username:     "testuser",
			Email:        "test@example.com",
			PasswordHash: "hash",
			FirstName:    "Dana",
			LastName:     "Reyes",
		}, nil).Once()

		uc := app.NewProfileUseCase(userRepo)

		user, completion, err := uc.Get(context.Background(), userID)
		require.NoError(t, err)
		assert.Equal(t, userID, user.ID)
		assert.Equal(t, 50, completion, "5 of 10 checklist fields filled")
	})

	t.Run("error - unknown user", func(t *testing.T) {
		userRepo := new(mockUserRepository)
		userRepo.On("FindByID", mock.Anything, "ghost").Return(nil, entities.ErrUserNotFound).Once()

		uc := app.NewProfileUseCase(userRepo)

		_, _, err := uc.Get(context.Background(), "ghost")
		require.Error(t, err)
		assert.ErrorIs(t, err, entities.ErrUserNotFound)
	})
}

func TestProfileUpdate(t *testing.T) {
	userID := "user-123"

	stored := &entities.User{
		ID:           userID,
		Username:     "testuser",
		Email:        "test@example.com",
		PasswordHash: "hash",
		Occupation:   "Engineer",
	}

	t.Run("success - patched fields overwrite, identity untouched", func(t *testing.T) {
		userRepo := new(mockUserRepository)

		firstName := "Dana"
		phone := "555-0101"

		userRepo.On("FindByID", mock.Anything, userID).Return(stored, nil).Once()
		userRepo.On("Update", mock.Anything, mock.MatchedBy(func(u *entities.User) bool {
			return u.FirstName == firstName &&
				u.PhoneNumber == phone &&
				u.Occupation == "Engineer" &&
				u.Username == "testuser"
		})).Return(func() *entities.User {
			out := *stored
			out.FirstName = firstName
			out.PhoneNumber = phone
			return &out
		}(), nil).Once()

		uc := app.NewProfileUseCase(userRepo)

		updated, completion, err := uc.Update(context.Background(), userID, &entities.ProfilePatch{
			FirstName:   &firstName,
			PhoneNumber: &phone,
		})
		require.NoError(t, err)
		assert.Equal(t, firstName, updated.FirstName)
		assert.Equal(t, 50, completion, "username, email, password, first name and phone")

		userRepo.AssertExpectations(t)
	})

	t.Run("error - unknown user", func(t *testing.T) {
		userRepo := new(mockUserRepository)
		userRepo.On("FindByID", mock.Anything, "ghost").Return(nil, entities.ErrUserNotFound).Once()

		uc := app.NewProfileUseCase(userRepo)

		_, _, err := uc.Update(context.Background(), "ghost", &entities.ProfilePatch{})
		require.Error(t, err)
		assert.ErrorIs(t, err, entities.ErrUserNotFound)
	})
}
