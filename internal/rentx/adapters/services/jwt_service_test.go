package services_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	adapters "rentx/internal/rentx/adapters/services"
	"rentx/internal/rentx/domain/services"
)

const testSecret = "test-secret-key-for-signing"

func TestGenerateAccessToken(t *testing.T) {
	ctx := testContext(t)

	t.Run("round trip recovers the user ID", func(t *testing.T) {
		service := adapters.NewJWT(testSecret, 15*time.Minute, 24*time.Hour)

		token, expiresAt, err := service.GenerateAccessToken(ctx, "user-1", "renter")
		require.NoError(t, err)
		require.NotEmpty(t, token)
		assert.WithinDuration(t, time.Now().Add(15*time.Minute), expiresAt, 5*time.Second)

		userID, err := service.ValidateAccessToken(ctx, token)
		require.NoError(t, err)
		assert.Equal(t, "user-1", userID)
	})

	t.Run("empty secret key fails", func(t *testing.T) {
		service := adapters.NewJWT("", 15*time.Minute, 24*time.Hour)

		_, _, err := service.GenerateAccessToken(ctx, "user-1", "renter")

		assert.ErrorIs(t, err, services.ErrGeneratingJWTToken)
	})
}

func TestGenerateRefreshToken(t *testing.T) {
	ctx := testContext(t)

	t.Run("issues distinct tokens per call", func(t *testing.T) {
		service := adapters.NewJWT(testSecret, 15*time.Minute, 24*time.Hour)

		first, expiresAt, err := service.GenerateRefreshToken(ctx, "user-1")
		require.NoError(t, err)
		assert.WithinDuration(t, time.Now().Add(24*time.Hour), expiresAt, 5*time.Second)

		second, _, err := service.GenerateRefreshToken(ctx, "user-1")
		require.NoError(t, err)

		assert.NotEqual(t, first, second)
	})

	t.Run("empty secret key fails", func(t *testing.T) {
		service := adapters.NewJWT("", 15*time.Minute, 24*time.Hour)

		_, _, err := service.GenerateRefreshToken(ctx, "user-1")

		assert.ErrorIs(t, err, services.ErrGeneratingJWTToken)
	})
}

func TestValidateAccessToken(t *testing.T) {
	ctx := testContext(t)

	t.Run("rejects garbage", func(t *testing.T) {
		service := adapters.NewJWT(testSecret, 15*time.Minute, 24*time.Hour)

		_, err := service.ValidateAccessToken(ctx, "not.a.token")

		assert.ErrorIs(t, err, services.ErrInvalidJWTToken)
	})

	t.Run("rejects a token signed with another secret", func(t *testing.T) {
		issuer := adapters.NewJWT("another-secret-entirely", 15*time.Minute, 24*time.Hour)
		verifier := adapters.NewJWT(testSecret, 15*time.Minute, 24*time.Hour)

		token, _, err := issuer.GenerateAccessToken(ctx, "user-1", "renter")
		require.NoError(t, err)

		_, err = verifier.ValidateAccessToken(ctx, token)

		assert.ErrorIs(t, err, services.ErrInvalidJWTToken)
	})

	t.Run("rejects an expired token", func(t *testing.T) {
		service := adapters.NewJWT(testSecret, -time.Minute, 24*time.Hour)

		token, _, err := service.GenerateAccessToken(ctx, "user-1", "renter")
		require.NoError(t, err)

		_, err = service.ValidateAccessToken(ctx, token)

		assert.ErrorIs(t, err, services.ErrExpiredJWTToken)
	})

	t.Run("rejects a refresh token used as an access token", func(t *testing.T) {
		service := adapters.NewJWT(testSecret, 15*time.Minute, 24*time.Hour)

		token, _, err := service.GenerateRefreshToken(ctx, "user-1")
		require.NoError(t, err)

		_, err = service.ValidateAccessToken(ctx, token)

		assert.ErrorIs(t, err, services.ErrInvalidJWTToken)
	})
}
