package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"rentx/internal/rentx/domain/services"
	"rentx/internal/rentx/ports/repositories"
	"rentx/pkg/logger"
)

// TokenRepository implements repositories.TokenRepository over Postgres.
type TokenRepository struct {
	pool PgxPoolInterface
}

// NewTokenRepository creates a new refresh token repository.
func NewTokenRepository(pool PgxPoolInterface) repositories.TokenRepository {
	return &TokenRepository{pool: pool}
}

// StoreRefreshToken persists a refresh token.
func (r *TokenRepository) StoreRefreshToken(ctx context.Context, token *services.RefreshToken) error {
	log := logger.Log(ctx).With(zap.String("repository", "token"), zap.String("method", "StoreRefreshToken"))

	query := `
        INSERT INTO refresh_tokens (user_id, token, expires_at, is_revoked)
        VALUES ($1, $2, $3, $4)
        RETURNING id, created_at
    `

	err := r.pool.QueryRow(ctx, query,
		token.UserID, token.Token, token.ExpiresAt, token.IsRevoked,
	).Scan(&token.ID, &token.CreatedAt)

	if err != nil {
		log.Error(ctx, "failed to store refresh token", zap.Error(err))
		return fmt.Errorf("failed to store refresh token: %w", err)
	}

	return nil
}

// FindByToken finds a refresh token by its value.
func (r *TokenRepository) FindByToken(ctx context.Context, tokenValue string) (*services.RefreshToken, error) {
	log := logger.Log(ctx).With(zap.String("repository", "token"), zap.String("method", "FindByToken"))

	query := `
        SELECT id, user_id, token, expires_at, created_at, is_revoked
        FROM refresh_tokens
        WHERE token = $1
    `

	var token services.RefreshToken
	err := r.pool.QueryRow(ctx, query, tokenValue).Scan(
		&token.ID,
		&token.UserID,
		&token.Token,
		&token.ExpiresAt,
		&token.CreatedAt,
		&token.IsRevoked,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			log.Debug(ctx, "refresh token not found")
			return nil, services.ErrInvalidRefreshToken
		}
		log.Error(ctx, "failed to find refresh token", zap.Error(err))
		return nil, fmt.Errorf("failed to find refresh token: %w", err)
	}

	return &token, nil
}

// RevokeToken marks a refresh token revoked.
func (r *TokenRepository) RevokeToken(ctx context.Context, tokenValue string) error {
	log := logger.Log(ctx).With(zap.String("repository", "token"), zap.String("method", "RevokeToken"))

	result, err := r.pool.Exec(ctx,
		`UPDATE refresh_tokens SET is_revoked = true WHERE token = $1`,
		tokenValue,
	)
	if err != nil {
		log.Error(ctx, "failed to revoke refresh token", zap.Error(err))
		return fmt.Errorf("failed to revoke refresh token: %w", err)
	}

	if result.RowsAffected() == 0 {
		log.Debug(ctx, "refresh token not found")
		return services.ErrInvalidRefreshToken
	}

	return nil
}

// RevokeAllUserTokens revokes every refresh token of the user.
func (r *TokenRepository) RevokeAllUserTokens(ctx context.Context, userID string) error {
	log := logger.Log(ctx).With(zap.String("repository", "token"), zap.String("method", "RevokeAllUserTokens"))

	_, err := r.pool.Exec(ctx,
		`UPDATE refresh_tokens SET is_revoked = true WHERE user_id = $1`,
		userID,
	)
	if err != nil {
		log.Error(ctx, "failed to revoke user tokens", zap.Error(err))
		return fmt.Errorf("failed to revoke user tokens: %w", err)
	}

	return nil
}

// CleanupExpiredTokens removes expired tokens.
func (r *TokenRepository) CleanupExpiredTokens(ctx context.Context) error {
	log := logger.Log(ctx).With(zap.String("repository", "token"), zap.String("method", "CleanupExpiredTokens"))

	_, err := r.pool.Exec(ctx, `DELETE FROM refresh_tokens WHERE expires_at < now()`)
	if err != nil {
		log.Error(ctx, "failed to cleanup expired tokens", zap.Error(err))
		return fmt.Errorf("failed to cleanup expired tokens: %w", err)
	}

	return nil
}
