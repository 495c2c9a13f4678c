package postgres

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"rentx/internal/rentx/ports/repositories"
	"rentx/pkg/logger"
)

// WishlistRepository implements repositories.WishlistRepository. Membership
// rows go through ON CONFLICT DO NOTHING, so a duplicate add is a clean
// no-op rather than an error or a lost-update race.
type WishlistRepository struct {
	pool PgxPoolInterface
}

// NewWishlistRepository creates a new wishlist repository.
func NewWishlistRepository(pool PgxPoolInterface) repositories.WishlistRepository {
	return &WishlistRepository{pool: pool}
}

// Add inserts the membership row; false means it was already present.
func (r *WishlistRepository) Add(ctx context.Context, userID string, productID int64) (bool, error) {
	log := logger.Log(ctx).With(zap.String("repository", "wishlist"), zap.String("method", "Add"))

	result, err := r.pool.Exec(ctx,
		`INSERT INTO wishlist_items (user_id, product_id) VALUES ($1, $2) ON CONFLICT DO NOTHING`,
		userID, productID,
	)
	if err != nil {
		log.Error(ctx, "failed to add wishlist item", zap.Error(err))
		return false, fmt.Errorf("failed to add wishlist item: %w", err)
	}

	return result.RowsAffected() == 1, nil
}

// Remove deletes the membership row; false means it was absent.
func (r *WishlistRepository) Remove(ctx context.Context, userID string, productID int64) (bool, error) {
	log := logger.Log(ctx).With(zap.String("repository", "wishlist"), zap.String("method", "Remove"))

	result, err := r.pool.Exec(ctx,
		`DELETE FROM wishlist_items WHERE user_id = $1 AND product_id = $2`,
		userID, productID,
	)
	if err != nil {
		log.Error(ctx, "failed to remove wishlist item", zap.Error(err))
		return false, fmt.Errorf("failed to remove wishlist item: %w", err)
	}

	return result.RowsAffected() == 1, nil
}

// Contains checks membership.
func (r *WishlistRepository) Contains(ctx context.Context, userID string, productID int64) (bool, error) {
	log := logger.Log(ctx).With(zap.String("repository", "wishlist"), zap.String("method", "Contains"))

	var exists bool
	err := r.pool.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM wishlist_items WHERE user_id = $1 AND product_id = $2)`,
		userID, productID,
	).Scan(&exists)
	if err != nil {
		log.Error(ctx, "failed to check wishlist item", zap.Error(err))
		return false, fmt.Errorf("failed to check wishlist item: %w", err)
	}

	return exists, nil
}

// Count returns the wishlist size.
func (r *WishlistRepository) Count(ctx context.Context, userID string) (int, error) {
	log := logger.Log(ctx).With(zap.String("repository", "wishlist"), zap.String("method", "Count"))

	var count int
	err := r.pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM wishlist_items WHERE user_id = $1`,
		userID,
	).Scan(&count)
	if err != nil {
		log.Error(ctx, "failed to count wishlist items", zap.Error(err))
		return 0, fmt.Errorf("failed to count wishlist items: %w", err)
	}

	return count, nil
}

// List returns the saved product IDs in insertion order.
func (r *WishlistRepository) List(ctx context.Context, userID string) ([]int64, error) {
	log := logger.Log(ctx).With(zap.String("repository", "wishlist"), zap.String("method", "List"))

	rows, err := r.pool.Query(ctx,
		`SELECT product_id FROM wishlist_items WHERE user_id = $1 ORDER BY added_at, product_id`,
		userID,
	)
	if err != nil {
		log.Error(ctx, "failed to list wishlist items", zap.Error(err))
		return nil, fmt.Errorf("failed to list wishlist items: %w", err)
	}
	defer rows.Close()

	ids := make([]int64, 0)
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			log.Error(ctx, "failed to scan wishlist item", zap.Error(err))
			return nil, fmt.Errorf("failed to scan wishlist item: %w", err)
		}
		ids = append(ids, id)
	}

	if err := rows.Err(); err != nil {
		log.Error(ctx, "error iterating rows", zap.Error(err))
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}

	return ids, nil
}
