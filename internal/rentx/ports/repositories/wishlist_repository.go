package repositories

import "context"

// WishlistRepository defines per-user wishlist persistence. Membership is
// keyed by product ID only; Add is atomic and idempotent at the store level.
type WishlistRepository interface {
	// Add inserts the membership row, reporting false without error when the
	// product was already present.
	Add(ctx context.Context, userID string, productID int64) (bool, error)

	// Remove deletes the membership row, reporting false when absent.
	Remove(ctx context.Context, userID string, productID int64) (bool, error)

	Contains(ctx context.Context, userID string, productID int64) (bool, error)

	Count(ctx context.Context, userID string) (int, error)

	// List returns the user's saved product IDs in insertion order.
	List(ctx context.Context, userID string) ([]int64, error)
}
