package repositories

import (
	"context"

	"rentx/internal/rentx/domain/entities"
)

// ProductRepository defines product persistence operations. Identifiers are
// assigned by the store, and updates are compare-and-swap on the record
// version so concurrent writers cannot silently lose updates.
type ProductRepository interface {
	// Create persists a new listing and assigns its ID.
	Create(ctx context.Context, product *entities.Product) (*entities.Product, error)

	FindByID(ctx context.Context, id int64) (*entities.Product, error)

	FindBySellerID(ctx context.Context, sellerID string) ([]entities.Product, error)

	ReadAll(ctx context.Context) ([]entities.Product, error)

	// Update overwrites the record matching product.ID if its stored version
	// still equals product.Version; otherwise entities.ErrVersionConflict.
	Update(ctx context.Context, product *entities.Product) (*entities.Product, error)
}
