// Package api defines the use case interfaces exposed to the HTTP layer.
package api

import (
	"context"

	"rentx/internal/rentx/domain/catalog"
	"rentx/internal/rentx/domain/entities"
	"rentx/internal/rentx/domain/services"
)

// AuthUseCase defines authentication operations.
type AuthUseCase interface {
	Register(ctx context.Context, email, username, password string) (*services.TokenPair, *entities.User, error)

	// Login accepts a username or an email. Failures are indistinguishable
	// between unknown user and wrong password.
	Login(ctx context.Context, login, password string) (*services.TokenPair, *entities.User, error)

	RefreshTokens(ctx context.Context, refreshToken string) (*services.TokenPair, error)

	Logout(ctx context.Context, refreshToken string) error
}

// CatalogUseCase defines product catalog operations.
type CatalogUseCase interface {
	// Browse returns the filtered catalog; with no filters it returns a
	// fresh random sample.
	Browse(ctx context.Context, query catalog.Query) ([]entities.Product, error)

	Get(ctx context.Context, id int64) (*entities.Product, error)

	ListBySeller(ctx context.Context, sellerID string) ([]entities.Product, error)

	CreateListing(ctx context.Context, sellerID string, product *entities.Product) (*entities.Product, error)

	// UpdateListing performs a whole-record merge: patched fields overwrite,
	// the rest persist.
	UpdateListing(ctx context.Context, id int64, patch *entities.ProductPatch) (*entities.Product, error)

	SetAvailability(ctx context.Context, id int64, availability entities.Availability) (*entities.Product, error)
}

// WishlistUseCase defines the wishlist synchronizer operations.
type WishlistUseCase interface {
	Add(ctx context.Context, userID string, productID int64) (bool, error)

	Remove(ctx context.Context, userID string, productID int64) (bool, error)

	Contains(ctx context.Context, userID string, productID int64) (bool, error)

	Count(ctx context.Context, userID string) (int, error)

	// Products returns the full records for the user's saved product IDs.
	Products(ctx context.Context, userID string) ([]entities.Product, error)

	// Subscribe registers a display-update observer; the returned function
	// unsubscribes it.
	Subscribe(fn func(entities.WishlistEvent)) func()
}

// ProfileUseCase defines profile operations.
type ProfileUseCase interface {
	// Get returns the user and the freshly recomputed completion percentage.
	Get(ctx context.Context, userID string) (*entities.User, int, error)

	Update(ctx context.Context, userID string, patch *entities.ProfilePatch) (*entities.User, int, error)
}
