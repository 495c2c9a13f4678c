package app

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math/rand"
	"sync"

	"go.uber.org/zap"

	"rentx/internal/rentx/domain/catalog"
	"rentx/internal/rentx/domain/entities"
	"rentx/internal/rentx/ports/api"
	portcache "rentx/internal/rentx/ports/cache"
	"rentx/internal/rentx/ports/repositories"
	"rentx/pkg/logger"
)

const (
	methodBrowse          = "Browse"
	methodGetProduct      = "Get"
	methodListBySeller    = "ListBySeller"
	methodCreateListing   = "CreateListing"
	methodUpdateListing   = "UpdateListing"
	methodSetAvailability = "SetAvailability"

	msgBrowsingCatalog      = "browsing catalog"
	msgCatalogCacheHit      = "catalog served from cache"
	msgCatalogCacheMiss     = "catalog cache miss, reading store"
	msgProductNotFound      = "product not found"
	msgListingValidation    = "listing failed validation"
	msgListingCreated       = "listing created"
	msgListingUpdated       = "listing updated"
	msgAvailabilityUpdated  = "availability updated"
	msgVersionConflictRetry = "version conflict, retrying with fresh record"

	msgErrReadCatalog      = "failed to read catalog"
	msgErrFindProduct      = "failed to find product"
	msgErrFindSeller       = "failed to find seller"
	msgErrCreateListing    = "failed to create listing"
	msgErrUpdateListing    = "failed to update listing"
	msgErrCacheRead        = "catalog cache read failed"
	msgErrCacheWrite       = "catalog cache write failed"
	msgErrCacheInvalidate  = "catalog cache invalidation failed"
	msgErrDecodeCachedFeed = "failed to decode cached catalog"

	errCtxReadingCatalog    = "reading catalog"
	errCtxFindingProduct    = "finding product"
	errCtxFindingSeller     = "finding seller"
	errCtxValidatingListing = "validating listing"
	errCtxCreatingListing   = "creating listing"
	errCtxUpdatingListing   = "updating listing"
	errCtxSettingAvail      = "setting availability"

	catalogCacheKey = "rentx:catalog:all"

	// Concurrent updates retry against the fresh record a bounded number
	// of times before surfacing the conflict.
	maxUpdateAttempts = 3
)

// CatalogUseCaseImpl implements the CatalogUseCase interface.
type CatalogUseCaseImpl struct {
	productRepo repositories.ProductRepository
	userRepo    repositories.UserRepository
	cache       portcache.Cache

	mu  sync.Mutex
	rng *rand.Rand
}

// NewCatalogUseCase creates a new catalog use case. A nil rng falls back to
// a time-seeded source; tests inject a fixed seed.
func NewCatalogUseCase(productRepo repositories.ProductRepository, userRepo repositories.UserRepository, c portcache.Cache, rng *rand.Rand) api.CatalogUseCase {
	return &CatalogUseCaseImpl{
		productRepo: productRepo,
		userRepo:    userRepo,
		cache:       c,
		rng:         rng,
	}
}

// Browse returns the catalog filtered by the query. With an empty query it
// returns a fresh random sample, re-drawn on every call.
func (c *CatalogUseCaseImpl) Browse(ctx context.Context, query catalog.Query) ([]entities.Product, error) {
	log := logger.Log(ctx).With(
		zap.String("method", methodBrowse),
		zap.String("category", query.Category),
		zap.String("search", query.Search),
	)
	log.Debug(ctx, msgBrowsingCatalog)

	products, err := c.readAll(ctx, log)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", errCtxReadingCatalog, err)
	}

	c.mu.Lock()
	filtered := catalog.Filter(products, query, c.rng)
	c.mu.Unlock()

	return filtered, nil
}

// Get returns a single product by ID.
func (c *CatalogUseCaseImpl) Get(ctx context.Context, id int64) (*entities.Product, error) {
	log := logger.Log(ctx).With(zap.String("method", methodGetProduct), zap.Int64("productID", id))

	product, err := c.productRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, entities.ErrProductNotFound) {
			log.Debug(ctx, msgProductNotFound)
			return nil, fmt.Errorf("%s: %w", errCtxFindingProduct, err)
		}
		log.Error(ctx, msgErrFindProduct, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", errCtxFindingProduct, err)
	}

	return product, nil
}

// ListBySeller returns every listing created by the seller.
func (c *CatalogUseCaseImpl) ListBySeller(ctx context.Context, sellerID string) ([]entities.Product, error) {
	log := logger.Log(ctx).With(zap.String("method", methodListBySeller), zap.String("sellerID", sellerID))

	products, err := c.productRepo.FindBySellerID(ctx, sellerID)
	if err != nil {
		log.Error(ctx, msgErrReadCatalog, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", errCtxReadingCatalog, err)
	}

	return products, nil
}

// CreateListing validates and persists a new product on behalf of the seller.
func (c *CatalogUseCaseImpl) CreateListing(ctx context.Context, sellerID string, product *entities.Product) (*entities.Product, error) {
	log := logger.Log(ctx).With(zap.String("method", methodCreateListing), zap.String("sellerID", sellerID))

	seller, err := c.userRepo.FindByID(ctx, sellerID)
	if err != nil {
		log.Error(ctx, msgErrFindSeller, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", errCtxFindingSeller, err)
	}

	product.SellerID = seller.ID
	product.Seller = seller.Username
	product.Category = catalog.Canonical(product.Category)
	product.ApplyDefaults()

	if err := product.Validate(); err != nil {
		log.Debug(ctx, msgListingValidation, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", errCtxValidatingListing, err)
	}

	created, err := c.productRepo.Create(ctx, product)
	if err != nil {
		log.Error(ctx, msgErrCreateListing, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", errCtxCreatingListing, err)
	}

	c.invalidateCatalog(ctx, log)

	log.Info(ctx, msgListingCreated, zap.Int64("productID", created.ID))
	return created, nil
}

// UpdateListing merges the patch into the stored record: patched fields
// overwrite, untouched fields persist. Conflicting concurrent updates are
// retried against the fresh record.
func (c *CatalogUseCaseImpl) UpdateListing(ctx context.Context, id int64, patch *entities.ProductPatch) (*entities.Product, error) {
	log := logger.Log(ctx).With(zap.String("method", methodUpdateListing), zap.Int64("productID", id))

	updated, err := c.withRetry(ctx, id, log, func(product *entities.Product) error {
		product.Apply(patch)
		product.Category = catalog.Canonical(product.Category)
		if err := product.Validate(); err != nil {
			log.Debug(ctx, msgListingValidation, zap.Error(err))
			return fmt.Errorf("%s: %w", errCtxValidatingListing, err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	c.invalidateCatalog(ctx, log)

	log.Info(ctx, msgListingUpdated)
	return updated, nil
}

// SetAvailability transitions the product between Available and Booked.
func (c *CatalogUseCaseImpl) SetAvailability(ctx context.Context, id int64, availability entities.Availability) (*entities.Product, error) {
	log := logger.Log(ctx).With(
		zap.String("method", methodSetAvailability),
		zap.Int64("productID", id),
		zap.String("availability", string(availability)),
	)

	if !availability.Valid() {
		return nil, fmt.Errorf("%s: %w", errCtxSettingAvail, entities.ErrInvalidAvailability)
	}

	updated, err := c.withRetry(ctx, id, log, func(product *entities.Product) error {
		product.Availability = availability
		return nil
	})
	if err != nil {
		return nil, err
	}

	c.invalidateCatalog(ctx, log)

	log.Info(ctx, msgAvailabilityUpdated)
	return updated, nil
}

// withRetry loads the record, applies mutate and writes it back with a
// version check, retrying on concurrent modification.
func (c *CatalogUseCaseImpl) withRetry(ctx context.Context, id int64, log *logger.Logger, mutate func(*entities.Product) error) (*entities.Product, error) {
	for attempt := 0; attempt < maxUpdateAttempts; attempt++ {
		product, err := c.productRepo.FindByID(ctx, id)
		if err != nil {
			if errors.Is(err, entities.ErrProductNotFound) {
				log.Debug(ctx, msgProductNotFound)
			} else {
				log.Error(ctx, msgErrFindProduct, zap.Error(err))
			}
			return nil, fmt.Errorf("%s: %w", errCtxFindingProduct, err)
		}

		if err := mutate(product); err != nil {
			return nil, err
		}

		updated, err := c.productRepo.Update(ctx, product)
		if err == nil {
			return updated, nil
		}
		if errors.Is(err, entities.ErrVersionConflict) {
			log.Debug(ctx, msgVersionConflictRetry, zap.Int("attempt", attempt+1))
			continue
		}
		log.Error(ctx, msgErrUpdateListing, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", errCtxUpdatingListing, err)
	}

	return nil, fmt.Errorf("%s: %w", errCtxUpdatingListing, entities.ErrVersionConflict)
}

// readAll serves the full catalog from the cache when possible, falling
// back to the store and repopulating the cache on a miss.
func (c *CatalogUseCaseImpl) readAll(ctx context.Context, log *logger.Logger) ([]entities.Product, error) {
	if c.cache != nil {
		cached, err := c.cache.Get(ctx, catalogCacheKey)
		if err != nil {
			log.Warn(ctx, msgErrCacheRead, zap.Error(err))
		} else if cached != "" {
			var products []entities.Product
			if err := json.Unmarshal([]byte(cached), &products); err != nil {
				log.Warn(ctx, msgErrDecodeCachedFeed, zap.Error(err))
			} else {
				log.Debug(ctx, msgCatalogCacheHit, zap.Int("count", len(products)))
				return products, nil
			}
		}
	}

	log.Debug(ctx, msgCatalogCacheMiss)

	products, err := c.productRepo.ReadAll(ctx)
	if err != nil {
		log.Error(ctx, msgErrReadCatalog, zap.Error(err))
		return nil, err
	}

	if c.cache != nil {
		if encoded, err := json.Marshal(products); err == nil {
			if err := c.cache.Set(ctx, catalogCacheKey, string(encoded), 0); err != nil {
				log.Warn(ctx, msgErrCacheWrite, zap.Error(err))
			}
		}
	}

	return products, nil
}

func (c *CatalogUseCaseImpl) invalidateCatalog(ctx context.Context, log *logger.Logger) {
	if c.cache == nil {
		return
	}
	if err := c.cache.Delete(ctx, catalogCacheKey); err != nil {
		log.Warn(ctx, msgErrCacheInvalidate, zap.Error(err))
	}
}
