package app

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"rentx/internal/rentx/domain/entities"
	"rentx/internal/rentx/ports/api"
	portcache "rentx/internal/rentx/ports/cache"
	"rentx/internal/rentx/ports/repositories"
	"rentx/pkg/logger"
)

const (
	methodWishlistAdd      = "Add"
	methodWishlistRemove   = "Remove"
	methodWishlistContains = "Contains"
	methodWishlistCount    = "Count"
	methodWishlistProducts = "Products"
	methodExternalSync     = "RunExternalSync"

	msgAddingToWishlist     = "adding product to wishlist"
	msgAlreadyInWishlist    = "product already in wishlist"
	msgAddedToWishlist      = "product added to wishlist"
	msgRemovingFromWishlist = "removing product from wishlist"
	msgNotInWishlist        = "product not in wishlist"
	msgRemovedFromWishlist  = "product removed from wishlist"
	msgExternalSyncStarted  = "external wishlist sync started"
	msgExternalSyncStopped  = "external wishlist sync stopped"
	msgExternalEvent        = "external wishlist change received"

	msgErrVerifyUser       = "failed to verify user"
	msgErrVerifyProduct    = "failed to verify product"
	msgErrWishlistWrite    = "wishlist write failed"
	msgErrWishlistRead     = "wishlist read failed"
	msgErrPublishEvent     = "failed to publish wishlist event"
	msgErrCountAfterChange = "failed to count wishlist after change"
	msgErrSubscribeBus     = "failed to subscribe to wishlist events"
	msgErrResolveProduct   = "failed to resolve wishlist product"

	errCtxVerifyingUser     = "verifying user"
	errCtxVerifyingProduct  = "verifying product"
	errCtxAddingProduct     = "adding product"
	errCtxRemovingProduct   = "removing product"
	errCtxCheckingWishlist  = "checking wishlist"
	errCtxCountingWishlist  = "counting wishlist"
	errCtxListingWishlist   = "listing wishlist"
	errCtxSubscribingEvents = "subscribing to wishlist events"
)

// WishlistUseCaseImpl implements the WishlistUseCase interface. Observers
// registered through Subscribe are notified synchronously after every
// successful state change, including changes made by other instances and
// delivered over the event bus.
type WishlistUseCaseImpl struct {
	wishlistRepo repositories.WishlistRepository
	userRepo     repositories.UserRepository
	productRepo  repositories.ProductRepository
	bus          portcache.EventBus

	// instanceID distinguishes this instance's own published events from
	// foreign ones when they come back over the bus.
	instanceID string

	mu        sync.RWMutex
	nextSubID int
	observers map[int]func(entities.WishlistEvent)
}

// NewWishlistUseCase creates a new wishlist use case. The bus may be nil,
// in which case events stay local to this instance.
func NewWishlistUseCase(
	wishlistRepo repositories.WishlistRepository,
	userRepo repositories.UserRepository,
	productRepo repositories.ProductRepository,
	bus portcache.EventBus,
) *WishlistUseCaseImpl {
	return &WishlistUseCaseImpl{
		wishlistRepo: wishlistRepo,
		userRepo:     userRepo,
		productRepo:  productRepo,
		bus:          bus,
		instanceID:   logger.GenerateRequestID(),
		observers:    make(map[int]func(entities.WishlistEvent)),
	}
}

var _ api.WishlistUseCase = (*WishlistUseCaseImpl)(nil)

// Add saves the product to the user's wishlist. Adding a product that is
// already saved keeps the single entry and reports changed=false.
func (w *WishlistUseCaseImpl) Add(ctx context.Context, userID string, productID int64) (bool, error) {
	log := logger.Log(ctx).With(
		zap.String("method", methodWishlistAdd),
		zap.String("userID", userID),
		zap.Int64("productID", productID),
	)
	log.Debug(ctx, msgAddingToWishlist)

	if err := w.verifyUser(ctx, userID); err != nil {
		log.Debug(ctx, msgErrVerifyUser, zap.Error(err))
		return false, err
	}
	if _, err := w.productRepo.FindByID(ctx, productID); err != nil {
		log.Debug(ctx, msgErrVerifyProduct, zap.Error(err))
		return false, fmt.Errorf("%s: %w", errCtxVerifyingProduct, err)
	}

	changed, err := w.wishlistRepo.Add(ctx, userID, productID)
	if err != nil {
		log.Error(ctx, msgErrWishlistWrite, zap.Error(err))
		return false, fmt.Errorf("%s: %w", errCtxAddingProduct, err)
	}
	if !changed {
		log.Debug(ctx, msgAlreadyInWishlist)
		return false, nil
	}

	log.Info(ctx, msgAddedToWishlist)
	w.broadcast(ctx, log, userID, productID, entities.WishlistAdded)
	return true, nil
}

// Remove deletes the product from the user's wishlist. Removing an absent
// product is a no-op and reports changed=false.
func (w *WishlistUseCaseImpl) Remove(ctx context.Context, userID string, productID int64) (bool, error) {
	log := logger.Log(ctx).With(
		zap.String("method", methodWishlistRemove),
		zap.String("userID", userID),
		zap.Int64("productID", productID),
	)
	log.Debug(ctx, msgRemovingFromWishlist)

	if err := w.verifyUser(ctx, userID); err != nil {
		log.Debug(ctx, msgErrVerifyUser, zap.Error(err))
		return false, err
	}

	changed, err := w.wishlistRepo.Remove(ctx, userID, productID)
	if err != nil {
		log.Error(ctx, msgErrWishlistWrite, zap.Error(err))
		return false, fmt.Errorf("%s: %w", errCtxRemovingProduct, err)
	}
	if !changed {
		log.Debug(ctx, msgNotInWishlist)
		return false, nil
	}

	log.Info(ctx, msgRemovedFromWishlist)
	w.broadcast(ctx, log, userID, productID, entities.WishlistRemoved)
	return true, nil
}

// Contains reports whether the product is in the user's wishlist.
func (w *WishlistUseCaseImpl) Contains(ctx context.Context, userID string, productID int64) (bool, error) {
	log := logger.Log(ctx).With(zap.String("method", methodWishlistContains), zap.String("userID", userID))

	found, err := w.wishlistRepo.Contains(ctx, userID, productID)
	if err != nil {
		log.Error(ctx, msgErrWishlistRead, zap.Error(err))
		return false, fmt.Errorf("%s: %w", errCtxCheckingWishlist, err)
	}
	return found, nil
}

// Count returns the number of saved products.
func (w *WishlistUseCaseImpl) Count(ctx context.Context, userID string) (int, error) {
	log := logger.Log(ctx).With(zap.String("method", methodWishlistCount), zap.String("userID", userID))

	count, err := w.wishlistRepo.Count(ctx, userID)
	if err != nil {
		log.Error(ctx, msgErrWishlistRead, zap.Error(err))
		return 0, fmt.Errorf("%s: %w", errCtxCountingWishlist, err)
	}
	return count, nil
}

// Products resolves the user's saved product IDs into full records. Saved
// IDs whose product has since been deleted are skipped, not errors.
func (w *WishlistUseCaseImpl) Products(ctx context.Context, userID string) ([]entities.Product, error) {
	log := logger.Log(ctx).With(zap.String("method", methodWishlistProducts), zap.String("userID", userID))

	ids, err := w.wishlistRepo.List(ctx, userID)
	if err != nil {
		log.Error(ctx, msgErrWishlistRead, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", errCtxListingWishlist, err)
	}

	products := make([]entities.Product, 0, len(ids))
	for _, id := range ids {
		product, err := w.productRepo.FindByID(ctx, id)
		if err != nil {
			if errors.Is(err, entities.ErrProductNotFound) {
				continue
			}
			log.Error(ctx, msgErrResolveProduct, zap.Error(err), zap.Int64("productID", id))
			return nil, fmt.Errorf("%s: %w", errCtxListingWishlist, err)
		}
		products = append(products, *product)
	}

	return products, nil
}

// Subscribe registers an observer called synchronously after every wishlist
// change. The returned function unsubscribes it.
func (w *WishlistUseCaseImpl) Subscribe(fn func(entities.WishlistEvent)) func() {
	w.mu.Lock()
	id := w.nextSubID
	w.nextSubID++
	w.observers[id] = fn
	w.mu.Unlock()

	return func() {
		w.mu.Lock()
		delete(w.observers, id)
		w.mu.Unlock()
	}
}

// RunExternalSync consumes wishlist events published by other instances and
// re-dispatches them to local observers. It blocks until ctx is cancelled.
func (w *WishlistUseCaseImpl) RunExternalSync(ctx context.Context) error {
	log := logger.Log(ctx).With(zap.String("method", methodExternalSync))

	if w.bus == nil {
		return nil
	}

	events, err := w.bus.Subscribe(ctx)
	if err != nil {
		log.Error(ctx, msgErrSubscribeBus, zap.Error(err))
		return fmt.Errorf("%s: %w", errCtxSubscribingEvents, err)
	}

	log.Info(ctx, msgExternalSyncStarted)

	for {
		select {
		case <-ctx.Done():
			log.Info(ctx, msgExternalSyncStopped)
			return nil
		case event, ok := <-events:
			if !ok {
				log.Info(ctx, msgExternalSyncStopped)
				return nil
			}
			if event.Origin == w.instanceID {
				continue
			}
			log.Debug(ctx, msgExternalEvent,
				zap.String("userID", event.UserID),
				zap.Int64("productID", event.ProductID),
				zap.String("action", string(event.Action)),
			)
			w.notify(event)
		}
	}
}

func (w *WishlistUseCaseImpl) verifyUser(ctx context.Context, userID string) error {
	if userID == "" {
		return fmt.Errorf("%s: %w", errCtxVerifyingUser, entities.ErrNotAuthenticated)
	}
	if _, err := w.userRepo.FindByID(ctx, userID); err != nil {
		if errors.Is(err, entities.ErrUserNotFound) {
			return fmt.Errorf("%s: %w", errCtxVerifyingUser, entities.ErrNotAuthenticated)
		}
		return fmt.Errorf("%s: %w", errCtxVerifyingUser, err)
	}
	return nil
}

// broadcast notifies local observers and publishes the change for other
// instances. Publish failures are logged, not surfaced: the state change
// already committed.
func (w *WishlistUseCaseImpl) broadcast(ctx context.Context, log *logger.Logger, userID string, productID int64, action entities.WishlistAction) {
	count, err := w.wishlistRepo.Count(ctx, userID)
	if err != nil {
		log.Warn(ctx, msgErrCountAfterChange, zap.Error(err))
		count = 0
	}

	event := entities.WishlistEvent{
		Origin:    w.instanceID,
		UserID:    userID,
		ProductID: productID,
		Action:    action,
		Count:     count,
	}

	w.notify(event)

	if w.bus != nil {
		if err := w.bus.Publish(ctx, event); err != nil {
			log.Warn(ctx, msgErrPublishEvent, zap.Error(err))
		}
	}
}

func (w *WishlistUseCaseImpl) notify(event entities.WishlistEvent) {
	w.mu.RLock()
	observers := make([]func(entities.WishlistEvent), 0, len(w.observers))
	for _, fn := range w.observers {
		observers = append(observers, fn)
	}
	w.mu.RUnlock()

	for _, fn := range observers {
		fn(event)
	}
}
