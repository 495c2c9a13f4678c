// Package cache defines the caching and event bus interfaces.
package cache

import (
	"context"
	"time"

	"rentx/internal/rentx/domain/entities"
)

// Cache defines string key/value caching with TTL.
type Cache interface {
	Get(ctx context.Context, key string) (string, error)

	Set(ctx context.Context, key string, value string, ttl time.Duration) error

	Delete(ctx context.Context, key string) error

	Close() error
}

// EventBus propagates wishlist change events between service instances so
// every instance can re-synchronize its observers.
type EventBus interface {
	Publish(ctx context.Context, event entities.WishlistEvent) error

	// Subscribe delivers events published by any instance until ctx is
	// cancelled. The channel is closed on cancellation.
	Subscribe(ctx context.Context) (<-chan entities.WishlistEvent, error)
}
