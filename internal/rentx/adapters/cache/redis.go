// Package cache contains the Redis cache and wishlist event bus.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"rentx/internal/rentx/config"
	"rentx/internal/rentx/domain/entities"
	"rentx/internal/rentx/ports/cache"
	"rentx/pkg/logger"
)

// Log messages.
const (
	LogMethodGet       = "get"
	LogMethodSet       = "set"
	LogMethodDelete    = "delete"
	LogMethodPublish   = "publish"
	LogMethodSubscribe = "subscribe"

	ErrorFailedToGet       = "failed to get value from redis"
	ErrorFailedToSet       = "failed to set value in redis"
	ErrorFailedToDelete    = "failed to delete value from redis"
	ErrorFailedToClose     = "failed to close redis connection"
	ErrorFailedToPublish   = "failed to publish wishlist event"
	ErrorFailedToSubscribe = "failed to subscribe to wishlist events"
	ErrorFailedToDecode    = "failed to decode wishlist event"
)

// WishlistChannel is the pub/sub channel carrying wishlist change events.
const WishlistChannel = "rentx:wishlist:events"

// RedisCache implements the Cache and EventBus interfaces with Redis.
type RedisCache struct {
	client     *redis.Client
	defaultTTL time.Duration
}

// NewRedisCache creates a new Redis cache.
func NewRedisCache(ctx context.Context, cfg *config.RedisConfig) (*RedisCache, error) {
	client := redis.NewClient(&redis.Options{
		Addr:            cfg.GetAddress(),
		Password:        cfg.Password,
		DB:              cfg.DB,
		DialTimeout:     cfg.ConnectTimeout,
		ReadTimeout:     cfg.ReadTimeout,
		WriteTimeout:    cfg.WriteTimeout,
		PoolSize:        cfg.PoolSize,
		MinIdleConns:    cfg.MinIdle,
		ConnMaxIdleTime: cfg.IdleTimeout,
	})

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	return &RedisCache{
		client:     client,
		defaultTTL: cfg.DefaultTTL,
	}, nil
}

var _ cache.Cache = (*RedisCache)(nil)
var _ cache.EventBus = (*RedisCache)(nil)

// Get returns the value for the key, or an empty string when absent.
func (c *RedisCache) Get(ctx context.Context, key string) (string, error) {
	log := logger.Log(ctx).With(zap.String("method", LogMethodGet), zap.String("key", key))

	value, err := c.client.Get(ctx, key).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", nil
		}
		log.Error(ctx, ErrorFailedToGet, zap.Error(err))
		return "", fmt.Errorf("%s: %w", ErrorFailedToGet, err)
	}

	return value, nil
}

// Set stores the value with the given TTL; zero means the default TTL.
func (c *RedisCache) Set(ctx context.Context, key string, value string, ttl time.Duration) error {
	log := logger.Log(ctx).With(zap.String("method", LogMethodSet), zap.String("key", key))

	if ttl == 0 {
		ttl = c.defaultTTL
	}

	if err := c.client.Set(ctx, key, value, ttl).Err(); err != nil {
		log.Error(ctx, ErrorFailedToSet, zap.Error(err))
		return fmt.Errorf("%s: %w", ErrorFailedToSet, err)
	}

	return nil
}

// Delete removes the key.
func (c *RedisCache) Delete(ctx context.Context, key string) error {
	log := logger.Log(ctx).With(zap.String("method", LogMethodDelete), zap.String("key", key))

	if err := c.client.Del(ctx, key).Err(); err != nil {
		log.Error(ctx, ErrorFailedToDelete, zap.Error(err))
		return fmt.Errorf("%s: %w", ErrorFailedToDelete, err)
	}

	return nil
}

// Publish broadcasts a wishlist event to every subscribed instance.
func (c *RedisCache) Publish(ctx context.Context, event entities.WishlistEvent) error {
	log := logger.Log(ctx).With(zap.String("method", LogMethodPublish))

	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("%s: %w", ErrorFailedToPublish, err)
	}

	if err := c.client.Publish(ctx, WishlistChannel, payload).Err(); err != nil {
		log.Error(ctx, ErrorFailedToPublish, zap.Error(err))
		return fmt.Errorf("%s: %w", ErrorFailedToPublish, err)
	}

	return nil
}

// Subscribe delivers wishlist events until ctx is cancelled. Undecodable
// payloads are logged and skipped.
func (c *RedisCache) Subscribe(ctx context.Context) (<-chan entities.WishlistEvent, error) {
	log := logger.Log(ctx).With(zap.String("method", LogMethodSubscribe))

	sub := c.client.Subscribe(ctx, WishlistChannel)
	if _, err := sub.Receive(ctx); err != nil {
		log.Error(ctx, ErrorFailedToSubscribe, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", ErrorFailedToSubscribe, err)
	}

	events := make(chan entities.WishlistEvent)
	go func() {
		defer close(events)
		defer func() { _ = sub.Close() }()

		ch := sub.Channel()
		for {
			select {
			case <-ctx.Done():
				return
			case msg, ok := <-ch:
				if !ok {
					return
				}
				var event entities.WishlistEvent
				if err := json.Unmarshal([]byte(msg.Payload), &event); err != nil {
					log.Warn(ctx, ErrorFailedToDecode, zap.Error(err))
					continue
				}
				select {
				case events <- event:
				case <-ctx.Done():
					return
				}
			}
		}
	}()

	return events, nil
}

// Close closes the Redis connection.
func (c *RedisCache) Close() error {
	if err := c.client.Close(); err != nil {
		return fmt.Errorf("%s: %w", ErrorFailedToClose, err)
	}
	return nil
}
