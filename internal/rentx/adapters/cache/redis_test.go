package cache_test

import (
	"context"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rentx/internal/rentx/adapters/cache"
	"rentx/internal/rentx/config"
	"rentx/internal/rentx/domain/entities"
	"rentx/pkg/logger"
)

func mockRedisServer(t *testing.T) *miniredis.Miniredis {
	t.Helper()

	s, err := miniredis.Run()
	require.NoError(t, err)

	t.Cleanup(func() {
		s.Close()
	})

	return s
}

func redisConfig(t *testing.T, addr string) *config.RedisConfig {
	t.Helper()

	host, portStr, ok := strings.Cut(addr, ":")
	require.True(t, ok)

	port, err := strconv.Atoi(portStr)
	require.NoError(t, err)

	return &config.RedisConfig{
		Host:           host,
		Port:           port,
		Password:       "",
		DB:             0,
		ConnectTimeout: 5 * time.Second,
		ReadTimeout:    3 * time.Second,
		WriteTimeout:   3 * time.Second,
		PoolSize:       10,
		MinIdle:        2,
		IdleTimeout:    5 * time.Minute,
		DefaultTTL:     15 * time.Minute,
	}
}

func testContext(t *testing.T) context.Context {
	t.Helper()

	log, err := logger.NewLogger(logger.Development, "debug")
	require.NoError(t, err)

	return logger.NewContext(context.Background(), log)
}

func newTestCache(t *testing.T) (*miniredis.Miniredis, *cache.RedisCache, context.Context) {
	t.Helper()

	s := mockRedisServer(t)
	ctx := testContext(t)

	redisCache, err := cache.NewRedisCache(ctx, redisConfig(t, s.Addr()))
	require.NoError(t, err)

	t.Cleanup(func() {
		_ = redisCache.Close()
	})

	return s, redisCache, ctx
}

func TestNewRedisCache(t *testing.T) {
	t.Run("connects to a reachable server", func(t *testing.T) {
		s := mockRedisServer(t)
		ctx := testContext(t)

		redisCache, err := cache.NewRedisCache(ctx, redisConfig(t, s.Addr()))

		require.NoError(t, err)
		require.NotNil(t, redisCache)
		require.NoError(t, redisCache.Close())
	})

	t.Run("fails when the server is down", func(t *testing.T) {
		s := mockRedisServer(t)
		cfg := redisConfig(t, s.Addr())
		s.Close()

		redisCache, err := cache.NewRedisCache(testContext(t), cfg)

		require.Error(t, err)
		assert.Nil(t, redisCache)
	})
}

func TestRedisCacheGetSet(t *testing.T) {
	t.Run("round trip", func(t *testing.T) {
		_, redisCache, ctx := newTestCache(t)

		err := redisCache.Set(ctx, "rentx:test:key", `{"hello":"world"}`, time.Minute)
		require.NoError(t, err)

		value, err := redisCache.Get(ctx, "rentx:test:key")
		require.NoError(t, err)
		assert.Equal(t, `{"hello":"world"}`, value)
	})

	t.Run("absent key yields empty value without error", func(t *testing.T) {
		_, redisCache, ctx := newTestCache(t)

		value, err := redisCache.Get(ctx, "rentx:test:missing")

		require.NoError(t, err)
		assert.Empty(t, value)
	})

	t.Run("zero ttl falls back to the configured default", func(t *testing.T) {
		s, redisCache, ctx := newTestCache(t)

		err := redisCache.Set(ctx, "rentx:test:default-ttl", "v", 0)
		require.NoError(t, err)

		assert.Equal(t, 15*time.Minute, s.TTL("rentx:test:default-ttl"))
	})

	t.Run("entries expire", func(t *testing.T) {
		s, redisCache, ctx := newTestCache(t)

		err := redisCache.Set(ctx, "rentx:test:expiring", "v", time.Second)
		require.NoError(t, err)

		s.FastForward(2 * time.Second)

		value, err := redisCache.Get(ctx, "rentx:test:expiring")
		require.NoError(t, err)
		assert.Empty(t, value)
	})
}

func TestRedisCacheDelete(t *testing.T) {
	t.Run("removes an existing key", func(t *testing.T) {
		_, redisCache, ctx := newTestCache(t)

		require.NoError(t, redisCache.Set(ctx, "rentx:test:key", "v", time.Minute))
		require.NoError(t, redisCache.Delete(ctx, "rentx:test:key"))

		value, err := redisCache.Get(ctx, "rentx:test:key")
		require.NoError(t, err)
		assert.Empty(t, value)
	})

	t.Run("deleting an absent key is a no-op", func(t *testing.T) {
		_, redisCache, ctx := newTestCache(t)

		assert.NoError(t, redisCache.Delete(ctx, "rentx:test:missing"))
	})
}

func TestRedisCachePubSub(t *testing.T) {
	t.Run("published events reach subscribers", func(t *testing.T) {
		_, redisCache, ctx := newTestCache(t)

		subCtx, cancel := context.WithCancel(ctx)
		defer cancel()

		events, err := redisCache.Subscribe(subCtx)
		require.NoError(t, err)

		sent := entities.WishlistEvent{
			Origin:    "instance-a",
			UserID:    "user-1",
			ProductID: 42,
			Action:    entities.WishlistAdded,
			Count:     3,
		}
		require.NoError(t, redisCache.Publish(ctx, sent))

		select {
		case got := <-events:
			assert.Equal(t, sent, got)
		case <-time.After(2 * time.Second):
			t.Fatal("no event received")
		}
	})

	t.Run("cancelling the context closes the event channel", func(t *testing.T) {
		_, redisCache, ctx := newTestCache(t)

		subCtx, cancel := context.WithCancel(ctx)

		events, err := redisCache.Subscribe(subCtx)
		require.NoError(t, err)

		cancel()

		select {
		case _, open := <-events:
			assert.False(t, open)
		case <-time.After(2 * time.Second):
			t.Fatal("event channel was not closed")
		}
	})
}
