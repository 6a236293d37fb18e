package cache

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Shehap111/big-store-server/internal/domain"
)

func setupTestRedis(t *testing.T) (*RedisCache, *miniredis.Miniredis) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	return NewRedisCache(client), mr
}

func testCart(id string) *domain.CartSnapshot {
	return &domain.CartSnapshot{
		ID:     id,
		UserID: "user123",
		Status: domain.CartStatusOpen,
		Products: []domain.CartItem{
			{ID: 1, Title: map[string]string{"en": "Blue Shirt"}, Price: 19.99, Quantity: 2},
		},
	}
}

func TestGet_Hit(t *testing.T) {
	cache, mr := setupTestRedis(t)
	ctx := context.Background()

	cart := testCart("cart-1")
	data, _ := json.Marshal(cart)
	mr.Set(cacheKey(cart.ID), string(data))

	got, err := cache.Get(ctx, cart.ID)
	require.NoError(t, err)
	assert.Equal(t, "user123", got.UserID)
	require.Len(t, got.Products, 1)
	assert.Equal(t, int64(1), got.Products[0].ID)
}

func TestGet_Miss(t *testing.T) {
	cache, _ := setupTestRedis(t)

	_, err := cache.Get(context.Background(), "absent")
	assert.ErrorIs(t, err, ErrCacheMiss)
}

func TestSetThenGet(t *testing.T) {
	cache, mr := setupTestRedis(t)
	ctx := context.Background()

	cart := testCart("cart-2")
	require.NoError(t, cache.Set(ctx, cart))
	assert.True(t, mr.Exists(cacheKey("cart-2")))

	got, err := cache.Get(ctx, "cart-2")
	require.NoError(t, err)
	assert.Equal(t, cart.Products, got.Products)
	assert.Equal(t, domain.CartStatusOpen, got.Status)
}

func TestDelete(t *testing.T) {
	cache, mr := setupTestRedis(t)
	ctx := context.Background()

	require.NoError(t, cache.Set(ctx, testCart("cart-3")))
	require.NoError(t, cache.Delete(ctx, "cart-3"))
	assert.False(t, mr.Exists(cacheKey("cart-3")))

	_, err := cache.Get(ctx, "cart-3")
	assert.ErrorIs(t, err, ErrCacheMiss)
}
