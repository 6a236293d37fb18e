package cache

import (
	"context"
	"errors"

	"github.com/Shehap111/big-store-server/internal/domain"
)

// CartCache is a read-through cache for cart snapshots, keyed by cart id.
// It is strictly an optimization: the fulfillment commit always verifies
// cart status against the durable store, never against cached data.
type CartCache interface {
	Get(ctx context.Context, cartID string) (*domain.CartSnapshot, error)
	Set(ctx context.Context, cart *domain.CartSnapshot) error
	Delete(ctx context.Context, cartID string) error
}

var ErrCacheMiss = errors.New("cache miss")
