package repository

import (
	"context"
	"errors"

	"github.com/Shehap111/big-store-server/internal/domain"
)

var (
	ErrCartNotFound = errors.New("cart not found")

	// ErrCartAlreadyPaid is returned by CommitOrder when the cart status
	// was no longer "open". The caller treats it as an idempotent no-op:
	// the order and inventory writes for this cart have already happened.
	ErrCartAlreadyPaid = errors.New("cart already paid")

	// ErrStoreUnavailable wraps transport-level store failures; the
	// operation may be retried by the caller.
	ErrStoreUnavailable = errors.New("store unavailable")
)

// Store is the durable-store surface the fulfillment service depends on.
// CommitOrder is the single mutation path for orders and inventory: it must
// flip the cart open -> paid, insert the order keyed by cart id, and apply
// the per-product stock/sales deltas as one logical commit.
type Store interface {
	CreateCart(ctx context.Context, cart *domain.CartSnapshot) (string, error)
	GetCart(ctx context.Context, cartID string) (*domain.CartSnapshot, error)
	CommitOrder(ctx context.Context, order *domain.Order) error
}
