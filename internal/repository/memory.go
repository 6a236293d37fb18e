package repository

import (
	"context"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/Shehap111/big-store-server/internal/domain"
)

// Counter holds the per-product inventory figures.
type Counter struct {
	Stock int64
	Sales int64
}

// MemoryStore implements Store with in-memory maps. It backs local runs
// without a database and the fulfillment service tests. The single mutex
// makes each CommitOrder atomic, mirroring the mongo transaction.
type MemoryStore struct {
	mu       sync.Mutex
	carts    map[string]*domain.CartSnapshot
	orders   map[string]*domain.Order // keyed by cart id
	counters map[int64]*Counter
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		carts:    make(map[string]*domain.CartSnapshot),
		orders:   make(map[string]*domain.Order),
		counters: make(map[int64]*Counter),
	}
}

func (s *MemoryStore) CreateCart(_ context.Context, cart *domain.CartSnapshot) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if cart.ID == "" {
		cart.ID = primitive.NewObjectID().Hex()
	}
	if cart.Status == "" {
		cart.Status = domain.CartStatusOpen
	}
	if cart.CreatedAt.IsZero() {
		cart.CreatedAt = time.Now().UTC()
	}

	stored := *cart
	s.carts[cart.ID] = &stored
	return cart.ID, nil
}

func (s *MemoryStore) GetCart(_ context.Context, cartID string) (*domain.CartSnapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	cart, ok := s.carts[cartID]
	if !ok {
		return nil, ErrCartNotFound
	}
	copied := *cart
	return &copied, nil
}

func (s *MemoryStore) CommitOrder(_ context.Context, order *domain.Order) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	cart, ok := s.carts[order.CartID]
	if !ok {
		return ErrCartNotFound
	}
	if cart.Status != domain.CartStatusOpen {
		return ErrCartAlreadyPaid
	}

	// Same ordering and keying as the mongo implementation: order first,
	// keyed by cart id, then inventory deltas, cart status last.
	if _, exists := s.orders[order.CartID]; !exists {
		if order.ID == "" {
			order.ID = primitive.NewObjectID().Hex()
		}
		stored := *order
		s.orders[order.CartID] = &stored
	}

	for _, item := range order.Products {
		counter, ok := s.counters[item.ID]
		if !ok {
			counter = &Counter{}
			s.counters[item.ID] = counter
		}
		counter.Stock -= item.Quantity
		counter.Sales += item.Quantity
	}

	cart.Status = domain.CartStatusPaid
	return nil
}

// Order returns the committed order for a cart id, if any.
func (s *MemoryStore) Order(cartID string) (*domain.Order, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	order, ok := s.orders[cartID]
	if !ok {
		return nil, false
	}
	copied := *order
	return &copied, true
}

// OrderCount reports how many orders have been committed.
func (s *MemoryStore) OrderCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.orders)
}

// SetCounter seeds the inventory counter for a product.
func (s *MemoryStore) SetCounter(productID int64, stock, sales int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.counters[productID] = &Counter{Stock: stock, Sales: sales}
}

// GetCounter reads the inventory counter for a product.
func (s *MemoryStore) GetCounter(productID int64) Counter {
	s.mu.Lock()
	defer s.mu.Unlock()

	if counter, ok := s.counters[productID]; ok {
		return *counter
	}
	return Counter{}
}
