package service

import (
	"context"
	"sync"

	"github.com/Shehap111/big-store-server/internal/cache"
	"github.com/Shehap111/big-store-server/internal/domain"
	"github.com/Shehap111/big-store-server/internal/gateway"
)

type mockGateway struct {
	mu sync.Mutex

	createErr    error
	retrieveErr  error
	nextID       string
	sessions     map[string]*domain.PaymentSession
	lastCreate   gateway.CreateSessionInput
	createCalled int
}

func newMockGateway() *mockGateway {
	return &mockGateway{
		nextID:   "cs_test_1",
		sessions: make(map[string]*domain.PaymentSession),
	}
}

func (m *mockGateway) CreateSession(_ context.Context, in gateway.CreateSessionInput) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.createCalled++
	m.lastCreate = in
	if m.createErr != nil {
		return "", m.createErr
	}
	return m.nextID, nil
}

func (m *mockGateway) RetrieveSession(_ context.Context, sessionID string) (*domain.PaymentSession, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.retrieveErr != nil {
		return nil, m.retrieveErr
	}
	session, ok := m.sessions[sessionID]
	if !ok {
		return nil, gateway.ErrSessionNotFound
	}
	return session, nil
}

func (m *mockGateway) addSession(id string, status domain.PaymentStatus, meta domain.SessionMetadata) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sessions[id] = &domain.PaymentSession{ID: id, Status: status, Metadata: meta}
}

type mockCache struct {
	mu      sync.Mutex
	carts   map[string]*domain.CartSnapshot
	sets    int
	deletes int
}

func newMockCache() *mockCache {
	return &mockCache{carts: make(map[string]*domain.CartSnapshot)}
}

func (m *mockCache) Get(_ context.Context, cartID string) (*domain.CartSnapshot, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	cart, ok := m.carts[cartID]
	if !ok {
		return nil, cache.ErrCacheMiss
	}
	copied := *cart
	return &copied, nil
}

func (m *mockCache) Set(_ context.Context, cart *domain.CartSnapshot) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	copied := *cart
	m.carts[cart.ID] = &copied
	m.sets++
	return nil
}

func (m *mockCache) Delete(_ context.Context, cartID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.carts, cartID)
	m.deletes++
	return nil
}
