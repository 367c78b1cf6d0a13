package cart

import (
	"context"
	"sync"

	"github.com/gereacosta1/OnePointMotors/internal/domain"
)

// MemoryStore keeps carts in a process-local map. It is the default store
// when no Redis address is configured; carts do not survive a restart.
type MemoryStore struct {
	m     sync.RWMutex
	carts map[string]*domain.Cart
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		carts: make(map[string]*domain.Cart),
	}
}

func (s *MemoryStore) Get(_ context.Context, sessionID string) (*domain.Cart, error) {
	s.m.RLock()
	defer s.m.RUnlock()

	cart, ok := s.carts[sessionID]
	if !ok {
		return nil, ErrCartNotFound
	}
	return copyCart(cart), nil
}

func (s *MemoryStore) Save(_ context.Context, cart *domain.Cart) error {
	s.m.Lock()
	defer s.m.Unlock()

	s.carts[cart.SessionID] = copyCart(cart)
	return nil
}

func (s *MemoryStore) Delete(_ context.Context, sessionID string) error {
	s.m.Lock()
	defer s.m.Unlock()

	delete(s.carts, sessionID)
	return nil
}

// copyCart returns a deep copy so callers never alias the stored slice.
func copyCart(c *domain.Cart) *domain.Cart {
	cp := *c
	cp.Items = make([]domain.CartItem, len(c.Items))
	copy(cp.Items, c.Items)
	return &cp
}
