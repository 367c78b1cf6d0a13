package cart

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/gereacosta1/OnePointMotors/internal/domain"
	"golang.org/x/sync/singleflight"
)

// Service owns the session carts. It is the single writer of cart state;
// handlers and the checkout flow go through it, never through the store
// directly. Mutations for a session are serialized by a per-session lock,
// so concurrent requests never lose updates to read-modify-write races.
type Service struct {
	store Store
	sfg   singleflight.Group // collapses concurrent loads of the same session

	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func NewService(store Store) *Service {
	return &Service{
		store: store,
		locks: make(map[string]*sync.Mutex),
	}
}

// Get returns the session's cart, or a fresh empty cart when none exists yet.
// Collapsed concurrent loads share one store read, but every caller gets its
// own copy.
func (s *Service) Get(ctx context.Context, sessionID string) (*domain.Cart, error) {
	v, err, _ := s.sfg.Do(sessionID, func() (interface{}, error) {
		return s.load(ctx, sessionID)
	})
	if err != nil {
		return nil, err
	}
	return copyCart(v.(*domain.Cart)), nil
}

// AddItem merges the candidate into the cart. An item with the same id has
// its quantity bumped by one; otherwise the candidate is appended with
// quantity 1 and its name/price/image/slug frozen as of now. The candidate's
// own quantity field is ignored.
func (s *Service) AddItem(ctx context.Context, sessionID string, candidate domain.CartItem) (*domain.Cart, error) {
	lock := s.sessionLock(sessionID)
	lock.Lock()
	defer lock.Unlock()

	cart, err := s.load(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	merged := false
	for i := range cart.Items {
		if cart.Items[i].ID == candidate.ID {
			cart.Items[i].Quantity++
			merged = true
			break
		}
	}
	if !merged {
		candidate.Quantity = 1
		cart.Items = append(cart.Items, candidate)
	}

	return s.save(ctx, cart)
}

// UpdateQuantity sets the named item's quantity. A quantity of zero or less
// removes the item. An unknown id is a no-op.
func (s *Service) UpdateQuantity(ctx context.Context, sessionID, itemID string, quantity int) (*domain.Cart, error) {
	lock := s.sessionLock(sessionID)
	lock.Lock()
	defer lock.Unlock()

	cart, err := s.load(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	if quantity <= 0 {
		if removeLine(cart, itemID) {
			return s.save(ctx, cart)
		}
		return cart, nil
	}

	for i := range cart.Items {
		if cart.Items[i].ID == itemID {
			cart.Items[i].Quantity = quantity
			return s.save(ctx, cart)
		}
	}
	return cart, nil
}

// RemoveItem deletes the item with the matching id. An unknown id is a no-op.
func (s *Service) RemoveItem(ctx context.Context, sessionID, itemID string) (*domain.Cart, error) {
	lock := s.sessionLock(sessionID)
	lock.Lock()
	defer lock.Unlock()

	cart, err := s.load(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	if removeLine(cart, itemID) {
		return s.save(ctx, cart)
	}
	return cart, nil
}

// Clear resets the cart to empty. Clearing an empty cart is a no-op.
func (s *Service) Clear(ctx context.Context, sessionID string) (*domain.Cart, error) {
	lock := s.sessionLock(sessionID)
	lock.Lock()
	defer lock.Unlock()

	cart, err := s.load(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	cart.Items = []domain.CartItem{}
	return s.save(ctx, cart)
}

// Toggle flips the cart panel's open flag. Items are untouched.
func (s *Service) Toggle(ctx context.Context, sessionID string) (*domain.Cart, error) {
	lock := s.sessionLock(sessionID)
	lock.Lock()
	defer lock.Unlock()

	cart, err := s.load(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	cart.IsOpen = !cart.IsOpen
	return s.save(ctx, cart)
}

// load fetches the cart straight from the store, bypassing the singleflight
// group. Mutation paths call it while holding the session lock.
func (s *Service) load(ctx context.Context, sessionID string) (*domain.Cart, error) {
	cart, err := s.store.Get(ctx, sessionID)
	if errors.Is(err, ErrCartNotFound) {
		now := time.Now()
		return &domain.Cart{
			SessionID: sessionID,
			Items:     nil,
			CreatedAt: now,
			UpdatedAt: now,
		}, nil
	}
	if err != nil {
		return nil, err
	}
	return cart, nil
}

func (s *Service) sessionLock(sessionID string) *sync.Mutex {
	s.mu.Lock()
	defer s.mu.Unlock()

	lock, ok := s.locks[sessionID]
	if !ok {
		lock = &sync.Mutex{}
		s.locks[sessionID] = lock
	}
	return lock
}

func (s *Service) save(ctx context.Context, cart *domain.Cart) (*domain.Cart, error) {
	cart.UpdatedAt = time.Now()
	if err := s.store.Save(ctx, cart); err != nil {
		return nil, fmt.Errorf("failed to save cart: %w", err)
	}
	return cart, nil
}

func removeLine(cart *domain.Cart, itemID string) bool {
	for i, item := range cart.Items {
		if item.ID == itemID {
			cart.Items = append(cart.Items[:i], cart.Items[i+1:]...)
			return true
		}
	}
	return false
}
