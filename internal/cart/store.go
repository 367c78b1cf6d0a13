package cart

import (
	"context"
	"errors"

	"github.com/gereacosta1/OnePointMotors/internal/domain"
)

// Store defines persistence for session carts. Consumers define this
// interface, not the backing implementation.
type Store interface {
	Get(ctx context.Context, sessionID string) (*domain.Cart, error)
	Save(ctx context.Context, cart *domain.Cart) error
	Delete(ctx context.Context, sessionID string) error
}

var ErrCartNotFound = errors.New("cart not found")
