package repository

import (
	"context"

	"github.com/seeacid/stardeadIA/internal/domain"
)

// CartRepository defines the interface for cart snapshot persistence.
type CartRepository interface {
	// Get retrieves a cart snapshot by cart ID.
	Get(ctx context.Context, cartID string) (*domain.Cart, error)

	// Save persists a cart snapshot, overwriting any existing one for the cart ID.
	Save(ctx context.Context, cart *domain.Cart) error

	// Delete removes the cart snapshot for the cart ID.
	Delete(ctx context.Context, cartID string) error
}
