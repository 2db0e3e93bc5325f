package cart

import (
	"context"

	"kebuli-storefront/internal/domain"
)

// Store is the single mutation surface for whichever backing store owns a
// session's cart. The guest/remote divergence lives entirely behind this
// interface; the reconciler picks an implementation once per session.
type Store interface {
	// Lines returns the current cart contents.
	Lines(ctx context.Context) ([]domain.CartLine, error)
	// Add merges (product, size) into the cart, accumulating quantity.
	Add(ctx context.Context, item domain.MenuItem, quantity int, size string) error
	// Remove drops the matching line. Returns domain.ErrNotFound when absent.
	Remove(ctx context.Context, productID, size string) error
	// SetQuantity replaces the matching line's quantity.
	// Returns domain.ErrNotFound when absent.
	SetQuantity(ctx context.Context, productID, size string, quantity int) error
	// Clear empties the cart. Clearing an empty cart is a no-op.
	Clear(ctx context.Context) error
}
