package guestcart

import (
	"context"
	"time"
)

// Line is one persisted guest-cart entry, keyed by device and (product, size).
type Line struct {
	DeviceID       string
	ProductID      string
	Size           string
	Name           string
	UnitPriceCents int64
	ImageURL       string
	Quantity       int
	CreatedAt      time.Time
}

type Repository interface {
	// List returns the device's lines in insertion order.
	List(ctx context.Context, deviceID string) ([]Line, error)
	// Add merges the line into the cart: an existing (product, size) line has
	// its quantity incremented, otherwise a new line is appended.
	Add(ctx context.Context, line Line) error
	// SetQuantity replaces the quantity of an existing line.
	// Returns domain.ErrNotFound when no line matches.
	SetQuantity(ctx context.Context, deviceID, productID, size string, quantity int) error
	// Delete removes one line. Returns domain.ErrNotFound when no line matches.
	Delete(ctx context.Context, deviceID, productID, size string) error
	// Clear erases the device's entire guest record.
	Clear(ctx context.Context, deviceID string) error
}
