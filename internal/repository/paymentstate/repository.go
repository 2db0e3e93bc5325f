package paymentstate

import (
	"context"
	"time"
)

// Payment states tracked per server-issued order id. pending is the only
// non-terminal state.
const (
	StatePending   = "pending"
	StatePaid      = "paid"
	StateFailed    = "failed"
	StateCancelled = "cancelled"
)

// Record is the persisted half of the payment-callback state machine.
type Record struct {
	OrderID   string
	DeviceID  string
	State     string
	UpdatedAt time.Time
}

type Repository interface {
	// Create registers a pending record. Returns domain.ErrAlreadyExists when
	// the order id is already tracked.
	Create(ctx context.Context, rec Record) error
	// Get returns the record, or domain.ErrNotFound.
	Get(ctx context.Context, orderID string) (*Record, error)
	// Transition moves from one state to another. Returns false without error
	// when the record is not currently in the from state, which is how
	// duplicate callback deliveries are absorbed.
	Transition(ctx context.Context, orderID, from, to string) (bool, error)
}
