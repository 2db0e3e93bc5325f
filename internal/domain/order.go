package domain

import "time"

// Payment methods accepted at checkout. Anything other than cash is handed to
// the external payment widget via a server-issued token.
const (
	PaymentCash = "cash"
)

// OrderItem is a finalized cart line submitted with an order.
type OrderItem struct {
	ProductID      string `json:"productId"`
	Name           string `json:"name"`
	Size           string `json:"size,omitempty"`
	Quantity       int    `json:"quantity"`
	UnitPriceCents int64  `json:"unitPriceCents"`
}

// Order is a transient copy of an upstream order, fetched for display or
// returned from submission. Status values are owned by the upstream API.
type Order struct {
	ID            string      `json:"id"`
	Status        string      `json:"status"`
	PaymentMethod string      `json:"paymentMethod"`
	PaymentToken  string      `json:"paymentToken,omitempty"`
	SubtotalCents int64       `json:"subtotalCents"`
	ShippingCents int64       `json:"shippingCents"`
	TotalCents    int64       `json:"totalCents"`
	AddressID     string      `json:"addressId,omitempty"`
	FirstName     string      `json:"firstName,omitempty"`
	LastName      string      `json:"lastName,omitempty"`
	Email         string      `json:"email,omitempty"`
	Phone         string      `json:"phone,omitempty"`
	Items         []OrderItem `json:"items,omitempty"`
	CreatedAt     time.Time   `json:"createdAt"`
}
