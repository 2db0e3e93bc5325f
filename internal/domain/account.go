package domain

import "time"

// Address is a transient copy of an upstream delivery address. No invariants
// are enforced locally beyond non-empty required fields at submit time.
type Address struct {
	ID         string `json:"id"`
	Label      string `json:"label,omitempty"`
	Recipient  string `json:"recipient"`
	Phone      string `json:"phone,omitempty"`
	Street     string `json:"street"`
	City       string `json:"city"`
	PostalCode string `json:"postalCode,omitempty"`
	Notes      string `json:"notes,omitempty"`
	Primary    bool   `json:"primary"`
}

// Profile holds the display fields cached per device as an offline fallback.
type Profile struct {
	FirstName  string `json:"firstName"`
	LastName   string `json:"lastName"`
	Email      string `json:"email"`
	Phone      string `json:"phone,omitempty"`
	Gender     string `json:"gender,omitempty"`
	PictureURL string `json:"pictureUrl,omitempty"`
}

// Review is a transient copy of an upstream menu review.
type Review struct {
	ID         string    `json:"id"`
	MenuItemID string    `json:"menuItemId,omitempty"`
	OrderID    string    `json:"orderId,omitempty"`
	Rating     int       `json:"rating"`
	Comment    string    `json:"comment,omitempty"`
	Author     string    `json:"author,omitempty"`
	CreatedAt  time.Time `json:"createdAt"`
}

// Customer is the admin-console listing view of a registered user.
type Customer struct {
	ID        string    `json:"id"`
	FirstName string    `json:"firstName"`
	LastName  string    `json:"lastName"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

// DashboardStats mirrors the upstream admin counters endpoint.
type DashboardStats struct {
	OrdersToday    int64 `json:"ordersToday"`
	OrdersTotal    int64 `json:"ordersTotal"`
	RevenueCents   int64 `json:"revenueCents"`
	CustomersTotal int64 `json:"customersTotal"`
	MenuItemsTotal int64 `json:"menuItemsTotal"`
	ReviewsTotal   int64 `json:"reviewsTotal"`
}
