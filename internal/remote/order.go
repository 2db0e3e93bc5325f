package remote

import (
	"context"
	"net/http"
	"net/url"

	"kebuli-storefront/internal/domain"
)

// OrderInput is the order-creation payload: the selected lines plus contact
// and delivery details, already validated by checkout preconditions.
type OrderInput struct {
	AddressID     string             `json:"addressId"`
	PaymentMethod string             `json:"paymentMethod"`
	FirstName     string             `json:"firstName"`
	LastName      string             `json:"lastName"`
	Email         string             `json:"email"`
	Phone         string             `json:"phone"`
	ShippingCents int64              `json:"shippingCents"`
	Items         []domain.OrderItem `json:"items"`
}

// SubmitOrder creates an order upstream. For electronic payment methods the
// returned order carries the server-issued payment token; its id is the only
// correlation handle the later widget callbacks have.
func (c *Client) SubmitOrder(ctx context.Context, token string, in OrderInput) (*domain.Order, error) {
	var order domain.Order
	if err := c.do(ctx, http.MethodPost, "/api/orders", token, in, &order); err != nil {
		return nil, err
	}
	return &order, nil
}

type ordersResponse struct {
	Orders []domain.Order `json:"orders"`
}

// ListOwnOrders returns the authenticated user's orders.
func (c *Client) ListOwnOrders(ctx context.Context, token string) ([]domain.Order, error) {
	var resp ordersResponse
	if err := c.do(ctx, http.MethodGet, "/api/orders", token, nil, &resp); err != nil {
		return nil, err
	}
	return resp.Orders, nil
}

// GetOrder returns one of the authenticated user's orders.
func (c *Client) GetOrder(ctx context.Context, token, orderID string) (*domain.Order, error) {
	var order domain.Order
	if err := c.do(ctx, http.MethodGet, "/api/orders/"+url.PathEscape(orderID), token, nil, &order); err != nil {
		return nil, err
	}
	return &order, nil
}

// ListAllOrders returns every order (admin).
func (c *Client) ListAllOrders(ctx context.Context, token string) ([]domain.Order, error) {
	var resp ordersResponse
	if err := c.do(ctx, http.MethodGet, "/api/admin/orders", token, nil, &resp); err != nil {
		return nil, err
	}
	return resp.Orders, nil
}

// UpdateOrderStatus transitions an order's status (admin).
func (c *Client) UpdateOrderStatus(ctx context.Context, token, orderID, status string) (*domain.Order, error) {
	var order domain.Order
	in := map[string]string{"status": status}
	if err := c.do(ctx, http.MethodPut, "/api/orders/"+url.PathEscape(orderID)+"/status", token, in, &order); err != nil {
		return nil, err
	}
	return &order, nil
}

// ConfirmPayment marks an order as paid.
func (c *Client) ConfirmPayment(ctx context.Context, token, orderID string) error {
	return c.do(ctx, http.MethodPost, "/api/orders/"+url.PathEscape(orderID)+"/payment/confirm", token, nil, nil)
}

// FailPayment records a failed payment attempt on an order.
func (c *Client) FailPayment(ctx context.Context, token, orderID string) error {
	return c.do(ctx, http.MethodPost, "/api/orders/"+url.PathEscape(orderID)+"/payment/fail", token, nil, nil)
}

// CancelPayment records a cancelled payment attempt on an order.
func (c *Client) CancelPayment(ctx context.Context, token, orderID string) error {
	return c.do(ctx, http.MethodPost, "/api/orders/"+url.PathEscape(orderID)+"/payment/cancel", token, nil, nil)
}

// NotifyPaymentPending records that the widget reported the payment pending.
func (c *Client) NotifyPaymentPending(ctx context.Context, token, orderID string) error {
	return c.do(ctx, http.MethodPost, "/api/orders/"+url.PathEscape(orderID)+"/payment/pending", token, nil, nil)
}
