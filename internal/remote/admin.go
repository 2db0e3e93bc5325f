package remote

import (
	"context"
	"net/http"

	"kebuli-storefront/internal/domain"
)

// FetchDashboard returns the admin console counters.
func (c *Client) FetchDashboard(ctx context.Context, token string) (*domain.DashboardStats, error) {
	var stats domain.DashboardStats
	if err := c.do(ctx, http.MethodGet, "/api/admin/dashboard", token, nil, &stats); err != nil {
		return nil, err
	}
	return &stats, nil
}

type customersResponse struct {
	Customers []domain.Customer `json:"customers"`
}

// ListCustomers returns every registered customer (admin).
func (c *Client) ListCustomers(ctx context.Context, token string) ([]domain.Customer, error) {
	var resp customersResponse
	if err := c.do(ctx, http.MethodGet, "/api/admin/customers", token, nil, &resp); err != nil {
		return nil, err
	}
	return resp.Customers, nil
}

// ListAllReviews returns every review including hidden ones (admin).
func (c *Client) ListAllReviews(ctx context.Context, token string) ([]domain.Review, error) {
	var resp reviewsResponse
	if err := c.do(ctx, http.MethodGet, "/api/admin/reviews", token, nil, &resp); err != nil {
		return nil, err
	}
	return resp.Reviews, nil
}
