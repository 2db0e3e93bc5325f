package remote

import (
	"context"
	"net/http"
	"net/url"

	"kebuli-storefront/internal/domain"
)

// Credentials is what the auth endpoints hand back: the bearer token plus the
// role and profile the gateway caches per device.
type Credentials struct {
	Token   string         `json:"token"`
	Role    string         `json:"role"`
	Profile domain.Profile `json:"profile"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Login exchanges email/password for a bearer token.
func (c *Client) Login(ctx context.Context, email, password string) (*Credentials, error) {
	var creds Credentials
	in := loginRequest{Email: email, Password: password}
	if err := c.do(ctx, http.MethodPost, "/api/auth/login", "", in, &creds); err != nil {
		return nil, err
	}
	return &creds, nil
}

// RegisterInput carries the signup payload.
type RegisterInput struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
	Phone     string `json:"phone,omitempty"`
	Password  string `json:"password"`
}

// Register creates an account and returns credentials for it.
func (c *Client) Register(ctx context.Context, in RegisterInput) (*Credentials, error) {
	var creds Credentials
	if err := c.do(ctx, http.MethodPost, "/api/auth/register", "", in, &creds); err != nil {
		return nil, err
	}
	return &creds, nil
}

// Logout invalidates the bearer token upstream.
func (c *Client) Logout(ctx context.Context, token string) error {
	return c.do(ctx, http.MethodPost, "/api/auth/logout", token, nil, nil)
}

// FetchProfile returns the authenticated user's profile.
func (c *Client) FetchProfile(ctx context.Context, token string) (*domain.Profile, error) {
	var p domain.Profile
	if err := c.do(ctx, http.MethodGet, "/api/profile", token, nil, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

// UpdateProfile updates the authenticated user's profile.
func (c *Client) UpdateProfile(ctx context.Context, token string, in domain.Profile) (*domain.Profile, error) {
	var p domain.Profile
	if err := c.do(ctx, http.MethodPut, "/api/profile", token, in, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

type addressesResponse struct {
	Addresses []domain.Address `json:"addresses"`
}

// ListAddresses returns the user's delivery addresses.
func (c *Client) ListAddresses(ctx context.Context, token string) ([]domain.Address, error) {
	var resp addressesResponse
	if err := c.do(ctx, http.MethodGet, "/api/addresses", token, nil, &resp); err != nil {
		return nil, err
	}
	return resp.Addresses, nil
}

// AddAddress creates a delivery address.
func (c *Client) AddAddress(ctx context.Context, token string, in domain.Address) (*domain.Address, error) {
	var a domain.Address
	if err := c.do(ctx, http.MethodPost, "/api/addresses", token, in, &a); err != nil {
		return nil, err
	}
	return &a, nil
}

// UpdateAddress updates a delivery address.
func (c *Client) UpdateAddress(ctx context.Context, token, id string, in domain.Address) (*domain.Address, error) {
	var a domain.Address
	if err := c.do(ctx, http.MethodPut, "/api/addresses/"+url.PathEscape(id), token, in, &a); err != nil {
		return nil, err
	}
	return &a, nil
}

// DeleteAddress removes a delivery address.
func (c *Client) DeleteAddress(ctx context.Context, token, id string) error {
	return c.do(ctx, http.MethodDelete, "/api/addresses/"+url.PathEscape(id), token, nil, nil)
}

// SetPrimaryAddress marks one address as the default delivery target.
func (c *Client) SetPrimaryAddress(ctx context.Context, token, id string) error {
	return c.do(ctx, http.MethodPut, "/api/addresses/"+url.PathEscape(id)+"/primary", token, nil, nil)
}

type reviewsResponse struct {
	Reviews []domain.Review `json:"reviews"`
}

// ListReviews returns public reviews, optionally scoped to one menu item.
func (c *Client) ListReviews(ctx context.Context, menuItemID string) ([]domain.Review, error) {
	path := "/api/reviews"
	if menuItemID != "" {
		path += "?menuItemId=" + url.QueryEscape(menuItemID)
	}
	var resp reviewsResponse
	if err := c.do(ctx, http.MethodGet, path, "", nil, &resp); err != nil {
		return nil, err
	}
	return resp.Reviews, nil
}

// SubmitReview posts a review for a delivered order.
func (c *Client) SubmitReview(ctx context.Context, token string, in domain.Review) (*domain.Review, error) {
	var r domain.Review
	if err := c.do(ctx, http.MethodPost, "/api/reviews", token, in, &r); err != nil {
		return nil, err
	}
	return &r, nil
}
