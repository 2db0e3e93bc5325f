package remote

import (
	"context"
	"net/http"
	"net/url"

	"kebuli-storefront/internal/domain"
)

type menuResponse struct {
	Items []domain.MenuItem `json:"items"`
}

// ListMenu returns the public menu.
func (c *Client) ListMenu(ctx context.Context) ([]domain.MenuItem, error) {
	var resp menuResponse
	if err := c.do(ctx, http.MethodGet, "/api/menu", "", nil, &resp); err != nil {
		return nil, err
	}
	return resp.Items, nil
}

// GetMenuItem returns one menu item by id.
func (c *Client) GetMenuItem(ctx context.Context, id string) (*domain.MenuItem, error) {
	var item domain.MenuItem
	if err := c.do(ctx, http.MethodGet, "/api/menu/"+url.PathEscape(id), "", nil, &item); err != nil {
		return nil, err
	}
	return &item, nil
}

// MenuItemInput carries the editable fields of a catalog entry.
type MenuItemInput struct {
	Name        string   `json:"name"`
	Description string   `json:"description,omitempty"`
	Category    string   `json:"category,omitempty"`
	PriceCents  int64    `json:"priceCents"`
	ImageURL    string   `json:"imageUrl,omitempty"`
	Sizes       []string `json:"sizes,omitempty"`
	Available   bool     `json:"available"`
}

// CreateMenuItem creates a catalog entry (admin).
func (c *Client) CreateMenuItem(ctx context.Context, token string, in MenuItemInput) (*domain.MenuItem, error) {
	var item domain.MenuItem
	if err := c.do(ctx, http.MethodPost, "/api/menu", token, in, &item); err != nil {
		return nil, err
	}
	return &item, nil
}

// UpdateMenuItem updates a catalog entry (admin).
func (c *Client) UpdateMenuItem(ctx context.Context, token, id string, in MenuItemInput) (*domain.MenuItem, error) {
	var item domain.MenuItem
	if err := c.do(ctx, http.MethodPut, "/api/menu/"+url.PathEscape(id), token, in, &item); err != nil {
		return nil, err
	}
	return &item, nil
}

// DeleteMenuItem deletes a catalog entry (admin).
func (c *Client) DeleteMenuItem(ctx context.Context, token, id string) error {
	return c.do(ctx, http.MethodDelete, "/api/menu/"+url.PathEscape(id), token, nil, nil)
}
