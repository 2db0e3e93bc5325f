package remote

import (
	"context"
	"net/http"
	"net/url"

	"kebuli-storefront/internal/domain"
)

type cartItemPayload struct {
	ID             string `json:"id"`
	ProductID      string `json:"productId"`
	Name           string `json:"name"`
	UnitPriceCents int64  `json:"unitPriceCents"`
	ImageURL       string `json:"imageUrl"`
	Size           string `json:"size"`
	Quantity       int    `json:"quantity"`
}

type cartResponse struct {
	Items []cartItemPayload `json:"items"`
}

type addCartItemRequest struct {
	ProductID string `json:"productId"`
	Quantity  int    `json:"quantity"`
	Size      string `json:"size,omitempty"`
}

// FetchCart returns the authenticated user's cart. The add endpoint does not
// return the updated line, so mutations are always followed by this refetch.
func (c *Client) FetchCart(ctx context.Context, token string) ([]domain.CartLine, error) {
	var resp cartResponse
	if err := c.do(ctx, http.MethodGet, "/api/cart", token, nil, &resp); err != nil {
		return nil, err
	}
	lines := make([]domain.CartLine, 0, len(resp.Items))
	for _, item := range resp.Items {
		lines = append(lines, domain.CartLine{
			ProductID:      item.ProductID,
			ServerLineID:   item.ID,
			Name:           item.Name,
			UnitPriceCents: item.UnitPriceCents,
			ImageURL:       item.ImageURL,
			Size:           item.Size,
			Quantity:       item.Quantity,
		})
	}
	return lines, nil
}

// AddCartItem adds (or merges) a line into the remote cart.
func (c *Client) AddCartItem(ctx context.Context, token, productID string, quantity int, size string) error {
	in := addCartItemRequest{ProductID: productID, Quantity: quantity, Size: size}
	return c.do(ctx, http.MethodPost, "/api/cart/items", token, in, nil)
}

// DeleteCartItem removes a line by its server-assigned id.
func (c *Client) DeleteCartItem(ctx context.Context, token, lineID string) error {
	return c.do(ctx, http.MethodDelete, "/api/cart/items/"+url.PathEscape(lineID), token, nil, nil)
}
