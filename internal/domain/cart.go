package domain

// CartLine is one product at one size in a cart. ServerLineID is empty for
// lines that only exist in the guest cart and is assigned by the upstream API
// once the line is synced to the remote cart.
type CartLine struct {
	ProductID      string `json:"productId"`
	ServerLineID   string `json:"serverLineId,omitempty"`
	Name           string `json:"name"`
	UnitPriceCents int64  `json:"unitPriceCents"`
	ImageURL       string `json:"imageUrl,omitempty"`
	Size           string `json:"size,omitempty"`
	Quantity       int    `json:"quantity"`
}

// Key identifies a line for selection purposes: the server-assigned id once
// synced, otherwise the (product, size) pair.
func (l CartLine) Key() string {
	if l.ServerLineID != "" {
		return l.ServerLineID
	}
	if l.Size == "" {
		return l.ProductID
	}
	return l.ProductID + "#" + l.Size
}

// Matches reports whether the line is the (product, size) identity. A cart
// holds at most one line per identity.
func (l CartLine) Matches(productID, size string) bool {
	return l.ProductID == productID && l.Size == size
}

// Cart is the aggregate cart view handed to pages. Line order is insertion
// order for guest carts; remote refetches keep whatever order the API returns.
type Cart struct {
	Lines []CartLine `json:"lines"`
}

// TotalCount sums quantities across all lines.
func (c Cart) TotalCount() int {
	total := 0
	for _, l := range c.Lines {
		total += l.Quantity
	}
	return total
}

// Find returns the line matching the (product, size) identity, or nil.
func (c Cart) Find(productID, size string) *CartLine {
	for i := range c.Lines {
		if c.Lines[i].Matches(productID, size) {
			return &c.Lines[i]
		}
	}
	return nil
}
