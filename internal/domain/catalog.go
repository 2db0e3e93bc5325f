package domain

// MenuItem is a transient copy of an upstream catalog entry, held only for
// display and cart additions.
type MenuItem struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Description string   `json:"description,omitempty"`
	Category    string   `json:"category,omitempty"`
	PriceCents  int64    `json:"priceCents"`
	ImageURL    string   `json:"imageUrl,omitempty"`
	Sizes       []string `json:"sizes,omitempty"`
	Available   bool     `json:"available"`
}
