package domain

import "time"

// Cart is a per-user staging area. It is created once per user and emptied,
// not deleted, on successful checkout.
type Cart struct {
	ID        string     `json:"id"`
	UserID    string     `json:"userId"`
	CreatedAt time.Time  `json:"createdAt"`
	Lines     []CartLine `json:"lines,omitempty"`
}

// CartLine holds at most one row per (cart, product, variant); repeated adds
// increment the quantity.
type CartLine struct {
	ID        string    `json:"id"`
	CartID    string    `json:"cartId"`
	ProductID string    `json:"productId"`
	VariantID *string   `json:"variantId,omitempty"`
	Quantity  int       `json:"quantity"`
	CreatedAt time.Time `json:"createdAt"`
}
