package domain

import "time"

type Product struct {
	ID        string           `json:"id"`
	Name      string           `json:"name"`
	Price     float64          `json:"price"`
	TaxRate   float64          `json:"taxRate"`
	Stock     int              `json:"stock"`
	Active    bool             `json:"active"`
	CreatedAt time.Time        `json:"createdAt"`
	Variants  []ProductVariant `json:"variants,omitempty"`
}

type ProductVariant struct {
	ID        string    `json:"id"`
	ProductID string    `json:"productId"`
	Label     string    `json:"label"`
	Price     float64   `json:"price"`
	CreatedAt time.Time `json:"createdAt"`
}

// EffectivePrice is the unit price charged at checkout: the variant price when
// a variant is selected, otherwise the base product price.
func (p Product) EffectivePrice(variantID *string) float64 {
	if variantID == nil {
		return p.Price
	}
	for _, v := range p.Variants {
		if v.ID == *variantID {
			return v.Price
		}
	}
	return p.Price
}
