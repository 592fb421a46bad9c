package domain

import "time"

// DeliveryZone controls fast-vs-standard delivery classification for one
// pincode. Only active and approved zones affect pricing.
type DeliveryZone struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Pincode      string    `json:"pincode"`
	FastDelivery bool      `json:"fastDelivery"`
	Approved     bool      `json:"approved"`
	Active       bool      `json:"active"`
	ShopID       *string   `json:"shopId,omitempty"`
	CreatedAt    time.Time `json:"createdAt"`
}

// ZoneClass is the delivery classification consumed by the pricing engine.
type ZoneClass string

const (
	ZoneFast     ZoneClass = "fast"
	ZoneStandard ZoneClass = "standard"
	// ZoneUnknown means no active approved zone matched the pincode. It prices
	// the same as standard.
	ZoneUnknown ZoneClass = "unknown"
)
