package domain

import "time"

type Shop struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Lat       float64   `json:"lat"`
	Lng       float64   `json:"lng"`
	RadiusKM  float64   `json:"radiusKm"`
	Active    bool      `json:"active"`
	OwnerID   *string   `json:"ownerId,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}
