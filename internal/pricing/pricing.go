// Package pricing computes order totals from resolved line items and a
// delivery-zone classification. It is pure: no storage, no rounding until
// display.
package pricing

import (
	"freshbasket/internal/domain"
)

const (
	// FastDeliveryFee applies when the destination pincode matches an active,
	// approved, fast-delivery zone.
	FastDeliveryFee = 25.0
	// StandardDeliveryFee applies to standard and unmatched pincodes.
	StandardDeliveryFee = 15.0
	// HandlingFee is charged once per order regardless of size.
	HandlingFee = 5.0
)

// Line is one priced item: unit price, tax rate in percent and quantity.
type Line struct {
	UnitPrice float64
	TaxRate   float64
	Quantity  int
}

// Quote is the fee breakdown persisted onto an order.
type Quote struct {
	ItemSubtotal float64
	TaxAmount    float64
	DeliveryFee  float64
	HandlingFee  float64
	GrandTotal   float64
}

// Compute prices the given lines. Tax is computed per line and then summed so
// mixed tax rates are handled correctly. The grand total is the exact sum of
// the four components.
func Compute(lines []Line, zone domain.ZoneClass) (Quote, error) {
	var q Quote
	for _, l := range lines {
		if l.Quantity <= 0 {
			return Quote{}, domain.ErrInvalidQuantity
		}
		lineTotal := l.UnitPrice * float64(l.Quantity)
		q.ItemSubtotal += lineTotal
		q.TaxAmount += lineTotal * l.TaxRate / 100
	}

	q.DeliveryFee = StandardDeliveryFee
	if zone == domain.ZoneFast {
		q.DeliveryFee = FastDeliveryFee
	}
	q.HandlingFee = HandlingFee
	q.GrandTotal = q.ItemSubtotal + q.TaxAmount + q.DeliveryFee + q.HandlingFee
	return q, nil
}
