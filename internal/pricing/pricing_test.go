package pricing

import (
	"testing"

	"freshbasket/internal/domain"
	"github.com/stretchr/testify/require"
)

func TestComputeFastZone(t *testing.T) {
	lines := []Line{
		{UnitPrice: 100, TaxRate: 5, Quantity: 2},
		{UnitPrice: 50, TaxRate: 0, Quantity: 1},
	}
	q, err := Compute(lines, domain.ZoneFast)
	require.NoError(t, err)
	require.Equal(t, 250.0, q.ItemSubtotal)
	require.Equal(t, 10.0, q.TaxAmount)
	require.Equal(t, 25.0, q.DeliveryFee)
	require.Equal(t, 5.0, q.HandlingFee)
	require.Equal(t, 290.0, q.GrandTotal)
}

func TestComputeStandardAndUnknownPriceTheSame(t *testing.T) {
	lines := []Line{{UnitPrice: 80, TaxRate: 12, Quantity: 1}}
	std, err := Compute(lines, domain.ZoneStandard)
	require.NoError(t, err)
	unk, err := Compute(lines, domain.ZoneUnknown)
	require.NoError(t, err)
	require.Equal(t, std, unk)
	require.Equal(t, StandardDeliveryFee, std.DeliveryFee)
}

func TestComputeMixedTaxRatesPerLine(t *testing.T) {
	// Per-line tax, not aggregate: 33.33*3*5% + 10*1*18%.
	lines := []Line{
		{UnitPrice: 33.33, TaxRate: 5, Quantity: 3},
		{UnitPrice: 10, TaxRate: 18, Quantity: 1},
	}
	q, err := Compute(lines, domain.ZoneStandard)
	require.NoError(t, err)
	require.InDelta(t, 33.33*3*0.05+10*0.18, q.TaxAmount, 1e-9)
}

func TestComputeGrandTotalIdentity(t *testing.T) {
	lines := []Line{
		{UnitPrice: 19.99, TaxRate: 7.5, Quantity: 4},
		{UnitPrice: 3.5, TaxRate: 0, Quantity: 9},
		{UnitPrice: 249, TaxRate: 18, Quantity: 1},
	}
	q, err := Compute(lines, domain.ZoneFast)
	require.NoError(t, err)
	require.Equal(t, q.ItemSubtotal+q.TaxAmount+q.DeliveryFee+q.HandlingFee, q.GrandTotal)
}

func TestComputeRejectsNonPositiveQuantity(t *testing.T) {
	_, err := Compute([]Line{{UnitPrice: 10, TaxRate: 5, Quantity: 0}}, domain.ZoneStandard)
	require.ErrorIs(t, err, domain.ErrInvalidQuantity)

	_, err = Compute([]Line{{UnitPrice: 10, TaxRate: 5, Quantity: -2}}, domain.ZoneStandard)
	require.ErrorIs(t, err, domain.ErrInvalidQuantity)
}

func TestComputeEmptyLines(t *testing.T) {
	// The transaction manager rejects empty carts before pricing; an empty
	// quote still carries the flat fees.
	q, err := Compute(nil, domain.ZoneStandard)
	require.NoError(t, err)
	require.Equal(t, 0.0, q.ItemSubtotal)
	require.Equal(t, StandardDeliveryFee+HandlingFee, q.GrandTotal)
}
