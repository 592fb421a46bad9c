package domain

import "time"

type OrderStatus string

const (
	OrderPending        OrderStatus = "pending"
	OrderAssigned       OrderStatus = "assigned"
	OrderProcessing     OrderStatus = "processing"
	OrderOutForDelivery OrderStatus = "out_for_delivery"
	OrderDelivered      OrderStatus = "delivered"
	OrderCancelled      OrderStatus = "cancelled"
)

type PaymentStatus string

const (
	PaymentPending   PaymentStatus = "pending"
	PaymentCompleted PaymentStatus = "completed"
)

// Address is the delivery address snapshot serialized onto the order at
// creation time. It is never re-derived from a live profile.
type Address struct {
	Name    string   `json:"name"`
	Phone   string   `json:"phone"`
	Email   string   `json:"email,omitempty"`
	Line1   string   `json:"line1"`
	Line2   string   `json:"line2,omitempty"`
	City    string   `json:"city"`
	Pincode string   `json:"pincode"`
	Lat     *float64 `json:"lat,omitempty"`
	Lng     *float64 `json:"lng,omitempty"`
}

// Order is the aggregate root of fulfillment. Financial fields are immutable
// after creation; only status, assignment and cash fields are mutated by the
// delivery lifecycle. Orders are never deleted.
type Order struct {
	ID               string        `json:"id"`
	Reference        string        `json:"reference"`
	UserID           *string       `json:"userId,omitempty"`
	ShopID           string        `json:"shopId"`
	CourierID        *string       `json:"courierId,omitempty"`
	Status           OrderStatus   `json:"status"`
	PaymentStatus    PaymentStatus `json:"paymentStatus"`
	ItemSubtotal     float64       `json:"itemSubtotal"`
	TaxAmount        float64       `json:"taxAmount"`
	DeliveryFee      float64       `json:"deliveryFee"`
	HandlingFee      float64       `json:"handlingFee"`
	GrandTotal       float64       `json:"grandTotal"`
	Address          Address       `json:"address"`
	Reached          bool          `json:"reached"`
	CashCollected    bool          `json:"cashCollected"`
	CollectedAmount1 *float64      `json:"collectedAmount1,omitempty"`
	CollectedAmount2 *float64      `json:"collectedAmount2,omitempty"`
	RejectionReason  *string       `json:"rejectionReason,omitempty"`
	AcceptedAt       *time.Time    `json:"acceptedAt,omitempty"`
	RejectedAt       *time.Time    `json:"rejectedAt,omitempty"`
	DeliveredAt      *time.Time    `json:"deliveredAt,omitempty"`
	CreatedAt        time.Time     `json:"createdAt"`
	Lines            []OrderLine   `json:"lines,omitempty"`
}

// OrderLine snapshots the product and its unit price at purchase time so
// historical orders stay stable when catalog prices change.
type OrderLine struct {
	ID          string    `json:"id"`
	OrderID     string    `json:"orderId"`
	ProductID   string    `json:"productId"`
	VariantID   *string   `json:"variantId,omitempty"`
	ProductName string    `json:"productName"`
	Quantity    int       `json:"quantity"`
	UnitPrice   float64   `json:"unitPrice"`
	TaxRate     float64   `json:"taxRate"`
	LineTotal   float64   `json:"lineTotal"`
	CreatedAt   time.Time `json:"createdAt"`
}
