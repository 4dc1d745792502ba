package order

import (
	"time"

	"storefront-be/internal/customer"
	"storefront-be/internal/payment"
	"storefront-be/internal/pricing"

	"github.com/shopspring/decimal"
)

type Status string

const (
	StatusPending   Status = "Pending"
	StatusShipped   Status = "Shipped"
	StatusDelivered Status = "Delivered"
	StatusCancelled Status = "Cancelled"
)

type ShippingStatus string

const (
	ShippingPending   ShippingStatus = "Pending"
	ShippingShipped   ShippingStatus = "Shipped"
	ShippingDelivered ShippingStatus = "Delivered"
)

type Order struct {
	ID             uint
	CustomerID     uint
	Status         Status
	TotalAmount    decimal.Decimal
	ShippingStatus ShippingStatus
	CreatedAt      time.Time
}

// Line is an order item with the per-unit price paid, discount included.
type Line struct {
	ID              uint
	OrderID         uint
	ProductID       uint
	ProductName     string
	Quantity        int
	PriceAtPurchase decimal.Decimal
}

type Shipment struct {
	ID             uint
	OrderID        uint
	Status         ShippingStatus
	TrackingNumber *string
	UpdatedAt      time.Time
}

type Detail struct {
	Order
	Lines    []Line
	Payment  *payment.Payment
	Shipment *Shipment
}

type Stats struct {
	TotalOrders     int
	DeliveredOrders int
}

// Dashboard is the account overview: order counts and the latest orders.
type Dashboard struct {
	Stats
	Recent []Order
}

// Draft is a validated, priced order ready to be committed.
type Draft struct {
	CustomerID    uint
	Shipping      customer.ShippingDetails
	PaymentMethod string
	Lines         []pricing.PricedLine
	Totals        pricing.OrderTotals
}
