package pricing

import (
	"time"

	"github.com/shopspring/decimal"
)

type DiscountType string

const (
	DiscountPercentage DiscountType = "percentage"
	DiscountFixed      DiscountType = "fixed"
)

// Discount is a time-bounded reduction attached to a product.
// ValidFrom and ValidTo are calendar dates; the window includes both days.
type Discount struct {
	Type      DiscountType
	Value     decimal.Decimal
	ValidFrom time.Time
	ValidTo   time.Time
}

type PricedLine struct {
	ProductID      uint
	Quantity       int
	GrossAmount    decimal.Decimal
	DiscountAmount decimal.Decimal
	NetAmount      decimal.Decimal
}

// UnitPrice is the discount-adjusted price of a single unit, rounded to
// currency precision. It is what an order line records as price at purchase.
func (l PricedLine) UnitPrice() decimal.Decimal {
	if l.Quantity < 1 {
		return decimal.Zero
	}
	return l.NetAmount.Div(decimal.NewFromInt(int64(l.Quantity))).Round(2)
}

type OrderTotals struct {
	Subtotal      decimal.Decimal
	TotalDiscount decimal.Decimal
	ShippingCost  decimal.Decimal
	GrandTotal    decimal.Decimal
}

// Policy holds the shipping rule applied during aggregation.
type Policy struct {
	FreeShippingThreshold decimal.Decimal
	FlatShippingFee       decimal.Decimal
}

func DefaultPolicy() Policy {
	return Policy{
		FreeShippingThreshold: decimal.NewFromInt(1000),
		FlatShippingFee:       decimal.NewFromInt(50),
	}
}
