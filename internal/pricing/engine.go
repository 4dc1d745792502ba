package pricing

import (
	"time"

	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// Engine prices cart lines and aggregates order totals. It holds no mutable
// state and is safe for concurrent use.
type Engine struct {
	policy Policy
}

func NewEngine(policy Policy) *Engine {
	return &Engine{policy: policy}
}

// PriceLine computes the gross, discount and net amounts of one line.
// The discount only applies when asOf falls inside its window.
func (e *Engine) PriceLine(
	productID uint,
	unitPrice decimal.Decimal,
	quantity int,
	discount *Discount,
	asOf time.Time,
) (PricedLine, error) {
	if quantity < 1 {
		return PricedLine{}, ErrInvalidQuantity
	}
	if unitPrice.IsNegative() {
		return PricedLine{}, ErrInvalidPrice
	}

	gross := unitPrice.Mul(decimal.NewFromInt(int64(quantity)))
	off := discountAmount(gross, discount, asOf)

	return PricedLine{
		ProductID:      productID,
		Quantity:       quantity,
		GrossAmount:    gross,
		DiscountAmount: off,
		NetAmount:      gross.Sub(off),
	}, nil
}

// Aggregate sums net amounts and applies the shipping policy. Rounding to
// two decimals happens once here, never per line.
func (e *Engine) Aggregate(lines []PricedLine) OrderTotals {
	subtotal := decimal.Zero
	totalDiscount := decimal.Zero
	for _, l := range lines {
		subtotal = subtotal.Add(l.NetAmount)
		totalDiscount = totalDiscount.Add(l.DiscountAmount)
	}
	subtotal = subtotal.Round(2)

	shipping := e.policy.FlatShippingFee
	if subtotal.GreaterThanOrEqual(e.policy.FreeShippingThreshold) {
		shipping = decimal.Zero
	}

	return OrderTotals{
		Subtotal:      subtotal,
		TotalDiscount: totalDiscount.Round(2),
		ShippingCost:  shipping,
		GrandTotal:    subtotal.Add(shipping),
	}
}

func discountAmount(gross decimal.Decimal, d *Discount, asOf time.Time) decimal.Decimal {
	if d == nil || !d.ActiveOn(asOf) {
		return decimal.Zero
	}

	switch d.Type {
	case DiscountPercentage:
		pct := clamp(d.Value, decimal.Zero, hundred)
		return gross.Mul(pct).Div(hundred)
	case DiscountFixed:
		return clamp(d.Value, decimal.Zero, gross)
	default:
		return decimal.Zero
	}
}

// ActiveOn reports whether day lies inside [ValidFrom, ValidTo], compared by
// calendar date.
func (d *Discount) ActiveOn(day time.Time) bool {
	on := dateOf(day)
	return !on.Before(dateOf(d.ValidFrom)) && !on.After(dateOf(d.ValidTo))
}

func dateOf(t time.Time) time.Time {
	y, m, dd := t.Date()
	return time.Date(y, m, dd, 0, 0, 0, 0, time.UTC)
}

func clamp(v, lo, hi decimal.Decimal) decimal.Decimal {
	if v.LessThan(lo) {
		return lo
	}
	if v.GreaterThan(hi) {
		return hi
	}
	return v
}
