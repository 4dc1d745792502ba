package cart

import (
	"time"

	"storefront-be/internal/pricing"
	"storefront-be/internal/product"

	"github.com/shopspring/decimal"
)

// Item is a stored cart row: one product and its quantity.
type Item struct {
	ID         uint
	CustomerID uint
	ProductID  uint
	Quantity   int
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// Line is a cart item joined with the live catalog values it is priced and
// validated against.
type Line struct {
	ProductID      uint
	Name           string
	Quantity       int
	UnitPrice      decimal.Decimal
	StockAvailable int
	Discount       *pricing.Discount
}

func NewLine(item Item, listing *product.Listing) Line {
	return Line{
		ProductID:      item.ProductID,
		Name:           listing.Name,
		Quantity:       item.Quantity,
		UnitPrice:      listing.UnitPrice,
		StockAvailable: listing.Stock,
		Discount:       listing.Discount,
	}
}

type SummaryLine struct {
	Line
	Priced pricing.PricedLine
}

// Summary is the priced view of a cart, computed with the same engine and
// policy that checkout uses.
type Summary struct {
	Lines     []SummaryLine
	ItemCount int
	Totals    pricing.OrderTotals
}

type AddItemParams struct {
	CustomerID uint `validate:"required"`
	ProductID  uint `validate:"required"`
	Quantity   int  `validate:"gte=1"`
}

type UpdateQuantityParams struct {
	CustomerID uint
	ProductID  uint
	Quantity   int
}
