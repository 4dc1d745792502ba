package product

import (
	"storefront-be/internal/pricing"

	"github.com/shopspring/decimal"
)

// Listing is the live price, stock and discount of a product as read from
// the catalog at a point in time.
type Listing struct {
	ProductID uint
	Name      string
	UnitPrice decimal.Decimal
	Stock     int
	Discount  *pricing.Discount
}
