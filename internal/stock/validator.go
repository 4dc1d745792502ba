package stock

import "storefront-be/internal/cart"

// Validate is a point-in-time check of requested quantities against the
// stock values carried by the lines. The commit still guards the decrement
// with a conditional update, since stock can move after this check.
func Validate(lines []cart.Line) error {
	if len(lines) == 0 {
		return ErrEmptyCart
	}

	var shortages []Shortage
	for _, l := range lines {
		if l.Quantity > l.StockAvailable {
			shortages = append(shortages, Shortage{
				ProductID: l.ProductID,
				Name:      l.Name,
				Requested: l.Quantity,
				Available: l.StockAvailable,
			})
		}
	}

	if len(shortages) > 0 {
		return &Error{Shortages: shortages}
	}
	return nil
}
