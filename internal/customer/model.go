package customer

import "time"

// ShippingDetails is the single delivery contact stored per customer and
// overwritten on every checkout.
type ShippingDetails struct {
	FullName  string
	Address   string
	Phone     string
	UpdatedAt time.Time
}
