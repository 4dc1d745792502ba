package checkout

import (
	"strings"

	"storefront-be/internal/customer"
)

// shippingDetails trims the input and composes the address from its split
// lines when no single address was given. The second line is only appended
// when present.
func shippingDetails(in *ShippingDetailsInput) (customer.ShippingDetails, error) {
	if in == nil {
		return customer.ShippingDetails{}, &MissingFieldError{Field: "full_name"}
	}

	d := customer.ShippingDetails{
		FullName: strings.TrimSpace(in.FullName),
		Address:  strings.TrimSpace(in.Address),
		Phone:    strings.TrimSpace(in.Phone),
	}

	if d.Address == "" {
		d.Address = strings.TrimSpace(in.AddressLine1)
		if line2 := strings.TrimSpace(in.AddressLine2); line2 != "" {
			if d.Address == "" {
				d.Address = line2
			} else {
				d.Address += ", " + line2
			}
		}
	}

	switch {
	case d.FullName == "":
		return d, &MissingFieldError{Field: "full_name"}
	case d.Address == "":
		return d, &MissingFieldError{Field: "address"}
	case d.Phone == "":
		return d, &MissingFieldError{Field: "phone"}
	}

	return d, nil
}
