package customer

import "errors"

var ErrShippingDetailsNotFound = errors.New("shipping details not found")
