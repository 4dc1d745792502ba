package pricing

import "errors"

var (
	ErrInvalidQuantity = errors.New("quantity must be at least 1")
	ErrInvalidPrice    = errors.New("unit price must not be negative")
)
