package cart

import "errors"

var (
	ErrUserNotAuthenticated = errors.New("user not authenticated")

	ErrInvalidQuantity   = errors.New("invalid cart quantity")
	ErrInsufficientStock = errors.New("insufficient stock")

	ErrCartItemNotFound = errors.New("cart item not found")
)
