package order

import "errors"

var (
	ErrOrderNotFound        = errors.New("order not found")
	ErrUserNotAuthenticated = errors.New("user not authenticated")
)
