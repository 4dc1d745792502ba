package payment

import "errors"

var (
	ErrPaymentNotFound   = errors.New("payment not found")
	ErrUnsupportedMethod = errors.New("unsupported payment method")
)
