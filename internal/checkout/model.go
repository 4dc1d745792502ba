package checkout

import "github.com/shopspring/decimal"

type State string

const (
	StateDraft     State = "draft"
	StateValidated State = "validated"
	StateCommitted State = "committed"
	StateFailed    State = "failed"
)

type ShippingDetailsInput struct {
	FullName     string `json:"fullName"`
	Address      string `json:"address"`
	AddressLine1 string `json:"addressLine1"`
	AddressLine2 string `json:"addressLine2"`
	Phone        string `json:"phone"`
}

type PlaceOrderRequest struct {
	PaymentMethod   string                `json:"paymentMethod"`
	ShippingDetails *ShippingDetailsInput `json:"shippingDetails"`
}

type Receipt struct {
	OrderID       uint
	TotalAmount   decimal.Decimal
	PaymentMethod string
}
