package payment

import (
	"time"

	"github.com/shopspring/decimal"
)

type Status string

const (
	StatusPending   Status = "Pending"
	StatusCompleted Status = "Completed"
	StatusFailed    Status = "Failed"
)

// Payment is the single payment record created alongside an order.
type Payment struct {
	ID              uint
	OrderID         uint
	Amount          decimal.Decimal
	Method          string
	Status          Status
	TransactionDate time.Time
}
