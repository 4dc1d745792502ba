package payment

import (
	"context"
	"database/sql"
	"errors"

	"storefront-be/internal/db"

	"github.com/shopspring/decimal"
)

type Repository interface {
	Create(ctx context.Context, orderID uint, amount decimal.Decimal, method string) (uint, error)
	GetByOrder(ctx context.Context, orderID uint) (*Payment, error)

	WithTx(tx *sql.Tx) Repository
}

type repository struct {
	db db.DBTX
}

func NewRepository(db db.DBTX) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *sql.Tx) Repository {
	return &repository{db: tx}
}

// Create inserts a pending payment for orderID.
func (r *repository) Create(ctx context.Context, orderID uint, amount decimal.Decimal, method string) (uint, error) {
	var id uint
	err := r.db.QueryRowContext(ctx, `
		INSERT INTO payments (order_id, amount, method, status)
		VALUES ($1, $2, $3, $4)
		RETURNING payment_id
	`, orderID, amount, method, StatusPending).Scan(&id)
	return id, err
}

func (r *repository) GetByOrder(ctx context.Context, orderID uint) (*Payment, error) {
	var p Payment
	err := r.db.QueryRowContext(ctx, `
		SELECT payment_id, order_id, amount, method, status, transaction_date
		FROM payments
		WHERE order_id = $1
	`, orderID).Scan(
		&p.ID,
		&p.OrderID,
		&p.Amount,
		&p.Method,
		&p.Status,
		&p.TransactionDate,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrPaymentNotFound
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}
