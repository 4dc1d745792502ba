package customer

import (
	"context"
	"database/sql"
	"errors"

	"storefront-be/internal/db"
)

type Repository interface {
	UpsertShippingDetails(ctx context.Context, customerID uint, d ShippingDetails) error
	GetShippingDetails(ctx context.Context, customerID uint) (*ShippingDetails, error)

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

func (r *repository) UpsertShippingDetails(ctx context.Context, customerID uint, d ShippingDetails) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO customer_details (user_id, full_name, address, phone)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (user_id) DO UPDATE
		SET full_name = EXCLUDED.full_name,
			address = EXCLUDED.address,
			phone = EXCLUDED.phone,
			updated_at = NOW()
	`, customerID, d.FullName, d.Address, d.Phone)
	return err
}

func (r *repository) GetShippingDetails(ctx context.Context, customerID uint) (*ShippingDetails, error) {
	var d ShippingDetails
	err := r.db.QueryRowContext(ctx, `
		SELECT full_name, address, phone, updated_at
		FROM customer_details
		WHERE user_id = $1
	`, customerID).Scan(&d.FullName, &d.Address, &d.Phone, &d.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrShippingDetailsNotFound
	}
	if err != nil {
		return nil, err
	}
	return &d, nil
}
