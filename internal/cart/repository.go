package cart

import (
	"context"
	"database/sql"
	"errors"

	"storefront-be/internal/db"
)

type Repository interface {
	GetItems(ctx context.Context, customerID uint) ([]Item, error)
	GetItem(ctx context.Context, customerID, productID uint) (*Item, error)
	CreateItem(ctx context.Context, customerID, productID uint, quantity int) (*Item, error)
	UpdateQuantity(ctx context.Context, customerID, productID uint, quantity int) error
	RemoveItem(ctx context.Context, customerID, productID uint) error
	Clear(ctx context.Context, customerID uint) error

	// WithTx returns a repository bound to tx.
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

func (r *repository) GetItems(ctx context.Context, customerID uint) ([]Item, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, customer_id, product_id, quantity, created_at, updated_at
		FROM cart_items
		WHERE customer_id = $1
		ORDER BY id DESC
	`, customerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []Item
	for rows.Next() {
		var it Item
		if err := rows.Scan(
			&it.ID,
			&it.CustomerID,
			&it.ProductID,
			&it.Quantity,
			&it.CreatedAt,
			&it.UpdatedAt,
		); err != nil {
			return nil, err
		}
		items = append(items, it)
	}

	return items, rows.Err()
}

func (r *repository) GetItem(ctx context.Context, customerID, productID uint) (*Item, error) {
	var it Item
	err := r.db.QueryRowContext(ctx, `
		SELECT id, customer_id, product_id, quantity, created_at, updated_at
		FROM cart_items
		WHERE customer_id = $1 AND product_id = $2
	`, customerID, productID).Scan(
		&it.ID,
		&it.CustomerID,
		&it.ProductID,
		&it.Quantity,
		&it.CreatedAt,
		&it.UpdatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &it, nil
}

func (r *repository) CreateItem(ctx context.Context, customerID, productID uint, quantity int) (*Item, error) {
	it := Item{CustomerID: customerID, ProductID: productID, Quantity: quantity}
	err := r.db.QueryRowContext(ctx, `
		INSERT INTO cart_items (customer_id, product_id, quantity)
		VALUES ($1, $2, $3)
		RETURNING id, created_at, updated_at
	`, customerID, productID, quantity).Scan(&it.ID, &it.CreatedAt, &it.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &it, nil
}

func (r *repository) UpdateQuantity(ctx context.Context, customerID, productID uint, quantity int) error {
	if quantity <= 0 {
		return ErrInvalidQuantity
	}

	res, err := r.db.ExecContext(ctx, `
		UPDATE cart_items
		SET quantity = $1, updated_at = NOW()
		WHERE customer_id = $2 AND product_id = $3
	`, quantity, customerID, productID)
	if err != nil {
		return err
	}
	return requireAffected(res)
}

func (r *repository) RemoveItem(ctx context.Context, customerID, productID uint) error {
	res, err := r.db.ExecContext(ctx, `
		DELETE FROM cart_items
		WHERE customer_id = $1 AND product_id = $2
	`, customerID, productID)
	if err != nil {
		return err
	}
	return requireAffected(res)
}

// Clear deletes every item of the customer's cart. Clearing an already
// empty cart is not an error.
func (r *repository) Clear(ctx context.Context, customerID uint) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM cart_items WHERE customer_id = $1`, customerID)
	return err
}

func requireAffected(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrCartItemNotFound
	}
	return nil
}
