package order

import (
	"cmp"
	"context"
	"database/sql"
	"errors"
	"fmt"
	"slices"

	"storefront-be/internal/cart"
	"storefront-be/internal/customer"
	"storefront-be/internal/logger"
	"storefront-be/internal/payment"
	"storefront-be/internal/pricing"
	"storefront-be/internal/stock"

	"go.uber.org/zap"
)

type Repository interface {
	// Commit persists d in one transaction and returns the new order id.
	// A stock shortage found while decrementing is returned as *stock.Error.
	Commit(ctx context.Context, d *Draft) (uint, error)

	ListByCustomer(ctx context.Context, customerID uint) ([]Order, error)
	ListRecent(ctx context.Context, customerID uint, limit int) ([]Order, error)
	Stats(ctx context.Context, customerID uint) (Stats, error)
	GetByID(ctx context.Context, orderID uint) (*Order, error)
	GetLines(ctx context.Context, orderID uint) ([]Line, error)
	GetShipment(ctx context.Context, orderID uint) (*Shipment, error)
}

type repository struct {
	db       *sql.DB
	carts    cart.Repository
	profiles customer.Repository
	payments payment.Repository
}

func NewRepository(
	db *sql.DB,
	carts cart.Repository,
	profiles customer.Repository,
	payments payment.Repository,
) Repository {
	return &repository{
		db:       db,
		carts:    carts,
		profiles: profiles,
		payments: payments,
	}
}

func (r *repository) Commit(ctx context.Context, d *Draft) (uint, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "repository"),
		zap.String("method", "Commit"),
	)

	tx, err := r.db.BeginTx(ctx, &sql.TxOptions{Isolation: sql.LevelReadCommitted})
	if err != nil {
		return 0, fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	if err := r.profiles.WithTx(tx).UpsertShippingDetails(ctx, d.CustomerID, d.Shipping); err != nil {
		return 0, fmt.Errorf("upsert shipping details: %w", err)
	}

	var orderID uint
	err = tx.QueryRowContext(ctx, `
		INSERT INTO orders (customer_id, order_status, total_amount)
		VALUES ($1, $2, $3)
		RETURNING order_id
	`, d.CustomerID, StatusPending, d.Totals.GrandTotal).Scan(&orderID)
	if err != nil {
		return 0, fmt.Errorf("insert order: %w", err)
	}

	for _, l := range lockOrder(d.Lines) {
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO order_items (order_id, product_id, quantity, price_at_purchase)
			VALUES ($1, $2, $3, $4)
		`, orderID, l.ProductID, l.Quantity, l.UnitPrice()); err != nil {
			return 0, fmt.Errorf("insert order item: %w", err)
		}

		if err := decrementStock(ctx, tx, l.ProductID, l.Quantity); err != nil {
			var serr *stock.Error
			if errors.As(err, &serr) {
				log.Info("stock exhausted at commit",
					zap.Uint("product_id", l.ProductID),
					zap.Int("requested", l.Quantity),
				)
			}
			return 0, err
		}
	}

	if _, err := r.payments.WithTx(tx).Create(ctx, orderID, d.Totals.GrandTotal, d.PaymentMethod); err != nil {
		return 0, fmt.Errorf("insert payment: %w", err)
	}

	if _, err := tx.ExecContext(ctx, `
		INSERT INTO shipping (order_id, shipping_status)
		VALUES ($1, $2)
	`, orderID, ShippingPending); err != nil {
		return 0, fmt.Errorf("insert shipping: %w", err)
	}

	if err := r.carts.WithTx(tx).Clear(ctx, d.CustomerID); err != nil {
		return 0, fmt.Errorf("clear cart: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("commit: %w", err)
	}

	log.Info("order committed", zap.Uint("order_id", orderID))
	return orderID, nil
}

// lockOrder returns the lines sorted by product id so concurrent commits
// take product row locks in the same order.
func lockOrder(lines []pricing.PricedLine) []pricing.PricedLine {
	sorted := slices.Clone(lines)
	slices.SortFunc(sorted, func(a, b pricing.PricedLine) int {
		return cmp.Compare(a.ProductID, b.ProductID)
	})
	return sorted
}

// decrementStock takes qty units only if that many remain. When none are
// taken, the current stock is read in the same tx for the error.
func decrementStock(ctx context.Context, tx *sql.Tx, productID uint, qty int) error {
	res, err := tx.ExecContext(ctx, `
		UPDATE products
		SET stock = stock - $1
		WHERE product_id = $2 AND stock >= $1
	`, qty, productID)
	if err != nil {
		return fmt.Errorf("decrement stock: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("decrement stock: %w", err)
	}
	if affected > 0 {
		return nil
	}

	short := stock.Shortage{ProductID: productID, Requested: qty}
	err = tx.QueryRowContext(ctx, `
		SELECT name, stock FROM products WHERE product_id = $1
	`, productID).Scan(&short.Name, &short.Available)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("read stock: %w", err)
	}

	return &stock.Error{Shortages: []stock.Shortage{short}}
}

const listOrdersQuery = `
	SELECT
		o.order_id,
		o.customer_id,
		o.order_status,
		o.total_amount,
		COALESCE(s.shipping_status, 'Pending'),
		o.created_at
	FROM orders o
	LEFT JOIN shipping s ON s.order_id = o.order_id
	WHERE o.customer_id = $1
	ORDER BY o.created_at DESC, o.order_id DESC
`

func (r *repository) ListByCustomer(ctx context.Context, customerID uint) ([]Order, error) {
	return r.listOrders(ctx, listOrdersQuery, customerID)
}

func (r *repository) ListRecent(ctx context.Context, customerID uint, limit int) ([]Order, error) {
	return r.listOrders(ctx, listOrdersQuery+` LIMIT $2`, customerID, limit)
}

func (r *repository) listOrders(ctx context.Context, query string, args ...any) ([]Order, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		logger.FromCtx(ctx).Error("failed to query orders",
			zap.String("layer", "repository"),
			zap.Error(err),
		)
		return nil, err
	}
	defer rows.Close()

	var orders []Order
	for rows.Next() {
		var o Order
		if err := rows.Scan(
			&o.ID,
			&o.CustomerID,
			&o.Status,
			&o.TotalAmount,
			&o.ShippingStatus,
			&o.CreatedAt,
		); err != nil {
			return nil, err
		}
		orders = append(orders, o)
	}

	return orders, rows.Err()
}

// Stats counts the customer's orders, and how many of them were delivered.
func (r *repository) Stats(ctx context.Context, customerID uint) (Stats, error) {
	var st Stats
	err := r.db.QueryRowContext(ctx, `
		SELECT
			COUNT(*),
			COUNT(*) FILTER (WHERE order_status = $2)
		FROM orders
		WHERE customer_id = $1
	`, customerID, StatusDelivered).Scan(&st.TotalOrders, &st.DeliveredOrders)
	if err != nil {
		logger.FromCtx(ctx).Error("failed to count orders",
			zap.String("layer", "repository"),
			zap.Error(err),
		)
		return Stats{}, err
	}
	return st, nil
}

func (r *repository) GetByID(ctx context.Context, orderID uint) (*Order, error) {
	var o Order
	err := r.db.QueryRowContext(ctx, `
		SELECT
			o.order_id,
			o.customer_id,
			o.order_status,
			o.total_amount,
			COALESCE(s.shipping_status, 'Pending'),
			o.created_at
		FROM orders o
		LEFT JOIN shipping s ON s.order_id = o.order_id
		WHERE o.order_id = $1
	`, orderID).Scan(
		&o.ID,
		&o.CustomerID,
		&o.Status,
		&o.TotalAmount,
		&o.ShippingStatus,
		&o.CreatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrOrderNotFound
	}
	if err != nil {
		return nil, err
	}
	return &o, nil
}

func (r *repository) GetLines(ctx context.Context, orderID uint) ([]Line, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT oi.order_item_id, oi.order_id, oi.product_id, p.name, oi.quantity, oi.price_at_purchase
		FROM order_items oi
		JOIN products p ON p.product_id = oi.product_id
		WHERE oi.order_id = $1
		ORDER BY oi.order_item_id
	`, orderID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var lines []Line
	for rows.Next() {
		var l Line
		if err := rows.Scan(
			&l.ID,
			&l.OrderID,
			&l.ProductID,
			&l.ProductName,
			&l.Quantity,
			&l.PriceAtPurchase,
		); err != nil {
			return nil, err
		}
		lines = append(lines, l)
	}

	return lines, rows.Err()
}

// GetShipment returns nil, nil when the order has no shipping row.
func (r *repository) GetShipment(ctx context.Context, orderID uint) (*Shipment, error) {
	var s Shipment
	err := r.db.QueryRowContext(ctx, `
		SELECT shipping_id, order_id, shipping_status, tracking_number, updated_at
		FROM shipping
		WHERE order_id = $1
	`, orderID).Scan(&s.ID, &s.OrderID, &s.Status, &s.TrackingNumber, &s.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &s, nil
}
