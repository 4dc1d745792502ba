package product

import (
	"context"
	"database/sql"
	"errors"

	"storefront-be/internal/db"
	"storefront-be/internal/logger"
	"storefront-be/internal/pricing"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// Repository is the catalog read side used by cart and checkout. Every call
// reads live values; nothing is cached.
type Repository interface {
	Lookup(ctx context.Context, productID uint) (*Listing, error)
}

type repository struct {
	db db.DBTX
}

func NewRepository(db db.DBTX) Repository {
	return &repository{db: db}
}

const lookupQuery = `
	SELECT
		p.product_id,
		p.name,
		p.price,
		p.stock,
		d.discount_type,
		d.discount_value,
		d.start_date,
		d.end_date
	FROM products p
	LEFT JOIN discounts d ON d.discount_id = p.discount_id
	WHERE p.product_id = $1
`

func (r *repository) Lookup(ctx context.Context, productID uint) (*Listing, error) {
	var (
		l             Listing
		discountType  sql.NullString
		discountValue decimal.NullDecimal
		validFrom     sql.NullTime
		validTo       sql.NullTime
	)

	err := r.db.QueryRowContext(ctx, lookupQuery, productID).Scan(
		&l.ProductID,
		&l.Name,
		&l.UnitPrice,
		&l.Stock,
		&discountType,
		&discountValue,
		&validFrom,
		&validTo,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrProductNotFound
	}
	if err != nil {
		logger.FromCtx(ctx).Error("failed to look up product",
			zap.String("layer", "repository"),
			zap.Uint("product_id", productID),
			zap.Error(err),
		)
		return nil, err
	}

	if discountType.Valid && discountValue.Valid && validFrom.Valid && validTo.Valid {
		l.Discount = &pricing.Discount{
			Type:      pricing.DiscountType(discountType.String),
			Value:     discountValue.Decimal,
			ValidFrom: validFrom.Time,
			ValidTo:   validTo.Time,
		}
	}

	return &l, nil
}
