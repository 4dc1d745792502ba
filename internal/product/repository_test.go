package product

import (
	"context"
	"errors"
	"testing"
	"time"

	"storefront-be/internal/pricing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var lookupColumns = []string{
	"product_id", "name", "price", "stock",
	"discount_type", "discount_value", "start_date", "end_date",
}

func TestRepository_Lookup(t *testing.T) {
	ctx := context.Background()

	t.Run("WithDiscount", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()
		repo := NewRepository(db)

		from := time.Date(2026, 10, 1, 0, 0, 0, 0, time.UTC)
		to := time.Date(2026, 10, 31, 0, 0, 0, 0, time.UTC)
		mock.ExpectQuery(`SELECT .* FROM products p LEFT JOIN discounts d .* WHERE p.product_id = \$1`).
			WithArgs(uint(7)).
			WillReturnRows(sqlmock.NewRows(lookupColumns).
				AddRow(7, "Desk Lamp", "499.50", 12, "percentage", "10", from, to))

		l, err := repo.Lookup(ctx, 7)
		require.NoError(t, err)
		assert.Equal(t, uint(7), l.ProductID)
		assert.Equal(t, "Desk Lamp", l.Name)
		assert.Equal(t, "499.50", l.UnitPrice.StringFixed(2))
		assert.Equal(t, 12, l.Stock)
		require.NotNil(t, l.Discount)
		assert.Equal(t, pricing.DiscountPercentage, l.Discount.Type)
		assert.Equal(t, "10", l.Discount.Value.String())
		assert.Equal(t, from, l.Discount.ValidFrom)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("WithoutDiscount", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()
		repo := NewRepository(db)

		mock.ExpectQuery(`SELECT .* FROM products p`).
			WithArgs(uint(8)).
			WillReturnRows(sqlmock.NewRows(lookupColumns).
				AddRow(8, "Mug", "120", 3, nil, nil, nil, nil))

		l, err := repo.Lookup(ctx, 8)
		require.NoError(t, err)
		assert.Nil(t, l.Discount)
	})

	t.Run("NotFound", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()
		repo := NewRepository(db)

		mock.ExpectQuery(`SELECT .* FROM products p`).
			WithArgs(uint(9)).
			WillReturnRows(sqlmock.NewRows(lookupColumns))

		_, err = repo.Lookup(ctx, 9)
		assert.ErrorIs(t, err, ErrProductNotFound)
	})

	t.Run("DBError", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()
		repo := NewRepository(db)

		mock.ExpectQuery(`SELECT .* FROM products p`).
			WillReturnError(errors.New("db error"))

		_, err = repo.Lookup(ctx, 1)
		assert.EqualError(t, err, "db error")
	})
}
