package cart

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var itemColumns = []string{"id", "customer_id", "product_id", "quantity", "created_at", "updated_at"}

func TestRepository_GetItems(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewRepository(db)
	now := time.Now()

	t.Run("Success", func(t *testing.T) {
		mock.ExpectQuery(`SELECT .* FROM cart_items WHERE customer_id = \$1 ORDER BY id DESC`).
			WithArgs(uint(1)).
			WillReturnRows(sqlmock.NewRows(itemColumns).
				AddRow(2, 1, 20, 3, now, now).
				AddRow(1, 1, 10, 1, now, now))

		items, err := repo.GetItems(context.Background(), 1)
		require.NoError(t, err)
		require.Len(t, items, 2)
		assert.Equal(t, uint(20), items[0].ProductID)
		assert.Equal(t, 3, items[0].Quantity)
	})

	t.Run("Empty", func(t *testing.T) {
		mock.ExpectQuery(`SELECT .* FROM cart_items`).
			WithArgs(uint(1)).
			WillReturnRows(sqlmock.NewRows(itemColumns))

		items, err := repo.GetItems(context.Background(), 1)
		require.NoError(t, err)
		assert.Empty(t, items)
	})

	t.Run("Error", func(t *testing.T) {
		mock.ExpectQuery(`SELECT .* FROM cart_items`).
			WillReturnError(errors.New("db error"))

		_, err := repo.GetItems(context.Background(), 1)
		assert.Error(t, err)
	})

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_GetItem(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewRepository(db)

	t.Run("Found", func(t *testing.T) {
		mock.ExpectQuery(`SELECT .* FROM cart_items WHERE customer_id = \$1 AND product_id = \$2`).
			WithArgs(uint(1), uint(10)).
			WillReturnRows(sqlmock.NewRows(itemColumns).AddRow(5, 1, 10, 2, time.Now(), time.Now()))

		it, err := repo.GetItem(context.Background(), 1, 10)
		require.NoError(t, err)
		require.NotNil(t, it)
		assert.Equal(t, uint(5), it.ID)
	})

	t.Run("Missing", func(t *testing.T) {
		mock.ExpectQuery(`SELECT .* FROM cart_items`).
			WithArgs(uint(1), uint(11)).
			WillReturnRows(sqlmock.NewRows(itemColumns))

		it, err := repo.GetItem(context.Background(), 1, 11)
		assert.NoError(t, err)
		assert.Nil(t, it)
	})
}

func TestRepository_CreateItem(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewRepository(db)

	t.Run("Success", func(t *testing.T) {
		mock.ExpectQuery("INSERT INTO cart_items").
			WithArgs(uint(1), uint(10), 2).
			WillReturnRows(sqlmock.NewRows([]string{"id", "created_at", "updated_at"}).
				AddRow(9, time.Now(), time.Now()))

		it, err := repo.CreateItem(context.Background(), 1, 10, 2)
		require.NoError(t, err)
		assert.Equal(t, uint(9), it.ID)
		assert.Equal(t, 2, it.Quantity)
	})

	t.Run("Error", func(t *testing.T) {
		mock.ExpectQuery("INSERT INTO cart_items").
			WillReturnError(errors.New("db error"))

		_, err := repo.CreateItem(context.Background(), 1, 10, 2)
		assert.Error(t, err)
	})
}

func TestRepository_UpdateQuantity(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewRepository(db)

	t.Run("Success", func(t *testing.T) {
		mock.ExpectExec(`UPDATE cart_items SET quantity = \$1`).
			WithArgs(5, uint(1), uint(10)).
			WillReturnResult(sqlmock.NewResult(0, 1))

		assert.NoError(t, repo.UpdateQuantity(context.Background(), 1, 10, 5))
	})

	t.Run("NotFound", func(t *testing.T) {
		mock.ExpectExec(`UPDATE cart_items`).
			WillReturnResult(sqlmock.NewResult(0, 0))

		err := repo.UpdateQuantity(context.Background(), 1, 10, 5)
		assert.ErrorIs(t, err, ErrCartItemNotFound)
	})

	t.Run("InvalidQuantity", func(t *testing.T) {
		err := repo.UpdateQuantity(context.Background(), 1, 10, 0)
		assert.ErrorIs(t, err, ErrInvalidQuantity)
	})
}

func TestRepository_RemoveItem(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewRepository(db)

	mock.ExpectExec(`DELETE FROM cart_items WHERE customer_id = \$1 AND product_id = \$2`).
		WithArgs(uint(1), uint(10)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	assert.NoError(t, repo.RemoveItem(context.Background(), 1, 10))

	mock.ExpectExec(`DELETE FROM cart_items`).
		WithArgs(uint(1), uint(99)).
		WillReturnResult(sqlmock.NewResult(0, 0))
	assert.ErrorIs(t, repo.RemoveItem(context.Background(), 1, 99), ErrCartItemNotFound)
}

func TestRepository_ClearWithTx(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectExec(`DELETE FROM cart_items WHERE customer_id = \$1`).
		WithArgs(uint(1)).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectCommit()

	tx, err := db.Begin()
	require.NoError(t, err)

	// An empty cart clears without error.
	require.NoError(t, NewRepository(db).WithTx(tx).Clear(context.Background(), 1))
	require.NoError(t, tx.Commit())
	assert.NoError(t, mock.ExpectationsWereMet())
}
