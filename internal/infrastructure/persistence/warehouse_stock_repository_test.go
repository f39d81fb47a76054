package persistence

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/comercia/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/comercia/backend/internal/domain/inventory"
)

func TestGormWarehouseStockRepository_SaveWithLock(t *testing.T) {
	t.Run("persists when the stored version matches", func(t *testing.T) {
		db, mock, mockDB := newMockDB(t)
		defer mockDB.Close()
		repo := NewGormWarehouseStockRepository(db)

		stock, err := inventory.NewWarehouseStock(uuid.New(), uuid.New(), uuid.New())
		require.NoError(t, err)
		require.NoError(t, stock.Apply(decimal.NewFromInt(5)))

		mock.ExpectExec(`UPDATE "warehouse_stocks" SET .* WHERE id = \$\d+ AND version = \$\d+`).
			WillReturnResult(sqlmock.NewResult(0, 1))

		assert.NoError(t, repo.SaveWithLock(context.Background(), stock))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("returns ErrStaleVersion when another writer got there first", func(t *testing.T) {
		db, mock, mockDB := newMockDB(t)
		defer mockDB.Close()
		repo := NewGormWarehouseStockRepository(db)

		stock, err := inventory.NewWarehouseStock(uuid.New(), uuid.New(), uuid.New())
		require.NoError(t, err)
		require.NoError(t, stock.Apply(decimal.NewFromInt(5)))

		mock.ExpectExec(`UPDATE "warehouse_stocks" SET .* WHERE id = \$\d+ AND version = \$\d+`).
			WillReturnResult(sqlmock.NewResult(0, 0))

		err = repo.SaveWithLock(context.Background(), stock)
		assert.ErrorIs(t, err, shared.ErrStaleVersion)
	})
}
