package persistence

import (
	"context"
	"database/sql"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/comercia/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// newMockDB creates a GORM connection backed by sqlmock
func newMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock, *sql.DB) {
	t.Helper()

	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)

	dialector := postgres.New(postgres.Config{
		Conn:       mockDB,
		DriverName: "postgres",
	})

	gormDB, err := gorm.Open(dialector, &gorm.Config{
		SkipDefaultTransaction: true,
	})
	require.NoError(t, err)

	return gormDB, mock, mockDB
}

func TestGormSupplierRepository_FindByIDForTenant(t *testing.T) {
	t.Run("finds existing supplier", func(t *testing.T) {
		db, mock, mockDB := newMockDB(t)
		defer mockDB.Close()
		repo := NewGormSupplierRepository(db)

		supplierID := uuid.New()
		tenantID := uuid.New()

		rows := sqlmock.NewRows([]string{"id", "tenant_id", "code", "name", "tax_id", "payment_terms_days", "active", "version"}).
			AddRow(supplierID, tenantID, "PROV001", "Acme SA", "30-11111111-9", 30, true, 1)

		mock.ExpectQuery(`SELECT \* FROM "suppliers" WHERE tenant_id = \$1 AND id = \$2 ORDER BY .* LIMIT .*`).
			WithArgs(tenantID, supplierID, 1).
			WillReturnRows(rows)

		supplier, err := repo.FindByIDForTenant(context.Background(), tenantID, supplierID)
		require.NoError(t, err)
		assert.Equal(t, supplierID, supplier.ID)
		assert.Equal(t, "PROV001", supplier.Code)
		assert.Equal(t, "30-11111111-9", supplier.TaxID)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("returns ErrNotFound for missing supplier", func(t *testing.T) {
		db, mock, mockDB := newMockDB(t)
		defer mockDB.Close()
		repo := NewGormSupplierRepository(db)

		tenantID := uuid.New()
		supplierID := uuid.New()

		mock.ExpectQuery(`SELECT \* FROM "suppliers"`).
			WithArgs(tenantID, supplierID, 1).
			WillReturnRows(sqlmock.NewRows([]string{"id"}))

		_, err := repo.FindByIDForTenant(context.Background(), tenantID, supplierID)
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})

	t.Run("does not return a supplier from another tenant", func(t *testing.T) {
		db, mock, mockDB := newMockDB(t)
		defer mockDB.Close()
		repo := NewGormSupplierRepository(db)

		otherTenant := uuid.New()
		supplierID := uuid.New()

		// The tenant filter is part of the query itself, so the row simply
		// does not come back.
		mock.ExpectQuery(`SELECT \* FROM "suppliers" WHERE tenant_id = \$1 AND id = \$2`).
			WithArgs(otherTenant, supplierID, 1).
			WillReturnRows(sqlmock.NewRows([]string{"id"}))

		_, err := repo.FindByIDForTenant(context.Background(), otherTenant, supplierID)
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})
}

func TestGormSupplierRepository_CountForTenant(t *testing.T) {
	db, mock, mockDB := newMockDB(t)
	defer mockDB.Close()
	repo := NewGormSupplierRepository(db)

	tenantID := uuid.New()

	mock.ExpectQuery(`SELECT count\(\*\) FROM "suppliers" WHERE tenant_id = \$1`).
		WithArgs(tenantID).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(3))

	count, err := repo.CountForTenant(context.Background(), tenantID, shared.Filter{})
	require.NoError(t, err)
	assert.Equal(t, int64(3), count)
}

func TestGormSupplierRepository_Delete(t *testing.T) {
	t.Run("deletes existing supplier", func(t *testing.T) {
		db, mock, mockDB := newMockDB(t)
		defer mockDB.Close()
		repo := NewGormSupplierRepository(db)

		tenantID := uuid.New()
		supplierID := uuid.New()

		mock.ExpectExec(`DELETE FROM "suppliers" WHERE tenant_id = \$1 AND id = \$2`).
			WithArgs(tenantID, supplierID).
			WillReturnResult(sqlmock.NewResult(0, 1))

		assert.NoError(t, repo.Delete(context.Background(), tenantID, supplierID))
	})

	t.Run("returns ErrNotFound when nothing was deleted", func(t *testing.T) {
		db, mock, mockDB := newMockDB(t)
		defer mockDB.Close()
		repo := NewGormSupplierRepository(db)

		tenantID := uuid.New()
		supplierID := uuid.New()

		mock.ExpectExec(`DELETE FROM "suppliers"`).
			WithArgs(tenantID, supplierID).
			WillReturnResult(sqlmock.NewResult(0, 0))

		err := repo.Delete(context.Background(), tenantID, supplierID)
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})
}
