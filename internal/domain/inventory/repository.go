package inventory

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// StockMovementRepository persists the append-only stock ledger
type StockMovementRepository interface {
	FindBySource(ctx context.Context, tenantID uuid.UUID, sourceType StockSourceType, sourceID uuid.UUID) ([]StockMovement, error)
	// SumForProduct returns the signed sum of all movements for a product in
	// a warehouse, the figure the materialized balance must equal.
	SumForProduct(ctx context.Context, tenantID, warehouseID, productID uuid.UUID) (decimal.Decimal, error)
	Save(ctx context.Context, movements ...*StockMovement) error
}

// WarehouseStockRepository persists materialized stock balances
type WarehouseStockRepository interface {
	// FindOrCreate returns the balance row for the pair, creating a zero row
	// when none exists yet.
	FindOrCreate(ctx context.Context, tenantID, warehouseID, productID uuid.UUID) (*WarehouseStock, error)
	FindByWarehouse(ctx context.Context, tenantID, warehouseID uuid.UUID) ([]WarehouseStock, error)
	// SaveWithLock persists the row guarded by its version; a stale version
	// returns shared.ErrStaleVersion.
	SaveWithLock(ctx context.Context, stock *WarehouseStock) error
}
