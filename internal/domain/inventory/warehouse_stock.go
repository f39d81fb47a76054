package inventory

import (
	"time"

	"github.com/comercia/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// WarehouseStock is the materialized per-warehouse, per-product balance.
// Invariant: Quantity equals the signed sum of the product's stock movements
// in the warehouse; both are always written in the same transaction.
// Version backs the optimistic write that keeps concurrent mutations from
// losing updates.
type WarehouseStock struct {
	ID          uuid.UUID       `gorm:"type:uuid;primary_key"`
	TenantID    uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex:idx_warehouse_stock_key,priority:1"`
	WarehouseID uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex:idx_warehouse_stock_key,priority:2"`
	ProductID   uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex:idx_warehouse_stock_key,priority:3"`
	Quantity    decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	Version     int             `gorm:"not null;default:1"`
	CreatedAt   time.Time       `gorm:"not null"`
	UpdatedAt   time.Time       `gorm:"not null"`
}

// TableName returns the table name for GORM
func (WarehouseStock) TableName() string {
	return "warehouse_stocks"
}

// NewWarehouseStock creates a zero-quantity balance row
func NewWarehouseStock(tenantID, warehouseID, productID uuid.UUID) (*WarehouseStock, error) {
	if warehouseID == uuid.Nil || productID == uuid.Nil {
		return nil, shared.NewValidationError("Warehouse and product are required")
	}

	now := time.Now()
	return &WarehouseStock{
		ID:          uuid.New(),
		TenantID:    tenantID,
		WarehouseID: warehouseID,
		ProductID:   productID,
		Quantity:    decimal.Zero,
		Version:     1,
		CreatedAt:   now,
		UpdatedAt:   now,
	}, nil
}

// Apply adds a signed movement quantity to the balance. Negative balances are
// permitted; the ledger records what happened, it does not police it.
func (ws *WarehouseStock) Apply(quantity decimal.Decimal) error {
	if quantity.IsZero() {
		return shared.NewValidationError("Movement quantity cannot be zero")
	}
	ws.Quantity = ws.Quantity.Add(quantity)
	ws.Version++
	ws.UpdatedAt = time.Now()
	return nil
}
