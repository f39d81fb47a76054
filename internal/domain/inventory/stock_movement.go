package inventory

import (
	"time"

	"github.com/comercia/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// StockSourceType identifies the document that produced a stock movement
type StockSourceType string

const (
	StockSourceReceivingNote   StockSourceType = "RECEIVING_NOTE"
	StockSourcePurchaseInvoice StockSourceType = "PURCHASE_INVOICE"
	StockSourceAdjustment      StockSourceType = "ADJUSTMENT"
)

// IsValid checks if the source type is a valid StockSourceType
func (s StockSourceType) IsValid() bool {
	switch s {
	case StockSourceReceivingNote, StockSourcePurchaseInvoice, StockSourceAdjustment:
		return true
	}
	return false
}

// String returns the string representation of StockSourceType
func (s StockSourceType) String() string {
	return string(s)
}

// StockMovement is one append-only entry in the stock ledger. Quantity is
// signed; reversals are new negative entries pointing back at the original via
// ReversalOfID, never updates or deletes.
type StockMovement struct {
	ID           uuid.UUID       `gorm:"type:uuid;primary_key"`
	TenantID     uuid.UUID       `gorm:"type:uuid;not null;index"`
	WarehouseID  uuid.UUID       `gorm:"type:uuid;not null;index:idx_stock_movement_wh_product"`
	ProductID    uuid.UUID       `gorm:"type:uuid;not null;index:idx_stock_movement_wh_product"`
	Quantity     decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	SourceType   StockSourceType `gorm:"type:varchar(30);not null"`
	SourceID     uuid.UUID       `gorm:"type:uuid;not null;index"`
	ReversalOfID *uuid.UUID      `gorm:"type:uuid"`
	MovementDate time.Time       `gorm:"not null"`
	CreatedAt    time.Time       `gorm:"not null"`
}

// TableName returns the table name for GORM
func (StockMovement) TableName() string {
	return "stock_movements"
}

// NewStockMovement creates a signed ledger entry
func NewStockMovement(tenantID, warehouseID, productID uuid.UUID, quantity decimal.Decimal, sourceType StockSourceType, sourceID uuid.UUID) (*StockMovement, error) {
	if warehouseID == uuid.Nil || productID == uuid.Nil {
		return nil, shared.NewValidationError("Warehouse and product are required")
	}
	if quantity.IsZero() {
		return nil, shared.NewValidationError("Movement quantity cannot be zero")
	}
	if !sourceType.IsValid() {
		return nil, shared.NewValidationError("Movement source type is not valid")
	}
	if sourceID == uuid.Nil {
		return nil, shared.NewValidationError("Movement source ID cannot be empty")
	}

	now := time.Now()
	return &StockMovement{
		ID:           uuid.New(),
		TenantID:     tenantID,
		WarehouseID:  warehouseID,
		ProductID:    productID,
		Quantity:     quantity,
		SourceType:   sourceType,
		SourceID:     sourceID,
		MovementDate: now,
		CreatedAt:    now,
	}, nil
}

// Reverse creates the exact counter-movement for this entry. The new entry
// carries the same source so the pair reconciles to zero per document.
func (m *StockMovement) Reverse() *StockMovement {
	now := time.Now()
	originalID := m.ID
	return &StockMovement{
		ID:           uuid.New(),
		TenantID:     m.TenantID,
		WarehouseID:  m.WarehouseID,
		ProductID:    m.ProductID,
		Quantity:     m.Quantity.Neg(),
		SourceType:   m.SourceType,
		SourceID:     m.SourceID,
		ReversalOfID: &originalID,
		MovementDate: now,
		CreatedAt:    now,
	}
}

// IsReversal reports whether this entry reverses an earlier one
func (m *StockMovement) IsReversal() bool {
	return m.ReversalOfID != nil
}
