package purchasing

import (
	"time"

	"github.com/comercia/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// PurchaseOrderStatus represents the status of a purchase order
type PurchaseOrderStatus string

const (
	PurchaseOrderStatusDraft     PurchaseOrderStatus = "DRAFT"
	PurchaseOrderStatusConfirmed PurchaseOrderStatus = "CONFIRMED"
	PurchaseOrderStatusCompleted PurchaseOrderStatus = "COMPLETED"
	PurchaseOrderStatusCancelled PurchaseOrderStatus = "CANCELLED"
)

var purchaseOrderTransitions = shared.TransitionTable[PurchaseOrderStatus]{
	PurchaseOrderStatusDraft:     {PurchaseOrderStatusConfirmed, PurchaseOrderStatusCancelled},
	PurchaseOrderStatusConfirmed: {PurchaseOrderStatusCompleted, PurchaseOrderStatusCancelled},
}

// IsValid checks if the status is a valid PurchaseOrderStatus
func (s PurchaseOrderStatus) IsValid() bool {
	switch s {
	case PurchaseOrderStatusDraft, PurchaseOrderStatusConfirmed,
		PurchaseOrderStatusCompleted, PurchaseOrderStatusCancelled:
		return true
	}
	return false
}

// String returns the string representation of PurchaseOrderStatus
func (s PurchaseOrderStatus) String() string {
	return string(s)
}

// PurchaseOrderLine is an ordered quantity for one product. ReceivedQuantity
// tracks how much receiving notes have brought in; it is informational and
// never enforced against over-receipt.
type PurchaseOrderLine struct {
	ID               uuid.UUID       `gorm:"type:uuid;primary_key"`
	PurchaseOrderID  uuid.UUID       `gorm:"type:uuid;not null;index"`
	ProductID        uuid.UUID       `gorm:"type:uuid;not null"`
	OrderedQuantity  decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	ReceivedQuantity decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	UnitCost         decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	CreatedAt        time.Time       `gorm:"not null"`
	UpdatedAt        time.Time       `gorm:"not null"`
}

// TableName returns the table name for GORM
func (PurchaseOrderLine) TableName() string {
	return "purchase_order_lines"
}

// RegisterReceipt adds a received quantity to the line
func (l *PurchaseOrderLine) RegisterReceipt(quantity decimal.Decimal) error {
	if quantity.LessThanOrEqual(decimal.Zero) {
		return shared.NewValidationError("Received quantity must be positive")
	}
	l.ReceivedQuantity = l.ReceivedQuantity.Add(quantity)
	l.UpdatedAt = time.Now()
	return nil
}

// UnregisterReceipt removes a previously registered quantity (receiving note
// cancellation). The result is floored at zero.
func (l *PurchaseOrderLine) UnregisterReceipt(quantity decimal.Decimal) error {
	if quantity.LessThanOrEqual(decimal.Zero) {
		return shared.NewValidationError("Received quantity must be positive")
	}
	l.ReceivedQuantity = l.ReceivedQuantity.Sub(quantity)
	if l.ReceivedQuantity.IsNegative() {
		l.ReceivedQuantity = decimal.Zero
	}
	l.UpdatedAt = time.Now()
	return nil
}

// PurchaseOrder is an order placed with a supplier. In this engine it only
// participates as the receiving notes' receipt-tracking target.
type PurchaseOrder struct {
	shared.TenantAggregateRoot
	Number     string              `gorm:"type:varchar(30);not null;uniqueIndex:idx_purchase_order_tenant_number,priority:2"`
	SupplierID uuid.UUID           `gorm:"type:uuid;not null;index"`
	Status     PurchaseOrderStatus `gorm:"type:varchar(20);not null;index"`

	Lines []PurchaseOrderLine `gorm:"foreignKey:PurchaseOrderID;references:ID"`
}

// TableName returns the table name for GORM
func (PurchaseOrder) TableName() string {
	return "purchase_orders"
}

// NewPurchaseOrder creates a new purchase order in DRAFT
func NewPurchaseOrder(tenantID uuid.UUID, number string, supplierID uuid.UUID) (*PurchaseOrder, error) {
	if number == "" {
		return nil, shared.NewValidationError("Purchase order number cannot be empty")
	}
	if supplierID == uuid.Nil {
		return nil, shared.NewValidationError("Supplier ID cannot be empty")
	}
	return &PurchaseOrder{
		TenantAggregateRoot: shared.NewTenantAggregateRoot(tenantID),
		Number:              number,
		SupplierID:          supplierID,
		Status:              PurchaseOrderStatusDraft,
		Lines:               make([]PurchaseOrderLine, 0),
	}, nil
}

// AddLine adds an ordered quantity while the order is a draft
func (po *PurchaseOrder) AddLine(productID uuid.UUID, quantity, unitCost decimal.Decimal) error {
	if po.Status != PurchaseOrderStatusDraft {
		return shared.NewDomainError(shared.CodeInvalidStateTransition,
			"Purchase order lines are immutable once confirmed")
	}
	if productID == uuid.Nil {
		return shared.NewValidationError("Product ID cannot be empty")
	}
	if quantity.LessThanOrEqual(decimal.Zero) {
		return shared.NewValidationError("Ordered quantity must be positive")
	}

	now := time.Now()
	po.Lines = append(po.Lines, PurchaseOrderLine{
		ID:              uuid.New(),
		PurchaseOrderID: po.ID,
		ProductID:       productID,
		OrderedQuantity: quantity,
		UnitCost:        unitCost,
		CreatedAt:       now,
		UpdatedAt:       now,
	})
	po.UpdatedAt = now
	po.IncrementVersion()
	return nil
}

// Confirm moves the order from DRAFT to CONFIRMED
func (po *PurchaseOrder) Confirm() error {
	if err := purchaseOrderTransitions.Ensure("PurchaseOrder", po.Status, PurchaseOrderStatusConfirmed); err != nil {
		return err
	}
	if len(po.Lines) == 0 {
		return shared.NewBusinessRuleError("Cannot confirm a purchase order without lines")
	}
	po.Status = PurchaseOrderStatusConfirmed
	po.UpdatedAt = time.Now()
	po.IncrementVersion()
	return nil
}
