package purchasing

import (
	"time"

	"github.com/comercia/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ReceivingNoteStatus represents the status of a receiving note
type ReceivingNoteStatus string

const (
	ReceivingNoteStatusDraft     ReceivingNoteStatus = "DRAFT"
	ReceivingNoteStatusConfirmed ReceivingNoteStatus = "CONFIRMED"
	ReceivingNoteStatusCancelled ReceivingNoteStatus = "CANCELLED"
)

// receivingNoteTransitions is the allowed-transition table for receiving
// notes. CANCELLED is only reachable from CONFIRMED; drafts are deleted
// outright since they never touched stock.
var receivingNoteTransitions = shared.TransitionTable[ReceivingNoteStatus]{
	ReceivingNoteStatusDraft:     {ReceivingNoteStatusConfirmed},
	ReceivingNoteStatusConfirmed: {ReceivingNoteStatusCancelled},
}

// IsValid checks if the status is a valid ReceivingNoteStatus
func (s ReceivingNoteStatus) IsValid() bool {
	switch s {
	case ReceivingNoteStatusDraft, ReceivingNoteStatusConfirmed, ReceivingNoteStatusCancelled:
		return true
	}
	return false
}

// String returns the string representation of ReceivingNoteStatus
func (s ReceivingNoteStatus) String() string {
	return string(s)
}

// CanTransitionTo checks if the status can transition to the target status
func (s ReceivingNoteStatus) CanTransitionTo(target ReceivingNoteStatus) bool {
	return receivingNoteTransitions.Allows(s, target)
}

// ReceivingNoteLine is a received quantity for one product
type ReceivingNoteLine struct {
	ID                  uuid.UUID       `gorm:"type:uuid;primary_key"`
	ReceivingNoteID     uuid.UUID       `gorm:"type:uuid;not null;index"`
	ProductID           uuid.UUID       `gorm:"type:uuid;not null"`
	Quantity            decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	PurchaseOrderLineID *uuid.UUID      `gorm:"type:uuid"`
	CreatedAt           time.Time       `gorm:"not null"`
	UpdatedAt           time.Time       `gorm:"not null"`
}

// TableName returns the table name for GORM
func (ReceivingNoteLine) TableName() string {
	return "receiving_note_lines"
}

// ReceivingNote records goods entering a warehouse from a supplier.
// Confirmation increments warehouse stock line by line; cancellation emits
// the exact negative counter-movements.
type ReceivingNote struct {
	shared.TenantAggregateRoot
	Number            string              `gorm:"type:varchar(30);not null;uniqueIndex:idx_receiving_note_tenant_number,priority:2"`
	SupplierID        uuid.UUID           `gorm:"type:uuid;not null;index"`
	WarehouseID       uuid.UUID           `gorm:"type:uuid;not null;index"`
	PurchaseOrderID   *uuid.UUID          `gorm:"type:uuid;index"`
	PurchaseInvoiceID *uuid.UUID          `gorm:"type:uuid;index"`
	Status            ReceivingNoteStatus `gorm:"type:varchar(20);not null;index"`
	CancelReason      string              `gorm:"type:varchar(500)"`
	ConfirmedAt       *time.Time
	CancelledAt       *time.Time

	Lines []ReceivingNoteLine `gorm:"foreignKey:ReceivingNoteID;references:ID"`
}

// TableName returns the table name for GORM
func (ReceivingNote) TableName() string {
	return "receiving_notes"
}

// NewReceivingNote creates a new receiving note in DRAFT
func NewReceivingNote(tenantID uuid.UUID, number string, supplierID, warehouseID uuid.UUID, purchaseOrderID, purchaseInvoiceID *uuid.UUID) (*ReceivingNote, error) {
	if number == "" {
		return nil, shared.NewValidationError("Receiving note number cannot be empty")
	}
	if supplierID == uuid.Nil {
		return nil, shared.NewValidationError("Supplier ID cannot be empty")
	}
	if warehouseID == uuid.Nil {
		return nil, shared.NewValidationError("Warehouse ID cannot be empty")
	}

	return &ReceivingNote{
		TenantAggregateRoot: shared.NewTenantAggregateRoot(tenantID),
		Number:              number,
		SupplierID:          supplierID,
		WarehouseID:         warehouseID,
		PurchaseOrderID:     purchaseOrderID,
		PurchaseInvoiceID:   purchaseInvoiceID,
		Status:              ReceivingNoteStatusDraft,
		Lines:               make([]ReceivingNoteLine, 0),
	}, nil
}

// AddLine adds a product quantity while the note is still a draft
func (rn *ReceivingNote) AddLine(productID uuid.UUID, quantity decimal.Decimal, purchaseOrderLineID *uuid.UUID) error {
	if rn.Status != ReceivingNoteStatusDraft {
		return shared.NewDomainError(shared.CodeInvalidStateTransition,
			"Receiving note lines are immutable once confirmed")
	}
	if productID == uuid.Nil {
		return shared.NewValidationError("Product ID cannot be empty")
	}
	if quantity.LessThanOrEqual(decimal.Zero) {
		return shared.NewValidationError("Line quantity must be positive")
	}

	now := time.Now()
	rn.Lines = append(rn.Lines, ReceivingNoteLine{
		ID:                  uuid.New(),
		ReceivingNoteID:     rn.ID,
		ProductID:           productID,
		Quantity:            quantity,
		PurchaseOrderLineID: purchaseOrderLineID,
		CreatedAt:           now,
		UpdatedAt:           now,
	})
	rn.UpdatedAt = now
	rn.IncrementVersion()
	return nil
}

// Confirm moves the note from DRAFT to CONFIRMED. The caller creates the
// positive stock movements for every line in the same transaction.
func (rn *ReceivingNote) Confirm() error {
	if err := receivingNoteTransitions.Ensure("ReceivingNote", rn.Status, ReceivingNoteStatusConfirmed); err != nil {
		return err
	}
	if len(rn.Lines) == 0 {
		return shared.NewBusinessRuleError("Cannot confirm a receiving note without lines")
	}

	now := time.Now()
	rn.Status = ReceivingNoteStatusConfirmed
	rn.ConfirmedAt = &now
	rn.UpdatedAt = now
	rn.IncrementVersion()

	rn.AddDomainEvent(NewReceivingNoteConfirmedEvent(rn))
	return nil
}

// Cancel moves the note from CONFIRMED to CANCELLED. The caller creates the
// exact negative counter-movements in the same transaction. Re-cancelling an
// already cancelled note fails with INVALID_STATE_TRANSITION.
func (rn *ReceivingNote) Cancel(reason string) error {
	if err := receivingNoteTransitions.Ensure("ReceivingNote", rn.Status, ReceivingNoteStatusCancelled); err != nil {
		return err
	}

	now := time.Now()
	rn.Status = ReceivingNoteStatusCancelled
	rn.CancelReason = reason
	rn.CancelledAt = &now
	rn.UpdatedAt = now
	rn.IncrementVersion()

	rn.AddDomainEvent(NewReceivingNoteCancelledEvent(rn, reason))
	return nil
}

// EnsureDeletable returns an error unless the note is still a draft.
// A confirmed note must be cancelled, never deleted, so the stock reversal
// stays on record.
func (rn *ReceivingNote) EnsureDeletable() error {
	if rn.Status != ReceivingNoteStatusDraft {
		return shared.NewDomainError(shared.CodeInvalidStateTransition,
			"Only draft receiving notes can be deleted")
	}
	return nil
}

// TotalQuantity returns the sum of all line quantities
func (rn *ReceivingNote) TotalQuantity() decimal.Decimal {
	total := decimal.Zero
	for _, line := range rn.Lines {
		total = total.Add(line.Quantity)
	}
	return total
}
