package purchasing

import (
	"time"

	"github.com/comercia/backend/internal/domain/shared"
	"github.com/comercia/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// InvoiceStatus represents the status of a purchase invoice
type InvoiceStatus string

const (
	InvoiceStatusDraft       InvoiceStatus = "DRAFT"
	InvoiceStatusConfirmed   InvoiceStatus = "CONFIRMED"
	InvoiceStatusPartialPaid InvoiceStatus = "PARTIAL_PAID"
	InvoiceStatusPaid        InvoiceStatus = "PAID"
	InvoiceStatusCancelled   InvoiceStatus = "CANCELLED"
)

// invoiceTransitions is the single allowed-transition table for purchase
// invoices. PARTIAL_PAID and PAID are derived from confirmed payment orders,
// never set directly by the caller.
var invoiceTransitions = shared.TransitionTable[InvoiceStatus]{
	InvoiceStatusDraft:       {InvoiceStatusConfirmed, InvoiceStatusCancelled},
	InvoiceStatusConfirmed:   {InvoiceStatusPartialPaid, InvoiceStatusPaid, InvoiceStatusCancelled},
	InvoiceStatusPartialPaid: {InvoiceStatusPaid},
}

// IsValid checks if the status is a valid InvoiceStatus
func (s InvoiceStatus) IsValid() bool {
	switch s {
	case InvoiceStatusDraft, InvoiceStatusConfirmed, InvoiceStatusPartialPaid,
		InvoiceStatusPaid, InvoiceStatusCancelled:
		return true
	}
	return false
}

// String returns the string representation of InvoiceStatus
func (s InvoiceStatus) String() string {
	return string(s)
}

// CanTransitionTo checks if the status can transition to the target status
func (s InvoiceStatus) CanTransitionTo(target InvoiceStatus) bool {
	return invoiceTransitions.Allows(s, target)
}

// IsTerminal returns true if no further transition is permitted
func (s InvoiceStatus) IsTerminal() bool {
	return invoiceTransitions.IsTerminal(s)
}

// CountsTowardBalance reports whether the document participates in the
// supplier's outstanding balance. Drafts and cancelled documents never do.
func (s InvoiceStatus) CountsTowardBalance() bool {
	return s == InvoiceStatusConfirmed || s == InvoiceStatusPartialPaid || s == InvoiceStatusPaid
}

// InvoiceLine is a quantity line on a purchase invoice. Lines are present
// when the invoice itself moves stock (goods invoiced without a separate
// receiving note); an invoice without lines has no inventory effect.
type InvoiceLine struct {
	ID          uuid.UUID       `gorm:"type:uuid;primary_key"`
	InvoiceID   uuid.UUID       `gorm:"type:uuid;not null;index"`
	WarehouseID uuid.UUID       `gorm:"type:uuid;not null"`
	ProductID   uuid.UUID       `gorm:"type:uuid;not null"`
	Quantity    decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	UnitCost    decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	CreatedAt   time.Time       `gorm:"not null"`
	UpdatedAt   time.Time       `gorm:"not null"`
}

// TableName returns the table name for GORM
func (InvoiceLine) TableName() string {
	return "purchase_invoice_lines"
}

// Amount returns quantity * unit cost
func (l *InvoiceLine) Amount() decimal.Decimal {
	return l.Quantity.Mul(l.UnitCost)
}

// PurchaseInvoice is a supplier commercial document (invoice, debit note or
// credit note). Content is immutable once confirmed; cancellation reverses
// whatever stock effect confirmation produced.
type PurchaseInvoice struct {
	shared.TenantAggregateRoot
	SupplierID        uuid.UUID       `gorm:"type:uuid;not null;index"`
	VoucherType       VoucherType     `gorm:"type:varchar(20);not null"`
	Number            string          `gorm:"type:varchar(30);not null;uniqueIndex:idx_invoice_tenant_number,priority:2"`
	IssueDate         time.Time       `gorm:"not null"`
	DueDate           time.Time       `gorm:"not null"`
	Total             decimal.Decimal `gorm:"type:decimal(18,2);not null"`
	Status            InvoiceStatus   `gorm:"type:varchar(20);not null;index"`
	OriginalInvoiceID *uuid.UUID      `gorm:"type:uuid;index"` // note -> corrected invoice
	CancelReason      string          `gorm:"type:varchar(500)"`
	ConfirmedAt       *time.Time
	CancelledAt       *time.Time

	Lines []InvoiceLine `gorm:"foreignKey:InvoiceID;references:ID"`
}

// TableName returns the table name for GORM
func (PurchaseInvoice) TableName() string {
	return "purchase_invoices"
}

// NewPurchaseInvoice creates a new purchase invoice in DRAFT
func NewPurchaseInvoice(
	tenantID uuid.UUID,
	supplierID uuid.UUID,
	voucherType VoucherType,
	number string,
	issueDate, dueDate time.Time,
	total valueobject.Money,
	originalInvoiceID *uuid.UUID,
) (*PurchaseInvoice, error) {
	if supplierID == uuid.Nil {
		return nil, shared.NewValidationError("Supplier ID cannot be empty")
	}
	if !voucherType.IsValid() {
		return nil, shared.NewValidationError("Voucher type is not valid")
	}
	if number == "" {
		return nil, shared.NewValidationError("Invoice number cannot be empty")
	}
	if total.Amount().LessThanOrEqual(decimal.Zero) {
		return nil, shared.NewValidationError("Invoice total must be positive")
	}
	if dueDate.Before(issueDate) {
		return nil, shared.NewValidationError("Due date cannot precede issue date")
	}
	if originalInvoiceID != nil && !voucherType.IsNote() {
		return nil, shared.NewValidationError("Only credit and debit notes may reference an original invoice")
	}

	return &PurchaseInvoice{
		TenantAggregateRoot: shared.NewTenantAggregateRoot(tenantID),
		SupplierID:          supplierID,
		VoucherType:         voucherType,
		Number:              number,
		IssueDate:           issueDate,
		DueDate:             dueDate,
		Total:               total.Amount(),
		Status:              InvoiceStatusDraft,
		OriginalInvoiceID:   originalInvoiceID,
		Lines:               make([]InvoiceLine, 0),
	}, nil
}

// AddLine adds a stock line while the invoice is still a draft
func (inv *PurchaseInvoice) AddLine(warehouseID, productID uuid.UUID, quantity decimal.Decimal, unitCost valueobject.Money) error {
	if inv.Status != InvoiceStatusDraft {
		return shared.NewDomainError(shared.CodeInvalidStateTransition,
			"Invoice content is immutable once confirmed")
	}
	if warehouseID == uuid.Nil || productID == uuid.Nil {
		return shared.NewValidationError("Warehouse and product are required")
	}
	if quantity.LessThanOrEqual(decimal.Zero) {
		return shared.NewValidationError("Line quantity must be positive")
	}
	if unitCost.Amount().IsNegative() {
		return shared.NewValidationError("Unit cost cannot be negative")
	}

	now := time.Now()
	inv.Lines = append(inv.Lines, InvoiceLine{
		ID:          uuid.New(),
		InvoiceID:   inv.ID,
		WarehouseID: warehouseID,
		ProductID:   productID,
		Quantity:    quantity,
		UnitCost:    unitCost.Amount(),
		CreatedAt:   now,
		UpdatedAt:   now,
	})
	inv.UpdatedAt = now
	inv.IncrementVersion()
	return nil
}

// HasStockEffect reports whether confirming this invoice moves stock
func (inv *PurchaseInvoice) HasStockEffect() bool {
	return len(inv.Lines) > 0
}

// IsCreditNote returns true when the voucher type is a credit-note variant
func (inv *PurchaseInvoice) IsCreditNote() bool {
	return inv.VoucherType.IsCreditNote()
}

// Confirm moves the invoice from DRAFT to CONFIRMED. The caller applies the
// stock side effects in the same transaction.
func (inv *PurchaseInvoice) Confirm() error {
	if err := invoiceTransitions.Ensure("PurchaseInvoice", inv.Status, InvoiceStatusConfirmed); err != nil {
		return err
	}

	now := time.Now()
	inv.Status = InvoiceStatusConfirmed
	inv.ConfirmedAt = &now
	inv.UpdatedAt = now
	inv.IncrementVersion()

	inv.AddDomainEvent(NewInvoiceConfirmedEvent(inv))
	return nil
}

// Cancel moves the invoice to CANCELLED. hasPayments reflects whether any
// confirmed payment order item references this invoice; a paid invoice can
// only be corrected through a credit note.
func (inv *PurchaseInvoice) Cancel(reason string, hasPayments bool) error {
	if err := invoiceTransitions.Ensure("PurchaseInvoice", inv.Status, InvoiceStatusCancelled); err != nil {
		return err
	}
	if hasPayments {
		return shared.NewBusinessRuleError("Cannot cancel an invoice with confirmed payments applied")
	}
	if reason == "" {
		return shared.NewValidationError("Cancel reason is required")
	}

	now := time.Now()
	inv.Status = InvoiceStatusCancelled
	inv.CancelReason = reason
	inv.CancelledAt = &now
	inv.UpdatedAt = now
	inv.IncrementVersion()

	inv.AddDomainEvent(NewInvoiceCancelledEvent(inv, reason))
	return nil
}

// RefreshPaymentStatus re-derives PARTIAL_PAID/PAID from the total amount of
// confirmed payments applied to this invoice. It is a no-op when the derived
// status equals the current one and fails when the invoice cannot receive
// payments at all.
func (inv *PurchaseInvoice) RefreshPaymentStatus(paidAmount decimal.Decimal) error {
	if !inv.Status.CountsTowardBalance() {
		return shared.NewInvalidTransitionError("PurchaseInvoice", inv.Status.String(), InvoiceStatusPartialPaid.String())
	}
	if paidAmount.IsNegative() {
		return shared.NewValidationError("Paid amount cannot be negative")
	}
	if paidAmount.GreaterThan(inv.Total) {
		return shared.NewBusinessRuleError("Paid amount cannot exceed the invoice total")
	}

	var target InvoiceStatus
	switch {
	case paidAmount.IsZero():
		return nil
	case paidAmount.Equal(inv.Total):
		target = InvoiceStatusPaid
	default:
		target = InvoiceStatusPartialPaid
	}

	if target == inv.Status {
		return nil
	}
	if err := invoiceTransitions.Ensure("PurchaseInvoice", inv.Status, target); err != nil {
		return err
	}

	inv.Status = target
	inv.UpdatedAt = time.Now()
	inv.IncrementVersion()

	if target == InvoiceStatusPaid {
		inv.AddDomainEvent(NewInvoicePaidEvent(inv))
	} else {
		inv.AddDomainEvent(NewInvoicePartiallyPaidEvent(inv, paidAmount))
	}
	return nil
}

// GetTotalMoney returns the total as a Money value object
func (inv *PurchaseInvoice) GetTotalMoney() valueobject.Money {
	return valueobject.NewMoneyARS(inv.Total)
}
