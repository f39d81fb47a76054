package purchasing

import (
	"time"

	"github.com/comercia/backend/internal/domain/shared"
	"github.com/comercia/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CreditNoteApplication records that a specific amount of a credit note was
// consciously applied to a specific invoice. This is the authoritative
// linkage; credit notes that only carry an original-invoice reference are
// matched by the fallback strategy instead.
type CreditNoteApplication struct {
	ID           uuid.UUID       `gorm:"type:uuid;primary_key"`
	TenantID     uuid.UUID       `gorm:"type:uuid;not null;index"`
	CreditNoteID uuid.UUID       `gorm:"type:uuid;not null;index"`
	InvoiceID    uuid.UUID       `gorm:"type:uuid;not null;index"`
	Amount       decimal.Decimal `gorm:"type:decimal(18,2);not null"`
	AppliedBy    *uuid.UUID      `gorm:"type:uuid"`
	AppliedAt    time.Time       `gorm:"not null"`
	CreatedAt    time.Time       `gorm:"not null"`
	UpdatedAt    time.Time       `gorm:"not null"`
}

// TableName returns the table name for GORM
func (CreditNoteApplication) TableName() string {
	return "credit_note_applications"
}

// NewCreditNoteApplication creates an explicit credit-note application.
// creditNote must be a confirmed credit note; invoice must be a document that
// counts toward the balance; the amount may not exceed what either side has
// left (availableCredit on the note, remainingBalance on the invoice).
func NewCreditNoteApplication(
	tenantID uuid.UUID,
	creditNote *PurchaseInvoice,
	invoice *PurchaseInvoice,
	amount valueobject.Money,
	availableCredit, remainingBalance decimal.Decimal,
	appliedBy *uuid.UUID,
) (*CreditNoteApplication, error) {
	if creditNote == nil || invoice == nil {
		return nil, shared.NewValidationError("Credit note and invoice are required")
	}
	if !creditNote.IsCreditNote() {
		return nil, shared.NewValidationError("Document being applied is not a credit note")
	}
	if invoice.IsCreditNote() {
		return nil, shared.NewValidationError("A credit note cannot be applied to another credit note")
	}
	if !creditNote.Status.CountsTowardBalance() {
		return nil, shared.NewBusinessRuleError("Only confirmed credit notes can be applied")
	}
	if !invoice.Status.CountsTowardBalance() {
		return nil, shared.NewBusinessRuleError("Credit notes can only be applied to confirmed invoices")
	}
	if creditNote.SupplierID != invoice.SupplierID {
		return nil, shared.NewBusinessRuleError("Credit note and invoice must belong to the same supplier")
	}
	if amount.Amount().LessThanOrEqual(decimal.Zero) {
		return nil, shared.NewValidationError("Application amount must be positive")
	}
	if amount.Amount().GreaterThan(availableCredit) {
		return nil, shared.NewBusinessRuleError("Application amount exceeds the credit note's unapplied amount")
	}
	if amount.Amount().GreaterThan(remainingBalance) {
		return nil, shared.NewBusinessRuleError("Application amount exceeds the invoice's remaining balance")
	}

	now := time.Now()
	return &CreditNoteApplication{
		ID:           uuid.New(),
		TenantID:     tenantID,
		CreditNoteID: creditNote.ID,
		InvoiceID:    invoice.ID,
		Amount:       amount.Amount(),
		AppliedBy:    appliedBy,
		AppliedAt:    now,
		CreatedAt:    now,
		UpdatedAt:    now,
	}, nil
}
