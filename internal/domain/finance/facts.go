package finance

import (
	"time"

	"github.com/comercia/backend/internal/domain/purchasing"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// InvoiceFact is the settlement view of one commercial document. Plain
// values only; the fetching service assembles these so the settlement math
// stays pure and testable with literal fixtures.
type InvoiceFact struct {
	ID          uuid.UUID
	Number      string
	VoucherType purchasing.VoucherType
	Status      purchasing.InvoiceStatus
	IssueDate   time.Time
	Total       decimal.Decimal
}

// IsCreditNote reports whether the document is a credit-note variant
func (f InvoiceFact) IsCreditNote() bool {
	return f.VoucherType.IsCreditNote()
}

// PaymentFact is one payment order item together with its order's status.
// Only items of CONFIRMED orders count toward the paid amount.
type PaymentFact struct {
	PaymentOrderID uuid.UUID
	Amount         decimal.Decimal
	OrderStatus    purchasing.PaymentOrderStatus
}

// ApplicationFact is one explicit credit-note application row
type ApplicationFact struct {
	CreditNoteID uuid.UUID
	InvoiceID    uuid.UUID
	Amount       decimal.Decimal
}

// CreditNoteFact is a credit note considered for fallback matching against
// the invoice its original-invoice reference points at. Notes with explicit
// application rows are excluded from fallback entirely.
type CreditNoteFact struct {
	ID                      uuid.UUID
	Total                   decimal.Decimal
	Status                  purchasing.InvoiceStatus
	HasExplicitApplications bool
}

// Eligible reports whether the note participates in fallback matching
func (f CreditNoteFact) Eligible() bool {
	return f.Status.CountsTowardBalance() && !f.HasExplicitApplications
}

// InvoiceFacts bundles everything the settlement of one invoice needs
type InvoiceFacts struct {
	Invoice InvoiceFact
	// PaymentItems are the payment order items referencing this invoice.
	PaymentItems []PaymentFact
	// ExplicitApplications are credit-note amounts applied to this invoice.
	ExplicitApplications []ApplicationFact
	// FallbackCreditNotes reference this invoice via their original-invoice
	// link without an explicit application.
	FallbackCreditNotes []CreditNoteFact
	// ApplicationsGiven are applications where this document is the credit
	// note being applied; only meaningful for credit notes.
	ApplicationsGiven []ApplicationFact
}

// ConfirmedPayments returns the sum of payment items whose owning order is
// confirmed.
func (f InvoiceFacts) ConfirmedPayments() decimal.Decimal {
	total := decimal.Zero
	for _, item := range f.PaymentItems {
		if item.OrderStatus.CountsTowardPaid() {
			total = total.Add(item.Amount)
		}
	}
	return total
}

// ExplicitCredit returns the sum of explicit applications received
func (f InvoiceFacts) ExplicitCredit() decimal.Decimal {
	total := decimal.Zero
	for _, app := range f.ExplicitApplications {
		total = total.Add(app.Amount)
	}
	return total
}

// CreditGiven returns the sum of applications this credit note has granted
func (f InvoiceFacts) CreditGiven() decimal.Decimal {
	total := decimal.Zero
	for _, app := range f.ApplicationsGiven {
		total = total.Add(app.Amount)
	}
	return total
}
