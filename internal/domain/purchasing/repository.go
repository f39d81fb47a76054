package purchasing

import (
	"context"

	"github.com/comercia/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// PurchaseInvoiceRepository persists purchase invoices
type PurchaseInvoiceRepository interface {
	FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*PurchaseInvoice, error)
	FindBySupplier(ctx context.Context, tenantID, supplierID uuid.UUID, filter shared.Filter) ([]PurchaseInvoice, error)
	FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]PurchaseInvoice, error)
	// FindCreditNotesByOriginalInvoice returns credit notes whose
	// original-invoice reference points at the given invoice.
	FindCreditNotesByOriginalInvoice(ctx context.Context, tenantID, invoiceID uuid.UUID) ([]PurchaseInvoice, error)
	// SumConfirmedPayments returns the total of payment order items applied
	// to the invoice through confirmed payment orders.
	SumConfirmedPayments(ctx context.Context, tenantID, invoiceID uuid.UUID) (decimal.Decimal, error)
	CountBySupplier(ctx context.Context, tenantID, supplierID uuid.UUID) (int64, error)
	Save(ctx context.Context, invoice *PurchaseInvoice) error
	SaveWithLock(ctx context.Context, invoice *PurchaseInvoice) error
	Delete(ctx context.Context, tenantID, id uuid.UUID) error
}

// PaymentOrderRepository persists payment orders and their items
type PaymentOrderRepository interface {
	FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*PaymentOrder, error)
	FindBySupplier(ctx context.Context, tenantID, supplierID uuid.UUID, filter shared.Filter) ([]PaymentOrder, error)
	// FindItemsByInvoices returns all items of the supplier's payment orders
	// touching the given invoices, together with each owning order's status.
	FindItemsByInvoices(ctx context.Context, tenantID uuid.UUID, invoiceIDs []uuid.UUID) ([]PaymentItemView, error)
	Save(ctx context.Context, order *PaymentOrder) error
	Delete(ctx context.Context, tenantID, id uuid.UUID) error
}

// PaymentItemView is a payment order item joined with its order's status,
// the shape the reconciliation algorithm consumes.
type PaymentItemView struct {
	PaymentOrderID uuid.UUID
	InvoiceID      uuid.UUID
	Amount         decimal.Decimal
	OrderStatus    PaymentOrderStatus
}

// CreditNoteApplicationRepository persists explicit applications
type CreditNoteApplicationRepository interface {
	FindByInvoice(ctx context.Context, tenantID, invoiceID uuid.UUID) ([]CreditNoteApplication, error)
	FindByCreditNote(ctx context.Context, tenantID, creditNoteID uuid.UUID) ([]CreditNoteApplication, error)
	FindBySupplierInvoices(ctx context.Context, tenantID uuid.UUID, invoiceIDs []uuid.UUID) ([]CreditNoteApplication, error)
	// ExistsForCreditNote reports whether the credit note has at least one
	// explicit application row; such notes are excluded from fallback matching.
	ExistsForCreditNote(ctx context.Context, tenantID, creditNoteID uuid.UUID) (bool, error)
	SumByCreditNote(ctx context.Context, tenantID, creditNoteID uuid.UUID) (decimal.Decimal, error)
	Save(ctx context.Context, application *CreditNoteApplication) error
}

// ReceivingNoteRepository persists receiving notes
type ReceivingNoteRepository interface {
	FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*ReceivingNote, error)
	FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]ReceivingNote, error)
	CountBySupplier(ctx context.Context, tenantID, supplierID uuid.UUID) (int64, error)
	Save(ctx context.Context, note *ReceivingNote) error
	Delete(ctx context.Context, tenantID, id uuid.UUID) error
}

// PurchaseOrderRepository persists purchase orders
type PurchaseOrderRepository interface {
	FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*PurchaseOrder, error)
	FindLineByID(ctx context.Context, tenantID, lineID uuid.UUID) (*PurchaseOrderLine, error)
	Save(ctx context.Context, order *PurchaseOrder) error
	SaveLine(ctx context.Context, line *PurchaseOrderLine) error
}
