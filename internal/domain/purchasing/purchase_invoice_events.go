package purchasing

import (
	"github.com/comercia/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// Event types for purchase invoices
const (
	EventTypeInvoiceConfirmed     = "purchasing.invoice.confirmed"
	EventTypeInvoiceCancelled     = "purchasing.invoice.cancelled"
	EventTypeInvoicePaid          = "purchasing.invoice.paid"
	EventTypeInvoicePartiallyPaid = "purchasing.invoice.partially_paid"
)

// InvoiceConfirmedEvent is emitted when an invoice is confirmed
type InvoiceConfirmedEvent struct {
	shared.BaseDomainEvent
	SupplierID  string          `json:"supplier_id"`
	VoucherType VoucherType     `json:"voucher_type"`
	Number      string          `json:"number"`
	Total       decimal.Decimal `json:"total"`
}

// NewInvoiceConfirmedEvent creates a new InvoiceConfirmedEvent
func NewInvoiceConfirmedEvent(inv *PurchaseInvoice) *InvoiceConfirmedEvent {
	return &InvoiceConfirmedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeInvoiceConfirmed, "PurchaseInvoice", inv.ID, inv.TenantID),
		SupplierID:      inv.SupplierID.String(),
		VoucherType:     inv.VoucherType,
		Number:          inv.Number,
		Total:           inv.Total,
	}
}

// InvoiceCancelledEvent is emitted when an invoice is cancelled
type InvoiceCancelledEvent struct {
	shared.BaseDomainEvent
	Number string `json:"number"`
	Reason string `json:"reason"`
}

// NewInvoiceCancelledEvent creates a new InvoiceCancelledEvent
func NewInvoiceCancelledEvent(inv *PurchaseInvoice, reason string) *InvoiceCancelledEvent {
	return &InvoiceCancelledEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeInvoiceCancelled, "PurchaseInvoice", inv.ID, inv.TenantID),
		Number:          inv.Number,
		Reason:          reason,
	}
}

// InvoicePaidEvent is emitted when confirmed payments fully cover the total
type InvoicePaidEvent struct {
	shared.BaseDomainEvent
	Number string          `json:"number"`
	Total  decimal.Decimal `json:"total"`
}

// NewInvoicePaidEvent creates a new InvoicePaidEvent
func NewInvoicePaidEvent(inv *PurchaseInvoice) *InvoicePaidEvent {
	return &InvoicePaidEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeInvoicePaid, "PurchaseInvoice", inv.ID, inv.TenantID),
		Number:          inv.Number,
		Total:           inv.Total,
	}
}

// InvoicePartiallyPaidEvent is emitted when payments cover part of the total
type InvoicePartiallyPaidEvent struct {
	shared.BaseDomainEvent
	Number     string          `json:"number"`
	PaidAmount decimal.Decimal `json:"paid_amount"`
}

// NewInvoicePartiallyPaidEvent creates a new InvoicePartiallyPaidEvent
func NewInvoicePartiallyPaidEvent(inv *PurchaseInvoice, paid decimal.Decimal) *InvoicePartiallyPaidEvent {
	return &InvoicePartiallyPaidEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeInvoicePartiallyPaid, "PurchaseInvoice", inv.ID, inv.TenantID),
		Number:          inv.Number,
		PaidAmount:      paid,
	}
}
