package purchasing

import (
	"time"

	"github.com/comercia/backend/internal/domain/purchasing"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CreateInvoiceRequest creates a draft purchase invoice
type CreateInvoiceRequest struct {
	SupplierID        uuid.UUID                  `json:"supplier_id" binding:"required"`
	VoucherType       string                     `json:"voucher_type" binding:"required"`
	Number            string                     `json:"number" binding:"required,max=30"`
	IssueDate         time.Time                  `json:"issue_date" binding:"required"`
	DueDate           time.Time                  `json:"due_date" binding:"required"`
	Total             decimal.Decimal            `json:"total" binding:"required"`
	OriginalInvoiceID *uuid.UUID                 `json:"original_invoice_id"`
	Lines             []CreateInvoiceLineRequest `json:"lines"`
}

// CreateInvoiceLineRequest is one stock line on an invoice being created
type CreateInvoiceLineRequest struct {
	WarehouseID uuid.UUID       `json:"warehouse_id" binding:"required"`
	ProductID   uuid.UUID       `json:"product_id" binding:"required"`
	Quantity    decimal.Decimal `json:"quantity" binding:"required"`
	UnitCost    decimal.Decimal `json:"unit_cost" binding:"required"`
}

// InvoiceResponse represents a purchase invoice in API responses
type InvoiceResponse struct {
	ID                uuid.UUID             `json:"id"`
	SupplierID        uuid.UUID             `json:"supplier_id"`
	VoucherType       string                `json:"voucher_type"`
	Number            string                `json:"number"`
	IssueDate         time.Time             `json:"issue_date"`
	DueDate           time.Time             `json:"due_date"`
	Total             decimal.Decimal       `json:"total"`
	Status            string                `json:"status"`
	OriginalInvoiceID *uuid.UUID            `json:"original_invoice_id,omitempty"`
	CancelReason      string                `json:"cancel_reason,omitempty"`
	Lines             []InvoiceLineResponse `json:"lines,omitempty"`
	CreatedAt         time.Time             `json:"created_at"`
	UpdatedAt         time.Time             `json:"updated_at"`
	Version           int                   `json:"version"`
}

// InvoiceLineResponse represents an invoice line in API responses
type InvoiceLineResponse struct {
	ID          uuid.UUID       `json:"id"`
	WarehouseID uuid.UUID       `json:"warehouse_id"`
	ProductID   uuid.UUID       `json:"product_id"`
	Quantity    decimal.Decimal `json:"quantity"`
	UnitCost    decimal.Decimal `json:"unit_cost"`
	Amount      decimal.Decimal `json:"amount"`
}

// ToInvoiceResponse converts a domain invoice to a response DTO
func ToInvoiceResponse(inv *purchasing.PurchaseInvoice) InvoiceResponse {
	lines := make([]InvoiceLineResponse, 0, len(inv.Lines))
	for i := range inv.Lines {
		l := &inv.Lines[i]
		lines = append(lines, InvoiceLineResponse{
			ID:          l.ID,
			WarehouseID: l.WarehouseID,
			ProductID:   l.ProductID,
			Quantity:    l.Quantity,
			UnitCost:    l.UnitCost,
			Amount:      l.Amount(),
		})
	}
	return InvoiceResponse{
		ID:                inv.ID,
		SupplierID:        inv.SupplierID,
		VoucherType:       inv.VoucherType.String(),
		Number:            inv.Number,
		IssueDate:         inv.IssueDate,
		DueDate:           inv.DueDate,
		Total:             inv.Total,
		Status:            inv.Status.String(),
		OriginalInvoiceID: inv.OriginalInvoiceID,
		CancelReason:      inv.CancelReason,
		Lines:             lines,
		CreatedAt:         inv.CreatedAt,
		UpdatedAt:         inv.UpdatedAt,
		Version:           inv.Version,
	}
}

// CreateReceivingNoteRequest creates a draft receiving note
type CreateReceivingNoteRequest struct {
	Number            string                           `json:"number" binding:"required,max=30"`
	SupplierID        uuid.UUID                        `json:"supplier_id" binding:"required"`
	WarehouseID       uuid.UUID                        `json:"warehouse_id" binding:"required"`
	PurchaseOrderID   *uuid.UUID                       `json:"purchase_order_id"`
	PurchaseInvoiceID *uuid.UUID                       `json:"purchase_invoice_id"`
	Lines             []CreateReceivingNoteLineRequest `json:"lines" binding:"required,min=1"`
}

// CreateReceivingNoteLineRequest is one received quantity line
type CreateReceivingNoteLineRequest struct {
	ProductID           uuid.UUID       `json:"product_id" binding:"required"`
	Quantity            decimal.Decimal `json:"quantity" binding:"required"`
	PurchaseOrderLineID *uuid.UUID      `json:"purchase_order_line_id"`
}

// ReceivingNoteResponse represents a receiving note in API responses
type ReceivingNoteResponse struct {
	ID                uuid.UUID                   `json:"id"`
	Number            string                      `json:"number"`
	SupplierID        uuid.UUID                   `json:"supplier_id"`
	WarehouseID       uuid.UUID                   `json:"warehouse_id"`
	PurchaseOrderID   *uuid.UUID                  `json:"purchase_order_id,omitempty"`
	PurchaseInvoiceID *uuid.UUID                  `json:"purchase_invoice_id,omitempty"`
	Status            string                      `json:"status"`
	CancelReason      string                      `json:"cancel_reason,omitempty"`
	Lines             []ReceivingNoteLineResponse `json:"lines"`
	CreatedAt         time.Time                   `json:"created_at"`
	UpdatedAt         time.Time                   `json:"updated_at"`
}

// ReceivingNoteLineResponse represents a receiving note line in API responses
type ReceivingNoteLineResponse struct {
	ID                  uuid.UUID       `json:"id"`
	ProductID           uuid.UUID       `json:"product_id"`
	Quantity            decimal.Decimal `json:"quantity"`
	PurchaseOrderLineID *uuid.UUID      `json:"purchase_order_line_id,omitempty"`
}

// ToReceivingNoteResponse converts a domain receiving note to a response DTO
func ToReceivingNoteResponse(rn *purchasing.ReceivingNote) ReceivingNoteResponse {
	lines := make([]ReceivingNoteLineResponse, 0, len(rn.Lines))
	for i := range rn.Lines {
		l := &rn.Lines[i]
		lines = append(lines, ReceivingNoteLineResponse{
			ID:                  l.ID,
			ProductID:           l.ProductID,
			Quantity:            l.Quantity,
			PurchaseOrderLineID: l.PurchaseOrderLineID,
		})
	}
	return ReceivingNoteResponse{
		ID:                rn.ID,
		Number:            rn.Number,
		SupplierID:        rn.SupplierID,
		WarehouseID:       rn.WarehouseID,
		PurchaseOrderID:   rn.PurchaseOrderID,
		PurchaseInvoiceID: rn.PurchaseInvoiceID,
		Status:            rn.Status.String(),
		CancelReason:      rn.CancelReason,
		Lines:             lines,
		CreatedAt:         rn.CreatedAt,
		UpdatedAt:         rn.UpdatedAt,
	}
}

// CreatePaymentOrderRequest creates a draft payment order
type CreatePaymentOrderRequest struct {
	Number      string                          `json:"number" binding:"required,max=30"`
	SupplierID  uuid.UUID                       `json:"supplier_id" binding:"required"`
	PaymentDate time.Time                       `json:"payment_date" binding:"required"`
	Items       []CreatePaymentOrderItemRequest `json:"items" binding:"required,min=1"`
}

// CreatePaymentOrderItemRequest applies an amount to one invoice
type CreatePaymentOrderItemRequest struct {
	InvoiceID uuid.UUID       `json:"invoice_id" binding:"required"`
	Amount    decimal.Decimal `json:"amount" binding:"required"`
}

// PaymentOrderResponse represents a payment order in API responses
type PaymentOrderResponse struct {
	ID          uuid.UUID                  `json:"id"`
	Number      string                     `json:"number"`
	SupplierID  uuid.UUID                  `json:"supplier_id"`
	PaymentDate time.Time                  `json:"payment_date"`
	Status      string                     `json:"status"`
	TotalAmount decimal.Decimal            `json:"total_amount"`
	Items       []PaymentOrderItemResponse `json:"items"`
	CreatedAt   time.Time                  `json:"created_at"`
	UpdatedAt   time.Time                  `json:"updated_at"`
}

// PaymentOrderItemResponse represents a payment order item in API responses
type PaymentOrderItemResponse struct {
	ID        uuid.UUID       `json:"id"`
	InvoiceID uuid.UUID       `json:"invoice_id"`
	Amount    decimal.Decimal `json:"amount"`
}

// ToPaymentOrderResponse converts a domain payment order to a response DTO
func ToPaymentOrderResponse(po *purchasing.PaymentOrder) PaymentOrderResponse {
	items := make([]PaymentOrderItemResponse, 0, len(po.Items))
	for i := range po.Items {
		item := &po.Items[i]
		items = append(items, PaymentOrderItemResponse{
			ID:        item.ID,
			InvoiceID: item.InvoiceID,
			Amount:    item.Amount,
		})
	}
	return PaymentOrderResponse{
		ID:          po.ID,
		Number:      po.Number,
		SupplierID:  po.SupplierID,
		PaymentDate: po.PaymentDate,
		Status:      po.Status.String(),
		TotalAmount: po.TotalAmount(),
		Items:       items,
		CreatedAt:   po.CreatedAt,
		UpdatedAt:   po.UpdatedAt,
	}
}

// ApplyCreditNoteRequest applies part of a credit note to an invoice
type ApplyCreditNoteRequest struct {
	CreditNoteID uuid.UUID       `json:"credit_note_id" binding:"required"`
	InvoiceID    uuid.UUID       `json:"invoice_id" binding:"required"`
	Amount       decimal.Decimal `json:"amount" binding:"required"`
}
