package finance

import (
	"time"

	"github.com/comercia/backend/internal/domain/finance"
	"github.com/comercia/backend/internal/domain/partner"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// InvoiceBalanceResponse is one document's computed position
type InvoiceBalanceResponse struct {
	InvoiceID       uuid.UUID       `json:"invoice_id"`
	Number          string          `json:"number"`
	VoucherType     string          `json:"voucher_type"`
	Status          string          `json:"status"`
	IssueDate       time.Time       `json:"issue_date"`
	Total           decimal.Decimal `json:"total"`
	Paid            decimal.Decimal `json:"paid"`
	Balance         decimal.Decimal `json:"balance"`
	FallbackApplied decimal.Decimal `json:"fallback_applied"`
}

// SupplierBalanceResponse is the full reconciliation for one supplier
type SupplierBalanceResponse struct {
	SupplierID    uuid.UUID                `json:"supplier_id"`
	SupplierName  string                   `json:"supplier_name"`
	TotalInvoiced decimal.Decimal          `json:"total_invoiced"`
	TotalPaid     decimal.Decimal          `json:"total_paid"`
	TotalBalance  decimal.Decimal          `json:"total_balance"`
	Invoices      []InvoiceBalanceResponse `json:"invoices"`
}

// ToInvoiceBalanceResponse converts a settlement to a response DTO
func ToInvoiceBalanceResponse(s finance.InvoiceSettlement) InvoiceBalanceResponse {
	return InvoiceBalanceResponse{
		InvoiceID:       s.Invoice.ID,
		Number:          s.Invoice.Number,
		VoucherType:     s.Invoice.VoucherType.String(),
		Status:          s.Invoice.Status.String(),
		IssueDate:       s.Invoice.IssueDate,
		Total:           s.Invoice.Total,
		Paid:            s.Paid,
		Balance:         s.Balance,
		FallbackApplied: s.FallbackApplied,
	}
}

// ToSupplierBalanceResponse converts a supplier settlement to a response DTO
func ToSupplierBalanceResponse(supplier *partner.Supplier, settlement finance.SupplierSettlement) SupplierBalanceResponse {
	invoices := make([]InvoiceBalanceResponse, 0, len(settlement.Invoices))
	for _, s := range settlement.Invoices {
		invoices = append(invoices, ToInvoiceBalanceResponse(s))
	}
	return SupplierBalanceResponse{
		SupplierID:    supplier.ID,
		SupplierName:  supplier.Name,
		TotalInvoiced: settlement.Summary.TotalInvoiced,
		TotalPaid:     settlement.Summary.TotalPaid,
		TotalBalance:  settlement.Summary.TotalBalance,
		Invoices:      invoices,
	}
}
