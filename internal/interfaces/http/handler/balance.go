package handler

import (
	financeapp "github.com/comercia/backend/internal/application/finance"
	"github.com/gin-gonic/gin"
)

// BalanceHandler exposes the accounts-payable reconciliation views
type BalanceHandler struct {
	BaseHandler
	service *financeapp.SupplierBalanceService
}

// NewBalanceHandler creates a new BalanceHandler
func NewBalanceHandler(service *financeapp.SupplierBalanceService) *BalanceHandler {
	return &BalanceHandler{service: service}
}

// SupplierBalance returns the supplier's outstanding payable, derived from
// confirmed documents, payments and credit note coverage.
func (h *BalanceHandler) SupplierBalance(c *gin.Context) {
	tenantID, _, ok := h.identity(c)
	if !ok {
		return
	}
	supplierID, ok := h.parseIDParam(c, "id")
	if !ok {
		return
	}

	balance, err := h.service.GetSupplierBalance(c.Request.Context(), tenantID, supplierID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, balance)
}

// InvoiceBalance returns one invoice's settlement breakdown
func (h *BalanceHandler) InvoiceBalance(c *gin.Context) {
	tenantID, _, ok := h.identity(c)
	if !ok {
		return
	}
	invoiceID, ok := h.parseIDParam(c, "id")
	if !ok {
		return
	}

	balance, err := h.service.GetInvoiceBalance(c.Request.Context(), tenantID, invoiceID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, balance)
}
