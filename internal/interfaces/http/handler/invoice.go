package handler

import (
	purchasingapp "github.com/comercia/backend/internal/application/purchasing"
	"github.com/gin-gonic/gin"
)

// InvoiceHandler handles purchase invoice API endpoints
type InvoiceHandler struct {
	BaseHandler
	service *purchasingapp.InvoiceService
}

// NewInvoiceHandler creates a new InvoiceHandler
func NewInvoiceHandler(service *purchasingapp.InvoiceService) *InvoiceHandler {
	return &InvoiceHandler{service: service}
}

// CancelRequest carries the mandatory reason for cancelling a document
type CancelRequest struct {
	Reason string `json:"reason" binding:"required,min=1,max=500"`
}

// Create registers a draft purchase invoice or credit/debit note
func (h *InvoiceHandler) Create(c *gin.Context) {
	tenantID, userID, ok := h.identity(c)
	if !ok {
		return
	}

	var req purchasingapp.CreateInvoiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	invoice, err := h.service.Create(c.Request.Context(), tenantID, userID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, invoice)
}

// GetByID returns one invoice with its lines
func (h *InvoiceHandler) GetByID(c *gin.Context) {
	tenantID, _, ok := h.identity(c)
	if !ok {
		return
	}
	invoiceID, ok := h.parseIDParam(c, "id")
	if !ok {
		return
	}

	invoice, err := h.service.GetByID(c.Request.Context(), tenantID, invoiceID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, invoice)
}

// ListBySupplier returns a supplier's invoices. Supports status and
// voucher_type filters.
func (h *InvoiceHandler) ListBySupplier(c *gin.Context) {
	tenantID, _, ok := h.identity(c)
	if !ok {
		return
	}
	supplierID, ok := h.parseIDParam(c, "id")
	if !ok {
		return
	}

	filter, _, err := listFilter(c)
	if err != nil {
		h.BadRequest(c, err.Error())
		return
	}
	if status := c.Query("status"); status != "" {
		filter.Filters["status"] = status
	}
	if voucherType := c.Query("voucher_type"); voucherType != "" {
		filter.Filters["voucher_type"] = voucherType
	}

	invoices, err := h.service.ListBySupplier(c.Request.Context(), tenantID, supplierID, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, invoices)
}

// Confirm moves a draft invoice into the payable ledger
func (h *InvoiceHandler) Confirm(c *gin.Context) {
	tenantID, userID, ok := h.identity(c)
	if !ok {
		return
	}
	invoiceID, ok := h.parseIDParam(c, "id")
	if !ok {
		return
	}

	invoice, err := h.service.Confirm(c.Request.Context(), tenantID, userID, invoiceID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, invoice)
}

// Cancel voids an invoice, reversing its stock effect when confirmed
func (h *InvoiceHandler) Cancel(c *gin.Context) {
	tenantID, userID, ok := h.identity(c)
	if !ok {
		return
	}
	invoiceID, ok := h.parseIDParam(c, "id")
	if !ok {
		return
	}

	var req CancelRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	invoice, err := h.service.Cancel(c.Request.Context(), tenantID, userID, invoiceID, req.Reason)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, invoice)
}

// ApplyCreditNote applies part of a confirmed credit note to an invoice
func (h *InvoiceHandler) ApplyCreditNote(c *gin.Context) {
	tenantID, userID, ok := h.identity(c)
	if !ok {
		return
	}

	var req purchasingapp.ApplyCreditNoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	if err := h.service.ApplyCreditNote(c.Request.Context(), tenantID, userID, req); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}
