package handler

import (
	purchasingapp "github.com/comercia/backend/internal/application/purchasing"
	"github.com/gin-gonic/gin"
)

// PaymentOrderHandler handles payment order API endpoints
type PaymentOrderHandler struct {
	BaseHandler
	service *purchasingapp.PaymentOrderService
}

// NewPaymentOrderHandler creates a new PaymentOrderHandler
func NewPaymentOrderHandler(service *purchasingapp.PaymentOrderService) *PaymentOrderHandler {
	return &PaymentOrderHandler{service: service}
}

// Create registers a draft payment order against open invoices
func (h *PaymentOrderHandler) Create(c *gin.Context) {
	tenantID, userID, ok := h.identity(c)
	if !ok {
		return
	}

	var req purchasingapp.CreatePaymentOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	order, err := h.service.Create(c.Request.Context(), tenantID, userID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, order)
}

// GetByID returns one payment order with its items
func (h *PaymentOrderHandler) GetByID(c *gin.Context) {
	tenantID, _, ok := h.identity(c)
	if !ok {
		return
	}
	orderID, ok := h.parseIDParam(c, "id")
	if !ok {
		return
	}

	order, err := h.service.GetByID(c.Request.Context(), tenantID, orderID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, order)
}

// Confirm settles the order, updating each paid invoice's status
func (h *PaymentOrderHandler) Confirm(c *gin.Context) {
	tenantID, userID, ok := h.identity(c)
	if !ok {
		return
	}
	orderID, ok := h.parseIDParam(c, "id")
	if !ok {
		return
	}

	order, err := h.service.Confirm(c.Request.Context(), tenantID, userID, orderID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, order)
}

// Cancel voids a draft payment order
func (h *PaymentOrderHandler) Cancel(c *gin.Context) {
	tenantID, userID, ok := h.identity(c)
	if !ok {
		return
	}
	orderID, ok := h.parseIDParam(c, "id")
	if !ok {
		return
	}

	var req CancelRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	order, err := h.service.CancelDraft(c.Request.Context(), tenantID, userID, orderID, req.Reason)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, order)
}
