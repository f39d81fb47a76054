package handler

import (
	purchasingapp "github.com/comercia/backend/internal/application/purchasing"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// ReceivingNoteHandler handles receiving note API endpoints
type ReceivingNoteHandler struct {
	BaseHandler
	service *purchasingapp.ReceivingNoteService
}

// NewReceivingNoteHandler creates a new ReceivingNoteHandler
func NewReceivingNoteHandler(service *purchasingapp.ReceivingNoteService) *ReceivingNoteHandler {
	return &ReceivingNoteHandler{service: service}
}

// Create registers a draft receiving note
func (h *ReceivingNoteHandler) Create(c *gin.Context) {
	tenantID, userID, ok := h.identity(c)
	if !ok {
		return
	}

	var req purchasingapp.CreateReceivingNoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	note, err := h.service.Create(c.Request.Context(), tenantID, userID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, note)
}

// GetByID returns one receiving note with its lines
func (h *ReceivingNoteHandler) GetByID(c *gin.Context) {
	tenantID, _, ok := h.identity(c)
	if !ok {
		return
	}
	noteID, ok := h.parseIDParam(c, "id")
	if !ok {
		return
	}

	note, err := h.service.GetByID(c.Request.Context(), tenantID, noteID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, note)
}

// List returns receiving notes. Supports status and supplier_id filters.
func (h *ReceivingNoteHandler) List(c *gin.Context) {
	tenantID, _, ok := h.identity(c)
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
	if supplierStr := c.Query("supplier_id"); supplierStr != "" {
		supplierID, err := uuid.Parse(supplierStr)
		if err != nil {
			h.BadRequest(c, "Invalid supplier_id format")
			return
		}
		filter.Filters["supplier_id"] = supplierID
	}

	notes, err := h.service.List(c.Request.Context(), tenantID, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, notes)
}

// Confirm posts the received quantities to the stock ledger
func (h *ReceivingNoteHandler) Confirm(c *gin.Context) {
	tenantID, userID, ok := h.identity(c)
	if !ok {
		return
	}
	noteID, ok := h.parseIDParam(c, "id")
	if !ok {
		return
	}

	note, err := h.service.Confirm(c.Request.Context(), tenantID, userID, noteID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, note)
}

// Cancel voids a receiving note, reversing stock when it was confirmed
func (h *ReceivingNoteHandler) Cancel(c *gin.Context) {
	tenantID, userID, ok := h.identity(c)
	if !ok {
		return
	}
	noteID, ok := h.parseIDParam(c, "id")
	if !ok {
		return
	}

	var req CancelRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	note, err := h.service.Cancel(c.Request.Context(), tenantID, userID, noteID, req.Reason)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, note)
}

// Delete removes a draft receiving note
func (h *ReceivingNoteHandler) Delete(c *gin.Context) {
	tenantID, userID, ok := h.identity(c)
	if !ok {
		return
	}
	noteID, ok := h.parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.service.Delete(c.Request.Context(), tenantID, userID, noteID); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}
