package handler

import (
	"strconv"

	partnerapp "github.com/comercia/backend/internal/application/partner"
	"github.com/gin-gonic/gin"
)

// SupplierHandler handles supplier API endpoints
type SupplierHandler struct {
	BaseHandler
	service *partnerapp.SupplierService
}

// NewSupplierHandler creates a new SupplierHandler
func NewSupplierHandler(service *partnerapp.SupplierService) *SupplierHandler {
	return &SupplierHandler{service: service}
}

// Create registers a new supplier
func (h *SupplierHandler) Create(c *gin.Context) {
	tenantID, userID, ok := h.identity(c)
	if !ok {
		return
	}

	var req partnerapp.CreateSupplierRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	supplier, err := h.service.Create(c.Request.Context(), tenantID, userID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, supplier)
}

// GetByID returns one supplier
func (h *SupplierHandler) GetByID(c *gin.Context) {
	tenantID, _, ok := h.identity(c)
	if !ok {
		return
	}
	supplierID, ok := h.parseIDParam(c, "id")
	if !ok {
		return
	}

	supplier, err := h.service.GetByID(c.Request.Context(), tenantID, supplierID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, supplier)
}

// List returns suppliers with pagination. Supports search over code, name
// and tax ID, and an active=true/false filter.
func (h *SupplierHandler) List(c *gin.Context) {
	tenantID, _, ok := h.identity(c)
	if !ok {
		return
	}

	filter, req, err := listFilter(c)
	if err != nil {
		h.BadRequest(c, err.Error())
		return
	}
	if activeStr := c.Query("active"); activeStr != "" {
		active, err := strconv.ParseBool(activeStr)
		if err != nil {
			h.BadRequest(c, "Invalid active filter")
			return
		}
		filter.Filters["active"] = active
	}

	suppliers, total, err := h.service.List(c.Request.Context(), tenantID, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.SuccessWithMeta(c, suppliers, total, req.Page, req.PageSize)
}

// Update modifies a supplier's editable fields
func (h *SupplierHandler) Update(c *gin.Context) {
	tenantID, userID, ok := h.identity(c)
	if !ok {
		return
	}
	supplierID, ok := h.parseIDParam(c, "id")
	if !ok {
		return
	}

	var req partnerapp.UpdateSupplierRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	supplier, err := h.service.Update(c.Request.Context(), tenantID, userID, supplierID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, supplier)
}

// Delete removes a supplier without documents
func (h *SupplierHandler) Delete(c *gin.Context) {
	tenantID, userID, ok := h.identity(c)
	if !ok {
		return
	}
	supplierID, ok := h.parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.service.Delete(c.Request.Context(), tenantID, userID, supplierID); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}
