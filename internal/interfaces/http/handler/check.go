package handler

import (
	treasuryapp "github.com/comercia/backend/internal/application/treasury"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// CheckHandler handles check portfolio API endpoints
type CheckHandler struct {
	BaseHandler
	service *treasuryapp.CheckService
}

// NewCheckHandler creates a new CheckHandler
func NewCheckHandler(service *treasuryapp.CheckService) *CheckHandler {
	return &CheckHandler{service: service}
}

// DepositCheckRequest names the account receiving a deposited check
type DepositCheckRequest struct {
	BankAccountID uuid.UUID `json:"bank_account_id" binding:"required"`
}

// RejectCheckRequest carries the bank's rejection reason
type RejectCheckRequest struct {
	Reason string `json:"reason" binding:"required,min=1,max=500"`
}

// EndorseCheckRequest names the endorsee of a third-party check
type EndorseCheckRequest struct {
	EndorseeName string `json:"endorsee_name" binding:"required,min=1,max=100"`
}

// DeliverCheckRequest names the recipient of an own check
type DeliverCheckRequest struct {
	RecipientName string `json:"recipient_name" binding:"required,min=1,max=100"`
}

// Create registers a check in portfolio
func (h *CheckHandler) Create(c *gin.Context) {
	tenantID, userID, ok := h.identity(c)
	if !ok {
		return
	}

	var req treasuryapp.CreateCheckRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	check, err := h.service.Create(c.Request.Context(), tenantID, userID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, check)
}

// GetByID returns one check
func (h *CheckHandler) GetByID(c *gin.Context) {
	tenantID, _, ok := h.identity(c)
	if !ok {
		return
	}
	checkID, ok := h.parseIDParam(c, "id")
	if !ok {
		return
	}

	check, err := h.service.GetByID(c.Request.Context(), tenantID, checkID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, check)
}

// List returns checks. Supports status and type filters.
func (h *CheckHandler) List(c *gin.Context) {
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
	if checkType := c.Query("type"); checkType != "" {
		filter.Filters["type"] = checkType
	}

	checks, err := h.service.List(c.Request.Context(), tenantID, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, checks)
}

// Deposit sends a third-party check to a bank account, creating the
// pending movement.
func (h *CheckHandler) Deposit(c *gin.Context) {
	tenantID, userID, ok := h.identity(c)
	if !ok {
		return
	}
	checkID, ok := h.parseIDParam(c, "id")
	if !ok {
		return
	}

	var req DepositCheckRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	check, err := h.service.Deposit(c.Request.Context(), tenantID, userID, checkID, req.BankAccountID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, check)
}

// Clear settles a deposited check and posts its amount to the account balance
func (h *CheckHandler) Clear(c *gin.Context) {
	tenantID, userID, ok := h.identity(c)
	if !ok {
		return
	}
	checkID, ok := h.parseIDParam(c, "id")
	if !ok {
		return
	}

	check, err := h.service.Clear(c.Request.Context(), tenantID, userID, checkID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, check)
}

// Reject marks a deposited check as bounced, removing its pending movement
func (h *CheckHandler) Reject(c *gin.Context) {
	tenantID, userID, ok := h.identity(c)
	if !ok {
		return
	}
	checkID, ok := h.parseIDParam(c, "id")
	if !ok {
		return
	}

	var req RejectCheckRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	check, err := h.service.Reject(c.Request.Context(), tenantID, userID, checkID, req.Reason)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, check)
}

// Endorse passes a third-party check to someone else
func (h *CheckHandler) Endorse(c *gin.Context) {
	tenantID, userID, ok := h.identity(c)
	if !ok {
		return
	}
	checkID, ok := h.parseIDParam(c, "id")
	if !ok {
		return
	}

	var req EndorseCheckRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	check, err := h.service.Endorse(c.Request.Context(), tenantID, userID, checkID, req.EndorseeName)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, check)
}

// Deliver hands an own check to a supplier or other recipient
func (h *CheckHandler) Deliver(c *gin.Context) {
	tenantID, userID, ok := h.identity(c)
	if !ok {
		return
	}
	checkID, ok := h.parseIDParam(c, "id")
	if !ok {
		return
	}

	var req DeliverCheckRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	check, err := h.service.Deliver(c.Request.Context(), tenantID, userID, checkID, req.RecipientName)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, check)
}

// Cash marks a portfolio check as cashed over the counter
func (h *CheckHandler) Cash(c *gin.Context) {
	tenantID, userID, ok := h.identity(c)
	if !ok {
		return
	}
	checkID, ok := h.parseIDParam(c, "id")
	if !ok {
		return
	}

	check, err := h.service.Cash(c.Request.Context(), tenantID, userID, checkID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, check)
}

// Void annuls a check, removing any pending movement it created
func (h *CheckHandler) Void(c *gin.Context) {
	tenantID, userID, ok := h.identity(c)
	if !ok {
		return
	}
	checkID, ok := h.parseIDParam(c, "id")
	if !ok {
		return
	}

	check, err := h.service.Void(c.Request.Context(), tenantID, userID, checkID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, check)
}

// Delete removes a portfolio check that never touched an account
func (h *CheckHandler) Delete(c *gin.Context) {
	tenantID, userID, ok := h.identity(c)
	if !ok {
		return
	}
	checkID, ok := h.parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.service.Delete(c.Request.Context(), tenantID, userID, checkID); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}
