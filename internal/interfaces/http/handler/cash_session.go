package handler

import (
	treasuryapp "github.com/comercia/backend/internal/application/treasury"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CashSessionHandler handles cash session API endpoints
type CashSessionHandler struct {
	BaseHandler
	service *treasuryapp.CashSessionService
}

// NewCashSessionHandler creates a new CashSessionHandler
func NewCashSessionHandler(service *treasuryapp.CashSessionService) *CashSessionHandler {
	return &CashSessionHandler{service: service}
}

// OpenSessionRequest opens a session on a register with a counted float
type OpenSessionRequest struct {
	CashRegisterID uuid.UUID       `json:"cash_register_id" binding:"required"`
	OpeningBalance decimal.Decimal `json:"opening_balance"`
}

// AdjustSessionRequest moves the expected balance by a signed delta
type AdjustSessionRequest struct {
	Delta decimal.Decimal `json:"delta" binding:"required"`
}

// CloseSessionRequest closes a session against the counted drawer
type CloseSessionRequest struct {
	ActualBalance decimal.Decimal `json:"actual_balance" binding:"required"`
	Notes         string          `json:"notes" binding:"max=500"`
}

// GetCurrent returns the register's open session
func (h *CashSessionHandler) GetCurrent(c *gin.Context) {
	tenantID, _, ok := h.identity(c)
	if !ok {
		return
	}

	registerID, err := uuid.Parse(c.Query("cash_register_id"))
	if err != nil {
		h.BadRequest(c, "Invalid cash_register_id format")
		return
	}

	session, err := h.service.GetCurrent(c.Request.Context(), tenantID, registerID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, session)
}

// Open opens a cash session. A register can hold only one open session.
func (h *CashSessionHandler) Open(c *gin.Context) {
	tenantID, userID, ok := h.identity(c)
	if !ok {
		return
	}

	var req OpenSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	session, err := h.service.Open(c.Request.Context(), tenantID, userID, req.CashRegisterID, req.OpeningBalance)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, session)
}

// AdjustExpected applies a signed movement to the session's expected balance
func (h *CashSessionHandler) AdjustExpected(c *gin.Context) {
	tenantID, userID, ok := h.identity(c)
	if !ok {
		return
	}
	sessionID, ok := h.parseIDParam(c, "id")
	if !ok {
		return
	}

	var req AdjustSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	session, err := h.service.AdjustExpected(c.Request.Context(), tenantID, userID, sessionID, req.Delta)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, session)
}

// Close closes the session and records the counted difference
func (h *CashSessionHandler) Close(c *gin.Context) {
	tenantID, userID, ok := h.identity(c)
	if !ok {
		return
	}
	sessionID, ok := h.parseIDParam(c, "id")
	if !ok {
		return
	}

	var req CloseSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	session, err := h.service.Close(c.Request.Context(), tenantID, userID, sessionID, req.ActualBalance, req.Notes)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, session)
}
