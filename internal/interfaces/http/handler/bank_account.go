package handler

import (
	"strconv"

	treasuryapp "github.com/comercia/backend/internal/application/treasury"
	"github.com/gin-gonic/gin"
)

// BankAccountHandler handles bank account and statement import endpoints
type BankAccountHandler struct {
	BaseHandler
	accounts *treasuryapp.BankAccountService
	imports  *treasuryapp.BankImportService
}

// NewBankAccountHandler creates a new BankAccountHandler
func NewBankAccountHandler(accounts *treasuryapp.BankAccountService, imports *treasuryapp.BankImportService) *BankAccountHandler {
	return &BankAccountHandler{accounts: accounts, imports: imports}
}

// ImportMovementsRequest carries raw statement rows for a bulk import
type ImportMovementsRequest struct {
	Rows []treasuryapp.ImportRow `json:"rows" binding:"required,min=1"`
}

// Create opens a bank account with zero balance
func (h *BankAccountHandler) Create(c *gin.Context) {
	tenantID, userID, ok := h.identity(c)
	if !ok {
		return
	}

	var req treasuryapp.CreateBankAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	account, err := h.accounts.Create(c.Request.Context(), tenantID, userID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, account)
}

// GetByID returns one bank account
func (h *BankAccountHandler) GetByID(c *gin.Context) {
	tenantID, _, ok := h.identity(c)
	if !ok {
		return
	}
	accountID, ok := h.parseIDParam(c, "id")
	if !ok {
		return
	}

	account, err := h.accounts.GetByID(c.Request.Context(), tenantID, accountID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, account)
}

// List returns bank accounts. Supports an active=true/false filter.
func (h *BankAccountHandler) List(c *gin.Context) {
	tenantID, _, ok := h.identity(c)
	if !ok {
		return
	}

	filter, _, err := listFilter(c)
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

	accounts, err := h.accounts.List(c.Request.Context(), tenantID, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, accounts)
}

// ListMovements returns an account's movements, newest first
func (h *BankAccountHandler) ListMovements(c *gin.Context) {
	tenantID, _, ok := h.identity(c)
	if !ok {
		return
	}
	accountID, ok := h.parseIDParam(c, "id")
	if !ok {
		return
	}

	filter, _, err := listFilter(c)
	if err != nil {
		h.BadRequest(c, err.Error())
		return
	}
	if movementType := c.Query("type"); movementType != "" {
		filter.Filters["type"] = movementType
	}

	movements, err := h.accounts.ListMovements(c.Request.Context(), tenantID, accountID, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, movements)
}

// ImportMovements bulk-imports statement rows into an account. The import
// is all or nothing: any invalid row rejects the whole batch.
func (h *BankAccountHandler) ImportMovements(c *gin.Context) {
	tenantID, userID, ok := h.identity(c)
	if !ok {
		return
	}
	accountID, ok := h.parseIDParam(c, "id")
	if !ok {
		return
	}

	var req ImportMovementsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	result, err := h.imports.Import(c.Request.Context(), tenantID, userID, accountID, req.Rows)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	if !result.Success {
		h.Success(c, result)
		return
	}

	h.Created(c, result)
}
