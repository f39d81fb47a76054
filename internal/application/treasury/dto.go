package treasury

import (
	"time"

	"github.com/comercia/backend/internal/domain/treasury"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CreateBankAccountRequest creates a bank account
type CreateBankAccountRequest struct {
	Number   string `json:"number" binding:"required,max=30"`
	Name     string `json:"name" binding:"required,max=100"`
	BankName string `json:"bank_name" binding:"max=100"`
}

// BankAccountResponse represents a bank account in API responses
type BankAccountResponse struct {
	ID        uuid.UUID       `json:"id"`
	Number    string          `json:"number"`
	Name      string          `json:"name"`
	BankName  string          `json:"bank_name,omitempty"`
	Balance   decimal.Decimal `json:"balance"`
	Active    bool            `json:"active"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}

// ToBankAccountResponse converts a domain account to a response DTO
func ToBankAccountResponse(a *treasury.BankAccount) BankAccountResponse {
	return BankAccountResponse{
		ID:        a.ID,
		Number:    a.Number,
		Name:      a.Name,
		BankName:  a.BankName,
		Balance:   a.Balance,
		Active:    a.Active,
		CreatedAt: a.CreatedAt,
		UpdatedAt: a.UpdatedAt,
	}
}

// BankMovementResponse represents a bank movement in API responses
type BankMovementResponse struct {
	ID              uuid.UUID       `json:"id"`
	BankAccountID   uuid.UUID       `json:"bank_account_id"`
	Type            string          `json:"type"`
	Amount          decimal.Decimal `json:"amount"`
	SignedAmount    decimal.Decimal `json:"signed_amount"`
	MovementDate    time.Time       `json:"movement_date"`
	Description     string          `json:"description"`
	Reference       string          `json:"reference,omitempty"`
	StatementNumber string          `json:"statement_number,omitempty"`
	Reconciled      bool            `json:"reconciled"`
	Pending         bool            `json:"pending"`
}

// ToBankMovementResponse converts a domain movement to a response DTO
func ToBankMovementResponse(m *treasury.BankMovement) BankMovementResponse {
	return BankMovementResponse{
		ID:              m.ID,
		BankAccountID:   m.BankAccountID,
		Type:            m.Type.String(),
		Amount:          m.Amount,
		SignedAmount:    m.SignedAmount(),
		MovementDate:    m.MovementDate,
		Description:     m.Description,
		Reference:       m.Reference,
		StatementNumber: m.StatementNumber,
		Reconciled:      m.Reconciled,
		Pending:         m.Pending,
	}
}

// CreateCheckRequest creates a check in portfolio
type CreateCheckRequest struct {
	Type        string          `json:"type" binding:"required,oneof=OWN THIRD_PARTY"`
	CheckNumber string          `json:"check_number" binding:"required,max=30"`
	Amount      decimal.Decimal `json:"amount" binding:"required"`
	IssueDate   time.Time       `json:"issue_date" binding:"required"`
	DueDate     time.Time       `json:"due_date" binding:"required"`
}

// CheckResponse represents a check in API responses
type CheckResponse struct {
	ID              uuid.UUID       `json:"id"`
	Type            string          `json:"type"`
	CheckNumber     string          `json:"check_number"`
	Amount          decimal.Decimal `json:"amount"`
	IssueDate       time.Time       `json:"issue_date"`
	DueDate         time.Time       `json:"due_date"`
	Status          string          `json:"status"`
	BankAccountID   *uuid.UUID      `json:"bank_account_id,omitempty"`
	EndorsedToName  string          `json:"endorsed_to_name,omitempty"`
	DeliveredToName string          `json:"delivered_to_name,omitempty"`
	RejectionReason string          `json:"rejection_reason,omitempty"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`
}

// ToCheckResponse converts a domain check to a response DTO
func ToCheckResponse(c *treasury.Check) CheckResponse {
	return CheckResponse{
		ID:              c.ID,
		Type:            string(c.Type),
		CheckNumber:     c.CheckNumber,
		Amount:          c.Amount,
		IssueDate:       c.IssueDate,
		DueDate:         c.DueDate,
		Status:          c.Status.String(),
		BankAccountID:   c.BankAccountID,
		EndorsedToName:  c.EndorsedToName,
		DeliveredToName: c.DeliveredToName,
		RejectionReason: c.RejectionReason,
		CreatedAt:       c.CreatedAt,
		UpdatedAt:       c.UpdatedAt,
	}
}

// CashSessionResponse represents a cash session in API responses
type CashSessionResponse struct {
	ID              uuid.UUID        `json:"id"`
	CashRegisterID  uuid.UUID        `json:"cash_register_id"`
	SessionNumber   int              `json:"session_number"`
	Status          string           `json:"status"`
	ExpectedBalance decimal.Decimal  `json:"expected_balance"`
	ActualBalance   *decimal.Decimal `json:"actual_balance,omitempty"`
	Difference      *decimal.Decimal `json:"difference,omitempty"`
	Notes           string           `json:"notes,omitempty"`
	OpenedAt        time.Time        `json:"opened_at"`
	ClosedAt        *time.Time       `json:"closed_at,omitempty"`
}

// ToCashSessionResponse converts a domain session to a response DTO
func ToCashSessionResponse(cs *treasury.CashSession) CashSessionResponse {
	return CashSessionResponse{
		ID:              cs.ID,
		CashRegisterID:  cs.CashRegisterID,
		SessionNumber:   cs.SessionNumber,
		Status:          cs.Status.String(),
		ExpectedBalance: cs.ExpectedBalance,
		ActualBalance:   cs.ActualBalance,
		Difference:      cs.Difference,
		Notes:           cs.Notes,
		OpenedAt:        cs.OpenedAt,
		ClosedAt:        cs.ClosedAt,
	}
}

// ImportRow is one raw statement row in a bulk import request
type ImportRow struct {
	Date            string          `json:"date" binding:"required"`
	Type            string          `json:"type" binding:"required"`
	Amount          decimal.Decimal `json:"amount" binding:"required"`
	Description     string          `json:"description" binding:"required"`
	Reference       string          `json:"reference"`
	StatementNumber string          `json:"statement_number"`
}

// ImportRowError describes why one row failed validation
type ImportRowError struct {
	Row     int    `json:"row"`
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ImportResult is the all-or-nothing outcome of a bulk import
type ImportResult struct {
	Success  bool             `json:"success"`
	Imported int              `json:"imported"`
	Errors   []ImportRowError `json:"errors,omitempty"`
}
