package treasury

import (
	"github.com/comercia/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// Event types for treasury aggregates
const (
	EventTypeCheckDeposited    = "treasury.check.deposited"
	EventTypeCheckCleared      = "treasury.check.cleared"
	EventTypeCheckRejected     = "treasury.check.rejected"
	EventTypeCashSessionClosed = "treasury.cash_session.closed"
)

// CheckDepositedEvent is emitted when a check is deposited against an account
type CheckDepositedEvent struct {
	shared.BaseDomainEvent
	CheckNumber   string          `json:"check_number"`
	Amount        decimal.Decimal `json:"amount"`
	BankAccountID string          `json:"bank_account_id"`
}

// NewCheckDepositedEvent creates a new CheckDepositedEvent
func NewCheckDepositedEvent(c *Check) *CheckDepositedEvent {
	accountID := ""
	if c.BankAccountID != nil {
		accountID = c.BankAccountID.String()
	}
	return &CheckDepositedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeCheckDeposited, "Check", c.ID, c.TenantID),
		CheckNumber:     c.CheckNumber,
		Amount:          c.Amount,
		BankAccountID:   accountID,
	}
}

// CheckClearedEvent is emitted when a deposited check clears
type CheckClearedEvent struct {
	shared.BaseDomainEvent
	CheckNumber string          `json:"check_number"`
	Amount      decimal.Decimal `json:"amount"`
}

// NewCheckClearedEvent creates a new CheckClearedEvent
func NewCheckClearedEvent(c *Check) *CheckClearedEvent {
	return &CheckClearedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeCheckCleared, "Check", c.ID, c.TenantID),
		CheckNumber:     c.CheckNumber,
		Amount:          c.Amount,
	}
}

// CheckRejectedEvent is emitted when a deposited check bounces
type CheckRejectedEvent struct {
	shared.BaseDomainEvent
	CheckNumber string          `json:"check_number"`
	Amount      decimal.Decimal `json:"amount"`
	Reason      string          `json:"reason"`
}

// NewCheckRejectedEvent creates a new CheckRejectedEvent
func NewCheckRejectedEvent(c *Check, reason string) *CheckRejectedEvent {
	return &CheckRejectedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeCheckRejected, "Check", c.ID, c.TenantID),
		CheckNumber:     c.CheckNumber,
		Amount:          c.Amount,
		Reason:          reason,
	}
}

// CashSessionClosedEvent carries the close reconciliation summary
type CashSessionClosedEvent struct {
	shared.BaseDomainEvent
	CashRegisterID  string          `json:"cash_register_id"`
	SessionNumber   int             `json:"session_number"`
	ExpectedBalance decimal.Decimal `json:"expected_balance"`
	ActualBalance   decimal.Decimal `json:"actual_balance"`
	Difference      decimal.Decimal `json:"difference"`
}

// NewCashSessionClosedEvent creates a new CashSessionClosedEvent
func NewCashSessionClosedEvent(cs *CashSession) *CashSessionClosedEvent {
	actual := decimal.Zero
	if cs.ActualBalance != nil {
		actual = *cs.ActualBalance
	}
	difference := decimal.Zero
	if cs.Difference != nil {
		difference = *cs.Difference
	}
	return &CashSessionClosedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeCashSessionClosed, "CashSession", cs.ID, cs.TenantID),
		CashRegisterID:  cs.CashRegisterID.String(),
		SessionNumber:   cs.SessionNumber,
		ExpectedBalance: cs.ExpectedBalance,
		ActualBalance:   actual,
		Difference:      difference,
	}
}
