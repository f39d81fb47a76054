package treasury

import (
	"time"

	"github.com/comercia/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CheckType distinguishes checks the company issued from checks it received
type CheckType string

const (
	CheckTypeOwn        CheckType = "OWN"
	CheckTypeThirdParty CheckType = "THIRD_PARTY"
)

// IsValid checks if the type is a valid CheckType
func (t CheckType) IsValid() bool {
	return t == CheckTypeOwn || t == CheckTypeThirdParty
}

// CheckStatus represents the status of a check
type CheckStatus string

const (
	CheckStatusPortfolio CheckStatus = "PORTFOLIO"
	CheckStatusDelivered CheckStatus = "DELIVERED"
	CheckStatusDeposited CheckStatus = "DEPOSITED"
	CheckStatusCleared   CheckStatus = "CLEARED"
	CheckStatusRejected  CheckStatus = "REJECTED"
	CheckStatusEndorsed  CheckStatus = "ENDORSED"
	CheckStatusCashed    CheckStatus = "CASHED"
	CheckStatusVoided    CheckStatus = "VOIDED"
)

// checkTransitions is the allowed-transition table for checks. CLEARED and
// CASHED are terminal and non-reversible; void and delete never apply to
// them.
var checkTransitions = shared.TransitionTable[CheckStatus]{
	CheckStatusPortfolio: {CheckStatusDeposited, CheckStatusEndorsed, CheckStatusDelivered, CheckStatusCashed, CheckStatusVoided},
	CheckStatusDelivered: {CheckStatusVoided},
	CheckStatusDeposited: {CheckStatusCleared, CheckStatusRejected},
}

// IsValid checks if the status is a valid CheckStatus
func (s CheckStatus) IsValid() bool {
	switch s {
	case CheckStatusPortfolio, CheckStatusDelivered, CheckStatusDeposited, CheckStatusCleared,
		CheckStatusRejected, CheckStatusEndorsed, CheckStatusCashed, CheckStatusVoided:
		return true
	}
	return false
}

// String returns the string representation of CheckStatus
func (s CheckStatus) String() string {
	return string(s)
}

// CanTransitionTo checks if the status can transition to the target status
func (s CheckStatus) CanTransitionTo(target CheckStatus) bool {
	return checkTransitions.Allows(s, target)
}

// Check is a payment instrument moving through the portfolio lifecycle.
// Deposit creates a pending bank movement; clear finalizes it, reject deletes
// it. The caller owns those ledger writes and runs them in the same
// transaction as the status change.
type Check struct {
	shared.TenantAggregateRoot
	Type            CheckType       `gorm:"type:varchar(20);not null"`
	CheckNumber     string          `gorm:"type:varchar(30);not null"`
	Amount          decimal.Decimal `gorm:"type:decimal(18,2);not null"`
	IssueDate       time.Time       `gorm:"not null"`
	DueDate         time.Time       `gorm:"not null"`
	Status          CheckStatus     `gorm:"type:varchar(20);not null;index"`
	BankAccountID   *uuid.UUID      `gorm:"type:uuid;index"`
	BankMovementID  *uuid.UUID      `gorm:"type:uuid"`
	EndorsedToName  string          `gorm:"type:varchar(100)"`
	DeliveredToName string          `gorm:"type:varchar(100)"`
	RejectionReason string          `gorm:"type:varchar(500)"`
}

// TableName returns the table name for GORM
func (Check) TableName() string {
	return "checks"
}

// NewCheck creates a check in PORTFOLIO
func NewCheck(tenantID uuid.UUID, checkType CheckType, checkNumber string, amount decimal.Decimal, issueDate, dueDate time.Time) (*Check, error) {
	if !checkType.IsValid() {
		return nil, shared.NewValidationError("Check type is not valid")
	}
	if checkNumber == "" {
		return nil, shared.NewValidationError("Check number cannot be empty")
	}
	if amount.LessThanOrEqual(decimal.Zero) {
		return nil, shared.NewValidationError("Check amount must be positive")
	}
	if dueDate.Before(issueDate) {
		return nil, shared.NewValidationError("Due date cannot precede issue date")
	}

	return &Check{
		TenantAggregateRoot: shared.NewTenantAggregateRoot(tenantID),
		Type:                checkType,
		CheckNumber:         checkNumber,
		Amount:              amount,
		IssueDate:           issueDate,
		DueDate:             dueDate,
		Status:              CheckStatusPortfolio,
	}, nil
}

// Deposit moves the check from PORTFOLIO to DEPOSITED against a bank account.
// The caller creates the pending bank movement and links it via movementID.
func (c *Check) Deposit(accountID, movementID uuid.UUID) error {
	if err := checkTransitions.Ensure("Check", c.Status, CheckStatusDeposited); err != nil {
		return err
	}
	if accountID == uuid.Nil {
		return shared.NewValidationError("Bank account ID cannot be empty")
	}

	c.Status = CheckStatusDeposited
	c.BankAccountID = &accountID
	c.BankMovementID = &movementID
	c.UpdatedAt = time.Now()
	c.IncrementVersion()

	c.AddDomainEvent(NewCheckDepositedEvent(c))
	return nil
}

// Endorse hands a third-party check over to someone else. No bank effect.
func (c *Check) Endorse(endorseeName string) error {
	if err := checkTransitions.Ensure("Check", c.Status, CheckStatusEndorsed); err != nil {
		return err
	}
	if c.Type != CheckTypeThirdParty {
		return shared.NewBusinessRuleError("Only third-party checks can be endorsed")
	}
	if endorseeName == "" {
		return shared.NewValidationError("Endorsee name cannot be empty")
	}

	c.Status = CheckStatusEndorsed
	c.EndorsedToName = endorseeName
	c.UpdatedAt = time.Now()
	c.IncrementVersion()
	return nil
}

// Deliver hands an own check to a recipient as payment. No bank effect until
// the recipient deposits it and the debit shows up in a statement.
func (c *Check) Deliver(recipientName string) error {
	if err := checkTransitions.Ensure("Check", c.Status, CheckStatusDelivered); err != nil {
		return err
	}
	if c.Type != CheckTypeOwn {
		return shared.NewBusinessRuleError("Only own checks can be delivered")
	}
	if recipientName == "" {
		return shared.NewValidationError("Recipient name cannot be empty")
	}

	c.Status = CheckStatusDelivered
	c.DeliveredToName = recipientName
	c.UpdatedAt = time.Now()
	c.IncrementVersion()
	return nil
}

// Clear moves a deposited check to CLEARED. The pending movement is
// finalized by the caller; the balance already reflected it at deposit time.
func (c *Check) Clear() error {
	if err := checkTransitions.Ensure("Check", c.Status, CheckStatusCleared); err != nil {
		return err
	}

	c.Status = CheckStatusCleared
	c.UpdatedAt = time.Now()
	c.IncrementVersion()

	c.AddDomainEvent(NewCheckClearedEvent(c))
	return nil
}

// Reject bounces a deposited check. The caller reads MovementToDelete before
// invoking this, then deletes the pending movement and reverts the balance.
func (c *Check) Reject(reason string) error {
	if err := checkTransitions.Ensure("Check", c.Status, CheckStatusRejected); err != nil {
		return err
	}
	if reason == "" {
		return shared.NewValidationError("Rejection reason is required")
	}

	c.Status = CheckStatusRejected
	c.RejectionReason = reason
	c.BankMovementID = nil
	c.UpdatedAt = time.Now()
	c.IncrementVersion()

	c.AddDomainEvent(NewCheckRejectedEvent(c, reason))
	return nil
}

// Cash marks a portfolio third-party check as cashed over the counter.
// Terminal, no bank effect.
func (c *Check) Cash() error {
	if err := checkTransitions.Ensure("Check", c.Status, CheckStatusCashed); err != nil {
		return err
	}
	if c.Type != CheckTypeThirdParty {
		return shared.NewBusinessRuleError("Only third-party checks can be cashed")
	}

	c.Status = CheckStatusCashed
	c.UpdatedAt = time.Now()
	c.IncrementVersion()
	return nil
}

// Void annuls a check from PORTFOLIO or DELIVERED. If a bank movement exists
// the caller deletes it and reverts the balance.
func (c *Check) Void() error {
	if err := checkTransitions.Ensure("Check", c.Status, CheckStatusVoided); err != nil {
		return err
	}

	c.Status = CheckStatusVoided
	c.BankMovementID = nil
	c.UpdatedAt = time.Now()
	c.IncrementVersion()
	return nil
}

// MovementToDelete returns the linked bank movement, if any, that a reject
// or void must remove from the ledger.
func (c *Check) MovementToDelete() *uuid.UUID {
	return c.BankMovementID
}

// EnsureDeletable returns an error unless the check is in PORTFOLIO or
// DELIVERED, the only states where removal has no ledger effect.
func (c *Check) EnsureDeletable() error {
	if c.Status != CheckStatusPortfolio && c.Status != CheckStatusDelivered {
		return shared.NewDomainError(shared.CodeInvalidStateTransition,
			"Only portfolio or delivered checks can be deleted")
	}
	return nil
}
