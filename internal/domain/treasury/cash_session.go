package treasury

import (
	"time"

	"github.com/comercia/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CashSessionStatus represents the status of a cash register session
type CashSessionStatus string

const (
	CashSessionStatusOpen   CashSessionStatus = "OPEN"
	CashSessionStatusClosed CashSessionStatus = "CLOSED"
)

// String returns the string representation of CashSessionStatus
func (s CashSessionStatus) String() string {
	return string(s)
}

// CashSession is one open-to-close cycle on a cash register. At most one
// OPEN session may exist per register; the persistence layer enforces it
// with a partial unique index on (tenant_id, cash_register_id) where
// status = 'OPEN'.
type CashSession struct {
	shared.TenantAggregateRoot
	CashRegisterID  uuid.UUID         `gorm:"type:uuid;not null;index"`
	SessionNumber   int               `gorm:"not null"`
	Status          CashSessionStatus `gorm:"type:varchar(10);not null;index"`
	ExpectedBalance decimal.Decimal   `gorm:"type:decimal(18,2);not null"`
	ActualBalance   *decimal.Decimal  `gorm:"type:decimal(18,2)"`
	Difference      *decimal.Decimal  `gorm:"type:decimal(18,2)"`
	Notes           string            `gorm:"type:varchar(500)"`
	OpenedAt        time.Time         `gorm:"not null"`
	ClosedAt        *time.Time
}

// TableName returns the table name for GORM
func (CashSession) TableName() string {
	return "cash_sessions"
}

// NewCashSession opens a session with the counted opening balance
func NewCashSession(tenantID, cashRegisterID uuid.UUID, sessionNumber int, openingBalance decimal.Decimal) (*CashSession, error) {
	if cashRegisterID == uuid.Nil {
		return nil, shared.NewValidationError("Cash register ID cannot be empty")
	}
	if sessionNumber <= 0 {
		return nil, shared.NewValidationError("Session number must be positive")
	}
	if openingBalance.IsNegative() {
		return nil, shared.NewValidationError("Opening balance cannot be negative")
	}

	return &CashSession{
		TenantAggregateRoot: shared.NewTenantAggregateRoot(tenantID),
		CashRegisterID:      cashRegisterID,
		SessionNumber:       sessionNumber,
		Status:              CashSessionStatusOpen,
		ExpectedBalance:     openingBalance,
		OpenedAt:            time.Now(),
	}, nil
}

// AdjustExpected moves the expected balance by a signed delta as cash
// receipts and payments hit the register while the session is open.
func (cs *CashSession) AdjustExpected(delta decimal.Decimal) error {
	if cs.Status != CashSessionStatusOpen {
		return shared.NewInvalidTransitionError("CashSession", cs.Status.String(), CashSessionStatusOpen.String())
	}
	if delta.IsZero() {
		return shared.NewValidationError("Adjustment delta cannot be zero")
	}

	cs.ExpectedBalance = cs.ExpectedBalance.Add(delta)
	cs.UpdatedAt = time.Now()
	cs.IncrementVersion()
	return nil
}

// Close records the counted balance and the derived difference. The
// difference is informational; no tolerance rejects a large one. There is no
// way back to OPEN, a new session must be opened instead.
func (cs *CashSession) Close(actualBalance decimal.Decimal, notes string) error {
	if cs.Status != CashSessionStatusOpen {
		return shared.NewInvalidTransitionError("CashSession", cs.Status.String(), CashSessionStatusClosed.String())
	}
	if actualBalance.IsNegative() {
		return shared.NewValidationError("Actual balance cannot be negative")
	}

	now := time.Now()
	difference := actualBalance.Sub(cs.ExpectedBalance)
	cs.Status = CashSessionStatusClosed
	cs.ActualBalance = &actualBalance
	cs.Difference = &difference
	cs.Notes = notes
	cs.ClosedAt = &now
	cs.UpdatedAt = now
	cs.IncrementVersion()

	cs.AddDomainEvent(NewCashSessionClosedEvent(cs))
	return nil
}
