package treasury

import (
	"time"

	"github.com/comercia/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// BankMovementType classifies a movement and fixes its sign
type BankMovementType string

const (
	BankMovementTypeDeposit     BankMovementType = "DEPOSIT"
	BankMovementTypeTransferIn  BankMovementType = "TRANSFER_IN"
	BankMovementTypeInterest    BankMovementType = "INTEREST"
	BankMovementTypeExtraction  BankMovementType = "EXTRACTION"
	BankMovementTypeTransferOut BankMovementType = "TRANSFER_OUT"
	BankMovementTypeCheckDebit  BankMovementType = "CHECK_DEBIT"
	BankMovementTypeFee         BankMovementType = "FEE"
	BankMovementTypeTax         BankMovementType = "TAX"
)

// IsValid checks if the type is a valid BankMovementType
func (t BankMovementType) IsValid() bool {
	switch t {
	case BankMovementTypeDeposit, BankMovementTypeTransferIn, BankMovementTypeInterest,
		BankMovementTypeExtraction, BankMovementTypeTransferOut, BankMovementTypeCheckDebit,
		BankMovementTypeFee, BankMovementTypeTax:
		return true
	}
	return false
}

// String returns the string representation of BankMovementType
func (t BankMovementType) String() string {
	return string(t)
}

// IsCredit reports whether the type adds to the account balance
func (t BankMovementType) IsCredit() bool {
	switch t {
	case BankMovementTypeDeposit, BankMovementTypeTransferIn, BankMovementTypeInterest:
		return true
	}
	return false
}

// MovementSourceType identifies the document behind a movement
type MovementSourceType string

const (
	MovementSourceCheck  MovementSourceType = "CHECK"
	MovementSourceImport MovementSourceType = "IMPORT"
	MovementSourceManual MovementSourceType = "MANUAL"
)

// BankMovement is one signed entry against a bank account. The account
// balance equals the signed sum of its existing movements at all times, so
// deleting a movement always goes through BankAccount.RevertMovement.
type BankMovement struct {
	ID              uuid.UUID          `gorm:"type:uuid;primary_key"`
	TenantID        uuid.UUID          `gorm:"type:uuid;not null;index"`
	BankAccountID   uuid.UUID          `gorm:"type:uuid;not null;index"`
	Type            BankMovementType   `gorm:"type:varchar(20);not null"`
	Amount          decimal.Decimal    `gorm:"type:decimal(18,2);not null"`
	MovementDate    time.Time          `gorm:"not null;index"`
	Description     string             `gorm:"type:varchar(500);not null"`
	Reference       string             `gorm:"type:varchar(100)"`
	StatementNumber string             `gorm:"type:varchar(50)"`
	Reconciled      bool               `gorm:"not null;default:false"`
	Pending         bool               `gorm:"not null;default:false"`
	SourceType      MovementSourceType `gorm:"type:varchar(20);not null"`
	SourceID        *uuid.UUID         `gorm:"type:uuid;index"`
	CreatedAt       time.Time          `gorm:"not null"`
	UpdatedAt       time.Time          `gorm:"not null"`
}

// TableName returns the table name for GORM
func (BankMovement) TableName() string {
	return "bank_movements"
}

// NewBankMovement creates a movement with a positive face amount; the sign
// comes from the type.
func NewBankMovement(tenantID, accountID uuid.UUID, movementType BankMovementType, amount decimal.Decimal, date time.Time, description string, sourceType MovementSourceType, sourceID *uuid.UUID) (*BankMovement, error) {
	if accountID == uuid.Nil {
		return nil, shared.NewValidationError("Bank account ID cannot be empty")
	}
	if !movementType.IsValid() {
		return nil, shared.NewValidationError("Bank movement type is not valid")
	}
	if amount.LessThanOrEqual(decimal.Zero) {
		return nil, shared.NewValidationError("Movement amount must be positive")
	}
	if description == "" || len(description) > 500 {
		return nil, shared.NewValidationError("Movement description must be between 1 and 500 characters")
	}

	now := time.Now()
	return &BankMovement{
		ID:            uuid.New(),
		TenantID:      tenantID,
		BankAccountID: accountID,
		Type:          movementType,
		Amount:        amount,
		MovementDate:  date,
		Description:   description,
		SourceType:    sourceType,
		SourceID:      sourceID,
		CreatedAt:     now,
		UpdatedAt:     now,
	}, nil
}

// SignedAmount returns the amount with the sign its type dictates
func (m *BankMovement) SignedAmount() decimal.Decimal {
	if m.Type.IsCredit() {
		return m.Amount
	}
	return m.Amount.Neg()
}

// MarkPending flags the movement as awaiting clearing
func (m *BankMovement) MarkPending() {
	m.Pending = true
	m.UpdatedAt = time.Now()
}

// Finalize clears the pending flag once the movement is settled
func (m *BankMovement) Finalize() {
	m.Pending = false
	m.UpdatedAt = time.Now()
}
