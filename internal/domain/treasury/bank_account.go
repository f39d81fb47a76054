package treasury

import (
	"github.com/comercia/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"time"
)

// BankAccount holds a running balance over its movements. Invariant: Balance
// equals the signed sum of the account's existing movements; every movement
// insert or delete adjusts the balance in the same transaction.
type BankAccount struct {
	shared.TenantAggregateRoot
	Number   string          `gorm:"type:varchar(30);not null;uniqueIndex:idx_bank_account_tenant_number,priority:2"`
	Name     string          `gorm:"type:varchar(100);not null"`
	BankName string          `gorm:"type:varchar(100)"`
	Balance  decimal.Decimal `gorm:"type:decimal(18,2);not null"`
	Active   bool            `gorm:"not null;default:true"`
}

// TableName returns the table name for GORM
func (BankAccount) TableName() string {
	return "bank_accounts"
}

// NewBankAccount creates an account with a zero balance
func NewBankAccount(tenantID uuid.UUID, number, name, bankName string) (*BankAccount, error) {
	if number == "" {
		return nil, shared.NewValidationError("Account number cannot be empty")
	}
	if name == "" {
		return nil, shared.NewValidationError("Account name cannot be empty")
	}

	return &BankAccount{
		TenantAggregateRoot: shared.NewTenantAggregateRoot(tenantID),
		Number:              number,
		Name:                name,
		BankName:            bankName,
		Balance:             decimal.Zero,
		Active:              true,
	}, nil
}

// ApplyMovement adds a movement's signed amount to the balance
func (a *BankAccount) ApplyMovement(m *BankMovement) error {
	if m.BankAccountID != a.ID {
		return shared.NewValidationError("Movement belongs to a different account")
	}
	a.Balance = a.Balance.Add(m.SignedAmount())
	a.UpdatedAt = time.Now()
	a.IncrementVersion()
	return nil
}

// RevertMovement removes a movement's signed amount from the balance, used
// when the movement row itself is being deleted (check reject or void).
func (a *BankAccount) RevertMovement(m *BankMovement) error {
	if m.BankAccountID != a.ID {
		return shared.NewValidationError("Movement belongs to a different account")
	}
	a.Balance = a.Balance.Sub(m.SignedAmount())
	a.UpdatedAt = time.Now()
	a.IncrementVersion()
	return nil
}

// ApplyDelta adds an aggregate signed amount, used by the bulk importer to
// post a whole batch in one balance write.
func (a *BankAccount) ApplyDelta(delta decimal.Decimal) {
	a.Balance = a.Balance.Add(delta)
	a.UpdatedAt = time.Now()
	a.IncrementVersion()
}
