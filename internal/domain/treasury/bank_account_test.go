package treasury

import (
	"testing"
	"time"

	"github.com/comercia/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestAccount(t *testing.T) *BankAccount {
	t.Helper()
	a, err := NewBankAccount(uuid.New(), "0170001540000001234567", "Operativa ARS", "BBVA")
	require.NoError(t, err)
	return a
}

func newTestMovement(t *testing.T, account *BankAccount, movementType BankMovementType, amount int64) *BankMovement {
	t.Helper()
	m, err := NewBankMovement(account.TenantID, account.ID, movementType,
		decimal.NewFromInt(amount), time.Now(), "test movement", MovementSourceManual, nil)
	require.NoError(t, err)
	return m
}

func TestNewBankAccount(t *testing.T) {
	a := newTestAccount(t)
	assert.True(t, a.Balance.IsZero())
	assert.True(t, a.Active)

	_, err := NewBankAccount(uuid.New(), "", "Operativa", "BBVA")
	assert.Equal(t, shared.CodeValidation, shared.CodeOf(err))

	_, err = NewBankAccount(uuid.New(), "123", "", "BBVA")
	assert.Equal(t, shared.CodeValidation, shared.CodeOf(err))
}

func TestBankMovementSignedAmount(t *testing.T) {
	tests := []struct {
		movementType BankMovementType
		signed       string
	}{
		{BankMovementTypeDeposit, "500"},
		{BankMovementTypeTransferIn, "500"},
		{BankMovementTypeInterest, "500"},
		{BankMovementTypeExtraction, "-500"},
		{BankMovementTypeTransferOut, "-500"},
		{BankMovementTypeCheckDebit, "-500"},
		{BankMovementTypeFee, "-500"},
		{BankMovementTypeTax, "-500"},
	}

	account := newTestAccount(t)
	for _, tt := range tests {
		t.Run(tt.movementType.String(), func(t *testing.T) {
			m := newTestMovement(t, account, tt.movementType, 500)
			assert.Equal(t, tt.signed, m.SignedAmount().String())
		})
	}
}

func TestNewBankMovementValidation(t *testing.T) {
	account := newTestAccount(t)

	_, err := NewBankMovement(account.TenantID, uuid.Nil, BankMovementTypeDeposit,
		decimal.NewFromInt(100), time.Now(), "x", MovementSourceManual, nil)
	assert.Equal(t, shared.CodeValidation, shared.CodeOf(err))

	_, err = NewBankMovement(account.TenantID, account.ID, BankMovementType("WIRE"),
		decimal.NewFromInt(100), time.Now(), "x", MovementSourceManual, nil)
	assert.Equal(t, shared.CodeValidation, shared.CodeOf(err))

	_, err = NewBankMovement(account.TenantID, account.ID, BankMovementTypeDeposit,
		decimal.Zero, time.Now(), "x", MovementSourceManual, nil)
	assert.Equal(t, shared.CodeValidation, shared.CodeOf(err))

	_, err = NewBankMovement(account.TenantID, account.ID, BankMovementTypeDeposit,
		decimal.NewFromInt(100), time.Now(), "", MovementSourceManual, nil)
	assert.Equal(t, shared.CodeValidation, shared.CodeOf(err))
}

func TestBankAccountApplyAndRevert(t *testing.T) {
	account := newTestAccount(t)

	deposit := newTestMovement(t, account, BankMovementTypeDeposit, 500)
	fee := newTestMovement(t, account, BankMovementTypeFee, 120)

	require.NoError(t, account.ApplyMovement(deposit))
	require.NoError(t, account.ApplyMovement(fee))
	assert.Equal(t, "380", account.Balance.String())

	require.NoError(t, account.RevertMovement(deposit))
	assert.Equal(t, "-120", account.Balance.String())

	require.NoError(t, account.RevertMovement(fee))
	assert.True(t, account.Balance.IsZero())

	t.Run("foreign movement rejected", func(t *testing.T) {
		other := newTestAccount(t)
		m := newTestMovement(t, other, BankMovementTypeDeposit, 100)
		assert.Equal(t, shared.CodeValidation, shared.CodeOf(account.ApplyMovement(m)))
		assert.Equal(t, shared.CodeValidation, shared.CodeOf(account.RevertMovement(m)))
	})
}

func TestBankAccountBalanceEqualsMovementSum(t *testing.T) {
	account := newTestAccount(t)

	movements := []*BankMovement{
		newTestMovement(t, account, BankMovementTypeDeposit, 1000),
		newTestMovement(t, account, BankMovementTypeCheckDebit, 300),
		newTestMovement(t, account, BankMovementTypeInterest, 45),
		newTestMovement(t, account, BankMovementTypeTax, 12),
	}

	sum := decimal.Zero
	for _, m := range movements {
		require.NoError(t, account.ApplyMovement(m))
		sum = sum.Add(m.SignedAmount())
	}
	assert.True(t, account.Balance.Equal(sum))

	// deleting one movement keeps the invariant
	require.NoError(t, account.RevertMovement(movements[1]))
	sum = sum.Sub(movements[1].SignedAmount())
	assert.True(t, account.Balance.Equal(sum))
}

func TestBankAccountApplyDelta(t *testing.T) {
	account := newTestAccount(t)
	account.ApplyDelta(decimal.RequireFromString("1234.56"))
	account.ApplyDelta(decimal.RequireFromString("-234.56"))
	assert.Equal(t, "1000", account.Balance.String())
	assert.Equal(t, 3, account.Version)
}
