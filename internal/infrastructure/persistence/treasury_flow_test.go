package persistence

import (
	"context"
	"testing"
	"time"

	apptreasury "github.com/comercia/backend/internal/application/treasury"
	"github.com/comercia/backend/internal/domain/shared"
	"github.com/comercia/backend/internal/domain/treasury"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type treasuryFixture struct {
	db        *gorm.DB
	checks    *apptreasury.CheckService
	imports   *apptreasury.BankImportService
	sessions  *apptreasury.CashSessionService
	tenantID  uuid.UUID
	actorID   uuid.UUID
	accountID uuid.UUID
}

func newTreasuryFixture(t *testing.T) *treasuryFixture {
	t.Helper()

	db := newSQLiteDB(t)
	txScope := NewGormTreasuryTransactionScope(db)

	tenantID := uuid.New()
	account, err := treasury.NewBankAccount(tenantID, "0170099220000012345678", "Cuenta Corriente ARS", "BBVA")
	require.NoError(t, err)
	require.NoError(t, NewGormBankAccountRepository(db).Save(context.Background(), account))

	return &treasuryFixture{
		db:        db,
		checks:    apptreasury.NewCheckService(txScope),
		imports:   apptreasury.NewBankImportService(txScope),
		sessions:  apptreasury.NewCashSessionService(txScope),
		tenantID:  tenantID,
		actorID:   uuid.New(),
		accountID: account.ID,
	}
}

func (f *treasuryFixture) accountBalance(t *testing.T) decimal.Decimal {
	t.Helper()
	account, err := NewGormBankAccountRepository(f.db).FindByIDForTenant(context.Background(), f.tenantID, f.accountID)
	require.NoError(t, err)
	return account.Balance
}

func (f *treasuryFixture) movementSum(t *testing.T) decimal.Decimal {
	t.Helper()
	sum, err := NewGormBankMovementRepository(f.db).SumByAccount(context.Background(), f.tenantID, f.accountID)
	require.NoError(t, err)
	return sum
}

func (f *treasuryFixture) createCheck(t *testing.T, checkType string, amount decimal.Decimal) *apptreasury.CheckResponse {
	t.Helper()
	check, err := f.checks.Create(context.Background(), f.tenantID, f.actorID, apptreasury.CreateCheckRequest{
		Type:        checkType,
		CheckNumber: "00012345",
		Amount:      amount,
		IssueDate:   time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC),
		DueDate:     time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)
	return check
}

func TestCheckService_DepositClearKeepsBalanceConsistent(t *testing.T) {
	f := newTreasuryFixture(t)
	ctx := context.Background()

	check := f.createCheck(t, "THIRD_PARTY", decimal.NewFromInt(5000))

	deposited, err := f.checks.Deposit(ctx, f.tenantID, f.actorID, check.ID, f.accountID)
	require.NoError(t, err)
	assert.Equal(t, "DEPOSITED", deposited.Status)

	// The pending movement already counts in the balance.
	assert.True(t, f.accountBalance(t).Equal(decimal.NewFromInt(5000)))
	assert.True(t, f.movementSum(t).Equal(f.accountBalance(t)))

	cleared, err := f.checks.Clear(ctx, f.tenantID, f.actorID, check.ID)
	require.NoError(t, err)
	assert.Equal(t, "CLEARED", cleared.Status)

	// Clearing only drops the pending flag.
	assert.True(t, f.accountBalance(t).Equal(decimal.NewFromInt(5000)))
	movements, err := NewGormBankMovementRepository(f.db).FindByAccount(ctx, f.tenantID, f.accountID, shared.Filter{})
	require.NoError(t, err)
	require.Len(t, movements, 1)
	assert.False(t, movements[0].Pending)
}

func TestCheckService_RejectRevertsBalance(t *testing.T) {
	f := newTreasuryFixture(t)
	ctx := context.Background()

	check := f.createCheck(t, "THIRD_PARTY", decimal.NewFromInt(2500))
	_, err := f.checks.Deposit(ctx, f.tenantID, f.actorID, check.ID, f.accountID)
	require.NoError(t, err)
	require.True(t, f.accountBalance(t).Equal(decimal.NewFromInt(2500)))

	rejected, err := f.checks.Reject(ctx, f.tenantID, f.actorID, check.ID, "insufficient funds")
	require.NoError(t, err)
	assert.Equal(t, "REJECTED", rejected.Status)
	assert.Equal(t, "insufficient funds", rejected.RejectionReason)

	assert.True(t, f.accountBalance(t).IsZero())
	movements, err := NewGormBankMovementRepository(f.db).FindByAccount(ctx, f.tenantID, f.accountID, shared.Filter{})
	require.NoError(t, err)
	assert.Empty(t, movements)
}

func TestCheckService_OwnCheckDepositDebitsAccount(t *testing.T) {
	f := newTreasuryFixture(t)
	ctx := context.Background()

	check := f.createCheck(t, "OWN", decimal.NewFromInt(1200))
	_, err := f.checks.Deposit(ctx, f.tenantID, f.actorID, check.ID, f.accountID)
	require.NoError(t, err)

	assert.True(t, f.accountBalance(t).Equal(decimal.NewFromInt(-1200)))
	assert.True(t, f.movementSum(t).Equal(f.accountBalance(t)))
}

func TestBankImportService_ImportAppliesSignedSum(t *testing.T) {
	f := newTreasuryFixture(t)
	ctx := context.Background()

	result, err := f.imports.Import(ctx, f.tenantID, f.actorID, f.accountID, []apptreasury.ImportRow{
		{Date: "2026-03-02", Type: "DEPOSIT", Amount: decimal.NewFromInt(10000), Description: "Deposito en efectivo"},
		{Date: "03/03/2026", Type: "FEE", Amount: decimal.NewFromInt(350), Description: "Comision mantenimiento"},
		{Date: "2026-03-04", Type: "TRANSFER_OUT", Amount: decimal.NewFromInt(2000), Description: "Transferencia a proveedor"},
	})
	require.NoError(t, err)
	assert.True(t, result.Success)
	assert.Equal(t, 3, result.Imported)

	assert.True(t, f.accountBalance(t).Equal(decimal.NewFromInt(7650)))
	assert.True(t, f.movementSum(t).Equal(f.accountBalance(t)))
}

func TestBankImportService_BadRowRejectsWholeBatch(t *testing.T) {
	f := newTreasuryFixture(t)
	ctx := context.Background()

	result, err := f.imports.Import(ctx, f.tenantID, f.actorID, f.accountID, []apptreasury.ImportRow{
		{Date: "2026-03-02", Type: "DEPOSIT", Amount: decimal.NewFromInt(500), Description: "Deposito"},
		{Date: "not-a-date", Type: "UNKNOWN", Amount: decimal.NewFromInt(-1), Description: ""},
	})
	require.NoError(t, err)
	assert.False(t, result.Success)
	assert.Zero(t, result.Imported)
	assert.Len(t, result.Errors, 4)
	for _, rowErr := range result.Errors {
		assert.Equal(t, 2, rowErr.Row)
	}

	// Nothing from the batch may land, the first valid row included.
	assert.True(t, f.accountBalance(t).IsZero())
	movements, err := NewGormBankMovementRepository(f.db).FindByAccount(ctx, f.tenantID, f.accountID, shared.Filter{})
	require.NoError(t, err)
	assert.Empty(t, movements)
}

func TestCashSessionService_OpenAdjustClose(t *testing.T) {
	f := newTreasuryFixture(t)
	ctx := context.Background()
	registerID := uuid.New()

	session, err := f.sessions.Open(ctx, f.tenantID, f.actorID, registerID, decimal.NewFromInt(1000))
	require.NoError(t, err)
	assert.Equal(t, 1, session.SessionNumber)
	assert.Equal(t, "OPEN", session.Status)

	// A register can hold only one open session at a time.
	_, err = f.sessions.Open(ctx, f.tenantID, f.actorID, registerID, decimal.NewFromInt(500))
	require.Error(t, err)
	assert.Equal(t, shared.CodeConflict, shared.CodeOf(err))

	adjusted, err := f.sessions.AdjustExpected(ctx, f.tenantID, f.actorID, session.ID, decimal.NewFromInt(250))
	require.NoError(t, err)
	assert.True(t, adjusted.ExpectedBalance.Equal(decimal.NewFromInt(1250)))

	closed, err := f.sessions.Close(ctx, f.tenantID, f.actorID, session.ID, decimal.NewFromInt(1200), "faltante de caja")
	require.NoError(t, err)
	assert.Equal(t, "CLOSED", closed.Status)
	require.NotNil(t, closed.Difference)
	assert.True(t, closed.Difference.Equal(decimal.NewFromInt(-50)))

	// With the session closed the register can open a new one.
	next, err := f.sessions.Open(ctx, f.tenantID, f.actorID, registerID, decimal.NewFromInt(1200))
	require.NoError(t, err)
	assert.Equal(t, 2, next.SessionNumber)

	current, err := f.sessions.GetCurrent(ctx, f.tenantID, registerID)
	require.NoError(t, err)
	assert.Equal(t, next.ID, current.ID)
}
