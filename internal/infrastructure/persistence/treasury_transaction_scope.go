package persistence

import (
	"context"

	apptreasury "github.com/comercia/backend/internal/application/treasury"
	"github.com/comercia/backend/internal/domain/treasury"
	"gorm.io/gorm"
)

// GormTreasuryTransactionScope implements the treasury TransactionScope
// using GORM transactions. Check transitions and their bank movement and
// balance effects commit or roll back together.
type GormTreasuryTransactionScope struct {
	db *gorm.DB
}

// NewGormTreasuryTransactionScope creates a new GormTreasuryTransactionScope
func NewGormTreasuryTransactionScope(db *gorm.DB) *GormTreasuryTransactionScope {
	return &GormTreasuryTransactionScope{db: db}
}

// Execute runs the given function within a database transaction.
// If the function returns an error, the transaction is rolled back.
func (s *GormTreasuryTransactionScope) Execute(ctx context.Context, fn func(repos apptreasury.TransactionalRepositories) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		repos := &gormTreasuryRepositories{tx: tx}
		return fn(repos)
	})
}

// gormTreasuryRepositories provides transaction-scoped repository access
type gormTreasuryRepositories struct {
	tx *gorm.DB
}

func (r *gormTreasuryRepositories) AccountRepo() treasury.BankAccountRepository {
	return NewGormBankAccountRepository(r.tx)
}

func (r *gormTreasuryRepositories) MovementRepo() treasury.BankMovementRepository {
	return NewGormBankMovementRepository(r.tx)
}

func (r *gormTreasuryRepositories) CheckRepo() treasury.CheckRepository {
	return NewGormCheckRepository(r.tx)
}

func (r *gormTreasuryRepositories) SessionRepo() treasury.CashSessionRepository {
	return NewGormCashSessionRepository(r.tx)
}

// Ensure GormTreasuryTransactionScope implements TransactionScope
var _ apptreasury.TransactionScope = (*GormTreasuryTransactionScope)(nil)

// Ensure gormTreasuryRepositories implements TransactionalRepositories
var _ apptreasury.TransactionalRepositories = (*gormTreasuryRepositories)(nil)
