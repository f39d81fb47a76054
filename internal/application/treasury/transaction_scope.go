package treasury

import (
	"context"

	"github.com/comercia/backend/internal/domain/treasury"
)

// TransactionScope provides transactional access to treasury repositories.
// Check transitions and bulk imports write the document, the movement rows
// and the account balance in one transaction; any failure rolls everything
// back.
type TransactionScope interface {
	// Execute runs the given function within a database transaction.
	// If the function returns an error, the transaction is rolled back.
	Execute(ctx context.Context, fn func(repos TransactionalRepositories) error) error
}

// TransactionalRepositories provides access to all treasury repositories
// within a transaction.
type TransactionalRepositories interface {
	// AccountRepo returns the bank account repository scoped to the current transaction
	AccountRepo() treasury.BankAccountRepository
	// MovementRepo returns the bank movement repository scoped to the current transaction
	MovementRepo() treasury.BankMovementRepository
	// CheckRepo returns the check repository scoped to the current transaction
	CheckRepo() treasury.CheckRepository
	// SessionRepo returns the cash session repository scoped to the current transaction
	SessionRepo() treasury.CashSessionRepository
}

// NoOpTransactionScope runs the function against fixed repositories without
// a real transaction. Useful in tests.
type NoOpTransactionScope struct {
	accountRepo  treasury.BankAccountRepository
	movementRepo treasury.BankMovementRepository
	checkRepo    treasury.CheckRepository
	sessionRepo  treasury.CashSessionRepository
}

// NewNoOpTransactionScope creates a NoOpTransactionScope with the given repositories
func NewNoOpTransactionScope(
	accountRepo treasury.BankAccountRepository,
	movementRepo treasury.BankMovementRepository,
	checkRepo treasury.CheckRepository,
	sessionRepo treasury.CashSessionRepository,
) *NoOpTransactionScope {
	return &NoOpTransactionScope{
		accountRepo:  accountRepo,
		movementRepo: movementRepo,
		checkRepo:    checkRepo,
		sessionRepo:  sessionRepo,
	}
}

// Execute runs the function without a real transaction
func (s *NoOpTransactionScope) Execute(_ context.Context, fn func(repos TransactionalRepositories) error) error {
	return fn(s)
}

// AccountRepo returns the bank account repository
func (s *NoOpTransactionScope) AccountRepo() treasury.BankAccountRepository {
	return s.accountRepo
}

// MovementRepo returns the bank movement repository
func (s *NoOpTransactionScope) MovementRepo() treasury.BankMovementRepository {
	return s.movementRepo
}

// CheckRepo returns the check repository
func (s *NoOpTransactionScope) CheckRepo() treasury.CheckRepository {
	return s.checkRepo
}

// SessionRepo returns the cash session repository
func (s *NoOpTransactionScope) SessionRepo() treasury.CashSessionRepository {
	return s.sessionRepo
}

var _ TransactionScope = (*NoOpTransactionScope)(nil)
var _ TransactionalRepositories = (*NoOpTransactionScope)(nil)
