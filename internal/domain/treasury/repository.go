package treasury

import (
	"context"

	"github.com/comercia/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// BankAccountRepository persists bank accounts
type BankAccountRepository interface {
	FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*BankAccount, error)
	FindByNumber(ctx context.Context, tenantID uuid.UUID, number string) (*BankAccount, error)
	FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]BankAccount, error)
	Save(ctx context.Context, account *BankAccount) error
	// SaveWithLock persists the account guarded by its version; a stale
	// version returns shared.ErrStaleVersion.
	SaveWithLock(ctx context.Context, account *BankAccount) error
}

// BankMovementRepository persists bank movements
type BankMovementRepository interface {
	FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*BankMovement, error)
	FindByAccount(ctx context.Context, tenantID, accountID uuid.UUID, filter shared.Filter) ([]BankMovement, error)
	// SumByAccount returns the signed sum of all existing movements, the
	// figure the account balance must equal.
	SumByAccount(ctx context.Context, tenantID, accountID uuid.UUID) (decimal.Decimal, error)
	Save(ctx context.Context, movements ...*BankMovement) error
	Delete(ctx context.Context, tenantID, id uuid.UUID) error
}

// CheckRepository persists checks
type CheckRepository interface {
	FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*Check, error)
	FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]Check, error)
	Save(ctx context.Context, check *Check) error
	Delete(ctx context.Context, tenantID, id uuid.UUID) error
}

// CashSessionRepository persists cash register sessions
type CashSessionRepository interface {
	FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*CashSession, error)
	// FindOpenByRegister returns the register's OPEN session or
	// shared.ErrNotFound when the register is closed.
	FindOpenByRegister(ctx context.Context, tenantID, cashRegisterID uuid.UUID) (*CashSession, error)
	NextSessionNumber(ctx context.Context, tenantID, cashRegisterID uuid.UUID) (int, error)
	// Save persists the session; inserting a second OPEN session for the
	// same register trips the partial unique index and returns
	// shared.ErrAlreadyExists.
	Save(ctx context.Context, session *CashSession) error
}
