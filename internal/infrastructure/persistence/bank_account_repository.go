package persistence

import (
	"context"
	"errors"

	"github.com/comercia/backend/internal/domain/shared"
	"github.com/comercia/backend/internal/domain/treasury"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

var bankAccountOrderColumns = map[string]bool{
	"number":     true,
	"name":       true,
	"created_at": true,
}

// GormBankAccountRepository implements BankAccountRepository using GORM
type GormBankAccountRepository struct {
	db *gorm.DB
}

// NewGormBankAccountRepository creates a new GormBankAccountRepository
func NewGormBankAccountRepository(db *gorm.DB) *GormBankAccountRepository {
	return &GormBankAccountRepository{db: db}
}

// FindByIDForTenant finds a bank account by ID within a tenant
func (r *GormBankAccountRepository) FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*treasury.BankAccount, error) {
	var account treasury.BankAccount
	if err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND id = ?", tenantID, id).
		First(&account).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &account, nil
}

// FindByNumber finds a bank account by its number within a tenant
func (r *GormBankAccountRepository) FindByNumber(ctx context.Context, tenantID uuid.UUID, number string) (*treasury.BankAccount, error) {
	var account treasury.BankAccount
	if err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND number = ?", tenantID, number).
		First(&account).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &account, nil
}

// FindAllForTenant finds all bank accounts for a tenant
func (r *GormBankAccountRepository) FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]treasury.BankAccount, error) {
	var accounts []treasury.BankAccount
	query := r.db.WithContext(ctx).Model(&treasury.BankAccount{}).Where("tenant_id = ?", tenantID)
	if active, ok := filter.Filters["active"].(bool); ok {
		query = query.Where("active = ?", active)
	}
	query = applyOrdering(query, filter, bankAccountOrderColumns, "name ASC")
	query = applyPagination(query, filter)

	if err := query.Find(&accounts).Error; err != nil {
		return nil, err
	}
	return accounts, nil
}

// Save creates or updates a bank account
func (r *GormBankAccountRepository) Save(ctx context.Context, account *treasury.BankAccount) error {
	if err := r.db.WithContext(ctx).Save(account).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return shared.ErrAlreadyExists
		}
		return err
	}
	return nil
}

// SaveWithLock persists the balance guarded by the aggregate version.
// A stale version returns shared.ErrStaleVersion.
func (r *GormBankAccountRepository) SaveWithLock(ctx context.Context, account *treasury.BankAccount) error {
	result := r.db.WithContext(ctx).
		Model(account).
		Where("id = ? AND version = ?", account.ID, account.Version-1).
		Updates(map[string]interface{}{
			"balance":    account.Balance,
			"active":     account.Active,
			"version":    account.Version,
			"updated_at": account.UpdatedAt,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrStaleVersion
	}
	return nil
}

// Ensure GormBankAccountRepository implements BankAccountRepository
var _ treasury.BankAccountRepository = (*GormBankAccountRepository)(nil)
