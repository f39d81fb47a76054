package persistence

import (
	"context"
	"errors"

	"github.com/comercia/backend/internal/domain/shared"
	"github.com/comercia/backend/internal/domain/treasury"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

var bankMovementOrderColumns = map[string]bool{
	"movement_date": true,
	"created_at":    true,
	"amount":        true,
}

// GormBankMovementRepository implements BankMovementRepository using GORM
type GormBankMovementRepository struct {
	db *gorm.DB
}

// NewGormBankMovementRepository creates a new GormBankMovementRepository
func NewGormBankMovementRepository(db *gorm.DB) *GormBankMovementRepository {
	return &GormBankMovementRepository{db: db}
}

// FindByIDForTenant finds a movement by ID within a tenant
func (r *GormBankMovementRepository) FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*treasury.BankMovement, error) {
	var movement treasury.BankMovement
	if err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND id = ?", tenantID, id).
		First(&movement).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &movement, nil
}

// FindByAccount returns the account's movements
func (r *GormBankMovementRepository) FindByAccount(ctx context.Context, tenantID, accountID uuid.UUID, filter shared.Filter) ([]treasury.BankMovement, error) {
	var movements []treasury.BankMovement
	query := r.db.WithContext(ctx).Model(&treasury.BankMovement{}).
		Where("tenant_id = ? AND bank_account_id = ?", tenantID, accountID)
	if movementType, ok := filter.Filters["type"].(string); ok && movementType != "" {
		query = query.Where("type = ?", movementType)
	}
	query = applyOrdering(query, filter, bankMovementOrderColumns, "movement_date DESC, created_at DESC")
	query = applyPagination(query, filter)

	if err := query.Find(&movements).Error; err != nil {
		return nil, err
	}
	return movements, nil
}

// SumByAccount returns the signed sum of the account's movements
func (r *GormBankMovementRepository) SumByAccount(ctx context.Context, tenantID, accountID uuid.UUID) (decimal.Decimal, error) {
	var rows []treasury.BankMovement
	if err := r.db.WithContext(ctx).
		Select("type", "amount").
		Where("tenant_id = ? AND bank_account_id = ?", tenantID, accountID).
		Find(&rows).Error; err != nil {
		return decimal.Zero, err
	}

	total := decimal.Zero
	for i := range rows {
		total = total.Add(rows[i].SignedAmount())
	}
	return total, nil
}

// Save persists movements
func (r *GormBankMovementRepository) Save(ctx context.Context, movements ...*treasury.BankMovement) error {
	if len(movements) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Save(movements).Error
}

// Delete removes a movement within a tenant
func (r *GormBankMovementRepository) Delete(ctx context.Context, tenantID, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&treasury.BankMovement{}, "tenant_id = ? AND id = ?", tenantID, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// Ensure GormBankMovementRepository implements BankMovementRepository
var _ treasury.BankMovementRepository = (*GormBankMovementRepository)(nil)
