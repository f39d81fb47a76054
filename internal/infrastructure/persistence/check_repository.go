package persistence

import (
	"context"
	"errors"

	"github.com/comercia/backend/internal/domain/shared"
	"github.com/comercia/backend/internal/domain/treasury"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

var checkOrderColumns = map[string]bool{
	"check_number": true,
	"due_date":     true,
	"amount":       true,
	"created_at":   true,
}

// GormCheckRepository implements CheckRepository using GORM
type GormCheckRepository struct {
	db *gorm.DB
}

// NewGormCheckRepository creates a new GormCheckRepository
func NewGormCheckRepository(db *gorm.DB) *GormCheckRepository {
	return &GormCheckRepository{db: db}
}

// FindByIDForTenant finds a check by ID within a tenant
func (r *GormCheckRepository) FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*treasury.Check, error) {
	var check treasury.Check
	if err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND id = ?", tenantID, id).
		First(&check).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &check, nil
}

// FindAllForTenant finds all checks for a tenant
func (r *GormCheckRepository) FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]treasury.Check, error) {
	var checks []treasury.Check
	query := r.db.WithContext(ctx).Model(&treasury.Check{}).Where("tenant_id = ?", tenantID)
	if status, ok := filter.Filters["status"].(string); ok && status != "" {
		query = query.Where("status = ?", status)
	}
	if checkType, ok := filter.Filters["type"].(string); ok && checkType != "" {
		query = query.Where("type = ?", checkType)
	}
	query = applyOrdering(query, filter, checkOrderColumns, "due_date ASC")
	query = applyPagination(query, filter)

	if err := query.Find(&checks).Error; err != nil {
		return nil, err
	}
	return checks, nil
}

// Save creates or updates a check
func (r *GormCheckRepository) Save(ctx context.Context, check *treasury.Check) error {
	return r.db.WithContext(ctx).Save(check).Error
}

// Delete deletes a check within a tenant
func (r *GormCheckRepository) Delete(ctx context.Context, tenantID, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&treasury.Check{}, "tenant_id = ? AND id = ?", tenantID, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// Ensure GormCheckRepository implements CheckRepository
var _ treasury.CheckRepository = (*GormCheckRepository)(nil)
