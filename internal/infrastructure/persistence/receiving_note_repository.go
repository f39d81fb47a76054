package persistence

import (
	"context"
	"errors"

	"github.com/comercia/backend/internal/domain/purchasing"
	"github.com/comercia/backend/internal/domain/shared"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

var receivingNoteOrderColumns = map[string]bool{
	"number":     true,
	"created_at": true,
}

// GormReceivingNoteRepository implements ReceivingNoteRepository using GORM
type GormReceivingNoteRepository struct {
	db *gorm.DB
}

// NewGormReceivingNoteRepository creates a new GormReceivingNoteRepository
func NewGormReceivingNoteRepository(db *gorm.DB) *GormReceivingNoteRepository {
	return &GormReceivingNoteRepository{db: db}
}

// FindByIDForTenant finds a receiving note by ID within a tenant, lines included
func (r *GormReceivingNoteRepository) FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*purchasing.ReceivingNote, error) {
	var note purchasing.ReceivingNote
	if err := r.db.WithContext(ctx).
		Preload("Lines").
		Where("tenant_id = ? AND id = ?", tenantID, id).
		First(&note).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &note, nil
}

// FindAllForTenant finds all receiving notes for a tenant
func (r *GormReceivingNoteRepository) FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]purchasing.ReceivingNote, error) {
	var notes []purchasing.ReceivingNote
	query := r.db.WithContext(ctx).Model(&purchasing.ReceivingNote{}).
		Where("tenant_id = ?", tenantID)
	if status, ok := filter.Filters["status"].(string); ok && status != "" {
		query = query.Where("status = ?", status)
	}
	if supplierID, ok := filter.Filters["supplier_id"].(uuid.UUID); ok && supplierID != uuid.Nil {
		query = query.Where("supplier_id = ?", supplierID)
	}
	query = applyOrdering(query, filter, receivingNoteOrderColumns, "created_at DESC")
	query = applyPagination(query, filter)

	if err := query.Find(&notes).Error; err != nil {
		return nil, err
	}
	return notes, nil
}

// CountBySupplier counts a supplier's receiving notes
func (r *GormReceivingNoteRepository) CountBySupplier(ctx context.Context, tenantID, supplierID uuid.UUID) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&purchasing.ReceivingNote{}).
		Where("tenant_id = ? AND supplier_id = ?", tenantID, supplierID).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// Save creates or updates a receiving note together with its lines
func (r *GormReceivingNoteRepository) Save(ctx context.Context, note *purchasing.ReceivingNote) error {
	if err := r.db.WithContext(ctx).Save(note).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return shared.ErrAlreadyExists
		}
		return err
	}
	return nil
}

// Delete deletes a receiving note within a tenant
func (r *GormReceivingNoteRepository) Delete(ctx context.Context, tenantID, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Delete(&purchasing.ReceivingNote{}, "tenant_id = ? AND id = ?", tenantID, id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return shared.ErrNotFound
		}
		return tx.Delete(&purchasing.ReceivingNoteLine{}, "receiving_note_id = ?", id).Error
	})
}

// Ensure GormReceivingNoteRepository implements ReceivingNoteRepository
var _ purchasing.ReceivingNoteRepository = (*GormReceivingNoteRepository)(nil)
