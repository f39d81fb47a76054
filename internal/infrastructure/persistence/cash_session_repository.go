package persistence

import (
	"context"
	"errors"

	"github.com/comercia/backend/internal/domain/shared"
	"github.com/comercia/backend/internal/domain/treasury"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormCashSessionRepository implements CashSessionRepository using GORM.
// The at-most-one-OPEN-session-per-register rule is enforced by a partial
// unique index on (tenant_id, cash_register_id) WHERE status = 'OPEN'.
type GormCashSessionRepository struct {
	db *gorm.DB
}

// NewGormCashSessionRepository creates a new GormCashSessionRepository
func NewGormCashSessionRepository(db *gorm.DB) *GormCashSessionRepository {
	return &GormCashSessionRepository{db: db}
}

// FindByIDForTenant finds a session by ID within a tenant
func (r *GormCashSessionRepository) FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*treasury.CashSession, error) {
	var session treasury.CashSession
	if err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND id = ?", tenantID, id).
		First(&session).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &session, nil
}

// FindOpenByRegister returns the register's OPEN session, or
// shared.ErrNotFound when the register is closed
func (r *GormCashSessionRepository) FindOpenByRegister(ctx context.Context, tenantID, cashRegisterID uuid.UUID) (*treasury.CashSession, error) {
	var session treasury.CashSession
	if err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND cash_register_id = ? AND status = ?",
			tenantID, cashRegisterID, treasury.CashSessionStatusOpen).
		First(&session).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &session, nil
}

// NextSessionNumber returns the next sequential session number for a register
func (r *GormCashSessionRepository) NextSessionNumber(ctx context.Context, tenantID, cashRegisterID uuid.UUID) (int, error) {
	var maxNumber *int
	err := r.db.WithContext(ctx).
		Model(&treasury.CashSession{}).
		Select("MAX(session_number)").
		Where("tenant_id = ? AND cash_register_id = ?", tenantID, cashRegisterID).
		Scan(&maxNumber).Error
	if err != nil {
		return 0, err
	}
	if maxNumber == nil {
		return 1, nil
	}
	return *maxNumber + 1, nil
}

// Save persists the session. Inserting a second OPEN session for the same
// register trips the partial unique index and returns shared.ErrAlreadyExists.
func (r *GormCashSessionRepository) Save(ctx context.Context, session *treasury.CashSession) error {
	if err := r.db.WithContext(ctx).Save(session).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return shared.ErrAlreadyExists
		}
		return err
	}
	return nil
}

// Ensure GormCashSessionRepository implements CashSessionRepository
var _ treasury.CashSessionRepository = (*GormCashSessionRepository)(nil)
