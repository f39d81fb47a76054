package persistence

import (
	"context"

	"github.com/comercia/backend/internal/domain/purchasing"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// GormCreditNoteApplicationRepository implements CreditNoteApplicationRepository using GORM
type GormCreditNoteApplicationRepository struct {
	db *gorm.DB
}

// NewGormCreditNoteApplicationRepository creates a new GormCreditNoteApplicationRepository
func NewGormCreditNoteApplicationRepository(db *gorm.DB) *GormCreditNoteApplicationRepository {
	return &GormCreditNoteApplicationRepository{db: db}
}

// FindByInvoice returns all applications targeting the invoice
func (r *GormCreditNoteApplicationRepository) FindByInvoice(ctx context.Context, tenantID, invoiceID uuid.UUID) ([]purchasing.CreditNoteApplication, error) {
	var applications []purchasing.CreditNoteApplication
	if err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND invoice_id = ?", tenantID, invoiceID).
		Order("applied_at ASC").
		Find(&applications).Error; err != nil {
		return nil, err
	}
	return applications, nil
}

// FindByCreditNote returns all applications drawn from the credit note
func (r *GormCreditNoteApplicationRepository) FindByCreditNote(ctx context.Context, tenantID, creditNoteID uuid.UUID) ([]purchasing.CreditNoteApplication, error) {
	var applications []purchasing.CreditNoteApplication
	if err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND credit_note_id = ?", tenantID, creditNoteID).
		Order("applied_at ASC").
		Find(&applications).Error; err != nil {
		return nil, err
	}
	return applications, nil
}

// FindBySupplierInvoices returns applications targeting any of the invoices
func (r *GormCreditNoteApplicationRepository) FindBySupplierInvoices(ctx context.Context, tenantID uuid.UUID, invoiceIDs []uuid.UUID) ([]purchasing.CreditNoteApplication, error) {
	if len(invoiceIDs) == 0 {
		return []purchasing.CreditNoteApplication{}, nil
	}
	var applications []purchasing.CreditNoteApplication
	if err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND invoice_id IN ?", tenantID, invoiceIDs).
		Find(&applications).Error; err != nil {
		return nil, err
	}
	return applications, nil
}

// ExistsForCreditNote reports whether the credit note has any explicit application
func (r *GormCreditNoteApplicationRepository) ExistsForCreditNote(ctx context.Context, tenantID, creditNoteID uuid.UUID) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&purchasing.CreditNoteApplication{}).
		Where("tenant_id = ? AND credit_note_id = ?", tenantID, creditNoteID).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// SumByCreditNote sums the amounts already drawn from the credit note
func (r *GormCreditNoteApplicationRepository) SumByCreditNote(ctx context.Context, tenantID, creditNoteID uuid.UUID) (decimal.Decimal, error) {
	var total decimal.NullDecimal
	err := r.db.WithContext(ctx).
		Model(&purchasing.CreditNoteApplication{}).
		Select("SUM(amount)").
		Where("tenant_id = ? AND credit_note_id = ?", tenantID, creditNoteID).
		Scan(&total).Error
	if err != nil {
		return decimal.Zero, err
	}
	if !total.Valid {
		return decimal.Zero, nil
	}
	return total.Decimal, nil
}

// Save persists an application row
func (r *GormCreditNoteApplicationRepository) Save(ctx context.Context, application *purchasing.CreditNoteApplication) error {
	return r.db.WithContext(ctx).Save(application).Error
}

// Ensure GormCreditNoteApplicationRepository implements CreditNoteApplicationRepository
var _ purchasing.CreditNoteApplicationRepository = (*GormCreditNoteApplicationRepository)(nil)
