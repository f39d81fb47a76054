package persistence

import (
	"context"
	"errors"

	"github.com/comercia/backend/internal/domain/purchasing"
	"github.com/comercia/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

var invoiceOrderColumns = map[string]bool{
	"number":     true,
	"issue_date": true,
	"due_date":   true,
	"total":      true,
	"created_at": true,
}

// GormPurchaseInvoiceRepository implements PurchaseInvoiceRepository using GORM
type GormPurchaseInvoiceRepository struct {
	db *gorm.DB
}

// NewGormPurchaseInvoiceRepository creates a new GormPurchaseInvoiceRepository
func NewGormPurchaseInvoiceRepository(db *gorm.DB) *GormPurchaseInvoiceRepository {
	return &GormPurchaseInvoiceRepository{db: db}
}

// FindByIDForTenant finds an invoice by ID within a tenant, lines included
func (r *GormPurchaseInvoiceRepository) FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*purchasing.PurchaseInvoice, error) {
	var invoice purchasing.PurchaseInvoice
	if err := r.db.WithContext(ctx).
		Preload("Lines").
		Where("tenant_id = ? AND id = ?", tenantID, id).
		First(&invoice).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &invoice, nil
}

// FindBySupplier finds a supplier's invoices
func (r *GormPurchaseInvoiceRepository) FindBySupplier(ctx context.Context, tenantID, supplierID uuid.UUID, filter shared.Filter) ([]purchasing.PurchaseInvoice, error) {
	var invoices []purchasing.PurchaseInvoice
	query := r.db.WithContext(ctx).Model(&purchasing.PurchaseInvoice{}).
		Where("tenant_id = ? AND supplier_id = ?", tenantID, supplierID)
	query = r.applyFilters(query, filter)
	query = applyOrdering(query, filter, invoiceOrderColumns, "issue_date ASC, created_at ASC")
	query = applyPagination(query, filter)

	if err := query.Find(&invoices).Error; err != nil {
		return nil, err
	}
	return invoices, nil
}

// FindAllForTenant finds all invoices for a tenant
func (r *GormPurchaseInvoiceRepository) FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]purchasing.PurchaseInvoice, error) {
	var invoices []purchasing.PurchaseInvoice
	query := r.db.WithContext(ctx).Model(&purchasing.PurchaseInvoice{}).
		Where("tenant_id = ?", tenantID)
	query = r.applyFilters(query, filter)
	query = applyOrdering(query, filter, invoiceOrderColumns, "issue_date DESC")
	query = applyPagination(query, filter)

	if err := query.Find(&invoices).Error; err != nil {
		return nil, err
	}
	return invoices, nil
}

// FindCreditNotesByOriginalInvoice returns credit notes referencing the invoice
func (r *GormPurchaseInvoiceRepository) FindCreditNotesByOriginalInvoice(ctx context.Context, tenantID, invoiceID uuid.UUID) ([]purchasing.PurchaseInvoice, error) {
	var notes []purchasing.PurchaseInvoice
	if err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND original_invoice_id = ? AND voucher_type IN ?",
			tenantID, invoiceID, creditNoteVoucherTypes()).
		Order("issue_date ASC, created_at ASC").
		Find(&notes).Error; err != nil {
		return nil, err
	}
	return notes, nil
}

// SumConfirmedPayments sums the payment order items applied to the invoice
// through confirmed payment orders
func (r *GormPurchaseInvoiceRepository) SumConfirmedPayments(ctx context.Context, tenantID, invoiceID uuid.UUID) (decimal.Decimal, error) {
	var total decimal.NullDecimal
	err := r.db.WithContext(ctx).
		Model(&purchasing.PaymentOrderItem{}).
		Select("SUM(payment_order_items.amount)").
		Joins("JOIN payment_orders ON payment_orders.id = payment_order_items.payment_order_id").
		Where("payment_orders.tenant_id = ? AND payment_order_items.invoice_id = ? AND payment_orders.status = ?",
			tenantID, invoiceID, purchasing.PaymentOrderStatusConfirmed).
		Scan(&total).Error
	if err != nil {
		return decimal.Zero, err
	}
	if !total.Valid {
		return decimal.Zero, nil
	}
	return total.Decimal, nil
}

// CountBySupplier counts a supplier's invoices
func (r *GormPurchaseInvoiceRepository) CountBySupplier(ctx context.Context, tenantID, supplierID uuid.UUID) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&purchasing.PurchaseInvoice{}).
		Where("tenant_id = ? AND supplier_id = ?", tenantID, supplierID).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// Save creates or updates an invoice together with its lines
func (r *GormPurchaseInvoiceRepository) Save(ctx context.Context, invoice *purchasing.PurchaseInvoice) error {
	if err := r.db.WithContext(ctx).Save(invoice).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return shared.ErrAlreadyExists
		}
		return err
	}
	return nil
}

// SaveWithLock persists status fields guarded by the aggregate version.
// A stale version returns shared.ErrStaleVersion.
func (r *GormPurchaseInvoiceRepository) SaveWithLock(ctx context.Context, invoice *purchasing.PurchaseInvoice) error {
	result := r.db.WithContext(ctx).
		Model(invoice).
		Where("id = ? AND version = ?", invoice.ID, invoice.Version-1).
		Updates(map[string]interface{}{
			"status":        invoice.Status,
			"cancel_reason": invoice.CancelReason,
			"confirmed_at":  invoice.ConfirmedAt,
			"cancelled_at":  invoice.CancelledAt,
			"version":       invoice.Version,
			"updated_at":    invoice.UpdatedAt,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrStaleVersion
	}
	return nil
}

// Delete deletes an invoice within a tenant
func (r *GormPurchaseInvoiceRepository) Delete(ctx context.Context, tenantID, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Delete(&purchasing.PurchaseInvoice{}, "tenant_id = ? AND id = ?", tenantID, id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return shared.ErrNotFound
		}
		return tx.Delete(&purchasing.InvoiceLine{}, "invoice_id = ?", id).Error
	})
}

func (r *GormPurchaseInvoiceRepository) applyFilters(query *gorm.DB, filter shared.Filter) *gorm.DB {
	if status, ok := filter.Filters["status"].(string); ok && status != "" {
		query = query.Where("status = ?", status)
	}
	if voucherType, ok := filter.Filters["voucher_type"].(string); ok && voucherType != "" {
		query = query.Where("voucher_type = ?", voucherType)
	}
	return query
}

func creditNoteVoucherTypes() []purchasing.VoucherType {
	return []purchasing.VoucherType{
		purchasing.VoucherTypeCreditNoteA,
		purchasing.VoucherTypeCreditNoteB,
		purchasing.VoucherTypeCreditNoteC,
	}
}

// Ensure GormPurchaseInvoiceRepository implements PurchaseInvoiceRepository
var _ purchasing.PurchaseInvoiceRepository = (*GormPurchaseInvoiceRepository)(nil)
