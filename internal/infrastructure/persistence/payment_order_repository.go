package persistence

import (
	"context"
	"errors"

	"github.com/comercia/backend/internal/domain/purchasing"
	"github.com/comercia/backend/internal/domain/shared"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

var paymentOrderOrderColumns = map[string]bool{
	"number":       true,
	"payment_date": true,
	"created_at":   true,
}

// GormPaymentOrderRepository implements PaymentOrderRepository using GORM
type GormPaymentOrderRepository struct {
	db *gorm.DB
}

// NewGormPaymentOrderRepository creates a new GormPaymentOrderRepository
func NewGormPaymentOrderRepository(db *gorm.DB) *GormPaymentOrderRepository {
	return &GormPaymentOrderRepository{db: db}
}

// FindByIDForTenant finds a payment order by ID within a tenant, items included
func (r *GormPaymentOrderRepository) FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*purchasing.PaymentOrder, error) {
	var order purchasing.PaymentOrder
	if err := r.db.WithContext(ctx).
		Preload("Items").
		Where("tenant_id = ? AND id = ?", tenantID, id).
		First(&order).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &order, nil
}

// FindBySupplier finds a supplier's payment orders
func (r *GormPaymentOrderRepository) FindBySupplier(ctx context.Context, tenantID, supplierID uuid.UUID, filter shared.Filter) ([]purchasing.PaymentOrder, error) {
	var orders []purchasing.PaymentOrder
	query := r.db.WithContext(ctx).Model(&purchasing.PaymentOrder{}).
		Where("tenant_id = ? AND supplier_id = ?", tenantID, supplierID)
	query = applyOrdering(query, filter, paymentOrderOrderColumns, "payment_date DESC")
	query = applyPagination(query, filter)

	if err := query.Find(&orders).Error; err != nil {
		return nil, err
	}
	return orders, nil
}

// FindItemsByInvoices returns payment order items touching the given
// invoices joined with each owning order's status
func (r *GormPaymentOrderRepository) FindItemsByInvoices(ctx context.Context, tenantID uuid.UUID, invoiceIDs []uuid.UUID) ([]purchasing.PaymentItemView, error) {
	if len(invoiceIDs) == 0 {
		return []purchasing.PaymentItemView{}, nil
	}

	var views []purchasing.PaymentItemView
	err := r.db.WithContext(ctx).
		Model(&purchasing.PaymentOrderItem{}).
		Select("payment_order_items.payment_order_id, payment_order_items.invoice_id, payment_order_items.amount, payment_orders.status AS order_status").
		Joins("JOIN payment_orders ON payment_orders.id = payment_order_items.payment_order_id").
		Where("payment_orders.tenant_id = ? AND payment_order_items.invoice_id IN ?", tenantID, invoiceIDs).
		Scan(&views).Error
	if err != nil {
		return nil, err
	}
	return views, nil
}

// Save creates or updates a payment order together with its items
func (r *GormPaymentOrderRepository) Save(ctx context.Context, order *purchasing.PaymentOrder) error {
	if err := r.db.WithContext(ctx).Save(order).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return shared.ErrAlreadyExists
		}
		return err
	}
	return nil
}

// Delete deletes a payment order within a tenant
func (r *GormPaymentOrderRepository) Delete(ctx context.Context, tenantID, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Delete(&purchasing.PaymentOrder{}, "tenant_id = ? AND id = ?", tenantID, id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return shared.ErrNotFound
		}
		return tx.Delete(&purchasing.PaymentOrderItem{}, "payment_order_id = ?", id).Error
	})
}

// Ensure GormPaymentOrderRepository implements PaymentOrderRepository
var _ purchasing.PaymentOrderRepository = (*GormPaymentOrderRepository)(nil)
