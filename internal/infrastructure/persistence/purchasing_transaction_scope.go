package persistence

import (
	"context"

	apppurchasing "github.com/comercia/backend/internal/application/purchasing"
	"github.com/comercia/backend/internal/domain/inventory"
	"github.com/comercia/backend/internal/domain/purchasing"
	"gorm.io/gorm"
)

// GormPurchasingTransactionScope implements the purchasing TransactionScope
// using GORM transactions. Document state changes and their stock ledger
// effects commit or roll back together.
type GormPurchasingTransactionScope struct {
	db *gorm.DB
}

// NewGormPurchasingTransactionScope creates a new GormPurchasingTransactionScope
func NewGormPurchasingTransactionScope(db *gorm.DB) *GormPurchasingTransactionScope {
	return &GormPurchasingTransactionScope{db: db}
}

// Execute runs the given function within a database transaction.
// If the function returns an error, the transaction is rolled back.
func (s *GormPurchasingTransactionScope) Execute(ctx context.Context, fn func(repos apppurchasing.TransactionalRepositories) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		repos := &gormPurchasingRepositories{tx: tx}
		return fn(repos)
	})
}

// gormPurchasingRepositories provides transaction-scoped repository access
type gormPurchasingRepositories struct {
	tx *gorm.DB
}

func (r *gormPurchasingRepositories) InvoiceRepo() purchasing.PurchaseInvoiceRepository {
	return NewGormPurchaseInvoiceRepository(r.tx)
}

func (r *gormPurchasingRepositories) PaymentOrderRepo() purchasing.PaymentOrderRepository {
	return NewGormPaymentOrderRepository(r.tx)
}

func (r *gormPurchasingRepositories) ApplicationRepo() purchasing.CreditNoteApplicationRepository {
	return NewGormCreditNoteApplicationRepository(r.tx)
}

func (r *gormPurchasingRepositories) ReceivingNoteRepo() purchasing.ReceivingNoteRepository {
	return NewGormReceivingNoteRepository(r.tx)
}

func (r *gormPurchasingRepositories) PurchaseOrderRepo() purchasing.PurchaseOrderRepository {
	return NewGormPurchaseOrderRepository(r.tx)
}

func (r *gormPurchasingRepositories) StockMovementRepo() inventory.StockMovementRepository {
	return NewGormStockMovementRepository(r.tx)
}

func (r *gormPurchasingRepositories) WarehouseStockRepo() inventory.WarehouseStockRepository {
	return NewGormWarehouseStockRepository(r.tx)
}

// Ensure GormPurchasingTransactionScope implements TransactionScope
var _ apppurchasing.TransactionScope = (*GormPurchasingTransactionScope)(nil)

// Ensure gormPurchasingRepositories implements TransactionalRepositories
var _ apppurchasing.TransactionalRepositories = (*gormPurchasingRepositories)(nil)
