package purchasing

import (
	"context"

	"github.com/comercia/backend/internal/domain/inventory"
	"github.com/comercia/backend/internal/domain/purchasing"
)

// TransactionScope provides transactional access to purchasing repositories.
// All repository operations inside Execute share one database transaction and
// commit or roll back atomically; a failed stock side effect therefore leaves
// the document untouched.
type TransactionScope interface {
	// Execute runs the given function within a database transaction.
	// If the function returns an error, the transaction is rolled back.
	Execute(ctx context.Context, fn func(repos TransactionalRepositories) error) error
}

// TransactionalRepositories provides access to all repositories a purchasing
// transition can touch. Receiving-note confirm and cancel cross into the
// stock ledger and purchase-order receipt tracking, so those repositories are
// exposed here alongside the document repositories.
type TransactionalRepositories interface {
	// InvoiceRepo returns the purchase invoice repository scoped to the current transaction
	InvoiceRepo() purchasing.PurchaseInvoiceRepository
	// PaymentOrderRepo returns the payment order repository scoped to the current transaction
	PaymentOrderRepo() purchasing.PaymentOrderRepository
	// ApplicationRepo returns the credit-note application repository scoped to the current transaction
	ApplicationRepo() purchasing.CreditNoteApplicationRepository
	// ReceivingNoteRepo returns the receiving note repository scoped to the current transaction
	ReceivingNoteRepo() purchasing.ReceivingNoteRepository
	// PurchaseOrderRepo returns the purchase order repository scoped to the current transaction
	PurchaseOrderRepo() purchasing.PurchaseOrderRepository
	// StockMovementRepo returns the stock ledger repository scoped to the current transaction
	StockMovementRepo() inventory.StockMovementRepository
	// WarehouseStockRepo returns the materialized stock repository scoped to the current transaction
	WarehouseStockRepo() inventory.WarehouseStockRepository
}

// NoOpTransactionScope runs the function against fixed repositories without
// a real transaction. Useful in tests.
type NoOpTransactionScope struct {
	invoiceRepo        purchasing.PurchaseInvoiceRepository
	paymentOrderRepo   purchasing.PaymentOrderRepository
	applicationRepo    purchasing.CreditNoteApplicationRepository
	receivingNoteRepo  purchasing.ReceivingNoteRepository
	purchaseOrderRepo  purchasing.PurchaseOrderRepository
	stockMovementRepo  inventory.StockMovementRepository
	warehouseStockRepo inventory.WarehouseStockRepository
}

// NewNoOpTransactionScope creates a NoOpTransactionScope with the given repositories
func NewNoOpTransactionScope(
	invoiceRepo purchasing.PurchaseInvoiceRepository,
	paymentOrderRepo purchasing.PaymentOrderRepository,
	applicationRepo purchasing.CreditNoteApplicationRepository,
	receivingNoteRepo purchasing.ReceivingNoteRepository,
	purchaseOrderRepo purchasing.PurchaseOrderRepository,
	stockMovementRepo inventory.StockMovementRepository,
	warehouseStockRepo inventory.WarehouseStockRepository,
) *NoOpTransactionScope {
	return &NoOpTransactionScope{
		invoiceRepo:        invoiceRepo,
		paymentOrderRepo:   paymentOrderRepo,
		applicationRepo:    applicationRepo,
		receivingNoteRepo:  receivingNoteRepo,
		purchaseOrderRepo:  purchaseOrderRepo,
		stockMovementRepo:  stockMovementRepo,
		warehouseStockRepo: warehouseStockRepo,
	}
}

// Execute runs the function without a real transaction
func (s *NoOpTransactionScope) Execute(_ context.Context, fn func(repos TransactionalRepositories) error) error {
	return fn(s)
}

// InvoiceRepo returns the purchase invoice repository
func (s *NoOpTransactionScope) InvoiceRepo() purchasing.PurchaseInvoiceRepository {
	return s.invoiceRepo
}

// PaymentOrderRepo returns the payment order repository
func (s *NoOpTransactionScope) PaymentOrderRepo() purchasing.PaymentOrderRepository {
	return s.paymentOrderRepo
}

// ApplicationRepo returns the credit-note application repository
func (s *NoOpTransactionScope) ApplicationRepo() purchasing.CreditNoteApplicationRepository {
	return s.applicationRepo
}

// ReceivingNoteRepo returns the receiving note repository
func (s *NoOpTransactionScope) ReceivingNoteRepo() purchasing.ReceivingNoteRepository {
	return s.receivingNoteRepo
}

// PurchaseOrderRepo returns the purchase order repository
func (s *NoOpTransactionScope) PurchaseOrderRepo() purchasing.PurchaseOrderRepository {
	return s.purchaseOrderRepo
}

// StockMovementRepo returns the stock ledger repository
func (s *NoOpTransactionScope) StockMovementRepo() inventory.StockMovementRepository {
	return s.stockMovementRepo
}

// WarehouseStockRepo returns the materialized stock repository
func (s *NoOpTransactionScope) WarehouseStockRepo() inventory.WarehouseStockRepository {
	return s.warehouseStockRepo
}

var _ TransactionScope = (*NoOpTransactionScope)(nil)
var _ TransactionalRepositories = (*NoOpTransactionScope)(nil)
