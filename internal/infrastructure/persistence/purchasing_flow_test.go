package persistence

import (
	"context"
	"testing"
	"time"

	apppurchasing "github.com/comercia/backend/internal/application/purchasing"
	"github.com/comercia/backend/internal/domain/inventory"
	"github.com/comercia/backend/internal/domain/partner"
	"github.com/comercia/backend/internal/domain/purchasing"
	"github.com/comercia/backend/internal/domain/shared"
	"github.com/comercia/backend/internal/domain/treasury"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// newSQLiteDB opens a private in-memory database with the full schema. The
// pool is pinned to one connection so every query sees the same database.
func newSQLiteDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		TranslateError: true,
		Logger:         gormlogger.Discard,
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(
		&partner.Supplier{},
		&purchasing.PurchaseInvoice{},
		&purchasing.InvoiceLine{},
		&purchasing.PaymentOrder{},
		&purchasing.PaymentOrderItem{},
		&purchasing.CreditNoteApplication{},
		&purchasing.ReceivingNote{},
		&purchasing.ReceivingNoteLine{},
		&purchasing.PurchaseOrder{},
		&purchasing.PurchaseOrderLine{},
		&inventory.StockMovement{},
		&inventory.WarehouseStock{},
		&treasury.BankAccount{},
		&treasury.BankMovement{},
		&treasury.Check{},
		&treasury.CashSession{},
	))
	return db
}

type purchasingFixture struct {
	db         *gorm.DB
	invoices   *apppurchasing.InvoiceService
	payments   *apppurchasing.PaymentOrderService
	tenantID   uuid.UUID
	actorID    uuid.UUID
	supplierID uuid.UUID
}

func newPurchasingFixture(t *testing.T) *purchasingFixture {
	t.Helper()

	db := newSQLiteDB(t)
	txScope := NewGormPurchasingTransactionScope(db)

	tenantID := uuid.New()
	supplier, err := partner.NewSupplier(tenantID, "PROV001", "Distribuidora Norte", "30-11111111-9", 30)
	require.NoError(t, err)
	require.NoError(t, NewGormSupplierRepository(db).Save(context.Background(), supplier))

	return &purchasingFixture{
		db:         db,
		invoices:   apppurchasing.NewInvoiceService(txScope),
		payments:   apppurchasing.NewPaymentOrderService(txScope),
		tenantID:   tenantID,
		actorID:    uuid.New(),
		supplierID: supplier.ID,
	}
}

func (f *purchasingFixture) createInvoice(t *testing.T, number string, total decimal.Decimal, lines []apppurchasing.CreateInvoiceLineRequest) *apppurchasing.InvoiceResponse {
	t.Helper()
	resp, err := f.invoices.Create(context.Background(), f.tenantID, f.actorID, apppurchasing.CreateInvoiceRequest{
		SupplierID:  f.supplierID,
		VoucherType: string(purchasing.VoucherTypeInvoiceA),
		Number:      number,
		IssueDate:   time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC),
		DueDate:     time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC),
		Total:       total,
		Lines:       lines,
	})
	require.NoError(t, err)
	return resp
}

func TestInvoiceService_ConfirmMovesStock(t *testing.T) {
	f := newPurchasingFixture(t)
	ctx := context.Background()

	warehouseID := uuid.New()
	productID := uuid.New()
	created := f.createInvoice(t, "0001-00000001", decimal.NewFromInt(1210), []apppurchasing.CreateInvoiceLineRequest{
		{WarehouseID: warehouseID, ProductID: productID, Quantity: decimal.NewFromInt(10), UnitCost: decimal.NewFromInt(100)},
	})
	assert.Equal(t, "DRAFT", created.Status)

	confirmed, err := f.invoices.Confirm(ctx, f.tenantID, f.actorID, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "CONFIRMED", confirmed.Status)

	movements, err := NewGormStockMovementRepository(f.db).FindBySource(ctx, f.tenantID, inventory.StockSourcePurchaseInvoice, created.ID)
	require.NoError(t, err)
	require.Len(t, movements, 1)
	assert.True(t, movements[0].Quantity.Equal(decimal.NewFromInt(10)))

	stock, err := NewGormWarehouseStockRepository(f.db).FindOrCreate(ctx, f.tenantID, warehouseID, productID)
	require.NoError(t, err)
	assert.True(t, stock.Quantity.Equal(decimal.NewFromInt(10)))

	// A second confirm must not move stock again.
	_, err = f.invoices.Confirm(ctx, f.tenantID, f.actorID, created.ID)
	require.Error(t, err)
	assert.Equal(t, shared.CodeInvalidStateTransition, shared.CodeOf(err))

	movements, err = NewGormStockMovementRepository(f.db).FindBySource(ctx, f.tenantID, inventory.StockSourcePurchaseInvoice, created.ID)
	require.NoError(t, err)
	assert.Len(t, movements, 1)
}

func TestInvoiceService_CancelReversesStock(t *testing.T) {
	f := newPurchasingFixture(t)
	ctx := context.Background()

	warehouseID := uuid.New()
	productID := uuid.New()
	created := f.createInvoice(t, "0001-00000002", decimal.NewFromInt(500), []apppurchasing.CreateInvoiceLineRequest{
		{WarehouseID: warehouseID, ProductID: productID, Quantity: decimal.NewFromInt(4), UnitCost: decimal.NewFromInt(125)},
	})
	_, err := f.invoices.Confirm(ctx, f.tenantID, f.actorID, created.ID)
	require.NoError(t, err)

	cancelled, err := f.invoices.Cancel(ctx, f.tenantID, f.actorID, created.ID, "wrong supplier")
	require.NoError(t, err)
	assert.Equal(t, "CANCELLED", cancelled.Status)

	stock, err := NewGormWarehouseStockRepository(f.db).FindOrCreate(ctx, f.tenantID, warehouseID, productID)
	require.NoError(t, err)
	assert.True(t, stock.Quantity.IsZero(), "reversal must bring stock back to zero, got %s", stock.Quantity)

	movements, err := NewGormStockMovementRepository(f.db).FindBySource(ctx, f.tenantID, inventory.StockSourcePurchaseInvoice, created.ID)
	require.NoError(t, err)
	require.Len(t, movements, 2)
}

func TestInvoiceService_CancelRejectedAfterPayment(t *testing.T) {
	f := newPurchasingFixture(t)
	ctx := context.Background()

	invoice := f.createInvoice(t, "0001-00000003", decimal.NewFromInt(1000), nil)
	_, err := f.invoices.Confirm(ctx, f.tenantID, f.actorID, invoice.ID)
	require.NoError(t, err)

	order, err := f.payments.Create(ctx, f.tenantID, f.actorID, apppurchasing.CreatePaymentOrderRequest{
		Number:      "OP-0001",
		SupplierID:  f.supplierID,
		PaymentDate: time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC),
		Items: []apppurchasing.CreatePaymentOrderItemRequest{
			{InvoiceID: invoice.ID, Amount: decimal.NewFromInt(400)},
		},
	})
	require.NoError(t, err)
	_, err = f.payments.Confirm(ctx, f.tenantID, f.actorID, order.ID)
	require.NoError(t, err)

	_, err = f.invoices.Cancel(ctx, f.tenantID, f.actorID, invoice.ID, "typo in total")
	require.Error(t, err)
	assert.Equal(t, shared.CodeBusinessRule, shared.CodeOf(err))
}

func TestPaymentOrderService_ConfirmRefreshesInvoiceStatus(t *testing.T) {
	f := newPurchasingFixture(t)
	ctx := context.Background()

	invoice := f.createInvoice(t, "0001-00000004", decimal.NewFromInt(1000), nil)
	_, err := f.invoices.Confirm(ctx, f.tenantID, f.actorID, invoice.ID)
	require.NoError(t, err)

	partial, err := f.payments.Create(ctx, f.tenantID, f.actorID, apppurchasing.CreatePaymentOrderRequest{
		Number:      "OP-0002",
		SupplierID:  f.supplierID,
		PaymentDate: time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC),
		Items: []apppurchasing.CreatePaymentOrderItemRequest{
			{InvoiceID: invoice.ID, Amount: decimal.NewFromInt(300)},
		},
	})
	require.NoError(t, err)
	_, err = f.payments.Confirm(ctx, f.tenantID, f.actorID, partial.ID)
	require.NoError(t, err)

	after, err := f.invoices.GetByID(ctx, f.tenantID, invoice.ID)
	require.NoError(t, err)
	assert.Equal(t, "PARTIAL_PAID", after.Status)

	rest, err := f.payments.Create(ctx, f.tenantID, f.actorID, apppurchasing.CreatePaymentOrderRequest{
		Number:      "OP-0003",
		SupplierID:  f.supplierID,
		PaymentDate: time.Date(2026, 3, 20, 0, 0, 0, 0, time.UTC),
		Items: []apppurchasing.CreatePaymentOrderItemRequest{
			{InvoiceID: invoice.ID, Amount: decimal.NewFromInt(700)},
		},
	})
	require.NoError(t, err)
	_, err = f.payments.Confirm(ctx, f.tenantID, f.actorID, rest.ID)
	require.NoError(t, err)

	after, err = f.invoices.GetByID(ctx, f.tenantID, invoice.ID)
	require.NoError(t, err)
	assert.Equal(t, "PAID", after.Status)

	paid, err := NewGormPurchaseInvoiceRepository(f.db).SumConfirmedPayments(ctx, f.tenantID, invoice.ID)
	require.NoError(t, err)
	assert.True(t, paid.Equal(decimal.NewFromInt(1000)))
}

func TestPaymentOrderService_CreateRejectsDraftInvoice(t *testing.T) {
	f := newPurchasingFixture(t)
	ctx := context.Background()

	draft := f.createInvoice(t, "0001-00000005", decimal.NewFromInt(250), nil)

	_, err := f.payments.Create(ctx, f.tenantID, f.actorID, apppurchasing.CreatePaymentOrderRequest{
		Number:      "OP-0004",
		SupplierID:  f.supplierID,
		PaymentDate: time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC),
		Items: []apppurchasing.CreatePaymentOrderItemRequest{
			{InvoiceID: draft.ID, Amount: decimal.NewFromInt(100)},
		},
	})
	require.Error(t, err)
	assert.Equal(t, shared.CodeBusinessRule, shared.CodeOf(err))

	// The rolled-back transaction must not leave a draft order behind.
	var count int64
	require.NoError(t, f.db.Model(&purchasing.PaymentOrder{}).Where("tenant_id = ?", f.tenantID).Count(&count).Error)
	assert.Zero(t, count)
}

func TestInvoiceService_ApplyCreditNote(t *testing.T) {
	f := newPurchasingFixture(t)
	ctx := context.Background()

	invoice := f.createInvoice(t, "0001-00000006", decimal.NewFromInt(1000), nil)
	_, err := f.invoices.Confirm(ctx, f.tenantID, f.actorID, invoice.ID)
	require.NoError(t, err)

	creditNote, err := f.invoices.Create(ctx, f.tenantID, f.actorID, apppurchasing.CreateInvoiceRequest{
		SupplierID:        f.supplierID,
		VoucherType:       string(purchasing.VoucherTypeCreditNoteA),
		Number:            "0001-00000100",
		IssueDate:         time.Date(2026, 3, 5, 0, 0, 0, 0, time.UTC),
		DueDate:           time.Date(2026, 3, 5, 0, 0, 0, 0, time.UTC),
		Total:             decimal.NewFromInt(300),
		OriginalInvoiceID: &invoice.ID,
	})
	require.NoError(t, err)
	_, err = f.invoices.Confirm(ctx, f.tenantID, f.actorID, creditNote.ID)
	require.NoError(t, err)

	err = f.invoices.ApplyCreditNote(ctx, f.tenantID, f.actorID, apppurchasing.ApplyCreditNoteRequest{
		CreditNoteID: creditNote.ID,
		InvoiceID:    invoice.ID,
		Amount:       decimal.NewFromInt(200),
	})
	require.NoError(t, err)

	applied, err := NewGormCreditNoteApplicationRepository(f.db).SumByCreditNote(ctx, f.tenantID, creditNote.ID)
	require.NoError(t, err)
	assert.True(t, applied.Equal(decimal.NewFromInt(200)))

	// Remaining credit is 100; applying more must fail and persist nothing.
	err = f.invoices.ApplyCreditNote(ctx, f.tenantID, f.actorID, apppurchasing.ApplyCreditNoteRequest{
		CreditNoteID: creditNote.ID,
		InvoiceID:    invoice.ID,
		Amount:       decimal.NewFromInt(150),
	})
	require.Error(t, err)
	assert.Equal(t, shared.CodeBusinessRule, shared.CodeOf(err))

	applied, err = NewGormCreditNoteApplicationRepository(f.db).SumByCreditNote(ctx, f.tenantID, creditNote.ID)
	require.NoError(t, err)
	assert.True(t, applied.Equal(decimal.NewFromInt(200)))
}

func TestReceivingNoteService_ConfirmTracksOrderReceipts(t *testing.T) {
	f := newPurchasingFixture(t)
	notes := apppurchasing.NewReceivingNoteService(NewGormPurchasingTransactionScope(f.db))
	ctx := context.Background()

	productID := uuid.New()
	warehouseID := uuid.New()
	order, err := purchasing.NewPurchaseOrder(f.tenantID, "OC-0001", f.supplierID)
	require.NoError(t, err)
	require.NoError(t, order.AddLine(productID, decimal.NewFromInt(20), decimal.NewFromInt(50)))
	require.NoError(t, order.Confirm())
	require.NoError(t, NewGormPurchaseOrderRepository(f.db).Save(ctx, order))
	orderLineID := order.Lines[0].ID

	note, err := notes.Create(ctx, f.tenantID, f.actorID, apppurchasing.CreateReceivingNoteRequest{
		Number:          "RM-0001",
		SupplierID:      f.supplierID,
		WarehouseID:     warehouseID,
		PurchaseOrderID: &order.ID,
		Lines: []apppurchasing.CreateReceivingNoteLineRequest{
			{ProductID: productID, Quantity: decimal.NewFromInt(8), PurchaseOrderLineID: &orderLineID},
		},
	})
	require.NoError(t, err)

	confirmed, err := notes.Confirm(ctx, f.tenantID, f.actorID, note.ID)
	require.NoError(t, err)
	assert.Equal(t, "CONFIRMED", confirmed.Status)

	line, err := NewGormPurchaseOrderRepository(f.db).FindLineByID(ctx, f.tenantID, orderLineID)
	require.NoError(t, err)
	assert.True(t, line.ReceivedQuantity.Equal(decimal.NewFromInt(8)))

	stock, err := NewGormWarehouseStockRepository(f.db).FindOrCreate(ctx, f.tenantID, warehouseID, productID)
	require.NoError(t, err)
	assert.True(t, stock.Quantity.Equal(decimal.NewFromInt(8)))

	// Cancel returns both the stock and the order receipt to their prior state.
	cancelled, err := notes.Cancel(ctx, f.tenantID, f.actorID, note.ID, "received against wrong order")
	require.NoError(t, err)
	assert.Equal(t, "CANCELLED", cancelled.Status)

	line, err = NewGormPurchaseOrderRepository(f.db).FindLineByID(ctx, f.tenantID, orderLineID)
	require.NoError(t, err)
	assert.True(t, line.ReceivedQuantity.IsZero())

	stock, err = NewGormWarehouseStockRepository(f.db).FindOrCreate(ctx, f.tenantID, warehouseID, productID)
	require.NoError(t, err)
	assert.True(t, stock.Quantity.IsZero())
}
