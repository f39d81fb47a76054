package persistence

import (
	"context"
	"testing"
	"time"

	appfinance "github.com/comercia/backend/internal/application/finance"
	apppurchasing "github.com/comercia/backend/internal/application/purchasing"
	"github.com/comercia/backend/internal/domain/purchasing"
	"github.com/comercia/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newBalanceService(f *purchasingFixture) *appfinance.SupplierBalanceService {
	return appfinance.NewSupplierBalanceService(
		NewGormSupplierRepository(f.db),
		NewGormPurchaseInvoiceRepository(f.db),
		NewGormPaymentOrderRepository(f.db),
		NewGormCreditNoteApplicationRepository(f.db),
	)
}

func TestSupplierBalanceService_PaymentsAndFallbackCreditNote(t *testing.T) {
	f := newPurchasingFixture(t)
	balances := newBalanceService(f)
	ctx := context.Background()

	invoice := f.createInvoice(t, "0001-00000010", decimal.NewFromInt(1000), nil)
	_, err := f.invoices.Confirm(ctx, f.tenantID, f.actorID, invoice.ID)
	require.NoError(t, err)

	order, err := f.payments.Create(ctx, f.tenantID, f.actorID, apppurchasing.CreatePaymentOrderRequest{
		Number:      "OP-0010",
		SupplierID:  f.supplierID,
		PaymentDate: time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC),
		Items: []apppurchasing.CreatePaymentOrderItemRequest{
			{InvoiceID: invoice.ID, Amount: decimal.NewFromInt(600)},
		},
	})
	require.NoError(t, err)
	_, err = f.payments.Confirm(ctx, f.tenantID, f.actorID, order.ID)
	require.NoError(t, err)

	// A confirmed credit note referencing the invoice, with no explicit
	// application, settles against it by fallback.
	creditNote, err := f.invoices.Create(ctx, f.tenantID, f.actorID, apppurchasing.CreateInvoiceRequest{
		SupplierID:        f.supplierID,
		VoucherType:       string(purchasing.VoucherTypeCreditNoteA),
		Number:            "0001-00000110",
		IssueDate:         time.Date(2026, 3, 12, 0, 0, 0, 0, time.UTC),
		DueDate:           time.Date(2026, 3, 12, 0, 0, 0, 0, time.UTC),
		Total:             decimal.NewFromInt(150),
		OriginalInvoiceID: &invoice.ID,
	})
	require.NoError(t, err)
	_, err = f.invoices.Confirm(ctx, f.tenantID, f.actorID, creditNote.ID)
	require.NoError(t, err)

	position, err := balances.GetInvoiceBalance(ctx, f.tenantID, invoice.ID)
	require.NoError(t, err)
	assert.True(t, position.Paid.Equal(decimal.NewFromInt(750)))
	assert.True(t, position.Balance.Equal(decimal.NewFromInt(250)))
	assert.True(t, position.FallbackApplied.Equal(decimal.NewFromInt(150)))

	supplier, err := balances.GetSupplierBalance(ctx, f.tenantID, f.supplierID)
	require.NoError(t, err)
	assert.Equal(t, "Distribuidora Norte", supplier.SupplierName)
	assert.True(t, supplier.TotalInvoiced.Equal(decimal.NewFromInt(1000)))
	assert.True(t, supplier.TotalPaid.Equal(decimal.NewFromInt(750)))
	assert.True(t, supplier.TotalBalance.Equal(decimal.NewFromInt(250)))
}

func TestSupplierBalanceService_ExplicitApplicationDisablesFallback(t *testing.T) {
	f := newPurchasingFixture(t)
	balances := newBalanceService(f)
	ctx := context.Background()

	invoice := f.createInvoice(t, "0001-00000011", decimal.NewFromInt(1000), nil)
	_, err := f.invoices.Confirm(ctx, f.tenantID, f.actorID, invoice.ID)
	require.NoError(t, err)

	creditNote, err := f.invoices.Create(ctx, f.tenantID, f.actorID, apppurchasing.CreateInvoiceRequest{
		SupplierID:        f.supplierID,
		VoucherType:       string(purchasing.VoucherTypeCreditNoteB),
		Number:            "0001-00000111",
		IssueDate:         time.Date(2026, 3, 14, 0, 0, 0, 0, time.UTC),
		DueDate:           time.Date(2026, 3, 14, 0, 0, 0, 0, time.UTC),
		Total:             decimal.NewFromInt(400),
		OriginalInvoiceID: &invoice.ID,
	})
	require.NoError(t, err)
	_, err = f.invoices.Confirm(ctx, f.tenantID, f.actorID, creditNote.ID)
	require.NoError(t, err)

	// Applying part of the note explicitly removes it from the fallback
	// pool entirely; only the applied amount counts.
	err = f.invoices.ApplyCreditNote(ctx, f.tenantID, f.actorID, apppurchasing.ApplyCreditNoteRequest{
		CreditNoteID: creditNote.ID,
		InvoiceID:    invoice.ID,
		Amount:       decimal.NewFromInt(250),
	})
	require.NoError(t, err)

	position, err := balances.GetInvoiceBalance(ctx, f.tenantID, invoice.ID)
	require.NoError(t, err)
	assert.True(t, position.Paid.Equal(decimal.NewFromInt(250)))
	assert.True(t, position.Balance.Equal(decimal.NewFromInt(750)))
	assert.True(t, position.FallbackApplied.IsZero())
}

func TestSupplierBalanceService_DraftInvoiceHasNoBalance(t *testing.T) {
	f := newPurchasingFixture(t)
	balances := newBalanceService(f)
	ctx := context.Background()

	draft := f.createInvoice(t, "0001-00000012", decimal.NewFromInt(300), nil)

	_, err := balances.GetInvoiceBalance(ctx, f.tenantID, draft.ID)
	require.Error(t, err)
	assert.Equal(t, shared.CodeBusinessRule, shared.CodeOf(err))

	// Drafts are also invisible to the supplier totals.
	supplier, err := balances.GetSupplierBalance(ctx, f.tenantID, f.supplierID)
	require.NoError(t, err)
	assert.True(t, supplier.TotalInvoiced.IsZero())
	assert.True(t, supplier.TotalBalance.IsZero())
}
