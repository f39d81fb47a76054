package purchasing

import (
	"testing"
	"time"

	"github.com/comercia/backend/internal/domain/shared"
	"github.com/comercia/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestInvoice(t *testing.T, voucherType VoucherType, total string) *PurchaseInvoice {
	t.Helper()
	issue := time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)
	inv, err := NewPurchaseInvoice(
		uuid.New(),
		uuid.New(),
		voucherType,
		"A-0001-00001234",
		issue,
		issue.AddDate(0, 1, 0),
		valueobject.NewMoneyARS(decimal.RequireFromString(total)),
		nil,
	)
	require.NoError(t, err)
	return inv
}

func TestNewPurchaseInvoice(t *testing.T) {
	issue := time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)
	supplierID := uuid.New()
	original := uuid.New()

	tests := []struct {
		name        string
		supplierID  uuid.UUID
		voucherType VoucherType
		number      string
		dueDate     time.Time
		total       string
		originalID  *uuid.UUID
		wantErr     bool
	}{
		{
			name:        "valid invoice",
			supplierID:  supplierID,
			voucherType: VoucherTypeInvoiceA,
			number:      "A-0001-00001234",
			dueDate:     issue.AddDate(0, 1, 0),
			total:       "1000",
		},
		{
			name:        "credit note referencing original invoice",
			supplierID:  supplierID,
			voucherType: VoucherTypeCreditNoteA,
			number:      "A-0001-00000042",
			dueDate:     issue,
			total:       "400",
			originalID:  &original,
		},
		{
			name:        "empty supplier",
			supplierID:  uuid.Nil,
			voucherType: VoucherTypeInvoiceA,
			number:      "A-0001-00001234",
			dueDate:     issue,
			total:       "1000",
			wantErr:     true,
		},
		{
			name:        "invalid voucher type",
			supplierID:  supplierID,
			voucherType: VoucherType("RECEIPT_X"),
			number:      "A-0001-00001234",
			dueDate:     issue,
			total:       "1000",
			wantErr:     true,
		},
		{
			name:        "empty number",
			supplierID:  supplierID,
			voucherType: VoucherTypeInvoiceA,
			number:      "",
			dueDate:     issue,
			total:       "1000",
			wantErr:     true,
		},
		{
			name:        "zero total",
			supplierID:  supplierID,
			voucherType: VoucherTypeInvoiceA,
			number:      "A-0001-00001234",
			dueDate:     issue,
			total:       "0",
			wantErr:     true,
		},
		{
			name:        "due date before issue date",
			supplierID:  supplierID,
			voucherType: VoucherTypeInvoiceA,
			number:      "A-0001-00001234",
			dueDate:     issue.AddDate(0, 0, -1),
			total:       "1000",
			wantErr:     true,
		},
		{
			name:        "plain invoice cannot reference an original",
			supplierID:  supplierID,
			voucherType: VoucherTypeInvoiceA,
			number:      "A-0001-00001234",
			dueDate:     issue,
			total:       "1000",
			originalID:  &original,
			wantErr:     true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			inv, err := NewPurchaseInvoice(
				uuid.New(), tt.supplierID, tt.voucherType, tt.number,
				issue, tt.dueDate,
				valueobject.NewMoneyARS(decimal.RequireFromString(tt.total)),
				tt.originalID,
			)
			if tt.wantErr {
				assert.Error(t, err)
				assert.Equal(t, shared.CodeValidation, shared.CodeOf(err))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, InvoiceStatusDraft, inv.Status)
			assert.False(t, inv.Status.CountsTowardBalance())
		})
	}
}

func TestInvoiceStatusTransitions(t *testing.T) {
	tests := []struct {
		from    InvoiceStatus
		to      InvoiceStatus
		allowed bool
	}{
		{InvoiceStatusDraft, InvoiceStatusConfirmed, true},
		{InvoiceStatusDraft, InvoiceStatusCancelled, true},
		{InvoiceStatusDraft, InvoiceStatusPaid, false},
		{InvoiceStatusConfirmed, InvoiceStatusPartialPaid, true},
		{InvoiceStatusConfirmed, InvoiceStatusPaid, true},
		{InvoiceStatusConfirmed, InvoiceStatusCancelled, true},
		{InvoiceStatusConfirmed, InvoiceStatusDraft, false},
		{InvoiceStatusPartialPaid, InvoiceStatusPaid, true},
		{InvoiceStatusPartialPaid, InvoiceStatusCancelled, false},
		{InvoiceStatusPaid, InvoiceStatusCancelled, false},
		{InvoiceStatusCancelled, InvoiceStatusDraft, false},
	}

	for _, tt := range tests {
		t.Run(tt.from.String()+"_to_"+tt.to.String(), func(t *testing.T) {
			assert.Equal(t, tt.allowed, tt.from.CanTransitionTo(tt.to))
		})
	}

	assert.True(t, InvoiceStatusPaid.IsTerminal())
	assert.True(t, InvoiceStatusCancelled.IsTerminal())
	assert.False(t, InvoiceStatusPartialPaid.IsTerminal())
}

func TestPurchaseInvoiceAddLine(t *testing.T) {
	inv := newTestInvoice(t, VoucherTypeInvoiceA, "1000")
	assert.False(t, inv.HasStockEffect())

	err := inv.AddLine(uuid.New(), uuid.New(),
		decimal.NewFromInt(5), valueobject.NewMoneyARSFromFloat(200))
	require.NoError(t, err)
	assert.True(t, inv.HasStockEffect())
	assert.Equal(t, "1000", inv.Lines[0].Amount().String())

	t.Run("rejects non-positive quantity", func(t *testing.T) {
		err := inv.AddLine(uuid.New(), uuid.New(), decimal.Zero, valueobject.NewMoneyARSFromFloat(200))
		assert.Equal(t, shared.CodeValidation, shared.CodeOf(err))
	})

	t.Run("rejects lines after confirmation", func(t *testing.T) {
		require.NoError(t, inv.Confirm())
		err := inv.AddLine(uuid.New(), uuid.New(), decimal.NewFromInt(1), valueobject.NewMoneyARSFromFloat(200))
		assert.Equal(t, shared.CodeInvalidStateTransition, shared.CodeOf(err))
	})
}

func TestPurchaseInvoiceConfirm(t *testing.T) {
	inv := newTestInvoice(t, VoucherTypeInvoiceA, "1000")

	require.NoError(t, inv.Confirm())
	assert.Equal(t, InvoiceStatusConfirmed, inv.Status)
	assert.NotNil(t, inv.ConfirmedAt)
	assert.True(t, inv.Status.CountsTowardBalance())

	events := inv.GetDomainEvents()
	require.Len(t, events, 1)
	assert.Equal(t, EventTypeInvoiceConfirmed, events[0].EventType())

	t.Run("double confirm fails", func(t *testing.T) {
		err := inv.Confirm()
		assert.True(t, shared.IsInvalidTransition(err))
	})
}

func TestPurchaseInvoiceCancel(t *testing.T) {
	t.Run("cancels draft", func(t *testing.T) {
		inv := newTestInvoice(t, VoucherTypeInvoiceA, "1000")
		require.NoError(t, inv.Cancel("loaded twice", false))
		assert.Equal(t, InvoiceStatusCancelled, inv.Status)
		assert.False(t, inv.Status.CountsTowardBalance())
	})

	t.Run("cancels confirmed without payments", func(t *testing.T) {
		inv := newTestInvoice(t, VoucherTypeInvoiceA, "1000")
		require.NoError(t, inv.Confirm())
		require.NoError(t, inv.Cancel("supplier re-issued", false))
		assert.Equal(t, "supplier re-issued", inv.CancelReason)
	})

	t.Run("rejects cancel with payments applied", func(t *testing.T) {
		inv := newTestInvoice(t, VoucherTypeInvoiceA, "1000")
		require.NoError(t, inv.Confirm())
		err := inv.Cancel("mistake", true)
		assert.Equal(t, shared.CodeBusinessRule, shared.CodeOf(err))
		assert.Equal(t, InvoiceStatusConfirmed, inv.Status)
	})

	t.Run("requires reason", func(t *testing.T) {
		inv := newTestInvoice(t, VoucherTypeInvoiceA, "1000")
		err := inv.Cancel("", false)
		assert.Equal(t, shared.CodeValidation, shared.CodeOf(err))
	})
}

func TestPurchaseInvoiceRefreshPaymentStatus(t *testing.T) {
	confirmed := func(t *testing.T) *PurchaseInvoice {
		inv := newTestInvoice(t, VoucherTypeInvoiceA, "1000")
		require.NoError(t, inv.Confirm())
		inv.ClearDomainEvents()
		return inv
	}

	t.Run("partial payment", func(t *testing.T) {
		inv := confirmed(t)
		require.NoError(t, inv.RefreshPaymentStatus(decimal.NewFromInt(400)))
		assert.Equal(t, InvoiceStatusPartialPaid, inv.Status)
	})

	t.Run("full payment", func(t *testing.T) {
		inv := confirmed(t)
		require.NoError(t, inv.RefreshPaymentStatus(decimal.NewFromInt(1000)))
		assert.Equal(t, InvoiceStatusPaid, inv.Status)

		events := inv.GetDomainEvents()
		require.Len(t, events, 1)
		assert.Equal(t, EventTypeInvoicePaid, events[0].EventType())
	})

	t.Run("partial then full", func(t *testing.T) {
		inv := confirmed(t)
		require.NoError(t, inv.RefreshPaymentStatus(decimal.NewFromInt(400)))
		require.NoError(t, inv.RefreshPaymentStatus(decimal.NewFromInt(1000)))
		assert.Equal(t, InvoiceStatusPaid, inv.Status)
	})

	t.Run("zero paid is a no-op", func(t *testing.T) {
		inv := confirmed(t)
		require.NoError(t, inv.RefreshPaymentStatus(decimal.Zero))
		assert.Equal(t, InvoiceStatusConfirmed, inv.Status)
	})

	t.Run("unchanged status is a no-op", func(t *testing.T) {
		inv := confirmed(t)
		require.NoError(t, inv.RefreshPaymentStatus(decimal.NewFromInt(400)))
		version := inv.Version
		require.NoError(t, inv.RefreshPaymentStatus(decimal.NewFromInt(400)))
		assert.Equal(t, version, inv.Version)
	})

	t.Run("overpayment rejected", func(t *testing.T) {
		inv := confirmed(t)
		err := inv.RefreshPaymentStatus(decimal.NewFromInt(1001))
		assert.Equal(t, shared.CodeBusinessRule, shared.CodeOf(err))
	})

	t.Run("cancelled invoice cannot receive payments", func(t *testing.T) {
		inv := newTestInvoice(t, VoucherTypeInvoiceA, "1000")
		require.NoError(t, inv.Cancel("void", false))
		err := inv.RefreshPaymentStatus(decimal.NewFromInt(100))
		assert.True(t, shared.IsInvalidTransition(err))
	})
}

func TestVoucherType(t *testing.T) {
	assert.True(t, VoucherTypeCreditNoteB.IsCreditNote())
	assert.True(t, VoucherTypeCreditNoteB.IsNote())
	assert.True(t, VoucherTypeDebitNoteC.IsDebitNote())
	assert.False(t, VoucherTypeDebitNoteC.IsCreditNote())
	assert.False(t, VoucherTypeInvoiceA.IsNote())
	assert.False(t, VoucherType("INVOICE_X").IsValid())
}
