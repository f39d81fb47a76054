package finance

import (
	"testing"
	"time"

	"github.com/comercia/backend/internal/domain/purchasing"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func invoiceFact(number string, total string, issueDate time.Time) InvoiceFact {
	return InvoiceFact{
		ID:          uuid.New(),
		Number:      number,
		VoucherType: purchasing.VoucherTypeInvoiceA,
		Status:      purchasing.InvoiceStatusConfirmed,
		IssueDate:   issueDate,
		Total:       decimal.RequireFromString(total),
	}
}

func creditNoteFact(number string, total string, issueDate time.Time) InvoiceFact {
	f := invoiceFact(number, total, issueDate)
	f.VoucherType = purchasing.VoucherTypeCreditNoteA
	return f
}

func confirmedPayment(amount string) PaymentFact {
	return PaymentFact{
		PaymentOrderID: uuid.New(),
		Amount:         decimal.RequireFromString(amount),
		OrderStatus:    purchasing.PaymentOrderStatusConfirmed,
	}
}

var day = time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)

func TestSettleInvoiceFallbackCap(t *testing.T) {
	// INV-1 total=1000, confirmed payment 400, unlinked credit note 700:
	// cap = max(0, 1000-400-0) = 600, paid = 1000, balance = 0.
	facts := InvoiceFacts{
		Invoice:      invoiceFact("INV-1", "1000", day),
		PaymentItems: []PaymentFact{confirmedPayment("400")},
		FallbackCreditNotes: []CreditNoteFact{
			{ID: uuid.New(), Total: decimal.RequireFromString("700"), Status: purchasing.InvoiceStatusConfirmed},
		},
	}

	s := SettleInvoice(facts)
	assert.Equal(t, "600", s.FallbackApplied.String())
	assert.Equal(t, "1000", s.Paid.String())
	assert.True(t, s.Balance.IsZero())
}

func TestSettleInvoicePaymentsAndExplicitCredit(t *testing.T) {
	creditNoteID := uuid.New()
	facts := InvoiceFacts{
		Invoice: invoiceFact("INV-2", "1000", day),
		PaymentItems: []PaymentFact{
			confirmedPayment("300"),
			{PaymentOrderID: uuid.New(), Amount: decimal.RequireFromString("999"), OrderStatus: purchasing.PaymentOrderStatusDraft},
		},
		ExplicitApplications: []ApplicationFact{
			{CreditNoteID: creditNoteID, InvoiceID: uuid.New(), Amount: decimal.RequireFromString("250")},
		},
	}

	s := SettleInvoice(facts)
	assert.Equal(t, "550", s.Paid.String(), "draft payment orders must not count")
	assert.Equal(t, "450", s.Balance.String())
	assert.True(t, s.FallbackApplied.IsZero())
}

func TestSettleInvoiceFallbackExclusions(t *testing.T) {
	t.Run("explicitly applied notes are excluded", func(t *testing.T) {
		facts := InvoiceFacts{
			Invoice: invoiceFact("INV-3", "1000", day),
			FallbackCreditNotes: []CreditNoteFact{
				{ID: uuid.New(), Total: decimal.RequireFromString("400"), Status: purchasing.InvoiceStatusConfirmed, HasExplicitApplications: true},
			},
		}
		s := SettleInvoice(facts)
		assert.True(t, s.FallbackApplied.IsZero())
		assert.Equal(t, "1000", s.Balance.String())
	})

	t.Run("draft and cancelled notes are excluded", func(t *testing.T) {
		facts := InvoiceFacts{
			Invoice: invoiceFact("INV-4", "1000", day),
			FallbackCreditNotes: []CreditNoteFact{
				{ID: uuid.New(), Total: decimal.RequireFromString("400"), Status: purchasing.InvoiceStatusDraft},
				{ID: uuid.New(), Total: decimal.RequireFromString("300"), Status: purchasing.InvoiceStatusCancelled},
				{ID: uuid.New(), Total: decimal.RequireFromString("200"), Status: purchasing.InvoiceStatusConfirmed},
			},
		}
		s := SettleInvoice(facts)
		assert.Equal(t, "200", s.FallbackApplied.String())
	})
}

func TestSettleInvoiceCapInvariant(t *testing.T) {
	// paid never exceeds total regardless of how much credit references the
	// invoice.
	cases := []struct {
		total    string
		payment  string
		explicit string
		fallback []string
	}{
		{"1000", "0", "0", []string{"1500"}},
		{"1000", "900", "0", []string{"700", "700"}},
		{"1000", "400", "600", []string{"500"}},
		{"1000", "1000", "0", []string{"100"}},
		{"500", "200", "100", []string{"50", "400", "80"}},
	}

	for _, tc := range cases {
		facts := InvoiceFacts{
			Invoice:      invoiceFact("INV", tc.total, day),
			PaymentItems: []PaymentFact{confirmedPayment(tc.payment)},
		}
		if tc.explicit != "0" {
			facts.ExplicitApplications = []ApplicationFact{
				{CreditNoteID: uuid.New(), Amount: decimal.RequireFromString(tc.explicit)},
			}
		}
		for _, total := range tc.fallback {
			facts.FallbackCreditNotes = append(facts.FallbackCreditNotes, CreditNoteFact{
				ID: uuid.New(), Total: decimal.RequireFromString(total), Status: purchasing.InvoiceStatusConfirmed,
			})
		}

		s := SettleInvoice(facts)
		assert.True(t, s.Paid.LessThanOrEqual(facts.Invoice.Total),
			"paid %s exceeds total %s", s.Paid, facts.Invoice.Total)
		assert.False(t, s.Balance.IsNegative())
	}
}

func TestSettleCreditNoteClosure(t *testing.T) {
	t.Run("fully applied note has zero balance", func(t *testing.T) {
		facts := InvoiceFacts{
			Invoice: creditNoteFact("CN-1", "700", day),
			ApplicationsGiven: []ApplicationFact{
				{CreditNoteID: uuid.New(), InvoiceID: uuid.New(), Amount: decimal.RequireFromString("500")},
				{CreditNoteID: uuid.New(), InvoiceID: uuid.New(), Amount: decimal.RequireFromString("200")},
			},
		}
		s := SettleInvoice(facts)
		assert.Equal(t, "700", s.Paid.String())
		assert.True(t, s.Balance.IsZero())
	})

	t.Run("unapplied note carries negative balance", func(t *testing.T) {
		facts := InvoiceFacts{Invoice: creditNoteFact("CN-2", "700", day)}
		s := SettleInvoice(facts)
		assert.True(t, s.Paid.IsZero())
		assert.Equal(t, "-700", s.Balance.String())
	})

	t.Run("partially applied note", func(t *testing.T) {
		facts := InvoiceFacts{
			Invoice: creditNoteFact("CN-3", "700", day),
			ApplicationsGiven: []ApplicationFact{
				{CreditNoteID: uuid.New(), InvoiceID: uuid.New(), Amount: decimal.RequireFromString("300")},
			},
		}
		s := SettleInvoice(facts)
		assert.Equal(t, "-400", s.Balance.String())
	})
}

func TestSettleSupplierSharedConsumption(t *testing.T) {
	// One credit note referenced by two invoices covers only the older one.
	sharedCN := CreditNoteFact{
		ID:     uuid.New(),
		Total:  decimal.RequireFromString("300"),
		Status: purchasing.InvoiceStatusConfirmed,
	}

	older := InvoiceFacts{
		Invoice:             invoiceFact("INV-10", "300", day),
		FallbackCreditNotes: []CreditNoteFact{sharedCN},
	}
	newer := InvoiceFacts{
		Invoice:             invoiceFact("INV-11", "500", day.AddDate(0, 0, 5)),
		FallbackCreditNotes: []CreditNoteFact{sharedCN},
	}

	// passed newest-first to prove ordering is by issue date, not input order
	result := SettleSupplier([]InvoiceFacts{newer, older})
	require.Len(t, result.Invoices, 2)

	assert.Equal(t, "INV-10", result.Invoices[0].Invoice.Number)
	assert.Equal(t, "300", result.Invoices[0].FallbackApplied.String())
	assert.True(t, result.Invoices[0].Balance.IsZero())

	assert.Equal(t, "INV-11", result.Invoices[1].Invoice.Number)
	assert.True(t, result.Invoices[1].FallbackApplied.IsZero())
	assert.Equal(t, "500", result.Invoices[1].Balance.String())
}

func TestSettleSupplierSummaryExcludesCreditNotes(t *testing.T) {
	cnID := uuid.New()
	invoice := InvoiceFacts{
		Invoice:      invoiceFact("INV-20", "1000", day),
		PaymentItems: []PaymentFact{confirmedPayment("400")},
		ExplicitApplications: []ApplicationFact{
			{CreditNoteID: cnID, Amount: decimal.RequireFromString("250")},
		},
	}
	creditNote := InvoiceFacts{
		Invoice: creditNoteFact("CN-20", "250", day.AddDate(0, 0, 1)),
		ApplicationsGiven: []ApplicationFact{
			{CreditNoteID: cnID, InvoiceID: invoice.Invoice.ID, Amount: decimal.RequireFromString("250")},
		},
	}

	result := SettleSupplier([]InvoiceFacts{invoice, creditNote})

	assert.Equal(t, "1000", result.Summary.TotalInvoiced.String())
	assert.Equal(t, "650", result.Summary.TotalPaid.String())
	assert.Equal(t, "350", result.Summary.TotalBalance.String())

	require.Len(t, result.Invoices, 2)
	assert.True(t, result.Invoices[1].Balance.IsZero(), "fully applied credit note closes")
}

func TestFallbackMatchStrategyPartialConsumption(t *testing.T) {
	// A note cut by the cap is still fully consumed; the unused part does
	// not spill over to a later invoice.
	strategy := NewFallbackMatchStrategy()
	cn := CreditNoteFact{ID: uuid.New(), Total: decimal.RequireFromString("700"), Status: purchasing.InvoiceStatusConfirmed}

	first := InvoiceFacts{
		Invoice:             invoiceFact("INV-30", "1000", day),
		FallbackCreditNotes: []CreditNoteFact{cn},
	}
	matched := strategy.Match(first, decimal.RequireFromString("600"))
	assert.Equal(t, "600", matched.String())

	second := InvoiceFacts{
		Invoice:             invoiceFact("INV-31", "1000", day.AddDate(0, 0, 1)),
		FallbackCreditNotes: []CreditNoteFact{cn},
	}
	matched = strategy.Match(second, decimal.RequireFromString("1000"))
	assert.True(t, matched.IsZero())
}

func TestStrategyNames(t *testing.T) {
	assert.Equal(t, "explicit-application", ExplicitApplicationStrategy{}.Name())
	assert.Equal(t, "fallback-match", NewFallbackMatchStrategy().Name())
}
