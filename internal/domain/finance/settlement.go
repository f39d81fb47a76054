package finance

import (
	"sort"

	"github.com/shopspring/decimal"
)

// InvoiceSettlement is the computed position of one document. For credit
// notes Balance is zero or negative; the negative part is unapplied credit
// still available.
type InvoiceSettlement struct {
	Invoice         InvoiceFact
	Paid            decimal.Decimal
	Balance         decimal.Decimal
	FallbackApplied decimal.Decimal
}

// SupplierSummary aggregates the supplier's position over invoices and debit
// notes. Credit notes are excluded from the totals.
type SupplierSummary struct {
	TotalInvoiced decimal.Decimal
	TotalPaid     decimal.Decimal
	TotalBalance  decimal.Decimal
}

// SupplierSettlement is the full reconciliation result for one supplier
type SupplierSettlement struct {
	Invoices []InvoiceSettlement
	Summary  SupplierSummary
}

// SettleInvoice computes one invoice's position in isolation using a fresh
// fallback strategy. For positions across a whole supplier use
// SettleSupplier, which shares credit-note consumption between invoices.
func SettleInvoice(facts InvoiceFacts) InvoiceSettlement {
	return settleOne(facts, ExplicitApplicationStrategy{}, NewFallbackMatchStrategy())
}

// SettleSupplier computes every invoice's position and the supplier summary.
// Invoices are processed in issue-date order and the fallback strategy's
// consumed set is shared across them, so a credit note referenced by several
// invoices counts at most once.
func SettleSupplier(facts []InvoiceFacts) SupplierSettlement {
	ordered := make([]InvoiceFacts, len(facts))
	copy(ordered, facts)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].Invoice.IssueDate.Before(ordered[j].Invoice.IssueDate)
	})

	explicit := ExplicitApplicationStrategy{}
	fallback := NewFallbackMatchStrategy()

	settlements := make([]InvoiceSettlement, 0, len(ordered))
	summary := SupplierSummary{
		TotalInvoiced: decimal.Zero,
		TotalPaid:     decimal.Zero,
		TotalBalance:  decimal.Zero,
	}

	for _, f := range ordered {
		s := settleOne(f, explicit, fallback)
		settlements = append(settlements, s)

		if f.Invoice.IsCreditNote() {
			continue
		}
		summary.TotalInvoiced = summary.TotalInvoiced.Add(f.Invoice.Total)
		summary.TotalPaid = summary.TotalPaid.Add(s.Paid)
	}
	summary.TotalBalance = summary.TotalInvoiced.Sub(summary.TotalPaid)

	return SupplierSettlement{Invoices: settlements, Summary: summary}
}

func settleOne(facts InvoiceFacts, explicit, fallback CreditNoteMatchStrategy) InvoiceSettlement {
	inv := facts.Invoice

	if inv.IsCreditNote() {
		paid := facts.CreditGiven()
		return InvoiceSettlement{
			Invoice:         inv,
			Paid:            paid,
			Balance:         inv.Total.Sub(paid).Neg(),
			FallbackApplied: decimal.Zero,
		}
	}

	payments := facts.ConfirmedPayments()
	explicitCN := explicit.Match(facts, decimal.Zero)

	remaining := inv.Total.Sub(payments).Sub(explicitCN)
	if remaining.IsNegative() {
		remaining = decimal.Zero
	}
	fallbackCN := fallback.Match(facts, remaining)

	paid := payments.Add(explicitCN).Add(fallbackCN)
	return InvoiceSettlement{
		Invoice:         inv,
		Paid:            paid,
		Balance:         inv.Total.Sub(paid),
		FallbackApplied: fallbackCN,
	}
}
