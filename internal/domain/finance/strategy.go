package finance

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CreditNoteMatchStrategy computes how much credit-note money covers one
// invoice. remaining is the uncovered part of the invoice total after
// payments and any earlier strategy; a strategy may ignore it.
type CreditNoteMatchStrategy interface {
	Name() string
	Match(facts InvoiceFacts, remaining decimal.Decimal) decimal.Decimal
}

// ExplicitApplicationStrategy sums the recorded application rows. This is
// the authoritative path; its amounts were validated against both sides at
// creation time and are never re-capped here.
type ExplicitApplicationStrategy struct{}

// Name returns the strategy identifier
func (ExplicitApplicationStrategy) Name() string { return "explicit-application" }

// Match returns the sum of explicit applications received by the invoice
func (ExplicitApplicationStrategy) Match(facts InvoiceFacts, _ decimal.Decimal) decimal.Decimal {
	return facts.ExplicitCredit()
}

// FallbackMatchStrategy infers coverage from credit notes that reference the
// invoice via their original-invoice link but were never explicitly applied.
// The inferred amount is capped at the invoice's remaining balance so
// fallback linkage can never push recorded paid past the total. Consumption
// is tracked across the whole invoice set: a credit note covers at most one
// invoice even when several reference it.
type FallbackMatchStrategy struct {
	consumed map[uuid.UUID]bool
}

// NewFallbackMatchStrategy creates a strategy with an empty consumed set
func NewFallbackMatchStrategy() *FallbackMatchStrategy {
	return &FallbackMatchStrategy{consumed: make(map[uuid.UUID]bool)}
}

// Name returns the strategy identifier
func (*FallbackMatchStrategy) Name() string { return "fallback-match" }

// Match consumes eligible credit notes against the invoice's remaining
// balance. A note that contributes anything, even a capped partial amount,
// is marked consumed.
func (s *FallbackMatchStrategy) Match(facts InvoiceFacts, remaining decimal.Decimal) decimal.Decimal {
	if remaining.LessThanOrEqual(decimal.Zero) {
		return decimal.Zero
	}

	matched := decimal.Zero
	for _, cn := range facts.FallbackCreditNotes {
		if !cn.Eligible() || s.consumed[cn.ID] {
			continue
		}
		available := remaining.Sub(matched)
		if available.LessThanOrEqual(decimal.Zero) {
			break
		}
		amount := cn.Total
		if amount.GreaterThan(available) {
			amount = available
		}
		matched = matched.Add(amount)
		s.consumed[cn.ID] = true
	}
	return matched
}
