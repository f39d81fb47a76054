package purchasing

// VoucherType is the commercial document kind, determining sign conventions
// in the payable balance. The letter follows the Argentine fiscal regime.
type VoucherType string

const (
	VoucherTypeInvoiceA    VoucherType = "INVOICE_A"
	VoucherTypeInvoiceB    VoucherType = "INVOICE_B"
	VoucherTypeInvoiceC    VoucherType = "INVOICE_C"
	VoucherTypeDebitNoteA  VoucherType = "DEBIT_NOTE_A"
	VoucherTypeDebitNoteB  VoucherType = "DEBIT_NOTE_B"
	VoucherTypeDebitNoteC  VoucherType = "DEBIT_NOTE_C"
	VoucherTypeCreditNoteA VoucherType = "CREDIT_NOTE_A"
	VoucherTypeCreditNoteB VoucherType = "CREDIT_NOTE_B"
	VoucherTypeCreditNoteC VoucherType = "CREDIT_NOTE_C"
)

// IsValid checks if the voucher type is valid
func (v VoucherType) IsValid() bool {
	switch v {
	case VoucherTypeInvoiceA, VoucherTypeInvoiceB, VoucherTypeInvoiceC,
		VoucherTypeDebitNoteA, VoucherTypeDebitNoteB, VoucherTypeDebitNoteC,
		VoucherTypeCreditNoteA, VoucherTypeCreditNoteB, VoucherTypeCreditNoteC:
		return true
	}
	return false
}

// String returns the string representation of the voucher type
func (v VoucherType) String() string {
	return string(v)
}

// IsCreditNote returns true for the credit-note variants
func (v VoucherType) IsCreditNote() bool {
	switch v {
	case VoucherTypeCreditNoteA, VoucherTypeCreditNoteB, VoucherTypeCreditNoteC:
		return true
	}
	return false
}

// IsDebitNote returns true for the debit-note variants
func (v VoucherType) IsDebitNote() bool {
	switch v {
	case VoucherTypeDebitNoteA, VoucherTypeDebitNoteB, VoucherTypeDebitNoteC:
		return true
	}
	return false
}

// IsNote returns true when the document corrects another invoice and may
// carry an original-invoice reference.
func (v VoucherType) IsNote() bool {
	return v.IsCreditNote() || v.IsDebitNote()
}
