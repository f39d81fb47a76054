package partner

import (
	"time"

	"github.com/comercia/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// Supplier is the root of the payable relationship. Terms and contact data
// are freely editable; the tax identifier locks once the supplier has
// confirmed documents.
type Supplier struct {
	shared.TenantAggregateRoot
	Code             string `gorm:"type:varchar(50);not null;uniqueIndex:idx_supplier_tenant_code,priority:2"`
	Name             string `gorm:"type:varchar(200);not null"`
	TaxID            string `gorm:"type:varchar(20);not null"` // CUIT
	PaymentTermsDays int    `gorm:"not null;default:0"`
	Email            string `gorm:"type:varchar(200)"`
	Phone            string `gorm:"type:varchar(50)"`
	Active           bool   `gorm:"not null;default:true"`
}

// TableName returns the table name for GORM
func (Supplier) TableName() string {
	return "suppliers"
}

// NewSupplier creates a new supplier
func NewSupplier(tenantID uuid.UUID, code, name, taxID string, paymentTermsDays int) (*Supplier, error) {
	if code == "" {
		return nil, shared.NewValidationError("Supplier code cannot be empty")
	}
	if name == "" {
		return nil, shared.NewValidationError("Supplier name cannot be empty")
	}
	if taxID == "" {
		return nil, shared.NewValidationError("Supplier tax ID cannot be empty")
	}
	if paymentTermsDays < 0 {
		return nil, shared.NewValidationError("Payment terms cannot be negative")
	}

	return &Supplier{
		TenantAggregateRoot: shared.NewTenantAggregateRoot(tenantID),
		Code:                code,
		Name:                name,
		TaxID:               taxID,
		PaymentTermsDays:    paymentTermsDays,
		Active:              true,
	}, nil
}

// Rename updates the display name
func (s *Supplier) Rename(name string) error {
	if name == "" {
		return shared.NewValidationError("Supplier name cannot be empty")
	}
	s.Name = name
	s.UpdatedAt = time.Now()
	s.IncrementVersion()
	return nil
}

// ChangeTaxID updates the tax identifier. hasConfirmedDocuments reflects
// whether any confirmed invoice or receiving note references this supplier;
// once that is true the identifier is immutable.
func (s *Supplier) ChangeTaxID(taxID string, hasConfirmedDocuments bool) error {
	if taxID == "" {
		return shared.NewValidationError("Supplier tax ID cannot be empty")
	}
	if hasConfirmedDocuments {
		return shared.NewDomainError("SUPPLIER_TAX_ID_LOCKED",
			"Tax ID cannot change once the supplier has confirmed documents")
	}
	s.TaxID = taxID
	s.UpdatedAt = time.Now()
	s.IncrementVersion()
	return nil
}

// SetPaymentTerms updates the payment terms in days
func (s *Supplier) SetPaymentTerms(days int) error {
	if days < 0 {
		return shared.NewValidationError("Payment terms cannot be negative")
	}
	s.PaymentTermsDays = days
	s.UpdatedAt = time.Now()
	s.IncrementVersion()
	return nil
}

// Deactivate marks the supplier inactive; its documents remain readable
func (s *Supplier) Deactivate() {
	s.Active = false
	s.UpdatedAt = time.Now()
	s.IncrementVersion()
}

// Activate re-enables the supplier
func (s *Supplier) Activate() {
	s.Active = true
	s.UpdatedAt = time.Now()
	s.IncrementVersion()
}

// EnsureDeletable returns a business-rule error when the supplier still has
// associated documents; deletion is only allowed for unused suppliers.
func (s *Supplier) EnsureDeletable(documentCount int64) error {
	if documentCount > 0 {
		return shared.NewDomainError("SUPPLIER_HAS_DOCUMENTS",
			"Cannot delete a supplier with associated invoices or receiving notes")
	}
	return nil
}
