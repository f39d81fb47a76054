package partner

import (
	"context"

	"github.com/comercia/backend/internal/domain/partner"
	"github.com/comercia/backend/internal/domain/purchasing"
	"github.com/comercia/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// SupplierService handles supplier management. Deletion and tax-id changes
// consult the supplier's document counts, so the purchasing repositories are
// collaborators here.
type SupplierService struct {
	supplierRepo      partner.SupplierRepository
	invoiceRepo       purchasing.PurchaseInvoiceRepository
	receivingNoteRepo purchasing.ReceivingNoteRepository
}

// NewSupplierService creates a new SupplierService
func NewSupplierService(
	supplierRepo partner.SupplierRepository,
	invoiceRepo purchasing.PurchaseInvoiceRepository,
	receivingNoteRepo purchasing.ReceivingNoteRepository,
) *SupplierService {
	return &SupplierService{
		supplierRepo:      supplierRepo,
		invoiceRepo:       invoiceRepo,
		receivingNoteRepo: receivingNoteRepo,
	}
}

// GetByID retrieves a supplier by ID
func (s *SupplierService) GetByID(ctx context.Context, tenantID, supplierID uuid.UUID) (*SupplierResponse, error) {
	supplier, err := s.supplierRepo.FindByIDForTenant(ctx, tenantID, supplierID)
	if err != nil {
		return nil, err
	}
	response := ToSupplierResponse(supplier)
	return &response, nil
}

// List retrieves a paginated list of suppliers
func (s *SupplierService) List(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]SupplierResponse, int64, error) {
	total, err := s.supplierRepo.CountForTenant(ctx, tenantID, filter)
	if err != nil {
		return nil, 0, err
	}
	suppliers, err := s.supplierRepo.FindAllForTenant(ctx, tenantID, filter)
	if err != nil {
		return nil, 0, err
	}
	return ToSupplierResponses(suppliers), total, nil
}

// Create creates a supplier
func (s *SupplierService) Create(ctx context.Context, tenantID, actorID uuid.UUID, req CreateSupplierRequest) (*SupplierResponse, error) {
	supplier, err := partner.NewSupplier(tenantID, req.Code, req.Name, req.TaxID, req.PaymentTermsDays)
	if err != nil {
		return nil, err
	}
	supplier.SetCreatedBy(actorID)
	supplier.Email = req.Email
	supplier.Phone = req.Phone

	if err := s.supplierRepo.Save(ctx, supplier); err != nil {
		return nil, err
	}

	response := ToSupplierResponse(supplier)
	return &response, nil
}

// Update applies the provided field changes. A tax-id change is refused once
// the supplier has confirmed documents.
func (s *SupplierService) Update(ctx context.Context, tenantID, actorID uuid.UUID, supplierID uuid.UUID, req UpdateSupplierRequest) (*SupplierResponse, error) {
	supplier, err := s.supplierRepo.FindByIDForTenant(ctx, tenantID, supplierID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		if err := supplier.Rename(*req.Name); err != nil {
			return nil, err
		}
	}
	if req.TaxID != nil && *req.TaxID != supplier.TaxID {
		count, err := s.documentCount(ctx, tenantID, supplierID)
		if err != nil {
			return nil, err
		}
		if err := supplier.ChangeTaxID(*req.TaxID, count > 0); err != nil {
			return nil, err
		}
	}
	if req.PaymentTermsDays != nil {
		if err := supplier.SetPaymentTerms(*req.PaymentTermsDays); err != nil {
			return nil, err
		}
	}
	if req.Email != nil {
		supplier.Email = *req.Email
	}
	if req.Phone != nil {
		supplier.Phone = *req.Phone
	}

	if err := s.supplierRepo.Save(ctx, supplier); err != nil {
		return nil, err
	}

	response := ToSupplierResponse(supplier)
	return &response, nil
}

// Delete removes a supplier that has no documents
func (s *SupplierService) Delete(ctx context.Context, tenantID, actorID uuid.UUID, supplierID uuid.UUID) error {
	supplier, err := s.supplierRepo.FindByIDForTenant(ctx, tenantID, supplierID)
	if err != nil {
		return err
	}

	count, err := s.documentCount(ctx, tenantID, supplierID)
	if err != nil {
		return err
	}
	if err := supplier.EnsureDeletable(count); err != nil {
		return err
	}

	return s.supplierRepo.Delete(ctx, tenantID, supplierID)
}

func (s *SupplierService) documentCount(ctx context.Context, tenantID, supplierID uuid.UUID) (int64, error) {
	invoices, err := s.invoiceRepo.CountBySupplier(ctx, tenantID, supplierID)
	if err != nil {
		return 0, err
	}
	notes, err := s.receivingNoteRepo.CountBySupplier(ctx, tenantID, supplierID)
	if err != nil {
		return 0, err
	}
	return invoices + notes, nil
}
