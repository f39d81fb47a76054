package purchasing

import (
	"context"

	"github.com/comercia/backend/internal/domain/inventory"
	"github.com/comercia/backend/internal/domain/purchasing"
	"github.com/comercia/backend/internal/domain/shared"
	"github.com/comercia/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
)

// InvoiceService handles the purchase invoice lifecycle. An invoice with
// lines moves stock on confirm; cancel reverses exactly what confirm did.
type InvoiceService struct {
	txScope        TransactionScope
	eventPublisher shared.EventPublisher
}

// NewInvoiceService creates a new InvoiceService
func NewInvoiceService(txScope TransactionScope) *InvoiceService {
	return &InvoiceService{txScope: txScope}
}

// SetEventPublisher sets the event publisher for publishing domain events
func (s *InvoiceService) SetEventPublisher(publisher shared.EventPublisher) {
	s.eventPublisher = publisher
}

func (s *InvoiceService) publishDomainEvents(ctx context.Context, invoice *purchasing.PurchaseInvoice) {
	if s.eventPublisher == nil {
		return
	}
	events := invoice.GetDomainEvents()
	if len(events) == 0 {
		return
	}
	_ = s.eventPublisher.Publish(ctx, events...)
	invoice.ClearDomainEvents()
}

// GetByID retrieves an invoice by ID
func (s *InvoiceService) GetByID(ctx context.Context, tenantID, invoiceID uuid.UUID) (*InvoiceResponse, error) {
	var response InvoiceResponse
	err := s.txScope.Execute(ctx, func(repos TransactionalRepositories) error {
		invoice, err := repos.InvoiceRepo().FindByIDForTenant(ctx, tenantID, invoiceID)
		if err != nil {
			return err
		}
		response = ToInvoiceResponse(invoice)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &response, nil
}

// ListBySupplier retrieves a supplier's invoices
func (s *InvoiceService) ListBySupplier(ctx context.Context, tenantID, supplierID uuid.UUID, filter shared.Filter) ([]InvoiceResponse, error) {
	var responses []InvoiceResponse
	err := s.txScope.Execute(ctx, func(repos TransactionalRepositories) error {
		invoices, err := repos.InvoiceRepo().FindBySupplier(ctx, tenantID, supplierID, filter)
		if err != nil {
			return err
		}
		responses = make([]InvoiceResponse, 0, len(invoices))
		for i := range invoices {
			responses = append(responses, ToInvoiceResponse(&invoices[i]))
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return responses, nil
}

// Create creates a draft invoice, optionally with stock lines
func (s *InvoiceService) Create(ctx context.Context, tenantID, actorID uuid.UUID, req CreateInvoiceRequest) (*InvoiceResponse, error) {
	voucherType := purchasing.VoucherType(req.VoucherType)
	invoice, err := purchasing.NewPurchaseInvoice(tenantID, req.SupplierID, voucherType,
		req.Number, req.IssueDate, req.DueDate, valueobject.NewMoneyARS(req.Total), req.OriginalInvoiceID)
	if err != nil {
		return nil, err
	}
	invoice.SetCreatedBy(actorID)

	for _, line := range req.Lines {
		if err := invoice.AddLine(line.WarehouseID, line.ProductID, line.Quantity, valueobject.NewMoneyARS(line.UnitCost)); err != nil {
			return nil, err
		}
	}

	err = s.txScope.Execute(ctx, func(repos TransactionalRepositories) error {
		if req.OriginalInvoiceID != nil {
			original, err := repos.InvoiceRepo().FindByIDForTenant(ctx, tenantID, *req.OriginalInvoiceID)
			if err != nil {
				return err
			}
			if original.SupplierID != req.SupplierID {
				return shared.NewBusinessRuleError("Original invoice belongs to a different supplier")
			}
		}
		return repos.InvoiceRepo().Save(ctx, invoice)
	})
	if err != nil {
		return nil, err
	}

	response := ToInvoiceResponse(invoice)
	return &response, nil
}

// Confirm confirms a draft invoice. When the invoice carries lines, each one
// produces a positive stock movement in the same transaction.
func (s *InvoiceService) Confirm(ctx context.Context, tenantID, actorID uuid.UUID, invoiceID uuid.UUID) (*InvoiceResponse, error) {
	var invoice *purchasing.PurchaseInvoice
	err := s.txScope.Execute(ctx, func(repos TransactionalRepositories) error {
		var err error
		invoice, err = repos.InvoiceRepo().FindByIDForTenant(ctx, tenantID, invoiceID)
		if err != nil {
			return err
		}
		if err := invoice.Confirm(); err != nil {
			return err
		}

		for i := range invoice.Lines {
			line := &invoice.Lines[i]
			movement, err := inventory.NewStockMovement(tenantID, line.WarehouseID, line.ProductID,
				line.Quantity, inventory.StockSourcePurchaseInvoice, invoice.ID)
			if err != nil {
				return err
			}
			if err := repos.StockMovementRepo().Save(ctx, movement); err != nil {
				return err
			}
			if err := applyToWarehouseStock(ctx, repos.WarehouseStockRepo(), tenantID, line.WarehouseID, line.ProductID, line.Quantity); err != nil {
				return err
			}
		}

		return repos.InvoiceRepo().Save(ctx, invoice)
	})
	if err != nil {
		return nil, err
	}

	s.publishDomainEvents(ctx, invoice)
	response := ToInvoiceResponse(invoice)
	return &response, nil
}

// Cancel cancels an invoice. A confirmed invoice with stock effect gets its
// movements reversed; an invoice with confirmed payments cannot be cancelled
// at all and must be corrected through a credit note.
func (s *InvoiceService) Cancel(ctx context.Context, tenantID, actorID uuid.UUID, invoiceID uuid.UUID, reason string) (*InvoiceResponse, error) {
	var invoice *purchasing.PurchaseInvoice
	err := s.txScope.Execute(ctx, func(repos TransactionalRepositories) error {
		var err error
		invoice, err = repos.InvoiceRepo().FindByIDForTenant(ctx, tenantID, invoiceID)
		if err != nil {
			return err
		}

		paid, err := repos.InvoiceRepo().SumConfirmedPayments(ctx, tenantID, invoiceID)
		if err != nil {
			return err
		}
		if err := invoice.Cancel(reason, paid.IsPositive()); err != nil {
			return err
		}

		originals, err := repos.StockMovementRepo().FindBySource(ctx, tenantID, inventory.StockSourcePurchaseInvoice, invoice.ID)
		if err != nil {
			return err
		}
		for i := range originals {
			original := &originals[i]
			if original.IsReversal() {
				continue
			}
			reversal := original.Reverse()
			if err := repos.StockMovementRepo().Save(ctx, reversal); err != nil {
				return err
			}
			if err := applyToWarehouseStock(ctx, repos.WarehouseStockRepo(), tenantID, reversal.WarehouseID, reversal.ProductID, reversal.Quantity); err != nil {
				return err
			}
		}

		return repos.InvoiceRepo().Save(ctx, invoice)
	})
	if err != nil {
		return nil, err
	}

	s.publishDomainEvents(ctx, invoice)
	response := ToInvoiceResponse(invoice)
	return &response, nil
}

// ApplyCreditNote records an explicit application of a credit note against
// an invoice, validated against both sides' remaining amounts inside the
// transaction.
func (s *InvoiceService) ApplyCreditNote(ctx context.Context, tenantID, actorID uuid.UUID, req ApplyCreditNoteRequest) error {
	return s.txScope.Execute(ctx, func(repos TransactionalRepositories) error {
		creditNote, err := repos.InvoiceRepo().FindByIDForTenant(ctx, tenantID, req.CreditNoteID)
		if err != nil {
			return err
		}
		invoice, err := repos.InvoiceRepo().FindByIDForTenant(ctx, tenantID, req.InvoiceID)
		if err != nil {
			return err
		}

		applied, err := repos.ApplicationRepo().SumByCreditNote(ctx, tenantID, creditNote.ID)
		if err != nil {
			return err
		}
		availableCredit := creditNote.Total.Sub(applied)

		paid, err := repos.InvoiceRepo().SumConfirmedPayments(ctx, tenantID, invoice.ID)
		if err != nil {
			return err
		}
		received, err := repos.ApplicationRepo().FindByInvoice(ctx, tenantID, invoice.ID)
		if err != nil {
			return err
		}
		remaining := invoice.Total.Sub(paid)
		for i := range received {
			remaining = remaining.Sub(received[i].Amount)
		}

		application, err := purchasing.NewCreditNoteApplication(tenantID, creditNote, invoice,
			valueobject.NewMoneyARS(req.Amount), availableCredit, remaining, &actorID)
		if err != nil {
			return err
		}
		return repos.ApplicationRepo().Save(ctx, application)
	})
}
