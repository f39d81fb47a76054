package finance

import (
	"context"

	"github.com/comercia/backend/internal/domain/finance"
	"github.com/comercia/backend/internal/domain/partner"
	"github.com/comercia/backend/internal/domain/purchasing"
	"github.com/comercia/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// SupplierBalanceService assembles settlement facts for one supplier and
// delegates the math to the pure settlement functions. The computed balances
// are re-derived on every read and never persisted, so they cannot drift
// from the documents.
type SupplierBalanceService struct {
	supplierRepo    partner.SupplierRepository
	invoiceRepo     purchasing.PurchaseInvoiceRepository
	paymentRepo     purchasing.PaymentOrderRepository
	applicationRepo purchasing.CreditNoteApplicationRepository
}

// NewSupplierBalanceService creates a new SupplierBalanceService
func NewSupplierBalanceService(
	supplierRepo partner.SupplierRepository,
	invoiceRepo purchasing.PurchaseInvoiceRepository,
	paymentRepo purchasing.PaymentOrderRepository,
	applicationRepo purchasing.CreditNoteApplicationRepository,
) *SupplierBalanceService {
	return &SupplierBalanceService{
		supplierRepo:    supplierRepo,
		invoiceRepo:     invoiceRepo,
		paymentRepo:     paymentRepo,
		applicationRepo: applicationRepo,
	}
}

// GetSupplierBalance computes the supplier's full reconciliation
func (s *SupplierBalanceService) GetSupplierBalance(ctx context.Context, tenantID, supplierID uuid.UUID) (*SupplierBalanceResponse, error) {
	supplier, err := s.supplierRepo.FindByIDForTenant(ctx, tenantID, supplierID)
	if err != nil {
		return nil, err
	}

	facts, err := s.collectFacts(ctx, tenantID, supplierID)
	if err != nil {
		return nil, err
	}

	settlement := finance.SettleSupplier(facts)
	response := ToSupplierBalanceResponse(supplier, settlement)
	return &response, nil
}

// GetInvoiceBalance computes one invoice's position in isolation
func (s *SupplierBalanceService) GetInvoiceBalance(ctx context.Context, tenantID, invoiceID uuid.UUID) (*InvoiceBalanceResponse, error) {
	invoice, err := s.invoiceRepo.FindByIDForTenant(ctx, tenantID, invoiceID)
	if err != nil {
		return nil, err
	}
	if !invoice.Status.CountsTowardBalance() {
		return nil, shared.NewBusinessRuleError("Balance is only defined for confirmed documents")
	}

	facts, err := s.factsForInvoice(ctx, tenantID, invoice)
	if err != nil {
		return nil, err
	}

	settlement := finance.SettleInvoice(*facts)
	response := ToInvoiceBalanceResponse(settlement)
	return &response, nil
}

// collectFacts gathers the settlement inputs for every document of the
// supplier that counts toward the balance.
func (s *SupplierBalanceService) collectFacts(ctx context.Context, tenantID, supplierID uuid.UUID) ([]finance.InvoiceFacts, error) {
	invoices, err := s.invoiceRepo.FindBySupplier(ctx, tenantID, supplierID, shared.Filter{})
	if err != nil {
		return nil, err
	}

	facts := make([]finance.InvoiceFacts, 0, len(invoices))
	for i := range invoices {
		invoice := &invoices[i]
		if !invoice.Status.CountsTowardBalance() {
			continue
		}
		f, err := s.factsForInvoice(ctx, tenantID, invoice)
		if err != nil {
			return nil, err
		}
		facts = append(facts, *f)
	}
	return facts, nil
}

func (s *SupplierBalanceService) factsForInvoice(ctx context.Context, tenantID uuid.UUID, invoice *purchasing.PurchaseInvoice) (*finance.InvoiceFacts, error) {
	facts := &finance.InvoiceFacts{
		Invoice: finance.InvoiceFact{
			ID:          invoice.ID,
			Number:      invoice.Number,
			VoucherType: invoice.VoucherType,
			Status:      invoice.Status,
			IssueDate:   invoice.IssueDate,
			Total:       invoice.Total,
		},
	}

	items, err := s.paymentRepo.FindItemsByInvoices(ctx, tenantID, []uuid.UUID{invoice.ID})
	if err != nil {
		return nil, err
	}
	for _, item := range items {
		facts.PaymentItems = append(facts.PaymentItems, finance.PaymentFact{
			PaymentOrderID: item.PaymentOrderID,
			Amount:         item.Amount,
			OrderStatus:    item.OrderStatus,
		})
	}

	received, err := s.applicationRepo.FindByInvoice(ctx, tenantID, invoice.ID)
	if err != nil {
		return nil, err
	}
	for i := range received {
		app := &received[i]
		facts.ExplicitApplications = append(facts.ExplicitApplications, finance.ApplicationFact{
			CreditNoteID: app.CreditNoteID,
			InvoiceID:    app.InvoiceID,
			Amount:       app.Amount,
		})
	}

	if invoice.IsCreditNote() {
		given, err := s.applicationRepo.FindByCreditNote(ctx, tenantID, invoice.ID)
		if err != nil {
			return nil, err
		}
		for i := range given {
			app := &given[i]
			facts.ApplicationsGiven = append(facts.ApplicationsGiven, finance.ApplicationFact{
				CreditNoteID: app.CreditNoteID,
				InvoiceID:    app.InvoiceID,
				Amount:       app.Amount,
			})
		}
		return facts, nil
	}

	creditNotes, err := s.invoiceRepo.FindCreditNotesByOriginalInvoice(ctx, tenantID, invoice.ID)
	if err != nil {
		return nil, err
	}
	for i := range creditNotes {
		cn := &creditNotes[i]
		hasExplicit, err := s.applicationRepo.ExistsForCreditNote(ctx, tenantID, cn.ID)
		if err != nil {
			return nil, err
		}
		facts.FallbackCreditNotes = append(facts.FallbackCreditNotes, finance.CreditNoteFact{
			ID:                      cn.ID,
			Total:                   cn.Total,
			Status:                  cn.Status,
			HasExplicitApplications: hasExplicit,
		})
	}

	return facts, nil
}
