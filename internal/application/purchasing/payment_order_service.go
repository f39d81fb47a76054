package purchasing

import (
	"context"

	"github.com/comercia/backend/internal/domain/purchasing"
	"github.com/comercia/backend/internal/domain/shared"
	"github.com/comercia/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
)

// PaymentOrderService handles the payment order lifecycle. Confirm re-derives
// every referenced invoice's paid status in the same transaction, so the
// derived PARTIAL_PAID/PAID states never drift from the confirmed items.
type PaymentOrderService struct {
	txScope        TransactionScope
	eventPublisher shared.EventPublisher
}

// NewPaymentOrderService creates a new PaymentOrderService
func NewPaymentOrderService(txScope TransactionScope) *PaymentOrderService {
	return &PaymentOrderService{txScope: txScope}
}

// SetEventPublisher sets the event publisher for publishing domain events
func (s *PaymentOrderService) SetEventPublisher(publisher shared.EventPublisher) {
	s.eventPublisher = publisher
}

// GetByID retrieves a payment order by ID
func (s *PaymentOrderService) GetByID(ctx context.Context, tenantID, orderID uuid.UUID) (*PaymentOrderResponse, error) {
	var response PaymentOrderResponse
	err := s.txScope.Execute(ctx, func(repos TransactionalRepositories) error {
		order, err := repos.PaymentOrderRepo().FindByIDForTenant(ctx, tenantID, orderID)
		if err != nil {
			return err
		}
		response = ToPaymentOrderResponse(order)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &response, nil
}

// Create creates a draft payment order with its items. Every referenced
// invoice must exist, belong to the same supplier and be able to receive
// payments.
func (s *PaymentOrderService) Create(ctx context.Context, tenantID, actorID uuid.UUID, req CreatePaymentOrderRequest) (*PaymentOrderResponse, error) {
	order, err := purchasing.NewPaymentOrder(tenantID, req.Number, req.SupplierID, req.PaymentDate)
	if err != nil {
		return nil, err
	}
	order.SetCreatedBy(actorID)

	err = s.txScope.Execute(ctx, func(repos TransactionalRepositories) error {
		for _, item := range req.Items {
			invoice, err := repos.InvoiceRepo().FindByIDForTenant(ctx, tenantID, item.InvoiceID)
			if err != nil {
				return err
			}
			if invoice.SupplierID != req.SupplierID {
				return shared.NewBusinessRuleError("Invoice belongs to a different supplier")
			}
			if !invoice.Status.CountsTowardBalance() {
				return shared.NewBusinessRuleError("Payments can only target confirmed invoices")
			}
			if invoice.IsCreditNote() {
				return shared.NewBusinessRuleError("Credit notes cannot receive payments")
			}
			if err := order.AddItem(item.InvoiceID, valueobject.NewMoneyARS(item.Amount)); err != nil {
				return err
			}
		}
		return repos.PaymentOrderRepo().Save(ctx, order)
	})
	if err != nil {
		return nil, err
	}

	response := ToPaymentOrderResponse(order)
	return &response, nil
}

// Confirm confirms a draft order and refreshes each referenced invoice's
// payment status from the new confirmed totals.
func (s *PaymentOrderService) Confirm(ctx context.Context, tenantID, actorID uuid.UUID, orderID uuid.UUID) (*PaymentOrderResponse, error) {
	var order *purchasing.PaymentOrder
	err := s.txScope.Execute(ctx, func(repos TransactionalRepositories) error {
		var err error
		order, err = repos.PaymentOrderRepo().FindByIDForTenant(ctx, tenantID, orderID)
		if err != nil {
			return err
		}
		if err := order.Confirm(); err != nil {
			return err
		}
		if err := repos.PaymentOrderRepo().Save(ctx, order); err != nil {
			return err
		}

		seen := make(map[uuid.UUID]bool)
		for i := range order.Items {
			invoiceID := order.Items[i].InvoiceID
			if seen[invoiceID] {
				continue
			}
			seen[invoiceID] = true

			invoice, err := repos.InvoiceRepo().FindByIDForTenant(ctx, tenantID, invoiceID)
			if err != nil {
				return err
			}
			paid, err := repos.InvoiceRepo().SumConfirmedPayments(ctx, tenantID, invoiceID)
			if err != nil {
				return err
			}
			if err := invoice.RefreshPaymentStatus(paid); err != nil {
				return err
			}
			if err := repos.InvoiceRepo().SaveWithLock(ctx, invoice); err != nil {
				return err
			}
			s.publishInvoiceEvents(ctx, invoice)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if s.eventPublisher != nil {
		events := order.GetDomainEvents()
		if len(events) > 0 {
			_ = s.eventPublisher.Publish(ctx, events...)
			order.ClearDomainEvents()
		}
	}

	response := ToPaymentOrderResponse(order)
	return &response, nil
}

// CancelDraft cancels an order that never counted toward any invoice
func (s *PaymentOrderService) CancelDraft(ctx context.Context, tenantID, actorID uuid.UUID, orderID uuid.UUID, reason string) (*PaymentOrderResponse, error) {
	var order *purchasing.PaymentOrder
	err := s.txScope.Execute(ctx, func(repos TransactionalRepositories) error {
		var err error
		order, err = repos.PaymentOrderRepo().FindByIDForTenant(ctx, tenantID, orderID)
		if err != nil {
			return err
		}
		if err := order.Cancel(reason); err != nil {
			return err
		}
		return repos.PaymentOrderRepo().Save(ctx, order)
	})
	if err != nil {
		return nil, err
	}

	response := ToPaymentOrderResponse(order)
	return &response, nil
}

func (s *PaymentOrderService) publishInvoiceEvents(ctx context.Context, invoice *purchasing.PurchaseInvoice) {
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
