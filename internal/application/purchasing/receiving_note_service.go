package purchasing

import (
	"context"

	"github.com/comercia/backend/internal/domain/inventory"
	"github.com/comercia/backend/internal/domain/purchasing"
	"github.com/comercia/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ReceivingNoteService handles the receiving note lifecycle. Confirm and
// Cancel mutate the stock ledger, the materialized balances and the linked
// purchase-order lines inside one transaction scope.
type ReceivingNoteService struct {
	txScope        TransactionScope
	eventPublisher shared.EventPublisher
}

// NewReceivingNoteService creates a new ReceivingNoteService
func NewReceivingNoteService(txScope TransactionScope) *ReceivingNoteService {
	return &ReceivingNoteService{txScope: txScope}
}

// SetEventPublisher sets the event publisher for publishing domain events
func (s *ReceivingNoteService) SetEventPublisher(publisher shared.EventPublisher) {
	s.eventPublisher = publisher
}

func (s *ReceivingNoteService) publishDomainEvents(ctx context.Context, note *purchasing.ReceivingNote) {
	if s.eventPublisher == nil {
		return
	}
	events := note.GetDomainEvents()
	if len(events) == 0 {
		return
	}
	_ = s.eventPublisher.Publish(ctx, events...)
	note.ClearDomainEvents()
}

// GetByID retrieves a receiving note by ID
func (s *ReceivingNoteService) GetByID(ctx context.Context, tenantID, noteID uuid.UUID) (*ReceivingNoteResponse, error) {
	var response ReceivingNoteResponse
	err := s.txScope.Execute(ctx, func(repos TransactionalRepositories) error {
		note, err := repos.ReceivingNoteRepo().FindByIDForTenant(ctx, tenantID, noteID)
		if err != nil {
			return err
		}
		response = ToReceivingNoteResponse(note)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &response, nil
}

// List retrieves receiving notes for a tenant
func (s *ReceivingNoteService) List(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]ReceivingNoteResponse, error) {
	var responses []ReceivingNoteResponse
	err := s.txScope.Execute(ctx, func(repos TransactionalRepositories) error {
		notes, err := repos.ReceivingNoteRepo().FindAllForTenant(ctx, tenantID, filter)
		if err != nil {
			return err
		}
		responses = make([]ReceivingNoteResponse, 0, len(notes))
		for i := range notes {
			responses = append(responses, ToReceivingNoteResponse(&notes[i]))
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return responses, nil
}

// Create creates a draft receiving note with its lines
func (s *ReceivingNoteService) Create(ctx context.Context, tenantID, actorID uuid.UUID, req CreateReceivingNoteRequest) (*ReceivingNoteResponse, error) {
	note, err := purchasing.NewReceivingNote(tenantID, req.Number, req.SupplierID, req.WarehouseID, req.PurchaseOrderID, req.PurchaseInvoiceID)
	if err != nil {
		return nil, err
	}
	note.SetCreatedBy(actorID)

	for _, line := range req.Lines {
		if err := note.AddLine(line.ProductID, line.Quantity, line.PurchaseOrderLineID); err != nil {
			return nil, err
		}
	}

	err = s.txScope.Execute(ctx, func(repos TransactionalRepositories) error {
		return repos.ReceivingNoteRepo().Save(ctx, note)
	})
	if err != nil {
		return nil, err
	}

	response := ToReceivingNoteResponse(note)
	return &response, nil
}

// Confirm confirms a draft note and applies its stock side effects. The note
// is re-read inside the transaction so a concurrent confirm observes the
// already-confirmed state and fails.
func (s *ReceivingNoteService) Confirm(ctx context.Context, tenantID, actorID uuid.UUID, noteID uuid.UUID) (*ReceivingNoteResponse, error) {
	var note *purchasing.ReceivingNote
	err := s.txScope.Execute(ctx, func(repos TransactionalRepositories) error {
		var err error
		note, err = repos.ReceivingNoteRepo().FindByIDForTenant(ctx, tenantID, noteID)
		if err != nil {
			return err
		}
		if err := note.Confirm(); err != nil {
			return err
		}

		for i := range note.Lines {
			line := &note.Lines[i]
			movement, err := inventory.NewStockMovement(tenantID, note.WarehouseID, line.ProductID,
				line.Quantity, inventory.StockSourceReceivingNote, note.ID)
			if err != nil {
				return err
			}
			if err := repos.StockMovementRepo().Save(ctx, movement); err != nil {
				return err
			}
			if err := applyToWarehouseStock(ctx, repos.WarehouseStockRepo(), tenantID, note.WarehouseID, line.ProductID, line.Quantity); err != nil {
				return err
			}
			if line.PurchaseOrderLineID != nil {
				if err := registerReceipt(ctx, repos.PurchaseOrderRepo(), tenantID, *line.PurchaseOrderLineID, line, true); err != nil {
					return err
				}
			}
		}

		return repos.ReceivingNoteRepo().Save(ctx, note)
	})
	if err != nil {
		return nil, err
	}

	s.publishDomainEvents(ctx, note)
	response := ToReceivingNoteResponse(note)
	return &response, nil
}

// Cancel cancels a confirmed note, emitting the exact negative
// counter-movement for every original line.
func (s *ReceivingNoteService) Cancel(ctx context.Context, tenantID, actorID uuid.UUID, noteID uuid.UUID, reason string) (*ReceivingNoteResponse, error) {
	var note *purchasing.ReceivingNote
	err := s.txScope.Execute(ctx, func(repos TransactionalRepositories) error {
		var err error
		note, err = repos.ReceivingNoteRepo().FindByIDForTenant(ctx, tenantID, noteID)
		if err != nil {
			return err
		}
		if err := note.Cancel(reason); err != nil {
			return err
		}

		originals, err := repos.StockMovementRepo().FindBySource(ctx, tenantID, inventory.StockSourceReceivingNote, note.ID)
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

		for i := range note.Lines {
			line := &note.Lines[i]
			if line.PurchaseOrderLineID != nil {
				if err := registerReceipt(ctx, repos.PurchaseOrderRepo(), tenantID, *line.PurchaseOrderLineID, line, false); err != nil {
					return err
				}
			}
		}

		return repos.ReceivingNoteRepo().Save(ctx, note)
	})
	if err != nil {
		return nil, err
	}

	s.publishDomainEvents(ctx, note)
	response := ToReceivingNoteResponse(note)
	return &response, nil
}

// Delete removes a draft note. Confirmed notes must be cancelled instead.
func (s *ReceivingNoteService) Delete(ctx context.Context, tenantID, actorID uuid.UUID, noteID uuid.UUID) error {
	return s.txScope.Execute(ctx, func(repos TransactionalRepositories) error {
		note, err := repos.ReceivingNoteRepo().FindByIDForTenant(ctx, tenantID, noteID)
		if err != nil {
			return err
		}
		if err := note.EnsureDeletable(); err != nil {
			return err
		}
		return repos.ReceivingNoteRepo().Delete(ctx, tenantID, noteID)
	})
}

func applyToWarehouseStock(ctx context.Context, repo inventory.WarehouseStockRepository, tenantID, warehouseID, productID uuid.UUID, quantity decimal.Decimal) error {
	stock, err := repo.FindOrCreate(ctx, tenantID, warehouseID, productID)
	if err != nil {
		return err
	}
	if err := stock.Apply(quantity); err != nil {
		return err
	}
	return repo.SaveWithLock(ctx, stock)
}

func registerReceipt(ctx context.Context, repo purchasing.PurchaseOrderRepository, tenantID uuid.UUID, orderLineID uuid.UUID, line *purchasing.ReceivingNoteLine, receiving bool) error {
	orderLine, err := repo.FindLineByID(ctx, tenantID, orderLineID)
	if err != nil {
		return err
	}
	if receiving {
		err = orderLine.RegisterReceipt(line.Quantity)
	} else {
		err = orderLine.UnregisterReceipt(line.Quantity)
	}
	if err != nil {
		return err
	}
	return repo.SaveLine(ctx, orderLine)
}
