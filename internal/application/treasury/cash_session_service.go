package treasury

import (
	"context"
	"errors"

	"github.com/comercia/backend/internal/domain/shared"
	"github.com/comercia/backend/internal/domain/treasury"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CashSessionService handles the cash register session cycle. The at-most-one
// OPEN session invariant is enforced twice: an existence check inside the open
// transaction and the partial unique index underneath it.
type CashSessionService struct {
	txScope        TransactionScope
	eventPublisher shared.EventPublisher
}

// NewCashSessionService creates a new CashSessionService
func NewCashSessionService(txScope TransactionScope) *CashSessionService {
	return &CashSessionService{txScope: txScope}
}

// SetEventPublisher sets the event publisher for publishing domain events
func (s *CashSessionService) SetEventPublisher(publisher shared.EventPublisher) {
	s.eventPublisher = publisher
}

// GetCurrent retrieves the register's OPEN session
func (s *CashSessionService) GetCurrent(ctx context.Context, tenantID, cashRegisterID uuid.UUID) (*CashSessionResponse, error) {
	var response CashSessionResponse
	err := s.txScope.Execute(ctx, func(repos TransactionalRepositories) error {
		session, err := repos.SessionRepo().FindOpenByRegister(ctx, tenantID, cashRegisterID)
		if err != nil {
			return err
		}
		response = ToCashSessionResponse(session)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &response, nil
}

// Open opens a session for the register. A second OPEN session for the same
// register fails with a conflict.
func (s *CashSessionService) Open(ctx context.Context, tenantID, actorID uuid.UUID, cashRegisterID uuid.UUID, openingBalance decimal.Decimal) (*CashSessionResponse, error) {
	var session *treasury.CashSession
	err := s.txScope.Execute(ctx, func(repos TransactionalRepositories) error {
		_, err := repos.SessionRepo().FindOpenByRegister(ctx, tenantID, cashRegisterID)
		if err == nil {
			return shared.NewConflictError("An open session already exists for this cash register")
		}
		if !shared.IsNotFound(err) {
			return err
		}

		number, err := repos.SessionRepo().NextSessionNumber(ctx, tenantID, cashRegisterID)
		if err != nil {
			return err
		}
		session, err = treasury.NewCashSession(tenantID, cashRegisterID, number, openingBalance)
		if err != nil {
			return err
		}
		session.SetCreatedBy(actorID)

		if err := repos.SessionRepo().Save(ctx, session); err != nil {
			if errors.Is(err, shared.ErrAlreadyExists) {
				return shared.NewConflictError("An open session already exists for this cash register")
			}
			return err
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	response := ToCashSessionResponse(session)
	return &response, nil
}

// AdjustExpected moves the open session's expected balance by a signed delta
// as treasury receipts and payments hit the register.
func (s *CashSessionService) AdjustExpected(ctx context.Context, tenantID, actorID uuid.UUID, sessionID uuid.UUID, delta decimal.Decimal) (*CashSessionResponse, error) {
	var session *treasury.CashSession
	err := s.txScope.Execute(ctx, func(repos TransactionalRepositories) error {
		var err error
		session, err = repos.SessionRepo().FindByIDForTenant(ctx, tenantID, sessionID)
		if err != nil {
			return err
		}
		if err := session.AdjustExpected(delta); err != nil {
			return err
		}
		return repos.SessionRepo().Save(ctx, session)
	})
	if err != nil {
		return nil, err
	}

	response := ToCashSessionResponse(session)
	return &response, nil
}

// Close records the counted balance and closes the session
func (s *CashSessionService) Close(ctx context.Context, tenantID, actorID uuid.UUID, sessionID uuid.UUID, actualBalance decimal.Decimal, notes string) (*CashSessionResponse, error) {
	var session *treasury.CashSession
	err := s.txScope.Execute(ctx, func(repos TransactionalRepositories) error {
		var err error
		session, err = repos.SessionRepo().FindByIDForTenant(ctx, tenantID, sessionID)
		if err != nil {
			return err
		}
		if err := session.Close(actualBalance, notes); err != nil {
			return err
		}
		return repos.SessionRepo().Save(ctx, session)
	})
	if err != nil {
		return nil, err
	}

	if s.eventPublisher != nil {
		events := session.GetDomainEvents()
		if len(events) > 0 {
			_ = s.eventPublisher.Publish(ctx, events...)
			session.ClearDomainEvents()
		}
	}

	response := ToCashSessionResponse(session)
	return &response, nil
}
