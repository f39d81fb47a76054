package treasury

import (
	"context"
	"fmt"
	"time"

	"github.com/comercia/backend/internal/domain/shared"
	"github.com/comercia/backend/internal/domain/treasury"
	"github.com/google/uuid"
)

// CheckService drives the check lifecycle. Every transition that touches the
// bank ledger writes the check, the movement and the account balance in one
// transaction.
type CheckService struct {
	txScope        TransactionScope
	eventPublisher shared.EventPublisher
}

// NewCheckService creates a new CheckService
func NewCheckService(txScope TransactionScope) *CheckService {
	return &CheckService{txScope: txScope}
}

// SetEventPublisher sets the event publisher for publishing domain events
func (s *CheckService) SetEventPublisher(publisher shared.EventPublisher) {
	s.eventPublisher = publisher
}

func (s *CheckService) publishDomainEvents(ctx context.Context, check *treasury.Check) {
	if s.eventPublisher == nil {
		return
	}
	events := check.GetDomainEvents()
	if len(events) == 0 {
		return
	}
	_ = s.eventPublisher.Publish(ctx, events...)
	check.ClearDomainEvents()
}

// GetByID retrieves a check by ID
func (s *CheckService) GetByID(ctx context.Context, tenantID, checkID uuid.UUID) (*CheckResponse, error) {
	var response CheckResponse
	err := s.txScope.Execute(ctx, func(repos TransactionalRepositories) error {
		check, err := repos.CheckRepo().FindByIDForTenant(ctx, tenantID, checkID)
		if err != nil {
			return err
		}
		response = ToCheckResponse(check)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &response, nil
}

// List retrieves checks for a tenant
func (s *CheckService) List(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]CheckResponse, error) {
	var responses []CheckResponse
	err := s.txScope.Execute(ctx, func(repos TransactionalRepositories) error {
		checks, err := repos.CheckRepo().FindAllForTenant(ctx, tenantID, filter)
		if err != nil {
			return err
		}
		responses = make([]CheckResponse, 0, len(checks))
		for i := range checks {
			responses = append(responses, ToCheckResponse(&checks[i]))
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return responses, nil
}

// Create creates a check in portfolio
func (s *CheckService) Create(ctx context.Context, tenantID, actorID uuid.UUID, req CreateCheckRequest) (*CheckResponse, error) {
	check, err := treasury.NewCheck(tenantID, treasury.CheckType(req.Type), req.CheckNumber, req.Amount, req.IssueDate, req.DueDate)
	if err != nil {
		return nil, err
	}
	check.SetCreatedBy(actorID)

	err = s.txScope.Execute(ctx, func(repos TransactionalRepositories) error {
		return repos.CheckRepo().Save(ctx, check)
	})
	if err != nil {
		return nil, err
	}

	response := ToCheckResponse(check)
	return &response, nil
}

// Deposit deposits a portfolio check against a bank account, creating a
// pending movement whose amount immediately counts in the balance.
func (s *CheckService) Deposit(ctx context.Context, tenantID, actorID uuid.UUID, checkID, accountID uuid.UUID) (*CheckResponse, error) {
	var check *treasury.Check
	err := s.txScope.Execute(ctx, func(repos TransactionalRepositories) error {
		var err error
		check, err = repos.CheckRepo().FindByIDForTenant(ctx, tenantID, checkID)
		if err != nil {
			return err
		}
		account, err := repos.AccountRepo().FindByIDForTenant(ctx, tenantID, accountID)
		if err != nil {
			return err
		}

		movementType := treasury.BankMovementTypeDeposit
		if check.Type == treasury.CheckTypeOwn {
			movementType = treasury.BankMovementTypeCheckDebit
		}
		sourceID := check.ID
		movement, err := treasury.NewBankMovement(tenantID, account.ID, movementType,
			check.Amount, time.Now(),
			fmt.Sprintf("Check %s deposit", check.CheckNumber),
			treasury.MovementSourceCheck, &sourceID)
		if err != nil {
			return err
		}
		movement.MarkPending()

		if err := check.Deposit(account.ID, movement.ID); err != nil {
			return err
		}
		if err := repos.MovementRepo().Save(ctx, movement); err != nil {
			return err
		}
		if err := account.ApplyMovement(movement); err != nil {
			return err
		}
		if err := repos.AccountRepo().SaveWithLock(ctx, account); err != nil {
			return err
		}
		return repos.CheckRepo().Save(ctx, check)
	})
	if err != nil {
		return nil, err
	}

	s.publishDomainEvents(ctx, check)
	response := ToCheckResponse(check)
	return &response, nil
}

// Clear finalizes a deposited check's pending movement. The balance already
// reflects the amount; only the pending flag changes.
func (s *CheckService) Clear(ctx context.Context, tenantID, actorID uuid.UUID, checkID uuid.UUID) (*CheckResponse, error) {
	var check *treasury.Check
	err := s.txScope.Execute(ctx, func(repos TransactionalRepositories) error {
		var err error
		check, err = repos.CheckRepo().FindByIDForTenant(ctx, tenantID, checkID)
		if err != nil {
			return err
		}

		movementID := check.MovementToDelete()
		if err := check.Clear(); err != nil {
			return err
		}
		if movementID != nil {
			movement, err := repos.MovementRepo().FindByIDForTenant(ctx, tenantID, *movementID)
			if err != nil {
				return err
			}
			movement.Finalize()
			if err := repos.MovementRepo().Save(ctx, movement); err != nil {
				return err
			}
		}
		return repos.CheckRepo().Save(ctx, check)
	})
	if err != nil {
		return nil, err
	}

	s.publishDomainEvents(ctx, check)
	response := ToCheckResponse(check)
	return &response, nil
}

// Reject bounces a deposited check: the pending movement is deleted, the
// balance reverts and the rejection reason is recorded.
func (s *CheckService) Reject(ctx context.Context, tenantID, actorID uuid.UUID, checkID uuid.UUID, reason string) (*CheckResponse, error) {
	var check *treasury.Check
	err := s.txScope.Execute(ctx, func(repos TransactionalRepositories) error {
		var err error
		check, err = repos.CheckRepo().FindByIDForTenant(ctx, tenantID, checkID)
		if err != nil {
			return err
		}

		movementID := check.MovementToDelete()
		if err := check.Reject(reason); err != nil {
			return err
		}
		if err := s.removeMovement(ctx, repos, tenantID, movementID); err != nil {
			return err
		}
		return repos.CheckRepo().Save(ctx, check)
	})
	if err != nil {
		return nil, err
	}

	s.publishDomainEvents(ctx, check)
	response := ToCheckResponse(check)
	return &response, nil
}

// Endorse hands a third-party portfolio check over to an endorsee
func (s *CheckService) Endorse(ctx context.Context, tenantID, actorID uuid.UUID, checkID uuid.UUID, endorseeName string) (*CheckResponse, error) {
	return s.simpleTransition(ctx, tenantID, checkID, func(check *treasury.Check) error {
		return check.Endorse(endorseeName)
	})
}

// Deliver hands an own portfolio check to a recipient as payment
func (s *CheckService) Deliver(ctx context.Context, tenantID, actorID uuid.UUID, checkID uuid.UUID, recipientName string) (*CheckResponse, error) {
	return s.simpleTransition(ctx, tenantID, checkID, func(check *treasury.Check) error {
		return check.Deliver(recipientName)
	})
}

// Cash marks a third-party portfolio check as cashed over the counter
func (s *CheckService) Cash(ctx context.Context, tenantID, actorID uuid.UUID, checkID uuid.UUID) (*CheckResponse, error) {
	return s.simpleTransition(ctx, tenantID, checkID, func(check *treasury.Check) error {
		return check.Cash()
	})
}

// Void annuls a check; an existing bank movement is deleted and the balance
// reverted.
func (s *CheckService) Void(ctx context.Context, tenantID, actorID uuid.UUID, checkID uuid.UUID) (*CheckResponse, error) {
	var check *treasury.Check
	err := s.txScope.Execute(ctx, func(repos TransactionalRepositories) error {
		var err error
		check, err = repos.CheckRepo().FindByIDForTenant(ctx, tenantID, checkID)
		if err != nil {
			return err
		}

		movementID := check.MovementToDelete()
		if err := check.Void(); err != nil {
			return err
		}
		if err := s.removeMovement(ctx, repos, tenantID, movementID); err != nil {
			return err
		}
		return repos.CheckRepo().Save(ctx, check)
	})
	if err != nil {
		return nil, err
	}

	response := ToCheckResponse(check)
	return &response, nil
}

// Delete removes a check that never reached the bank ledger
func (s *CheckService) Delete(ctx context.Context, tenantID, actorID uuid.UUID, checkID uuid.UUID) error {
	return s.txScope.Execute(ctx, func(repos TransactionalRepositories) error {
		check, err := repos.CheckRepo().FindByIDForTenant(ctx, tenantID, checkID)
		if err != nil {
			return err
		}
		if err := check.EnsureDeletable(); err != nil {
			return err
		}
		return repos.CheckRepo().Delete(ctx, tenantID, checkID)
	})
}

func (s *CheckService) simpleTransition(ctx context.Context, tenantID, checkID uuid.UUID, transition func(*treasury.Check) error) (*CheckResponse, error) {
	var check *treasury.Check
	err := s.txScope.Execute(ctx, func(repos TransactionalRepositories) error {
		var err error
		check, err = repos.CheckRepo().FindByIDForTenant(ctx, tenantID, checkID)
		if err != nil {
			return err
		}
		if err := transition(check); err != nil {
			return err
		}
		return repos.CheckRepo().Save(ctx, check)
	})
	if err != nil {
		return nil, err
	}

	response := ToCheckResponse(check)
	return &response, nil
}

func (s *CheckService) removeMovement(ctx context.Context, repos TransactionalRepositories, tenantID uuid.UUID, movementID *uuid.UUID) error {
	if movementID == nil {
		return nil
	}
	movement, err := repos.MovementRepo().FindByIDForTenant(ctx, tenantID, *movementID)
	if err != nil {
		return err
	}
	account, err := repos.AccountRepo().FindByIDForTenant(ctx, tenantID, movement.BankAccountID)
	if err != nil {
		return err
	}
	if err := account.RevertMovement(movement); err != nil {
		return err
	}
	if err := repos.AccountRepo().SaveWithLock(ctx, account); err != nil {
		return err
	}
	return repos.MovementRepo().Delete(ctx, tenantID, movement.ID)
}
