package treasury

import (
	"context"

	"github.com/comercia/backend/internal/domain/shared"
	"github.com/comercia/backend/internal/domain/treasury"
	"github.com/google/uuid"
)

// BankAccountService handles bank account management
type BankAccountService struct {
	txScope TransactionScope
}

// NewBankAccountService creates a new BankAccountService
func NewBankAccountService(txScope TransactionScope) *BankAccountService {
	return &BankAccountService{txScope: txScope}
}

// GetByID retrieves a bank account by ID
func (s *BankAccountService) GetByID(ctx context.Context, tenantID, accountID uuid.UUID) (*BankAccountResponse, error) {
	var response BankAccountResponse
	err := s.txScope.Execute(ctx, func(repos TransactionalRepositories) error {
		account, err := repos.AccountRepo().FindByIDForTenant(ctx, tenantID, accountID)
		if err != nil {
			return err
		}
		response = ToBankAccountResponse(account)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &response, nil
}

// List retrieves all bank accounts for a tenant
func (s *BankAccountService) List(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]BankAccountResponse, error) {
	var responses []BankAccountResponse
	err := s.txScope.Execute(ctx, func(repos TransactionalRepositories) error {
		accounts, err := repos.AccountRepo().FindAllForTenant(ctx, tenantID, filter)
		if err != nil {
			return err
		}
		responses = make([]BankAccountResponse, 0, len(accounts))
		for i := range accounts {
			responses = append(responses, ToBankAccountResponse(&accounts[i]))
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return responses, nil
}

// ListMovements retrieves an account's movements
func (s *BankAccountService) ListMovements(ctx context.Context, tenantID, accountID uuid.UUID, filter shared.Filter) ([]BankMovementResponse, error) {
	var responses []BankMovementResponse
	err := s.txScope.Execute(ctx, func(repos TransactionalRepositories) error {
		if _, err := repos.AccountRepo().FindByIDForTenant(ctx, tenantID, accountID); err != nil {
			return err
		}
		movements, err := repos.MovementRepo().FindByAccount(ctx, tenantID, accountID, filter)
		if err != nil {
			return err
		}
		responses = make([]BankMovementResponse, 0, len(movements))
		for i := range movements {
			responses = append(responses, ToBankMovementResponse(&movements[i]))
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return responses, nil
}

// Create creates a bank account. The account number is unique per tenant;
// a duplicate fails with a conflict.
func (s *BankAccountService) Create(ctx context.Context, tenantID, actorID uuid.UUID, req CreateBankAccountRequest) (*BankAccountResponse, error) {
	account, err := treasury.NewBankAccount(tenantID, req.Number, req.Name, req.BankName)
	if err != nil {
		return nil, err
	}
	account.SetCreatedBy(actorID)

	err = s.txScope.Execute(ctx, func(repos TransactionalRepositories) error {
		existing, err := repos.AccountRepo().FindByNumber(ctx, tenantID, req.Number)
		if err != nil && !shared.IsNotFound(err) {
			return err
		}
		if existing != nil {
			return shared.NewConflictError("A bank account with this number already exists")
		}
		return repos.AccountRepo().Save(ctx, account)
	})
	if err != nil {
		return nil, err
	}

	response := ToBankAccountResponse(account)
	return &response, nil
}
