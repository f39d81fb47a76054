package treasury

import (
	"context"
	"time"

	"github.com/comercia/backend/internal/domain/shared"
	"github.com/comercia/backend/internal/domain/treasury"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// importDateFormats are the accepted statement date layouts, ISO first and
// the Argentine day-first form second.
var importDateFormats = []string{"2006-01-02", "02/01/2006"}

// BankImportService bulk-imports statement rows against one bank account.
// Validation is exhaustive and the application is all-or-nothing: a single
// bad row rejects the whole batch with every row error listed, and a valid
// batch writes all movements plus the balance delta in one transaction.
type BankImportService struct {
	txScope TransactionScope
}

// NewBankImportService creates a new BankImportService
func NewBankImportService(txScope TransactionScope) *BankImportService {
	return &BankImportService{txScope: txScope}
}

// parsedRow is a validated row ready to become a movement
type parsedRow struct {
	date         time.Time
	movementType treasury.BankMovementType
	row          ImportRow
}

// ValidateRows checks every row independently and returns all errors found
func (s *BankImportService) ValidateRows(rows []ImportRow) []ImportRowError {
	_, rowErrors := s.parseRows(rows)
	return rowErrors
}

func (s *BankImportService) parseRows(rows []ImportRow) ([]parsedRow, []ImportRowError) {
	parsed := make([]parsedRow, 0, len(rows))
	var rowErrors []ImportRowError

	for i, row := range rows {
		rowNumber := i + 1

		date, ok := parseImportDate(row.Date)
		if !ok {
			rowErrors = append(rowErrors, ImportRowError{
				Row: rowNumber, Field: "date",
				Message: "date must be in YYYY-MM-DD or DD/MM/YYYY format",
			})
		}

		movementType := treasury.BankMovementType(row.Type)
		if !movementType.IsValid() {
			rowErrors = append(rowErrors, ImportRowError{
				Row: rowNumber, Field: "type",
				Message: "unknown movement type",
			})
		}

		if row.Amount.LessThanOrEqual(decimal.Zero) {
			rowErrors = append(rowErrors, ImportRowError{
				Row: rowNumber, Field: "amount",
				Message: "amount must be a positive number",
			})
		}

		if row.Description == "" || len(row.Description) > 500 {
			rowErrors = append(rowErrors, ImportRowError{
				Row: rowNumber, Field: "description",
				Message: "description must be between 1 and 500 characters",
			})
		}

		parsed = append(parsed, parsedRow{date: date, movementType: movementType, row: row})
	}

	if len(rowErrors) > 0 {
		return nil, rowErrors
	}
	return parsed, nil
}

// Import validates the batch and, when every row passes, applies all rows
// and the account balance delta atomically.
func (s *BankImportService) Import(ctx context.Context, tenantID, actorID uuid.UUID, accountID uuid.UUID, rows []ImportRow) (*ImportResult, error) {
	if len(rows) == 0 {
		return nil, shared.NewValidationError("Import batch cannot be empty")
	}

	parsed, rowErrors := s.parseRows(rows)
	if len(rowErrors) > 0 {
		return &ImportResult{Success: false, Imported: 0, Errors: rowErrors}, nil
	}

	err := s.txScope.Execute(ctx, func(repos TransactionalRepositories) error {
		account, err := repos.AccountRepo().FindByIDForTenant(ctx, tenantID, accountID)
		if err != nil {
			return err
		}

		delta := decimal.Zero
		for _, p := range parsed {
			movement, err := treasury.NewBankMovement(tenantID, account.ID, p.movementType,
				p.row.Amount, p.date, p.row.Description, treasury.MovementSourceImport, nil)
			if err != nil {
				return err
			}
			movement.Reference = p.row.Reference
			movement.StatementNumber = p.row.StatementNumber

			if err := repos.MovementRepo().Save(ctx, movement); err != nil {
				return err
			}
			delta = delta.Add(movement.SignedAmount())
		}

		account.ApplyDelta(delta)
		return repos.AccountRepo().SaveWithLock(ctx, account)
	})
	if err != nil {
		return nil, err
	}

	return &ImportResult{Success: true, Imported: len(parsed)}, nil
}

func parseImportDate(value string) (time.Time, bool) {
	for _, layout := range importDateFormats {
		if t, err := time.Parse(layout, value); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}
