package partner

import (
	"context"

	"github.com/comercia/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// SupplierRepository persists suppliers
type SupplierRepository interface {
	FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*Supplier, error)
	FindByCode(ctx context.Context, tenantID uuid.UUID, code string) (*Supplier, error)
	FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]Supplier, error)
	CountForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) (int64, error)
	// Save persists the supplier; a duplicate code within the tenant returns
	// shared.ErrAlreadyExists.
	Save(ctx context.Context, supplier *Supplier) error
	Delete(ctx context.Context, tenantID, id uuid.UUID) error
}
