package persistence

import (
	"context"
	"errors"

	"github.com/comercia/backend/internal/domain/inventory"
	"github.com/comercia/backend/internal/domain/shared"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormWarehouseStockRepository implements WarehouseStockRepository using GORM
type GormWarehouseStockRepository struct {
	db *gorm.DB
}

// NewGormWarehouseStockRepository creates a new GormWarehouseStockRepository
func NewGormWarehouseStockRepository(db *gorm.DB) *GormWarehouseStockRepository {
	return &GormWarehouseStockRepository{db: db}
}

// FindOrCreate returns the balance row for the warehouse/product pair,
// creating a zero row when none exists yet
func (r *GormWarehouseStockRepository) FindOrCreate(ctx context.Context, tenantID, warehouseID, productID uuid.UUID) (*inventory.WarehouseStock, error) {
	var stock inventory.WarehouseStock
	err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND warehouse_id = ? AND product_id = ?", tenantID, warehouseID, productID).
		First(&stock).Error
	if err == nil {
		return &stock, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	fresh, err := inventory.NewWarehouseStock(tenantID, warehouseID, productID)
	if err != nil {
		return nil, err
	}
	if err := r.db.WithContext(ctx).Create(fresh).Error; err != nil {
		// A concurrent creator may have won the race on the unique index
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			if retryErr := r.db.WithContext(ctx).
				Where("tenant_id = ? AND warehouse_id = ? AND product_id = ?", tenantID, warehouseID, productID).
				First(&stock).Error; retryErr == nil {
				return &stock, nil
			}
		}
		return nil, err
	}
	return fresh, nil
}

// FindByWarehouse returns all balance rows in a warehouse
func (r *GormWarehouseStockRepository) FindByWarehouse(ctx context.Context, tenantID, warehouseID uuid.UUID) ([]inventory.WarehouseStock, error) {
	var stocks []inventory.WarehouseStock
	if err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND warehouse_id = ?", tenantID, warehouseID).
		Find(&stocks).Error; err != nil {
		return nil, err
	}
	return stocks, nil
}

// SaveWithLock persists the balance guarded by its version. A stale version
// returns shared.ErrStaleVersion.
func (r *GormWarehouseStockRepository) SaveWithLock(ctx context.Context, stock *inventory.WarehouseStock) error {
	result := r.db.WithContext(ctx).
		Model(stock).
		Where("id = ? AND version = ?", stock.ID, stock.Version-1).
		Updates(map[string]interface{}{
			"quantity":   stock.Quantity,
			"version":    stock.Version,
			"updated_at": stock.UpdatedAt,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrStaleVersion
	}
	return nil
}

// Ensure GormWarehouseStockRepository implements WarehouseStockRepository
var _ inventory.WarehouseStockRepository = (*GormWarehouseStockRepository)(nil)
