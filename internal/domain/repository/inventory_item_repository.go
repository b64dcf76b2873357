package repository

import "github.com/greenhollow/nursery-api/internal/domain/entity"

// InventoryItemRepository is the persistence port for stock records.
// GetForUpdate exists so ledger operations can lock the row for the
// duration of their transaction (SELECT ... FOR UPDATE); plain Get is
// for read paths.
type InventoryItemRepository interface {
	Create(item *entity.InventoryItem) error
	GetByID(id string) (*entity.InventoryItem, error)
	GetForUpdate(id string) (*entity.InventoryItem, error)
	Update(item *entity.InventoryItem) error
	ListByProduct(productID string) ([]*entity.InventoryItem, error)
	ListLowStock(limit, offset int) ([]*entity.InventoryItem, error)
	Deactivate(id string) error
}

// PlantLifecycleRepository is the persistence port for the optional 1:1
// care record on living stock.
type PlantLifecycleRepository interface {
	Create(lc *entity.PlantLifecycle) error
	GetByItemID(itemID string) (*entity.PlantLifecycle, error)
	Update(lc *entity.PlantLifecycle) error
}
