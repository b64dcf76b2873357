package repository

import (
	"time"

	"github.com/greenhollow/nursery-api/internal/domain/entity"
)

// InventoryMovementRepository is the persistence port for the movement
// audit trail. Append-only: there is deliberately no update or delete.
type InventoryMovementRepository interface {
	Create(movement *entity.InventoryMovement) error
	GetByID(id string) (*entity.InventoryMovement, error)
	ListByItem(itemID string, from, to *time.Time, limit, offset int) ([]*entity.InventoryMovement, error)
}
