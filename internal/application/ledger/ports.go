package ledger

import (
	"context"

	"github.com/greenhollow/nursery-api/internal/domain/repository"
)

// TxRunner executes fn inside one database transaction, passing
// repositories bound to that transaction. Commit happens only when fn
// returns nil; any error rolls the whole unit back, so a reader can
// never observe a decremented quantity without its log entries.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		items repository.InventoryItemRepository,
		lifecycles repository.PlantLifecycleRepository,
		movements repository.InventoryMovementRepository,
		mortalities repository.MortalityLogRepository,
	) error) error
}
