package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/greenhollow/nursery-api/internal/application/ledger"
	"github.com/greenhollow/nursery-api/internal/domain/repository"
)

var _ ledger.TxRunner = (*TxRunner)(nil)

// TxRunner executes ledger callbacks inside one PostgreSQL transaction.
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner constructs the runner over the pool.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

// Run begins a transaction, executes fn with repositories bound to that
// transaction, and commits on nil or rolls back on error. Row locks
// taken by GetForUpdate inside fn hold until commit/rollback, which is
// what serializes concurrent mutations of the same item.
func (r *TxRunner) Run(ctx context.Context, fn func(
	items repository.InventoryItemRepository,
	lifecycles repository.PlantLifecycleRepository,
	movements repository.InventoryMovementRepository,
	mortalities repository.MortalityLogRepository,
) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	err = fn(
		NewInventoryItemRepository(tx),
		NewPlantLifecycleRepository(tx),
		NewInventoryMovementRepository(tx),
		NewMortalityLogRepository(tx),
	)
	if err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}
