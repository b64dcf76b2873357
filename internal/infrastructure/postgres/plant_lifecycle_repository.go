package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/greenhollow/nursery-api/internal/domain/entity"
	"github.com/greenhollow/nursery-api/internal/domain/repository"
)

var _ repository.PlantLifecycleRepository = (*PlantLifecycleRepo)(nil)

// PlantLifecycleRepo implements PlantLifecycleRepository over PostgreSQL
// (usable with pool or tx).
type PlantLifecycleRepo struct {
	q Querier
}

// NewPlantLifecycleRepository constructs the adapter. Pass pool or tx.
func NewPlantLifecycleRepository(q Querier) *PlantLifecycleRepo {
	return &PlantLifecycleRepo{q: q}
}

// Create attaches a care record to a living-stock item.
func (r *PlantLifecycleRepo) Create(lc *entity.PlantLifecycle) error {
	query := `
		INSERT INTO plant_lifecycles (id, item_id, days_in_yard, health_status, is_alive, death_date, death_reason, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.q.Exec(context.Background(), query,
		lc.ID, lc.ItemID, lc.DaysInYard, lc.HealthStatus, lc.IsAlive,
		lc.DeathDate, nullable(lc.DeathReason), lc.CreatedAt, lc.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert plant lifecycle: %w", err)
	}
	return nil
}

// GetByItemID fetches the care record for an item; nil when the item has
// none (non-living stock).
func (r *PlantLifecycleRepo) GetByItemID(itemID string) (*entity.PlantLifecycle, error) {
	query := `
		SELECT id, item_id, days_in_yard, health_status, is_alive, death_date, death_reason, created_at, updated_at
		FROM plant_lifecycles WHERE item_id = $1`
	var lc entity.PlantLifecycle
	var deathReason *string
	err := r.q.QueryRow(context.Background(), query, itemID).Scan(
		&lc.ID, &lc.ItemID, &lc.DaysInYard, &lc.HealthStatus, &lc.IsAlive,
		&lc.DeathDate, &deathReason, &lc.CreatedAt, &lc.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get plant lifecycle: %w", err)
	}
	if deathReason != nil {
		lc.DeathReason = *deathReason
	}
	return &lc, nil
}

// Update persists lifecycle changes, including the death marking.
func (r *PlantLifecycleRepo) Update(lc *entity.PlantLifecycle) error {
	query := `
		UPDATE plant_lifecycles
		SET days_in_yard = $2, health_status = $3, is_alive = $4,
		    death_date = $5, death_reason = $6, updated_at = $7
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		lc.ID, lc.DaysInYard, lc.HealthStatus, lc.IsAlive,
		lc.DeathDate, nullable(lc.DeathReason), lc.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update plant lifecycle: %w", err)
	}
	return nil
}
