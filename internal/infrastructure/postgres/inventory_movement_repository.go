package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/greenhollow/nursery-api/internal/domain/entity"
	"github.com/greenhollow/nursery-api/internal/domain/repository"
)

var _ repository.InventoryMovementRepository = (*InventoryMovementRepo)(nil)

const movementColumns = `
	id, event_id, item_id, type, quantity, unit_cost, total_cost, reason, notes, created_at, created_by`

// InventoryMovementRepo implements the append-only movement trail over
// PostgreSQL (usable with pool or tx). There is no UPDATE or DELETE
// statement in this file on purpose.
type InventoryMovementRepo struct {
	q Querier
}

// NewInventoryMovementRepository constructs the adapter. Pass pool or tx.
func NewInventoryMovementRepository(q Querier) *InventoryMovementRepo {
	return &InventoryMovementRepo{q: q}
}

// Create appends a movement entry.
func (r *InventoryMovementRepo) Create(movement *entity.InventoryMovement) error {
	if movement.ID == "" {
		movement.ID = uuid.New().String()
	}
	query := `
		INSERT INTO inventory_movements (` + movementColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`
	_, err := r.q.Exec(context.Background(), query,
		movement.ID, movement.EventID, movement.ItemID, movement.Type,
		movement.Quantity, movement.UnitCost, movement.TotalCost,
		nullable(movement.Reason), nullable(movement.Notes),
		movement.CreatedAt, nullable(movement.CreatedBy),
	)
	if err != nil {
		return fmt.Errorf("insert inventory movement: %w", err)
	}
	return nil
}

// GetByID fetches one movement.
func (r *InventoryMovementRepo) GetByID(id string) (*entity.InventoryMovement, error) {
	query := `SELECT ` + movementColumns + ` FROM inventory_movements WHERE id = $1`
	var m entity.InventoryMovement
	var reason, notes, createdBy *string
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&m.ID, &m.EventID, &m.ItemID, &m.Type, &m.Quantity, &m.UnitCost,
		&m.TotalCost, &reason, &notes, &m.CreatedAt, &createdBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get movement: %w", err)
	}
	fillMovementStrings(&m, reason, notes, createdBy)
	return &m, nil
}

// ListByItem lists an item's movements in a date range, newest first.
func (r *InventoryMovementRepo) ListByItem(itemID string, from, to *time.Time, limit, offset int) ([]*entity.InventoryMovement, error) {
	query := `SELECT ` + movementColumns + ` FROM inventory_movements WHERE item_id = $1`
	args := []any{itemID}
	pos := 2
	if from != nil {
		query += fmt.Sprintf(" AND created_at >= $%d", pos)
		args = append(args, *from)
		pos++
	}
	if to != nil {
		query += fmt.Sprintf(" AND created_at <= $%d", pos)
		args = append(args, *to)
		pos++
	}
	query += fmt.Sprintf(" ORDER BY created_at DESC LIMIT $%d OFFSET $%d", pos, pos+1)
	args = append(args, limit, offset)

	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list movements by item: %w", err)
	}
	defer rows.Close()

	var list []*entity.InventoryMovement
	for rows.Next() {
		var m entity.InventoryMovement
		var reason, notes, createdBy *string
		if err := rows.Scan(
			&m.ID, &m.EventID, &m.ItemID, &m.Type, &m.Quantity, &m.UnitCost,
			&m.TotalCost, &reason, &notes, &m.CreatedAt, &createdBy,
		); err != nil {
			return nil, fmt.Errorf("scan movement: %w", err)
		}
		fillMovementStrings(&m, reason, notes, createdBy)
		list = append(list, &m)
	}
	return list, rows.Err()
}

func fillMovementStrings(m *entity.InventoryMovement, reason, notes, createdBy *string) {
	if reason != nil {
		m.Reason = *reason
	}
	if notes != nil {
		m.Notes = *notes
	}
	if createdBy != nil {
		m.CreatedBy = *createdBy
	}
}
