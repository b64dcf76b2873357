package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/greenhollow/nursery-api/internal/domain/entity"
	"github.com/greenhollow/nursery-api/internal/domain/repository"
)

var _ repository.MortalityLogRepository = (*MortalityLogRepo)(nil)

const mortalityColumns = `
	id, event_id, item_id, product_id, reason, quantity, unit_cost, total_loss,
	season, days_in_inventory, notes, created_at, created_by`

// MortalityLogRepo implements the mortality record store. Append-only.
type MortalityLogRepo struct {
	q Querier
}

// NewMortalityLogRepository constructs the adapter. Pass pool or tx.
func NewMortalityLogRepository(q Querier) *MortalityLogRepo {
	return &MortalityLogRepo{q: q}
}

// Create appends a mortality record.
func (r *MortalityLogRepo) Create(log *entity.MortalityLog) error {
	if log.ID == "" {
		log.ID = uuid.New().String()
	}
	query := `
		INSERT INTO mortality_logs (` + mortalityColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`
	_, err := r.q.Exec(context.Background(), query,
		log.ID, log.EventID, log.ItemID, log.ProductID, log.Reason,
		log.Quantity, log.UnitCost, log.TotalLoss, log.Season,
		log.DaysInInventory, nullable(log.Notes), log.CreatedAt,
		nullable(log.CreatedBy),
	)
	if err != nil {
		return fmt.Errorf("insert mortality log: %w", err)
	}
	return nil
}

// ListByItem lists an item's mortality records, newest first.
func (r *MortalityLogRepo) ListByItem(itemID string, limit, offset int) ([]*entity.MortalityLog, error) {
	query := `
		SELECT ` + mortalityColumns + `
		FROM mortality_logs
		WHERE item_id = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(context.Background(), query, itemID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list mortality by item: %w", err)
	}
	defer rows.Close()
	return scanMortalityRows(rows)
}

// ListBetween lists mortality records in a date range, newest first.
func (r *MortalityLogRepo) ListBetween(from, to time.Time, limit, offset int) ([]*entity.MortalityLog, error) {
	query := `
		SELECT ` + mortalityColumns + `
		FROM mortality_logs
		WHERE created_at >= $1 AND created_at <= $2
		ORDER BY created_at DESC
		LIMIT $3 OFFSET $4`
	rows, err := r.q.Query(context.Background(), query, from, to, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list mortality between: %w", err)
	}
	defer rows.Close()
	return scanMortalityRows(rows)
}

// Summarize aggregates losses in a date range by reason and season.
func (r *MortalityLogRepo) Summarize(from, to time.Time) ([]repository.MortalitySummaryRow, error) {
	query := `
		SELECT reason, season, COUNT(*), COALESCE(SUM(quantity), 0), COALESCE(SUM(total_loss), 0)
		FROM mortality_logs
		WHERE created_at >= $1 AND created_at <= $2
		GROUP BY reason, season
		ORDER BY SUM(total_loss) DESC, reason, season`
	rows, err := r.q.Query(context.Background(), query, from, to)
	if err != nil {
		return nil, fmt.Errorf("summarize mortality: %w", err)
	}
	defer rows.Close()

	var out []repository.MortalitySummaryRow
	for rows.Next() {
		var row repository.MortalitySummaryRow
		if err := rows.Scan(&row.Reason, &row.Season, &row.Events, &row.Quantity, &row.TotalLoss); err != nil {
			return nil, fmt.Errorf("scan mortality summary: %w", err)
		}
		out = append(out, row)
	}
	return out, rows.Err()
}

func scanMortalityRows(rows pgx.Rows) ([]*entity.MortalityLog, error) {
	var list []*entity.MortalityLog
	for rows.Next() {
		var m entity.MortalityLog
		var notes, createdBy *string
		if err := rows.Scan(
			&m.ID, &m.EventID, &m.ItemID, &m.ProductID, &m.Reason,
			&m.Quantity, &m.UnitCost, &m.TotalLoss, &m.Season,
			&m.DaysInInventory, &notes, &m.CreatedAt, &createdBy,
		); err != nil {
			return nil, fmt.Errorf("scan mortality log: %w", err)
		}
		if notes != nil {
			m.Notes = *notes
		}
		if createdBy != nil {
			m.CreatedBy = *createdBy
		}
		list = append(list, &m)
	}
	return list, rows.Err()
}
