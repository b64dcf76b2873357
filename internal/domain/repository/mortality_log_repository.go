package repository

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/greenhollow/nursery-api/internal/domain/entity"
)

// MortalitySummaryRow is one aggregate bucket of the mortality report.
type MortalitySummaryRow struct {
	Reason    string
	Season    string
	Events    int
	Quantity  decimal.Decimal
	TotalLoss decimal.Decimal
}

// MortalityLogRepository is the persistence port for mortality records.
// Append-only, like the movement trail.
type MortalityLogRepository interface {
	Create(log *entity.MortalityLog) error
	ListByItem(itemID string, limit, offset int) ([]*entity.MortalityLog, error)
	ListBetween(from, to time.Time, limit, offset int) ([]*entity.MortalityLog, error)
	Summarize(from, to time.Time) ([]MortalitySummaryRow, error)
}
