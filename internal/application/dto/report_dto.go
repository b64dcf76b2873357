package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// MortalitySummaryBucket is one reason/season aggregate in the report.
type MortalitySummaryBucket struct {
	Reason    string          `json:"reason"`
	Season    string          `json:"season"`
	Events    int             `json:"events"`
	Quantity  decimal.Decimal `json:"quantity"`
	TotalLoss decimal.Decimal `json:"total_loss"`
}

// MortalityReportResponse is the aggregate mortality report for a period.
type MortalityReportResponse struct {
	From       time.Time                `json:"from"`
	To         time.Time                `json:"to"`
	TotalLoss  decimal.Decimal          `json:"total_loss"`
	TotalUnits decimal.Decimal          `json:"total_units"`
	Buckets    []MortalitySummaryBucket `json:"buckets"`
}
