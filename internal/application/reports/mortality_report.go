// Package reports aggregates the mortality audit trail into financial
// and care-quality reporting.
package reports

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/greenhollow/nursery-api/internal/application/dto"
	"github.com/greenhollow/nursery-api/internal/domain"
	"github.com/greenhollow/nursery-api/internal/domain/repository"
)

// UseCase builds mortality reports.
type UseCase struct {
	mortality repository.MortalityLogRepository
	pdf       MortalityPDFGenerator
}

// New constructs the reports use case.
func New(mortality repository.MortalityLogRepository, pdf MortalityPDFGenerator) *UseCase {
	return &UseCase{mortality: mortality, pdf: pdf}
}

// MortalityReport aggregates losses by reason and season over [from, to].
func (uc *UseCase) MortalityReport(ctx context.Context, from, to time.Time) (*dto.MortalityReportResponse, error) {
	if !from.Before(to) {
		return nil, domain.ErrInvalidInput
	}
	rows, err := uc.mortality.Summarize(from, to)
	if err != nil {
		return nil, err
	}

	report := &dto.MortalityReportResponse{
		From:       from,
		To:         to,
		TotalLoss:  decimal.Zero,
		TotalUnits: decimal.Zero,
	}
	for _, row := range rows {
		report.Buckets = append(report.Buckets, dto.MortalitySummaryBucket{
			Reason:    row.Reason,
			Season:    row.Season,
			Events:    row.Events,
			Quantity:  row.Quantity,
			TotalLoss: row.TotalLoss,
		})
		report.TotalLoss = report.TotalLoss.Add(row.TotalLoss)
		report.TotalUnits = report.TotalUnits.Add(row.Quantity)
	}
	return report, nil
}

// MortalityReportPDF renders the aggregate report as a PDF document.
func (uc *UseCase) MortalityReportPDF(ctx context.Context, from, to time.Time) ([]byte, error) {
	report, err := uc.MortalityReport(ctx, from, to)
	if err != nil {
		return nil, err
	}
	return uc.pdf.GenerateMortalityPDF(ctx, report)
}
