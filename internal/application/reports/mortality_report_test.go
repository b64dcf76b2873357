package reports_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/greenhollow/nursery-api/internal/application/dto"
	"github.com/greenhollow/nursery-api/internal/application/reports"
	"github.com/greenhollow/nursery-api/internal/domain"
	"github.com/greenhollow/nursery-api/internal/domain/entity"
	"github.com/greenhollow/nursery-api/internal/domain/repository"
)

type fakeMortalityRepo struct {
	rows []repository.MortalitySummaryRow
}

func (r *fakeMortalityRepo) Create(*entity.MortalityLog) error { return nil }
func (r *fakeMortalityRepo) ListByItem(string, int, int) ([]*entity.MortalityLog, error) {
	return nil, nil
}
func (r *fakeMortalityRepo) ListBetween(time.Time, time.Time, int, int) ([]*entity.MortalityLog, error) {
	return nil, nil
}
func (r *fakeMortalityRepo) Summarize(time.Time, time.Time) ([]repository.MortalitySummaryRow, error) {
	return r.rows, nil
}

type fakePDF struct{ called bool }

func (g *fakePDF) GenerateMortalityPDF(_ context.Context, report *dto.MortalityReportResponse) ([]byte, error) {
	g.called = true
	return []byte("%PDF-"), nil
}

func TestMortalityReport_Totals(t *testing.T) {
	repo := &fakeMortalityRepo{rows: []repository.MortalitySummaryRow{
		{Reason: entity.MortalityFrostDamage, Season: entity.SeasonWinter, Events: 2,
			Quantity: decimal.NewFromInt(12), TotalLoss: decimal.RequireFromString("54.00")},
		{Reason: entity.MortalityRootRot, Season: entity.SeasonSpring, Events: 1,
			Quantity: decimal.NewFromInt(3), TotalLoss: decimal.RequireFromString("13.50")},
	}}
	uc := reports.New(repo, &fakePDF{})

	from := time.Date(2025, time.January, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2025, time.December, 31, 0, 0, 0, 0, time.UTC)

	report, err := uc.MortalityReport(context.Background(), from, to)
	require.NoError(t, err)

	assert.Len(t, report.Buckets, 2)
	assert.True(t, report.TotalLoss.Equal(decimal.RequireFromString("67.50")), "got %s", report.TotalLoss)
	assert.True(t, report.TotalUnits.Equal(decimal.NewFromInt(15)))
}

func TestMortalityReport_InvalidRange(t *testing.T) {
	uc := reports.New(&fakeMortalityRepo{}, &fakePDF{})
	now := time.Now()
	_, err := uc.MortalityReport(context.Background(), now, now)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestMortalityReportPDF_DelegatesToGenerator(t *testing.T) {
	pdf := &fakePDF{}
	uc := reports.New(&fakeMortalityRepo{}, pdf)

	from := time.Date(2025, time.January, 1, 0, 0, 0, 0, time.UTC)
	got, err := uc.MortalityReportPDF(context.Background(), from, from.AddDate(1, 0, 0))
	require.NoError(t, err)
	assert.True(t, pdf.called)
	assert.NotEmpty(t, got)
}
