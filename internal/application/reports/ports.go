package reports

import (
	"context"

	"github.com/greenhollow/nursery-api/internal/application/dto"
)

// MortalityPDFGenerator renders the mortality report. Implemented with
// Maroto in internal/infrastructure/pdf.
type MortalityPDFGenerator interface {
	GenerateMortalityPDF(ctx context.Context, report *dto.MortalityReportResponse) ([]byte, error)
}
