package http

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/greenhollow/nursery-api/internal/application/dto"
	"github.com/greenhollow/nursery-api/internal/application/reports"
	"github.com/greenhollow/nursery-api/internal/domain"
)

// ReportHandler serves the mortality report as JSON and as PDF.
type ReportHandler struct {
	uc *reports.UseCase
}

// NewReportHandler constructs the handler.
func NewReportHandler(uc *reports.UseCase) *ReportHandler {
	return &ReportHandler{uc: uc}
}

// reportRange reads from/to query params. Defaults to the trailing 90
// days when absent.
func reportRange(c *fiber.Ctx) (from, to time.Time, err error) {
	to = time.Now()
	from = to.AddDate(0, 0, -90)
	if raw := c.Query("from"); raw != "" {
		if from, err = time.Parse(time.RFC3339, raw); err != nil {
			return from, to, err
		}
	}
	if raw := c.Query("to"); raw != "" {
		if to, err = time.Parse(time.RFC3339, raw); err != nil {
			return from, to, err
		}
	}
	return from, to, nil
}

// Mortality godoc
// @Summary      Mortality report
// @Description  Losses aggregated by reason and season over a period.
// @Tags         reports
// @Security     Bearer
// @Produce      json
// @Param        from  query  string  false  "RFC3339 lower bound (default: 90 days ago)"
// @Param        to    query  string  false  "RFC3339 upper bound (default: now)"
// @Success      200   {object}  dto.MortalityReportResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/staff/reports/mortality [get]
func (h *ReportHandler) Mortality(c *fiber.Ctx) error {
	from, to, err := reportRange(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "from/to must be RFC3339"})
	}
	report, err := h.uc.MortalityReport(c.Context(), from, to)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "from must precede to"})
		}
		return internalError(c, err)
	}
	return c.JSON(report)
}

// MortalityPDF godoc
// @Summary      Mortality report as PDF
// @Tags         reports
// @Security     Bearer
// @Produce      application/pdf
// @Param        from  query  string  false  "RFC3339 lower bound (default: 90 days ago)"
// @Param        to    query  string  false  "RFC3339 upper bound (default: now)"
// @Success      200   {file}  binary
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/staff/reports/mortality/pdf [get]
func (h *ReportHandler) MortalityPDF(c *fiber.Ctx) error {
	from, to, err := reportRange(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "from/to must be RFC3339"})
	}
	pdfBytes, err := h.uc.MortalityReportPDF(c.Context(), from, to)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "from must precede to"})
		}
		return internalError(c, err)
	}
	c.Set("Content-Type", "application/pdf")
	c.Set("Content-Disposition", `attachment; filename="mortality-report.pdf"`)
	return c.Send(pdfBytes)
}
