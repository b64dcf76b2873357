// Package pdf renders the seasonal mortality report as a printable
// A4 document.
//
// Page layout:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Garden center name  │  Report period               │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLE: Reason | Season | Events | Units lost | Loss value   │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TOTALS: units lost / total loss value                       │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"

	"github.com/greenhollow/nursery-api/internal/application/dto"
	"github.com/greenhollow/nursery-api/internal/application/reports"
)

var (
	colorPrimary = &props.Color{Red: 34, Green: 102, Blue: 51}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
)

// MarotoMortalityPDF implements reports.MortalityPDFGenerator with
// Maroto v2.
type MarotoMortalityPDF struct {
	title string
}

var _ reports.MortalityPDFGenerator = (*MarotoMortalityPDF)(nil)

// NewMarotoMortalityPDF constructs the generator. title heads the
// document, typically the garden center name.
func NewMarotoMortalityPDF(title string) *MarotoMortalityPDF {
	return &MarotoMortalityPDF{title: title}
}

// GenerateMortalityPDF renders the report and returns its bytes.
func (g *MarotoMortalityPDF) GenerateMortalityPDF(_ context.Context, report *dto.MortalityReportResponse) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Plant Mortality Report", true).
		WithAuthor(g.title, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(g.title, report))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))

	m.AddRows(tableHeaderRow())
	for _, b := range report.Buckets {
		m.AddRows(bucketRow(b))
	}

	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(totalsRow(report))

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generate document: %w", err)
	}
	return doc.GetBytes(), nil
}

// headerRow: business name (left), report period (right).
func headerRow(title string, report *dto.MortalityReportResponse) core.Row {
	period := fmt.Sprintf("%s — %s",
		report.From.Format("02 Jan 2006"),
		report.To.Format("02 Jan 2006"),
	)
	return row.New(16).Add(
		col.New(7).Add(
			text.New(title, props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New("Plant Mortality Report", props.Text{
				Size: 9, Top: 9, Color: colorGray,
			}),
		),
		col.New(5).Add(
			text.New("PERIOD", props.Text{
				Style: fontstyle.Bold, Size: 8, Align: align.Right,
				Color: colorPrimary, Top: 1,
			}),
			text.New(period, props.Text{
				Size: 9, Align: align.Right, Top: 7,
			}),
		),
	)
}

func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a,
			Color: colorPrimary, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).Add(
		h("Reason", 4, align.Left),
		h("Season", 2, align.Left),
		h("Events", 2, align.Center),
		h("Units lost", 2, align.Right),
		h("Loss value", 2, align.Right),
	)
}

func bucketRow(b dto.MortalitySummaryBucket) core.Row {
	return row.New(7).Add(
		col.New(4).Add(text.New(b.Reason, props.Text{
			Size: 8, Align: align.Left, Top: 1, Left: 1,
		})),
		col.New(2).Add(text.New(b.Season, props.Text{
			Size: 8, Align: align.Left, Top: 1,
		})),
		col.New(2).Add(text.New(fmt.Sprintf("%d", b.Events), props.Text{
			Size: 8, Align: align.Center, Top: 1,
		})),
		col.New(2).Add(text.New(b.Quantity.StringFixed(0), props.Text{
			Size: 8, Align: align.Right, Top: 1, Right: 1,
		})),
		col.New(2).Add(text.New("$"+b.TotalLoss.StringFixed(2), props.Text{
			Size: 8, Align: align.Right, Top: 1, Right: 1,
		})),
	)
}

func totalsRow(report *dto.MortalityReportResponse) core.Row {
	label := func(s string) core.Component {
		return text.New(s, props.Text{
			Style: fontstyle.Bold, Size: 9, Align: align.Right, Right: 2,
		})
	}
	grand := func(s string) core.Component {
		return text.New(s, props.Text{
			Style: fontstyle.Bold, Size: 10, Align: align.Right,
			Color: colorPrimary, Right: 1, Top: 6,
		})
	}
	return row.New(16).Add(
		col.New(6),
		col.New(3).Add(
			label("Total units lost:"),
			text.New("TOTAL LOSS:", props.Text{
				Style: fontstyle.Bold, Size: 10, Align: align.Right,
				Color: colorPrimary, Right: 2, Top: 6,
			}),
		),
		col.New(3).Add(
			text.New(report.TotalUnits.StringFixed(0), props.Text{
				Size: 9, Align: align.Right, Right: 1,
			}),
			grand("$"+report.TotalLoss.StringFixed(2)),
		),
	)
}
