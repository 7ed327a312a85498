// Package pdf genera el reporte de una ejecución de validación masiva.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: título + RUC consultante │ ID de ejecución + fecha  │
//	│  ─────────────────────────────────────────────────────────  │
//	│  RESUMEN: pasadas / verificadas / rechazadas / vacías        │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: Fila | Comprobante | Estado CP | RUC | Domicilio | Obs│
//	│  ─────────────────────────────────────────────────────────  │
//	│  FOOTER: archivo procesado                                   │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

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

	"github.com/jhoicas/validador-cpe/internal/application/validation"
	"github.com/jhoicas/validador-cpe/internal/domain/entity"
)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorDanger  = &props.Color{Red: 170, Green: 30, Blue: 30}
)

// maxObservationChars recorte de la columna de observaciones en la tabla.
const maxObservationChars = 70

// Verificar en tiempo de compilación que RunReportGenerator implementa el puerto.
var _ validation.ReportGenerator = (*RunReportGenerator)(nil)

// RunReportGenerator implementa validation.ReportGenerator usando Maroto v2.
type RunReportGenerator struct{}

// NewRunReportGenerator construye el generador.
func NewRunReportGenerator() *RunReportGenerator { return &RunReportGenerator{} }

// GenerateRunReport genera el PDF de la última pasada y devuelve sus bytes.
// Las filas vacías no se listan.
func (g *RunReportGenerator) GenerateRunReport(
	_ context.Context,
	summary *validation.RunSummary,
	meta validation.ReportMeta,
) ([]byte, error) {
	if summary == nil || summary.Last == nil {
		return nil, fmt.Errorf("pdf: ejecución sin pasadas")
	}

	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 8}).
		WithTitle("Validación masiva de comprobantes SUNAT", true).
		WithAuthor(meta.ConsultantRUC, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(meta))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(summaryRow(summary))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	m.AddRows(tableHeaderRow())
	m.AddRows(tableDetailRows(summary.Last.Rows)...)

	m.AddRows(line.NewRow(3))
	m.AddRows(line.NewRow(1, props.Line{Color: colorGray, Thickness: 0.3}))
	m.AddRows(footerRow(meta))

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

func headerRow(meta validation.ReportMeta) core.Row {
	return row.New(18).Add(
		col.New(7).Add(
			text.New("VALIDACIÓN MASIVA DE CPE", props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New("RUC consultante: "+meta.ConsultantRUC, props.Text{
				Size: 9, Top: 9, Color: colorGray,
			}),
		),
		col.New(5).Add(
			text.New("EJECUCIÓN", props.Text{
				Style: fontstyle.Bold, Size: 8, Align: align.Right,
				Color: colorPrimary, Top: 1,
			}),
			text.New(nonEmpty(meta.RunID, "-"), props.Text{
				Size: 7, Align: align.Right, Top: 7,
			}),
			text.New("Fecha: "+meta.GeneratedAt.Format("02/01/2006 15:04"), props.Text{
				Size: 8, Align: align.Right, Top: 13, Color: colorGray,
			}),
		),
	)
}

func summaryRow(summary *validation.RunSummary) core.Row {
	counts := summary.Last.Counts
	cell := func(label string, n int) core.Col {
		return col.New(3).Add(
			text.New(label, props.Text{
				Style: fontstyle.Bold, Size: 7, Align: align.Center, Color: colorPrimary, Top: 1,
			}),
			text.New(fmt.Sprintf("%d", n), props.Text{
				Style: fontstyle.Bold, Size: 12, Align: align.Center, Top: 5,
			}),
		)
	}
	return row.New(14).Add(
		cell("PASADAS", summary.Passes),
		cell("VERIFICADAS", counts[entity.OutcomeVerified]),
		cell("RECHAZADAS", counts[entity.OutcomeRejected]),
		cell("VACÍAS", counts[entity.OutcomeBlank]),
	)
}

func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 7, Align: a,
			Color: colorPrimary, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).Add(
		h("Fila", 1, align.Center),
		h("Comprobante", 2, align.Left),
		h("Estado CP", 2, align.Center),
		h("Estado RUC", 2, align.Center),
		h("Domicilio", 1, align.Center),
		h("Observaciones", 4, align.Left),
	)
}

func tableDetailRows(reports []validation.RowReport) []core.Row {
	result := make([]core.Row, 0, len(reports))
	for _, r := range reports {
		if r.Outcome == entity.OutcomeBlank {
			continue
		}
		var statusColor *props.Color
		if r.Outcome != entity.OutcomeVerified {
			statusColor = colorDanger
		}
		result = append(result, row.New(7).Add(
			col.New(1).Add(text.New(
				fmt.Sprintf("%d", r.Row.Index),
				props.Text{Size: 7, Align: align.Center, Top: 1},
			)),
			col.New(2).Add(text.New(
				comprobanteLabel(r.Row),
				props.Text{Size: 7, Align: align.Left, Top: 1, Left: 1},
			)),
			col.New(2).Add(text.New(
				r.Result.Status,
				props.Text{Style: fontstyle.Bold, Size: 7, Align: align.Center, Top: 1, Color: statusColor},
			)),
			col.New(2).Add(text.New(
				r.Result.RUCStatus,
				props.Text{Size: 7, Align: align.Center, Top: 1},
			)),
			col.New(1).Add(text.New(
				r.Result.Domicile,
				props.Text{Size: 7, Align: align.Center, Top: 1},
			)),
			col.New(4).Add(text.New(
				truncate(r.Result.Observations, maxObservationChars),
				props.Text{Size: 6.5, Align: align.Left, Top: 1, Left: 1, Color: colorGray},
			)),
		))
	}
	return result
}

func footerRow(meta validation.ReportMeta) core.Row {
	return row.New(8).Add(col.New(12).Add(
		text.New("Archivo procesado: "+filepath.Base(meta.WorkbookPath), props.Text{
			Size: 6.5, Color: colorGray, Top: 2,
		}),
	))
}

// ── helpers ───────────────────────────────────────────────────────────────────

// comprobanteLabel arma "tipo-serie-número" con los valores tal como están en la hoja.
func comprobanteLabel(r entity.InvoiceRow) string {
	parts := make([]string, 0, 3)
	for _, p := range []string{r.DocumentType, r.Series, r.Number} {
		if p = strings.TrimSpace(p); p != "" {
			parts = append(parts, p)
		}
	}
	return nonEmpty(strings.Join(parts, "-"), "-")
}

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-3]) + "..."
}
