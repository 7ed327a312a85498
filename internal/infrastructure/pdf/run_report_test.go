package pdf_test

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/validador-cpe/internal/application/validation"
	"github.com/jhoicas/validador-cpe/internal/domain/entity"
	"github.com/jhoicas/validador-cpe/internal/infrastructure/pdf"
)

func TestGenerateRunReport(t *testing.T) {
	summary := &validation.RunSummary{
		State:  validation.StateConverged,
		Passes: 2,
		Last: &validation.PassSummary{
			Number:  2,
			LastRow: 9,
			Counts: map[entity.Outcome]int{
				entity.OutcomeVerified: 1,
				entity.OutcomeRejected: 1,
				entity.OutcomeBlank:    1,
			},
			Rows: []validation.RowReport{
				{
					Row:     entity.InvoiceRow{Index: 7, DocumentType: "01", Series: "F001", Number: "123"},
					Outcome: entity.OutcomeVerified,
					Result:  entity.RowResult{Status: "ACEPTADO", RUCStatus: "ACTIVO", Domicile: "HABIDO", Observations: "-"},
				},
				{Row: entity.InvoiceRow{Index: 8}, Outcome: entity.OutcomeBlank},
				{
					Row:     entity.InvoiceRow{Index: 9, RUC: "123"},
					Outcome: entity.OutcomeRejected,
					Result:  entity.RejectedResult("RUC ingresado no válido."),
				},
			},
		},
	}

	out, err := pdf.NewRunReportGenerator().GenerateRunReport(context.Background(), summary, validation.ReportMeta{
		RunID:         "8f14e45f-ceea-467f-a0e6-7d3c2c5b1a6e",
		WorkbookPath:  "/tmp/consulta.xlsx",
		ConsultantRUC: "20100066603",
		GeneratedAt:   time.Date(2024, 1, 2, 15, 4, 0, 0, time.UTC),
	})

	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF")))
}

func TestGenerateRunReport_SinPasadas(t *testing.T) {
	_, err := pdf.NewRunReportGenerator().GenerateRunReport(context.Background(),
		&validation.RunSummary{State: validation.StateEmpty}, validation.ReportMeta{})
	assert.Error(t, err)
}
