package excel_test

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/jhoicas/validador-cpe/internal/domain/entity"
	"github.com/jhoicas/validador-cpe/internal/infrastructure/excel"
)

// newTemplate crea una plantilla "Consulta" en un directorio temporal.
func newTemplate(t *testing.T, cells map[string]any) string {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()
	require.NoError(t, f.SetSheetName("Sheet1", entity.DefaultSheetName))
	for cell, v := range cells {
		require.NoError(t, f.SetCellValue(entity.DefaultSheetName, cell, v))
	}
	path := filepath.Join(t.TempDir(), "consulta.xlsx")
	require.NoError(t, f.SaveAs(path))
	return path
}

func TestReadCredential_RecortaEspacios(t *testing.T) {
	path := newTemplate(t, map[string]any{
		"C3": " 20100066603 ",
		"E3": "client-id",
		"I3": "  secreto\t",
	})

	cred, err := excel.NewWorkbook(path, "").ReadCredential()

	require.NoError(t, err)
	assert.Equal(t, entity.Credential{RUC: "20100066603", ClientID: "client-id", ClientSecret: "secreto"}, cred)
}

func TestReadCredential_RUCNumerico(t *testing.T) {
	path := newTemplate(t, map[string]any{"C3": 20100066603})

	cred, err := excel.NewWorkbook(path, "").ReadCredential()

	require.NoError(t, err)
	assert.Equal(t, "20100066603", cred.RUC)
	assert.Empty(t, cred.ClientID)
}

func TestOpen_HojaInexistente(t *testing.T) {
	path := newTemplate(t, nil)

	_, err := excel.NewWorkbook(path, "Otra").OpenSheet()

	assert.ErrorIs(t, err, excel.ErrSheetNotFound)
}

func TestOpen_ArchivoInexistente(t *testing.T) {
	_, err := excel.NewWorkbook(filepath.Join(t.TempDir(), "no.xlsx"), "").ReadCredential()
	assert.Error(t, err)
}

func TestLastDataRow(t *testing.T) {
	t.Run("sin datos", func(t *testing.T) {
		path := newTemplate(t, map[string]any{"B2": "cabecera", "H7": "resultado viejo"})
		sh, err := excel.NewWorkbook(path, "").OpenSheet()
		require.NoError(t, err)
		defer sh.Close()

		last, err := sh.LastDataRow(entity.FirstDataRow)
		require.NoError(t, err)
		assert.Equal(t, entity.FirstDataRow-1, last)
	})

	t.Run("con huecos", func(t *testing.T) {
		path := newTemplate(t, map[string]any{"B7": "x", "G9": 10, "C12": "01"})
		sh, err := excel.NewWorkbook(path, "").OpenSheet()
		require.NoError(t, err)
		defer sh.Close()

		last, err := sh.LastDataRow(entity.FirstDataRow)
		require.NoError(t, err)
		assert.Equal(t, 12, last)
	})
}

func TestReadRow_ValoresCrudos(t *testing.T) {
	path := newTemplate(t, map[string]any{
		"B7": 12345678901,
		"C7": "1",
		"D7": " f001 ",
		"E7": 123,
		"F7": "01/01/2024",
		"G7": 100.5,
	})
	sh, err := excel.NewWorkbook(path, "").OpenSheet()
	require.NoError(t, err)
	defer sh.Close()

	row, err := sh.ReadRow(7)

	require.NoError(t, err)
	assert.Equal(t, entity.InvoiceRow{
		Index:        7,
		RUC:          "12345678901",
		DocumentType: "1",
		Series:       "f001",
		Number:       "123",
		IssueDate:    "01/01/2024",
		Amount:       "100.5",
	}, row)
}

func TestReadRow_FechaComoSerial(t *testing.T) {
	path := newTemplate(t, map[string]any{
		"F7": time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC),
	})
	sh, err := excel.NewWorkbook(path, "").OpenSheet()
	require.NoError(t, err)
	defer sh.Close()

	row, err := sh.ReadRow(7)

	require.NoError(t, err)
	assert.Equal(t, "05/03/2024", row.IssueDate)
}

func TestReadRow_FilaVacia(t *testing.T) {
	path := newTemplate(t, nil)
	sh, err := excel.NewWorkbook(path, "").OpenSheet()
	require.NoError(t, err)
	defer sh.Close()

	row, err := sh.ReadRow(20)

	require.NoError(t, err)
	assert.True(t, row.IsBlank())
	assert.Equal(t, 20, row.Index)
}

func TestWriteResult_PersisteYLimpia(t *testing.T) {
	path := newTemplate(t, map[string]any{
		"B7": "x",
		"H8": "viejo", "I8": "viejo", "J8": "viejo", "K8": "viejo",
	})
	wb := excel.NewWorkbook(path, "")

	sh, err := wb.OpenSheet()
	require.NoError(t, err)
	require.NoError(t, sh.WriteResult(7, entity.RejectedResult("RUC ingresado no válido.")))
	require.NoError(t, sh.WriteResult(8, entity.BlankResult()))
	require.NoError(t, sh.Save())
	require.NoError(t, sh.Close())

	// se reabre para leer lo que quedó en disco
	sh, err = wb.OpenSheet()
	require.NoError(t, err)
	defer sh.Close()

	got, err := sh.ReadResult(7)
	require.NoError(t, err)
	assert.Equal(t, [4]string{"-", "-", "-", "RUC ingresado no válido."}, got.Values())

	got, err = sh.ReadResult(8)
	require.NoError(t, err)
	assert.True(t, got.IsBlank())
}

func TestWriteResult_AplicaEstilos(t *testing.T) {
	path := newTemplate(t, map[string]any{"B7": "x"})
	sh, err := excel.NewWorkbook(path, "").OpenSheet()
	require.NoError(t, err)
	require.NoError(t, sh.WriteResult(7, entity.NoResponse().RowResult()))
	require.NoError(t, sh.Save())
	require.NoError(t, sh.Close())

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()

	style := func(cell string) *excelize.Style {
		id, err := f.GetCellStyle(entity.DefaultSheetName, cell)
		require.NoError(t, err)
		s, err := f.GetStyle(id)
		require.NoError(t, err)
		return s
	}

	h := style("H7")
	require.NotNil(t, h.Font)
	assert.True(t, h.Font.Bold)
	assert.Equal(t, "center", h.Alignment.Horizontal)
	assert.Equal(t, "center", style("I7").Alignment.Horizontal)
	assert.Equal(t, "center", style("J7").Alignment.Horizontal)
	k := style("K7")
	assert.Equal(t, "left", k.Alignment.Horizontal)
	assert.Equal(t, "center", k.Alignment.Vertical)
}
