package excel

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/jhoicas/validador-cpe/internal/domain/entity"
	"github.com/jhoicas/validador-cpe/internal/domain/repository"
)

// ErrSheetNotFound la plantilla no tiene la hoja configurada.
var ErrSheetNotFound = errors.New("excel: hoja no encontrada")

// dateLayout formato con el que se entregan las fechas guardadas como número de serie.
const dateLayout = "02/01/2006"

// Verificar en tiempo de compilación que Workbook implementa el puerto.
var _ repository.Workbook = (*Workbook)(nil)

// Workbook plantilla de consulta en disco. Cada pasada reabre el archivo para
// leer lo que el usuario haya cambiado entre pasadas.
type Workbook struct {
	path  string
	sheet string
}

// NewWorkbook no toca el disco; los errores de apertura aparecen en ReadCredential u OpenSheet.
func NewWorkbook(path, sheet string) *Workbook {
	if sheet == "" {
		sheet = entity.DefaultSheetName
	}
	return &Workbook{path: path, sheet: sheet}
}

func (w *Workbook) Path() string { return w.path }

// ReadCredential lee C3, E3 e I3 recortando espacios.
func (w *Workbook) ReadCredential() (entity.Credential, error) {
	f, err := w.open()
	if err != nil {
		return entity.Credential{}, err
	}
	defer f.Close()

	var vals [3]string
	for i, cell := range []string{entity.CellConsultantRUC, entity.CellClientID, entity.CellClientSecret} {
		v, err := f.GetCellValue(w.sheet, cell, excelize.Options{RawCellValue: true})
		if err != nil {
			return entity.Credential{}, fmt.Errorf("excel: leer %s: %w", cell, err)
		}
		vals[i] = strings.TrimSpace(v)
	}
	return entity.Credential{RUC: vals[0], ClientID: vals[1], ClientSecret: vals[2]}, nil
}

// OpenSheet abre el archivo y prepara los estilos de salida.
func (w *Workbook) OpenSheet() (repository.ComprobanteSheet, error) {
	f, err := w.open()
	if err != nil {
		return nil, err
	}
	styles, err := newOutputStyles(f)
	if err != nil {
		_ = f.Close()
		return nil, err
	}
	date1904 := false
	if props, err := f.GetWorkbookProps(); err == nil && props.Date1904 != nil {
		date1904 = *props.Date1904
	}
	return &sheet{file: f, name: w.sheet, styles: styles, date1904: date1904}, nil
}

func (w *Workbook) open() (*excelize.File, error) {
	f, err := excelize.OpenFile(w.path)
	if err != nil {
		return nil, fmt.Errorf("excel: abrir %s: %w", w.path, err)
	}
	if idx, err := f.GetSheetIndex(w.sheet); err != nil || idx < 0 {
		_ = f.Close()
		return nil, fmt.Errorf("%w: %q en %s", ErrSheetNotFound, w.sheet, w.path)
	}
	return f, nil
}

// outputStyles H en negrita y centrada, I y J centradas, K a la izquierda;
// todas centradas verticalmente.
type outputStyles [4]int

func newOutputStyles(f *excelize.File) (outputStyles, error) {
	defs := [4]*excelize.Style{
		{Font: &excelize.Font{Bold: true}, Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"}},
		{Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"}},
		{Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"}},
		{Alignment: &excelize.Alignment{Horizontal: "left", Vertical: "center"}},
	}
	var s outputStyles
	for i, d := range defs {
		id, err := f.NewStyle(d)
		if err != nil {
			return s, fmt.Errorf("excel: crear estilo %s: %w", entity.OutputColumns[i], err)
		}
		s[i] = id
	}
	return s, nil
}

// sheet hoja abierta durante una pasada.
type sheet struct {
	file     *excelize.File
	name     string
	styles   outputStyles
	date1904 bool
}

func cellName(col string, row int) string {
	return col + strconv.Itoa(row)
}

func (s *sheet) LastDataRow(from int) (int, error) {
	rows, err := s.file.GetRows(s.name)
	if err != nil {
		return from - 1, fmt.Errorf("excel: leer filas: %w", err)
	}
	last := from - 1
	limit := len(rows) + entity.RowScanWindow
	for idx := from; idx <= limit; idx++ {
		for _, col := range entity.InputColumns {
			v, err := s.file.GetCellValue(s.name, cellName(col, idx), excelize.Options{RawCellValue: true})
			if err != nil {
				return from - 1, fmt.Errorf("excel: leer %s%d: %w", col, idx, err)
			}
			if strings.TrimSpace(v) != "" {
				last = idx
				break
			}
		}
	}
	return last, nil
}

// ReadRow devuelve los valores de B..G sin formato numérico, salvo la fecha:
// si F tiene formato de fecha se convierte el número de serie a dd/mm/aaaa.
func (s *sheet) ReadRow(index int) (entity.InvoiceRow, error) {
	var vals [6]string
	for i, col := range entity.InputColumns {
		cell := cellName(col, index)
		raw, err := s.file.GetCellValue(s.name, cell, excelize.Options{RawCellValue: true})
		if err != nil {
			return entity.InvoiceRow{}, fmt.Errorf("excel: leer %s: %w", cell, err)
		}
		if col == entity.ColumnIssueDate {
			raw = s.issueDate(cell, raw)
		}
		vals[i] = strings.TrimSpace(raw)
	}
	return entity.InvoiceRow{
		Index:        index,
		RUC:          vals[0],
		DocumentType: vals[1],
		Series:       vals[2],
		Number:       vals[3],
		IssueDate:    vals[4],
		Amount:       vals[5],
	}, nil
}

func (s *sheet) issueDate(cell, raw string) string {
	serial, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil {
		return raw
	}
	formatted, err := s.file.GetCellValue(s.name, cell)
	if err != nil || formatted == raw {
		return raw
	}
	t, err := excelize.ExcelDateToTime(serial, s.date1904)
	if err != nil {
		return raw
	}
	return t.Format(dateLayout)
}

// WriteResult escribe H..K; los valores vacíos dejan la celda en blanco.
func (s *sheet) WriteResult(index int, result entity.RowResult) error {
	for i, v := range result.Values() {
		cell := cellName(entity.OutputColumns[i], index)
		var value any
		if v != "" {
			value = v
		}
		if err := s.file.SetCellValue(s.name, cell, value); err != nil {
			return fmt.Errorf("excel: escribir %s: %w", cell, err)
		}
		if err := s.file.SetCellStyle(s.name, cell, cell, s.styles[i]); err != nil {
			return fmt.Errorf("excel: estilo %s: %w", cell, err)
		}
	}
	return nil
}

func (s *sheet) ReadResult(index int) (entity.RowResult, error) {
	var vals [4]string
	for i, col := range entity.OutputColumns {
		cell := cellName(col, index)
		v, err := s.file.GetCellValue(s.name, cell)
		if err != nil {
			return entity.RowResult{}, fmt.Errorf("excel: leer %s: %w", cell, err)
		}
		vals[i] = v
	}
	return entity.RowResult{Status: vals[0], RUCStatus: vals[1], Domicile: vals[2], Observations: vals[3]}, nil
}

func (s *sheet) Save() error {
	if err := s.file.Save(); err != nil {
		return fmt.Errorf("excel: guardar: %w", err)
	}
	return nil
}

func (s *sheet) Close() error {
	return s.file.Close()
}
