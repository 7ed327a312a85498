// Package cpe contiene la validación local de comprobantes de pago electrónicos
// antes de consultarlos en SUNAT. No accede a red ni a la hoja.
package cpe

import (
	"regexp"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/shopspring/decimal"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/jhoicas/validador-cpe/internal/domain/entity"
	"github.com/jhoicas/validador-cpe/pkg/sunat"
)

// Motivos de rechazo que se escriben en la columna K.
const (
	ReasonInvalidAmount       = "Importe ingresado no válido."
	ReasonInvalidDocumentType = "Tipo de comprobante ingresado no válido."
	ReasonInvalidRUC          = "RUC ingresado no válido."
	ReasonInvalidSeries       = "Serie ingresada no válida."
	ReasonInvalidNumber       = "Número de comprobante ingresado no válido."
	ReasonInvalidDate         = "Fecha ingresada no válida."
)

// SeriesLength longitud fija de la serie.
const SeriesLength = 4

// IssueDateLayout formato de fecha que espera SUNAT (día y mes de 1 o 2 dígitos).
const IssueDateLayout = "2/1/2006"

var issueDateRe = regexp.MustCompile(`^\d{1,2}/\d{1,2}/\d{4}$`)

// Payload comprobante normalizado, listo para la consulta remota.
type Payload struct {
	RUC          string
	DocumentType string
	Series       string
	Number       int64
	IssueDate    string          // tal como se ingresó, ya validada
	Amount       decimal.Decimal // redondeado a 2 decimales
}

// Outcome resultado de la validación: exactamente uno de Reason o Payload.
type Outcome struct {
	Reason  string
	Payload *Payload
}

// Accepted indica si la fila pasó todas las validaciones.
func (o Outcome) Accepted() bool { return o.Payload != nil }

func rejected(reason string) Outcome { return Outcome{Reason: reason} }

// ValidateRow aplica las validaciones en orden; la primera que falla define el motivo.
//
//  1. Importe   2. Tipo   3. RUC   4. Longitud de serie
//  5. Serie vs tipo   6. Número   7. Fecha
//
// Los tipos 04, 07, 08 y R7 no tienen regla de formato de serie.
func ValidateRow(row entity.InvoiceRow) Outcome {
	amount, ok := NormalizeAmount(row.Amount)
	if !ok {
		return rejected(ReasonInvalidAmount)
	}

	docType := NormalizeDocumentType(row.DocumentType)
	if !sunat.IsValidDocumentType(docType) {
		return rejected(ReasonInvalidDocumentType)
	}

	ruc := strings.TrimSpace(row.RUC)
	if err := sunat.ValidateRUC(ruc); err != nil {
		return rejected(ReasonInvalidRUC)
	}

	series := upper(strings.TrimSpace(row.Series))
	if utf8.RuneCountInString(series) != SeriesLength {
		return rejected(ReasonInvalidSeries)
	}
	if !SeriesMatchesType(docType, series) {
		return rejected(ReasonInvalidSeries)
	}

	number, ok := parseNumber(row.Number)
	if !ok {
		return rejected(ReasonInvalidNumber)
	}

	issueDate := strings.TrimSpace(row.IssueDate)
	if !IsValidIssueDate(issueDate) {
		return rejected(ReasonInvalidDate)
	}

	return Outcome{Payload: &Payload{
		RUC:          ruc,
		DocumentType: docType,
		Series:       series,
		Number:       number,
		IssueDate:    issueDate,
		Amount:       amount,
	}}
}

// NormalizeAmount acepta dígitos con separadores (punto, coma, espacio) y signo.
// La coma se toma como separador de miles.
func NormalizeAmount(raw string) (decimal.Decimal, bool) {
	s := strings.TrimSpace(raw)
	residual := strings.NewReplacer(".", "", ",", "", "-", "", " ", "").Replace(s)
	if !sunat.IsDigits(residual) {
		return decimal.Zero, false
	}
	d, err := decimal.NewFromString(strings.NewReplacer(",", "", " ", "").Replace(s))
	if err != nil {
		return decimal.Zero, false
	}
	return d.Round(2), true
}

// NormalizeDocumentType pasa a mayúsculas, completa con cero los códigos de un
// carácter y luego convierte "02" en "R1". El orden importa: "2" → "02" → "R1".
func NormalizeDocumentType(raw string) string {
	t := upper(strings.TrimSpace(raw))
	if utf8.RuneCountInString(t) == 1 {
		t = "0" + t
	}
	if t == sunat.DocTypeReciboHonorariosRaw {
		t = sunat.DocTypeReciboHonorarios
	}
	return t
}

// SeriesMatchesType aplica el prefijo de serie exigido por tipo de comprobante.
func SeriesMatchesType(docType, series string) bool {
	switch docType {
	case sunat.DocTypeFactura:
		return strings.HasPrefix(series, "F") || series == "E001"
	case sunat.DocTypeReciboHonorarios:
		return strings.HasPrefix(series, "E")
	case sunat.DocTypeBoleta:
		return strings.HasPrefix(series, "B") || strings.HasPrefix(series, "EB")
	default:
		return true
	}
}

// IsValidIssueDate exige d/m/aaaa y que la fecha exista en el calendario.
func IsValidIssueDate(s string) bool {
	if !issueDateRe.MatchString(s) {
		return false
	}
	t, err := time.Parse(IssueDateLayout, s)
	if err != nil {
		return false
	}
	return t.Year() >= 1
}

// parseNumber acepta solo dígitos ASCII que quepan en int64; el número viaja
// como entero JSON a validarcomprobante.
func parseNumber(raw string) (int64, bool) {
	s := strings.TrimSpace(raw)
	if !sunat.IsDigits(s) {
		return 0, false
	}
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, false
	}
	return n, true
}

// cases.Caser no es seguro entre goroutines; se crea uno por llamada.
func upper(s string) string {
	return cases.Upper(language.Und).String(s)
}
