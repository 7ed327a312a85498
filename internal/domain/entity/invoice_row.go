package entity

import "strings"

// InvoiceRow valores crudos de una fila de la hoja (columnas B a G).
// Se vuelve a leer en cada pasada; nunca se guarda entre pasadas.
type InvoiceRow struct {
	Index        int    // número de fila en la hoja (1-based)
	RUC          string // B: RUC del emisor
	DocumentType string // C: tipo de comprobante
	Series       string // D: serie
	Number       string // E: número correlativo
	IssueDate    string // F: fecha de emisión (dd/mm/aaaa)
	Amount       string // G: importe total
}

// Fields devuelve los seis campos de entrada en el orden de las columnas.
func (r InvoiceRow) Fields() [6]string {
	return [6]string{r.RUC, r.DocumentType, r.Series, r.Number, r.IssueDate, r.Amount}
}

// IsBlank indica si las seis celdas de entrada están vacías (o solo contienen espacios).
func (r InvoiceRow) IsBlank() bool {
	for _, f := range r.Fields() {
		if strings.TrimSpace(f) != "" {
			return false
		}
	}
	return true
}
