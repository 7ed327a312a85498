package entity

// Outcome clasifica lo que ocurrió con una fila durante una pasada.
type Outcome string

const (
	OutcomeBlank      Outcome = "VACIA"         // fila sin datos, salida limpiada
	OutcomeRejected   Outcome = "RECHAZADA"     // validación local fallida
	OutcomeVerified   Outcome = "VERIFICADA"    // SUNAT respondió
	OutcomeNoResponse Outcome = "SIN_RESPUESTA" // falla remota, requiere reintento
)

// RowResult las cuatro columnas de salida de una fila (H a K).
// Una cadena vacía significa celda en blanco.
type RowResult struct {
	Status       string // H: estado del comprobante
	RUCStatus    string // I: estado del contribuyente
	Domicile     string // J: condición de domicilio
	Observations string // K: observaciones o motivo de rechazo
}

// BlankResult resultado para filas vacías: las cuatro celdas quedan en blanco.
func BlankResult() RowResult { return RowResult{} }

// RejectedResult resultado de una fila que no pasó la validación local.
func RejectedResult(reason string) RowResult {
	return RowResult{
		Status:       Placeholder,
		RUCStatus:    Placeholder,
		Domicile:     Placeholder,
		Observations: reason,
	}
}

// Values devuelve las cuatro columnas en orden H, I, J, K.
func (r RowResult) Values() [4]string {
	return [4]string{r.Status, r.RUCStatus, r.Domicile, r.Observations}
}

// IsBlank indica si las cuatro columnas están vacías.
func (r RowResult) IsBlank() bool {
	return r == RowResult{}
}
