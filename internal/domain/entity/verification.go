package entity

// Textos fijos que aparecen en las columnas de salida.
const (
	Placeholder      = "-"
	StatusNoResponse = "SIN RESPUESTA"
	StatusUnknown    = "DESCONOCIDO"
)

// VerificationResult respuesta decodificada de la API de validación de SUNAT.
// Responded es false cuando la llamada falló o el envelope no fue exitoso.
type VerificationResult struct {
	ComprobanteStatus string // estadoCp decodificado (ej. "ACEPTADO")
	TaxpayerStatus    string // estadoRuc decodificado (ej. "ACTIVO")
	DomicileCondition string // condDomiRuc decodificado (ej. "HABIDO")
	Observations      string // observaciones unidas por espacio
	Responded         bool
}

// NoResponse devuelve el resultado centinela para llamadas fallidas.
func NoResponse() VerificationResult {
	return VerificationResult{
		ComprobanteStatus: StatusNoResponse,
		TaxpayerStatus:    Placeholder,
		DomicileCondition: Placeholder,
		Observations:      Placeholder,
	}
}

// RowResult convierte la verificación en las cuatro columnas de salida.
func (v VerificationResult) RowResult() RowResult {
	return RowResult{
		Status:       v.ComprobanteStatus,
		RUCStatus:    v.TaxpayerStatus,
		Domicile:     v.DomicileCondition,
		Observations: v.Observations,
	}
}
