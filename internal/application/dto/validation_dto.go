package dto

// ValidateComprobanteRequest body para POST /api/comprobantes/validar.
// Los campos van como texto, igual que en la plantilla Excel.
type ValidateComprobanteRequest struct {
	RUC          string `json:"ruc"`
	DocumentType string `json:"tipo"`
	Series       string `json:"serie"`
	Number       string `json:"numero"`
	IssueDate    string `json:"fecha"` // dd/mm/aaaa
	Amount       string `json:"monto"`
}

// ValidateComprobanteResponse columnas H..K más la clasificación del resultado.
type ValidateComprobanteResponse struct {
	Status       string `json:"estado_cp"`
	RUCStatus    string `json:"estado_ruc"`
	Domicile     string `json:"condicion_domicilio"`
	Observations string `json:"observaciones"`
	Outcome      string `json:"resultado"`
	Retry        bool   `json:"reintentar"` // true si SUNAT no respondió
}

// IssueTokenResponse token de acceso a la API local.
type IssueTokenResponse struct {
	Token     string `json:"token"`
	ExpiresIn int    `json:"expires_in"` // segundos
}
