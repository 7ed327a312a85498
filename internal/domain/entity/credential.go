package entity

// Credential datos del consultante para la API de SUNAT.
// Se lee una sola vez al inicio y no cambia durante el proceso.
type Credential struct {
	RUC          string // RUC del consultante (celda C3)
	ClientID     string // Client ID de la aplicación registrada en SUNAT (celda E3)
	ClientSecret string // Client Secret (celda I3)
}
