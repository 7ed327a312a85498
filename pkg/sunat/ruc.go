package sunat

import "fmt"

// RUCLength longitud fija del Registro Único de Contribuyentes.
const RUCLength = 11

// ValidateRUC valida la forma del RUC: exactamente 11 dígitos.
// No verifica el dígito de control; SUNAT responde con el estado real del contribuyente.
func ValidateRUC(ruc string) error {
	if len(ruc) != RUCLength {
		return fmt.Errorf("sunat: RUC debe tener %d dígitos, se recibieron %d caracteres", RUCLength, len(ruc))
	}
	if !IsDigits(ruc) {
		return fmt.Errorf("sunat: RUC solo admite dígitos: %q", ruc)
	}
	return nil
}

// IsDigits indica si s es no vacío y contiene solo dígitos ASCII.
func IsDigits(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}
