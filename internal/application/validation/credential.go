package validation

import (
	"fmt"

	"github.com/jhoicas/validador-cpe/internal/domain"
	"github.com/jhoicas/validador-cpe/internal/domain/entity"
)

// CredentialLocations indica al usuario dónde corregir cada dato faltante.
type CredentialLocations struct {
	RUC          string
	ClientID     string
	ClientSecret string
}

// WorkbookCredentialCells ubicaciones en la plantilla Excel.
var WorkbookCredentialCells = CredentialLocations{
	RUC:          "la celda " + entity.CellConsultantRUC,
	ClientID:     "la celda " + entity.CellClientID,
	ClientSecret: "la celda " + entity.CellClientSecret,
}

// EnvCredentialVars ubicaciones cuando la credencial viene de variables de entorno.
var EnvCredentialVars = CredentialLocations{
	RUC:          "SUNAT_RUC",
	ClientID:     "SUNAT_CLIENT_ID",
	ClientSecret: "SUNAT_CLIENT_SECRET",
}

// CheckCredential falla con domain.ErrMissingCredential ante el primer dato vacío,
// en el orden RUC, Client ID, Client Secret.
func CheckCredential(cred entity.Credential, loc CredentialLocations) error {
	switch {
	case cred.RUC == "":
		return fmt.Errorf("%w: verificar los datos de RUC en %s", domain.ErrMissingCredential, loc.RUC)
	case cred.ClientID == "":
		return fmt.Errorf("%w: verificar los datos de Client ID en %s", domain.ErrMissingCredential, loc.ClientID)
	case cred.ClientSecret == "":
		return fmt.Errorf("%w: verificar los datos de Client Secret en %s", domain.ErrMissingCredential, loc.ClientSecret)
	}
	return nil
}
