package validation

import (
	"context"

	"github.com/jhoicas/validador-cpe/internal/domain/cpe"
	"github.com/jhoicas/validador-cpe/internal/domain/entity"
)

// TokenProvider entrega el token bearer de SUNAT para la credencial dada.
// Invalidate descarta el token en caché (por ejemplo tras un 401).
type TokenProvider interface {
	Token(ctx context.Context, cred entity.Credential) (string, error)
	Invalidate()
}

// Verification resultado de una consulta remota.
// TokenRejected es true cuando SUNAT respondió 401 al token usado.
type Verification struct {
	Result        entity.VerificationResult
	TokenRejected bool
}

// Verifier consulta un comprobante ya validado en la API de SUNAT.
// Nunca devuelve error: cualquier falla se traduce en el resultado centinela.
type Verifier interface {
	Verify(ctx context.Context, consultantRUC, token string, payload cpe.Payload) Verification
}
