package sunat

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/jhoicas/validador-cpe/internal/application/validation"
	"github.com/jhoicas/validador-cpe/internal/domain/cpe"
	"github.com/jhoicas/validador-cpe/internal/domain/entity"
	"github.com/jhoicas/validador-cpe/pkg/logger"
	pkgsunat "github.com/jhoicas/validador-cpe/pkg/sunat"
)

// Verificar en tiempo de compilación que VerifierClient implementa Verifier.
var _ validation.Verifier = (*VerifierClient)(nil)

// VerifierClient adaptador del servicio REST validarcomprobante de SUNAT.
type VerifierClient struct {
	baseURL    string
	catalogues pkgsunat.Catalogues
	httpClient *http.Client
	log        *logger.Logger
}

// NewVerifierClient construye el adaptador. Los catálogos se reciben ya armados
// y no se modifican.
func NewVerifierClient(baseURL string, catalogues pkgsunat.Catalogues, timeout time.Duration, log *logger.Logger) *VerifierClient {
	if baseURL == "" {
		baseURL = DefaultAPIBaseURL
	}
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	if log == nil {
		log = logger.Nop()
	}
	return &VerifierClient{
		baseURL:    strings.TrimRight(baseURL, "/"),
		catalogues: catalogues,
		httpClient: &http.Client{Timeout: timeout},
		log:        log,
	}
}

// ── Estructuras del protocolo ─────────────────────────────────────────────────

type validarRequest struct {
	NumRuc       string      `json:"numRuc"`
	CodComp      string      `json:"codComp"`
	NumeroSerie  string      `json:"numeroSerie"`
	Numero       int64       `json:"numero"`
	FechaEmision string      `json:"fechaEmision"`
	Monto        json.Number `json:"monto"`
}

type validarResponse struct {
	Success bool         `json:"success"`
	Message string       `json:"message"`
	Data    *validarData `json:"data"`
}

type validarData struct {
	EstadoCp      code     `json:"estadoCp"`
	EstadoRuc     code     `json:"estadoRuc"`
	CondDomiRuc   code     `json:"condDomiRuc"`
	Observaciones []string `json:"observaciones"`
}

// code acepta el código como string o como número en el JSON.
type code string

func (c *code) UnmarshalJSON(b []byte) error {
	if string(b) == "null" {
		*c = ""
		return nil
	}
	var s string
	if err := json.Unmarshal(b, &s); err == nil {
		*c = code(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return fmt.Errorf("código inválido %s", string(b))
	}
	*c = code(n.String())
	return nil
}

// errUnauthorized la API rechazó el token.
var errUnauthorized = errors.New("token rechazado (HTTP 401)")

// ── Implementación del puerto ─────────────────────────────────────────────────

// Verify nunca devuelve error: HTTP != 200, success=false, cuerpo ilegible,
// timeout o falla de red producen el centinela "SIN RESPUESTA".
func (c *VerifierClient) Verify(ctx context.Context, consultantRUC, token string, payload cpe.Payload) validation.Verification {
	result, err := c.call(ctx, consultantRUC, token, payload)
	if err != nil {
		c.log.Warn().Err(err).
			Str("comprobante", fmt.Sprintf("%s-%s-%d", payload.DocumentType, payload.Series, payload.Number)).
			Msg("error de conexión con SUNAT")
		return validation.Verification{
			Result:        entity.NoResponse(),
			TokenRejected: errors.Is(err, errUnauthorized),
		}
	}
	return validation.Verification{Result: result}
}

func (c *VerifierClient) call(ctx context.Context, consultantRUC, token string, p cpe.Payload) (entity.VerificationResult, error) {
	body, err := json.Marshal(validarRequest{
		NumRuc:       p.RUC,
		CodComp:      p.DocumentType,
		NumeroSerie:  p.Series,
		Numero:       p.Number,
		FechaEmision: p.IssueDate,
		Monto:        json.Number(p.Amount.Round(2).String()),
	})
	if err != nil {
		return entity.VerificationResult{}, fmt.Errorf("sunat: serializar request: %w", err)
	}

	endpoint := fmt.Sprintf("%s/v1/contribuyente/contribuyentes/%s/validarcomprobante",
		c.baseURL, url.PathEscape(consultantRUC))
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return entity.VerificationResult{}, fmt.Errorf("sunat: crear request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return entity.VerificationResult{}, fmt.Errorf("sunat: timeout o cancelación: %w", ctx.Err())
		}
		return entity.VerificationResult{}, fmt.Errorf("sunat: llamada HTTP fallida: %w", err)
	}
	defer resp.Body.Close()

	rawBody, err := io.ReadAll(io.LimitReader(resp.Body, 256*1024))
	if err != nil {
		return entity.VerificationResult{}, fmt.Errorf("sunat: leer respuesta: %w", err)
	}

	if resp.StatusCode == http.StatusUnauthorized {
		return entity.VerificationResult{}, errUnauthorized
	}
	if resp.StatusCode != http.StatusOK {
		return entity.VerificationResult{}, fmt.Errorf("sunat: HTTP %d: %s", resp.StatusCode, string(rawBody))
	}

	var vr validarResponse
	if err := json.Unmarshal(rawBody, &vr); err != nil {
		return entity.VerificationResult{}, fmt.Errorf("sunat: deserializar respuesta: %w", err)
	}
	if !vr.Success {
		return entity.VerificationResult{}, fmt.Errorf("sunat: respuesta no exitosa: %s", vr.Message)
	}
	if vr.Data == nil {
		return entity.VerificationResult{}, fmt.Errorf("sunat: respuesta sin data")
	}

	return c.decode(vr.Data), nil
}

// decode traduce los códigos con los catálogos.
func (c *VerifierClient) decode(d *validarData) entity.VerificationResult {
	return entity.VerificationResult{
		ComprobanteStatus: c.catalogues.ComprobanteStatus.Lookup(string(d.EstadoCp)),
		TaxpayerStatus:    c.catalogues.TaxpayerStatus.Lookup(string(d.EstadoRuc)),
		DomicileCondition: c.catalogues.DomicileCondition.Lookup(string(d.CondDomiRuc)),
		Observations:      JoinObservations(d.Observaciones),
		Responded:         true,
	}
}

// JoinObservations quita los guiones y espacios de los extremos de cada
// observación, descarta las vacías y las une con un espacio. Sin observaciones → "-".
func JoinObservations(obs []string) string {
	parts := make([]string, 0, len(obs))
	for _, o := range obs {
		o = strings.TrimSpace(strings.Trim(o, "- "))
		if o != "" {
			parts = append(parts, o)
		}
	}
	if len(parts) == 0 {
		return entity.Placeholder
	}
	return strings.Join(parts, " ")
}
