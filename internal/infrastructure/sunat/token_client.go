package sunat

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/jhoicas/validador-cpe/internal/domain/entity"
	pkgjwt "github.com/jhoicas/validador-cpe/pkg/jwt"
)

// ── Constantes de entorno ──────────────────────────────────────────────────────

const (
	// DefaultTokenBaseURL servidor OAuth2 de SUNAT (clientes extranet).
	DefaultTokenBaseURL = "https://api-seguridad.sunat.gob.pe"
	// DefaultAPIBaseURL servidor de la API de contribuyentes.
	DefaultAPIBaseURL = "https://api.sunat.gob.pe"
	// DefaultScope alcance requerido por el servicio validarcomprobante.
	DefaultScope = "https://api.sunat.gob.pe/v1/contribuyente/contribuyentes"
	// DefaultTimeout timeout fijo por llamada (token y validación).
	DefaultTimeout = 30 * time.Second
)

// Token bearer de SUNAT. ExpiresAt es cero si no se pudo determinar.
type Token struct {
	AccessToken string
	ExpiresAt   time.Time
}

// TokenClient obtiene tokens client_credentials del servidor OAuth2 de SUNAT.
type TokenClient struct {
	baseURL    string
	scope      string
	httpClient *http.Client
	now        func() time.Time
}

// NewTokenClient construye el cliente. baseURL y scope vacíos usan los valores de SUNAT.
func NewTokenClient(baseURL, scope string, timeout time.Duration) *TokenClient {
	if baseURL == "" {
		baseURL = DefaultTokenBaseURL
	}
	if scope == "" {
		scope = DefaultScope
	}
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &TokenClient{
		baseURL:    strings.TrimRight(baseURL, "/"),
		scope:      scope,
		httpClient: &http.Client{Timeout: timeout},
		now:        time.Now,
	}
}

type tokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresIn   int    `json:"expires_in"`
}

// Acquire intercambia las credenciales por un token (una sola llamada POST).
func (c *TokenClient) Acquire(ctx context.Context, cred entity.Credential) (*Token, error) {
	form := url.Values{}
	form.Set("grant_type", "client_credentials")
	form.Set("scope", c.scope)
	form.Set("client_id", cred.ClientID)
	form.Set("client_secret", cred.ClientSecret)

	endpoint := fmt.Sprintf("%s/v1/clientesextranet/%s/oauth2/token/", c.baseURL, url.PathEscape(cred.ClientID))
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return nil, fmt.Errorf("sunat token: crear request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return nil, fmt.Errorf("sunat token: timeout o cancelación: %w", ctx.Err())
		}
		return nil, fmt.Errorf("sunat token: llamada HTTP fallida: %w", err)
	}
	defer resp.Body.Close()

	rawBody, err := io.ReadAll(io.LimitReader(resp.Body, 64*1024))
	if err != nil {
		return nil, fmt.Errorf("sunat token: leer respuesta: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("sunat token: HTTP %d: %s", resp.StatusCode, string(rawBody))
	}

	var tr tokenResponse
	if err := json.Unmarshal(rawBody, &tr); err != nil {
		return nil, fmt.Errorf("sunat token: deserializar respuesta: %w", err)
	}
	if tr.AccessToken == "" {
		return nil, fmt.Errorf("sunat token: respuesta sin access_token")
	}

	return &Token{AccessToken: tr.AccessToken, ExpiresAt: c.expiry(tr)}, nil
}

// expiry usa expires_in; si no viene, el claim exp del propio JWT.
func (c *TokenClient) expiry(tr tokenResponse) time.Time {
	if tr.ExpiresIn > 0 {
		return c.now().Add(time.Duration(tr.ExpiresIn) * time.Second)
	}
	if exp, err := pkgjwt.ExpiresAt(tr.AccessToken); err == nil {
		return exp
	}
	return time.Time{}
}
