package sunat

import (
	"context"
	"sync"
	"time"

	"github.com/jhoicas/validador-cpe/internal/application/validation"
	"github.com/jhoicas/validador-cpe/internal/domain/entity"
)

var _ validation.TokenProvider = (*CachedTokenProvider)(nil)

// refreshMargin se renueva el token si vence dentro de este margen.
const refreshMargin = time.Minute

// tokenAcquirer permite sustituir el cliente HTTP en tests.
type tokenAcquirer interface {
	Acquire(ctx context.Context, cred entity.Credential) (*Token, error)
}

// CachedTokenProvider reutiliza el token hasta que está por vencer o se invalida.
// Es seguro para uso concurrente (modo servidor).
type CachedTokenProvider struct {
	mu       sync.Mutex
	client   tokenAcquirer
	token    *Token
	clientID string
	now      func() time.Time
}

// NewCachedTokenProvider envuelve el cliente de tokens.
func NewCachedTokenProvider(client tokenAcquirer) *CachedTokenProvider {
	return &CachedTokenProvider{client: client, now: time.Now}
}

// Token devuelve el token vigente o solicita uno nuevo.
func (p *CachedTokenProvider) Token(ctx context.Context, cred entity.Credential) (string, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.valid(cred.ClientID) {
		return p.token.AccessToken, nil
	}
	tok, err := p.client.Acquire(ctx, cred)
	if err != nil {
		return "", err
	}
	p.token = tok
	p.clientID = cred.ClientID
	return tok.AccessToken, nil
}

// Invalidate descarta el token en caché.
func (p *CachedTokenProvider) Invalidate() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.token = nil
}

func (p *CachedTokenProvider) valid(clientID string) bool {
	if p.token == nil || p.clientID != clientID {
		return false
	}
	if p.token.ExpiresAt.IsZero() {
		return true
	}
	return p.now().Add(refreshMargin).Before(p.token.ExpiresAt)
}
