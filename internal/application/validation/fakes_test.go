package validation_test

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/jhoicas/validador-cpe/internal/application/validation"
	"github.com/jhoicas/validador-cpe/internal/domain/cpe"
	"github.com/jhoicas/validador-cpe/internal/domain/entity"
	"github.com/jhoicas/validador-cpe/internal/domain/repository"
)

// ──────────────────────────────────────────────────────────────────────────────
// Hoja en memoria
// ──────────────────────────────────────────────────────────────────────────────

type fakeWorkbook struct {
	cred    entity.Credential
	rows    map[int]entity.InvoiceRow
	results map[int]entity.RowResult
	writes  []int // filas escritas, en orden
	opens   int
	saves   int
	openErr error
}

func newFakeWorkbook(rows ...entity.InvoiceRow) *fakeWorkbook {
	wb := &fakeWorkbook{
		cred: entity.Credential{
			RUC:          "20100066603",
			ClientID:     "client-id",
			ClientSecret: "client-secret",
		},
		rows:    make(map[int]entity.InvoiceRow),
		results: make(map[int]entity.RowResult),
	}
	for _, r := range rows {
		wb.rows[r.Index] = r
	}
	return wb
}

func (w *fakeWorkbook) ReadCredential() (entity.Credential, error) { return w.cred, nil }
func (w *fakeWorkbook) Path() string                               { return "consulta.xlsx" }

func (w *fakeWorkbook) OpenSheet() (repository.ComprobanteSheet, error) {
	if w.openErr != nil {
		return nil, w.openErr
	}
	w.opens++
	return &fakeSheet{wb: w, pending: make(map[int]entity.RowResult)}, nil
}

// fakeSheet acumula las escrituras y solo las publica en Save, como el archivo real.
type fakeSheet struct {
	wb      *fakeWorkbook
	pending map[int]entity.RowResult
}

func (s *fakeSheet) LastDataRow(from int) (int, error) {
	last := from - 1
	for idx, r := range s.wb.rows {
		if idx >= from && idx > last && !r.IsBlank() {
			last = idx
		}
	}
	return last, nil
}

func (s *fakeSheet) ReadRow(index int) (entity.InvoiceRow, error) {
	r, ok := s.wb.rows[index]
	if !ok {
		return entity.InvoiceRow{Index: index}, nil
	}
	return r, nil
}

func (s *fakeSheet) WriteResult(index int, result entity.RowResult) error {
	s.pending[index] = result
	s.wb.writes = append(s.wb.writes, index)
	return nil
}

func (s *fakeSheet) ReadResult(index int) (entity.RowResult, error) {
	if r, ok := s.pending[index]; ok {
		return r, nil
	}
	return s.wb.results[index], nil
}

func (s *fakeSheet) Save() error {
	for k, v := range s.pending {
		s.wb.results[k] = v
	}
	s.wb.saves++
	return nil
}

func (s *fakeSheet) Close() error { return nil }

// ──────────────────────────────────────────────────────────────────────────────
// Token y verificador
// ──────────────────────────────────────────────────────────────────────────────

type fakeTokens struct {
	mu          sync.Mutex
	calls       int
	invalidated int
	err         error
	// failAfter hace fallar las llamadas posteriores a la n-ésima (0 = nunca).
	failAfter int
}

func (f *fakeTokens) Token(_ context.Context, _ entity.Credential) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	if f.err != nil {
		return "", f.err
	}
	if f.failAfter > 0 && f.calls > f.failAfter {
		return "", errors.New("sunat caído")
	}
	return "token-de-prueba", nil
}

func (f *fakeTokens) Invalidate() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.invalidated++
}

type fakeVerifier struct {
	calls    []cpe.Payload
	respond  func(call int, p cpe.Payload) validation.Verification
	lastRUC  string
	lastAuth string
}

func (f *fakeVerifier) Verify(_ context.Context, consultantRUC, token string, p cpe.Payload) validation.Verification {
	f.calls = append(f.calls, p)
	f.lastRUC = consultantRUC
	f.lastAuth = token
	if f.respond == nil {
		return authorized()
	}
	return f.respond(len(f.calls), p)
}

func authorized() validation.Verification {
	return validation.Verification{Result: entity.VerificationResult{
		ComprobanteStatus: "AUTORIZADO",
		TaxpayerStatus:    "ACTIVO",
		DomicileCondition: "HABIDO",
		Observations:      entity.Placeholder,
		Responded:         true,
	}}
}

func noResponse() validation.Verification {
	return validation.Verification{Result: entity.NoResponse()}
}

// ──────────────────────────────────────────────────────────────────────────────
// Filas de ejemplo
// ──────────────────────────────────────────────────────────────────────────────

func facturaRow(index int) entity.InvoiceRow {
	return entity.InvoiceRow{
		Index:        index,
		RUC:          "12345678901",
		DocumentType: "1",
		Series:       "F001",
		Number:       "123",
		IssueDate:    "01/01/2024",
		Amount:       "100.50",
	}
}

// recordSleep no espera; guarda las duraciones pedidas.
func recordSleep(waits *[]time.Duration) validation.Sleeper {
	return func(_ context.Context, d time.Duration) error {
		*waits = append(*waits, d)
		return nil
	}
}
