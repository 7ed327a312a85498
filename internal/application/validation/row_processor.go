package validation

import (
	"context"

	"github.com/jhoicas/validador-cpe/internal/domain/cpe"
	"github.com/jhoicas/validador-cpe/internal/domain/entity"
	"github.com/jhoicas/validador-cpe/pkg/logger"
)

// RowReport lo que se hizo con una fila en una pasada.
type RowReport struct {
	Row     entity.InvoiceRow
	Outcome entity.Outcome
	Result  entity.RowResult
}

// NeedsRetry indica si la fila obliga a repetir la pasada.
func (r RowReport) NeedsRetry() bool {
	return r.Outcome == entity.OutcomeNoResponse
}

// RowProcessor valida una fila y, si corresponde, la consulta en SUNAT.
type RowProcessor struct {
	cred     entity.Credential
	tokens   TokenProvider
	verifier Verifier
	log      *logger.Logger
}

// NewRowProcessor construye el procesador para la credencial del consultante.
func NewRowProcessor(cred entity.Credential, tokens TokenProvider, verifier Verifier, log *logger.Logger) *RowProcessor {
	if log == nil {
		log = logger.Nop()
	}
	return &RowProcessor{cred: cred, tokens: tokens, verifier: verifier, log: log}
}

// Process nunca falla: los errores de la fila quedan en el resultado.
//   - fila vacía   → cuatro celdas en blanco, sin validar ni consultar
//   - rechazo      → "-", "-", "-", motivo
//   - consulta     → estado decodificado o centinela "SIN RESPUESTA"
func (p *RowProcessor) Process(ctx context.Context, row entity.InvoiceRow) RowReport {
	if row.IsBlank() {
		return RowReport{Row: row, Outcome: entity.OutcomeBlank, Result: entity.BlankResult()}
	}

	outcome := cpe.ValidateRow(row)
	if !outcome.Accepted() {
		return RowReport{Row: row, Outcome: entity.OutcomeRejected, Result: entity.RejectedResult(outcome.Reason)}
	}

	result := p.verify(ctx, row.Index, *outcome.Payload)
	report := RowReport{Row: row, Outcome: entity.OutcomeVerified, Result: result.RowResult()}
	if !result.Responded {
		report.Outcome = entity.OutcomeNoResponse
	}
	return report
}

func (p *RowProcessor) verify(ctx context.Context, index int, payload cpe.Payload) entity.VerificationResult {
	token, err := p.tokens.Token(ctx, p.cred)
	if err != nil {
		p.log.Warn().Err(err).Int("fila", index).Msg("no se pudo renovar el token")
		return entity.NoResponse()
	}

	v := p.verifier.Verify(ctx, p.cred.RUC, token, payload)
	if v.TokenRejected {
		p.log.Warn().Int("fila", index).Msg("token rechazado por SUNAT, se renovará en la siguiente consulta")
		p.tokens.Invalidate()
	}
	return v.Result
}
