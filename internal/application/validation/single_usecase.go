package validation

import (
	"context"
	"fmt"
	"sync"

	"github.com/jhoicas/validador-cpe/internal/application/dto"
	"github.com/jhoicas/validador-cpe/internal/domain"
	"github.com/jhoicas/validador-cpe/internal/domain/entity"
	"github.com/jhoicas/validador-cpe/pkg/logger"
)

// SingleUseCase valida un comprobante suelto (modo servidor) con las mismas reglas
// que la plantilla. Las consultas a SUNAT se hacen de a una aunque lleguen
// peticiones concurrentes.
type SingleUseCase struct {
	mu        sync.Mutex
	processor *RowProcessor
	log       *logger.Logger
}

// NewSingleUseCase verifica la credencial y construye el procesador.
func NewSingleUseCase(cred entity.Credential, tokens TokenProvider, verifier Verifier, log *logger.Logger) (*SingleUseCase, error) {
	if err := CheckCredential(cred, EnvCredentialVars); err != nil {
		return nil, err
	}
	if log == nil {
		log = logger.Nop()
	}
	return &SingleUseCase{processor: NewRowProcessor(cred, tokens, verifier, log), log: log}, nil
}

// Validate procesa el comprobante. caller es el subject del token (vacío sin JWT).
// Una fila completamente vacía es domain.ErrInvalidInput.
func (uc *SingleUseCase) Validate(ctx context.Context, caller string, in dto.ValidateComprobanteRequest) (*dto.ValidateComprobanteResponse, error) {
	row := entity.InvoiceRow{
		RUC:          in.RUC,
		DocumentType: in.DocumentType,
		Series:       in.Series,
		Number:       in.Number,
		IssueDate:    in.IssueDate,
		Amount:       in.Amount,
	}
	if row.IsBlank() {
		return nil, fmt.Errorf("%w: comprobante vacío", domain.ErrInvalidInput)
	}

	uc.mu.Lock()
	report := uc.processor.Process(ctx, row)
	uc.mu.Unlock()

	uc.log.Info().
		Str("cliente", caller).
		Str("serie", row.Series).
		Str("numero", row.Number).
		Str("resultado", string(report.Outcome)).
		Msg("consulta individual")

	return &dto.ValidateComprobanteResponse{
		Status:       report.Result.Status,
		RUCStatus:    report.Result.RUCStatus,
		Domicile:     report.Result.Domicile,
		Observations: report.Result.Observations,
		Outcome:      string(report.Outcome),
		Retry:        report.NeedsRetry(),
	}, nil
}
