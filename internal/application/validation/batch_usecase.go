package validation

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/jhoicas/validador-cpe/internal/domain"
	"github.com/jhoicas/validador-cpe/internal/domain/repository"
	"github.com/jhoicas/validador-cpe/pkg/logger"
)

// ReportMeta datos de cabecera del reporte PDF.
type ReportMeta struct {
	RunID         string
	WorkbookPath  string
	ConsultantRUC string
	GeneratedAt   time.Time
}

// ReportGenerator genera el reporte de la última pasada.
type ReportGenerator interface {
	GenerateRunReport(ctx context.Context, summary *RunSummary, meta ReportMeta) ([]byte, error)
}

// FileOpener abre un archivo con la aplicación por defecto del sistema.
type FileOpener interface {
	Open(path string) error
}

// BatchOptions opciones de la ejecución masiva.
type BatchOptions struct {
	RunID        string
	Policy       RetryPolicy
	ReportPath   string // vacío = sin reporte PDF
	OpenOnFinish bool
}

// BatchUseCase ejecuta la validación masiva sobre la plantilla:
//
//	credenciales → token → pasadas hasta converger → reporte → abrir archivo
type BatchUseCase struct {
	workbook repository.Workbook
	tokens   TokenProvider
	verifier Verifier
	report   ReportGenerator // puede ser nil
	opener   FileOpener      // puede ser nil
	opts     BatchOptions
	sleep    Sleeper
	log      *logger.Logger
}

// NewBatchUseCase construye el caso de uso inyectando todas sus dependencias.
func NewBatchUseCase(
	workbook repository.Workbook,
	tokens TokenProvider,
	verifier Verifier,
	report ReportGenerator,
	opener FileOpener,
	opts BatchOptions,
	log *logger.Logger,
) *BatchUseCase {
	if log == nil {
		log = logger.Nop()
	}
	return &BatchUseCase{
		workbook: workbook,
		tokens:   tokens,
		verifier: verifier,
		report:   report,
		opener:   opener,
		opts:     opts,
		log:      log,
	}
}

// WithSleeper reemplaza la espera entre pasadas (tests).
func (uc *BatchUseCase) WithSleeper(s Sleeper) *BatchUseCase {
	uc.sleep = s
	return uc
}

// Run devuelve:
//   - domain.ErrMissingCredential si falta una celda de credenciales (antes de usar la red)
//   - domain.ErrAuthentication si SUNAT no entrega el token
//   - domain.ErrRetriesExhausted si la política de pasadas se agotó
func (uc *BatchUseCase) Run(ctx context.Context) (*RunSummary, error) {
	cred, err := uc.workbook.ReadCredential()
	if err != nil {
		return nil, fmt.Errorf("leer credenciales: %w", err)
	}
	if err := CheckCredential(cred, WorkbookCredentialCells); err != nil {
		return nil, err
	}

	uc.log.Info().Msg("obteniendo token de SUNAT")
	if _, err := uc.tokens.Token(ctx, cred); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrAuthentication, err)
	}
	uc.log.Info().Msg("token obtenido correctamente")

	processor := NewRowProcessor(cred, uc.tokens, uc.verifier, uc.log)
	loop := NewConvergenceLoop(uc.workbook, processor, uc.opts.Policy, uc.log).WithSleeper(uc.sleep)

	summary, err := loop.Run(ctx)
	if err != nil {
		return summary, err
	}

	if summary.State == StateConverged {
		uc.log.Info().Int("ultima_fila", summary.Last.LastRow).Int("pasadas", summary.Passes).Msg("consultas completadas")
		uc.writeReport(ctx, summary, cred.RUC)
	}
	if uc.opts.OpenOnFinish && uc.opener != nil {
		if err := uc.opener.Open(uc.workbook.Path()); err != nil {
			uc.log.Warn().Err(err).Str("archivo", uc.workbook.Path()).Msg("no se pudo abrir el archivo")
		}
	}
	return summary, nil
}

// writeReport falla en silencio (solo log): el resultado ya quedó en la hoja.
func (uc *BatchUseCase) writeReport(ctx context.Context, summary *RunSummary, consultantRUC string) {
	if uc.report == nil || uc.opts.ReportPath == "" || summary.Last == nil {
		return
	}
	pdf, err := uc.report.GenerateRunReport(ctx, summary, ReportMeta{
		RunID:         uc.opts.RunID,
		WorkbookPath:  uc.workbook.Path(),
		ConsultantRUC: consultantRUC,
		GeneratedAt:   time.Now(),
	})
	if err != nil {
		uc.log.Error().Err(err).Msg("generar reporte PDF")
		return
	}
	if err := os.WriteFile(uc.opts.ReportPath, pdf, 0o644); err != nil {
		uc.log.Error().Err(err).Str("archivo", uc.opts.ReportPath).Msg("guardar reporte PDF")
		return
	}
	uc.log.Info().Str("archivo", uc.opts.ReportPath).Msg("reporte PDF generado")
}
