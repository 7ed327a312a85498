package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/jhoicas/validador-cpe/internal/application/validation"
	"github.com/jhoicas/validador-cpe/internal/domain"
	"github.com/jhoicas/validador-cpe/internal/infrastructure/excel"
	"github.com/jhoicas/validador-cpe/internal/infrastructure/opener"
	"github.com/jhoicas/validador-cpe/internal/infrastructure/pdf"
	infrasunat "github.com/jhoicas/validador-cpe/internal/infrastructure/sunat"
	"github.com/jhoicas/validador-cpe/pkg/config"
	pkgsunat "github.com/jhoicas/validador-cpe/pkg/sunat"
)

type validarOptions struct {
	Excel     string
	Sheet     string
	Report    string
	MaxPasses int
	Delay     time.Duration
	NoOpen    bool
}

func (o *validarOptions) Bind(fs *pflag.FlagSet) {
	fs.StringVarP(&o.Excel, "excel", "f", "", "ruta de la plantilla (EXCEL_PATH)")
	fs.StringVar(&o.Sheet, "hoja", "", "nombre de la hoja (EXCEL_SHEET)")
	fs.StringVar(&o.Report, "reporte", "", "ruta del reporte PDF (REPORT_PDF_PATH)")
	fs.IntVar(&o.MaxPasses, "max-pasadas", -1, "máximo de pasadas, 0 = sin límite (RETRY_MAX_PASSES)")
	fs.DurationVar(&o.Delay, "espera", -1, "espera entre pasadas (RETRY_DELAY_SECONDS)")
	fs.BoolVar(&o.NoOpen, "sin-abrir", false, "no abrir la plantilla al terminar")
}

// apply sobrescribe la configuración con los flags que se indicaron.
func (o *validarOptions) apply(cfg *config.Config) {
	if o.Excel != "" {
		cfg.Excel.Path = o.Excel
	}
	if o.Sheet != "" {
		cfg.Excel.Sheet = o.Sheet
	}
	if o.Report != "" {
		cfg.Report.PDFPath = o.Report
	}
	if o.MaxPasses >= 0 {
		cfg.Retry.MaxPasses = o.MaxPasses
	}
	if o.Delay >= 0 {
		cfg.Retry.Delay = o.Delay
	}
	if o.NoOpen {
		cfg.Report.OpenOnFinish = false
	}
}

func NewCmdValidar(global *GlobalOptions) *cobra.Command {
	o := &validarOptions{}
	cmd := &cobra.Command{
		Use:   "validar",
		Short: "Valida en SUNAT todos los comprobantes de la plantilla Excel",
		Long: `Lee las credenciales de C3, E3 e I3, valida cada fila desde la 7,
consulta SUNAT y escribe el resultado en las columnas H a K. Repite la
pasada completa mientras alguna fila quede "SIN RESPUESTA".`,
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := global.Load()
			if err != nil {
				return err
			}
			o.apply(cfg)

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return runValidar(ctx, cfg)
		},
	}
	o.Bind(cmd.Flags())
	return cmd
}

func runValidar(ctx context.Context, cfg *config.Config) error {
	runID := uuid.NewString()
	log := newLogger(cfg).WithStr("run_id", runID)
	log.Info().
		Str("app", cfg.App.Name).
		Str("archivo", cfg.Excel.Path).
		Str("hoja", cfg.Excel.Sheet).
		Int("max_pasadas", cfg.Retry.MaxPasses).
		Msg("iniciando validación masiva")

	workbook := excel.NewWorkbook(cfg.Excel.Path, cfg.Excel.Sheet)
	tokens := infrasunat.NewCachedTokenProvider(
		infrasunat.NewTokenClient(cfg.SUNAT.TokenBaseURL, cfg.SUNAT.Scope, cfg.SUNAT.Timeout),
	)
	verifier := infrasunat.NewVerifierClient(cfg.SUNAT.APIBaseURL, pkgsunat.DefaultCatalogues(), cfg.SUNAT.Timeout, log)

	uc := validation.NewBatchUseCase(
		workbook, tokens, verifier,
		pdf.NewRunReportGenerator(), opener.NewSystemOpener(),
		validation.BatchOptions{
			RunID:        runID,
			Policy:       validation.RetryPolicy{Delay: cfg.Retry.Delay, MaxPasses: cfg.Retry.MaxPasses},
			ReportPath:   cfg.Report.PDFPath,
			OpenOnFinish: cfg.Report.OpenOnFinish,
		},
		log,
	)

	summary, err := uc.Run(ctx)
	switch {
	case err == nil:
	case errors.Is(err, domain.ErrMissingCredential):
		log.Error().Msg(err.Error())
		return err
	case errors.Is(err, domain.ErrAuthentication):
		log.Error().Err(err).Msg("error al obtener token")
		return err
	case errors.Is(err, domain.ErrRetriesExhausted):
		log.Error().Err(err).Msg("quedaron comprobantes sin respuesta")
		return err
	case errors.Is(err, context.Canceled):
		log.Warn().Msg("validación interrumpida")
		return err
	default:
		log.Error().Err(err).Msg("validación abortada")
		return fmt.Errorf("validar: %w", err)
	}

	if summary.State == validation.StateEmpty {
		return nil
	}
	log.Info().Int("pasadas", summary.Passes).Str("estado", string(summary.State)).Msg("validación finalizada")
	return nil
}
