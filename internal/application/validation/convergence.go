package validation

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jhoicas/validador-cpe/internal/domain"
	"github.com/jhoicas/validador-cpe/internal/domain/entity"
	"github.com/jhoicas/validador-cpe/internal/domain/repository"
	"github.com/jhoicas/validador-cpe/pkg/logger"
)

// State estado del ciclo de pasadas.
type State string

const (
	StateRunning   State = "RUNNING"
	StateConverged State = "CONVERGED" // una pasada sin filas "SIN RESPUESTA"
	StateEmpty     State = "EMPTY"     // la hoja no tiene datos
	StateExhausted State = "EXHAUSTED" // se alcanzó MaxPasses con filas pendientes
)

// DefaultRetryDelay espera entre pasadas cuando hubo fallas remotas.
const DefaultRetryDelay = 15 * time.Second

// RetryPolicy controla la repetición de pasadas.
// MaxPasses == 0 significa sin límite: con SUNAT caído el ciclo no termina nunca.
type RetryPolicy struct {
	Delay     time.Duration
	MaxPasses int
}

// Sleeper espera d o hasta que ctx se cancele.
type Sleeper func(ctx context.Context, d time.Duration) error

func sleepContext(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

// PassSummary resumen de una pasada completa.
type PassSummary struct {
	Number     int
	LastRow    int
	Counts     map[entity.Outcome]int
	Rows       []RowReport
	NeedsRetry bool
}

// RunSummary resultado final del ciclo.
type RunSummary struct {
	State  State
	Passes int
	Last   *PassSummary // nil si la hoja estaba vacía
}

// ConvergenceLoop repite pasadas completas sobre la hoja hasta que ninguna fila
// quede "SIN RESPUESTA". Las filas se procesan en orden ascendente, una a la vez,
// y cada pasada se guarda antes de empezar la siguiente.
type ConvergenceLoop struct {
	workbook  repository.Workbook
	processor *RowProcessor
	policy    RetryPolicy
	sleep     Sleeper
	log       *logger.Logger
}

// NewConvergenceLoop construye el ciclo con la política indicada.
func NewConvergenceLoop(workbook repository.Workbook, processor *RowProcessor, policy RetryPolicy, log *logger.Logger) *ConvergenceLoop {
	if log == nil {
		log = logger.Nop()
	}
	return &ConvergenceLoop{
		workbook:  workbook,
		processor: processor,
		policy:    policy,
		sleep:     sleepContext,
		log:       log,
	}
}

// WithSleeper reemplaza la espera entre pasadas (tests).
func (l *ConvergenceLoop) WithSleeper(s Sleeper) *ConvergenceLoop {
	if s != nil {
		l.sleep = s
	}
	return l
}

// Run ejecuta pasadas hasta converger. Devuelve domain.ErrRetriesExhausted si
// la política limita las pasadas y la última aún tenía filas pendientes.
func (l *ConvergenceLoop) Run(ctx context.Context) (*RunSummary, error) {
	summary := &RunSummary{State: StateRunning}

	for pass := 1; ; pass++ {
		ps, err := l.runPass(ctx, pass)
		if errors.Is(err, domain.ErrNoData) {
			summary.State = StateEmpty
			l.log.Info().Msg("no hay datos para procesar")
			return summary, nil
		}
		if err != nil {
			return summary, err
		}
		summary.Passes = pass
		summary.Last = ps

		l.log.Info().
			Int("pasada", pass).
			Int("ultima_fila", ps.LastRow).
			Int("verificadas", ps.Counts[entity.OutcomeVerified]).
			Int("rechazadas", ps.Counts[entity.OutcomeRejected]).
			Int("vacias", ps.Counts[entity.OutcomeBlank]).
			Int("sin_respuesta", ps.Counts[entity.OutcomeNoResponse]).
			Msg("pasada completada")

		if !ps.NeedsRetry {
			summary.State = StateConverged
			return summary, nil
		}
		if l.policy.MaxPasses > 0 && pass >= l.policy.MaxPasses {
			summary.State = StateExhausted
			return summary, fmt.Errorf("%w: %d pasadas, %d filas sin respuesta",
				domain.ErrRetriesExhausted, pass, ps.Counts[entity.OutcomeNoResponse])
		}

		l.log.Warn().Dur("espera", l.policy.Delay).Msg("errores detectados, reintentando")
		if err := l.sleep(ctx, l.policy.Delay); err != nil {
			return summary, err
		}
	}
}

// runPass abre la hoja, procesa todas las filas de datos y guarda.
func (l *ConvergenceLoop) runPass(ctx context.Context, number int) (*PassSummary, error) {
	sheet, err := l.workbook.OpenSheet()
	if err != nil {
		return nil, fmt.Errorf("abrir hoja: %w", err)
	}
	defer sheet.Close()

	last, err := sheet.LastDataRow(entity.FirstDataRow)
	if err != nil {
		return nil, fmt.Errorf("buscar última fila: %w", err)
	}
	if last < entity.FirstDataRow {
		return nil, domain.ErrNoData
	}

	l.log.Info().Int("pasada", number).Int("ultima_fila", last).Msg("iniciando validación de comprobantes")

	ps := &PassSummary{
		Number:  number,
		LastRow: last,
		Counts:  make(map[entity.Outcome]int),
		Rows:    make([]RowReport, 0, last-entity.FirstDataRow+1),
	}
	for idx := entity.FirstDataRow; idx <= last; idx++ {
		row, err := sheet.ReadRow(idx)
		if err != nil {
			return nil, fmt.Errorf("leer fila %d: %w", idx, err)
		}

		report := l.processor.Process(ctx, row)
		if err := sheet.WriteResult(idx, report.Result); err != nil {
			return nil, fmt.Errorf("escribir fila %d: %w", idx, err)
		}

		ps.Counts[report.Outcome]++
		ps.Rows = append(ps.Rows, report)
		if report.NeedsRetry() {
			ps.NeedsRetry = true
		}
		l.logRow(report)
	}

	if err := sheet.Save(); err != nil {
		return nil, fmt.Errorf("guardar hoja: %w", err)
	}
	return ps, nil
}

func (l *ConvergenceLoop) logRow(r RowReport) {
	ev := l.log.Info()
	if r.Outcome == entity.OutcomeNoResponse {
		ev = l.log.Warn()
	}
	msg := r.Result.Status
	if r.Outcome == entity.OutcomeBlank {
		msg = "fila vacía, omitida"
	}
	ev.Int("fila", r.Row.Index).Str("resultado", string(r.Outcome)).Msg(msg)
}
