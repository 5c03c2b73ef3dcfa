package shelflife

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/caducidad-api/internal/application/dto"
	"github.com/jhoicas/caducidad-api/internal/domain"
	"github.com/jhoicas/caducidad-api/internal/domain/calendar"
	"github.com/jhoicas/caducidad-api/internal/domain/entity"
	engine "github.com/jhoicas/caducidad-api/internal/domain/shelflife"
	"github.com/jhoicas/caducidad-api/pkg/logger"
)

// Options parámetros del motor tomados de la configuración.
type Options struct {
	Strategy          engine.ThresholdStrategy
	ToleranceBandDays int
	Location          *time.Location
}

// EvaluateUseCase orquesta parseo → cálculo → clasificación → decisión de alerta.
// El cálculo y la clasificación son puros; el único estado es el AlertTracker.
type EvaluateUseCase struct {
	calc       *engine.Calculator
	classifier *engine.Classifier
	clock      Clock
	loc        *time.Location
	tracker    *AlertTracker
	metrics    MetricsRecorder
	log        *logger.Logger
}

// NewEvaluateUseCase construye el caso de uso. metrics y log pueden ser nil.
func NewEvaluateUseCase(clock Clock, tracker *AlertTracker, metrics MetricsRecorder, log *logger.Logger, opts Options) *EvaluateUseCase {
	if opts.Location == nil {
		opts.Location = time.Local
	}
	if tracker == nil {
		tracker = NewAlertTracker()
	}
	if metrics == nil {
		metrics = nopMetrics{}
	}
	if log == nil {
		log = logger.Nop()
	}
	return &EvaluateUseCase{
		calc:       engine.NewCalculator(opts.Strategy),
		classifier: engine.NewClassifier(decimal.NewFromInt(int64(opts.ToleranceBandDays))),
		clock:      clock,
		loc:        opts.Location,
		tracker:    tracker,
		metrics:    metrics,
		log:        log,
	}
}

// Evaluation resultado de evaluar un lote (valores inmutables).
type Evaluation struct {
	ID      string
	Input   entity.ShelfLifeInput
	Context entity.CurrentContext
	Dates   entity.DerivedDates
	Status  *entity.Status
}

// Today fecha actual en la zona horaria configurada.
func (uc *EvaluateUseCase) Today() calendar.Date {
	return calendar.FromTime(uc.clock.Now().In(uc.loc))
}

// TodayResponse fecha actual para la capa de presentación.
func (uc *EvaluateUseCase) TodayResponse() dto.TodayResponse {
	return dto.TodayResponse{Today: toDateDTO(uc.Today()), Timezone: uc.loc.String()}
}

// StrategyName estrategia de umbral en uso.
func (uc *EvaluateUseCase) StrategyName() string {
	return uc.calc.Strategy().Name()
}

// EvaluateInput calcula y clasifica una entrada ya parseada.
// unit "months" interpreta ShelfLifeDays como meses enteros de calendario.
func (uc *EvaluateUseCase) EvaluateInput(in entity.ShelfLifeInput, unit string) (*Evaluation, error) {
	today := uc.Today()
	days, err := uc.effectiveDays(in, unit)
	if err != nil {
		return nil, err
	}
	dates, err := uc.calc.Compute(in.ProductionDate, days, today)
	if err != nil {
		return nil, err
	}
	status := uc.classifier.ClassifyDerived(in.ProductionDate, dates, today, days)
	return &Evaluation{
		ID:      uuid.New().String(),
		Input:   entity.ShelfLifeInput{ProductionDate: in.ProductionDate, ShelfLifeDays: days},
		Context: entity.CurrentContext{Today: today},
		Dates:   dates,
		Status:  status,
	}, nil
}

// effectiveDays convierte meses a días reales de calendario desde la fecha de producción.
func (uc *EvaluateUseCase) effectiveDays(in entity.ShelfLifeInput, unit string) (decimal.Decimal, error) {
	switch unit {
	case "", dto.UnitDays:
		return in.ShelfLifeDays, nil
	case dto.UnitMonths:
		if !in.ShelfLifeDays.IsInteger() || !in.ShelfLifeDays.IsPositive() {
			return decimal.Zero, fmt.Errorf("%s meses: %w", in.ShelfLifeDays, domain.ErrInvalidShelfLife)
		}
		if !in.ProductionDate.Valid() {
			return decimal.Zero, fmt.Errorf("producción %s: %w", in.ProductionDate, domain.ErrInvalidDate)
		}
		if in.ShelfLifeDays.GreaterThan(decimal.NewFromInt(engine.MaxShelfLifeDays)) {
			return decimal.Zero, fmt.Errorf("%s meses: %w", in.ShelfLifeDays, domain.ErrInvalidShelfLife)
		}
		expiry := calendar.AddMonths(in.ProductionDate, int(in.ShelfLifeDays.IntPart()))
		return decimal.NewFromInt(int64(calendar.DaysBetween(in.ProductionDate, expiry))), nil
	default:
		return decimal.Zero, fmt.Errorf("unidad %q: %w", unit, domain.ErrInvalidInput)
	}
}

// Evaluate atiende una petición de la capa de presentación.
// Con session_id la decisión de mostrar la alerta la toma el AlertTracker; sin él,
// se compara contra previous_kind enviado por el cliente.
func (uc *EvaluateUseCase) Evaluate(ctx context.Context, req dto.EvaluateRequest) (*dto.EvaluateResponse, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	production, err := calendar.ParseDate(req.ProductionDate)
	if err != nil {
		uc.metrics.ObserveRejection("invalid_date")
		return nil, err
	}
	days, err := ParseShelfLife(req.ShelfLife)
	if err != nil {
		uc.metrics.ObserveRejection("invalid_shelf_life")
		return nil, err
	}
	unit := strings.ToLower(strings.TrimSpace(req.Unit))
	input := entity.ShelfLifeInput{ProductionDate: production, ShelfLifeDays: days}

	ev, err := uc.EvaluateInput(input, unit)
	if err != nil {
		uc.metrics.ObserveRejection(rejectionReason(err))
		return nil, err
	}

	var show bool
	if req.SessionID != "" {
		show = uc.tracker.Observe(req.SessionID, input, unit, ev.Status)
	} else {
		show, _ = ShouldSurface(entity.ParseStatusKind(req.PreviousKind), ev.Status)
	}
	uc.record(ev, show)
	return uc.toResponse(ev, show), nil
}

// Reevaluate vuelve a evaluar la última entrada de una sesión con la fecha de hoy.
// Solo actualiza el último tipo mostrado, y solo si el cliente no envió una entrada
// nueva mientras tanto; si la envió, la respuesta sale con show_alert=false.
// Devuelve domain.ErrNotFound si la sesión no existe.
func (uc *EvaluateUseCase) Reevaluate(ctx context.Context, sessionID string) (*dto.EvaluateResponse, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	input, unit, version, ok := uc.tracker.Snapshot(sessionID)
	if !ok {
		return nil, domain.ErrNotFound
	}
	ev, err := uc.EvaluateInput(input, unit)
	if err != nil {
		return nil, err
	}
	show, applied := uc.tracker.ObserveIfCurrent(sessionID, version, ev.Status)
	if !applied {
		uc.log.Debug().Str("session_id", sessionID).Msg("re-evaluación descartada: entrada más reciente")
	}
	uc.record(ev, show)
	return uc.toResponse(ev, show), nil
}

// ReevaluateAll re-evalúa todas las sesiones conocidas (tras un cambio de día)
// y devuelve cuántas produjeron una alerta nueva.
func (uc *EvaluateUseCase) ReevaluateAll(ctx context.Context) (int, error) {
	fresh := 0
	for _, key := range uc.tracker.Keys() {
		out, err := uc.Reevaluate(ctx, key)
		if err != nil {
			if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
				return fresh, err
			}
			uc.log.Warn().Err(err).Str("session_id", key).Msg("re-evaluación de sesión")
			continue
		}
		if out.ShowAlert {
			fresh++
			uc.log.Info().
				Str("session_id", key).
				Str("status", out.Status.Kind).
				Msg("nueva alerta tras cambio de día")
		}
	}
	return fresh, nil
}

func (uc *EvaluateUseCase) record(ev *Evaluation, show bool) {
	kind := entity.StatusNone
	if ev.Status != nil {
		kind = ev.Status.Kind
	}
	uc.metrics.ObserveEvaluation(uc.StrategyName(), kind, show)
	uc.log.Debug().
		Str("evaluation_id", ev.ID).
		Str("production_date", ev.Input.ProductionDate.ISO()).
		Str("shelf_life_days", ev.Input.ShelfLifeDays.String()).
		Str("status", string(kind)).
		Bool("show_alert", show).
		Msg("evaluación de vida útil")
}

func (uc *EvaluateUseCase) toResponse(ev *Evaluation, show bool) *dto.EvaluateResponse {
	out := &dto.EvaluateResponse{
		EvaluationID:   ev.ID,
		Today:          toDateDTO(ev.Context.Today),
		ProductionDate: toDateDTO(ev.Input.ProductionDate),
		ShelfLifeDays:  ev.Input.ShelfLifeDays,
		Strategy:       uc.StrategyName(),
		Dates: dto.DerivedDatesResponse{
			ExpiryDate:       toDateDTO(ev.Dates.ExpiryDate),
			LabelDate:        toDateDTO(ev.Dates.LabelDate),
			TertiaryDate:     toDateDTO(ev.Dates.TertiaryDate),
			ExpiryHourOffset: ev.Dates.ExpiryHourOffset,
		},
		ShowAlert: show,
	}
	if ev.Status != nil && ev.Status.Kind.Surfaced() {
		out.Status = &dto.StatusResponse{Kind: string(ev.Status.Kind), Message: ev.Status.Message}
	}
	return out
}

// ParseShelfLife interpreta la vida útil enviada como número JSON o cadena.
// Cualquier valor no numérico o fuera de (0, 9999] devuelve domain.ErrInvalidShelfLife.
func ParseShelfLife(raw json.RawMessage) (decimal.Decimal, error) {
	s := strings.TrimSpace(string(raw))
	if strings.HasPrefix(s, `"`) {
		var str string
		if err := json.Unmarshal(raw, &str); err != nil {
			return decimal.Zero, fmt.Errorf("vida útil: %w", domain.ErrInvalidShelfLife)
		}
		s = strings.TrimSpace(str)
	}
	return ParseShelfLifeText(s)
}

// ParseShelfLifeText igual que ParseShelfLife para texto plano (CSV, formularios).
func ParseShelfLifeText(s string) (decimal.Decimal, error) {
	s = strings.TrimSpace(s)
	if s == "" || s == "null" {
		return decimal.Zero, fmt.Errorf("vida útil vacía: %w", domain.ErrInvalidShelfLife)
	}
	days, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, fmt.Errorf("vida útil %q: %w", s, domain.ErrInvalidShelfLife)
	}
	if err := engine.ValidateShelfLife(days); err != nil {
		return decimal.Zero, err
	}
	return days, nil
}

func rejectionReason(err error) string {
	switch {
	case errors.Is(err, domain.ErrInvalidDate):
		return "invalid_date"
	case errors.Is(err, domain.ErrInvalidShelfLife):
		return "invalid_shelf_life"
	default:
		return "invalid_input"
	}
}

func toDateDTO(d calendar.Date) dto.DateDTO {
	if !d.Valid() {
		return dto.DateDTO{}
	}
	return dto.DateDTO{ISO: d.ISO(), Display: calendar.Format(d)}
}
