package shelflife

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/caducidad-api/internal/domain"
	"github.com/jhoicas/caducidad-api/internal/domain/calendar"
)

// Nombres de estrategia aceptados en configuración (SHELF_THRESHOLD_STRATEGY).
const (
	StrategyRoundDays     = "round_days"
	StrategyFloorDays     = "floor_days"
	StrategyMonths        = "months"
	StrategyQuarterMonths = "quarter_months"
)

var (
	three        = decimal.NewFromInt(3)
	daysPerMonth = decimal.NewFromInt(30)
	daysPerQtr   = decimal.NewFromInt(90)
)

// ThresholdStrategy calcula la fecha 超三 a partir de hoy y la vida útil.
type ThresholdStrategy interface {
	Name() string
	TertiaryDate(today calendar.Date, shelfLifeDays decimal.Decimal) calendar.Date
}

// RoundedDays hoy − round(días/3) días. Es la política canónica.
type RoundedDays struct{}

func (RoundedDays) Name() string { return StrategyRoundDays }

func (RoundedDays) TertiaryDate(today calendar.Date, days decimal.Decimal) calendar.Date {
	return calendar.SubtractDays(today, int(days.Div(three).Round(0).IntPart()))
}

// FloorDays hoy − floor(días/3) días.
type FloorDays struct{}

func (FloorDays) Name() string { return StrategyFloorDays }

func (FloorDays) TertiaryDate(today calendar.Date, days decimal.Decimal) calendar.Date {
	return calendar.SubtractDays(today, int(days.Div(three).Floor().IntPart()))
}

// Months convierte días/3 a meses de 30 días y resta meses de calendario.
type Months struct{}

func (Months) Name() string { return StrategyMonths }

func (Months) TertiaryDate(today calendar.Date, days decimal.Decimal) calendar.Date {
	months := days.Div(three).Div(daysPerMonth).Round(0).IntPart()
	return calendar.SubtractMonths(today, int(months))
}

// QuarterMonths hoy − floor(días/90) meses.
type QuarterMonths struct{}

func (QuarterMonths) Name() string { return StrategyQuarterMonths }

func (QuarterMonths) TertiaryDate(today calendar.Date, days decimal.Decimal) calendar.Date {
	return calendar.SubtractMonths(today, int(days.Div(daysPerQtr).Floor().IntPart()))
}

// StrategyByName resuelve el nombre configurado; vacío equivale a round_days.
func StrategyByName(name string) (ThresholdStrategy, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", StrategyRoundDays:
		return RoundedDays{}, nil
	case StrategyFloorDays:
		return FloorDays{}, nil
	case StrategyMonths:
		return Months{}, nil
	case StrategyQuarterMonths:
		return QuarterMonths{}, nil
	default:
		return nil, fmt.Errorf("estrategia de umbral %q: %w", name, domain.ErrInvalidInput)
	}
}
