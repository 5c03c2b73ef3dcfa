// Package shelflife contiene los servicios de dominio del motor de vida útil:
// el cálculo de fechas derivadas (vencimiento, etiquetado, 超三) y la clasificación
// del estado de un lote respecto a hoy. Ambos son funciones puras.
package shelflife

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/caducidad-api/internal/domain"
	"github.com/jhoicas/caducidad-api/internal/domain/calendar"
	"github.com/jhoicas/caducidad-api/internal/domain/entity"
)

// MaxShelfLifeDays límite superior aceptado para la vida útil.
const MaxShelfLifeDays = 9999

var (
	maxDays     = decimal.NewFromInt(MaxShelfLifeDays)
	hoursPerDay = decimal.NewFromInt(24)
)

// ValidateShelfLife rechaza valores <= 0 o > 9999 sin ajustarlos.
func ValidateShelfLife(days decimal.Decimal) error {
	if days.LessThanOrEqual(decimal.Zero) || days.GreaterThan(maxDays) {
		return fmt.Errorf("%s días: %w", days.String(), domain.ErrInvalidShelfLife)
	}
	return nil
}

// Calculator deriva las fechas de un lote con una estrategia de umbral fija.
type Calculator struct {
	strategy ThresholdStrategy
}

// NewCalculator construye el calculador; strategy nil usa RoundedDays.
func NewCalculator(strategy ThresholdStrategy) *Calculator {
	if strategy == nil {
		strategy = RoundedDays{}
	}
	return &Calculator{strategy: strategy}
}

// Strategy devuelve la estrategia de umbral en uso.
func (c *Calculator) Strategy() ThresholdStrategy {
	return c.strategy
}

// Compute calcula vencimiento, etiquetado y 超三.
// No hace cálculos parciales: ante una entrada inválida, o si alguna fecha derivada cae
// fuera de los años 1 a 9999, devuelve el error y DerivedDates vacío. Con err == nil
// las tres fechas son siempre válidas.
func (c *Calculator) Compute(productionDate calendar.Date, shelfLifeDays decimal.Decimal, today calendar.Date) (entity.DerivedDates, error) {
	if err := ValidateShelfLife(shelfLifeDays); err != nil {
		return entity.DerivedDates{}, err
	}
	if !productionDate.Valid() {
		return entity.DerivedDates{}, fmt.Errorf("producción %s: %w", productionDate, domain.ErrInvalidDate)
	}
	if !today.Valid() {
		return entity.DerivedDates{}, fmt.Errorf("hoy %s: %w", today, domain.ErrInvalidDate)
	}

	whole := shelfLifeDays.Floor()
	expiry := calendar.AddDays(productionDate, int(whole.IntPart()))
	if !expiry.Valid() {
		return entity.DerivedDates{}, fmt.Errorf("vencimiento fuera de calendario: %w", domain.ErrInvalidDate)
	}

	var hourOffset int
	if fraction := shelfLifeDays.Sub(whole); fraction.IsPositive() {
		hourOffset = int(fraction.Mul(hoursPerDay).Round(0).IntPart())
	}

	label := calendar.SubtractDays(expiry, 1)
	if !label.Valid() {
		return entity.DerivedDates{}, fmt.Errorf("fecha de etiqueta fuera de calendario: %w", domain.ErrInvalidDate)
	}
	tertiary := c.strategy.TertiaryDate(today, shelfLifeDays)
	if !tertiary.Valid() {
		return entity.DerivedDates{}, fmt.Errorf("fecha 超三 fuera de calendario (hoy %s): %w", today, domain.ErrInvalidDate)
	}

	return entity.DerivedDates{
		ExpiryDate:       expiry,
		LabelDate:        label,
		TertiaryDate:     tertiary,
		ExpiryHourOffset: hourOffset,
	}, nil
}

// Compute atajo con la estrategia canónica (RoundedDays).
func Compute(productionDate calendar.Date, shelfLifeDays decimal.Decimal, today calendar.Date) (entity.DerivedDates, error) {
	return NewCalculator(nil).Compute(productionDate, shelfLifeDays, today)
}
