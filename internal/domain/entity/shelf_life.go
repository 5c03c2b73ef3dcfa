package entity

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/caducidad-api/internal/domain/calendar"
)

// ShelfLifeInput datos de entrada ya validados por la capa de presentación.
// ShelfLifeDays puede llevar fracción (resto de un día, en horas).
type ShelfLifeInput struct {
	ProductionDate calendar.Date
	ShelfLifeDays  decimal.Decimal
}

// CurrentContext fecha de "hoy" a resolución de día.
type CurrentContext struct {
	Today calendar.Date
}

// DerivedDates fechas calculadas para un lote.
//
//	ExpiryDate   = ProductionDate + floor(ShelfLifeDays) días
//	LabelDate    = ExpiryDate − 1 día
//	TertiaryDate = Today − round(ShelfLifeDays / 3) días (estrategia por defecto)
//
// ExpiryHourOffset es informativo: round(fracción × 24) horas sobre ExpiryDate,
// no cambia el día usado en las comparaciones.
type DerivedDates struct {
	ExpiryDate       calendar.Date
	LabelDate        calendar.Date
	TertiaryDate     calendar.Date
	ExpiryHourOffset int
}

// ExpiryInstant instante de vencimiento incluyendo el desfase en horas.
func (d DerivedDates) ExpiryInstant(loc *time.Location) time.Time {
	return d.ExpiryDate.Time(loc).Add(time.Duration(d.ExpiryHourOffset) * time.Hour)
}

// Valid indica si las tres fechas son fechas de calendario reales.
func (d DerivedDates) Valid() bool {
	return d.ExpiryDate.Valid() && d.LabelDate.Valid() && d.TertiaryDate.Valid()
}
