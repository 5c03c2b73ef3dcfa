package shelflife

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/caducidad-api/internal/domain/calendar"
	"github.com/jhoicas/caducidad-api/internal/domain/entity"
)

// Clock fuente de la hora actual (inyectable para tests).
type Clock interface {
	Now() time.Time
}

// MetricsRecorder registra evaluaciones y rechazos. Implementado en infrastructure/metrics.
type MetricsRecorder interface {
	ObserveEvaluation(strategy string, kind entity.StatusKind, surfaced bool)
	ObserveRejection(reason string)
}

// LabelData datos necesarios para imprimir la etiqueta de un lote.
type LabelData struct {
	SKU            string
	ProductName    string
	Today          calendar.Date
	ProductionDate calendar.Date
	ShelfLifeDays  decimal.Decimal
	Dates          entity.DerivedDates
	Status         *entity.Status
}

// LabelPDFGenerator genera la etiqueta imprimible de un lote.
type LabelPDFGenerator interface {
	GenerateLabelPDF(ctx context.Context, label LabelData) ([]byte, error)
}

type nopMetrics struct{}

func (nopMetrics) ObserveEvaluation(string, entity.StatusKind, bool) {}
func (nopMetrics) ObserveRejection(string)                          {}
