package shelflife

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/caducidad-api/internal/domain/calendar"
	"github.com/jhoicas/caducidad-api/internal/domain/entity"
)

// DefaultToleranceBandDays banda simétrica alrededor de la tolerancia (días/3)
// dentro de la cual el lote se considera "próximo al umbral".
const DefaultToleranceBandDays = 1

// Classifier evalúa las fechas derivadas contra hoy. No guarda estado.
type Classifier struct {
	band decimal.Decimal
}

// NewClassifier construye el clasificador. bandDays negativo se trata como 0.
func NewClassifier(bandDays decimal.Decimal) *Classifier {
	if bandDays.IsNegative() {
		bandDays = decimal.Zero
	}
	return &Classifier{band: bandDays}
}

// DefaultClassifier clasificador con banda de 1 día.
func DefaultClassifier() *Classifier {
	return NewClassifier(decimal.NewFromInt(DefaultToleranceBandDays))
}

// Classify aplica las reglas en orden estricto; gana la primera que coincide:
//
//  1. producción posterior a hoy → nil (aún no producido)
//  2. hoy posterior al vencimiento → Expired
//  3. delta = |hoy − 超三| en días, tolerancia = días/3:
//     delta > tolerancia + banda → PastThreshold;
//     |delta − tolerancia| <= banda → ApproachingThreshold
//  4. producción posterior a 超三 en el mismo año → AnomalousOrdering
//  5. en otro caso → Normal
//
// Nunca falla: con cualquier fecha o vida útil inválida devuelve nil.
func (c *Classifier) Classify(productionDate, expiryDate, tertiaryDate, today calendar.Date, shelfLifeDays decimal.Decimal) *entity.Status {
	if !productionDate.Valid() || !expiryDate.Valid() || !tertiaryDate.Valid() || !today.Valid() {
		return nil
	}
	if ValidateShelfLife(shelfLifeDays) != nil {
		return nil
	}

	if productionDate.After(today) {
		return nil
	}
	if today.After(expiryDate) {
		return statusOf(entity.StatusExpired)
	}

	delta := decimal.NewFromInt(int64(abs(calendar.DaysBetween(tertiaryDate, today))))
	tolerance := shelfLifeDays.Div(three)
	diff := delta.Sub(tolerance)
	switch {
	case diff.GreaterThan(c.band):
		return statusOf(entity.StatusPastThreshold)
	case diff.Abs().LessThanOrEqual(c.band):
		return statusOf(entity.StatusApproachingThreshold)
	}

	if productionDate.After(tertiaryDate) && productionDate.Year == tertiaryDate.Year {
		return statusOf(entity.StatusAnomalousOrdering)
	}
	return statusOf(entity.StatusNormal)
}

// ClassifyDerived atajo que toma las fechas de un DerivedDates.
func (c *Classifier) ClassifyDerived(productionDate calendar.Date, dates entity.DerivedDates, today calendar.Date, shelfLifeDays decimal.Decimal) *entity.Status {
	return c.Classify(productionDate, dates.ExpiryDate, dates.TertiaryDate, today, shelfLifeDays)
}

func statusOf(kind entity.StatusKind) *entity.Status {
	s := entity.NewStatus(kind)
	return &s
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
