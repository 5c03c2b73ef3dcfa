package shelflife_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/caducidad-api/internal/domain/calendar"
	"github.com/jhoicas/caducidad-api/internal/domain/entity"
	"github.com/jhoicas/caducidad-api/internal/domain/shelflife"
)

func TestClassify_Vencido(t *testing.T) {
	production := date(2024, time.January, 1)
	today := date(2024, time.January, 12)
	dates, err := shelflife.Compute(production, days("10"), today)
	require.NoError(t, err)

	status := shelflife.DefaultClassifier().ClassifyDerived(production, dates, today, days("10"))
	require.NotNil(t, status)
	assert.Equal(t, entity.StatusExpired, status.Kind)
	assert.NotEmpty(t, status.Message)
}

func TestClassify_DiaDeVencimientoNoEstaVencido(t *testing.T) {
	production := date(2024, time.January, 1)
	today := date(2024, time.January, 11)
	dates, err := shelflife.Compute(production, days("10"), today)
	require.NoError(t, err)

	status := shelflife.DefaultClassifier().ClassifyDerived(production, dates, today, days("10"))
	require.NotNil(t, status)
	assert.NotEqual(t, entity.StatusExpired, status.Kind)
}

func TestClassify_ProduccionFuturaNoClasifica(t *testing.T) {
	today := date(2024, time.June, 1)
	production := date(2099, time.January, 1)
	// Incluso con un vencimiento ya pasado, la guarda de producción futura gana.
	status := shelflife.DefaultClassifier().Classify(
		production, date(2024, time.January, 1), date(2024, time.May, 1), today, days("30"))
	assert.Nil(t, status)
}

func TestClassify_UmbralExactoEsProximo(t *testing.T) {
	today := date(2024, time.June, 30)
	production := date(2024, time.June, 1)
	dates, err := shelflife.Compute(production, days("90"), today)
	require.NoError(t, err)
	require.Equal(t, today, calendar.AddDays(dates.TertiaryDate, 30))

	status := shelflife.DefaultClassifier().ClassifyDerived(production, dates, today, days("90"))
	require.NotNil(t, status)
	assert.Equal(t, entity.StatusApproachingThreshold, status.Kind)
}

func TestClassify_Reglas(t *testing.T) {
	today := date(2024, time.June, 30)
	expiry := date(2024, time.September, 28)
	tests := []struct {
		name       string
		production calendar.Date
		tertiary   calendar.Date
		days       string
		want       entity.StatusKind
	}{
		{"pasado el umbral", date(2024, time.April, 1), calendar.SubtractDays(today, 40), "90", entity.StatusPastThreshold},
		{"borde superior de la banda", date(2024, time.April, 1), calendar.SubtractDays(today, 31), "90", entity.StatusApproachingThreshold},
		{"justo fuera de la banda", date(2024, time.April, 1), calendar.SubtractDays(today, 32), "90", entity.StatusPastThreshold},
		{"borde inferior de la banda", date(2024, time.April, 1), calendar.SubtractDays(today, 29), "90", entity.StatusApproachingThreshold},
		{"orden anómalo", date(2024, time.June, 25), calendar.SubtractDays(today, 10), "90", entity.StatusAnomalousOrdering},
		{"normal", date(2024, time.June, 1), calendar.SubtractDays(today, 10), "90", entity.StatusNormal},
		{"umbral en el futuro", date(2024, time.June, 1), calendar.AddDays(today, 30), "90", entity.StatusApproachingThreshold},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			status := shelflife.DefaultClassifier().Classify(tc.production, expiry, tc.tertiary, today, days(tc.days))
			require.NotNil(t, status)
			assert.Equal(t, tc.want, status.Kind)
		})
	}
}

func TestClassify_OrdenAnomaloSoloMismoAnio(t *testing.T) {
	today := date(2024, time.January, 7)
	tertiary := date(2023, time.December, 28)
	production := date(2024, time.January, 2)
	status := shelflife.DefaultClassifier().Classify(production, date(2024, time.April, 1), tertiary, today, days("90"))
	require.NotNil(t, status)
	assert.Equal(t, entity.StatusNormal, status.Kind)
}

func TestClassify_VencidoTienePrioridadSobreUmbral(t *testing.T) {
	today := date(2024, time.June, 30)
	status := shelflife.DefaultClassifier().Classify(
		date(2024, time.January, 1), date(2024, time.March, 31), calendar.SubtractDays(today, 200), today, days("90"))
	require.NotNil(t, status)
	assert.Equal(t, entity.StatusExpired, status.Kind)
}

func TestClassify_BandaCero(t *testing.T) {
	today := date(2024, time.June, 30)
	production := date(2024, time.May, 1)
	c := shelflife.NewClassifier(decimal.Zero)

	// round(100/3) = 33 frente a 33.33: fuera de una banda nula.
	dates, err := shelflife.Compute(production, days("100"), today)
	require.NoError(t, err)
	status := c.ClassifyDerived(production, dates, today, days("100"))
	require.NotNil(t, status)
	assert.Equal(t, entity.StatusNormal, status.Kind)

	// 90/3 = 30 exacto sigue dentro.
	dates, err = shelflife.Compute(production, days("90"), today)
	require.NoError(t, err)
	status = c.ClassifyDerived(production, dates, today, days("90"))
	require.NotNil(t, status)
	assert.Equal(t, entity.StatusApproachingThreshold, status.Kind)
}

func TestClassify_FechasInvalidasSinEstado(t *testing.T) {
	c := shelflife.DefaultClassifier()
	today := date(2024, time.June, 30)
	valid := date(2024, time.June, 1)

	assert.Nil(t, c.Classify(calendar.Date{}, valid, valid, today, days("30")))
	assert.Nil(t, c.Classify(valid, calendar.Date{}, valid, today, days("30")))
	assert.Nil(t, c.Classify(valid, valid, date(2023, time.February, 29), today, days("30")))
	assert.Nil(t, c.Classify(valid, valid, valid, calendar.Date{}, days("30")))
	assert.Nil(t, c.Classify(valid, valid, valid, today, days("0")))
}

func TestClassify_Idempotente(t *testing.T) {
	c := shelflife.DefaultClassifier()
	today := date(2024, time.June, 30)
	production := date(2024, time.May, 1)
	dates, err := shelflife.Compute(production, days("60"), today)
	require.NoError(t, err)

	first := c.ClassifyDerived(production, dates, today, days("60"))
	second := c.ClassifyDerived(production, dates, today, days("60"))
	assert.Equal(t, first, second)
}

func TestNewClassifier_BandaNegativa(t *testing.T) {
	c := shelflife.NewClassifier(decimal.NewFromInt(-5))
	today := date(2024, time.June, 30)
	status := c.Classify(date(2024, time.June, 1), date(2024, time.September, 28), calendar.SubtractDays(today, 30), today, days("90"))
	require.NotNil(t, status)
	assert.Equal(t, entity.StatusApproachingThreshold, status.Kind)
}
