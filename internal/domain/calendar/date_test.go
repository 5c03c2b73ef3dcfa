package calendar_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/caducidad-api/internal/domain/calendar"
)

func d(y int, m time.Month, day int) calendar.Date {
	return calendar.New(y, m, day)
}

func TestIsLeapYear(t *testing.T) {
	cases := map[int]bool{
		1900: false,
		2000: true,
		2020: true,
		2021: false,
		2024: true,
		2100: false,
		2400: true,
	}
	for year, want := range cases {
		assert.Equal(t, want, calendar.IsLeapYear(year), "año %d", year)
	}
}

func TestDaysInMonth(t *testing.T) {
	assert.Equal(t, 31, calendar.DaysInMonth(2023, time.January))
	assert.Equal(t, 28, calendar.DaysInMonth(2023, time.February))
	assert.Equal(t, 29, calendar.DaysInMonth(2024, time.February))
	assert.Equal(t, 28, calendar.DaysInMonth(1900, time.February))
	assert.Equal(t, 29, calendar.DaysInMonth(2000, time.February))
	assert.Equal(t, 30, calendar.DaysInMonth(2023, time.April))
	assert.Equal(t, 31, calendar.DaysInMonth(2023, time.December))
	assert.Equal(t, 0, calendar.DaysInMonth(2023, time.Month(13)))
}

func TestValid(t *testing.T) {
	assert.True(t, d(2024, time.February, 29).Valid())
	assert.False(t, d(2023, time.February, 29).Valid())
	assert.False(t, d(2023, time.April, 31).Valid())
	assert.False(t, d(2023, time.Month(0), 1).Valid())
	assert.False(t, d(0, time.January, 1).Valid())
	assert.False(t, calendar.Date{}.Valid())
}

func TestAddDays_BisiestoYCambioDeAnio(t *testing.T) {
	assert.Equal(t, d(2020, time.February, 29), calendar.AddDays(d(2020, time.February, 27), 2))
	assert.Equal(t, d(2021, time.March, 1), calendar.AddDays(d(2021, time.February, 27), 2))
	assert.Equal(t, d(2024, time.January, 1), calendar.AddDays(d(2023, time.December, 31), 1))
	assert.Equal(t, d(2023, time.December, 31), calendar.SubtractDays(d(2024, time.January, 1), 1))
	assert.Equal(t, d(2024, time.January, 11), calendar.AddDays(d(2024, time.January, 1), 10))
}

func TestAddDays_FechaInvalidaDevuelveCero(t *testing.T) {
	assert.True(t, calendar.AddDays(d(2023, time.February, 30), 1).IsZero())
}

func TestSubtractDays_RoundTrip(t *testing.T) {
	starts := []calendar.Date{
		d(2020, time.February, 29),
		d(2021, time.January, 1),
		d(1999, time.December, 31),
		d(2024, time.March, 1),
	}
	for _, start := range starts {
		for _, n := range []int{0, 1, 28, 29, 30, 31, 59, 365, 366, 1461, 9999} {
			got := calendar.AddDays(calendar.SubtractDays(start, n), n)
			assert.Equal(t, start, got, "start=%s n=%d", start, n)
		}
	}
}

func TestDaysBetween(t *testing.T) {
	assert.Equal(t, 10, calendar.DaysBetween(d(2024, time.January, 1), d(2024, time.January, 11)))
	assert.Equal(t, -10, calendar.DaysBetween(d(2024, time.January, 11), d(2024, time.January, 1)))
	assert.Equal(t, 366, calendar.DaysBetween(d(2024, time.January, 1), d(2025, time.January, 1)))
	assert.Equal(t, 365, calendar.DaysBetween(d(2023, time.January, 1), d(2024, time.January, 1)))

	// Fechas anteriores a 1970 también deben ser exactas.
	assert.Equal(t, 1, calendar.DaysBetween(d(1969, time.December, 31), d(1970, time.January, 1)))

	start := d(2023, time.June, 15)
	for n := 1; n <= 9999; n += 97 {
		assert.Equal(t, n, calendar.DaysBetween(start, calendar.AddDays(start, n)))
	}
}

func TestAddMonths_AjusteFinDeMes(t *testing.T) {
	assert.Equal(t, d(2024, time.February, 29), calendar.AddMonths(d(2024, time.January, 31), 1))
	assert.Equal(t, d(2023, time.February, 28), calendar.AddMonths(d(2023, time.January, 31), 1))
	assert.Equal(t, d(2025, time.January, 15), calendar.AddMonths(d(2024, time.December, 15), 1))
	assert.Equal(t, d(2023, time.November, 30), calendar.SubtractMonths(d(2024, time.March, 30), 4))
	assert.Equal(t, d(2022, time.December, 31), calendar.AddMonths(d(2024, time.December, 31), -24))
}

func TestCompare(t *testing.T) {
	a := d(2024, time.January, 1)
	b := d(2024, time.January, 2)
	assert.True(t, a.Before(b))
	assert.True(t, b.After(a))
	assert.False(t, a.After(a))
	assert.True(t, a.Equal(d(2024, time.January, 1)))
	assert.Equal(t, 0, a.Compare(a))
	assert.Equal(t, -1, d(2023, time.December, 31).Compare(a))
}

func TestMonthDifference(t *testing.T) {
	tests := []struct {
		name string
		a, b calendar.Date
		want float64
	}{
		{"mismo día", d(2024, time.January, 15), d(2024, time.January, 15), 0},
		{"un mes exacto", d(2024, time.January, 15), d(2024, time.February, 15), 1},
		{"medio mes sin préstamo", d(2024, time.March, 1), d(2024, time.March, 16), 15.0 / 29.0},
		{"con préstamo", d(2024, time.January, 20), d(2024, time.March, 10), 1 + 19.0/29.0},
		{"cruce de año", d(2023, time.December, 10), d(2024, time.February, 10), 2},
		{"negativo", d(2024, time.February, 15), d(2024, time.January, 15), -1},
		{"préstamo más corto que el día", d(2023, time.January, 31), d(2023, time.March, 1), 1},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, ok := calendar.MonthDifference(tc.a, tc.b)
			require.True(t, ok)
			assert.InDelta(t, tc.want, got, 1e-9)
		})
	}
}

func TestMonthDifference_FechaInvalida(t *testing.T) {
	_, ok := calendar.MonthDifference(calendar.Date{}, d(2024, time.January, 1))
	assert.False(t, ok)
	_, ok = calendar.MonthDifference(d(2024, time.January, 1), d(2023, time.February, 29))
	assert.False(t, ok)
}
