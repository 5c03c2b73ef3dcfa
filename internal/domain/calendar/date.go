// Package calendar implementa la aritmética de calendario gregoriano usada por el
// motor de vida útil: suma/resta de días y meses, días por mes (con años bisiestos)
// y diferencia fraccional de meses entre dos fechas.
//
// Una Date no tiene hora ni zona horaria: todas las comparaciones se hacen a
// resolución de día.
package calendar

import (
	"fmt"
	"time"
)

const (
	minYear = 1
	maxYear = 9999

	secondsPerDay = 24 * 60 * 60
)

// Date representa una fecha de calendario (año, mes, día) sin hora del día.
// El valor cero no es una fecha válida.
type Date struct {
	Year  int
	Month time.Month
	Day   int
}

// New construye una Date sin normalizar; usar Valid para comprobarla.
func New(year int, month time.Month, day int) Date {
	return Date{Year: year, Month: month, Day: day}
}

// FromTime toma año, mes y día de t en su propia zona horaria (trunca la hora).
func FromTime(t time.Time) Date {
	y, m, d := t.Date()
	return Date{Year: y, Month: m, Day: d}
}

// Today devuelve la fecha actual en loc. loc nil equivale a time.Local.
func Today(loc *time.Location) Date {
	if loc == nil {
		loc = time.Local
	}
	return FromTime(time.Now().In(loc))
}

// IsLeapYear regla gregoriana: divisible por 4 y no por 100, o divisible por 400.
func IsLeapYear(year int) bool {
	return (year%4 == 0 && year%100 != 0) || year%400 == 0
}

// DaysInMonth devuelve 28–31 según el mes y si el año es bisiesto.
// Devuelve 0 para un mes fuera de 1..12.
func DaysInMonth(year int, month time.Month) int {
	switch month {
	case time.January, time.March, time.May, time.July, time.August, time.October, time.December:
		return 31
	case time.April, time.June, time.September, time.November:
		return 30
	case time.February:
		if IsLeapYear(year) {
			return 29
		}
		return 28
	default:
		return 0
	}
}

// Valid indica si la fecha existe en el calendario (años 1..9999).
func (d Date) Valid() bool {
	if d.Year < minYear || d.Year > maxYear {
		return false
	}
	if d.Month < time.January || d.Month > time.December {
		return false
	}
	return d.Day >= 1 && d.Day <= DaysInMonth(d.Year, d.Month)
}

// IsZero indica si d es el valor cero (sin fecha).
func (d Date) IsZero() bool {
	return d == Date{}
}

// Time devuelve la medianoche de d en loc (UTC si loc es nil).
func (d Date) Time(loc *time.Location) time.Time {
	if loc == nil {
		loc = time.UTC
	}
	return time.Date(d.Year, d.Month, d.Day, 0, 0, 0, 0, loc)
}

// ordinal número de días desde la época Unix; exacto porque se calcula en UTC.
func (d Date) ordinal() int64 {
	return d.Time(time.UTC).Unix() / secondsPerDay
}

// Compare devuelve -1, 0 o +1 si d es anterior, igual o posterior a o.
func (d Date) Compare(o Date) int {
	switch {
	case d.Year != o.Year:
		return sign(d.Year - o.Year)
	case d.Month != o.Month:
		return sign(int(d.Month) - int(o.Month))
	default:
		return sign(d.Day - o.Day)
	}
}

// Before indica si d es estrictamente anterior a o.
func (d Date) Before(o Date) bool { return d.Compare(o) < 0 }

// After indica si d es estrictamente posterior a o.
func (d Date) After(o Date) bool { return d.Compare(o) > 0 }

// Equal indica si d y o son el mismo día.
func (d Date) Equal(o Date) bool { return d == o }

// ISO formato 2006-01-02.
func (d Date) ISO() string {
	return fmt.Sprintf("%04d-%02d-%02d", d.Year, int(d.Month), d.Day)
}

// String implementa fmt.Stringer con el formato ISO.
func (d Date) String() string {
	return d.ISO()
}

// AddDays suma n días (n puede ser negativo) cruzando meses y años.
// Una fecha inválida devuelve el valor cero.
func AddDays(d Date, n int) Date {
	if !d.Valid() {
		return Date{}
	}
	return FromTime(time.Date(d.Year, d.Month, d.Day+n, 0, 0, 0, 0, time.UTC))
}

// SubtractDays inversa de AddDays: AddDays(SubtractDays(d, n), n) == d.
func SubtractDays(d Date, n int) Date {
	return AddDays(d, -n)
}

// AddMonths suma n meses enteros. Si el día no existe en el mes destino se ajusta
// al último día de ese mes (31-ene + 1 mes = 28/29-feb).
func AddMonths(d Date, n int) Date {
	if !d.Valid() {
		return Date{}
	}
	total := d.Year*12 + int(d.Month-time.January) + n
	year := floorDiv(total, 12)
	month := time.Month(total-year*12) + time.January
	day := d.Day
	if last := DaysInMonth(year, month); day > last {
		day = last
	}
	return Date{Year: year, Month: month, Day: day}
}

// SubtractMonths equivale a AddMonths(d, -n).
func SubtractMonths(d Date, n int) Date {
	return AddMonths(d, -n)
}

// DaysBetween días enteros con signo de a hasta b (positivo si b es posterior).
func DaysBetween(a, b Date) int {
	return int(b.ordinal() - a.ordinal())
}

// MonthDifference distancia con signo en meses de a hasta b.
// Parte entera: meses completos. Parte fraccional: (día(b) − día(a)) / días del mes
// anterior a b, tomando prestado un mes cuando día(b) < día(a).
// Es negativa cuando a es posterior a b. Con fechas inválidas devuelve ok=false.
func MonthDifference(a, b Date) (months float64, ok bool) {
	if !a.Valid() || !b.Valid() {
		return 0, false
	}
	if a.After(b) {
		m, _ := MonthDifference(b, a)
		return -m, true
	}
	whole := (b.Year-a.Year)*12 + int(b.Month) - int(a.Month)
	prev := AddMonths(Date{Year: b.Year, Month: b.Month, Day: 1}, -1)
	borrowed := DaysInMonth(prev.Year, prev.Month)
	dayDiff := b.Day - a.Day
	if dayDiff < 0 {
		whole--
		dayDiff += borrowed
		// 31-ene → 1-mar: el mes prestado es más corto que el día de origen.
		if dayDiff < 0 {
			dayDiff = 0
		}
	}
	return float64(whole) + float64(dayDiff)/float64(borrowed), true
}

func sign(n int) int {
	switch {
	case n < 0:
		return -1
	case n > 0:
		return 1
	default:
		return 0
	}
}

func floorDiv(a, b int) int {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}
