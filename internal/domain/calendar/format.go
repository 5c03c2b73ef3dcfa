package calendar

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"golang.org/x/text/width"

	"github.com/jhoicas/caducidad-api/internal/domain"
)

// datePattern acepta 2024-01-02, 2024/1/2, 2024.01.02 y 2024年1月2日, con una hora
// opcional detrás (datetime-local o RFC3339) que se ignora.
var datePattern = regexp.MustCompile(`^(\d{1,4})\s*[-/.年]\s*(\d{1,2})\s*[-/.月]\s*(\d{1,2})\s*日?` +
	`(?:[T\s]\s*\d{1,2}:\d{2}(?::\d{2}(?:\.\d+)?)?\s*(?:Z|[+-]\d{2}:?\d{2})?)?$`)

// Format devuelve la fecha en el formato de presentación fijo: 2024年1月2日.
func Format(d Date) string {
	return fmt.Sprintf("%d年%d月%d日", d.Year, int(d.Month), d.Day)
}

// ParseDate interpreta una fecha de producción escrita a mano o enviada por un
// formulario. Los dígitos de ancho completo (２０２４年) se normalizan antes.
// Devuelve domain.ErrInvalidDate si el texto no es una fecha de calendario real.
func ParseDate(s string) (Date, error) {
	s = strings.TrimSpace(width.Narrow.String(s))
	if s == "" {
		return Date{}, fmt.Errorf("fecha vacía: %w", domain.ErrInvalidDate)
	}
	m := datePattern.FindStringSubmatch(s)
	if m == nil {
		return Date{}, fmt.Errorf("formato no reconocido %q: %w", s, domain.ErrInvalidDate)
	}
	year, _ := strconv.Atoi(m[1])
	month, _ := strconv.Atoi(m[2])
	day, _ := strconv.Atoi(m[3])
	d := New(year, time.Month(month), day)
	if !d.Valid() {
		return Date{}, fmt.Errorf("fecha inexistente %q: %w", s, domain.ErrInvalidDate)
	}
	return d, nil
}

// MarshalJSON serializa como cadena ISO; el valor cero como null.
func (d Date) MarshalJSON() ([]byte, error) {
	if d.IsZero() {
		return []byte("null"), nil
	}
	return json.Marshal(d.ISO())
}

// UnmarshalJSON acepta cualquier formato soportado por ParseDate.
func (d *Date) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*d = Date{}
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("fecha: %w", domain.ErrInvalidDate)
	}
	parsed, err := ParseDate(s)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}
