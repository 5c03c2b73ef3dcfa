// Package clock provee la hora actual y detecta el cambio de día calendario.
package clock

import (
	"context"
	"sync"
	"time"

	"github.com/jhoicas/caducidad-api/internal/domain/calendar"
	"github.com/jhoicas/caducidad-api/pkg/logger"
)

// System reloj del sistema.
type System struct{}

func (System) Now() time.Time { return time.Now() }

// Fixed reloj ajustable para tests y reprocesos.
type Fixed struct {
	mu sync.RWMutex
	t  time.Time
}

// NewFixed crea un reloj detenido en t.
func NewFixed(t time.Time) *Fixed { return &Fixed{t: t} }

func (f *Fixed) Now() time.Time {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.t
}

// Set mueve el reloj a t.
func (f *Fixed) Set(t time.Time) {
	f.mu.Lock()
	f.t = t
	f.mu.Unlock()
}

// Advance avanza el reloj d.
func (f *Fixed) Advance(d time.Duration) {
	f.mu.Lock()
	f.t = f.t.Add(d)
	f.mu.Unlock()
}

// Source interfaz mínima que consume el watcher.
type Source interface {
	Now() time.Time
}

// RolloverWatcher consulta el reloj cada interval y llama a onChange cuando
// la fecha calendario en loc cambia respecto a la última observada.
type RolloverWatcher struct {
	clock    Source
	loc      *time.Location
	interval time.Duration
	onChange func(ctx context.Context, prev, next calendar.Date)
	log      *logger.Logger
	last     calendar.Date
}

// NewRolloverWatcher construye el watcher y toma como día de partida la fecha actual. log puede ser nil.
func NewRolloverWatcher(c Source, loc *time.Location, interval time.Duration, onChange func(ctx context.Context, prev, next calendar.Date), log *logger.Logger) *RolloverWatcher {
	if loc == nil {
		loc = time.Local
	}
	if interval <= 0 {
		interval = time.Minute
	}
	if log == nil {
		log = logger.Nop()
	}
	w := &RolloverWatcher{clock: c, loc: loc, interval: interval, onChange: onChange, log: log}
	w.last = w.today()
	return w
}

// Run bloquea hasta que ctx se cancela. No debe llamarse desde más de una goroutine.
func (w *RolloverWatcher) Run(ctx context.Context) {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			w.last = w.Check(ctx, w.last)
		}
	}
}

// Check compara la fecha actual con last; si cambió dispara onChange y devuelve la nueva.
func (w *RolloverWatcher) Check(ctx context.Context, last calendar.Date) calendar.Date {
	now := w.today()
	if now.Equal(last) {
		return last
	}
	w.log.Info().Str("prev", last.ISO()).Str("next", now.ISO()).Msg("cambio de día")
	if w.onChange != nil {
		w.onChange(ctx, last, now)
	}
	return now
}

func (w *RolloverWatcher) today() calendar.Date {
	return calendar.FromTime(w.clock.Now().In(w.loc))
}
