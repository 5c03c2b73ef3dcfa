package shelflife

import (
	"sync"

	"github.com/jhoicas/caducidad-api/internal/domain/entity"
)

// MaxTrackedSessions límite de sesiones en memoria; al alcanzarlo se descarta la
// observada hace más tiempo.
const MaxTrackedSessions = 1024

// ShouldSurface decide si una alerta debe mostrarse dado el último tipo mostrado.
// Devuelve también el nuevo "último tipo": sin alerta visible se reinicia a StatusNone,
// así la misma alerta vuelve a mostrarse si reaparece más tarde.
func ShouldSurface(prev entity.StatusKind, status *entity.Status) (show bool, next entity.StatusKind) {
	if status == nil || !status.Kind.Surfaced() {
		return false, entity.StatusNone
	}
	if status.Kind == prev {
		return false, prev
	}
	return true, status.Kind
}

type sessionState struct {
	last    entity.StatusKind
	input   entity.ShelfLifeInput
	unit    string
	version uint64 // cambia con cada entrada nueva del cliente
	seen    uint64 // orden de la última observación, para el desalojo
}

// AlertTracker guarda, por sesión, el último tipo de alerta mostrado y la última entrada
// evaluada. Es estado de presentación: el motor de cálculo no lo conoce.
// La lectura y la escritura del último tipo ocurren bajo el mismo lock.
type AlertTracker struct {
	mu       sync.Mutex
	sessions map[string]*sessionState
	clock    uint64
}

// NewAlertTracker construye un tracker vacío.
func NewAlertTracker() *AlertTracker {
	return &AlertTracker{sessions: make(map[string]*sessionState)}
}

// Observe registra una entrada nueva del cliente para key y devuelve si el estado
// debe mostrarse. Cada llamada invalida las re-evaluaciones en curso de esa sesión.
func (t *AlertTracker) Observe(key string, input entity.ShelfLifeInput, unit string, status *entity.Status) bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	st, ok := t.sessions[key]
	if !ok {
		if len(t.sessions) >= MaxTrackedSessions {
			t.evictOldest()
		}
		st = &sessionState{}
		t.sessions[key] = st
	}
	t.clock++
	st.seen = t.clock
	st.version++
	st.input = input
	st.unit = unit

	show, next := ShouldSurface(st.last, status)
	st.last = next
	return show
}

// Snapshot última entrada de key junto con su versión, para ObserveIfCurrent.
func (t *AlertTracker) Snapshot(key string) (input entity.ShelfLifeInput, unit string, version uint64, ok bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	st, ok := t.sessions[key]
	if !ok {
		return entity.ShelfLifeInput{}, "", 0, false
	}
	return st.input, st.unit, st.version, true
}

// ObserveIfCurrent actualiza solo el último tipo mostrado, y solo si la entrada de key
// sigue en version. applied es false si la sesión cambió o desapareció entre medio;
// en ese caso no se toca nada.
func (t *AlertTracker) ObserveIfCurrent(key string, version uint64, status *entity.Status) (show, applied bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	st, ok := t.sessions[key]
	if !ok || st.version != version {
		return false, false
	}
	t.clock++
	st.seen = t.clock
	show, next := ShouldSurface(st.last, status)
	st.last = next
	return show, true
}

// evictOldest descarta la sesión observada hace más tiempo. Requiere t.mu.
func (t *AlertTracker) evictOldest() {
	var (
		oldestKey string
		oldest    uint64
		found     bool
	)
	for k, st := range t.sessions {
		if !found || st.seen < oldest {
			oldestKey, oldest, found = k, st.seen, true
		}
	}
	if found {
		delete(t.sessions, oldestKey)
	}
}

// Last último tipo mostrado para key (StatusNone si no hay).
func (t *AlertTracker) Last(key string) entity.StatusKind {
	t.mu.Lock()
	defer t.mu.Unlock()
	if st, ok := t.sessions[key]; ok {
		return st.last
	}
	return entity.StatusNone
}

// Input última entrada evaluada para key.
func (t *AlertTracker) Input(key string) (entity.ShelfLifeInput, string, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	st, ok := t.sessions[key]
	if !ok {
		return entity.ShelfLifeInput{}, "", false
	}
	return st.input, st.unit, true
}

// Keys sesiones registradas (copia).
func (t *AlertTracker) Keys() []string {
	t.mu.Lock()
	defer t.mu.Unlock()
	keys := make([]string, 0, len(t.sessions))
	for k := range t.sessions {
		keys = append(keys, k)
	}
	return keys
}

// Forget elimina la sesión.
func (t *AlertTracker) Forget(key string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	delete(t.sessions, key)
}
