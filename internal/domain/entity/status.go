package entity

// StatusKind tipo de alerta de un lote.
type StatusKind string

// Tipos de estado, de mayor a menor prioridad.
const (
	StatusExpired              StatusKind = "expired"
	StatusPastThreshold        StatusKind = "past_threshold"
	StatusApproachingThreshold StatusKind = "approaching_threshold"
	StatusAnomalousOrdering    StatusKind = "anomalous_ordering"
	StatusNormal               StatusKind = "normal"
)

// StatusNone se usa como "última alerta mostrada" cuando aún no se mostró ninguna.
const StatusNone StatusKind = ""

var statusMessages = map[StatusKind]string{
	StatusExpired:              "Producto vencido: retirar de la venta de inmediato",
	StatusPastThreshold:        "Producto pasó el umbral de un tercio de su vida útil (超三)",
	StatusApproachingThreshold: "Producto próximo al umbral de un tercio de su vida útil (超三)",
	StatusAnomalousOrdering:    "La fecha de producción es posterior a la fecha 超三: revisar los datos ingresados",
	StatusNormal:               "",
}

// Status resultado de clasificación con su mensaje fijo.
type Status struct {
	Kind    StatusKind
	Message string
}

// NewStatus construye el estado con el mensaje asociado al tipo.
func NewStatus(kind StatusKind) Status {
	return Status{Kind: kind, Message: statusMessages[kind]}
}

// Surfaced indica si el estado debe mostrarse al usuario (Normal no se muestra).
func (k StatusKind) Surfaced() bool {
	switch k {
	case StatusExpired, StatusPastThreshold, StatusApproachingThreshold, StatusAnomalousOrdering:
		return true
	default:
		return false
	}
}

// ParseStatusKind convierte el texto recibido del cliente; desconocido → StatusNone.
func ParseStatusKind(s string) StatusKind {
	k := StatusKind(s)
	if _, ok := statusMessages[k]; ok {
		return k
	}
	return StatusNone
}
