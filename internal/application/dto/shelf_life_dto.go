package dto

import (
	"encoding/json"

	"github.com/shopspring/decimal"
)

// Unidades de vida útil aceptadas.
const (
	UnitDays   = "days"
	UnitMonths = "months"
)

// EvaluateRequest entrada para evaluar un lote.
// ShelfLife acepta número o cadena ("90", 90, "45.5"); la validación numérica la hace el caso de uso.
type EvaluateRequest struct {
	ProductionDate string          `json:"production_date" validate:"required"`
	ShelfLife      json.RawMessage `json:"shelf_life" validate:"required"`
	Unit           string          `json:"unit"`          // days (defecto) | months
	SessionID      string          `json:"session_id"`    // clave para no repetir la misma alerta
	PreviousKind   string          `json:"previous_kind"` // última alerta mostrada por el cliente
}

// LabelRequest entrada para generar la etiqueta imprimible de un lote.
type LabelRequest struct {
	EvaluateRequest
	SKU         string `json:"sku"`
	ProductName string `json:"product_name"`
}

// DerivedDatesResponse fechas calculadas.
type DerivedDatesResponse struct {
	ExpiryDate       DateDTO `json:"expiry_date"`
	LabelDate        DateDTO `json:"label_date"`
	TertiaryDate     DateDTO `json:"tertiary_date"`
	ExpiryHourOffset int     `json:"expiry_hour_offset"`
}

// StatusResponse estado clasificado.
type StatusResponse struct {
	Kind    string `json:"kind"`
	Message string `json:"message"`
}

// EvaluateResponse salida de una evaluación.
// Status es null cuando no hay nada que mostrar (producción futura o datos indeterminados).
type EvaluateResponse struct {
	EvaluationID   string               `json:"evaluation_id"`
	Today          DateDTO              `json:"today"`
	ProductionDate DateDTO              `json:"production_date"`
	ShelfLifeDays  decimal.Decimal      `json:"shelf_life_days"`
	Strategy       string               `json:"strategy"`
	Dates          DerivedDatesResponse `json:"dates"`
	Status         *StatusResponse      `json:"status"`
	ShowAlert      bool                 `json:"show_alert"`
}

// PresetResponse atajo de vida útil (botones de selección rápida).
type PresetResponse struct {
	Days   int    `json:"days"`
	Months int    `json:"months"`
	Label  string `json:"label"`
}

// TodayResponse fecha actual del servidor.
type TodayResponse struct {
	Today    DateDTO `json:"today"`
	Timezone string  `json:"timezone"`
}

// BatchResult una fila evaluada por el procesador por lotes.
type BatchResult struct {
	Line           int    `json:"line"`
	SKU            string `json:"sku"`
	ProductionDate string `json:"production_date"`
	ShelfLifeDays  string `json:"shelf_life_days"`
	ExpiryDate     string `json:"expiry_date"`
	LabelDate      string `json:"label_date"`
	TertiaryDate   string `json:"tertiary_date"`
	Status         string `json:"status"`
	Error          string `json:"error,omitempty"`
}
