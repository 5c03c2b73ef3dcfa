package shelflife

import (
	"fmt"

	"github.com/jhoicas/caducidad-api/internal/application/dto"
)

// presetDays atajos de vida útil más usados en tienda.
var presetDays = []int{7, 15, 30, 45, 60, 90, 180, 270, 365, 540, 730, 1095}

// Presets lista de atajos; Months usa meses de 30 días redondeados hacia abajo.
func Presets() []dto.PresetResponse {
	out := make([]dto.PresetResponse, 0, len(presetDays))
	for _, d := range presetDays {
		out = append(out, dto.PresetResponse{
			Days:   d,
			Months: d / 30,
			Label:  presetLabel(d),
		})
	}
	return out
}

func presetLabel(days int) string {
	switch {
	case days%365 == 0:
		if days == 365 {
			return "1 año"
		}
		return fmt.Sprintf("%d años", days/365)
	case days%30 == 0:
		if days == 30 {
			return "1 mes"
		}
		return fmt.Sprintf("%d meses", days/30)
	default:
		return fmt.Sprintf("%d días", days)
	}
}
