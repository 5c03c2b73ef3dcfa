package shelflife

import (
	"context"
	"fmt"
	"strings"

	"github.com/jhoicas/caducidad-api/internal/application/dto"
	"github.com/jhoicas/caducidad-api/internal/domain/calendar"
	"github.com/jhoicas/caducidad-api/internal/domain/entity"
)

// LabelUseCase genera la etiqueta PDF de un lote a partir de la misma evaluación
// que devuelve la API. No participa del control de alertas repetidas.
type LabelUseCase struct {
	evaluate  *EvaluateUseCase
	generator LabelPDFGenerator
}

// NewLabelUseCase construye el caso de uso.
func NewLabelUseCase(evaluate *EvaluateUseCase, generator LabelPDFGenerator) *LabelUseCase {
	return &LabelUseCase{evaluate: evaluate, generator: generator}
}

// Generate evalúa el lote y devuelve los bytes del PDF.
func (uc *LabelUseCase) Generate(ctx context.Context, req dto.LabelRequest) ([]byte, error) {
	production, err := calendar.ParseDate(req.ProductionDate)
	if err != nil {
		return nil, err
	}
	days, err := ParseShelfLife(req.ShelfLife)
	if err != nil {
		return nil, err
	}
	ev, err := uc.evaluate.EvaluateInput(
		entity.ShelfLifeInput{ProductionDate: production, ShelfLifeDays: days},
		strings.ToLower(strings.TrimSpace(req.Unit)),
	)
	if err != nil {
		return nil, err
	}
	pdf, err := uc.generator.GenerateLabelPDF(ctx, LabelData{
		SKU:            strings.TrimSpace(req.SKU),
		ProductName:    strings.TrimSpace(req.ProductName),
		Today:          ev.Context.Today,
		ProductionDate: ev.Input.ProductionDate,
		ShelfLifeDays:  ev.Input.ShelfLifeDays,
		Dates:          ev.Dates,
		Status:         ev.Status,
	})
	if err != nil {
		return nil, fmt.Errorf("generar etiqueta: %w", err)
	}
	return pdf, nil
}
