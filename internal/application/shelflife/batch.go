package shelflife

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/schollz/progressbar/v3"

	"github.com/jhoicas/caducidad-api/internal/application/dto"
	"github.com/jhoicas/caducidad-api/internal/domain/calendar"
	"github.com/jhoicas/caducidad-api/internal/domain/entity"
)

// BatchEvaluator evalúa un CSV de lotes: production_date,shelf_life_days[,sku].
// Una fila inválida no detiene el proceso; queda registrada con su error.
type BatchEvaluator struct {
	uc       *EvaluateUseCase
	progress io.Writer
}

// NewBatchEvaluator construye el evaluador. progress nil desactiva la barra.
func NewBatchEvaluator(uc *EvaluateUseCase, progress io.Writer) *BatchEvaluator {
	return &BatchEvaluator{uc: uc, progress: progress}
}

// Run lee todas las filas, muestra el avance y devuelve un resultado por fila.
func (b *BatchEvaluator) Run(ctx context.Context, r io.Reader) ([]dto.BatchResult, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true
	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("leer CSV: %w", err)
	}
	if len(records) > 0 && isHeader(records[0]) {
		records = records[1:]
	}
	if len(records) == 0 {
		return nil, ErrEmptyBatch
	}

	out := io.Discard
	if b.progress != nil {
		out = b.progress
	}
	bar := progressbar.NewOptions(len(records),
		progressbar.OptionSetWriter(out),
		progressbar.OptionSetDescription("evaluando lotes"),
		progressbar.OptionShowCount(),
		progressbar.OptionClearOnFinish(),
	)

	results := make([]dto.BatchResult, 0, len(records))
	for i, rec := range records {
		if err := ctx.Err(); err != nil {
			return results, err
		}
		results = append(results, b.evaluateRow(i+1, rec))
		_ = bar.Add(1)
	}
	_ = bar.Finish()
	return results, nil
}

func (b *BatchEvaluator) evaluateRow(line int, rec []string) dto.BatchResult {
	res := dto.BatchResult{Line: line}
	if len(rec) < 2 {
		res.Error = "se esperan al menos 2 columnas"
		return res
	}
	res.ProductionDate = strings.TrimSpace(rec[0])
	res.ShelfLifeDays = strings.TrimSpace(rec[1])
	if len(rec) > 2 {
		res.SKU = strings.TrimSpace(rec[2])
	}

	production, err := calendar.ParseDate(res.ProductionDate)
	if err != nil {
		res.Error = err.Error()
		return res
	}
	days, err := ParseShelfLifeText(res.ShelfLifeDays)
	if err != nil {
		res.Error = err.Error()
		return res
	}
	ev, err := b.uc.EvaluateInput(entity.ShelfLifeInput{ProductionDate: production, ShelfLifeDays: days}, dto.UnitDays)
	if err != nil {
		res.Error = err.Error()
		return res
	}
	b.uc.record(ev, false)

	res.ExpiryDate = ev.Dates.ExpiryDate.ISO()
	res.LabelDate = ev.Dates.LabelDate.ISO()
	res.TertiaryDate = ev.Dates.TertiaryDate.ISO()
	res.Status = "none"
	if ev.Status != nil {
		res.Status = string(ev.Status.Kind)
	}
	return res
}

// isHeader detecta una cabecera: la primera columna no es una fecha.
func isHeader(rec []string) bool {
	if len(rec) == 0 {
		return false
	}
	_, err := calendar.ParseDate(rec[0])
	name := strings.ToLower(rec[0])
	return err != nil && (strings.Contains(name, "date") || strings.Contains(name, "fecha"))
}

// WriteResultsCSV escribe los resultados con cabecera.
func WriteResultsCSV(w io.Writer, results []dto.BatchResult) error {
	cw := csv.NewWriter(w)
	header := []string{"line", "sku", "production_date", "shelf_life_days", "expiry_date", "label_date", "tertiary_date", "status", "error"}
	if err := cw.Write(header); err != nil {
		return err
	}
	for _, r := range results {
		row := []string{
			strconv.Itoa(r.Line), r.SKU, r.ProductionDate, r.ShelfLifeDays,
			r.ExpiryDate, r.LabelDate, r.TertiaryDate, r.Status, r.Error,
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// CountByStatus resumen por tipo de estado ("error" para filas rechazadas).
func CountByStatus(results []dto.BatchResult) map[string]int {
	counts := make(map[string]int)
	for _, r := range results {
		if r.Error != "" {
			counts["error"]++
			continue
		}
		counts[r.Status]++
	}
	return counts
}

// ErrEmptyBatch se devuelve cuando el CSV no contiene filas evaluables.
var ErrEmptyBatch = errors.New("el archivo no contiene lotes")
