// Package pdf genera la etiqueta imprimible de un lote con sus fechas de
// vencimiento, etiqueta y umbral 超三.
//
// Layout de la página A6:
//
//	┌─────────────────────────────────────┐
//	│  HEADER: Producto + SKU  │  Hoy     │
//	│  ───────────────────────────────── │
//	│  FECHAS: producción / vida útil     │
//	│          vencimiento / etiqueta     │
//	│          umbral                     │
//	│  ───────────────────────────────── │
//	│  ESTADO: mensaje de alerta          │
//	│  FOOTER: QR con los datos del lote  │
//	└─────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/code"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"

	appshelflife "github.com/jhoicas/caducidad-api/internal/application/shelflife"
	"github.com/jhoicas/caducidad-api/internal/domain/entity"
)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorAlert   = &props.Color{Red: 180, Green: 20, Blue: 20}
	colorWarn    = &props.Color{Red: 200, Green: 120, Blue: 0}
)

// labelMessages textos impresos; la fuente helvetica no tiene glifos CJK.
var labelMessages = map[entity.StatusKind]string{
	entity.StatusExpired:              "VENCIDO - retirar de la venta",
	entity.StatusPastThreshold:        "Pasó el umbral de 1/3 de vida útil",
	entity.StatusApproachingThreshold: "Próximo al umbral de 1/3 de vida útil",
	entity.StatusAnomalousOrdering:    "Revisar fecha de producción",
}

// ── Generator ─────────────────────────────────────────────────────────────────

// MarotoLabelGenerator implementa shelflife.LabelPDFGenerator usando Maroto v2.
type MarotoLabelGenerator struct{}

// NewMarotoLabelGenerator construye el generador.
func NewMarotoLabelGenerator() *MarotoLabelGenerator { return &MarotoLabelGenerator{} }

// GenerateLabelPDF genera el PDF y devuelve sus bytes.
func (g *MarotoLabelGenerator) GenerateLabelPDF(ctx context.Context, label appshelflife.LabelData) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A6).
		WithLeftMargin(6).WithRightMargin(6).
		WithTopMargin(6).WithBottomMargin(6).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Etiqueta de caducidad", true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(label))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	for _, r := range dateRows(label) {
		m.AddRows(r)
	}
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(statusRow(label.Status))
	m.AddRows(qrRow(label))

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar etiqueta: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

// headerRow: producto + SKU (izq) y fecha de emisión (der).
func headerRow(label appshelflife.LabelData) core.Row {
	return row.New(14).Add(
		col.New(8).Add(
			text.New(nonEmpty(label.ProductName, "Lote sin nombre"), props.Text{
				Style: fontstyle.Bold, Size: 11, Color: colorPrimary, Top: 1,
			}),
			text.New("SKU: "+nonEmpty(label.SKU, "-"), props.Text{
				Size: 8, Top: 8, Color: colorGray,
			}),
		),
		col.New(4).Add(
			text.New("Emitida", props.Text{
				Size: 7, Align: align.Right, Top: 1, Color: colorGray,
			}),
			text.New(label.Today.ISO(), props.Text{
				Style: fontstyle.Bold, Size: 9, Align: align.Right, Top: 6,
			}),
		),
	)
}

// dateRows: una fila etiqueta/valor por fecha derivada.
func dateRows(label appshelflife.LabelData) []core.Row {
	kv := func(k, v string, bold bool) core.Row {
		style := fontstyle.Normal
		if bold {
			style = fontstyle.Bold
		}
		return row.New(6).Add(
			col.New(6).Add(text.New(k, props.Text{Size: 8, Top: 1, Color: colorGray})),
			col.New(6).Add(text.New(v, props.Text{Size: 9, Top: 1, Align: align.Right, Style: style})),
		)
	}
	expiry := label.Dates.ExpiryDate.ISO()
	if label.Dates.ExpiryHourOffset > 0 {
		expiry = fmt.Sprintf("%s +%dh", expiry, label.Dates.ExpiryHourOffset)
	}
	return []core.Row{
		kv("Producción", label.ProductionDate.ISO(), false),
		kv("Vida útil", label.ShelfLifeDays.String()+" días", false),
		kv("Vencimiento", expiry, true),
		kv("Fecha de etiqueta", label.Dates.LabelDate.ISO(), true),
		kv("Umbral (1/3)", label.Dates.TertiaryDate.ISO(), false),
	}
}

// statusRow: mensaje de alerta; Normal o sin estado no imprimen aviso.
func statusRow(status *entity.Status) core.Row {
	if status == nil || !status.Kind.Surfaced() {
		return row.New(8).Add(col.New(12).Add(
			text.New("Sin alertas", props.Text{Size: 8, Top: 2, Align: align.Center, Color: colorGray}),
		))
	}
	color := colorWarn
	if status.Kind == entity.StatusExpired {
		color = colorAlert
	}
	return row.New(12).Add(col.New(12).Add(
		text.New(labelMessages[status.Kind], props.Text{
			Style: fontstyle.Bold, Size: 9, Top: 2, Align: align.Center, Color: color,
		}),
	))
}

// qrRow: QR con los datos mínimos para reimprimir la etiqueta.
func qrRow(label appshelflife.LabelData) core.Row {
	payload := fmt.Sprintf("sku=%s;prod=%s;days=%s;exp=%s",
		label.SKU, label.ProductionDate.ISO(), label.ShelfLifeDays.String(), label.Dates.ExpiryDate.ISO())
	return row.New(30).Add(
		col.New(5).Add(code.NewQr(payload, props.Rect{Percent: 95, Center: true})),
		col.New(7).Add(
			text.New("Retirar de la venta en la fecha de etiqueta.", props.Text{
				Size: 7, Top: 6, Left: 2, Color: colorGray,
			}),
		),
	)
}

// ── helpers ───────────────────────────────────────────────────────────────────

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}
