package pdf_test

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appshelflife "github.com/jhoicas/caducidad-api/internal/application/shelflife"
	"github.com/jhoicas/caducidad-api/internal/domain/calendar"
	"github.com/jhoicas/caducidad-api/internal/domain/entity"
	"github.com/jhoicas/caducidad-api/internal/infrastructure/pdf"
)

func sampleLabel(status *entity.Status) appshelflife.LabelData {
	return appshelflife.LabelData{
		SKU:            "LECHE-1L",
		ProductName:    "Leche entera",
		Today:          calendar.New(2024, time.January, 12),
		ProductionDate: calendar.New(2024, time.January, 1),
		ShelfLifeDays:  decimal.NewFromInt(10),
		Dates: entity.DerivedDates{
			ExpiryDate:   calendar.New(2024, time.January, 11),
			LabelDate:    calendar.New(2024, time.January, 10),
			TertiaryDate: calendar.New(2024, time.January, 9),
		},
		Status: status,
	}
}

func TestMarotoLabelGenerator_GeneraPDF(t *testing.T) {
	expired := entity.NewStatus(entity.StatusExpired)
	for name, st := range map[string]*entity.Status{"con alerta": &expired, "sin estado": nil} {
		t.Run(name, func(t *testing.T) {
			out, err := pdf.NewMarotoLabelGenerator().GenerateLabelPDF(context.Background(), sampleLabel(st))
			require.NoError(t, err)
			assert.True(t, bytes.HasPrefix(out, []byte("%PDF")))
		})
	}
}

func TestMarotoLabelGenerator_ContextoCancelado(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := pdf.NewMarotoLabelGenerator().GenerateLabelPDF(ctx, sampleLabel(nil))
	assert.ErrorIs(t, err, context.Canceled)
}
