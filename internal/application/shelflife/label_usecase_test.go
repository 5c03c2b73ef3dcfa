package shelflife_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/caducidad-api/internal/application/dto"
	"github.com/jhoicas/caducidad-api/internal/application/shelflife"
	"github.com/jhoicas/caducidad-api/internal/domain"
	"github.com/jhoicas/caducidad-api/internal/domain/entity"
)

type fakeLabelGenerator struct {
	got shelflife.LabelData
	err error
}

func (f *fakeLabelGenerator) GenerateLabelPDF(_ context.Context, label shelflife.LabelData) ([]byte, error) {
	f.got = label
	if f.err != nil {
		return nil, f.err
	}
	return []byte("%PDF-fake"), nil
}

func TestLabelUseCase_Generate(t *testing.T) {
	uc := newUseCase(t, time.Date(2024, time.January, 12, 0, 0, 0, 0, time.UTC), nil)
	gen := &fakeLabelGenerator{}
	label := shelflife.NewLabelUseCase(uc, gen)

	pdf, err := label.Generate(context.Background(), dto.LabelRequest{
		EvaluateRequest: dto.EvaluateRequest{ProductionDate: "2024-01-01", ShelfLife: raw(`10`)},
		SKU:             " LECHE-1L ",
		ProductName:     "Leche entera",
	})
	require.NoError(t, err)
	assert.Equal(t, []byte("%PDF-fake"), pdf)

	assert.Equal(t, "LECHE-1L", gen.got.SKU)
	assert.Equal(t, "Leche entera", gen.got.ProductName)
	assert.Equal(t, "2024-01-11", gen.got.Dates.ExpiryDate.ISO())
	require.NotNil(t, gen.got.Status)
	assert.Equal(t, entity.StatusExpired, gen.got.Status.Kind)
}

func TestLabelUseCase_Errores(t *testing.T) {
	uc := newUseCase(t, time.Date(2024, time.January, 12, 0, 0, 0, 0, time.UTC), nil)

	_, err := shelflife.NewLabelUseCase(uc, &fakeLabelGenerator{}).Generate(context.Background(), dto.LabelRequest{
		EvaluateRequest: dto.EvaluateRequest{ProductionDate: "no-es-fecha", ShelfLife: raw(`10`)},
	})
	assert.ErrorIs(t, err, domain.ErrInvalidDate)

	boom := errors.New("sin fuentes")
	_, err = shelflife.NewLabelUseCase(uc, &fakeLabelGenerator{err: boom}).Generate(context.Background(), dto.LabelRequest{
		EvaluateRequest: dto.EvaluateRequest{ProductionDate: "2024-01-01", ShelfLife: raw(`10`)},
	})
	assert.ErrorIs(t, err, boom)
}
