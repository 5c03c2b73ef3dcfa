package shelflife_test

import (
	"bytes"
	"context"
	"encoding/csv"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/caducidad-api/internal/application/shelflife"
)

const batchCSV = `production_date,shelf_life_days,sku
2024-01-01,10,LECHE-1L
2099-01-01,30,FUTURO
2023-02-29,10,MALA-FECHA
2024-01-05,abc,MALA-VIDA
2024年1月10日,90
solo-una-columna
`

func TestBatchEvaluator_Run(t *testing.T) {
	uc := newUseCase(t, time.Date(2024, time.January, 12, 0, 0, 0, 0, time.UTC), nil)
	var progress bytes.Buffer
	results, err := shelflife.NewBatchEvaluator(uc, &progress).Run(context.Background(), strings.NewReader(batchCSV))
	require.NoError(t, err)
	require.Len(t, results, 6)

	assert.Equal(t, 1, results[0].Line)
	assert.Equal(t, "LECHE-1L", results[0].SKU)
	assert.Equal(t, "2024-01-11", results[0].ExpiryDate)
	assert.Equal(t, "2024-01-10", results[0].LabelDate)
	assert.Equal(t, "expired", results[0].Status)
	assert.Empty(t, results[0].Error)

	assert.Equal(t, "none", results[1].Status)
	assert.NotEmpty(t, results[2].Error)
	assert.NotEmpty(t, results[3].Error)

	assert.Empty(t, results[4].Error)
	assert.Equal(t, "2024-04-09", results[4].ExpiryDate)
	assert.Equal(t, "approaching_threshold", results[4].Status)

	assert.NotEmpty(t, results[5].Error)

	counts := shelflife.CountByStatus(results)
	assert.Equal(t, 3, counts["error"])
	assert.Equal(t, 1, counts["expired"])
	assert.Equal(t, 1, counts["none"])
	assert.Equal(t, 1, counts["approaching_threshold"])
}

func TestBatchEvaluator_SinFilas(t *testing.T) {
	uc := newUseCase(t, time.Date(2024, time.January, 12, 0, 0, 0, 0, time.UTC), nil)
	_, err := shelflife.NewBatchEvaluator(uc, nil).Run(context.Background(), strings.NewReader("production_date,shelf_life_days\n"))
	assert.ErrorIs(t, err, shelflife.ErrEmptyBatch)
}

func TestBatchEvaluator_ContextoCancelado(t *testing.T) {
	uc := newUseCase(t, time.Date(2024, time.January, 12, 0, 0, 0, 0, time.UTC), nil)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	results, err := shelflife.NewBatchEvaluator(uc, nil).Run(ctx, strings.NewReader(batchCSV))
	assert.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, results)
}

func TestWriteResultsCSV(t *testing.T) {
	uc := newUseCase(t, time.Date(2024, time.January, 12, 0, 0, 0, 0, time.UTC), nil)
	results, err := shelflife.NewBatchEvaluator(uc, nil).Run(context.Background(), strings.NewReader("2024-01-01,10,LECHE-1L\n"))
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, shelflife.WriteResultsCSV(&buf, results))

	rows, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "line", rows[0][0])
	assert.Equal(t, []string{"1", "LECHE-1L", "2024-01-01", "10", "2024-01-11", "2024-01-10", "2024-01-09", "expired", ""}, rows[1])
}
