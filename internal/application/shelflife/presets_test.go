package shelflife_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/caducidad-api/internal/application/shelflife"
)

func TestPresets(t *testing.T) {
	presets := shelflife.Presets()
	require.NotEmpty(t, presets)

	byDays := make(map[int]string)
	for i, p := range presets {
		assert.Equal(t, p.Days/30, p.Months)
		if i > 0 {
			assert.Greater(t, p.Days, presets[i-1].Days, "ordenados de menor a mayor")
		}
		byDays[p.Days] = p.Label
	}
	assert.Equal(t, "7 días", byDays[7])
	assert.Equal(t, "1 mes", byDays[30])
	assert.Equal(t, "3 meses", byDays[90])
	assert.Equal(t, "1 año", byDays[365])
	assert.Equal(t, "2 años", byDays[730])
}
