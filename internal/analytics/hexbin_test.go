package analytics_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/samirrijal/olistboard/internal/analytics"
)

func TestHexbin_CountsEveryFinitePoint(t *testing.T) {
	xs := []float64{-5, -4.2, -3.3, -2, -1.1, -0.5, -5, -3, math.NaN(), -2}
	ys := []float64{1, 2, 3, 4, 5, 6, 6, 1, 3, math.Inf(1)}
	ws := []float64{1, 2, 3, 4, 5, 6, 7, 8, 9, 10}

	g := analytics.Hexbin(xs, ys, ws, 14)
	assert.Equal(t, 14, g.NX)
	assert.Equal(t, 8, g.NY)

	var count int
	var sum float64
	for _, c := range g.Cells {
		count += c.Count
		sum += c.Value
	}
	assert.Equal(t, 8, count)
	assert.InDelta(t, 36, sum, 1e-9)
	assert.GreaterOrEqual(t, g.MaxValue(), 8.0)
}

func TestHexbin_SinglePointSumsWeights(t *testing.T) {
	g := analytics.Hexbin([]float64{2, 2}, []float64{3, 3}, []float64{10, 5}, 14)
	require.Len(t, g.Cells, 1)
	assert.Equal(t, 2, g.Cells[0].Count)
	assert.InDelta(t, 15, g.Cells[0].Value, 1e-9)
	assert.Less(t, g.XMin, 2.0)
	assert.Greater(t, g.XMax, 2.0)
}

func TestHexbin_Empty(t *testing.T) {
	g := analytics.Hexbin(nil, nil, nil, 14)
	assert.Empty(t, g.Cells)
	assert.Equal(t, 0.0, g.MaxValue())
}

func TestHexGrid_Vertices(t *testing.T) {
	g := &analytics.HexGrid{Sx: 2, Sy: 3}
	v := g.Vertices(analytics.HexCell{X: 10, Y: 20})
	assert.Equal(t, [2]float64{11, 19.5}, v[0])
	assert.Equal(t, [2]float64{10, 21}, v[2])
	assert.Equal(t, [2]float64{10, 19}, v[5])
}
