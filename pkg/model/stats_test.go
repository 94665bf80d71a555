package model

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMeanAndStdDev(t *testing.T) {
	values := []float64{2, 4, 4, 4, 5, 5, 7, 9}

	assert.InDelta(t, 5.0, Mean(values), 1e-12)
	// sample sd, n-1 denominator
	assert.InDelta(t, math.Sqrt(32.0/7.0), StdDev(values), 1e-12)

	assert.True(t, math.IsNaN(Mean(nil)))
	assert.True(t, math.IsNaN(StdDev([]float64{3})))
}

func TestMedian(t *testing.T) {
	m, err := Median([]float64{4, 1, 3, 2})
	require.NoError(t, err)
	assert.InDelta(t, 2.5, m, 1e-12)

	_, err = Median(nil)
	assert.ErrorIs(t, err, ErrEmptySeries)
}

func TestPearson(t *testing.T) {
	x := []float64{1, 2, 3, 4}

	assert.InDelta(t, 1.0, Pearson(x, []float64{2, 4, 6, 8}), 1e-12)
	assert.InDelta(t, -1.0, Pearson(x, []float64{8, 6, 4, 2}), 1e-12)
	assert.True(t, math.IsNaN(Pearson(x, []float64{5, 5, 5, 5})))
	assert.True(t, math.IsNaN(Pearson(x, []float64{1, 2})))
}
