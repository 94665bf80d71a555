package model

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func lengths(values ...int) []Record {
	records := make([]Record, len(values))
	for i, v := range values {
		records[i] = Record{GenomeID: "G1", Tool: "ToolA", Length: v}
	}
	return records
}

func hundredLengths() []Record {
	values := make([]int, 100)
	for i := range values {
		values[i] = (i + 1) * 100
	}
	return lengths(values...)
}

func TestQuantileLinear(t *testing.T) {
	sorted := []float64{1, 2, 3, 4}

	q, err := Quantile(sorted, 0.5)
	require.NoError(t, err)
	assert.InDelta(t, 2.5, q, 1e-12)

	q, err = Quantile(sorted, 0)
	require.NoError(t, err)
	assert.Equal(t, 1.0, q)

	q, err = Quantile(sorted, 1)
	require.NoError(t, err)
	assert.Equal(t, 4.0, q)
}

func TestQuantileEmpty(t *testing.T) {
	_, err := Quantile(nil, 0.5)
	assert.ErrorIs(t, err, ErrEmptySeries)
}

func TestTrimToIntervalHundredValues(t *testing.T) {
	records := hundredLengths()

	kept, iv, err := TrimToInterval(records, FieldLength, 0.025, 0.975)
	require.NoError(t, err)

	assert.InDelta(t, 347.5, iv.Low, 1e-9)
	assert.InDelta(t, 9752.5, iv.High, 1e-9)
	require.Len(t, kept, 94)
	assert.Equal(t, 400, kept[0].Length)
	assert.Equal(t, 9700, kept[len(kept)-1].Length)
}

func TestTrimToIntervalStrictBounds(t *testing.T) {
	// quantiles at 0.25 and 0.75 land exactly on 2 and 4
	kept, iv, err := TrimToInterval(lengths(1, 2, 3, 4, 5), FieldLength, 0.25, 0.75)
	require.NoError(t, err)

	assert.Equal(t, 2.0, iv.Low)
	assert.Equal(t, 4.0, iv.High)
	assert.Equal(t, lengths(3), kept)
}

func TestIntervalFilterIdempotent(t *testing.T) {
	records := hundredLengths()

	once, iv, err := TrimToInterval(records, FieldLength, 0.1, 0.9)
	require.NoError(t, err)
	twice := iv.Filter(once)
	assert.Equal(t, once, twice)

	sigmaOnce, siv, err := TrimToLogSigma(records, FieldLength, 2)
	require.NoError(t, err)
	assert.Equal(t, sigmaOnce, siv.Filter(sigmaOnce))
}

func TestTrimToIntervalErrors(t *testing.T) {
	_, _, err := TrimToInterval(nil, FieldLength, 0.025, 0.975)
	assert.ErrorIs(t, err, ErrEmptySeries)

	_, _, err = TrimToInterval(hundredLengths(), FieldLength, 0.9, 0.1)
	assert.ErrorIs(t, err, ErrInvalidQuantile)

	_, _, err = TrimToInterval(hundredLengths(), FieldLength, -0.1, 0.5)
	assert.ErrorIs(t, err, ErrInvalidQuantile)
}

func TestTrimIgnoresPlaceholders(t *testing.T) {
	records := append(lengths(1, 2, 3, 4, 5), Record{GenomeID: "G2", Tool: "ToolA", Placeholder: true})

	_, iv, err := TrimToInterval(records, FieldLength, 0.25, 0.75)
	require.NoError(t, err)
	assert.Equal(t, 2.0, iv.Low)
}

func TestLogSigmaInterval(t *testing.T) {
	records := lengths(1000, 10000, 100000)

	iv, err := LogSigmaInterval(records, FieldLength, 2)
	require.NoError(t, err)

	// ln values are evenly spaced by ln(10), sample sd is ln(10)
	mu := math.Log(10000)
	sd := math.Log(10)
	assert.InDelta(t, math.Exp(mu-2*sd), iv.Low, 1e-6)
	assert.InDelta(t, math.Exp(mu+2*sd), iv.High, 1e-3)
	assert.Equal(t, MethodLogSigma, iv.Method)
}

func TestLogSigmaDiffersFromQuantile(t *testing.T) {
	records := hundredLengths()

	q, err := QuantileInterval(records, FieldLength, 0.025, 0.975)
	require.NoError(t, err)
	s, err := LogSigmaInterval(records, FieldLength, 2)
	require.NoError(t, err)

	assert.NotEqual(t, q.Low, s.Low)
	assert.NotEqual(t, q.High, s.High)
}

func TestLogSigmaInclusiveBounds(t *testing.T) {
	iv := Interval{Field: FieldLength, Method: MethodLogSigma, Low: 2, High: 4}
	assert.Equal(t, lengths(2, 3, 4), iv.Filter(lengths(1, 2, 3, 4, 5)))
}

func TestLogSigmaRejectsNonPositive(t *testing.T) {
	_, _, err := TrimToLogSigma(lengths(0, 10, 100), FieldLength, 2)
	assert.True(t, errors.Is(err, ErrNonPositive))

	_, _, err = TrimToLogSigma(nil, FieldLength, 2)
	assert.True(t, errors.Is(err, ErrEmptySeries))
}

func TestLogSigmaSingleValue(t *testing.T) {
	kept, iv, err := TrimToLogSigma(lengths(5000), FieldLength, 2)
	assert.ErrorIs(t, err, ErrTooFewValues)
	assert.Nil(t, kept)
	assert.Equal(t, Interval{}, iv)

	// placeholders do not count towards the series
	records := append(lengths(5000), Record{GenomeID: "G2", Tool: "ToolA", Placeholder: true})
	_, _, err = TrimToLogSigma(records, FieldLength, 2)
	assert.ErrorIs(t, err, ErrTooFewValues)
}

func TestLogSigmaRejectsBadK(t *testing.T) {
	for _, k := range []float64{0, -1, math.NaN()} {
		_, _, err := TrimToLogSigma(lengths(1000, 2000, 3000), FieldLength, k)
		assert.ErrorIs(t, err, ErrInvalidSigma, "k=%v", k)
	}
}

func TestTrimOtherField(t *testing.T) {
	records := []Record{
		{GenomeID: "G1", Tool: "ToolA", Start: 1, Length: 1},
		{GenomeID: "G1", Tool: "ToolA", Start: 2, Length: 1},
		{GenomeID: "G1", Tool: "ToolA", Start: 3, Length: 1},
	}

	kept, _, err := TrimToInterval(records, FieldStart, 0, 1)
	require.NoError(t, err)
	require.Len(t, kept, 1)
	assert.Equal(t, 2, kept[0].Start)
}
