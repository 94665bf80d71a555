package model

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func exampleSummary() []ToolCount {
	return []ToolCount{
		{GenomeID: "G1", Tool: "ToolA", Count: 1},
		{GenomeID: "G1", Tool: "ToolB", Count: 3},
		{GenomeID: "G2", Tool: "ToolA", Count: 2},
		{GenomeID: "G3", Tool: "toolC", Count: 5},
	}
}

func TestPivotWideFillsZero(t *testing.T) {
	table := PivotWide(exampleSummary(), DimGenome, DimTool, MeasureCount)

	assert.Equal(t, []string{"G1", "G2", "G3"}, table.RowKeys)
	assert.Equal(t, []string{"ToolA", "ToolB", "toolC"}, table.ColKeys)
	assert.Equal(t, [][]float64{
		{1, 3, 0},
		{2, 0, 0},
		{0, 0, 5},
	}, table.Values)
}

func TestPivotMeltRoundTrip(t *testing.T) {
	summary := exampleSummary()
	cells := Melt(PivotWide(summary, DimGenome, DimTool, MeasureCount))
	require.Len(t, cells, 9)

	var back []ToolCount
	for _, c := range cells {
		if c.Value == 0 {
			continue
		}
		back = append(back, ToolCount{GenomeID: c.Row, Tool: c.Col, Count: int(c.Value)})
	}
	sortByGenomeTool(back)

	assert.Equal(t, summary, back)
}

func TestPivotSumsDuplicates(t *testing.T) {
	summary := []ToolCount{
		{GenomeID: "G1", Tool: "ToolA", Count: 1, Source: "Pork"},
		{GenomeID: "G2", Tool: "ToolA", Count: 4, Source: "Pork"},
	}
	table := PivotWide(summary, DimSource, DimTool, MeasureCount)
	assert.Equal(t, [][]float64{{5}}, table.Values)
}

func TestCorrelate(t *testing.T) {
	table := Table{
		RowKeys: []string{"G1", "G2", "G3"},
		ColKeys: []string{"A", "B", "C", "D"},
		Values: [][]float64{
			{1, 2, 3, 7},
			{2, 4, 2, 7},
			{3, 6, 1, 7},
		},
	}

	corr := Correlate(table)
	require.Equal(t, table.ColKeys, corr.RowKeys)
	require.Equal(t, table.ColKeys, corr.ColKeys)

	assert.InDelta(t, 1.0, corr.Values[0][0], 1e-12)
	assert.InDelta(t, 1.0, corr.Values[0][1], 1e-12)
	assert.InDelta(t, -1.0, corr.Values[0][2], 1e-12)
	assert.Equal(t, corr.Values[2][0], corr.Values[0][2])
	assert.True(t, math.IsNaN(corr.Values[0][3]), "constant column has no correlation")
}
