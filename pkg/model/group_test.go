package model

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassifySource(t *testing.T) {
	cases := []struct {
		genome string
		want   string
	}{
		{"CH01", "Chicken"},
		{"PK12", "Pork"},
		{"LG3", "Leafy Greens"},
		{"PAO1", "Reference"},
		{"SBW25", "Reference"},
		{"XX99", "XX99"},
		// first rule wins when several codes appear
		{"CHPK1", "Chicken"},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, ClassifySource(tc.genome, DefaultSourceRules), tc.genome)
	}
}

func TestJoinReferenceInner(t *testing.T) {
	summary := []ToolCount{
		{GenomeID: "G1", Tool: "ToolA"},
		{GenomeID: "G2", Tool: "ToolA"},
	}
	joined := JoinReference(summary, References{"G1": "Pseudomonas fluorescens"})

	require.Len(t, joined, 1)
	assert.Equal(t, "Pseudomonas fluorescens", joined[0].ClosestMatch)
	assert.Empty(t, summary[0].ClosestMatch)
}

func TestSortSummary(t *testing.T) {
	summary := []ToolCount{
		{GenomeID: "G1", Tool: "VIBRANT", MeanCount: 1, ClosestMatch: "b species"},
		{GenomeID: "G2", Tool: "phastest", MeanCount: 3, ClosestMatch: "B species"},
		{GenomeID: "G2", Tool: "GeNomad", MeanCount: 3, ClosestMatch: "B species"},
		{GenomeID: "G3", Tool: "GeNomad", MeanCount: 0, ClosestMatch: "a species"},
	}
	SortSummary(summary)

	var got []string
	for _, c := range summary {
		got = append(got, c.GenomeID+"/"+c.Tool)
	}
	assert.Equal(t, []string{"G3/GeNomad", "G2/GeNomad", "G2/phastest", "G1/VIBRANT"}, got)
}

func TestSortTools(t *testing.T) {
	tools := []string{"VirSorter", "PhageBoost", "GeNomad", "VIBRANT", "PHASTEST"}
	SortTools(tools)
	assert.Equal(t, []string{"GeNomad", "PhageBoost", "PHASTEST", "VIBRANT", "VirSorter"}, tools)
}

func TestGenomeOrder(t *testing.T) {
	summary := []ToolCount{
		{GenomeID: "G1", MeanCount: 1},
		{GenomeID: "G2", MeanCount: 4},
		{GenomeID: "G3", MeanCount: 1},
	}
	assert.Equal(t, []string{"G2", "G1", "G3"}, GenomeOrder(summary))
}

func TestMedianOrder(t *testing.T) {
	order, err := MedianOrder(map[string][]float64{
		"Pork":    {1, 2, 3},
		"Chicken": {5, 6, 100},
		"Beef":    {0, 0},
	})
	require.NoError(t, err)
	require.Len(t, order, 3)
	assert.Equal(t, GroupMedian{Key: "Chicken", Median: 6, N: 3}, order[0])
	assert.Equal(t, "Pork", order[1].Key)
	assert.Equal(t, "Beef", order[2].Key)

	_, err = MedianOrder(map[string][]float64{"empty": nil})
	assert.ErrorIs(t, err, ErrEmptySeries)
}

func TestBuildDataset(t *testing.T) {
	dir := t.TempDir()
	predictions := filepath.Join(dir, "predictions.csv")
	references := filepath.Join(dir, "refseq.tsv")

	require.NoError(t, os.WriteFile(predictions, []byte(predictionsCSV), 0o644))
	require.NoError(t, os.WriteFile(references, []byte(
		"genome\tclosest_match\nCH01_contigs\tPseudomonas fluorescens\nPK02_contigs\tPseudomonas fragi\n"), 0o644))

	ds, err := Build(DatasetOptions{
		PredictionsPath: predictions,
		ReferencesPath:  references,
		GenomeSuffix:    DefaultGenomeSuffix,
		Tools:           []string{"VIBRANT", "GeNomad", "PHASTEST"},
		SourceRules:     DefaultSourceRules,
	})
	require.NoError(t, err)

	assert.Equal(t, []string{"GeNomad", "PHASTEST", "VIBRANT"}, ds.Tools)
	assert.ElementsMatch(t, []string{"CH01", "PK02"}, ds.Genomes)
	require.Len(t, ds.Summary, 6)

	first := ds.Summary[0]
	assert.Equal(t, "CH01", first.GenomeID)
	assert.Equal(t, "Pseudomonas fluorescens", first.ClosestMatch)
	assert.Equal(t, "Chicken", first.Source)
	assert.InDelta(t, 2.0/3.0, first.MeanCount, 1e-9)

	for _, r := range ds.Records {
		assert.NotContains(t, r.GenomeID, DefaultGenomeSuffix)
	}

	lengthsBySpecies := GroupLengths(ds.Records, ds.Label(DimClosestMatch, DefaultSourceRules))
	assert.Equal(t, []float64{12000}, lengthsBySpecies["Pseudomonas fragi"])
}

func TestNewDatasetRejectsEmpty(t *testing.T) {
	_, err := NewDataset(nil, nil, DatasetOptions{})
	assert.ErrorIs(t, err, ErrEmptySeries)
}

func TestGroupCountsSkipsMissingClosestMatch(t *testing.T) {
	summary := []ToolCount{
		{GenomeID: "CH01", Tool: "ToolA", Count: 2, ClosestMatch: "Pseudomonas fragi"},
		{GenomeID: "PK02", Tool: "ToolA", Count: 5},
	}

	groups := GroupCounts(summary, DimClosestMatch)
	assert.Equal(t, map[string][]float64{"Pseudomonas fragi": {2}}, groups)

	// other dimensions keep every row
	assert.Len(t, GroupCounts(summary, DimGenome), 2)
}

func TestMedianOrderAfterTrim(t *testing.T) {
	records := make([]Record, 0, 103)
	for i := 1; i <= 100; i++ {
		records = append(records, Record{GenomeID: "G1", Tool: "ToolA", Length: i * 100})
	}
	records = append(records,
		Record{GenomeID: "G2", Tool: "ToolB", Length: 1000000},
		Record{GenomeID: "G2", Tool: "ToolB", Length: 1000000},
		Record{GenomeID: "G2", Tool: "ToolB", Length: 10},
	)
	byTool := func(r Record) (string, bool) { return r.Tool, true }

	untrimmed, err := MedianOrder(GroupLengths(records, byTool))
	require.NoError(t, err)
	require.Len(t, untrimmed, 2)
	assert.Equal(t, "ToolB", untrimmed[0].Key)

	kept, _, err := TrimToInterval(records, FieldLength, 0.025, 0.975)
	require.NoError(t, err)
	trimmed, err := MedianOrder(GroupLengths(kept, byTool))
	require.NoError(t, err)
	require.Len(t, trimmed, 1)
	assert.Equal(t, GroupMedian{Key: "ToolA", Median: 5100, N: 97}, trimmed[0])
}
