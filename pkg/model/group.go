package model

import (
	"fmt"
	"sort"
	"strings"
)

var DefaultTools = []string{"GeNomad", "PHASTEST", "PhageBoost", "VIBRANT", "VirSorter"}

// Order matters: the first rule whose code appears in a genome id wins.
var DefaultSourceRules = []SourceRule{
	{Code: "CH", Label: "Chicken"},
	{Code: "PK", Label: "Pork"},
	{Code: "SM", Label: "Salmon"},
	{Code: "PR", Label: "Prawns"},
	{Code: "LG", Label: "Leafy Greens"},
	{Code: "LB", Label: "Lamb"},
	{Code: "BF", Label: "Beef"},
	{Code: "PA", Label: "Reference"},
	{Code: "SBW", Label: "Reference"},
}

// JoinReference attaches closest_match labels. Rows whose genome has no
// reference entry are dropped (inner join).
func JoinReference(summary []ToolCount, refs References) []ToolCount {
	out := make([]ToolCount, 0, len(summary))
	for _, c := range summary {
		match, ok := refs[c.GenomeID]
		if !ok {
			continue
		}
		c.ClosestMatch = match
		out = append(out, c)
	}
	return out
}

// ClassifySource returns the label of the first matching rule, or the
// genome id itself when nothing matches.
func ClassifySource(genome string, rules []SourceRule) string {
	for _, rule := range rules {
		if rule.Code != "" && strings.Contains(genome, rule.Code) {
			return rule.Label
		}
	}
	return genome
}

func AssignSources(summary []ToolCount, rules []SourceRule) []ToolCount {
	out := make([]ToolCount, len(summary))
	for i, c := range summary {
		c.Source = ClassifySource(c.GenomeID, rules)
		out[i] = c
	}
	return out
}

func lessFold(a, b string) bool {
	la, lb := strings.ToLower(a), strings.ToLower(b)
	if la != lb {
		return la < lb
	}
	return a < b
}

// SortTools orders tool names case-insensitively, in place.
func SortTools(tools []string) {
	sort.SliceStable(tools, func(i, j int) bool { return lessFold(tools[i], tools[j]) })
}

// SortRecordsByTool orders records by tool case-insensitively, keeping input order within a tool.
func SortRecordsByTool(records []Record) {
	sort.SliceStable(records, func(i, j int) bool { return lessFold(records[i].Tool, records[j].Tool) })
}

func sortByGenomeTool(summary []ToolCount) {
	sort.SliceStable(summary, func(i, j int) bool {
		a, b := summary[i], summary[j]
		if a.GenomeID != b.GenomeID {
			return lessFold(a.GenomeID, b.GenomeID)
		}
		return lessFold(a.Tool, b.Tool)
	})
}

// SortSummary orders rows by closest match (asc), mean count (desc),
// tool (asc) and finally genome, all text keys case-insensitive.
func SortSummary(summary []ToolCount) {
	sort.SliceStable(summary, func(i, j int) bool {
		a, b := summary[i], summary[j]
		if !strings.EqualFold(a.ClosestMatch, b.ClosestMatch) {
			return lessFold(a.ClosestMatch, b.ClosestMatch)
		}
		if a.MeanCount != b.MeanCount {
			return a.MeanCount > b.MeanCount
		}
		if !strings.EqualFold(a.Tool, b.Tool) {
			return lessFold(a.Tool, b.Tool)
		}
		return lessFold(a.GenomeID, b.GenomeID)
	})
}

// GenomeOrder lists genomes by mean count, highest first.
func GenomeOrder(summary []ToolCount) []string {
	mean := make(map[string]float64)
	var genomes []string
	for _, c := range summary {
		if _, ok := mean[c.GenomeID]; !ok {
			genomes = append(genomes, c.GenomeID)
		}
		mean[c.GenomeID] = c.MeanCount
	}
	sort.SliceStable(genomes, func(i, j int) bool {
		if mean[genomes[i]] != mean[genomes[j]] {
			return mean[genomes[i]] > mean[genomes[j]]
		}
		return lessFold(genomes[i], genomes[j])
	})
	return genomes
}

// GroupCounts collects per-tool counts by a summary dimension. Rows without
// a closest match are skipped when grouping by it.
func GroupCounts(summary []ToolCount, dim Dimension) map[string][]float64 {
	groups := make(map[string][]float64)
	for _, c := range summary {
		k := dim.key(c)
		if k == "" && dim == DimClosestMatch {
			continue
		}
		groups[k] = append(groups[k], float64(c.Count))
	}
	return groups
}

// GroupLengths collects record lengths by label; records for which label
// reports false are skipped.
func GroupLengths(records []Record, label func(Record) (string, bool)) map[string][]float64 {
	groups := make(map[string][]float64)
	for _, r := range records {
		if r.Placeholder {
			continue
		}
		k, ok := label(r)
		if !ok {
			continue
		}
		groups[k] = append(groups[k], float64(r.Length))
	}
	return groups
}

// GroupMedian pairs a group key with its median.
type GroupMedian struct {
	Key    string  `json:"key"`
	Median float64 `json:"median"`
	N      int     `json:"n"`
}

// MedianOrder returns groups sorted by median, highest first.
func MedianOrder(groups map[string][]float64) ([]GroupMedian, error) {
	out := make([]GroupMedian, 0, len(groups))
	for k, values := range groups {
		m, err := Median(values)
		if err != nil {
			return nil, fmt.Errorf("median of group %q: %w", k, err)
		}
		out = append(out, GroupMedian{Key: k, Median: m, N: len(values)})
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Median != out[j].Median {
			return out[i].Median > out[j].Median
		}
		return lessFold(out[i].Key, out[j].Key)
	})
	return out, nil
}
