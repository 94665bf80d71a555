package model

// Genomes returns the distinct genome ids of records in first-seen order.
func Genomes(records []Record) []string {
	seen := make(map[string]struct{})
	var genomes []string
	for _, r := range records {
		if _, ok := seen[r.GenomeID]; ok {
			continue
		}
		seen[r.GenomeID] = struct{}{}
		genomes = append(genomes, r.GenomeID)
	}
	return genomes
}

// Tools returns the distinct prediction tools of records, sorted case-insensitively.
func Tools(records []Record) []string {
	seen := make(map[string]struct{})
	var tools []string
	for _, r := range records {
		if _, ok := seen[r.Tool]; ok {
			continue
		}
		seen[r.Tool] = struct{}{}
		tools = append(tools, r.Tool)
	}
	SortTools(tools)
	return tools
}

// CompleteCrossProduct appends a zero-length placeholder for each
// (genome, tool) pair that has no record. Input records are all kept.
func CompleteCrossProduct(records []Record, genomes []string, tools []string) []Record {
	present := make(map[pairKey]struct{}, len(records))
	for _, r := range records {
		present[pairKey{r.GenomeID, r.Tool}] = struct{}{}
	}

	out := make([]Record, len(records), len(records)+len(genomes)*len(tools))
	copy(out, records)

	for _, g := range genomes {
		for _, t := range tools {
			k := pairKey{g, t}
			if _, ok := present[k]; ok {
				continue
			}
			// Guard against duplicate entries in genomes or tools.
			present[k] = struct{}{}
			out = append(out, Record{GenomeID: g, Tool: t, Placeholder: true})
		}
	}
	return out
}

// CountByGenomeTool counts non-zero-length records per (genome, tool).
// A group made only of zero-length entries is reported with count 0.
func CountByGenomeTool(records []Record) []ToolCount {
	counts := make(map[pairKey]int)
	var order []pairKey

	for _, r := range records {
		k := pairKey{r.GenomeID, r.Tool}
		if _, ok := counts[k]; !ok {
			counts[k] = 0
			order = append(order, k)
		}
		if r.Length > 0 {
			counts[k]++
		}
	}

	summary := make([]ToolCount, 0, len(order))
	for _, k := range order {
		summary = append(summary, ToolCount{
			GenomeID: k.genome,
			Tool:     k.tool,
			Count:    counts[k],
		})
	}
	sortByGenomeTool(summary)
	return summary
}

// MeanPerGenome sets MeanCount on every row to the unweighted mean of its
// genome's per-tool counts. The input slice is left untouched.
func MeanPerGenome(summary []ToolCount) []ToolCount {
	type acc struct {
		sum float64
		n   int
	}
	byGenome := make(map[string]*acc)
	for _, c := range summary {
		a, ok := byGenome[c.GenomeID]
		if !ok {
			a = &acc{}
			byGenome[c.GenomeID] = a
		}
		a.sum += float64(c.Count)
		a.n++
	}

	out := make([]ToolCount, len(summary))
	for i, c := range summary {
		a := byGenome[c.GenomeID]
		c.MeanCount = a.sum / float64(a.n)
		out[i] = c
	}
	return out
}

// Summarize runs cross-product fill, counting and per-genome means in order.
func Summarize(records []Record, genomes []string, tools []string) []ToolCount {
	filled := CompleteCrossProduct(records, genomes, tools)
	return MeanPerGenome(CountByGenomeTool(filled))
}
