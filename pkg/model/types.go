package model

// One predicted prophage region.
type Record struct {
	GenomeID    string `json:"genome"`
	ContigID    string `json:"contig"`
	Tool        string `json:"prediction_tool"`
	Start       int    `json:"prophage_start"`
	End         int    `json:"prophage_end"`
	Length      int    `json:"length"`
	Placeholder bool   `json:"placeholder,omitempty"` // inserted by cross-product fill
}

// ToolCount is one row of the per-genome-per-tool summary.
type ToolCount struct {
	GenomeID     string  `json:"genome"`
	Tool         string  `json:"prediction_tool"`
	Count        int     `json:"count_phage_predictions"`
	MeanCount    float64 `json:"mean_count"`
	ClosestMatch string  `json:"closest_match,omitempty"`
	Source       string  `json:"source,omitempty"`
}

// genome -> closest_match species label
type References map[string]string

// SourceRule labels a genome whose identifier contains Code.
type SourceRule struct {
	Code  string `yaml:"code" json:"code"`
	Label string `yaml:"label" json:"label"`
}

// Wide matrix, Values[i][j] belongs to RowKeys[i] and ColKeys[j].
type Table struct {
	RowKeys []string    `json:"rows"`
	ColKeys []string    `json:"columns"`
	Values  [][]float64 `json:"values"`
}

// Cell is one entry of a Table in long form.
type Cell struct {
	Row   string  `json:"row"`
	Col   string  `json:"column"`
	Value float64 `json:"value"`
}

type pairKey struct {
	genome string
	tool   string
}
