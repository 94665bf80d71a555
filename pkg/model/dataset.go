package model

import (
	"fmt"

	"github.com/yumyai/prophagestat/logger"
	"go.uber.org/zap"
)

type DatasetOptions struct {
	PredictionsPath string
	ReferencesPath  string // optional
	GenomeSuffix    string
	Tools           []string // distinct tools of the input when empty
	SourceRules     []SourceRule
}

// Dataset is everything computed from one load of the input files. It is
// never mutated after Build returns.
type Dataset struct {
	Records    []Record // normalized, sorted by tool
	References References
	Genomes    []string
	Tools      []string
	Summary    []ToolCount
}

func Build(opts DatasetOptions) (*Dataset, error) {
	raw, err := Load(opts.PredictionsPath)
	if err != nil {
		return nil, err
	}

	var refs References
	if opts.ReferencesPath != "" {
		refs, err = LoadReference(opts.ReferencesPath, opts.GenomeSuffix)
		if err != nil {
			return nil, err
		}
	}

	return NewDataset(raw, refs, opts)
}

// NewDataset aggregates already-parsed records. refs may be nil.
func NewDataset(raw []Record, refs References, opts DatasetOptions) (*Dataset, error) {
	if len(raw) == 0 {
		return nil, fmt.Errorf("no prediction records in %q: %w", opts.PredictionsPath, ErrEmptySeries)
	}

	records := NormalizeRecords(raw, opts.GenomeSuffix)
	SortRecordsByTool(records)

	tools := append([]string(nil), opts.Tools...)
	if len(tools) == 0 {
		tools = Tools(records)
	}
	SortTools(tools)

	for _, t := range Tools(records) {
		if !containsString(tools, t) {
			logger.Warn("Prediction tool not in configured tool set", zap.String("tool", t))
		}
	}

	genomes := Genomes(records)
	summary := Summarize(records, genomes, tools)

	if refs != nil {
		joined := JoinReference(summary, refs)
		if dropped := len(summary) - len(joined); dropped > 0 {
			logger.Warn("Genomes without reference match dropped from summary", zap.Int("rows", dropped))
		}
		summary = joined
	}

	summary = AssignSources(summary, opts.SourceRules)
	SortSummary(summary)

	logger.Info("Dataset built",
		zap.Int("records", len(records)),
		zap.Int("genomes", len(genomes)),
		zap.Strings("tools", tools),
		zap.Int("summary_rows", len(summary)),
	)

	return &Dataset{
		Records:    records,
		References: refs,
		Genomes:    genomes,
		Tools:      tools,
		Summary:    summary,
	}, nil
}

// Trim applies the chosen interval method to the dataset's records.
// lowQ/highQ are used by the quantile method, k by the log-sigma one.
func (d *Dataset) Trim(method IntervalMethod, field Field, lowQ, highQ, k float64) ([]Record, Interval, error) {
	switch method {
	case MethodLogSigma:
		return TrimToLogSigma(d.Records, field, k)
	default:
		return TrimToInterval(d.Records, field, lowQ, highQ)
	}
}

// Label maps a record to its group under dim. Genomes lacking a reference
// are reported as missing for DimClosestMatch.
func (d *Dataset) Label(dim Dimension, rules []SourceRule) func(Record) (string, bool) {
	return func(r Record) (string, bool) {
		switch dim {
		case DimClosestMatch:
			m, ok := d.References[r.GenomeID]
			return m, ok
		case DimSource:
			return ClassifySource(r.GenomeID, rules), true
		case DimTool:
			return r.Tool, true
		default:
			return r.GenomeID, true
		}
	}
}

func containsString(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
