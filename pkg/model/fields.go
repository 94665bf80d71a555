package model

import (
	"fmt"
	"strings"
)

// Field selects a numeric attribute of a Record.
type Field int

const (
	FieldLength Field = iota
	FieldStart
	FieldEnd
)

func (f Field) String() string {
	switch f {
	case FieldLength:
		return "length"
	case FieldStart:
		return "prophage_start"
	case FieldEnd:
		return "prophage_end"
	default:
		return "unknown"
	}
}

func ParseField(field string) (Field, error) {
	switch strings.ToLower(field) {
	case "length", "":
		return FieldLength, nil
	case "prophage_start", "start":
		return FieldStart, nil
	case "prophage_end", "end":
		return FieldEnd, nil
	default:
		return FieldLength, fmt.Errorf("unknown record field %q", field)
	}
}

func (f Field) value(r Record) float64 {
	switch f {
	case FieldStart:
		return float64(r.Start)
	case FieldEnd:
		return float64(r.End)
	default:
		return float64(r.Length)
	}
}

// Dimension selects a categorical attribute of a ToolCount.
type Dimension int

const (
	DimGenome Dimension = iota
	DimTool
	DimClosestMatch
	DimSource
)

func (d Dimension) String() string {
	switch d {
	case DimGenome:
		return "genome"
	case DimTool:
		return "prediction_tool"
	case DimClosestMatch:
		return "closest_match"
	case DimSource:
		return "source"
	default:
		return "unknown"
	}
}

func ParseDimension(dim string) (Dimension, error) {
	switch strings.ToLower(dim) {
	case "genome":
		return DimGenome, nil
	case "prediction_tool", "tool":
		return DimTool, nil
	case "closest_match", "species":
		return DimClosestMatch, nil
	case "source":
		return DimSource, nil
	default:
		return DimGenome, fmt.Errorf("unknown summary dimension %q", dim)
	}
}

func (d Dimension) key(c ToolCount) string {
	switch d {
	case DimTool:
		return c.Tool
	case DimClosestMatch:
		return c.ClosestMatch
	case DimSource:
		return c.Source
	default:
		return c.GenomeID
	}
}

// Measure selects a numeric attribute of a ToolCount.
type Measure int

const (
	MeasureCount Measure = iota
	MeasureMeanCount
)

func (m Measure) String() string {
	switch m {
	case MeasureCount:
		return "count"
	case MeasureMeanCount:
		return "mean_count"
	default:
		return "unknown"
	}
}

func ParseMeasure(measure string) (Measure, error) {
	switch strings.ToLower(measure) {
	case "count", "count_phage_predictions", "":
		return MeasureCount, nil
	case "mean_count", "mean":
		return MeasureMeanCount, nil
	default:
		return MeasureCount, fmt.Errorf("unknown summary measure %q", measure)
	}
}

func (m Measure) value(c ToolCount) float64 {
	if m == MeasureMeanCount {
		return c.MeanCount
	}
	return float64(c.Count)
}
