package request

import (
	"net/url"
	"strconv"
	"strings"
)

// Query keys understood by the API.
const (
	KeyGenome  = "genome"
	KeyTool    = "tool"
	KeyMethod  = "method"
	KeyField   = "field"
	KeyLow     = "low"
	KeyHigh    = "high"
	KeySigma   = "k"
	KeyIndex   = "index"
	KeyColumns = "columns"
	KeyValue   = "value"
	KeyBy      = "by"
	KeyMeasure = "measure"
)

// GroupMeasure is what GroupRequest takes the median of.
type GroupMeasure int

const (
	GroupMeasureCount GroupMeasure = iota
	GroupMeasureLength
)

func (m GroupMeasure) String() string {
	switch m {
	case GroupMeasureCount:
		return "count"
	case GroupMeasureLength:
		return "length"
	default:
		return "count"
	}
}

func NewGroupMeasure(measure string) GroupMeasure {
	switch strings.ToLower(measure) {
	case "length", "lengths":
		return GroupMeasureLength
	default:
		return GroupMeasureCount // default to count
	}
}

func parseFloatFallback(q url.Values, key string, fallback float64) (float64, error) {
	raw := strings.TrimSpace(q.Get(key))
	if raw == "" {
		return fallback, nil
	}
	return strconv.ParseFloat(raw, 64)
}
