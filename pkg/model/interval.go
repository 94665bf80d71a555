package model

import (
	"fmt"
	"math"
	"sort"
)

// IntervalMethod names how an Interval was derived.
type IntervalMethod string

const (
	MethodQuantile IntervalMethod = "quantile"
	MethodLogSigma IntervalMethod = "logsigma"
)

func ParseIntervalMethod(method string) (IntervalMethod, error) {
	switch method {
	case "quantile", "ci", "":
		return MethodQuantile, nil
	case "logsigma", "log_sigma", "sigma":
		return MethodLogSigma, nil
	default:
		return MethodQuantile, fmt.Errorf("unknown interval method %q", method)
	}
}

// Interval holds computed bounds on a record field. Quantile intervals
// exclude both bounds, log-sigma intervals include them.
type Interval struct {
	Field  Field          `json:"-"`
	Method IntervalMethod `json:"method"`
	Low    float64        `json:"low"`
	High   float64        `json:"high"`
}

func (iv Interval) Contains(v float64) bool {
	if iv.Method == MethodLogSigma {
		return v >= iv.Low && v <= iv.High
	}
	return v > iv.Low && v < iv.High
}

// Filter keeps the records whose field lies inside the interval. Bounds
// are not recomputed, so Filter is idempotent.
func (iv Interval) Filter(records []Record) []Record {
	out := make([]Record, 0, len(records))
	for _, r := range records {
		if iv.Contains(iv.Field.value(r)) {
			out = append(out, r)
		}
	}
	return out
}

// Quantile of an ascending slice, interpolating linearly between closest
// ranks (type 7, as pandas does). gonum's stat.Quantile offers no type 7.
func Quantile(sorted []float64, q float64) (float64, error) {
	if len(sorted) == 0 {
		return 0, ErrEmptySeries
	}
	if q < 0 || q > 1 || math.IsNaN(q) {
		return 0, ErrInvalidQuantile
	}
	pos := q * float64(len(sorted)-1)
	lo := int(math.Floor(pos))
	hi := int(math.Ceil(pos))
	if lo == hi {
		return sorted[lo], nil
	}
	w := pos - float64(lo)
	return sorted[lo]*(1-w) + sorted[hi]*w, nil
}

// QuantileInterval computes the lowQ and highQ quantiles of field over records.
func QuantileInterval(records []Record, field Field, lowQ, highQ float64) (Interval, error) {
	if !(lowQ >= 0 && lowQ < highQ && highQ <= 1) {
		return Interval{}, ErrInvalidQuantile
	}

	values := fieldValues(records, field)
	sort.Float64s(values)

	low, err := Quantile(values, lowQ)
	if err != nil {
		return Interval{}, fmt.Errorf("%s quantile %.3f: %w", field, lowQ, err)
	}
	high, err := Quantile(values, highQ)
	if err != nil {
		return Interval{}, fmt.Errorf("%s quantile %.3f: %w", field, highQ, err)
	}

	return Interval{Field: field, Method: MethodQuantile, Low: low, High: high}, nil
}

// TrimToInterval keeps records strictly between the lowQ and highQ
// quantiles of the untrimmed distribution.
func TrimToInterval(records []Record, field Field, lowQ, highQ float64) ([]Record, Interval, error) {
	iv, err := QuantileInterval(records, field, lowQ, highQ)
	if err != nil {
		return nil, Interval{}, err
	}
	return iv.Filter(records), iv, nil
}

// LogSigmaInterval computes exp(mean(ln v) ± k·sd(ln v)) using the sample
// standard deviation.
func LogSigmaInterval(records []Record, field Field, k float64) (Interval, error) {
	if !(k > 0) {
		return Interval{}, fmt.Errorf("%s log-sigma: %w (got %v)", field, ErrInvalidSigma, k)
	}

	values := fieldValues(records, field)
	switch len(values) {
	case 0:
		return Interval{}, fmt.Errorf("%s log-sigma: %w", field, ErrEmptySeries)
	case 1:
		return Interval{}, fmt.Errorf("%s log-sigma: %w", field, ErrTooFewValues)
	}

	logs := make([]float64, len(values))
	for i, v := range values {
		if v <= 0 {
			return Interval{}, fmt.Errorf("%s log-sigma: %w (got %v)", field, ErrNonPositive, v)
		}
		logs[i] = math.Log(v)
	}

	mu := Mean(logs)
	sd := StdDev(logs)
	return Interval{
		Field:  field,
		Method: MethodLogSigma,
		Low:    math.Exp(mu - k*sd),
		High:   math.Exp(mu + k*sd),
	}, nil
}

// TrimToLogSigma keeps records within the log-scale k-sigma band, bounds included.
func TrimToLogSigma(records []Record, field Field, k float64) ([]Record, Interval, error) {
	iv, err := LogSigmaInterval(records, field, k)
	if err != nil {
		return nil, Interval{}, err
	}
	return iv.Filter(records), iv, nil
}

// Placeholders never reach interval statistics.
func fieldValues(records []Record, field Field) []float64 {
	values := make([]float64, 0, len(records))
	for _, r := range records {
		if r.Placeholder {
			continue
		}
		values = append(values, field.value(r))
	}
	return values
}
