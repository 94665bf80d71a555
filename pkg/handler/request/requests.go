package request

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/yumyai/prophagestat/pkg/model"
)

// Filter on the summary rows
type SummaryRequest struct {
	Genome string `json:"genome"`
	Tool   string `json:"tool"`
}

// Confidence-interval view of region lengths
type LengthRequest struct {
	Method model.IntervalMethod `json:"method"`
	Field  model.Field          `json:"field"`
	Low    float64              `json:"low"`
	High   float64              `json:"high"`
	Sigma  float64              `json:"k"`
	Tool   string               `json:"tool"`
}

type PivotRequest struct {
	Index   model.Dimension `json:"index"`
	Columns model.Dimension `json:"columns"`
	Value   model.Measure   `json:"value"`
}

// Median ordering of groups, as used for violin plots.
type GroupRequest struct {
	By      model.Dimension `json:"by"`
	Measure GroupMeasure    `json:"measure"`
}

// Defaults used when a query leaves a parameter out.
type IntervalDefaults struct {
	Low   float64
	High  float64
	Sigma float64
}

func ParseSummaryRequest(q url.Values) SummaryRequest {
	return SummaryRequest{
		Genome: strings.TrimSpace(q.Get(KeyGenome)),
		Tool:   strings.TrimSpace(q.Get(KeyTool)),
	}
}

func ParseLengthRequest(q url.Values, def IntervalDefaults) (LengthRequest, error) {
	var errs []string

	method, err := model.ParseIntervalMethod(strings.ToLower(strings.TrimSpace(q.Get(KeyMethod))))
	if err != nil {
		errs = append(errs, err.Error())
	}
	field, err := model.ParseField(strings.TrimSpace(q.Get(KeyField)))
	if err != nil {
		errs = append(errs, err.Error())
	}
	low, err := parseFloatFallback(q, KeyLow, def.Low)
	if err != nil {
		errs = append(errs, "Invalid low value")
	}
	high, err := parseFloatFallback(q, KeyHigh, def.High)
	if err != nil {
		errs = append(errs, "Invalid high value")
	}
	sigma, err := parseFloatFallback(q, KeySigma, def.Sigma)
	if err != nil || sigma <= 0 {
		errs = append(errs, "Invalid k value")
	}

	if len(errs) > 0 {
		return LengthRequest{}, fmt.Errorf("%s", strings.Join(errs, "; "))
	}

	return LengthRequest{
		Method: method,
		Field:  field,
		Low:    low,
		High:   high,
		Sigma:  sigma,
		Tool:   strings.TrimSpace(q.Get(KeyTool)),
	}, nil
}

func ParsePivotRequest(q url.Values) (PivotRequest, error) {
	req := PivotRequest{Index: model.DimGenome, Columns: model.DimTool, Value: model.MeasureCount}
	var err error

	if v := q.Get(KeyIndex); v != "" {
		if req.Index, err = model.ParseDimension(v); err != nil {
			return req, err
		}
	}
	if v := q.Get(KeyColumns); v != "" {
		if req.Columns, err = model.ParseDimension(v); err != nil {
			return req, err
		}
	}
	if req.Value, err = model.ParseMeasure(q.Get(KeyValue)); err != nil {
		return req, err
	}
	if req.Index == req.Columns {
		return req, fmt.Errorf("index and columns must differ (both %s)", req.Index)
	}
	return req, nil
}

func ParseGroupRequest(q url.Values) (GroupRequest, error) {
	req := GroupRequest{By: model.DimClosestMatch, Measure: NewGroupMeasure(q.Get(KeyMeasure))}
	if v := q.Get(KeyBy); v != "" {
		by, err := model.ParseDimension(v)
		if err != nil {
			return req, err
		}
		req.By = by
	}
	return req, nil
}
