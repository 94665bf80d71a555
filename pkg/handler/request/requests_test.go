package request

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yumyai/prophagestat/pkg/model"
)

var defaults = IntervalDefaults{Low: 0.025, High: 0.975, Sigma: 2}

func TestParseLengthRequestDefaults(t *testing.T) {
	req, err := ParseLengthRequest(url.Values{}, defaults)
	require.NoError(t, err)

	assert.Equal(t, LengthRequest{
		Method: model.MethodQuantile,
		Field:  model.FieldLength,
		Low:    0.025,
		High:   0.975,
		Sigma:  2,
	}, req)
}

func TestParseLengthRequest(t *testing.T) {
	q := url.Values{"method": {"LogSigma"}, "k": {"1.5"}, "tool": {"VIBRANT"}, "field": {"start"}}

	req, err := ParseLengthRequest(q, defaults)
	require.NoError(t, err)
	assert.Equal(t, model.MethodLogSigma, req.Method)
	assert.Equal(t, model.FieldStart, req.Field)
	assert.Equal(t, 1.5, req.Sigma)
	assert.Equal(t, "VIBRANT", req.Tool)
}

func TestParseLengthRequestCollectsErrors(t *testing.T) {
	q := url.Values{"low": {"x"}, "high": {"y"}, "k": {"-1"}}

	_, err := ParseLengthRequest(q, defaults)
	require.Error(t, err)
	assert.Equal(t, "Invalid low value; Invalid high value; Invalid k value", err.Error())
}

func TestParsePivotRequest(t *testing.T) {
	req, err := ParsePivotRequest(url.Values{})
	require.NoError(t, err)
	assert.Equal(t, PivotRequest{Index: model.DimGenome, Columns: model.DimTool, Value: model.MeasureCount}, req)

	req, err = ParsePivotRequest(url.Values{"index": {"source"}, "value": {"mean_count"}})
	require.NoError(t, err)
	assert.Equal(t, model.DimSource, req.Index)
	assert.Equal(t, model.MeasureMeanCount, req.Value)

	_, err = ParsePivotRequest(url.Values{"index": {"tool"}})
	assert.Error(t, err)

	_, err = ParsePivotRequest(url.Values{"columns": {"colour"}})
	assert.Error(t, err)
}

func TestParseGroupRequest(t *testing.T) {
	req, err := ParseGroupRequest(url.Values{"by": {"source"}, "measure": {"length"}})
	require.NoError(t, err)
	assert.Equal(t, GroupRequest{By: model.DimSource, Measure: GroupMeasureLength}, req)

	req, err = ParseGroupRequest(url.Values{})
	require.NoError(t, err)
	assert.Equal(t, model.DimClosestMatch, req.By)
	assert.Equal(t, GroupMeasureCount, req.Measure)
}
