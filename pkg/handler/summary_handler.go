package handler

import (
	"errors"
	"math"
	"net/http"
	"strings"

	"github.com/yumyai/prophagestat/pkg/handler/request"
	"github.com/yumyai/prophagestat/pkg/model"
)

type LengthsPayload struct {
	Interval model.Interval      `json:"interval"`
	Field    string              `json:"field"`
	Total    int                 `json:"n_total"`
	Kept     int                 `json:"n_kept"`
	Medians  []model.GroupMedian `json:"tool_medians"`
	Records  []model.Record      `json:"records"`
}

// JSON has no NaN, so undefined cells become null.
type TablePayload struct {
	Rows    []string     `json:"rows"`
	Columns []string     `json:"columns"`
	Values  [][]*float64 `json:"values"`
}

func newTablePayload(t model.Table) TablePayload {
	values := make([][]*float64, len(t.Values))
	for i, row := range t.Values {
		values[i] = make([]*float64, len(row))
		for j := range row {
			if math.IsNaN(row[j]) {
				continue
			}
			v := row[j]
			values[i][j] = &v
		}
	}
	return TablePayload{Rows: t.RowKeys, Columns: t.ColKeys, Values: values}
}

func (app *AppContext) SummaryHandler(w http.ResponseWriter, r *http.Request) {
	req := request.ParseSummaryRequest(r.URL.Query())

	rows := make([]model.ToolCount, 0, len(app.Dataset.Summary))
	for _, c := range app.Dataset.Summary {
		if req.Genome != "" && c.GenomeID != req.Genome {
			continue
		}
		if req.Tool != "" && !strings.EqualFold(c.Tool, req.Tool) {
			continue
		}
		rows = append(rows, c)
	}

	writeOK(w, r, rows)
}

func (app *AppContext) LengthsHandler(w http.ResponseWriter, r *http.Request) {
	req, err := request.ParseLengthRequest(r.URL.Query(), app.Defaults)
	if err != nil {
		writeError(w, r, http.StatusBadRequest, err)
		return
	}

	kept, iv, err := app.Dataset.Trim(req.Method, req.Field, req.Low, req.High, req.Sigma)
	if err != nil {
		writeError(w, r, trimStatus(err), err)
		return
	}

	if req.Tool != "" {
		filtered := kept[:0:0]
		for _, rec := range kept {
			if strings.EqualFold(rec.Tool, req.Tool) {
				filtered = append(filtered, rec)
			}
		}
		kept = filtered
	}

	medians, err := model.MedianOrder(model.GroupLengths(kept, app.Dataset.Label(model.DimTool, app.Sources)))
	if err != nil {
		writeError(w, r, http.StatusInternalServerError, err)
		return
	}

	writeOK(w, r, LengthsPayload{
		Interval: iv,
		Field:    req.Field.String(),
		Total:    len(app.Dataset.Records),
		Kept:     len(kept),
		Medians:  medians,
		Records:  kept,
	})
}

func (app *AppContext) PivotHandler(w http.ResponseWriter, r *http.Request) {
	req, err := request.ParsePivotRequest(r.URL.Query())
	if err != nil {
		writeError(w, r, http.StatusBadRequest, err)
		return
	}

	table := model.PivotWide(app.Dataset.Summary, req.Index, req.Columns, req.Value)
	writeOK(w, r, newTablePayload(table))
}

func (app *AppContext) CorrelationHandler(w http.ResponseWriter, r *http.Request) {
	table := model.PivotWide(app.Dataset.Summary, model.DimGenome, model.DimTool, model.MeasureCount)
	writeOK(w, r, newTablePayload(model.Correlate(table)))
}

func (app *AppContext) GroupsHandler(w http.ResponseWriter, r *http.Request) {
	req, err := request.ParseGroupRequest(r.URL.Query())
	if err != nil {
		writeError(w, r, http.StatusBadRequest, err)
		return
	}

	var groups map[string][]float64
	switch req.Measure {
	case request.GroupMeasureLength:
		// medians are taken over the trimmed lengths
		lr, err := request.ParseLengthRequest(r.URL.Query(), app.Defaults)
		if err != nil {
			writeError(w, r, http.StatusBadRequest, err)
			return
		}
		kept, _, err := app.Dataset.Trim(lr.Method, lr.Field, lr.Low, lr.High, lr.Sigma)
		if err != nil {
			writeError(w, r, trimStatus(err), err)
			return
		}
		groups = model.GroupLengths(kept, app.Dataset.Label(req.By, app.Sources))
	default:
		groups = model.GroupCounts(app.Dataset.Summary, req.By)
	}

	order, err := model.MedianOrder(groups)
	if err != nil {
		writeError(w, r, http.StatusInternalServerError, err)
		return
	}
	writeOK(w, r, order)
}

// Trim failures caused by the query or the data are client errors.
func trimStatus(err error) int {
	for _, target := range []error{
		model.ErrInvalidQuantile,
		model.ErrInvalidSigma,
		model.ErrNonPositive,
		model.ErrTooFewValues,
		model.ErrEmptySeries,
	} {
		if errors.Is(err, target) {
			return http.StatusBadRequest
		}
	}
	return http.StatusInternalServerError
}
