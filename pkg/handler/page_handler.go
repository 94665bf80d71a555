package handler

import (
	"net/http"

	"github.com/yumyai/prophagestat/pkg/middle"
	"github.com/yumyai/prophagestat/pkg/model"
	"github.com/yumyai/prophagestat/pkg/render"
	"go.uber.org/zap"
)

// Genome-by-tool count heatmap
func (app *AppContext) MainPage(w http.ResponseWriter, r *http.Request) {
	table := model.PivotWide(app.Dataset.Summary, model.DimGenome, model.DimTool, model.MeasureCount)

	// rows follow mean count, highest first
	order := model.GenomeOrder(app.Dataset.Summary)
	table = reorderRows(table, order)

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := render.RenderHeatmapPage(w, "Number of Predicted Prophage Regions", "genome", table, render.ColorByCount); err != nil {
		middle.Logger(r.Context()).Error("Render heatmap failed", zap.Error(err))
	}
}

func (app *AppContext) CorrelationPage(w http.ResponseWriter, r *http.Request) {
	table := model.PivotWide(app.Dataset.Summary, model.DimGenome, model.DimTool, model.MeasureCount)

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := render.RenderHeatmapPage(w, "Correlation of per-genome counts between prediction tools", "prediction_tool", model.Correlate(table), render.ColorByCorrelation); err != nil {
		middle.Logger(r.Context()).Error("Render correlation failed", zap.Error(err))
	}
}

func reorderRows(t model.Table, keys []string) model.Table {
	pos := make(map[string]int, len(t.RowKeys))
	for i, k := range t.RowKeys {
		pos[k] = i
	}

	out := model.Table{ColKeys: t.ColKeys}
	for _, k := range keys {
		i, ok := pos[k]
		if !ok {
			continue
		}
		out.RowKeys = append(out.RowKeys, k)
		out.Values = append(out.Values, t.Values[i])
	}
	return out
}
