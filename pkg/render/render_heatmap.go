package render

import (
	"fmt"
	"html/template"
	"io"
	"math"

	"github.com/yumyai/prophagestat/pkg/model"
)

var heatmapPageTemplate *template.Template

// calculateByCount maps a prediction count to warm colors.
// 0 -> grey, 1..5 -> distinct YlOrRd-like buckets,
// >5 -> gradient from deep red to dark red up to a cap.
func calculateByCount(value float64) string {
	if value <= 0 {
		return "#CCCCCC"
	}

	switch int(math.Floor(value + 1e-9)) {
	case 1:
		return "#FFFFB2"
	case 2:
		return "#FECC5C"
	case 3:
		return "#FD8D3C"
	case 4:
		return "#F03B20"
	case 5:
		return "#BD0026"
	}

	const capVal = 30.0
	if value > capVal {
		value = capVal
	}
	sr, sg, sb := 189.0, 0.0, 38.0 // #BD0026
	er, eg, eb := 128.0, 0.0, 0.0  // #800000
	t := (value - 5.0) / (capVal - 5.0)
	r := int(math.Round(lerp(sr, er, t)))
	g := int(math.Round(lerp(sg, eg, t)))
	b := int(math.Round(lerp(sb, eb, t)))
	return fmt.Sprintf("#%02X%02X%02X", r, g, b)
}

// calculateByCorrelation maps [-1, 1] onto blue-white-red. NaN is grey.
func calculateByCorrelation(value float64) string {
	if math.IsNaN(value) {
		return "#8B8989"
	}
	if value > 1 {
		value = 1
	}
	if value < -1 {
		value = -1
	}

	var r, g, b float64
	if value >= 0 {
		r = 255
		g = lerp(255, 0, value)
		b = lerp(255, 0, value)
	} else {
		r = lerp(255, 0, -value)
		g = lerp(255, 0, -value)
		b = 255
	}
	return fmt.Sprintf("#%02X%02X%02X", int(math.Round(r)), int(math.Round(g)), int(math.Round(b)))
}

func lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}

// ColorMode selects the palette of a heatmap page.
type ColorMode string

const (
	ColorByCount       ColorMode = "count"
	ColorByCorrelation ColorMode = "correlation"
)

type heatmapCell struct {
	Value string
	Color string
}

type heatmapRow struct {
	Key   string
	Cells []heatmapCell
}

type heatmapPageData struct {
	Title   string
	Corner  string
	ColorBy ColorMode
	Columns []string
	Rows    []heatmapRow
}

func buildHeatmapPageData(title, corner string, t model.Table, mode ColorMode) heatmapPageData {
	rows := make([]heatmapRow, len(t.RowKeys))
	for i, key := range t.RowKeys {
		cells := make([]heatmapCell, len(t.ColKeys))
		for j, v := range t.Values[i] {
			cell := heatmapCell{}
			switch mode {
			case ColorByCorrelation:
				cell.Color = calculateByCorrelation(v)
				if math.IsNaN(v) {
					cell.Value = "NaN"
				} else {
					cell.Value = fmt.Sprintf("%.2f", v)
				}
			default:
				cell.Color = calculateByCount(v)
				cell.Value = fmt.Sprintf("%g", v)
			}
			cells[j] = cell
		}
		rows[i] = heatmapRow{Key: key, Cells: cells}
	}

	return heatmapPageData{
		Title:   title,
		Corner:  corner,
		ColorBy: mode,
		Columns: t.ColKeys,
		Rows:    rows,
	}
}

func init() {
	mainTmpl := `
	<!DOCTYPE html>
	<html>
	<head>
		<meta charset="utf-8">
		<title>{{.Title}}</title>
		<style>
			table.heatmap { border-collapse: collapse; font-size: 0.8rem; }
			table.heatmap td, table.heatmap th { border: 1px solid #999; padding: 2px 6px; text-align: center; }
			table.heatmap th.row-key { text-align: left; }
		</style>
	</head>
	<body>
		<header class="app-header">
			<h1 class="app-name">{{.Title}}</h1>
			<p>
				[<a href="/">Counts</a>]
				[<a href="/correlation">Tool correlation</a>]
				[<a href="/api/v1/summary">Summary JSON</a>]
			</p>
		</header>
		{{template "table" .}}
	</body>
	</html>`

	tableTmpl := `
	{{define "table"}}
		<table class="heatmap">
			<tr>
				<th>{{.Corner}}</th>
				{{range .Columns}}<th>{{.}}</th>{{end}}
			</tr>
			{{range .Rows}}
				<tr>
					<th class="row-key">{{.Key}}</th>
					{{range .Cells}}<td bgcolor="{{.Color}}">{{.Value}}</td>{{end}}
				</tr>
			{{end}}
		</table>
	{{end}}`

	heatmapPageTemplate = template.New("heatmap")
	heatmapPageTemplate = template.Must(heatmapPageTemplate.Parse(mainTmpl))
	heatmapPageTemplate = template.Must(heatmapPageTemplate.Parse(tableTmpl))
}

// RenderHeatmapPage writes t as an HTML table with colored cells.
func RenderHeatmapPage(w io.Writer, title, corner string, t model.Table, mode ColorMode) error {
	return heatmapPageTemplate.Execute(w, buildHeatmapPageData(title, corner, t, mode))
}
