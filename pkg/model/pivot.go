package model

import (
	"sort"
)

// PivotWide reshapes the summary into an index-by-columns matrix. Missing
// combinations are 0 and repeated combinations are summed.
func PivotWide(summary []ToolCount, index, columns Dimension, value Measure) Table {
	rowPos := make(map[string]int)
	colPos := make(map[string]int)
	var rows, cols []string

	for _, c := range summary {
		r, k := index.key(c), columns.key(c)
		if _, ok := rowPos[r]; !ok {
			rowPos[r] = 0
			rows = append(rows, r)
		}
		if _, ok := colPos[k]; !ok {
			colPos[k] = 0
			cols = append(cols, k)
		}
	}

	sort.SliceStable(rows, func(i, j int) bool { return lessFold(rows[i], rows[j]) })
	sort.SliceStable(cols, func(i, j int) bool { return lessFold(cols[i], cols[j]) })
	for i, r := range rows {
		rowPos[r] = i
	}
	for j, k := range cols {
		colPos[k] = j
	}

	values := make([][]float64, len(rows))
	for i := range values {
		values[i] = make([]float64, len(cols))
	}
	for _, c := range summary {
		values[rowPos[index.key(c)]][colPos[columns.key(c)]] += value.value(c)
	}

	return Table{RowKeys: rows, ColKeys: cols, Values: values}
}

// Melt turns a wide table back into long form, row-major.
func Melt(t Table) []Cell {
	cells := make([]Cell, 0, len(t.RowKeys)*len(t.ColKeys))
	for i, r := range t.RowKeys {
		for j, c := range t.ColKeys {
			cells = append(cells, Cell{Row: r, Col: c, Value: t.Values[i][j]})
		}
	}
	return cells
}

// Column returns a copy of column j.
func (t Table) Column(j int) []float64 {
	col := make([]float64, len(t.RowKeys))
	for i := range t.RowKeys {
		col[i] = t.Values[i][j]
	}
	return col
}

// Correlate computes the pairwise Pearson correlation between the columns
// of t. The result is square and keyed by t.ColKeys on both axes.
func Correlate(t Table) Table {
	n := len(t.ColKeys)
	cols := make([][]float64, n)
	for j := range cols {
		cols[j] = t.Column(j)
	}

	values := make([][]float64, n)
	for i := range values {
		values[i] = make([]float64, n)
	}
	for i := 0; i < n; i++ {
		for j := i; j < n; j++ {
			r := Pearson(cols[i], cols[j])
			values[i][j] = r
			values[j][i] = r
		}
	}

	keys := append([]string(nil), t.ColKeys...)
	return Table{RowKeys: keys, ColKeys: append([]string(nil), keys...), Values: values}
}
