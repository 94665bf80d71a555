package model

import (
	"encoding/csv"
	"io"
	"math"
	"strconv"
)

func formatFloat(v float64) string {
	if math.IsNaN(v) {
		return "NaN"
	}
	return strconv.FormatFloat(v, 'g', -1, 64)
}

func WriteSummaryTSV(w io.Writer, summary []ToolCount) error {
	tw := csv.NewWriter(w)
	tw.Comma = '\t'

	if err := tw.Write([]string{ColGenome, ColTool, "count_phage_predictions", "mean_count", ColClosestMatch, "source"}); err != nil {
		return err
	}
	for _, c := range summary {
		row := []string{c.GenomeID, c.Tool, strconv.Itoa(c.Count), formatFloat(c.MeanCount), c.ClosestMatch, c.Source}
		if err := tw.Write(row); err != nil {
			return err
		}
	}
	tw.Flush()
	return tw.Error()
}

func WriteRecordsTSV(w io.Writer, records []Record) error {
	tw := csv.NewWriter(w)
	tw.Comma = '\t'

	if err := tw.Write([]string{ColGenome, ColContig, ColTool, ColStart, ColEnd, ColLength}); err != nil {
		return err
	}
	for _, r := range records {
		row := []string{r.GenomeID, r.ContigID, r.Tool, strconv.Itoa(r.Start), strconv.Itoa(r.End), strconv.Itoa(r.Length)}
		if err := tw.Write(row); err != nil {
			return err
		}
	}
	tw.Flush()
	return tw.Error()
}

// WriteTableTSV writes t with corner as the top-left header cell.
func WriteTableTSV(w io.Writer, t Table, corner string) error {
	tw := csv.NewWriter(w)
	tw.Comma = '\t'

	if err := tw.Write(append([]string{corner}, t.ColKeys...)); err != nil {
		return err
	}
	for i, r := range t.RowKeys {
		row := make([]string, 0, len(t.ColKeys)+1)
		row = append(row, r)
		for _, v := range t.Values[i] {
			row = append(row, formatFloat(v))
		}
		if err := tw.Write(row); err != nil {
			return err
		}
	}
	tw.Flush()
	return tw.Error()
}
