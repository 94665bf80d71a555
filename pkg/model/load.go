package model

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/yumyai/prophagestat/logger"
	"go.uber.org/zap"
)

const (
	ColGenome       = "genome"
	ColContig       = "contig"
	ColTool         = "prediction_tool"
	ColStart        = "prophage_start"
	ColEnd          = "prophage_end"
	ColLength       = "length"
	ColClosestMatch = "closest_match"

	DefaultGenomeSuffix = "_contigs"
)

// DelimiterFor picks tab for .tsv/.tab files and comma otherwise.
func DelimiterFor(path string) rune {
	switch strings.ToLower(filepath.Ext(strings.TrimSuffix(path, ".gz"))) {
	case ".tsv", ".tab", ".txt":
		return '\t'
	default:
		return ','
	}
}

// Load parses a delimited prediction table.
func Load(path string) ([]Record, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open predictions: %w", err)
	}
	defer f.Close()

	records, err := ReadRecords(f, path, DelimiterFor(path))
	if err != nil {
		return nil, err
	}

	logger.Debug("Loaded predictions", zap.String("path", path), zap.Int("records", len(records)))
	return records, nil
}

// ReadRecords parses predictions from r; name is only used in errors.
func ReadRecords(r io.Reader, name string, delim rune) ([]Record, error) {
	cr := newReader(r, delim)

	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return nil, &ParseError{Path: name, Column: ColGenome, Err: ErrMissingColumn}
	}
	if err != nil {
		return nil, fmt.Errorf("read header of %s: %w", name, err)
	}

	idx := indexHeader(header)
	for _, col := range []string{ColGenome, ColTool} {
		if _, ok := idx[col]; !ok {
			return nil, &ParseError{Path: name, Column: col, Err: ErrMissingColumn}
		}
	}

	_, hasLength := idx[ColLength]
	_, hasStart := idx[ColStart]
	_, hasEnd := idx[ColEnd]
	if !hasLength && !(hasStart && hasEnd) {
		return nil, &ParseError{Path: name, Column: ColLength, Err: ErrMissingColumn}
	}

	var records []Record
	for {
		row, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", name, err)
		}
		if blankRow(row) {
			continue
		}
		line, _ := cr.FieldPos(0)

		rec := Record{
			GenomeID: cell(row, idx, ColGenome),
			ContigID: cell(row, idx, ColContig),
			Tool:     cell(row, idx, ColTool),
		}

		var startOK, endOK bool
		if rec.Start, startOK, err = parseInt(cell(row, idx, ColStart)); err != nil {
			return nil, &ParseError{Path: name, Line: line, Column: ColStart, Err: err}
		}
		if rec.End, endOK, err = parseInt(cell(row, idx, ColEnd)); err != nil {
			return nil, &ParseError{Path: name, Line: line, Column: ColEnd, Err: err}
		}

		length, lengthOK, err := parseInt(cell(row, idx, ColLength))
		if err != nil {
			return nil, &ParseError{Path: name, Line: line, Column: ColLength, Err: err}
		}
		switch {
		case lengthOK:
			rec.Length = length
		case startOK && endOK:
			rec.Length = rec.End - rec.Start
		default:
			return nil, &ParseError{Path: name, Line: line, Column: ColLength, Err: errors.New("no length and no start/end to derive it")}
		}

		records = append(records, rec)
	}

	return records, nil
}

// LoadReference reads the genome -> closest_match table.
func LoadReference(path string, suffix string) (References, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open reference matches: %w", err)
	}
	defer f.Close()

	refs, err := ReadReferences(f, path, DelimiterFor(path), suffix)
	if err != nil {
		return nil, err
	}

	logger.Debug("Loaded reference matches", zap.String("path", path), zap.Int("genomes", len(refs)))
	return refs, nil
}

func ReadReferences(r io.Reader, name string, delim rune, suffix string) (References, error) {
	cr := newReader(r, delim)

	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return nil, &ParseError{Path: name, Column: ColGenome, Err: ErrMissingColumn}
	}
	if err != nil {
		return nil, fmt.Errorf("read header of %s: %w", name, err)
	}

	idx := indexHeader(header)
	for _, col := range []string{ColGenome, ColClosestMatch} {
		if _, ok := idx[col]; !ok {
			return nil, &ParseError{Path: name, Column: col, Err: ErrMissingColumn}
		}
	}

	refs := References{}
	for {
		row, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", name, err)
		}
		if blankRow(row) {
			continue
		}
		genome := NormalizeGenomeID(cell(row, idx, ColGenome), suffix)
		refs[genome] = cell(row, idx, ColClosestMatch)
	}

	return refs, nil
}

// NormalizeGenomeID removes the suffix token so ids match across files.
func NormalizeGenomeID(id string, suffix string) string {
	if suffix == "" {
		return id
	}
	return strings.ReplaceAll(id, suffix, "")
}

// NormalizeRecords returns a copy of records with normalized genome ids.
func NormalizeRecords(records []Record, suffix string) []Record {
	out := make([]Record, len(records))
	for i, r := range records {
		r.GenomeID = NormalizeGenomeID(r.GenomeID, suffix)
		out[i] = r
	}
	return out
}

func newReader(r io.Reader, delim rune) *csv.Reader {
	cr := csv.NewReader(r)
	cr.Comma = delim
	cr.LazyQuotes = true
	cr.FieldsPerRecord = -1
	return cr
}

func indexHeader(header []string) map[string]int {
	idx := make(map[string]int, len(header))
	for i, h := range header {
		name := strings.ToLower(strings.TrimSpace(strings.TrimPrefix(h, "\ufeff")))
		if _, seen := idx[name]; !seen {
			idx[name] = i
		}
	}
	return idx
}

func cell(row []string, idx map[string]int, col string) string {
	i, ok := idx[col]
	if !ok || i >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[i])
}

func blankRow(row []string) bool {
	for _, v := range row {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}

// parseInt accepts plain integers and integral floats ("5000.0"), which
// pandas writes for columns that once held NaN.
func parseInt(raw string) (int, bool, error) {
	if raw == "" {
		return 0, false, nil
	}
	if n, err := strconv.Atoi(raw); err == nil {
		return n, true, nil
	}
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil || f != float64(int(f)) {
		return 0, false, fmt.Errorf("not an integer: %q", raw)
	}
	return int(f), true, nil
}
