package db

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/yumyai/prophagestat/logger"
	"github.com/yumyai/prophagestat/pkg/model"
)

// RunSummary is one row of the runs table.
type RunSummary struct {
	RunID           string
	CreatedAt       time.Time
	PredictionsPath string
	Tools           []string
	Interval        model.Interval
	ToolCounts      int
	TrimmedRegions  int
}

// Export appends the dataset summary and the records kept by iv as a new
// run, in a single transaction. It returns the generated run id.
func (s *SnapshotDB) Export(ctx context.Context, ds *model.Dataset, predictionsPath string, iv model.Interval) (string, error) {
	runID := uuid.New().String()
	trimmed := iv.Filter(ds.Records)

	tx, err := s.snapshotSQL.BeginTx(ctx, nil)
	if err != nil {
		return "", fmt.Errorf("fail to begin tx %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx,
		`INSERT INTO runs (run_id, created_at, predictions_path, tools, interval_method, interval_low, interval_high)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		runID, time.Now().UTC(), predictionsPath, strings.Join(ds.Tools, ","), string(iv.Method), iv.Low, iv.High,
	); err != nil {
		return "", fmt.Errorf("insert run: %w", err)
	}

	countStmt, err := tx.PrepareContext(ctx,
		`INSERT INTO tool_counts (run_id, genome_id, prediction_tool, count_phage_predictions, mean_count, closest_match, source)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return "", fmt.Errorf("prepare tool_counts: %w", err)
	}
	defer countStmt.Close()

	for _, c := range ds.Summary {
		if _, err := countStmt.ExecContext(ctx, runID, c.GenomeID, c.Tool, c.Count, c.MeanCount, c.ClosestMatch, c.Source); err != nil {
			return "", fmt.Errorf("insert tool_count %s/%s: %w", c.GenomeID, c.Tool, err)
		}
	}

	regionStmt, err := tx.PrepareContext(ctx,
		`INSERT INTO trimmed_regions (run_id, genome_id, contig_id, prediction_tool, prophage_start, prophage_end, length)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return "", fmt.Errorf("prepare trimmed_regions: %w", err)
	}
	defer regionStmt.Close()

	for _, r := range trimmed {
		if _, err := regionStmt.ExecContext(ctx, runID, r.GenomeID, r.ContigID, r.Tool, r.Start, r.End, r.Length); err != nil {
			return "", fmt.Errorf("insert trimmed region: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return "", fmt.Errorf("commit snapshot: %w", err)
	}

	logger.Info("Snapshot exported",
		zap.String("run_id", runID),
		zap.Int("tool_counts", len(ds.Summary)),
		zap.Int("trimmed_regions", len(trimmed)),
	)
	return runID, nil
}

// Runs lists exported runs, newest first, with row counts.
func (s *SnapshotDB) Runs(ctx context.Context) ([]RunSummary, error) {
	const q = `
		SELECT r.run_id, r.created_at, r.predictions_path, r.tools, r.interval_method, r.interval_low, r.interval_high,
			(SELECT COUNT(*) FROM tool_counts tc WHERE tc.run_id = r.run_id),
			(SELECT COUNT(*) FROM trimmed_regions tr WHERE tr.run_id = r.run_id)
		FROM runs r
		ORDER BY r.created_at DESC, r.run_id
	`

	rows, err := s.snapshotSQL.QueryContext(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("query runs: %w", err)
	}
	defer rows.Close()

	var runs []RunSummary
	for rows.Next() {
		var r RunSummary
		var tools, method string
		if err := rows.Scan(&r.RunID, &r.CreatedAt, &r.PredictionsPath, &tools, &method,
			&r.Interval.Low, &r.Interval.High, &r.ToolCounts, &r.TrimmedRegions); err != nil {
			return nil, fmt.Errorf("scan run: %w", err)
		}
		r.Tools = strings.Split(tools, ",")
		r.Interval.Method = model.IntervalMethod(method)
		runs = append(runs, r)
	}
	return runs, rows.Err()
}

// ToolCounts reads back the summary rows stored for runID.
func (s *SnapshotDB) ToolCounts(ctx context.Context, runID string) ([]model.ToolCount, error) {
	rows, err := s.snapshotSQL.QueryContext(ctx, `
		SELECT genome_id, prediction_tool, count_phage_predictions, mean_count, closest_match, source
		FROM tool_counts WHERE run_id = ?
		ORDER BY genome_id, prediction_tool COLLATE NOCASE`, runID)
	if err != nil {
		return nil, fmt.Errorf("query tool_counts: %w", err)
	}
	defer rows.Close()

	var out []model.ToolCount
	for rows.Next() {
		var c model.ToolCount
		if err := rows.Scan(&c.GenomeID, &c.Tool, &c.Count, &c.MeanCount, &c.ClosestMatch, &c.Source); err != nil {
			return nil, fmt.Errorf("scan tool_count: %w", err)
		}
		out = append(out, c)
	}
	return out, rows.Err()
}
