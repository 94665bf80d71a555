package db

import (
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite"
)

// SnapshotDB wraps the SQLite file that summary snapshots are appended to.
type SnapshotDB struct {
	snapshotSQL *sql.DB
}

func Open(path string) (*SnapshotDB, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	return NewSnapshotDB(db)
}

func NewSnapshotDB(db *sql.DB) (*SnapshotDB, error) {
	s := &SnapshotDB{snapshotSQL: db}
	if err := s.migrate(); err != nil {
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}
	return s, nil
}

func (s *SnapshotDB) Close() error {
	return s.snapshotSQL.Close()
}

func (s *SnapshotDB) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS runs (
		run_id TEXT PRIMARY KEY,
		created_at DATETIME NOT NULL,
		predictions_path TEXT NOT NULL,
		tools TEXT NOT NULL,
		interval_method TEXT NOT NULL,
		interval_low REAL NOT NULL,
		interval_high REAL NOT NULL
	);

	CREATE TABLE IF NOT EXISTS tool_counts (
		run_id TEXT NOT NULL REFERENCES runs(run_id),
		genome_id TEXT NOT NULL,
		prediction_tool TEXT NOT NULL,
		count_phage_predictions INTEGER NOT NULL,
		mean_count REAL NOT NULL,
		closest_match TEXT,
		source TEXT,
		PRIMARY KEY (run_id, genome_id, prediction_tool)
	);

	CREATE TABLE IF NOT EXISTS trimmed_regions (
		run_id TEXT NOT NULL REFERENCES runs(run_id),
		genome_id TEXT NOT NULL,
		contig_id TEXT,
		prediction_tool TEXT NOT NULL,
		prophage_start INTEGER,
		prophage_end INTEGER,
		length INTEGER NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_tool_counts_genome ON tool_counts(genome_id);
	CREATE INDEX IF NOT EXISTS idx_trimmed_regions_run ON trimmed_regions(run_id);
	`

	_, err := s.snapshotSQL.Exec(schema)
	return err
}
