package db

import (
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite"
)

const SchemaSQL = `
CREATE TABLE IF NOT EXISTS analyses (
    id TEXT PRIMARY KEY,
    document_id TEXT,
    source_path TEXT,
    source_sha256 TEXT,
    created_at TEXT,
    word_count INTEGER,
    sentence_count INTEGER,
    paragraph_count INTEGER,
    overall_score REAL,
    confidence REAL,
    confidence_level TEXT,
    verdict TEXT,
    paragraph_skipped INTEGER,
    error INTEGER,
    message TEXT,
    duration_ms INTEGER
);

CREATE TABLE IF NOT EXISTS heuristic_results (
    id INTEGER PRIMARY KEY,
    analysis_id TEXT REFERENCES analyses(id),
    key TEXT,
    name TEXT,
    value REAL,
    score REAL,
    interpretation TEXT,
    skipped INTEGER
);

CREATE INDEX IF NOT EXISTS idx_heuristic_results_analysis ON heuristic_results(analysis_id);
`

func Open(path string) (*sql.DB, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	if _, err := db.Exec(SchemaSQL); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("apply schema: %w", err)
	}
	return db, nil
}
