package db

import (
	"database/sql"
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"

	"ai_text_analyzer/internal/aidetect"
	"ai_text_analyzer/internal/types"
)

// timeLayout has a fixed fraction width so created_at sorts as text.
const timeLayout = "2006-01-02T15:04:05.000000000Z07:00"

// Source identifies where an analyzed text came from.
type Source struct {
	Path   string
	SHA256 string
}

// Analysis is one stored report without its per-heuristic rows.
type Analysis struct {
	ID                string
	DocumentID        string
	SourcePath        string
	CreatedAt         time.Time
	WordCount         int
	OverallScore      float64
	Confidence        float64
	ConfidenceLevel   string
	Verdict           string
	ParagraphsSkipped bool
	Error             bool
}

// SaveReport stores report and its results in one transaction and returns
// the generated analysis id. NaN values are stored as NULL.
func SaveReport(dbPath string, src Source, report aidetect.Report) (string, error) {
	conn, err := Open(dbPath)
	if err != nil {
		return "", err
	}
	defer conn.Close()

	tx, err := conn.Begin()
	if err != nil {
		return "", fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	id := uuid.NewString()
	if _, err := tx.Exec(
		`INSERT INTO analyses(id, document_id, source_path, source_sha256, created_at, word_count, sentence_count,
		paragraph_count, overall_score, confidence, confidence_level, verdict, paragraph_skipped, error, message, duration_ms)
		VALUES(?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?)`,
		id,
		report.DocumentID,
		src.Path,
		src.SHA256,
		time.Now().UTC().Format(timeLayout),
		report.WordCount,
		report.SentenceCount,
		report.ParagraphCount,
		report.OverallScore,
		report.Confidence.Score,
		string(report.Confidence.Level),
		string(report.Verdict),
		report.ParagraphAnalysisSkipped,
		report.Error,
		report.Message,
		report.DurationMs,
	); err != nil {
		return "", fmt.Errorf("insert analysis: %w", err)
	}

	for _, r := range report.Results {
		if _, err := tx.Exec(
			`INSERT INTO heuristic_results(analysis_id, key, name, value, score, interpretation, skipped) VALUES(?,?,?,?,?,?,?)`,
			id,
			string(r.Key),
			r.Name,
			nullable(r.Value),
			r.Score,
			string(r.Interpretation),
			r.Skipped,
		); err != nil {
			return "", fmt.Errorf("insert heuristic result %s: %w", r.Key, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return "", fmt.Errorf("commit tx: %w", err)
	}
	return id, nil
}

// ListReports returns the newest analyses first. A non-positive limit returns all of them.
func ListReports(dbPath string, limit int) ([]Analysis, error) {
	conn, err := Open(dbPath)
	if err != nil {
		return nil, err
	}
	defer conn.Close()

	if limit <= 0 {
		limit = -1
	}
	rows, err := conn.Query(
		`SELECT id, document_id, source_path, created_at, word_count, overall_score, confidence,
		confidence_level, verdict, paragraph_skipped, error
		FROM analyses ORDER BY created_at DESC, rowid DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("query analyses: %w", err)
	}
	defer rows.Close()

	var out []Analysis
	for rows.Next() {
		var a Analysis
		var created string
		if err := rows.Scan(&a.ID, &a.DocumentID, &a.SourcePath, &created, &a.WordCount, &a.OverallScore,
			&a.Confidence, &a.ConfidenceLevel, &a.Verdict, &a.ParagraphsSkipped, &a.Error); err != nil {
			return nil, fmt.Errorf("scan analysis: %w", err)
		}
		a.CreatedAt, err = time.Parse(timeLayout, created)
		if err != nil {
			return nil, fmt.Errorf("parse created_at %q: %w", created, err)
		}
		out = append(out, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate analyses: %w", err)
	}
	return out, nil
}

// LoadResults returns the stored heuristic rows of one analysis in insertion order.
func LoadResults(dbPath, analysisID string) ([]types.Result, error) {
	conn, err := Open(dbPath)
	if err != nil {
		return nil, err
	}
	defer conn.Close()

	rows, err := conn.Query(
		`SELECT key, name, value, score, interpretation, skipped FROM heuristic_results WHERE analysis_id = ? ORDER BY id`,
		analysisID)
	if err != nil {
		return nil, fmt.Errorf("query heuristic results: %w", err)
	}
	defer rows.Close()

	var out []types.Result
	for rows.Next() {
		var r types.Result
		var key, interp string
		var value sql.NullFloat64
		if err := rows.Scan(&key, &r.Name, &value, &r.Score, &interp, &r.Skipped); err != nil {
			return nil, fmt.Errorf("scan heuristic result: %w", err)
		}
		r.Key = types.Key(key)
		r.Interpretation = types.Interpretation(interp)
		r.Value = math.NaN()
		if value.Valid {
			r.Value = value.Float64
		}
		out = append(out, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate heuristic results: %w", err)
	}
	return out, nil
}

func nullable(v float64) sql.NullFloat64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return sql.NullFloat64{}
	}
	return sql.NullFloat64{Float64: v, Valid: true}
}

func CountRows(dbPath, table string) (int, error) {
	conn, err := Open(dbPath)
	if err != nil {
		return 0, err
	}
	defer conn.Close()
	return countRowsConn(conn, table)
}

func countRowsConn(conn *sql.DB, table string) (int, error) {
	row := conn.QueryRow(`SELECT COUNT(*) FROM ` + table)
	var count int
	if err := row.Scan(&count); err != nil {
		return 0, fmt.Errorf("scan count: %w", err)
	}
	return count, nil
}
