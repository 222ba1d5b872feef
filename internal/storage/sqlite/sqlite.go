// Package sqlite stores analysis reports in a SQLite database. Each report is
// kept as a msgpack document next to the columns needed for listings.
package sqlite

import (
	"bytes"
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/vmihailenco/msgpack/v5"
	_ "modernc.org/sqlite"

	"github.com/chrissnell/cardiorhythm/internal/analysis"
	"github.com/chrissnell/cardiorhythm/internal/storage"
)

const schema = `
CREATE TABLE IF NOT EXISTS reports (
	id          TEXT PRIMARY KEY,
	created_at  INTEGER NOT NULL,
	beat_count  INTEGER NOT NULL,
	abnormal    INTEGER NOT NULL,
	payload     BLOB NOT NULL
);
CREATE INDEX IF NOT EXISTS reports_created_at ON reports (created_at);
`

// Store holds the connection to a SQLite report database
type Store struct {
	db     *sql.DB
	dbPath string
}

var _ storage.ReportStore = (*Store)(nil)

// New opens (creating if necessary) the report database at dbPath
func New(ctx context.Context, dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open SQLite database: %w", err)
	}

	// Test the connection
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping SQLite database: %w", err)
	}

	if _, err := db.ExecContext(ctx, schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create reports schema: %w", err)
	}

	return &Store{
		db:     db,
		dbPath: dbPath,
	}, nil
}

// SaveReport inserts or replaces a report
func (s *Store) SaveReport(ctx context.Context, r *analysis.Report) error {
	payload, err := encode(r)
	if err != nil {
		return fmt.Errorf("failed to encode report %s: %w", r.ID, err)
	}

	summary := r.Summary()
	_, err = s.db.ExecContext(ctx,
		`INSERT OR REPLACE INTO reports (id, created_at, beat_count, abnormal, payload)
		 VALUES (?, ?, ?, ?, ?)`,
		summary.ID, summary.CreatedAt.UnixNano(), summary.BeatCount, summary.Abnormal, payload,
	)
	if err != nil {
		return fmt.Errorf("failed to insert report %s: %w", r.ID, err)
	}
	return nil
}

// GetReport loads a report by ID
func (s *Store) GetReport(ctx context.Context, id string) (*analysis.Report, error) {
	var payload []byte
	err := s.db.QueryRowContext(ctx, `SELECT payload FROM reports WHERE id = ?`, id).Scan(&payload)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("report %s: %w", id, storage.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query report %s: %w", id, err)
	}

	var r analysis.Report
	if err := decode(payload, &r); err != nil {
		return nil, fmt.Errorf("failed to decode report %s: %w", id, err)
	}
	return &r, nil
}

// ListReports returns the newest reports first. A non-positive limit
// returns every report.
func (s *Store) ListReports(ctx context.Context, limit int) ([]analysis.Summary, error) {
	if limit <= 0 {
		limit = -1
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT id, created_at, beat_count, abnormal FROM reports
		 ORDER BY created_at DESC, id
		 LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query reports: %w", err)
	}
	defer rows.Close()

	summaries := []analysis.Summary{}
	for rows.Next() {
		var sum analysis.Summary
		var createdAt int64
		if err := rows.Scan(&sum.ID, &createdAt, &sum.BeatCount, &sum.Abnormal); err != nil {
			return nil, fmt.Errorf("failed to scan row: %w", err)
		}
		sum.CreatedAt = time.Unix(0, createdAt).UTC()
		summaries = append(summaries, sum)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}

	return summaries, nil
}

// Close closes the database
func (s *Store) Close() error {
	return s.db.Close()
}

func encode(r *analysis.Report) ([]byte, error) {
	var buf bytes.Buffer
	enc := msgpack.NewEncoder(&buf)
	enc.SetCustomStructTag("json") // Use json tags for MessagePack
	if err := enc.Encode(r); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func decode(payload []byte, r *analysis.Report) error {
	dec := msgpack.NewDecoder(bytes.NewReader(payload))
	dec.SetCustomStructTag("json")
	return dec.Decode(r)
}
