package repository

import (
	"context"
	"database/sql"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/filmdesk/filmdesk/pkg/domain/interfaces"
	"github.com/filmdesk/filmdesk/pkg/domain/model/errs"
	"github.com/filmdesk/filmdesk/pkg/domain/model/telemetry"
	"github.com/m-mizutani/goerr/v2"

	_ "modernc.org/sqlite"
)

// SQLite is the durable search log. The schema is created on open and the
// table is append-only: records are never updated or deleted.
type SQLite struct {
	db *sql.DB
}

var _ interfaces.TelemetryRepository = &SQLite{}

func NewSQLite(dbPath string) (*SQLite, error) {
	if dir := filepath.Dir(dbPath); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, goerr.Wrap(err, "failed to create telemetry directory",
				goerr.T(errs.TagTelemetry), goerr.V("path", dbPath))
		}
	}

	dsn := dbPath + "?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)"
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to open telemetry database",
			goerr.T(errs.TagTelemetry), goerr.V("path", dbPath))
	}

	db.SetMaxOpenConns(1)
	db.SetConnMaxLifetime(5 * time.Minute)

	s := &SQLite{db: db}
	if err := s.initSchema(); err != nil {
		_ = db.Close()
		return nil, err
	}

	return s, nil
}

func (x *SQLite) initSchema() error {
	const schema = `
	CREATE TABLE IF NOT EXISTS search_log (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		kind TEXT NOT NULL,
		value TEXT NOT NULL
	);`

	if _, err := x.db.Exec(schema); err != nil {
		return goerr.Wrap(err, "failed to initialize telemetry schema", goerr.T(errs.TagTelemetry))
	}
	return nil
}

func (x *SQLite) Record(ctx context.Context, kind telemetry.Kind, value string) error {
	const query = `INSERT INTO search_log (kind, value) VALUES (?, ?)`

	if _, err := x.db.ExecContext(ctx, query, kind.String(), strings.ToLower(value)); err != nil {
		return goerr.Wrap(err, "failed to record search",
			goerr.T(errs.TagTelemetry), goerr.V("kind", kind), goerr.V("value", value))
	}
	return nil
}

func (x *SQLite) TopQueries(ctx context.Context, limit int) ([]telemetry.QueryCount, error) {
	// Ties on count resolve by first insertion (MIN(id)), so the ranking is
	// stable across repeated reads with no intervening writes.
	const query = `
		SELECT value, COUNT(*) AS cnt
		FROM search_log
		GROUP BY value
		ORDER BY cnt DESC, MIN(id) ASC
		LIMIT ?`

	rows, err := x.db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to aggregate top queries", goerr.T(errs.TagTelemetry))
	}
	defer rows.Close()

	var results []telemetry.QueryCount
	for rows.Next() {
		var qc telemetry.QueryCount
		if err := rows.Scan(&qc.Value, &qc.Count); err != nil {
			return nil, goerr.Wrap(err, "failed to scan top query row", goerr.T(errs.TagTelemetry))
		}
		results = append(results, qc)
	}
	if err := rows.Err(); err != nil {
		return nil, goerr.Wrap(err, "failed to iterate top query rows", goerr.T(errs.TagTelemetry))
	}

	return results, nil
}

func (x *SQLite) Close() error {
	return x.db.Close()
}
