package audit

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
	"github.com/rotisserie/eris"
	_ "modernc.org/sqlite"
)

// Store persists completed audit logs so calculations can be reviewed and
// replayed after the fact.
type Store struct {
	db *sql.DB
}

// SavedLog is a stored log plus its storage metadata.
type SavedLog struct {
	ID        string
	Label     string
	CreatedAt time.Time
	Log       *Log
}

// NewStore opens a SQLite database at the given path and configures WAL mode.
func NewStore(dsn string) (*Store, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, eris.Wrap(err, "audit: open store")
	}
	for _, pragma := range []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout=5000",
		"PRAGMA synchronous=NORMAL",
	} {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, eris.Wrapf(err, "audit: exec %s", pragma)
		}
	}
	return &Store{db: db}, nil
}

const storeMigration = `
CREATE TABLE IF NOT EXISTS audit_logs (
	id         TEXT PRIMARY KEY,
	label      TEXT NOT NULL,
	payload    TEXT NOT NULL,
	created_at DATETIME NOT NULL DEFAULT (datetime('now'))
);

CREATE INDEX IF NOT EXISTS idx_audit_logs_label ON audit_logs(label);
CREATE INDEX IF NOT EXISTS idx_audit_logs_created_at ON audit_logs(created_at);
`

// Migrate creates the schema if needed.
func (s *Store) Migrate(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, storeMigration)
	return eris.Wrap(err, "audit: migrate")
}

// Close releases the underlying database handle.
func (s *Store) Close() error {
	return s.db.Close()
}

// Save persists a log under a human-readable label and returns its ID.
func (s *Store) Save(ctx context.Context, label string, l *Log) (string, error) {
	payload, err := l.JSON()
	if err != nil {
		return "", err
	}

	id := uuid.New().String()
	_, err = s.db.ExecContext(ctx,
		`INSERT INTO audit_logs (id, label, payload, created_at) VALUES (?, ?, ?, ?)`,
		id, label, string(payload), time.Now().UTC(),
	)
	if err != nil {
		return "", eris.Wrapf(err, "audit: save log %q", label)
	}
	return id, nil
}

// Load reconstructs a stored log by ID.
func (s *Store) Load(ctx context.Context, id string) (*SavedLog, error) {
	var (
		label     string
		payload   string
		createdAt time.Time
	)
	err := s.db.QueryRowContext(ctx,
		`SELECT label, payload, created_at FROM audit_logs WHERE id = ?`, id,
	).Scan(&label, &payload, &createdAt)
	if err == sql.ErrNoRows {
		return nil, eris.Errorf("audit: log %s not found", id)
	}
	if err != nil {
		return nil, eris.Wrapf(err, "audit: load log %s", id)
	}

	l, err := FromJSON([]byte(payload))
	if err != nil {
		return nil, eris.Wrapf(err, "audit: decode log %s", id)
	}
	return &SavedLog{ID: id, Label: label, CreatedAt: createdAt, Log: l}, nil
}

// List returns stored log metadata, newest first, without payloads.
func (s *Store) List(ctx context.Context, limit int) ([]SavedLog, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, label, created_at FROM audit_logs ORDER BY created_at DESC LIMIT ?`, limit,
	)
	if err != nil {
		return nil, eris.Wrap(err, "audit: list logs")
	}
	defer rows.Close()

	var out []SavedLog
	for rows.Next() {
		var sl SavedLog
		if err := rows.Scan(&sl.ID, &sl.Label, &sl.CreatedAt); err != nil {
			return nil, eris.Wrap(err, "audit: scan log row")
		}
		out = append(out, sl)
	}
	return out, eris.Wrap(rows.Err(), "audit: iterate log rows")
}
