// Package utterancelog keeps a SQLite history of synthesized utterances
// for diagnostics: what was spoken, how many phonemes and samples it
// produced, and which preset shaped it.
package utterancelog

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"

	"github.com/phonolabs/retrovox/internal/config"
)

// Utterance is one logged synthesis call.
type Utterance struct {
	ID         int64
	SessionID  string
	Text       string
	Phonemes   int
	Samples    int
	DurationMS int64
	Preset     string
	CreatedAt  time.Time
}

// Store wraps the SQLite-backed utterance history. A disabled store is
// valid and discards everything.
type Store struct {
	db    *sql.DB
	cfg   config.UtteranceLogConfig
	log   *slog.Logger
	clock func() time.Time
}

// Open initializes the store according to config. With logging disabled
// it returns a no-op store.
func Open(ctx context.Context, cfg config.UtteranceLogConfig, log *slog.Logger) (*Store, error) {
	if !cfg.Enabled {
		return &Store{cfg: cfg, log: log, clock: time.Now}, nil
	}

	dir := filepath.Dir(cfg.Path)
	if dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create data dir: %w", err)
		}
	}

	dsn := fmt.Sprintf("file:%s?_pragma=journal_mode(WAL)", cfg.Path)
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping sqlite: %w", err)
	}

	s := &Store{db: db, cfg: cfg, log: log, clock: time.Now}

	if err := s.initSchema(ctx); err != nil {
		db.Close()
		return nil, err
	}

	if cfg.VacuumOnStart {
		if _, err := s.db.ExecContext(ctx, "VACUUM"); err != nil {
			log.Warn("utterance log vacuum failed", slog.String("error", err.Error()))
		}
	}
	if err := s.Prune(ctx); err != nil {
		log.Warn("utterance log prune on start failed", slog.String("error", err.Error()))
	}

	return s, nil
}

func (s *Store) initSchema(ctx context.Context) error {
	ddl := `
CREATE TABLE IF NOT EXISTS utterances (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    session_id TEXT,
    text TEXT NOT NULL,
    phonemes INTEGER NOT NULL,
    samples INTEGER NOT NULL,
    duration_ms INTEGER NOT NULL,
    preset TEXT,
    created_at TIMESTAMP NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_utterances_created ON utterances(created_at);
`
	_, err := s.db.ExecContext(ctx, ddl)
	return err
}

// Close releases the database handle.
func (s *Store) Close() error {
	if s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Append records an utterance. No-op when the store is disabled.
func (s *Store) Append(ctx context.Context, u Utterance) error {
	if s == nil || s.db == nil {
		return nil
	}
	if u.CreatedAt.IsZero() {
		u.CreatedAt = s.clock().UTC()
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO utterances(session_id, text, phonemes, samples, duration_ms, preset, created_at)
		 VALUES(?, ?, ?, ?, ?, ?, ?)`,
		u.SessionID, u.Text, u.Phonemes, u.Samples, u.DurationMS, u.Preset, u.CreatedAt)
	return err
}

// Recent returns up to limit utterances, newest first.
func (s *Store) Recent(ctx context.Context, limit int) ([]Utterance, error) {
	if s == nil || s.db == nil {
		return nil, nil
	}
	if limit <= 0 {
		limit = 100
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, session_id, text, phonemes, samples, duration_ms, preset, created_at
		 FROM utterances ORDER BY created_at DESC, id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Utterance
	for rows.Next() {
		var u Utterance
		var created string
		if err := rows.Scan(&u.ID, &u.SessionID, &u.Text, &u.Phonemes, &u.Samples, &u.DurationMS, &u.Preset, &created); err != nil {
			return nil, err
		}
		if ts, err := time.Parse(time.RFC3339Nano, created); err == nil {
			u.CreatedAt = ts
		}
		out = append(out, u)
	}
	return out, rows.Err()
}

// Prune applies the configured retention: an age cutoff and a hard cap
// on row count, oldest rows first.
func (s *Store) Prune(ctx context.Context) error {
	if s == nil || s.db == nil {
		return nil
	}
	if s.cfg.RetentionDays > 0 {
		cutoff := s.clock().Add(-time.Duration(s.cfg.RetentionDays) * 24 * time.Hour)
		if _, err := s.db.ExecContext(ctx,
			`DELETE FROM utterances WHERE created_at < ?`, cutoff.UTC()); err != nil {
			return err
		}
	}
	if s.cfg.MaxUtterances > 0 {
		if _, err := s.db.ExecContext(ctx,
			`DELETE FROM utterances WHERE id IN (
				SELECT id FROM utterances ORDER BY created_at DESC, id DESC LIMIT -1 OFFSET ?
			)`, s.cfg.MaxUtterances); err != nil {
			return err
		}
	}
	return nil
}
