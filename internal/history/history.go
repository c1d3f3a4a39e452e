// Package history persists launch counts in SQLite and re-ranks
// candidates by frecency: launch count weighted by recency, so the
// projects and hosts used most recently float to the top of the picker.
package history

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	_ "modernc.org/sqlite"

	"github.com/timvw/muxer/internal/target"
)

// Store is the SQLite-backed launch history.
type Store struct {
	db   *sql.DB
	path string
}

// Entry is one history row.
type Entry struct {
	Kind       target.Kind
	Name       string
	Display    string
	Count      int
	LastLaunch time.Time
}

// DefaultPath returns the history database location:
// $XDG_STATE_HOME/muxer/history.db, or ~/.local/state/muxer/history.db.
func DefaultPath() (string, error) {
	if state := os.Getenv("XDG_STATE_HOME"); state != "" {
		return filepath.Join(state, "muxer", "history.db"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve home directory: %w", err)
	}
	return filepath.Join(home, ".local", "state", "muxer", "history.db"), nil
}

// Open creates or opens the history database at path, enabling WAL mode
// and ensuring the schema exists.
func Open(path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create history directory: %w", err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open history db: %w", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout=5000",
		"PRAGMA synchronous=NORMAL",
	}
	for _, p := range pragmas {
		if _, err := db.Exec(p); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("exec %q: %w", p, err)
		}
	}

	s := &Store{db: db, path: path}
	if err := s.ensureSchema(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ensure schema: %w", err)
	}
	return s, nil
}

func (s *Store) ensureSchema() error {
	schema := `
	CREATE TABLE IF NOT EXISTS launches (
		kind        TEXT NOT NULL,
		name        TEXT NOT NULL,
		display     TEXT NOT NULL DEFAULT '',
		count       INTEGER NOT NULL DEFAULT 0,
		last_launch TEXT NOT NULL,
		PRIMARY KEY (kind, name)
	);
	`
	_, err := s.db.Exec(schema)
	return err
}

// Close closes the database.
func (s *Store) Close() error {
	if s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Record counts one launch of the target at the current time.
func (s *Store) Record(ctx context.Context, t target.Target) error {
	return s.record(ctx, t, time.Now())
}

func (s *Store) record(ctx context.Context, t target.Target, at time.Time) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO launches (kind, name, display, count, last_launch)
		VALUES (?, ?, ?, 1, ?)
		ON CONFLICT(kind, name) DO UPDATE SET
			count = count + 1,
			display = excluded.display,
			last_launch = excluded.last_launch`,
		string(t.Kind), t.Name, t.Display, at.UTC().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("record launch: %w", err)
	}
	return nil
}

// Entries returns all history rows, most launched first.
func (s *Store) Entries(ctx context.Context) ([]Entry, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT kind, name, display, count, last_launch
		FROM launches
		ORDER BY count DESC, last_launch DESC`)
	if err != nil {
		return nil, fmt.Errorf("query history: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var e Entry
		var kind, last string
		if err := rows.Scan(&kind, &e.Name, &e.Display, &e.Count, &last); err != nil {
			return nil, fmt.Errorf("scan history row: %w", err)
		}
		e.Kind = target.Kind(kind)
		if t, err := time.Parse(time.RFC3339, last); err == nil {
			e.LastLaunch = t
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// Clear deletes all history rows.
func (s *Store) Clear(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM launches`); err != nil {
		return fmt.Errorf("clear history: %w", err)
	}
	return nil
}

// Rank reorders candidates by frecency score. Candidates without history
// keep their relative order after all scored ones. Ranking is best-effort:
// a query failure returns the input unchanged.
func (s *Store) Rank(ctx context.Context, candidates []target.Target) []target.Target {
	entries, err := s.Entries(ctx)
	if err != nil {
		return candidates
	}

	now := time.Now()
	scores := make(map[string]float64, len(entries))
	for _, e := range entries {
		scores[string(e.Kind)+"\x00"+e.Name] = Score(e.Count, now.Sub(e.LastLaunch))
	}

	ranked := make([]target.Target, len(candidates))
	copy(ranked, candidates)
	sort.SliceStable(ranked, func(i, j int) bool {
		si := scores[string(ranked[i].Kind)+"\x00"+ranked[i].Name]
		sj := scores[string(ranked[j].Kind)+"\x00"+ranked[j].Name]
		return si > sj
	})
	return ranked
}

// Score computes the frecency score for a launch count and the age of the
// most recent launch. The recency buckets follow the zoxide weighting.
func Score(count int, age time.Duration) float64 {
	weight := 0.25
	switch {
	case age < time.Hour:
		weight = 4
	case age < 24*time.Hour:
		weight = 2
	case age < 7*24*time.Hour:
		weight = 1
	}
	return float64(count) * weight
}
