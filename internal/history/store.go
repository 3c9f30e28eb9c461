// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package history records classified equations in a local SQLite database
// so past analyses can be listed, inspected and exported.
package history

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"

	"github.com/pdiddy/conic-engine/pkg/types"
)

const (
	dbFile            = "history.db"
	defaultMaxResults = 20
)

// ErrNotFound is returned by Get for an unknown entry ID.
var ErrNotFound = errors.New("history entry not found")

// Entry is one recorded analysis.
type Entry struct {
	ID         string            `json:"id" yaml:"id"`
	Equation   string            `json:"equation" yaml:"equation"`
	Type       types.ConicType   `json:"type" yaml:"type"`
	Confidence float64           `json:"confidence" yaml:"confidence"`
	Source     types.Source      `json:"source" yaml:"source"`
	Strategy   string            `json:"strategy,omitempty" yaml:"strategy,omitempty"`
	Result     types.ConicResult `json:"result" yaml:"result"`
	CreatedAt  time.Time         `json:"created_at" yaml:"created_at"`
}

// Store manages the history SQLite database.
type Store struct {
	db         *sql.DB
	dir        string
	maxResults int

	now   func() time.Time
	newID func() string
}

// NewStore opens or creates dir/history.db and its schema.
func NewStore(cfg types.HistoryConfig) (*Store, error) {
	if err := os.MkdirAll(cfg.Dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating history directory: %w", err)
	}

	dbPath := filepath.Join(cfg.Dir, dbFile)
	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	maxResults := cfg.MaxResults
	if maxResults <= 0 {
		maxResults = defaultMaxResults
	}

	s := &Store{
		db:         db,
		dir:        cfg.Dir,
		maxResults: maxResults,
		now:        time.Now,
		newID:      uuid.NewString,
	}

	if err := s.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}
	return s, nil
}

// Close releases the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// Dir returns the directory holding the database and exports.
func (s *Store) Dir() string {
	return s.dir
}

func (s *Store) createSchema() error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS analyses (
			rowid INTEGER PRIMARY KEY AUTOINCREMENT,
			id TEXT NOT NULL UNIQUE,
			equation TEXT NOT NULL,
			type TEXT NOT NULL,
			confidence REAL NOT NULL,
			source TEXT NOT NULL,
			strategy TEXT,
			result_json TEXT NOT NULL,
			created_at TEXT NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_analyses_type ON analyses(type)`,
		`CREATE INDEX IF NOT EXISTS idx_analyses_created_at ON analyses(created_at)`,
	}
	for _, stmt := range statements {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("executing schema statement: %w", err)
		}
	}
	return nil
}

// Record stores one analysis and returns the entry as written.
func (s *Store) Record(ctx context.Context, equation string, res types.ConicResult) (Entry, error) {
	data, err := json.Marshal(res)
	if err != nil {
		return Entry{}, fmt.Errorf("marshaling result: %w", err)
	}

	e := Entry{
		ID:         s.newID(),
		Equation:   equation,
		Type:       res.Type,
		Confidence: res.Confidence,
		Source:     res.Source,
		Strategy:   res.Strategy,
		Result:     res,
		CreatedAt:  s.now().UTC().Truncate(time.Millisecond),
	}

	_, err = s.db.ExecContext(ctx,
		`INSERT INTO analyses (id, equation, type, confidence, source, strategy, result_json, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		e.ID, e.Equation, string(e.Type), e.Confidence, string(e.Source), e.Strategy,
		string(data), e.CreatedAt.Format(time.RFC3339Nano),
	)
	if err != nil {
		return Entry{}, fmt.Errorf("inserting analysis: %w", err)
	}
	return e, nil
}

// Get returns the entry with the given ID.
func (s *Store) Get(ctx context.Context, id string) (Entry, error) {
	row := s.db.QueryRowContext(ctx, selectColumns+` WHERE id = ?`, id)
	e, err := scanEntry(row)
	if errors.Is(err, sql.ErrNoRows) {
		return Entry{}, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return e, err
}

const selectColumns = `SELECT id, equation, type, confidence, source, strategy, result_json, created_at FROM analyses`

type scanner interface {
	Scan(dest ...any) error
}

func scanEntry(sc scanner) (Entry, error) {
	var (
		e         Entry
		typ, src  string
		strategy  sql.NullString
		result    string
		createdAt string
	)
	if err := sc.Scan(&e.ID, &e.Equation, &typ, &e.Confidence, &src, &strategy, &result, &createdAt); err != nil {
		return Entry{}, err
	}
	e.Type = types.ConicType(typ)
	e.Source = types.Source(src)
	e.Strategy = strategy.String
	if err := json.Unmarshal([]byte(result), &e.Result); err != nil {
		return Entry{}, fmt.Errorf("decoding result of %s: %w", e.ID, err)
	}
	t, err := time.Parse(time.RFC3339Nano, createdAt)
	if err != nil {
		return Entry{}, fmt.Errorf("parsing created_at of %s: %w", e.ID, err)
	}
	e.CreatedAt = t
	return e, nil
}
