// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package history

import (
	"context"
	"fmt"
	"strings"

	"github.com/pdiddy/conic-engine/pkg/types"
)

// QueryOptions filters List.
type QueryOptions struct {
	// Query matches entries whose equation contains the string.
	Query string

	// Type filters by conic family.
	Type types.ConicType

	// Source filters by "cascade" or "ai".
	Source types.Source

	// MinConfidence drops entries below the score.
	MinConfidence float64

	// MaxResults limits result count. Zero uses the store default.
	MaxResults int
}

// List returns matching entries, newest first.
func (s *Store) List(ctx context.Context, opts QueryOptions) ([]Entry, error) {
	maxResults := opts.MaxResults
	if maxResults <= 0 {
		maxResults = s.maxResults
	}

	var (
		where []string
		args  []any
	)
	if opts.Query != "" {
		where = append(where, `equation LIKE ? ESCAPE '\'`)
		args = append(args, "%"+escapeLike(opts.Query)+"%")
	}
	if opts.Type != "" {
		where = append(where, "type = ?")
		args = append(args, string(opts.Type))
	}
	if opts.Source != "" {
		where = append(where, "source = ?")
		args = append(args, string(opts.Source))
	}
	if opts.MinConfidence > 0 {
		where = append(where, "confidence >= ?")
		args = append(args, opts.MinConfidence)
	}

	var qb strings.Builder
	qb.WriteString(selectColumns)
	if len(where) > 0 {
		qb.WriteString(" WHERE ")
		qb.WriteString(strings.Join(where, " AND "))
	}
	qb.WriteString(" ORDER BY created_at DESC, rowid DESC LIMIT ?")
	args = append(args, maxResults)

	rows, err := s.db.QueryContext(ctx, qb.String(), args...)
	if err != nil {
		return nil, fmt.Errorf("querying analyses: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		e, err := scanEntry(rows)
		if err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// Counts returns the number of recorded analyses per conic family.
func (s *Store) Counts(ctx context.Context) (map[types.ConicType]int, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT type, count(*) FROM analyses GROUP BY type`)
	if err != nil {
		return nil, fmt.Errorf("counting analyses: %w", err)
	}
	defer rows.Close()

	counts := make(map[types.ConicType]int)
	for rows.Next() {
		var (
			typ string
			n   int
		)
		if err := rows.Scan(&typ, &n); err != nil {
			return nil, err
		}
		counts[types.ConicType(typ)] = n
	}
	return counts, rows.Err()
}

func escapeLike(s string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(s)
}
