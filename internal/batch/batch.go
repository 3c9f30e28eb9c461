// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package batch classifies a file of equations with bounded parallelism and
// writes the results back as YAML.
package batch

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"go.yaml.in/yaml/v3"
	"golang.org/x/sync/errgroup"

	"github.com/pdiddy/conic-engine/pkg/types"
)

const defaultWorkers = 4

// ErrNoEquations is returned when an input file holds no equations.
var ErrNoEquations = errors.New("no equations in batch input")

// Analyzer produces a result for one equation. Both the cascade (through an
// adapter) and ai.Analyzer satisfy it.
type Analyzer interface {
	Analyze(ctx context.Context, equation string) types.ConicResult
}

// Item pairs an input equation with its result.
type Item struct {
	Equation string            `yaml:"equation" json:"equation"`
	Result   types.ConicResult `yaml:"result" json:"result"`
}

// Summary reports totals over a batch.
type Summary struct {
	Total     int                     `yaml:"total" json:"total"`
	ByType    map[types.ConicType]int `yaml:"by_type" json:"by_type"`
	AIResults int                     `yaml:"ai_results" json:"ai_results"`
	Timestamp time.Time               `yaml:"timestamp" json:"timestamp"`
}

// Output is the on-disk document written by WriteFile.
type Output struct {
	Items   []Item  `yaml:"items" json:"items"`
	Summary Summary `yaml:"summary" json:"summary"`
}

// Read parses batch input. Two layouts are accepted: a bare YAML sequence of
// equations, or a mapping with an "equations" key. Blank entries are dropped.
func Read(r io.Reader) ([]string, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("reading batch input: %w", err)
	}

	var list []string
	if err := yaml.Unmarshal(data, &list); err != nil {
		var doc struct {
			Equations []string `yaml:"equations"`
		}
		if err2 := yaml.Unmarshal(data, &doc); err2 != nil {
			return nil, fmt.Errorf("parsing batch input: %w", err)
		}
		list = doc.Equations
	}

	equations := make([]string, 0, len(list))
	for _, eq := range list {
		if eq = strings.TrimSpace(eq); eq != "" {
			equations = append(equations, eq)
		}
	}
	if len(equations) == 0 {
		return nil, ErrNoEquations
	}
	return equations, nil
}

// ReadFile opens path and calls Read.
func ReadFile(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening batch input: %w", err)
	}
	defer f.Close()
	return Read(f)
}

// Runner classifies equations in parallel.
type Runner struct {
	analyzer Analyzer
	workers  int
	logger   *slog.Logger
	now      func() time.Time
}

// NewRunner returns a Runner bounded to cfg.Workers concurrent analyses
// (default 4). A nil logger uses slog.Default.
func NewRunner(analyzer Analyzer, cfg types.BatchConfig, logger *slog.Logger) *Runner {
	workers := cfg.Workers
	if workers <= 0 {
		workers = defaultWorkers
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Runner{analyzer: analyzer, workers: workers, logger: logger, now: time.Now}
}

// Run analyzes every equation and returns the items in input order. It fails
// only when ctx is cancelled before all equations are done.
func (r *Runner) Run(ctx context.Context, equations []string) (Output, error) {
	items := make([]Item, len(equations))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(r.workers)
	for i, eq := range equations {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			items[i] = Item{Equation: eq, Result: r.analyzer.Analyze(ctx, eq)}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return Output{}, fmt.Errorf("batch cancelled: %w", err)
	}

	out := Output{Items: items, Summary: summarize(items, r.now())}
	r.logger.Info("batch complete", "total", out.Summary.Total, "workers", r.workers)
	return out, nil
}

func summarize(items []Item, at time.Time) Summary {
	s := Summary{Total: len(items), ByType: make(map[types.ConicType]int), Timestamp: at}
	for _, it := range items {
		s.ByType[it.Result.Type]++
		if it.Result.Source == types.SourceAI {
			s.AIResults++
		}
	}
	return s
}

// Write encodes out as YAML.
func Write(w io.Writer, out Output) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(&out); err != nil {
		return fmt.Errorf("encoding batch output: %w", err)
	}
	return enc.Close()
}

// WriteFile saves out to path as YAML.
func WriteFile(path string, out Output) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating batch output: %w", err)
	}
	if err := Write(f, out); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
