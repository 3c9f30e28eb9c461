// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package ai runs the optional language-model path for conic analysis. A
// model answer is accepted only if it validates against the conic schema;
// otherwise, and whenever no model is configured, the deterministic cascade
// answers instead.
package ai

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/avast/retry-go/v4"

	"github.com/pdiddy/conic-engine/internal/normalize"
	"github.com/pdiddy/conic-engine/internal/plot"
	"github.com/pdiddy/conic-engine/pkg/types"
)

var (
	// ErrNoBackend is returned by TryAI when no model is configured.
	ErrNoBackend = errors.New("no AI backend configured")

	// ErrSchemaMismatch wraps model output that is not a valid conic document.
	ErrSchemaMismatch = errors.New("AI response does not match the conic schema")

	// ErrEmptyResponse is returned when the model produced no content.
	ErrEmptyResponse = errors.New("AI response is empty")

	// ErrRejected marks a request the provider refused; retrying cannot help.
	ErrRejected = errors.New("AI request rejected")
)

const (
	defaultTimeout    = 20 * time.Second
	defaultMaxRetries = 3
	defaultRetryDelay = time.Second
)

// Request is one equation to analyze.
type Request struct {
	Equation       string
	Locale         types.Locale
	GraphingPoints bool
}

// Backend abstracts the model provider so tests can supply a mock. It returns
// the JSON document the model produced, not yet validated.
type Backend interface {
	Analyze(ctx context.Context, req Request) (json.RawMessage, error)
}

// Classifier is the deterministic fallback.
type Classifier interface {
	Classify(equation string) types.ConicResult
}

// Analyzer combines a Backend with the fallback cascade.
type Analyzer struct {
	backend    Backend
	fallback   Classifier
	logger     *slog.Logger
	cfg        types.ClassifierConfig
	timeout    time.Duration
	maxRetries int
	retryDelay time.Duration
}

// Option customizes an Analyzer.
type Option func(*Analyzer)

// WithLogger sets the logger used for fallback warnings.
func WithLogger(l *slog.Logger) Option {
	return func(a *Analyzer) { a.logger = l }
}

// WithRetryDelay sets the base delay between attempts.
func WithRetryDelay(d time.Duration) Option {
	return func(a *Analyzer) { a.retryDelay = d }
}

// NewAnalyzer returns an Analyzer. A nil backend, or aiCfg.Enabled false,
// makes every call go straight to fallback.
func NewAnalyzer(backend Backend, fallback Classifier, aiCfg types.AIConfig, cfg types.ClassifierConfig, opts ...Option) *Analyzer {
	a := &Analyzer{
		fallback:   fallback,
		logger:     slog.Default(),
		cfg:        cfg,
		timeout:    aiCfg.Timeout,
		maxRetries: aiCfg.MaxRetries,
		retryDelay: defaultRetryDelay,
	}
	if aiCfg.Enabled {
		a.backend = backend
	}
	if a.timeout <= 0 {
		a.timeout = defaultTimeout
	}
	if a.maxRetries < 0 {
		a.maxRetries = defaultMaxRetries
	}
	if a.cfg.Locale == "" {
		a.cfg.Locale = types.LocaleItalian
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// HasBackend reports whether calls reach a model.
func (a *Analyzer) HasBackend() bool {
	return a.backend != nil
}

// Analyze returns the model's answer when it is available and valid, and the
// fallback cascade's answer otherwise. It never fails.
func (a *Analyzer) Analyze(ctx context.Context, equation string) types.ConicResult {
	if a.backend == nil {
		return a.fallback.Classify(equation)
	}
	res, err := a.TryAI(ctx, equation)
	if err != nil {
		a.logger.Warn("AI parsing failed, using fallback parser", "equation", equation, "error", err)
		return a.fallback.Classify(equation)
	}
	return res
}

// TryAI asks the model only, retrying transient failures and schema
// mismatches within the configured timeout.
func (a *Analyzer) TryAI(ctx context.Context, equation string) (res types.ConicResult, err error) {
	if a.backend == nil {
		return types.ConicResult{}, ErrNoBackend
	}
	defer func() {
		if r := recover(); r != nil {
			res, err = types.ConicResult{}, fmt.Errorf("AI backend panic: %v", r)
		}
	}()

	ctx, cancel := context.WithTimeout(ctx, a.timeout)
	defer cancel()

	req := Request{
		Equation:       normalize.ForAI(equation),
		Locale:         a.cfg.Locale,
		GraphingPoints: a.cfg.GraphingPoints,
	}

	err = retry.Do(
		func() error {
			raw, err := a.backend.Analyze(ctx, req)
			if err != nil {
				return err
			}
			res, err = Validate(raw)
			return err
		},
		retry.Context(ctx),
		retry.Attempts(uint(a.maxRetries)+1),
		retry.Delay(a.retryDelay),
		retry.LastErrorOnly(true),
		retry.RetryIf(func(err error) bool { return !errors.Is(err, ErrRejected) }),
		retry.OnRetry(func(n uint, err error) {
			a.logger.Debug("retrying AI analysis", "attempt", n+1, "error", err)
		}),
	)
	if err != nil {
		return types.ConicResult{}, err
	}

	if a.cfg.GraphingPoints && len(res.GraphingPoints) == 0 {
		res.GraphingPoints = plot.Points(res)
	}
	return res, nil
}
