// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/conic-engine/internal/cascade"
	"github.com/pdiddy/conic-engine/pkg/types"
)

const validCircle = `{
  "type": "circonferenza",
  "confidence": 0.97,
  "standardForm": "x² + y² = 25",
  "parameters": {"center": {"x": 0, "y": 0}, "radius": 5},
  "explanation": "Circonferenza di raggio 5."
}`

// --- mock backends ---

type mockBackend struct {
	responses []json.RawMessage // returned in order; the last one repeats
	errs      []error           // forced error per call, nil entries succeed
	calls     atomic.Int32
	lastReq   Request
	panicMsg  string
}

func (m *mockBackend) Analyze(_ context.Context, req Request) (json.RawMessage, error) {
	n := int(m.calls.Add(1)) - 1
	m.lastReq = req
	if m.panicMsg != "" {
		panic(m.panicMsg)
	}
	if n < len(m.errs) && m.errs[n] != nil {
		return nil, m.errs[n]
	}
	if len(m.responses) == 0 {
		return nil, ErrEmptyResponse
	}
	if n >= len(m.responses) {
		n = len(m.responses) - 1
	}
	return m.responses[n], nil
}

type blockingBackend struct{}

func (blockingBackend) Analyze(ctx context.Context, _ Request) (json.RawMessage, error) {
	<-ctx.Done()
	return nil, ctx.Err()
}

func aiConfig() types.AIConfig {
	return types.AIConfig{Enabled: true, MaxRetries: 2, Timeout: time.Second}
}

func newTestAnalyzer(b Backend, cfg types.AIConfig, logs *bytes.Buffer) *Analyzer {
	logger := slog.New(slog.NewTextHandler(logs, &slog.HandlerOptions{Level: slog.LevelDebug}))
	fallback := cascade.New(types.ClassifierConfig{})
	return NewAnalyzer(b, fallback, cfg, types.ClassifierConfig{}, WithLogger(logger), WithRetryDelay(time.Millisecond))
}

func TestAnalyzeUsesValidAIResult(t *testing.T) {
	b := &mockBackend{responses: []json.RawMessage{json.RawMessage(validCircle)}}
	a := newTestAnalyzer(b, aiConfig(), &bytes.Buffer{})

	res := a.Analyze(context.Background(), "x^2 + y^2 = 25")
	assert.Equal(t, types.SourceAI, res.Source)
	assert.Equal(t, types.ConicCircle, res.Type)
	assert.InDelta(t, 0.97, res.Confidence, 1e-9)
	assert.InDelta(t, 5, *res.Parameters.Radius, 1e-9)
	assert.Equal(t, int32(1), b.calls.Load())
}

func TestAnalyzeSendsNormalizedEquation(t *testing.T) {
	b := &mockBackend{responses: []json.RawMessage{json.RawMessage(validCircle)}}
	a := newTestAnalyzer(b, aiConfig(), &bytes.Buffer{})
	a.Analyze(context.Background(), "Y = 2X² + 3X")
	assert.Equal(t, "y=2*x^2+3*x", b.lastReq.Equation)
	assert.Equal(t, types.LocaleItalian, b.lastReq.Locale)
}

func TestAnalyzeNoBackendUsesCascade(t *testing.T) {
	a := newTestAnalyzer(nil, aiConfig(), &bytes.Buffer{})
	res := a.Analyze(context.Background(), "x^2 + y^2 = 25")
	assert.Equal(t, types.SourceCascade, res.Source)
	assert.Equal(t, cascade.StageCanonical, res.Strategy)
	assert.False(t, a.HasBackend())

	_, err := a.TryAI(context.Background(), "x^2 + y^2 = 25")
	assert.ErrorIs(t, err, ErrNoBackend)
}

func TestAnalyzeDisabledIgnoresBackend(t *testing.T) {
	b := &mockBackend{responses: []json.RawMessage{json.RawMessage(validCircle)}}
	cfg := aiConfig()
	cfg.Enabled = false
	res := newTestAnalyzer(b, cfg, &bytes.Buffer{}).Analyze(context.Background(), "x^2 + y^2 = 25")
	assert.Equal(t, types.SourceCascade, res.Source)
	assert.Zero(t, b.calls.Load())
}

func TestAnalyzeFallsBackOnSchemaMismatch(t *testing.T) {
	tests := []struct {
		name string
		raw  string
	}{
		{"bad type label", `{"type":"cerchio","confidence":0.9,"standardForm":"","parameters":{},"explanation":""}`},
		{"confidence out of range", `{"type":"parabola","confidence":1.5,"standardForm":"","parameters":{},"explanation":""}`},
		{"missing explanation", `{"type":"parabola","confidence":0.9,"standardForm":"","parameters":{}}`},
		{"point without y", `{"type":"parabola","confidence":0.9,"standardForm":"","parameters":{"vertex":{"x":1}},"explanation":""}`},
		{"not json", `the answer is a circle`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var logs bytes.Buffer
			b := &mockBackend{responses: []json.RawMessage{json.RawMessage(tt.raw)}}
			a := newTestAnalyzer(b, aiConfig(), &logs)

			res := a.Analyze(context.Background(), "x^2 + y^2 = 25")
			assert.Equal(t, types.SourceCascade, res.Source)
			assert.Equal(t, types.ConicCircle, res.Type)
			assert.Equal(t, int32(3), b.calls.Load(), "one attempt plus two retries")
			assert.Contains(t, logs.String(), "using fallback parser")
		})
	}
}

func TestAnalyzeRetriesTransientErrors(t *testing.T) {
	b := &mockBackend{
		errs:      []error{errors.New("connection reset"), errors.New("503")},
		responses: []json.RawMessage{nil, nil, json.RawMessage(validCircle)},
	}
	res := newTestAnalyzer(b, aiConfig(), &bytes.Buffer{}).Analyze(context.Background(), "x^2 + y^2 = 25")
	assert.Equal(t, types.SourceAI, res.Source)
	assert.Equal(t, int32(3), b.calls.Load())
}

func TestAnalyzeDoesNotRetryRejected(t *testing.T) {
	b := &mockBackend{errs: []error{ErrRejected, ErrRejected, ErrRejected}}
	a := newTestAnalyzer(b, aiConfig(), &bytes.Buffer{})
	_, err := a.TryAI(context.Background(), "x^2 + y^2 = 25")
	assert.ErrorIs(t, err, ErrRejected)
	assert.Equal(t, int32(1), b.calls.Load())
}

func TestAnalyzeTimeoutFallsBack(t *testing.T) {
	cfg := aiConfig()
	cfg.Timeout = 20 * time.Millisecond
	start := time.Now()
	res := newTestAnalyzer(blockingBackend{}, cfg, &bytes.Buffer{}).Analyze(context.Background(), "y = x^2")
	assert.Less(t, time.Since(start), time.Second)
	assert.Equal(t, types.SourceCascade, res.Source)
	assert.Equal(t, types.ConicParabola, res.Type)
}

func TestAnalyzeRecoversBackendPanic(t *testing.T) {
	b := &mockBackend{panicMsg: "boom"}
	a := newTestAnalyzer(b, aiConfig(), &bytes.Buffer{})

	_, err := a.TryAI(context.Background(), "x^2 + y^2 = 25")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "boom")

	res := a.Analyze(context.Background(), "x^2 + y^2 = 25")
	assert.Equal(t, types.SourceCascade, res.Source)
}

func TestAnalyzeAddsGraphingPoints(t *testing.T) {
	b := &mockBackend{responses: []json.RawMessage{json.RawMessage(validCircle)}}
	fallback := cascade.New(types.ClassifierConfig{})
	a := NewAnalyzer(b, fallback, aiConfig(), types.ClassifierConfig{GraphingPoints: true}, WithRetryDelay(time.Millisecond))
	res := a.Analyze(context.Background(), "x^2 + y^2 = 25")
	assert.Equal(t, types.SourceAI, res.Source)
	assert.NotEmpty(t, res.GraphingPoints)
	assert.True(t, b.lastReq.GraphingPoints)
}

func TestValidate(t *testing.T) {
	res, err := Validate(json.RawMessage(validCircle))
	require.NoError(t, err)
	assert.Equal(t, types.SourceAI, res.Source)
	assert.Equal(t, &types.Point{X: 0, Y: 0}, res.Parameters.Center)

	_, err = Validate(json.RawMessage(`{"type":"unknown"}`))
	assert.ErrorIs(t, err, ErrSchemaMismatch)
}

func TestParseStructuredJSON(t *testing.T) {
	tests := []struct {
		name    string
		content string
		wantErr error
	}{
		{"plain", `{"a":1}`, nil},
		{"fenced", "```json\n{\"a\":1}\n```", nil},
		{"with prose", "Here you go: {\"a\":1} hope it helps", nil},
		{"empty", "   ", ErrEmptyResponse},
		{"no object", "no json here", ErrSchemaMismatch},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			raw, err := parseStructuredJSON(tt.content)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.JSONEq(t, `{"a":1}`, string(raw))
		})
	}
}

func TestRenderPrompt(t *testing.T) {
	p, err := renderPrompt(Request{Equation: "x^2+y^2=25", Locale: types.LocaleEnglish, GraphingPoints: true})
	require.NoError(t, err)
	assert.Contains(t, p, `Equation: "x^2+y^2=25"`)
	assert.Contains(t, p, "in English")
	assert.Contains(t, p, "graphingPoints")

	p, err = renderPrompt(Request{Equation: "y=x^2"})
	require.NoError(t, err)
	assert.Contains(t, p, "in Italian")
	assert.NotContains(t, p, "graphingPoints")
}
