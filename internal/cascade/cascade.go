// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package cascade classifies an equation by trying strategies of decreasing
// confidence until one applies: exact canonical forms, the general-form
// solver, a textual heuristic, and finally an unknown result. Classification
// is a pure function of the input text and configuration.
package cascade

import (
	"strings"

	"github.com/pdiddy/conic-engine/internal/classify"
	"github.com/pdiddy/conic-engine/internal/normalize"
	"github.com/pdiddy/conic-engine/internal/plot"
	"github.com/pdiddy/conic-engine/internal/polynomial"
	"github.com/pdiddy/conic-engine/internal/resolve"
	"github.com/pdiddy/conic-engine/pkg/types"
)

// ConfidenceCanonical is the confidence of an exact textbook-form match.
const ConfidenceCanonical = 0.9

// Stage names reported in ConicResult.Strategy.
const (
	StageCanonical = "canonical"
	StageGeneral   = "general"
	StageHeuristic = "heuristic"
	StageUnknown   = "unknown"
)

// Input is the equation as typed and after normalize.Clean.
type Input struct {
	Raw        string
	Normalized string
}

// Strategy attempts a classification and reports whether it applies.
type Strategy func(in Input) (types.ConicResult, bool)

// Stage is a named strategy in the cascade.
type Stage struct {
	Name string
	Run  Strategy
}

// Cascade is an ordered list of stages; the first that applies wins. A
// Cascade holds no mutable state and is safe for concurrent use.
type Cascade struct {
	stages []Stage
	cfg    types.ClassifierConfig
}

// New returns the standard four-stage cascade for cfg. An empty locale
// selects Italian.
func New(cfg types.ClassifierConfig) *Cascade {
	if cfg.Locale == "" {
		cfg.Locale = types.LocaleItalian
	}
	return &Cascade{
		cfg: cfg,
		stages: []Stage{
			{Name: StageCanonical, Run: canonical(cfg.Locale)},
			{Name: StageGeneral, Run: general(cfg.Locale)},
			{Name: StageHeuristic, Run: heuristic(cfg.Locale)},
			{Name: StageUnknown, Run: unknown(cfg.Locale)},
		},
	}
}

// Classify runs the cascade over equation. It never fails; text that no
// stage understands yields an unknown result with confidence 0.3.
func (c *Cascade) Classify(equation string) types.ConicResult {
	in := Input{Raw: equation, Normalized: normalize.Clean(equation)}
	for _, st := range c.stages {
		res, ok := st.Run(in)
		if !ok {
			continue
		}
		res.Strategy = st.Name
		res.Source = types.SourceCascade
		if c.cfg.GraphingPoints && derived(st.Name) {
			res.GraphingPoints = plot.Points(res)
		}
		return res
	}
	return resolve.Unknown(equation, c.cfg.Locale)
}

// Stages returns the stage names in evaluation order.
func (c *Cascade) Stages() []string {
	names := make([]string, len(c.stages))
	for i, st := range c.stages {
		names[i] = st.Name
	}
	return names
}

// Classify runs the default Italian cascade without graphing points.
func Classify(equation string) types.ConicResult {
	return defaultCascade.Classify(equation)
}

var defaultCascade = New(types.ClassifierConfig{Locale: types.LocaleItalian})

// derived reports whether a stage computes parameters from the equation,
// as opposed to returning placeholders.
func derived(stage string) bool {
	return stage == StageCanonical || stage == StageGeneral
}

// general extracts coefficients and hands them to the closed-form resolver.
// Parenthesised input needs expanding first, which is out of reach of the
// term extractor, so it is left to the other stages.
func general(loc types.Locale) Strategy {
	return func(in Input) (types.ConicResult, bool) {
		if strings.ContainsAny(in.Normalized, "()") {
			return types.ConicResult{}, false
		}
		eq, ok := normalize.Split(in.Normalized)
		if !ok {
			return types.ConicResult{}, false
		}
		v := polynomial.Combine(polynomial.ExtractEquation(eq))
		t := classify.Classify(v)
		if t == types.ConicUnknown {
			return types.ConicResult{}, false
		}
		return resolve.Resolve(t, v, loc)
	}
}

// heuristic guesses a family from which squares appear in the text.
func heuristic(loc types.Locale) Strategy {
	return func(in Input) (types.ConicResult, bool) {
		n := in.Normalized
		hasX2 := strings.Contains(n, "x^2")
		hasY2 := strings.Contains(n, "y^2")
		switch {
		case hasX2 && hasY2:
			if emptyLocus(n) {
				return types.ConicResult{}, false
			}
			if strings.Contains(n, "+") && strings.Contains(n, "=") {
				return resolve.GuessCircle(in.Raw, loc), true
			}
			if strings.Contains(n, "-") {
				return resolve.GuessHyperbola(in.Raw, loc), true
			}
		case hasX2 || hasY2:
			return resolve.GuessParabola(in.Raw, loc), true
		}
		return types.ConicResult{}, false
	}
}

// emptyLocus reports whether an unrotated equation with both squares of the
// same sign has no real points or a single one, such as x² + y² = -5. Such
// text must not be guessed as a circle or ellipse.
func emptyLocus(normalized string) bool {
	if strings.ContainsAny(normalized, "()") {
		return false
	}
	eq, ok := normalize.Split(normalized)
	if !ok {
		return false
	}
	v := polynomial.Combine(polynomial.ExtractEquation(eq))
	if !classify.NearZero(v.B) || v.A*v.C <= 0 {
		return false
	}
	// Completing both squares leaves A(x-h)² + C(y-k)² = K.
	k := v.D*v.D/(4*v.A) + v.E*v.E/(4*v.C) - v.F
	return k/v.A <= 0
}

func unknown(loc types.Locale) Strategy {
	return func(in Input) (types.ConicResult, bool) {
		return resolve.Unknown(in.Raw, loc), true
	}
}
