// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package resolve derives geometric parameters and a standard form for a
// classified conic, either from general-form coefficients or from the
// parameters captured by a canonical pattern.
package resolve

import (
	"github.com/pdiddy/conic-engine/internal/classify"
	"github.com/pdiddy/conic-engine/pkg/types"
)

// Confidence of a general-form resolution per family.
const (
	ConfidenceGeneral         = 0.85
	ConfidenceGeneralParabola = 0.9
)

var nearZero = classify.NearZero

// Resolve computes parameters for v classified as t. It reports false when
// the coefficients fall outside the closed-form preconditions of t (rotated
// axes, translated ellipses and hyperbolas, empty loci), leaving the caller
// to try a lower-confidence strategy.
func Resolve(t types.ConicType, v types.CoefficientVector, loc types.Locale) (types.ConicResult, bool) {
	var (
		res types.ConicResult
		ok  bool
	)
	switch t {
	case types.ConicCircle:
		res, ok = circle(v, loc)
	case types.ConicEllipse:
		res, ok = ellipse(v, loc)
	case types.ConicHyperbola:
		res, ok = hyperbola(v, loc)
	case types.ConicParabola:
		res, ok = parabola(v, loc)
	}
	if !ok {
		return types.ConicResult{}, false
	}
	res.Confidence = ConfidenceGeneral
	if t == types.ConicParabola {
		res.Confidence = ConfidenceGeneralParabola
	}
	return res, true
}

// circle completes the square on A(x² + y²) + Dx + Ey + F = 0.
func circle(v types.CoefficientVector, loc types.Locale) (types.ConicResult, bool) {
	if !classify.NearlyEqual(v.A, v.C) || nearZero(v.A) || !nearZero(v.B) {
		return types.ConicResult{}, false
	}
	h := -v.D / (2 * v.A)
	k := -v.E / (2 * v.A)
	r2 := (v.D*v.D+v.E*v.E)/(4*v.A*v.A) - v.F/v.A
	return Circle(h, k, r2, loc)
}

// ellipse handles Ax² + Cy² + F = 0 centred at the origin.
func ellipse(v types.CoefficientVector, loc types.Locale) (types.ConicResult, bool) {
	if !nearZero(v.B) || !nearZero(v.D) || !nearZero(v.E) {
		return types.ConicResult{}, false
	}
	if v.A < 0 && v.C < 0 {
		v = scale(v, -1)
	}
	if v.A <= 0 || v.C <= 0 {
		return types.ConicResult{}, false
	}
	k := -v.F
	if k <= 0 {
		return types.ConicResult{}, false
	}
	return Ellipse(0, 0, k/v.A, k/v.C, loc)
}

// hyperbola handles Ax² + Cy² + F = 0 with A and C of opposite sign. The
// axis whose quotient K/coef is positive is the transverse axis.
func hyperbola(v types.CoefficientVector, loc types.Locale) (types.ConicResult, bool) {
	if !nearZero(v.B) || !nearZero(v.D) || !nearZero(v.E) || v.A*v.C >= 0 {
		return types.ConicResult{}, false
	}
	k := -v.F
	if nearZero(k) {
		return types.ConicResult{}, false
	}
	qx, qy := k/v.A, k/v.C
	if qx > 0 {
		return Hyperbola(0, 0, qx, -qy, false, loc)
	}
	return Hyperbola(0, 0, qy, -qx, true, loc)
}

// parabola solves for the variable appearing to the first power only:
// Ax² + Dx + Ey + F = 0 gives y = -(A/E)x² - (D/E)x - F/E, and the mirrored
// Cy² + Dx + Ey + F = 0 gives a horizontal axis.
func parabola(v types.CoefficientVector, loc types.Locale) (types.ConicResult, bool) {
	if !nearZero(v.B) {
		return types.ConicResult{}, false
	}
	switch {
	case nearZero(v.C) && !nearZero(v.A) && !nearZero(v.E):
		return VerticalParabola(-v.A/v.E, -v.D/v.E, -v.F/v.E, loc)
	case nearZero(v.A) && !nearZero(v.C) && !nearZero(v.D):
		return HorizontalParabola(-v.C/v.D, -v.E/v.D, -v.F/v.D, loc)
	}
	return types.ConicResult{}, false
}

func scale(v types.CoefficientVector, s float64) types.CoefficientVector {
	return types.CoefficientVector{A: v.A * s, B: v.B * s, C: v.C * s, D: v.D * s, E: v.E * s, F: v.F * s}
}
