// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package resolve

import (
	"fmt"
	"math"

	"github.com/pdiddy/conic-engine/internal/classify"
	"github.com/pdiddy/conic-engine/pkg/types"
)

// The builders below hold the closed-form geometry shared by the canonical
// pattern matchers and the general-form resolver. They return a result
// without confidence or provenance; the caller sets both. Each reports false
// when its inputs do not describe a real curve.

func positive(v float64) bool {
	return v > 0 && !math.IsInf(v, 0) && !math.IsNaN(v)
}

// Circle builds the circle centred at (h, k) with squared radius r2.
func Circle(h, k, r2 float64, loc types.Locale) (types.ConicResult, bool) {
	if !positive(r2) {
		return types.ConicResult{}, false
	}
	r := math.Sqrt(r2)
	return types.ConicResult{
		Type:         types.ConicCircle,
		StandardForm: fmt.Sprintf("%s² + %s² = %s", shifted("x", h), shifted("y", k), Num(r2)),
		Parameters: types.ConicParameters{
			Center:       types.Pt(h, k),
			Radius:       types.Float(r),
			Eccentricity: types.Float(0),
		},
		Explanation: explain(loc, msgCircle, Num(h), Num(k), Num(r)),
	}, true
}

// Ellipse builds the axis-aligned ellipse (x-h)²/ax2 + (y-k)²/ay2 = 1. Equal
// denominators describe a circle and are built as one.
func Ellipse(h, k, ax2, ay2 float64, loc types.Locale) (types.ConicResult, bool) {
	if !positive(ax2) || !positive(ay2) {
		return types.ConicResult{}, false
	}
	if classify.NearlyEqual(ax2, ay2) {
		return Circle(h, k, ax2, loc)
	}

	ax, ay := math.Sqrt(ax2), math.Sqrt(ay2)
	major, minor := math.Max(ax, ay), math.Min(ax, ay)
	c := math.Sqrt(math.Abs(ax2 - ay2))

	f1, f2 := types.Pt(h+c, k), types.Pt(h-c, k)
	if ay > ax {
		f1, f2 = types.Pt(h, k+c), types.Pt(h, k-c)
	}

	return types.ConicResult{
		Type:         types.ConicEllipse,
		StandardForm: fmt.Sprintf("%s²/%s + %s²/%s = 1", shifted("x", h), Num(ax2), shifted("y", k), Num(ay2)),
		Parameters: types.ConicParameters{
			Center:        types.Pt(h, k),
			SemiMajorAxis: types.Float(major),
			SemiMinorAxis: types.Float(minor),
			Focus1:        f1,
			Focus2:        f2,
			Eccentricity:  types.Float(c / major),
		},
		Explanation: explain(loc, msgEllipse, Num(h), Num(k), Num(major), Num(minor)),
	}, true
}

// Hyperbola builds the axis-aligned hyperbola with transverse semi-axis² a2
// and conjugate semi-axis² b2. With vertical false the transverse axis is
// horizontal: (x-h)²/a2 - (y-k)²/b2 = 1.
func Hyperbola(h, k, a2, b2 float64, vertical bool, loc types.Locale) (types.ConicResult, bool) {
	if !positive(a2) || !positive(b2) {
		return types.ConicResult{}, false
	}
	a, b := math.Sqrt(a2), math.Sqrt(b2)
	c := math.Sqrt(a2 + b2)

	var (
		form   string
		f1, f2 *types.Point
		slope  float64
	)
	if vertical {
		form = fmt.Sprintf("%s²/%s - %s²/%s = 1", shifted("y", k), Num(a2), shifted("x", h), Num(b2))
		f1, f2 = types.Pt(h, k+c), types.Pt(h, k-c)
		slope = a / b
	} else {
		form = fmt.Sprintf("%s²/%s - %s²/%s = 1", shifted("x", h), Num(a2), shifted("y", k), Num(b2))
		f1, f2 = types.Pt(h+c, k), types.Pt(h-c, k)
		slope = b / a
	}

	return types.ConicResult{
		Type:         types.ConicHyperbola,
		StandardForm: form,
		Parameters: types.ConicParameters{
			Center:        types.Pt(h, k),
			SemiMajorAxis: types.Float(a),
			SemiMinorAxis: types.Float(b),
			Focus1:        f1,
			Focus2:        f2,
			Eccentricity:  types.Float(c / a),
			Asymptotes:    []string{line(slope, h, k), line(-slope, h, k)},
		},
		Explanation: explain(loc, msgHyperbola, Num(h), Num(k), Num(a), Num(b)),
	}, true
}

// RectangularHyperbola builds xy = k, the equilateral hyperbola whose
// asymptotes are the coordinate axes.
func RectangularHyperbola(k float64, loc types.Locale) (types.ConicResult, bool) {
	if classify.NearZero(k) || math.IsInf(k, 0) || math.IsNaN(k) {
		return types.ConicResult{}, false
	}
	a := math.Sqrt(2 * math.Abs(k))
	// Foci lie on y = x for k > 0 and on y = -x for k < 0, at distance 2√|k|
	// from the origin along that diagonal, i.e. at (±a, ±a).
	f1, f2 := types.Pt(a, a), types.Pt(-a, -a)
	if k < 0 {
		f1, f2 = types.Pt(a, -a), types.Pt(-a, a)
	}
	return types.ConicResult{
		Type:         types.ConicHyperbola,
		StandardForm: "xy = " + Num(k),
		Parameters: types.ConicParameters{
			Center:        types.Pt(0, 0),
			SemiMajorAxis: types.Float(a),
			SemiMinorAxis: types.Float(a),
			Focus1:        f1,
			Focus2:        f2,
			Eccentricity:  types.Float(math.Sqrt2),
			Asymptotes:    []string{"x = 0", "y = 0"},
		},
		Explanation: explain(loc, msgEquilateral, Num(k)),
	}, true
}

// VerticalParabola builds y = ax² + bx + c.
func VerticalParabola(a, b, c float64, loc types.Locale) (types.ConicResult, bool) {
	if classify.NearZero(a) {
		return types.ConicResult{}, false
	}
	xv := -b / (2 * a)
	yv := a*xv*xv + b*xv + c
	p := 1 / (4 * a)
	return types.ConicResult{
		Type:         types.ConicParabola,
		StandardForm: "y = " + polynomial(a, b, c, "x"),
		Parameters: types.ConicParameters{
			Vertex:       types.Pt(xv, yv),
			Focus1:       types.Pt(xv, yv+p),
			Directrix:    fmt.Sprintf("y = %.4f", yv-p),
			Eccentricity: types.Float(1),
			Coefficients: &types.QuadraticCoefficients{A: a, B: b, C: c},
		},
		Explanation: explain(loc, msgParabola, Num(a), Num(b), Num(c), Num(xv), Num(yv)),
	}, true
}

// HorizontalParabola builds x = ay² + by + c.
func HorizontalParabola(a, b, c float64, loc types.Locale) (types.ConicResult, bool) {
	if classify.NearZero(a) {
		return types.ConicResult{}, false
	}
	yv := -b / (2 * a)
	xv := a*yv*yv + b*yv + c
	p := 1 / (4 * a)
	return types.ConicResult{
		Type:         types.ConicParabola,
		StandardForm: "x = " + polynomial(a, b, c, "y"),
		Parameters: types.ConicParameters{
			Vertex:       types.Pt(xv, yv),
			Focus1:       types.Pt(xv+p, yv),
			Directrix:    fmt.Sprintf("x = %.4f", xv-p),
			Eccentricity: types.Float(1),
			Coefficients: &types.QuadraticCoefficients{A: a, B: b, C: c},
		},
		Explanation: explain(loc, msgHorizontalParabola, Num(a), Num(b), Num(c), Num(xv), Num(yv)),
	}, true
}
