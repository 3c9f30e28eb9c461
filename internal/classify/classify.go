// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package classify maps general-form coefficients to a conic family using the
// discriminant B² − 4AC.
package classify

import (
	"math"

	"github.com/pdiddy/conic-engine/pkg/types"
)

// Epsilon is the tolerance for the zero band of the discriminant and for
// coefficient equality throughout classification and resolution.
const Epsilon = 1e-10

// NearZero reports whether |x| is inside the tolerance band.
func NearZero(x float64) bool {
	return math.Abs(x) < Epsilon
}

// NearlyEqual compares two coefficients relative to their scale, so A = C
// holds for 1/3 and 1/3 computed along different paths.
func NearlyEqual(a, b float64) bool {
	scale := math.Max(1, math.Max(math.Abs(a), math.Abs(b)))
	return math.Abs(a-b) < Epsilon*scale
}

// Classify returns the conic family of v.
//
// Inside the zero band a nonzero A equal to C is reported as a circle and any
// other nonzero square term as a parabola. Below it, equal squares with no
// cross term are a circle and everything else an ellipse. Above it the curve
// is a hyperbola. A vector with no square terms at all is unknown.
func Classify(v types.CoefficientVector) types.ConicType {
	d := v.Discriminant()
	switch {
	case NearZero(d):
		if NearlyEqual(v.A, v.C) && !NearZero(v.A) {
			return types.ConicCircle
		}
		if !NearZero(v.A) || !NearZero(v.C) {
			return types.ConicParabola
		}
		return types.ConicUnknown
	case d < 0:
		if NearZero(v.B) && NearlyEqual(v.A, v.C) {
			return types.ConicCircle
		}
		return types.ConicEllipse
	default:
		return types.ConicHyperbola
	}
}
