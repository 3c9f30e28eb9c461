// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package resolve

import "github.com/pdiddy/conic-engine/pkg/types"

// Confidence of the placeholder results returned when only the shape of the
// text suggests a family.
const (
	ConfidenceGuess         = 0.5
	ConfidenceGuessParabola = 0.6
	ConfidenceUnknown       = 0.3
)

// GuessCircle is a circle of radius 5 at the origin, used when the text
// looks like a sum of squares but could not be solved.
func GuessCircle(equation string, loc types.Locale) types.ConicResult {
	return types.ConicResult{
		Type:         types.ConicCircle,
		Confidence:   ConfidenceGuess,
		StandardForm: equation,
		Parameters: types.ConicParameters{
			Center: types.Pt(0, 0),
			Radius: types.Float(5),
		},
		Explanation: explain(loc, msgGuessCircle),
	}
}

// GuessHyperbola is a hyperbola with semi-axes 4 and 3 at the origin.
func GuessHyperbola(equation string, loc types.Locale) types.ConicResult {
	return types.ConicResult{
		Type:         types.ConicHyperbola,
		Confidence:   ConfidenceGuess,
		StandardForm: equation,
		Parameters: types.ConicParameters{
			Center:        types.Pt(0, 0),
			SemiMajorAxis: types.Float(4),
			SemiMinorAxis: types.Float(3),
		},
		Explanation: explain(loc, msgGuessHyperbola),
	}
}

// GuessParabola is y = x² with its vertex at the origin.
func GuessParabola(equation string, loc types.Locale) types.ConicResult {
	return types.ConicResult{
		Type:         types.ConicParabola,
		Confidence:   ConfidenceGuessParabola,
		StandardForm: equation,
		Parameters: types.ConicParameters{
			Vertex:       types.Pt(0, 0),
			Coefficients: &types.QuadraticCoefficients{A: 1},
		},
		Explanation: explain(loc, msgGuessParabola),
	}
}

// Unknown is the terminal result: no parameters and a list of the forms
// the classifier accepts.
func Unknown(equation string, loc types.Locale) types.ConicResult {
	return types.ConicResult{
		Type:         types.ConicUnknown,
		Confidence:   ConfidenceUnknown,
		StandardForm: equation,
		Explanation:  explain(loc, msgUnknown),
	}
}
