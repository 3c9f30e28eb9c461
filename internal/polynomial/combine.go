// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package polynomial

import (
	"github.com/pdiddy/conic-engine/internal/normalize"
	"github.com/pdiddy/conic-engine/pkg/types"
)

// Combine sums terms into the six general-form slots. Mixed cubic and quartic
// shapes (x²y, xy², x²y²) have no slot and are ignored here; Summarize still
// reports them.
func Combine(terms []types.Term) types.CoefficientVector {
	var v types.CoefficientVector
	for _, t := range terms {
		v = accumulate(v, t)
	}
	return v
}

func accumulate(v types.CoefficientVector, t types.Term) types.CoefficientVector {
	switch {
	case t.XDegree == 2 && t.YDegree == 0:
		v.A += t.Coefficient
	case t.XDegree == 1 && t.YDegree == 1:
		v.B += t.Coefficient
	case t.XDegree == 0 && t.YDegree == 2:
		v.C += t.Coefficient
	case t.XDegree == 1 && t.YDegree == 0:
		v.D += t.Coefficient
	case t.XDegree == 0 && t.YDegree == 1:
		v.E += t.Coefficient
	case t.XDegree == 0 && t.YDegree == 0:
		v.F += t.Coefficient
	}
	return v
}

// Coefficients cleans, splits and extracts an equation in one step. It
// reports false for text with more than one equals sign.
func Coefficients(equation string) (types.CoefficientVector, bool) {
	eq, ok := normalize.Split(normalize.Clean(equation))
	if !ok {
		return types.CoefficientVector{}, false
	}
	return Combine(ExtractEquation(eq)), true
}
