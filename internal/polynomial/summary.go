// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package polynomial

import (
	"errors"
	"fmt"
	"strings"

	"github.com/pdiddy/conic-engine/internal/classify"
	"github.com/pdiddy/conic-engine/internal/normalize"
	"github.com/pdiddy/conic-engine/pkg/types"
)

// ErrInvalidEquation is returned by Summarize for text with more than one
// equals sign.
var ErrInvalidEquation = errors.New("invalid equation format")

// ShapeTotal is the summed coefficient of one monomial shape.
type ShapeTotal struct {
	Shape       string  `json:"shape" yaml:"shape"`
	Coefficient float64 `json:"coefficient" yaml:"coefficient"`
}

// Summary is the term-by-term breakdown of an equation, with every side moved
// to the left of the equals sign.
type Summary struct {
	Input        string                  `json:"input" yaml:"input"`
	Normalized   string                  `json:"normalized" yaml:"normalized"`
	Terms        []types.Term            `json:"terms" yaml:"terms"`
	Totals       []ShapeTotal            `json:"totals" yaml:"totals"`
	Combined     string                  `json:"combined" yaml:"combined"`
	Coefficients types.CoefficientVector `json:"coefficients" yaml:"coefficients"`
	Type         types.ConicType         `json:"type" yaml:"type"`
}

// Summarize extracts and sums every monomial of equation, including the
// mixed higher-degree shapes Combine leaves out, and classifies the result.
func Summarize(equation string) (Summary, error) {
	cleaned := normalize.Clean(equation)
	eq, ok := normalize.Split(cleaned)
	if !ok {
		return Summary{}, fmt.Errorf("%w: %q has more than one '='", ErrInvalidEquation, equation)
	}

	terms := ExtractEquation(eq)
	totals := make([]ShapeTotal, len(Shapes))
	for i, s := range Shapes {
		totals[i].Shape = s.Name
		for _, t := range terms {
			if t.XDegree == s.XDegree && t.YDegree == s.YDegree {
				totals[i].Coefficient += t.Coefficient
			}
		}
	}

	v := Combine(terms)
	return Summary{
		Input:        equation,
		Normalized:   cleaned,
		Terms:        terms,
		Totals:       totals,
		Combined:     formatTotals(totals),
		Coefficients: v,
		Type:         classify.Classify(v),
	}, nil
}

// formatTotals renders the nonzero totals as "+2.00x^2 -1.00y +3.00 = 0".
func formatTotals(totals []ShapeTotal) string {
	var parts []string
	for _, t := range totals {
		if t.Coefficient == 0 {
			continue
		}
		name := t.Shape
		if name == "const" {
			name = ""
		}
		parts = append(parts, fmt.Sprintf("%+.2f%s", t.Coefficient, name))
	}
	if len(parts) == 0 {
		return "0 = 0"
	}
	return strings.TrimPrefix(strings.Join(parts, " "), "+") + " = 0"
}
