// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package cascade

import (
	"regexp"
	"strconv"

	"github.com/pdiddy/conic-engine/internal/resolve"
	"github.com/pdiddy/conic-engine/pkg/types"
)

const (
	unsigned = `(\d+(?:\.\d+)?)`
	signed   = `([+-]\d+(?:\.\d+)?)`
	square   = `\^?2`
)

// pattern is one textbook form matched against the whole cleaned equation.
// build receives the parsed numeric captures in order.
type pattern struct {
	name  string
	re    *regexp.Regexp
	build func(n []float64, loc types.Locale) (types.ConicResult, bool)
}

var canonicalPatterns = []pattern{
	{
		name: "circle",
		re:   regexp.MustCompile(`^x` + square + `\+y` + square + `=` + unsigned + `$`),
		build: func(n []float64, loc types.Locale) (types.ConicResult, bool) {
			return resolve.Circle(0, 0, n[0], loc)
		},
	},
	{
		name: "translated circle",
		re: regexp.MustCompile(`^\(x` + signed + `\)` + square + `\+\(y` + signed + `\)` + square +
			`=` + unsigned + `$`),
		build: func(n []float64, loc types.Locale) (types.ConicResult, bool) {
			return resolve.Circle(-n[0], -n[1], n[2], loc)
		},
	},
	{
		name: "ellipse",
		re:   regexp.MustCompile(`^x` + square + `/` + unsigned + `\+y` + square + `/` + unsigned + `=1$`),
		build: func(n []float64, loc types.Locale) (types.ConicResult, bool) {
			return resolve.Ellipse(0, 0, n[0], n[1], loc)
		},
	},
	{
		name: "translated ellipse",
		re: regexp.MustCompile(`^\(x` + signed + `\)` + square + `/` + unsigned + `\+\(y` + signed + `\)` + square +
			`/` + unsigned + `=1$`),
		build: func(n []float64, loc types.Locale) (types.ConicResult, bool) {
			return resolve.Ellipse(-n[0], -n[2], n[1], n[3], loc)
		},
	},
	{
		name: "hyperbola",
		re:   regexp.MustCompile(`^x` + square + `/` + unsigned + `-y` + square + `/` + unsigned + `=1$`),
		build: func(n []float64, loc types.Locale) (types.ConicResult, bool) {
			return resolve.Hyperbola(0, 0, n[0], n[1], false, loc)
		},
	},
	{
		name: "vertical hyperbola",
		re:   regexp.MustCompile(`^y` + square + `/` + unsigned + `-x` + square + `/` + unsigned + `=1$`),
		build: func(n []float64, loc types.Locale) (types.ConicResult, bool) {
			return resolve.Hyperbola(0, 0, n[0], n[1], true, loc)
		},
	},
	{
		name: "translated hyperbola",
		re: regexp.MustCompile(`^\(x` + signed + `\)` + square + `/` + unsigned + `-\(y` + signed + `\)` + square +
			`/` + unsigned + `=1$`),
		build: func(n []float64, loc types.Locale) (types.ConicResult, bool) {
			return resolve.Hyperbola(-n[0], -n[2], n[1], n[3], false, loc)
		},
	},
	{
		name: "rectangular hyperbola",
		re:   regexp.MustCompile(`^x\*?y=([+-]?\d+(?:\.\d+)?)$`),
		build: func(n []float64, loc types.Locale) (types.ConicResult, bool) {
			return resolve.RectangularHyperbola(n[0], loc)
		},
	},
}

// canonical matches the cleaned equation against the textbook forms, in
// order, and builds the first one whose numbers describe a real curve.
func canonical(loc types.Locale) Strategy {
	return func(in Input) (types.ConicResult, bool) {
		for _, p := range canonicalPatterns {
			m := p.re.FindStringSubmatch(in.Normalized)
			if m == nil {
				continue
			}
			nums, ok := parseCaptures(m[1:])
			if !ok {
				continue
			}
			if res, ok := p.build(nums, loc); ok {
				res.Confidence = ConfidenceCanonical
				return res, true
			}
		}
		return types.ConicResult{}, false
	}
}

func parseCaptures(groups []string) ([]float64, bool) {
	nums := make([]float64, len(groups))
	for i, g := range groups {
		v, err := strconv.ParseFloat(g, 64)
		if err != nil {
			return nil, false
		}
		nums[i] = v
	}
	return nums, true
}
