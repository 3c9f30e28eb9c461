// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package polynomial extracts monomials of degree up to two from a cleaned
// equation side and folds them into the six general-form coefficients.
package polynomial

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/pdiddy/conic-engine/internal/normalize"
	"github.com/pdiddy/conic-engine/pkg/types"
)

// coefficient is the optional signed numeric prefix of a monomial. It may be
// empty, a bare sign, or a malformed literal such as "."; all of these fall
// back to a magnitude of one.
const coefficient = `([+-]?\d*\.?\d*)\*?`

// divisor is an optional "/number" suffix, so x^2/25 carries 1/25.
const divisor = `(?:/(\d+\.?\d*))?`

// Shape names one of the nine monomial forms the extractor recognises.
type Shape struct {
	Name    string
	XDegree int
	YDegree int
}

// Shapes lists the recognised monomials in matching priority order. A
// longer shape always wins over a shorter one sharing its prefix.
var Shapes = []Shape{
	{"x^2y^2", 2, 2},
	{"x^2y", 2, 1},
	{"xy^2", 1, 2},
	{"x^2", 2, 0},
	{"y^2", 0, 2},
	{"xy", 1, 1},
	{"x", 1, 0},
	{"y", 0, 1},
	{"const", 0, 0},
}

type matcher struct {
	shape Shape
	re    *regexp.Regexp

	// rejectNext reports whether the byte after the match disqualifies it.
	rejectNext func(next byte) bool
	constant   bool
}

var matchers = []matcher{
	{shape: Shapes[0], re: anchored(`x\^2\*?y\^2`), rejectNext: isDigitOrDot},
	{shape: Shapes[1], re: anchored(`x\^2\*?y`), rejectNext: isCaret},
	{shape: Shapes[2], re: anchored(`x\*?y\^2`), rejectNext: isDigitOrDot},
	{shape: Shapes[3], re: anchored(`x\^2`), rejectNext: func(b byte) bool { return isLetter(b) || isDigitOrDot(b) }},
	{shape: Shapes[4], re: anchored(`y\^2`), rejectNext: func(b byte) bool { return isLetter(b) || isDigitOrDot(b) }},
	{shape: Shapes[5], re: anchored(`x\*?y`), rejectNext: isCaret},
	{shape: Shapes[6], re: anchored(`x`), rejectNext: func(b byte) bool { return b == '^' || b == 'y' }},
	{shape: Shapes[7], re: anchored(`y`), rejectNext: isCaret},
	{
		shape:      Shapes[8],
		re:         regexp.MustCompile(`^([+-]?\d+\.?\d*)` + divisor),
		rejectNext: func(b byte) bool { return isLetter(b) || b == '^' || b == '*' || b == '(' },
		constant:   true,
	},
}

func anchored(body string) *regexp.Regexp {
	return regexp.MustCompile(`^` + coefficient + body + divisor)
}

var signRuns = strings.NewReplacer("--", "+", "+-", "-", "-+", "-", "++", "+")

// Extract scans one side of an equation left to right and returns every
// recognised monomial in order of appearance. Characters that start no
// recognised shape are skipped, which silently drops terms of degree three
// or more.
func Extract(side string) []types.Term {
	side = signRuns.Replace(side)
	var terms []types.Term
	for pos := 0; pos < len(side); {
		term, n, ok := matchAt(side, pos)
		if !ok {
			pos++
			continue
		}
		terms = append(terms, term)
		pos += n
	}
	return terms
}

func matchAt(s string, pos int) (types.Term, int, bool) {
	rest := s[pos:]
	for _, m := range matchers {
		groups := m.re.FindStringSubmatch(rest)
		if groups == nil {
			continue
		}
		var next byte
		if len(groups[0]) < len(rest) {
			next = rest[len(groups[0])]
		}
		if next != 0 && m.rejectNext(next) {
			continue
		}
		if m.constant && pos > 0 && isDigitOrDot(rest[0]) && joinsPrevious(s[pos-1]) {
			continue
		}
		coef := parseCoefficient(groups[1])
		if groups[2] != "" {
			if d, err := strconv.ParseFloat(groups[2], 64); err == nil && d != 0 {
				coef /= d
			}
		}
		return types.Term{Coefficient: coef, XDegree: m.shape.XDegree, YDegree: m.shape.YDegree}, len(groups[0]), true
	}
	return types.Term{}, 0, false
}

// ExtractEquation returns the terms of left - right: right-hand terms are
// extracted on their own and negated, so no string is ever assembled from
// both sides.
func ExtractEquation(eq normalize.Equation) []types.Term {
	terms := Extract(eq.Left)
	for _, t := range Extract(eq.Right) {
		t.Coefficient = -t.Coefficient
		terms = append(terms, t)
	}
	return terms
}

func parseCoefficient(s string) float64 {
	switch s {
	case "", "+":
		return 1
	case "-":
		return -1
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		if strings.HasPrefix(s, "-") {
			return -1
		}
		return 1
	}
	return v
}

// joinsPrevious reports whether an unsigned digit run right after b belongs
// to the preceding token (an exponent, a product, a longer number) rather
// than standing alone as a constant.
func joinsPrevious(b byte) bool {
	return b == '^' || b == '*' || b == '/' || b == '.' || isLetter(b) || isDigitOrDot(b)
}

func isCaret(b byte) bool      { return b == '^' }
func isLetter(b byte) bool     { return b >= 'a' && b <= 'z' }
func isDigitOrDot(b byte) bool { return (b >= '0' && b <= '9') || b == '.' }
