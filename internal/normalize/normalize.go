// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package normalize turns free-form equation text into the compact form the
// term extractor and the canonical-pattern matchers operate on, and splits an
// equation into its two sides.
package normalize

import (
	"regexp"
	"strings"
)

var (
	operatorSpacing = regexp.MustCompile(`\s*([+\-=*/^()])\s*`)
	whitespace      = regexp.MustCompile(`\s+`)
	implicitProduct = regexp.MustCompile(`(\d)([a-z])`)
)

// glyphs maps typographic characters users paste from textbooks onto the
// ASCII operators the rest of the pipeline expects.
var glyphs = strings.NewReplacer(
	"²", "^2",
	"³", "^3",
	"−", "-",
	"–", "-",
	"×", "*",
	"·", "*",
	"÷", "/",
)

// Clean lower-cases the input, maps typographic glyphs to ASCII, removes all
// whitespace and rewrites "**" as "^". It never fails: text that means
// nothing simply matches nothing downstream.
func Clean(raw string) string {
	s := strings.ToLower(strings.TrimSpace(raw))
	s = glyphs.Replace(s)
	s = operatorSpacing.ReplaceAllString(s, "$1")
	s = whitespace.ReplaceAllString(s, "")
	return strings.ReplaceAll(s, "**", "^")
}

// ForAI prepares an equation for the language-model path. On top of Clean it
// makes implicit multiplication explicit (2x → 2*x).
func ForAI(raw string) string {
	return implicitProduct.ReplaceAllString(Clean(raw), "$1*$2")
}

// Equation is an equation held as its two sides, Left = Right.
type Equation struct {
	Left  string
	Right string

	// Implicit is set when the input had no "=" and was read as y = expr.
	Implicit bool
}

// Split divides a cleaned equation at its equals sign. Text without "=" is
// read as expr = 0, except an expression in x alone, which is read as
// y = expr. More than one "=" is not an equation Split can represent and
// yields ok == false.
func Split(cleaned string) (eq Equation, ok bool) {
	switch strings.Count(cleaned, "=") {
	case 0:
		if !strings.Contains(cleaned, "y") && strings.Contains(cleaned, "x") {
			return Equation{Left: "y", Right: cleaned, Implicit: true}, true
		}
		return Equation{Left: cleaned, Right: "0"}, true
	case 1:
		left, right, _ := strings.Cut(cleaned, "=")
		return Equation{Left: left, Right: right}, true
	default:
		return Equation{}, false
	}
}

// String renders the equation back as "left=right".
func (e Equation) String() string {
	return e.Left + "=" + e.Right
}
