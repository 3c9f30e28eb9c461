// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package resolve

import (
	"math"
	"strconv"
	"strings"
)

// Num renders v rounded to four decimals with no trailing zeros. Negative
// zero prints as "0".
func Num(v float64) string {
	r := math.Round(v*1e4) / 1e4
	if r == 0 {
		r = 0
	}
	return strconv.FormatFloat(r, 'f', -1, 64)
}

// shifted renders a variable translated by c: "x", "(x-2)" or "(x+3)".
func shifted(variable string, c float64) string {
	switch r := math.Round(c*1e4) / 1e4; {
	case r == 0:
		return variable
	case r > 0:
		return "(" + variable + "-" + Num(r) + ")"
	default:
		return "(" + variable + "+" + Num(-r) + ")"
	}
}

// polynomial renders a·v² + b·v + c, omitting zero terms and unit
// coefficients: polynomial(2, 3, -1, "x") is "2x² + 3x - 1".
func polynomial(a, b, c float64, variable string) string {
	type part struct {
		coef   float64
		suffix string
	}
	var sb strings.Builder
	for _, p := range []part{{a, variable + "²"}, {b, variable}, {c, ""}} {
		r := math.Round(p.coef*1e4) / 1e4
		if r == 0 {
			continue
		}
		mag := math.Abs(r)
		switch {
		case sb.Len() == 0 && r < 0:
			sb.WriteString("-")
		case sb.Len() > 0 && r < 0:
			sb.WriteString(" - ")
		case sb.Len() > 0:
			sb.WriteString(" + ")
		}
		if mag != 1 || p.suffix == "" {
			sb.WriteString(Num(mag))
		}
		sb.WriteString(p.suffix)
	}
	if sb.Len() == 0 {
		return "0"
	}
	return sb.String()
}

// line renders y = m(x - h) + k, collapsing to y = mx through the origin.
func line(m, h, k float64) string {
	if math.Round(h*1e4) == 0 && math.Round(k*1e4) == 0 {
		return "y = " + Num(m) + "x"
	}
	s := "y = " + Num(m) + shifted("x", h)
	switch r := math.Round(k*1e4) / 1e4; {
	case r > 0:
		s += " + " + Num(r)
	case r < 0:
		s += " - " + Num(-r)
	}
	return s
}
