// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package plot samples a classified conic into points a client can draw as
// a polyline.
package plot

import (
	"math"

	"github.com/pdiddy/conic-engine/pkg/types"
)

const (
	closedSamples = 100  // segments around a circle or ellipse
	sweepHalf     = 10.0 // parabola sweep covers [-sweepHalf, sweepHalf]
	sweepStep     = 0.1
	clip          = 50.0 // points farther than this on the dependent axis are dropped
	branchT       = 3.0  // hyperbola branches use t in [-branchT, branchT]
	branchStep    = 0.05
)

// Points samples res. It returns nil for unknown results and for results
// whose parameters are too sparse to draw.
func Points(res types.ConicResult) []types.Point {
	p := res.Parameters
	switch res.Type {
	case types.ConicCircle:
		if p.Center == nil || p.Radius == nil {
			return nil
		}
		return ellipse(*p.Center, *p.Radius, *p.Radius)
	case types.ConicEllipse:
		if p.Center == nil || p.SemiMajorAxis == nil || p.SemiMinorAxis == nil {
			return nil
		}
		rx, ry := *p.SemiMajorAxis, *p.SemiMinorAxis
		if p.Focus1 != nil && nearly(p.Focus1.X, p.Center.X) && !nearly(p.Focus1.Y, p.Center.Y) {
			rx, ry = ry, rx
		}
		return ellipse(*p.Center, rx, ry)
	case types.ConicParabola:
		if p.Coefficients == nil {
			return nil
		}
		c := *p.Coefficients
		horizontal := p.Vertex != nil && p.Focus1 != nil && nearly(p.Vertex.Y, p.Focus1.Y) && !nearly(p.Vertex.X, p.Focus1.X)
		return parabola(c.A, c.B, c.C, horizontal)
	case types.ConicHyperbola:
		return hyperbola(p)
	}
	return nil
}

func ellipse(c types.Point, rx, ry float64) []types.Point {
	pts := make([]types.Point, 0, closedSamples+1)
	for i := 0; i <= closedSamples; i++ {
		t := 2 * math.Pi * float64(i) / closedSamples
		pts = append(pts, types.Point{X: c.X + rx*math.Cos(t), Y: c.Y + ry*math.Sin(t)})
	}
	return pts
}

func parabola(a, b, c float64, horizontal bool) []types.Point {
	steps := int(math.Round(2 * sweepHalf / sweepStep))
	pts := make([]types.Point, 0, steps+1)
	for i := 0; i <= steps; i++ {
		u := -sweepHalf + float64(i)*sweepStep
		w := a*u*u + b*u + c
		if math.Abs(w) > clip {
			continue
		}
		if horizontal {
			pts = append(pts, types.Point{X: w, Y: u})
		} else {
			pts = append(pts, types.Point{X: u, Y: w})
		}
	}
	return pts
}

func hyperbola(p types.ConicParameters) []types.Point {
	if p.Center == nil || p.SemiMajorAxis == nil || p.SemiMinorAxis == nil || p.Focus1 == nil {
		return nil
	}
	c, f := *p.Center, *p.Focus1
	a, b := *p.SemiMajorAxis, *p.SemiMinorAxis

	// Foci off both axes through the centre mean xy = k.
	if !nearly(f.X, c.X) && !nearly(f.Y, c.Y) {
		k := a * a / 2
		if (f.X-c.X)*(f.Y-c.Y) < 0 {
			k = -k
		}
		return reciprocal(k)
	}

	vertical := nearly(f.X, c.X)
	steps := int(math.Round(2 * branchT / branchStep))
	pts := make([]types.Point, 0, 2*(steps+1))
	for _, side := range []float64{1, -1} {
		for i := 0; i <= steps; i++ {
			t := -branchT + float64(i)*branchStep
			u, v := side*a*math.Cosh(t), b*math.Sinh(t)
			if vertical {
				pts = append(pts, types.Point{X: c.X + v, Y: c.Y + u})
			} else {
				pts = append(pts, types.Point{X: c.X + u, Y: c.Y + v})
			}
		}
	}
	return pts
}

// reciprocal samples y = k/x on both branches, skipping a window around the
// vertical asymptote.
func reciprocal(k float64) []types.Point {
	steps := int(math.Round(2 * sweepHalf / sweepStep))
	var pts []types.Point
	for i := 0; i <= steps; i++ {
		x := -sweepHalf + float64(i)*sweepStep
		if math.Abs(x) < sweepStep/2 {
			continue
		}
		y := k / x
		if math.Abs(y) > clip {
			continue
		}
		pts = append(pts, types.Point{X: x, Y: y})
	}
	return pts
}

func nearly(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}
