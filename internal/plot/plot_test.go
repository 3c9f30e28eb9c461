// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package plot

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/conic-engine/internal/resolve"
	"github.com/pdiddy/conic-engine/pkg/types"
)

func TestPointsCircleLieOnCurve(t *testing.T) {
	res, ok := resolve.Circle(2, -3, 25, types.LocaleItalian)
	require.True(t, ok)
	pts := Points(res)
	require.Len(t, pts, closedSamples+1)
	for _, p := range pts {
		assert.InDelta(t, 5, math.Hypot(p.X-2, p.Y+3), 1e-9)
	}
}

func TestPointsEllipseVerticalMajor(t *testing.T) {
	res, ok := resolve.Ellipse(0, 0, 1, 4, types.LocaleItalian)
	require.True(t, ok)
	for _, p := range Points(res) {
		assert.InDelta(t, 1, p.X*p.X/1+p.Y*p.Y/4, 1e-9)
	}
}

func TestPointsParabola(t *testing.T) {
	res, ok := resolve.VerticalParabola(2, 3, -1, types.LocaleItalian)
	require.True(t, ok)
	pts := Points(res)
	require.NotEmpty(t, pts)
	for _, p := range pts {
		assert.InDelta(t, 2*p.X*p.X+3*p.X-1, p.Y, 1e-9)
		assert.LessOrEqual(t, math.Abs(p.Y), clip)
	}
}

func TestPointsHorizontalParabola(t *testing.T) {
	res, ok := resolve.HorizontalParabola(0.25, 0, 0, types.LocaleItalian)
	require.True(t, ok)
	for _, p := range Points(res) {
		assert.InDelta(t, 0.25*p.Y*p.Y, p.X, 1e-9)
	}
}

func TestPointsHyperbolaBothBranches(t *testing.T) {
	res, ok := resolve.Hyperbola(0, 0, 16, 9, false, types.LocaleItalian)
	require.True(t, ok)
	pts := Points(res)
	var left, right int
	for _, p := range pts {
		assert.InDelta(t, 1, p.X*p.X/16-p.Y*p.Y/9, 1e-6)
		if p.X > 0 {
			right++
		} else {
			left++
		}
	}
	assert.Equal(t, left, right)
}

func TestPointsRectangularHyperbola(t *testing.T) {
	res, ok := resolve.RectangularHyperbola(-4, types.LocaleItalian)
	require.True(t, ok)
	pts := Points(res)
	require.NotEmpty(t, pts)
	for _, p := range pts {
		assert.InDelta(t, -4, p.X*p.Y, 1e-9)
	}
}

func TestPointsUnknown(t *testing.T) {
	assert.Nil(t, Points(resolve.Unknown("qwerty", types.LocaleItalian)))
	assert.Nil(t, Points(types.ConicResult{Type: types.ConicCircle}))
}
