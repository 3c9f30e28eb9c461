// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// ConicType names the family of a classified second-degree curve. The values
// are the labels the web client renders, so they stay in Italian.
type ConicType string

const (
	ConicParabola  ConicType = "parabola"
	ConicCircle    ConicType = "circonferenza"
	ConicEllipse   ConicType = "ellisse"
	ConicHyperbola ConicType = "iperbole"
	ConicUnknown   ConicType = "unknown"
)

// Valid reports whether t is one of the five known labels.
func (t ConicType) Valid() bool {
	switch t {
	case ConicParabola, ConicCircle, ConicEllipse, ConicHyperbola, ConicUnknown:
		return true
	}
	return false
}

// Point is a coordinate pair in the plane.
type Point struct {
	X float64 `json:"x" yaml:"x"`
	Y float64 `json:"y" yaml:"y"`
}

// Term is one monomial extracted from an equation side. Degrees are the
// exponents of x and y; only exponents 0, 1 and 2 are ever produced.
type Term struct {
	Coefficient float64 `json:"coefficient" yaml:"coefficient"`
	XDegree     int     `json:"x_degree" yaml:"x_degree"`
	YDegree     int     `json:"y_degree" yaml:"y_degree"`
}

// CoefficientVector holds the six coefficients of
// Ax² + Bxy + Cy² + Dx + Ey + F = 0 with the right-hand side already moved
// across the equals sign.
type CoefficientVector struct {
	A float64 `json:"a" yaml:"a"` // x²
	B float64 `json:"b" yaml:"b"` // xy
	C float64 `json:"c" yaml:"c"` // y²
	D float64 `json:"d" yaml:"d"` // x
	E float64 `json:"e" yaml:"e"` // y
	F float64 `json:"f" yaml:"f"` // constant
}

// Discriminant returns B² − 4AC.
func (v CoefficientVector) Discriminant() float64 {
	return v.B*v.B - 4*v.A*v.C
}

// IsZero reports whether every coefficient is exactly zero.
func (v CoefficientVector) IsZero() bool {
	return v == CoefficientVector{}
}

// QuadraticCoefficients are the a, b, c of a parabola solved for one
// variable (y = ax² + bx + c, or x = ay² + by + c for a horizontal axis).
type QuadraticCoefficients struct {
	A float64  `json:"a" yaml:"a"`
	B float64  `json:"b" yaml:"b"`
	C float64  `json:"c" yaml:"c"`
	D *float64 `json:"d,omitempty" yaml:"d,omitempty"`
	E *float64 `json:"e,omitempty" yaml:"e,omitempty"`
	F *float64 `json:"f,omitempty" yaml:"f,omitempty"`
}

// ConicParameters carries the geometric description of a classified conic.
// Only the fields that apply to the classified type are set; a nil field
// means "not applicable", never zero.
type ConicParameters struct {
	Center        *Point                 `json:"center,omitempty" yaml:"center,omitempty"`
	Radius        *float64               `json:"radius,omitempty" yaml:"radius,omitempty"`
	SemiMajorAxis *float64               `json:"semiMajorAxis,omitempty" yaml:"semi_major_axis,omitempty"`
	SemiMinorAxis *float64               `json:"semiMinorAxis,omitempty" yaml:"semi_minor_axis,omitempty"`
	Focus1        *Point                 `json:"focus1,omitempty" yaml:"focus1,omitempty"`
	Focus2        *Point                 `json:"focus2,omitempty" yaml:"focus2,omitempty"`
	Vertex        *Point                 `json:"vertex,omitempty" yaml:"vertex,omitempty"`
	Directrix     string                 `json:"directrix,omitempty" yaml:"directrix,omitempty"`
	Eccentricity  *float64               `json:"eccentricity,omitempty" yaml:"eccentricity,omitempty"`
	Coefficients  *QuadraticCoefficients `json:"coefficients,omitempty" yaml:"coefficients,omitempty"`
	Asymptotes    []string               `json:"asymptotes,omitempty" yaml:"asymptotes,omitempty"`
}

// IsEmpty reports whether no parameter is set.
func (p ConicParameters) IsEmpty() bool {
	return p.Center == nil && p.Radius == nil && p.SemiMajorAxis == nil &&
		p.SemiMinorAxis == nil && p.Focus1 == nil && p.Focus2 == nil &&
		p.Vertex == nil && p.Directrix == "" && p.Eccentricity == nil &&
		p.Coefficients == nil && len(p.Asymptotes) == 0
}

// Source records which path produced a ConicResult.
type Source string

const (
	SourceCascade Source = "cascade"
	SourceAI      Source = "ai"
)

// ConicResult is the read-only report produced for one equation.
type ConicResult struct {
	// Type is the classified family, or "unknown".
	Type ConicType `json:"type" yaml:"type"`

	// Confidence is a score in [0,1] for how reliable the classification is.
	Confidence float64 `json:"confidence" yaml:"confidence"`

	// StandardForm is a human-readable canonical equation.
	StandardForm string `json:"standardForm" yaml:"standard_form"`

	// Parameters holds the subset of geometry that applies to Type.
	Parameters ConicParameters `json:"parameters" yaml:"parameters"`

	// Explanation is a localized sentence describing the recognition.
	Explanation string `json:"explanation" yaml:"explanation"`

	// GraphingPoints optionally samples the curve for plotting.
	GraphingPoints []Point `json:"graphingPoints,omitempty" yaml:"graphing_points,omitempty"`

	// Strategy names the cascade stage that produced the result
	// ("canonical", "general", "heuristic", "unknown"). Empty for AI results.
	Strategy string `json:"strategy,omitempty" yaml:"strategy,omitempty"`

	// Source is "cascade" or "ai".
	Source Source `json:"source,omitempty" yaml:"source,omitempty"`
}

// Float returns a pointer to v, for populating optional parameters.
func Float(v float64) *float64 { return &v }

// Pt returns a pointer to the point (x, y).
func Pt(x, y float64) *Point { return &Point{X: x, Y: y} }
