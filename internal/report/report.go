// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package report flattens a ConicResult into labelled rows for display,
// adding derived quantities such as area and circumference.
package report

import (
	"fmt"
	"math"

	"github.com/pdiddy/conic-engine/pkg/types"
)

// Row is one displayed parameter.
type Row struct {
	Name        string `json:"name" yaml:"name"`
	Value       string `json:"value" yaml:"value"`
	Description string `json:"description" yaml:"description"`
}

type rowKey int

const (
	rowCenter rowKey = iota
	rowRadius
	rowDiameter
	rowCircleArea
	rowCircumference
	rowSemiMajor
	rowSemiMinor
	rowFoci
	rowEllipseEccentricity
	rowEllipseArea
	rowCoefA
	rowCoefB
	rowCoefC
	rowVertex
	rowFocus
	rowDirectrix
	rowTransverse
	rowConjugate
	rowHyperbolaEccentricity
	rowAsymptotes
	rowStandardForm
	rowExplanation
	rowConfidence
)

type label struct{ name, description string }

var labels = map[types.Locale]map[rowKey]label{
	types.LocaleItalian: {
		rowCenter:                {"Centro", "Punto centrale della conica"},
		rowRadius:                {"Raggio", "Distanza dal centro a qualsiasi punto della circonferenza"},
		rowDiameter:              {"Diametro", "Doppio del raggio"},
		rowCircleArea:            {"Area", "Area del cerchio"},
		rowCircumference:         {"Circonferenza", "Lunghezza della circonferenza"},
		rowSemiMajor:             {"Semiasse maggiore (a)", "Metà dell'asse maggiore"},
		rowSemiMinor:             {"Semiasse minore (b)", "Metà dell'asse minore"},
		rowFoci:                  {"Fuochi", "Punti fissi della definizione"},
		rowEllipseEccentricity:   {"Eccentricità (e)", `Misura della "schiacciatura" dell'ellisse`},
		rowEllipseArea:           {"Area", "Area dell'ellisse"},
		rowCoefA:                 {"a", "Coefficiente del termine quadratico"},
		rowCoefB:                 {"b", "Coefficiente del termine lineare"},
		rowCoefC:                 {"c", "Termine noto"},
		rowVertex:                {"Vertice", "Punto di minimo/massimo della parabola"},
		rowFocus:                 {"Fuoco", "Punto fisso della definizione"},
		rowDirectrix:             {"Direttrice", "Retta fissa della definizione"},
		rowTransverse:            {"Semiasse trasverso (a)", "Metà dell'asse trasverso"},
		rowConjugate:             {"Semiasse non trasverso (b)", "Metà dell'asse non trasverso"},
		rowHyperbolaEccentricity: {"Eccentricità (e)", "Rapporto c/a, sempre > 1 per le iperboli"},
		rowAsymptotes:            {"Asintoti", "Rette a cui l'iperbole si avvicina"},
		rowStandardForm:          {"Forma standard", "Equazione in forma canonica"},
		rowExplanation:           {"Spiegazione", "Come è stata riconosciuta la conica"},
		rowConfidence:            {"Affidabilità", "Sicurezza della classificazione"},
	},
	types.LocaleEnglish: {
		rowCenter:                {"Center", "Central point of the conic"},
		rowRadius:                {"Radius", "Distance from the center to any point of the circle"},
		rowDiameter:              {"Diameter", "Twice the radius"},
		rowCircleArea:            {"Area", "Area of the disc"},
		rowCircumference:         {"Circumference", "Length of the circle"},
		rowSemiMajor:             {"Semi-major axis (a)", "Half of the major axis"},
		rowSemiMinor:             {"Semi-minor axis (b)", "Half of the minor axis"},
		rowFoci:                  {"Foci", "Fixed points of the definition"},
		rowEllipseEccentricity:   {"Eccentricity (e)", "How flattened the ellipse is"},
		rowEllipseArea:           {"Area", "Area of the ellipse"},
		rowCoefA:                 {"a", "Coefficient of the quadratic term"},
		rowCoefB:                 {"b", "Coefficient of the linear term"},
		rowCoefC:                 {"c", "Constant term"},
		rowVertex:                {"Vertex", "Minimum or maximum point of the parabola"},
		rowFocus:                 {"Focus", "Fixed point of the definition"},
		rowDirectrix:             {"Directrix", "Fixed line of the definition"},
		rowTransverse:            {"Transverse semi-axis (a)", "Half of the transverse axis"},
		rowConjugate:             {"Conjugate semi-axis (b)", "Half of the conjugate axis"},
		rowHyperbolaEccentricity: {"Eccentricity (e)", "Ratio c/a, always > 1 for hyperbolas"},
		rowAsymptotes:            {"Asymptotes", "Lines the hyperbola approaches"},
		rowStandardForm:          {"Standard form", "Equation in canonical form"},
		rowExplanation:           {"Explanation", "How the conic was recognized"},
		rowConfidence:            {"Confidence", "Reliability of the classification"},
	},
}

type builder struct {
	texts map[rowKey]label
	rows  []Row
}

func (b *builder) add(k rowKey, value string) {
	l := b.texts[k]
	b.rows = append(b.rows, Row{Name: l.name, Value: value, Description: l.description})
}

// Rows returns the display rows for res in loc. Only parameters present on
// the result produce rows; standard form, explanation and confidence are
// always appended.
func Rows(res types.ConicResult, loc types.Locale) []Row {
	texts, ok := labels[loc]
	if !ok {
		texts = labels[types.LocaleItalian]
	}
	b := &builder{texts: texts}
	p := res.Parameters

	if p.Center != nil {
		b.add(rowCenter, point(*p.Center))
	}

	switch res.Type {
	case types.ConicCircle:
		if p.Radius != nil {
			r := *p.Radius
			b.add(rowRadius, fixed2(r))
			b.add(rowDiameter, fixed2(2*r))
			b.add(rowCircleArea, fixed2(math.Pi*r*r))
			b.add(rowCircumference, fixed2(2*math.Pi*r))
		}
	case types.ConicEllipse:
		optional(b, rowSemiMajor, p.SemiMajorAxis)
		optional(b, rowSemiMinor, p.SemiMinorAxis)
		foci(b, p)
		if p.Eccentricity != nil {
			b.add(rowEllipseEccentricity, fmt.Sprintf("%.3f", *p.Eccentricity))
		}
		if p.SemiMajorAxis != nil && p.SemiMinorAxis != nil {
			b.add(rowEllipseArea, fixed2(math.Pi*(*p.SemiMajorAxis)*(*p.SemiMinorAxis)))
		}
	case types.ConicParabola:
		if c := p.Coefficients; c != nil {
			b.add(rowCoefA, fmt.Sprintf("%.3f", c.A))
			b.add(rowCoefB, fmt.Sprintf("%.3f", c.B))
			b.add(rowCoefC, fmt.Sprintf("%.3f", c.C))
		}
		if p.Vertex != nil {
			b.add(rowVertex, point(*p.Vertex))
		}
		if p.Focus1 != nil {
			b.add(rowFocus, point(*p.Focus1))
		}
		if p.Directrix != "" {
			b.add(rowDirectrix, p.Directrix)
		}
	case types.ConicHyperbola:
		optional(b, rowTransverse, p.SemiMajorAxis)
		optional(b, rowConjugate, p.SemiMinorAxis)
		foci(b, p)
		if p.Eccentricity != nil {
			b.add(rowHyperbolaEccentricity, fmt.Sprintf("%.3f", *p.Eccentricity))
		}
		for _, a := range p.Asymptotes {
			b.add(rowAsymptotes, a)
		}
	}

	b.add(rowStandardForm, res.StandardForm)
	b.add(rowExplanation, res.Explanation)
	b.add(rowConfidence, fmt.Sprintf("%.0f%%", res.Confidence*100))
	return b.rows
}

func optional(b *builder, k rowKey, v *float64) {
	if v != nil {
		b.add(k, fixed2(*v))
	}
}

func foci(b *builder, p types.ConicParameters) {
	if p.Focus1 != nil && p.Focus2 != nil {
		b.add(rowFoci, point(*p.Focus1)+", "+point(*p.Focus2))
	}
}

func fixed2(v float64) string {
	s := fmt.Sprintf("%.2f", v)
	if s == "-0.00" {
		return "0.00"
	}
	return s
}

func point(p types.Point) string {
	return "(" + fixed2(p.X) + ", " + fixed2(p.Y) + ")"
}
