// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package resolve

import (
	"fmt"

	"github.com/pdiddy/conic-engine/pkg/types"
)

type message int

const (
	msgCircle message = iota
	msgEllipse
	msgHyperbola
	msgEquilateral
	msgParabola
	msgHorizontalParabola
	msgGuessCircle
	msgGuessHyperbola
	msgGuessParabola
	msgUnknown
)

const acceptedForms = "x^2 + y^2 = r^2, (x-h)^2 + (y-k)^2 = r^2, x^2/a^2 + y^2/b^2 = 1, " +
	"x^2/a^2 - y^2/b^2 = 1, y = ax^2 + bx + c, xy = k"

var catalog = map[types.Locale]map[message]string{
	types.LocaleItalian: {
		msgCircle:             "Circonferenza con centro (%s, %s) e raggio %s.",
		msgEllipse:            "Ellisse con centro (%s, %s), semiasse maggiore %s e semiasse minore %s.",
		msgHyperbola:          "Iperbole con centro (%s, %s), semiasse trasverso %s e semiasse coniugato %s.",
		msgEquilateral:        "Iperbole equilatera riferita agli asintoti, xy = %s.",
		msgParabola:           "Parabola con asse verticale: a = %s, b = %s, c = %s. Vertice in (%s, %s).",
		msgHorizontalParabola: "Parabola con asse orizzontale: a = %s, b = %s, c = %s. Vertice in (%s, %s).",
		msgGuessCircle:        "Probabile circonferenza: i parametri sono indicativi.",
		msgGuessHyperbola:     "Probabile iperbole: i parametri sono indicativi.",
		msgGuessParabola:      "Probabile parabola: i parametri sono indicativi.",
		msgUnknown:            "Equazione non riconosciuta. Forme accettate: " + acceptedForms + ".",
	},
	types.LocaleEnglish: {
		msgCircle:             "Circle with center (%s, %s) and radius %s.",
		msgEllipse:            "Ellipse with center (%s, %s), semi-major axis %s and semi-minor axis %s.",
		msgHyperbola:          "Hyperbola with center (%s, %s), transverse semi-axis %s and conjugate semi-axis %s.",
		msgEquilateral:        "Rectangular hyperbola referred to its asymptotes, xy = %s.",
		msgParabola:           "Parabola with vertical axis: a = %s, b = %s, c = %s. Vertex at (%s, %s).",
		msgHorizontalParabola: "Parabola with horizontal axis: a = %s, b = %s, c = %s. Vertex at (%s, %s).",
		msgGuessCircle:        "Probable circle: the parameters are indicative only.",
		msgGuessHyperbola:     "Probable hyperbola: the parameters are indicative only.",
		msgGuessParabola:      "Probable parabola: the parameters are indicative only.",
		msgUnknown:            "Equation not recognized. Accepted forms: " + acceptedForms + ".",
	},
}

// explain formats m in loc, falling back to Italian for unknown locales.
func explain(loc types.Locale, m message, args ...any) string {
	texts, ok := catalog[loc]
	if !ok {
		texts = catalog[types.LocaleItalian]
	}
	return fmt.Sprintf(texts[m], args...)
}
