// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package ai

import (
	"bytes"
	"text/template"

	"github.com/pdiddy/conic-engine/pkg/types"
)

// analysisPromptTmpl asks the model for the same classification the cascade
// performs, in the shape of conic.schema.json.
var analysisPromptTmpl = template.Must(template.New("analysis").Parse(`Analyze the following equation and determine which conic section it represents.
Carry out every algebraic step needed, combining like terms correctly.

Equation: "{{.Equation}}"

You must:
1. Combine all like terms (every x² term, every x term, and so on). For example "2x² + 3x² - x²" is "4x²".
2. Identify the conic using exactly one of these labels: "parabola", "circonferenza", "ellisse", "iperbole", or "unknown" when the equation is not a conic.
3. Rewrite the equation in standard form.
4. Extract the geometric parameters that apply:
   - circonferenza: center, radius
   - ellisse: center, semiMajorAxis, semiMinorAxis, focus1, focus2, eccentricity
   - parabola: vertex, focus1, directrix, coefficients a, b, c
   - iperbole: center, semiMajorAxis (transverse), semiMinorAxis, focus1, focus2, eccentricity, asymptotes
5. Write the explanation, including the algebraic steps, in {{.Language}}.
{{- if .GraphingPoints}}
6. List a few points on the curve in graphingPoints.
{{- end}}

Forms you must recognise include:
- circonferenza: x² + y² = r², (x-h)² + (y-k)² = r², x² + y² + Dx + Ey + F = 0
- ellisse: x²/a² + y²/b² = 1, (x-h)²/a² + (y-k)²/b² = 1
- parabola: y = ax² + bx + c, x = ay² + by + c, y² = 4px, x² = 4py
- iperbole: x²/a² - y²/b² = 1, y²/a² - x²/b² = 1, xy = k

Omit parameters that do not apply to the type; never report them as zero.
Give a confidence between 0 and 1. Respond with the JSON object only.
`))

var languages = map[types.Locale]string{
	types.LocaleItalian: "Italian",
	types.LocaleEnglish: "English",
}

// renderPrompt executes the analysis template for req.
func renderPrompt(req Request) (string, error) {
	lang, ok := languages[req.Locale]
	if !ok {
		lang = languages[types.LocaleItalian]
	}
	var buf bytes.Buffer
	err := analysisPromptTmpl.Execute(&buf, struct {
		Equation       string
		Language       string
		GraphingPoints bool
	}{req.Equation, lang, req.GraphingPoints})
	if err != nil {
		return "", err
	}
	return buf.String(), nil
}
