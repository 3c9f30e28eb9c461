// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package ai

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/santhosh-tekuri/jsonschema/v5"

	"github.com/pdiddy/conic-engine/pkg/types"
)

const schemaURL = "conic.schema.json"

//go:embed conic.schema.json
var conicSchemaJSON []byte

var (
	conicSchema    = compileSchema(conicSchemaJSON)
	conicSchemaDoc = decodeSchema(conicSchemaJSON)
)

func compileSchema(raw []byte) *jsonschema.Schema {
	c := jsonschema.NewCompiler()
	if err := c.AddResource(schemaURL, bytes.NewReader(raw)); err != nil {
		panic(fmt.Sprintf("loading %s: %v", schemaURL, err))
	}
	return c.MustCompile(schemaURL)
}

// decodeSchema returns the schema as a generic document for the
// response_format field of a chat completion request.
func decodeSchema(raw []byte) map[string]any {
	var doc map[string]any
	if err := json.Unmarshal(raw, &doc); err != nil {
		panic(fmt.Sprintf("decoding %s: %v", schemaURL, err))
	}
	return doc
}

// Validate checks a model response against the conic schema and decodes it.
// Every failure wraps ErrSchemaMismatch.
func Validate(raw json.RawMessage) (types.ConicResult, error) {
	var doc any
	if err := json.Unmarshal(raw, &doc); err != nil {
		return types.ConicResult{}, fmt.Errorf("%w: %v", ErrSchemaMismatch, err)
	}
	if err := conicSchema.Validate(doc); err != nil {
		return types.ConicResult{}, fmt.Errorf("%w: %v", ErrSchemaMismatch, err)
	}

	var res types.ConicResult
	if err := json.Unmarshal(raw, &res); err != nil {
		return types.ConicResult{}, fmt.Errorf("%w: %v", ErrSchemaMismatch, err)
	}
	res.Source = types.SourceAI
	res.Strategy = ""
	return res, nil
}

// parseStructuredJSON recovers a JSON document from model output that may be
// wrapped in markdown code fences or surrounded by prose.
func parseStructuredJSON(content string) (json.RawMessage, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, ErrEmptyResponse
	}

	candidates := []string{content}
	if stripped := stripCodeFences(content); stripped != "" && stripped != content {
		candidates = append(candidates, stripped)
	}
	if extracted := extractJSONObject(content); extracted != "" && extracted != content {
		candidates = append(candidates, extracted)
	}

	for _, candidate := range candidates {
		var parsed any
		if err := json.Unmarshal([]byte(candidate), &parsed); err != nil {
			continue
		}
		normalized, err := json.Marshal(parsed)
		if err != nil {
			return nil, fmt.Errorf("normalizing structured output: %w", err)
		}
		return normalized, nil
	}
	return nil, fmt.Errorf("%w: no JSON object in model output", ErrSchemaMismatch)
}

func stripCodeFences(content string) string {
	if !strings.HasPrefix(content, "```") {
		return ""
	}
	lines := strings.Split(content, "\n")
	if len(lines) < 2 {
		return ""
	}
	lines = lines[1:]
	if strings.TrimSpace(lines[len(lines)-1]) == "```" {
		lines = lines[:len(lines)-1]
	}
	return strings.TrimSpace(strings.Join(lines, "\n"))
}

func extractJSONObject(content string) string {
	start := strings.Index(content, "{")
	end := strings.LastIndex(content, "}")
	if start < 0 || end < start {
		return ""
	}
	return content[start : end+1]
}
