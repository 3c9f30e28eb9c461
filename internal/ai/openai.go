// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package ai

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	openai "github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"

	"github.com/pdiddy/conic-engine/pkg/types"
)

// DefaultModel is used when AIConfig.Model is empty.
const DefaultModel = string(openai.ChatModelGPT4o)

// OpenAIBackend asks an OpenAI chat model for a structured conic analysis.
type OpenAIBackend struct {
	client openai.Client
	model  string
}

// NewOpenAIBackend builds a backend from cfg. SDK-level retries are disabled
// because the Analyzer owns the retry policy. A nil httpClient uses the SDK
// default transport.
func NewOpenAIBackend(cfg types.AIConfig, httpClient *http.Client) *OpenAIBackend {
	model := cfg.Model
	if model == "" {
		model = DefaultModel
	}

	opts := []option.RequestOption{
		option.WithAPIKey(cfg.APIKey),
		option.WithMaxRetries(0),
	}
	if httpClient != nil {
		opts = append(opts, option.WithHTTPClient(httpClient))
	}
	if cfg.BaseURL != "" {
		opts = append(opts, option.WithBaseURL(cfg.BaseURL))
	}

	return &OpenAIBackend{
		client: openai.NewClient(opts...),
		model:  model,
	}
}

// Model returns the chat model identifier in use.
func (b *OpenAIBackend) Model() string {
	return b.model
}

// Analyze sends one equation to the chat completions endpoint with the conic
// schema as response format and returns the JSON document it produced.
func (b *OpenAIBackend) Analyze(ctx context.Context, req Request) (json.RawMessage, error) {
	prompt, err := renderPrompt(req)
	if err != nil {
		return nil, fmt.Errorf("rendering prompt: %w", err)
	}

	resp, err := b.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model: openai.ChatModel(b.model),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.UserMessage(prompt),
		},
		Temperature: openai.Float(0),
		ResponseFormat: openai.ChatCompletionNewParamsResponseFormatUnion{
			OfJSONSchema: &openai.ResponseFormatJSONSchemaParam{
				JSONSchema: openai.ResponseFormatJSONSchemaJSONSchemaParam{
					Name:        "conic_analysis",
					Description: openai.String("Classification and geometric parameters of a conic section"),
					Schema:      conicSchemaDoc,
				},
			},
		},
	})
	if err != nil {
		return nil, mapOpenAIError(err)
	}
	if len(resp.Choices) == 0 || strings.TrimSpace(resp.Choices[0].Message.Content) == "" {
		return nil, ErrEmptyResponse
	}
	return parseStructuredJSON(resp.Choices[0].Message.Content)
}

// mapOpenAIError marks client errors that a retry cannot fix with ErrRejected.
func mapOpenAIError(err error) error {
	var apiErr *openai.Error
	if !errors.As(err, &apiErr) {
		return fmt.Errorf("calling OpenAI: %w", err)
	}
	msg := fmt.Sprintf("OpenAI error (status %d)", apiErr.StatusCode)
	if apiErr.Message != "" {
		msg += ": " + apiErr.Message
	}
	switch apiErr.StatusCode {
	case http.StatusBadRequest, http.StatusUnauthorized, http.StatusForbidden, http.StatusNotFound:
		return fmt.Errorf("%w: %s", ErrRejected, msg)
	}
	return errors.New(msg)
}
