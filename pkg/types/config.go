// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "time"

// Locale selects the language of explanations and display labels.
type Locale string

const (
	LocaleItalian Locale = "it"
	LocaleEnglish Locale = "en"
)

// ClassifierConfig holds settings for the deterministic cascade.
type ClassifierConfig struct {
	// Locale selects the explanation language (default "it").
	Locale Locale `json:"locale" yaml:"locale"`

	// GraphingPoints enables sampling the curve into ConicResult.GraphingPoints.
	GraphingPoints bool `json:"graphing_points" yaml:"graphing_points"`
}

// AIConfig holds settings for the optional language-model collaborator.
type AIConfig struct {
	// Enabled turns the AI path on. With no API key it stays off regardless.
	Enabled bool `json:"enabled" yaml:"enabled"`

	// Model is the chat model identifier (default "gpt-4o").
	Model string `json:"model" yaml:"model"`

	// APIKey is the authentication key for the OpenAI API.
	APIKey string `json:"api_key,omitempty" yaml:"api_key,omitempty"`

	// BaseURL overrides the API endpoint (tests, proxies).
	BaseURL string `json:"base_url,omitempty" yaml:"base_url,omitempty"`

	// MaxRetries is the number of attempts after the first failure (default 3).
	MaxRetries int `json:"max_retries" yaml:"max_retries"`

	// Timeout bounds the whole AI call including retries (default 20s).
	Timeout time.Duration `json:"timeout" yaml:"timeout"`
}

// HistoryConfig holds settings for the analysis log.
type HistoryConfig struct {
	// Enabled records every analysis served by the CLI or HTTP surface.
	Enabled bool `json:"enabled" yaml:"enabled"`

	// Dir is the directory holding history.db and exports (default "data").
	Dir string `json:"dir" yaml:"dir"`

	// MaxResults is the default number of rows returned by List (default 20).
	MaxResults int `json:"max_results" yaml:"max_results"`
}

// ServerConfig holds settings for the HTTP surface.
type ServerConfig struct {
	Host         string        `json:"host" yaml:"host"`
	Port         string        `json:"port" yaml:"port"`
	ReadTimeout  time.Duration `json:"read_timeout" yaml:"read_timeout"`
	WriteTimeout time.Duration `json:"write_timeout" yaml:"write_timeout"`
}

// BatchConfig holds settings for YAML batch classification.
type BatchConfig struct {
	// Workers bounds the number of equations classified in parallel (default 4).
	Workers int `json:"workers" yaml:"workers"`
}

// EngineConfig groups all configuration sections.
type EngineConfig struct {
	Classifier ClassifierConfig `json:"classifier" yaml:"classifier"`
	AI         AIConfig         `json:"ai" yaml:"ai"`
	History    HistoryConfig    `json:"history" yaml:"history"`
	Server     ServerConfig     `json:"server" yaml:"server"`
	Batch      BatchConfig      `json:"batch" yaml:"batch"`
}
