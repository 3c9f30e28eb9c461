// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package secrets loads credentials from a directory of plain-text files.
// The filename is the key name and the trimmed file contents are the value.
//
// Known key files: openai-api-key.
package secrets

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
)

// DefaultDir is the secrets directory relative to the working directory.
const DefaultDir = ".secrets"

// OpenAIKeyFile names the file holding the OpenAI API key.
const OpenAIKeyFile = "openai-api-key"

// OpenAIKeyEnv is the environment variable consulted last for the key.
const OpenAIKeyEnv = "OPENAI_API_KEY"

// Set is a loaded secrets directory.
type Set map[string]string

// Load reads every regular, non-hidden file in dir. A missing directory
// yields an empty Set. Unreadable files are logged and skipped.
func Load(dir string) (Set, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return Set{}, nil
		}
		return nil, fmt.Errorf("reading secrets directory %s: %w", dir, err)
	}

	set := make(Set)
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || strings.HasPrefix(name, ".") {
			continue
		}
		data, err := os.ReadFile(filepath.Join(dir, name))
		if err != nil {
			slog.Warn("could not read secret", "name", name, "error", err)
			continue
		}
		if value := strings.TrimSpace(string(data)); value != "" {
			set[name] = value
		}
	}
	return set, nil
}

// Names returns the loaded key names without their values.
func (s Set) Names() []string {
	names := make([]string, 0, len(s))
	for k := range s {
		names = append(names, k)
	}
	return names
}

// OpenAIKey resolves the API key: explicit (flag or config) first, then the
// openai-api-key file, then $OPENAI_API_KEY. The empty string means no key.
func (s Set) OpenAIKey(explicit string) string {
	if explicit != "" {
		return explicit
	}
	if v := s[OpenAIKeyFile]; v != "" {
		return v
	}
	return strings.TrimSpace(os.Getenv(OpenAIKeyEnv))
}
