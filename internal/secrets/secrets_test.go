// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package secrets

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	tests := []struct {
		name  string
		setup func(t *testing.T) string
		want  Set
	}{
		{
			name: "reads key files and trims whitespace",
			setup: func(t *testing.T) string {
				dir := t.TempDir()
				writeFile(t, dir, OpenAIKeyFile, "  sk-abc123  \n")
				writeFile(t, dir, "other-key", "v2")
				return dir
			},
			want: Set{OpenAIKeyFile: "sk-abc123", "other-key": "v2"},
		},
		{
			name: "missing directory is empty",
			setup: func(t *testing.T) string {
				return filepath.Join(t.TempDir(), "does-not-exist")
			},
			want: Set{},
		},
		{
			name: "skips empty files, dotfiles and subdirectories",
			setup: func(t *testing.T) string {
				dir := t.TempDir()
				writeFile(t, dir, OpenAIKeyFile, "sk-real")
				writeFile(t, dir, "blank", "   \n\t ")
				writeFile(t, dir, ".gitkeep", "")
				writeFile(t, dir, ".hidden", "secret")
				require.NoError(t, os.Mkdir(filepath.Join(dir, "nested"), 0o755))
				return dir
			},
			want: Set{OpenAIKeyFile: "sk-real"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Load(tt.setup(t))
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestLoadNotADirectory(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "file", "x")
	_, err := Load(filepath.Join(dir, "file"))
	assert.Error(t, err)
}

func TestNames(t *testing.T) {
	names := Set{"a": "1", "b": "2"}.Names()
	assert.ElementsMatch(t, []string{"a", "b"}, names)
}

func TestOpenAIKey(t *testing.T) {
	t.Setenv(OpenAIKeyEnv, "sk-env")

	set := Set{OpenAIKeyFile: "sk-file"}
	assert.Equal(t, "sk-flag", set.OpenAIKey("sk-flag"))
	assert.Equal(t, "sk-file", set.OpenAIKey(""))
	assert.Equal(t, "sk-env", Set{}.OpenAIKey(""))

	t.Setenv(OpenAIKeyEnv, "")
	assert.Empty(t, Set{}.OpenAIKey(""))
}

func writeFile(t *testing.T, dir, name, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
}
