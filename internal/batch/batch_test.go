// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package batch

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/conic-engine/internal/ai"
	"github.com/pdiddy/conic-engine/internal/cascade"
	"github.com/pdiddy/conic-engine/pkg/types"
)

func TestRead(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    []string
		wantErr error
	}{
		{
			name:  "bare sequence",
			input: "- x^2 + y^2 = 25\n- y = x^2\n",
			want:  []string{"x^2 + y^2 = 25", "y = x^2"},
		},
		{
			name:  "equations key",
			input: "equations:\n  - xy = 4\n  - \"x^2/16 - y^2/9 = 1\"\n",
			want:  []string{"xy = 4", "x^2/16 - y^2/9 = 1"},
		},
		{
			name:  "blank entries dropped",
			input: "- \"  \"\n- y = x^2\n- \"\"\n",
			want:  []string{"y = x^2"},
		},
		{
			name:    "empty document",
			input:   "",
			wantErr: ErrNoEquations,
		},
		{
			name:    "empty equations key",
			input:   "equations: []\n",
			wantErr: ErrNoEquations,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Read(strings.NewReader(tt.input))
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestReadMalformed(t *testing.T) {
	_, err := Read(strings.NewReader("equations: [unclosed"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parsing batch input")
}

func TestReadFileMissing(t *testing.T) {
	_, err := ReadFile(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func cascadeAnalyzer() Analyzer {
	return ai.NewAnalyzer(nil, cascade.New(types.ClassifierConfig{}), types.AIConfig{}, types.ClassifierConfig{})
}

func TestRunPreservesOrder(t *testing.T) {
	equations := []string{
		"x^2 + y^2 = 25",
		"y = x^2",
		"x^2/16 - y^2/9 = 1",
		"x^2/25 + y^2/9 = 1",
		"hello",
	}
	r := NewRunner(cascadeAnalyzer(), types.BatchConfig{Workers: 2}, nil)
	out, err := r.Run(context.Background(), equations)
	require.NoError(t, err)

	require.Len(t, out.Items, len(equations))
	for i, eq := range equations {
		assert.Equal(t, eq, out.Items[i].Equation)
	}
	assert.Equal(t, types.ConicCircle, out.Items[0].Result.Type)
	assert.Equal(t, types.ConicParabola, out.Items[1].Result.Type)
	assert.Equal(t, types.ConicHyperbola, out.Items[2].Result.Type)
	assert.Equal(t, types.ConicEllipse, out.Items[3].Result.Type)
	assert.Equal(t, types.ConicUnknown, out.Items[4].Result.Type)

	assert.Equal(t, 5, out.Summary.Total)
	assert.Equal(t, 1, out.Summary.ByType[types.ConicCircle])
	assert.Zero(t, out.Summary.AIResults)
}

type countingAnalyzer struct {
	active, peak atomic.Int32
}

func (c *countingAnalyzer) Analyze(_ context.Context, equation string) types.ConicResult {
	n := c.active.Add(1)
	for {
		p := c.peak.Load()
		if n <= p || c.peak.CompareAndSwap(p, n) {
			break
		}
	}
	time.Sleep(5 * time.Millisecond)
	c.active.Add(-1)
	return types.ConicResult{Type: types.ConicUnknown, Explanation: equation}
}

func TestRunBoundsWorkers(t *testing.T) {
	var equations []string
	for i := range 20 {
		equations = append(equations, fmt.Sprintf("x^2 + y^2 = %d", i+1))
	}
	a := &countingAnalyzer{}
	out, err := NewRunner(a, types.BatchConfig{Workers: 3}, nil).Run(context.Background(), equations)
	require.NoError(t, err)
	assert.Len(t, out.Items, 20)
	assert.LessOrEqual(t, a.peak.Load(), int32(3))
}

func TestRunCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := NewRunner(cascadeAnalyzer(), types.BatchConfig{}, nil).Run(ctx, []string{"y = x^2"})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestWriteFileRoundTrip(t *testing.T) {
	r := NewRunner(cascadeAnalyzer(), types.BatchConfig{}, nil)
	fixed := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	r.now = func() time.Time { return fixed }

	out, err := r.Run(context.Background(), []string{"x^2 + y^2 = 9", "xy = 4"})
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "results.yaml")
	require.NoError(t, WriteFile(path, out))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "equation: x^2 + y^2 = 9")
	assert.Contains(t, string(data), "circonferenza: 1")

	var got Output
	require.NoError(t, yaml.Unmarshal(data, &got))
	assert.Equal(t, 2, got.Summary.Total)
	assert.True(t, fixed.Equal(got.Summary.Timestamp))
	require.NotNil(t, got.Items[0].Result.Parameters.Radius)
	assert.InDelta(t, 3, *got.Items[0].Result.Parameters.Radius, 1e-9)
}

func TestWrite(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, Output{Items: []Item{}, Summary: Summary{Total: 0}}))
	assert.Contains(t, buf.String(), "total: 0")
}
