// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package server

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/conic-engine/internal/ai"
	"github.com/pdiddy/conic-engine/internal/cascade"
	"github.com/pdiddy/conic-engine/internal/history"
	"github.com/pdiddy/conic-engine/internal/httputil"
	"github.com/pdiddy/conic-engine/pkg/types"
)

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func cascadeAnalyzer() *ai.Analyzer {
	return ai.NewAnalyzer(nil, cascade.New(types.ClassifierConfig{}), types.AIConfig{}, types.ClassifierConfig{})
}

func testServer(t *testing.T, store *history.Store) *httptest.Server {
	t.Helper()
	s, err := New(Config{Analyzer: cascadeAnalyzer(), History: store, Logger: quietLogger()})
	require.NoError(t, err)
	ts := httptest.NewServer(s.Handler())
	t.Cleanup(ts.Close)
	return ts
}

func postEquation(t *testing.T, url, body string) *http.Response {
	t.Helper()
	resp, err := http.Post(url+"/api/parse-conic", "application/json", strings.NewReader(body))
	require.NoError(t, err)
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func TestNewRequiresAnalyzer(t *testing.T) {
	_, err := New(Config{})
	assert.Error(t, err)
}

func TestNewDefaults(t *testing.T) {
	s, err := New(Config{Analyzer: cascadeAnalyzer()})
	require.NoError(t, err)
	assert.Equal(t, "127.0.0.1:8080", s.Addr())
}

func TestHealth(t *testing.T) {
	ts := testServer(t, nil)
	resp, err := http.Get(ts.URL + "/health")
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.NotEmpty(t, resp.Header.Get(httputil.RequestIDHeader))
	var got HealthResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&got))
	assert.Equal(t, HealthResponse{Status: "ok"}, got)
}

func TestParseConic(t *testing.T) {
	ts := testServer(t, nil)
	resp := postEquation(t, ts.URL, `{"equation": "x^2 + y^2 = 25"}`)

	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/json", resp.Header.Get("Content-Type"))

	var res types.ConicResult
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&res))
	assert.Equal(t, types.ConicCircle, res.Type)
	assert.InDelta(t, 0.9, res.Confidence, 1e-9)
	require.NotNil(t, res.Parameters.Radius)
	assert.InDelta(t, 5, *res.Parameters.Radius, 1e-9)
}

func TestParseConicUnknownIsNotAnError(t *testing.T) {
	ts := testServer(t, nil)
	resp := postEquation(t, ts.URL, `{"equation": "banana"}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var res types.ConicResult
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&res))
	assert.Equal(t, types.ConicUnknown, res.Type)
	assert.InDelta(t, 0.3, res.Confidence, 1e-9)
}

func TestParseConicBadRequest(t *testing.T) {
	tests := []struct {
		name string
		body string
		want string
	}{
		{"missing equation", `{}`, errMissingEquation},
		{"empty equation", `{"equation": ""}`, errMissingEquation},
		{"number equation", `{"equation": 42}`, errMissingEquation},
		{"null equation", `{"equation": null}`, errMissingEquation},
		{"not JSON", `equation=x^2`, errInvalidBody},
		{"array body", `["x^2+y^2=1"]`, errInvalidBody},
	}

	ts := testServer(t, nil)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := postEquation(t, ts.URL, tt.body)
			assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
			var got httputil.ErrorResponse
			require.NoError(t, json.NewDecoder(resp.Body).Decode(&got))
			assert.Equal(t, tt.want, got.Error)
		})
	}
}

func TestParseConicBodyTooLarge(t *testing.T) {
	ts := testServer(t, nil)
	big := `{"equation": "` + strings.Repeat("x", maxBodyBytes+1) + `"}`
	resp := postEquation(t, ts.URL, big)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestParseConicWrongMethod(t *testing.T) {
	ts := testServer(t, nil)
	resp, err := http.Get(ts.URL + "/api/parse-conic")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusMethodNotAllowed, resp.StatusCode)
}

func TestHistoryRoutesDisabledWithoutStore(t *testing.T) {
	ts := testServer(t, nil)
	resp, err := http.Get(ts.URL + "/api/history")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestHistoryRoundTrip(t *testing.T) {
	store, err := history.NewStore(types.HistoryConfig{Dir: t.TempDir()})
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })

	ts := testServer(t, store)
	postEquation(t, ts.URL, `{"equation": "x^2 + y^2 = 25"}`)
	postEquation(t, ts.URL, `{"equation": "y = x^2"}`)

	resp, err := http.Get(ts.URL + "/api/history?type=parabola")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var entries []history.Entry
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&entries))
	require.Len(t, entries, 1)
	assert.Equal(t, "y = x^2", entries[0].Equation)

	one, err := http.Get(ts.URL + "/api/history/" + entries[0].ID)
	require.NoError(t, err)
	defer one.Body.Close()
	assert.Equal(t, http.StatusOK, one.StatusCode)

	missing, err := http.Get(ts.URL + "/api/history/nope")
	require.NoError(t, err)
	defer missing.Body.Close()
	assert.Equal(t, http.StatusNotFound, missing.StatusCode)

	bad, err := http.Get(ts.URL + "/api/history?limit=abc")
	require.NoError(t, err)
	defer bad.Body.Close()
	assert.Equal(t, http.StatusBadRequest, bad.StatusCode)
}

type panicAnalyzer struct{}

func (panicAnalyzer) Analyze(context.Context, string) types.ConicResult { panic("boom") }

func TestParseConicPanicIs500(t *testing.T) {
	var logs bytes.Buffer
	s, err := New(Config{Analyzer: panicAnalyzer{}, Logger: slog.New(slog.NewTextHandler(&logs, nil))})
	require.NoError(t, err)
	ts := httptest.NewServer(s.Handler())
	defer ts.Close()

	resp := postEquation(t, ts.URL, `{"equation": "x"}`)
	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
	assert.Contains(t, logs.String(), "handler panic")
}

func TestStartAndShutdown(t *testing.T) {
	l, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	port := l.Addr().(*net.TCPAddr).Port
	require.NoError(t, l.Close())

	s, err := New(Config{
		Server:   types.ServerConfig{Port: strconv.Itoa(port)},
		Analyzer: cascadeAnalyzer(),
		Logger:   quietLogger(),
	})
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- s.Start(ctx) }()

	require.Eventually(t, func() bool {
		resp, err := http.Get("http://" + s.Addr() + "/health")
		if err != nil {
			return false
		}
		resp.Body.Close()
		return resp.StatusCode == http.StatusOK
	}, 2*time.Second, 20*time.Millisecond)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not stop")
	}
}
