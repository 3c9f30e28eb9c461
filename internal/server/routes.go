// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/pdiddy/conic-engine/internal/history"
	"github.com/pdiddy/conic-engine/internal/httputil"
	"github.com/pdiddy/conic-engine/pkg/types"
)

const maxBodyBytes = 64 << 10

// Error messages returned to the web client.
const (
	errMissingEquation = "Equazione non fornita"
	errInvalidBody     = "Corpo della richiesta non valido"
)

func (s *Server) registerRoutes(mux *http.ServeMux) {
	mux.HandleFunc("GET /health", s.handleHealth)
	mux.HandleFunc("POST /api/parse-conic", s.handleParseConic)
	if s.history != nil {
		mux.HandleFunc("GET /api/history", s.handleHistoryList)
		mux.HandleFunc("GET /api/history/{id}", s.handleHistoryGet)
	}
}

// HealthResponse is the body of GET /health.
type HealthResponse struct {
	Status  string `json:"status"`
	AI      bool   `json:"ai"`
	History bool   `json:"history"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	resp := HealthResponse{Status: "ok", History: s.history != nil}
	if b, ok := s.analyzer.(interface{ HasBackend() bool }); ok {
		resp.AI = b.HasBackend()
	}
	httputil.WriteJSON(w, http.StatusOK, resp)
}

// handleParseConic accepts {"equation": "..."} and answers with a ConicResult.
// A missing, empty or non-string equation is a 400.
func (s *Server) handleParseConic(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)

	var body map[string]json.RawMessage
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		httputil.WriteError(w, http.StatusBadRequest, errInvalidBody)
		return
	}
	var equation string
	raw, ok := body["equation"]
	if !ok || json.Unmarshal(raw, &equation) != nil || equation == "" {
		httputil.WriteError(w, http.StatusBadRequest, errMissingEquation)
		return
	}

	res := s.analyzer.Analyze(r.Context(), equation)

	if s.history != nil {
		if _, err := s.history.Record(r.Context(), equation, res); err != nil {
			s.logger.Warn("recording analysis failed", "error", err, "request_id", httputil.RequestID(r.Context()))
		}
	}
	httputil.WriteJSON(w, http.StatusOK, res)
}

func (s *Server) handleHistoryList(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	opts := history.QueryOptions{
		Query:  q.Get("q"),
		Type:   types.ConicType(q.Get("type")),
		Source: types.Source(q.Get("source")),
	}
	if v := q.Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			httputil.WriteError(w, http.StatusBadRequest, "limit must be a non-negative integer")
			return
		}
		opts.MaxResults = n
	}
	if v := q.Get("min_confidence"); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			httputil.WriteError(w, http.StatusBadRequest, "min_confidence must be a number")
			return
		}
		opts.MinConfidence = f
	}

	entries, err := s.history.List(r.Context(), opts)
	if err != nil {
		s.logger.Error("listing history failed", "error", err)
		httputil.WriteError(w, http.StatusInternalServerError, "history unavailable")
		return
	}
	if entries == nil {
		entries = []history.Entry{}
	}
	httputil.WriteJSON(w, http.StatusOK, entries)
}

func (s *Server) handleHistoryGet(w http.ResponseWriter, r *http.Request) {
	e, err := s.history.Get(r.Context(), r.PathValue("id"))
	switch {
	case errors.Is(err, history.ErrNotFound):
		httputil.WriteError(w, http.StatusNotFound, err.Error())
	case err != nil:
		s.logger.Error("reading history failed", "error", err)
		httputil.WriteError(w, http.StatusInternalServerError, "history unavailable")
	default:
		httputil.WriteJSON(w, http.StatusOK, e)
	}
}
