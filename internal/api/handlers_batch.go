package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"sort"
	"time"

	"github.com/dgallion1/richdoc/internal/parser"
	"github.com/dgallion1/richdoc/internal/render"
	"github.com/go-chi/chi/v5/middleware"
)

type batchRequest struct {
	Fields  map[string]json.RawMessage `json:"fields"`
	Policy  string                     `json:"policy"`
	Trusted []string                   `json:"trusted"`
}

type batchResult struct {
	name string
	doc  render.Document
	dur  time.Duration
}

// handleRenderBatch renders every field of a page in one request. Fields
// named in "trusted" are treated as editor-authored markup; all others are
// structured content.
func (s *Server) handleRenderBatch(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, s.cfg.MaxBodyBytes)
	var req batchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			jsonError(w, fmt.Sprintf("body exceeds max size (%d bytes)", s.cfg.MaxBodyBytes), http.StatusRequestEntityTooLarge)
			return
		}
		jsonError(w, "invalid request body: "+err.Error(), http.StatusBadRequest)
		return
	}
	if len(req.Fields) == 0 {
		jsonError(w, "fields is required", http.StatusBadRequest)
		return
	}
	if len(req.Fields) > s.cfg.MaxBatchSize {
		jsonError(w, fmt.Sprintf("too many fields (max %d)", s.cfg.MaxBatchSize), http.StatusBadRequest)
		return
	}
	policy, err := s.resolvePolicy(req.Policy)
	if err != nil {
		policyError(w, err)
		return
	}

	trusted := make(map[string]render.TrustedHTML, len(req.Trusted))
	for _, name := range req.Trusted {
		raw, ok := req.Fields[name]
		if !ok {
			jsonError(w, "trusted field not present: "+name, http.StatusBadRequest)
			return
		}
		var v any
		if err := json.Unmarshal(raw, &v); err != nil {
			jsonError(w, "invalid trusted field "+name+": "+err.Error(), http.StatusBadRequest)
			return
		}
		markup, ok := render.TrustedFromField(v)
		if !ok {
			jsonError(w, "trusted field must be a string or {\"html\": ...}: "+name, http.StatusBadRequest)
			return
		}
		trusted[name] = markup
	}

	names := make([]string, 0, len(req.Fields))
	for name := range req.Fields {
		names = append(names, name)
	}
	sort.Strings(names)

	ctx := render.NewContext(policy)
	workers := max(s.cfg.BatchWorkers, 1)
	results := make(chan batchResult, len(names))
	sem := make(chan struct{}, workers)

	for _, name := range names {
		sem <- struct{}{}
		go func(name string) {
			defer func() { <-sem }()
			start := time.Now()
			var doc render.Document
			if markup, ok := trusted[name]; ok {
				doc = render.BuildTrusted(markup)
			} else {
				doc = render.BuildSequence(parser.Normalize(req.Fields[name]), ctx)
			}
			results <- batchResult{name: name, doc: doc, dur: time.Since(start)}
		}(name)
	}

	docs := make(map[string]render.Document, len(names))
	var total render.Stats
	var elapsed time.Duration
	for range names {
		res := <-results
		docs[res.name] = res.doc
		total.Add(res.doc.Stats)
		elapsed += res.dur
		if s.stats != nil {
			format := "json"
			if res.doc.Trusted {
				format = "trusted"
			}
			s.stats.Record(res.dur, format, res.doc.Stats)
		}
	}

	attrs := []any{
		"fields", len(names),
		"trusted", len(trusted),
		"policy", string(policy),
		"nodes", total.Nodes,
		"unknown_nodes", total.Unknown,
		"truncated_nodes", total.Truncated,
		"duration_us", elapsed.Microseconds(),
		"request_id", middleware.GetReqID(r.Context()),
	}
	if total.Truncated > 0 {
		s.log.Warn("batch exceeded depth bound", attrs...)
	} else {
		s.log.Info("batch rendered", attrs...)
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"fields": docs,
		"stats":  total,
	})
}
