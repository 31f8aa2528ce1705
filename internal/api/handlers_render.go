package api

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/dgallion1/richdoc/internal/doctree"
	"github.com/dgallion1/richdoc/internal/output"
	"github.com/dgallion1/richdoc/internal/render"
	"github.com/go-chi/chi/v5/middleware"
)

// errDiagnosticDisabled is returned when a caller asks for the diagnostic
// policy on a deployment that does not allow it.
var errDiagnosticDisabled = errors.New("diagnostic policy is disabled on this deployment")

// resolvePolicy picks the Unknown Policy for a request: the explicit name if
// given, else the configured default.
func (s *Server) resolvePolicy(name string) (render.Policy, error) {
	if name == "" {
		return s.cfg.Policy(), nil
	}
	p, err := render.ParsePolicy(name)
	if err != nil {
		return "", err
	}
	if p == render.PolicyDiagnostic && !s.cfg.AllowDiagnostic {
		return "", errDiagnosticDisabled
	}
	return p, nil
}

func policyError(w http.ResponseWriter, err error) {
	if errors.Is(err, errDiagnosticDisabled) {
		jsonError(w, err.Error(), http.StatusForbidden)
		return
	}
	jsonError(w, err.Error(), http.StatusBadRequest)
}

// readDocument parses the request body with the parser for the "source"
// query parameter (json by default).
func (s *Server) readDocument(w http.ResponseWriter, r *http.Request) (doctree.Sequence, bool) {
	p, err := s.parsers.ForFormat(r.URL.Query().Get("source"))
	if err != nil {
		jsonError(w, err.Error(), http.StatusBadRequest)
		return nil, false
	}

	r.Body = http.MaxBytesReader(w, r.Body, s.cfg.MaxBodyBytes)
	seq, err := p.Parse(r.Body)
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			jsonError(w, fmt.Sprintf("body exceeds max size (%d bytes)", s.cfg.MaxBodyBytes), http.StatusRequestEntityTooLarge)
			return nil, false
		}
		jsonError(w, "invalid document: "+err.Error(), http.StatusBadRequest)
		return nil, false
	}
	return seq, true
}

func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	format := q.Get("format")
	writer, err := output.ForFormat(format)
	if err != nil {
		jsonError(w, err.Error(), http.StatusBadRequest)
		return
	}
	policy, err := s.resolvePolicy(q.Get("policy"))
	if err != nil {
		policyError(w, err)
		return
	}
	seq, ok := s.readDocument(w, r)
	if !ok {
		return
	}

	start := time.Now()
	doc := render.BuildSequence(seq, render.NewContext(policy))
	s.record(r, "render", format, policy, time.Since(start), doc.Stats)

	s.writeDocument(w, writer, doc)
}

func (s *Server) handleRenderTrusted(w http.ResponseWriter, r *http.Request) {
	writer, err := output.ForFormat(r.URL.Query().Get("format"))
	if err != nil {
		jsonError(w, err.Error(), http.StatusBadRequest)
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, s.cfg.MaxBodyBytes)
	var req map[string]any
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			jsonError(w, fmt.Sprintf("body exceeds max size (%d bytes)", s.cfg.MaxBodyBytes), http.StatusRequestEntityTooLarge)
			return
		}
		jsonError(w, "invalid request body: "+err.Error(), http.StatusBadRequest)
		return
	}
	markup, ok := render.TrustedFromField(req)
	if !ok {
		jsonError(w, "html is required", http.StatusBadRequest)
		return
	}

	start := time.Now()
	doc := render.BuildTrusted(markup)
	s.log.Info("trusted markup rendered",
		"bytes", len(markup),
		"request_id", middleware.GetReqID(r.Context()),
	)
	if s.stats != nil {
		s.stats.Record(time.Since(start), "trusted", doc.Stats)
	}

	s.writeDocument(w, writer, doc)
}

func (s *Server) handleSummary(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	policy, err := s.resolvePolicy(q.Get("policy"))
	if err != nil {
		policyError(w, err)
		return
	}
	maxRunes := s.cfg.SummaryMaxRunes
	if v := q.Get("max"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			jsonError(w, "max must be a non-negative integer", http.StatusBadRequest)
			return
		}
		maxRunes = n
	}
	seq, ok := s.readDocument(w, r)
	if !ok {
		return
	}

	start := time.Now()
	doc := render.BuildSequence(seq, render.NewContext(policy))
	s.record(r, "summary", "summary", policy, time.Since(start), doc.Stats)

	writeJSON(w, http.StatusOK, map[string]any{
		"summary": render.Excerpt(doc.Summary, maxRunes),
	})
}

// writeDocument buffers the whole output so a writer failure can still be
// reported with a proper status.
func (s *Server) writeDocument(w http.ResponseWriter, writer output.Writer, doc render.Document) {
	var buf bytes.Buffer
	if err := writer.Write(&buf, doc); err != nil {
		s.log.Error("write output failed", "error", err)
		jsonError(w, "failed to write output", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", writer.ContentType())
	switch writer.(type) {
	case *output.DOCXWriter, *output.PDFWriter:
		w.Header().Set("Content-Disposition", `attachment; filename="document`+writer.Extension()+`"`)
	}
	w.Header().Set("Content-Length", strconv.Itoa(buf.Len()))
	w.WriteHeader(http.StatusOK)
	w.Write(buf.Bytes())
}

// record feeds the rolling stats and logs render counts. Truncation means
// someone stored a pathological document, so it is logged at warn.
func (s *Server) record(r *http.Request, op, format string, policy render.Policy, d time.Duration, st render.Stats) {
	if format == "" {
		format = "html"
	}
	if s.stats != nil {
		s.stats.Record(d, format, st)
	}

	attrs := []any{
		"op", op,
		"policy", string(policy),
		"nodes", st.Nodes,
		"unknown_nodes", st.Unknown,
		"truncated_nodes", st.Truncated,
		"duration_us", d.Microseconds(),
		"request_id", middleware.GetReqID(r.Context()),
	}
	if st.Truncated > 0 {
		s.log.Warn("document exceeded depth bound", attrs...)
		return
	}
	s.log.Debug("rendered", attrs...)
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(v)
}

func jsonError(w http.ResponseWriter, msg string, code int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(map[string]string{"error": msg})
}
