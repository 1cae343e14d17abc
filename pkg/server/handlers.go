package server

import (
	"encoding/json"
	stderrors "errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/zsketch/zsketch/pkg/errors"
	"github.com/zsketch/zsketch/pkg/notation"
	"github.com/zsketch/zsketch/pkg/pipeline"
	"github.com/zsketch/zsketch/pkg/store"
)

// contentTypes maps output formats to their MIME types.
var contentTypes = map[string]string{
	pipeline.FormatSVG:  "image/svg+xml",
	pipeline.FormatPNG:  "image/png",
	pipeline.FormatPDF:  "application/pdf",
	pipeline.FormatJSON: "application/json",
	pipeline.FormatDOT:  "text/vnd.graphviz",
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// renderResponse is the JSON envelope for POST render requests.
// Artifact bytes are base64-encoded by encoding/json.
type renderResponse struct {
	RunID     string             `json:"run_id"`
	Kind      string             `json:"kind"`
	Warnings  []string           `json:"warnings,omitempty"`
	Artifacts map[string][]byte  `json:"artifacts"`
	Cache     pipeline.CacheInfo `json:"cache"`
}

func (s *Server) handleRenderGet(kind string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		opts, format, err := optionsFromQuery(r, kind)
		if err != nil {
			writeError(w, err)
			return
		}

		result, err := s.cfg.Runner.Execute(r.Context(), opts)
		if err != nil {
			writeError(w, err)
			return
		}

		w.Header().Set("Content-Type", contentTypes[format])
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write(result.Artifacts[format])
	}
}

func (s *Server) handleRenderPost(kind string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var opts pipeline.Options
		if err := json.NewDecoder(r.Body).Decode(&opts); err != nil {
			writeError(w, errors.New(errors.ErrCodeInvalidExpression, "invalid request body: %v", err))
			return
		}
		opts.Kind = kind

		result, err := s.cfg.Runner.Execute(r.Context(), opts)
		if err != nil {
			writeError(w, err)
			return
		}

		resp := renderResponse{
			RunID:     result.RunID,
			Kind:      kind,
			Artifacts: result.Artifacts,
			Cache:     result.CacheInfo,
		}
		for _, warning := range result.Warnings {
			resp.Warnings = append(resp.Warnings, warning.String())
		}
		writeJSON(w, http.StatusOK, resp)
	}
}

// optionsFromQuery builds pipeline options from GET query parameters.
// Returns the single requested format alongside the options.
func optionsFromQuery(r *http.Request, kind string) (pipeline.Options, string, error) {
	q := r.URL.Query()

	opts := pipeline.Options{
		Expression: q.Get("expression"),
		Kind:       kind,
		Direction:  q.Get("direction"),
		Title:      q.Get("title"),
	}

	format := q.Get("format")
	if format == "" {
		format = pipeline.FormatSVG
	}
	opts.Formats = []string{format}

	for key, dst := range map[string]*float64{
		"spacing":    &opts.Spacing,
		"scale":      &opts.Scale,
		"freq_start": &opts.FreqStart,
		"freq_end":   &opts.FreqEnd,
	} {
		if v := q.Get(key); v != "" {
			f, err := strconv.ParseFloat(v, 64)
			if err != nil {
				return opts, format, errors.New(errors.ErrCodeInvalidExpression, "invalid %s: %q", key, v)
			}
			*dst = f
		}
	}

	if v := q.Get("freq_points"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return opts, format, errors.New(errors.ErrCodeInvalidFrequency, "invalid freq_points: %q", v)
		}
		opts.FreqPoints = n
	}

	if v := q.Get("params"); v != "" {
		for _, part := range strings.Split(v, ",") {
			f, err := strconv.ParseFloat(strings.TrimSpace(part), 64)
			if err != nil {
				return opts, format, errors.New(errors.ErrCodeInvalidModel, "invalid params value: %q", part)
			}
			opts.Parameters = append(opts.Parameters, f)
		}
	}

	return opts, format, nil
}

// circuitRequest is the JSON body for creating or updating a saved circuit.
type circuitRequest struct {
	Title      string      `json:"title,omitempty"`
	Expression string      `json:"expression"`
	Parameters []float64   `json:"parameters,omitempty"`
	Sweep      store.Sweep `json:"sweep,omitempty"`
}

func (c circuitRequest) validate() error {
	if err := errors.ValidateExpression(c.Expression); err != nil {
		return err
	}
	_, _, err := notation.Parse(c.Expression)
	return err
}

func (s *Server) handleListCircuits(w http.ResponseWriter, r *http.Request) {
	circuits, err := s.cfg.Store.List(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"circuits": circuits})
}

func (s *Server) handleCreateCircuit(w http.ResponseWriter, r *http.Request) {
	var req circuitRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, errors.New(errors.ErrCodeInvalidExpression, "invalid request body: %v", err))
		return
	}
	if err := req.validate(); err != nil {
		writeError(w, err)
		return
	}

	circuit := store.New(req.Title, req.Expression, req.Parameters, req.Sweep)
	if err := s.cfg.Store.Put(r.Context(), circuit); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, circuit)
}

func (s *Server) handleGetCircuit(w http.ResponseWriter, r *http.Request) {
	circuit, err := s.cfg.Store.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, circuit)
}

func (s *Server) handleUpdateCircuit(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	existing, err := s.cfg.Store.Get(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}

	var req circuitRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, errors.New(errors.ErrCodeInvalidExpression, "invalid request body: %v", err))
		return
	}
	if err := req.validate(); err != nil {
		writeError(w, err)
		return
	}

	existing.Title = req.Title
	existing.Expression = req.Expression
	existing.Parameters = req.Parameters
	if req.Sweep.Points != 0 {
		existing.Sweep = req.Sweep
	}
	existing.UpdatedAt = time.Now().UTC()

	if err := s.cfg.Store.Put(r.Context(), existing); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, existing)
}

func (s *Server) handleDeleteCircuit(w http.ResponseWriter, r *http.Request) {
	if err := s.cfg.Store.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// errorResponse is the JSON body for error replies.
type errorResponse struct {
	Error struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

func writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	code := errors.GetCode(err)

	if stderrors.Is(err, store.ErrNotFound) {
		status = http.StatusNotFound
		code = errors.ErrCodeCircuitNotFound
	} else {
		switch code {
		case errors.ErrCodeInvalidExpression, errors.ErrCodeInvalidDirection,
			errors.ErrCodeInvalidFormat, errors.ErrCodeInvalidStyle,
			errors.ErrCodeInvalidModel, errors.ErrCodeInvalidFrequency,
			errors.ErrCodeMalformedGroup, errors.ErrCodeUnsupported:
			status = http.StatusBadRequest
		case errors.ErrCodeNotFound, errors.ErrCodeCircuitNotFound:
			status = http.StatusNotFound
		}
	}
	if code == "" {
		code = errors.ErrCodeInternal
	}

	var resp errorResponse
	resp.Error.Code = string(code)
	resp.Error.Message = errors.UserMessage(err)
	writeJSON(w, status, resp)
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
