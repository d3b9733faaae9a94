package server

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/matzehuels/regexrail/pkg/ast"
	"github.com/matzehuels/regexrail/pkg/buildinfo"
	"github.com/matzehuels/regexrail/pkg/errors"
	"github.com/matzehuels/regexrail/pkg/pipeline"
	"github.com/matzehuels/regexrail/pkg/railroad"
)

// renderRequest is the body of POST /render.
type renderRequest struct {
	Pattern    string            `json:"pattern"`
	AST        []ast.Node        `json:"ast,omitempty"`
	Format     string            `json:"format"`
	View       string            `json:"view"`
	Theme      *railroad.Options `json:"theme"`
	Scale      float64           `json:"scale"`
	Background string            `json:"background"`
	Detailed   bool              `json:"detailed"`
	Refresh    bool              `json:"refresh"`
}

type parseRequest struct {
	Pattern string `json:"pattern"`
}

type healthResponse struct {
	Status  string `json:"status"`
	Version string `json:"version"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, healthResponse{Status: "ok", Version: buildinfo.Version})
}

func (s *Server) handleRenderQuery(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	req := renderRequest{
		Pattern:    q.Get("pattern"),
		Format:     q.Get("format"),
		View:       q.Get("view"),
		Background: q.Get("background"),
	}
	var err error
	if v := q.Get("scale"); v != "" {
		if req.Scale, err = strconv.ParseFloat(v, 64); err != nil {
			s.writeError(w, r, errors.New(errors.ErrCodeInvalidInput, "invalid scale %q", v))
			return
		}
	}
	if req.Detailed, err = queryBool(q.Get("detailed")); err != nil {
		s.writeError(w, r, err)
		return
	}
	if req.Refresh, err = queryBool(q.Get("refresh")); err != nil {
		s.writeError(w, r, err)
		return
	}
	s.render(w, r, req)
}

func (s *Server) handleRenderJSON(w http.ResponseWriter, r *http.Request) {
	theme := s.theme
	req := renderRequest{Theme: &theme}
	if err := decodeBody(w, r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}
	s.render(w, r, req)
}

func (s *Server) render(w http.ResponseWriter, r *http.Request, req renderRequest) {
	if req.Format == "" {
		req.Format = pipeline.FormatSVG
	}
	if req.Theme == nil {
		theme := s.theme
		req.Theme = &theme
	}
	if req.Scale == 0 {
		req.Scale = s.scale
	}

	opts := pipeline.Options{
		Pattern:    req.Pattern,
		AST:        req.AST,
		Refresh:    req.Refresh,
		View:       req.View,
		Theme:      req.Theme,
		Formats:    []string{req.Format},
		Scale:      req.Scale,
		Background: req.Background,
		Detailed:   req.Detailed,
		Logger:     s.logger.With("request_id", RequestID(r.Context())),
	}
	result, err := s.runner.Execute(r.Context(), opts)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	// Execute normalised the format; there is exactly one artifact.
	for format, data := range result.Artifacts {
		w.Header().Set("Content-Type", pipeline.ContentType(format))
		w.Header().Set("X-Cache", cacheStatus(result.CacheInfo.RenderHit))
		if result.Diagram != nil {
			w.Header().Set("X-Diagram-Size",
				railroad.FormatFloat(result.Diagram.Width)+"x"+railroad.FormatFloat(result.Diagram.Height))
		}
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write(data)
		return
	}
	s.writeError(w, r, errors.New(errors.ErrCodeInternal, "no artifact rendered"))
}

func (s *Server) handleParse(w http.ResponseWriter, r *http.Request) {
	var req parseRequest
	if err := decodeBody(w, r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}
	nodes, hit, err := s.runner.ParseWithCacheInfo(r.Context(), pipeline.Options{Pattern: req.Pattern})
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("X-Cache", cacheStatus(hit))
	w.WriteHeader(http.StatusOK)
	if err := ast.WriteJSON(nodes, w); err != nil {
		s.logger.Warn("write response", "err", err)
	}
}

func decodeBody(w http.ResponseWriter, r *http.Request, v any) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err := dec.Decode(v); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidInput, err, "invalid request body")
	}
	return nil
}

func queryBool(v string) (bool, error) {
	if v == "" {
		return false, nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return false, errors.New(errors.ErrCodeInvalidInput, "invalid boolean %q", v)
	}
	return b, nil
}

func cacheStatus(hit bool) string {
	if hit {
		return "hit"
	}
	return "miss"
}
