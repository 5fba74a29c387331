package server

import (
	"encoding/json"
	stderrors "errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/matzehuels/chartkit/pkg/buildinfo"
	"github.com/matzehuels/chartkit/pkg/errors"
	"github.com/matzehuels/chartkit/pkg/pipeline"
	"github.com/matzehuels/chartkit/pkg/store"
)

// Response headers set on render responses.
const (
	HeaderCache     = "X-Chartkit-Cache"
	HeaderItems     = "X-Chartkit-Items"
	HeaderRequestID = "X-Request-Id"
)

var contentTypes = map[string]string{
	pipeline.FormatSVG:  "image/svg+xml",
	pipeline.FormatHTML: "text/html; charset=utf-8",
	pipeline.FormatPNG:  "image/png",
	pipeline.FormatPDF:  "application/pdf",
	pipeline.FormatJSON: "application/json",
}

// renderRequest is the body of POST /v1/render/{chart}.
type renderRequest struct {
	Props json.RawMessage `json:"props,omitempty"`
	Data  json.RawMessage `json:"data"`
	Theme json.RawMessage `json:"theme,omitempty"`
}

// chartRequest is the body of chart create and update requests.
type chartRequest struct {
	Name  string          `json:"name"`
	Chart string          `json:"chart"`
	Props json.RawMessage `json:"props,omitempty"`
	Data  json.RawMessage `json:"data"`
	Theme json.RawMessage `json:"theme,omitempty"`
}

type listResponse struct {
	Charts []*store.Chart `json:"charts"`
}

type errorResponse struct {
	Code    errors.Code `json:"code"`
	Message string      `json:"message"`
}

type healthResponse struct {
	Status string         `json:"status"`
	Build  buildinfo.Info `json:"build"`
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, healthResponse{Status: "ok", Build: buildinfo.Get()})
}

func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	var req renderRequest
	if err := decodeBody(r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}
	s.render(w, r, pipeline.Options{
		Chart: chi.URLParam(r, "chart"),
		Props: req.Props,
		Data:  req.Data,
		Theme: req.Theme,
	})
}

func (s *Server) handleRenderChart(w http.ResponseWriter, r *http.Request) {
	c, err := s.store.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.render(w, r, pipeline.Options{
		Chart: c.Chart,
		Props: c.Props,
		Data:  c.Data,
		Theme: c.Theme,
	})
}

// render applies the query parameters to opts, runs the pipeline and writes
// the single requested artifact.
func (s *Server) render(w http.ResponseWriter, r *http.Request, opts pipeline.Options) {
	if err := errors.ValidateChart(opts.Chart); err != nil {
		s.writeError(w, r, err)
		return
	}
	q := r.URL.Query()
	format := q.Get("format")
	if format == "" {
		format = pipeline.DefaultFormat(opts.Chart)
	}
	opts.Formats = []string{format}
	opts.FallbackTheme = s.opts.Theme
	opts.NativeRaster = s.opts.NativeRaster || q.Get("native") == "true"
	opts.Refresh = q.Get("refresh") == "true"
	if v := q.Get("scale"); v != "" {
		scale, err := strconv.ParseFloat(v, 64)
		if err != nil || scale <= 0 {
			s.writeError(w, r, errors.New(errors.ErrCodeInvalidInput, "invalid scale %q", v))
			return
		}
		opts.Scale = scale
	}
	opts.Logger = s.logger.With("request_id", middleware.GetReqID(r.Context()))

	result, err := s.runner.Execute(r.Context(), opts)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	cacheStatus := "miss"
	if result.CacheInfo.RenderHit {
		cacheStatus = "hit"
	}
	w.Header().Set("Content-Type", contentTypes[format])
	w.Header().Set(HeaderCache, cacheStatus)
	if result.Stats.Items > 0 {
		w.Header().Set(HeaderItems, strconv.Itoa(result.Stats.Items))
	}
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(result.Artifacts[format])
}

func (s *Server) handleListCharts(w http.ResponseWriter, r *http.Request) {
	opts := store.ListOptions{Chart: r.URL.Query().Get("chart")}
	if opts.Chart != "" {
		if err := errors.ValidateChart(opts.Chart); err != nil {
			s.writeError(w, r, err)
			return
		}
	}
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			s.writeError(w, r, errors.New(errors.ErrCodeInvalidInput, "invalid limit %q", v))
			return
		}
		opts.Limit = n
	}

	charts, err := s.store.List(r.Context(), opts)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	if charts == nil {
		charts = []*store.Chart{}
	}
	writeJSON(w, http.StatusOK, listResponse{Charts: charts})
}

func (s *Server) handleCreateChart(w http.ResponseWriter, r *http.Request) {
	var req chartRequest
	if err := decodeBody(r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}
	saved, err := s.store.Save(r.Context(), req.chart(""))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	w.Header().Set("Location", "/v1/charts/"+saved.ID)
	writeJSON(w, http.StatusCreated, saved)
}

func (s *Server) handleGetChart(w http.ResponseWriter, r *http.Request) {
	c, err := s.store.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, c)
}

func (s *Server) handleUpdateChart(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if _, err := s.store.Get(r.Context(), id); err != nil {
		s.writeError(w, r, err)
		return
	}
	var req chartRequest
	if err := decodeBody(r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}
	saved, err := s.store.Save(r.Context(), req.chart(id))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, saved)
}

func (s *Server) handleDeleteChart(w http.ResponseWriter, r *http.Request) {
	if err := s.store.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		s.writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (req chartRequest) chart(id string) *store.Chart {
	return &store.Chart{
		ID:    id,
		Name:  strings.TrimSpace(req.Name),
		Chart: req.Chart,
		Props: req.Props,
		Data:  req.Data,
		Theme: req.Theme,
	}
}

func decodeBody(r *http.Request, v any) error {
	dec := json.NewDecoder(r.Body)
	if err := dec.Decode(v); err != nil {
		var tooLarge *http.MaxBytesError
		if stderrors.As(err, &tooLarge) {
			return errors.New(errors.ErrCodeInvalidData, "request body exceeds %d bytes", tooLarge.Limit)
		}
		return errors.Wrap(errors.ErrCodeInvalidData, err, "invalid request body")
	}
	return nil
}

func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := errors.HTTPStatus(err)
	code := errors.GetCode(err)
	msg := errors.UserMessage(err)
	if code == "" || status == http.StatusInternalServerError {
		s.logger.Error("request failed", "path", r.URL.Path, "request_id", middleware.GetReqID(r.Context()), "error", err)
		code = errors.ErrCodeInternal
		msg = "internal error"
	}
	if id := middleware.GetReqID(r.Context()); id != "" {
		w.Header().Set(HeaderRequestID, id)
	}
	if errors.Temporary(err) {
		w.Header().Set("Retry-After", "1")
	}
	writeJSON(w, status, errorResponse{Code: code, Message: msg})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
