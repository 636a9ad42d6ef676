package web

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"launchdash/internal/dashboard"
	"launchdash/internal/jsonutil"
	"launchdash/internal/render"
)

// indexData feeds the page template.
type indexData struct {
	Layout       dashboard.Layout
	Dependencies []dashboard.Dependency
	Initial      map[string]map[string]interface{}
	EChartsURL   string
}

// InputValue is one component property value in an update request.
type InputValue struct {
	ID       string `json:"id"`
	Property string `json:"property"`
	Value    any    `json:"value"`
}

// UpdateRequest asks for one output to be recomputed.
type UpdateRequest struct {
	Output string       `json:"output"`
	Inputs []InputValue `json:"inputs"`
}

// UpdateResponse carries the recomputed property keyed by component id.
type UpdateResponse struct {
	Response map[string]map[string]any `json:"response"`
}

// handleIndex serves the dashboard page with every figure precomputed from
// the default control values.
func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	figs, err := s.router.Initial(r.Context())
	if err != nil {
		s.fail(w, r, http.StatusInternalServerError, err)
		return
	}

	initial := make(map[string]map[string]interface{}, len(figs))
	for id, fig := range figs {
		opt, err := render.EChartsOption(fig)
		if err != nil {
			s.fail(w, r, http.StatusInternalServerError, err)
			return
		}
		initial[id.String()] = opt
	}

	var buf bytes.Buffer
	err = indexTemplate.Execute(&buf, indexData{
		Layout:       s.router.Layout(),
		Dependencies: s.router.Dependencies(),
		Initial:      initial,
		EChartsURL:   EChartsURL,
	})
	if err != nil {
		s.fail(w, r, http.StatusInternalServerError, err)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write(buf.Bytes())
}

// handleLayout handles GET /_dash-layout
func (s *Server) handleLayout(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	s.writeJSON(w, r, s.router.Layout())
}

// handleDependencies handles GET /_dash-dependencies
func (s *Server) handleDependencies(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	s.writeJSON(w, r, s.router.Dependencies())
}

// handleUpdate handles POST /_dash-update-component requests
func (s *Server) handleUpdate(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req UpdateRequest
	if err := jsonutil.DecodeWithContext(http.MaxBytesReader(w, r.Body, maxBodyBytes), &req, "decode update request"); err != nil {
		s.fail(w, r, http.StatusBadRequest, err)
		return
	}

	output, err := dashboard.ParseID(req.Output)
	if err != nil {
		s.fail(w, r, http.StatusBadRequest, err)
		return
	}
	values := make(map[dashboard.ID]any, len(req.Inputs))
	for _, in := range req.Inputs {
		values[dashboard.ID{Component: in.ID, Property: in.Property}] = in.Value
	}

	fig, err := s.router.Dispatch(r.Context(), output, values)
	if err != nil {
		s.fail(w, r, statusFor(err), err)
		return
	}
	opt, err := render.EChartsOption(fig)
	if err != nil {
		s.fail(w, r, http.StatusInternalServerError, err)
		return
	}

	s.writeJSON(w, r, UpdateResponse{
		Response: map[string]map[string]any{
			output.Component: {output.Property: opt},
		},
	})
}

// handleExport handles GET /export/{graph}.png, rendering the figure for the
// site, low and high query parameters. Missing parameters fall back to the
// layout defaults.
func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	graph, ok := strings.CutSuffix(r.PathValue("graph"), ".png")
	if !ok {
		http.NotFound(w, r)
		return
	}

	layout := s.router.Layout()
	q := r.URL.Query()
	site := q.Get("site")
	if site == "" {
		site = layout.Dropdown.Value
	}
	bounds := layout.Slider.Value
	for i, key := range []string{"low", "high"} {
		v := q.Get(key)
		if v == "" {
			continue
		}
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			s.fail(w, r, http.StatusBadRequest, err)
			return
		}
		bounds[i] = f
	}

	fig, err := s.router.Dispatch(r.Context(), dashboard.ID{Component: graph, Property: dashboard.PropFigure}, map[dashboard.ID]any{
		{Component: dashboard.SiteDropdown, Property: dashboard.PropValue}:  site,
		{Component: dashboard.PayloadSlider, Property: dashboard.PropValue}: []float64{bounds[0], bounds[1]},
	})
	if err != nil {
		s.fail(w, r, statusFor(err), err)
		return
	}

	width, _ := strconv.Atoi(q.Get("width"))
	height, _ := strconv.Atoi(q.Get("height"))
	var buf bytes.Buffer
	if err := render.PNG(&buf, fig, width, height); err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, render.ErrNothingToDraw) {
			status = http.StatusUnprocessableEntity
		}
		s.fail(w, r, status, err)
		return
	}
	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Content-Length", strconv.Itoa(buf.Len()))
	_, _ = w.Write(buf.Bytes())
}

// handleHealth handles GET /healthz
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = w.Write([]byte("ok\n"))
}

func (s *Server) writeJSON(w http.ResponseWriter, r *http.Request, v any) {
	body, err := json.Marshal(v)
	if err != nil {
		s.fail(w, r, http.StatusInternalServerError, err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_, _ = w.Write(body)
}

func (s *Server) fail(w http.ResponseWriter, r *http.Request, status int, err error) {
	if status >= http.StatusInternalServerError {
		s.logger.Error("request failed", zap.String("path", r.URL.Path), zap.String("request_id", RequestIDFrom(r.Context())), zap.Error(err))
	}
	http.Error(w, err.Error(), status)
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, dashboard.ErrUnknownOutput):
		return http.StatusNotFound
	case errors.Is(err, dashboard.ErrMissingInput), errors.Is(err, dashboard.ErrInvalidInput):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
