package handler

import (
	"bytes"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strings"
	"time"

	"ecommerce-dashboard/internal/model"
	"ecommerce-dashboard/internal/pipeline"
	"ecommerce-dashboard/internal/render"
)

const (
	panelsPrefix = "/api/v1/panels/"
	chartsPrefix = "/api/v1/charts/"
	chartSuffix  = ".png"
)

// Dashboard serves dashboard passes over a dataset loaded once at startup.
type Dashboard struct {
	data     *model.Dataset
	registry *pipeline.Registry
	defaults model.DateRange
	started  time.Time
}

// New builds the dashboard handlers. The default range is the full purchase span of ds.
func New(ds *model.Dataset, reg *pipeline.Registry) *Dashboard {
	return &Dashboard{
		data:     ds,
		registry: reg,
		defaults: pipeline.DefaultRange(ds),
		started:  time.Now().UTC(),
	}
}

// ------------------- Health -------------------

// Health reports service liveness and the number of loaded rows.
func (d *Dashboard) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"status":    "ok",
		"rows":      d.data.Len(),
		"source":    d.data.Source(),
		"startedAt": d.started,
	})
}

// ------------------- Dashboard -------------------

// GetDashboard computes every panel for the requested range
// @Summary Compute the dashboard
// @Description Filter the dataset to the purchase-date range and compute every panel
// @Tags dashboard
// @Produce json
// @Param start query string false "Range start (YYYY-MM-DD)"
// @Param end query string false "Range end (YYYY-MM-DD)"
// @Success 200 {object} model.Report "Dashboard report"
// @Failure 400 {object} map[string]interface{} "Invalid date range"
// @Router /dashboard [get]
func (d *Dashboard) GetDashboard(w http.ResponseWriter, r *http.Request) {
	rng, ok := d.parseRange(w, r)
	if !ok {
		return
	}

	report := pipeline.Run(r.Context(), d.data, rng, d.registry)
	writeJSON(w, http.StatusOK, report)
}

// GetRange returns the default range of the dataset
// @Summary Get the default date range
// @Description Return the full purchase-date span of the loaded dataset
// @Tags dashboard
// @Produce json
// @Success 200 {object} map[string]interface{} "Dataset range"
// @Router /dashboard/range [get]
func (d *Dashboard) GetRange(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"start": d.defaults.Start,
		"end":   d.defaults.End,
		"rows":  d.data.Len(),
	})
}

// ------------------- Panels -------------------

// ListPanels lists the registered panels
// @Summary List panels
// @Description List the registered dashboard panels in display order
// @Tags panels
// @Produce json
// @Success 200 {array} map[string]interface{} "Registered panels"
// @Router /panels [get]
func (d *Dashboard) ListPanels(w http.ResponseWriter, r *http.Request) {
	aggs := d.registry.Aggregators()
	panels := make([]map[string]interface{}, 0, len(aggs))
	for _, a := range aggs {
		panels = append(panels, map[string]interface{}{
			"name":  a.Name,
			"title": a.Title,
			"kind":  a.Kind,
		})
	}
	writeJSON(w, http.StatusOK, panels)
}

// GetPanel computes a single panel
// @Summary Get panel
// @Description Compute a single panel over the purchase-date range
// @Tags panels
// @Produce json
// @Param name path string true "Panel name"
// @Param start query string false "Range start (YYYY-MM-DD)"
// @Param end query string false "Range end (YYYY-MM-DD)"
// @Success 200 {object} model.Panel "Panel"
// @Failure 400 {object} map[string]interface{} "Invalid date range"
// @Failure 404 {object} map[string]interface{} "Unknown panel"
// @Router /panels/{name} [get]
func (d *Dashboard) GetPanel(w http.ResponseWriter, r *http.Request) {
	name := strings.TrimPrefix(r.URL.Path, panelsPrefix)
	if name == "" || strings.Contains(name, "/") {
		writeError(w, http.StatusBadRequest, "Panel name is required")
		return
	}

	panel, ok := d.computePanel(w, r, name)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, panel)
}

// GetChart renders a panel as PNG
// @Summary Get panel chart
// @Description Render a panel as a PNG chart
// @Tags panels
// @Produce png
// @Param name path string true "Panel name"
// @Param start query string false "Range start (YYYY-MM-DD)"
// @Param end query string false "Range end (YYYY-MM-DD)"
// @Success 200 {file} binary "PNG image"
// @Success 204 "No data in range"
// @Failure 404 {object} map[string]interface{} "Unknown panel or metric tile"
// @Router /charts/{name}.png [get]
func (d *Dashboard) GetChart(w http.ResponseWriter, r *http.Request) {
	path := r.URL.Path
	if !strings.HasPrefix(path, chartsPrefix) || !strings.HasSuffix(path, chartSuffix) {
		writeError(w, http.StatusNotFound, "Chart not found")
		return
	}
	name := path[len(chartsPrefix) : len(path)-len(chartSuffix)]
	if name == "" {
		writeError(w, http.StatusBadRequest, "Panel name is required")
		return
	}

	panel, ok := d.computePanel(w, r, name)
	if !ok {
		return
	}

	var buf bytes.Buffer
	err := render.Panel(&buf, panel)
	switch {
	case err == nil:
	case errors.Is(err, render.ErrNoData):
		w.WriteHeader(http.StatusNoContent)
		return
	case errors.Is(err, render.ErrNotChartable):
		writeError(w, http.StatusNotFound, "Panel has no chart: "+name)
		return
	default:
		log.Printf("❌ Chart %s failed: %v\n", name, err)
		writeError(w, http.StatusInternalServerError, "Failed to render chart")
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.WriteHeader(http.StatusOK)
	w.Write(buf.Bytes())
}

// ------------------- Helpers -------------------

func (d *Dashboard) computePanel(w http.ResponseWriter, r *http.Request, name string) (model.Panel, bool) {
	rng, ok := d.parseRange(w, r)
	if !ok {
		return model.Panel{}, false
	}

	panel, err := pipeline.RunOne(r.Context(), d.data, rng, d.registry, name)
	if errors.Is(err, pipeline.ErrUnknownPanel) {
		writeError(w, http.StatusNotFound, "Panel not found: "+name)
		return model.Panel{}, false
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return model.Panel{}, false
	}
	return panel, true
}

func (d *Dashboard) parseRange(w http.ResponseWriter, r *http.Request) (model.DateRange, bool) {
	q := r.URL.Query()
	rng, err := pipeline.ParseRange(q.Get("start"), q.Get("end"), d.defaults)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return model.DateRange{}, false
	}
	return rng, true
}

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		log.Printf("❌ Failed to encode response: %v\n", err)
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]interface{}{"error": msg})
}
