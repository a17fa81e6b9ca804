package handlers

import (
	"fmt"
	"log"
	"net/http"
	"path/filepath"
	"strings"

	"wind-storage-sim/internal/analysis"
	"wind-storage-sim/internal/api/models"
	"wind-storage-sim/internal/config"
	"wind-storage-sim/internal/model"
	"wind-storage-sim/internal/simulation"
	"wind-storage-sim/internal/store"

	"github.com/gin-gonic/gin"
)

// SimulationHandler handles simulation-related requests
type SimulationHandler struct {
	runs       *store.RunStore
	turbineDir string
}

// NewSimulationHandler creates a new simulation handler. turbineDir is where
// turbine_file presets are looked up.
func NewSimulationHandler(runs *store.RunStore, turbineDir string) *SimulationHandler {
	return &SimulationHandler{runs: runs, turbineDir: turbineDir}
}

// RunSimulation handles POST /api/v1/simulations
func (h *SimulationHandler) RunSimulation(c *gin.Context) {
	var req models.SimulationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.NewError(models.CodeInvalidRequest, err.Error()))
		return
	}

	cfg, err := h.buildConfig(req.Config)
	if err != nil {
		c.JSON(http.StatusBadRequest, models.NewError(models.CodeInvalidConfig, err.Error()))
		return
	}

	series := model.NewSeries(req.Series.Speeds, req.Series.Demand).Truncate(req.Options.LimitHours)
	log.Printf("SimulationHandler: running %q over %d hours", cfg.Strategy.Name, series.Len())

	res, err := simulation.RunConfig(c.Request.Context(), cfg, series, "")
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.NewError(models.CodeSimulationError, err.Error()))
		return
	}

	entry := h.runs.Put(res)
	log.Printf("SimulationHandler: stored run %s (%d shortage, %d curtailment events)",
		entry.ID, len(res.Stats.ShortageEvents), len(res.Stats.CurtailmentEvents))

	c.JSON(http.StatusOK, buildResponse(entry, req.Options.IncludeTrace))
}

// GetSimulation handles GET /api/v1/simulations/:id
func (h *SimulationHandler) GetSimulation(c *gin.Context) {
	entry, ok := h.lookup(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, buildResponse(entry, c.Query("include_trace") == "true"))
}

// GetTrace handles GET /api/v1/simulations/:id/trace. ?format=csv streams the
// same columns the CLI writes.
func (h *SimulationHandler) GetTrace(c *gin.Context) {
	entry, ok := h.lookup(c)
	if !ok {
		return
	}

	if strings.EqualFold(c.Query("format"), "csv") {
		c.Header("Content-Type", "text/csv")
		c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", entry.ID+".csv"))
		c.Status(http.StatusOK)
		if err := simulation.EncodeTraceCSV(c.Writer, entry.Result.Trace); err != nil {
			log.Printf("SimulationHandler: writing trace %s: %v", entry.ID, err)
		}
		return
	}

	c.JSON(http.StatusOK, models.TraceResponse{ID: entry.ID, Trace: entry.Result.Trace})
}

// CompareSimulations handles POST /api/v1/simulations/compare
func (h *SimulationHandler) CompareSimulations(c *gin.Context) {
	var req models.CompareRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.NewError(models.CodeInvalidRequest, err.Error()))
		return
	}

	series := model.NewSeries(req.Series.Speeds, req.Series.Demand).Truncate(req.Options.LimitHours)

	comparison := make([]models.ComparisonResult, 0, len(req.Variations))
	var (
		names   []string
		results []*simulation.Result
	)
	for _, variation := range req.Variations {
		row := models.ComparisonResult{Name: variation.Name}

		cfg, err := h.buildConfig(applyVariation(req.BaseConfig, variation.Config))
		if err != nil {
			row.Error = err.Error()
			comparison = append(comparison, row)
			continue
		}

		res, err := simulation.RunConfig(c.Request.Context(), cfg, series, "")
		if err != nil {
			if c.Request.Context().Err() != nil {
				c.JSON(http.StatusInternalServerError, models.NewError(models.CodeSimulationError, err.Error()))
				return
			}
			row.Error = err.Error()
			comparison = append(comparison, row)
			continue
		}

		entry := h.runs.Put(res)
		row.ID = entry.ID
		row.Summary = analysis.Summarize(res)
		comparison = append(comparison, row)

		names = append(names, variation.Name)
		results = append(results, res)
	}

	log.Printf("SimulationHandler: compared %d variations (%d ran)", len(req.Variations), len(results))
	c.JSON(http.StatusOK, models.CompareResponse{
		Comparison: comparison,
		Ranking:    analysis.Rank(names, results),
	})
}

func (h *SimulationHandler) lookup(c *gin.Context) (*store.Entry, bool) {
	id := c.Param("id")
	entry, err := h.runs.Get(id)
	if err != nil {
		c.JSON(http.StatusNotFound, models.NewError(models.CodeNotFound, fmt.Sprintf("simulation %q not found", id)))
		return nil, false
	}
	return entry, true
}

// buildConfig resolves the turbine preset, fills defaults and validates.
func (h *SimulationHandler) buildConfig(cfg config.Config) (*config.Config, error) {
	if cfg.TurbineFile != "" {
		// turbine_file is a preset ID (e.g. "enercon_e82"), always looked up in the turbine directory
		id := filepath.Base(cfg.TurbineFile)
		id = strings.TrimSuffix(id, filepath.Ext(id))
		loaded, err := config.LoadTurbineFile(filepath.Join(h.turbineDir, id+".yaml"))
		if err != nil {
			return nil, fmt.Errorf("turbine_file %q: %w", cfg.TurbineFile, err)
		}
		cfg.Turbine = config.MergeTurbine(loaded, cfg.Turbine)
	}
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// applyVariation overlays the fields a variation sets onto a copy of base.
func applyVariation(base config.Config, v models.VariationConfig) config.Config {
	out := base
	out.Forecast.Bands = append([]float64(nil), base.Forecast.Bands...)
	if v.Strategy != "" {
		out.Strategy.Name = v.Strategy
	}
	if v.MaxCapacityKWh != 0 {
		out.Storage.MaxCapacityKWh = v.MaxCapacityKWh
	}
	if v.InitialKWh != nil {
		initial := *v.InitialKWh
		out.Storage.InitialKWh = &initial
	}
	if v.Count != 0 {
		out.Turbine.Count = v.Count
	}
	if len(v.Bands) > 0 {
		out.Forecast.Bands = append([]float64(nil), v.Bands...)
	}
	if v.Seed != nil {
		seed := *v.Seed
		out.Forecast.Seed = &seed
	}
	return out
}

func buildResponse(entry *store.Entry, includeTrace bool) models.SimulationResponse {
	resp := models.SimulationResponse{
		ID:        entry.ID,
		Status:    "completed",
		CreatedAt: entry.CreatedAt,
		Summary:   analysis.Summarize(entry.Result),
		Stats:     entry.Result.Stats,
	}
	if includeTrace {
		resp.Trace = entry.Result.Trace
	}
	return resp
}
