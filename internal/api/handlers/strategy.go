package handlers

import (
	"log"
	"net/http"

	"wind-storage-sim/internal/api/models"
	"wind-storage-sim/internal/forecast"
	"wind-storage-sim/internal/strategy"

	"github.com/gin-gonic/gin"
)

// StrategyHandler handles strategy-related requests
type StrategyHandler struct{}

// NewStrategyHandler creates a new strategy handler
func NewStrategyHandler() *StrategyHandler {
	return &StrategyHandler{}
}

// ListStrategies handles GET /api/v1/strategies
func (h *StrategyHandler) ListStrategies(c *gin.Context) {
	var bands []float64
	for _, hz := range forecast.DefaultHorizons() {
		bands = append(bands, hz.Band)
	}

	strategies := []models.StrategyInfo{
		{
			Name:        strategy.NameForecast,
			Description: "Forecasts the next 48/168/336 hours with perturbed wind speeds and adjusts turbine availability, storage credit and curtailment loss before a predicted shortage or curtailment.",
			Parameters: []models.ParameterInfo{
				{
					Name:        "forecast.bands",
					Type:        "[]float",
					Description: "Uncertainty band per horizon (48h, 168h, 336h) as a fraction of the measured speed",
					Default:     bands,
				},
				{
					Name:        "forecast.storage_credit",
					Type:        "float",
					Description: "Share of electrolyser output the forecast assumes is stored",
					Default:     forecast.DefaultStorageCredit,
				},
				{
					Name:        "forecast.seed",
					Type:        "int",
					Description: "Seed for the forecast random source (omit for a time-based seed)",
				},
			},
		},
		{
			Name:        strategy.NameBaseline,
			Description: "No forecasting. Every hour runs with the balanced policy.",
			Parameters:  []models.ParameterInfo{},
		},
	}

	log.Printf("StrategyHandler: Returning %d strategies", len(strategies))
	c.JSON(http.StatusOK, gin.H{"strategies": strategies})
}
