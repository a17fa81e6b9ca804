package api

import (
	"net/http"

	"wind-storage-sim/internal/api/handlers"
	"wind-storage-sim/internal/api/middleware"
	"wind-storage-sim/internal/api/models"
	"wind-storage-sim/internal/store"

	"github.com/gin-gonic/gin"
)

// Options wires the router's collaborators.
type Options struct {
	Runs        *store.RunStore
	TurbineDir  string
	CORSOrigins string
	// RequestLog enables gin's request logger.
	RequestLog bool
}

// NewRouter builds the HTTP API.
func NewRouter(opts Options) *gin.Engine {
	router := gin.New()

	// Apply middleware
	if opts.RequestLog {
		router.Use(gin.Logger())
	}
	router.Use(middleware.ErrorHandler())
	router.Use(middleware.CORS(opts.CORSOrigins))

	// Initialize handlers
	simulationHandler := handlers.NewSimulationHandler(opts.Runs, opts.TurbineDir)
	strategyHandler := handlers.NewStrategyHandler()
	turbineHandler := handlers.NewTurbineHandler(opts.TurbineDir)

	// Health check
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "stored_runs": opts.Runs.Len()})
	})

	// API routes
	api := router.Group("/api/v1")
	{
		api.POST("/simulations", simulationHandler.RunSimulation)
		api.POST("/simulations/compare", simulationHandler.CompareSimulations)
		api.GET("/simulations/:id", simulationHandler.GetSimulation)
		api.GET("/simulations/:id/trace", simulationHandler.GetTrace)

		api.GET("/strategies", strategyHandler.ListStrategies)
		api.GET("/turbines", turbineHandler.ListTurbines)
	}

	router.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, models.NewError(models.CodeNotFound, "route not found"))
	})

	return router
}
