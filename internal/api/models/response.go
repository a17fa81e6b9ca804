package models

import (
	"time"

	"wind-storage-sim/internal/analysis"
	"wind-storage-sim/internal/simulation"
)

// SimulationResponse represents the response from a simulation run
type SimulationResponse struct {
	ID        string                `json:"id,omitempty"`
	Status    string                `json:"status"`
	CreatedAt time.Time             `json:"created_at"`
	Summary   analysis.Summary      `json:"summary"`
	Stats     simulation.Statistics `json:"stats"`
	Trace     []simulation.TraceRow `json:"trace,omitempty"`
}

// TraceResponse is the per-hour trace of a stored run
type TraceResponse struct {
	ID    string                `json:"id"`
	Trace []simulation.TraceRow `json:"trace"`
}

// CompareResponse represents the response from a comparison
type CompareResponse struct {
	Comparison []ComparisonResult `json:"comparison"`
	// Ranking orders the variations that ran by unmet energy.
	Ranking []analysis.Ranked `json:"ranking"`
}

// ComparisonResult contains results for one variation
type ComparisonResult struct {
	Name    string           `json:"name"`
	ID      string           `json:"id,omitempty"`
	Summary analysis.Summary `json:"summary"`
	Error   string           `json:"error,omitempty"`
}

// StrategyInfo represents information about a strategy
type StrategyInfo struct {
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Parameters  []ParameterInfo `json:"parameters"`
}

// ParameterInfo describes a configuration parameter a strategy reads
type ParameterInfo struct {
	Name        string      `json:"name"`
	Type        string      `json:"type"` // "float", "int", "string", "[]float"
	Description string      `json:"description"`
	Default     interface{} `json:"default,omitempty"`
}

// TurbineInfo represents information about a turbine preset
type TurbineInfo struct {
	ID    string       `json:"id"`
	Name  string       `json:"name"`
	File  string       `json:"file"`
	Specs TurbineSpecs `json:"specs"`
}

// TurbineSpecs contains turbine specifications
type TurbineSpecs struct {
	SweptAreaM2 float64 `json:"swept_area_m2"`
	Efficiency  float64 `json:"efficiency"`
	Count       int     `json:"count"`
}

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}

// ErrorDetail contains error information
type ErrorDetail struct {
	Code    string                 `json:"code"`
	Message string                 `json:"message"`
	Details map[string]interface{} `json:"details,omitempty"`
}

// Error codes returned by the API
const (
	CodeInvalidRequest  = "INVALID_REQUEST"
	CodeInvalidConfig   = "INVALID_CONFIG"
	CodeSimulationError = "SIMULATION_ERROR"
	CodeNotFound        = "NOT_FOUND"
)

// NewError builds an ErrorResponse.
func NewError(code, message string) ErrorResponse {
	return ErrorResponse{Error: ErrorDetail{Code: code, Message: message}}
}
