package models

import "wind-storage-sim/internal/config"

// SimulationRequest represents the request body for running a simulation
type SimulationRequest struct {
	Config  config.Config     `json:"config"`
	Series  SeriesInput       `json:"series"`
	Options SimulationOptions `json:"options,omitempty"`
}

// SeriesInput carries the hourly inputs. Index 0 is hour 1.
// The run covers the shorter of the two.
type SeriesInput struct {
	Speeds []float64 `json:"speeds" binding:"required"` // m/s
	Demand []float64 `json:"demand" binding:"required"` // kWh per hour
}

// SimulationOptions contains optional run parameters
type SimulationOptions struct {
	LimitHours   int  `json:"limit_hours,omitempty"`   // 0 = all
	IncludeTrace bool `json:"include_trace,omitempty"` // default: false
}

// CompareRequest runs the same series through several configurations
type CompareRequest struct {
	Series     SeriesInput       `json:"series"`
	BaseConfig config.Config     `json:"base_config"`
	Variations []Variation       `json:"variations" binding:"required,min=1,dive"`
	Options    SimulationOptions `json:"options,omitempty"`
}

// Variation defines a variation to test. Only the fields it sets override
// the base config.
type Variation struct {
	Name   string          `json:"name" binding:"required"`
	Config VariationConfig `json:"config"`
}

// VariationConfig lists the overridable fields.
type VariationConfig struct {
	Strategy       string    `json:"strategy,omitempty"`
	MaxCapacityKWh float64   `json:"max_capacity_kwh,omitempty"`
	InitialKWh     *float64  `json:"initial_kwh,omitempty"`
	Count          int       `json:"count,omitempty"`
	Bands          []float64 `json:"bands,omitempty"`
	Seed           *int64    `json:"seed,omitempty"`
}
