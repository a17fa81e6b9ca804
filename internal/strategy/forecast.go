package strategy

import (
	"wind-storage-sim/internal/forecast"
	"wind-storage-sim/internal/model"
)

// ForecastStrategy consults the forecast engine every hour with the next
// Lookahead hours (excluding the current one) and applies PolicyFor.
type ForecastStrategy struct {
	engine    *forecast.Engine
	lookahead int
}

func NewForecastStrategy(engine *forecast.Engine) *ForecastStrategy {
	return &ForecastStrategy{engine: engine, lookahead: engine.Lookahead()}
}

func (s *ForecastStrategy) Name() string { return NameForecast }

func (s *ForecastStrategy) Decide(ctx Context) Decision {
	speeds, demand := forecast.Window(ctx.Speeds, ctx.Demand, ctx.Hour, s.lookahead)
	outcome := s.engine.Forecast(speeds, demand, ctx.StorageKWh)
	return Decision{Outcome: outcome, Policy: PolicyFor(outcome)}
}

// BaselineStrategy never forecasts: every hour is treated as balanced and
// the whole fleet runs. Useful as a reference for the forecast loop.
type BaselineStrategy struct{}

func (BaselineStrategy) Name() string { return NameBaseline }

func (BaselineStrategy) Decide(Context) Decision {
	return Decision{Outcome: model.OutcomeBalanced, Policy: PolicyFor(model.OutcomeBalanced)}
}
