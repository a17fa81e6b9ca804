package simulation

import (
	"context"
	"fmt"

	"wind-storage-sim/internal/config"
	"wind-storage-sim/internal/forecast"
	"wind-storage-sim/internal/model"
	"wind-storage-sim/internal/strategy"
)

// RunConfig builds a fresh storage ledger, forecast engine and strategy from
// cfg and runs the series. strategyName overrides cfg.Strategy.Name when set.
// cfg must already be validated.
func RunConfig(ctx context.Context, cfg *config.Config, series model.Series, strategyName string) (*Result, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config is nil")
	}
	if strategyName == "" {
		strategyName = cfg.Strategy.Name
	}

	storage, err := model.NewStorage(cfg.Storage.ToModelParams(), cfg.Storage.Initial())
	if err != nil {
		return nil, fmt.Errorf("storage: %w", err)
	}

	var engine *forecast.Engine
	if strategyName == strategy.NameForecast {
		engine, err = forecast.New(cfg.ForecastParams(), forecast.NewSeededSource(cfg.Forecast.ResolveSeed()))
		if err != nil {
			return nil, fmt.Errorf("forecast: %w", err)
		}
	}
	strat, err := strategy.Build(strategyName, engine)
	if err != nil {
		return nil, err
	}

	return New(cfg.Turbine.ToModelParams()).Run(ctx, series, storage, strat)
}
