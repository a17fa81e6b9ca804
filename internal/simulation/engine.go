package simulation

import (
	"context"
	"fmt"

	"wind-storage-sim/internal/model"
	"wind-storage-sim/internal/strategy"
)

type Engine struct {
	turbine model.TurbineParams
}

func New(turbine model.TurbineParams) *Engine { return &Engine{turbine: turbine} }

// Run steps through the series hour by hour. The run covers the shorter of
// the two input sequences; an empty series gives an empty trace and zero
// statistics. storage is the real ledger and is updated in place.
func (e *Engine) Run(ctx context.Context, series model.Series, storage *model.Storage, strat strategy.Strategy) (*Result, error) {
	if storage == nil {
		return nil, fmt.Errorf("storage is nil")
	}
	if strat == nil {
		return nil, fmt.Errorf("strategy is nil")
	}
	if err := e.turbine.Validate(); err != nil {
		return nil, fmt.Errorf("turbine params: %w", err)
	}
	if err := storage.Validate(); err != nil {
		return nil, fmt.Errorf("storage: %w", err)
	}

	speeds, demand := series.Values()
	n := len(speeds)

	trace := make([]TraceRow, 0, n)
	stats := newStatistics()
	initial := storage.Snapshot()

	for h := 0; h < n; h++ {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("hour %d: %w", h+1, err)
		}
		hour := h + 1

		d := strat.Decide(strategy.Context{
			Hour:       h,
			Speeds:     speeds,
			Demand:     demand,
			StorageKWh: storage.Snapshot(),
		})
		stats.recordPrediction(d.Outcome)

		output := e.turbine.OutputKW(speeds[h]) * d.Policy.TurbineAvailability
		res := storage.ApplyBalance(output, demand[h], d.Policy.StorageCredit, d.Policy.CurtailmentLoss)
		stats.recordBalance(hour, res)

		trace = append(trace, TraceRow{
			Hour: hour,

			SpeedMS:   speeds[h],
			OutputKW:  output,
			DemandKWh: demand[h],

			StorageStartKWh: res.StorageStartKWh,
			StorageAfterKWh: res.StorageEndKWh,

			ShortageKWh:    res.ShortageKWh,
			CurtailmentKWh: res.CurtailmentKWh,

			Outcome: d.Outcome,
			Policy:  d.Policy,
		})
	}

	return &Result{
		Strategy:        strat.Name(),
		Trace:           trace,
		Stats:           stats,
		InitialKWh:      initial,
		FinalStorageKWh: storage.Snapshot(),
		MaxCapacityKWh:  storage.Params.MaxCapacityKWh,
	}, nil
}
