package strategy

import (
	"fmt"

	"wind-storage-sim/internal/forecast"
	"wind-storage-sim/internal/model"
)

// Context is what a strategy sees at one hour. Speeds and Demand are the
// whole run; StorageKWh is a copy of the real charge.
type Context struct {
	Hour       int
	Speeds     []float64
	Demand     []float64
	StorageKWh float64
}

// Decision is the outcome for one hour and the policy derived from it.
type Decision struct {
	Outcome model.Outcome
	Policy  Policy
}

type Strategy interface {
	Name() string
	Decide(ctx Context) Decision
}

const (
	NameForecast = "forecast"
	NameBaseline = "baseline"
)

// Names lists the strategies Build accepts.
func Names() []string { return []string{NameForecast, NameBaseline} }

// Build picks a strategy by configuration name. engine may be nil for
// strategies that do not forecast.
func Build(name string, engine *forecast.Engine) (Strategy, error) {
	switch name {
	case NameForecast:
		if engine == nil {
			return nil, fmt.Errorf("strategy %q needs a forecast engine", name)
		}
		return NewForecastStrategy(engine), nil
	case NameBaseline:
		return BaselineStrategy{}, nil
	default:
		return nil, fmt.Errorf("unsupported strategy: %q", name)
	}
}
