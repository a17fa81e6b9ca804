package strategy

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"wind-storage-sim/internal/forecast"
	"wind-storage-sim/internal/model"
)

type fixedSource float64

func (f fixedSource) Float64() float64 { return float64(f) }

func TestPolicyTable(t *testing.T) {
	want := map[model.Outcome]Policy{
		model.OutcomeShortage48:     {TurbineAvailability: 1.0, StorageCredit: 1.0, CurtailmentLoss: 0.0},
		model.OutcomeShortage168:    {TurbineAvailability: 1.0, StorageCredit: 1.0, CurtailmentLoss: 0.0},
		model.OutcomeShortage336:    {TurbineAvailability: 1.0, StorageCredit: 1.0, CurtailmentLoss: 0.0},
		model.OutcomeCurtailment336: {TurbineAvailability: 1.0, StorageCredit: 0.83, CurtailmentLoss: 0.17},
		model.OutcomeCurtailment168: {TurbineAvailability: 0.25, StorageCredit: 0.83, CurtailmentLoss: 0.17},
		model.OutcomeCurtailment48:  {TurbineAvailability: 0.0, StorageCredit: 0.83, CurtailmentLoss: 0.17},
		model.OutcomeBalanced:       {TurbineAvailability: 1.0, StorageCredit: 0.83, CurtailmentLoss: 0.17},
	}
	require.Len(t, want, len(model.AllOutcomes()))

	for _, o := range model.AllOutcomes() {
		assert.Equal(t, want[o], PolicyFor(o), o.String())
	}
}

func TestPolicyForUnknownPanics(t *testing.T) {
	assert.Panics(t, func() { PolicyFor(model.Outcome(99)) })
}

func TestBuild(t *testing.T) {
	engine, err := forecast.New(forecast.Params{
		Turbine: model.DefaultTurbineParams(),
		Storage: model.DefaultStorageParams(1000),
	}, fixedSource(0.5))
	require.NoError(t, err)

	s, err := Build(NameForecast, engine)
	require.NoError(t, err)
	assert.Equal(t, NameForecast, s.Name())

	s, err = Build(NameBaseline, nil)
	require.NoError(t, err)
	assert.Equal(t, NameBaseline, s.Name())

	_, err = Build(NameForecast, nil)
	assert.Error(t, err)

	_, err = Build("oracle", engine)
	assert.Error(t, err)
}

func TestForecastStrategyLooksPastCurrentHour(t *testing.T) {
	engine, err := forecast.New(forecast.Params{
		Turbine: model.DefaultTurbineParams(),
		Storage: model.DefaultStorageParams(1000),
	}, fixedSource(0.5))
	require.NoError(t, err)
	s := NewForecastStrategy(engine)

	// The current hour would drain storage, the following ones are quiet.
	speeds := []float64{0, 0, 0}
	demand := []float64{1000, 0, 0}

	d := s.Decide(Context{Hour: 0, Speeds: speeds, Demand: demand, StorageKWh: 10})
	assert.Equal(t, model.OutcomeBalanced, d.Outcome)

	d = s.Decide(Context{Hour: 0, Speeds: []float64{0, 0}, Demand: []float64{0, 1000}, StorageKWh: 10})
	assert.Equal(t, model.OutcomeShortage48, d.Outcome)
	assert.Equal(t, PolicyFor(model.OutcomeShortage48), d.Policy)
}

func TestBaselineAlwaysBalanced(t *testing.T) {
	d := BaselineStrategy{}.Decide(Context{Hour: 3, StorageKWh: 0})
	assert.Equal(t, model.OutcomeBalanced, d.Outcome)
	assert.Equal(t, 1.0, d.Policy.TurbineAvailability)
}
