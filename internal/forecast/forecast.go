package forecast

import (
	"errors"
	"fmt"
	"math/rand"

	"wind-storage-sim/internal/model"
)

// MaxLookahead is the number of future hours the default horizons cover.
const MaxLookahead = 336

// DefaultStorageCredit is the curtailment-adjusted share of electrolyser
// output the forecast assumes ends up in storage.
const DefaultStorageCredit = 0.83

// RandSource is the only source of randomness in a forecast.
// *rand.Rand satisfies it.
type RandSource interface {
	Float64() float64
}

// NewSeededSource returns a reproducible RandSource.
func NewSeededSource(seed int64) *rand.Rand {
	return rand.New(rand.NewSource(seed))
}

// Horizon is one contiguous look-ahead segment, ending (exclusive) at End
// hours ahead. Speeds in the segment are perturbed uniformly within ±Band.
type Horizon struct {
	End         int
	Band        float64
	Shortage    model.Outcome
	Curtailment model.Outcome
}

// DefaultHorizons: [0,48) ±2.5%, [48,168) ±6.5%, [168,336) ±10%.
func DefaultHorizons() []Horizon {
	return HorizonsWithBands([3]float64{0.025, 0.065, 0.10})
}

// HorizonsWithBands keeps the 48/168/336 segment layout with custom bands.
func HorizonsWithBands(bands [3]float64) []Horizon {
	return []Horizon{
		{End: 48, Band: bands[0], Shortage: model.OutcomeShortage48, Curtailment: model.OutcomeCurtailment48},
		{End: 168, Band: bands[1], Shortage: model.OutcomeShortage168, Curtailment: model.OutcomeCurtailment168},
		{End: 336, Band: bands[2], Shortage: model.OutcomeShortage336, Curtailment: model.OutcomeCurtailment336},
	}
}

type Params struct {
	Turbine       model.TurbineParams
	Storage       model.StorageParams
	Horizons      []Horizon
	StorageCredit float64
}

// Engine predicts whether a shortage or curtailment lies ahead by replaying
// the look-ahead window against a private copy of the storage charge.
type Engine struct {
	params Params
	rand   RandSource
}

func New(params Params, r RandSource) (*Engine, error) {
	if r == nil {
		return nil, errors.New("rand source is nil")
	}
	if err := params.Turbine.Validate(); err != nil {
		return nil, fmt.Errorf("turbine params: %w", err)
	}
	if err := params.Storage.Validate(); err != nil {
		return nil, fmt.Errorf("storage params: %w", err)
	}
	if len(params.Horizons) == 0 {
		params.Horizons = DefaultHorizons()
	}
	prev := 0
	for i, h := range params.Horizons {
		if h.End <= prev {
			return nil, fmt.Errorf("horizon %d: end %d must be after %d", i, h.End, prev)
		}
		if h.Band < 0 || h.Band >= 1 {
			return nil, fmt.Errorf("horizon %d: band must be in [0, 1)", i)
		}
		prev = h.End
	}
	if params.StorageCredit == 0 {
		params.StorageCredit = DefaultStorageCredit
	}
	return &Engine{params: params, rand: r}, nil
}

// Lookahead is the number of future hours the engine evaluates at most.
func (e *Engine) Lookahead() int {
	return e.params.Horizons[len(e.params.Horizons)-1].End
}

// Forecast walks the horizons in order and returns the first shortage or
// curtailment it hits, or OutcomeBalanced. Windows shorter than the horizons
// are evaluated as far as they go. currentKWh is copied; the caller's ledger
// is never touched.
func (e *Engine) Forecast(speeds, demand []float64, currentKWh float64) model.Outcome {
	n := len(speeds)
	if len(demand) < n {
		n = len(demand)
	}
	ledger := &model.Storage{
		Params: e.params.Storage,
		State:  model.StorageState{EnergyKWh: currentKWh},
	}

	start := 0
	for _, h := range e.params.Horizons {
		if start >= n {
			break
		}
		end := h.End
		if end > n {
			end = n
		}
		if outcome, done := e.evaluate(ledger, h, speeds[start:end], demand[start:end]); done {
			return outcome
		}
		start = end
	}
	return model.OutcomeBalanced
}

func (e *Engine) evaluate(ledger *model.Storage, h Horizon, speeds, demand []float64) (model.Outcome, bool) {
	for i := range speeds {
		predicted := e.perturb(speeds[i], h.Band)
		res := ledger.ApplyBalance(e.params.Turbine.OutputKW(predicted), demand[i], e.params.StorageCredit, 0)
		if res.Shortage() {
			return h.Shortage, true
		}
		// A surplus the electrolyser cannot take is ignored by the forecast.
		if res.Curtailment() && !res.ElectrolyserSaturated {
			return h.Curtailment, true
		}
	}
	return model.OutcomeBalanced, false
}

// perturb draws uniformly from [speed*(1-band), speed*(1+band)].
func (e *Engine) perturb(speed, band float64) float64 {
	lo := speed * (1 - band)
	hi := speed * (1 + band)
	return lo + (hi-lo)*e.rand.Float64()
}

// Window returns the look-ahead for hour (0-based): up to length hours
// starting at hour+1. Near the end of the series the window is shorter.
func Window(speeds, demand []float64, hour, length int) ([]float64, []float64) {
	n := len(speeds)
	if len(demand) < n {
		n = len(demand)
	}
	start := hour + 1
	if start > n {
		start = n
	}
	end := start + length
	if end > n {
		end = n
	}
	return speeds[start:end], demand[start:end]
}
