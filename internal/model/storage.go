package model

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidCapacity      = errors.New("MaxCapacityKWh must be > 0")
	ErrInvalidInitialCharge = errors.New("initial charge must be within [0, MaxCapacityKWh]")
)

// StorageParams defines the storage buffer and the conversion chain around it.
// Units:
// - MaxCapacityKWh: kWh
// - FuelCellFactor: kWh drawn from storage per kWh of deficit
// - ElectrolyserEfficiency: 0..1
// - ElectrolyserLimit, ElectrolyserDivisor: the electrolyser accepts a surplus
//   while surplus/ElectrolyserDivisor < ElectrolyserLimit
type StorageParams struct {
	MaxCapacityKWh         float64
	FuelCellFactor         float64
	ElectrolyserEfficiency float64
	ElectrolyserLimit      float64
	ElectrolyserDivisor    float64
}

func DefaultStorageParams(maxCapacityKWh float64) StorageParams {
	return StorageParams{
		MaxCapacityKWh:         maxCapacityKWh,
		FuelCellFactor:         2,
		ElectrolyserEfficiency: 0.7,
		ElectrolyserLimit:      1500,
		ElectrolyserDivisor:    60,
	}
}

func (p StorageParams) Validate() error {
	if p.MaxCapacityKWh <= 0 {
		return ErrInvalidCapacity
	}
	if p.FuelCellFactor <= 0 {
		return errors.New("FuelCellFactor must be > 0")
	}
	if p.ElectrolyserEfficiency <= 0 || p.ElectrolyserEfficiency > 1 {
		return errors.New("ElectrolyserEfficiency must be in (0, 1]")
	}
	if p.ElectrolyserLimit <= 0 || p.ElectrolyserDivisor <= 0 {
		return errors.New("ElectrolyserLimit and ElectrolyserDivisor must be > 0")
	}
	return nil
}

// Absorbs reports whether the electrolyser can take a surplus (kW).
// The comparison is kept literal (surplus/60 < 1500); which unit the limit is
// expressed in is not settled.
func (p StorageParams) Absorbs(surplusKW float64) bool {
	return surplusKW/p.ElectrolyserDivisor < p.ElectrolyserLimit
}

// StorageState captures mutable state.
type StorageState struct {
	EnergyKWh float64
}

// Storage bundles params + state. It is the only state carried across hours.
type Storage struct {
	Params StorageParams
	State  StorageState
}

func NewStorage(params StorageParams, initialKWh float64) (*Storage, error) {
	s := &Storage{
		Params: params,
		State:  StorageState{EnergyKWh: initialKWh},
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *Storage) Validate() error {
	if err := s.Params.Validate(); err != nil {
		return err
	}
	if s.State.EnergyKWh < 0 || s.State.EnergyKWh > s.Params.MaxCapacityKWh {
		return fmt.Errorf("%w: got %.3f", ErrInvalidInitialCharge, s.State.EnergyKWh)
	}
	return nil
}

// Snapshot returns the current charge by value.
func (s *Storage) Snapshot() float64 {
	return s.State.EnergyKWh
}

// Clone returns an independent ledger with the same params and charge.
func (s *Storage) Clone() *Storage {
	c := *s
	return &c
}

// BalanceResult captures what happened in one hourly update.
type BalanceResult struct {
	StorageStartKWh float64
	StorageEndKWh   float64

	// ShortageKWh is the energy the storage could not cover (0 if none).
	ShortageKWh float64

	// CurtailmentKWh is the amount recorded on the curtailment event.
	// OverflowKWh is what counts towards the running curtailment total.
	// They differ only by the surplus*loss term when storage overflows.
	CurtailmentKWh float64
	OverflowKWh    float64

	// ElectrolyserSaturated is set when the surplus was too large for the
	// electrolyser and bypassed storage entirely.
	ElectrolyserSaturated bool

	// Match is set when output equals demand exactly.
	Match bool
}

func (r BalanceResult) Shortage() bool    { return r.ShortageKWh > 0 }
func (r BalanceResult) Curtailment() bool { return r.CurtailmentKWh > 0 || r.OverflowKWh > 0 }

// ApplyBalance settles one hour of output (kW over one hour) against demand
// (kWh), enforcing [0, MaxCapacityKWh]:
// - deficit: storage is debited FuelCellFactor*deficit; anything below zero is a shortage
// - surplus the electrolyser absorbs: storage is credited surplus*efficiency*credit;
//   anything above capacity is curtailed, plus surplus*loss on the event
// - surplus the electrolyser cannot absorb: the whole surplus is curtailed
func (s *Storage) ApplyBalance(outputKW, demandKWh, credit, loss float64) BalanceResult {
	p := s.Params
	res := BalanceResult{StorageStartKWh: s.State.EnergyKWh}

	switch {
	case outputKW < demandKWh:
		deficit := demandKWh - outputKW
		s.State.EnergyKWh -= deficit * p.FuelCellFactor
		if s.State.EnergyKWh < 0 {
			res.ShortageKWh = -s.State.EnergyKWh
			s.State.EnergyKWh = 0
		}
	case outputKW == demandKWh:
		res.Match = true
	default:
		surplus := outputKW - demandKWh
		if p.Absorbs(surplus) {
			s.State.EnergyKWh += surplus * p.ElectrolyserEfficiency * credit
			if s.State.EnergyKWh > p.MaxCapacityKWh {
				over := s.State.EnergyKWh - p.MaxCapacityKWh
				res.OverflowKWh = over
				res.CurtailmentKWh = over + surplus*loss
				s.State.EnergyKWh = p.MaxCapacityKWh
			}
		} else {
			res.ElectrolyserSaturated = true
			res.OverflowKWh = surplus
			res.CurtailmentKWh = surplus
		}
	}

	res.StorageEndKWh = s.State.EnergyKWh
	return res
}
