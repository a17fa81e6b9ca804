package model

import "errors"

// TurbineParams defines the physical parameters of the wind fleet.
// Units:
// - AirDensity: kg/m^3
// - SweptArea: m^2 per turbine
// - Efficiency: power coefficient 0..1
// - Count: number of identical turbines
type TurbineParams struct {
	AirDensity float64
	SweptArea  float64
	Efficiency float64
	Count      int
}

func DefaultTurbineParams() TurbineParams {
	return TurbineParams{
		AirDensity: 1.23,
		SweptArea:  10660,
		Efficiency: 0.45,
		Count:      4,
	}
}

func (p TurbineParams) Validate() error {
	if p.AirDensity <= 0 {
		return errors.New("AirDensity must be > 0")
	}
	if p.SweptArea <= 0 {
		return errors.New("SweptArea must be > 0")
	}
	if p.Efficiency <= 0 || p.Efficiency > 1 {
		return errors.New("Efficiency must be in (0, 1]")
	}
	if p.Count <= 0 {
		return errors.New("Count must be > 0")
	}
	return nil
}

// OutputKW converts a wind speed (m/s) into fleet output in kW.
//
// Speed is cubed, so a negative sample yields negative output. Samples are
// not floored here; sources are expected to deliver non-negative speeds.
func (p TurbineParams) OutputKW(speedMS float64) float64 {
	return 0.5 * p.AirDensity * p.SweptArea * speedMS * speedMS * speedMS * p.Efficiency / 1000 * float64(p.Count)
}
