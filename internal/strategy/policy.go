package strategy

import (
	"fmt"

	"wind-storage-sim/internal/model"
)

// Policy holds the multipliers applied for a single hour.
// - TurbineAvailability: share of the fleet allowed to run, 0..1
// - StorageCredit: share of electrolyser output credited to storage
// - CurtailmentLoss: share of the surplus booked on a curtailment event
type Policy struct {
	TurbineAvailability float64 `json:"turbine_availability"`
	StorageCredit       float64 `json:"storage_credit"`
	CurtailmentLoss     float64 `json:"curtailment_loss"`
}

// PolicyFor maps a forecast outcome onto the hour's policy. Expected shortage
// keeps everything running and stores all of it; expected curtailment shuts
// turbines down the closer it is.
func PolicyFor(o model.Outcome) Policy {
	switch o {
	case model.OutcomeShortage48, model.OutcomeShortage168, model.OutcomeShortage336:
		return Policy{TurbineAvailability: 1.0, StorageCredit: 1.0, CurtailmentLoss: 0.0}
	case model.OutcomeCurtailment336:
		return Policy{TurbineAvailability: 1.0, StorageCredit: 0.83, CurtailmentLoss: 0.17}
	case model.OutcomeCurtailment168:
		return Policy{TurbineAvailability: 0.25, StorageCredit: 0.83, CurtailmentLoss: 0.17}
	case model.OutcomeCurtailment48:
		return Policy{TurbineAvailability: 0.0, StorageCredit: 0.83, CurtailmentLoss: 0.17}
	case model.OutcomeBalanced:
		return Policy{TurbineAvailability: 1.0, StorageCredit: 0.83, CurtailmentLoss: 0.17}
	default:
		panic(fmt.Sprintf("no policy for %s", o))
	}
}
