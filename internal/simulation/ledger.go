package simulation

import (
	"wind-storage-sim/internal/model"
	"wind-storage-sim/internal/strategy"
)

// TraceRow is one row of per-hour output.
// This is the artifact plotting and reporting consume; keep the fields stable.
type TraceRow struct {
	Hour int `json:"hour"`

	SpeedMS   float64 `json:"speed_ms"`
	OutputKW  float64 `json:"output_kw"`
	DemandKWh float64 `json:"demand_kwh"`

	StorageStartKWh float64 `json:"storage_start_kwh"`
	StorageAfterKWh float64 `json:"storage_after_kwh"`

	ShortageKWh    float64 `json:"shortage_kwh"`
	CurtailmentKWh float64 `json:"curtailment_kwh"`

	Outcome model.Outcome   `json:"outcome"`
	Policy  strategy.Policy `json:"policy"`
}

// Event is a single shortage or curtailment.
type Event struct {
	Hour      int     `json:"hour"`
	AmountKWh float64 `json:"amount_kwh"`
}

// Statistics are the running totals of a run.
type Statistics struct {
	TotalShortageKWh    float64 `json:"total_shortage_kwh"`
	TotalCurtailmentKWh float64 `json:"total_curtailment_kwh"`

	ShortageEvents    []Event `json:"shortage_events"`
	CurtailmentEvents []Event `json:"curtailment_events"`

	PredictedShortageHours    int `json:"predicted_shortage_hours"`
	PredictedCurtailmentHours int `json:"predicted_curtailment_hours"`

	// MatchHours counts hours where output met demand exactly.
	MatchHours int `json:"match_hours"`
}

func newStatistics() Statistics {
	return Statistics{
		ShortageEvents:    []Event{},
		CurtailmentEvents: []Event{},
	}
}

func (s *Statistics) recordPrediction(o model.Outcome) {
	switch {
	case o.IsShortage():
		s.PredictedShortageHours++
	case o.IsCurtailment():
		s.PredictedCurtailmentHours++
	}
}

func (s *Statistics) recordBalance(hour int, res model.BalanceResult) {
	if res.Match {
		s.MatchHours++
	}
	if res.Shortage() {
		s.TotalShortageKWh += res.ShortageKWh
		s.ShortageEvents = append(s.ShortageEvents, Event{Hour: hour, AmountKWh: res.ShortageKWh})
	}
	if res.Curtailment() {
		s.TotalCurtailmentKWh += res.OverflowKWh
		s.CurtailmentEvents = append(s.CurtailmentEvents, Event{Hour: hour, AmountKWh: res.CurtailmentKWh})
	}
}

type Result struct {
	Strategy        string
	Trace           []TraceRow
	Stats           Statistics
	InitialKWh      float64
	FinalStorageKWh float64
	MaxCapacityKWh  float64
}
