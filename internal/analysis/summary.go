package analysis

import (
	"math"
	"sort"

	"wind-storage-sim/internal/simulation"
)

// Summary is a run-level report: the statistics of the run plus storage
// fill levels. Fill fractions are of MaxCapacityKWh.
type Summary struct {
	Strategy string `json:"strategy"`
	Hours    int    `json:"hours"`

	ShortageEvents      int     `json:"shortage_events"`
	CurtailmentEvents   int     `json:"curtailment_events"`
	TotalShortageKWh    float64 `json:"total_shortage_kwh"`
	TotalCurtailmentKWh float64 `json:"total_curtailment_kwh"`
	MaxShortageKWh      float64 `json:"max_shortage_kwh"`
	MaxCurtailmentKWh   float64 `json:"max_curtailment_kwh"`

	PredictedShortageHours    int `json:"predicted_shortage_hours"`
	PredictedCurtailmentHours int `json:"predicted_curtailment_hours"`

	InitialStorageKWh float64 `json:"initial_storage_kwh"`
	FinalStorageKWh   float64 `json:"final_storage_kwh"`

	MinFill  float64 `json:"min_fill"`
	MeanFill float64 `json:"mean_fill"`
	P05Fill  float64 `json:"p05_fill"`
	P95Fill  float64 `json:"p95_fill"`

	HoursEmpty int `json:"hours_empty"`
	HoursFull  int `json:"hours_full"`

	GeneratedKWh float64 `json:"generated_kwh"`
	DemandKWh    float64 `json:"demand_kwh"`
}

func Summarize(res *simulation.Result) Summary {
	s := Summary{}
	if res == nil {
		return s
	}
	st := res.Stats
	s.Strategy = res.Strategy
	s.Hours = len(res.Trace)
	s.ShortageEvents = len(st.ShortageEvents)
	s.CurtailmentEvents = len(st.CurtailmentEvents)
	s.TotalShortageKWh = st.TotalShortageKWh
	s.TotalCurtailmentKWh = st.TotalCurtailmentKWh
	s.MaxShortageKWh = maxAmount(st.ShortageEvents)
	s.MaxCurtailmentKWh = maxAmount(st.CurtailmentEvents)
	s.PredictedShortageHours = st.PredictedShortageHours
	s.PredictedCurtailmentHours = st.PredictedCurtailmentHours
	s.InitialStorageKWh = res.InitialKWh
	s.FinalStorageKWh = res.FinalStorageKWh

	if len(res.Trace) == 0 || res.MaxCapacityKWh <= 0 {
		return s
	}

	fills := make([]float64, 0, len(res.Trace))
	sum := 0.0
	minv := math.Inf(1)
	for _, row := range res.Trace {
		f := row.StorageAfterKWh / res.MaxCapacityKWh
		fills = append(fills, f)
		sum += f
		if f < minv {
			minv = f
		}
		if row.StorageAfterKWh <= 0 {
			s.HoursEmpty++
		}
		if row.StorageAfterKWh >= res.MaxCapacityKWh {
			s.HoursFull++
		}
		s.GeneratedKWh += row.OutputKW
		s.DemandKWh += row.DemandKWh
	}
	sort.Float64s(fills)
	s.MinFill = minv
	s.MeanFill = sum / float64(len(fills))
	s.P05Fill = percentileSorted(fills, 0.05)
	s.P95Fill = percentileSorted(fills, 0.95)
	return s
}

func maxAmount(events []simulation.Event) float64 {
	m := 0.0
	for _, ev := range events {
		if ev.AmountKWh > m {
			m = ev.AmountKWh
		}
	}
	return m
}

func percentileSorted(sorted []float64, q float64) float64 {
	if len(sorted) == 0 {
		return 0
	}
	if q <= 0 {
		return sorted[0]
	}
	if q >= 1 {
		return sorted[len(sorted)-1]
	}
	// Linear interpolation between order stats.
	pos := q * float64(len(sorted)-1)
	lo := int(math.Floor(pos))
	hi := int(math.Ceil(pos))
	if lo == hi {
		return sorted[lo]
	}
	frac := pos - float64(lo)
	return sorted[lo]*(1-frac) + sorted[hi]*frac
}
