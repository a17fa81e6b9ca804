package model

// SpeedSample is one hourly wind speed reading.
// Hour is 1-based and contiguous across a series.
type SpeedSample struct {
	Hour    int     `json:"hour"`
	SpeedMS float64 `json:"speed_ms"`
}

// DemandSample is the aggregate demand for one hour, aligned 1:1 with SpeedSample.
type DemandSample struct {
	Hour      int     `json:"hour"`
	DemandKWh float64 `json:"demand_kwh"`
}

// Series is a pre-loaded run input. The two sequences may differ in length;
// only the common prefix is simulated.
type Series struct {
	Speeds []SpeedSample
	Demand []DemandSample
}

// NewSeries builds a Series from plain values, numbering hours from 1.
func NewSeries(speeds, demand []float64) Series {
	s := Series{
		Speeds: make([]SpeedSample, len(speeds)),
		Demand: make([]DemandSample, len(demand)),
	}
	for i, v := range speeds {
		s.Speeds[i] = SpeedSample{Hour: i + 1, SpeedMS: v}
	}
	for i, v := range demand {
		s.Demand[i] = DemandSample{Hour: i + 1, DemandKWh: v}
	}
	return s
}

// Len is the number of hours a run covers: the shorter of the two sequences.
func (s Series) Len() int {
	if len(s.Speeds) < len(s.Demand) {
		return len(s.Speeds)
	}
	return len(s.Demand)
}

// Truncate limits the series to the first n hours (n <= 0 keeps everything).
func (s Series) Truncate(n int) Series {
	if n <= 0 {
		return s
	}
	out := s
	if n < len(out.Speeds) {
		out.Speeds = out.Speeds[:n]
	}
	if n < len(out.Demand) {
		out.Demand = out.Demand[:n]
	}
	return out
}

// Values returns speeds and demand as plain slices, both of length Len().
func (s Series) Values() (speeds, demand []float64) {
	n := s.Len()
	speeds = make([]float64, n)
	demand = make([]float64, n)
	for i := 0; i < n; i++ {
		speeds[i] = s.Speeds[i].SpeedMS
		demand[i] = s.Demand[i].DemandKWh
	}
	return speeds, demand
}
