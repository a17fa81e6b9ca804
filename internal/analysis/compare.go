package analysis

import (
	"sort"

	"wind-storage-sim/internal/simulation"
)

// Ranked is one entry of a comparison, Rank starting at 1.
type Ranked struct {
	Rank    int     `json:"rank"`
	Name    string  `json:"name"`
	Summary Summary `json:"summary"`
}

// RankByUnmetEnergy summarizes runs and sorts them ascending by shortage,
// then by curtailment.
func RankByUnmetEnergy(results []*simulation.Result) []Summary {
	out := make([]Summary, 0, len(results))
	for _, r := range results {
		out = append(out, Summarize(r))
	}
	sort.SliceStable(out, func(i, j int) bool { return lessUnmet(out[i], out[j]) })
	return out
}

// Rank is RankByUnmetEnergy for named runs. names[i] labels results[i];
// missing names fall back to the strategy name.
func Rank(names []string, results []*simulation.Result) []Ranked {
	out := make([]Ranked, 0, len(results))
	for i, r := range results {
		s := Summarize(r)
		name := s.Strategy
		if i < len(names) && names[i] != "" {
			name = names[i]
		}
		out = append(out, Ranked{Name: name, Summary: s})
	}
	sort.SliceStable(out, func(i, j int) bool { return lessUnmet(out[i].Summary, out[j].Summary) })
	for i := range out {
		out[i].Rank = i + 1
	}
	return out
}

func lessUnmet(a, b Summary) bool {
	if a.TotalShortageKWh != b.TotalShortageKWh {
		return a.TotalShortageKWh < b.TotalShortageKWh
	}
	return a.TotalCurtailmentKWh < b.TotalCurtailmentKWh
}
