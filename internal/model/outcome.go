package model

import "fmt"

// Outcome is the result of one hourly forecast. It is recomputed every hour
// and never carried over to the next one.
type Outcome int

const (
	OutcomeBalanced Outcome = iota
	OutcomeShortage48
	OutcomeShortage168
	OutcomeShortage336
	OutcomeCurtailment48
	OutcomeCurtailment168
	OutcomeCurtailment336
)

// Keep these values stable; they are written to CSV and JSON output.
var outcomeNames = map[Outcome]string{
	OutcomeBalanced:       "BALANCED",
	OutcomeShortage48:     "SHORTAGE_48",
	OutcomeShortage168:    "SHORTAGE_168",
	OutcomeShortage336:    "SHORTAGE_336",
	OutcomeCurtailment48:  "CURTAILMENT_48",
	OutcomeCurtailment168: "CURTAILMENT_168",
	OutcomeCurtailment336: "CURTAILMENT_336",
}

// AllOutcomes lists every outcome in declaration order.
func AllOutcomes() []Outcome {
	return []Outcome{
		OutcomeBalanced,
		OutcomeShortage48,
		OutcomeShortage168,
		OutcomeShortage336,
		OutcomeCurtailment48,
		OutcomeCurtailment168,
		OutcomeCurtailment336,
	}
}

func (o Outcome) String() string {
	if s, ok := outcomeNames[o]; ok {
		return s
	}
	return fmt.Sprintf("Outcome(%d)", int(o))
}

func (o Outcome) IsShortage() bool {
	return o == OutcomeShortage48 || o == OutcomeShortage168 || o == OutcomeShortage336
}

func (o Outcome) IsCurtailment() bool {
	return o == OutcomeCurtailment48 || o == OutcomeCurtailment168 || o == OutcomeCurtailment336
}

func (o Outcome) MarshalText() ([]byte, error) {
	if _, ok := outcomeNames[o]; !ok {
		return nil, fmt.Errorf("unknown outcome %d", int(o))
	}
	return []byte(o.String()), nil
}

func (o *Outcome) UnmarshalText(b []byte) error {
	parsed, err := ParseOutcome(string(b))
	if err != nil {
		return err
	}
	*o = parsed
	return nil
}

func ParseOutcome(s string) (Outcome, error) {
	for o, name := range outcomeNames {
		if name == s {
			return o, nil
		}
	}
	return OutcomeBalanced, fmt.Errorf("unknown outcome %q", s)
}
