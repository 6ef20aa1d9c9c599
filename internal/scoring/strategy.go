package scoring

import (
	"fmt"
	"math"
	"sort"
	"strings"
)

// WeightSet holds the four factor weights of a scoring strategy. Weights
// must be non-negative and sum to 1.
type WeightSet struct {
	Urgency      float64 `json:"urgency"`
	Importance   float64 `json:"importance"`
	Effort       float64 `json:"effort"`
	Dependencies float64 `json:"dependencies"`
}

func (w WeightSet) Sum() float64 {
	return w.Urgency + w.Importance + w.Effort + w.Dependencies
}

func (w WeightSet) Validate() error {
	for name, v := range map[string]float64{
		"urgency":      w.Urgency,
		"importance":   w.Importance,
		"effort":       w.Effort,
		"dependencies": w.Dependencies,
	} {
		if v < 0 {
			return fmt.Errorf("weight %s is negative", name)
		}
	}
	if math.Abs(w.Sum()-1.0) > 0.001 {
		return fmt.Errorf("weights sum to %f, expected 1.0", w.Sum())
	}
	return nil
}

const (
	StrategySmartBalance   = "smart_balance"
	StrategyFastestWins    = "fastest_wins"
	StrategyHighImpact     = "high_impact"
	StrategyDeadlineDriven = "deadline_driven"
)

var strategies = map[string]WeightSet{
	StrategySmartBalance:   {Urgency: 0.35, Importance: 0.35, Effort: 0.15, Dependencies: 0.15},
	StrategyFastestWins:    {Urgency: 0.20, Importance: 0.20, Effort: 0.50, Dependencies: 0.10},
	StrategyHighImpact:     {Urgency: 0.15, Importance: 0.60, Effort: 0.05, Dependencies: 0.20},
	StrategyDeadlineDriven: {Urgency: 0.60, Importance: 0.20, Effort: 0.05, Dependencies: 0.15},
}

// StrategyNames returns the valid strategy names, sorted.
func StrategyNames() []string {
	names := make([]string, 0, len(strategies))
	for name := range strategies {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Strategies returns a copy of the built-in strategy table.
func Strategies() map[string]WeightSet {
	out := make(map[string]WeightSet, len(strategies))
	for name, w := range strategies {
		out[name] = w
	}
	return out
}

// WeightsFor resolves a strategy name to its weight set.
func WeightsFor(name string) (WeightSet, error) {
	w, ok := strategies[name]
	if !ok {
		return WeightSet{}, &InvalidStrategyError{Name: name, Valid: StrategyNames()}
	}
	return w, nil
}

// InvalidStrategyError reports an unknown strategy name along with the
// valid choices.
type InvalidStrategyError struct {
	Name  string
	Valid []string
}

func (e *InvalidStrategyError) Error() string {
	return fmt.Sprintf("invalid strategy %q, choose from: %s", e.Name, strings.Join(e.Valid, ", "))
}
