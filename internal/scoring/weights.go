// Package scoring computes a deterministic lead score from a validated
// answer set. The numeric weights are product decisions, kept as
// configuration data with embedded defaults and an optional YAML override.
package scoring

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// BandWeights maps a qualifier band to its score contribution.
type BandWeights map[string]int

// QualifiedWeights holds the weight tables for the corporate and
// specialized paths.
type QualifiedWeights struct {
	BudgetBands     BandWeights `yaml:"budget_bands"`
	AudienceBands   BandWeights `yaml:"audience_bands"`
	HighIntentEvent string      `yaml:"high_intent_event"`
	HighIntentBonus int         `yaml:"high_intent_bonus"`
	NoisePenalty    int         `yaml:"noise_penalty"`
}

// PersonalWeights holds the simplified personal-path weights.
type PersonalWeights struct {
	Base       int `yaml:"base"`
	DateBonus  int `yaml:"date_bonus"`
	AddonBonus int `yaml:"addon_bonus"`
}

// Weights is the full scoring table keyed by segment.
type Weights struct {
	Corporate   QualifiedWeights `yaml:"corporate"`
	Specialized QualifiedWeights `yaml:"specialized"`
	Personal    PersonalWeights  `yaml:"personal"`
}

// DefaultWeights returns the embedded weight scheme: both qualifier bands
// top out at 40 in fixed 10-point steps, the highest-intent event type adds
// 10 and a noise restriction subtracts 5, so the maximum before any date
// bonus is 90.
func DefaultWeights() Weights {
	budget := BandWeights{
		"ate_10k":   10,
		"10k_30k":   20,
		"30k_80k":   30,
		"acima_80k": 40,
	}
	audience := BandWeights{
		"ate_200":    10,
		"200_1000":   20,
		"1000_5000":  30,
		"acima_5000": 40,
	}

	return Weights{
		Corporate: QualifiedWeights{
			BudgetBands:     budget,
			AudienceBands:   audience,
			HighIntentEvent: "confraternizacao",
			HighIntentBonus: 10,
			NoisePenalty:    5,
		},
		Specialized: QualifiedWeights{
			BudgetBands:     budget,
			AudienceBands:   audience,
			HighIntentEvent: "reveillon",
			HighIntentBonus: 10,
			NoisePenalty:    5,
		},
		Personal: PersonalWeights{
			Base:       30,
			DateBonus:  10,
			AddonBonus: 10,
		},
	}
}

// LoadWeights reads a YAML override file on top of the defaults. An empty
// path returns the defaults unchanged.
func LoadWeights(path string) (Weights, error) {
	weights := DefaultWeights()
	if path == "" {
		return weights, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return weights, fmt.Errorf("read scoring weights: %w", err)
	}

	if err := yaml.Unmarshal(data, &weights); err != nil {
		return weights, fmt.Errorf("parse scoring weights: %w", err)
	}

	return weights, nil
}
