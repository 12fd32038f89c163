package domain

import (
	"fmt"
	"math"
)

// Regime is a macro-market state that shifts expected return and volatility.
type Regime string

const (
	RegimeBull   Regime = "bull"
	RegimeNormal Regime = "normal"
	RegimeBear   Regime = "bear"
)

// Regimes is the fixed order used for cumulative transition draws.
var Regimes = []Regime{RegimeBull, RegimeNormal, RegimeBear}

// MarketRegimeParams describes one regime of the Markov chain.
type MarketRegimeParams struct {
	ReturnAdjustment        float64            `yaml:"return_adjustment" json:"returnAdjustment" toml:"return_adjustment"`
	VolatilityMultiplier    float64            `yaml:"volatility_multiplier" json:"volatilityMultiplier" toml:"volatility_multiplier"`
	AverageDuration         float64            `yaml:"average_duration" json:"averageDuration" toml:"average_duration"` // months
	TransitionProbabilities map[Regime]float64 `yaml:"transition_probabilities" json:"transitionProbabilities" toml:"transition_probabilities"`
}

// ContinuationProbability is the monthly probability of staying in the regime
// without consulting the transition row.
func (p MarketRegimeParams) ContinuationProbability() float64 {
	if p.AverageDuration <= 1 {
		return 0
	}
	return 1 - 1/p.AverageDuration
}

// RegimeTable holds the parameters of every regime. Tables are treated as
// read-only once handed to the engine.
type RegimeTable map[Regime]MarketRegimeParams

// DefaultRegimeTable returns a fresh copy of the built-in regime parameters.
func DefaultRegimeTable() RegimeTable {
	return RegimeTable{
		RegimeBull: {
			ReturnAdjustment:     0.06,
			VolatilityMultiplier: 0.8,
			AverageDuration:      30,
			TransitionProbabilities: map[Regime]float64{
				RegimeBull: 0, RegimeNormal: 0.7, RegimeBear: 0.3,
			},
		},
		RegimeNormal: {
			ReturnAdjustment:     0,
			VolatilityMultiplier: 1.0,
			AverageDuration:      48,
			TransitionProbabilities: map[Regime]float64{
				RegimeBull: 0.5, RegimeNormal: 0, RegimeBear: 0.5,
			},
		},
		RegimeBear: {
			ReturnAdjustment:     -0.12,
			VolatilityMultiplier: 1.6,
			AverageDuration:      14,
			TransitionProbabilities: map[Regime]float64{
				RegimeBull: 0.4, RegimeNormal: 0.6, RegimeBear: 0,
			},
		},
	}
}

// Clone returns a deep copy so callers can override entries without touching
// a table already in use.
func (t RegimeTable) Clone() RegimeTable {
	out := make(RegimeTable, len(t))
	for regime, params := range t {
		row := make(map[Regime]float64, len(params.TransitionProbabilities))
		for to, p := range params.TransitionProbabilities {
			row[to] = p
		}
		params.TransitionProbabilities = row
		out[regime] = params
	}
	return out
}

// Validate checks that every regime is present, durations are positive, and
// each transition row is a probability distribution over the known regimes.
func (t RegimeTable) Validate() error {
	for _, regime := range Regimes {
		params, ok := t[regime]
		if !ok {
			return fmt.Errorf("regime %s is missing", regime)
		}
		if params.AverageDuration < 1 {
			return fmt.Errorf("regime %s: average duration must be at least 1 month", regime)
		}
		if params.VolatilityMultiplier < 0 {
			return fmt.Errorf("regime %s: volatility multiplier cannot be negative", regime)
		}
		var sum float64
		for to, p := range params.TransitionProbabilities {
			if _, known := t[to]; !known {
				return fmt.Errorf("regime %s: transition to unknown regime %s", regime, to)
			}
			if p < 0 {
				return fmt.Errorf("regime %s: negative transition probability to %s", regime, to)
			}
			sum += p
		}
		if math.Abs(sum-1) > 1e-9 {
			return fmt.Errorf("regime %s: transition probabilities sum to %.6f, expected 1", regime, sum)
		}
	}
	return nil
}
