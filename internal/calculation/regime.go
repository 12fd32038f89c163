package calculation

import (
	"math/rand/v2"

	"github.com/rpgo/goalsim/internal/domain"
)

// RegimeModel is the per-path state of the bull/normal/bear Markov chain.
// Each path owns its model; the table is shared read-only.
type RegimeModel struct {
	table            domain.RegimeTable
	enabled          bool
	baseAnnualReturn float64
	returnStdDev     float64
	current          domain.Regime
}

// NewRegimeModel starts a chain in the normal regime. When enabled is false the
// model always returns the base return and standard deviation and never draws.
func NewRegimeModel(table domain.RegimeTable, enabled bool, baseAnnualReturn, returnStdDev float64) *RegimeModel {
	return &RegimeModel{
		table:            table,
		enabled:          enabled,
		baseAnnualReturn: baseAnnualReturn,
		returnStdDev:     returnStdDev,
		current:          domain.RegimeNormal,
	}
}

// Current returns the regime the chain is in.
func (m *RegimeModel) Current() domain.Regime {
	return m.current
}

// Next advances the chain by one month and returns the annual return mean and
// standard deviation to use for that month.
//
// Draw order: one uniform for continuation, then one more uniform only when the
// chain leaves its regime.
func (m *RegimeModel) Next(rng *rand.Rand) (annualReturn, annualStdDev float64) {
	if !m.enabled {
		return m.baseAnnualReturn, m.returnStdDev
	}

	m.advance(rng)
	params := m.table[m.current]
	return m.baseAnnualReturn + params.ReturnAdjustment, m.returnStdDev * params.VolatilityMultiplier
}

func (m *RegimeModel) advance(rng *rand.Rand) {
	params := m.table[m.current]
	if rng.Float64() <= params.ContinuationProbability() {
		return
	}

	draw := rng.Float64()
	var cumulative float64
	fallback := m.current
	for _, next := range domain.Regimes {
		p := params.TransitionProbabilities[next]
		if p <= 0 {
			continue
		}
		cumulative += p
		fallback = next
		if draw < cumulative {
			m.current = next
			return
		}
	}
	// rounding left the row a hair under 1
	m.current = fallback
}
