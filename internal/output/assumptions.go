package output

import (
	"fmt"

	"github.com/rpgo/goalsim/internal/domain"
)

// GenerateAssumptions lists the modeling assumptions behind an output, for the
// detailed console and HTML reports.
func GenerateAssumptions(results *domain.SimulationOutput) []string {
	meta := results.Metadata
	country := meta.Country
	if country == "" {
		country = "DEFAULT"
	}
	regimes := "disabled (constant expected return)"
	if meta.RegimesEnabled {
		regimes = "enabled (bull / normal / bear Markov chain)"
	}
	assumptions := []string{
		fmt.Sprintf("Monte Carlo iterations: %d (%d valid), seed %d", meta.Iterations, meta.ValidIterations, meta.Seed),
		fmt.Sprintf("Economic defaults for unset rates: %s", country),
		fmt.Sprintf("Market regimes: %s", regimes),
		fmt.Sprintf("Simulated horizon: %d months", meta.HorizonMonths),
		fmt.Sprintf("Optimizer target probability: %s", FormatPercentage(results.OptimizedPath.TargetProbability)),
		"Savings apply to the surplus of income over expenses, compounded monthly",
	}
	if meta.DiscardedIterations > 0 {
		assumptions = append(assumptions, fmt.Sprintf("%d iterations discarded for non-finite net worth", meta.DiscardedIterations))
	}
	return assumptions
}
