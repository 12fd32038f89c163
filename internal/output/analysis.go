package output

import (
	"fmt"

	"github.com/rpgo/goalsim/internal/domain"
	"github.com/shopspring/decimal"
)

// Recommendation actions.
const (
	ActionOnTrack     = "on-track"
	ActionIncrease    = "increase"
	ActionUnreachable = "unreachable"
)

// Recommendation summarizes what the optimized path asks of the user.
type Recommendation struct {
	Action               string
	CurrentRate          decimal.Decimal
	RequiredRate         decimal.Decimal
	RateChange           decimal.Decimal
	CurrentProbability   decimal.Decimal
	OptimizedProbability decimal.Decimal
	LongTermDifference   decimal.Decimal
	Message              string
}

// AnalyzeOutput compares the current and optimized paths.
func AnalyzeOutput(results *domain.SimulationOutput) Recommendation {
	current := results.CurrentPath
	optimized := results.OptimizedPath
	rec := Recommendation{
		CurrentRate:          current.SavingsRate,
		RequiredRate:         optimized.RequiredSavingsRate,
		RateChange:           optimized.RequiredSavingsRate.Sub(current.SavingsRate),
		CurrentProbability:   current.Probability,
		OptimizedProbability: optimized.Probability,
		LongTermDifference:   results.WealthDifference[domain.Horizon20Years],
	}

	switch {
	case !optimized.TargetReached:
		rec.Action = ActionUnreachable
		rec.Message = fmt.Sprintf("Even saving %s of surplus income reaches the goal with only %s probability; consider a later deadline or a smaller goal.",
			FormatPercentage(optimized.RequiredSavingsRate), FormatPercentage(optimized.Probability))
	case current.Probability.GreaterThanOrEqual(optimized.TargetProbability):
		rec.Action = ActionOnTrack
		rec.Message = fmt.Sprintf("On track: the current savings rate of %s already gives a %s chance of reaching the goal.",
			FormatPercentage(current.SavingsRate), FormatPercentage(current.Probability))
	default:
		rec.Action = ActionIncrease
		rec.Message = fmt.Sprintf("Raise the savings rate from %s to %s to lift the probability of success from %s to %s.",
			FormatPercentage(current.SavingsRate), FormatPercentage(optimized.RequiredSavingsRate),
			FormatPercentage(current.Probability), FormatPercentage(optimized.Probability))
	}
	return rec
}
