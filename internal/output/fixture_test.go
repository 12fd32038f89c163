package output

import (
	"time"

	"github.com/rpgo/goalsim/internal/domain"
	"github.com/shopspring/decimal"
)

func horizonValues(base int64) map[domain.Horizon]decimal.Decimal {
	out := map[domain.Horizon]decimal.Decimal{}
	for i, h := range domain.Horizons {
		out[h] = decimal.NewFromInt(base * int64(i+1))
	}
	return out
}

func buildTestPath(rate, probability float64, base int64) domain.PathResult {
	achieved := time.Date(2027, time.March, 1, 0, 0, 0, 0, time.UTC)
	ci := map[domain.Horizon]domain.ConfidenceInterval{}
	for h, v := range horizonValues(base) {
		ci[h] = domain.ConfidenceInterval{Lower: v.Sub(decimal.NewFromInt(1000)), Upper: v.Add(decimal.NewFromInt(1000))}
	}
	return domain.PathResult{
		SavingsRate:           decimal.NewFromFloat(rate),
		Probability:           decimal.NewFromFloat(probability),
		ProjectedNetWorth:     horizonValues(base),
		ConfidenceIntervals:   ci,
		DeterministicNetWorth: horizonValues(base + 10),
		AchieveGoalDate:       &achieved,
		Goals: []domain.GoalPathResult{{
			Name:            "house",
			Amount:          decimal.NewFromInt(250000),
			Deadline:        time.Date(2028, time.January, 1, 0, 0, 0, 0, time.UTC),
			Probability:     decimal.NewFromFloat(probability),
			AchieveGoalDate: &achieved,
		}},
	}
}

func buildTestOutput() *domain.SimulationOutput {
	diff := map[domain.Horizon]decimal.Decimal{}
	for i, h := range domain.Horizons {
		diff[h] = decimal.NewFromInt(5000 * int64(i+1))
	}
	return &domain.SimulationOutput{
		CurrentPath: buildTestPath(0.1, 0.42, 100000),
		OptimizedPath: domain.OptimizedPathResult{
			PathResult:          buildTestPath(0.2, 0.86, 105000),
			RequiredSavingsRate: decimal.NewFromFloat(0.2),
			TargetProbability:   decimal.NewFromFloat(0.85),
			TargetReached:       true,
			Converged:           true,
			Evaluations:         7,
		},
		WealthDifference: diff,
		Metadata: domain.SimulationMetadata{
			RunID:           "3f6c2b1e-8d4a-4c55-9a7e-2b9f0d1c6e42",
			Iterations:      10000,
			ValidIterations: 10000,
			DurationMs:      120,
			Timestamp:       time.Date(2025, time.January, 15, 9, 30, 0, 0, time.UTC),
			Currency:        "USD",
			Country:         "US",
			Seed:            42,
			HorizonMonths:   240,
		},
	}
}
