package calculation

import (
	"testing"
	"time"

	"github.com/rpgo/goalsim/internal/domain"
	"github.com/rpgo/goalsim/pkg/dateutil"
	"github.com/shopspring/decimal"
)

var testStart = time.Date(2025, time.January, 15, 0, 0, 0, 0, time.UTC)

func fixedClock(t *testing.T) {
	t.Helper()
	SetNowFunc(func() time.Time { return testStart })
	t.Cleanup(func() { SetNowFunc(nil) })
}

func dec(v float64) decimal.Decimal { return decimal.NewFromFloat(v) }

func decPtr(v float64) *decimal.Decimal {
	d := decimal.NewFromFloat(v)
	return &d
}

func seedPtr(v int64) *int64 { return &v }

// scenarioInput is a household saving 10% of a 150k monthly surplus toward a
// 5M goal three years out.
func scenarioInput() domain.SimulationInput {
	return domain.SimulationInput{
		CurrentSavingsRate: dec(0.10),
		MonthlyIncome:      dec(500000),
		MonthlyExpenses:    decPtr(350000),
		CurrentNetWorth:    dec(3000000),
		Goals: []domain.SimulationGoal{{
			Name:     "house",
			Amount:   dec(5000000),
			Deadline: dateutil.AddMonths(testStart, 36),
		}},
		ExpectedReturnRate: decPtr(0.10),
		InflationRate:      decPtr(0.03),
		IncomeGrowthRate:   decPtr(0.03),
		RandomSeed:         seedPtr(42),
	}
}

func testSettings() Settings {
	s := DefaultSettings()
	s.Iterations = 500
	s.OptimizationIterations = 200
	s.Workers = 4
	return s
}

func newTestEngine(t *testing.T, s Settings) *SimulationEngine {
	t.Helper()
	engine, err := NewSimulationEngineWithSettings(s, nil, nil)
	if err != nil {
		t.Fatalf("failed to create engine: %v", err)
	}
	return engine
}

// flatParams has zero returns and no growth so paths are easy to follow by hand.
func flatParams() pathParams {
	return pathParams{
		savingsRate:           0.5,
		clampNegativeCashFlow: true,
		monthlyIncome:         1000,
		monthlyExpenses:       600,
		netWorth:              10000,
		goalAmounts:           []float64{1e9},
		goalDeadlines:         []int{12},
		withdrawalTrigger:     WithdrawAfterAllGoals,
		months:                domain.LongestHorizonMonths,
	}
}
