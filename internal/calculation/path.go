package calculation

import (
	"math"
	"math/rand/v2"

	"github.com/rpgo/goalsim/internal/domain"
	"gonum.org/v1/gonum/stat/distuv"
)

var sqrt12 = math.Sqrt(12)

// pathParams is the float64 view of a resolved input that the hot loop runs on.
type pathParams struct {
	savingsRate float64
	// clampNegativeCashFlow stops a deficit from being "saved" as a negative
	// contribution. The current path clamps; optimizer searches do not.
	clampNegativeCashFlow bool

	monthlyIncome     float64
	monthlyExpenses   float64
	netWorth          float64
	goalAmounts       []float64
	goalDeadlines     []int // months from start, at least 1
	annualReturn      float64
	inflationRate     float64
	incomeGrowthRate  float64
	expenseGrowthRate float64
	taxRate           float64
	monthlyWithdrawal float64
	withdrawalTrigger WithdrawalTrigger
	regimesEnabled    bool
	months            int
}

func (p pathParams) withSavingsRate(rate float64, clamp bool) pathParams {
	p.savingsRate = rate
	p.clampNegativeCashFlow = clamp
	return p
}

// PathSimulator produces one month-by-month net-worth trajectory per call.
type PathSimulator struct {
	regimes      domain.RegimeTable
	returnStdDev float64
}

// NewPathSimulator creates a simulator that draws annual returns with the
// given standard deviation, shaped by the regime table when regimes are on.
func NewPathSimulator(regimes domain.RegimeTable, returnStdDev float64) *PathSimulator {
	return &PathSimulator{regimes: regimes, returnStdDev: returnStdDev}
}

// Run simulates one stochastic path using rng as the only source of
// randomness. The second result is false when the path overflowed or
// produced NaN and must be discarded.
//
// Per month the draws are: the regime continuation uniform, the regime
// transition uniform (only when leaving), then one normal return.
func (ps *PathSimulator) Run(p pathParams, rng *rand.Rand) (domain.MonteCarloIteration, bool) {
	regime := NewRegimeModel(ps.regimes, p.regimesEnabled, p.annualReturn, ps.returnStdDev)
	normal := distuv.Normal{Src: rng}
	return walk(p, func() float64 {
		mean, stdDev := regime.Next(rng)
		normal.Mu = mean / 12
		normal.Sigma = stdDev / sqrt12
		return normal.Rand()
	})
}

// projectDeterministic runs the path with every monthly return fixed at the
// expected value and no regimes.
func projectDeterministic(p pathParams) (domain.MonteCarloIteration, bool) {
	monthly := p.annualReturn / 12
	return walk(p, func() float64 { return monthly })
}

func walk(p pathParams, nextReturn func() float64) (domain.MonteCarloIteration, bool) {
	iter := domain.MonteCarloIteration{
		GoalAchievedMonth: domain.NotAchieved,
		Goals:             make([]domain.GoalOutcome, len(p.goalAmounts)),
	}
	for g := range iter.Goals {
		iter.Goals[g].AchievedMonth = domain.NotAchieved
	}

	netWorth := p.netWorth
	income := p.monthlyIncome
	expenses := p.monthlyExpenses
	incomeStep := 1 + p.incomeGrowthRate/12
	expenseStep := 1 + p.expenseGrowthRate/12
	afterTax := 1 - p.taxRate

	reached := 0
	markGoals := func(month int) {
		for g, amount := range p.goalAmounts {
			if iter.Goals[g].AchievedMonth != domain.NotAchieved || netWorth < amount {
				continue
			}
			iter.Goals[g].AchievedMonth = month
			iter.Goals[g].Achieved = month <= p.goalDeadlines[g]
			reached++
		}
	}
	markGoals(0)

	horizon := 0
	for month := 1; month <= p.months; month++ {
		if month > 1 {
			income *= incomeStep
			expenses *= expenseStep
		}

		r := nextReturn() * afterTax
		if withdrawing(p, reached) {
			netWorth = netWorth*(1+r) - p.monthlyWithdrawal
		} else {
			flow := income - expenses
			if p.clampNegativeCashFlow && flow < 0 {
				flow = 0
			}
			netWorth = netWorth*(1+r) + flow*p.savingsRate
		}

		if math.IsNaN(netWorth) || math.IsInf(netWorth, 0) {
			return iter, false
		}

		for horizon < domain.HorizonCount && domain.TimeHorizonMonths[horizon] == month {
			iter.NetWorthByHorizon[horizon] = netWorth
			horizon++
		}
		markGoals(month)
	}

	if len(iter.Goals) > 0 {
		iter.GoalAchieved = iter.Goals[0].Achieved
		iter.GoalAchievedMonth = iter.Goals[0].AchievedMonth
	}
	return iter, true
}

func withdrawing(p pathParams, reached int) bool {
	if p.monthlyWithdrawal <= 0 || reached == 0 {
		return false
	}
	if p.withdrawalTrigger == WithdrawAfterAnyGoal {
		return true
	}
	return reached == len(p.goalAmounts)
}
