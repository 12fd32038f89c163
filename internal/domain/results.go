package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// NotAchieved marks a goal that was never reached within the simulated months.
const NotAchieved = -1

// GoalOutcome is one goal's result within a single path. AchievedMonth is the
// first month net worth reached the goal amount (0 when it already had at the
// start, NotAchieved when never). Achieved additionally requires that month to
// fall on or before the goal's deadline.
type GoalOutcome struct {
	Achieved      bool `json:"achieved"`
	AchievedMonth int  `json:"achievedMonth"`
}

// MonteCarloIteration is the outcome of one simulated path. It only lives for
// the duration of one aggregator run.
type MonteCarloIteration struct {
	NetWorthByHorizon [HorizonCount]float64 `json:"netWorthByHorizon"`
	GoalAchieved      bool                  `json:"goalAchieved"`
	GoalAchievedMonth int                   `json:"goalAchievedMonth"`
	Goals             []GoalOutcome         `json:"goals"`
}

// HorizonStatistics summarizes the distribution of net worth at one horizon.
type HorizonStatistics struct {
	Mean   float64 `json:"mean"`
	StdDev float64 `json:"stdDev"`
	Min    float64 `json:"min"`
	Max    float64 `json:"max"`
}

// GoalAggregate is the per-goal breakdown of an aggregator run.
type GoalAggregate struct {
	Index               int     `json:"index"`
	Probability         float64 `json:"probability"`
	MedianAchievedMonth *int    `json:"medianAchievedMonth,omitempty"`
}

// MonteCarloAggregatedResults is derived from the full set of valid iterations
// of one aggregator run. Per-horizon arrays are indexed like Horizons.
type MonteCarloAggregatedResults struct {
	Iterations          int `json:"iterations"`
	ValidIterations     int `json:"validIterations"`
	DiscardedIterations int `json:"discardedIterations"`

	Probability           float64                         `json:"probability"`
	MedianNetWorth        [HorizonCount]float64           `json:"medianNetWorth"`
	Percentile10ByHorizon [HorizonCount]float64           `json:"percentile10ByHorizon"`
	Percentile90ByHorizon [HorizonCount]float64           `json:"percentile90ByHorizon"`
	Statistics            [HorizonCount]HorizonStatistics `json:"statistics"`
	MedianAchievedMonth   *int                            `json:"medianAchievedMonth,omitempty"`

	// Set only when more than one goal is simulated.
	AllGoalsProbability *float64        `json:"allGoalsProbability,omitempty"`
	GoalResults         []GoalAggregate `json:"goalResults,omitempty"`
}

// ConfidenceInterval is the 10th to 90th percentile band at one horizon.
type ConfidenceInterval struct {
	Lower decimal.Decimal `json:"lower"`
	Upper decimal.Decimal `json:"upper"`
}

// GoalPathResult is one goal's outcome as consumed by presentation services.
type GoalPathResult struct {
	Name            string          `json:"name,omitempty"`
	Amount          decimal.Decimal `json:"amount"`
	Deadline        time.Time       `json:"deadline"`
	Priority        int             `json:"priority,omitempty"`
	Probability     decimal.Decimal `json:"probability"`
	AchieveGoalDate *time.Time      `json:"achieveGoalDate,omitempty"`
}

// PathResult is the externally consumed projection for one savings rate.
type PathResult struct {
	SavingsRate           decimal.Decimal                `json:"savingsRate"`
	Probability           decimal.Decimal                `json:"probability"`
	ProjectedNetWorth     map[Horizon]decimal.Decimal    `json:"projectedNetWorth"`
	ConfidenceIntervals   map[Horizon]ConfidenceInterval `json:"confidenceIntervals"`
	DeterministicNetWorth map[Horizon]decimal.Decimal    `json:"deterministicNetWorth"`
	AchieveGoalDate       *time.Time                     `json:"achieveGoalDate,omitempty"`
	AllGoalsProbability   *decimal.Decimal               `json:"allGoalsProbability,omitempty"`
	Goals                 []GoalPathResult               `json:"goals"`
}

// OptimizedPathResult is the projection at the recommended savings rate.
// TargetReached is false when even the maximum rate falls short of the target.
type OptimizedPathResult struct {
	PathResult
	RequiredSavingsRate decimal.Decimal `json:"requiredSavingsRate"`
	TargetProbability   decimal.Decimal `json:"targetProbability"`
	TargetReached       bool            `json:"targetReached"`
	Converged           bool            `json:"converged"`
	Evaluations         int             `json:"evaluations"`
}

// SimulationMetadata describes how a SimulationOutput was produced. RunID
// identifies the run that computed the output; a cached output keeps the ID
// of the run that filled the cache.
type SimulationMetadata struct {
	RunID               string    `json:"runId"`
	Iterations          int       `json:"iterations"`
	ValidIterations     int       `json:"validIterations"`
	DiscardedIterations int       `json:"discardedIterations"`
	DurationMs          int64     `json:"durationMs"`
	Timestamp           time.Time `json:"timestamp"`
	Currency            string    `json:"currency,omitempty"`
	Country             string    `json:"country,omitempty"`
	Seed                int64     `json:"seed"`
	RegimesEnabled      bool      `json:"regimesEnabled"`
	HorizonMonths       int       `json:"horizonMonths"`
}

// SimulationOutput compares the user's current path with the optimized path.
type SimulationOutput struct {
	CurrentPath      PathResult                  `json:"currentPath"`
	OptimizedPath    OptimizedPathResult         `json:"optimizedPath"`
	WealthDifference map[Horizon]decimal.Decimal `json:"wealthDifference"`
	Metadata         SimulationMetadata          `json:"metadata"`
}
