package calculation

import (
	"context"
	"testing"

	"github.com/rpgo/goalsim/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestOptimizer(s Settings) *SavingsRateOptimizer {
	agg := NewMonteCarloAggregator(NewPathSimulator(domain.DefaultRegimeTable(), s.ReturnStdDev), s, nil)
	return NewSavingsRateOptimizer(agg, s, nil)
}

func TestSavingsRateOptimizer_UnreachableGoalReturnsMaximum(t *testing.T) {
	s := testSettings()
	p := flatParams()
	p.goalAmounts = []float64{1e12}

	res, err := newTestOptimizer(s).FindRequiredRate(context.Background(), p, 1)
	require.NoError(t, err)

	assert.Equal(t, s.MaxSavingsRate, res.RequiredRate)
	assert.False(t, res.TargetReached)
	assert.False(t, res.Converged)
	assert.Equal(t, 1, res.Evaluations)
	assert.Equal(t, s.Iterations, res.Results.Iterations)
	assert.Zero(t, res.Results.Probability)
}

func TestSavingsRateOptimizer_GoalAlreadyMetConvergesToMinimum(t *testing.T) {
	s := testSettings()
	p := flatParams()
	p.goalAmounts = []float64{5000}

	res, err := newTestOptimizer(s).FindRequiredRate(context.Background(), p, 1)
	require.NoError(t, err)

	assert.True(t, res.TargetReached)
	assert.True(t, res.Converged)
	assert.Equal(t, s.MinSavingsRate, res.RequiredRate)
	assert.Equal(t, 2, res.Evaluations, "maximum then minimum, no bisection")
	assert.Equal(t, 1.0, res.Results.Probability)
}

func TestSavingsRateOptimizer_FindsInteriorRate(t *testing.T) {
	s := testSettings()
	s.ReturnStdDev = 0
	p := flatParams()
	p.monthlyExpenses = 0
	// 1000 a month for 12 months at rate r reaches 10000 + 12000r; 13000 needs r = 0.25
	p.goalAmounts = []float64{13000}

	res, err := newTestOptimizer(s).FindRequiredRate(context.Background(), p, 1)
	require.NoError(t, err)

	assert.True(t, res.TargetReached)
	assert.True(t, res.Converged)
	assert.InDelta(t, 0.25, res.RequiredRate, s.OptimizationTolerance)
	assert.GreaterOrEqual(t, res.RequiredRate, 0.25)
	assert.LessOrEqual(t, res.Evaluations, s.MaxOptimizationIterations)
}

func TestSavingsRateOptimizer_RespectsEvaluationLimit(t *testing.T) {
	s := testSettings()
	s.ReturnStdDev = 0
	s.MaxOptimizationIterations = 3
	s.OptimizationTolerance = 1e-9
	p := flatParams()
	p.monthlyExpenses = 0
	p.goalAmounts = []float64{13000}

	res, err := newTestOptimizer(s).FindRequiredRate(context.Background(), p, 1)
	require.NoError(t, err)

	assert.Equal(t, 3, res.Evaluations)
	assert.False(t, res.Converged)
	assert.GreaterOrEqual(t, res.RequiredRate, s.MinSavingsRate)
	assert.LessOrEqual(t, res.RequiredRate, s.MaxSavingsRate)
}

func TestSavingsRateOptimizer_SingleEvaluationSkipsMinimum(t *testing.T) {
	s := testSettings()
	s.MaxOptimizationIterations = 1
	p := flatParams()
	p.goalAmounts = []float64{5000}

	res, err := newTestOptimizer(s).FindRequiredRate(context.Background(), p, 1)
	require.NoError(t, err)

	assert.Equal(t, 1, res.Evaluations)
	assert.True(t, res.TargetReached)
	assert.Equal(t, s.MaxSavingsRate, res.RequiredRate)
	assert.False(t, res.Converged)
}
