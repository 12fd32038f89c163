package calculation

import (
	"context"
	"fmt"

	"github.com/rpgo/goalsim/internal/domain"
)

// OptimizationResult is the outcome of the savings-rate search.
type OptimizationResult struct {
	// RequiredRate is the smallest evaluated rate that met the target, or the
	// maximum rate when even that fell short.
	RequiredRate float64
	// Results is the full-size validation run at RequiredRate.
	Results       *domain.MonteCarloAggregatedResults
	TargetReached bool
	Converged     bool
	Evaluations   int
}

// SavingsRateOptimizer searches for the lowest savings rate that reaches the
// target probability for the primary goal.
type SavingsRateOptimizer struct {
	aggregator *MonteCarloAggregator
	settings   Settings
	logger     Logger
}

// NewSavingsRateOptimizer creates an optimizer that evaluates rates through aggregator.
func NewSavingsRateOptimizer(aggregator *MonteCarloAggregator, settings Settings, logger Logger) *SavingsRateOptimizer {
	return &SavingsRateOptimizer{aggregator: aggregator, settings: settings, logger: loggerOrNop(logger)}
}

// FindRequiredRate bisects [MinSavingsRate, MaxSavingsRate] after evaluating
// both ends, so a minimum that already meets the target is returned exactly.
// Every evaluation uses the same seed so results differ only by rate. Negative cash flow
// is not clamped on this path.
func (o *SavingsRateOptimizer) FindRequiredRate(ctx context.Context, p pathParams, seed int64) (*OptimizationResult, error) {
	s := o.settings
	out := &OptimizationResult{}

	evaluate := func(rate float64) (bool, error) {
		res, err := o.aggregator.Run(ctx, p.withSavingsRate(rate, false), s.OptimizationIterations, seed)
		if err != nil {
			return false, fmt.Errorf("evaluating savings rate %.4f: %w", rate, err)
		}
		out.Evaluations++
		o.logger.Debugf("optimizer evaluation %d: rate=%.4f probability=%.4f", out.Evaluations, rate, res.Probability)
		return res.Probability >= s.TargetProbability, nil
	}

	low, high := s.MinSavingsRate, s.MaxSavingsRate
	reached, err := evaluate(high)
	if err != nil {
		return nil, err
	}
	out.TargetReached = reached

	if reached && out.Evaluations < s.MaxOptimizationIterations {
		lowOK, err := evaluate(low)
		if err != nil {
			return nil, err
		}
		if lowOK {
			high = low
		}
	}

	if reached {
		for out.Evaluations < s.MaxOptimizationIterations && high-low > s.OptimizationTolerance {
			mid := (low + high) / 2
			ok, err := evaluate(mid)
			if err != nil {
				return nil, err
			}
			if ok {
				high = mid
			} else {
				low = mid
			}
		}
		out.Converged = high-low <= s.OptimizationTolerance
	} else {
		o.logger.Warnf("target probability %.2f not reachable at maximum savings rate %.2f", s.TargetProbability, high)
	}
	out.RequiredRate = high

	final, err := o.aggregator.Run(ctx, p.withSavingsRate(high, false), s.Iterations, seed)
	if err != nil {
		return nil, fmt.Errorf("validating savings rate %.4f: %w", high, err)
	}
	out.Results = final

	o.logger.Infof("required savings rate %.4f after %d evaluations (converged=%t, validated probability=%.4f)",
		out.RequiredRate, out.Evaluations, out.Converged, final.Probability)
	return out, nil
}
