package calculation

import (
	"context"
	"fmt"
	"math"
	"math/rand/v2"
	"sort"

	"github.com/rpgo/goalsim/internal/domain"
	"golang.org/x/sync/errgroup"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// MonteCarloAggregator runs many independent paths and reduces them to
// probabilities, percentiles and per-horizon statistics.
type MonteCarloAggregator struct {
	paths    *PathSimulator
	settings Settings
	logger   Logger
}

// NewMonteCarloAggregator creates an aggregator over paths.
func NewMonteCarloAggregator(paths *PathSimulator, settings Settings, logger Logger) *MonteCarloAggregator {
	return &MonteCarloAggregator{paths: paths, settings: settings, logger: loggerOrNop(logger)}
}

// iterationRand returns the random stream for iteration i of a run seeded with
// seed. Streams are independent of worker count and scheduling.
func iterationRand(seed int64, i int) *rand.Rand {
	return rand.New(rand.NewPCG(uint64(seed), uint64(i)))
}

// Run simulates iterations paths in parallel and aggregates them. Results are
// bit-identical for a given seed regardless of the number of workers.
func (a *MonteCarloAggregator) Run(ctx context.Context, p pathParams, iterations int, seed int64) (*domain.MonteCarloAggregatedResults, error) {
	if iterations <= 0 {
		return nil, fmt.Errorf("iterations must be positive, got %d", iterations)
	}

	results := make([]domain.MonteCarloIteration, iterations)
	valid := make([]bool, iterations)
	workers := a.settings.workerCount(iterations)

	g, gctx := errgroup.WithContext(ctx)
	for w := 0; w < workers; w++ {
		g.Go(func() error {
			for i := w; i < iterations; i += workers {
				if err := gctx.Err(); err != nil {
					return err
				}
				results[i], valid[i] = a.paths.Run(p, iterationRand(seed, i))
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("monte carlo run cancelled: %w", err)
	}

	return a.aggregate(results, valid, len(p.goalAmounts))
}

func (a *MonteCarloAggregator) aggregate(results []domain.MonteCarloIteration, valid []bool, goalCount int) (*domain.MonteCarloAggregatedResults, error) {
	requested := len(results)
	kept := make([]domain.MonteCarloIteration, 0, requested)
	for i := range results {
		if valid[i] {
			kept = append(kept, results[i])
		}
	}

	minValid := int(math.Ceil(a.settings.MinValidIterationRatio * float64(requested)))
	if minValid < 1 {
		minValid = 1
	}
	if len(kept) < minValid {
		a.logger.Errorf("only %d of %d iterations were numerically valid", len(kept), requested)
		return nil, &domain.NumericalInstabilityError{Valid: len(kept), Requested: requested, MinValid: minValid}
	}
	if discarded := requested - len(kept); discarded > 0 {
		a.logger.Warnf("discarded %d of %d iterations with non-finite net worth", discarded, requested)
	}

	return aggregateIterations(kept, requested, goalCount), nil
}

// aggregateIterations reduces valid iterations. iterations must be non-empty.
func aggregateIterations(iterations []domain.MonteCarloIteration, requested, goalCount int) *domain.MonteCarloAggregatedResults {
	n := len(iterations)
	res := &domain.MonteCarloAggregatedResults{
		Iterations:          requested,
		ValidIterations:     n,
		DiscardedIterations: requested - n,
	}

	values := make([]float64, n)
	for h := 0; h < domain.HorizonCount; h++ {
		for i := range iterations {
			values[i] = iterations[i].NetWorthByHorizon[h]
		}
		sort.Float64s(values)
		res.MedianNetWorth[h] = percentile(values, 0.5)
		res.Percentile10ByHorizon[h] = percentile(values, 0.1)
		res.Percentile90ByHorizon[h] = percentile(values, 0.9)
		res.Statistics[h] = summarize(values)
	}

	var successes int
	var months []int
	for i := range iterations {
		if iterations[i].GoalAchieved {
			successes++
			months = append(months, iterations[i].GoalAchievedMonth)
		}
	}
	res.Probability = float64(successes) / float64(n)
	res.MedianAchievedMonth = medianMonth(months)

	if goalCount > 1 {
		var all int
		res.GoalResults = make([]domain.GoalAggregate, goalCount)
		perGoal := make([][]int, goalCount)
		for i := range iterations {
			everyGoal := true
			for g := 0; g < goalCount; g++ {
				outcome := iterations[i].Goals[g]
				if outcome.Achieved {
					perGoal[g] = append(perGoal[g], outcome.AchievedMonth)
				} else {
					everyGoal = false
				}
			}
			if everyGoal {
				all++
			}
		}
		for g := 0; g < goalCount; g++ {
			res.GoalResults[g] = domain.GoalAggregate{
				Index:               g,
				Probability:         float64(len(perGoal[g])) / float64(n),
				MedianAchievedMonth: medianMonth(perGoal[g]),
			}
		}
		allProbability := float64(all) / float64(n)
		res.AllGoalsProbability = &allProbability
	}

	return res
}

// percentile returns sorted[floor(p*(n-1))].
func percentile(sorted []float64, p float64) float64 {
	if len(sorted) == 0 {
		return 0
	}
	return sorted[int(math.Floor(p*float64(len(sorted)-1)))]
}

func medianMonth(months []int) *int {
	if len(months) == 0 {
		return nil
	}
	sort.Ints(months)
	m := months[int(math.Floor(0.5*float64(len(months)-1)))]
	return &m
}

func summarize(sorted []float64) domain.HorizonStatistics {
	s := domain.HorizonStatistics{
		Mean: stat.Mean(sorted, nil),
		Min:  floats.Min(sorted),
		Max:  floats.Max(sorted),
	}
	if len(sorted) > 1 {
		s.StdDev = stat.StdDev(sorted, nil)
	}
	return s
}
