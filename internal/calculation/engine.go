package calculation

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rpgo/goalsim/internal/domain"
	"github.com/rpgo/goalsim/pkg/dateutil"
	money "github.com/rpgo/goalsim/pkg/decimal"
	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"
)

// SimulationEngine orchestrates goal simulations: it resolves economic
// defaults, runs the current path and the savings-rate search in parallel and
// assembles the comparison.
type SimulationEngine struct {
	settings   Settings
	regimes    domain.RegimeTable
	economics  *EconomicResolver
	paths      *PathSimulator
	aggregator *MonteCarloAggregator
	optimizer  *SavingsRateOptimizer
	Logger     Logger
}

// NewSimulationEngine creates an engine with the default settings, regime
// table and country defaults.
func NewSimulationEngine() *SimulationEngine {
	engine, err := NewSimulationEngineWithSettings(DefaultSettings(), nil, nil)
	if err != nil {
		// defaults are valid by construction
		panic(err)
	}
	return engine
}

// NewSimulationEngineWithSettings creates an engine from explicit settings.
// An empty regime table or nil resolver selects the built-in defaults.
func NewSimulationEngineWithSettings(settings Settings, regimes domain.RegimeTable, economics *EconomicResolver) (*SimulationEngine, error) {
	if err := settings.Validate(); err != nil {
		return nil, fmt.Errorf("invalid engine settings: %w", err)
	}
	if len(regimes) == 0 {
		regimes = domain.DefaultRegimeTable()
	} else {
		regimes = regimes.Clone()
	}
	if err := regimes.Validate(); err != nil {
		return nil, fmt.Errorf("invalid regime table: %w", err)
	}
	if economics == nil {
		economics = NewEconomicResolver(nil)
	}

	engine := &SimulationEngine{
		settings:  settings,
		regimes:   regimes,
		economics: economics,
		paths:     NewPathSimulator(regimes, settings.ReturnStdDev),
	}
	engine.aggregator = NewMonteCarloAggregator(engine.paths, settings, nil)
	engine.optimizer = NewSavingsRateOptimizer(engine.aggregator, settings, nil)
	engine.SetLogger(nil)
	return engine, nil
}

// SetLogger sets the logger for the engine and its components. If nil is provided, a no-op logger is used.
func (e *SimulationEngine) SetLogger(l Logger) {
	l = loggerOrNop(l)
	e.Logger = l
	e.aggregator.logger = l
	e.optimizer.logger = l
}

// Settings returns the engine's settings.
func (e *SimulationEngine) Settings() Settings { return e.settings }

// Regimes returns a copy of the engine's regime table.
func (e *SimulationEngine) Regimes() domain.RegimeTable { return e.regimes.Clone() }

// Economics returns the engine's country defaults resolver.
func (e *SimulationEngine) Economics() *EconomicResolver { return e.economics }

type preparedRun struct {
	input  domain.SimulationInput
	params pathParams
	start  time.Time
	seed   int64
}

func (e *SimulationEngine) prepare(input domain.SimulationInput) (*preparedRun, error) {
	start := nowFunc()
	if err := input.Validate(start, e.settings.MaxGoals); err != nil {
		return nil, err
	}

	resolved := e.economics.ResolveInput(input)
	seed := seedFunc()
	if resolved.RandomSeed != nil {
		seed = *resolved.RandomSeed
	}

	return &preparedRun{
		input:  resolved,
		params: e.pathParams(resolved, start),
		start:  start,
		seed:   seed,
	}, nil
}

func (e *SimulationEngine) pathParams(in domain.SimulationInput, start time.Time) pathParams {
	inflation := money.FloatOr(in.InflationRate, 0)
	p := pathParams{
		savingsRate:           money.Float(in.CurrentSavingsRate),
		clampNegativeCashFlow: true,
		monthlyIncome:         money.Float(in.MonthlyIncome),
		monthlyExpenses:       money.FloatOr(in.MonthlyExpenses, 0),
		netWorth:              money.Float(in.CurrentNetWorth),
		annualReturn:          money.FloatOr(in.ExpectedReturnRate, 0),
		inflationRate:         inflation,
		incomeGrowthRate:      money.FloatOr(in.IncomeGrowthRate, 0),
		expenseGrowthRate:     money.FloatOr(in.ExpenseGrowthRate, inflation),
		taxRate:               money.FloatOr(in.TaxRateOnReturns, 0),
		monthlyWithdrawal:     money.FloatOr(in.MonthlyWithdrawal, 0),
		withdrawalTrigger:     e.settings.WithdrawalTrigger,
		regimesEnabled:        in.EnableMarketRegimes,
		months:                domain.LongestHorizonMonths,
	}
	for _, goal := range in.Goals {
		deadline := dateutil.MonthsUntilDeadline(start, goal.Deadline)
		p.goalAmounts = append(p.goalAmounts, money.Float(goal.Amount))
		p.goalDeadlines = append(p.goalDeadlines, deadline)
		if deadline > p.months {
			p.months = deadline
		}
	}
	return p
}

// Simulate runs the full comparison of the current savings rate against the
// optimized one. The two paths run in parallel on the same seed.
func (e *SimulationEngine) Simulate(ctx context.Context, input domain.SimulationInput) (*domain.SimulationOutput, error) {
	began := time.Now()
	run, err := e.prepare(input)
	if err != nil {
		return nil, err
	}
	runID := uuid.NewString()
	e.Logger.Infof("starting simulation %s: %d goals, %d iterations, %d months, seed=%d, regimes=%t",
		runID, len(run.params.goalAmounts), e.settings.Iterations, run.params.months, run.seed, run.params.regimesEnabled)

	var current *domain.MonteCarloAggregatedResults
	var optimized *OptimizationResult
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		res, err := e.aggregator.Run(gctx, run.params, e.settings.Iterations, run.seed)
		if err != nil {
			return fmt.Errorf("current path: %w", err)
		}
		current = res
		return nil
	})
	g.Go(func() error {
		res, err := e.optimizer.FindRequiredRate(gctx, run.params, run.seed)
		if err != nil {
			return fmt.Errorf("optimized path: %w", err)
		}
		optimized = res
		return nil
	})
	if err := g.Wait(); err != nil {
		e.Logger.Errorf("simulation failed: %v", err)
		return nil, err
	}

	out := &domain.SimulationOutput{
		CurrentPath:      e.pathResult(run, run.params, current),
		OptimizedPath:    e.optimizedPathResult(run, optimized),
		WealthDifference: make(map[domain.Horizon]decimal.Decimal, domain.HorizonCount),
		Metadata: domain.SimulationMetadata{
			RunID:               runID,
			Iterations:          current.Iterations,
			ValidIterations:     current.ValidIterations,
			DiscardedIterations: current.DiscardedIterations,
			DurationMs:          time.Since(began).Milliseconds(),
			Timestamp:           run.start,
			Currency:            run.input.Currency,
			Country:             run.input.Country,
			Seed:                run.seed,
			RegimesEnabled:      run.params.regimesEnabled,
			HorizonMonths:       run.params.months,
		},
	}
	for _, h := range domain.Horizons {
		opt := money.NewMoneyFromDecimal(out.OptimizedPath.ProjectedNetWorth[h])
		cur := money.NewMoneyFromDecimal(out.CurrentPath.ProjectedNetWorth[h])
		out.WealthDifference[h] = opt.Sub(cur).Decimal
	}

	e.Logger.Infof("simulation %s complete in %dms: current probability %.4f, required rate %.4f",
		runID, out.Metadata.DurationMs, current.Probability, optimized.RequiredRate)
	return out, nil
}

// RunMonteCarlo aggregates the current savings rate only. iterations <= 0
// uses the configured iteration count.
func (e *SimulationEngine) RunMonteCarlo(ctx context.Context, input domain.SimulationInput, iterations int) (*domain.MonteCarloAggregatedResults, error) {
	run, err := e.prepare(input)
	if err != nil {
		return nil, err
	}
	if iterations <= 0 {
		iterations = e.settings.Iterations
	}
	return e.aggregator.Run(ctx, run.params, iterations, run.seed)
}

// OptimizeSavingsRate runs only the savings-rate search.
func (e *SimulationEngine) OptimizeSavingsRate(ctx context.Context, input domain.SimulationInput) (*domain.OptimizedPathResult, error) {
	run, err := e.prepare(input)
	if err != nil {
		return nil, err
	}
	res, err := e.optimizer.FindRequiredRate(ctx, run.params, run.seed)
	if err != nil {
		return nil, err
	}
	result := e.optimizedPathResult(run, res)
	return &result, nil
}

// ProjectDeterministic returns net worth at each horizon with every monthly
// return fixed at its expected value.
func (e *SimulationEngine) ProjectDeterministic(input domain.SimulationInput) (map[domain.Horizon]decimal.Decimal, error) {
	run, err := e.prepare(input)
	if err != nil {
		return nil, err
	}
	return deterministicByHorizon(run.params)
}

func deterministicByHorizon(p pathParams) (map[domain.Horizon]decimal.Decimal, error) {
	iter, ok := projectDeterministic(p)
	if !ok {
		return nil, &domain.NumericalInstabilityError{Valid: 0, Requested: 1, MinValid: 1}
	}
	out := make(map[domain.Horizon]decimal.Decimal, domain.HorizonCount)
	for i, h := range domain.Horizons {
		out[h] = money.Cents(iter.NetWorthByHorizon[i])
	}
	return out, nil
}

func (e *SimulationEngine) optimizedPathResult(run *preparedRun, res *OptimizationResult) domain.OptimizedPathResult {
	params := run.params.withSavingsRate(res.RequiredRate, false)
	return domain.OptimizedPathResult{
		PathResult:          e.pathResult(run, params, res.Results),
		RequiredSavingsRate: money.Rate(res.RequiredRate),
		TargetProbability:   money.Rate(e.settings.TargetProbability),
		TargetReached:       res.TargetReached,
		Converged:           res.Converged,
		Evaluations:         res.Evaluations,
	}
}

func (e *SimulationEngine) pathResult(run *preparedRun, params pathParams, res *domain.MonteCarloAggregatedResults) domain.PathResult {
	out := domain.PathResult{
		SavingsRate:         money.Rate(params.savingsRate),
		Probability:         money.Rate(res.Probability),
		ProjectedNetWorth:   make(map[domain.Horizon]decimal.Decimal, domain.HorizonCount),
		ConfidenceIntervals: make(map[domain.Horizon]domain.ConfidenceInterval, domain.HorizonCount),
		AchieveGoalDate:     run.monthDate(res.MedianAchievedMonth),
	}
	for i, h := range domain.Horizons {
		out.ProjectedNetWorth[h] = money.Cents(res.MedianNetWorth[i])
		out.ConfidenceIntervals[h] = domain.ConfidenceInterval{
			Lower: money.Cents(res.Percentile10ByHorizon[i]),
			Upper: money.Cents(res.Percentile90ByHorizon[i]),
		}
	}
	if deterministic, err := deterministicByHorizon(params); err == nil {
		out.DeterministicNetWorth = deterministic
	} else {
		e.Logger.Warnf("deterministic projection overflowed at savings rate %.4f", params.savingsRate)
	}
	if res.AllGoalsProbability != nil {
		all := money.Rate(*res.AllGoalsProbability)
		out.AllGoalsProbability = &all
	}

	for _, idx := range domain.PresentationOrder(run.input.Goals) {
		goal := run.input.Goals[idx]
		gr := domain.GoalPathResult{
			Name:        goal.Name,
			Amount:      goal.Amount,
			Deadline:    goal.Deadline,
			Priority:    goal.Priority,
			Probability: money.Rate(res.Probability),
		}
		if idx < len(res.GoalResults) {
			gr.Probability = money.Rate(res.GoalResults[idx].Probability)
			gr.AchieveGoalDate = run.monthDate(res.GoalResults[idx].MedianAchievedMonth)
		} else {
			gr.AchieveGoalDate = out.AchieveGoalDate
		}
		out.Goals = append(out.Goals, gr)
	}
	return out
}

func (r *preparedRun) monthDate(month *int) *time.Time {
	if month == nil {
		return nil
	}
	date := dateutil.AddMonths(r.start, *month)
	return &date
}
