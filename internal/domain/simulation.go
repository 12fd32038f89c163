package domain

import (
	"fmt"
	"sort"
	"time"

	"github.com/shopspring/decimal"
)

// SimulationGoal is a net worth target the user wants to reach by a deadline.
// Priority only affects presentation order; every goal is tracked independently.
type SimulationGoal struct {
	Name     string          `yaml:"name" json:"name,omitempty" toml:"name"`
	Amount   decimal.Decimal `yaml:"amount" json:"amount" toml:"amount"`
	Deadline time.Time       `yaml:"deadline" json:"deadline" toml:"deadline"`
	Priority int             `yaml:"priority,omitempty" json:"priority,omitempty" toml:"priority"`
}

// SimulationInput is the immutable configuration of one simulation run, assembled
// by the caller from the user's normalized financial profile and goal records.
//
// Rates are annual and expressed as fractions (0.07 = 7%). Optional rates left nil
// are filled from the country defaults by the economic resolver.
type SimulationInput struct {
	CurrentSavingsRate decimal.Decimal  `yaml:"current_savings_rate" json:"currentSavingsRate" toml:"current_savings_rate"`
	MonthlyIncome      decimal.Decimal  `yaml:"monthly_income" json:"monthlyIncome" toml:"monthly_income"`
	MonthlyExpenses    *decimal.Decimal `yaml:"monthly_expenses,omitempty" json:"monthlyExpenses,omitempty" toml:"monthly_expenses"`
	CurrentNetWorth    decimal.Decimal  `yaml:"current_net_worth" json:"currentNetWorth" toml:"current_net_worth"`

	Goals []SimulationGoal `yaml:"goals,omitempty" json:"goals,omitempty" toml:"goals"`
	// Goal is the legacy single-goal field. It is folded into Goals when Goals is empty.
	Goal *SimulationGoal `yaml:"goal,omitempty" json:"goal,omitempty" toml:"goal"`

	ExpectedReturnRate *decimal.Decimal `yaml:"expected_return_rate,omitempty" json:"expectedReturnRate,omitempty" toml:"expected_return_rate"`
	InflationRate      *decimal.Decimal `yaml:"inflation_rate,omitempty" json:"inflationRate,omitempty" toml:"inflation_rate"`
	IncomeGrowthRate   *decimal.Decimal `yaml:"income_growth_rate,omitempty" json:"incomeGrowthRate,omitempty" toml:"income_growth_rate"`
	ExpenseGrowthRate  *decimal.Decimal `yaml:"expense_growth_rate,omitempty" json:"expenseGrowthRate,omitempty" toml:"expense_growth_rate"`
	TaxRateOnReturns   *decimal.Decimal `yaml:"tax_rate_on_returns,omitempty" json:"taxRateOnReturns,omitempty" toml:"tax_rate_on_returns"`

	EnableMarketRegimes bool             `yaml:"enable_market_regimes" json:"enableMarketRegimes" toml:"enable_market_regimes"`
	MonthlyWithdrawal   *decimal.Decimal `yaml:"monthly_withdrawal,omitempty" json:"monthlyWithdrawal,omitempty" toml:"monthly_withdrawal"`
	RandomSeed          *int64           `yaml:"random_seed,omitempty" json:"randomSeed,omitempty" toml:"random_seed"`

	// Country selects economic defaults; Currency is passed through to the output metadata.
	Country  string `yaml:"country,omitempty" json:"country,omitempty" toml:"country"`
	Currency string `yaml:"currency,omitempty" json:"currency,omitempty" toml:"currency"`
}

// GoalList returns the goals to simulate, folding the legacy single goal in
// when the list is empty. The receiver is not modified.
func (in SimulationInput) GoalList() []SimulationGoal {
	if len(in.Goals) > 0 {
		goals := make([]SimulationGoal, len(in.Goals))
		copy(goals, in.Goals)
		return goals
	}
	if in.Goal != nil {
		return []SimulationGoal{*in.Goal}
	}
	return nil
}

// Normalized returns a copy of the input with the legacy goal folded into Goals
// and the pointer fields detached from the caller's values.
func (in SimulationInput) Normalized() SimulationInput {
	out := in
	out.Goals = in.GoalList()
	out.Goal = nil
	out.MonthlyExpenses = cloneDecimal(in.MonthlyExpenses)
	out.ExpectedReturnRate = cloneDecimal(in.ExpectedReturnRate)
	out.InflationRate = cloneDecimal(in.InflationRate)
	out.IncomeGrowthRate = cloneDecimal(in.IncomeGrowthRate)
	out.ExpenseGrowthRate = cloneDecimal(in.ExpenseGrowthRate)
	out.TaxRateOnReturns = cloneDecimal(in.TaxRateOnReturns)
	out.MonthlyWithdrawal = cloneDecimal(in.MonthlyWithdrawal)
	if in.RandomSeed != nil {
		seed := *in.RandomSeed
		out.RandomSeed = &seed
	}
	return out
}

// Validate rejects inputs the engine cannot simulate. now is the simulation
// start; maxGoals bounds the goal list. The first violation is returned as an
// *InvalidInputError.
func (in SimulationInput) Validate(now time.Time, maxGoals int) error {
	one := decimal.NewFromInt(1)

	if in.CurrentSavingsRate.LessThan(decimal.Zero) || in.CurrentSavingsRate.GreaterThan(one) {
		return invalid("current_savings_rate", "must be between 0 and 1, got %s", in.CurrentSavingsRate)
	}
	if in.MonthlyIncome.LessThan(decimal.Zero) {
		return invalid("monthly_income", "cannot be negative")
	}
	if in.MonthlyExpenses != nil && in.MonthlyExpenses.LessThan(decimal.Zero) {
		return invalid("monthly_expenses", "cannot be negative")
	}
	if in.MonthlyWithdrawal != nil && in.MonthlyWithdrawal.LessThan(decimal.Zero) {
		return invalid("monthly_withdrawal", "cannot be negative")
	}
	if in.TaxRateOnReturns != nil && (in.TaxRateOnReturns.LessThan(decimal.Zero) || in.TaxRateOnReturns.GreaterThan(one)) {
		return invalid("tax_rate_on_returns", "must be between 0 and 1, got %s", *in.TaxRateOnReturns)
	}
	if in.ExpectedReturnRate != nil && in.ExpectedReturnRate.LessThanOrEqual(one.Neg()) {
		return invalid("expected_return_rate", "must be greater than -100%%")
	}
	if in.InflationRate != nil && in.InflationRate.LessThan(decimal.NewFromFloat(-0.10)) {
		return invalid("inflation_rate", "cannot be less than -10%% (extreme deflation)")
	}

	goals := in.GoalList()
	if len(goals) == 0 {
		return invalid("goals", "at least one goal is required")
	}
	if maxGoals > 0 && len(goals) > maxGoals {
		return invalid("goals", "at most %d goals are supported, got %d", maxGoals, len(goals))
	}
	for i, goal := range goals {
		field := fmt.Sprintf("goals[%d]", i)
		if goal.Amount.LessThanOrEqual(decimal.Zero) {
			return invalid(field+".amount", "must be positive, got %s", goal.Amount)
		}
		if goal.Deadline.IsZero() {
			return invalid(field+".deadline", "is required")
		}
		if !goal.Deadline.After(now) {
			return invalid(field+".deadline", "%s is not in the future", goal.Deadline.Format("2006-01-02"))
		}
	}

	return nil
}

// PresentationOrder returns goal indices ordered by priority. Goals without a
// priority keep their input order after the prioritized ones.
func PresentationOrder(goals []SimulationGoal) []int {
	order := make([]int, len(goals))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		pa, pb := goals[order[a]].Priority, goals[order[b]].Priority
		if pa == 0 || pb == 0 {
			return pa != 0 && pb == 0
		}
		return pa < pb
	})
	return order
}

func cloneDecimal(d *decimal.Decimal) *decimal.Decimal {
	if d == nil {
		return nil
	}
	v := *d
	return &v
}
