package calculation

import (
	"fmt"
	"math"
	"runtime"
	"time"
)

// WithdrawalTrigger decides when a configured monthly withdrawal replaces savings.
type WithdrawalTrigger string

const (
	// WithdrawAfterAllGoals starts withdrawals once every goal has been reached.
	WithdrawAfterAllGoals WithdrawalTrigger = "all_goals"
	// WithdrawAfterAnyGoal starts withdrawals as soon as one goal has been reached.
	WithdrawAfterAnyGoal WithdrawalTrigger = "any_goal"
)

// Settings holds the tunable constants of the simulation engine.
type Settings struct {
	Iterations                int               `yaml:"iterations" json:"iterations" toml:"iterations"`
	OptimizationIterations    int               `yaml:"optimization_iterations" json:"optimizationIterations" toml:"optimization_iterations"`
	MinSavingsRate            float64           `yaml:"min_savings_rate" json:"minSavingsRate" toml:"min_savings_rate"`
	MaxSavingsRate            float64           `yaml:"max_savings_rate" json:"maxSavingsRate" toml:"max_savings_rate"`
	TargetProbability         float64           `yaml:"target_probability" json:"targetProbability" toml:"target_probability"`
	OptimizationTolerance     float64           `yaml:"optimization_tolerance" json:"optimizationTolerance" toml:"optimization_tolerance"`
	MaxOptimizationIterations int               `yaml:"max_optimization_iterations" json:"maxOptimizationIterations" toml:"max_optimization_iterations"`
	MaxGoals                  int               `yaml:"max_goals" json:"maxGoals" toml:"max_goals"`
	ReturnStdDev              float64           `yaml:"return_std_dev" json:"returnStdDev" toml:"return_std_dev"`
	MinValidIterationRatio    float64           `yaml:"min_valid_iteration_ratio" json:"minValidIterationRatio" toml:"min_valid_iteration_ratio"`
	Workers                   int               `yaml:"workers" json:"workers" toml:"workers"` // 0 = GOMAXPROCS
	WithdrawalTrigger         WithdrawalTrigger `yaml:"withdrawal_trigger" json:"withdrawalTrigger" toml:"withdrawal_trigger"`
	CacheTTL                  time.Duration     `yaml:"cache_ttl" json:"cacheTTL" toml:"cache_ttl"`
}

// DefaultSettings returns the production constants.
func DefaultSettings() Settings {
	return Settings{
		Iterations:                10000,
		OptimizationIterations:    1000,
		MinSavingsRate:            0.01,
		MaxSavingsRate:            0.35,
		TargetProbability:         0.85,
		OptimizationTolerance:     0.005,
		MaxOptimizationIterations: 20,
		MaxGoals:                  5,
		ReturnStdDev:              0.15,
		MinValidIterationRatio:    0.5,
		WithdrawalTrigger:         WithdrawAfterAllGoals,
		CacheTTL:                  5 * time.Minute,
	}
}

// Validate checks the settings for internal consistency.
func (s Settings) Validate() error {
	if s.Iterations <= 0 {
		return fmt.Errorf("iterations must be positive, got %d", s.Iterations)
	}
	if s.OptimizationIterations <= 0 {
		return fmt.Errorf("optimization iterations must be positive, got %d", s.OptimizationIterations)
	}
	if s.MinSavingsRate < 0 || s.MaxSavingsRate > 1 || s.MinSavingsRate >= s.MaxSavingsRate {
		return fmt.Errorf("savings rate bounds must satisfy 0 <= min < max <= 1, got [%g, %g]", s.MinSavingsRate, s.MaxSavingsRate)
	}
	if s.TargetProbability <= 0 || s.TargetProbability > 1 {
		return fmt.Errorf("target probability must be in (0, 1], got %g", s.TargetProbability)
	}
	if s.OptimizationTolerance <= 0 {
		return fmt.Errorf("optimization tolerance must be positive, got %g", s.OptimizationTolerance)
	}
	if s.MaxOptimizationIterations <= 0 {
		return fmt.Errorf("max optimization iterations must be positive, got %d", s.MaxOptimizationIterations)
	}
	if s.MaxGoals <= 0 {
		return fmt.Errorf("max goals must be positive, got %d", s.MaxGoals)
	}
	if s.ReturnStdDev < 0 || math.IsNaN(s.ReturnStdDev) || math.IsInf(s.ReturnStdDev, 0) {
		return fmt.Errorf("return standard deviation must be a non-negative finite number, got %g", s.ReturnStdDev)
	}
	if s.MinValidIterationRatio < 0 || s.MinValidIterationRatio > 1 {
		return fmt.Errorf("minimum valid iteration ratio must be between 0 and 1, got %g", s.MinValidIterationRatio)
	}
	if s.Workers < 0 {
		return fmt.Errorf("workers cannot be negative, got %d", s.Workers)
	}
	switch s.WithdrawalTrigger {
	case WithdrawAfterAllGoals, WithdrawAfterAnyGoal:
	default:
		return fmt.Errorf("withdrawal trigger must be %q or %q, got %q", WithdrawAfterAllGoals, WithdrawAfterAnyGoal, s.WithdrawalTrigger)
	}
	if s.CacheTTL < 0 {
		return fmt.Errorf("cache TTL cannot be negative, got %s", s.CacheTTL)
	}
	return nil
}

func (s Settings) workerCount(iterations int) int {
	workers := s.Workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	if workers > iterations {
		workers = iterations
	}
	if workers < 1 {
		workers = 1
	}
	return workers
}
