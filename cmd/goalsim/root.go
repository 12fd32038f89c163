package main

import (
	"context"
	"fmt"

	"github.com/rpgo/goalsim/internal/cache"
	"github.com/rpgo/goalsim/internal/calculation"
	"github.com/rpgo/goalsim/internal/config"
	"github.com/rpgo/goalsim/pkg/logger"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

// options holds the persistent flags shared by every command.
type options struct {
	format     string
	iterations int
	seed       int64
	country    string
	regimes    bool
	logLevel   string
	prettyLog  bool
	redisAddr  string
	outputDir  string

	log zerolog.Logger
}

// newRootCmd builds the command tree. Flag defaults come from GOALSIM_*
// environment variables or a .env file in the working directory.
func newRootCmd() *cobra.Command {
	opts := &options{}
	env, envErr := config.LoadEnvironment()
	if envErr != nil {
		env = config.Environment{LogLevel: "warn", Format: "console"}
	}

	rootCmd := &cobra.Command{
		Use:           "goalsim",
		Short:         "Monte Carlo savings goal simulator",
		Long:          "Estimate the probability of reaching net worth goals and the savings rate needed to reach them.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if envErr != nil {
				return fail(cmd, envErr)
			}
			opts.log = logger.New(logger.Config{
				Level:  opts.logLevel,
				Pretty: opts.prettyLog,
				Output: cmd.ErrOrStderr(),
			})
			logger.SetGlobalLogger(opts.log)
			return nil
		},
	}

	rootCmd.PersistentFlags().StringVarP(&opts.format, "format", "f", env.Format, "Output format (console, console-lite, csv, detailed-csv, html, json)")
	rootCmd.PersistentFlags().IntVarP(&opts.iterations, "iterations", "n", 0, "Override the Monte Carlo iteration count")
	rootCmd.PersistentFlags().Int64Var(&opts.seed, "seed", 0, "Override the random seed (0 keeps the input's seed)")
	rootCmd.PersistentFlags().StringVar(&opts.country, "country", "", "Override the country used for economic defaults")
	rootCmd.PersistentFlags().BoolVar(&opts.regimes, "regimes", false, "Enable market regime switching")
	rootCmd.PersistentFlags().StringVar(&opts.logLevel, "log-level", env.LogLevel, "Log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().BoolVar(&opts.prettyLog, "pretty-log", env.PrettyLog, "Human-readable log output")
	rootCmd.PersistentFlags().StringVar(&opts.redisAddr, "redis-addr", env.RedisAddr, "Cache seeded results in Redis at this address")
	rootCmd.PersistentFlags().StringVarP(&opts.outputDir, "output-dir", "o", env.OutputDir, "Write reports to files in this directory instead of stdout")

	rootCmd.AddCommand(
		newSimulateCmd(opts),
		newMonteCarloCmd(opts),
		newOptimizeCmd(opts),
		newProjectCmd(opts),
		newRegimesCmd(opts),
		newDefaultsCmd(opts),
		newExampleCmd(opts),
	)
	return rootCmd
}

// loadRequest reads a request file and applies the flag overrides.
func (o *options) loadRequest(cmd *cobra.Command, path string) (*config.Request, error) {
	req, err := config.NewInputParser().LoadFromFile(path)
	if err != nil {
		return nil, err
	}

	flags := cmd.Flags()
	if o.iterations > 0 {
		req.Settings.Iterations = o.iterations
	}
	if flags.Changed("seed") {
		seed := o.seed
		req.Input.RandomSeed = &seed
	}
	if o.country != "" {
		req.Input.Country = o.country
	}
	if flags.Changed("regimes") {
		req.Input.EnableMarketRegimes = o.regimes
	}
	return req, nil
}

func (o *options) newEngine(req *config.Request) (*calculation.SimulationEngine, error) {
	engine, err := req.NewEngine()
	if err != nil {
		return nil, err
	}
	engine.SetLogger(logger.NewCalculationLogger(o.log, "engine"))
	return engine, nil
}

// simulator wraps the engine in a result cache: Redis when --redis-addr is
// set and reachable, otherwise an in-process store.
func (o *options) simulator(ctx context.Context, req *config.Request, engine *calculation.SimulationEngine) (cache.Simulator, func(), error) {
	var store cache.Store = cache.NewMemoryStore()
	closeFn := func() {}
	if o.redisAddr != "" {
		rs := cache.NewRedisStore(o.redisAddr)
		if err := rs.Ping(ctx); err != nil {
			o.log.Warn().Err(err).Str("addr", o.redisAddr).Msg("redis unavailable, using in-process cache")
			_ = rs.Close()
		} else {
			store = rs
			closeFn = func() { _ = rs.Close() }
		}
	}

	salt := struct {
		Settings  calculation.Settings
		Regimes   any
		Economics any
	}{req.Settings, req.Regimes, req.Economics}
	cached, err := cache.NewCachedSimulator(engine, store, req.Settings.CacheTTL, salt)
	if err != nil {
		closeFn()
		return nil, nil, err
	}
	cached.Logger = logger.NewCalculationLogger(o.log, "cache")
	return cached, closeFn, nil
}

func fail(cmd *cobra.Command, err error) error {
	fmt.Fprintf(cmd.ErrOrStderr(), "error: %v\n", err)
	return err
}
