package main

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/rpgo/goalsim/internal/domain"
	"github.com/rpgo/goalsim/internal/output"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
)

func newSimulateCmd(opts *options) *cobra.Command {
	var saveInput string
	cmd := &cobra.Command{
		Use:   "simulate <request-file>",
		Short: "Compare the current savings path with the optimized one",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			req, err := opts.loadRequest(cmd, args[0])
			if err != nil {
				return fail(cmd, err)
			}
			engine, err := opts.newEngine(req)
			if err != nil {
				return fail(cmd, err)
			}
			sim, closeFn, err := opts.simulator(cmd.Context(), req, engine)
			if err != nil {
				return fail(cmd, err)
			}
			defer closeFn()

			results, err := sim.Simulate(cmd.Context(), req.Input)
			if err != nil {
				return fail(cmd, err)
			}
			if saveInput != "" {
				if err := output.SaveInput(req.Input, saveInput); err != nil {
					return fail(cmd, fmt.Errorf("saving input: %w", err))
				}
			}

			if opts.outputDir != "" {
				paths, err := output.GenerateReport(results, opts.format, opts.outputDir)
				if err != nil {
					return fail(cmd, err)
				}
				for _, p := range paths {
					fmt.Fprintf(cmd.OutOrStdout(), "Report written to %s\n", p)
				}
				return nil
			}
			if err := output.Render(cmd.OutOrStdout(), results, opts.format); err != nil {
				return fail(cmd, err)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&saveInput, "save-input", "", "Write the effective input, after flag overrides, to this YAML file")
	return cmd
}

func newMonteCarloCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "montecarlo <request-file>",
		Short: "Run the Monte Carlo simulation at the current savings rate",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			req, err := opts.loadRequest(cmd, args[0])
			if err != nil {
				return fail(cmd, err)
			}
			engine, err := opts.newEngine(req)
			if err != nil {
				return fail(cmd, err)
			}
			res, err := engine.RunMonteCarlo(cmd.Context(), req.Input, 0)
			if err != nil {
				return fail(cmd, err)
			}
			if output.NormalizeFormatName(opts.format) == "json" {
				return writeJSON(cmd.OutOrStdout(), res)
			}
			return writeAggregate(cmd.OutOrStdout(), res, req.Input.Currency)
		},
	}
}

func newOptimizeCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "optimize <request-file>",
		Short: "Find the savings rate needed to reach the target probability",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			req, err := opts.loadRequest(cmd, args[0])
			if err != nil {
				return fail(cmd, err)
			}
			engine, err := opts.newEngine(req)
			if err != nil {
				return fail(cmd, err)
			}
			res, err := engine.OptimizeSavingsRate(cmd.Context(), req.Input)
			if err != nil {
				return fail(cmd, err)
			}
			if output.NormalizeFormatName(opts.format) == "json" {
				return writeJSON(cmd.OutOrStdout(), res)
			}

			w := cmd.OutOrStdout()
			fmt.Fprintf(w, "Required savings rate: %s\n", output.FormatPercentage(res.RequiredSavingsRate))
			fmt.Fprintf(w, "Target probability:    %s\n", output.FormatPercentage(res.TargetProbability))
			fmt.Fprintf(w, "Probability at rate:   %s\n", output.FormatPercentage(res.Probability))
			fmt.Fprintf(w, "Target reached:        %t\n", res.TargetReached)
			fmt.Fprintf(w, "Converged:             %t (%d evaluations)\n", res.Converged, res.Evaluations)
			fmt.Fprintf(w, "Goal date:             %s\n", output.FormatDate(res.AchieveGoalDate))
			return writeHorizons(w, res.ProjectedNetWorth, req.Input.Currency)
		},
	}
}

func newProjectCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "project <request-file>",
		Short: "Project net worth at each horizon with no randomness",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			req, err := opts.loadRequest(cmd, args[0])
			if err != nil {
				return fail(cmd, err)
			}
			engine, err := opts.newEngine(req)
			if err != nil {
				return fail(cmd, err)
			}
			projected, err := engine.ProjectDeterministic(req.Input)
			if err != nil {
				return fail(cmd, err)
			}
			if output.NormalizeFormatName(opts.format) == "json" {
				return writeJSON(cmd.OutOrStdout(), projected)
			}
			return writeHorizons(cmd.OutOrStdout(), projected, req.Input.Currency)
		},
	}
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func writeHorizons(w io.Writer, values map[domain.Horizon]decimal.Decimal, currency string) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "HORIZON\tMONTHS\tNET WORTH")
	for _, h := range domain.Horizons {
		fmt.Fprintf(tw, "%s\t%d\t%s\n", h, h.Months(), output.FormatCurrency(values[h], currency))
	}
	return tw.Flush()
}

func writeAggregate(w io.Writer, res *domain.MonteCarloAggregatedResults, currency string) error {
	fmt.Fprintf(w, "Iterations: %d valid of %d (%d discarded)\n", res.ValidIterations, res.Iterations, res.DiscardedIterations)
	fmt.Fprintf(w, "Goal probability: %s\n", output.FormatPercentage(decimal.NewFromFloat(res.Probability)))
	if res.AllGoalsProbability != nil {
		fmt.Fprintf(w, "All goals probability: %s\n", output.FormatPercentage(decimal.NewFromFloat(*res.AllGoalsProbability)))
	}
	if res.MedianAchievedMonth != nil {
		fmt.Fprintf(w, "Median months to goal: %d\n", *res.MedianAchievedMonth)
	}

	money := func(v float64) string {
		return output.FormatCurrency(decimal.NewFromFloat(v), currency)
	}
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "HORIZON\tMONTHS\tP10\tMEDIAN\tP90\tMEAN\tSTD DEV")
	for i, h := range domain.Horizons {
		s := res.Statistics[i]
		fmt.Fprintf(tw, "%s\t%d\t%s\t%s\t%s\t%s\t%s\n", h, h.Months(),
			money(res.Percentile10ByHorizon[i]), money(res.MedianNetWorth[i]), money(res.Percentile90ByHorizon[i]),
			money(s.Mean), money(s.StdDev))
	}
	return tw.Flush()
}
