package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/rpgo/goalsim/internal/calculation"
	"github.com/rpgo/goalsim/internal/config"
	"github.com/rpgo/goalsim/internal/domain"
	"github.com/rpgo/goalsim/pkg/dateutil"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

func newRegimesCmd(_ *options) *cobra.Command {
	return &cobra.Command{
		Use:   "regimes",
		Short: "Print the built-in market regime table",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			table := calculation.NewSimulationEngine().Regimes()
			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintln(tw, "REGIME\tRETURN ADJ\tVOL MULT\tAVG MONTHS\tSTAY\tTO BULL\tTO NORMAL\tTO BEAR")
			for _, r := range domain.Regimes {
				p := table[r]
				fmt.Fprintf(tw, "%s\t%+.2f\t%.2f\t%.0f\t%.4f\t%.2f\t%.2f\t%.2f\n", r,
					p.ReturnAdjustment, p.VolatilityMultiplier, p.AverageDuration, p.ContinuationProbability(),
					p.TransitionProbabilities[domain.RegimeBull],
					p.TransitionProbabilities[domain.RegimeNormal],
					p.TransitionProbabilities[domain.RegimeBear])
			}
			return tw.Flush()
		},
	}
}

func newDefaultsCmd(_ *options) *cobra.Command {
	return &cobra.Command{
		Use:   "defaults [country]",
		Short: "Print the economic defaults used when an input omits them",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			resolver := calculation.NewSimulationEngine().Economics()
			countries := append([]string{calculation.DefaultCountry}, resolver.Countries()...)
			if len(args) == 1 {
				countries = []string{strings.ToUpper(strings.TrimSpace(args[0]))}
			}

			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintln(tw, "COUNTRY\tINFLATION\tRETURN\tINCOME GROWTH")
			for _, c := range countries {
				p := resolver.Resolve(c)
				fmt.Fprintf(tw, "%s\t%.2f%%\t%.2f%%\t%.2f%%\n", c, p.InflationRate*100, p.ExpectedReturn*100, p.IncomeGrowthRate*100)
			}
			return tw.Flush()
		},
	}
}

func newExampleCmd(_ *options) *cobra.Command {
	var format string
	cmd := &cobra.Command{
		Use:   "example",
		Short: "Print an example request file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			data, err := exampleRequest(format, time.Now().UTC())
			if err != nil {
				return fail(cmd, err)
			}
			_, err = cmd.OutOrStdout().Write(data)
			return err
		},
	}
	cmd.Flags().StringVar(&format, "as", config.FormatYAML, "Request format (yaml, toml, json)")
	return cmd
}

// exampleRequest renders a loadable request with one goal three years out.
func exampleRequest(format string, now time.Time) ([]byte, error) {
	expenses := decimal.NewFromInt(3500)
	seed := int64(42)
	req := config.Request{
		Input: domain.SimulationInput{
			CurrentSavingsRate: decimal.NewFromFloat(0.10),
			MonthlyIncome:      decimal.NewFromInt(5000),
			MonthlyExpenses:    &expenses,
			CurrentNetWorth:    decimal.NewFromInt(30000),
			Goals: []domain.SimulationGoal{{
				Name:     "house",
				Amount:   decimal.NewFromInt(50000),
				Deadline: dateutil.AddMonths(now, 36).Truncate(24 * time.Hour),
			}},
			RandomSeed: &seed,
			Country:    "US",
			Currency:   "USD",
		},
		Settings: calculation.DefaultSettings(),
	}

	switch strings.ToLower(format) {
	case config.FormatYAML, "yml":
		return yaml.Marshal(req)
	case config.FormatTOML:
		var buf bytes.Buffer
		if err := toml.NewEncoder(&buf).Encode(req); err != nil {
			return nil, err
		}
		return buf.Bytes(), nil
	case config.FormatJSON:
		b, err := json.MarshalIndent(req, "", "  ")
		if err != nil {
			return nil, err
		}
		return append(b, '\n'), nil
	default:
		return nil, fmt.Errorf("%w: %s", config.ErrUnsupportedInputFormat, format)
	}
}
