package output

import (
	"bytes"
	"fmt"
	"strings"
	"time"

	"github.com/rpgo/goalsim/internal/domain"
	"github.com/rpgo/goalsim/pkg/dateutil"
)

// ConsoleVerboseFormatter renders the detailed console report via the pluggable interface.
type ConsoleVerboseFormatter struct{}

func (c ConsoleVerboseFormatter) Name() string { return "console" }

func (c ConsoleVerboseFormatter) Format(results *domain.SimulationOutput) ([]byte, error) {
	var buf bytes.Buffer
	currency := results.Metadata.Currency

	fmt.Fprintln(&buf, strings.Repeat("=", 81))
	fmt.Fprintln(&buf, "DETAILED GOAL ACHIEVEMENT ANALYSIS")
	fmt.Fprintln(&buf, strings.Repeat("=", 81))
	fmt.Fprintln(&buf)
	fmt.Fprintln(&buf, "KEY ASSUMPTIONS:")
	for _, a := range GenerateAssumptions(results) {
		fmt.Fprintf(&buf, "• %s\n", a)
	}
	fmt.Fprintln(&buf)

	start := results.Metadata.Timestamp
	writePath(&buf, "CURRENT PATH", results.CurrentPath, currency, start)
	writePath(&buf, "OPTIMIZED PATH", results.OptimizedPath.PathResult, currency, start)

	opt := results.OptimizedPath
	fmt.Fprintf(&buf, "Optimizer: required rate %s, target %s, reached=%t, converged=%t, evaluations=%d\n",
		FormatPercentage(opt.RequiredSavingsRate), FormatPercentage(opt.TargetProbability),
		opt.TargetReached, opt.Converged, opt.Evaluations)
	fmt.Fprintln(&buf)

	fmt.Fprintln(&buf, "WEALTH DIFFERENCE (optimized - current)")
	fmt.Fprintln(&buf, strings.Repeat("-", 50))
	for _, h := range domain.Horizons {
		fmt.Fprintf(&buf, "  %-5s %20s\n", h, FormatCurrency(results.WealthDifference[h], currency))
	}
	fmt.Fprintln(&buf)

	rec := AnalyzeOutput(results)
	fmt.Fprintln(&buf, "RECOMMENDATION")
	fmt.Fprintln(&buf, strings.Repeat("-", 50))
	fmt.Fprintln(&buf, rec.Message)
	fmt.Fprintln(&buf)
	fmt.Fprintf(&buf, "Completed in %dms at %s\n", results.Metadata.DurationMs, results.Metadata.Timestamp.Format("2006-01-02 15:04:05"))
	if results.Metadata.RunID != "" {
		fmt.Fprintf(&buf, "Run ID: %s\n", results.Metadata.RunID)
	}
	return buf.Bytes(), nil
}

func writePath(buf *bytes.Buffer, title string, path domain.PathResult, currency string, start time.Time) {
	fmt.Fprintln(buf, title)
	fmt.Fprintln(buf, strings.Repeat("=", 50))
	fmt.Fprintf(buf, "Savings rate:        %s\n", FormatPercentage(path.SavingsRate))
	fmt.Fprintf(buf, "Goal probability:    %s\n", FormatPercentage(path.Probability))
	if path.AllGoalsProbability != nil {
		fmt.Fprintf(buf, "All goals:           %s\n", FormatPercentage(*path.AllGoalsProbability))
	}
	fmt.Fprintf(buf, "Median goal date:    %s\n", FormatDate(path.AchieveGoalDate))
	fmt.Fprintln(buf)

	fmt.Fprintf(buf, "  %-5s %20s %20s %20s %20s\n", "", "Median", "10th pct", "90th pct", "Expected")
	for _, h := range domain.Horizons {
		ci := path.ConfidenceIntervals[h]
		expected := "-"
		if v, ok := path.DeterministicNetWorth[h]; ok {
			expected = FormatCurrency(v, currency)
		}
		fmt.Fprintf(buf, "  %-5s %20s %20s %20s %20s\n", h,
			FormatCurrency(path.ProjectedNetWorth[h], currency),
			FormatCurrency(ci.Lower, currency),
			FormatCurrency(ci.Upper, currency),
			expected)
	}
	fmt.Fprintln(buf)

	if len(path.Goals) > 0 {
		fmt.Fprintln(buf, "  Goals:")
		for _, g := range path.Goals {
			name := g.Name
			if name == "" {
				name = "(unnamed)"
			}
			fmt.Fprintf(buf, "    %-20s %18s by %s (%.1f yrs)  probability %s  median date %s\n",
				name, FormatCurrency(g.Amount, currency), g.Deadline.Format("2006-01-02"),
				dateutil.YearsUntilDate(start, g.Deadline),
				FormatPercentage(g.Probability), FormatDate(g.AchieveGoalDate))
		}
		fmt.Fprintln(buf)
	}
}
