package output

import (
	"bytes"
	"fmt"

	"github.com/rpgo/goalsim/internal/domain"
)

// ConsoleFormatter provides a concise console style summary via the formatter interface.
type ConsoleFormatter struct{}

func (c ConsoleFormatter) Name() string { return "console-lite" }

func (c ConsoleFormatter) Format(results *domain.SimulationOutput) ([]byte, error) {
	var buf bytes.Buffer
	currency := results.Metadata.Currency
	fmt.Fprintln(&buf, "GOAL SIMULATION SUMMARY")
	fmt.Fprintln(&buf, "================================")
	for _, p := range []struct {
		label string
		path  domain.PathResult
	}{
		{"Current", results.CurrentPath},
		{"Optimized", results.OptimizedPath.PathResult},
	} {
		fmt.Fprintf(&buf, "%s: rate=%s probability=%s 1yr=%s 5yr=%s 20yr=%s goal=%s\n",
			p.label,
			FormatPercentage(p.path.SavingsRate),
			FormatPercentage(p.path.Probability),
			FormatCurrency(p.path.ProjectedNetWorth[domain.Horizon1Year], currency),
			FormatCurrency(p.path.ProjectedNetWorth[domain.Horizon5Years], currency),
			FormatCurrency(p.path.ProjectedNetWorth[domain.Horizon20Years], currency),
			FormatDate(p.path.AchieveGoalDate),
		)
	}
	rec := AnalyzeOutput(results)
	fmt.Fprintln(&buf)
	fmt.Fprintf(&buf, "Recommendation (%s): %s\n", rec.Action, rec.Message)
	return buf.Bytes(), nil
}
