package output

import (
	"bytes"
	"encoding/csv"

	"github.com/rpgo/goalsim/internal/domain"
)

// CSVSummarizer implements the simple summary CSV output (one row per path).
type CSVSummarizer struct{}

func (c CSVSummarizer) Name() string { return "csv" }

func (c CSVSummarizer) Format(results *domain.SimulationOutput) ([]byte, error) {
	buf := &bytes.Buffer{}
	w := csv.NewWriter(buf)
	header := []string{"Path", "SavingsRate", "Probability", "MeetsTarget", "AchieveGoalDate"}
	for _, h := range domain.Horizons {
		header = append(header, "Median_"+string(h))
	}
	if err := w.Write(header); err != nil {
		return nil, err
	}
	rows := []struct {
		name string
		path domain.PathResult
	}{
		{"current", results.CurrentPath},
		{"optimized", results.OptimizedPath.PathResult},
	}
	for _, r := range rows {
		date := ""
		if r.path.AchieveGoalDate != nil {
			date = r.path.AchieveGoalDate.Format("2006-01-02")
		}
		meets := r.path.Probability.GreaterThanOrEqual(results.OptimizedPath.TargetProbability)
		row := []string{r.name, r.path.SavingsRate.String(), r.path.Probability.String(), boolToString(meets), date}
		for _, h := range domain.Horizons {
			row = append(row, formatAmount(r.path.ProjectedNetWorth[h]))
		}
		if err := w.Write(row); err != nil {
			return nil, err
		}
	}
	w.Flush()
	return buf.Bytes(), w.Error()
}
