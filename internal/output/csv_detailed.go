package output

import (
	"bytes"
	"encoding/csv"

	"github.com/rpgo/goalsim/internal/domain"
)

// CSVDetailedExporter provides one row per path and horizon.
type CSVDetailedExporter struct{}

func (c CSVDetailedExporter) Name() string { return "detailed-csv" }

func (c CSVDetailedExporter) Format(results *domain.SimulationOutput) ([]byte, error) {
	buf := &bytes.Buffer{}
	w := csv.NewWriter(buf)
	header := []string{"Path", "Horizon", "Months", "Median", "P10", "P90", "Deterministic", "WealthDifference"}
	if err := w.Write(header); err != nil {
		return nil, err
	}
	paths := []struct {
		name string
		path domain.PathResult
	}{
		{"current", results.CurrentPath},
		{"optimized", results.OptimizedPath.PathResult},
	}
	for _, p := range paths {
		for _, h := range domain.Horizons {
			ci := p.path.ConfidenceIntervals[h]
			deterministic := ""
			if v, ok := p.path.DeterministicNetWorth[h]; ok {
				deterministic = formatAmount(v)
			}
			row := []string{
				p.name,
				string(h),
				intToString(h.Months()),
				formatAmount(p.path.ProjectedNetWorth[h]),
				formatAmount(ci.Lower),
				formatAmount(ci.Upper),
				deterministic,
				formatAmount(results.WealthDifference[h]),
			}
			if err := w.Write(row); err != nil {
				return nil, err
			}
		}
	}
	w.Flush()
	return buf.Bytes(), w.Error()
}
