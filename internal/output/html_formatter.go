package output

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"html/template"

	"github.com/rpgo/goalsim/internal/domain"
	"github.com/shopspring/decimal"
)

// HTMLFormatter produces a self-contained HTML report with a fan chart of the
// net worth percentiles.
type HTMLFormatter struct{}

func (h HTMLFormatter) Name() string { return "html" }

//go:embed templates/report.html.tmpl
var htmlTemplateSource string

var htmlTemplate = template.Must(template.New("report").Funcs(template.FuncMap{
	"curr": FormatCurrency,
	"pct":  FormatPercentage,
	"date": FormatDate,
	"json": func(v interface{}) template.JS {
		b, _ := json.Marshal(v)
		return template.JS(b)
	},
}).Parse(htmlTemplateSource))

type htmlHorizonRow struct {
	Horizon       domain.Horizon
	Months        int
	Current       decimal.Decimal
	CurrentLower  decimal.Decimal
	CurrentUpper  decimal.Decimal
	Optimized     decimal.Decimal
	Deterministic decimal.Decimal
	Difference    decimal.Decimal
}

func (h HTMLFormatter) Format(results *domain.SimulationOutput) ([]byte, error) {
	var buf bytes.Buffer

	rows := make([]htmlHorizonRow, 0, len(domain.Horizons))
	chart := map[string][]float64{}
	for _, hz := range domain.Horizons {
		ci := results.CurrentPath.ConfidenceIntervals[hz]
		row := htmlHorizonRow{
			Horizon:       hz,
			Months:        hz.Months(),
			Current:       results.CurrentPath.ProjectedNetWorth[hz],
			CurrentLower:  ci.Lower,
			CurrentUpper:  ci.Upper,
			Optimized:     results.OptimizedPath.ProjectedNetWorth[hz],
			Deterministic: results.CurrentPath.DeterministicNetWorth[hz],
			Difference:    results.WealthDifference[hz],
		}
		rows = append(rows, row)
		chart["p10"] = append(chart["p10"], row.CurrentLower.InexactFloat64())
		chart["median"] = append(chart["median"], row.Current.InexactFloat64())
		chart["p90"] = append(chart["p90"], row.CurrentUpper.InexactFloat64())
		chart["optimized"] = append(chart["optimized"], row.Optimized.InexactFloat64())
	}

	data := struct {
		*domain.SimulationOutput
		Rows           []htmlHorizonRow
		Chart          map[string][]float64
		Recommendation Recommendation
		Assumptions    []string
		Currency       string
	}{results, rows, chart, AnalyzeOutput(results), GenerateAssumptions(results), results.Metadata.Currency}
	if err := htmlTemplate.Execute(&buf, data); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
