package calculation

import (
	"sort"
	"strings"

	"github.com/rpgo/goalsim/internal/domain"
	"github.com/shopspring/decimal"
)

// DefaultCountry is the fallback row of the economic defaults table.
const DefaultCountry = "DEFAULT"

// EconomicParameters are the annual default rates for a country.
type EconomicParameters struct {
	InflationRate    float64 `yaml:"inflation_rate" json:"inflationRate" toml:"inflation_rate"`
	ExpectedReturn   float64 `yaml:"expected_return" json:"expectedReturn" toml:"expected_return"`
	IncomeGrowthRate float64 `yaml:"income_growth_rate" json:"incomeGrowthRate" toml:"income_growth_rate"`
}

// DefaultEconomicTable returns a fresh copy of the built-in country defaults,
// keyed by ISO 3166 alpha-2 code.
func DefaultEconomicTable() map[string]EconomicParameters {
	return map[string]EconomicParameters{
		DefaultCountry: {InflationRate: 0.03, ExpectedReturn: 0.07, IncomeGrowthRate: 0.03},
		"US":           {InflationRate: 0.03, ExpectedReturn: 0.07, IncomeGrowthRate: 0.03},
		"GB":           {InflationRate: 0.025, ExpectedReturn: 0.065, IncomeGrowthRate: 0.025},
		"DE":           {InflationRate: 0.02, ExpectedReturn: 0.06, IncomeGrowthRate: 0.02},
		"FR":           {InflationRate: 0.02, ExpectedReturn: 0.06, IncomeGrowthRate: 0.02},
		"JP":           {InflationRate: 0.01, ExpectedReturn: 0.05, IncomeGrowthRate: 0.01},
		"CA":           {InflationRate: 0.025, ExpectedReturn: 0.065, IncomeGrowthRate: 0.025},
		"AU":           {InflationRate: 0.03, ExpectedReturn: 0.07, IncomeGrowthRate: 0.03},
		"IN":           {InflationRate: 0.05, ExpectedReturn: 0.10, IncomeGrowthRate: 0.07},
		"BR":           {InflationRate: 0.045, ExpectedReturn: 0.10, IncomeGrowthRate: 0.05},
		"MX":           {InflationRate: 0.04, ExpectedReturn: 0.09, IncomeGrowthRate: 0.045},
		"CN":           {InflationRate: 0.02, ExpectedReturn: 0.07, IncomeGrowthRate: 0.05},
		"KR":           {InflationRate: 0.02, ExpectedReturn: 0.065, IncomeGrowthRate: 0.03},
	}
}

// EconomicResolver maps a country code to default rates. Resolution never
// fails: unknown or empty codes get the DEFAULT row.
type EconomicResolver struct {
	table map[string]EconomicParameters
}

// NewEconomicResolver copies table into a new resolver. A nil table, or one
// without a DEFAULT row, is completed from DefaultEconomicTable.
func NewEconomicResolver(table map[string]EconomicParameters) *EconomicResolver {
	defaults := DefaultEconomicTable()
	if table == nil {
		return &EconomicResolver{table: defaults}
	}
	copied := make(map[string]EconomicParameters, len(table)+1)
	for code, params := range table {
		copied[normalizeCountry(code)] = params
	}
	if _, ok := copied[DefaultCountry]; !ok {
		copied[DefaultCountry] = defaults[DefaultCountry]
	}
	return &EconomicResolver{table: copied}
}

// Resolve returns the defaults for country, falling back to DEFAULT.
func (r *EconomicResolver) Resolve(country string) EconomicParameters {
	if params, ok := r.table[normalizeCountry(country)]; ok {
		return params
	}
	return r.table[DefaultCountry]
}

// Countries lists the codes with explicit defaults, DEFAULT excluded.
func (r *EconomicResolver) Countries() []string {
	codes := make([]string, 0, len(r.table))
	for code := range r.table {
		if code != DefaultCountry {
			codes = append(codes, code)
		}
	}
	sort.Strings(codes)
	return codes
}

// ResolveInput fills the rates the user left unset from the country defaults.
// Fields the user supplied always win. The input is returned as a copy.
func (r *EconomicResolver) ResolveInput(in domain.SimulationInput) domain.SimulationInput {
	out := in.Normalized()
	params := r.Resolve(in.Country)
	if out.ExpectedReturnRate == nil {
		out.ExpectedReturnRate = decimalPtr(params.ExpectedReturn)
	}
	if out.InflationRate == nil {
		out.InflationRate = decimalPtr(params.InflationRate)
	}
	if out.IncomeGrowthRate == nil {
		out.IncomeGrowthRate = decimalPtr(params.IncomeGrowthRate)
	}
	return out
}

func normalizeCountry(code string) string {
	code = strings.ToUpper(strings.TrimSpace(code))
	if code == "" {
		return DefaultCountry
	}
	return code
}

func decimalPtr(v float64) *decimal.Decimal {
	d := decimal.NewFromFloat(v)
	return &d
}
