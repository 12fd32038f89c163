package calculation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEconomicResolver_Resolve(t *testing.T) {
	r := NewEconomicResolver(nil)

	assert.Equal(t, EconomicParameters{InflationRate: 0.01, ExpectedReturn: 0.05, IncomeGrowthRate: 0.01}, r.Resolve("JP"))
	assert.Equal(t, r.Resolve("US"), r.Resolve(" us "))
	assert.Equal(t, r.Resolve(DefaultCountry), r.Resolve("ZZ"))
	assert.Equal(t, r.Resolve(DefaultCountry), r.Resolve(""))
}

func TestEconomicResolver_CustomTable(t *testing.T) {
	r := NewEconomicResolver(map[string]EconomicParameters{
		"nz": {InflationRate: 0.02, ExpectedReturn: 0.06, IncomeGrowthRate: 0.02},
	})

	assert.Equal(t, 0.06, r.Resolve("NZ").ExpectedReturn)
	assert.Equal(t, DefaultEconomicTable()[DefaultCountry], r.Resolve("US"))
	assert.Equal(t, []string{"NZ"}, r.Countries())
}

func TestEconomicResolver_Countries(t *testing.T) {
	codes := NewEconomicResolver(nil).Countries()
	assert.Len(t, codes, 12)
	assert.NotContains(t, codes, DefaultCountry)
	assert.IsIncreasing(t, codes)
}

func TestEconomicResolver_ResolveInputKeepsUserValues(t *testing.T) {
	r := NewEconomicResolver(nil)
	in := scenarioInput()
	in.InflationRate = nil
	in.IncomeGrowthRate = nil
	in.Country = "BR"

	out := r.ResolveInput(in)

	require.NotNil(t, out.ExpectedReturnRate)
	assert.Equal(t, "0.1", out.ExpectedReturnRate.String())
	require.NotNil(t, out.InflationRate)
	assert.Equal(t, "0.045", out.InflationRate.String())
	require.NotNil(t, out.IncomeGrowthRate)
	assert.Equal(t, "0.05", out.IncomeGrowthRate.String())
	assert.Nil(t, in.InflationRate, "caller input must not be modified")
}
