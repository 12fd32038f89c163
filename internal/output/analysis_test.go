package output

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestAnalyzeOutput(t *testing.T) {
	t.Run("increase", func(t *testing.T) {
		rec := AnalyzeOutput(buildTestOutput())
		assert.Equal(t, ActionIncrease, rec.Action)
		assert.True(t, rec.RateChange.Equal(decimal.NewFromFloat(0.1)))
		assert.True(t, rec.LongTermDifference.Equal(decimal.NewFromInt(25000)))
		assert.Contains(t, rec.Message, "from 10.00% to 20.00%")
	})

	t.Run("on track", func(t *testing.T) {
		out := buildTestOutput()
		out.CurrentPath.Probability = decimal.NewFromFloat(0.9)
		rec := AnalyzeOutput(out)
		assert.Equal(t, ActionOnTrack, rec.Action)
	})

	t.Run("unreachable", func(t *testing.T) {
		out := buildTestOutput()
		out.OptimizedPath.TargetReached = false
		out.OptimizedPath.Probability = decimal.NewFromFloat(0.3)
		rec := AnalyzeOutput(out)
		assert.Equal(t, ActionUnreachable, rec.Action)
		assert.Contains(t, rec.Message, "30.00%")
	})
}

func TestFormatCurrency(t *testing.T) {
	tests := []struct {
		amount   decimal.Decimal
		currency string
		want     string
	}{
		{decimal.NewFromFloat(1234.567), "", "$1,234.57"},
		{decimal.NewFromInt(1000000), "USD", "$1,000,000.00"},
		{decimal.NewFromFloat(-98765.4), "", "-$98,765.40"},
		{decimal.NewFromInt(12), "eur", "EUR 12.00"},
		{decimal.NewFromInt(123), "", "$123.00"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, FormatCurrency(tt.amount, tt.currency))
	}
}

func TestFormatPercentage(t *testing.T) {
	assert.Equal(t, "12.35%", FormatPercentage(decimal.NewFromFloat(0.123456)))
	assert.Equal(t, "0.00%", FormatPercentage(decimal.Zero))
}

func TestFormatDate(t *testing.T) {
	assert.Equal(t, "not reached", FormatDate(nil))
}

func TestGenerateAssumptions(t *testing.T) {
	out := buildTestOutput()
	out.Metadata.DiscardedIterations = 3
	out.Metadata.RegimesEnabled = true

	assumptions := GenerateAssumptions(out)
	assert.Contains(t, assumptions, "Economic defaults for unset rates: US")
	assert.Contains(t, assumptions, "Market regimes: enabled (bull / normal / bear Markov chain)")
	assert.Contains(t, assumptions, "3 iterations discarded for non-finite net worth")
}

func TestFormatAmount(t *testing.T) {
	assert.Equal(t, "12.50", formatAmount(decimal.NewFromFloat(12.5)))
	assert.Equal(t, "-1234567.89", formatAmount(decimal.NewFromFloat(-1234567.891)))
	assert.Equal(t, "0.00", formatAmount(decimal.Zero))
}
