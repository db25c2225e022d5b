package domain

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewPlanConfigDefaults(t *testing.T) {
	plan := NewPlanConfig(decimal.NewFromInt(1_000_000_000), decimal.NewFromInt(10), "", "", 0, 0)

	assert.Equal(t, "JPY", plan.Currency)
	assert.Equal(t, 1, plan.FiscalYearStartMonth)
	assert.Equal(t, 1, plan.ForecastYears)
	assert.True(t, plan.FTE.Equal(decimal.NewFromInt(10)))
}

func TestNewPlanConfigClampsFTE(t *testing.T) {
	plan := NewPlanConfig(decimal.NewFromInt(100), decimal.Zero, "", "JPY", 4, 1)
	assert.True(t, plan.FTE.Equal(decimal.RequireFromString("0.0001")),
		"head count must be floored to keep per-capita figures defined")

	negative := NewPlanConfig(decimal.NewFromInt(100), decimal.NewFromInt(-3), "", "JPY", 4, 1)
	assert.True(t, negative.FTE.Equal(decimal.RequireFromString("0.0001")))
}

func TestPlanConfigSetters(t *testing.T) {
	plan := NewPlanConfig(decimal.NewFromInt(1000), decimal.NewFromInt(5), "", "JPY", 1, 1)

	plan.SetRate("COGS_MAT", decimal.NewFromFloat(0.25), RateBaseSales)
	item, ok := plan.Items["COGS_MAT"]
	require.True(t, ok)
	assert.Equal(t, CostMethodRate, item.Method)
	assert.Equal(t, RateBaseSales, item.Base)

	plan.SetAmount("OPEX_DEP", decimal.NewFromInt(120))
	plan.AddAmount("OPEX_DEP", decimal.NewFromInt(30))
	assert.True(t, plan.Items["OPEX_DEP"].Value.Equal(decimal.NewFromInt(150)))

	// AddAmount on a rate entry replaces it rather than mixing methods.
	plan.AddAmount("COGS_MAT", decimal.NewFromInt(40))
	assert.Equal(t, CostMethodAmount, plan.Items["COGS_MAT"].Method)
	assert.True(t, plan.Items["COGS_MAT"].Value.Equal(decimal.NewFromInt(40)))
}

func TestPlanConfigCloneIsIndependent(t *testing.T) {
	plan := NewPlanConfig(decimal.NewFromInt(1000), decimal.NewFromInt(5), "", "JPY", 1, 1)
	plan.SetRate("COGS_MAT", decimal.NewFromFloat(0.25), RateBaseSales)

	cloned := plan.Clone()
	cloned.SetRate("COGS_MAT", decimal.NewFromFloat(0.5), RateBaseSales)
	cloned.BaseSales = decimal.NewFromInt(2000)

	assert.True(t, plan.Items["COGS_MAT"].Value.Equal(decimal.NewFromFloat(0.25)))
	assert.True(t, plan.BaseSales.Equal(decimal.NewFromInt(1000)))
}
