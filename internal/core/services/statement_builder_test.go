package services

import (
	"testing"

	"github.com/planfirst/financial_planning_app/internal/core/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLineAmountMonthly(t *testing.T) {
	items := map[string]domain.CostItem{
		"OPEX_K":   {Method: domain.CostMethodAmount, Value: decimal.NewFromInt(120_000), Base: domain.RateBaseFixed},
		"COGS_MAT": {Method: domain.CostMethodRate, Value: decimal.RequireFromString("0.25"), Base: domain.RateBaseSales},
		"COGS_OTH": {Method: domain.CostMethodRate, Value: decimal.RequireFromString("0.10"), Base: domain.RateBaseGross},
	}
	sales := decimal.NewFromInt(1_000_000)
	gross := decimal.NewFromInt(600_000)

	testCases := []struct {
		name      string
		code      string
		overrides map[string]decimal.Decimal
		want      decimal.Decimal
	}{
		{name: "AnnualAmountSpreadOverTwelveMonths", code: "OPEX_K", want: decimal.NewFromInt(10_000)},
		{name: "SalesRateAppliesToMonthSales", code: "COGS_MAT", want: decimal.NewFromInt(250_000)},
		{name: "GrossRateAppliesToMonthGross", code: "COGS_OTH", want: decimal.NewFromInt(60_000)},
		{name: "UnknownCodeIsZero", code: "NOI_MISC", want: decimal.Zero},
		{
			name:      "OverrideReplacesAnnualAmount",
			code:      "OPEX_K",
			overrides: map[string]decimal.Decimal{"OPEX_K": decimal.NewFromInt(240_000)},
			want:      decimal.NewFromInt(20_000),
		},
		{
			name:      "OverrideReplacesRateOutright",
			code:      "COGS_MAT",
			overrides: map[string]decimal.Decimal{"COGS_MAT": decimal.NewFromInt(99_000)},
			want:      decimal.NewFromInt(99_000),
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got := lineAmountMonthly(items, tc.code, sales, gross, tc.overrides)
			assert.True(t, got.Equal(tc.want), "got %s, want %s", got, tc.want)
		})
	}
}

func TestMonthlySalesScaled(t *testing.T) {
	monthly := domain.NewMonthlySeries()
	for i := range monthly.Amounts {
		monthly.Amounts[i] = decimal.NewFromInt(100_000)
	}
	plan := domain.SalesPlan{Items: []domain.SalesItem{{Channel: "Direct", Product: "Standard", Monthly: monthly}}}
	baseSales := decimal.NewFromInt(1_200_000)

	unscaled := monthlySalesScaled(plan, baseSales, nil)
	assert.True(t, unscaled[1].Equal(decimal.NewFromInt(100_000)))

	override := decimal.NewFromInt(600_000)
	scaled := monthlySalesScaled(plan, baseSales, &override)
	total := decimal.Zero
	for month := 1; month <= domain.MonthsPerYear; month++ {
		total = total.Add(scaled[month])
	}
	assert.True(t, scaled[1].Equal(decimal.NewFromInt(50_000)))
	assert.True(t, total.Equal(override))
}

func TestBuildFinancialStatementsSimpleYear(t *testing.T) {
	monthly := domain.NewMonthlySeries()
	for i := range monthly.Amounts {
		monthly.Amounts[i] = decimal.NewFromInt(10_000)
	}
	in := statementInput{
		Sales: domain.SalesPlan{Items: []domain.SalesItem{{Channel: "Direct", Product: "Standard", Monthly: monthly}}},
		Tax:   domain.TaxPolicy{CorporateTaxRate: decimal.RequireFromString("0.30")},
		Items: map[string]domain.CostItem{
			"COGS_MAT": {Method: domain.CostMethodRate, Value: decimal.RequireFromString("0.40"), Base: domain.RateBaseSales},
			"OPEX_H":   {Method: domain.CostMethodAmount, Value: decimal.NewFromInt(24_000), Base: domain.RateBaseFixed},
		},
		BaseSales:     decimal.NewFromInt(120_000),
		StartMonth:    1,
		ForecastYears: 1,
	}

	statements := buildFinancialStatements(in)
	require.NotNil(t, statements)
	require.Len(t, statements.Monthly, domain.MonthsPerYear)

	// Month 1: 10k sales, 4k COGS, 2k personnel, 4k ordinary income,
	// 1.2k tax, 2.8k net. No working capital days, so cash follows net.
	first := statements.Monthly[0]
	assert.True(t, first.PL.Get("GROSS").Equal(decimal.NewFromInt(6_000)))
	assert.True(t, first.PL.Get("ORD").Equal(decimal.NewFromInt(4_000)))
	assert.True(t, first.Taxes.Equal(decimal.NewFromInt(1_200)))
	assert.True(t, first.NetIncome.Equal(decimal.NewFromInt(2_800)))
	assert.True(t, first.CashFlow.Net.Equal(decimal.NewFromInt(2_800)))
	assert.True(t, first.BalanceSheet.Cash.Equal(decimal.NewFromInt(2_800)))
	// Cash equals retained earnings here, so no adjustment is needed.
	assert.True(t, first.BalanceSheet.BalancingAdjustment.IsZero())

	assert.True(t, statements.AnnualPL.Get("REV").Equal(decimal.NewFromInt(120_000)))
	assert.True(t, statements.AnnualPL.Get("NET").Equal(decimal.NewFromInt(33_600)))
	assert.True(t, statements.AnnualBS.Cash.Equal(decimal.NewFromInt(33_600)))
	assert.True(t, statements.AnnualBS.TotalAssets.Equal(statements.AnnualBS.TotalLiabilitiesEquity))
}

func TestRotateToFiscalYear(t *testing.T) {
	monthly := make([]domain.MonthlyStatement, domain.MonthsPerYear)
	for i := range monthly {
		monthly[i] = domain.MonthlyStatement{Month: i + 1}
	}

	rotated := rotateToFiscalYear(monthly, 4)
	require.Len(t, rotated, domain.MonthsPerYear)
	assert.Equal(t, 4, rotated[0].Month)
	assert.Equal(t, 12, rotated[8].Month)
	assert.Equal(t, 3, rotated[11].Month)

	// January starts and out-of-range values leave the order untouched.
	assert.Equal(t, 1, rotateToFiscalYear(monthly, 1)[0].Month)
	assert.Equal(t, 1, rotateToFiscalYear(monthly, 13)[0].Month)
}
