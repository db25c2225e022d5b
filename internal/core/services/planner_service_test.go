package services_test

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/planfirst/financial_planning_app/internal/apperrors"
	"github.com/planfirst/financial_planning_app/internal/core/domain"
	"github.com/planfirst/financial_planning_app/internal/core/services"
	"github.com/planfirst/financial_planning_app/internal/utils/sampledata"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// contributionPlan is a plan with a 45% variable cost load and 638M of fixed
// operating expenses on 1B of sales, so gross is 550M and operating income
// is -88M.
func contributionPlan() *domain.PlanConfig {
	plan := domain.NewPlanConfig(decimal.NewFromInt(1_000_000_000), decimal.NewFromInt(10), "JPY", "JPY", 1, 1)
	plan.SetRate("COGS_MAT", decimal.RequireFromString("0.25"), domain.RateBaseSales)
	plan.SetRate("COGS_LBR", decimal.RequireFromString("0.06"), domain.RateBaseSales)
	plan.SetRate("COGS_OUT_SRC", decimal.RequireFromString("0.10"), domain.RateBaseSales)
	plan.SetRate("COGS_OUT_CON", decimal.RequireFromString("0.04"), domain.RateBaseSales)
	plan.SetAmount("OPEX_H", decimal.NewFromInt(170_000_000))
	plan.SetAmount("OPEX_K", decimal.NewFromInt(468_000_000))
	return plan
}

func TestComputeAnnualContributionModel(t *testing.T) {
	ctx := context.Background()
	planner := services.NewPlannerService()

	result, err := planner.Compute(ctx, contributionPlan(), domain.ComputeOptions{})
	require.NoError(t, err)
	require.Nil(t, result.Statements)

	amounts := result.Amounts
	assert.True(t, amounts.Get("REV").Equal(decimal.NewFromInt(1_000_000_000)))
	assert.True(t, amounts.Get("COGS_TTL").Equal(decimal.NewFromInt(450_000_000)))
	assert.True(t, amounts.Get("GROSS").Equal(decimal.NewFromInt(550_000_000)))
	assert.True(t, amounts.Get("OPEX_TTL").Equal(decimal.NewFromInt(638_000_000)))
	assert.True(t, amounts.Get("OP").Equal(decimal.NewFromInt(-88_000_000)))
	assert.True(t, amounts.Get("ORD").Equal(decimal.NewFromInt(-88_000_000)))

	// Contribution ratio 0.55 against 638M fixed: break-even at 1.16B.
	require.True(t, result.BreakEven.IsFinite())
	assert.True(t, result.BreakEven.Value.Equal(decimal.NewFromInt(1_160_000_000)))

	require.True(t, result.LaborShare.IsFinite())
	expectedShare := decimal.NewFromInt(170_000_000).Div(decimal.NewFromInt(550_000_000))
	assert.True(t, result.LaborShare.Value.Equal(expectedShare))

	// Per-capita figures divide by the configured headcount of 10.
	assert.True(t, amounts.Get("PC_SALES").Equal(decimal.NewFromInt(100_000_000)))
	assert.True(t, amounts.Get("PC_GROSS").Equal(decimal.NewFromInt(55_000_000)))
	assert.True(t, amounts.Get("PC_ORD").Equal(decimal.NewFromInt(-8_800_000)))
}

func TestComputeSalesOverrideScalesVariableCosts(t *testing.T) {
	ctx := context.Background()
	planner := services.NewPlannerService()

	override := decimal.NewFromInt(500_000_000)
	result, err := planner.Compute(ctx, contributionPlan(), domain.ComputeOptions{SalesOverride: &override})
	require.NoError(t, err)

	amounts := result.Amounts
	assert.True(t, amounts.Get("REV").Equal(override))
	assert.True(t, amounts.Get("COGS_TTL").Equal(decimal.NewFromInt(225_000_000)))
	assert.True(t, amounts.Get("GROSS").Equal(decimal.NewFromInt(275_000_000)))
	// Fixed expenses do not scale with the override.
	assert.True(t, amounts.Get("OPEX_TTL").Equal(decimal.NewFromInt(638_000_000)))
	assert.True(t, amounts.Get("OP").Equal(decimal.NewFromInt(-363_000_000)))
}

func TestComputeAmountOverrideReplacesLineItem(t *testing.T) {
	ctx := context.Background()
	planner := services.NewPlannerService()

	result, err := planner.Compute(ctx, contributionPlan(), domain.ComputeOptions{
		AmountOverrides: map[string]decimal.Decimal{
			"COGS_MAT": decimal.NewFromInt(100_000_000),
		},
	})
	require.NoError(t, err)

	amounts := result.Amounts
	// 100M pinned materials plus the remaining 20% variable load.
	assert.True(t, amounts.Get("COGS_MAT").Equal(decimal.NewFromInt(100_000_000)))
	assert.True(t, amounts.Get("COGS_TTL").Equal(decimal.NewFromInt(300_000_000)))
	assert.True(t, amounts.Get("GROSS").Equal(decimal.NewFromInt(700_000_000)))
}

func TestComputeGrossLinkedRatioConverges(t *testing.T) {
	ctx := context.Background()
	planner := services.NewPlannerService()

	plan := domain.NewPlanConfig(decimal.NewFromInt(1_000_000_000), decimal.NewFromInt(1), "JPY", "JPY", 1, 1)
	plan.SetRate("COGS_MAT", decimal.RequireFromString("0.40"), domain.RateBaseSales)
	plan.SetRate("COGS_OTH", decimal.RequireFromString("0.10"), domain.RateBaseGross)

	result, err := planner.Compute(ctx, plan, domain.ComputeOptions{})
	require.NoError(t, err)

	// The fixed point satisfies gross = sales - 0.4*sales - 0.1*gross.
	gross := result.Amounts.Get("GROSS")
	implied := decimal.NewFromInt(1_000_000_000).
		Sub(decimal.NewFromInt(400_000_000)).
		Sub(gross.Mul(decimal.RequireFromString("0.10")))
	assert.True(t, implied.Sub(gross).Abs().LessThanOrEqual(decimal.NewFromInt(1)),
		"gross %s should satisfy the fixed point (implied %s)", gross, implied)
}

func TestComputeBreakEvenInfiniteWhenVariableCostsEatSales(t *testing.T) {
	ctx := context.Background()
	planner := services.NewPlannerService()

	// Variable costs consume all of sales, so no sales level covers the
	// fixed load and break-even carries the infinity sentinel.
	plan := domain.NewPlanConfig(decimal.NewFromInt(1_000_000_000), decimal.NewFromInt(1), "JPY", "JPY", 1, 1)
	plan.SetRate("COGS_MAT", decimal.RequireFromString("1.0"), domain.RateBaseSales)
	plan.SetAmount("OPEX_H", decimal.NewFromInt(50_000_000))

	result, err := planner.Compute(ctx, plan, domain.ComputeOptions{})
	require.NoError(t, err)

	assert.True(t, result.BreakEven.Infinite)
	assert.False(t, result.BreakEven.IsFinite())

	payload, err := json.Marshal(result.BreakEven)
	require.NoError(t, err)
	assert.Equal(t, `"Infinity"`, string(payload))
}

func TestPlanFromBundleAttachesStatementInputs(t *testing.T) {
	ctx := context.Background()
	planner := services.NewPlannerService()
	bundle := sampledata.Bundle()
	opts := sampledata.Options()

	plan, err := planner.PlanFromBundle(ctx, bundle, opts)
	require.NoError(t, err)
	require.NotNil(t, plan)

	assert.True(t, plan.BaseSales.Equal(bundle.Sales.AnnualTotal()))
	assert.True(t, plan.HasStatementInputs())

	// Manual depreciation and capex-derived depreciation are additive, as
	// are manual interest and the loan schedule's interest.
	wantDep := bundle.Costs.FixedCosts["OPEX_DEP"].Add(bundle.Capex.AnnualDepreciation())
	assert.True(t, plan.Items["OPEX_DEP"].Value.Equal(wantDep))
	wantInt := bundle.Costs.NonOperatingExpenses["NOE_INT"].Add(bundle.Loans.AnnualInterest())
	assert.True(t, plan.Items["NOE_INT"].Value.Equal(wantInt))
}

func TestPlanFromBundleRejectsInvalidBundle(t *testing.T) {
	ctx := context.Background()
	planner := services.NewPlannerService()

	bundle := sampledata.Bundle()
	bundle.Costs.VariableRatios["COGS_MAT"] = decimal.NewFromInt(2)

	_, err := planner.PlanFromBundle(ctx, bundle, sampledata.Options())
	require.Error(t, err)
	assert.True(t, errors.Is(err, apperrors.ErrValidation))
}

func TestComputeStatementsPath(t *testing.T) {
	ctx := context.Background()
	planner := services.NewPlannerService()
	bundle := sampledata.Bundle()

	plan, err := planner.PlanFromBundle(ctx, bundle, sampledata.Options())
	require.NoError(t, err)

	result, err := planner.Compute(ctx, plan, domain.ComputeOptions{})
	require.NoError(t, err)
	require.NotNil(t, result.Statements)

	statements := result.Statements
	require.Len(t, statements.Monthly, domain.MonthsPerYear)

	// Annual revenue rolls up from the monthly sales plan.
	assert.True(t, statements.AnnualPL.Get("REV").Equal(bundle.Sales.AnnualTotal()))
	gross := statements.AnnualPL.Get("REV").Sub(statements.AnnualPL.Get("COGS_TTL"))
	assert.True(t, statements.AnnualPL.Get("GROSS").Equal(gross))

	// Every month's balance sheet closes through the named adjustment.
	for _, month := range statements.Monthly {
		bs := month.BalanceSheet
		assert.True(t, bs.TotalAssets.Equal(bs.TotalLiabilitiesEquity),
			"month %d balance sheet must close", month.Month)
	}

	// Display order starts at the fiscal year start month (April).
	assert.Equal(t, 4, statements.Monthly[0].Month)
	assert.Equal(t, 3, statements.Monthly[len(statements.Monthly)-1].Month)
}

func TestSummarizeMetrics(t *testing.T) {
	ctx := context.Background()
	planner := services.NewPlannerService()

	result, err := planner.Compute(ctx, contributionPlan(), domain.ComputeOptions{})
	require.NoError(t, err)

	metrics := planner.SummarizeMetrics(ctx, result)
	assert.True(t, metrics.Sales.Equal(decimal.NewFromInt(1_000_000_000)))
	require.True(t, metrics.GrossMargin.IsFinite())
	assert.True(t, metrics.GrossMargin.Value.Equal(decimal.RequireFromString("0.55")))
	require.True(t, metrics.COGSRatio.IsFinite())
	assert.True(t, metrics.COGSRatio.Value.Equal(decimal.RequireFromString("0.45")))
	require.True(t, metrics.OpMargin.IsFinite())
	assert.True(t, metrics.OpMargin.Value.Equal(decimal.RequireFromString("-0.088")))
	assert.True(t, metrics.BreakEven.IsFinite())
}

func TestSummarizeMetricsZeroSales(t *testing.T) {
	ctx := context.Background()
	planner := services.NewPlannerService()

	plan := domain.NewPlanConfig(decimal.Zero, decimal.NewFromInt(1), "JPY", "JPY", 1, 1)
	plan.SetAmount("OPEX_K", decimal.NewFromInt(1_000_000))

	result, err := planner.Compute(ctx, plan, domain.ComputeOptions{})
	require.NoError(t, err)

	metrics := planner.SummarizeMetrics(ctx, result)
	assert.False(t, metrics.GrossMargin.IsFinite())
	assert.False(t, metrics.OpMargin.IsFinite())
	assert.True(t, result.LaborShare.Undefined)
}

func TestSolveTargetSalesConverges(t *testing.T) {
	ctx := context.Background()
	planner := services.NewPlannerService()
	target := decimal.NewFromInt(50_000_000)
	tolerance := decimal.NewFromInt(1_000)

	solve, result, err := planner.SolveTargetSales(ctx, contributionPlan(), target, decimal.Zero, decimal.Zero)
	require.NoError(t, err)
	require.NotNil(t, solve)
	require.NotNil(t, result)

	assert.True(t, solve.Converged)
	assert.True(t, solve.RequiredSales.IsPositive())
	assert.True(t, solve.Achieved.Sub(target).Abs().LessThanOrEqual(tolerance),
		"achieved %s should land within %s of the target", solve.Achieved, tolerance)

	// Ordinary income is linear in sales here: 0.55*s - 638M = 50M.
	analytic := decimal.NewFromInt(688_000_000).Div(decimal.RequireFromString("0.55"))
	assert.True(t, solve.RequiredSales.Sub(analytic).Abs().LessThanOrEqual(decimal.NewFromInt(10_000)),
		"required sales %s should be close to the analytic solution %s", solve.RequiredSales, analytic)

	assert.True(t, result.Amounts.Get("REV").Equal(solve.RequiredSales))
}

func TestSolveTargetSalesUnreachableTarget(t *testing.T) {
	ctx := context.Background()
	planner := services.NewPlannerService()

	// All cost, no contribution: ordinary income can never reach the target.
	plan := domain.NewPlanConfig(decimal.NewFromInt(1_000_000), decimal.NewFromInt(1), "JPY", "JPY", 1, 1)
	plan.SetRate("COGS_MAT", decimal.NewFromInt(1), domain.RateBaseSales)
	plan.SetAmount("OPEX_K", decimal.NewFromInt(1_000_000))

	solve, _, err := planner.SolveTargetSales(ctx, plan, decimal.NewFromInt(10_000_000), decimal.Zero, decimal.Zero)
	require.NoError(t, err)
	require.NotNil(t, solve)
	assert.False(t, solve.Converged)
}
