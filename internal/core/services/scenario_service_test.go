package services_test

import (
	"context"
	"errors"
	"testing"

	"github.com/planfirst/financial_planning_app/internal/apperrors"
	"github.com/planfirst/financial_planning_app/internal/core/domain"
	"github.com/planfirst/financial_planning_app/internal/core/services"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func simpleCurrentPlan() domain.SimplePlan {
	return domain.SimplePlan{
		Sales:     decimal.NewFromInt(1_000_000_000),
		GPRate:    decimal.RequireFromString("0.55"),
		OpexH:     decimal.NewFromInt(170_000_000),
		OpexFixed: decimal.NewFromInt(468_000_000),
	}
}

func TestScenarioTableRowsAndOrder(t *testing.T) {
	ctx := context.Background()
	svc := services.NewScenarioService(services.NewPlannerService())

	current := simpleCurrentPlan()
	base := current.WithSales(decimal.NewFromInt(900_000_000))
	target := decimal.NewFromInt(50_000_000)

	rows, err := svc.ScenarioTable(ctx, base, current, domain.NonOperating{}, target, domain.BreakEvenOnOrdinary)
	require.NoError(t, err)
	require.Len(t, rows, 8)

	wantNames := []string{
		"target",
		"sales_up_10pct",
		"sales_down_5pct",
		"sales_down_10pct",
		"gp_rate_up_1pt",
		"required_for_target_ord",
		"prior_year",
		"break_even",
	}
	for i, name := range wantNames {
		assert.Equal(t, name, rows[i].Name)
	}

	// target row is the current plan as given.
	assert.True(t, rows[0].Sales.Equal(current.Sales))
	assert.True(t, rows[0].GrossProfit.Equal(decimal.NewFromInt(550_000_000)))
	assert.True(t, rows[0].OrdinaryProfit.Equal(decimal.NewFromInt(-88_000_000)))

	// A 10% sales lift at a 55% gross rate adds 55M of profit.
	assert.True(t, rows[1].Sales.Equal(decimal.NewFromInt(1_100_000_000)))
	assert.True(t, rows[1].OrdinaryProfit.Equal(decimal.NewFromInt(-33_000_000)))

	assert.True(t, rows[2].Sales.Equal(decimal.NewFromInt(950_000_000)))
	assert.True(t, rows[3].Sales.Equal(decimal.NewFromInt(900_000_000)))

	// One gross point on unchanged sales.
	assert.True(t, rows[4].GrossProfit.Equal(decimal.NewFromInt(560_000_000)))

	// The inverted plan hits the ordinary income target.
	assert.True(t, rows[5].OrdinaryProfit.Sub(target).Abs().LessThanOrEqual(decimal.RequireFromString("0.01")),
		"required-sales row ordinary profit %s should hit the target", rows[5].OrdinaryProfit)

	assert.True(t, rows[6].Sales.Equal(base.Sales))

	// Break-even sales zero out ordinary income exactly here: 638M / 0.55.
	assert.True(t, rows[7].Sales.Equal(decimal.NewFromInt(1_160_000_000)))
	assert.True(t, rows[7].OrdinaryProfit.IsZero())
}

func TestScenarioTableNonOperatingAdjustments(t *testing.T) {
	ctx := context.Background()
	svc := services.NewScenarioService(services.NewPlannerService())

	current := simpleCurrentPlan()
	nonop := domain.NonOperating{
		NOIMisc: decimal.NewFromInt(6_000_000),
		NOEInt:  decimal.NewFromInt(2_000_000),
	}

	rows, err := svc.ScenarioTable(ctx, current, current, nonop, decimal.NewFromInt(50_000_000), domain.BreakEvenOnOrdinary)
	require.NoError(t, err)

	// -88M operating plus 6M income minus 2M interest.
	assert.True(t, rows[0].OrdinaryProfit.Equal(decimal.NewFromInt(-84_000_000)))

	// Ordinary-mode break-even folds the non-operating net into the solve.
	breakEvenRow := rows[7]
	assert.True(t, breakEvenRow.OrdinaryProfit.Abs().LessThanOrEqual(decimal.RequireFromString("0.01")),
		"break-even row ordinary profit %s should be zero", breakEvenRow.OrdinaryProfit)
}

func TestScenarioTableGPRateCappedAtOne(t *testing.T) {
	ctx := context.Background()
	svc := services.NewScenarioService(services.NewPlannerService())

	current := simpleCurrentPlan().WithGPRate(decimal.RequireFromString("0.995"))
	rows, err := svc.ScenarioTable(ctx, current, current, domain.NonOperating{}, decimal.Zero, domain.BreakEvenOnOperating)
	require.NoError(t, err)

	// 0.995 + 0.01 clamps to 1.0: gross equals sales.
	assert.True(t, rows[4].GrossProfit.Equal(current.Sales))
}

func TestScenarioTableZeroGPRateBreakEven(t *testing.T) {
	ctx := context.Background()
	svc := services.NewScenarioService(services.NewPlannerService())

	current := simpleCurrentPlan().WithGPRate(decimal.Zero)
	rows, err := svc.ScenarioTable(ctx, current, current, domain.NonOperating{}, decimal.Zero, domain.BreakEvenOnOperating)
	require.NoError(t, err)
	require.Len(t, rows, 8)

	// The tiny-rate floor keeps the division defined; the resulting sales
	// figure is astronomically large rather than a panic.
	assert.True(t, rows[7].Sales.GreaterThan(decimal.NewFromInt(1_000_000_000_000)))
}

func TestSensitivitySalesDriver(t *testing.T) {
	ctx := context.Background()
	svc := services.NewScenarioService(services.NewPlannerService())

	multipliers := []decimal.Decimal{
		decimal.RequireFromString("1.2"),
		decimal.RequireFromString("0.8"),
		decimal.RequireFromString("1.0"),
	}

	result, err := svc.Sensitivity(ctx, contributionPlan(), "sales", multipliers)
	require.NoError(t, err)
	require.NotNil(t, result)
	assert.Equal(t, "sales", result.Driver)
	require.Len(t, result.Points, 3)

	// Points come back sorted by multiplier regardless of input order.
	assert.True(t, result.Points[0].Multiplier.Equal(decimal.RequireFromString("0.8")))
	assert.True(t, result.Points[1].Multiplier.Equal(decimal.RequireFromString("1.0")))
	assert.True(t, result.Points[2].Multiplier.Equal(decimal.RequireFromString("1.2")))

	assert.True(t, result.Points[0].Row.Sales.Equal(decimal.NewFromInt(800_000_000)))
	assert.True(t, result.Points[1].Row.Sales.Equal(decimal.NewFromInt(1_000_000_000)))
	assert.True(t, result.Points[2].Row.Sales.Equal(decimal.NewFromInt(1_200_000_000)))

	// Gross scales with sales at the 55% contribution rate.
	assert.True(t, result.Points[0].Row.GrossProfit.Equal(decimal.NewFromInt(440_000_000)))
	assert.True(t, result.Points[2].Row.GrossProfit.Equal(decimal.NewFromInt(660_000_000)))
}

func TestSensitivityItemDriver(t *testing.T) {
	ctx := context.Background()
	svc := services.NewScenarioService(services.NewPlannerService())

	result, err := svc.Sensitivity(ctx, contributionPlan(), "OPEX_H", []decimal.Decimal{decimal.NewFromInt(2)})
	require.NoError(t, err)
	require.Len(t, result.Points, 1)

	// Doubling personnel cost: 550M gross minus (340M + 468M) opex.
	point := result.Points[0]
	assert.True(t, point.Row.OperatingProfit.Equal(decimal.NewFromInt(-258_000_000)))
	// The original configuration is untouched by the sweep.
	base := contributionPlan()
	assert.True(t, base.Items["OPEX_H"].Value.Equal(decimal.NewFromInt(170_000_000)))
}

func TestSensitivityUnknownDriver(t *testing.T) {
	ctx := context.Background()
	svc := services.NewScenarioService(services.NewPlannerService())

	_, err := svc.Sensitivity(ctx, contributionPlan(), "HEADCOUNT", []decimal.Decimal{decimal.NewFromInt(1)})
	require.Error(t, err)
	assert.True(t, errors.Is(err, apperrors.ErrValidation))

	var verr *apperrors.ValidationError
	require.True(t, errors.As(err, &verr))
	require.Len(t, verr.Fields, 1)
	assert.Equal(t, "driver", verr.Fields[0].Loc)
}

func TestSensitivityNoMultipliers(t *testing.T) {
	ctx := context.Background()
	svc := services.NewScenarioService(services.NewPlannerService())

	result, err := svc.Sensitivity(ctx, contributionPlan(), "sales", nil)
	require.NoError(t, err)
	assert.Empty(t, result.Points)
}
