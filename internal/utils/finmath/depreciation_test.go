package finmath

import (
	"testing"

	"github.com/planfirst/financial_planning_app/internal/core/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCapexAdditions(t *testing.T) {
	plan := domain.CapexPlan{Items: []domain.CapexItem{
		{Name: "Machine A", Amount: decimal.NewFromInt(1_000_000), StartMonth: 3, UsefulLifeYears: 5},
		{Name: "Machine B", Amount: decimal.NewFromInt(500_000), StartMonth: 3, UsefulLifeYears: 5},
		{Name: "Vehicle", Amount: decimal.NewFromInt(200_000), StartMonth: 9, UsefulLifeYears: 4},
	}}

	additions := CapexAdditions(plan)
	require.Len(t, additions, 2)
	assert.True(t, additions[3].Equal(decimal.NewFromInt(1_500_000)))
	assert.True(t, additions[9].Equal(decimal.NewFromInt(200_000)))
}

func TestDepreciationScheduleStraightLine(t *testing.T) {
	plan := domain.CapexPlan{Items: []domain.CapexItem{
		{Name: "Server", Amount: decimal.NewFromInt(2_400_000), StartMonth: 4, UsefulLifeYears: 2},
	}}

	schedule := DepreciationSchedule(plan)
	require.Len(t, schedule, 24)

	monthly := decimal.NewFromInt(100_000)
	assert.True(t, schedule[4].Equal(monthly))
	assert.True(t, schedule[27].Equal(monthly))
	_, before := schedule[3]
	assert.False(t, before)

	total := decimal.Zero
	for _, v := range schedule {
		total = total.Add(v)
	}
	assert.True(t, total.Equal(decimal.NewFromInt(2_400_000)))
}

func TestDepreciationScheduleDecliningBalanceDefaultRate(t *testing.T) {
	plan := domain.CapexPlan{
		Items: []domain.CapexItem{
			{Name: "Press", Amount: decimal.NewFromInt(1_200_000), StartMonth: 1, UsefulLifeYears: 5},
		},
		DepreciationMethod: domain.DecliningBalance,
	}

	schedule := DepreciationSchedule(plan)
	require.NotEmpty(t, schedule)

	// Default annual rate 2/5, so the first month charges book * 0.4/12.
	first := decimal.NewFromInt(1_200_000).Mul(decimal.NewFromFloat(0.4)).Div(decimal.NewFromInt(12))
	assert.True(t, schedule[1].Equal(first))

	// Charges decline month over month.
	assert.True(t, schedule[2].LessThan(schedule[1]))
	assert.True(t, schedule[30].LessThan(schedule[2]))
}

func TestDepreciationScheduleDecliningBalanceExplicitRate(t *testing.T) {
	rate := decimal.NewFromFloat(0.5)
	plan := domain.CapexPlan{
		Items: []domain.CapexItem{
			{Name: "Tooling", Amount: decimal.NewFromInt(960_000), StartMonth: 1, UsefulLifeYears: 3},
		},
		DepreciationMethod:   domain.DecliningBalance,
		DecliningBalanceRate: &rate,
	}

	schedule := DepreciationSchedule(plan)
	expected := decimal.NewFromInt(960_000).Mul(rate).Div(decimal.NewFromInt(12))
	assert.True(t, schedule[1].Equal(expected))
}

func TestDepreciationScheduleMultipleItemsOverlap(t *testing.T) {
	plan := domain.CapexPlan{Items: []domain.CapexItem{
		{Name: "A", Amount: decimal.NewFromInt(120_000), StartMonth: 1, UsefulLifeYears: 1},
		{Name: "B", Amount: decimal.NewFromInt(240_000), StartMonth: 6, UsefulLifeYears: 1},
	}}

	schedule := DepreciationSchedule(plan)
	assert.True(t, schedule[5].Equal(decimal.NewFromInt(10_000)))
	assert.True(t, schedule[6].Equal(decimal.NewFromInt(30_000)))
	assert.True(t, schedule[13].Equal(decimal.NewFromInt(20_000)))
}
