// Package sampledata bundles the onboarding dataset: a plausible SaaS
// company with four revenue streams, variable cost ratios, two capital
// projects and two loans. Handlers expose it so a fresh deployment has
// something to compute before any plan is saved.
package sampledata

import (
	"github.com/planfirst/financial_planning_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

type salesSpec struct {
	channel   string
	product   string
	unitPrice int64
	quantity  [12]int64
}

var sampleSales = []salesSpec{
	{
		channel:   "Online direct",
		product:   "Growth plan (monthly)",
		unitPrice: 120_000,
		quantity:  [12]int64{110, 118, 125, 132, 140, 148, 155, 162, 170, 178, 186, 195},
	},
	{
		channel:   "Online direct",
		product:   "Light plan (monthly)",
		unitPrice: 45_000,
		quantity:  [12]int64{220, 228, 240, 252, 260, 268, 280, 292, 300, 312, 324, 336},
	},
	{
		channel:   "Field sales",
		product:   "Enterprise contract",
		unitPrice: 900_000,
		quantity:  [12]int64{6, 6, 7, 7, 8, 8, 9, 9, 10, 10, 10, 11},
	},
	{
		channel:   "Partner sales",
		product:   "Onboarding package",
		unitPrice: 320_000,
		quantity:  [12]int64{18, 18, 19, 20, 21, 22, 23, 24, 25, 26, 27, 28},
	},
}

func buildSalesPlan() domain.SalesPlan {
	items := make([]domain.SalesItem, 0, len(sampleSales))
	for _, spec := range sampleSales {
		monthly := domain.NewMonthlySeries()
		price := decimal.NewFromInt(spec.unitPrice)
		for i, qty := range spec.quantity {
			monthly.Amounts[i] = price.Mul(decimal.NewFromInt(qty))
		}
		items = append(items, domain.SalesItem{
			Channel: spec.channel,
			Product: spec.product,
			Monthly: monthly,
		})
	}
	return domain.SalesPlan{Items: items}
}

func buildCostPlan() domain.CostPlan {
	return domain.CostPlan{
		VariableRatios: map[string]decimal.Decimal{
			"COGS_MAT":     decimal.RequireFromString("0.18"),
			"COGS_LBR":     decimal.RequireFromString("0.08"),
			"COGS_OUT_SRC": decimal.RequireFromString("0.05"),
			"COGS_OUT_CON": decimal.RequireFromString("0.02"),
			"COGS_OTH":     decimal.RequireFromString("0.01"),
		},
		FixedCosts: map[string]decimal.Decimal{
			"OPEX_H":   decimal.NewFromInt(130_000_000),
			"OPEX_K":   decimal.NewFromInt(360_000_000),
			"OPEX_DEP": decimal.NewFromInt(24_000_000),
		},
		NonOperatingIncome: map[string]decimal.Decimal{
			"NOI_MISC": decimal.NewFromInt(6_000_000),
		},
		NonOperatingExpenses: map[string]decimal.Decimal{
			"NOE_INT": decimal.NewFromInt(12_000_000),
		},
	}
}

func buildCapexPlan() domain.CapexPlan {
	return domain.CapexPlan{
		Items: []domain.CapexItem{
			{
				Name:            "Data center expansion",
				Amount:          decimal.NewFromInt(85_000_000),
				StartMonth:      4,
				UsefulLifeYears: 5,
			},
			{
				Name:            "Sales enablement tooling",
				Amount:          decimal.NewFromInt(18_000_000),
				StartMonth:      1,
				UsefulLifeYears: 3,
			},
		},
	}
}

func buildLoanSchedule() domain.LoanSchedule {
	return domain.LoanSchedule{
		Loans: []domain.LoanItem{
			{
				Name:          "Growth investment loan",
				Principal:     decimal.NewFromInt(125_000_000),
				InterestRate:  decimal.RequireFromString("0.012"),
				TermMonths:    60,
				StartMonth:    1,
				RepaymentType: domain.EqualPrincipal,
			},
			{
				Name:          "Facility loan",
				Principal:     decimal.NewFromInt(60_000_000),
				InterestRate:  decimal.RequireFromString("0.009"),
				TermMonths:    84,
				StartMonth:    3,
				RepaymentType: domain.InterestOnly,
			},
		},
	}
}

func buildTaxPolicy() domain.TaxPolicy {
	return domain.TaxPolicy{
		CorporateTaxRate:    decimal.RequireFromString("0.30"),
		ConsumptionTaxRate:  decimal.RequireFromString("0.10"),
		DividendPayoutRatio: decimal.RequireFromString("0.12"),
	}
}

// Bundle returns the full sample finance bundle.
func Bundle() domain.FinanceBundle {
	return domain.FinanceBundle{
		Sales:          buildSalesPlan(),
		Costs:          buildCostPlan(),
		Capex:          buildCapexPlan(),
		Loans:          buildLoanSchedule(),
		Tax:            buildTaxPolicy(),
		WorkingCapital: domain.DefaultWorkingCapital(),
	}
}

// Options returns the calculator settings that accompany the sample bundle.
func Options() domain.PlanOptions {
	return domain.PlanOptions{
		FTE:                  decimal.NewFromInt(42),
		Unit:                 "JPY",
		Currency:             "JPY",
		FiscalYearStartMonth: 4,
		ForecastYears:        3,
	}
}
