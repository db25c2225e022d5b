package finmath

import (
	"github.com/planfirst/financial_planning_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

var two = decimal.NewFromInt(2)

// CapexAdditions maps each global month to the cash invested that month.
func CapexAdditions(plan domain.CapexPlan) map[int]decimal.Decimal {
	additions := make(map[int]decimal.Decimal)
	for _, item := range plan.Items {
		additions[item.StartMonth] = additions[item.StartMonth].Add(item.Amount)
	}
	return additions
}

// DepreciationSchedule maps each global month to the total depreciation
// charge across all capital items. Straight-line spreads the amount evenly
// over the useful life; declining-balance applies a monthly rate to the
// remaining book value, defaulting the annual rate to 2/life when the plan
// does not carry a valid one.
func DepreciationSchedule(plan domain.CapexPlan) map[int]decimal.Decimal {
	schedule := make(map[int]decimal.Decimal)
	method := plan.Method()
	for _, item := range plan.Items {
		lifeMonths := item.UsefulLifeYears * domain.MonthsPerYear
		if lifeMonths < 1 {
			lifeMonths = 1
		}

		if method == domain.DecliningBalance {
			rate := decliningRate(plan, item)
			book := item.Amount
			for offset := 0; offset < lifeMonths; offset++ {
				// Divide last so the charge stays exact for round rates.
				charge := book.Mul(rate).Div(twelve)
				if charge.GreaterThan(book) {
					charge = book
				}
				if !charge.IsPositive() {
					break
				}
				month := item.StartMonth + offset
				schedule[month] = schedule[month].Add(charge)
				book = book.Sub(charge)
				if !book.IsPositive() {
					break
				}
			}
			continue
		}

		monthly := item.Amount.Div(decimal.NewFromInt(int64(lifeMonths)))
		for offset := 0; offset < lifeMonths; offset++ {
			month := item.StartMonth + offset
			schedule[month] = schedule[month].Add(monthly)
		}
	}
	return schedule
}

func decliningRate(plan domain.CapexPlan, item domain.CapexItem) decimal.Decimal {
	if plan.DecliningBalanceRate != nil {
		rate := *plan.DecliningBalanceRate
		if rate.IsPositive() && rate.LessThan(decimal.NewFromInt(1)) {
			return rate
		}
	}
	life := item.UsefulLifeYears
	if life < 1 {
		life = 1
	}
	return two.Div(decimal.NewFromInt(int64(life)))
}
