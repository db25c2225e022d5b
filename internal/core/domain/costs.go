package domain

import (
	"fmt"

	"github.com/planfirst/financial_planning_app/internal/apperrors"
	"github.com/shopspring/decimal"
)

// CostPlan splits the cost configuration into sales-linked ratios,
// gross-profit-linked ratios and annual fixed amounts, each keyed by
// line-item code.
type CostPlan struct {
	VariableRatios       map[string]decimal.Decimal `json:"variable_ratios"`
	GrossLinkedRatios    map[string]decimal.Decimal `json:"gross_linked_ratios"`
	FixedCosts           map[string]decimal.Decimal `json:"fixed_costs"`
	NonOperatingIncome   map[string]decimal.Decimal `json:"non_operating_income"`
	NonOperatingExpenses map[string]decimal.Decimal `json:"non_operating_expenses"`
}

// Validate checks every ratio lies in [0,1] and every amount is non-negative.
func (p CostPlan) Validate() *apperrors.ValidationError {
	verr := apperrors.NewValidationError()
	validateRatioMap(verr, "variable_ratios", p.VariableRatios)
	validateRatioMap(verr, "gross_linked_ratios", p.GrossLinkedRatios)
	validateAmountMap(verr, "fixed_costs", p.FixedCosts)
	validateAmountMap(verr, "non_operating_income", p.NonOperatingIncome)
	validateAmountMap(verr, "non_operating_expenses", p.NonOperatingExpenses)
	return verr
}

func validateRatioMap(verr *apperrors.ValidationError, field string, ratios map[string]decimal.Decimal) {
	for code, ratio := range ratios {
		if ratio.IsNegative() || ratio.GreaterThan(decimal.NewFromInt(1)) {
			verr.Add(fmt.Sprintf("%s.%s", field, code), "ratio must be between 0 and 1")
		}
	}
}

func validateAmountMap(verr *apperrors.ValidationError, field string, amounts map[string]decimal.Decimal) {
	for code, amount := range amounts {
		if amount.IsNegative() {
			verr.Add(fmt.Sprintf("%s.%s", field, code), "amount must be zero or positive")
		}
	}
}
