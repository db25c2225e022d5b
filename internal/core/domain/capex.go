package domain

import (
	"fmt"

	"github.com/planfirst/financial_planning_app/internal/apperrors"
	"github.com/shopspring/decimal"
)

// DepreciationMethod selects how capital assets are written off.
type DepreciationMethod string

const (
	StraightLine     DepreciationMethod = "straight_line"
	DecliningBalance DepreciationMethod = "declining_balance"
)

// MaxUsefulLifeYears bounds a capex item's depreciation horizon.
const MaxUsefulLifeYears = 20

// CapexItem is a single capital expenditure entering service at a given month.
type CapexItem struct {
	Name            string          `json:"name"`
	Amount          decimal.Decimal `json:"amount"`
	StartMonth      int             `json:"start_month"`
	UsefulLifeYears int             `json:"useful_life_years"`
}

// Validate checks the item's amount, start month and useful life.
func (i CapexItem) Validate() *apperrors.ValidationError {
	verr := apperrors.NewValidationError()
	if i.Name == "" {
		verr.Add("name", "name is required")
	}
	if !i.Amount.IsPositive() {
		verr.Add("amount", "amount must be positive")
	}
	if i.StartMonth < 1 || i.StartMonth > MonthsPerYear {
		verr.Add("start_month", "start month must be between 1 and 12")
	}
	if i.UsefulLifeYears < 1 || i.UsefulLifeYears > MaxUsefulLifeYears {
		verr.Add("useful_life_years", fmt.Sprintf("useful life must be between 1 and %d years", MaxUsefulLifeYears))
	}
	return verr
}

// AnnualDepreciation is the straight-line write-off for one year.
func (i CapexItem) AnnualDepreciation() decimal.Decimal {
	if i.UsefulLifeYears < 1 {
		return decimal.Zero
	}
	return i.Amount.Div(decimal.NewFromInt(int64(i.UsefulLifeYears)))
}

// CapexPlan is the full set of capital expenditures plus the depreciation
// method applied to all of them.
type CapexPlan struct {
	Items                []CapexItem        `json:"items"`
	DepreciationMethod   DepreciationMethod `json:"depreciation_method"`
	DecliningBalanceRate *decimal.Decimal   `json:"declining_balance_rate,omitempty"`
}

// Validate checks the method, optional rate and every item.
func (p CapexPlan) Validate() *apperrors.ValidationError {
	verr := apperrors.NewValidationError()
	switch p.DepreciationMethod {
	case StraightLine, DecliningBalance, "":
	default:
		verr.Add("depreciation_method", "depreciation method must be 'straight_line' or 'declining_balance'")
	}
	if p.DecliningBalanceRate != nil {
		rate := *p.DecliningBalanceRate
		if !rate.IsPositive() || rate.GreaterThanOrEqual(decimal.NewFromInt(1)) {
			verr.Add("declining_balance_rate", "declining balance rate must be greater than 0 and less than 1")
		}
	}
	for idx, item := range p.Items {
		verr.Merge(fmt.Sprintf("items[%d]", idx), item.Validate())
	}
	return verr
}

// Method returns the configured depreciation method, defaulting to
// straight-line when unset.
func (p CapexPlan) Method() DepreciationMethod {
	if p.DepreciationMethod == "" {
		return StraightLine
	}
	return p.DepreciationMethod
}

// AnnualDepreciation sums the first-year depreciation across all items.
func (p CapexPlan) AnnualDepreciation() decimal.Decimal {
	total := decimal.Zero
	if p.Method() == DecliningBalance && p.DecliningBalanceRate != nil {
		for _, item := range p.Items {
			total = total.Add(item.Amount.Mul(*p.DecliningBalanceRate))
		}
		return total
	}
	for _, item := range p.Items {
		total = total.Add(item.AnnualDepreciation())
	}
	return total
}

// TotalInvestment sums the cash outlay across all items.
func (p CapexPlan) TotalInvestment() decimal.Decimal {
	total := decimal.Zero
	for _, item := range p.Items {
		total = total.Add(item.Amount)
	}
	return total
}
