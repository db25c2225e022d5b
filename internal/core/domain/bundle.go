package domain

import "github.com/planfirst/financial_planning_app/internal/apperrors"

// FinanceBundle bundles every typed planning input so it can be passed around
// (and persisted) as one unit.
type FinanceBundle struct {
	Sales          SalesPlan                 `json:"sales"`
	Costs          CostPlan                  `json:"costs"`
	Capex          CapexPlan                 `json:"capex"`
	Loans          LoanSchedule              `json:"loans"`
	Tax            TaxPolicy                 `json:"tax"`
	WorkingCapital WorkingCapitalAssumptions `json:"working_capital"`
}

// Validate checks every constituent plan, prefixing field errors with the
// plan's name so the caller can map them back to input sections.
func (b FinanceBundle) Validate() *apperrors.ValidationError {
	verr := apperrors.NewValidationError()
	verr.Merge("sales", b.Sales.Validate())
	verr.Merge("costs", b.Costs.Validate())
	verr.Merge("capex", b.Capex.Validate())
	verr.Merge("loans", b.Loans.Validate())
	verr.Merge("tax", b.Tax.Validate())
	verr.Merge("working_capital", b.WorkingCapital.Validate())
	return verr
}
