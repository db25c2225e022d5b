package domain

import "github.com/shopspring/decimal"

// PlanOptions carries the calculator settings that accompany a finance
// bundle when building a plan configuration.
type PlanOptions struct {
	FTE                  decimal.Decimal
	Unit                 string
	Currency             string
	FiscalYearStartMonth int
	ForecastYears        int
	WorkingCapital       *WorkingCapitalAssumptions
}

// ComputeOptions tweaks a single computation without mutating the plan.
// SalesOverride rescales the monthly sales profile to the overridden annual
// total; AmountOverrides pin individual line items to flat annual amounts.
type ComputeOptions struct {
	SalesOverride   *decimal.Decimal
	AmountOverrides map[string]decimal.Decimal
}

// PlanMetrics are the ratio-level figures derived from computed amounts.
type PlanMetrics struct {
	Sales       decimal.Decimal `json:"sales"`
	Gross       decimal.Decimal `json:"gross"`
	Op          decimal.Decimal `json:"op"`
	Ord         decimal.Decimal `json:"ord"`
	GrossMargin Metric          `json:"gross_margin"`
	OpMargin    Metric          `json:"op_margin"`
	OrdMargin   Metric          `json:"ord_margin"`
	COGSRatio   Metric          `json:"cogs_ratio"`
	OpexRatio   Metric          `json:"opex_ratio"`
	LaborRatio  Metric          `json:"labor_ratio"`
	BreakEven   Metric          `json:"breakeven"`
}
