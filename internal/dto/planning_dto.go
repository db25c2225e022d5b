package dto

import (
	"github.com/planfirst/financial_planning_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// PlanOptionsRequest carries the calculator settings submitted alongside a
// finance bundle.
type PlanOptionsRequest struct {
	FTE                  decimal.Decimal                   `json:"fte"`
	Unit                 string                            `json:"unit"`
	Currency             string                            `json:"currency"`
	FiscalYearStartMonth int                               `json:"fiscalYearStartMonth" binding:"omitempty,min=1,max=12"`
	ForecastYears        int                               `json:"forecastYears" binding:"omitempty,min=1,max=20"`
	WorkingCapital       *domain.WorkingCapitalAssumptions `json:"workingCapital,omitempty"`
}

// ToPlanOptions converts the request into the domain options, applying the
// calculator defaults for anything left unset.
func (r PlanOptionsRequest) ToPlanOptions() domain.PlanOptions {
	opts := domain.PlanOptions{
		FTE:                  r.FTE,
		Unit:                 r.Unit,
		Currency:             r.Currency,
		FiscalYearStartMonth: r.FiscalYearStartMonth,
		ForecastYears:        r.ForecastYears,
		WorkingCapital:       r.WorkingCapital,
	}
	if opts.FiscalYearStartMonth == 0 {
		opts.FiscalYearStartMonth = 1
	}
	if opts.ForecastYears == 0 {
		opts.ForecastYears = 1
	}
	return opts
}

// ComputeRequest asks for a full plan evaluation from typed inputs.
type ComputeRequest struct {
	Bundle          domain.FinanceBundle       `json:"bundle" binding:"required"`
	Options         PlanOptionsRequest         `json:"options"`
	SalesOverride   *decimal.Decimal           `json:"salesOverride,omitempty"`
	AmountOverrides map[string]decimal.Decimal `json:"amountOverrides,omitempty"`
}

// ComputeOptions extracts the per-computation overrides.
func (r ComputeRequest) ComputeOptions() domain.ComputeOptions {
	return domain.ComputeOptions{
		SalesOverride:   r.SalesOverride,
		AmountOverrides: r.AmountOverrides,
	}
}

// ComputeResponse returns the evaluated plan: the annual amounts keyed by
// line-item code plus the decorated KPI sentinels.
type ComputeResponse struct {
	Amounts        domain.Amounts     `json:"amounts"`
	BreakEvenSales domain.Metric      `json:"breakEvenSales"`
	LaborShare     domain.Metric      `json:"laborDistributionRatio"`
	Metrics        domain.PlanMetrics `json:"metrics"`
}

// ToComputeResponse maps the engine result and its summarized metrics.
func ToComputeResponse(result *domain.ComputeResult, metrics domain.PlanMetrics) ComputeResponse {
	return ComputeResponse{
		Amounts:        result.Amounts,
		BreakEvenSales: result.BreakEven,
		LaborShare:     result.LaborShare,
		Metrics:        metrics,
	}
}

// MetricsRequest reduces already-computed annual amounts to ratio metrics.
type MetricsRequest struct {
	Amounts        domain.Amounts `json:"amounts" binding:"required"`
	BreakEvenSales *domain.Metric `json:"breakEvenSales,omitempty"`
	LaborShare     *domain.Metric `json:"laborDistributionRatio,omitempty"`
}

// ToComputeResult rebuilds the engine result the summarizer expects.
func (r MetricsRequest) ToComputeResult() *domain.ComputeResult {
	result := &domain.ComputeResult{Amounts: r.Amounts}
	if r.BreakEvenSales != nil {
		result.BreakEven = *r.BreakEvenSales
	}
	if r.LaborShare != nil {
		result.LaborShare = *r.LaborShare
	}
	return result
}

// StatementsRequest asks for the full monthly statement detail.
type StatementsRequest struct {
	Bundle          domain.FinanceBundle       `json:"bundle" binding:"required"`
	Options         PlanOptionsRequest         `json:"options"`
	SalesOverride   *decimal.Decimal           `json:"salesOverride,omitempty"`
	AmountOverrides map[string]decimal.Decimal `json:"amountOverrides,omitempty"`
}

// StatementsResponse wraps the monthly and annual statement output.
type StatementsResponse struct {
	Statements *domain.FinancialStatements `json:"statements"`
}

// TargetSalesRequest asks for the sales level that reaches a target
// ordinary income, bracketed by an optional search range.
type TargetSalesRequest struct {
	Bundle  domain.FinanceBundle `json:"bundle" binding:"required"`
	Options PlanOptionsRequest   `json:"options"`
	Target  decimal.Decimal      `json:"target" binding:"required"`
	Low     *decimal.Decimal     `json:"low,omitempty"`
	High    *decimal.Decimal     `json:"high,omitempty"`
}

// TargetSalesResponse reports the solve outcome and the plan evaluated at
// the solved sales level.
type TargetSalesResponse struct {
	Result  domain.TargetSolveResult `json:"result"`
	Amounts domain.Amounts           `json:"amounts"`
}
