package services

import (
	"context"

	"github.com/planfirst/financial_planning_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// PlannerSvc defines the core planning calculator operations.
type PlannerSvc interface {
	// PlanFromBundle binds the typed finance inputs into a calculator
	// configuration, deriving line-item rates and amounts.
	PlanFromBundle(ctx context.Context, bundle domain.FinanceBundle, opts domain.PlanOptions) (*domain.PlanConfig, error)

	// Compute evaluates the full plan: annual P&L amounts, KPI sentinels and
	// the monthly statement detail when the plan carries statement inputs.
	Compute(ctx context.Context, plan *domain.PlanConfig, opts domain.ComputeOptions) (*domain.ComputeResult, error)

	// SummarizeMetrics reduces computed amounts to ratio-level metrics.
	SummarizeMetrics(ctx context.Context, result *domain.ComputeResult) domain.PlanMetrics

	// SolveTargetSales finds the sales level whose ordinary income reaches
	// the target, by bisection over a bracketed range.
	SolveTargetSales(ctx context.Context, plan *domain.PlanConfig, target, low, high decimal.Decimal) (*domain.TargetSolveResult, *domain.ComputeResult, error)
}

// TimelineSvc builds multi-year monthly projections from a finance bundle.
type TimelineSvc interface {
	BuildTimeline(ctx context.Context, bundle domain.FinanceBundle, plan *domain.PlanConfig, horizonYears int) (*domain.Timeline, error)
}

// ScenarioSvc produces scenario comparison tables and sensitivity sweeps.
type ScenarioSvc interface {
	// ScenarioTable evaluates the standard what-if columns for a simple plan.
	ScenarioTable(ctx context.Context, base, current domain.SimplePlan, nonop domain.NonOperating, targetOrdinary decimal.Decimal, breakEvenMode domain.BreakEvenMode) ([]domain.ScenarioRow, error)

	// Sensitivity sweeps one driver across multipliers, recomputing the full
	// plan for each point.
	Sensitivity(ctx context.Context, plan *domain.PlanConfig, driver string, multipliers []decimal.Decimal) (*domain.SensitivityResult, error)
}
