package domain

import "github.com/shopspring/decimal"

// ScenarioRow is one scenario column in the comparison table: the headline
// figures of a plan computed under a single set of assumptions.
type ScenarioRow struct {
	Name            string          `json:"name"`
	Sales           decimal.Decimal `json:"sales"`
	GrossProfit     decimal.Decimal `json:"gross_profit"`
	OperatingProfit decimal.Decimal `json:"operating_profit"`
	OrdinaryProfit  decimal.Decimal `json:"ordinary_profit"`
	NetProfit       decimal.Decimal `json:"net_profit"`
	BreakEvenSales  Metric          `json:"break_even_sales"`
	LaborShare      Metric          `json:"labor_distribution_ratio"`
}

// SensitivityPoint is one step of a sensitivity sweep: the multiplier applied
// to the swept driver and the resulting headline figures.
type SensitivityPoint struct {
	Multiplier decimal.Decimal `json:"multiplier"`
	Row        ScenarioRow     `json:"row"`
}

// SensitivityResult is a full sweep over one driver.
type SensitivityResult struct {
	Driver string             `json:"driver"`
	Points []SensitivityPoint `json:"points"`
}

// TargetSolveResult reports a bisection solve for required sales.
type TargetSolveResult struct {
	RequiredSales decimal.Decimal `json:"required_sales"`
	Achieved      decimal.Decimal `json:"achieved"`
	Target        decimal.Decimal `json:"target"`
	Iterations    int             `json:"iterations"`
	Converged     bool            `json:"converged"`
}
