package dto

import (
	"github.com/planfirst/financial_planning_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// ScenarioTableRequest asks for the standard what-if comparison columns over
// a coarse single-sheet plan.
type ScenarioTableRequest struct {
	Base           domain.SimplePlan    `json:"base" binding:"required"`
	Current        *domain.SimplePlan   `json:"current,omitempty"`
	NonOperating   domain.NonOperating  `json:"nonOperating"`
	TargetOrdinary decimal.Decimal      `json:"targetOrdinary"`
	BreakEvenMode  domain.BreakEvenMode `json:"breakEvenMode" binding:"omitempty,oneof=OP ORD"`
}

// CurrentOrBase returns the working plan, falling back to the base plan when
// no separate current plan was submitted.
func (r ScenarioTableRequest) CurrentOrBase() domain.SimplePlan {
	if r.Current != nil {
		return *r.Current
	}
	return r.Base
}

// Mode returns the break-even mode, defaulting to ordinary income.
func (r ScenarioTableRequest) Mode() domain.BreakEvenMode {
	if r.BreakEvenMode == "" {
		return domain.BreakEvenOnOrdinary
	}
	return r.BreakEvenMode
}

// ScenarioTableResponse is the evaluated comparison table.
type ScenarioTableResponse struct {
	Rows []domain.ScenarioRow `json:"rows"`
}

// SensitivityRequest sweeps one driver of a full plan across multipliers.
type SensitivityRequest struct {
	Bundle      domain.FinanceBundle `json:"bundle" binding:"required"`
	Options     PlanOptionsRequest   `json:"options"`
	Driver      string               `json:"driver" binding:"required"`
	Multipliers []decimal.Decimal    `json:"multipliers" binding:"required,min=1"`
}

// SensitivityResponse is the per-multiplier sweep outcome.
type SensitivityResponse struct {
	Result *domain.SensitivityResult `json:"result"`
}
