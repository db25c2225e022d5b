package dto

import (
	"github.com/planfirst/financial_planning_app/internal/core/domain"
)

// TimelineRequest asks for the multi-year monthly projection.
type TimelineRequest struct {
	Bundle       domain.FinanceBundle `json:"bundle" binding:"required"`
	Options      PlanOptionsRequest   `json:"options"`
	HorizonYears int                  `json:"horizonYears" binding:"omitempty,min=1,max=20"`
}

// Horizon returns the requested projection length, defaulting to the
// options' forecast years.
func (r TimelineRequest) Horizon() int {
	if r.HorizonYears > 0 {
		return r.HorizonYears
	}
	return r.Options.ToPlanOptions().ForecastYears
}

// TimelineResponse is the per-year projection detail.
type TimelineResponse struct {
	Timeline *domain.Timeline `json:"timeline"`
}
