package services

import (
	portsrepo "github.com/planfirst/financial_planning_app/internal/core/ports/repositories"
	portssvc "github.com/planfirst/financial_planning_app/internal/core/ports/services"
	"github.com/planfirst/financial_planning_app/pkg/config"
)

// NewServiceContainer creates a new service container with properly initialized dependencies
func NewServiceContainer(cfg *config.Config, repos portsrepo.RepositoryProvider) *portssvc.ServiceContainer {
	container := &portssvc.ServiceContainer{}

	// The planner is the core calculator; scenario sweeps recompute through it.
	container.Planner = NewPlannerService()
	container.Timeline = NewTimelineService()
	container.Scenario = NewScenarioService(container.Planner)
	container.Plans = NewPlanService(repos.PlanRepo)
	container.Auth = NewAuthService(cfg)

	return container
}

// Helper to check interface implementations at compile time
var (
	_ portssvc.PlannerSvc    = (*plannerService)(nil)
	_ portssvc.TimelineSvc   = (*timelineService)(nil)
	_ portssvc.ScenarioSvc   = (*scenarioService)(nil)
	_ portssvc.PlanSvcFacade = (*planService)(nil)
	_ portssvc.AuthSvc       = (*authService)(nil)
)
