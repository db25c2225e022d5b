package pgsql

import (
	"github.com/jackc/pgx/v5/pgxpool"
	portsrepo "github.com/planfirst/financial_planning_app/internal/core/ports/repositories"
)

func NewRepositoryProvider(dbPool *pgxpool.Pool) portsrepo.RepositoryProvider {
	planRepo := newPgxPlanRepository(dbPool)

	return portsrepo.RepositoryProvider{
		PlanRepo: planRepo,
	}
}
