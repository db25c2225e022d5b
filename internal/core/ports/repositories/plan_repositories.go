package repositories

import (
	"context"

	"github.com/google/uuid"
	"github.com/planfirst/financial_planning_app/internal/core/domain"
)

// PlanRepository defines persistence for plan snapshots and their backups.
type PlanRepository interface {
	SavePlan(ctx context.Context, plan domain.PlanRecord) error
	FindPlanByID(ctx context.Context, id uuid.UUID) (*domain.PlanRecord, error)
	ListPlans(ctx context.Context, limit, offset int) ([]domain.PlanRecord, error)
	UpdatePlan(ctx context.Context, plan domain.PlanRecord) error
	DeletePlan(ctx context.Context, id uuid.UUID) error

	SaveBackup(ctx context.Context, backup domain.PlanBackup) error
	ListBackupsByPlan(ctx context.Context, planID uuid.UUID) ([]domain.PlanBackup, error)
	FindBackupByID(ctx context.Context, id uuid.UUID) (*domain.PlanBackup, error)
	DeleteBackup(ctx context.Context, id uuid.UUID) error
}
