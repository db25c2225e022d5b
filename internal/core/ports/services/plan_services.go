package services

import (
	"context"

	"github.com/google/uuid"
	"github.com/planfirst/financial_planning_app/internal/core/domain"
)

// PlanSvcFacade defines persistence-backed plan management: named snapshots
// of the finance bundle plus automatic backups taken before overwrites.
type PlanSvcFacade interface {
	CreatePlan(ctx context.Context, name, description string, bundle domain.FinanceBundle, opts domain.PlanOptions) (*domain.PlanRecord, error)
	GetPlan(ctx context.Context, id uuid.UUID) (*domain.PlanRecord, error)
	ListPlans(ctx context.Context, limit, offset int) ([]domain.PlanRecord, error)
	UpdatePlan(ctx context.Context, id uuid.UUID, name, description string, bundle domain.FinanceBundle, opts domain.PlanOptions) (*domain.PlanRecord, error)
	DeletePlan(ctx context.Context, id uuid.UUID) error

	CreateBackup(ctx context.Context, planID uuid.UUID, label string) (*domain.PlanBackup, error)
	ListBackups(ctx context.Context, planID uuid.UUID) ([]domain.PlanBackup, error)
	RestoreBackup(ctx context.Context, planID, backupID uuid.UUID) (*domain.PlanRecord, error)
	DeleteBackup(ctx context.Context, planID, backupID uuid.UUID) error

	// SamplePlan returns the built-in demonstration dataset without
	// persisting it.
	SamplePlan(ctx context.Context) (domain.FinanceBundle, domain.PlanOptions)
}
