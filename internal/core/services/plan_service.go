package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/planfirst/financial_planning_app/internal/apperrors"
	"github.com/planfirst/financial_planning_app/internal/core/domain"
	portsrepo "github.com/planfirst/financial_planning_app/internal/core/ports/repositories"
	portssvc "github.com/planfirst/financial_planning_app/internal/core/ports/services"
	"github.com/planfirst/financial_planning_app/internal/utils/sampledata"
)

const defaultPlanListLimit = 50

// planService implements the PlanSvcFacade interface
type planService struct {
	BaseService
	planRepo portsrepo.PlanRepository
	now      func() time.Time
}

// PlanServiceOption is a functional option for configuring the plan service
type PlanServiceOption func(*planService)

// WithClock overrides the service clock, mainly for tests.
func WithClock(now func() time.Time) PlanServiceOption {
	return func(s *planService) {
		s.now = now
	}
}

// NewPlanService creates a new plan management service
func NewPlanService(repo portsrepo.PlanRepository, options ...PlanServiceOption) portssvc.PlanSvcFacade {
	svc := &planService{
		planRepo: repo,
		now:      time.Now,
	}
	for _, option := range options {
		option(svc)
	}
	return svc
}

var _ portssvc.PlanSvcFacade = (*planService)(nil)

func planConfigFor(bundle domain.FinanceBundle, opts domain.PlanOptions) domain.PlanConfig {
	plan := domain.NewPlanConfig(bundle.Sales.AnnualTotal(), opts.FTE, opts.Unit, opts.Currency, opts.FiscalYearStartMonth, opts.ForecastYears)
	return *plan
}

// CreatePlan validates and stores a new named plan snapshot.
func (s *planService) CreatePlan(ctx context.Context, name, description string, bundle domain.FinanceBundle, opts domain.PlanOptions) (*domain.PlanRecord, error) {
	if name == "" {
		verr := apperrors.NewValidationError()
		verr.Add("name", "name is required")
		return nil, verr
	}
	if verr := bundle.Validate(); verr.HasErrors() {
		s.LogError(ctx, verr, "Plan bundle failed validation", slog.String("name", name))
		return nil, verr
	}

	now := s.now().UTC()
	record := domain.PlanRecord{
		ID:          uuid.New(),
		Name:        name,
		Description: description,
		Config:      planConfigFor(bundle, opts),
		Bundle:      bundle,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.planRepo.SavePlan(ctx, record); err != nil {
		s.LogError(ctx, err, "Failed to save plan", slog.String("name", name))
		return nil, fmt.Errorf("failed to save plan: %w", err)
	}

	s.LogInfo(ctx, "Plan created",
		slog.String("plan_id", record.ID.String()),
		slog.String("name", name))
	return &record, nil
}

// GetPlan fetches one plan snapshot by id.
func (s *planService) GetPlan(ctx context.Context, id uuid.UUID) (*domain.PlanRecord, error) {
	record, err := s.planRepo.FindPlanByID(ctx, id)
	if err != nil {
		s.LogError(ctx, err, "Failed to fetch plan", slog.String("plan_id", id.String()))
		return nil, err
	}
	return record, nil
}

// ListPlans pages through stored plans, newest first.
func (s *planService) ListPlans(ctx context.Context, limit, offset int) ([]domain.PlanRecord, error) {
	if limit <= 0 {
		limit = defaultPlanListLimit
	}
	if offset < 0 {
		offset = 0
	}
	records, err := s.planRepo.ListPlans(ctx, limit, offset)
	if err != nil {
		s.LogError(ctx, err, "Failed to list plans")
		return nil, fmt.Errorf("failed to list plans: %w", err)
	}
	return records, nil
}

// UpdatePlan overwrites a stored plan, taking a backup of the previous state
// first so the overwrite can be undone.
func (s *planService) UpdatePlan(ctx context.Context, id uuid.UUID, name, description string, bundle domain.FinanceBundle, opts domain.PlanOptions) (*domain.PlanRecord, error) {
	if verr := bundle.Validate(); verr.HasErrors() {
		s.LogError(ctx, verr, "Plan bundle failed validation", slog.String("plan_id", id.String()))
		return nil, verr
	}

	existing, err := s.planRepo.FindPlanByID(ctx, id)
	if err != nil {
		s.LogError(ctx, err, "Failed to load plan for update", slog.String("plan_id", id.String()))
		return nil, err
	}

	now := s.now().UTC()
	backup := domain.PlanBackup{
		ID:        uuid.New(),
		PlanID:    existing.ID,
		Label:     fmt.Sprintf("before update %s", now.Format(time.RFC3339)),
		Config:    existing.Config,
		Bundle:    existing.Bundle,
		CreatedAt: now,
	}
	if err := s.planRepo.SaveBackup(ctx, backup); err != nil {
		s.LogError(ctx, err, "Failed to back up plan before update", slog.String("plan_id", id.String()))
		return nil, fmt.Errorf("failed to back up plan: %w", err)
	}

	updated := *existing
	if name != "" {
		updated.Name = name
	}
	updated.Description = description
	updated.Bundle = bundle
	updated.Config = planConfigFor(bundle, opts)
	updated.UpdatedAt = now

	if err := s.planRepo.UpdatePlan(ctx, updated); err != nil {
		s.LogError(ctx, err, "Failed to update plan", slog.String("plan_id", id.String()))
		return nil, fmt.Errorf("failed to update plan: %w", err)
	}

	s.LogInfo(ctx, "Plan updated",
		slog.String("plan_id", id.String()),
		slog.String("backup_id", backup.ID.String()))
	return &updated, nil
}

// DeletePlan removes a plan and its backups.
func (s *planService) DeletePlan(ctx context.Context, id uuid.UUID) error {
	if err := s.planRepo.DeletePlan(ctx, id); err != nil {
		s.LogError(ctx, err, "Failed to delete plan", slog.String("plan_id", id.String()))
		return err
	}
	s.LogInfo(ctx, "Plan deleted", slog.String("plan_id", id.String()))
	return nil
}

// CreateBackup takes an explicit labeled backup of a plan's current state.
func (s *planService) CreateBackup(ctx context.Context, planID uuid.UUID, label string) (*domain.PlanBackup, error) {
	existing, err := s.planRepo.FindPlanByID(ctx, planID)
	if err != nil {
		s.LogError(ctx, err, "Failed to load plan for backup", slog.String("plan_id", planID.String()))
		return nil, err
	}

	now := s.now().UTC()
	if label == "" {
		label = fmt.Sprintf("manual %s", now.Format(time.RFC3339))
	}
	backup := domain.PlanBackup{
		ID:        uuid.New(),
		PlanID:    existing.ID,
		Label:     label,
		Config:    existing.Config,
		Bundle:    existing.Bundle,
		CreatedAt: now,
	}
	if err := s.planRepo.SaveBackup(ctx, backup); err != nil {
		s.LogError(ctx, err, "Failed to save plan backup", slog.String("plan_id", planID.String()))
		return nil, fmt.Errorf("failed to save backup: %w", err)
	}

	s.LogInfo(ctx, "Plan backup created",
		slog.String("plan_id", planID.String()),
		slog.String("backup_id", backup.ID.String()))
	return &backup, nil
}

// ListBackups returns a plan's backups, newest first.
func (s *planService) ListBackups(ctx context.Context, planID uuid.UUID) ([]domain.PlanBackup, error) {
	backups, err := s.planRepo.ListBackupsByPlan(ctx, planID)
	if err != nil {
		s.LogError(ctx, err, "Failed to list plan backups", slog.String("plan_id", planID.String()))
		return nil, fmt.Errorf("failed to list backups: %w", err)
	}
	return backups, nil
}

// RestoreBackup replaces a plan's contents with a backup's, backing up the
// current state first.
func (s *planService) RestoreBackup(ctx context.Context, planID, backupID uuid.UUID) (*domain.PlanRecord, error) {
	backup, err := s.planRepo.FindBackupByID(ctx, backupID)
	if err != nil {
		s.LogError(ctx, err, "Failed to load backup", slog.String("backup_id", backupID.String()))
		return nil, err
	}
	if backup.PlanID != planID {
		s.LogError(ctx, apperrors.ErrNotFound, "Backup does not belong to plan",
			slog.String("plan_id", planID.String()),
			slog.String("backup_id", backupID.String()))
		return nil, apperrors.ErrNotFound
	}

	existing, err := s.planRepo.FindPlanByID(ctx, planID)
	if err != nil {
		return nil, err
	}

	now := s.now().UTC()
	preRestore := domain.PlanBackup{
		ID:        uuid.New(),
		PlanID:    planID,
		Label:     fmt.Sprintf("before restore %s", now.Format(time.RFC3339)),
		Config:    existing.Config,
		Bundle:    existing.Bundle,
		CreatedAt: now,
	}
	if err := s.planRepo.SaveBackup(ctx, preRestore); err != nil {
		return nil, fmt.Errorf("failed to back up plan before restore: %w", err)
	}

	restored := *existing
	restored.Config = backup.Config
	restored.Bundle = backup.Bundle
	restored.UpdatedAt = now
	if err := s.planRepo.UpdatePlan(ctx, restored); err != nil {
		s.LogError(ctx, err, "Failed to restore plan", slog.String("plan_id", planID.String()))
		return nil, fmt.Errorf("failed to restore plan: %w", err)
	}

	s.LogInfo(ctx, "Plan restored from backup",
		slog.String("plan_id", planID.String()),
		slog.String("backup_id", backupID.String()))
	return &restored, nil
}

// DeleteBackup removes one backup of a plan.
func (s *planService) DeleteBackup(ctx context.Context, planID, backupID uuid.UUID) error {
	backup, err := s.planRepo.FindBackupByID(ctx, backupID)
	if err != nil {
		s.LogError(ctx, err, "Failed to load backup for delete", slog.String("backup_id", backupID.String()))
		return err
	}
	if backup.PlanID != planID {
		return apperrors.ErrNotFound
	}
	if err := s.planRepo.DeleteBackup(ctx, backupID); err != nil {
		s.LogError(ctx, err, "Failed to delete backup", slog.String("backup_id", backupID.String()))
		return err
	}
	s.LogInfo(ctx, "Plan backup deleted",
		slog.String("plan_id", planID.String()),
		slog.String("backup_id", backupID.String()))
	return nil
}

// SamplePlan returns the bundled demonstration dataset.
func (s *planService) SamplePlan(ctx context.Context) (domain.FinanceBundle, domain.PlanOptions) {
	return sampledata.Bundle(), sampledata.Options()
}
