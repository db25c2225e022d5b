package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/planfirst/financial_planning_app/internal/apperrors"
	"github.com/planfirst/financial_planning_app/internal/core/domain"
	portsrepo "github.com/planfirst/financial_planning_app/internal/core/ports/repositories"
	"github.com/planfirst/financial_planning_app/internal/models"
	"github.com/planfirst/financial_planning_app/internal/utils/mapping"
)

type PgxPlanRepository struct {
	BaseRepository
}

// newPgxPlanRepository creates a new repository for plan snapshots.
func newPgxPlanRepository(pool *pgxpool.Pool) portsrepo.PlanRepository {
	return &PgxPlanRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

// Ensure implementation matches interface
var _ portsrepo.PlanRepository = (*PgxPlanRepository)(nil)

// SavePlan inserts a new plan snapshot.
func (r *PgxPlanRepository) SavePlan(ctx context.Context, plan domain.PlanRecord) error {
	modelPlan, err := mapping.ToModelPlan(plan)
	if err != nil {
		return err
	}

	query := `
		INSERT INTO plans (id, name, description, config, bundle, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7);
	`

	_, err = r.Pool.Exec(ctx, query,
		modelPlan.ID,
		modelPlan.Name,
		modelPlan.Description,
		modelPlan.Config,
		modelPlan.Bundle,
		modelPlan.CreatedAt,
		modelPlan.UpdatedAt,
	)

	if err != nil {
		return fmt.Errorf("failed to save plan %s: %w", modelPlan.ID, err)
	}
	return nil
}

// FindPlanByID retrieves one plan snapshot.
func (r *PgxPlanRepository) FindPlanByID(ctx context.Context, id uuid.UUID) (*domain.PlanRecord, error) {
	query := `
		SELECT id, name, description, config, bundle, created_at, updated_at
		FROM plans
		WHERE id = $1;
	`
	var modelPlan models.Plan
	err := r.Pool.QueryRow(ctx, query, id).Scan(
		&modelPlan.ID,
		&modelPlan.Name,
		&modelPlan.Description,
		&modelPlan.Config,
		&modelPlan.Bundle,
		&modelPlan.CreatedAt,
		&modelPlan.UpdatedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find plan by id %s: %w", id, err)
	}

	record, err := mapping.ToDomainPlan(modelPlan)
	if err != nil {
		return nil, err
	}
	return &record, nil
}

// ListPlans retrieves stored plans, newest first.
func (r *PgxPlanRepository) ListPlans(ctx context.Context, limit, offset int) ([]domain.PlanRecord, error) {
	query := `
		SELECT id, name, description, config, bundle, created_at, updated_at
		FROM plans
		ORDER BY updated_at DESC, id
		LIMIT $1 OFFSET $2;
	`
	rows, err := r.Pool.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to query plans: %w", err)
	}
	defer rows.Close()

	modelPlans, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (models.Plan, error) {
		var plan models.Plan
		err := row.Scan(
			&plan.ID,
			&plan.Name,
			&plan.Description,
			&plan.Config,
			&plan.Bundle,
			&plan.CreatedAt,
			&plan.UpdatedAt,
		)
		return plan, err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan plans: %w", err)
	}

	records := make([]domain.PlanRecord, 0, len(modelPlans))
	for _, modelPlan := range modelPlans {
		record, err := mapping.ToDomainPlan(modelPlan)
		if err != nil {
			return nil, err
		}
		records = append(records, record)
	}
	return records, nil
}

// UpdatePlan overwrites a stored plan's contents.
func (r *PgxPlanRepository) UpdatePlan(ctx context.Context, plan domain.PlanRecord) error {
	modelPlan, err := mapping.ToModelPlan(plan)
	if err != nil {
		return err
	}

	query := `
		UPDATE plans
		SET name = $2, description = $3, config = $4, bundle = $5, updated_at = $6
		WHERE id = $1;
	`

	tag, err := r.Pool.Exec(ctx, query,
		modelPlan.ID,
		modelPlan.Name,
		modelPlan.Description,
		modelPlan.Config,
		modelPlan.Bundle,
		modelPlan.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to update plan %s: %w", modelPlan.ID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// DeletePlan removes a plan; its backups cascade.
func (r *PgxPlanRepository) DeletePlan(ctx context.Context, id uuid.UUID) error {
	tag, err := r.Pool.Exec(ctx, `DELETE FROM plans WHERE id = $1;`, id)
	if err != nil {
		return fmt.Errorf("failed to delete plan %s: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// SaveBackup inserts a point-in-time copy of a plan.
func (r *PgxPlanRepository) SaveBackup(ctx context.Context, backup domain.PlanBackup) error {
	modelBackup, err := mapping.ToModelPlanBackup(backup)
	if err != nil {
		return err
	}

	query := `
		INSERT INTO plan_backups (id, plan_id, label, config, bundle, created_at)
		VALUES ($1, $2, $3, $4, $5, $6);
	`

	_, err = r.Pool.Exec(ctx, query,
		modelBackup.ID,
		modelBackup.PlanID,
		modelBackup.Label,
		modelBackup.Config,
		modelBackup.Bundle,
		modelBackup.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to save backup %s: %w", modelBackup.ID, err)
	}
	return nil
}

// ListBackupsByPlan retrieves a plan's backups, newest first.
func (r *PgxPlanRepository) ListBackupsByPlan(ctx context.Context, planID uuid.UUID) ([]domain.PlanBackup, error) {
	query := `
		SELECT id, plan_id, label, config, bundle, created_at
		FROM plan_backups
		WHERE plan_id = $1
		ORDER BY created_at DESC, id;
	`
	rows, err := r.Pool.Query(ctx, query, planID)
	if err != nil {
		return nil, fmt.Errorf("failed to query backups: %w", err)
	}
	defer rows.Close()

	modelBackups, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (models.PlanBackup, error) {
		var backup models.PlanBackup
		err := row.Scan(
			&backup.ID,
			&backup.PlanID,
			&backup.Label,
			&backup.Config,
			&backup.Bundle,
			&backup.CreatedAt,
		)
		return backup, err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan backups: %w", err)
	}

	backups := make([]domain.PlanBackup, 0, len(modelBackups))
	for _, modelBackup := range modelBackups {
		backup, err := mapping.ToDomainPlanBackup(modelBackup)
		if err != nil {
			return nil, err
		}
		backups = append(backups, backup)
	}
	return backups, nil
}

// FindBackupByID retrieves one backup.
func (r *PgxPlanRepository) FindBackupByID(ctx context.Context, id uuid.UUID) (*domain.PlanBackup, error) {
	query := `
		SELECT id, plan_id, label, config, bundle, created_at
		FROM plan_backups
		WHERE id = $1;
	`
	var modelBackup models.PlanBackup
	err := r.Pool.QueryRow(ctx, query, id).Scan(
		&modelBackup.ID,
		&modelBackup.PlanID,
		&modelBackup.Label,
		&modelBackup.Config,
		&modelBackup.Bundle,
		&modelBackup.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find backup by id %s: %w", id, err)
	}

	backup, err := mapping.ToDomainPlanBackup(modelBackup)
	if err != nil {
		return nil, err
	}
	return &backup, nil
}

// DeleteBackup removes one backup.
func (r *PgxPlanRepository) DeleteBackup(ctx context.Context, id uuid.UUID) error {
	tag, err := r.Pool.Exec(ctx, `DELETE FROM plan_backups WHERE id = $1;`, id)
	if err != nil {
		return fmt.Errorf("failed to delete backup %s: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
