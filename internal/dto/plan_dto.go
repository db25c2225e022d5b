package dto

import (
	"time"

	"github.com/planfirst/financial_planning_app/internal/core/domain"
)

// CreatePlanRequest defines the data needed to store a new named plan.
type CreatePlanRequest struct {
	Name        string               `json:"name" binding:"required,max=100"`
	Description string               `json:"description" binding:"max=500"`
	Bundle      domain.FinanceBundle `json:"bundle" binding:"required"`
	Options     PlanOptionsRequest   `json:"options"`
}

// UpdatePlanRequest overwrites a stored plan's contents.
type UpdatePlanRequest struct {
	Name        string               `json:"name" binding:"omitempty,max=100"`
	Description string               `json:"description" binding:"max=500"`
	Bundle      domain.FinanceBundle `json:"bundle" binding:"required"`
	Options     PlanOptionsRequest   `json:"options"`
}

// CreateBackupRequest labels an explicit backup of a plan's current state.
type CreateBackupRequest struct {
	Label string `json:"label" binding:"omitempty,max=100"`
}

// PlanResponse defines the data returned for a stored plan.
type PlanResponse struct {
	ID          string               `json:"id"`
	Name        string               `json:"name"`
	Description string               `json:"description,omitempty"`
	Bundle      domain.FinanceBundle `json:"bundle"`
	CreatedAt   time.Time            `json:"createdAt"`
	UpdatedAt   time.Time            `json:"updatedAt"`
}

// ToPlanResponse converts a domain.PlanRecord to PlanResponse DTO
func ToPlanResponse(record *domain.PlanRecord) PlanResponse {
	return PlanResponse{
		ID:          record.ID.String(),
		Name:        record.Name,
		Description: record.Description,
		Bundle:      record.Bundle,
		CreatedAt:   record.CreatedAt,
		UpdatedAt:   record.UpdatedAt,
	}
}

// ToListPlanResponse converts a slice of domain.PlanRecord to PlanResponse DTOs
func ToListPlanResponse(records []domain.PlanRecord) []PlanResponse {
	res := make([]PlanResponse, len(records))
	for i, record := range records {
		res[i] = ToPlanResponse(&record)
	}
	return res
}

// PlanBackupResponse defines the data returned for a plan backup.
type PlanBackupResponse struct {
	ID        string    `json:"id"`
	PlanID    string    `json:"planID"`
	Label     string    `json:"label"`
	CreatedAt time.Time `json:"createdAt"`
}

// ToPlanBackupResponse converts a domain.PlanBackup to PlanBackupResponse DTO
func ToPlanBackupResponse(backup *domain.PlanBackup) PlanBackupResponse {
	return PlanBackupResponse{
		ID:        backup.ID.String(),
		PlanID:    backup.PlanID.String(),
		Label:     backup.Label,
		CreatedAt: backup.CreatedAt,
	}
}

// ToListPlanBackupResponse converts a slice of domain.PlanBackup to DTOs
func ToListPlanBackupResponse(backups []domain.PlanBackup) []PlanBackupResponse {
	res := make([]PlanBackupResponse, len(backups))
	for i, backup := range backups {
		res[i] = ToPlanBackupResponse(&backup)
	}
	return res
}

// SamplePlanResponse returns the built-in demonstration dataset.
type SamplePlanResponse struct {
	Bundle  domain.FinanceBundle `json:"bundle"`
	Options PlanOptionsRequest   `json:"options"`
}

// ToSamplePlanResponse maps the sample bundle and its options.
func ToSamplePlanResponse(bundle domain.FinanceBundle, opts domain.PlanOptions) SamplePlanResponse {
	return SamplePlanResponse{
		Bundle: bundle,
		Options: PlanOptionsRequest{
			FTE:                  opts.FTE,
			Unit:                 opts.Unit,
			Currency:             opts.Currency,
			FiscalYearStartMonth: opts.FiscalYearStartMonth,
			ForecastYears:        opts.ForecastYears,
			WorkingCapital:       opts.WorkingCapital,
		},
	}
}
