package mapping

import (
	"encoding/json"
	"fmt"

	"github.com/planfirst/financial_planning_app/internal/core/domain"
	"github.com/planfirst/financial_planning_app/internal/models"
)

// ToModelPlan converts a domain PlanRecord to a model Plan, serializing the
// config and bundle documents.
func ToModelPlan(d domain.PlanRecord) (models.Plan, error) {
	configJSON, err := json.Marshal(d.Config)
	if err != nil {
		return models.Plan{}, fmt.Errorf("failed to marshal plan config: %w", err)
	}
	bundleJSON, err := json.Marshal(d.Bundle)
	if err != nil {
		return models.Plan{}, fmt.Errorf("failed to marshal plan bundle: %w", err)
	}
	return models.Plan{
		ID:          d.ID,
		Name:        d.Name,
		Description: d.Description,
		Config:      configJSON,
		Bundle:      bundleJSON,
		CreatedAt:   d.CreatedAt,
		UpdatedAt:   d.UpdatedAt,
	}, nil
}

// ToDomainPlan converts a model Plan to a domain PlanRecord
func ToDomainPlan(m models.Plan) (domain.PlanRecord, error) {
	record := domain.PlanRecord{
		ID:          m.ID,
		Name:        m.Name,
		Description: m.Description,
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}
	if err := json.Unmarshal(m.Config, &record.Config); err != nil {
		return domain.PlanRecord{}, fmt.Errorf("failed to unmarshal plan config: %w", err)
	}
	if err := json.Unmarshal(m.Bundle, &record.Bundle); err != nil {
		return domain.PlanRecord{}, fmt.Errorf("failed to unmarshal plan bundle: %w", err)
	}
	return record, nil
}

// ToModelPlanBackup converts a domain PlanBackup to its model row.
func ToModelPlanBackup(d domain.PlanBackup) (models.PlanBackup, error) {
	configJSON, err := json.Marshal(d.Config)
	if err != nil {
		return models.PlanBackup{}, fmt.Errorf("failed to marshal backup config: %w", err)
	}
	bundleJSON, err := json.Marshal(d.Bundle)
	if err != nil {
		return models.PlanBackup{}, fmt.Errorf("failed to marshal backup bundle: %w", err)
	}
	return models.PlanBackup{
		ID:        d.ID,
		PlanID:    d.PlanID,
		Label:     d.Label,
		Config:    configJSON,
		Bundle:    bundleJSON,
		CreatedAt: d.CreatedAt,
	}, nil
}

// ToDomainPlanBackup converts a model PlanBackup to its domain form.
func ToDomainPlanBackup(m models.PlanBackup) (domain.PlanBackup, error) {
	backup := domain.PlanBackup{
		ID:        m.ID,
		PlanID:    m.PlanID,
		Label:     m.Label,
		CreatedAt: m.CreatedAt,
	}
	if err := json.Unmarshal(m.Config, &backup.Config); err != nil {
		return domain.PlanBackup{}, fmt.Errorf("failed to unmarshal backup config: %w", err)
	}
	if err := json.Unmarshal(m.Bundle, &backup.Bundle); err != nil {
		return domain.PlanBackup{}, fmt.Errorf("failed to unmarshal backup bundle: %w", err)
	}
	return backup, nil
}
