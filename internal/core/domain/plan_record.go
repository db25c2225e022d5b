package domain

import (
	"time"

	"github.com/google/uuid"
)

// PlanRecord is a stored planning scenario: the full input bundle plus the
// calculator configuration, persisted as a named snapshot.
type PlanRecord struct {
	ID          uuid.UUID     `json:"id"`
	Name        string        `json:"name"`
	Description string        `json:"description,omitempty"`
	Config      PlanConfig    `json:"config"`
	Bundle      FinanceBundle `json:"bundle"`
	CreatedAt   time.Time     `json:"created_at"`
	UpdatedAt   time.Time     `json:"updated_at"`
}

// PlanBackup is a point-in-time copy of a plan record, taken before an
// overwrite so the previous state can be restored.
type PlanBackup struct {
	ID        uuid.UUID     `json:"id"`
	PlanID    uuid.UUID     `json:"plan_id"`
	Label     string        `json:"label"`
	Config    PlanConfig    `json:"config"`
	Bundle    FinanceBundle `json:"bundle"`
	CreatedAt time.Time     `json:"created_at"`
}
