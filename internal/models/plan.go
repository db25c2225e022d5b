package models

import (
	"time"

	"github.com/google/uuid"
)

// Plan represents a stored plan snapshot row. The calculator configuration
// and the finance bundle are persisted as JSONB documents.
type Plan struct {
	ID          uuid.UUID `json:"id"` // Primary Key
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Config      []byte    `json:"config"` // JSONB
	Bundle      []byte    `json:"bundle"` // JSONB
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// PlanBackup represents a point-in-time copy of a plan row.
type PlanBackup struct {
	ID        uuid.UUID `json:"id"`     // Primary Key
	PlanID    uuid.UUID `json:"planID"` // FK -> plans.id, cascades on delete
	Label     string    `json:"label"`
	Config    []byte    `json:"config"` // JSONB
	Bundle    []byte    `json:"bundle"` // JSONB
	CreatedAt time.Time `json:"createdAt"`
}
