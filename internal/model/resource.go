package model

import (
	"time"
)

// Resource aggregates every milestone citing the same learning source.
type Resource struct {
	Name         string    `db:"name" json:"name"`
	UsageCount   int       `db:"usage_count" json:"usage_count"`
	TotalHours   float64   `db:"total_hours" json:"total_hours"`
	SkillsTaught []string  `db:"-" json:"skills_taught"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
	UpdatedAt    time.Time `db:"updated_at" json:"updated_at"`
}
