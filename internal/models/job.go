package models

import (
	"time"

	"github.com/google/uuid"
)

// Job is a posting visible to applicants while IsActive. Jobs are hard-deleted,
// but only when no application references them.
type Job struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Title        string    `gorm:"size:200;not null" json:"title"`
	Company      string    `gorm:"size:200;not null" json:"company"`
	Location     string    `gorm:"size:200" json:"location,omitempty"`
	SalaryRange  string    `gorm:"size:100" json:"salary_range,omitempty"`
	Description  string    `gorm:"type:text;not null" json:"description"`
	Requirements string    `gorm:"type:text" json:"requirements,omitempty"`
	IsActive     bool      `gorm:"not null;default:true;index" json:"is_active"`
	CreatedBy    uuid.UUID `gorm:"type:uuid;not null;index" json:"created_by"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
	Creator      User      `gorm:"foreignKey:CreatedBy" json:"-"`
}
