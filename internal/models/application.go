package models

import (
	"time"

	"github.com/google/uuid"
)

// Application status values. Transitions are deliberately unordered: an admin
// may set any status at any time.
const (
	StatusPending     = "pending"
	StatusUnderReview = "under_review"
	StatusInterview   = "interview"
	StatusApproved    = "approved"
	StatusRejected    = "rejected"
)

var ApplicationStatuses = []string{
	StatusPending,
	StatusUnderReview,
	StatusInterview,
	StatusApproved,
	StatusRejected,
}

func ValidStatus(status string) bool {
	for _, s := range ApplicationStatuses {
		if s == status {
			return true
		}
	}
	return false
}

// Application is one applicant's submission against one job. The unique index
// on (job_id, user_id) rejects duplicate submissions at the database, so two
// concurrent submits cannot both slip past the check.
type Application struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	JobID       uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_applications_job_user" json:"job_id"`
	UserID      uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_applications_job_user" json:"user_id"`
	CoverLetter string    `gorm:"type:text" json:"cover_letter,omitempty"`
	ResumePath  string    `gorm:"size:500" json:"resume_path,omitempty"`
	Status      string    `gorm:"size:20;not null;default:'pending';index" json:"status"`
	AppliedAt   time.Time `gorm:"not null" json:"applied_at"`
	UpdatedAt   time.Time `json:"updated_at"`
	Job         Job       `gorm:"foreignKey:JobID" json:"-"`
	User        User      `gorm:"foreignKey:UserID" json:"-"`
}

// ApplicationStatusHistory is the append-only audit trail of status changes.
// A row is written in the same transaction as the Application status update,
// so the application's status always equals its newest history row.
type ApplicationStatusHistory struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	ApplicationID uuid.UUID `gorm:"type:uuid;not null;index" json:"application_id"`
	Status        string    `gorm:"size:20;not null" json:"status"`
	Notes         string    `gorm:"type:text" json:"notes,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
}

func (ApplicationStatusHistory) TableName() string {
	return "application_status_history"
}
