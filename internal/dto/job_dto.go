package dto

import "github.com/emrekaracan/jobboard-backend/internal/models"

// JobRequest is the create/edit payload. Updates are full field replacement.
type JobRequest struct {
	Title        string `json:"title"`
	Company      string `json:"company"`
	Location     string `json:"location,omitempty"`
	SalaryRange  string `json:"salary_range,omitempty"`
	Description  string `json:"description"`
	Requirements string `json:"requirements,omitempty"`
	IsActive     *bool  `json:"is_active,omitempty"`
}

// JobWithCounts is an admin-table row: the job plus its application totals.
type JobWithCounts struct {
	models.Job
	ApplicationCount int64 `json:"application_count"`
	PendingCount     int64 `json:"pending_count"`
}
