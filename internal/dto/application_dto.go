package dto

import "github.com/emrekaracan/jobboard-backend/internal/models"

type UpdateStatusRequest struct {
	Status string `json:"status"`
	Notes  string `json:"notes,omitempty"`
}

// ApplicationRow is an admin-review row with applicant and job context
// flattened in for the listing table.
type ApplicationRow struct {
	models.Application
	Applicant string `json:"applicant"`
	Email     string `json:"email"`
	JobTitle  string `json:"job_title"`
	Company   string `json:"company"`
}

// ApplicationDetail is one application plus its status audit trail,
// newest transition first.
type ApplicationDetail struct {
	models.Application
	History []models.ApplicationStatusHistory `json:"history"`
}

// WorkflowStats backs the admin dashboard counters.
type WorkflowStats struct {
	TotalJobs         int64            `json:"total_jobs"`
	ActiveJobs        int64            `json:"active_jobs"`
	TotalApplications int64            `json:"total_applications"`
	ByStatus          map[string]int64 `json:"by_status"`
}
