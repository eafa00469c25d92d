package services

import (
	"errors"
	"fmt"
	"strings"

	"github.com/emrekaracan/jobboard-backend/internal/dto"
	"github.com/emrekaracan/jobboard-backend/internal/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

var (
	ErrMissingJobFields = errors.New("title, company, and description are required")
	ErrJobNotFound      = errors.New("job not found")
	ErrHasApplications  = errors.New("cannot delete a job with existing applications; deactivate it instead")
)

// JobFilter is a conjunction of optional criteria.
type JobFilter struct {
	Status   string // "", "active" or "inactive"
	Keyword  string
	Location string
	JobID    uuid.UUID

	// OrderByTitle switches from newest-first (catalog browse) to
	// title-ascending (admin filter dropdowns).
	OrderByTitle bool
}

type JobService struct {
	db *gorm.DB
}

func NewJobService(db *gorm.DB) *JobService {
	return &JobService{db: db}
}

func (s *JobService) Create(req *dto.JobRequest, createdBy uuid.UUID) (*models.Job, error) {
	if err := validateJobRequest(req); err != nil {
		return nil, err
	}

	job := models.Job{
		ID:           uuid.New(),
		Title:        strings.TrimSpace(req.Title),
		Company:      strings.TrimSpace(req.Company),
		Location:     strings.TrimSpace(req.Location),
		SalaryRange:  strings.TrimSpace(req.SalaryRange),
		Description:  strings.TrimSpace(req.Description),
		Requirements: strings.TrimSpace(req.Requirements),
		IsActive:     req.IsActive == nil || *req.IsActive,
		CreatedBy:    createdBy,
	}

	if err := s.db.Create(&job).Error; err != nil {
		return nil, fmt.Errorf("failed to create job: %w", err)
	}
	return &job, nil
}

// Update replaces every editable field; there are no partial-patch semantics.
func (s *JobService) Update(id uuid.UUID, req *dto.JobRequest) (*models.Job, error) {
	if err := validateJobRequest(req); err != nil {
		return nil, err
	}

	var job models.Job
	if err := s.db.First(&job, "id = ?", id).Error; err != nil {
		return nil, ErrJobNotFound
	}

	job.Title = strings.TrimSpace(req.Title)
	job.Company = strings.TrimSpace(req.Company)
	job.Location = strings.TrimSpace(req.Location)
	job.SalaryRange = strings.TrimSpace(req.SalaryRange)
	job.Description = strings.TrimSpace(req.Description)
	job.Requirements = strings.TrimSpace(req.Requirements)
	job.IsActive = req.IsActive == nil || *req.IsActive

	if err := s.db.Save(&job).Error; err != nil {
		return nil, fmt.Errorf("failed to update job: %w", err)
	}
	return &job, nil
}

func (s *JobService) ToggleActive(id uuid.UUID) (*models.Job, error) {
	var job models.Job
	if err := s.db.First(&job, "id = ?", id).Error; err != nil {
		return nil, ErrJobNotFound
	}

	job.IsActive = !job.IsActive
	if err := s.db.Model(&job).Update("is_active", job.IsActive).Error; err != nil {
		return nil, fmt.Errorf("failed to toggle job: %w", err)
	}
	return &job, nil
}

// Delete hard-deletes a posting, but only when nothing references it.
func (s *JobService) Delete(id uuid.UUID) error {
	var count int64
	if err := s.db.Model(&models.Application{}).Where("job_id = ?", id).Count(&count).Error; err != nil {
		return fmt.Errorf("failed to count applications: %w", err)
	}
	if count > 0 {
		return ErrHasApplications
	}

	result := s.db.Delete(&models.Job{}, "id = ?", id)
	if result.Error != nil {
		return fmt.Errorf("failed to delete job: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrJobNotFound
	}
	return nil
}

func (s *JobService) Get(id uuid.UUID) (*models.Job, error) {
	var job models.Job
	if err := s.db.First(&job, "id = ?", id).Error; err != nil {
		return nil, ErrJobNotFound
	}
	return &job, nil
}

func (s *JobService) List(filter JobFilter) ([]models.Job, error) {
	query := s.db.Model(&models.Job{})

	switch filter.Status {
	case "active":
		query = query.Where("is_active = ?", true)
	case "inactive":
		query = query.Where("is_active = ?", false)
	}
	if filter.Keyword != "" {
		kw := "%" + strings.ToLower(filter.Keyword) + "%"
		query = query.Where("LOWER(title) LIKE ? OR LOWER(company) LIKE ? OR LOWER(description) LIKE ?", kw, kw, kw)
	}
	if filter.Location != "" {
		query = query.Where("LOWER(location) LIKE ?", "%"+strings.ToLower(filter.Location)+"%")
	}
	if filter.JobID != uuid.Nil {
		query = query.Where("id = ?", filter.JobID)
	}

	order := "created_at DESC"
	if filter.OrderByTitle {
		order = "title ASC"
	}

	var jobs []models.Job
	if err := query.Order(order).Find(&jobs).Error; err != nil {
		return nil, fmt.Errorf("failed to list jobs: %w", err)
	}
	return jobs, nil
}

// ListWithCounts backs the admin jobs table: every posting with its total
// and pending application counts, newest first.
func (s *JobService) ListWithCounts() ([]dto.JobWithCounts, error) {
	var jobs []models.Job
	if err := s.db.Order("created_at DESC").Find(&jobs).Error; err != nil {
		return nil, fmt.Errorf("failed to list jobs: %w", err)
	}

	type countRow struct {
		JobID   uuid.UUID
		Total   int64
		Pending int64
	}
	var counts []countRow
	err := s.db.Model(&models.Application{}).
		Select("job_id, COUNT(*) AS total, COUNT(CASE WHEN status = ? THEN 1 END) AS pending", models.StatusPending).
		Group("job_id").
		Scan(&counts).Error
	if err != nil {
		return nil, fmt.Errorf("failed to count applications: %w", err)
	}

	byJob := make(map[uuid.UUID]countRow, len(counts))
	for _, c := range counts {
		byJob[c.JobID] = c
	}

	rows := make([]dto.JobWithCounts, 0, len(jobs))
	for _, job := range jobs {
		c := byJob[job.ID]
		rows = append(rows, dto.JobWithCounts{
			Job:              job,
			ApplicationCount: c.Total,
			PendingCount:     c.Pending,
		})
	}
	return rows, nil
}

func validateJobRequest(req *dto.JobRequest) error {
	if strings.TrimSpace(req.Title) == "" ||
		strings.TrimSpace(req.Company) == "" ||
		strings.TrimSpace(req.Description) == "" {
		return ErrMissingJobFields
	}
	return nil
}
