package services

import (
	"errors"
	"fmt"
	"log/slog"
	"mime/multipart"
	"strings"
	"time"

	"github.com/emrekaracan/jobboard-backend/internal/dto"
	"github.com/emrekaracan/jobboard-backend/internal/models"
	"github.com/emrekaracan/jobboard-backend/internal/storage"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

var (
	ErrDuplicateApplication = errors.New("you have already applied for this position")
	ErrJobInactive          = errors.New("this job is not accepting applications")
	ErrInvalidStatus        = errors.New("invalid application status")
	ErrApplicationNotFound  = errors.New("application not found")
)

// ApplicationFilter is a conjunction of optional admin-review criteria.
type ApplicationFilter struct {
	Status string
	JobID  uuid.UUID

	// Search matches applicant first/last name, email, job title, or company.
	Search string
}

type ApplicationService struct {
	db      *gorm.DB
	resumes *storage.ResumeStore
}

func NewApplicationService(db *gorm.DB, resumes *storage.ResumeStore) *ApplicationService {
	return &ApplicationService{db: db, resumes: resumes}
}

// Submit creates an application with status pending. The résumé is optional;
// when present it is stored before the insert and removed again if the insert
// fails, so a rejected submission never leaves a file behind. Duplicates are
// rejected by the (job_id, user_id) unique index rather than a prior lookup.
func (s *ApplicationService) Submit(jobID, userID uuid.UUID, coverLetter string, resume *multipart.FileHeader) (*models.Application, error) {
	var job models.Job
	if err := s.db.First(&job, "id = ?", jobID).Error; err != nil {
		return nil, ErrJobInactive
	}
	if !job.IsActive {
		return nil, ErrJobInactive
	}

	resumePath := ""
	if resume != nil {
		path, err := s.resumes.Store(resume, userID, jobID)
		if err != nil {
			return nil, err
		}
		resumePath = path
	}

	app := models.Application{
		ID:          uuid.New(),
		JobID:       jobID,
		UserID:      userID,
		CoverLetter: strings.TrimSpace(coverLetter),
		ResumePath:  resumePath,
		Status:      models.StatusPending,
		AppliedAt:   time.Now(),
	}

	if err := s.db.Create(&app).Error; err != nil {
		if rmErr := s.resumes.Remove(resumePath); rmErr != nil {
			slog.Error("failed to remove resume after insert failure", "path", resumePath, "error", rmErr)
		}
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrDuplicateApplication
		}
		return nil, fmt.Errorf("failed to submit application: %w", err)
	}
	return &app, nil
}

// UpdateStatus sets a new status and appends the matching history row in one
// transaction; a crash between the two writes cannot tear them apart.
func (s *ApplicationService) UpdateStatus(id uuid.UUID, status, notes string) (*models.Application, error) {
	if !models.ValidStatus(status) {
		return nil, ErrInvalidStatus
	}

	var app models.Application
	if err := s.db.First(&app, "id = ?", id).Error; err != nil {
		return nil, ErrApplicationNotFound
	}

	now := time.Now()
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.Application{}).
			Where("id = ?", app.ID).
			Updates(map[string]interface{}{"status": status, "updated_at": now}).Error; err != nil {
			return err
		}
		history := models.ApplicationStatusHistory{
			ID:            uuid.New(),
			ApplicationID: app.ID,
			Status:        status,
			Notes:         strings.TrimSpace(notes),
		}
		return tx.Create(&history).Error
	})
	if err != nil {
		return nil, fmt.Errorf("failed to update application status: %w", err)
	}

	app.Status = status
	app.UpdatedAt = now
	return &app, nil
}

func (s *ApplicationService) List(filter ApplicationFilter) ([]dto.ApplicationRow, error) {
	query := s.db.Model(&models.Application{}).
		Joins("JOIN jobs ON jobs.id = applications.job_id").
		Joins("JOIN users ON users.id = applications.user_id")

	if filter.Status != "" {
		query = query.Where("applications.status = ?", filter.Status)
	}
	if filter.JobID != uuid.Nil {
		query = query.Where("applications.job_id = ?", filter.JobID)
	}
	if filter.Search != "" {
		term := "%" + strings.ToLower(filter.Search) + "%"
		query = query.Where(
			"LOWER(users.first_name) LIKE ? OR LOWER(users.last_name) LIKE ? OR LOWER(users.email) LIKE ? OR LOWER(jobs.title) LIKE ? OR LOWER(jobs.company) LIKE ?",
			term, term, term, term, term,
		)
	}

	var apps []models.Application
	err := query.Order("applications.applied_at DESC").
		Preload("Job").
		Preload("User").
		Find(&apps).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list applications: %w", err)
	}

	rows := make([]dto.ApplicationRow, 0, len(apps))
	for _, app := range apps {
		rows = append(rows, dto.ApplicationRow{
			Application: app,
			Applicant:   app.User.DisplayName(),
			Email:       app.User.Email,
			JobTitle:    app.Job.Title,
			Company:     app.Job.Company,
		})
	}
	return rows, nil
}

// ListForUser backs the applicant dashboard, newest first.
func (s *ApplicationService) ListForUser(userID uuid.UUID) ([]dto.ApplicationRow, error) {
	var apps []models.Application
	err := s.db.Where("user_id = ?", userID).
		Order("applied_at DESC").
		Preload("Job").
		Preload("User").
		Find(&apps).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list applications: %w", err)
	}

	rows := make([]dto.ApplicationRow, 0, len(apps))
	for _, app := range apps {
		rows = append(rows, dto.ApplicationRow{
			Application: app,
			Applicant:   app.User.DisplayName(),
			Email:       app.User.Email,
			JobTitle:    app.Job.Title,
			Company:     app.Job.Company,
		})
	}
	return rows, nil
}

// Get returns one application with its audit trail, newest transition first.
func (s *ApplicationService) Get(id uuid.UUID) (*dto.ApplicationDetail, error) {
	var app models.Application
	if err := s.db.Preload("Job").Preload("User").First(&app, "id = ?", id).Error; err != nil {
		return nil, ErrApplicationNotFound
	}

	var history []models.ApplicationStatusHistory
	if err := s.db.Where("application_id = ?", id).Order("created_at DESC").Find(&history).Error; err != nil {
		return nil, fmt.Errorf("failed to load status history: %w", err)
	}

	return &dto.ApplicationDetail{Application: app, History: history}, nil
}

// Stats backs the admin dashboard counters.
func (s *ApplicationService) Stats() (*dto.WorkflowStats, error) {
	stats := &dto.WorkflowStats{ByStatus: make(map[string]int64)}

	if err := s.db.Model(&models.Job{}).Count(&stats.TotalJobs).Error; err != nil {
		return nil, err
	}
	if err := s.db.Model(&models.Job{}).Where("is_active = ?", true).Count(&stats.ActiveJobs).Error; err != nil {
		return nil, err
	}
	if err := s.db.Model(&models.Application{}).Count(&stats.TotalApplications).Error; err != nil {
		return nil, err
	}

	type statusRow struct {
		Status string
		Total  int64
	}
	var rows []statusRow
	err := s.db.Model(&models.Application{}).
		Select("status, COUNT(*) AS total").
		Group("status").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	for _, r := range rows {
		stats.ByStatus[r.Status] = r.Total
	}
	return stats, nil
}
