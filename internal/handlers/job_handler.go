package handlers

import (
	"errors"

	"github.com/emrekaracan/jobboard-backend/internal/dto"
	"github.com/emrekaracan/jobboard-backend/internal/services"
	"github.com/emrekaracan/jobboard-backend/internal/session"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type JobHandler struct {
	jobService *services.JobService
}

func NewJobHandler(jobService *services.JobService) *JobHandler {
	return &JobHandler{jobService: jobService}
}

// List is the public catalog: active postings only, filterable by keyword
// and location, newest first.
func (h *JobHandler) List(c *fiber.Ctx) error {
	filter := services.JobFilter{
		Status:   "active",
		Keyword:  c.Query("keyword"),
		Location: c.Query("location"),
	}

	jobs, err := h.jobService.List(filter)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to fetch jobs",
		})
	}
	return c.JSON(fiber.Map{"data": jobs})
}

func (h *JobHandler) Get(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid job ID",
		})
	}

	job, err := h.jobService.Get(id)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
			Error: true, Message: "Job not found",
		})
	}
	return c.JSON(job)
}

// AdminList returns every posting (active or not) with application counts,
// or a title-sorted slim listing when ?order=title is set (filter dropdowns).
func (h *JobHandler) AdminList(c *fiber.Ctx) error {
	if c.Query("order") == "title" {
		jobs, err := h.jobService.List(services.JobFilter{
			Status:       c.Query("status"),
			OrderByTitle: true,
		})
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
				Error: true, Message: "Failed to fetch jobs",
			})
		}
		return c.JSON(fiber.Map{"data": jobs})
	}

	rows, err := h.jobService.ListWithCounts()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to fetch jobs",
		})
	}
	return c.JSON(fiber.Map{"data": rows})
}

func (h *JobHandler) Create(c *fiber.Ctx) error {
	userID, err := session.GetUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
			Error: true, Message: "Unauthorized",
		})
	}

	var req dto.JobRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid request body",
		})
	}

	job, err := h.jobService.Create(&req, userID)
	if err != nil {
		if errors.Is(err, services.ErrMissingJobFields) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
				Error: true, Message: err.Error(),
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to create job",
		})
	}
	return c.Status(fiber.StatusCreated).JSON(job)
}

func (h *JobHandler) Update(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid job ID",
		})
	}

	var req dto.JobRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid request body",
		})
	}

	job, err := h.jobService.Update(id, &req)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrMissingJobFields):
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
				Error: true, Message: err.Error(),
			})
		case errors.Is(err, services.ErrJobNotFound):
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
				Error: true, Message: err.Error(),
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to update job",
		})
	}
	return c.JSON(job)
}

func (h *JobHandler) ToggleActive(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid job ID",
		})
	}

	job, err := h.jobService.ToggleActive(id)
	if err != nil {
		if errors.Is(err, services.ErrJobNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
				Error: true, Message: err.Error(),
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to toggle job",
		})
	}
	return c.JSON(job)
}

func (h *JobHandler) Delete(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid job ID",
		})
	}

	if err := h.jobService.Delete(id); err != nil {
		switch {
		case errors.Is(err, services.ErrHasApplications):
			return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{
				Error: true, Message: err.Error(),
			})
		case errors.Is(err, services.ErrJobNotFound):
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
				Error: true, Message: err.Error(),
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to delete job",
		})
	}
	return c.JSON(fiber.Map{"message": "Job deleted successfully"})
}
