package handlers

import (
	"errors"

	"github.com/emrekaracan/jobboard-backend/internal/dto"
	"github.com/emrekaracan/jobboard-backend/internal/models"
	"github.com/emrekaracan/jobboard-backend/internal/services"
	"github.com/emrekaracan/jobboard-backend/internal/session"
	"github.com/emrekaracan/jobboard-backend/internal/storage"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type ApplicationHandler struct {
	appService *services.ApplicationService
}

func NewApplicationHandler(appService *services.ApplicationService) *ApplicationHandler {
	return &ApplicationHandler{appService: appService}
}

// Apply submits an application to a job. Multipart form: cover_letter text
// field plus an optional resume file.
func (h *ApplicationHandler) Apply(c *fiber.Ctx) error {
	userID, err := session.GetUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
			Error: true, Message: "Unauthorized",
		})
	}

	jobID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid job ID",
		})
	}

	resume, err := c.FormFile("resume")
	if err != nil {
		resume = nil
	}

	app, err := h.appService.Submit(jobID, userID, c.FormValue("cover_letter"), resume)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrDuplicateApplication):
			return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{
				Error: true, Message: err.Error(),
			})
		case errors.Is(err, services.ErrJobInactive):
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
				Error: true, Message: err.Error(),
			})
		case errors.Is(err, storage.ErrFileTooLarge), errors.Is(err, storage.ErrUnsupportedType):
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
				Error: true, Message: err.Error(),
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to submit application. Please try again.",
		})
	}

	return c.Status(fiber.StatusCreated).JSON(app)
}

// MyApplications is the applicant dashboard listing.
func (h *ApplicationHandler) MyApplications(c *fiber.Ctx) error {
	userID, err := session.GetUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
			Error: true, Message: "Unauthorized",
		})
	}

	rows, err := h.appService.ListForUser(userID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to fetch applications",
		})
	}
	return c.JSON(fiber.Map{"data": rows})
}

// Get returns one application with its history. Applicants can only see
// their own; admins can see any.
func (h *ApplicationHandler) Get(c *fiber.Ctx) error {
	userID, err := session.GetUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
			Error: true, Message: "Unauthorized",
		})
	}

	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid application ID",
		})
	}

	detail, err := h.appService.Get(id)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
			Error: true, Message: "Application not found",
		})
	}

	if detail.UserID != userID && session.GetRole(c) != models.RoleAdmin {
		return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{
			Error: true, Message: "Forbidden", Redirect: "/",
		})
	}
	return c.JSON(detail)
}

// AdminList is the review queue: filterable by status, job, and free-text
// search over applicant and job fields.
func (h *ApplicationHandler) AdminList(c *fiber.Ctx) error {
	filter := services.ApplicationFilter{
		Status: c.Query("status"),
		Search: c.Query("search"),
	}
	if raw := c.Query("job_id"); raw != "" {
		jobID, err := uuid.Parse(raw)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
				Error: true, Message: "Invalid job ID",
			})
		}
		filter.JobID = jobID
	}

	rows, err := h.appService.List(filter)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to fetch applications",
		})
	}
	return c.JSON(fiber.Map{"data": rows})
}

func (h *ApplicationHandler) UpdateStatus(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid application ID",
		})
	}

	var req dto.UpdateStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid request body",
		})
	}

	app, err := h.appService.UpdateStatus(id, req.Status, req.Notes)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrInvalidStatus):
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
				Error: true, Message: err.Error(),
			})
		case errors.Is(err, services.ErrApplicationNotFound):
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
				Error: true, Message: err.Error(),
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to update status",
		})
	}
	return c.JSON(app)
}

func (h *ApplicationHandler) Stats(c *fiber.Ctx) error {
	stats, err := h.appService.Stats()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to fetch stats",
		})
	}
	return c.JSON(stats)
}
