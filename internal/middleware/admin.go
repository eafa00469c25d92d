package middleware

import (
	"strings"

	"github.com/emrekaracan/jobboard-backend/internal/config"
	"github.com/emrekaracan/jobboard-backend/internal/dto"
	"github.com/emrekaracan/jobboard-backend/internal/models"
	"github.com/emrekaracan/jobboard-backend/internal/session"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// AdminRequired gates the admin surface. It accepts, in order:
// 1. the configured admin token header,
// 2. a configured admin email,
// 3. the admin role on the user row (re-read, not trusted from the claim).
// Non-admins get a 403 pointing back at the public landing page.
func AdminRequired(db *gorm.DB, cfg *config.Config) fiber.Handler {
	adminEmails := parseCSV(cfg.AdminEmails)

	return func(c *fiber.Ctx) error {
		if cfg.AdminToken != "" && c.Get("X-Admin-Token") == cfg.AdminToken {
			return c.Next()
		}

		userID, err := session.GetUserID(c)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
				Error: true, Message: "Unauthorized",
				Redirect: "/login?next=" + c.Path(),
			})
		}

		if contains(adminEmails, session.GetEmail(c)) {
			return c.Next()
		}

		var user models.User
		if err := db.First(&user, "id = ?", userID).Error; err == nil && user.IsAdmin() {
			return c.Next()
		}

		return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{
			Error: true, Message: "Admin access required",
			Redirect: "/",
		})
	}
}

func parseCSV(s string) []string {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	result := make([]string, 0, len(parts))
	for _, p := range parts {
		trimmed := strings.TrimSpace(p)
		if trimmed != "" {
			result = append(result, trimmed)
		}
	}
	return result
}

func contains(list []string, val string) bool {
	for _, item := range list {
		if item == val {
			return true
		}
	}
	return false
}
