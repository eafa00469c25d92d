package routes

import (
	"time"

	"github.com/emrekaracan/jobboard-backend/internal/config"
	"github.com/emrekaracan/jobboard-backend/internal/handlers"
	"github.com/emrekaracan/jobboard-backend/internal/middleware"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"gorm.io/gorm"
)

func Setup(
	app *fiber.App,
	cfg *config.Config,
	db *gorm.DB,
	authHandler *handlers.AuthHandler,
	jobHandler *handlers.JobHandler,
	appHandler *handlers.ApplicationHandler,
	healthHandler *handlers.HealthHandler,
) {
	api := app.Group("/api")

	// General API rate limiter: 60 req/min per IP
	api.Use(limiter.New(limiter.Config{
		Max:               60,
		Expiration:        1 * time.Minute,
		LimiterMiddleware: limiter.SlidingWindow{},
		KeyGenerator:      func(c *fiber.Ctx) string { return c.IP() },
	}))

	api.Get("/health", healthHandler.Check)

	// Public catalog
	api.Get("/jobs", jobHandler.List)
	api.Get("/jobs/:id", jobHandler.Get)

	// Auth is public, with a stricter rate limit: 10 req/min per IP
	auth := api.Group("/auth")
	auth.Use(limiter.New(limiter.Config{
		Max:               10,
		Expiration:        1 * time.Minute,
		LimiterMiddleware: limiter.SlidingWindow{},
		KeyGenerator:      func(c *fiber.Ctx) string { return c.IP() },
	}))
	auth.Post("/register", authHandler.Register)
	auth.Post("/login", authHandler.Login)
	auth.Post("/refresh", authHandler.Refresh)

	// Protected routes (JWT required) - apply middleware per route so the
	// public catalog above stays open
	api.Post("/auth/logout", middleware.JWTProtected(cfg), authHandler.Logout)
	api.Post("/jobs/:id/apply", middleware.JWTProtected(cfg), appHandler.Apply)
	api.Get("/me/applications", middleware.JWTProtected(cfg), appHandler.MyApplications)
	api.Get("/applications/:id", middleware.JWTProtected(cfg), appHandler.Get)

	// Admin surface (JWT + admin role)
	admin := api.Group("/admin", middleware.JWTProtected(cfg), middleware.AdminRequired(db, cfg))
	admin.Get("/jobs", jobHandler.AdminList)
	admin.Post("/jobs", jobHandler.Create)
	admin.Put("/jobs/:id", jobHandler.Update)
	admin.Patch("/jobs/:id/toggle", jobHandler.ToggleActive)
	admin.Delete("/jobs/:id", jobHandler.Delete)
	admin.Get("/applications", appHandler.AdminList)
	admin.Put("/applications/:id/status", appHandler.UpdateStatus)
	admin.Get("/stats", appHandler.Stats)
}
