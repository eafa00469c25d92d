package middleware

import (
	"github.com/emrekaracan/jobboard-backend/internal/config"
	"github.com/emrekaracan/jobboard-backend/internal/dto"
	jwtware "github.com/gofiber/contrib/jwt"
	"github.com/gofiber/fiber/v2"
)

// JWTProtected rejects requests without a valid access token. The 401 payload
// carries a login redirect that preserves the originally requested path, so
// clients can send the user back where they were headed after signing in.
func JWTProtected(cfg *config.Config) fiber.Handler {
	return jwtware.New(jwtware.Config{
		SigningKey: jwtware.SigningKey{Key: []byte(cfg.JWTSecret)},
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
				Error:    true,
				Message:  "Unauthorized: invalid or expired token",
				Redirect: "/login?next=" + c.Path(),
			})
		},
	})
}
