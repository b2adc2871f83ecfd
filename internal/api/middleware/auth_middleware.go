package middleware

import (
	"crypto/subtle"
	"log/slog"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	config "github.com/maheshrc27/pagepost/configs"
	"github.com/maheshrc27/pagepost/pkg/utils"
)

type AuthMiddleware struct {
	cfg config.Config
}

func NewAuthMiddleware(cfg config.Config) *AuthMiddleware {
	return &AuthMiddleware{cfg: cfg}
}

// AuthMiddleware accepts the identity provider's session token either as a
// bearer token or in the session cookie and stores the user id in Locals.
func (m *AuthMiddleware) AuthMiddleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		tokenString := bearerToken(c)
		fromCookie := false
		if tokenString == "" {
			tokenString = c.Cookies(m.cfg.CookieName)
			fromCookie = true
		}

		if tokenString == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "Missing token or cookie",
			})
		}

		claims, err := utils.ValidateToken(m.cfg.JWTSecret, tokenString)
		if err == nil {
			var userID uuid.UUID
			userID, err = uuid.Parse(claims.Subject)
			if err == nil {
				c.Locals("user_id", userID)
				return c.Next()
			}
		}

		if fromCookie {
			c.Cookie(&fiber.Cookie{
				Name:   m.cfg.CookieName,
				Value:  "",
				Path:   "/",
				MaxAge: -1, // Delete cookie
			})
		}

		slog.Info("Token validation failed", "error", err)
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Invalid or expired token",
		})
	}
}

// JobKey guards the job trigger endpoint with the shared JOB_SECRET.
func (m *AuthMiddleware) JobKey() fiber.Handler {
	return func(c *fiber.Ctx) error {
		token := bearerToken(c)
		if m.cfg.JobSecret == "" || token == "" ||
			subtle.ConstantTimeCompare([]byte(token), []byte(m.cfg.JobSecret)) != 1 {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"success": false,
				"error":   "Unauthorized",
			})
		}
		return c.Next()
	}
}

func bearerToken(c *fiber.Ctx) string {
	header := c.Get(fiber.HeaderAuthorization)
	if len(header) < 7 || !strings.EqualFold(header[:7], "Bearer ") {
		return ""
	}
	return strings.TrimSpace(header[7:])
}
