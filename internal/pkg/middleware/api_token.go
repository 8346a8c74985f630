package middleware

import (
	"errors"
	"log"
	"strings"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/pressquill/newshub/app/models"
	"github.com/pressquill/newshub/app/repository"
	"github.com/pressquill/newshub/internal/pkg/database"
	"github.com/pressquill/newshub/internal/pkg/usercontext"
)

// APITokenAuthMiddleware authenticates requests carrying a user API token header.
func APITokenAuthMiddleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		token := extractAPITokenFromHeader(c)
		if token == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "unauthorized", "message": "Missing API token"})
		}

		db := database.GetDB()
		if db == nil {
			log.Print("api token middleware: database unavailable")
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal_server_error", "message": "Database unavailable"})
		}

		hash := models.HashAPIToken(token)
		repo := repository.GetGlobalFactory().GetUserRepository()
		user, record, err := repo.GetByTokenHash(hash)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "unauthorized", "message": "Invalid API token"})
			}
			log.Printf("api token lookup failed: %v", err)
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal_server_error", "message": "API token verification failed"})
		}

		if !record.IsActive() {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "unauthorized", "message": "API token revoked"})
		}

		// Refresh last-used timestamp best-effort.
		record.TouchUsage()
		if err := db.Model(&models.APIToken{}).
			Where("id = ?", record.ID).
			Update("token_last_used_at", record.TokenLastUsedAt).Error; err != nil {
			log.Printf("failed to update api token usage timestamp for user %d: %v", user.ID, err)
		}

		userCtx := usercontext.UserContext{
			UserID:     user.ID,
			Username:   user.Username,
			Role:       user.Role,
			IsLoggedIn: true,
		}
		c.Locals(usercontext.KeyUserContext, userCtx)
		c.Locals(usercontext.KeyFromProtected, true)
		c.Locals(usercontext.KeyUserID, user.ID)
		c.Locals(usercontext.KeyUsername, user.Username)
		c.Locals(usercontext.KeyRole, user.Role)

		return c.Next()
	}
}

func extractAPITokenFromHeader(c *fiber.Ctx) string {
	token := strings.TrimSpace(c.Get("X-API-Key"))
	if token != "" {
		return token
	}
	auth := strings.TrimSpace(c.Get("Authorization"))
	if strings.HasPrefix(strings.ToLower(auth), "bearer ") {
		return strings.TrimSpace(auth[7:])
	}
	return ""
}
