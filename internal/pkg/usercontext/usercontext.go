package usercontext

import (
	"github.com/gofiber/fiber/v2"

	"github.com/pressquill/newshub/app/models"
)

// UserContext is the explicit per-request identity handed to every
// handler via Locals. Handlers never reach into the session directly.
type UserContext struct {
	UserID     uint   `json:"user_id"`
	Username   string `json:"username"`
	Role       string `json:"role"`
	IsLoggedIn bool   `json:"is_logged_in"`
}

// GetUserContext retrieves the user context from fiber context.
// Returns a default anonymous context if none is set.
func GetUserContext(c *fiber.Ctx) UserContext {
	if ctx := c.Locals(KeyUserContext); ctx != nil {
		return ctx.(UserContext)
	}
	return UserContext{IsLoggedIn: false}
}

// IsLoggedIn checks if the current user is logged in
func IsLoggedIn(c *fiber.Ctx) bool {
	return GetUserContext(c).IsLoggedIn
}

// GetUserID returns the current user's ID, or 0 if not logged in
func GetUserID(c *fiber.Ctx) uint {
	return GetUserContext(c).UserID
}

// GetRole returns the current user's role, or empty string if not logged in
func GetRole(c *fiber.Ctx) string {
	return GetUserContext(c).Role
}

func (uc UserContext) IsReader() bool     { return uc.IsLoggedIn && uc.Role == models.ROLE_READER }
func (uc UserContext) IsEditor() bool     { return uc.IsLoggedIn && uc.Role == models.ROLE_EDITOR }
func (uc UserContext) IsJournalist() bool { return uc.IsLoggedIn && uc.Role == models.ROLE_JOURNALIST }
func (uc UserContext) IsPublisher() bool  { return uc.IsLoggedIn && uc.Role == models.ROLE_PUBLISHER }
