package middleware

import (
	"github.com/gofiber/fiber/v2"

	"github.com/pressquill/newshub/internal/pkg/usercontext"
)

// RequireAuth ensures a logged-in web session; redirects to /login if missing.
func RequireAuth(c *fiber.Ctx) error {
	v := c.Locals(usercontext.KeyFromProtected)
	loggedIn := false
	if b, ok := v.(bool); ok {
		loggedIn = b
	}
	if !loggedIn {
		return c.Redirect("/login", fiber.StatusSeeOther)
	}
	return c.Next()
}

// RequireRole ensures a logged-in session with one of the given roles;
// redirects to the home page otherwise.
func RequireRole(roles ...string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userCtx := usercontext.GetUserContext(c)
		if !userCtx.IsLoggedIn {
			return c.Redirect("/login", fiber.StatusSeeOther)
		}
		for _, role := range roles {
			if userCtx.Role == role {
				return c.Next()
			}
		}
		return c.Redirect("/", fiber.StatusSeeOther)
	}
}

// RequireAPIAuth ensures an authenticated API request and returns JSON 401 instead of redirect.
func RequireAPIAuth(c *fiber.Ctx) error {
	if !usercontext.IsLoggedIn(c) {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error":   "unauthorized",
			"message": "authentication required",
		})
	}
	return c.Next()
}
