package controllers

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/sujit-baniya/flash"

	"github.com/pressquill/newshub/internal/pkg/usercontext"
)

const defaultPageSize = 10

func isLoggedIn(c *fiber.Ctx) bool {
	var fromProtected bool
	if protectedValue := c.Locals(usercontext.KeyFromProtected); protectedValue != nil {
		fromProtected = protectedValue.(bool)
	}

	return fromProtected
}

// ExtractUsername gets the username from Locals (set by middleware)
func ExtractUsername(c *fiber.Ctx) string {
	if userNameValue := c.Locals(usercontext.KeyUsername); userNameValue != nil {
		if userName, ok := userNameValue.(string); ok {
			return userName
		}
	}

	return ""
}

// render merges the per-request context every page needs into the handler's
// view data and renders the named template with the shared layout.
func render(c *fiber.Ctx, view string, title string, data fiber.Map) error {
	userCtx := usercontext.GetUserContext(c)

	bind := fiber.Map{
		"Title":      title,
		"User":       userCtx,
		"IsLoggedIn": userCtx.IsLoggedIn,
		"Flash":      flash.Get(c),
	}
	if token, ok := c.Locals("csrf").(string); ok {
		bind["CSRFToken"] = token
	}
	for k, v := range data {
		bind[k] = v
	}

	return c.Render(view, bind, "layouts/main")
}

// parseIDParam reads a numeric route parameter.
func parseIDParam(c *fiber.Ctx, name string) (uint, error) {
	raw := c.Params(name)
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil {
		return 0, err
	}
	return uint(id), nil
}

// pageOffset derives offset/limit from a ?page= query parameter.
func pageOffset(c *fiber.Ctx) (offset, limit, page int) {
	page = c.QueryInt("page", 1)
	if page < 1 {
		page = 1
	}
	return (page - 1) * defaultPageSize, defaultPageSize, page
}

func flashError(c *fiber.Ctx, message, redirectTo string) error {
	fm := fiber.Map{
		"type":    "error",
		"message": message,
	}
	return flash.WithError(c, fm).Redirect(redirectTo)
}

func flashSuccess(c *fiber.Ctx, message, redirectTo string) error {
	fm := fiber.Map{
		"type":    "success",
		"message": message,
	}
	return flash.WithSuccess(c, fm).Redirect(redirectTo)
}
