package controllers

import (
	"fmt"
	"log"

	"github.com/gofiber/fiber/v2"

	"github.com/pressquill/newshub/app/models"
	"github.com/pressquill/newshub/app/repository"
	"github.com/pressquill/newshub/internal/pkg/database"
	"github.com/pressquill/newshub/internal/pkg/usercontext"
)

// HandleUserProfile renders the logged-in user's profile with the counters
// relevant to their role.
func HandleUserProfile(c *fiber.Ctx) error {
	userCtx := usercontext.GetUserContext(c)

	repos := repository.GetGlobalRepositories()
	user, err := repos.User.GetByID(userCtx.UserID)
	if err != nil {
		return c.Status(fiber.StatusNotFound).SendString("User not found")
	}

	data := fiber.Map{
		"Profile": user,
	}

	switch user.Role {
	case models.ROLE_JOURNALIST:
		articles, err := repos.Article.GetByAuthor(user.ID)
		if err != nil {
			log.Printf("failed to load articles for user %d: %v", user.ID, err)
		}
		newsletterCount, _ := repos.Newsletter.CountByAuthor(user.ID)
		data["ArticleCount"] = len(articles)
		data["NewsletterCount"] = newsletterCount
	case models.ROLE_EDITOR:
		approvedCount, _ := repos.Article.CountApprovedByEditor(user.ID)
		data["ApprovedCount"] = approvedCount
	case models.ROLE_PUBLISHER:
		if publisher, err := repos.Publisher.GetByOwner(user.ID); err == nil && publisher != nil {
			data["Publisher"] = publisher
		}
	}

	return render(c, "user/profile", "Profile", data)
}

// HandleUserProfileEdit renders the profile edit form and accepts the
// submission.
func HandleUserProfileEdit(c *fiber.Ctx) error {
	userCtx := usercontext.GetUserContext(c)

	repos := repository.GetGlobalRepositories()
	user, err := repos.User.GetByID(userCtx.UserID)
	if err != nil {
		return c.Status(fiber.StatusNotFound).SendString("User not found")
	}

	if c.Method() == fiber.MethodPost {
		user.FirstName = c.FormValue("first_name")
		user.LastName = c.FormValue("last_name")
		user.Email = c.FormValue("email")

		if password := c.FormValue("password"); password != "" {
			if err := user.SetPassword(password); err != nil {
				return flashError(c, fmt.Sprintf("something went wrong: %s", err), "/user/profile/edit")
			}
		}

		if err := user.Validate(); err != nil {
			return flashError(c, fmt.Sprintf("something went wrong: %s", err), "/user/profile/edit")
		}

		if err := repos.User.Update(user); err != nil {
			return flashError(c, fmt.Sprintf("something went wrong: %s", err), "/user/profile/edit")
		}

		return flashSuccess(c, "Profile updated.", "/user/profile")
	}

	return render(c, "user/profile_edit", "Edit Profile", fiber.Map{
		"Profile": user,
	})
}

// HandleUserSettings renders the settings page with API token metadata.
func HandleUserSettings(c *fiber.Ctx) error {
	userCtx := usercontext.GetUserContext(c)

	token, err := models.GetOrCreateAPIToken(database.GetDB(), userCtx.UserID)
	if err != nil {
		log.Printf("failed to load api token for user %d: %v", userCtx.UserID, err)
		return c.Status(fiber.StatusInternalServerError).SendString("Failed to load settings")
	}

	return render(c, "user/settings", "Settings", fiber.Map{
		"Token": token,
	})
}

// HandleUserAPITokenGenerate issues a fresh API token. The raw secret is
// shown exactly once.
func HandleUserAPITokenGenerate(c *fiber.Ctx) error {
	userCtx := usercontext.GetUserContext(c)

	db := database.GetDB()
	token, err := models.GetOrCreateAPIToken(db, userCtx.UserID)
	if err != nil {
		return flashError(c, fmt.Sprintf("something went wrong: %s", err), "/user/settings")
	}

	raw, err := token.Issue()
	if err != nil {
		return flashError(c, fmt.Sprintf("something went wrong: %s", err), "/user/settings")
	}

	if err := db.Save(token).Error; err != nil {
		return flashError(c, fmt.Sprintf("something went wrong: %s", err), "/user/settings")
	}

	return render(c, "user/settings", "Settings", fiber.Map{
		"Token":    token,
		"RawToken": raw,
	})
}

// HandleUserAPITokenRevoke revokes the current API token.
func HandleUserAPITokenRevoke(c *fiber.Ctx) error {
	userCtx := usercontext.GetUserContext(c)

	db := database.GetDB()
	token, err := models.GetOrCreateAPIToken(db, userCtx.UserID)
	if err != nil {
		return flashError(c, fmt.Sprintf("something went wrong: %s", err), "/user/settings")
	}

	token.Revoke()
	if err := db.Save(token).Error; err != nil {
		return flashError(c, fmt.Sprintf("something went wrong: %s", err), "/user/settings")
	}

	return flashSuccess(c, "API token revoked.", "/user/settings")
}
