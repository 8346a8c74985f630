package controllers

import (
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/sujit-baniya/flash"

	"github.com/pressquill/newshub/app/models"
	"github.com/pressquill/newshub/app/repository"
	"github.com/pressquill/newshub/internal/pkg/database"
	"github.com/pressquill/newshub/internal/pkg/session"
	"github.com/pressquill/newshub/internal/pkg/statistics"
	"github.com/pressquill/newshub/internal/pkg/usercontext"
)

func HandleAuthLogin(c *fiber.Ctx) error {
	if c.Method() == fiber.MethodPost {
		fm := fiber.Map{
			"type": "error",
		}

		// notice: in production you should not inform the user
		// with detailed messages about login failures
		userRepo := repository.GetGlobalFactory().GetUserRepository()
		user, err := userRepo.GetByUsername(c.FormValue("username"))
		if err != nil {
			fm["message"] = "There is a problem with the login process"

			return flash.WithError(c, fm).Redirect("/login")
		}

		if !models.CheckPasswordHash(c.FormValue("password"), user.Password) {
			fm["message"] = "There is a problem with the login process"

			return flash.WithError(c, fm).Redirect("/login")
		}

		sess, err := session.GetSessionStore().Get(c)
		if err != nil {
			fm["message"] = fmt.Sprintf("something went wrong: %s", err)

			return flash.WithError(c, fm).Redirect("/login")
		}

		sess.Set(usercontext.AuthKey, true)
		sess.Set(usercontext.KeyUserID, user.ID)
		sess.Set(usercontext.KeyUsername, user.Username)
		sess.Set(usercontext.KeyRole, user.Role)

		if err := sess.Save(); err != nil {
			fm["message"] = fmt.Sprintf("something went wrong: %s", err)

			return flash.WithError(c, fm).Redirect("/login")
		}

		database.GetDB().Model(user).Update("last_login_at", time.Now())

		return flashSuccess(c, fmt.Sprintf("Welcome back, %s!", user.Username), "/")
	}

	return render(c, "auth/login", "Log in", fiber.Map{})
}

func HandleAuthLogout(c *fiber.Ctx) error {
	fm := fiber.Map{
		"type": "error",
	}

	sess, err := session.GetSessionStore().Get(c)
	if err != nil {
		fm["message"] = "logged out (no sess)"

		return flash.WithError(c, fm).Redirect("/login")
	}

	if err := sess.Destroy(); err != nil {
		fm["message"] = fmt.Sprintf("something went wrong: %s", err)

		return flash.WithError(c, fm).Redirect("/login")
	}

	c.Locals(usercontext.KeyFromProtected, false)

	return flashSuccess(c, "You have been logged out.", "/login")
}

func HandleAuthRegister(c *fiber.Ctx) error {
	if c.Method() == fiber.MethodPost {
		user, err := models.CreateUser(
			c.FormValue("username"),
			c.FormValue("email"),
			c.FormValue("password"),
			c.FormValue("role"),
		)
		if err != nil {
			fm := fiber.Map{
				"type":    "error",
				"message": fmt.Sprintf("something went wrong: %s", err),
			}

			return flash.WithError(c, fm).Redirect("/register")
		}

		user.FirstName = c.FormValue("first_name")
		user.LastName = c.FormValue("last_name")

		if err := repository.GetGlobalFactory().GetUserRepository().Create(user); err != nil {
			fm := fiber.Map{
				"type":    "error",
				"message": fmt.Sprintf("something went wrong: %s", err),
			}

			return flash.WithError(c, fm).Redirect("/register")
		}

		// Update statistics after registration
		go statistics.UpdateStatisticsCache()

		return flashSuccess(c, "Your account has been created. Please log in.", "/login")
	}

	return render(c, "auth/register", "Register", fiber.Map{
		"Roles": []fiber.Map{
			{"Value": models.ROLE_READER, "Label": "Reader"},
			{"Value": models.ROLE_JOURNALIST, "Label": "Journalist"},
			{"Value": models.ROLE_EDITOR, "Label": "Editor"},
			{"Value": models.ROLE_PUBLISHER, "Label": "Publisher"},
		},
	})
}
