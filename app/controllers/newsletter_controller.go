package controllers

import (
	"fmt"
	"log"

	"github.com/gofiber/fiber/v2"

	"github.com/pressquill/newshub/app/models"
	"github.com/pressquill/newshub/app/repository"
	"github.com/pressquill/newshub/internal/pkg/authz"
	"github.com/pressquill/newshub/internal/pkg/usercontext"
)

// HandleNewsletterList renders the public newsletter index.
func HandleNewsletterList(c *fiber.Ctx) error {
	offset, limit, page := pageOffset(c)

	repos := repository.GetGlobalRepositories()
	newsletters, err := repos.Newsletter.GetAll(offset, limit)
	if err != nil {
		log.Printf("failed to load newsletters: %v", err)
		return c.Status(fiber.StatusInternalServerError).SendString("Failed to fetch newsletters")
	}
	total, _ := repos.Newsletter.Count()

	return render(c, "newsletters/index", "Newsletters", fiber.Map{
		"Newsletters": newsletters,
		"Page":        page,
		"HasMore":     int64(offset+len(newsletters)) < total,
	})
}

// HandleNewsletterShow renders one newsletter plus more from the same author.
func HandleNewsletterShow(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return c.Status(fiber.StatusNotFound).SendString("Newsletter not found")
	}

	repos := repository.GetGlobalRepositories()
	newsletter, err := repos.Newsletter.GetByID(id)
	if err != nil {
		return c.Status(fiber.StatusNotFound).SendString("Newsletter not found")
	}

	related, err := repos.Newsletter.GetRelated(newsletter.AuthorID, newsletter.ID, 3)
	if err != nil {
		log.Printf("failed to load related newsletters: %v", err)
	}

	userCtx := usercontext.GetUserContext(c)
	subscribed := false
	if userCtx.IsLoggedIn {
		subscribed, _ = repos.User.IsSubscribedToNewsletter(userCtx.UserID, newsletter.ID)
	}

	return render(c, "newsletters/show", newsletter.Title, fiber.Map{
		"Newsletter":   newsletter,
		"Related":      related,
		"CanManage":    authz.CanManageNewsletter(userCtx, newsletter),
		"CanSubscribe": authz.CanSubscribeToNewsletter(userCtx),
		"Subscribed":   subscribed,
	})
}

// HandleNewsletterCreate renders the creation form and accepts the submission.
func HandleNewsletterCreate(c *fiber.Ctx) error {
	userCtx := usercontext.GetUserContext(c)
	if !authz.CanCreateNewsletter(userCtx) {
		return flashError(c, "Only journalists can write newsletters.", "/newsletters")
	}

	repos := repository.GetGlobalRepositories()

	if c.Method() == fiber.MethodPost {
		author, err := repos.User.GetByID(userCtx.UserID)
		if err != nil {
			return flashError(c, "something went wrong", "/newsletters/create")
		}

		newsletter := &models.Newsletter{
			Title:    c.FormValue("title"),
			Content:  c.FormValue("content"),
			AuthorID: author.ID,
			Author:   *author,
		}

		if err := newsletter.Validate(); err != nil {
			return flashError(c, fmt.Sprintf("something went wrong: %s", err), "/newsletters/create")
		}

		if err := repos.Newsletter.Create(newsletter); err != nil {
			return flashError(c, fmt.Sprintf("something went wrong: %s", err), "/newsletters/create")
		}

		return flashSuccess(c, "Newsletter published.", fmt.Sprintf("/newsletters/%d", newsletter.ID))
	}

	return render(c, "newsletters/create", "Write Newsletter", fiber.Map{})
}

// HandleNewsletterEdit renders the edit form and accepts the submission.
func HandleNewsletterEdit(c *fiber.Ctx) error {
	newsletter, err := loadNewsletter(c)
	if err != nil {
		return c.Status(fiber.StatusNotFound).SendString("Newsletter not found")
	}

	userCtx := usercontext.GetUserContext(c)
	if !authz.CanManageNewsletter(userCtx, newsletter) {
		return flashError(c, "You cannot edit this newsletter.", fmt.Sprintf("/newsletters/%d", newsletter.ID))
	}

	if c.Method() == fiber.MethodPost {
		newsletter.Title = c.FormValue("title")
		newsletter.Content = c.FormValue("content")

		if err := newsletter.Validate(); err != nil {
			return flashError(c, fmt.Sprintf("something went wrong: %s", err), fmt.Sprintf("/newsletters/%d/edit", newsletter.ID))
		}

		if err := repository.GetGlobalRepositories().Newsletter.Update(newsletter); err != nil {
			return flashError(c, fmt.Sprintf("something went wrong: %s", err), fmt.Sprintf("/newsletters/%d/edit", newsletter.ID))
		}

		return flashSuccess(c, "Newsletter updated.", fmt.Sprintf("/newsletters/%d", newsletter.ID))
	}

	return render(c, "newsletters/edit", "Edit Newsletter", fiber.Map{
		"Newsletter": newsletter,
	})
}

// HandleNewsletterDelete removes a newsletter.
func HandleNewsletterDelete(c *fiber.Ctx) error {
	newsletter, err := loadNewsletter(c)
	if err != nil {
		return c.Status(fiber.StatusNotFound).SendString("Newsletter not found")
	}

	userCtx := usercontext.GetUserContext(c)
	if !authz.CanManageNewsletter(userCtx, newsletter) {
		return flashError(c, "You cannot delete this newsletter.", fmt.Sprintf("/newsletters/%d", newsletter.ID))
	}

	if err := repository.GetGlobalRepositories().Newsletter.Delete(newsletter.ID); err != nil {
		return flashError(c, fmt.Sprintf("something went wrong: %s", err), fmt.Sprintf("/newsletters/%d", newsletter.ID))
	}

	return flashSuccess(c, "Newsletter deleted.", "/newsletters")
}

// HandleMyNewsletters lists the logged-in journalist's own newsletters.
func HandleMyNewsletters(c *fiber.Ctx) error {
	userCtx := usercontext.GetUserContext(c)

	newsletters, err := repository.GetGlobalRepositories().Newsletter.GetByAuthor(userCtx.UserID)
	if err != nil {
		log.Printf("failed to load newsletters for user %d: %v", userCtx.UserID, err)
		return c.Status(fiber.StatusInternalServerError).SendString("Failed to fetch newsletters")
	}

	return render(c, "newsletters/mine", "My Newsletters", fiber.Map{
		"Newsletters": newsletters,
	})
}

func loadNewsletter(c *fiber.Ctx) (*models.Newsletter, error) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return nil, err
	}
	return repository.GetGlobalRepositories().Newsletter.GetByID(id)
}
