package apiv1

import (
	"log"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/pressquill/newshub/app/models"
	"github.com/pressquill/newshub/app/repository"
	"github.com/pressquill/newshub/internal/pkg/authz"
	"github.com/pressquill/newshub/internal/pkg/usercontext"
)

// ListNewsletters returns newsletters, newest first.
func (s *APIServer) ListNewsletters(c *fiber.Ctx) error {
	offset, limit := listOffsets(c)

	newsletters, err := repository.GetGlobalRepositories().Newsletter.GetAll(offset, limit)
	if err != nil {
		log.Printf("api: failed to list newsletters: %v", err)
		return internalError(c, "failed to list newsletters")
	}

	return c.JSON(fiber.Map{"newsletters": toNewsletterResponses(newsletters)})
}

// GetNewsletter returns one newsletter.
func (s *APIServer) GetNewsletter(c *fiber.Ctx) error {
	newsletter, err := s.loadNewsletter(c)
	if err != nil {
		return notFound(c, "newsletter not found")
	}

	return c.JSON(toNewsletterResponse(newsletter))
}

// CreateNewsletter accepts a flat newsletter payload from a journalist.
func (s *APIServer) CreateNewsletter(c *fiber.Ctx) error {
	userCtx := usercontext.GetUserContext(c)
	if !authz.CanCreateNewsletter(userCtx) {
		return forbidden(c, "only journalists can create newsletters")
	}

	var req NewsletterRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "invalid request body")
	}

	repos := repository.GetGlobalRepositories()
	author, err := repos.User.GetByID(userCtx.UserID)
	if err != nil {
		return internalError(c, "failed to load account")
	}

	newsletter := &models.Newsletter{
		Title:    req.Title,
		Content:  req.Content,
		AuthorID: author.ID,
		Author:   *author,
	}

	if err := newsletter.Validate(); err != nil {
		return badRequest(c, err.Error())
	}

	if err := repos.Newsletter.Create(newsletter); err != nil {
		log.Printf("api: failed to create newsletter: %v", err)
		return internalError(c, "failed to create newsletter")
	}

	return c.Status(fiber.StatusCreated).JSON(toNewsletterResponse(newsletter))
}

// UpdateNewsletter applies the writable fields.
func (s *APIServer) UpdateNewsletter(c *fiber.Ctx) error {
	newsletter, err := s.loadNewsletter(c)
	if err != nil {
		return notFound(c, "newsletter not found")
	}

	userCtx := usercontext.GetUserContext(c)
	if !authz.CanManageNewsletter(userCtx, newsletter) {
		return forbidden(c, "you cannot edit this newsletter")
	}

	var req NewsletterRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "invalid request body")
	}

	newsletter.Title = req.Title
	newsletter.Content = req.Content

	if err := newsletter.Validate(); err != nil {
		return badRequest(c, err.Error())
	}

	if err := repository.GetGlobalRepositories().Newsletter.Update(newsletter); err != nil {
		log.Printf("api: failed to update newsletter %d: %v", newsletter.ID, err)
		return internalError(c, "failed to update newsletter")
	}

	return c.JSON(toNewsletterResponse(newsletter))
}

// DeleteNewsletter removes a newsletter.
func (s *APIServer) DeleteNewsletter(c *fiber.Ctx) error {
	newsletter, err := s.loadNewsletter(c)
	if err != nil {
		return notFound(c, "newsletter not found")
	}

	userCtx := usercontext.GetUserContext(c)
	if !authz.CanManageNewsletter(userCtx, newsletter) {
		return forbidden(c, "you cannot delete this newsletter")
	}

	if err := repository.GetGlobalRepositories().Newsletter.Delete(newsletter.ID); err != nil {
		log.Printf("api: failed to delete newsletter %d: %v", newsletter.ID, err)
		return internalError(c, "failed to delete newsletter")
	}

	return c.SendStatus(fiber.StatusNoContent)
}

func (s *APIServer) loadNewsletter(c *fiber.Ctx) (*models.Newsletter, error) {
	id, err := c.ParamsInt("id")
	if err != nil || id < 1 {
		return nil, gorm.ErrRecordNotFound
	}
	return repository.GetGlobalRepositories().Newsletter.GetByID(uint(id))
}
