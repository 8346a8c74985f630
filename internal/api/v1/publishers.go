package apiv1

import (
	"log"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/pressquill/newshub/app/models"
	"github.com/pressquill/newshub/app/repository"
)

// ListPublishers returns the publisher directory.
func (s *APIServer) ListPublishers(c *fiber.Ctx) error {
	publishers, err := repository.GetGlobalRepositories().Publisher.GetAll()
	if err != nil {
		log.Printf("api: failed to list publishers: %v", err)
		return internalError(c, "failed to list publishers")
	}

	out := make([]PublisherResponse, 0, len(publishers))
	for i := range publishers {
		out = append(out, toPublisherResponse(&publishers[i]))
	}

	return c.JSON(fiber.Map{"publishers": out})
}

// GetPublisher returns one publisher.
func (s *APIServer) GetPublisher(c *fiber.Ctx) error {
	publisher, err := s.loadPublisher(c)
	if err != nil {
		return notFound(c, "publisher not found")
	}

	return c.JSON(toPublisherResponse(publisher))
}

// ListPublisherArticles returns the publisher's published articles.
func (s *APIServer) ListPublisherArticles(c *fiber.Ctx) error {
	publisher, err := s.loadPublisher(c)
	if err != nil {
		return notFound(c, "publisher not found")
	}

	offset, limit := listOffsets(c)
	articles, err := repository.GetGlobalRepositories().Article.GetApprovedByPublisher(publisher.ID, offset, limit)
	if err != nil {
		log.Printf("api: failed to list articles for publisher %d: %v", publisher.ID, err)
		return internalError(c, "failed to list articles")
	}

	return c.JSON(fiber.Map{"articles": toArticleResponses(articles)})
}

// ListJournalists returns the journalist directory.
func (s *APIServer) ListJournalists(c *fiber.Ctx) error {
	journalists, err := repository.GetGlobalRepositories().User.ListJournalists()
	if err != nil {
		log.Printf("api: failed to list journalists: %v", err)
		return internalError(c, "failed to list journalists")
	}

	out := make([]UserBrief, 0, len(journalists))
	for i := range journalists {
		out = append(out, toUserBrief(&journalists[i]))
	}

	return c.JSON(fiber.Map{"journalists": out})
}

// ListJournalistArticles returns a journalist's published articles.
func (s *APIServer) ListJournalistArticles(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id < 1 {
		return notFound(c, "journalist not found")
	}

	repos := repository.GetGlobalRepositories()
	journalist, err := repos.User.GetJournalist(uint(id))
	if err != nil {
		return notFound(c, "journalist not found")
	}

	offset, limit := listOffsets(c)
	articles, err := repos.Article.GetApprovedByAuthor(journalist.ID, offset, limit)
	if err != nil {
		log.Printf("api: failed to list articles for journalist %d: %v", journalist.ID, err)
		return internalError(c, "failed to list articles")
	}

	return c.JSON(fiber.Map{
		"journalist": toUserBrief(journalist),
		"articles":   toArticleResponses(articles),
	})
}

func (s *APIServer) loadPublisher(c *fiber.Ctx) (*models.Publisher, error) {
	id, err := c.ParamsInt("id")
	if err != nil || id < 1 {
		return nil, gorm.ErrRecordNotFound
	}
	return repository.GetGlobalRepositories().Publisher.GetByID(uint(id))
}
