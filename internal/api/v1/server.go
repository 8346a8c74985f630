package apiv1

import (
	"github.com/gofiber/fiber/v2"

	"github.com/pressquill/newshub/internal/pkg/editorial"
)

// APIServer carries the services the API handlers depend on.
type APIServer struct {
	editorial *editorial.Service
}

// NewAPIServer creates a new API server instance
func NewAPIServer(editorialService *editorial.Service) *APIServer {
	return &APIServer{editorial: editorialService}
}

// RegisterHandlers attaches all v1 routes to the given router group. The
// caller is expected to have installed bearer-token authentication already.
func RegisterHandlers(router fiber.Router, s *APIServer) {
	router.Get("/ping", s.GetPing)

	router.Get("/articles", s.ListArticles)
	router.Post("/articles", s.CreateArticle)
	router.Get("/articles/:id", s.GetArticle)
	router.Put("/articles/:id", s.UpdateArticle)
	router.Delete("/articles/:id", s.DeleteArticle)
	router.Post("/articles/:id/approve", s.ApproveArticle)
	router.Post("/articles/:id/reject", s.RejectArticle)

	router.Get("/newsletters", s.ListNewsletters)
	router.Post("/newsletters", s.CreateNewsletter)
	router.Get("/newsletters/:id", s.GetNewsletter)
	router.Put("/newsletters/:id", s.UpdateNewsletter)
	router.Delete("/newsletters/:id", s.DeleteNewsletter)

	router.Get("/publishers", s.ListPublishers)
	router.Get("/publishers/:id", s.GetPublisher)
	router.Get("/publishers/:id/articles", s.ListPublisherArticles)

	router.Get("/journalists", s.ListJournalists)
	router.Get("/journalists/:id/articles", s.ListJournalistArticles)

	router.Get("/subscriptions", s.GetSubscriptions)
	router.Get("/subscriptions/articles", s.SubscriptionArticles)
	router.Post("/subscriptions/publishers/:id", s.SubscribePublisher)
	router.Delete("/subscriptions/publishers/:id", s.UnsubscribePublisher)
	router.Post("/subscriptions/journalists/:id", s.SubscribeJournalist)
	router.Delete("/subscriptions/journalists/:id", s.UnsubscribeJournalist)
	router.Post("/subscriptions/newsletters/:id", s.SubscribeNewsletter)
	router.Delete("/subscriptions/newsletters/:id", s.UnsubscribeNewsletter)
}

// Pong is the ping endpoint response.
type Pong struct {
	Ping string `json:"ping"`
}

// GetPing handles the ping endpoint
func (s *APIServer) GetPing(c *fiber.Ctx) error {
	response := Pong{
		Ping: "pong",
	}

	return c.Status(fiber.StatusOK).JSON(response)
}

func badRequest(c *fiber.Ctx, message string) error {
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "bad_request", "message": message})
}

func forbidden(c *fiber.Ctx, message string) error {
	return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "forbidden", "message": message})
}

func notFound(c *fiber.Ctx, message string) error {
	return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "not_found", "message": message})
}

func internalError(c *fiber.Ctx, message string) error {
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal_server_error", "message": message})
}

func listOffsets(c *fiber.Ctx) (offset, limit int) {
	limit = c.QueryInt("limit", 10)
	if limit < 1 || limit > 100 {
		limit = 10
	}
	offset = c.QueryInt("offset", 0)
	if offset < 0 {
		offset = 0
	}
	return offset, limit
}
