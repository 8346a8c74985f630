package controllers

import (
	"log"

	"github.com/gofiber/fiber/v2"

	"github.com/pressquill/newshub/app/models"
	"github.com/pressquill/newshub/app/repository"
	"github.com/pressquill/newshub/internal/pkg/statistics"
	"github.com/pressquill/newshub/internal/pkg/usercontext"
)

// HandleStart renders the home page: the latest published articles plus the
// headline numbers.
func HandleStart(c *fiber.Ctx) error {
	offset, limit, page := pageOffset(c)

	repos := repository.GetGlobalRepositories()
	articles, err := repos.Article.GetApproved(offset, limit)
	if err != nil {
		log.Printf("failed to load published articles: %v", err)
		return c.Status(fiber.StatusInternalServerError).SendString("Failed to fetch articles")
	}

	total, err := repos.Article.CountApproved()
	if err != nil {
		log.Printf("failed to count published articles: %v", err)
		total = 0
	}

	stats := statistics.GetStatisticsData()

	return render(c, "home/index", "Latest News", fiber.Map{
		"Articles": articles,
		"Page":     page,
		"HasMore":  int64(offset+len(articles)) < total,
		"Stats":    stats,
	})
}

// HandleDashboard renders the role-specific landing page for a logged-in user.
func HandleDashboard(c *fiber.Ctx) error {
	userCtx := usercontext.GetUserContext(c)
	repos := repository.GetGlobalRepositories()

	data := fiber.Map{}

	switch userCtx.Role {
	case models.ROLE_READER:
		feed, err := repos.Article.GetSubscriptionFeed(userCtx.UserID, 0, defaultPageSize)
		if err != nil {
			log.Printf("failed to load subscription feed for user %d: %v", userCtx.UserID, err)
		}
		data["Feed"] = feed

	case models.ROLE_JOURNALIST:
		articles, err := repos.Article.GetByAuthor(userCtx.UserID)
		if err != nil {
			log.Printf("failed to load articles for journalist %d: %v", userCtx.UserID, err)
		}
		newsletterCount, _ := repos.Newsletter.CountByAuthor(userCtx.UserID)
		data["Articles"] = articles
		data["NewsletterCount"] = newsletterCount

	case models.ROLE_EDITOR:
		pending, err := repos.Article.GetPending(0, defaultPageSize)
		if err != nil {
			log.Printf("failed to load pending articles: %v", err)
		}
		pendingCount, _ := repos.Article.CountPending()
		approvedCount, _ := repos.Article.CountApprovedByEditor(userCtx.UserID)
		data["Pending"] = pending
		data["PendingCount"] = pendingCount
		data["ApprovedCount"] = approvedCount

	case models.ROLE_PUBLISHER:
		publisher, err := repos.Publisher.GetByOwner(userCtx.UserID)
		if err == nil && publisher != nil {
			requests, err := repos.JoinRequest.GetPendingByPublisher(publisher.ID)
			if err != nil {
				log.Printf("failed to load join requests for publisher %d: %v", publisher.ID, err)
			}
			articles, err := repos.Article.GetApprovedByPublisher(publisher.ID, 0, defaultPageSize)
			if err != nil {
				log.Printf("failed to load articles for publisher %d: %v", publisher.ID, err)
			}
			data["Publisher"] = publisher
			data["JoinRequests"] = requests
			data["Articles"] = articles
		}
	}

	return render(c, "home/dashboard", "Dashboard", data)
}
