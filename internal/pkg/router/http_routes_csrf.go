package router

import (
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/csrf"

	"github.com/pressquill/newshub/app/controllers"
	"github.com/pressquill/newshub/app/models"
	"github.com/pressquill/newshub/internal/pkg/env"
	"github.com/pressquill/newshub/internal/pkg/middleware"
)

func (h HttpRouter) registerCSRFProtectedRoutes(app *fiber.App) {
	csrfConf := csrf.Config{
		KeyLookup:      "form:_csrf",
		ContextKey:     "csrf",
		CookieName:     "csrf_",
		CookieSameSite: "Lax",
		Expiration:     1 * time.Hour,
		CookieSecure:   !env.IsDev(),
		Next: func(c *fiber.Ctx) bool {
			return strings.HasPrefix(c.Path(), "/api/")
		},
	}

	requireStaff := middleware.RequireRole(models.ROLE_JOURNALIST, models.ROLE_EDITOR)
	requireJournalist := middleware.RequireRole(models.ROLE_JOURNALIST)
	requireEditor := middleware.RequireRole(models.ROLE_EDITOR)

	group := app.Group("", cors.New(), csrf.New(csrfConf))
	group.Get("/", loggedInMiddleware, controllers.HandleStart)
	group.Get("/dashboard", middleware.RequireAuth, controllers.HandleDashboard)

	group.Get("/login", loggedInMiddleware, controllers.HandleAuthLogin)
	group.Post("/login", loggedInMiddleware, controllers.HandleAuthLogin)
	group.Get("/register", loggedInMiddleware, controllers.HandleAuthRegister)
	group.Post("/register", loggedInMiddleware, controllers.HandleAuthRegister)

	// Articles
	group.Get("/articles/create", requireJournalist, controllers.HandleArticleCreate)
	group.Post("/articles/create", requireJournalist, controllers.HandleArticleCreate)
	group.Get("/articles/mine", requireJournalist, controllers.HandleMyArticles)
	group.Get("/articles/pending", requireEditor, controllers.HandlePendingArticles)
	group.Get("/articles/:id<int>/edit", requireStaff, controllers.HandleArticleEdit)
	group.Post("/articles/:id<int>/edit", requireStaff, controllers.HandleArticleEdit)
	group.Post("/articles/:id<int>/delete", requireStaff, controllers.HandleArticleDelete)
	group.Post("/articles/:id<int>/approve", requireEditor, controllers.HandleArticleApprove)
	group.Post("/articles/:id<int>/reject", requireEditor, controllers.HandleArticleReject)
	group.Post("/articles/:id<int>/publish", requireJournalist, controllers.HandleArticlePublishIndependent)

	// Newsletters
	group.Get("/newsletters/create", requireJournalist, controllers.HandleNewsletterCreate)
	group.Post("/newsletters/create", requireJournalist, controllers.HandleNewsletterCreate)
	group.Get("/newsletters/mine", requireJournalist, controllers.HandleMyNewsletters)
	group.Get("/newsletters/:id<int>/edit", requireStaff, controllers.HandleNewsletterEdit)
	group.Post("/newsletters/:id<int>/edit", requireStaff, controllers.HandleNewsletterEdit)
	group.Post("/newsletters/:id<int>/delete", requireStaff, controllers.HandleNewsletterDelete)

	// Publishers
	group.Get("/publishers/create", middleware.RequireRole(models.ROLE_PUBLISHER), controllers.HandlePublisherCreate)
	group.Post("/publishers/create", middleware.RequireRole(models.ROLE_PUBLISHER), controllers.HandlePublisherCreate)
	group.Get("/publishers/:id<int>/dashboard", middleware.RequireAuth, controllers.HandlePublisherDashboard)
	group.Post("/publishers/:id<int>/join", requireStaff, controllers.HandleJoinRequestCreate)
	group.Get("/publishers/:id<int>/requests", middleware.RequireRole(models.ROLE_PUBLISHER), controllers.HandleJoinRequestList)
	group.Post("/requests/:id<int>/approve", middleware.RequireRole(models.ROLE_PUBLISHER), controllers.HandleJoinRequestApprove)
	group.Post("/requests/:id<int>/reject", middleware.RequireRole(models.ROLE_PUBLISHER), controllers.HandleJoinRequestReject)

	// Subscriptions
	group.Get("/subscriptions", middleware.RequireRole(models.ROLE_READER), controllers.HandleSubscriptions)
	group.Post("/publishers/:id<int>/subscribe", middleware.RequireAuth, controllers.HandleSubscribePublisher)
	group.Post("/publishers/:id<int>/unsubscribe", middleware.RequireAuth, controllers.HandleUnsubscribePublisher)
	group.Post("/journalists/:id<int>/subscribe", middleware.RequireAuth, controllers.HandleSubscribeJournalist)
	group.Post("/journalists/:id<int>/unsubscribe", middleware.RequireAuth, controllers.HandleUnsubscribeJournalist)
	group.Post("/newsletters/:id<int>/subscribe", middleware.RequireAuth, controllers.HandleSubscribeNewsletter)
	group.Post("/newsletters/:id<int>/unsubscribe", middleware.RequireAuth, controllers.HandleUnsubscribeNewsletter)

	// Profile and settings
	group.Get("/user/profile", middleware.RequireAuth, controllers.HandleUserProfile)
	group.Get("/user/profile/edit", middleware.RequireAuth, controllers.HandleUserProfileEdit)
	group.Post("/user/profile/edit", middleware.RequireAuth, controllers.HandleUserProfileEdit)
	group.Get("/user/settings", middleware.RequireAuth, controllers.HandleUserSettings)
	group.Post("/user/settings/api-token", middleware.RequireAuth, controllers.HandleUserAPITokenGenerate)
	group.Post("/user/settings/api-token/revoke", middleware.RequireAuth, controllers.HandleUserAPITokenRevoke)
}
