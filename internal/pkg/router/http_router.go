package router

import (
	"github.com/gofiber/fiber/v2"

	"github.com/pressquill/newshub/app/controllers"
	"github.com/pressquill/newshub/app/repository"
	"github.com/pressquill/newshub/internal/pkg/editorial"
	"github.com/pressquill/newshub/internal/pkg/mail"
	"github.com/pressquill/newshub/internal/pkg/membership"
	"github.com/pressquill/newshub/internal/pkg/middleware"
	"github.com/pressquill/newshub/internal/pkg/notify"
	"github.com/pressquill/newshub/internal/pkg/session"
	"github.com/pressquill/newshub/internal/pkg/social"
)

type HttpRouter struct {
}

func (h HttpRouter) InstallRouter(app *fiber.App) {
	// init session
	session.NewSessionStore()

	// Apply UserContext middleware globally as first middleware
	app.Use(middleware.UserContextMiddleware)

	// Wire the editorial workflow with its notification side effects
	repos := repository.GetGlobalRepositories()
	dispatcher := notify.NewDispatcher(repos.User, repos.Article, mail.SMTPMailer{}, social.NewXPoster())
	controllers.InitializeArticleController(editorial.NewService(repos.Article, dispatcher))

	// Wire the join-request workflow
	controllers.InitializePublisherController(membership.NewService(repos.JoinRequest, repos.Publisher))

	h.registerPublicRoutes(app)
	h.registerCSRFProtectedRoutes(app)
}

func NewHttpRouter() *HttpRouter {
	return &HttpRouter{}
}

func loggedInMiddleware(c *fiber.Ctx) error {
	// UserContextMiddleware already set all user context
	return c.Next()
}
