package router

import (
	"github.com/gofiber/fiber/v2"

	"github.com/pressquill/newshub/app/controllers"
	"github.com/pressquill/newshub/internal/pkg/middleware"
)

func (h HttpRouter) registerPublicRoutes(app *fiber.App) {
	// Article pages. The list is public, detail pages require a session.
	app.Get("/articles", loggedInMiddleware, controllers.HandleArticleList)
	app.Get("/articles/:id<int>", middleware.RequireAuth, controllers.HandleArticleShow)

	// Newsletter pages, same split as articles.
	app.Get("/newsletters", loggedInMiddleware, controllers.HandleNewsletterList)
	app.Get("/newsletters/:id<int>", middleware.RequireAuth, controllers.HandleNewsletterShow)

	// Public directories
	app.Get("/publishers", loggedInMiddleware, controllers.HandlePublisherList)
	app.Get("/publishers/:id<int>", loggedInMiddleware, controllers.HandlePublisherShow)
	app.Get("/journalists", loggedInMiddleware, controllers.HandleJournalistList)

	// Auth
	app.Post("/logout", middleware.RequireAuth, controllers.HandleAuthLogout)
}
