package router

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"

	apiv1 "github.com/pressquill/newshub/internal/api/v1"

	"github.com/pressquill/newshub/app/repository"
	"github.com/pressquill/newshub/internal/pkg/editorial"
	"github.com/pressquill/newshub/internal/pkg/mail"
	"github.com/pressquill/newshub/internal/pkg/middleware"
	"github.com/pressquill/newshub/internal/pkg/notify"
	"github.com/pressquill/newshub/internal/pkg/social"
)

type ApiRouter struct {
}

func (h ApiRouter) InstallRouter(app *fiber.App) {
	api := app.Group("/api", limiter.New())
	api.Get("/", func(ctx *fiber.Ctx) error {
		return ctx.Status(fiber.StatusOK).JSON(fiber.Map{
			"message": "Hello from api",
		})
	})

	repos := repository.GetGlobalRepositories()
	dispatcher := notify.NewDispatcher(repos.User, repos.Article, mail.SMTPMailer{}, social.NewXPoster())
	apiServer := apiv1.NewAPIServer(editorial.NewService(repos.Article, dispatcher))

	// API v1 routes, bearer-token protected
	v1 := api.Group("/v1", middleware.APITokenAuthMiddleware())
	apiv1.RegisterHandlers(v1, apiServer)
}

func NewApiRouter() *ApiRouter {
	return &ApiRouter{}
}
