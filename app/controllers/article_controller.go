package controllers

import (
	"errors"
	"fmt"
	"log"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/pressquill/newshub/app/models"
	"github.com/pressquill/newshub/app/repository"
	"github.com/pressquill/newshub/internal/pkg/authz"
	"github.com/pressquill/newshub/internal/pkg/editorial"
	"github.com/pressquill/newshub/internal/pkg/statistics"
	"github.com/pressquill/newshub/internal/pkg/upload"
	"github.com/pressquill/newshub/internal/pkg/usercontext"
)

var editorialService *editorial.Service

// InitializeArticleController wires the editorial workflow service.
func InitializeArticleController(service *editorial.Service) {
	editorialService = service
}

// HandleArticleList renders the public article index (published only).
func HandleArticleList(c *fiber.Ctx) error {
	offset, limit, page := pageOffset(c)

	repos := repository.GetGlobalRepositories()
	articles, err := repos.Article.GetApproved(offset, limit)
	if err != nil {
		log.Printf("failed to load published articles: %v", err)
		return c.Status(fiber.StatusInternalServerError).SendString("Failed to fetch articles")
	}
	total, _ := repos.Article.CountApproved()

	return render(c, "articles/index", "Articles", fiber.Map{
		"Articles": articles,
		"Page":     page,
		"HasMore":  int64(offset+len(articles)) < total,
	})
}

// HandleArticleShow renders one article. Unpublished articles are only
// visible to their author and to editors.
func HandleArticleShow(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return c.Status(fiber.StatusNotFound).SendString("Article not found")
	}

	article, err := repository.GetGlobalRepositories().Article.GetByID(id)
	if err != nil {
		return c.Status(fiber.StatusNotFound).SendString("Article not found")
	}

	userCtx := usercontext.GetUserContext(c)
	if !article.IsApproved && !canSeeUnpublished(userCtx, article) {
		return c.Status(fiber.StatusNotFound).SendString("Article not found")
	}

	return render(c, "articles/show", article.Title, fiber.Map{
		"Article":    article,
		"CanEdit":    authz.CanEditArticle(userCtx, article),
		"CanDelete":  authz.CanDeleteArticle(userCtx, article),
		"CanApprove": authz.CanApproveArticle(userCtx, article),
		"CanReject":  authz.CanRejectArticle(userCtx, article),
		"CanPublish": authz.CanPublishIndependently(userCtx, article),
		"Thumbnail":  upload.ThumbnailPath(article.ImagePath),
	})
}

// HandleArticleCreate renders the creation form and accepts the submission.
func HandleArticleCreate(c *fiber.Ctx) error {
	userCtx := usercontext.GetUserContext(c)
	if !authz.CanCreateArticle(userCtx) {
		return flashError(c, "Only journalists can write articles.", "/articles")
	}

	repos := repository.GetGlobalRepositories()

	if c.Method() == fiber.MethodPost {
		author, err := repos.User.GetByID(userCtx.UserID)
		if err != nil {
			return flashError(c, "something went wrong", "/articles/create")
		}

		article := &models.Article{
			Title:    c.FormValue("title"),
			Content:  c.FormValue("content"),
			Summary:  c.FormValue("summary"),
			AuthorID: author.ID,
			Author:   *author,
		}

		if raw := c.FormValue("publisher_id"); raw != "" {
			publisherID, err := strconv.ParseUint(raw, 10, 32)
			if err != nil {
				return flashError(c, "invalid publisher", "/articles/create")
			}
			id := uint(publisherID)
			article.PublisherID = &id
		}

		if file, err := c.FormFile("image"); err == nil && file != nil {
			path, err := upload.SaveArticleImage(file)
			if err != nil {
				return flashError(c, err.Error(), "/articles/create")
			}
			article.ImagePath = path
		}

		if err := article.Validate(); err != nil {
			return flashError(c, fmt.Sprintf("something went wrong: %s", err), "/articles/create")
		}

		if err := repos.Article.Create(article); err != nil {
			return flashError(c, fmt.Sprintf("something went wrong: %s", err), "/articles/create")
		}

		return flashSuccess(c, "Article submitted for review.", fmt.Sprintf("/articles/%d", article.ID))
	}

	publishers, err := repos.Publisher.GetAll()
	if err != nil {
		log.Printf("failed to load publishers: %v", err)
	}

	return render(c, "articles/create", "Write Article", fiber.Map{
		"Publishers": publishers,
	})
}

// HandleArticleEdit renders the edit form and accepts the submission. A
// journalist editing a rejected article sends it back to the pending queue.
func HandleArticleEdit(c *fiber.Ctx) error {
	article, err := loadArticle(c)
	if err != nil {
		return c.Status(fiber.StatusNotFound).SendString("Article not found")
	}

	userCtx := usercontext.GetUserContext(c)
	if !authz.CanEditArticle(userCtx, article) {
		return flashError(c, "You cannot edit this article.", fmt.Sprintf("/articles/%d", article.ID))
	}

	repos := repository.GetGlobalRepositories()

	if c.Method() == fiber.MethodPost {
		article.Title = c.FormValue("title")
		article.Content = c.FormValue("content")
		article.Summary = c.FormValue("summary")

		if file, err := c.FormFile("image"); err == nil && file != nil {
			path, err := upload.SaveArticleImage(file)
			if err != nil {
				return flashError(c, err.Error(), fmt.Sprintf("/articles/%d/edit", article.ID))
			}
			upload.RemoveArticleImage(article.ImagePath)
			article.ImagePath = path
		}

		// An author's revision of a rejected article re-enters review.
		if article.IsRejected && userCtx.UserID == article.AuthorID {
			article.ClearRejection()
		}

		if err := article.Validate(); err != nil {
			return flashError(c, fmt.Sprintf("something went wrong: %s", err), fmt.Sprintf("/articles/%d/edit", article.ID))
		}

		if err := repos.Article.Update(article); err != nil {
			return flashError(c, fmt.Sprintf("something went wrong: %s", err), fmt.Sprintf("/articles/%d/edit", article.ID))
		}

		return flashSuccess(c, "Article updated.", fmt.Sprintf("/articles/%d", article.ID))
	}

	return render(c, "articles/edit", "Edit Article", fiber.Map{
		"Article": article,
	})
}

// HandleArticleDelete removes an article and its stored image.
func HandleArticleDelete(c *fiber.Ctx) error {
	article, err := loadArticle(c)
	if err != nil {
		return c.Status(fiber.StatusNotFound).SendString("Article not found")
	}

	userCtx := usercontext.GetUserContext(c)
	if !authz.CanDeleteArticle(userCtx, article) {
		return flashError(c, "You cannot delete this article.", fmt.Sprintf("/articles/%d", article.ID))
	}

	if err := repository.GetGlobalRepositories().Article.Delete(article.ID); err != nil {
		return flashError(c, fmt.Sprintf("something went wrong: %s", err), fmt.Sprintf("/articles/%d", article.ID))
	}
	upload.RemoveArticleImage(article.ImagePath)

	go statistics.UpdateStatisticsCache()

	return flashSuccess(c, "Article deleted.", "/articles")
}

// HandleMyArticles lists the logged-in journalist's own articles in every
// editorial state.
func HandleMyArticles(c *fiber.Ctx) error {
	userCtx := usercontext.GetUserContext(c)

	articles, err := repository.GetGlobalRepositories().Article.GetByAuthor(userCtx.UserID)
	if err != nil {
		log.Printf("failed to load articles for user %d: %v", userCtx.UserID, err)
		return c.Status(fiber.StatusInternalServerError).SendString("Failed to fetch articles")
	}

	return render(c, "articles/mine", "My Articles", fiber.Map{
		"Articles": articles,
	})
}

// HandlePendingArticles lists the review queue for editors.
func HandlePendingArticles(c *fiber.Ctx) error {
	offset, limit, page := pageOffset(c)

	repos := repository.GetGlobalRepositories()
	articles, err := repos.Article.GetPending(offset, limit)
	if err != nil {
		log.Printf("failed to load pending articles: %v", err)
		return c.Status(fiber.StatusInternalServerError).SendString("Failed to fetch articles")
	}
	total, _ := repos.Article.CountPending()

	return render(c, "articles/pending", "Review Queue", fiber.Map{
		"Articles": articles,
		"Page":     page,
		"HasMore":  int64(offset+len(articles)) < total,
	})
}

// HandleArticleApprove approves a pending article and triggers the
// subscriber notifications.
func HandleArticleApprove(c *fiber.Ctx) error {
	article, err := loadArticle(c)
	if err != nil {
		return c.Status(fiber.StatusNotFound).SendString("Article not found")
	}

	userCtx := usercontext.GetUserContext(c)
	if !authz.CanApproveArticle(userCtx, article) {
		return flashError(c, "You cannot approve this article.", fmt.Sprintf("/articles/%d", article.ID))
	}

	editor, err := repository.GetGlobalRepositories().User.GetByID(userCtx.UserID)
	if err != nil {
		return flashError(c, "something went wrong", fmt.Sprintf("/articles/%d", article.ID))
	}

	if err := editorialService.Approve(editor, article); err != nil {
		return flashError(c, editorialMessage(err), fmt.Sprintf("/articles/%d", article.ID))
	}

	go statistics.UpdateStatisticsCache()

	return flashSuccess(c, "Article approved and published.", "/articles/pending")
}

// HandleArticleReject rejects a pending article with a reason.
func HandleArticleReject(c *fiber.Ctx) error {
	article, err := loadArticle(c)
	if err != nil {
		return c.Status(fiber.StatusNotFound).SendString("Article not found")
	}

	userCtx := usercontext.GetUserContext(c)
	if !authz.CanRejectArticle(userCtx, article) {
		return flashError(c, "You cannot reject this article.", fmt.Sprintf("/articles/%d", article.ID))
	}

	editor, err := repository.GetGlobalRepositories().User.GetByID(userCtx.UserID)
	if err != nil {
		return flashError(c, "something went wrong", fmt.Sprintf("/articles/%d", article.ID))
	}

	if err := editorialService.Reject(editor, article, c.FormValue("reason")); err != nil {
		return flashError(c, editorialMessage(err), fmt.Sprintf("/articles/%d", article.ID))
	}

	return flashSuccess(c, "Article rejected.", "/articles/pending")
}

// HandleArticlePublishIndependent publishes the author's own article
// without editorial review.
func HandleArticlePublishIndependent(c *fiber.Ctx) error {
	article, err := loadArticle(c)
	if err != nil {
		return c.Status(fiber.StatusNotFound).SendString("Article not found")
	}

	userCtx := usercontext.GetUserContext(c)
	if !authz.CanPublishIndependently(userCtx, article) {
		return flashError(c, "You cannot publish this article independently.", fmt.Sprintf("/articles/%d", article.ID))
	}

	author, err := repository.GetGlobalRepositories().User.GetByID(userCtx.UserID)
	if err != nil {
		return flashError(c, "something went wrong", fmt.Sprintf("/articles/%d", article.ID))
	}

	if err := editorialService.PublishIndependently(author, article); err != nil {
		return flashError(c, editorialMessage(err), fmt.Sprintf("/articles/%d", article.ID))
	}

	go statistics.UpdateStatisticsCache()

	return flashSuccess(c, "Article published.", fmt.Sprintf("/articles/%d", article.ID))
}

func loadArticle(c *fiber.Ctx) (*models.Article, error) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return nil, err
	}
	return repository.GetGlobalRepositories().Article.GetByID(id)
}

func canSeeUnpublished(uc usercontext.UserContext, article *models.Article) bool {
	if !uc.IsLoggedIn {
		return false
	}
	return uc.IsEditor() || uc.UserID == article.AuthorID
}

func editorialMessage(err error) string {
	switch {
	case errors.Is(err, editorial.ErrAlreadyApproved):
		return "This article is already approved."
	case errors.Is(err, editorial.ErrAlreadyRejected):
		return "This article is already rejected."
	case errors.Is(err, editorial.ErrArticleRejected):
		return "Rejected articles cannot be published."
	case errors.Is(err, editorial.ErrArticleApproved):
		return "Published articles cannot be rejected."
	case errors.Is(err, editorial.ErrReasonRequired):
		return "A rejection reason is required."
	}
	return fmt.Sprintf("something went wrong: %s", err)
}
