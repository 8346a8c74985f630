package apiv1

import (
	"errors"
	"log"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/pressquill/newshub/app/models"
	"github.com/pressquill/newshub/app/repository"
	"github.com/pressquill/newshub/internal/pkg/authz"
	"github.com/pressquill/newshub/internal/pkg/editorial"
	"github.com/pressquill/newshub/internal/pkg/usercontext"
)

// ListArticles returns articles scoped by the caller's role: editors see
// the full set including the review queue, journalists see their own work,
// everyone else sees published articles.
func (s *APIServer) ListArticles(c *fiber.Ctx) error {
	userCtx := usercontext.GetUserContext(c)
	offset, limit := listOffsets(c)

	repos := repository.GetGlobalRepositories()

	switch {
	case userCtx.IsEditor():
		pending, err := repos.Article.GetPending(offset, limit)
		if err != nil {
			log.Printf("api: failed to list pending articles: %v", err)
			return internalError(c, "failed to list articles")
		}
		approved, err := repos.Article.GetApproved(offset, limit)
		if err != nil {
			log.Printf("api: failed to list approved articles: %v", err)
			return internalError(c, "failed to list articles")
		}
		return c.JSON(fiber.Map{
			"pending":   toArticleResponses(pending),
			"published": toArticleResponses(approved),
		})

	case userCtx.IsJournalist():
		articles, err := repos.Article.GetByAuthor(userCtx.UserID)
		if err != nil {
			log.Printf("api: failed to list articles for user %d: %v", userCtx.UserID, err)
			return internalError(c, "failed to list articles")
		}
		return c.JSON(fiber.Map{"articles": toArticleResponses(articles)})

	default:
		articles, err := repos.Article.GetApproved(offset, limit)
		if err != nil {
			log.Printf("api: failed to list approved articles: %v", err)
			return internalError(c, "failed to list articles")
		}
		return c.JSON(fiber.Map{"articles": toArticleResponses(articles)})
	}
}

// GetArticle returns one article, hiding unpublished work from outsiders.
func (s *APIServer) GetArticle(c *fiber.Ctx) error {
	article, err := s.loadArticle(c)
	if err != nil {
		return notFound(c, "article not found")
	}

	userCtx := usercontext.GetUserContext(c)
	if !article.IsApproved && !userCtx.IsEditor() && userCtx.UserID != article.AuthorID {
		return notFound(c, "article not found")
	}

	return c.JSON(toArticleResponse(article))
}

// CreateArticle accepts a flat article payload from a journalist. Editorial
// state is never settable through the API.
func (s *APIServer) CreateArticle(c *fiber.Ctx) error {
	userCtx := usercontext.GetUserContext(c)
	if !authz.CanCreateArticle(userCtx) {
		return forbidden(c, "only journalists can create articles")
	}

	var req ArticleRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "invalid request body")
	}

	repos := repository.GetGlobalRepositories()
	author, err := repos.User.GetByID(userCtx.UserID)
	if err != nil {
		return internalError(c, "failed to load account")
	}

	article := &models.Article{
		Title:       req.Title,
		Content:     req.Content,
		Summary:     req.Summary,
		AuthorID:    author.ID,
		Author:      *author,
		PublisherID: req.PublisherID,
	}

	if err := article.Validate(); err != nil {
		return badRequest(c, err.Error())
	}

	if err := repos.Article.Create(article); err != nil {
		log.Printf("api: failed to create article: %v", err)
		return internalError(c, "failed to create article")
	}

	return c.Status(fiber.StatusCreated).JSON(toArticleResponse(article))
}

// UpdateArticle applies the writable fields. Editors can edit any article;
// authors can revise their own unpublished work.
func (s *APIServer) UpdateArticle(c *fiber.Ctx) error {
	article, err := s.loadArticle(c)
	if err != nil {
		return notFound(c, "article not found")
	}

	userCtx := usercontext.GetUserContext(c)
	if !authz.CanEditArticle(userCtx, article) {
		return forbidden(c, "you cannot edit this article")
	}

	var req ArticleRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "invalid request body")
	}

	article.Title = req.Title
	article.Content = req.Content
	article.Summary = req.Summary

	// An author's revision of a rejected article re-enters review.
	if article.IsRejected && userCtx.UserID == article.AuthorID {
		article.ClearRejection()
	}

	if err := article.Validate(); err != nil {
		return badRequest(c, err.Error())
	}

	repos := repository.GetGlobalRepositories()
	if err := repos.Article.Update(article); err != nil {
		log.Printf("api: failed to update article %d: %v", article.ID, err)
		return internalError(c, "failed to update article")
	}

	return c.JSON(toArticleResponse(article))
}

// DeleteArticle removes an article.
func (s *APIServer) DeleteArticle(c *fiber.Ctx) error {
	article, err := s.loadArticle(c)
	if err != nil {
		return notFound(c, "article not found")
	}

	userCtx := usercontext.GetUserContext(c)
	if !authz.CanDeleteArticle(userCtx, article) {
		return forbidden(c, "you cannot delete this article")
	}

	if err := repository.GetGlobalRepositories().Article.Delete(article.ID); err != nil {
		log.Printf("api: failed to delete article %d: %v", article.ID, err)
		return internalError(c, "failed to delete article")
	}

	return c.SendStatus(fiber.StatusNoContent)
}

// ApproveArticle runs the editorial approval through the API.
func (s *APIServer) ApproveArticle(c *fiber.Ctx) error {
	article, err := s.loadArticle(c)
	if err != nil {
		return notFound(c, "article not found")
	}

	userCtx := usercontext.GetUserContext(c)
	if !authz.CanApproveArticle(userCtx, article) {
		return forbidden(c, "you cannot approve this article")
	}

	editor, err := repository.GetGlobalRepositories().User.GetByID(userCtx.UserID)
	if err != nil {
		return internalError(c, "failed to load account")
	}

	if err := s.editorial.Approve(editor, article); err != nil {
		return editorialErrorResponse(c, err)
	}

	return c.JSON(toArticleResponse(article))
}

// RejectArticle runs the editorial rejection through the API.
func (s *APIServer) RejectArticle(c *fiber.Ctx) error {
	article, err := s.loadArticle(c)
	if err != nil {
		return notFound(c, "article not found")
	}

	userCtx := usercontext.GetUserContext(c)
	if !authz.CanRejectArticle(userCtx, article) {
		return forbidden(c, "you cannot reject this article")
	}

	var req struct {
		Reason string `json:"reason"`
	}
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "invalid request body")
	}

	editor, err := repository.GetGlobalRepositories().User.GetByID(userCtx.UserID)
	if err != nil {
		return internalError(c, "failed to load account")
	}

	if err := s.editorial.Reject(editor, article, req.Reason); err != nil {
		return editorialErrorResponse(c, err)
	}

	return c.JSON(toArticleResponse(article))
}

func (s *APIServer) loadArticle(c *fiber.Ctx) (*models.Article, error) {
	id, err := c.ParamsInt("id")
	if err != nil || id < 1 {
		return nil, gorm.ErrRecordNotFound
	}
	return repository.GetGlobalRepositories().Article.GetByID(uint(id))
}

func editorialErrorResponse(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, editorial.ErrAlreadyApproved),
		errors.Is(err, editorial.ErrAlreadyRejected):
		// Idempotent no-op.
		return c.SendStatus(fiber.StatusOK)
	case errors.Is(err, editorial.ErrArticleRejected),
		errors.Is(err, editorial.ErrArticleApproved),
		errors.Is(err, editorial.ErrReasonRequired):
		return badRequest(c, err.Error())
	case errors.Is(err, editorial.ErrNotEditor),
		errors.Is(err, editorial.ErrNotAuthor):
		return forbidden(c, err.Error())
	}
	log.Printf("api: editorial operation failed: %v", err)
	return internalError(c, "editorial operation failed")
}
