// Package editorial implements the article approval state machine:
// pending -> approved | rejected, with independent self-publication as
// a second path into approved. The notification dispatch is an explicit
// call after the state change is persisted, not a save hook.
package editorial

import (
	"errors"
	"time"

	"github.com/pressquill/newshub/app/models"
	"github.com/pressquill/newshub/app/repository"
)

var (
	// ErrAlreadyApproved signals an idempotent no-op, not a failure.
	ErrAlreadyApproved = errors.New("article is already approved")
	// ErrAlreadyRejected signals an idempotent no-op, not a failure.
	ErrAlreadyRejected = errors.New("article is already rejected")
	ErrArticleRejected = errors.New("article was rejected and cannot be approved")
	ErrArticleApproved = errors.New("article is approved and cannot be rejected")
	ErrNotEditor       = errors.New("only editors can review articles")
	ErrNotAuthor       = errors.New("only the author can publish an article independently")
	ErrReasonRequired  = errors.New("a rejection reason is required")
)

// Notifier dispatches the post-approval side effects. Implementations
// must be best-effort: they log failures and never return them.
type Notifier interface {
	ArticleApproved(article *models.Article)
}

// Service drives article state transitions.
type Service struct {
	articles repository.ArticleRepository
	notifier Notifier
}

func NewService(articles repository.ArticleRepository, notifier Notifier) *Service {
	return &Service{articles: articles, notifier: notifier}
}

// Approve moves a pending article to approved on behalf of an editor,
// stamps the approval and publication dates, persists, and then fires
// the subscriber notifications.
func (s *Service) Approve(editor *models.User, article *models.Article) error {
	if editor == nil || editor.Role != models.ROLE_EDITOR {
		return ErrNotEditor
	}
	if article.IsRejected {
		return ErrArticleRejected
	}
	if article.IsApproved {
		return ErrAlreadyApproved
	}

	now := time.Now()
	article.IsApproved = true
	article.ApprovedByID = &editor.ID
	article.ApprovedBy = editor
	article.ApprovalDate = &now
	if article.PublishedDate == nil {
		article.PublishedDate = &now
	}

	if err := article.Validate(); err != nil {
		return err
	}
	if err := s.articles.Update(article); err != nil {
		return err
	}

	if s.notifier != nil {
		s.notifier.ArticleApproved(article)
	}
	return nil
}

// Reject moves a pending article to rejected with a mandatory reason.
// An approved article cannot be rejected; the approval would have to be
// withdrawn first.
func (s *Service) Reject(editor *models.User, article *models.Article, reason string) error {
	if editor == nil || editor.Role != models.ROLE_EDITOR {
		return ErrNotEditor
	}
	if reason == "" {
		return ErrReasonRequired
	}
	if article.IsApproved {
		return ErrArticleApproved
	}
	if article.IsRejected {
		return ErrAlreadyRejected
	}

	now := time.Now()
	article.IsRejected = true
	article.RejectedByID = &editor.ID
	article.RejectedBy = editor
	article.RejectedReason = reason
	article.RejectedDate = &now

	if err := article.Validate(); err != nil {
		return err
	}
	return s.articles.Update(article)
}

// PublishIndependently lets the author self-publish a pending article.
// No editor fields are touched; a rejected article must be edited back
// to pending before it can be self-published.
func (s *Service) PublishIndependently(author *models.User, article *models.Article) error {
	if author == nil || article.AuthorID != author.ID {
		return ErrNotAuthor
	}
	if article.IsRejected {
		return ErrArticleRejected
	}
	if article.IsApproved {
		return ErrAlreadyApproved
	}

	now := time.Now()
	article.IndependentlyPublished = true
	article.IsApproved = true
	article.ApprovalDate = &now
	if article.PublishedDate == nil {
		article.PublishedDate = &now
	}

	if err := article.Validate(); err != nil {
		return err
	}
	if err := s.articles.Update(article); err != nil {
		return err
	}

	if s.notifier != nil {
		s.notifier.ArticleApproved(article)
	}
	return nil
}
