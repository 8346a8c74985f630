package editorial

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pressquill/newshub/app/models"
)

// stubArticleRepo records updates in memory.
type stubArticleRepo struct {
	updated []*models.Article
	err     error
}

func (s *stubArticleRepo) Create(a *models.Article) error          { return nil }
func (s *stubArticleRepo) GetByID(id uint) (*models.Article, error) { return nil, nil }
func (s *stubArticleRepo) Update(a *models.Article) error {
	if s.err != nil {
		return s.err
	}
	s.updated = append(s.updated, a)
	return nil
}
func (s *stubArticleRepo) Delete(id uint) error { return nil }
func (s *stubArticleRepo) GetApproved(offset, limit int) ([]models.Article, error) {
	return nil, nil
}
func (s *stubArticleRepo) CountApproved() (int64, error)                  { return 0, nil }
func (s *stubArticleRepo) CountApprovedSince(since string) (int64, error) { return 0, nil }
func (s *stubArticleRepo) GetPending(offset, limit int) ([]models.Article, error) {
	return nil, nil
}
func (s *stubArticleRepo) CountPending() (int64, error) { return 0, nil }
func (s *stubArticleRepo) GetByAuthor(authorID uint) ([]models.Article, error) {
	return nil, nil
}
func (s *stubArticleRepo) GetApprovedByAuthor(authorID uint, offset, limit int) ([]models.Article, error) {
	return nil, nil
}
func (s *stubArticleRepo) GetApprovedByPublisher(publisherID uint, offset, limit int) ([]models.Article, error) {
	return nil, nil
}
func (s *stubArticleRepo) CountApprovedByEditor(editorID uint) (int64, error) { return 0, nil }
func (s *stubArticleRepo) GetSubscriptionFeed(userID uint, offset, limit int) ([]models.Article, error) {
	return nil, nil
}

// stubNotifier counts dispatches.
type stubNotifier struct {
	notified []*models.Article
}

func (s *stubNotifier) ArticleApproved(a *models.Article) {
	s.notified = append(s.notified, a)
}

func pendingArticle() *models.Article {
	return &models.Article{
		ID:      1,
		Title:   "Breaking story",
		Content: "Something happened.",
		AuthorID: 7,
		Author:  models.User{ID: 7, Role: models.ROLE_JOURNALIST},
	}
}

func editor() *models.User {
	return &models.User{ID: 3, Role: models.ROLE_EDITOR}
}

func TestApprovePendingArticle(t *testing.T) {
	repo := &stubArticleRepo{}
	notifier := &stubNotifier{}
	svc := NewService(repo, notifier)
	article := pendingArticle()

	require.NoError(t, svc.Approve(editor(), article))

	assert.True(t, article.IsApproved)
	require.NotNil(t, article.ApprovedByID)
	assert.Equal(t, uint(3), *article.ApprovedByID)
	assert.NotNil(t, article.ApprovalDate)
	assert.NotNil(t, article.PublishedDate)
	assert.Len(t, repo.updated, 1)
	assert.Len(t, notifier.notified, 1)
}

func TestApproveKeepsExistingPublishedDate(t *testing.T) {
	repo := &stubArticleRepo{}
	svc := NewService(repo, nil)
	article := pendingArticle()
	earlier := article.CreatedAt
	article.PublishedDate = &earlier

	require.NoError(t, svc.Approve(editor(), article))
	assert.Equal(t, &earlier, article.PublishedDate)
}

func TestApproveAlreadyApprovedIsNoOp(t *testing.T) {
	repo := &stubArticleRepo{}
	notifier := &stubNotifier{}
	svc := NewService(repo, notifier)
	article := pendingArticle()

	require.NoError(t, svc.Approve(editor(), article))
	err := svc.Approve(editor(), article)

	require.ErrorIs(t, err, ErrAlreadyApproved)
	assert.Len(t, repo.updated, 1)
	// No duplicate notification dispatch.
	assert.Len(t, notifier.notified, 1)
}

func TestApproveRejectedArticleRefused(t *testing.T) {
	svc := NewService(&stubArticleRepo{}, nil)
	article := pendingArticle()
	article.IsRejected = true

	require.ErrorIs(t, svc.Approve(editor(), article), ErrArticleRejected)
	assert.False(t, article.IsApproved)
}

func TestApproveRequiresEditor(t *testing.T) {
	svc := NewService(&stubArticleRepo{}, nil)
	journalist := &models.User{ID: 7, Role: models.ROLE_JOURNALIST}

	require.ErrorIs(t, svc.Approve(journalist, pendingArticle()), ErrNotEditor)
	require.ErrorIs(t, svc.Approve(nil, pendingArticle()), ErrNotEditor)
}

func TestRejectPendingArticle(t *testing.T) {
	repo := &stubArticleRepo{}
	svc := NewService(repo, nil)
	article := pendingArticle()

	require.NoError(t, svc.Reject(editor(), article, "needs sources"))

	assert.True(t, article.IsRejected)
	assert.Equal(t, "needs sources", article.RejectedReason)
	require.NotNil(t, article.RejectedByID)
	assert.Equal(t, uint(3), *article.RejectedByID)
	assert.NotNil(t, article.RejectedDate)
	assert.False(t, article.IsApproved)
}

func TestRejectRequiresReason(t *testing.T) {
	svc := NewService(&stubArticleRepo{}, nil)
	require.ErrorIs(t, svc.Reject(editor(), pendingArticle(), ""), ErrReasonRequired)
}

func TestRejectApprovedArticleRefused(t *testing.T) {
	svc := NewService(&stubArticleRepo{}, nil)
	article := pendingArticle()
	article.IsApproved = true

	require.ErrorIs(t, svc.Reject(editor(), article, "too late"), ErrArticleApproved)
	assert.False(t, article.IsRejected)
}

func TestRejectTwiceIsNoOp(t *testing.T) {
	repo := &stubArticleRepo{}
	svc := NewService(repo, nil)
	article := pendingArticle()

	require.NoError(t, svc.Reject(editor(), article, "needs sources"))
	require.ErrorIs(t, svc.Reject(editor(), article, "still bad"), ErrAlreadyRejected)
	assert.Equal(t, "needs sources", article.RejectedReason)
	assert.Len(t, repo.updated, 1)
}

func TestPublishIndependently(t *testing.T) {
	repo := &stubArticleRepo{}
	notifier := &stubNotifier{}
	svc := NewService(repo, notifier)
	article := pendingArticle()
	author := &models.User{ID: 7, Role: models.ROLE_JOURNALIST}

	require.NoError(t, svc.PublishIndependently(author, article))

	assert.True(t, article.IndependentlyPublished)
	assert.True(t, article.IsApproved)
	// Self-publication never carries editor fields.
	assert.Nil(t, article.ApprovedByID)
	assert.NotNil(t, article.PublishedDate)
	assert.Len(t, notifier.notified, 1)
}

func TestPublishIndependentlyOnlyByAuthor(t *testing.T) {
	svc := NewService(&stubArticleRepo{}, nil)
	other := &models.User{ID: 8, Role: models.ROLE_JOURNALIST}

	require.ErrorIs(t, svc.PublishIndependently(other, pendingArticle()), ErrNotAuthor)
}

func TestPublishIndependentlyRejectedRefused(t *testing.T) {
	svc := NewService(&stubArticleRepo{}, nil)
	article := pendingArticle()
	article.IsRejected = true
	author := &models.User{ID: 7, Role: models.ROLE_JOURNALIST}

	require.ErrorIs(t, svc.PublishIndependently(author, article), ErrArticleRejected)
}
