package notify

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pressquill/newshub/app/models"
)

type stubUserRepo struct {
	publisherSubs  []models.User
	journalistSubs []models.User
}

func (s *stubUserRepo) Create(u *models.User) error                       { return nil }
func (s *stubUserRepo) GetByID(id uint) (*models.User, error)             { return nil, nil }
func (s *stubUserRepo) GetByEmail(email string) (*models.User, error)     { return nil, nil }
func (s *stubUserRepo) GetByUsername(name string) (*models.User, error)   { return nil, nil }
func (s *stubUserRepo) GetByTokenHash(hash string) (*models.User, *models.APIToken, error) {
	return nil, nil, nil
}
func (s *stubUserRepo) GetJournalist(id uint) (*models.User, error) { return nil, nil }
func (s *stubUserRepo) ListJournalists() ([]models.User, error)     { return nil, nil }
func (s *stubUserRepo) Update(u *models.User) error                 { return nil }
func (s *stubUserRepo) Count() (int64, error)                       { return 0, nil }
func (s *stubUserRepo) SubscribePublisher(u *models.User, p *models.Publisher) error {
	return nil
}
func (s *stubUserRepo) UnsubscribePublisher(u *models.User, p *models.Publisher) error {
	return nil
}
func (s *stubUserRepo) IsSubscribedToPublisher(userID, publisherID uint) (bool, error) {
	return false, nil
}
func (s *stubUserRepo) SubscribeJournalist(u *models.User, j *models.User) error { return nil }
func (s *stubUserRepo) UnsubscribeJournalist(u *models.User, j *models.User) error {
	return nil
}
func (s *stubUserRepo) IsSubscribedToJournalist(userID, journalistID uint) (bool, error) {
	return false, nil
}
func (s *stubUserRepo) SubscribeNewsletter(u *models.User, n *models.Newsletter) error {
	return nil
}
func (s *stubUserRepo) UnsubscribeNewsletter(u *models.User, n *models.Newsletter) error {
	return nil
}
func (s *stubUserRepo) IsSubscribedToNewsletter(userID, newsletterID uint) (bool, error) {
	return false, nil
}
func (s *stubUserRepo) GetSubscriptions(userID uint) (*models.User, error) { return nil, nil }
func (s *stubUserRepo) ClearSubscriptions(userID uint) error               { return nil }
func (s *stubUserRepo) GetPublisherSubscribers(publisherID uint) ([]models.User, error) {
	return s.publisherSubs, nil
}
func (s *stubUserRepo) GetJournalistSubscribers(journalistID uint) ([]models.User, error) {
	return s.journalistSubs, nil
}

type stubArticleRepo struct {
	updated []*models.Article
}

func (s *stubArticleRepo) Create(a *models.Article) error           { return nil }
func (s *stubArticleRepo) GetByID(id uint) (*models.Article, error) { return nil, nil }
func (s *stubArticleRepo) Update(a *models.Article) error {
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

type recordingMailer struct {
	to   []string
	fail map[string]bool
}

func (m *recordingMailer) Send(to, subject, body string) error {
	if m.fail[to] {
		return errors.New("smtp down")
	}
	m.to = append(m.to, to)
	return nil
}

type recordingPoster struct {
	enabled bool
	posts   []string
}

func (p *recordingPoster) Enabled() bool { return p.enabled }
func (p *recordingPoster) Post(text string) error {
	p.posts = append(p.posts, text)
	return nil
}

func approvedArticle() *models.Article {
	publisherID := uint(4)
	return &models.Article{
		ID:          1,
		Title:       "Harbour expansion approved",
		Content:     "The council voted yes.",
		AuthorID:    7,
		Author:      models.User{ID: 7, FirstName: "Ana", LastName: "Reyes", Role: models.ROLE_JOURNALIST},
		PublisherID: &publisherID,
		Publisher:   &models.Publisher{ID: 4, Name: "Daily Planet"},
		IsApproved:  true,
	}
}

func TestArticleApprovedNotifiesUnionOfSubscribers(t *testing.T) {
	users := &stubUserRepo{
		publisherSubs:  []models.User{{ID: 10, Email: "a@example.com"}, {ID: 11, Email: "b@example.com"}},
		journalistSubs: []models.User{{ID: 11, Email: "b@example.com"}, {ID: 12, Email: "c@example.com"}},
	}
	articles := &stubArticleRepo{}
	mailer := &recordingMailer{}
	d := NewDispatcher(users, articles, mailer, nil)

	article := approvedArticle()
	d.ArticleApproved(article)

	// One mail per distinct subscriber.
	assert.ElementsMatch(t, []string{"a@example.com", "b@example.com", "c@example.com"}, mailer.to)
	require.NotNil(t, article.NotifiedAt)
	assert.Len(t, articles.updated, 1)
}

func TestArticleApprovedSkipsAuthorAndBlankEmails(t *testing.T) {
	users := &stubUserRepo{
		journalistSubs: []models.User{
			{ID: 7, Email: "author@example.com"},
			{ID: 13, Email: ""},
			{ID: 14, Email: "d@example.com"},
		},
	}
	mailer := &recordingMailer{}
	d := NewDispatcher(users, &stubArticleRepo{}, mailer, nil)

	d.ArticleApproved(approvedArticle())
	assert.Equal(t, []string{"d@example.com"}, mailer.to)
}

func TestArticleApprovedDispatchesOnce(t *testing.T) {
	users := &stubUserRepo{journalistSubs: []models.User{{ID: 12, Email: "c@example.com"}}}
	articles := &stubArticleRepo{}
	mailer := &recordingMailer{}
	d := NewDispatcher(users, articles, mailer, nil)

	article := approvedArticle()
	d.ArticleApproved(article)
	d.ArticleApproved(article)

	assert.Len(t, mailer.to, 1)
	assert.Len(t, articles.updated, 1)
}

func TestArticleApprovedAlreadyNotifiedIsNoOp(t *testing.T) {
	users := &stubUserRepo{journalistSubs: []models.User{{ID: 12, Email: "c@example.com"}}}
	mailer := &recordingMailer{}
	d := NewDispatcher(users, &stubArticleRepo{}, mailer, nil)

	article := approvedArticle()
	stamped := time.Now()
	article.NotifiedAt = &stamped
	d.ArticleApproved(article)

	assert.Empty(t, mailer.to)
}

func TestArticleApprovedSurvivesMailFailure(t *testing.T) {
	users := &stubUserRepo{
		journalistSubs: []models.User{
			{ID: 12, Email: "c@example.com"},
			{ID: 13, Email: "broken@example.com"},
		},
	}
	articles := &stubArticleRepo{}
	mailer := &recordingMailer{fail: map[string]bool{"broken@example.com": true}}
	d := NewDispatcher(users, articles, mailer, nil)

	article := approvedArticle()
	d.ArticleApproved(article)

	assert.Equal(t, []string{"c@example.com"}, mailer.to)
	// A failed delivery never blocks the dispatch stamp.
	assert.NotNil(t, article.NotifiedAt)
}

func TestArticleApprovedPostsToSocialWhenEnabled(t *testing.T) {
	poster := &recordingPoster{enabled: true}
	d := NewDispatcher(&stubUserRepo{}, &stubArticleRepo{}, &recordingMailer{}, poster)

	d.ArticleApproved(approvedArticle())

	require.Len(t, poster.posts, 1)
	assert.Contains(t, poster.posts[0], "Harbour expansion approved")
	assert.Contains(t, poster.posts[0], "Daily Planet")
}

func TestArticleApprovedSkipsSocialWhenDisabled(t *testing.T) {
	poster := &recordingPoster{enabled: false}
	d := NewDispatcher(&stubUserRepo{}, &stubArticleRepo{}, &recordingMailer{}, poster)

	d.ArticleApproved(approvedArticle())
	assert.Empty(t, poster.posts)
}
