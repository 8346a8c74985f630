package notify

import (
	"fmt"
	"log"
	"time"

	"github.com/pressquill/newshub/app/models"
	"github.com/pressquill/newshub/app/repository"
)

// Mailer delivers a single email.
type Mailer interface {
	Send(to, subject, body string) error
}

// SocialPoster publishes a short announcement post.
type SocialPoster interface {
	Enabled() bool
	Post(text string) error
}

// Dispatcher fans an article approval out to subscribed readers by email
// and announces it on social media. Every delivery is best effort: a
// failed email or post is logged and never rolls back the approval.
type Dispatcher struct {
	users    repository.UserRepository
	articles repository.ArticleRepository
	mailer   Mailer
	social   SocialPoster
}

func NewDispatcher(users repository.UserRepository, articles repository.ArticleRepository, mailer Mailer, social SocialPoster) *Dispatcher {
	return &Dispatcher{users: users, articles: articles, mailer: mailer, social: social}
}

// ArticleApproved notifies subscribers of the article's publisher and of
// its author. Each article is announced at most once: NotifiedAt marks a
// completed dispatch and repeat calls return immediately.
func (d *Dispatcher) ArticleApproved(article *models.Article) {
	if article.NotifiedAt != nil {
		return
	}

	recipients := d.collectRecipients(article)
	subject := fmt.Sprintf("New Article Published: %s", article.Title)
	body := d.buildEmailBody(article)

	sent := 0
	for _, recipient := range recipients {
		if recipient.Email == "" {
			continue
		}
		if err := d.mailer.Send(recipient.Email, subject, body); err != nil {
			log.Printf("Failed to send article notification to %s: %v", recipient.Email, err)
			continue
		}
		sent++
	}
	log.Printf("Article %d approval: notified %d of %d subscribers", article.ID, sent, len(recipients))

	if d.social != nil && d.social.Enabled() {
		if err := d.social.Post(d.buildSocialText(article)); err != nil {
			log.Printf("Failed to post article %d announcement: %v", article.ID, err)
		}
	}

	now := time.Now()
	article.NotifiedAt = &now
	if err := d.articles.Update(article); err != nil {
		log.Printf("Failed to mark article %d as notified: %v", article.ID, err)
	}
}

// collectRecipients unions publisher and journalist subscribers,
// deduplicated by user ID. The author never receives their own
// announcement.
func (d *Dispatcher) collectRecipients(article *models.Article) []models.User {
	seen := make(map[uint]bool)
	var recipients []models.User

	add := func(users []models.User) {
		for _, u := range users {
			if u.ID == article.AuthorID || seen[u.ID] {
				continue
			}
			seen[u.ID] = true
			recipients = append(recipients, u)
		}
	}

	if article.PublisherID != nil {
		subscribers, err := d.users.GetPublisherSubscribers(*article.PublisherID)
		if err != nil {
			log.Printf("Failed to load publisher %d subscribers: %v", *article.PublisherID, err)
		} else {
			add(subscribers)
		}
	}

	subscribers, err := d.users.GetJournalistSubscribers(article.AuthorID)
	if err != nil {
		log.Printf("Failed to load journalist %d subscribers: %v", article.AuthorID, err)
	} else {
		add(subscribers)
	}

	return recipients
}

func (d *Dispatcher) buildEmailBody(article *models.Article) string {
	return fmt.Sprintf(
		"<h2>%s</h2>"+
			"<p>By %s (%s)</p>"+
			"<p>%s</p>",
		article.Title,
		article.Author.FullName(),
		article.PublisherName(),
		article.Excerpt(200),
	)
}

func (d *Dispatcher) buildSocialText(article *models.Article) string {
	text := fmt.Sprintf("New article: %s by %s (%s)", article.Title, article.Author.FullName(), article.PublisherName())
	runes := []rune(text)
	if len(runes) > 280 {
		text = string(runes[:277]) + "..."
	}
	return text
}
