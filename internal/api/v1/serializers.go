package apiv1

import (
	"time"

	"github.com/pressquill/newshub/app/models"
)

// UserBrief is the nested author/reviewer representation.
type UserBrief struct {
	ID       uint   `json:"id"`
	Username string `json:"username"`
	FullName string `json:"full_name"`
	Role     string `json:"role"`
}

// PublisherBrief is the nested publisher representation.
type PublisherBrief struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
}

// ArticleResponse is the read serializer for articles. Editorial fields are
// derived server-side and never accepted from clients.
type ArticleResponse struct {
	ID                     uint            `json:"id"`
	Title                  string          `json:"title"`
	Content                string          `json:"content"`
	Summary                string          `json:"summary"`
	Status                 string          `json:"status"`
	Author                 UserBrief       `json:"author"`
	Publisher              *PublisherBrief `json:"publisher,omitempty"`
	ApprovedBy             *UserBrief      `json:"approved_by,omitempty"`
	RejectedReason         string          `json:"rejected_reason,omitempty"`
	IndependentlyPublished bool            `json:"independently_published"`
	PublishedDate          *time.Time      `json:"published_date"`
	CreatedAt              time.Time       `json:"created_at"`
}

// ArticleRequest is the flat write serializer for articles. The author is
// always the authenticated user.
type ArticleRequest struct {
	Title       string `json:"title"`
	Content     string `json:"content"`
	Summary     string `json:"summary"`
	PublisherID *uint  `json:"publisher_id"`
}

// NewsletterResponse is the read serializer for newsletters.
type NewsletterResponse struct {
	ID            uint      `json:"id"`
	Title         string    `json:"title"`
	Content       string    `json:"content"`
	Author        UserBrief `json:"author"`
	PublishedDate time.Time `json:"published_date"`
	CreatedAt     time.Time `json:"created_at"`
}

// NewsletterRequest is the flat write serializer for newsletters.
type NewsletterRequest struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}

// PublisherResponse is the read serializer for publishers.
type PublisherResponse struct {
	ID              uint       `json:"id"`
	Name            string     `json:"name"`
	Description     string     `json:"description"`
	Website         string     `json:"website"`
	EstablishedDate *time.Time `json:"established_date"`
	Owner           *UserBrief `json:"owner,omitempty"`
}

// SubscriptionsResponse lists the authenticated reader's subscriptions.
type SubscriptionsResponse struct {
	Publishers  []PublisherBrief `json:"publishers"`
	Journalists []UserBrief      `json:"journalists"`
	Newsletters []struct {
		ID    uint   `json:"id"`
		Title string `json:"title"`
	} `json:"newsletters"`
}

func toUserBrief(u *models.User) UserBrief {
	return UserBrief{
		ID:       u.ID,
		Username: u.Username,
		FullName: u.FullName(),
		Role:     u.Role,
	}
}

func toArticleResponse(a *models.Article) ArticleResponse {
	resp := ArticleResponse{
		ID:                     a.ID,
		Title:                  a.Title,
		Content:                a.Content,
		Summary:                a.Summary,
		Status:                 a.Status(),
		Author:                 toUserBrief(&a.Author),
		RejectedReason:         a.RejectedReason,
		IndependentlyPublished: a.IndependentlyPublished,
		PublishedDate:          a.PublishedDate,
		CreatedAt:              a.CreatedAt,
	}
	if a.Publisher != nil {
		resp.Publisher = &PublisherBrief{ID: a.Publisher.ID, Name: a.Publisher.Name}
	}
	if a.ApprovedBy != nil {
		brief := toUserBrief(a.ApprovedBy)
		resp.ApprovedBy = &brief
	}
	return resp
}

func toArticleResponses(articles []models.Article) []ArticleResponse {
	out := make([]ArticleResponse, 0, len(articles))
	for i := range articles {
		out = append(out, toArticleResponse(&articles[i]))
	}
	return out
}

func toNewsletterResponse(n *models.Newsletter) NewsletterResponse {
	return NewsletterResponse{
		ID:            n.ID,
		Title:         n.Title,
		Content:       n.Content,
		Author:        toUserBrief(&n.Author),
		PublishedDate: n.PublishedDate,
		CreatedAt:     n.CreatedAt,
	}
}

func toNewsletterResponses(newsletters []models.Newsletter) []NewsletterResponse {
	out := make([]NewsletterResponse, 0, len(newsletters))
	for i := range newsletters {
		out = append(out, toNewsletterResponse(&newsletters[i]))
	}
	return out
}

func toPublisherResponse(p *models.Publisher) PublisherResponse {
	resp := PublisherResponse{
		ID:              p.ID,
		Name:            p.Name,
		Description:     p.Description,
		Website:         p.Website,
		EstablishedDate: p.EstablishedDate,
	}
	if p.Owner != nil {
		brief := toUserBrief(p.Owner)
		resp.Owner = &brief
	}
	return resp
}
