package apiv1

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/pressquill/newshub/app/models"
)

func TestToUserBrief(t *testing.T) {
	user := &models.User{
		ID:        7,
		Username:  "clark",
		FirstName: "Clark",
		LastName:  "Kent",
		Role:      models.ROLE_JOURNALIST,
	}

	brief := toUserBrief(user)
	assert.Equal(t, uint(7), brief.ID)
	assert.Equal(t, "clark", brief.Username)
	assert.Equal(t, "Clark Kent", brief.FullName)
	assert.Equal(t, models.ROLE_JOURNALIST, brief.Role)
}

func TestToArticleResponse(t *testing.T) {
	t.Parallel()

	published := time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)
	publisherID := uint(3)

	tests := []struct {
		name    string
		article models.Article
		check   func(t *testing.T, resp ArticleResponse)
	}{
		{
			name: "approved article with publisher and reviewer",
			article: models.Article{
				ID:            1,
				Title:         "Launch Day",
				Content:       "body",
				Summary:       "short",
				Author:        models.User{ID: 7, Username: "clark", Role: models.ROLE_JOURNALIST},
				PublisherID:   &publisherID,
				Publisher:     &models.Publisher{ID: 3, Name: "Daily Planet"},
				IsApproved:    true,
				ApprovedBy:    &models.User{ID: 9, Username: "perry", Role: models.ROLE_EDITOR},
				PublishedDate: &published,
			},
			check: func(t *testing.T, resp ArticleResponse) {
				assert.Equal(t, "approved", resp.Status)
				assert.NotNil(t, resp.Publisher)
				assert.Equal(t, "Daily Planet", resp.Publisher.Name)
				assert.NotNil(t, resp.ApprovedBy)
				assert.Equal(t, "perry", resp.ApprovedBy.Username)
				assert.Equal(t, &published, resp.PublishedDate)
			},
		},
		{
			name: "pending article omits publisher and reviewer",
			article: models.Article{
				ID:     2,
				Title:  "Draft",
				Author: models.User{ID: 7, Username: "clark"},
			},
			check: func(t *testing.T, resp ArticleResponse) {
				assert.Equal(t, "pending", resp.Status)
				assert.Nil(t, resp.Publisher)
				assert.Nil(t, resp.ApprovedBy)
				assert.Nil(t, resp.PublishedDate)
			},
		},
		{
			name: "rejected article carries the reason",
			article: models.Article{
				ID:             3,
				Title:          "Spiked",
				Author:         models.User{ID: 7},
				IsRejected:     true,
				RejectedReason: "needs sourcing",
			},
			check: func(t *testing.T, resp ArticleResponse) {
				assert.Equal(t, "rejected", resp.Status)
				assert.Equal(t, "needs sourcing", resp.RejectedReason)
			},
		},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			tc.check(t, toArticleResponse(&tc.article))
		})
	}
}

func TestToArticleResponsesKeepsOrder(t *testing.T) {
	articles := []models.Article{
		{ID: 2, Title: "second"},
		{ID: 1, Title: "first"},
	}

	out := toArticleResponses(articles)
	assert.Len(t, out, 2)
	assert.Equal(t, uint(2), out[0].ID)
	assert.Equal(t, uint(1), out[1].ID)
}

func TestToArticleResponsesEmptyFeed(t *testing.T) {
	// An empty feed must serialize as [] rather than null.
	out := toArticleResponses(nil)
	assert.NotNil(t, out)
	assert.Empty(t, out)

	out = toArticleResponses([]models.Article{})
	assert.NotNil(t, out)
	assert.Empty(t, out)
}

func TestToPublisherResponse(t *testing.T) {
	established := time.Date(1938, 6, 1, 0, 0, 0, 0, time.UTC)
	publisher := &models.Publisher{
		ID:              3,
		Name:            "Daily Planet",
		Website:         "https://planet.example",
		EstablishedDate: &established,
		Owner:           &models.User{ID: 4, Username: "owner", Role: models.ROLE_PUBLISHER},
	}

	resp := toPublisherResponse(publisher)
	assert.Equal(t, "Daily Planet", resp.Name)
	assert.Equal(t, &established, resp.EstablishedDate)
	assert.NotNil(t, resp.Owner)
	assert.Equal(t, "owner", resp.Owner.Username)

	resp = toPublisherResponse(&models.Publisher{ID: 5, Name: "Indie"})
	assert.Nil(t, resp.Owner)
}
