package authz

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/pressquill/newshub/app/models"
	"github.com/pressquill/newshub/internal/pkg/usercontext"
)

func ctxWithRole(id uint, role string) usercontext.UserContext {
	return usercontext.UserContext{UserID: id, Role: role, IsLoggedIn: true}
}

var anonymous = usercontext.UserContext{}

func TestCanCreateArticle(t *testing.T) {
	assert.True(t, CanCreateArticle(ctxWithRole(1, models.ROLE_JOURNALIST)))
	assert.False(t, CanCreateArticle(ctxWithRole(1, models.ROLE_READER)))
	assert.False(t, CanCreateArticle(ctxWithRole(1, models.ROLE_EDITOR)))
	assert.False(t, CanCreateArticle(anonymous))
}

func TestCanEditArticle(t *testing.T) {
	article := &models.Article{ID: 5, AuthorID: 1}

	assert.True(t, CanEditArticle(ctxWithRole(1, models.ROLE_JOURNALIST), article))
	// Another journalist is not the author.
	assert.False(t, CanEditArticle(ctxWithRole(2, models.ROLE_JOURNALIST), article))
	// Editors can always edit.
	assert.True(t, CanEditArticle(ctxWithRole(3, models.ROLE_EDITOR), article))
	assert.False(t, CanEditArticle(anonymous, article))

	// The author loses edit access once the article is approved.
	article.IsApproved = true
	assert.False(t, CanEditArticle(ctxWithRole(1, models.ROLE_JOURNALIST), article))
	assert.True(t, CanEditArticle(ctxWithRole(3, models.ROLE_EDITOR), article))
}

func TestCanDeleteArticle(t *testing.T) {
	article := &models.Article{ID: 5, AuthorID: 1}

	assert.True(t, CanDeleteArticle(ctxWithRole(1, models.ROLE_JOURNALIST), article))
	assert.False(t, CanDeleteArticle(ctxWithRole(3, models.ROLE_EDITOR), article))

	article.IsApproved = true
	assert.False(t, CanDeleteArticle(ctxWithRole(1, models.ROLE_JOURNALIST), article))
}

func TestCanApproveArticle(t *testing.T) {
	article := &models.Article{ID: 5, AuthorID: 1}
	editor := ctxWithRole(3, models.ROLE_EDITOR)

	assert.True(t, CanApproveArticle(editor, article))
	assert.False(t, CanApproveArticle(ctxWithRole(1, models.ROLE_JOURNALIST), article))

	article.IsApproved = true
	assert.False(t, CanApproveArticle(editor, article))

	article.IsApproved = false
	article.IsRejected = true
	assert.False(t, CanApproveArticle(editor, article))
}

func TestCanRejectArticle(t *testing.T) {
	article := &models.Article{ID: 5, AuthorID: 1}
	editor := ctxWithRole(3, models.ROLE_EDITOR)

	assert.True(t, CanRejectArticle(editor, article))

	article.IsApproved = true
	assert.False(t, CanRejectArticle(editor, article))
}

func TestCanAccessPublisherDashboard(t *testing.T) {
	ownerID := uint(10)
	publisher := &models.Publisher{
		ID:      2,
		OwnerID: &ownerID,
		Editors: []models.User{{ID: 20, Role: models.ROLE_EDITOR}},
	}

	assert.True(t, CanAccessPublisherDashboard(ctxWithRole(10, models.ROLE_PUBLISHER), publisher))
	assert.True(t, CanAccessPublisherDashboard(ctxWithRole(20, models.ROLE_EDITOR), publisher))
	assert.False(t, CanAccessPublisherDashboard(ctxWithRole(30, models.ROLE_EDITOR), publisher))
	assert.False(t, CanAccessPublisherDashboard(anonymous, publisher))
}

func TestCanReviewJoinRequest(t *testing.T) {
	ownerID := uint(10)
	request := &models.PublisherJoinRequest{
		Publisher: models.Publisher{ID: 2, OwnerID: &ownerID},
	}

	assert.True(t, CanReviewJoinRequest(ctxWithRole(10, models.ROLE_PUBLISHER), request))
	assert.False(t, CanReviewJoinRequest(ctxWithRole(11, models.ROLE_PUBLISHER), request))
	assert.False(t, CanReviewJoinRequest(anonymous, request))
}

func TestSubscriptionEligibility(t *testing.T) {
	reader := ctxWithRole(1, models.ROLE_READER)
	editor := ctxWithRole(2, models.ROLE_EDITOR)
	journalist := ctxWithRole(3, models.ROLE_JOURNALIST)

	assert.True(t, CanSubscribeToPublisher(reader))
	assert.False(t, CanSubscribeToPublisher(editor))
	assert.False(t, CanSubscribeToPublisher(journalist))

	assert.True(t, CanSubscribeToJournalist(reader))
	assert.False(t, CanSubscribeToJournalist(editor))

	assert.True(t, CanSubscribeToNewsletter(reader))
	assert.True(t, CanSubscribeToNewsletter(editor))
	assert.False(t, CanSubscribeToNewsletter(journalist))
	assert.False(t, CanSubscribeToNewsletter(anonymous))
}

func TestCanRequestJoin(t *testing.T) {
	assert.True(t, CanRequestJoin(ctxWithRole(1, models.ROLE_JOURNALIST)))
	assert.True(t, CanRequestJoin(ctxWithRole(2, models.ROLE_EDITOR)))
	assert.False(t, CanRequestJoin(ctxWithRole(3, models.ROLE_READER)))
	assert.False(t, CanRequestJoin(anonymous))
}
