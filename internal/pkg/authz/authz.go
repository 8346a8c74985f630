// Package authz holds the role-based access predicates shared by the
// web controllers and the API handlers. Every predicate fails closed:
// an anonymous context is always denied.
package authz

import (
	"github.com/pressquill/newshub/app/models"
	"github.com/pressquill/newshub/internal/pkg/usercontext"
)

// CanCreateArticle reports whether the user may create articles.
func CanCreateArticle(uc usercontext.UserContext) bool {
	return uc.IsJournalist()
}

// CanEditArticle allows the author while the article is unapproved, or
// any editor. This single check backs both surfaces, so API clients
// cannot edit around the pending-only rule.
func CanEditArticle(uc usercontext.UserContext, article *models.Article) bool {
	if !uc.IsLoggedIn {
		return false
	}
	if uc.IsEditor() {
		return true
	}
	return uc.IsJournalist() && article.AuthorID == uc.UserID && !article.IsApproved
}

// CanDeleteArticle allows only the author of a still-unapproved article.
func CanDeleteArticle(uc usercontext.UserContext, article *models.Article) bool {
	return uc.IsJournalist() && article.AuthorID == uc.UserID && !article.IsApproved
}

// CanApproveArticle allows editors to approve articles that are neither
// approved nor rejected yet.
func CanApproveArticle(uc usercontext.UserContext, article *models.Article) bool {
	return uc.IsEditor() && !article.IsApproved && !article.IsRejected
}

// CanRejectArticle allows editors to reject articles that are not
// already approved. Rejecting a published article requires pulling the
// approval first.
func CanRejectArticle(uc usercontext.UserContext, article *models.Article) bool {
	return uc.IsEditor() && !article.IsApproved
}

// CanPublishIndependently allows the author to self-publish a pending
// article, bypassing editorial review.
func CanPublishIndependently(uc usercontext.UserContext, article *models.Article) bool {
	return uc.IsJournalist() && article.AuthorID == uc.UserID &&
		!article.IsApproved && !article.IsRejected
}

// CanCreateNewsletter reports whether the user may create newsletters.
func CanCreateNewsletter(uc usercontext.UserContext) bool {
	return uc.IsJournalist()
}

// CanManageNewsletter allows the author on the web surface and editors
// on the API surface.
func CanManageNewsletter(uc usercontext.UserContext, newsletter *models.Newsletter) bool {
	if !uc.IsLoggedIn {
		return false
	}
	if uc.IsEditor() {
		return true
	}
	return uc.IsJournalist() && newsletter.AuthorID == uc.UserID
}

// CanCreatePublisher reports whether the user may create a publisher
// organization.
func CanCreatePublisher(uc usercontext.UserContext) bool {
	return uc.IsPublisher()
}

// CanAccessPublisherDashboard allows the owner and members of the
// editor set.
func CanAccessPublisherDashboard(uc usercontext.UserContext, publisher *models.Publisher) bool {
	if !uc.IsLoggedIn {
		return false
	}
	return publisher.IsOwnedBy(uc.UserID) || publisher.HasEditor(uc.UserID)
}

// CanReviewJoinRequest allows only the owner of the requested publisher.
func CanReviewJoinRequest(uc usercontext.UserContext, request *models.PublisherJoinRequest) bool {
	return uc.IsLoggedIn && request.Publisher.IsOwnedBy(uc.UserID)
}

// CanRequestJoin allows journalists and editors to ask for membership.
func CanRequestJoin(uc usercontext.UserContext) bool {
	return uc.IsJournalist() || uc.IsEditor()
}

// CanSubscribeToPublisher restricts publisher subscriptions to readers.
func CanSubscribeToPublisher(uc usercontext.UserContext) bool {
	return uc.IsReader()
}

// CanSubscribeToJournalist restricts journalist subscriptions to readers.
func CanSubscribeToJournalist(uc usercontext.UserContext) bool {
	return uc.IsReader()
}

// CanSubscribeToNewsletter allows readers and editors.
func CanSubscribeToNewsletter(uc usercontext.UserContext) bool {
	return uc.IsReader() || uc.IsEditor()
}
