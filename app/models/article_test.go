package models

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestArticleStatusPrecedence(t *testing.T) {
	a := &Article{}
	assert.Equal(t, ARTICLE_STATUS_PENDING, a.Status())

	a.IsApproved = true
	assert.Equal(t, ARTICLE_STATUS_APPROVED, a.Status())

	// Rejected wins even when both flags are somehow set.
	a.IsRejected = true
	assert.Equal(t, ARTICLE_STATUS_REJECTED, a.Status())
	assert.Equal(t, "Rejected", a.StatusDisplay())
}

func TestArticleValidateAuthorRole(t *testing.T) {
	a := &Article{
		Title:   "Breaking story",
		Content: "Something happened.",
		Author:  User{ID: 7, Role: ROLE_READER},
	}
	err := a.Validate()
	require.ErrorIs(t, err, ErrAuthorNotJournalist)

	a.Author.Role = ROLE_JOURNALIST
	require.NoError(t, a.Validate())
}

func TestArticleValidateApproverRole(t *testing.T) {
	editorID := uint(3)
	a := &Article{
		Title:        "Breaking story",
		Content:      "Something happened.",
		Author:       User{ID: 7, Role: ROLE_JOURNALIST},
		ApprovedByID: &editorID,
		ApprovedBy:   &User{ID: editorID, Role: ROLE_JOURNALIST},
	}
	require.ErrorIs(t, a.Validate(), ErrApproverNotEditor)

	a.ApprovedBy.Role = ROLE_EDITOR
	require.NoError(t, a.Validate())
}

func TestArticleValidateMutualExclusion(t *testing.T) {
	a := &Article{
		Title:      "Breaking story",
		Content:    "Something happened.",
		Author:     User{ID: 7, Role: ROLE_JOURNALIST},
		IsApproved: true,
		IsRejected: true,
	}
	require.ErrorIs(t, a.Validate(), ErrApprovedAndRejected)
}

func TestArticleValidateIndependent(t *testing.T) {
	editorID := uint(3)
	a := &Article{
		Title:                  "Breaking story",
		Content:                "Something happened.",
		Author:                 User{ID: 7, Role: ROLE_JOURNALIST},
		IndependentlyPublished: true,
		IsApproved:             true,
	}
	// Self-publication without editor fields is valid.
	require.NoError(t, a.Validate())

	a.ApprovedByID = &editorID
	a.ApprovedBy = &User{ID: editorID, Role: ROLE_EDITOR}
	require.ErrorIs(t, a.Validate(), ErrIndependentReviewed)
}

func TestArticleExcerpt(t *testing.T) {
	a := &Article{Summary: "short summary", Content: strings.Repeat("x", 400)}
	assert.Equal(t, "short summary", a.Excerpt(200))

	a.Summary = ""
	excerpt := a.Excerpt(200)
	assert.Len(t, excerpt, 203)
	assert.True(t, strings.HasSuffix(excerpt, "..."))

	a.Content = "tiny"
	assert.Equal(t, "tiny", a.Excerpt(200))
}

func TestArticleClearRejection(t *testing.T) {
	editorID := uint(3)
	a := &Article{
		IsRejected:     true,
		RejectedReason: "not good enough",
		RejectedByID:   &editorID,
	}
	a.ClearRejection()

	assert.False(t, a.IsRejected)
	assert.Empty(t, a.RejectedReason)
	assert.Nil(t, a.RejectedByID)
	assert.Nil(t, a.RejectedDate)
	assert.Equal(t, ARTICLE_STATUS_PENDING, a.Status())
}

func TestArticlePublisherName(t *testing.T) {
	a := &Article{}
	assert.Equal(t, "Independent", a.PublisherName())

	a.Publisher = &Publisher{Name: "The Daily Planet"}
	assert.Equal(t, "The Daily Planet", a.PublisherName())
}
