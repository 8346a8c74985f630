package models

import (
	"errors"
	"time"

	"github.com/go-playground/validator/v10"
	"gorm.io/gorm"
)

const (
	ARTICLE_STATUS_PENDING  = "pending"
	ARTICLE_STATUS_APPROVED = "approved"
	ARTICLE_STATUS_REJECTED = "rejected"
)

var (
	ErrAuthorNotJournalist = errors.New("only users with 'journalist' role can author articles")
	ErrApproverNotEditor   = errors.New("only users with 'editor' role can approve articles")
	ErrApprovedAndRejected = errors.New("article cannot be approved and rejected at the same time")
	ErrIndependentReviewed = errors.New("independent articles cannot be approved or rejected by an editor")
)

// Article is authored content that passes editorial review before
// publication, unless the journalist publishes it independently.
type Article struct {
	ID      uint   `gorm:"primaryKey" json:"id"`
	Title   string `gorm:"type:varchar(300)" json:"title" validate:"required,min=3,max=300"`
	Content string `gorm:"type:text" json:"content" validate:"required"`
	Summary string `gorm:"type:varchar(500)" json:"summary" validate:"max=500"`

	AuthorID    uint       `gorm:"index" json:"author_id"`
	Author      User       `gorm:"foreignKey:AuthorID" json:"author"`
	PublisherID *uint      `gorm:"index" json:"publisher_id"`
	Publisher   *Publisher `gorm:"foreignKey:PublisherID;constraint:OnDelete:CASCADE" json:"publisher,omitempty"`

	IndependentlyPublished bool `gorm:"default:false" json:"independently_published"`

	IsApproved   bool   `gorm:"default:false" json:"is_approved"`
	ApprovedByID *uint  `json:"approved_by_id"`
	ApprovedBy   *User  `gorm:"foreignKey:ApprovedByID" json:"approved_by,omitempty"`
	IsRejected   bool   `gorm:"default:false" json:"is_rejected"`
	RejectedReason string `gorm:"type:text" json:"rejected_reason"`
	RejectedByID *uint  `json:"rejected_by_id"`
	RejectedBy   *User  `gorm:"foreignKey:RejectedByID" json:"rejected_by,omitempty"`

	ApprovalDate  *time.Time `json:"approval_date"`
	RejectedDate  *time.Time `json:"rejected_date"`
	PublishedDate *time.Time `gorm:"index" json:"published_date"`

	// NotifiedAt marks that subscriber notifications for the approval
	// of this article were already dispatched. A stamped article is
	// never notified again.
	NotifiedAt *time.Time `json:"-"`

	ImagePath string `gorm:"type:varchar(255)" json:"image_path"`

	CreatedAt time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

// Status derives the editorial state. Rejected wins over approved so a
// corrupted row never reads as published.
func (a *Article) Status() string {
	if a.IsRejected {
		return ARTICLE_STATUS_REJECTED
	}
	if a.IsApproved {
		return ARTICLE_STATUS_APPROVED
	}
	return ARTICLE_STATUS_PENDING
}

// StatusDisplay returns the human readable editorial state.
func (a *Article) StatusDisplay() string {
	switch a.Status() {
	case ARTICLE_STATUS_REJECTED:
		return "Rejected"
	case ARTICLE_STATUS_APPROVED:
		return "Approved"
	}
	return "Pending"
}

// Validate checks field constraints and the cross-field invariants of
// the editorial state. Relationship role checks only fire when the
// related structs are loaded.
func (a *Article) Validate() error {
	v := validator.New()
	if err := v.Struct(a); err != nil {
		return err
	}

	if a.Author.ID != 0 && a.Author.Role != ROLE_JOURNALIST {
		return ErrAuthorNotJournalist
	}
	if a.ApprovedBy != nil && a.ApprovedBy.ID != 0 && a.ApprovedBy.Role != ROLE_EDITOR {
		return ErrApproverNotEditor
	}
	if a.IsApproved && a.IsRejected {
		return ErrApprovedAndRejected
	}
	if a.IndependentlyPublished {
		if a.ApprovedByID != nil || a.RejectedByID != nil || a.IsRejected {
			return ErrIndependentReviewed
		}
	}
	return nil
}

// ClearRejection resets the rejection fields. A journalist editing a
// rejected article sends it back to the pending queue.
func (a *Article) ClearRejection() {
	a.IsRejected = false
	a.RejectedReason = ""
	a.RejectedByID = nil
	a.RejectedBy = nil
	a.RejectedDate = nil
}

// PublisherName returns the publisher name or "Independent" when the
// article has none.
func (a *Article) PublisherName() string {
	if a.Publisher != nil && a.Publisher.Name != "" {
		return a.Publisher.Name
	}
	return "Independent"
}

// Excerpt returns the summary, or a content excerpt capped at n runes.
func (a *Article) Excerpt(n int) string {
	if a.Summary != "" {
		return a.Summary
	}
	runes := []rune(a.Content)
	if len(runes) <= n {
		return a.Content
	}
	return string(runes[:n]) + "..."
}
