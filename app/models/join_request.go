package models

import (
	"fmt"
	"time"

	"gorm.io/gorm"
)

const (
	JOIN_REQUEST_PENDING  = "pending"
	JOIN_REQUEST_APPROVED = "approved"
	JOIN_REQUEST_REJECTED = "rejected"
)

// PublisherJoinRequest is a journalist's or editor's request to join a
// publisher organization. Only the publisher owner reviews it.
//
// PendingKey backs the "one pending request per user/publisher pair"
// rule at the database level: it holds "user:publisher" while the
// request is pending and NULL afterwards, under a unique index. MySQL
// has no partial unique indexes, so the nullable key column stands in
// for one.
type PublisherJoinRequest struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	UserID      uint      `gorm:"index" json:"user_id"`
	User        User      `gorm:"foreignKey:UserID" json:"user"`
	PublisherID uint      `gorm:"index" json:"publisher_id"`
	Publisher   Publisher `gorm:"foreignKey:PublisherID;constraint:OnDelete:CASCADE" json:"publisher"`

	Status     string     `gorm:"type:varchar(20);default:'pending'" json:"status"`
	Message    string     `gorm:"type:text" json:"message"`
	PendingKey *string    `gorm:"uniqueIndex;type:varchar(64)" json:"-"`
	ReviewedAt *time.Time `json:"reviewed_at"`

	ReviewedByID *uint `json:"reviewed_by_id"`
	ReviewedBy   *User `gorm:"foreignKey:ReviewedByID" json:"reviewed_by,omitempty"`

	CreatedAt time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

func (PublisherJoinRequest) TableName() string {
	return "publisher_join_requests"
}

// IsPending reports whether the request still awaits review.
func (r *PublisherJoinRequest) IsPending() bool {
	return r.Status == JOIN_REQUEST_PENDING
}

// BeforeSave keeps PendingKey in sync with Status so the unique index
// only ever applies to pending rows.
func (r *PublisherJoinRequest) BeforeSave(tx *gorm.DB) error {
	if r.Status == JOIN_REQUEST_PENDING {
		key := fmt.Sprintf("%d:%d", r.UserID, r.PublisherID)
		r.PendingKey = &key
	} else {
		r.PendingKey = nil
	}
	return nil
}

// MarkReviewed stamps the reviewer and review time and moves the
// request to the given terminal status.
func (r *PublisherJoinRequest) MarkReviewed(reviewer *User, status string) {
	now := time.Now()
	r.Status = status
	r.ReviewedByID = &reviewer.ID
	r.ReviewedBy = reviewer
	r.ReviewedAt = &now
}
