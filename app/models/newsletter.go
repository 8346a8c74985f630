package models

import (
	"time"

	"github.com/go-playground/validator/v10"
	"gorm.io/gorm"
)

// Newsletter is journalist-authored content with no approval gate; the
// publication date is stamped at creation.
type Newsletter struct {
	ID      uint   `gorm:"primaryKey" json:"id"`
	Title   string `gorm:"type:varchar(300)" json:"title" validate:"required,min=3,max=300"`
	Content string `gorm:"type:text" json:"content" validate:"required"`

	AuthorID    uint       `gorm:"index" json:"author_id"`
	Author      User       `gorm:"foreignKey:AuthorID" json:"author"`
	PublisherID *uint      `gorm:"index" json:"publisher_id"`
	Publisher   *Publisher `gorm:"foreignKey:PublisherID;constraint:OnDelete:CASCADE" json:"publisher,omitempty"`

	PublishedDate time.Time      `gorm:"index" json:"published_date"`
	CreatedAt     time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt     time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt     gorm.DeletedAt `gorm:"index" json:"-"`
}

func (n *Newsletter) Validate() error {
	v := validator.New()
	if err := v.Struct(n); err != nil {
		return err
	}
	if n.Author.ID != 0 && n.Author.Role != ROLE_JOURNALIST {
		return ErrAuthorNotJournalist
	}
	return nil
}

// BeforeCreate stamps the publication date; newsletters publish on save.
func (n *Newsletter) BeforeCreate(tx *gorm.DB) error {
	if n.PublishedDate.IsZero() {
		n.PublishedDate = time.Now()
	}
	return nil
}
