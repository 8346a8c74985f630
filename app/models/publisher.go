package models

import (
	"time"

	"github.com/go-playground/validator/v10"
	"gorm.io/gorm"
)

// Publisher represents a news organization. Membership in the editor
// and journalist sets grows only through approved join requests.
type Publisher struct {
	ID              uint       `gorm:"primaryKey" json:"id"`
	Name            string     `gorm:"uniqueIndex;type:varchar(200)" json:"name" validate:"required,min=2,max=200"`
	Description     string     `gorm:"type:text" json:"description"`
	Website         string     `gorm:"type:varchar(255)" json:"website" validate:"omitempty,url,max=255"`
	EstablishedDate *time.Time `gorm:"type:date" json:"established_date"`

	OwnerID     *uint `gorm:"index" json:"owner_id"`
	Owner       *User `gorm:"foreignKey:OwnerID" json:"owner,omitempty"`
	CreatedByID *uint `json:"created_by_id"`
	CreatedBy   *User `gorm:"foreignKey:CreatedByID" json:"-"`

	Editors     []User `gorm:"many2many:publisher_editors" json:"-"`
	Journalists []User `gorm:"many2many:publisher_journalists" json:"-"`

	CreatedAt time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

func (p *Publisher) Validate() error {
	v := validator.New()

	return v.Struct(p)
}

// BeforeCreate assigns the creator as owner when no owner is set.
func (p *Publisher) BeforeCreate(tx *gorm.DB) error {
	if p.OwnerID == nil {
		p.OwnerID = p.CreatedByID
	}
	return nil
}

// IsOwnedBy reports whether the given user owns this publisher.
func (p *Publisher) IsOwnedBy(userID uint) bool {
	return p.OwnerID != nil && *p.OwnerID == userID
}

// HasEditor reports whether the user is in the loaded editor set.
func (p *Publisher) HasEditor(userID uint) bool {
	for _, e := range p.Editors {
		if e.ID == userID {
			return true
		}
	}
	return false
}

// HasJournalist reports whether the user is in the loaded journalist set.
func (p *Publisher) HasJournalist(userID uint) bool {
	for _, j := range p.Journalists {
		if j.ID == userID {
			return true
		}
	}
	return false
}
