package models

import (
	"errors"
	"time"

	"github.com/go-playground/validator/v10"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const (
	ROLE_READER     = "reader"
	ROLE_EDITOR     = "editor"
	ROLE_JOURNALIST = "journalist"
	ROLE_PUBLISHER  = "publisher"
)

// ErrJournalistSubscriptions is returned when a journalist carries
// reader-style subscription relations.
var ErrJournalistSubscriptions = errors.New("journalists cannot have reader subscriptions")

type User struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	Username  string         `gorm:"uniqueIndex;type:varchar(150)" json:"username" validate:"required,min=3,max=150"`
	Email     string         `gorm:"uniqueIndex;type:varchar(200)" json:"email" validate:"required,email,min=5,max=200"`
	Password  string         `gorm:"type:text" json:"-" validate:"required,min=6"`
	FirstName string         `gorm:"type:varchar(150)" json:"first_name" validate:"max=150"`
	LastName  string         `gorm:"type:varchar(150)" json:"last_name" validate:"max=150"`
	Role      string         `gorm:"type:varchar(20);default:'reader'" json:"role" validate:"oneof=reader editor journalist publisher"`

	// Reader-side subscription edges. A journalist never holds any of
	// these; see ClearRoleConflicts.
	SubscribedPublishers  []Publisher  `gorm:"many2many:user_subscribed_publishers" json:"-"`
	SubscribedNewsletters []Newsletter `gorm:"many2many:user_subscribed_newsletters" json:"-"`
	SubscribedJournalists []User       `gorm:"many2many:user_subscribed_journalists;joinForeignKey:SubscriberID;joinReferences:JournalistID" json:"-"`

	LastLoginAt *time.Time     `gorm:"type:timestamp;default:null" json:"last_login_at"`
	CreatedAt   time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`
}

func (u *User) Validate() error {
	v := validator.New()

	if err := v.Struct(u); err != nil {
		return err
	}
	if u.Role == ROLE_JOURNALIST && u.HasSubscriptions() {
		return ErrJournalistSubscriptions
	}
	return nil
}

func CreateUser(username, email, password, role string) (*User, error) {
	pw, err := HashPassword(password)
	if err != nil {
		return nil, err
	}

	if role == "" {
		role = ROLE_READER
	}

	u := &User{
		Username: username,
		Email:    email,
		Password: pw,
		Role:     role,
	}

	if err := u.Validate(); err != nil {
		return nil, err
	}

	return u, nil
}

func HashPassword(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)

	return string(bytes), err
}

// CheckPasswordHash compares the given password with the stored hash.
func CheckPasswordHash(password, hash string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))

	return err == nil
}

// CheckPassword verifies if the provided password matches the user's stored password
func (u *User) CheckPassword(password string) bool {
	return CheckPasswordHash(password, u.Password)
}

// SetPassword hashes and sets a new password for the user
func (u *User) SetPassword(password string) error {
	hashedPassword, err := HashPassword(password)
	if err != nil {
		return err
	}
	u.Password = hashedPassword
	return nil
}

// FullName returns "First Last", or the username when no name is set.
func (u *User) FullName() string {
	if u.FirstName == "" && u.LastName == "" {
		return u.Username
	}
	if u.LastName == "" {
		return u.FirstName
	}
	return u.FirstName + " " + u.LastName
}

func (u *User) IsReader() bool     { return u.Role == ROLE_READER }
func (u *User) IsEditor() bool     { return u.Role == ROLE_EDITOR }
func (u *User) IsJournalist() bool { return u.Role == ROLE_JOURNALIST }
func (u *User) IsPublisher() bool  { return u.Role == ROLE_PUBLISHER }

// HasSubscriptions reports whether any subscription edge is loaded on
// the struct. Callers that need the persisted state must preload the
// associations first.
func (u *User) HasSubscriptions() bool {
	return len(u.SubscribedPublishers) > 0 ||
		len(u.SubscribedNewsletters) > 0 ||
		len(u.SubscribedJournalists) > 0
}

// ClearRoleConflicts drops the in-memory subscription edges when the
// role makes them meaningless. The repository clears the persisted join
// rows on every save of a journalist.
func (u *User) ClearRoleConflicts() {
	if u.Role == ROLE_JOURNALIST {
		u.SubscribedPublishers = nil
		u.SubscribedNewsletters = nil
		u.SubscribedJournalists = nil
	}
}

// RoleDisplay returns the human readable role name.
func (u *User) RoleDisplay() string {
	switch u.Role {
	case ROLE_READER:
		return "Reader"
	case ROLE_EDITOR:
		return "Editor"
	case ROLE_JOURNALIST:
		return "Journalist"
	case ROLE_PUBLISHER:
		return "Publisher"
	}
	return u.Role
}
