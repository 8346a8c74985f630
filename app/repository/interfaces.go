package repository

import (
	"github.com/pressquill/newshub/app/models"
	"gorm.io/gorm"
)

// UserRepository defines the interface for user-related database operations
type UserRepository interface {
	Create(user *models.User) error
	GetByID(id uint) (*models.User, error)
	GetByEmail(email string) (*models.User, error)
	GetByUsername(username string) (*models.User, error)
	GetByTokenHash(hash string) (*models.User, *models.APIToken, error)
	GetJournalist(id uint) (*models.User, error)
	ListJournalists() ([]models.User, error)
	Update(user *models.User) error
	Count() (int64, error)

	// Subscription edges. All operations are idempotent at the
	// association level; eligibility is checked by the authz layer.
	SubscribePublisher(user *models.User, publisher *models.Publisher) error
	UnsubscribePublisher(user *models.User, publisher *models.Publisher) error
	IsSubscribedToPublisher(userID, publisherID uint) (bool, error)
	SubscribeJournalist(user *models.User, journalist *models.User) error
	UnsubscribeJournalist(user *models.User, journalist *models.User) error
	IsSubscribedToJournalist(userID, journalistID uint) (bool, error)
	SubscribeNewsletter(user *models.User, newsletter *models.Newsletter) error
	UnsubscribeNewsletter(user *models.User, newsletter *models.Newsletter) error
	IsSubscribedToNewsletter(userID, newsletterID uint) (bool, error)
	GetSubscriptions(userID uint) (*models.User, error)
	ClearSubscriptions(userID uint) error

	// Readers subscribed to a publisher or journalist, for the
	// approval notification fan-out.
	GetPublisherSubscribers(publisherID uint) ([]models.User, error)
	GetJournalistSubscribers(journalistID uint) ([]models.User, error)
}

// ArticleRepository defines the interface for article-related database operations
type ArticleRepository interface {
	Create(article *models.Article) error
	GetByID(id uint) (*models.Article, error)
	Update(article *models.Article) error
	Delete(id uint) error
	GetApproved(offset, limit int) ([]models.Article, error)
	CountApproved() (int64, error)
	CountApprovedSince(since string) (int64, error)
	GetPending(offset, limit int) ([]models.Article, error)
	CountPending() (int64, error)
	GetByAuthor(authorID uint) ([]models.Article, error)
	GetApprovedByAuthor(authorID uint, offset, limit int) ([]models.Article, error)
	GetApprovedByPublisher(publisherID uint, offset, limit int) ([]models.Article, error)
	CountApprovedByEditor(editorID uint) (int64, error)

	// GetSubscriptionFeed returns approved articles whose publisher or
	// author the given user subscribes to, deduplicated, newest first.
	GetSubscriptionFeed(userID uint, offset, limit int) ([]models.Article, error)
}

// NewsletterRepository defines the interface for newsletter-related database operations
type NewsletterRepository interface {
	Create(newsletter *models.Newsletter) error
	GetByID(id uint) (*models.Newsletter, error)
	Update(newsletter *models.Newsletter) error
	Delete(id uint) error
	GetAll(offset, limit int) ([]models.Newsletter, error)
	Count() (int64, error)
	GetByAuthor(authorID uint) ([]models.Newsletter, error)
	CountByAuthor(authorID uint) (int64, error)
	GetRelated(authorID, excludeID uint, limit int) ([]models.Newsletter, error)
}

// PublisherRepository defines the interface for publisher-related database operations
type PublisherRepository interface {
	Create(publisher *models.Publisher) error
	GetByID(id uint) (*models.Publisher, error)
	GetByOwner(ownerID uint) (*models.Publisher, error)
	GetAll() ([]models.Publisher, error)
	Update(publisher *models.Publisher) error
	Delete(id uint) error
	AddEditor(publisher *models.Publisher, user *models.User) error
	AddJournalist(publisher *models.Publisher, user *models.User) error
}

// JoinRequestRepository defines the interface for publisher join request operations
type JoinRequestRepository interface {
	Create(request *models.PublisherJoinRequest) error
	GetByID(id uint) (*models.PublisherJoinRequest, error)
	Update(request *models.PublisherJoinRequest) error
	HasPending(userID, publisherID uint) (bool, error)
	GetByPublisher(publisherID uint, status string) ([]models.PublisherJoinRequest, error)
	GetPendingByPublisher(publisherID uint) ([]models.PublisherJoinRequest, error)
	CountByStatus(publisherID uint, status string) (int64, error)
	CountByPublisher(publisherID uint) (int64, error)
}

// Repositories struct holds all repository instances
type Repositories struct {
	User        UserRepository
	Article     ArticleRepository
	Newsletter  NewsletterRepository
	Publisher   PublisherRepository
	JoinRequest JoinRequestRepository
}

// NewRepositories creates a new instance of all repositories
func NewRepositories(db *gorm.DB) *Repositories {
	return &Repositories{
		User:        NewUserRepository(db),
		Article:     NewArticleRepository(db),
		Newsletter:  NewNewsletterRepository(db),
		Publisher:   NewPublisherRepository(db),
		JoinRequest: NewJoinRequestRepository(db),
	}
}
