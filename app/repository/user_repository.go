package repository

import (
	"github.com/pressquill/newshub/app/models"
	"gorm.io/gorm"
)

// userRepository implements the UserRepository interface
type userRepository struct {
	db *gorm.DB
}

// NewUserRepository creates a new user repository instance
func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

// Create persists a new user. Journalists never keep subscription
// edges, so the conflicting associations are dropped before the insert.
func (r *userRepository) Create(user *models.User) error {
	user.ClearRoleConflicts()
	return r.db.Create(user).Error
}

func (r *userRepository) GetByID(id uint) (*models.User, error) {
	var user models.User
	if err := r.db.First(&user, id).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) GetByEmail(email string) (*models.User, error) {
	var user models.User
	if err := r.db.Where("email = ?", email).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) GetByUsername(username string) (*models.User, error) {
	var user models.User
	if err := r.db.Where("username = ?", username).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// GetByTokenHash resolves an API bearer token hash to its user.
func (r *userRepository) GetByTokenHash(hash string) (*models.User, *models.APIToken, error) {
	var token models.APIToken
	err := r.db.Where("token_hash = ? AND token_revoked_at IS NULL", hash).First(&token).Error
	if err != nil {
		return nil, nil, err
	}

	var user models.User
	if err := r.db.First(&user, token.UserID).Error; err != nil {
		return nil, nil, err
	}
	return &user, &token, nil
}

func (r *userRepository) GetJournalist(id uint) (*models.User, error) {
	var user models.User
	err := r.db.Where("id = ? AND role = ?", id, models.ROLE_JOURNALIST).First(&user).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) ListJournalists() ([]models.User, error) {
	var users []models.User
	err := r.db.Where("role = ?", models.ROLE_JOURNALIST).Order("username").Find(&users).Error
	return users, err
}

// Update saves the user. When the role is journalist all persisted
// subscription rows are removed as well, keeping the invariant intact
// even across role changes.
func (r *userRepository) Update(user *models.User) error {
	user.ClearRoleConflicts()
	if err := r.db.Save(user).Error; err != nil {
		return err
	}
	if user.Role == models.ROLE_JOURNALIST {
		return r.ClearSubscriptions(user.ID)
	}
	return nil
}

func (r *userRepository) Count() (int64, error) {
	var count int64
	err := r.db.Model(&models.User{}).Count(&count).Error
	return count, err
}

func (r *userRepository) SubscribePublisher(user *models.User, publisher *models.Publisher) error {
	return r.db.Model(user).Association("SubscribedPublishers").Append(publisher)
}

func (r *userRepository) UnsubscribePublisher(user *models.User, publisher *models.Publisher) error {
	return r.db.Model(user).Association("SubscribedPublishers").Delete(publisher)
}

func (r *userRepository) IsSubscribedToPublisher(userID, publisherID uint) (bool, error) {
	var count int64
	err := r.db.Table("user_subscribed_publishers").
		Where("user_id = ? AND publisher_id = ?", userID, publisherID).
		Count(&count).Error
	return count > 0, err
}

func (r *userRepository) SubscribeJournalist(user *models.User, journalist *models.User) error {
	return r.db.Model(user).Association("SubscribedJournalists").Append(journalist)
}

func (r *userRepository) UnsubscribeJournalist(user *models.User, journalist *models.User) error {
	return r.db.Model(user).Association("SubscribedJournalists").Delete(journalist)
}

func (r *userRepository) IsSubscribedToJournalist(userID, journalistID uint) (bool, error) {
	var count int64
	err := r.db.Table("user_subscribed_journalists").
		Where("subscriber_id = ? AND journalist_id = ?", userID, journalistID).
		Count(&count).Error
	return count > 0, err
}

func (r *userRepository) SubscribeNewsletter(user *models.User, newsletter *models.Newsletter) error {
	return r.db.Model(user).Association("SubscribedNewsletters").Append(newsletter)
}

func (r *userRepository) UnsubscribeNewsletter(user *models.User, newsletter *models.Newsletter) error {
	return r.db.Model(user).Association("SubscribedNewsletters").Delete(newsletter)
}

func (r *userRepository) IsSubscribedToNewsletter(userID, newsletterID uint) (bool, error) {
	var count int64
	err := r.db.Table("user_subscribed_newsletters").
		Where("user_id = ? AND newsletter_id = ?", userID, newsletterID).
		Count(&count).Error
	return count > 0, err
}

// GetSubscriptions loads the user with all subscription edges preloaded.
func (r *userRepository) GetSubscriptions(userID uint) (*models.User, error) {
	var user models.User
	err := r.db.
		Preload("SubscribedPublishers").
		Preload("SubscribedNewsletters").
		Preload("SubscribedJournalists").
		First(&user, userID).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// ClearSubscriptions removes every subscription row held by the user.
func (r *userRepository) ClearSubscriptions(userID uint) error {
	user := models.User{ID: userID}
	if err := r.db.Model(&user).Association("SubscribedPublishers").Clear(); err != nil {
		return err
	}
	if err := r.db.Model(&user).Association("SubscribedNewsletters").Clear(); err != nil {
		return err
	}
	return r.db.Model(&user).Association("SubscribedJournalists").Clear()
}

func (r *userRepository) GetPublisherSubscribers(publisherID uint) ([]models.User, error) {
	var users []models.User
	err := r.db.
		Joins("JOIN user_subscribed_publishers sp ON sp.user_id = users.id").
		Where("sp.publisher_id = ?", publisherID).
		Find(&users).Error
	return users, err
}

func (r *userRepository) GetJournalistSubscribers(journalistID uint) ([]models.User, error) {
	var users []models.User
	err := r.db.
		Joins("JOIN user_subscribed_journalists sj ON sj.subscriber_id = users.id").
		Where("sj.journalist_id = ?", journalistID).
		Find(&users).Error
	return users, err
}
