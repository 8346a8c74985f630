package repository

import (
	"github.com/pressquill/newshub/app/models"
	"gorm.io/gorm"
)

// publisherRepository implements the PublisherRepository interface
type publisherRepository struct {
	db *gorm.DB
}

// NewPublisherRepository creates a new publisher repository instance
func NewPublisherRepository(db *gorm.DB) PublisherRepository {
	return &publisherRepository{db: db}
}

func (r *publisherRepository) Create(publisher *models.Publisher) error {
	return r.db.Create(publisher).Error
}

func (r *publisherRepository) GetByID(id uint) (*models.Publisher, error) {
	var publisher models.Publisher
	err := r.db.
		Preload("Owner").
		Preload("Editors").
		Preload("Journalists").
		First(&publisher, id).Error
	if err != nil {
		return nil, err
	}
	return &publisher, nil
}

// GetByOwner returns the publisher owned by the user, if any.
func (r *publisherRepository) GetByOwner(ownerID uint) (*models.Publisher, error) {
	var publisher models.Publisher
	err := r.db.
		Preload("Editors").
		Preload("Journalists").
		Where("owner_id = ?", ownerID).
		First(&publisher).Error
	if err != nil {
		return nil, err
	}
	return &publisher, nil
}

func (r *publisherRepository) GetAll() ([]models.Publisher, error) {
	var publishers []models.Publisher
	err := r.db.Preload("Owner").Order("created_at DESC").Find(&publishers).Error
	return publishers, err
}

func (r *publisherRepository) Update(publisher *models.Publisher) error {
	return r.db.Save(publisher).Error
}

// Delete removes a publisher. Dependent articles and newsletters go
// with it through the FK cascade.
func (r *publisherRepository) Delete(id uint) error {
	return r.db.Delete(&models.Publisher{}, id).Error
}

func (r *publisherRepository) AddEditor(publisher *models.Publisher, user *models.User) error {
	return r.db.Model(publisher).Association("Editors").Append(user)
}

func (r *publisherRepository) AddJournalist(publisher *models.Publisher, user *models.User) error {
	return r.db.Model(publisher).Association("Journalists").Append(user)
}
