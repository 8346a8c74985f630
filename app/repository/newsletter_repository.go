package repository

import (
	"github.com/pressquill/newshub/app/models"
	"gorm.io/gorm"
)

// newsletterRepository implements the NewsletterRepository interface
type newsletterRepository struct {
	db *gorm.DB
}

// NewNewsletterRepository creates a new newsletter repository instance
func NewNewsletterRepository(db *gorm.DB) NewsletterRepository {
	return &newsletterRepository{db: db}
}

func (r *newsletterRepository) Create(newsletter *models.Newsletter) error {
	return r.db.Create(newsletter).Error
}

func (r *newsletterRepository) GetByID(id uint) (*models.Newsletter, error) {
	var newsletter models.Newsletter
	err := r.db.Preload("Author").Preload("Publisher").First(&newsletter, id).Error
	if err != nil {
		return nil, err
	}
	return &newsletter, nil
}

func (r *newsletterRepository) Update(newsletter *models.Newsletter) error {
	return r.db.Save(newsletter).Error
}

// Delete soft deletes a newsletter by its ID
func (r *newsletterRepository) Delete(id uint) error {
	return r.db.Delete(&models.Newsletter{}, id).Error
}

func (r *newsletterRepository) GetAll(offset, limit int) ([]models.Newsletter, error) {
	var newsletters []models.Newsletter
	err := r.db.Preload("Author").Preload("Publisher").
		Order("published_date DESC").
		Offset(offset).Limit(limit).
		Find(&newsletters).Error
	return newsletters, err
}

func (r *newsletterRepository) Count() (int64, error) {
	var count int64
	err := r.db.Model(&models.Newsletter{}).Count(&count).Error
	return count, err
}

func (r *newsletterRepository) GetByAuthor(authorID uint) ([]models.Newsletter, error) {
	var newsletters []models.Newsletter
	err := r.db.Preload("Publisher").
		Where("author_id = ?", authorID).
		Order("created_at DESC").
		Find(&newsletters).Error
	return newsletters, err
}

func (r *newsletterRepository) CountByAuthor(authorID uint) (int64, error) {
	var count int64
	err := r.db.Model(&models.Newsletter{}).Where("author_id = ?", authorID).Count(&count).Error
	return count, err
}

// GetRelated returns other newsletters by the same author, newest first.
func (r *newsletterRepository) GetRelated(authorID, excludeID uint, limit int) ([]models.Newsletter, error) {
	var newsletters []models.Newsletter
	err := r.db.Preload("Author").
		Where("author_id = ? AND id != ?", authorID, excludeID).
		Order("published_date DESC").
		Limit(limit).
		Find(&newsletters).Error
	return newsletters, err
}
