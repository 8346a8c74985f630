package repository

import (
	"github.com/pressquill/newshub/app/models"
	"gorm.io/gorm"
)

// articleRepository implements the ArticleRepository interface
type articleRepository struct {
	db *gorm.DB
}

// NewArticleRepository creates a new article repository instance
func NewArticleRepository(db *gorm.DB) ArticleRepository {
	return &articleRepository{db: db}
}

func (r *articleRepository) Create(article *models.Article) error {
	return r.db.Create(article).Error
}

func (r *articleRepository) GetByID(id uint) (*models.Article, error) {
	var article models.Article
	err := r.db.
		Preload("Author").
		Preload("Publisher").
		Preload("ApprovedBy").
		Preload("RejectedBy").
		First(&article, id).Error
	if err != nil {
		return nil, err
	}
	return &article, nil
}

func (r *articleRepository) Update(article *models.Article) error {
	return r.db.Save(article).Error
}

// Delete soft deletes an article by its ID
func (r *articleRepository) Delete(id uint) error {
	return r.db.Delete(&models.Article{}, id).Error
}

// GetApproved retrieves approved articles, newest publication first.
func (r *articleRepository) GetApproved(offset, limit int) ([]models.Article, error) {
	var articles []models.Article
	err := r.db.Preload("Author").Preload("Publisher").
		Where("is_approved = ?", true).
		Order("published_date DESC").
		Offset(offset).Limit(limit).
		Find(&articles).Error
	return articles, err
}

func (r *articleRepository) CountApproved() (int64, error) {
	var count int64
	err := r.db.Model(&models.Article{}).Where("is_approved = ?", true).Count(&count).Error
	return count, err
}

func (r *articleRepository) CountApprovedSince(since string) (int64, error) {
	var count int64
	err := r.db.Model(&models.Article{}).
		Where("is_approved = ? AND published_date >= ?", true, since).
		Count(&count).Error
	return count, err
}

// GetPending retrieves articles awaiting editorial review.
func (r *articleRepository) GetPending(offset, limit int) ([]models.Article, error) {
	var articles []models.Article
	err := r.db.Preload("Author").Preload("Publisher").
		Where("is_approved = ? AND is_rejected = ?", false, false).
		Order("created_at DESC").
		Offset(offset).Limit(limit).
		Find(&articles).Error
	return articles, err
}

func (r *articleRepository) CountPending() (int64, error) {
	var count int64
	err := r.db.Model(&models.Article{}).
		Where("is_approved = ? AND is_rejected = ?", false, false).
		Count(&count).Error
	return count, err
}

func (r *articleRepository) GetByAuthor(authorID uint) ([]models.Article, error) {
	var articles []models.Article
	err := r.db.Preload("Publisher").Preload("ApprovedBy").
		Where("author_id = ?", authorID).
		Order("created_at DESC").
		Find(&articles).Error
	return articles, err
}

func (r *articleRepository) GetApprovedByAuthor(authorID uint, offset, limit int) ([]models.Article, error) {
	var articles []models.Article
	err := r.db.Preload("Author").Preload("Publisher").
		Where("author_id = ? AND is_approved = ?", authorID, true).
		Order("published_date DESC").
		Offset(offset).Limit(limit).
		Find(&articles).Error
	return articles, err
}

func (r *articleRepository) GetApprovedByPublisher(publisherID uint, offset, limit int) ([]models.Article, error) {
	var articles []models.Article
	err := r.db.Preload("Author").Preload("Publisher").
		Where("publisher_id = ? AND is_approved = ?", publisherID, true).
		Order("published_date DESC").
		Offset(offset).Limit(limit).
		Find(&articles).Error
	return articles, err
}

func (r *articleRepository) CountApprovedByEditor(editorID uint) (int64, error) {
	var count int64
	err := r.db.Model(&models.Article{}).
		Where("is_approved = ? AND approved_by_id = ?", true, editorID).
		Count(&count).Error
	return count, err
}

// GetSubscriptionFeed unions articles from subscribed publishers and
// subscribed journalists. DISTINCT drops articles matching both edges.
func (r *articleRepository) GetSubscriptionFeed(userID uint, offset, limit int) ([]models.Article, error) {
	var articles []models.Article
	err := r.db.Preload("Author").Preload("Publisher").
		Distinct("articles.*").
		Joins("LEFT JOIN user_subscribed_publishers sp ON sp.publisher_id = articles.publisher_id AND sp.user_id = ?", userID).
		Joins("LEFT JOIN user_subscribed_journalists sj ON sj.journalist_id = articles.author_id AND sj.subscriber_id = ?", userID).
		Where("articles.is_approved = ?", true).
		Where("sp.user_id IS NOT NULL OR sj.subscriber_id IS NOT NULL").
		Order("articles.published_date DESC").
		Offset(offset).Limit(limit).
		Find(&articles).Error
	return articles, err
}
