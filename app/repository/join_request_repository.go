package repository

import (
	"github.com/pressquill/newshub/app/models"
	"gorm.io/gorm"
)

// joinRequestRepository implements the JoinRequestRepository interface
type joinRequestRepository struct {
	db *gorm.DB
}

// NewJoinRequestRepository creates a new join request repository instance
func NewJoinRequestRepository(db *gorm.DB) JoinRequestRepository {
	return &joinRequestRepository{db: db}
}

// Create inserts the request. A concurrent duplicate pending request
// trips the unique pending-key index and surfaces as
// gorm.ErrDuplicatedKey for the caller to map.
func (r *joinRequestRepository) Create(request *models.PublisherJoinRequest) error {
	return r.db.Create(request).Error
}

func (r *joinRequestRepository) GetByID(id uint) (*models.PublisherJoinRequest, error) {
	var request models.PublisherJoinRequest
	err := r.db.
		Preload("User").
		Preload("Publisher").
		Preload("Publisher.Owner").
		Preload("ReviewedBy").
		First(&request, id).Error
	if err != nil {
		return nil, err
	}
	return &request, nil
}

func (r *joinRequestRepository) Update(request *models.PublisherJoinRequest) error {
	return r.db.Save(request).Error
}

func (r *joinRequestRepository) HasPending(userID, publisherID uint) (bool, error) {
	var count int64
	err := r.db.Model(&models.PublisherJoinRequest{}).
		Where("user_id = ? AND publisher_id = ? AND status = ?",
			userID, publisherID, models.JOIN_REQUEST_PENDING).
		Count(&count).Error
	return count > 0, err
}

// GetByPublisher lists requests for a publisher, optionally filtered by
// status; pass an empty status for all.
func (r *joinRequestRepository) GetByPublisher(publisherID uint, status string) ([]models.PublisherJoinRequest, error) {
	var requests []models.PublisherJoinRequest
	q := r.db.Preload("User").Preload("ReviewedBy").
		Where("publisher_id = ?", publisherID).
		Order("created_at DESC")
	if status != "" {
		q = q.Where("status = ?", status)
	}
	err := q.Find(&requests).Error
	return requests, err
}

func (r *joinRequestRepository) GetPendingByPublisher(publisherID uint) ([]models.PublisherJoinRequest, error) {
	return r.GetByPublisher(publisherID, models.JOIN_REQUEST_PENDING)
}

func (r *joinRequestRepository) CountByStatus(publisherID uint, status string) (int64, error) {
	var count int64
	err := r.db.Model(&models.PublisherJoinRequest{}).
		Where("publisher_id = ? AND status = ?", publisherID, status).
		Count(&count).Error
	return count, err
}

func (r *joinRequestRepository) CountByPublisher(publisherID uint) (int64, error) {
	var count int64
	err := r.db.Model(&models.PublisherJoinRequest{}).
		Where("publisher_id = ?", publisherID).
		Count(&count).Error
	return count, err
}
