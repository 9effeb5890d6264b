package repositories

import (
	"errors"
	"time"

	"gigcampus_backend/internal/models"

	"gorm.io/gorm"
)

var (
	ErrBidNotFound      = errors.New("bid not found")
	ErrDuplicateBid     = errors.New("bid already exists for this project")
	ErrNoBidsToTransfer = errors.New("no pending bids to update")
)

type BidRepository interface {
	Create(db *gorm.DB, bid *models.Bid) error
	FindByID(db *gorm.DB, id string) (*models.Bid, error)
	FindByIDWithDetails(db *gorm.DB, id string) (*models.Bid, error)
	FindByProject(db *gorm.DB, projectID string) ([]models.Bid, error)
	FindByUser(db *gorm.DB, userID string, status models.BidStatus, page, limit int) ([]models.Bid, int64, error)
	FindByUserAndProject(db *gorm.DB, userID, projectID string) (*models.Bid, error)
	Update(db *gorm.DB, bid *models.Bid) error
	UpdateFields(db *gorm.DB, id string, fields map[string]interface{}) error
	Delete(db *gorm.DB, id string) error

	// Accept workflow writes. Call inside the accept transaction.
	MarkAccepted(db *gorm.DB, id string, at time.Time) error
	RejectSiblingPending(db *gorm.DB, projectID, acceptedBidID string, at time.Time) error

	CountByUser(db *gorm.DB, userID string) (int64, error)
}

type BidRepositoryImpl struct{}

func NewBidRepository() BidRepository {
	return &BidRepositoryImpl{}
}

func (r *BidRepositoryImpl) Create(db *gorm.DB, bid *models.Bid) error {
	if err := db.Create(bid).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ErrDuplicateBid
		}
		return err
	}
	return nil
}

func (r *BidRepositoryImpl) FindByID(db *gorm.DB, id string) (*models.Bid, error) {
	var bid models.Bid
	err := db.First(&bid, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBidNotFound
		}
		return nil, err
	}
	return &bid, nil
}

func (r *BidRepositoryImpl) FindByIDWithDetails(db *gorm.DB, id string) (*models.Bid, error) {
	var bid models.Bid
	err := db.Preload("Project").Preload("Bidder").
		First(&bid, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBidNotFound
		}
		return nil, err
	}
	return &bid, nil
}

func (r *BidRepositoryImpl) FindByProject(db *gorm.DB, projectID string) ([]models.Bid, error) {
	var bids []models.Bid
	err := db.Preload("Bidder").
		Where("project_id = ?", projectID).
		Order("created_at DESC").
		Find(&bids).Error
	return bids, err
}

func (r *BidRepositoryImpl) FindByUser(db *gorm.DB, userID string, status models.BidStatus, page, limit int) ([]models.Bid, int64, error) {
	countQuery := db.Model(&models.Bid{}).Where("user_id = ?", userID)
	if status != "" {
		countQuery = countQuery.Where("status = ?", status)
	}

	var total int64
	if err := countQuery.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query := db.Preload("Project").Preload("Project.Poster").Where("user_id = ?", userID)
	if status != "" {
		query = query.Where("status = ?", status)
	}

	offset := (page - 1) * limit
	var bids []models.Bid
	err := query.Order("created_at DESC").
		Limit(limit).Offset(offset).
		Find(&bids).Error
	return bids, total, err
}

func (r *BidRepositoryImpl) FindByUserAndProject(db *gorm.DB, userID, projectID string) (*models.Bid, error) {
	var bid models.Bid
	err := db.Where("user_id = ? AND project_id = ?", userID, projectID).First(&bid).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBidNotFound
		}
		return nil, err
	}
	return &bid, nil
}

func (r *BidRepositoryImpl) Update(db *gorm.DB, bid *models.Bid) error {
	result := db.Save(bid)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrBidNotFound
	}
	return nil
}

func (r *BidRepositoryImpl) UpdateFields(db *gorm.DB, id string, fields map[string]interface{}) error {
	result := db.Model(&models.Bid{}).Where("id = ?", id).Updates(fields)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrBidNotFound
	}
	return nil
}

func (r *BidRepositoryImpl) Delete(db *gorm.DB, id string) error {
	result := db.Where("id = ?", id).Delete(&models.Bid{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrBidNotFound
	}
	return nil
}

func (r *BidRepositoryImpl) MarkAccepted(db *gorm.DB, id string, at time.Time) error {
	result := db.Model(&models.Bid{}).Where("id = ?", id).Updates(map[string]interface{}{
		"status":      models.BidStatusAccepted,
		"is_selected": true,
		"accepted_at": at,
	})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrBidNotFound
	}
	return nil
}

// RejectSiblingPending rejects every other pending bid on the project.
// Zero rows is fine, the accepted bid may have been the only one.
func (r *BidRepositoryImpl) RejectSiblingPending(db *gorm.DB, projectID, acceptedBidID string, at time.Time) error {
	return db.Model(&models.Bid{}).
		Where("project_id = ? AND id <> ? AND status = ?", projectID, acceptedBidID, models.BidStatusPending).
		Updates(map[string]interface{}{
			"status":      models.BidStatusRejected,
			"rejected_at": at,
		}).Error
}

func (r *BidRepositoryImpl) CountByUser(db *gorm.DB, userID string) (int64, error) {
	var count int64
	err := db.Model(&models.Bid{}).Where("user_id = ?", userID).Count(&count).Error
	return count, err
}
