package repositories

import (
	"errors"
	"math"

	"gigcampus_backend/internal/models"

	"gorm.io/gorm"
)

var (
	ErrRatingNotFound     = errors.New("rating not found")
	ErrDuplicateRating    = errors.New("rating already exists for this project")
	ErrRatingVoteNotFound = errors.New("rating vote not found")
	ErrDuplicateVote      = errors.New("vote already recorded for this rating")
)

// RatingStats aggregates one rating direction for a user.
type RatingStats struct {
	Average      float64       `json:"average"`
	Count        int64         `json:"count"`
	Distribution map[int]int64 `json:"distribution"`
}

type RatingRepository interface {
	Create(db *gorm.DB, rating *models.Rating) error
	FindByID(db *gorm.DB, id string) (*models.Rating, error)
	FindByRatedUser(db *gorm.DB, ratedUserID string, page, limit int) ([]models.Rating, int64, error)
	FindByRater(db *gorm.DB, raterID string, page, limit int) ([]models.Rating, int64, error)
	StatsForUser(db *gorm.DB, ratedUserID string, ratingType models.RatingType) (*RatingStats, error)
	FindByProject(db *gorm.DB, projectID string) ([]models.Rating, error)
	FindByProjectRaterType(db *gorm.DB, projectID, raterID string, ratingType models.RatingType) (*models.Rating, error)
	Update(db *gorm.DB, rating *models.Rating) error
	Delete(db *gorm.DB, id string) error

	// RecomputeReputation recalculates the mean score of all ratings
	// received by the user and writes it back, rounded to 2 decimals.
	RecomputeReputation(db *gorm.DB, ratedUserID string) (float64, error)

	// Helpful votes.
	CreateVote(db *gorm.DB, vote *models.RatingVote) error
	HasVoted(db *gorm.DB, ratingID, voterID string) (bool, error)
	IncrementHelpfulVotes(db *gorm.DB, ratingID string) error

	CountByRatedUser(db *gorm.DB, ratedUserID string) (int64, error)
}

type RatingRepositoryImpl struct{}

func NewRatingRepository() RatingRepository {
	return &RatingRepositoryImpl{}
}

func (r *RatingRepositoryImpl) Create(db *gorm.DB, rating *models.Rating) error {
	if err := db.Create(rating).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ErrDuplicateRating
		}
		return err
	}
	return nil
}

func (r *RatingRepositoryImpl) FindByID(db *gorm.DB, id string) (*models.Rating, error) {
	var rating models.Rating
	err := db.First(&rating, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRatingNotFound
		}
		return nil, err
	}
	return &rating, nil
}

func (r *RatingRepositoryImpl) FindByRatedUser(db *gorm.DB, ratedUserID string, page, limit int) ([]models.Rating, int64, error) {
	var total int64
	if err := db.Model(&models.Rating{}).Where("rated_user_id = ?", ratedUserID).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * limit
	var ratings []models.Rating
	err := db.Preload("Rater").Preload("Project").
		Where("rated_user_id = ?", ratedUserID).
		Order("created_at DESC").
		Limit(limit).Offset(offset).
		Find(&ratings).Error
	return ratings, total, err
}

func (r *RatingRepositoryImpl) FindByRater(db *gorm.DB, raterID string, page, limit int) ([]models.Rating, int64, error) {
	var total int64
	if err := db.Model(&models.Rating{}).Where("rater_user_id = ?", raterID).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * limit
	var ratings []models.Rating
	err := db.Preload("RatedUser").Preload("Project").
		Where("rater_user_id = ?", raterID).
		Order("created_at DESC").
		Limit(limit).Offset(offset).
		Find(&ratings).Error
	return ratings, total, err
}

func (r *RatingRepositoryImpl) StatsForUser(db *gorm.DB, ratedUserID string, ratingType models.RatingType) (*RatingStats, error) {
	var stats RatingStats
	err := db.Model(&models.Rating{}).
		Where("rated_user_id = ? AND rating_type = ?", ratedUserID, ratingType).
		Select("COUNT(*) as count, COALESCE(AVG(score), 0) as average").
		Scan(&stats).Error
	if err != nil {
		return nil, err
	}

	stats.Distribution = make(map[int]int64)
	rows := []struct {
		Score int
		N     int64
	}{}
	err = db.Model(&models.Rating{}).
		Where("rated_user_id = ? AND rating_type = ?", ratedUserID, ratingType).
		Select("score, COUNT(*) as n").
		Group("score").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	for _, row := range rows {
		stats.Distribution[row.Score] = row.N
	}
	return &stats, nil
}

func (r *RatingRepositoryImpl) FindByProject(db *gorm.DB, projectID string) ([]models.Rating, error) {
	var ratings []models.Rating
	err := db.Preload("Rater").Preload("RatedUser").
		Where("project_id = ?", projectID).
		Order("created_at DESC").
		Find(&ratings).Error
	return ratings, err
}

func (r *RatingRepositoryImpl) FindByProjectRaterType(db *gorm.DB, projectID, raterID string, ratingType models.RatingType) (*models.Rating, error) {
	var rating models.Rating
	err := db.Where("project_id = ? AND rater_user_id = ? AND rating_type = ?", projectID, raterID, ratingType).
		First(&rating).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRatingNotFound
		}
		return nil, err
	}
	return &rating, nil
}

func (r *RatingRepositoryImpl) Update(db *gorm.DB, rating *models.Rating) error {
	result := db.Model(rating).Updates(map[string]interface{}{
		"score":    rating.Score,
		"comment":  rating.Comment,
		"criteria": rating.Criteria,
	})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrRatingNotFound
	}
	return nil
}

func (r *RatingRepositoryImpl) Delete(db *gorm.DB, id string) error {
	result := db.Where("id = ?", id).Delete(&models.Rating{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrRatingNotFound
	}
	return nil
}

func (r *RatingRepositoryImpl) RecomputeReputation(db *gorm.DB, ratedUserID string) (float64, error) {
	var avg float64
	err := db.Model(&models.Rating{}).Where("rated_user_id = ?", ratedUserID).
		Select("COALESCE(AVG(score), 0)").Scan(&avg).Error
	if err != nil {
		return 0, err
	}

	reputation := math.Round(avg*100) / 100
	err = db.Model(&models.User{}).Where("id = ?", ratedUserID).
		Update("reputation", reputation).Error
	return reputation, err
}

func (r *RatingRepositoryImpl) CreateVote(db *gorm.DB, vote *models.RatingVote) error {
	if err := db.Create(vote).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ErrDuplicateVote
		}
		return err
	}
	return nil
}

func (r *RatingRepositoryImpl) HasVoted(db *gorm.DB, ratingID, voterID string) (bool, error) {
	var count int64
	err := db.Model(&models.RatingVote{}).
		Where("rating_id = ? AND voter_id = ?", ratingID, voterID).
		Count(&count).Error
	return count > 0, err
}

func (r *RatingRepositoryImpl) IncrementHelpfulVotes(db *gorm.DB, ratingID string) error {
	result := db.Model(&models.Rating{}).Where("id = ?", ratingID).
		Update("helpful_votes", gorm.Expr("helpful_votes + 1"))
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrRatingNotFound
	}
	return nil
}

func (r *RatingRepositoryImpl) CountByRatedUser(db *gorm.DB, ratedUserID string) (int64, error) {
	var count int64
	err := db.Model(&models.Rating{}).Where("rated_user_id = ?", ratedUserID).Count(&count).Error
	return count, err
}
