package repositories

import (
	"errors"
	"time"

	"gigcampus_backend/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var (
	ErrPaymentNotFound  = errors.New("payment transaction not found")
	ErrDuplicateIntent  = errors.New("payment intent already recorded")
	ErrPaymentNotUnpaid = errors.New("payment transaction is not pending")
)

type PaymentRepository interface {
	Create(db *gorm.DB, tx *models.PaymentTransaction) error
	FindByID(db *gorm.DB, id string) (*models.PaymentTransaction, error)
	FindByIntentID(db *gorm.DB, intentID string) (*models.PaymentTransaction, error)
	FindByIntentIDForUpdate(db *gorm.DB, intentID string) (*models.PaymentTransaction, error)
	FindByProject(db *gorm.DB, projectID string) ([]models.PaymentTransaction, error)
	FindByUser(db *gorm.DB, userID string, page, limit int) ([]models.PaymentTransaction, int64, error)
	MarkPaid(db *gorm.DB, id string, at time.Time) error
	MarkFailed(db *gorm.DB, id, failureCode string) error
}

type PaymentRepositoryImpl struct{}

func NewPaymentRepository() PaymentRepository {
	return &PaymentRepositoryImpl{}
}

func (r *PaymentRepositoryImpl) Create(db *gorm.DB, tx *models.PaymentTransaction) error {
	if err := db.Create(tx).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ErrDuplicateIntent
		}
		return err
	}
	return nil
}

func (r *PaymentRepositoryImpl) FindByID(db *gorm.DB, id string) (*models.PaymentTransaction, error) {
	var tx models.PaymentTransaction
	err := db.First(&tx, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPaymentNotFound
		}
		return nil, err
	}
	return &tx, nil
}

func (r *PaymentRepositoryImpl) FindByIntentID(db *gorm.DB, intentID string) (*models.PaymentTransaction, error) {
	var tx models.PaymentTransaction
	err := db.First(&tx, "intent_id = ?", intentID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPaymentNotFound
		}
		return nil, err
	}
	return &tx, nil
}

// FindByIntentIDForUpdate locks the row so that duplicate webhook
// deliveries serialize on the same transaction record.
func (r *PaymentRepositoryImpl) FindByIntentIDForUpdate(db *gorm.DB, intentID string) (*models.PaymentTransaction, error) {
	var tx models.PaymentTransaction
	err := db.Clauses(clause.Locking{Strength: "UPDATE"}).First(&tx, "intent_id = ?", intentID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPaymentNotFound
		}
		return nil, err
	}
	return &tx, nil
}

func (r *PaymentRepositoryImpl) FindByProject(db *gorm.DB, projectID string) ([]models.PaymentTransaction, error) {
	var txs []models.PaymentTransaction
	err := db.Where("project_id = ?", projectID).
		Order("created_at DESC").
		Find(&txs).Error
	return txs, err
}

func (r *PaymentRepositoryImpl) FindByUser(db *gorm.DB, userID string, page, limit int) ([]models.PaymentTransaction, int64, error) {
	base := db.Model(&models.PaymentTransaction{}).
		Where("payer_id = ? OR payee_id = ?", userID, userID)

	var total int64
	if err := base.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * limit
	var txs []models.PaymentTransaction
	err := db.Preload("Project").
		Where("payer_id = ? OR payee_id = ?", userID, userID).
		Order("created_at DESC").
		Limit(limit).Offset(offset).
		Find(&txs).Error
	return txs, total, err
}

func (r *PaymentRepositoryImpl) MarkPaid(db *gorm.DB, id string, at time.Time) error {
	result := db.Model(&models.PaymentTransaction{}).
		Where("id = ? AND status = ?", id, models.PaymentStatusPending).
		Updates(map[string]interface{}{
			"status":  models.PaymentStatusPaid,
			"paid_at": at,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrPaymentNotUnpaid
	}
	return nil
}

func (r *PaymentRepositoryImpl) MarkFailed(db *gorm.DB, id, failureCode string) error {
	result := db.Model(&models.PaymentTransaction{}).
		Where("id = ? AND status = ?", id, models.PaymentStatusPending).
		Updates(map[string]interface{}{
			"status":       models.PaymentStatusFailed,
			"failure_code": failureCode,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrPaymentNotUnpaid
	}
	return nil
}
