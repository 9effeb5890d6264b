package repositories

import (
	"errors"
	"time"

	"gigcampus_backend/internal/models"

	"gorm.io/gorm"
)

var (
	ErrMessageNotFound = errors.New("message not found")
)

type MessageRepository interface {
	Create(db *gorm.DB, message *models.Message) error
	FindByID(db *gorm.DB, id string) (*models.Message, error)
	FindByProject(db *gorm.DB, projectID string, page, limit int) ([]models.Message, int64, error)
	EditContent(db *gorm.DB, id, content string, at time.Time) error
	FindLatestPerConversation(db *gorm.DB, userID string, limit int) ([]models.Message, error)
	MarkRead(db *gorm.DB, id string, at time.Time) error
	MarkConversationRead(db *gorm.DB, projectID, receiverID string, at time.Time) error
	SoftDelete(db *gorm.DB, id string) error
	CountUnread(db *gorm.DB, receiverID string) (int64, error)

	// IsProjectParticipant reports whether the user is the owner, the
	// assignee, or has a pending or accepted bid on the project.
	IsProjectParticipant(db *gorm.DB, projectID, userID string) (bool, error)
}

type MessageRepositoryImpl struct{}

func NewMessageRepository() MessageRepository {
	return &MessageRepositoryImpl{}
}

func (r *MessageRepositoryImpl) Create(db *gorm.DB, message *models.Message) error {
	return db.Create(message).Error
}

func (r *MessageRepositoryImpl) FindByID(db *gorm.DB, id string) (*models.Message, error) {
	var message models.Message
	err := db.First(&message, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrMessageNotFound
		}
		return nil, err
	}
	return &message, nil
}

func (r *MessageRepositoryImpl) FindByProject(db *gorm.DB, projectID string, page, limit int) ([]models.Message, int64, error) {
	base := db.Model(&models.Message{}).Where("project_id = ? AND is_deleted = ?", projectID, false)

	var total int64
	if err := base.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * limit
	var messages []models.Message
	err := db.Preload("Sender").Preload("ReplyTo").
		Where("project_id = ? AND is_deleted = ?", projectID, false).
		Order("created_at ASC").
		Limit(limit).Offset(offset).
		Find(&messages).Error
	return messages, total, err
}

func (r *MessageRepositoryImpl) EditContent(db *gorm.DB, id, content string, at time.Time) error {
	result := db.Model(&models.Message{}).Where("id = ?", id).
		Updates(map[string]interface{}{"content": content, "edited_at": at})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrMessageNotFound
	}
	return nil
}

// FindLatestPerConversation returns the newest message of each
// (project, peer) pair the user takes part in.
func (r *MessageRepositoryImpl) FindLatestPerConversation(db *gorm.DB, userID string, limit int) ([]models.Message, error) {
	sub := db.Model(&models.Message{}).
		Select("project_id, LEAST(sender_id, receiver_id) AS low, GREATEST(sender_id, receiver_id) AS high, MAX(created_at) AS last_at").
		Where("(sender_id = ? OR receiver_id = ?) AND is_deleted = ?", userID, userID, false).
		Group("project_id, LEAST(sender_id, receiver_id), GREATEST(sender_id, receiver_id)")

	var messages []models.Message
	err := db.Preload("Sender").Preload("Receiver").
		Joins("JOIN (?) AS conv ON messages.project_id = conv.project_id AND LEAST(messages.sender_id, messages.receiver_id) = conv.low AND GREATEST(messages.sender_id, messages.receiver_id) = conv.high AND messages.created_at = conv.last_at", sub).
		Where("messages.is_deleted = ?", false).
		Order("messages.created_at DESC").
		Limit(limit).
		Find(&messages).Error
	return messages, err
}

func (r *MessageRepositoryImpl) MarkRead(db *gorm.DB, id string, at time.Time) error {
	result := db.Model(&models.Message{}).Where("id = ? AND is_read = ?", id, false).
		Updates(map[string]interface{}{"is_read": true, "read_at": at})
	if result.Error != nil {
		return result.Error
	}
	return nil
}

func (r *MessageRepositoryImpl) MarkConversationRead(db *gorm.DB, projectID, receiverID string, at time.Time) error {
	return db.Model(&models.Message{}).
		Where("project_id = ? AND receiver_id = ? AND is_read = ?", projectID, receiverID, false).
		Updates(map[string]interface{}{"is_read": true, "read_at": at}).Error
}

func (r *MessageRepositoryImpl) SoftDelete(db *gorm.DB, id string) error {
	result := db.Model(&models.Message{}).Where("id = ?", id).
		Updates(map[string]interface{}{"is_deleted": true, "deleted_at": time.Now()})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrMessageNotFound
	}
	return nil
}

func (r *MessageRepositoryImpl) CountUnread(db *gorm.DB, receiverID string) (int64, error) {
	var count int64
	err := db.Model(&models.Message{}).
		Where("receiver_id = ? AND is_read = ? AND is_deleted = ?", receiverID, false, false).
		Count(&count).Error
	return count, err
}

func (r *MessageRepositoryImpl) IsProjectParticipant(db *gorm.DB, projectID, userID string) (bool, error) {
	var project models.Project
	if err := db.Select("id", "posted_by", "assigned_to").First(&project, "id = ?", projectID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, ErrProjectNotFound
		}
		return false, err
	}

	if project.PostedBy == userID {
		return true, nil
	}
	if project.AssignedTo != nil && *project.AssignedTo == userID {
		return true, nil
	}

	var count int64
	err := db.Model(&models.Bid{}).
		Where("project_id = ? AND user_id = ? AND status IN ?", projectID, userID,
			[]models.BidStatus{models.BidStatusPending, models.BidStatusAccepted}).
		Count(&count).Error
	return count > 0, err
}
