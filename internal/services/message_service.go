package services

import (
	"time"

	"gigcampus_backend/internal/models"
	"gigcampus_backend/internal/repositories"
	"gigcampus_backend/internal/services/dto"
	"gigcampus_backend/pkg/apperrors"

	"gorm.io/gorm"
)

// replyChainLimit bounds the parent walk when checking for reply cycles.
const replyChainLimit = 100

type MessageService interface {
	Send(db *gorm.DB, userID string, req *dto.SendMessageRequest) (*dto.MessageResponse, error)
	GetByProject(db *gorm.DB, userID, projectID string, page, limit int, markRead bool) (*dto.MessageListResponse, error)
	GetConversations(db *gorm.DB, userID string, limit int) ([]dto.MessageResponse, error)
	Edit(db *gorm.DB, userID, messageID string, req *dto.UpdateMessageRequest) (*dto.MessageResponse, error)
	Delete(db *gorm.DB, userID, messageID string) error
	MarkRead(db *gorm.DB, userID, messageID string) error
	UnreadCount(db *gorm.DB, userID string) (int64, error)
}

type MessageServiceImpl struct {
	messageRepo repositories.MessageRepository
}

func NewMessageService(messageRepo repositories.MessageRepository) MessageService {
	return &MessageServiceImpl{
		messageRepo: messageRepo,
	}
}

// Send requires both sender and receiver to be involved in the project:
// owner, assignee, or holder of an active bid.
func (s *MessageServiceImpl) Send(db *gorm.DB, userID string, req *dto.SendMessageRequest) (*dto.MessageResponse, error) {
	if req.ReceiverID == userID {
		return nil, apperrors.NewBadRequestError("Cannot send a message to yourself")
	}

	ok, err := s.messageRepo.IsProjectParticipant(db, req.ProjectID, userID)
	if err != nil {
		if apperrors.Is(err, repositories.ErrProjectNotFound) {
			return nil, apperrors.ErrNotFound(err)
		}
		return nil, apperrors.InternalError(err)
	}
	if !ok {
		return nil, apperrors.ErrNotProjectParticipant
	}

	ok, err = s.messageRepo.IsProjectParticipant(db, req.ProjectID, req.ReceiverID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	if !ok {
		return nil, apperrors.ErrReceiverNotParticipant
	}

	if req.ReplyToID != nil {
		if err := s.checkReplyTarget(db, req.ProjectID, *req.ReplyToID); err != nil {
			return nil, err
		}
	}

	msgType := models.MessageTypeText
	if req.Type != "" {
		msgType = models.MessageType(req.Type)
	}

	message := &models.Message{
		ProjectID:  req.ProjectID,
		SenderID:   userID,
		ReceiverID: req.ReceiverID,
		Content:    req.Content,
		Type:       msgType,
		ReplyToID:  req.ReplyToID,
	}

	if err := s.messageRepo.Create(db, message); err != nil {
		return nil, apperrors.InternalError(err)
	}

	created, err := s.messageRepo.FindByID(db, message.ID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	resp := buildMessageResponse(created)
	return &resp, nil
}

// checkReplyTarget verifies the reply target lives in the same project,
// is not deleted, and that following its parents never revisits a node.
func (s *MessageServiceImpl) checkReplyTarget(db *gorm.DB, projectID, replyToID string) error {
	seen := map[string]bool{}
	currentID := replyToID

	for i := 0; i < replyChainLimit && currentID != ""; i++ {
		if seen[currentID] {
			return apperrors.ErrReplyCycle
		}
		seen[currentID] = true

		parent, err := s.messageRepo.FindByID(db, currentID)
		if err != nil {
			if apperrors.Is(err, repositories.ErrMessageNotFound) {
				return apperrors.ErrNotFound(err)
			}
			return apperrors.InternalError(err)
		}

		if currentID == replyToID {
			if parent.ProjectID != projectID {
				return apperrors.ErrReplyProjectMismatch
			}
			if parent.IsDeleted {
				return apperrors.ErrMessageDeleted
			}
		}

		if parent.ReplyToID == nil {
			return nil
		}
		currentID = *parent.ReplyToID
	}

	if currentID != "" {
		return apperrors.ErrReplyCycle
	}
	return nil
}

func (s *MessageServiceImpl) GetByProject(db *gorm.DB, userID, projectID string, page, limit int, markRead bool) (*dto.MessageListResponse, error) {
	ok, err := s.messageRepo.IsProjectParticipant(db, projectID, userID)
	if err != nil {
		if apperrors.Is(err, repositories.ErrProjectNotFound) {
			return nil, apperrors.ErrNotFound(err)
		}
		return nil, apperrors.InternalError(err)
	}
	if !ok {
		return nil, apperrors.ErrNotProjectParticipant
	}

	if page <= 0 {
		page = 1
	}
	if limit <= 0 || limit > 100 {
		limit = 50
	}

	if markRead {
		if err := s.messageRepo.MarkConversationRead(db, projectID, userID, time.Now()); err != nil {
			return nil, apperrors.InternalError(err)
		}
	}

	messages, total, err := s.messageRepo.FindByProject(db, projectID, page, limit)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	resp := &dto.MessageListResponse{
		Messages:   make([]dto.MessageResponse, 0, len(messages)),
		Pagination: dto.NewPagination(page, limit, total),
	}
	for i := range messages {
		resp.Messages = append(resp.Messages, buildMessageResponse(&messages[i]))
	}
	return resp, nil
}

func (s *MessageServiceImpl) GetConversations(db *gorm.DB, userID string, limit int) ([]dto.MessageResponse, error) {
	if limit <= 0 || limit > 100 {
		limit = 50
	}

	messages, err := s.messageRepo.FindLatestPerConversation(db, userID, limit)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	resp := make([]dto.MessageResponse, 0, len(messages))
	for i := range messages {
		resp = append(resp, buildMessageResponse(&messages[i]))
	}
	return resp, nil
}

func (s *MessageServiceImpl) Edit(db *gorm.DB, userID, messageID string, req *dto.UpdateMessageRequest) (*dto.MessageResponse, error) {
	message, err := s.messageRepo.FindByID(db, messageID)
	if err != nil {
		if apperrors.Is(err, repositories.ErrMessageNotFound) {
			return nil, apperrors.ErrNotFound(err)
		}
		return nil, apperrors.InternalError(err)
	}

	if message.SenderID != userID {
		return nil, apperrors.ErrInsufficientPermissions
	}
	if message.IsDeleted {
		return nil, apperrors.ErrMessageDeleted
	}

	now := time.Now()
	if err := s.messageRepo.EditContent(db, messageID, req.Content, now); err != nil {
		return nil, apperrors.InternalError(err)
	}

	message.Content = req.Content
	message.EditedAt = &now
	resp := buildMessageResponse(message)
	return &resp, nil
}

func (s *MessageServiceImpl) Delete(db *gorm.DB, userID, messageID string) error {
	message, err := s.messageRepo.FindByID(db, messageID)
	if err != nil {
		if apperrors.Is(err, repositories.ErrMessageNotFound) {
			return apperrors.ErrNotFound(err)
		}
		return apperrors.InternalError(err)
	}

	if message.SenderID != userID {
		return apperrors.ErrInsufficientPermissions
	}

	if err := s.messageRepo.SoftDelete(db, messageID); err != nil {
		return apperrors.InternalError(err)
	}
	return nil
}

func (s *MessageServiceImpl) MarkRead(db *gorm.DB, userID, messageID string) error {
	message, err := s.messageRepo.FindByID(db, messageID)
	if err != nil {
		if apperrors.Is(err, repositories.ErrMessageNotFound) {
			return apperrors.ErrNotFound(err)
		}
		return apperrors.InternalError(err)
	}

	if message.ReceiverID != userID {
		return apperrors.ErrInsufficientPermissions
	}

	if err := s.messageRepo.MarkRead(db, messageID, time.Now()); err != nil {
		return apperrors.InternalError(err)
	}
	return nil
}

func (s *MessageServiceImpl) UnreadCount(db *gorm.DB, userID string) (int64, error) {
	count, err := s.messageRepo.CountUnread(db, userID)
	if err != nil {
		return 0, apperrors.InternalError(err)
	}
	return count, nil
}
