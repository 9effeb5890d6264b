package dto

import "time"

type SendMessageRequest struct {
	ProjectID  string  `json:"projectId" validate:"required,uuid"`
	ReceiverID string  `json:"receiverId" validate:"required,uuid"`
	Content    string  `json:"content" validate:"required,min=1,max=2000"`
	Type       string  `json:"type" validate:"omitempty,oneof=text file image system"`
	ReplyToID  *string `json:"replyToId" validate:"omitempty,uuid"`
}

type UpdateMessageRequest struct {
	Content string `json:"content" validate:"required,min=1,max=2000"`
}

type MessageResponse struct {
	ID         string              `json:"id"`
	ProjectID  string              `json:"projectId"`
	SenderID   string              `json:"senderId"`
	ReceiverID string              `json:"receiverId"`
	Content    string              `json:"content"`
	Type       string              `json:"type"`
	ReplyToID  *string             `json:"replyToId,omitempty"`
	IsRead     bool                `json:"isRead"`
	ReadAt     *time.Time          `json:"readAt,omitempty"`
	EditedAt   *time.Time          `json:"editedAt,omitempty"`
	CreatedAt  time.Time           `json:"createdAt"`
	Sender     *PublicUserResponse `json:"sender,omitempty"`
	ReplyTo    *MessageResponse    `json:"replyTo,omitempty"`
}

type MessageListResponse struct {
	Messages   []MessageResponse `json:"messages"`
	Pagination Pagination        `json:"pagination"`
}

type UnreadCountResponse struct {
	Count int64 `json:"count"`
}
