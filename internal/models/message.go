package models

import "time"

type Message struct {
	BaseModel
	ProjectID  string      `gorm:"type:uuid;not null;index:idx_messages_project_created"`
	SenderID   string      `gorm:"type:uuid;not null;index"`
	ReceiverID string      `gorm:"type:uuid;not null;index"`
	Content    string      `gorm:"type:text;not null"`
	Type       MessageType `gorm:"type:varchar(10);default:'text'"`
	ReplyToID  *string     `gorm:"type:uuid"`
	IsRead     bool        `gorm:"default:false"`
	ReadAt     *time.Time
	EditedAt   *time.Time
	IsDeleted  bool `gorm:"default:false"`
	DeletedAt  *time.Time

	// Relations
	Sender   *User    `gorm:"foreignKey:SenderID"`
	Receiver *User    `gorm:"foreignKey:ReceiverID"`
	ReplyTo  *Message `gorm:"foreignKey:ReplyToID"`
}
