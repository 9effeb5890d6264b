package models

import "time"

type Bid struct {
	BaseModel
	ProjectID    string    `gorm:"type:uuid;not null;uniqueIndex:idx_bids_user_project;index"`
	UserID       string    `gorm:"type:uuid;not null;uniqueIndex:idx_bids_user_project"`
	Amount       float64   `gorm:"type:decimal(10,2);not null"`
	Message      string    `gorm:"type:text;not null"`
	DeliveryTime int       `gorm:"not null"` // days
	Status       BidStatus `gorm:"type:varchar(20);default:'pending';index"`
	IsSelected   bool      `gorm:"default:false"`
	AcceptedAt   *time.Time
	RejectedAt   *time.Time

	// Relations
	Project *Project `gorm:"foreignKey:ProjectID"`
	Bidder  *User    `gorm:"foreignKey:UserID"`
}
