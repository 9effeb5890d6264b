package models

import (
	"time"

	"gorm.io/datatypes"
)

type User struct {
	BaseModel
	Username       string `gorm:"size:50;uniqueIndex;not null"`
	Email          string `gorm:"size:255;uniqueIndex;not null"`
	PasswordHash   string `gorm:"not null"`
	FirstName      string `gorm:"size:50"`
	LastName       string `gorm:"size:50"`
	IsStudent      bool   `gorm:"default:true"`
	University     string `gorm:"size:100"`
	Course         string `gorm:"size:100"`
	Year           *int
	Bio            string         `gorm:"type:text"`
	ProfilePicture string         `gorm:"size:255"`
	Phone          string         `gorm:"size:15"`
	Skills         datatypes.JSON `gorm:"type:jsonb"`
	Reputation     float64        `gorm:"default:0"` // mean of received rating scores
	TotalEarnings  float64        `gorm:"type:decimal(10,2);default:0"`
	IsVerified     bool           `gorm:"default:false"`
	Status         UserStatus     `gorm:"type:varchar(20);default:'active'"`
	LastLoginAt    *time.Time

	// Relations
	PostedProjects []Project `gorm:"foreignKey:PostedBy"`
	Bids           []Bid     `gorm:"foreignKey:UserID"`
}
