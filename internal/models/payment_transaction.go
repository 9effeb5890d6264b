package models

import "time"

type PaymentTransaction struct {
	BaseModel
	ProjectID   string        `gorm:"type:uuid;not null;index"`
	PayerID     string        `gorm:"type:uuid;not null;index"`
	PayeeID     string        `gorm:"type:uuid;not null;index"`
	Amount      float64       `gorm:"type:decimal(10,2);not null"`
	Currency    string        `gorm:"size:3;default:'EUR'"`
	Status      PaymentStatus `gorm:"type:varchar(20);default:'pending'"`
	IntentID    string        `gorm:"uniqueIndex;not null"` // gateway payment intent, also the idempotency key
	FailureCode string        `gorm:"size:50"`
	PaidAt      *time.Time

	// Relations
	Project *Project `gorm:"foreignKey:ProjectID"`
	Payer   *User    `gorm:"foreignKey:PayerID"`
	Payee   *User    `gorm:"foreignKey:PayeeID"`
}
