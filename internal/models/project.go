package models

import (
	"time"

	"gorm.io/datatypes"
)

type Project struct {
	BaseModel
	Title        string          `gorm:"size:100;not null"`
	Description  string          `gorm:"type:text;not null"`
	Category     ProjectCategory `gorm:"type:varchar(30);not null;index"`
	Budget       float64         `gorm:"type:decimal(10,2);not null"`
	BudgetType   BudgetType      `gorm:"type:varchar(10);default:'fixed'"`
	Deadline     time.Time       `gorm:"not null"`
	Location     string          `gorm:"size:100"`
	IsRemote     bool            `gorm:"default:true"`
	Requirements datatypes.JSON  `gorm:"type:jsonb"`
	Attachments  datatypes.JSON  `gorm:"type:jsonb"`
	PostedBy     string          `gorm:"type:uuid;not null;index"`
	AssignedTo   *string         `gorm:"type:uuid;index"`
	Status       ProjectStatus   `gorm:"type:varchar(20);default:'open';index"`
	Priority     ProjectPriority `gorm:"type:varchar(10);default:'medium'"`
	Views        int             `gorm:"default:0"`
	IsUrgent     bool            `gorm:"default:false"`
	AcceptedAt   *time.Time
	CompletedAt  *time.Time

	// Relations
	Poster   *User `gorm:"foreignKey:PostedBy"`
	Assignee *User `gorm:"foreignKey:AssignedTo"`
	Bids     []Bid `gorm:"foreignKey:ProjectID"`
}

// CanTransitionTo reports whether the project status may move to target.
func (p *Project) CanTransitionTo(target ProjectStatus) bool {
	allowed, ok := projectTransitions[p.Status]
	if !ok {
		return false
	}
	for _, s := range allowed {
		if s == target {
			return true
		}
	}
	return false
}

var projectTransitions = map[ProjectStatus][]ProjectStatus{
	ProjectStatusOpen:       {ProjectStatusInProgress, ProjectStatusCancelled},
	ProjectStatusInProgress: {ProjectStatusCompleted, ProjectStatusDisputed, ProjectStatusOpen},
	ProjectStatusDisputed:   {ProjectStatusCompleted, ProjectStatusCancelled},
}
