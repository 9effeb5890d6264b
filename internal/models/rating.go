package models

import "gorm.io/datatypes"

type Rating struct {
	BaseModel
	ProjectID    string         `gorm:"type:uuid;not null;uniqueIndex:idx_ratings_project_rater_type"`
	RaterUserID  string         `gorm:"type:uuid;not null;uniqueIndex:idx_ratings_project_rater_type"`
	RatedUserID  string         `gorm:"type:uuid;not null;index"`
	Score        int            `gorm:"not null"` // 1..5
	Comment      string         `gorm:"type:text"`
	RatingType   RatingType     `gorm:"type:varchar(20);not null;uniqueIndex:idx_ratings_project_rater_type"`
	Criteria     datatypes.JSON `gorm:"type:jsonb"`
	HelpfulVotes int            `gorm:"default:0"`

	// Relations
	Project   *Project `gorm:"foreignKey:ProjectID"`
	Rater     *User    `gorm:"foreignKey:RaterUserID"`
	RatedUser *User    `gorm:"foreignKey:RatedUserID"`
}

// RatingVote records a helpful vote so each user can vote once per rating.
type RatingVote struct {
	BaseModel
	RatingID string `gorm:"type:uuid;not null;uniqueIndex:idx_rating_votes_rating_voter"`
	VoterID  string `gorm:"type:uuid;not null;uniqueIndex:idx_rating_votes_rating_voter"`
}
