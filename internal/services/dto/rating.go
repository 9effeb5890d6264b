package dto

import "time"

type CreateRatingRequest struct {
	ProjectID   string         `json:"projectId" validate:"required,uuid"`
	RatedUserID string         `json:"ratedUserId" validate:"required,uuid"`
	Score       int            `json:"score" validate:"required,min=1,max=5"`
	Comment     string         `json:"comment" validate:"max=2000"`
	RatingType  string         `json:"ratingType" validate:"required,is-rating-type"`
	Criteria    map[string]int `json:"criteria" validate:"omitempty,max=10,dive,min=1,max=5"`
}

type UpdateRatingRequest struct {
	Score    *int           `json:"score" validate:"omitempty,min=1,max=5"`
	Comment  *string        `json:"comment" validate:"omitempty,max=2000"`
	Criteria map[string]int `json:"criteria" validate:"omitempty,max=10,dive,min=1,max=5"`
}

type RatingResponse struct {
	ID           string              `json:"id"`
	ProjectID    string              `json:"projectId"`
	RaterUserID  string              `json:"raterUserId"`
	RatedUserID  string              `json:"ratedUserId"`
	Score        int                 `json:"score"`
	Comment      string              `json:"comment,omitempty"`
	RatingType   string              `json:"ratingType"`
	Criteria     map[string]int      `json:"criteria,omitempty"`
	HelpfulVotes int                 `json:"helpfulVotes"`
	CreatedAt    time.Time           `json:"createdAt"`
	UpdatedAt    time.Time           `json:"updatedAt"`
	Rater        *PublicUserResponse `json:"rater,omitempty"`
}

type RatingStatsResponse struct {
	Average      float64       `json:"average"`
	Count        int64         `json:"count"`
	Distribution map[int]int64 `json:"distribution"`
}

// UserRatingsResponse is the public rating page of a user, split by
// rating direction.
type UserRatingsResponse struct {
	Ratings      []RatingResponse    `json:"ratings"`
	AsFreelancer RatingStatsResponse `json:"asFreelancer"`
	AsClient     RatingStatsResponse `json:"asClient"`
	Pagination   Pagination          `json:"pagination"`
}

type RatingListResponse struct {
	Ratings    []RatingResponse `json:"ratings"`
	Average    float64          `json:"average"`
	Count      int64            `json:"count"`
	Pagination Pagination       `json:"pagination"`
}
