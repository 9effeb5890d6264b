package dto

import "time"

// UserResponse is the full profile returned to the account owner.
type UserResponse struct {
	ID             string    `json:"id"`
	Username       string    `json:"username"`
	Email          string    `json:"email"`
	FirstName      string    `json:"firstName"`
	LastName       string    `json:"lastName"`
	IsStudent      bool      `json:"isStudent"`
	University     string    `json:"university,omitempty"`
	Course         string    `json:"course,omitempty"`
	Year           *int      `json:"year,omitempty"`
	Bio            string    `json:"bio,omitempty"`
	ProfilePicture string    `json:"profilePicture,omitempty"`
	Phone          string    `json:"phone,omitempty"`
	Skills         []string  `json:"skills"`
	Reputation     float64   `json:"reputation"`
	TotalEarnings  float64   `json:"totalEarnings"`
	IsVerified     bool      `json:"isVerified"`
	Status         string    `json:"status"`
	CreatedAt      time.Time `json:"createdAt"`
}

// PublicUserResponse is the profile visible to other users.
type PublicUserResponse struct {
	ID             string   `json:"id"`
	Username       string   `json:"username"`
	FirstName      string   `json:"firstName"`
	LastName       string   `json:"lastName"`
	IsStudent      bool     `json:"isStudent"`
	University     string   `json:"university,omitempty"`
	Bio            string   `json:"bio,omitempty"`
	ProfilePicture string   `json:"profilePicture,omitempty"`
	Skills         []string `json:"skills"`
	Reputation     float64  `json:"reputation"`
	IsVerified     bool     `json:"isVerified"`
}

// ListUsersQuery filters the public user directory. Skills is a
// comma-separated list matching users holding any of them.
type ListUsersQuery struct {
	Search     string `form:"search"`
	Skills     string `form:"skills"`
	University string `form:"university"`
	IsStudent  *bool  `form:"isStudent"`
	Page       int    `form:"page"`
	Limit      int    `form:"limit"`
}

type UserListResponse struct {
	Users      []PublicUserResponse `json:"users"`
	Pagination Pagination           `json:"pagination"`
}

// UserStatsResponse backs the account dashboard.
type UserStatsResponse struct {
	Reputation      float64 `json:"reputation"`
	TotalEarnings   float64 `json:"totalEarnings"`
	ProjectsPosted  int64   `json:"projectsPosted"`
	BidsPlaced      int64   `json:"bidsPlaced"`
	RatingsReceived int64   `json:"ratingsReceived"`
}

type UpdateUserRequest struct {
	FirstName      *string  `json:"firstName" validate:"omitempty,max=50"`
	LastName       *string  `json:"lastName" validate:"omitempty,max=50"`
	University     *string  `json:"university" validate:"omitempty,max=100"`
	Course         *string  `json:"course" validate:"omitempty,max=100"`
	Year           *int     `json:"year" validate:"omitempty,min=1,max=6"`
	Bio            *string  `json:"bio" validate:"omitempty,max=2000"`
	ProfilePicture *string  `json:"profilePicture" validate:"omitempty,max=255,url"`
	Phone          *string  `json:"phone" validate:"omitempty,max=15"`
	Skills         []string `json:"skills" validate:"omitempty,max=20,dive,max=50"`
}
