package dto

import "time"

type CreateProjectRequest struct {
	Title        string    `json:"title" validate:"required,min=5,max=100"`
	Description  string    `json:"description" validate:"required,min=20,max=5000"`
	Category     string    `json:"category" validate:"required,is-category"`
	Budget       float64   `json:"budget" validate:"required,gt=0"`
	BudgetType   string    `json:"budgetType" validate:"omitempty,is-budget-type"`
	Deadline     time.Time `json:"deadline" validate:"required"`
	Location     string    `json:"location" validate:"max=100"`
	IsRemote     *bool     `json:"isRemote"`
	Requirements []string  `json:"requirements" validate:"omitempty,max=20,dive,max=500"`
	Attachments  []string  `json:"attachments" validate:"omitempty,max=10,dive,max=500"`
	Priority     string    `json:"priority" validate:"omitempty,is-priority"`
	IsUrgent     bool      `json:"isUrgent"`
}

// UpdateProjectRequest uses pointers so that absent fields stay untouched.
type UpdateProjectRequest struct {
	Title        *string    `json:"title" validate:"omitempty,min=5,max=100"`
	Description  *string    `json:"description" validate:"omitempty,min=20,max=5000"`
	Category     *string    `json:"category" validate:"omitempty,is-category"`
	Budget       *float64   `json:"budget" validate:"omitempty,gt=0"`
	BudgetType   *string    `json:"budgetType" validate:"omitempty,is-budget-type"`
	Deadline     *time.Time `json:"deadline"`
	Location     *string    `json:"location" validate:"omitempty,max=100"`
	IsRemote     *bool      `json:"isRemote"`
	Requirements []string   `json:"requirements" validate:"omitempty,max=20,dive,max=500"`
	Attachments  []string   `json:"attachments" validate:"omitempty,max=10,dive,max=500"`
	Priority     *string    `json:"priority" validate:"omitempty,is-priority"`
	IsUrgent     *bool      `json:"isUrgent"`
}

type ListProjectsQuery struct {
	Search    string   `form:"search"`
	Category  string   `form:"category" validate:"omitempty,is-category"`
	BudgetMin *float64 `form:"budgetMin" validate:"omitempty,gte=0"`
	BudgetMax *float64 `form:"budgetMax" validate:"omitempty,gte=0"`
	IsRemote  *bool    `form:"isRemote"`
	Status    string   `form:"status" validate:"omitempty,is-project-status"`
	UserID    string   `form:"userId"`
	SortBy    string   `form:"sortBy"`
	SortOrder string   `form:"sortOrder" validate:"omitempty,oneof=asc desc ASC DESC"`
	Page      int      `form:"page"`
	Limit     int      `form:"limit"`
}

type ProjectResponse struct {
	ID           string              `json:"id"`
	Title        string              `json:"title"`
	Description  string              `json:"description"`
	Category     string              `json:"category"`
	Budget       float64             `json:"budget"`
	BudgetType   string              `json:"budgetType"`
	Deadline     time.Time           `json:"deadline"`
	Location     string              `json:"location,omitempty"`
	IsRemote     bool                `json:"isRemote"`
	Requirements []string            `json:"requirements"`
	Attachments  []string            `json:"attachments"`
	PostedBy     string              `json:"postedBy"`
	AssignedTo   *string             `json:"assignedTo"`
	Status       string              `json:"status"`
	Priority     string              `json:"priority"`
	Views        int                 `json:"views"`
	IsUrgent     bool                `json:"isUrgent"`
	AcceptedAt   *time.Time          `json:"acceptedAt,omitempty"`
	CompletedAt  *time.Time          `json:"completedAt,omitempty"`
	CreatedAt    time.Time           `json:"createdAt"`
	UpdatedAt    time.Time           `json:"updatedAt"`
	Poster       *PublicUserResponse `json:"poster,omitempty"`
	Bids         []BidResponse       `json:"bids,omitempty"`
	BidCount     int                 `json:"bidCount"`
}

type ProjectListResponse struct {
	Projects   []ProjectResponse `json:"projects"`
	Pagination Pagination        `json:"pagination"`
}
