package dto

import "time"

type CreateBidRequest struct {
	ProjectID    string  `json:"projectId" validate:"required,uuid"`
	Amount       float64 `json:"amount" validate:"required,gt=0"`
	Message      string  `json:"message" validate:"required,min=10,max=2000"`
	DeliveryTime int     `json:"deliveryTime" validate:"required,min=1,max=365"`
}

type UpdateBidRequest struct {
	Amount       *float64 `json:"amount" validate:"omitempty,gt=0"`
	Message      *string  `json:"message" validate:"omitempty,min=10,max=2000"`
	DeliveryTime *int     `json:"deliveryTime" validate:"omitempty,min=1,max=365"`
}

type BidResponse struct {
	ID           string              `json:"id"`
	ProjectID    string              `json:"projectId"`
	UserID       string              `json:"userId"`
	Amount       float64             `json:"amount"`
	Message      string              `json:"message"`
	DeliveryTime int                 `json:"deliveryTime"`
	Status       string              `json:"status"`
	IsSelected   bool                `json:"isSelected"`
	AcceptedAt   *time.Time          `json:"acceptedAt,omitempty"`
	RejectedAt   *time.Time          `json:"rejectedAt,omitempty"`
	CreatedAt    time.Time           `json:"createdAt"`
	Bidder       *PublicUserResponse `json:"bidder,omitempty"`
	Project      *ProjectResponse    `json:"project,omitempty"`
}

type BidListResponse struct {
	Bids       []BidResponse `json:"bids"`
	Pagination Pagination    `json:"pagination"`
}
