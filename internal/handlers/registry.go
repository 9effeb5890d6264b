package handlers

import (
	"gigcampus_backend/internal/services"
	"gigcampus_backend/internal/validator"
)

// AppHandlers holds every HTTP handler of the application.
type AppHandlers struct {
	AuthHandler    *AuthHandler
	UserHandler    *UserHandler
	ProjectHandler *ProjectHandler
	BidHandler     *BidHandler
	RatingHandler  *RatingHandler
	MessageHandler *MessageHandler
	PaymentHandler *PaymentHandler
	HealthHandler  *HealthHandler
}

func NewAppHandlers(sc *services.ServiceContainer, v *validator.Validator) *AppHandlers {
	base := NewBaseHandler(v)

	return &AppHandlers{
		AuthHandler:    NewAuthHandler(base, sc.AuthService),
		UserHandler:    NewUserHandler(base, sc.UserService),
		ProjectHandler: NewProjectHandler(base, sc.ProjectService),
		BidHandler:     NewBidHandler(base, sc.BidService),
		RatingHandler:  NewRatingHandler(base, sc.RatingService),
		MessageHandler: NewMessageHandler(base, sc.MessageService),
		PaymentHandler: NewPaymentHandler(base, sc.PaymentService),
		HealthHandler:  NewHealthHandler(base),
	}
}
