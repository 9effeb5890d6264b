package services

import (
	"gigcampus_backend/internal/auth"
	"gigcampus_backend/internal/email"
	"gigcampus_backend/internal/payments"
	"gigcampus_backend/internal/repositories"
)

// ServiceContainer holds every application service.
type ServiceContainer struct {
	AuthService    AuthService
	UserService    UserService
	ProjectService ProjectService
	BidService     BidService
	RatingService  RatingService
	MessageService MessageService
	PaymentService PaymentService
}

// NewServiceContainer wires the repositories and collaborators into
// the service layer.
func NewServiceContainer(
	jwt *auth.JWTManager,
	emailProvider email.Provider,
	gateway payments.Gateway,
	currency string,
) *ServiceContainer {
	userRepo := repositories.NewUserRepository()
	projectRepo := repositories.NewProjectRepository()
	bidRepo := repositories.NewBidRepository()
	ratingRepo := repositories.NewRatingRepository()
	messageRepo := repositories.NewMessageRepository()
	paymentRepo := repositories.NewPaymentRepository()

	return &ServiceContainer{
		AuthService:    NewAuthService(userRepo, jwt, emailProvider),
		UserService:    NewUserService(userRepo, projectRepo, bidRepo, ratingRepo),
		ProjectService: NewProjectService(projectRepo, bidRepo, userRepo, emailProvider),
		BidService:     NewBidService(bidRepo, projectRepo),
		RatingService:  NewRatingService(ratingRepo, projectRepo, userRepo),
		MessageService: NewMessageService(messageRepo),
		PaymentService: NewPaymentService(paymentRepo, projectRepo, userRepo, gateway, emailProvider, currency),
	}
}
