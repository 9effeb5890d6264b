package services

import (
	"time"

	"gigcampus_backend/internal/auth"
	"gigcampus_backend/internal/email"
	"gigcampus_backend/internal/logger"
	"gigcampus_backend/internal/models"
	"gigcampus_backend/internal/repositories"
	"gigcampus_backend/internal/services/dto"
	"gigcampus_backend/pkg/apperrors"

	"gorm.io/gorm"
)

type AuthService interface {
	Register(db *gorm.DB, req *dto.RegisterRequest) (*dto.AuthResponse, error)
	Login(db *gorm.DB, req *dto.LoginRequest) (*dto.AuthResponse, error)
	ChangePassword(db *gorm.DB, userID string, req *dto.ChangePasswordRequest) error
}

type AuthServiceImpl struct {
	userRepo      repositories.UserRepository
	jwt           *auth.JWTManager
	emailProvider email.Provider
}

func NewAuthService(userRepo repositories.UserRepository, jwt *auth.JWTManager, emailProvider email.Provider) AuthService {
	return &AuthServiceImpl{
		userRepo:      userRepo,
		jwt:           jwt,
		emailProvider: emailProvider,
	}
}

func (s *AuthServiceImpl) Register(db *gorm.DB, req *dto.RegisterRequest) (*dto.AuthResponse, error) {
	if err := auth.ValidatePassword(req.Password); err != nil {
		return nil, apperrors.ErrWeakPassword.WithDetails(err.Error())
	}

	if exists, err := s.userRepo.ExistsByEmail(db, req.Email); err != nil {
		return nil, apperrors.InternalError(err)
	} else if exists {
		return nil, apperrors.ErrEmailAlreadyExists
	}

	if exists, err := s.userRepo.ExistsByUsername(db, req.Username); err != nil {
		return nil, apperrors.InternalError(err)
	} else if exists {
		return nil, apperrors.ErrUsernameAlreadyExists
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	skills, err := jsonFromStrings(req.Skills)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	isStudent := true
	if req.IsStudent != nil {
		isStudent = *req.IsStudent
	}

	user := &models.User{
		Username:     req.Username,
		Email:        req.Email,
		PasswordHash: hash,
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		IsStudent:    isStudent,
		University:   req.University,
		Course:       req.Course,
		Year:         req.Year,
		Phone:        req.Phone,
		Skills:       skills,
		Status:       models.UserStatusActive,
	}

	if err := s.userRepo.Create(db, user); err != nil {
		if apperrors.Is(err, repositories.ErrUserAlreadyExists) {
			return nil, apperrors.ErrEmailAlreadyExists
		}
		return nil, apperrors.InternalError(err)
	}

	go func(to, username string) {
		if err := s.emailProvider.SendWelcome(to, username); err != nil {
			logger.WithError(err).Warn("failed to send welcome email", "email", to)
		}
	}(user.Email, user.Username)

	token, err := s.jwt.Issue(user.ID, "user")
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	return &dto.AuthResponse{Token: token, User: buildUserResponse(user)}, nil
}

func (s *AuthServiceImpl) Login(db *gorm.DB, req *dto.LoginRequest) (*dto.AuthResponse, error) {
	user, err := s.userRepo.FindByEmail(db, req.Email)
	if err != nil {
		if apperrors.Is(err, repositories.ErrUserNotFound) {
			return nil, apperrors.ErrInvalidCredentials
		}
		return nil, apperrors.InternalError(err)
	}

	if !auth.CheckPasswordHash(req.Password, user.PasswordHash) {
		return nil, apperrors.ErrInvalidCredentials
	}

	if user.Status != models.UserStatusActive {
		return nil, apperrors.ErrAccountInactive
	}

	now := time.Now()
	if err := s.userRepo.UpdateFields(db, user.ID, map[string]interface{}{"last_login_at": now}); err != nil {
		return nil, apperrors.InternalError(err)
	}
	user.LastLoginAt = &now

	token, err := s.jwt.Issue(user.ID, "user")
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	return &dto.AuthResponse{Token: token, User: buildUserResponse(user)}, nil
}

func (s *AuthServiceImpl) ChangePassword(db *gorm.DB, userID string, req *dto.ChangePasswordRequest) error {
	user, err := s.userRepo.FindByID(db, userID)
	if err != nil {
		if apperrors.Is(err, repositories.ErrUserNotFound) {
			return apperrors.ErrNotFound(err)
		}
		return apperrors.InternalError(err)
	}

	if !auth.CheckPasswordHash(req.CurrentPassword, user.PasswordHash) {
		return apperrors.ErrInvalidCredentials
	}

	if err := auth.ValidatePassword(req.NewPassword); err != nil {
		return apperrors.ErrWeakPassword.WithDetails(err.Error())
	}

	hash, err := auth.HashPassword(req.NewPassword)
	if err != nil {
		return apperrors.InternalError(err)
	}

	if err := s.userRepo.UpdateFields(db, userID, map[string]interface{}{"password_hash": hash}); err != nil {
		return apperrors.InternalError(err)
	}
	return nil
}
