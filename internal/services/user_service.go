package services

import (
	"strings"

	"gigcampus_backend/internal/repositories"
	"gigcampus_backend/internal/services/dto"
	"gigcampus_backend/pkg/apperrors"

	"gorm.io/gorm"
)

type UserService interface {
	GetProfile(db *gorm.DB, userID string) (*dto.UserResponse, error)
	GetPublicProfile(db *gorm.DB, userID string) (*dto.PublicUserResponse, error)
	List(db *gorm.DB, query *dto.ListUsersQuery) (*dto.UserListResponse, error)
	UpdateProfile(db *gorm.DB, userID string, req *dto.UpdateUserRequest) (*dto.UserResponse, error)
	GetStats(db *gorm.DB, userID string) (*dto.UserStatsResponse, error)
}

type UserServiceImpl struct {
	userRepo    repositories.UserRepository
	projectRepo repositories.ProjectRepository
	bidRepo     repositories.BidRepository
	ratingRepo  repositories.RatingRepository
}

func NewUserService(
	userRepo repositories.UserRepository,
	projectRepo repositories.ProjectRepository,
	bidRepo repositories.BidRepository,
	ratingRepo repositories.RatingRepository,
) UserService {
	return &UserServiceImpl{
		userRepo:    userRepo,
		projectRepo: projectRepo,
		bidRepo:     bidRepo,
		ratingRepo:  ratingRepo,
	}
}

func (s *UserServiceImpl) GetProfile(db *gorm.DB, userID string) (*dto.UserResponse, error) {
	user, err := s.userRepo.FindByID(db, userID)
	if err != nil {
		if apperrors.Is(err, repositories.ErrUserNotFound) {
			return nil, apperrors.ErrNotFound(err)
		}
		return nil, apperrors.InternalError(err)
	}
	resp := buildUserResponse(user)
	return &resp, nil
}

func (s *UserServiceImpl) GetPublicProfile(db *gorm.DB, userID string) (*dto.PublicUserResponse, error) {
	user, err := s.userRepo.FindByID(db, userID)
	if err != nil {
		if apperrors.Is(err, repositories.ErrUserNotFound) {
			return nil, apperrors.ErrNotFound(err)
		}
		return nil, apperrors.InternalError(err)
	}
	return buildPublicUserResponse(user), nil
}

// List is the public directory: active users only, public profiles
// only, ranked by reputation.
func (s *UserServiceImpl) List(db *gorm.DB, query *dto.ListUsersQuery) (*dto.UserListResponse, error) {
	filter := repositories.UserFilter{
		Search:     query.Search,
		University: query.University,
		IsStudent:  query.IsStudent,
		Page:       query.Page,
		Limit:      query.Limit,
	}
	if query.Skills != "" {
		for _, skill := range strings.Split(query.Skills, ",") {
			if skill = strings.TrimSpace(skill); skill != "" {
				filter.Skills = append(filter.Skills, skill)
			}
		}
	}
	if filter.Page <= 0 {
		filter.Page = 1
	}
	if filter.Limit <= 0 || filter.Limit > 100 {
		filter.Limit = 20
	}

	users, total, err := s.userRepo.Search(db, filter)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	resp := &dto.UserListResponse{
		Users:      make([]dto.PublicUserResponse, 0, len(users)),
		Pagination: dto.NewPagination(filter.Page, filter.Limit, total),
	}
	for i := range users {
		resp.Users = append(resp.Users, *buildPublicUserResponse(&users[i]))
	}
	return resp, nil
}

// UpdateProfile applies only the caller-editable fields. Reputation,
// earnings and status are owned by their workflows.
func (s *UserServiceImpl) UpdateProfile(db *gorm.DB, userID string, req *dto.UpdateUserRequest) (*dto.UserResponse, error) {
	fields := map[string]interface{}{}
	if req.FirstName != nil {
		fields["first_name"] = *req.FirstName
	}
	if req.LastName != nil {
		fields["last_name"] = *req.LastName
	}
	if req.University != nil {
		fields["university"] = *req.University
	}
	if req.Course != nil {
		fields["course"] = *req.Course
	}
	if req.Year != nil {
		fields["year"] = *req.Year
	}
	if req.Bio != nil {
		fields["bio"] = *req.Bio
	}
	if req.ProfilePicture != nil {
		fields["profile_picture"] = *req.ProfilePicture
	}
	if req.Phone != nil {
		fields["phone"] = *req.Phone
	}
	if req.Skills != nil {
		skills, err := jsonFromStrings(req.Skills)
		if err != nil {
			return nil, apperrors.InternalError(err)
		}
		fields["skills"] = skills
	}

	if len(fields) > 0 {
		if err := s.userRepo.UpdateFields(db, userID, fields); err != nil {
			if apperrors.Is(err, repositories.ErrUserNotFound) {
				return nil, apperrors.ErrNotFound(err)
			}
			return nil, apperrors.InternalError(err)
		}
	}

	return s.GetProfile(db, userID)
}

func (s *UserServiceImpl) GetStats(db *gorm.DB, userID string) (*dto.UserStatsResponse, error) {
	user, err := s.userRepo.FindByID(db, userID)
	if err != nil {
		if apperrors.Is(err, repositories.ErrUserNotFound) {
			return nil, apperrors.ErrNotFound(err)
		}
		return nil, apperrors.InternalError(err)
	}

	projects, err := s.projectRepo.CountByPoster(db, userID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	bids, err := s.bidRepo.CountByUser(db, userID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	ratings, err := s.ratingRepo.CountByRatedUser(db, userID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	return &dto.UserStatsResponse{
		Reputation:      user.Reputation,
		TotalEarnings:   user.TotalEarnings,
		ProjectsPosted:  projects,
		BidsPlaced:      bids,
		RatingsReceived: ratings,
	}, nil
}
