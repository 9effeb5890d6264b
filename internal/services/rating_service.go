package services

import (
	"gigcampus_backend/internal/models"
	"gigcampus_backend/internal/repositories"
	"gigcampus_backend/internal/services/dto"
	"gigcampus_backend/pkg/apperrors"

	"gorm.io/gorm"
)

type RatingService interface {
	Create(db *gorm.DB, userID string, req *dto.CreateRatingRequest) (*dto.RatingResponse, error)
	Update(db *gorm.DB, userID, ratingID string, req *dto.UpdateRatingRequest) (*dto.RatingResponse, error)
	GetForUser(db *gorm.DB, ratedUserID string, page, limit int) (*dto.UserRatingsResponse, error)
	GetForProject(db *gorm.DB, projectID string) ([]dto.RatingResponse, error)
	GetMine(db *gorm.DB, userID string, page, limit int) (*dto.RatingListResponse, error)
	VoteHelpful(db *gorm.DB, userID, ratingID string) (*dto.RatingResponse, error)
}

type RatingServiceImpl struct {
	ratingRepo  repositories.RatingRepository
	projectRepo repositories.ProjectRepository
	userRepo    repositories.UserRepository
}

func NewRatingService(
	ratingRepo repositories.RatingRepository,
	projectRepo repositories.ProjectRepository,
	userRepo repositories.UserRepository,
) RatingService {
	return &RatingServiceImpl{
		ratingRepo:  ratingRepo,
		projectRepo: projectRepo,
		userRepo:    userRepo,
	}
}

// Create validates the rating against the project roles: the client
// direction must come from the owner and target the assignee, and the
// freelancer direction the other way around. The reputation recompute
// happens inside the same transaction as the insert.
func (s *RatingServiceImpl) Create(db *gorm.DB, userID string, req *dto.CreateRatingRequest) (*dto.RatingResponse, error) {
	project, err := s.projectRepo.FindByID(db, req.ProjectID)
	if err != nil {
		if apperrors.Is(err, repositories.ErrProjectNotFound) {
			return nil, apperrors.ErrNotFound(err)
		}
		return nil, apperrors.InternalError(err)
	}

	if project.Status != models.ProjectStatusCompleted {
		return nil, apperrors.ErrProjectNotCompleted
	}
	if project.AssignedTo == nil {
		return nil, apperrors.ErrProjectNotCompleted
	}

	ratingType := models.RatingType(req.RatingType)
	switch ratingType {
	case models.RatingTypeClientToFreelancer:
		if userID != project.PostedBy {
			return nil, apperrors.ErrInvalidRatingType
		}
		if req.RatedUserID != *project.AssignedTo {
			return nil, apperrors.ErrWrongRatedUser
		}
	case models.RatingTypeFreelancerToClient:
		if userID != *project.AssignedTo {
			return nil, apperrors.ErrInvalidRatingType
		}
		if req.RatedUserID != project.PostedBy {
			return nil, apperrors.ErrWrongRatedUser
		}
	default:
		return nil, apperrors.ErrInvalidRatingType
	}

	if _, err := s.ratingRepo.FindByProjectRaterType(db, req.ProjectID, userID, ratingType); err == nil {
		return nil, apperrors.ErrRatingAlreadyExists
	} else if !apperrors.Is(err, repositories.ErrRatingNotFound) {
		return nil, apperrors.InternalError(err)
	}

	criteria, err := jsonFromCriteria(req.Criteria)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	rating := &models.Rating{
		ProjectID:   req.ProjectID,
		RaterUserID: userID,
		RatedUserID: req.RatedUserID,
		Score:       req.Score,
		Comment:     req.Comment,
		RatingType:  ratingType,
		Criteria:    criteria,
	}

	err = db.Transaction(func(tx *gorm.DB) error {
		if err := s.ratingRepo.Create(tx, rating); err != nil {
			if apperrors.Is(err, repositories.ErrDuplicateRating) {
				return apperrors.ErrRatingAlreadyExists
			}
			return apperrors.InternalError(err)
		}
		if _, err := s.ratingRepo.RecomputeReputation(tx, rating.RatedUserID); err != nil {
			return apperrors.InternalError(err)
		}
		return nil
	})
	if err != nil {
		if appErr, ok := apperrors.AsAppError(err); ok {
			return nil, appErr
		}
		return nil, apperrors.InternalError(err)
	}

	resp := buildRatingResponse(rating)
	return &resp, nil
}

func (s *RatingServiceImpl) Update(db *gorm.DB, userID, ratingID string, req *dto.UpdateRatingRequest) (*dto.RatingResponse, error) {
	rating, err := s.ratingRepo.FindByID(db, ratingID)
	if err != nil {
		if apperrors.Is(err, repositories.ErrRatingNotFound) {
			return nil, apperrors.ErrNotFound(err)
		}
		return nil, apperrors.InternalError(err)
	}

	if rating.RaterUserID != userID {
		return nil, apperrors.ErrInsufficientPermissions
	}

	if req.Score != nil {
		rating.Score = *req.Score
	}
	if req.Comment != nil {
		rating.Comment = *req.Comment
	}
	if req.Criteria != nil {
		criteria, err := jsonFromCriteria(req.Criteria)
		if err != nil {
			return nil, apperrors.InternalError(err)
		}
		rating.Criteria = criteria
	}

	err = db.Transaction(func(tx *gorm.DB) error {
		if err := s.ratingRepo.Update(tx, rating); err != nil {
			return apperrors.InternalError(err)
		}
		if _, err := s.ratingRepo.RecomputeReputation(tx, rating.RatedUserID); err != nil {
			return apperrors.InternalError(err)
		}
		return nil
	})
	if err != nil {
		if appErr, ok := apperrors.AsAppError(err); ok {
			return nil, appErr
		}
		return nil, apperrors.InternalError(err)
	}

	resp := buildRatingResponse(rating)
	return &resp, nil
}

func (s *RatingServiceImpl) GetForUser(db *gorm.DB, ratedUserID string, page, limit int) (*dto.UserRatingsResponse, error) {
	if _, err := s.userRepo.FindByID(db, ratedUserID); err != nil {
		if apperrors.Is(err, repositories.ErrUserNotFound) {
			return nil, apperrors.ErrNotFound(err)
		}
		return nil, apperrors.InternalError(err)
	}

	if page <= 0 {
		page = 1
	}
	if limit <= 0 || limit > 100 {
		limit = 20
	}

	ratings, total, err := s.ratingRepo.FindByRatedUser(db, ratedUserID, page, limit)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	asFreelancer, err := s.ratingRepo.StatsForUser(db, ratedUserID, models.RatingTypeClientToFreelancer)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	asClient, err := s.ratingRepo.StatsForUser(db, ratedUserID, models.RatingTypeFreelancerToClient)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	resp := &dto.UserRatingsResponse{
		Ratings:      make([]dto.RatingResponse, 0, len(ratings)),
		AsFreelancer: buildRatingStats(asFreelancer),
		AsClient:     buildRatingStats(asClient),
		Pagination:   dto.NewPagination(page, limit, total),
	}
	for i := range ratings {
		resp.Ratings = append(resp.Ratings, buildRatingResponse(&ratings[i]))
	}
	return resp, nil
}

func buildRatingStats(stats *repositories.RatingStats) dto.RatingStatsResponse {
	return dto.RatingStatsResponse{
		Average:      stats.Average,
		Count:        stats.Count,
		Distribution: stats.Distribution,
	}
}

func (s *RatingServiceImpl) GetForProject(db *gorm.DB, projectID string) ([]dto.RatingResponse, error) {
	if _, err := s.projectRepo.FindByID(db, projectID); err != nil {
		if apperrors.Is(err, repositories.ErrProjectNotFound) {
			return nil, apperrors.ErrNotFound(err)
		}
		return nil, apperrors.InternalError(err)
	}

	ratings, err := s.ratingRepo.FindByProject(db, projectID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	resp := make([]dto.RatingResponse, 0, len(ratings))
	for i := range ratings {
		resp = append(resp, buildRatingResponse(&ratings[i]))
	}
	return resp, nil
}

func (s *RatingServiceImpl) GetMine(db *gorm.DB, userID string, page, limit int) (*dto.RatingListResponse, error) {
	if page <= 0 {
		page = 1
	}
	if limit <= 0 || limit > 100 {
		limit = 20
	}

	ratings, total, err := s.ratingRepo.FindByRater(db, userID, page, limit)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	resp := &dto.RatingListResponse{
		Ratings:    make([]dto.RatingResponse, 0, len(ratings)),
		Count:      total,
		Pagination: dto.NewPagination(page, limit, total),
	}
	for i := range ratings {
		resp.Ratings = append(resp.Ratings, buildRatingResponse(&ratings[i]))
	}
	return resp, nil
}

// VoteHelpful records one helpful vote per user per rating. The unique
// index on the vote row backs the pre-check under concurrency.
func (s *RatingServiceImpl) VoteHelpful(db *gorm.DB, userID, ratingID string) (*dto.RatingResponse, error) {
	rating, err := s.ratingRepo.FindByID(db, ratingID)
	if err != nil {
		if apperrors.Is(err, repositories.ErrRatingNotFound) {
			return nil, apperrors.ErrNotFound(err)
		}
		return nil, apperrors.InternalError(err)
	}

	if rating.RaterUserID == userID {
		return nil, apperrors.ErrCannotVoteOwnRating
	}

	voted, err := s.ratingRepo.HasVoted(db, ratingID, userID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	if voted {
		return nil, apperrors.ErrAlreadyVoted
	}

	err = db.Transaction(func(tx *gorm.DB) error {
		if err := s.ratingRepo.CreateVote(tx, &models.RatingVote{RatingID: ratingID, VoterID: userID}); err != nil {
			if apperrors.Is(err, repositories.ErrDuplicateVote) {
				return apperrors.ErrAlreadyVoted
			}
			return apperrors.InternalError(err)
		}
		if err := s.ratingRepo.IncrementHelpfulVotes(tx, ratingID); err != nil {
			return apperrors.InternalError(err)
		}
		return nil
	})
	if err != nil {
		if appErr, ok := apperrors.AsAppError(err); ok {
			return nil, appErr
		}
		return nil, apperrors.InternalError(err)
	}

	rating.HelpfulVotes++
	resp := buildRatingResponse(rating)
	return &resp, nil
}
