package services

import (
	"time"

	"gigcampus_backend/internal/email"
	"gigcampus_backend/internal/logger"
	"gigcampus_backend/internal/models"
	"gigcampus_backend/internal/repositories"
	"gigcampus_backend/internal/services/dto"
	"gigcampus_backend/pkg/apperrors"

	"gorm.io/gorm"
)

type ProjectService interface {
	Create(db *gorm.DB, userID string, req *dto.CreateProjectRequest) (*dto.ProjectResponse, error)
	Get(db *gorm.DB, projectID, requesterID string) (*dto.ProjectResponse, error)
	List(db *gorm.DB, query *dto.ListProjectsQuery, requesterID string) (*dto.ProjectListResponse, error)
	Update(db *gorm.DB, userID, projectID string, req *dto.UpdateProjectRequest) (*dto.ProjectResponse, error)
	Delete(db *gorm.DB, userID, projectID string) error
	AcceptBid(db *gorm.DB, userID, projectID, bidID string) (*dto.ProjectResponse, error)
	Complete(db *gorm.DB, userID, projectID string) (*dto.ProjectResponse, error)
}

type ProjectServiceImpl struct {
	projectRepo   repositories.ProjectRepository
	bidRepo       repositories.BidRepository
	userRepo      repositories.UserRepository
	emailProvider email.Provider
}

func NewProjectService(
	projectRepo repositories.ProjectRepository,
	bidRepo repositories.BidRepository,
	userRepo repositories.UserRepository,
	emailProvider email.Provider,
) ProjectService {
	return &ProjectServiceImpl{
		projectRepo:   projectRepo,
		bidRepo:       bidRepo,
		userRepo:      userRepo,
		emailProvider: emailProvider,
	}
}

func (s *ProjectServiceImpl) Create(db *gorm.DB, userID string, req *dto.CreateProjectRequest) (*dto.ProjectResponse, error) {
	if !req.Deadline.After(time.Now()) {
		return nil, apperrors.NewBadRequestError("Deadline must be in the future")
	}

	requirements, err := jsonFromStrings(req.Requirements)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	attachments, err := jsonFromStrings(req.Attachments)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	budgetType := models.BudgetTypeFixed
	if req.BudgetType != "" {
		budgetType = models.BudgetType(req.BudgetType)
	}
	priority := models.PriorityMedium
	if req.Priority != "" {
		priority = models.ProjectPriority(req.Priority)
	}
	isRemote := true
	if req.IsRemote != nil {
		isRemote = *req.IsRemote
	}

	project := &models.Project{
		Title:        req.Title,
		Description:  req.Description,
		Category:     models.ProjectCategory(req.Category),
		Budget:       req.Budget,
		BudgetType:   budgetType,
		Deadline:     req.Deadline,
		Location:     req.Location,
		IsRemote:     isRemote,
		Requirements: requirements,
		Attachments:  attachments,
		PostedBy:     userID,
		Status:       models.ProjectStatusOpen,
		Priority:     priority,
		IsUrgent:     req.IsUrgent,
	}

	if err := s.projectRepo.Create(db, project); err != nil {
		return nil, apperrors.InternalError(err)
	}

	return s.Get(db, project.ID, userID)
}

func (s *ProjectServiceImpl) Get(db *gorm.DB, projectID, requesterID string) (*dto.ProjectResponse, error) {
	project, err := s.projectRepo.FindByIDWithDetails(db, projectID)
	if err != nil {
		if apperrors.Is(err, repositories.ErrProjectNotFound) {
			return nil, apperrors.ErrNotFound(err)
		}
		return nil, apperrors.InternalError(err)
	}

	if requesterID != project.PostedBy {
		if err := s.projectRepo.IncrementViews(db, projectID); err != nil {
			logger.WithError(err).Warn("failed to increment project views", "project_id", projectID)
		} else {
			project.Views++
		}
	}

	resp := buildProjectResponse(project)
	return &resp, nil
}

func (s *ProjectServiceImpl) List(db *gorm.DB, query *dto.ListProjectsQuery, requesterID string) (*dto.ProjectListResponse, error) {
	filter := repositories.ProjectFilter{
		Search:    query.Search,
		Category:  models.ProjectCategory(query.Category),
		BudgetMin: query.BudgetMin,
		BudgetMax: query.BudgetMax,
		IsRemote:  query.IsRemote,
		Status:    models.ProjectStatus(query.Status),
		SortBy:    query.SortBy,
		SortOrder: query.SortOrder,
		Page:      query.Page,
		Limit:     query.Limit,
	}

	switch query.UserID {
	case "":
	case "me":
		if requesterID == "" {
			return nil, apperrors.NewUnauthorizedError("Authentication required to view your projects")
		}
		filter.PostedBy = requesterID
	default:
		filter.PostedBy = query.UserID
	}

	// The public listing defaults to open projects.
	if filter.Status == "" && filter.PostedBy == "" {
		filter.Status = models.ProjectStatusOpen
	}
	if filter.Page <= 0 {
		filter.Page = 1
	}
	if filter.Limit <= 0 || filter.Limit > 100 {
		filter.Limit = 20
	}

	projects, total, err := s.projectRepo.List(db, filter)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	resp := &dto.ProjectListResponse{
		Projects:   make([]dto.ProjectResponse, 0, len(projects)),
		Pagination: dto.NewPagination(filter.Page, filter.Limit, total),
	}
	for i := range projects {
		resp.Projects = append(resp.Projects, buildProjectResponse(&projects[i]))
	}
	return resp, nil
}

func (s *ProjectServiceImpl) Update(db *gorm.DB, userID, projectID string, req *dto.UpdateProjectRequest) (*dto.ProjectResponse, error) {
	project, err := s.projectRepo.FindByID(db, projectID)
	if err != nil {
		if apperrors.Is(err, repositories.ErrProjectNotFound) {
			return nil, apperrors.ErrNotFound(err)
		}
		return nil, apperrors.InternalError(err)
	}

	if project.PostedBy != userID {
		return nil, apperrors.ErrInsufficientPermissions
	}
	if project.Status != models.ProjectStatusOpen {
		return nil, apperrors.ErrInvalidProjectStatus
	}

	fields := map[string]interface{}{}
	if req.Title != nil {
		fields["title"] = *req.Title
	}
	if req.Description != nil {
		fields["description"] = *req.Description
	}
	if req.Category != nil {
		fields["category"] = *req.Category
	}
	if req.Budget != nil {
		fields["budget"] = *req.Budget
	}
	if req.BudgetType != nil {
		fields["budget_type"] = *req.BudgetType
	}
	if req.Deadline != nil {
		if !req.Deadline.After(time.Now()) {
			return nil, apperrors.NewBadRequestError("Deadline must be in the future")
		}
		fields["deadline"] = *req.Deadline
	}
	if req.Location != nil {
		fields["location"] = *req.Location
	}
	if req.IsRemote != nil {
		fields["is_remote"] = *req.IsRemote
	}
	if req.Requirements != nil {
		requirements, err := jsonFromStrings(req.Requirements)
		if err != nil {
			return nil, apperrors.InternalError(err)
		}
		fields["requirements"] = requirements
	}
	if req.Attachments != nil {
		attachments, err := jsonFromStrings(req.Attachments)
		if err != nil {
			return nil, apperrors.InternalError(err)
		}
		fields["attachments"] = attachments
	}
	if req.Priority != nil {
		fields["priority"] = *req.Priority
	}
	if req.IsUrgent != nil {
		fields["is_urgent"] = *req.IsUrgent
	}

	if len(fields) > 0 {
		if err := s.projectRepo.UpdateFields(db, projectID, fields); err != nil {
			return nil, apperrors.InternalError(err)
		}
	}

	return s.Get(db, projectID, userID)
}

func (s *ProjectServiceImpl) Delete(db *gorm.DB, userID, projectID string) error {
	project, err := s.projectRepo.FindByID(db, projectID)
	if err != nil {
		if apperrors.Is(err, repositories.ErrProjectNotFound) {
			return apperrors.ErrNotFound(err)
		}
		return apperrors.InternalError(err)
	}

	if project.PostedBy != userID {
		return apperrors.ErrInsufficientPermissions
	}
	if project.Status != models.ProjectStatusOpen {
		return apperrors.ErrInvalidProjectStatus
	}

	if err := s.projectRepo.Delete(db, projectID); err != nil {
		return apperrors.InternalError(err)
	}
	return nil
}

// AcceptBid runs the assignment workflow in a single transaction:
// lock the project row, re-check it is still open, then move the
// project to in-progress, mark the bid accepted and reject the other
// pending bids. A concurrent accept loses the race on the status check.
func (s *ProjectServiceImpl) AcceptBid(db *gorm.DB, userID, projectID, bidID string) (*dto.ProjectResponse, error) {
	var acceptedBid *models.Bid

	err := db.Transaction(func(tx *gorm.DB) error {
		project, err := s.projectRepo.FindByIDForUpdate(tx, projectID)
		if err != nil {
			if apperrors.Is(err, repositories.ErrProjectNotFound) {
				return apperrors.ErrNotFound(err)
			}
			return apperrors.InternalError(err)
		}

		if project.PostedBy != userID {
			return apperrors.ErrInsufficientPermissions
		}
		if !project.CanTransitionTo(models.ProjectStatusInProgress) {
			return apperrors.ErrProjectNotOpen
		}

		bid, err := s.bidRepo.FindByID(tx, bidID)
		if err != nil {
			if apperrors.Is(err, repositories.ErrBidNotFound) {
				return apperrors.ErrNotFound(err)
			}
			return apperrors.InternalError(err)
		}
		if bid.ProjectID != projectID {
			return apperrors.ErrBidProjectMismatch
		}
		if bid.Status != models.BidStatusPending {
			return apperrors.ErrBidNotPending
		}

		now := time.Now()
		if err := s.projectRepo.UpdateFields(tx, projectID, map[string]interface{}{
			"status":      models.ProjectStatusInProgress,
			"assigned_to": bid.UserID,
			"accepted_at": now,
		}); err != nil {
			return apperrors.InternalError(err)
		}
		if err := s.bidRepo.MarkAccepted(tx, bidID, now); err != nil {
			return apperrors.InternalError(err)
		}
		if err := s.bidRepo.RejectSiblingPending(tx, projectID, bidID, now); err != nil {
			return apperrors.InternalError(err)
		}

		acceptedBid = bid
		return nil
	})
	if err != nil {
		if appErr, ok := apperrors.AsAppError(err); ok {
			return nil, appErr
		}
		return nil, apperrors.InternalError(err)
	}

	// Resolve everything the email needs while the request-scoped db
	// handle is still valid; the goroutine gets plain values.
	bidder, err := s.userRepo.FindByID(db, acceptedBid.UserID)
	if err != nil {
		logger.WithError(err).Warn("failed to load bidder for notification", "bid_id", acceptedBid.ID)
	} else if project, err := s.projectRepo.FindByID(db, projectID); err != nil {
		logger.WithError(err).Warn("failed to load project for notification", "bid_id", acceptedBid.ID)
	} else {
		go s.notifyBidAccepted(bidder.Email, project.Title)
	}

	return s.Get(db, projectID, userID)
}

func (s *ProjectServiceImpl) notifyBidAccepted(bidderEmail, projectTitle string) {
	if err := s.emailProvider.SendBidAccepted(bidderEmail, projectTitle); err != nil {
		logger.WithError(err).Warn("failed to send bid-accepted email", "email", bidderEmail)
	}
}

func (s *ProjectServiceImpl) Complete(db *gorm.DB, userID, projectID string) (*dto.ProjectResponse, error) {
	project, err := s.projectRepo.FindByID(db, projectID)
	if err != nil {
		if apperrors.Is(err, repositories.ErrProjectNotFound) {
			return nil, apperrors.ErrNotFound(err)
		}
		return nil, apperrors.InternalError(err)
	}

	if project.PostedBy != userID {
		return nil, apperrors.ErrInsufficientPermissions
	}
	if !project.CanTransitionTo(models.ProjectStatusCompleted) {
		return nil, apperrors.ErrInvalidProjectStatus
	}

	if err := s.projectRepo.UpdateFields(db, projectID, map[string]interface{}{
		"status":       models.ProjectStatusCompleted,
		"completed_at": time.Now(),
	}); err != nil {
		return nil, apperrors.InternalError(err)
	}

	return s.Get(db, projectID, userID)
}
