package services

import (
	"gigcampus_backend/internal/models"
	"gigcampus_backend/internal/repositories"
	"gigcampus_backend/internal/services/dto"
	"gigcampus_backend/pkg/apperrors"

	"gorm.io/gorm"
)

type BidService interface {
	Create(db *gorm.DB, userID string, req *dto.CreateBidRequest) (*dto.BidResponse, error)
	Get(db *gorm.DB, userID, bidID string) (*dto.BidResponse, error)
	GetByProject(db *gorm.DB, userID, projectID string) ([]dto.BidResponse, error)
	GetMine(db *gorm.DB, userID, status string, page, limit int) (*dto.BidListResponse, error)
	Update(db *gorm.DB, userID, bidID string, req *dto.UpdateBidRequest) (*dto.BidResponse, error)
	Withdraw(db *gorm.DB, userID, bidID string) error
}

type BidServiceImpl struct {
	bidRepo     repositories.BidRepository
	projectRepo repositories.ProjectRepository
}

func NewBidService(bidRepo repositories.BidRepository, projectRepo repositories.ProjectRepository) BidService {
	return &BidServiceImpl{
		bidRepo:     bidRepo,
		projectRepo: projectRepo,
	}
}

func (s *BidServiceImpl) Create(db *gorm.DB, userID string, req *dto.CreateBidRequest) (*dto.BidResponse, error) {
	project, err := s.projectRepo.FindByID(db, req.ProjectID)
	if err != nil {
		if apperrors.Is(err, repositories.ErrProjectNotFound) {
			return nil, apperrors.ErrNotFound(err)
		}
		return nil, apperrors.InternalError(err)
	}

	if project.PostedBy == userID {
		return nil, apperrors.ErrCannotBidOwnProject
	}
	if project.Status != models.ProjectStatusOpen {
		return nil, apperrors.ErrProjectNotOpen
	}

	if _, err := s.bidRepo.FindByUserAndProject(db, userID, req.ProjectID); err == nil {
		return nil, apperrors.ErrBidAlreadyExists
	} else if !apperrors.Is(err, repositories.ErrBidNotFound) {
		return nil, apperrors.InternalError(err)
	}

	bid := &models.Bid{
		ProjectID:    req.ProjectID,
		UserID:       userID,
		Amount:       req.Amount,
		Message:      req.Message,
		DeliveryTime: req.DeliveryTime,
		Status:       models.BidStatusPending,
	}

	if err := s.bidRepo.Create(db, bid); err != nil {
		if apperrors.Is(err, repositories.ErrDuplicateBid) {
			return nil, apperrors.ErrBidAlreadyExists
		}
		return nil, apperrors.InternalError(err)
	}

	return s.Get(db, userID, bid.ID)
}

func (s *BidServiceImpl) Get(db *gorm.DB, userID, bidID string) (*dto.BidResponse, error) {
	bid, err := s.bidRepo.FindByIDWithDetails(db, bidID)
	if err != nil {
		if apperrors.Is(err, repositories.ErrBidNotFound) {
			return nil, apperrors.ErrNotFound(err)
		}
		return nil, apperrors.InternalError(err)
	}

	// Visible to the bidder and the project owner only.
	if bid.UserID != userID && (bid.Project == nil || bid.Project.PostedBy != userID) {
		return nil, apperrors.ErrInsufficientPermissions
	}

	resp := buildBidResponse(bid)
	return &resp, nil
}

func (s *BidServiceImpl) GetByProject(db *gorm.DB, userID, projectID string) ([]dto.BidResponse, error) {
	project, err := s.projectRepo.FindByID(db, projectID)
	if err != nil {
		if apperrors.Is(err, repositories.ErrProjectNotFound) {
			return nil, apperrors.ErrNotFound(err)
		}
		return nil, apperrors.InternalError(err)
	}

	bids, err := s.bidRepo.FindByProject(db, projectID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	// The owner sees every bid, a bidder only their own.
	resp := make([]dto.BidResponse, 0, len(bids))
	if project.PostedBy == userID {
		for i := range bids {
			resp = append(resp, buildBidResponse(&bids[i]))
		}
		return resp, nil
	}

	for i := range bids {
		if bids[i].UserID == userID {
			resp = append(resp, buildBidResponse(&bids[i]))
		}
	}
	if len(resp) == 0 {
		return nil, apperrors.ErrInsufficientPermissions
	}
	return resp, nil
}

func (s *BidServiceImpl) GetMine(db *gorm.DB, userID, status string, page, limit int) (*dto.BidListResponse, error) {
	if page <= 0 {
		page = 1
	}
	if limit <= 0 || limit > 100 {
		limit = 20
	}

	bids, total, err := s.bidRepo.FindByUser(db, userID, models.BidStatus(status), page, limit)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	resp := &dto.BidListResponse{
		Bids:       make([]dto.BidResponse, 0, len(bids)),
		Pagination: dto.NewPagination(page, limit, total),
	}
	for i := range bids {
		resp.Bids = append(resp.Bids, buildBidResponse(&bids[i]))
	}
	return resp, nil
}

func (s *BidServiceImpl) Update(db *gorm.DB, userID, bidID string, req *dto.UpdateBidRequest) (*dto.BidResponse, error) {
	bid, err := s.bidRepo.FindByIDWithDetails(db, bidID)
	if err != nil {
		if apperrors.Is(err, repositories.ErrBidNotFound) {
			return nil, apperrors.ErrNotFound(err)
		}
		return nil, apperrors.InternalError(err)
	}

	if bid.UserID != userID {
		return nil, apperrors.ErrInsufficientPermissions
	}
	if bid.Status != models.BidStatusPending {
		return nil, apperrors.ErrBidNotPending
	}
	if bid.Project != nil && bid.Project.Status != models.ProjectStatusOpen {
		return nil, apperrors.ErrProjectNotOpen
	}

	fields := map[string]interface{}{}
	if req.Amount != nil {
		fields["amount"] = *req.Amount
	}
	if req.Message != nil {
		fields["message"] = *req.Message
	}
	if req.DeliveryTime != nil {
		fields["delivery_time"] = *req.DeliveryTime
	}

	if len(fields) > 0 {
		if err := s.bidRepo.UpdateFields(db, bidID, fields); err != nil {
			return nil, apperrors.InternalError(err)
		}
	}

	return s.Get(db, userID, bidID)
}

// Withdraw removes a pending bid outright. An accepted bid is kept as
// history with status withdrawn, and if it is the project's current
// assignment the project rolls back to open. This is the one sanctioned
// backward transition of the project lifecycle.
func (s *BidServiceImpl) Withdraw(db *gorm.DB, userID, bidID string) error {
	return db.Transaction(func(tx *gorm.DB) error {
		bid, err := s.bidRepo.FindByID(tx, bidID)
		if err != nil {
			if apperrors.Is(err, repositories.ErrBidNotFound) {
				return apperrors.ErrNotFound(err)
			}
			return apperrors.InternalError(err)
		}

		if bid.UserID != userID {
			return apperrors.ErrInsufficientPermissions
		}

		switch bid.Status {
		case models.BidStatusPending:
			if err := s.bidRepo.Delete(tx, bidID); err != nil {
				return apperrors.InternalError(err)
			}
			return nil

		case models.BidStatusAccepted:
			project, err := s.projectRepo.FindByIDForUpdate(tx, bid.ProjectID)
			if err != nil {
				return apperrors.InternalError(err)
			}

			if err := s.bidRepo.UpdateFields(tx, bidID, map[string]interface{}{
				"status":      models.BidStatusWithdrawn,
				"is_selected": false,
			}); err != nil {
				return apperrors.InternalError(err)
			}

			if project.AssignedTo != nil && *project.AssignedTo == bid.UserID &&
				project.CanTransitionTo(models.ProjectStatusOpen) {
				if err := s.projectRepo.UpdateFields(tx, project.ID, map[string]interface{}{
					"status":      models.ProjectStatusOpen,
					"assigned_to": nil,
					"accepted_at": nil,
				}); err != nil {
					return apperrors.InternalError(err)
				}
			}
			return nil

		default:
			return apperrors.ErrBidNotWithdrawable
		}
	})
}
