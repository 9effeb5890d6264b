package services

import (
	"context"
	"time"

	"gigcampus_backend/internal/email"
	"gigcampus_backend/internal/logger"
	"gigcampus_backend/internal/models"
	"gigcampus_backend/internal/payments"
	"gigcampus_backend/internal/repositories"
	"gigcampus_backend/internal/services/dto"
	"gigcampus_backend/pkg/apperrors"

	"gorm.io/gorm"
)

type PaymentService interface {
	CreateIntent(ctx context.Context, db *gorm.DB, userID string, req *dto.CreatePaymentRequest) (*dto.PaymentResponse, error)
	Confirm(ctx context.Context, db *gorm.DB, userID string, req *dto.ConfirmPaymentRequest) (*dto.PaymentResponse, error)
	History(db *gorm.DB, userID string, page, limit int) (*dto.PaymentListResponse, error)
}

type PaymentServiceImpl struct {
	paymentRepo   repositories.PaymentRepository
	projectRepo   repositories.ProjectRepository
	userRepo      repositories.UserRepository
	gateway       payments.Gateway
	emailProvider email.Provider
	currency      string
}

func NewPaymentService(
	paymentRepo repositories.PaymentRepository,
	projectRepo repositories.ProjectRepository,
	userRepo repositories.UserRepository,
	gateway payments.Gateway,
	emailProvider email.Provider,
	currency string,
) PaymentService {
	return &PaymentServiceImpl{
		paymentRepo:   paymentRepo,
		projectRepo:   projectRepo,
		userRepo:      userRepo,
		gateway:       gateway,
		emailProvider: emailProvider,
		currency:      currency,
	}
}

func (s *PaymentServiceImpl) CreateIntent(ctx context.Context, db *gorm.DB, userID string, req *dto.CreatePaymentRequest) (*dto.PaymentResponse, error) {
	project, err := s.projectRepo.FindByID(db, req.ProjectID)
	if err != nil {
		if apperrors.Is(err, repositories.ErrProjectNotFound) {
			return nil, apperrors.ErrNotFound(err)
		}
		return nil, apperrors.InternalError(err)
	}

	if project.PostedBy != userID {
		return nil, apperrors.ErrInsufficientPermissions
	}
	if project.Status != models.ProjectStatusInProgress && project.Status != models.ProjectStatusCompleted {
		return nil, apperrors.ErrInvalidProjectStatus
	}
	if project.AssignedTo == nil {
		return nil, apperrors.ErrInvalidProjectStatus
	}

	// The amount is the accepted bid's amount when present, otherwise
	// the project budget.
	amount := project.Budget
	if bid, err := s.findAcceptedBid(db, project.ID); err == nil && bid != nil {
		amount = bid.Amount
	}
	if amount <= 0 {
		return nil, apperrors.ErrInvalidPaymentAmount
	}

	intent, err := s.gateway.CreateIntent(ctx, project.ID, amount, s.currency)
	if err != nil {
		return nil, apperrors.ErrPaymentGateway.WithError(err)
	}

	tx := &models.PaymentTransaction{
		ProjectID: project.ID,
		PayerID:   userID,
		PayeeID:   *project.AssignedTo,
		Amount:    amount,
		Currency:  s.currency,
		Status:    models.PaymentStatusPending,
		IntentID:  intent.ID,
	}

	if err := s.paymentRepo.Create(db, tx); err != nil {
		if apperrors.Is(err, repositories.ErrDuplicateIntent) {
			return nil, apperrors.ErrConflict(err, "payment", "Payment intent already recorded")
		}
		return nil, apperrors.InternalError(err)
	}

	resp := buildPaymentResponse(tx)
	return &resp, nil
}

func (s *PaymentServiceImpl) findAcceptedBid(db *gorm.DB, projectID string) (*models.Bid, error) {
	var bid models.Bid
	err := db.Where("project_id = ? AND status = ?", projectID, models.BidStatusAccepted).First(&bid).Error
	if err != nil {
		return nil, err
	}
	return &bid, nil
}

// Confirm settles the intent exactly once, keyed on the intent id. The
// outcome comes from the gateway: the intent is retrieved and its
// status checked server-side, so a caller cannot self-certify a
// payment. The first succeeded confirmation marks the transaction
// paid, completes an in-progress project and credits the assignee. A
// second confirmation for the same intent is a no-op success.
func (s *PaymentServiceImpl) Confirm(ctx context.Context, db *gorm.DB, userID string, req *dto.ConfirmPaymentRequest) (*dto.PaymentResponse, error) {
	var result *models.PaymentTransaction
	var markedFailed, applied bool

	err := db.Transaction(func(tx *gorm.DB) error {
		payment, err := s.paymentRepo.FindByIntentIDForUpdate(tx, req.IntentID)
		if err != nil {
			if apperrors.Is(err, repositories.ErrPaymentNotFound) {
				return apperrors.ErrNotFound(err)
			}
			return apperrors.InternalError(err)
		}

		if payment.PayerID != userID {
			return apperrors.ErrInsufficientPermissions
		}

		// Duplicate delivery: already applied, nothing else to do.
		if payment.Status == models.PaymentStatusPaid {
			result = payment
			return nil
		}
		if payment.Status != models.PaymentStatusPending {
			return apperrors.ErrPaymentNotSucceeded
		}

		intent, err := s.gateway.RetrieveIntent(ctx, payment.IntentID)
		if err != nil {
			return apperrors.ErrPaymentGateway.WithError(err)
		}

		if intent.Status != payments.IntentStatusSucceeded {
			// Commit the failure mark, the error is raised after.
			if err := s.paymentRepo.MarkFailed(tx, payment.ID, intent.FailureCode); err != nil {
				return apperrors.InternalError(err)
			}
			markedFailed = true
			return nil
		}

		if intent.Amount != payment.Amount {
			return apperrors.ErrInvalidPaymentAmount
		}

		now := time.Now()
		if err := s.paymentRepo.MarkPaid(tx, payment.ID, now); err != nil {
			return apperrors.InternalError(err)
		}

		project, err := s.projectRepo.FindByIDForUpdate(tx, payment.ProjectID)
		if err != nil {
			return apperrors.InternalError(err)
		}
		if project.Status == models.ProjectStatusInProgress {
			if err := s.projectRepo.UpdateFields(tx, project.ID, map[string]interface{}{
				"status":       models.ProjectStatusCompleted,
				"completed_at": now,
			}); err != nil {
				return apperrors.InternalError(err)
			}
		}

		if err := s.userRepo.AddEarnings(tx, payment.PayeeID, payment.Amount); err != nil {
			return apperrors.InternalError(err)
		}

		payment.Status = models.PaymentStatusPaid
		payment.PaidAt = &now
		result = payment
		applied = true
		return nil
	})
	if err != nil {
		if appErr, ok := apperrors.AsAppError(err); ok {
			return nil, appErr
		}
		return nil, apperrors.InternalError(err)
	}
	if markedFailed {
		return nil, apperrors.ErrPaymentNotSucceeded
	}

	if applied {
		// Resolve everything the email needs while the request-scoped
		// db handle is still valid; the goroutine gets plain values.
		payee, err := s.userRepo.FindByID(db, result.PayeeID)
		if err != nil {
			logger.WithError(err).Warn("failed to load payee for notification", "payment_id", result.ID)
		} else if project, err := s.projectRepo.FindByID(db, result.ProjectID); err != nil {
			logger.WithError(err).Warn("failed to load project for notification", "payment_id", result.ID)
		} else {
			go s.notifyPaid(payee.Email, project.Title, result.Amount)
		}
	}

	resp := buildPaymentResponse(result)
	return &resp, nil
}

func (s *PaymentServiceImpl) notifyPaid(payeeEmail, projectTitle string, amount float64) {
	if err := s.emailProvider.SendProjectCompleted(payeeEmail, projectTitle, amount); err != nil {
		logger.WithError(err).Warn("failed to send payment email", "email", payeeEmail)
	}
}

func (s *PaymentServiceImpl) History(db *gorm.DB, userID string, page, limit int) (*dto.PaymentListResponse, error) {
	if page <= 0 {
		page = 1
	}
	if limit <= 0 || limit > 100 {
		limit = 20
	}

	txs, total, err := s.paymentRepo.FindByUser(db, userID, page, limit)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	resp := &dto.PaymentListResponse{
		Payments:   make([]dto.PaymentResponse, 0, len(txs)),
		Pagination: dto.NewPagination(page, limit, total),
	}
	for i := range txs {
		resp.Payments = append(resp.Payments, buildPaymentResponse(&txs[i]))
	}
	return resp, nil
}
