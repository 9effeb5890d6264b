package apperrors

import (
	"net/http"
)

// Factories and predefined variables for common business-logic errors.

// ErrNotFound translates a repository miss (e.g. gorm.ErrRecordNotFound)
// into a 404 AppError.
func ErrNotFound(err error) *AppError {
	return Wrap(err, CodeNotFound, "resource", "Resource not found", http.StatusNotFound)
}

// ErrAlreadyExists translates a uniqueness violation into a 409.
func ErrAlreadyExists(err error) *AppError {
	return Wrap(err, CodeAlreadyExists, "resource", "Resource already exists", http.StatusConflict)
}

// ErrConflict is the general factory for state conflicts (409).
func ErrConflict(err error, domain, message string) *AppError {
	return Wrap(err, CodeConflict, domain, message, http.StatusConflict)
}

// ErrInvalidOperation builds a 400 for operations the current state forbids.
func ErrInvalidOperation(domain, message string) *AppError {
	return New(CodeInvalidOperation, domain, message, http.StatusBadRequest)
}

// ErrInvalidStatus builds a 409 for status-precondition failures.
func ErrInvalidStatus(domain, message string) *AppError {
	return New(CodeInvalidStatus, domain, message, http.StatusConflict)
}

// --- Auth & user status ---

var ErrInvalidCredentials = New(
	CodeInvalidCredentials,
	"auth",
	"Invalid email or password",
	http.StatusUnauthorized,
)

var ErrInvalidToken = New(
	CodeInvalidToken,
	"auth",
	"Invalid or expired token",
	http.StatusUnauthorized,
)

var ErrEmailAlreadyExists = New(
	CodeAlreadyExists,
	"auth",
	"Email already registered",
	http.StatusConflict,
)

var ErrUsernameAlreadyExists = New(
	CodeAlreadyExists,
	"auth",
	"Username already taken",
	http.StatusConflict,
)

var ErrAccountInactive = New(
	CodeForbidden,
	"auth",
	"Account is inactive",
	http.StatusForbidden,
)

var ErrWeakPassword = New(
	CodeValidationFailed,
	"validation",
	"Password does not meet the complexity requirements",
	http.StatusBadRequest,
)

var ErrInsufficientPermissions = New(
	CodeForbidden,
	"auth",
	"Insufficient permissions",
	http.StatusForbidden,
)

// --- Projects ---

// ErrInvalidProjectStatus is returned when an operation is not allowed for
// the project's current status (e.g. editing a project that is no longer open).
var ErrInvalidProjectStatus = New(
	CodeInvalidStatus,
	"project",
	"Operation not allowed for the current project status",
	http.StatusConflict,
)

var ErrProjectNotOpen = New(
	CodeInvalidStatus,
	"project",
	"Project is not open for bidding",
	http.StatusConflict,
)

// --- Bids ---

var ErrCannotBidOwnProject = New(
	CodeInvalidOperation,
	"bid",
	"You cannot bid on your own project",
	http.StatusBadRequest,
)

var ErrBidAlreadyExists = New(
	CodeAlreadyExists,
	"bid",
	"You have already placed a bid on this project",
	http.StatusConflict,
)

var ErrBidNotPending = New(
	CodeInvalidStatus,
	"bid",
	"Only pending bids can be edited",
	http.StatusConflict,
)

var ErrBidNotWithdrawable = New(
	CodeForbidden,
	"bid",
	"This bid cannot be withdrawn",
	http.StatusForbidden,
)

var ErrBidProjectMismatch = New(
	CodeInvalidOperation,
	"bid",
	"Bid does not belong to this project",
	http.StatusBadRequest,
)

// --- Ratings ---

var ErrProjectNotCompleted = New(
	CodeInvalidStatus,
	"rating",
	"You can only rate completed projects",
	http.StatusConflict,
)

var ErrRatingAlreadyExists = New(
	CodeAlreadyExists,
	"rating",
	"You have already rated this user for this project",
	http.StatusConflict,
)

var ErrInvalidRatingType = New(
	CodeValidationFailed,
	"rating",
	"Rating type does not match your role on this project",
	http.StatusForbidden,
)

var ErrWrongRatedUser = New(
	CodeInvalidOperation,
	"rating",
	"You can only rate the other participant of this project",
	http.StatusBadRequest,
)

var ErrCannotVoteOwnRating = New(
	CodeInvalidOperation,
	"rating",
	"You cannot mark your own rating as helpful",
	http.StatusBadRequest,
)

var ErrAlreadyVoted = New(
	CodeAlreadyExists,
	"rating",
	"You have already marked this rating as helpful",
	http.StatusConflict,
)

// --- Messages ---

var ErrNotProjectParticipant = New(
	CodeForbidden,
	"message",
	"You can only message within projects you own, are assigned to, or have bid on",
	http.StatusForbidden,
)

var ErrReceiverNotParticipant = New(
	CodeForbidden,
	"message",
	"You can only send messages to users involved in this project",
	http.StatusForbidden,
)

var ErrReplyProjectMismatch = New(
	CodeInvalidOperation,
	"message",
	"Reply target belongs to a different project",
	http.StatusBadRequest,
)

var ErrReplyCycle = New(
	CodeInvalidOperation,
	"message",
	"Reply would create a cycle in the thread",
	http.StatusBadRequest,
)

var ErrMessageDeleted = New(
	CodeInvalidOperation,
	"message",
	"Message has been deleted",
	http.StatusBadRequest,
)

// --- Payments ---

var ErrPaymentNotSucceeded = New(
	CodeInvalidStatus,
	"payment",
	"Payment has not been completed successfully",
	http.StatusConflict,
)

var ErrInvalidPaymentAmount = New(
	CodeValidationFailed,
	"payment",
	"Invalid payment amount",
	http.StatusBadRequest,
)

var ErrPaymentGateway = New(
	CodeExternalServiceError,
	"payment",
	"Payment provider error",
	http.StatusServiceUnavailable,
)
