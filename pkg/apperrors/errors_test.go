package apperrors

import (
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWithDetails_DoesNotMutateSentinel(t *testing.T) {
	original := ErrInvalidCredentials.Details

	clone := ErrInvalidCredentials.WithDetails("extra context")

	assert.Equal(t, original, ErrInvalidCredentials.Details, "sentinel must stay untouched")
	assert.Equal(t, "extra context", clone.Details)
	assert.Equal(t, ErrInvalidCredentials.Code, clone.Code)
}

func TestErrorsIs_MatchesClones(t *testing.T) {
	clone := ErrBidAlreadyExists.WithDetails("project x")

	assert.True(t, errors.Is(clone, ErrBidAlreadyExists))
	assert.False(t, errors.Is(clone, ErrRatingAlreadyExists))
}

func TestWithError_WrapsAndUnwraps(t *testing.T) {
	cause := errors.New("connection refused")
	wrapped := ErrPaymentGateway.WithError(cause)

	assert.True(t, errors.Is(wrapped, ErrPaymentGateway))
	assert.Equal(t, cause, errors.Unwrap(wrapped))
	assert.Nil(t, ErrPaymentGateway.Err, "sentinel must not carry the cause")
}

func TestFactories_HTTPCodes(t *testing.T) {
	cause := errors.New("boom")

	assert.Equal(t, http.StatusNotFound, ErrNotFound(cause).HTTPCode)
	assert.Equal(t, http.StatusConflict, ErrAlreadyExists(cause).HTTPCode)
	assert.Equal(t, http.StatusBadRequest, ErrInvalidOperation("test", "nope").HTTPCode)
	assert.Equal(t, http.StatusConflict, ErrInvalidStatus("test", "bad state").HTTPCode)
	assert.Equal(t, http.StatusInternalServerError, InternalError(cause).HTTPCode)
}

func TestAs_FindsAppError(t *testing.T) {
	var appErr *AppError

	wrapped := ErrNotFound(errors.New("row missing"))
	require.True(t, As(wrapped, &appErr))
	assert.Equal(t, CodeNotFound, appErr.Code)

	assert.False(t, As(errors.New("plain"), &appErr))
}
