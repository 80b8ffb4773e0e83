package util

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
)

// Error taxonomy for state-machine guard violations and gateway failures.
// Services wrap these with context via fmt.Errorf("...: %w", Err...);
// controllers map them to HTTP statuses with ErrorResponse.
var (
	ErrNotFound        = errors.New("not found")
	ErrForbidden       = errors.New("forbidden")
	ErrInvalidState    = errors.New("invalid state")
	ErrInvalidAction   = errors.New("invalid action")
	ErrInvalidInput    = errors.New("invalid input")
	ErrLimitExceeded   = errors.New("limit exceeded")
	ErrAlreadyDone     = errors.New("already done")
	ErrRateLimited     = errors.New("rate limited")
	ErrUpstreamFailure = errors.New("upstream failure")

	ErrEmailRegistered    = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("incorrect email or password")
)

// Wrap attaches a caller-facing message to a taxonomy error.
func Wrap(sentinel error, format string, args ...interface{}) error {
	return fmt.Errorf("%s: %w", fmt.Sprintf(format, args...), sentinel)
}

// ErrorResponse maps a service error onto the HTTP surface. Unknown errors
// are treated as storage/internal failures and logged.
func ErrorResponse(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrNotFound):
		Error(c, http.StatusNotFound, err.Error())
	case errors.Is(err, ErrForbidden):
		Error(c, http.StatusForbidden, err.Error())
	case errors.Is(err, ErrInvalidState),
		errors.Is(err, ErrInvalidAction),
		errors.Is(err, ErrInvalidInput),
		errors.Is(err, ErrLimitExceeded),
		errors.Is(err, ErrEmailRegistered):
		Error(c, http.StatusBadRequest, err.Error())
	case errors.Is(err, ErrAlreadyDone):
		Error(c, http.StatusConflict, err.Error())
	case errors.Is(err, ErrRateLimited):
		Error(c, http.StatusTooManyRequests, err.Error())
	case errors.Is(err, ErrUpstreamFailure):
		Error(c, http.StatusBadGateway, err.Error())
	case errors.Is(err, ErrInvalidCredentials):
		Error(c, http.StatusUnauthorized, err.Error())
	default:
		LogInternalError(c, err)
	}
}
