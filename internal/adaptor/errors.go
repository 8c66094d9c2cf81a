package adaptor

import (
	"errors"
	"net/http"

	"job-portal/internal/data/entity"
	"job-portal/internal/usecase"
	"job-portal/pkg/utils"

	"go.uber.org/zap"
)

// handleServiceError maps the usecase error taxonomy onto HTTP statuses.
// Anything unrecognized becomes a 500 with a generic message; the real
// error only goes to the log.
func handleServiceError(w http.ResponseWriter, log *zap.Logger, err error, operation string) {
	var validationErr *usecase.ValidationError
	if errors.As(err, &validationErr) {
		utils.ResponseBadRequest(w, "Validation failed", validationErr.Fields)
		return
	}

	var invalidOTP *usecase.InvalidOTPError
	if errors.As(err, &invalidOTP) {
		utils.ResponseBadRequest(w, invalidOTP.Error(), nil)
		return
	}

	var reapplyBlocked *usecase.ReapplyBlockedError
	if errors.As(err, &reapplyBlocked) {
		utils.ResponseForbidden(w, reapplyBlocked.Error())
		return
	}

	switch {
	case errors.Is(err, usecase.ErrNotFound):
		utils.ResponseNotFound(w, err.Error())

	case errors.Is(err, usecase.ErrEmailTaken),
		errors.Is(err, usecase.ErrCompanyApplicationPending),
		errors.Is(err, usecase.ErrAlreadyApplied),
		errors.Is(err, entity.ErrAlreadyApproved),
		errors.Is(err, entity.ErrInvalidTransition):
		utils.ResponseConflict(w, err.Error())

	case errors.Is(err, usecase.ErrOTPNotFound),
		errors.Is(err, usecase.ErrOTPExpired),
		errors.Is(err, usecase.ErrOTPAttemptsExceeded),
		errors.Is(err, entity.ErrReasonRequired),
		errors.Is(err, entity.ErrBadBlockDuration):
		utils.ResponseBadRequest(w, err.Error(), nil)

	case errors.Is(err, usecase.ErrInvalidCredentials),
		errors.Is(err, usecase.ErrInvalidToken),
		errors.Is(err, entity.ErrIncorrectPassword),
		errors.Is(err, entity.ErrWrongProvider):
		utils.ResponseUnauthorized(w, err.Error())

	case errors.Is(err, usecase.ErrForbidden),
		errors.Is(err, usecase.ErrEmailNotVerified),
		errors.Is(err, entity.ErrDeactivated),
		errors.Is(err, entity.ErrPendingApproval),
		errors.Is(err, entity.ErrRejected),
		errors.Is(err, entity.ErrBlocked):
		utils.ResponseForbidden(w, err.Error())

	case errors.Is(err, usecase.ErrTooManyRequests):
		utils.ResponseTooManyRequests(w, err.Error())

	case errors.Is(err, usecase.ErrEmailDeliveryFailed):
		utils.ResponseDependencyFailure(w, err.Error())

	default:
		log.Error("Unhandled service error", zap.Error(err), zap.String("operation", operation))
		utils.ResponseInternalError(w, "Something went wrong")
	}
}
