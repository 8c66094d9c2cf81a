package usecase

import (
	"errors"
	"fmt"
	"time"
)

// Sentinel errors the adaptor layer maps to HTTP statuses with errors.Is.
var (
	ErrEmailTaken                = errors.New("email is already registered")
	ErrCompanyApplicationPending = errors.New("an application for this company is already pending")
	ErrOTPNotFound               = errors.New("no verification code found, request a new one")
	ErrOTPExpired                = errors.New("verification code has expired, request a new one")
	ErrOTPAttemptsExceeded       = errors.New("too many incorrect attempts, request a new code")
	ErrEmailDeliveryFailed       = errors.New("could not send verification email")
	ErrTooManyRequests           = errors.New("too many requests, try again later")
	ErrInvalidCredentials        = errors.New("invalid email or password")
	ErrEmailNotVerified          = errors.New("email address has not been verified")
	ErrInvalidToken              = errors.New("invalid or expired token")
	ErrNotFound                  = errors.New("resource not found")
	ErrForbidden                 = errors.New("you do not have permission to perform this action")
	ErrAlreadyApplied            = errors.New("you have already applied to this job")
	ErrValidation                = errors.New("validation failed")
)

// InvalidOTPError carries how many attempts remain before the code burns
type InvalidOTPError struct {
	Remaining int
}

func (e *InvalidOTPError) Error() string {
	return fmt.Sprintf("incorrect verification code, %d attempts remaining", e.Remaining)
}

// ReapplyBlockedError reports when (if ever) a rejected company may reapply
type ReapplyBlockedError struct {
	BlockedUntil *time.Time
	Permanent    bool
}

func (e *ReapplyBlockedError) Error() string {
	if e.Permanent {
		return "this company has been permanently blocked from applying"
	}
	if e.BlockedUntil != nil {
		return fmt.Sprintf("this company may reapply after %s", e.BlockedUntil.Format("2006-01-02"))
	}
	return "this company is temporarily blocked from applying"
}

// ValidationError wraps per-field messages from struct validation
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	return "validation failed"
}

func (e *ValidationError) Unwrap() error {
	return ErrValidation
}
