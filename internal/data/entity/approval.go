package entity

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var (
	ErrAlreadyApproved   = errors.New("recruiter already approved")
	ErrInvalidTransition = errors.New("cannot reject an approved recruiter")
	ErrReasonRequired    = errors.New("rejection reason is required")
	ErrBadBlockDuration  = errors.New("invalid block duration")
)

// The approval state machine is expressed as pure functions over the
// record value so transitions stay testable without storage.

// BlockedUntilFor computes the reapply block deadline for a duration.
// none and permanent carry no deadline.
func BlockedUntilFor(duration BlockDuration, now time.Time) *time.Time {
	var d time.Duration
	switch duration {
	case BlockOneWeek:
		d = 7 * 24 * time.Hour
	case BlockTwoWeeks:
		d = 14 * 24 * time.Hour
	case BlockOneMonth:
		d = 30 * 24 * time.Hour
	case BlockTwoMonths:
		d = 60 * 24 * time.Hour
	default:
		return nil
	}
	until := now.Add(d)
	return &until
}

// CanReapply reports whether a new application for the same company is
// allowed. Permanent blocks never lift; timed blocks lift once the
// deadline passes.
func CanReapply(rec RecruiterApproval, now time.Time) bool {
	if rec.BlockDuration == BlockNone {
		return true
	}
	if rec.BlockDuration == BlockPermanent {
		return false
	}
	if rec.BlockedUntil == nil {
		return true
	}
	return now.After(*rec.BlockedUntil)
}

// ApproveRecord transitions pending -> approved. Approval always clears
// block bookkeeping, even if the record carried one from a reused
// application. Approving twice fails with ErrAlreadyApproved.
func ApproveRecord(rec RecruiterApproval, adminID uuid.UUID, adminNotes *string, now time.Time) (RecruiterApproval, error) {
	if rec.Status == ApprovalApproved {
		return rec, ErrAlreadyApproved
	}

	rec.Status = ApprovalApproved
	rec.ApprovedBy = &adminID
	rec.ApprovedAt = &now
	rec.AdminNotes = adminNotes
	rec.BlockDuration = BlockNone
	rec.BlockedUntil = nil
	rec.UpdatedAt = now

	return rec, nil
}

// RejectRecord transitions pending -> rejected with a mandatory reason
// and a block duration. Approved records cannot be rejected.
func RejectRecord(rec RecruiterApproval, adminID uuid.UUID, reason string, duration BlockDuration, adminNotes *string, now time.Time) (RecruiterApproval, error) {
	if rec.Status == ApprovalApproved {
		return rec, ErrInvalidTransition
	}
	if reason == "" {
		return rec, ErrReasonRequired
	}
	if !ValidBlockDuration(string(duration)) {
		return rec, ErrBadBlockDuration
	}

	rec.Status = ApprovalRejected
	rec.RejectionReason = &reason
	rec.RejectedBy = &adminID
	rec.RejectedAt = &now
	rec.AdminNotes = adminNotes
	rec.BlockDuration = duration
	rec.BlockedUntil = BlockedUntilFor(duration, now)
	rec.UpdatedAt = now

	return rec, nil
}
