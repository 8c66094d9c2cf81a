package entity

import (
	"time"

	"github.com/google/uuid"
)

type ApprovalStatus string

const (
	ApprovalPending  ApprovalStatus = "pending"
	ApprovalApproved ApprovalStatus = "approved"
	ApprovalRejected ApprovalStatus = "rejected"
)

type BlockDuration string

const (
	BlockNone      BlockDuration = "none"
	BlockOneWeek   BlockDuration = "1week"
	BlockTwoWeeks  BlockDuration = "2weeks"
	BlockOneMonth  BlockDuration = "1month"
	BlockTwoMonths BlockDuration = "2months"
	BlockPermanent BlockDuration = "permanent"
)

// ValidBlockDuration reports whether s is one of the six accepted literals
func ValidBlockDuration(s string) bool {
	switch BlockDuration(s) {
	case BlockNone, BlockOneWeek, BlockTwoWeeks, BlockOneMonth, BlockTwoMonths, BlockPermanent:
		return true
	}
	return false
}

type RecruiterApproval struct {
	BaseNoDelete
	UserID          uuid.UUID      `db:"user_id"`
	Status          ApprovalStatus `db:"status"`
	CompanyName     string         `db:"company_name"`
	CompanyWebsite  *string        `db:"company_website"`
	Designation     *string        `db:"designation"`
	RejectionReason *string        `db:"rejection_reason"`
	BlockDuration   BlockDuration  `db:"block_duration"`
	BlockedUntil    *time.Time     `db:"blocked_until"`
	ApprovedBy      *uuid.UUID     `db:"approved_by"`
	ApprovedAt      *time.Time     `db:"approved_at"`
	RejectedBy      *uuid.UUID     `db:"rejected_by"`
	RejectedAt      *time.Time     `db:"rejected_at"`
	AdminNotes      *string        `db:"admin_notes"`
}
