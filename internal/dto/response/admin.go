package response

import (
	"time"

	"job-portal/internal/data/entity"
)

type ApprovalResponse struct {
	ID              string                `json:"id"`
	UserID          string                `json:"user_id"`
	Status          entity.ApprovalStatus `json:"status"`
	CompanyName     string                `json:"company_name"`
	CompanyWebsite  *string               `json:"company_website,omitempty"`
	Designation     *string               `json:"designation,omitempty"`
	RejectionReason *string               `json:"rejection_reason,omitempty"`
	BlockDuration   entity.BlockDuration  `json:"block_duration"`
	BlockedUntil    *time.Time            `json:"blocked_until,omitempty"`
	ApprovedBy      *string               `json:"approved_by,omitempty"`
	ApprovedAt      *time.Time            `json:"approved_at,omitempty"`
	RejectedBy      *string               `json:"rejected_by,omitempty"`
	RejectedAt      *time.Time            `json:"rejected_at,omitempty"`
	AdminNotes      *string               `json:"admin_notes,omitempty"`
	Applicant       *UserResponse         `json:"applicant,omitempty"`
	CreatedAt       time.Time             `json:"created_at"`
}

type PlatformStatsResponse struct {
	TotalUsers       int64              `json:"total_users"`
	UsersByRole      map[string]int64   `json:"users_by_role"`
	PendingApprovals int64              `json:"pending_approvals"`
	TotalJobs        int64              `json:"total_jobs"`
	RecentApprovals  []ApprovalResponse `json:"recent_approvals"`
}

type AuditLogResponse struct {
	ID        string         `json:"id"`
	UserID    string         `json:"user_id"`
	Action    string         `json:"action"`
	Metadata  map[string]any `json:"metadata,omitempty"`
	CreatedAt time.Time      `json:"created_at"`
}

// Helper converters
func ApprovalToResponse(approval *entity.RecruiterApproval, applicant *entity.User) ApprovalResponse {
	resp := ApprovalResponse{
		ID:              approval.ID.String(),
		UserID:          approval.UserID.String(),
		Status:          approval.Status,
		CompanyName:     approval.CompanyName,
		CompanyWebsite:  approval.CompanyWebsite,
		Designation:     approval.Designation,
		RejectionReason: approval.RejectionReason,
		BlockDuration:   approval.BlockDuration,
		BlockedUntil:    approval.BlockedUntil,
		ApprovedAt:      approval.ApprovedAt,
		RejectedAt:      approval.RejectedAt,
		AdminNotes:      approval.AdminNotes,
		CreatedAt:       approval.CreatedAt,
	}

	if approval.ApprovedBy != nil {
		s := approval.ApprovedBy.String()
		resp.ApprovedBy = &s
	}
	if approval.RejectedBy != nil {
		s := approval.RejectedBy.String()
		resp.RejectedBy = &s
	}
	if applicant != nil {
		userResp := UserToResponse(applicant)
		resp.Applicant = &userResp
	}

	return resp
}

func AuditLogToResponse(entry *entity.AuditLog) AuditLogResponse {
	return AuditLogResponse{
		ID:        entry.ID.String(),
		UserID:    entry.UserID.String(),
		Action:    entry.Action,
		Metadata:  entry.Metadata,
		CreatedAt: entry.CreatedAt,
	}
}
