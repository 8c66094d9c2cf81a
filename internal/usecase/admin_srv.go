package usecase

import (
	"context"
	"time"

	"job-portal/internal/data/entity"
	"job-portal/internal/data/repository"
	"job-portal/internal/dto/request"
	"job-portal/internal/dto/response"
	"job-portal/pkg/mailer"
	"job-portal/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type AdminService interface {
	ListApprovals(ctx context.Context, status string, page request.PaginatedRequest) (*response.PaginatedResponse[response.ApprovalResponse], error)
	GetApproval(ctx context.Context, id uuid.UUID) (*response.ApprovalResponse, error)
	Approve(ctx context.Context, approvalID, adminID uuid.UUID, req *request.ApproveRecruiterRequest) (*response.ApprovalResponse, error)
	Reject(ctx context.Context, approvalID, adminID uuid.UUID, req *request.RejectRecruiterRequest) (*response.ApprovalResponse, error)
	DeleteApproval(ctx context.Context, approvalID, adminID uuid.UUID) error
	Stats(ctx context.Context) (*response.PlatformStatsResponse, error)
	ListUsers(ctx context.Context, filter repository.UserFilter, page request.PaginatedRequest) (*response.PaginatedResponse[response.UserResponse], error)
	SetUserActive(ctx context.Context, userID, adminID uuid.UUID, isActive bool) error
	SetUserRole(ctx context.Context, userID, adminID uuid.UUID, role entity.UserRole) error
	DeleteUser(ctx context.Context, userID, adminID uuid.UUID) error
	ListAuditLogs(ctx context.Context, userID *uuid.UUID, action string, page request.PaginatedRequest) (*response.PaginatedResponse[response.AuditLogResponse], error)
}

type adminService struct {
	repo *repository.Repository
	mail mailer.Service
	log  *zap.Logger
	now  func() time.Time
}

func NewAdminService(
	repo *repository.Repository,
	mail mailer.Service,
	log *zap.Logger,
) AdminService {
	return &adminService{
		repo: repo,
		mail: mail,
		log:  log,
		now:  time.Now,
	}
}

// audit writes are best-effort; losing one never fails the operation
func (s *adminService) audit(ctx context.Context, adminID uuid.UUID, action string, metadata map[string]any) {
	entry := &entity.AuditLog{
		BaseSimple: entity.BaseSimple{
			ID:        utils.GenerateUUID(),
			CreatedAt: s.now(),
		},
		UserID:   adminID,
		Action:   action,
		Metadata: metadata,
	}
	if err := s.repo.Audit.Create(ctx, entry); err != nil {
		s.log.Warn("Failed to write audit log", zap.Error(err), zap.String("action", action))
	}
}

func (s *adminService) approvalWithApplicant(ctx context.Context, approval *entity.RecruiterApproval) response.ApprovalResponse {
	applicant, err := s.repo.User.FindByID(ctx, approval.UserID)
	if err != nil {
		s.log.Warn("Failed to load applicant for approval",
			zap.Error(err), zap.String("approval_id", approval.ID.String()))
	}
	return response.ApprovalToResponse(approval, applicant)
}

func (s *adminService) ListApprovals(ctx context.Context, status string, page request.PaginatedRequest) (*response.PaginatedResponse[response.ApprovalResponse], error) {
	approvals, err := s.repo.Approval.FindAll(ctx, status, page.Limit(), page.Offset())
	if err != nil {
		return nil, err
	}

	total, err := s.repo.Approval.CountAll(ctx, status)
	if err != nil {
		return nil, err
	}

	items := make([]response.ApprovalResponse, 0, len(approvals))
	for _, approval := range approvals {
		items = append(items, s.approvalWithApplicant(ctx, approval))
	}

	return response.NewPaginatedResponse(items, page.Page, page.Limit(), total), nil
}

func (s *adminService) GetApproval(ctx context.Context, id uuid.UUID) (*response.ApprovalResponse, error) {
	approval, err := s.repo.Approval.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if approval == nil {
		return nil, ErrNotFound
	}

	resp := s.approvalWithApplicant(ctx, approval)
	return &resp, nil
}

// Approve moves pending -> approved and unlocks the recruiter account.
// Approving an already-approved record fails; the first decision wins.
func (s *adminService) Approve(ctx context.Context, approvalID, adminID uuid.UUID, req *request.ApproveRecruiterRequest) (*response.ApprovalResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return nil, &ValidationError{Fields: errs}
	}

	approval, err := s.repo.Approval.FindByID(ctx, approvalID)
	if err != nil {
		return nil, err
	}
	if approval == nil {
		return nil, ErrNotFound
	}

	updated, err := entity.ApproveRecord(*approval, adminID, req.AdminNotes, s.now())
	if err != nil {
		return nil, err
	}

	if err := s.repo.Approval.Update(ctx, &updated); err != nil {
		return nil, err
	}
	if err := s.repo.User.UpdateAccountStatus(ctx, updated.UserID, entity.AccountApproved); err != nil {
		return nil, err
	}

	s.audit(ctx, adminID, "APPROVE_RECRUITER", map[string]any{
		"approval_id": approvalID.String(),
		"user_id":     updated.UserID.String(),
		"company":     updated.CompanyName,
	})

	if applicant, err := s.repo.User.FindByID(ctx, updated.UserID); err == nil && applicant != nil {
		go func(email, fullname string) {
			if err := s.mail.SendApprovalEmail(email, fullname); err != nil {
				s.log.Warn("Failed to send approval email", zap.Error(err), zap.String("email", email))
			}
		}(applicant.Email, applicant.Fullname)
	}

	s.log.Info("Recruiter approved",
		zap.String("approval_id", approvalID.String()),
		zap.String("admin_id", adminID.String()))

	resp := s.approvalWithApplicant(ctx, &updated)
	return &resp, nil
}

// Reject moves pending -> rejected with a mandatory reason and an optional
// block. The account always mirrors the rejection; any block lives on the
// approval record and only governs reapplying for the same company.
func (s *adminService) Reject(ctx context.Context, approvalID, adminID uuid.UUID, req *request.RejectRecruiterRequest) (*response.ApprovalResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return nil, &ValidationError{Fields: errs}
	}

	approval, err := s.repo.Approval.FindByID(ctx, approvalID)
	if err != nil {
		return nil, err
	}
	if approval == nil {
		return nil, ErrNotFound
	}

	duration := entity.BlockDuration(req.BlockDuration)
	updated, err := entity.RejectRecord(*approval, adminID, req.Reason, duration, req.AdminNotes, s.now())
	if err != nil {
		return nil, err
	}

	if err := s.repo.Approval.Update(ctx, &updated); err != nil {
		return nil, err
	}
	if err := s.repo.User.UpdateAccountStatus(ctx, updated.UserID, entity.AccountRejected); err != nil {
		return nil, err
	}

	s.audit(ctx, adminID, "REJECT_RECRUITER", map[string]any{
		"approval_id":    approvalID.String(),
		"user_id":        updated.UserID.String(),
		"company":        updated.CompanyName,
		"reason":         req.Reason,
		"block_duration": req.BlockDuration,
	})

	if applicant, err := s.repo.User.FindByID(ctx, updated.UserID); err == nil && applicant != nil {
		go func(email, fullname string) {
			if err := s.mail.SendRejectionEmail(email, fullname, req.Reason, req.BlockDuration); err != nil {
				s.log.Warn("Failed to send rejection email", zap.Error(err), zap.String("email", email))
			}
		}(applicant.Email, applicant.Fullname)
	}

	s.log.Info("Recruiter rejected",
		zap.String("approval_id", approvalID.String()),
		zap.String("admin_id", adminID.String()),
		zap.String("block_duration", req.BlockDuration))

	resp := s.approvalWithApplicant(ctx, &updated)
	return &resp, nil
}

// DeleteApproval removes the record; a still-pending application takes its
// abandoned user account with it.
func (s *adminService) DeleteApproval(ctx context.Context, approvalID, adminID uuid.UUID) error {
	approval, err := s.repo.Approval.FindByID(ctx, approvalID)
	if err != nil {
		return err
	}
	if approval == nil {
		return ErrNotFound
	}

	if err := s.repo.Approval.DeleteWithPendingUser(ctx, approval); err != nil {
		return err
	}

	s.audit(ctx, adminID, "DELETE_APPROVAL", map[string]any{
		"approval_id": approvalID.String(),
		"user_id":     approval.UserID.String(),
		"status":      string(approval.Status),
	})

	return nil
}

func (s *adminService) Stats(ctx context.Context) (*response.PlatformStatsResponse, error) {
	totalUsers, err := s.repo.User.CountAll(ctx, repository.UserFilter{})
	if err != nil {
		return nil, err
	}

	byRole := make(map[string]int64, 3)
	for _, role := range []entity.UserRole{entity.RoleCandidate, entity.RoleRecruiter, entity.RoleAdmin} {
		count, err := s.repo.User.CountByRole(ctx, role)
		if err != nil {
			return nil, err
		}
		byRole[string(role)] = count
	}

	pending, err := s.repo.Approval.CountByStatus(ctx, entity.ApprovalPending)
	if err != nil {
		return nil, err
	}

	totalJobs, err := s.repo.Job.CountAll(ctx, entity.JobFilter{})
	if err != nil {
		return nil, err
	}

	recent, err := s.repo.Approval.FindRecent(ctx, 5)
	if err != nil {
		return nil, err
	}

	recentResponses := make([]response.ApprovalResponse, 0, len(recent))
	for _, approval := range recent {
		recentResponses = append(recentResponses, s.approvalWithApplicant(ctx, approval))
	}

	return &response.PlatformStatsResponse{
		TotalUsers:       totalUsers,
		UsersByRole:      byRole,
		PendingApprovals: pending,
		TotalJobs:        totalJobs,
		RecentApprovals:  recentResponses,
	}, nil
}

func (s *adminService) ListUsers(ctx context.Context, filter repository.UserFilter, page request.PaginatedRequest) (*response.PaginatedResponse[response.UserResponse], error) {
	users, err := s.repo.User.FindAll(ctx, filter, page.Limit(), page.Offset())
	if err != nil {
		return nil, err
	}

	total, err := s.repo.User.CountAll(ctx, filter)
	if err != nil {
		return nil, err
	}

	items := make([]response.UserResponse, 0, len(users))
	for _, user := range users {
		items = append(items, response.UserToResponse(user))
	}

	return response.NewPaginatedResponse(items, page.Page, page.Limit(), total), nil
}

func (s *adminService) SetUserActive(ctx context.Context, userID, adminID uuid.UUID, isActive bool) error {
	user, err := s.repo.User.FindByID(ctx, userID)
	if err != nil {
		return err
	}
	if user == nil {
		return ErrNotFound
	}

	user.IsActive = isActive
	user.UpdatedAt = s.now()
	if err := s.repo.User.Update(ctx, user); err != nil {
		return err
	}

	// Deactivation kills the live session too
	if !isActive {
		if err := s.repo.User.UpdateRefreshToken(ctx, userID, ""); err != nil {
			s.log.Warn("Failed to clear refresh token on deactivation", zap.Error(err))
		}
	}

	action := "ACTIVATE_USER"
	if !isActive {
		action = "DEACTIVATE_USER"
	}
	s.audit(ctx, adminID, action, map[string]any{"user_id": userID.String()})

	return nil
}

// SetUserRole changes a user's role. Promoting to recruiter without an
// approval record leaves the account pending until an admin approves it.
func (s *adminService) SetUserRole(ctx context.Context, userID, adminID uuid.UUID, role entity.UserRole) error {
	user, err := s.repo.User.FindByID(ctx, userID)
	if err != nil {
		return err
	}
	if user == nil {
		return ErrNotFound
	}

	previous := user.Role
	user.Role = role
	if role == entity.RoleRecruiter && previous != entity.RoleRecruiter {
		approval, err := s.repo.Approval.FindByUserID(ctx, userID)
		if err != nil {
			return err
		}
		if approval == nil || approval.Status != entity.ApprovalApproved {
			user.AccountStatus = entity.AccountPending
		}
	}
	user.UpdatedAt = s.now()

	if err := s.repo.User.Update(ctx, user); err != nil {
		return err
	}

	s.audit(ctx, adminID, "UPDATE_USER_ROLE", map[string]any{
		"user_id":       userID.String(),
		"previous_role": string(previous),
		"new_role":      string(role),
	})

	return nil
}

func (s *adminService) DeleteUser(ctx context.Context, userID, adminID uuid.UUID) error {
	user, err := s.repo.User.FindByID(ctx, userID)
	if err != nil {
		return err
	}
	if user == nil {
		return ErrNotFound
	}

	if err := s.repo.User.Delete(ctx, userID); err != nil {
		return err
	}

	s.audit(ctx, adminID, "DELETE_USER", map[string]any{
		"user_id": userID.String(),
		"email":   user.Email,
	})

	return nil
}

func (s *adminService) ListAuditLogs(ctx context.Context, userID *uuid.UUID, action string, page request.PaginatedRequest) (*response.PaginatedResponse[response.AuditLogResponse], error) {
	entries, err := s.repo.Audit.FindAll(ctx, userID, action, page.Limit(), page.Offset())
	if err != nil {
		return nil, err
	}

	total, err := s.repo.Audit.CountAll(ctx, userID, action)
	if err != nil {
		return nil, err
	}

	items := make([]response.AuditLogResponse, 0, len(entries))
	for _, entry := range entries {
		items = append(items, response.AuditLogToResponse(entry))
	}

	return response.NewPaginatedResponse(items, page.Page, page.Limit(), total), nil
}
