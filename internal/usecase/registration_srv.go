package usecase

import (
	"context"
	"fmt"
	"time"

	"job-portal/internal/data/entity"
	"job-portal/internal/data/repository"
	"job-portal/internal/dto/request"
	"job-portal/internal/dto/response"
	"job-portal/pkg/utils"

	"go.uber.org/zap"
)

const (
	otpSendWindow  = time.Hour
	otpSendLimit   = 5
	otpRateLimitNS = "otp-send"
)

// RegistrationService orchestrates the OTP-gated signup flow. Start only
// vets the payload and mails a code; no account exists until the code is
// verified, at which point Complete creates the user (and, for recruiters,
// the pending approval record) from the resubmitted registration fields.
type RegistrationService interface {
	Start(ctx context.Context, req *request.StartRegistrationRequest) (*response.RegistrationStartedResponse, error)
	Complete(ctx context.Context, req *request.CompleteRegistrationRequest) (*response.RegistrationCompletedResponse, error)
	Resend(ctx context.Context, req *request.ResendOTPRequest) (*response.RegistrationStartedResponse, error)
}

type registrationService struct {
	repo   *repository.Repository
	otp    OTPService
	tokens TokenIssuer
	config *utils.Config
	log    *zap.Logger
}

func NewRegistrationService(
	repo *repository.Repository,
	otp OTPService,
	tokens TokenIssuer,
	config *utils.Config,
	log *zap.Logger,
) RegistrationService {
	return &registrationService{
		repo:   repo,
		otp:    otp,
		tokens: tokens,
		config: config,
		log:    log,
	}
}

// allowSend consults the per-email send budget. Storage errors fail open;
// losing a counter beats locking users out of signup.
func (s *registrationService) allowSend(ctx context.Context, email string) bool {
	count, err := s.repo.RateLimit.Hit(ctx, otpRateLimitNS+":"+email, otpSendWindow)
	if err != nil {
		s.log.Warn("Rate limit check failed, allowing request", zap.Error(err))
		return true
	}
	return count <= otpSendLimit
}

// vet runs the checks shared by Start and Complete: recruiter payloads
// need a company, the address must be free, and the company must not have
// a pending or blocked application.
func (s *registrationService) vet(ctx context.Context, email, role string, companyName *string) error {
	if entity.UserRole(role) == entity.RoleRecruiter && (companyName == nil || *companyName == "") {
		return &ValidationError{Fields: map[string]string{"company_name": "This field is required"}}
	}

	existing, err := s.repo.User.FindByEmail(ctx, email)
	if err != nil {
		return err
	}
	if existing != nil {
		return ErrEmailTaken
	}

	if entity.UserRole(role) == entity.RoleRecruiter {
		return s.checkCompanyEligibility(ctx, *companyName)
	}
	return nil
}

func (s *registrationService) Start(ctx context.Context, req *request.StartRegistrationRequest) (*response.RegistrationStartedResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return nil, &ValidationError{Fields: errs}
	}
	req.Email = utils.NormalizeEmail(req.Email)

	if err := s.vet(ctx, req.Email, req.Role, req.CompanyName); err != nil {
		return nil, err
	}

	s.log.Info("Registration started",
		zap.String("email", req.Email),
		zap.String("role", req.Role))

	return s.issue(ctx, req.Email)
}

// checkCompanyEligibility blocks duplicate pending applications and
// honors rejection blocks for the same company.
func (s *registrationService) checkCompanyEligibility(ctx context.Context, companyName string) error {
	record, err := s.repo.Approval.FindActiveByCompany(ctx, companyName)
	if err != nil {
		return err
	}
	if record == nil {
		return nil
	}

	if record.Status == entity.ApprovalPending {
		return ErrCompanyApplicationPending
	}

	if !entity.CanReapply(*record, time.Now()) {
		return &ReapplyBlockedError{
			BlockedUntil: record.BlockedUntil,
			Permanent:    record.BlockDuration == entity.BlockPermanent,
		}
	}

	return nil
}

func (s *registrationService) issue(ctx context.Context, email string) (*response.RegistrationStartedResponse, error) {
	if !s.allowSend(ctx, email) {
		return nil, ErrTooManyRequests
	}

	otp, err := s.otp.Issue(ctx, email, entity.OTPPurposeRegistration)
	if err != nil {
		return nil, err
	}

	return &response.RegistrationStartedResponse{
		Email:     email,
		ExpiresAt: otp.ExpiresAt,
	}, nil
}

// Complete verifies the emailed code and only then materializes the
// account. The registration fields ride along with the code, so an
// abandoned Start leaves nothing behind but an expiring ledger row.
func (s *registrationService) Complete(ctx context.Context, req *request.CompleteRegistrationRequest) (*response.RegistrationCompletedResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return nil, &ValidationError{Fields: errs}
	}
	req.Email = utils.NormalizeEmail(req.Email)

	if err := s.vet(ctx, req.Email, req.Role, req.CompanyName); err != nil {
		return nil, err
	}

	if err := s.otp.Verify(ctx, req.Email, req.OTP, entity.OTPPurposeRegistration); err != nil {
		return nil, err
	}

	hashed, err := utils.HashPassword(req.Password)
	if err != nil {
		s.log.Error("Failed to hash password", zap.Error(err))
		return nil, fmt.Errorf("process password: %w", err)
	}

	role := entity.UserRole(req.Role)
	now := time.Now()
	user := &entity.User{
		Base: entity.Base{
			ID:        utils.GenerateUUID(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		Fullname:      req.Fullname,
		Email:         req.Email,
		PasswordHash:  hashed,
		AuthProvider:  entity.ProviderLocal,
		Role:          role,
		AccountStatus: entity.DefaultAccountStatus(role),
		EmailVerified: true,
		IsActive:      true,
	}

	if role == entity.RoleRecruiter {
		approval := &entity.RecruiterApproval{
			BaseNoDelete: entity.BaseNoDelete{
				ID:        utils.GenerateUUID(),
				CreatedAt: now,
				UpdatedAt: now,
			},
			UserID:         user.ID,
			Status:         entity.ApprovalPending,
			CompanyName:    *req.CompanyName,
			CompanyWebsite: req.CompanyWebsite,
			Designation:    req.Designation,
			BlockDuration:  entity.BlockNone,
		}
		if err := s.repo.User.CreateWithApproval(ctx, user, approval); err != nil {
			return nil, err
		}
	} else {
		if err := s.repo.User.Create(ctx, user); err != nil {
			return nil, err
		}
	}

	resp := &response.RegistrationCompletedResponse{
		User:            response.UserToResponse(user),
		PendingApproval: role == entity.RoleRecruiter && user.AccountStatus == entity.AccountPending,
	}

	// Approved accounts go straight to a session; pending recruiters wait
	if user.AccountStatus == entity.AccountApproved {
		tokens, err := s.tokens.IssuePair(ctx, user)
		if err != nil {
			return nil, err
		}
		resp.Tokens = tokens
	}

	s.log.Info("Registration completed",
		zap.String("user_id", user.ID.String()),
		zap.Bool("pending_approval", resp.PendingApproval))

	return resp, nil
}

func (s *registrationService) Resend(ctx context.Context, req *request.ResendOTPRequest) (*response.RegistrationStartedResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return nil, &ValidationError{Fields: errs}
	}
	req.Email = utils.NormalizeEmail(req.Email)

	user, err := s.repo.User.FindByEmail(ctx, req.Email)
	if err != nil {
		return nil, err
	}

	purpose := entity.OTPPurpose(req.Purpose)
	if purpose == entity.OTPPurposeRegistration && user != nil {
		return nil, ErrEmailTaken
	}
	if purpose == entity.OTPPurposePasswordReset && user == nil {
		return nil, ErrNotFound
	}

	if !s.allowSend(ctx, req.Email) {
		return nil, ErrTooManyRequests
	}

	otp, err := s.otp.Issue(ctx, req.Email, purpose)
	if err != nil {
		return nil, err
	}

	return &response.RegistrationStartedResponse{
		Email:     req.Email,
		ExpiresAt: otp.ExpiresAt,
	}, nil
}
