package usecase

import (
	"context"
	"fmt"
	"time"

	"job-portal/internal/data/entity"
	"job-portal/internal/data/repository"
	"job-portal/pkg/mailer"
	"job-portal/pkg/utils"

	"go.uber.org/zap"
)

// OTPService owns the one-time-code ledger: issue, verify, sweep.
type OTPService interface {
	Issue(ctx context.Context, email string, purpose entity.OTPPurpose) (*entity.OTPEntry, error)
	Verify(ctx context.Context, email, code string, purpose entity.OTPPurpose) error
	SweepExpired(ctx context.Context) (int64, error)
}

type otpService struct {
	repo   *repository.Repository
	mail   mailer.Service
	config *utils.Config
	log    *zap.Logger
	now    func() time.Time
}

func NewOTPService(
	repo *repository.Repository,
	mail mailer.Service,
	config *utils.Config,
	log *zap.Logger,
) OTPService {
	return &otpService{
		repo:   repo,
		mail:   mail,
		config: config,
		log:    log,
		now:    time.Now,
	}
}

// maxAttempts is the wrong-code budget, configurable like the TTL.
func (s *otpService) maxAttempts() int {
	if s.config.OTP.MaxAttempts > 0 {
		return s.config.OTP.MaxAttempts
	}
	return entity.MaxOTPAttempts
}

// Issue deletes any outstanding codes for the address first, so exactly
// one code is valid per (email, purpose) at a time. The email send is part
// of the operation; a failed send fails the issue.
func (s *otpService) Issue(ctx context.Context, email string, purpose entity.OTPPurpose) (*entity.OTPEntry, error) {
	email = utils.NormalizeEmail(email)
	if err := s.repo.OTP.DeleteByEmailPurpose(ctx, email, purpose); err != nil {
		s.log.Error("Failed to clear previous OTPs", zap.Error(err), zap.String("email", email))
		return nil, fmt.Errorf("clear previous codes: %w", err)
	}

	now := s.now()
	ttl := entity.DefaultOTPTTL
	if s.config.OTP.ExpiryMinutes > 0 {
		ttl = time.Duration(s.config.OTP.ExpiryMinutes) * time.Minute
	}

	otp := &entity.OTPEntry{
		BaseSimple: entity.BaseSimple{
			ID:        utils.GenerateUUID(),
			CreatedAt: now,
		},
		Email:     email,
		Code:      utils.GenerateOTP(s.config.OTP.Length),
		Purpose:   purpose,
		ExpiresAt: now.Add(ttl),
	}

	if err := s.repo.OTP.Create(ctx, otp); err != nil {
		return nil, err
	}

	if err := s.mail.SendOTPEmail(email, otp.Code, string(purpose)); err != nil {
		s.log.Error("Failed to send OTP email", zap.Error(err), zap.String("email", email))
		// Burn the unused code so a later resend starts clean
		if delErr := s.repo.OTP.Delete(ctx, otp.ID); delErr != nil {
			s.log.Warn("Failed to remove undelivered OTP", zap.Error(delErr))
		}
		return nil, ErrEmailDeliveryFailed
	}

	s.log.Info("OTP issued",
		zap.String("email", email),
		zap.String("purpose", string(purpose)),
		zap.Time("expires_at", otp.ExpiresAt))

	return otp, nil
}

// Verify checks the latest code for the address. Checks run in a fixed
// order: existence, expiry, attempt budget, then the code itself. A wrong
// code burns one attempt; the correct code consumes the entry. An entry
// whose budget is already spent is discarded, so nothing matches that
// address until a fresh code is issued.
func (s *otpService) Verify(ctx context.Context, email, code string, purpose entity.OTPPurpose) error {
	email = utils.NormalizeEmail(email)
	otp, err := s.repo.OTP.FindLatest(ctx, email, purpose)
	if err != nil {
		return err
	}
	if otp == nil {
		return ErrOTPNotFound
	}

	if otp.IsExpired(s.now()) {
		if err := s.repo.OTP.Delete(ctx, otp.ID); err != nil {
			s.log.Warn("Failed to delete expired OTP", zap.Error(err))
		}
		return ErrOTPExpired
	}

	if otp.Attempts >= s.maxAttempts() {
		if err := s.repo.OTP.Delete(ctx, otp.ID); err != nil {
			s.log.Warn("Failed to discard exhausted OTP", zap.Error(err))
		}
		return ErrOTPAttemptsExceeded
	}

	if otp.Code != code {
		attempts, err := s.repo.OTP.IncrementAttempts(ctx, otp.ID)
		if err != nil {
			return err
		}
		remaining := s.maxAttempts() - attempts
		if remaining < 0 {
			remaining = 0
		}
		return &InvalidOTPError{Remaining: remaining}
	}

	if err := s.repo.OTP.Delete(ctx, otp.ID); err != nil {
		s.log.Error("Failed to consume OTP", zap.Error(err), zap.String("email", email))
		return fmt.Errorf("consume code: %w", err)
	}

	s.log.Info("OTP verified", zap.String("email", email), zap.String("purpose", string(purpose)))
	return nil
}

// SweepExpired trims stale rows; run from the cron scheduler.
func (s *otpService) SweepExpired(ctx context.Context) (int64, error) {
	deleted, err := s.repo.OTP.DeleteExpired(ctx)
	if err != nil {
		s.log.Error("OTP sweep failed", zap.Error(err))
		return 0, err
	}

	if deleted > 0 {
		s.log.Info("Expired OTPs swept", zap.Int64("deleted", deleted))
	}
	return deleted, nil
}
