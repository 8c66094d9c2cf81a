package usecase

import (
	"context"
	"fmt"
	"io"
	"time"

	"job-portal/internal/data/entity"
	"job-portal/internal/data/repository"
	"job-portal/internal/dto/request"
	"job-portal/internal/dto/response"
	"job-portal/pkg/auth"
	"job-portal/pkg/blob"
	"job-portal/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// TokenIssuer mints a signed access/refresh pair for a user and persists
// the refresh token for rotation checks.
type TokenIssuer interface {
	IssuePair(ctx context.Context, user *entity.User) (*response.TokenPairResponse, error)
}

type AuthService interface {
	TokenIssuer
	Login(ctx context.Context, req *request.LoginRequest) (*response.AuthResponse, error)
	Refresh(ctx context.Context, req *request.RefreshRequest) (*response.TokenPairResponse, error)
	Logout(ctx context.Context, userID uuid.UUID) error
	Me(ctx context.Context, userID uuid.UUID) (*response.UserResponse, error)
	UpdateProfile(ctx context.Context, userID uuid.UUID, req *request.UpdateProfileRequest) (*response.UserResponse, error)
	UploadAvatar(ctx context.Context, userID uuid.UUID, avatar io.Reader, contentType string) (*response.UserResponse, error)
	ChangePassword(ctx context.Context, userID uuid.UUID, req *request.ChangePasswordRequest) error
	ForgotPassword(ctx context.Context, req *request.ForgotPasswordRequest) error
	ResetPassword(ctx context.Context, req *request.ResetPasswordRequest) error
}

type authService struct {
	repo   *repository.Repository
	otp    OTPService
	blob   blob.Store
	config *utils.Config
	log    *zap.Logger
}

func NewAuthService(
	repo *repository.Repository,
	otp OTPService,
	blobStore blob.Store,
	config *utils.Config,
	log *zap.Logger,
) AuthService {
	return &authService{
		repo:   repo,
		otp:    otp,
		blob:   blobStore,
		config: config,
		log:    log,
	}
}

func (s *authService) accessTTL() time.Duration {
	return time.Duration(s.config.JWT.AccessExpiryHours) * time.Hour
}

func (s *authService) refreshTTL() time.Duration {
	return time.Duration(s.config.JWT.RefreshExpiryDays) * 24 * time.Hour
}

func (s *authService) IssuePair(ctx context.Context, user *entity.User) (*response.TokenPairResponse, error) {
	expiresAt := time.Now().Add(s.accessTTL())

	accessToken, err := auth.NewAccessToken(
		user.ID, user.Fullname, user.Email,
		string(user.Role), string(user.AccountStatus),
		s.config.JWT.AccessSecret, s.accessTTL(),
	)
	if err != nil {
		s.log.Error("Failed to sign access token", zap.Error(err))
		return nil, err
	}

	refreshToken, err := auth.NewRefreshToken(user.ID, s.config.JWT.RefreshSecret, s.refreshTTL())
	if err != nil {
		s.log.Error("Failed to sign refresh token", zap.Error(err))
		return nil, err
	}

	if err := s.repo.User.UpdateRefreshToken(ctx, user.ID, refreshToken); err != nil {
		return nil, err
	}

	return &response.TokenPairResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		ExpiresAt:    expiresAt,
	}, nil
}

// Login runs the gate in a fixed order: provider, credentials, active
// flag, then recruiter approval state. Unknown emails collapse into the
// same error as wrong passwords.
func (s *authService) Login(ctx context.Context, req *request.LoginRequest) (*response.AuthResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return nil, &ValidationError{Fields: errs}
	}

	req.Email = utils.NormalizeEmail(req.Email)
	user, err := s.repo.User.FindByEmail(ctx, req.Email)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrInvalidCredentials
	}

	credentialOK := utils.CheckPasswordHash(req.Password, user.PasswordHash)
	if err := entity.CheckLogin(user, credentialOK); err != nil {
		s.log.Info("Login denied",
			zap.String("email", req.Email),
			zap.String("reason", err.Error()))
		return nil, err
	}

	if !user.EmailVerified {
		return nil, ErrEmailNotVerified
	}

	tokens, err := s.IssuePair(ctx, user)
	if err != nil {
		return nil, err
	}

	s.log.Info("User logged in",
		zap.String("user_id", user.ID.String()),
		zap.String("role", string(user.Role)))

	resp := response.AuthToResponse(user, tokens.AccessToken, tokens.RefreshToken, tokens.ExpiresAt)
	return &resp, nil
}

// Refresh rotates the pair. The presented token must match the stored
// one, so a stolen token dies the first time the real client refreshes.
func (s *authService) Refresh(ctx context.Context, req *request.RefreshRequest) (*response.TokenPairResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return nil, &ValidationError{Fields: errs}
	}

	userID, err := auth.ParseSubject(req.RefreshToken, s.config.JWT.RefreshSecret)
	if err != nil {
		return nil, ErrInvalidToken
	}

	user, err := s.repo.User.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil || user.RefreshToken != req.RefreshToken {
		return nil, ErrInvalidToken
	}

	if !user.IsActive {
		return nil, entity.ErrDeactivated
	}

	return s.IssuePair(ctx, user)
}

func (s *authService) Logout(ctx context.Context, userID uuid.UUID) error {
	return s.repo.User.UpdateRefreshToken(ctx, userID, "")
}

func (s *authService) Me(ctx context.Context, userID uuid.UUID) (*response.UserResponse, error) {
	user, err := s.repo.User.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrNotFound
	}

	resp := response.UserToResponse(user)
	return &resp, nil
}

func (s *authService) UpdateProfile(ctx context.Context, userID uuid.UUID, req *request.UpdateProfileRequest) (*response.UserResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return nil, &ValidationError{Fields: errs}
	}

	user, err := s.repo.User.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrNotFound
	}

	if req.Fullname != nil {
		user.Fullname = *req.Fullname
	}
	if req.ProfilePic != nil {
		user.ProfilePic = req.ProfilePic
	}
	user.UpdatedAt = time.Now()

	if err := s.repo.User.Update(ctx, user); err != nil {
		return nil, err
	}

	resp := response.UserToResponse(user)
	return &resp, nil
}

// UploadAvatar streams the image to blob storage and points the profile
// at the new URL. The upload happens before the DB write; a failed write
// removes the orphaned object.
func (s *authService) UploadAvatar(ctx context.Context, userID uuid.UUID, avatar io.Reader, contentType string) (*response.UserResponse, error) {
	user, err := s.repo.User.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrNotFound
	}

	key := utils.GenerateStorageKey("avatars")
	avatarURL, err := s.blob.Upload(ctx, key, avatar, contentType)
	if err != nil {
		s.log.Error("Failed to upload avatar", zap.Error(err), zap.String("user_id", userID.String()))
		return nil, fmt.Errorf("upload avatar: %w", err)
	}

	user.ProfilePic = &avatarURL
	user.UpdatedAt = time.Now()
	if err := s.repo.User.Update(ctx, user); err != nil {
		if delErr := s.blob.Delete(ctx, key); delErr != nil {
			s.log.Warn("Failed to clean up orphaned avatar", zap.Error(delErr), zap.String("key", key))
		}
		return nil, err
	}

	s.log.Info("Avatar updated", zap.String("user_id", userID.String()))

	resp := response.UserToResponse(user)
	return &resp, nil
}

func (s *authService) ChangePassword(ctx context.Context, userID uuid.UUID, req *request.ChangePasswordRequest) error {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return &ValidationError{Fields: errs}
	}

	user, err := s.repo.User.FindByID(ctx, userID)
	if err != nil {
		return err
	}
	if user == nil {
		return ErrNotFound
	}

	if user.AuthProvider != entity.ProviderLocal {
		return entity.ErrWrongProvider
	}
	if !utils.CheckPasswordHash(req.CurrentPassword, user.PasswordHash) {
		return ErrInvalidCredentials
	}

	hashed, err := utils.HashPassword(req.NewPassword)
	if err != nil {
		return err
	}

	user.PasswordHash = hashed
	user.UpdatedAt = time.Now()
	if err := s.repo.User.Update(ctx, user); err != nil {
		return err
	}

	// Invalidate outstanding sessions
	if err := s.repo.User.UpdateRefreshToken(ctx, userID, ""); err != nil {
		s.log.Warn("Failed to clear refresh token after password change", zap.Error(err))
	}

	s.log.Info("Password changed", zap.String("user_id", userID.String()))
	return nil
}

// ForgotPassword never reveals whether the address exists; unknown emails
// succeed without sending anything.
func (s *authService) ForgotPassword(ctx context.Context, req *request.ForgotPasswordRequest) error {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return &ValidationError{Fields: errs}
	}

	req.Email = utils.NormalizeEmail(req.Email)
	user, err := s.repo.User.FindByEmail(ctx, req.Email)
	if err != nil {
		return err
	}
	if user == nil || user.AuthProvider != entity.ProviderLocal {
		s.log.Info("Password reset requested for unknown or external account",
			zap.String("email", req.Email))
		return nil
	}

	_, err = s.otp.Issue(ctx, req.Email, entity.OTPPurposePasswordReset)
	return err
}

func (s *authService) ResetPassword(ctx context.Context, req *request.ResetPasswordRequest) error {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return &ValidationError{Fields: errs}
	}

	req.Email = utils.NormalizeEmail(req.Email)
	user, err := s.repo.User.FindByEmail(ctx, req.Email)
	if err != nil {
		return err
	}
	if user == nil {
		return ErrNotFound
	}

	if err := s.otp.Verify(ctx, req.Email, req.OTP, entity.OTPPurposePasswordReset); err != nil {
		return err
	}

	hashed, err := utils.HashPassword(req.NewPassword)
	if err != nil {
		return err
	}

	user.PasswordHash = hashed
	user.UpdatedAt = time.Now()
	if err := s.repo.User.Update(ctx, user); err != nil {
		return err
	}

	if err := s.repo.User.UpdateRefreshToken(ctx, user.ID, ""); err != nil {
		s.log.Warn("Failed to clear refresh token after reset", zap.Error(err))
	}

	s.log.Info("Password reset", zap.String("user_id", user.ID.String()))
	return nil
}
