package usecase

import (
	"context"
	"strings"
	"testing"
	"time"

	"job-portal/internal/data/entity"
	"job-portal/internal/dto/request"
	"job-portal/pkg/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type authFixture struct {
	svc   *authService
	users *fakeUserRepo
	otps  *fakeOTPRepo
	mail  *fakeMailer
	blobs *fakeBlobStore
}

func newAuthFixture(t *testing.T) *authFixture {
	t.Helper()

	repo, users, _, otps, _, _ := newTestRepository()
	mail := &fakeMailer{}
	blobs := newFakeBlobStore()
	log := zap.NewNop()

	config := testConfig()
	config.JWT = utils.JWTConfig{
		AccessSecret:      "test-access-secret",
		RefreshSecret:     "test-refresh-secret",
		AccessExpiryHours: 1,
		RefreshExpiryDays: 7,
	}

	otpSvc := &otpService{
		repo:   repo,
		mail:   mail,
		config: config,
		log:    log,
		now:    time.Now,
	}

	return &authFixture{
		svc: &authService{
			repo:   repo,
			otp:    otpSvc,
			blob:   blobs,
			config: config,
			log:    log,
		},
		users: users,
		otps:  otps,
		mail:  mail,
		blobs: blobs,
	}
}

// seedAccount creates a verified, active, local account with the given password
func (f *authFixture) seedAccount(t *testing.T, email, password string, role entity.UserRole, status entity.AccountStatus) *entity.User {
	t.Helper()

	hashed, err := utils.HashPassword(password)
	require.NoError(t, err)

	user := &entity.User{
		Base: entity.Base{
			ID:        utils.GenerateUUID(),
			CreatedAt: time.Now(),
			UpdatedAt: time.Now(),
		},
		Fullname:      "Alice Tan",
		Email:         email,
		PasswordHash:  hashed,
		AuthProvider:  entity.ProviderLocal,
		Role:          role,
		AccountStatus: status,
		EmailVerified: true,
		IsActive:      true,
	}
	require.NoError(t, f.users.Create(context.Background(), user))
	return user
}

func TestLogin(t *testing.T) {
	ctx := context.Background()

	t.Run("approved account gets a session", func(t *testing.T) {
		f := newAuthFixture(t)
		user := f.seedAccount(t, "alice@example.com", "supersecret", entity.RoleCandidate, entity.AccountApproved)

		resp, err := f.svc.Login(ctx, &request.LoginRequest{Email: "alice@example.com", Password: "supersecret"})
		require.NoError(t, err)

		assert.NotEmpty(t, resp.AccessToken)
		assert.NotEmpty(t, resp.RefreshToken)

		// The refresh token is persisted for rotation checks
		stored, _ := f.users.FindByID(ctx, user.ID)
		assert.Equal(t, resp.RefreshToken, stored.RefreshToken)
	})

	t.Run("address case does not matter", func(t *testing.T) {
		f := newAuthFixture(t)
		f.seedAccount(t, "alice@example.com", "supersecret", entity.RoleCandidate, entity.AccountApproved)

		resp, err := f.svc.Login(ctx, &request.LoginRequest{Email: "Alice@Example.COM", Password: "supersecret"})
		require.NoError(t, err)
		assert.NotEmpty(t, resp.AccessToken)
	})

	t.Run("unknown email reads like a wrong password", func(t *testing.T) {
		f := newAuthFixture(t)
		_, err := f.svc.Login(ctx, &request.LoginRequest{Email: "nobody@example.com", Password: "whatever1"})
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("wrong password", func(t *testing.T) {
		f := newAuthFixture(t)
		f.seedAccount(t, "alice@example.com", "supersecret", entity.RoleCandidate, entity.AccountApproved)

		_, err := f.svc.Login(ctx, &request.LoginRequest{Email: "alice@example.com", Password: "notitnotit"})
		assert.ErrorIs(t, err, entity.ErrIncorrectPassword)
	})

	t.Run("unverified email is refused after the credential check", func(t *testing.T) {
		f := newAuthFixture(t)
		user := f.seedAccount(t, "alice@example.com", "supersecret", entity.RoleCandidate, entity.AccountApproved)
		user.EmailVerified = false
		require.NoError(t, f.users.Update(ctx, user))

		_, err := f.svc.Login(ctx, &request.LoginRequest{Email: "alice@example.com", Password: "supersecret"})
		assert.ErrorIs(t, err, ErrEmailNotVerified)
	})

	t.Run("pending recruiter", func(t *testing.T) {
		f := newAuthFixture(t)
		f.seedAccount(t, "bob@acme.com", "supersecret", entity.RoleRecruiter, entity.AccountPending)

		_, err := f.svc.Login(ctx, &request.LoginRequest{Email: "bob@acme.com", Password: "supersecret"})
		assert.ErrorIs(t, err, entity.ErrPendingApproval)
	})

	t.Run("blocked recruiter", func(t *testing.T) {
		f := newAuthFixture(t)
		f.seedAccount(t, "bob@acme.com", "supersecret", entity.RoleRecruiter, entity.AccountBlocked)

		_, err := f.svc.Login(ctx, &request.LoginRequest{Email: "bob@acme.com", Password: "supersecret"})
		assert.ErrorIs(t, err, entity.ErrBlocked)
	})

	t.Run("deactivated account", func(t *testing.T) {
		f := newAuthFixture(t)
		user := f.seedAccount(t, "alice@example.com", "supersecret", entity.RoleCandidate, entity.AccountApproved)
		user.IsActive = false
		require.NoError(t, f.users.Update(ctx, user))

		_, err := f.svc.Login(ctx, &request.LoginRequest{Email: "alice@example.com", Password: "supersecret"})
		assert.ErrorIs(t, err, entity.ErrDeactivated)
	})

	t.Run("external provider account", func(t *testing.T) {
		f := newAuthFixture(t)
		user := f.seedAccount(t, "alice@example.com", "supersecret", entity.RoleCandidate, entity.AccountApproved)
		user.AuthProvider = entity.ProviderGoogle
		require.NoError(t, f.users.Update(ctx, user))

		_, err := f.svc.Login(ctx, &request.LoginRequest{Email: "alice@example.com", Password: "supersecret"})
		assert.ErrorIs(t, err, entity.ErrWrongProvider)
	})
}

func TestRefresh(t *testing.T) {
	ctx := context.Background()

	t.Run("stored token rotates into a new pair", func(t *testing.T) {
		f := newAuthFixture(t)
		user := f.seedAccount(t, "alice@example.com", "supersecret", entity.RoleCandidate, entity.AccountApproved)

		login, err := f.svc.Login(ctx, &request.LoginRequest{Email: "alice@example.com", Password: "supersecret"})
		require.NoError(t, err)

		pair, err := f.svc.Refresh(ctx, &request.RefreshRequest{RefreshToken: login.RefreshToken})
		require.NoError(t, err)
		assert.NotEmpty(t, pair.AccessToken)

		stored, _ := f.users.FindByID(ctx, user.ID)
		assert.Equal(t, pair.RefreshToken, stored.RefreshToken)
	})

	t.Run("token that does not match the stored one is dead", func(t *testing.T) {
		f := newAuthFixture(t)
		user := f.seedAccount(t, "alice@example.com", "supersecret", entity.RoleCandidate, entity.AccountApproved)

		login, err := f.svc.Login(ctx, &request.LoginRequest{Email: "alice@example.com", Password: "supersecret"})
		require.NoError(t, err)

		// Simulate the real client having rotated already
		require.NoError(t, f.users.UpdateRefreshToken(ctx, user.ID, "rotated-elsewhere"))

		_, err = f.svc.Refresh(ctx, &request.RefreshRequest{RefreshToken: login.RefreshToken})
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("garbage token", func(t *testing.T) {
		f := newAuthFixture(t)
		_, err := f.svc.Refresh(ctx, &request.RefreshRequest{RefreshToken: "not.a.jwt"})
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("deactivated account cannot refresh", func(t *testing.T) {
		f := newAuthFixture(t)
		user := f.seedAccount(t, "alice@example.com", "supersecret", entity.RoleCandidate, entity.AccountApproved)

		login, err := f.svc.Login(ctx, &request.LoginRequest{Email: "alice@example.com", Password: "supersecret"})
		require.NoError(t, err)

		stored, _ := f.users.FindByID(ctx, user.ID)
		stored.IsActive = false
		require.NoError(t, f.users.Update(ctx, stored))

		_, err = f.svc.Refresh(ctx, &request.RefreshRequest{RefreshToken: login.RefreshToken})
		assert.ErrorIs(t, err, entity.ErrDeactivated)
	})
}

func TestLogout(t *testing.T) {
	ctx := context.Background()
	f := newAuthFixture(t)
	user := f.seedAccount(t, "alice@example.com", "supersecret", entity.RoleCandidate, entity.AccountApproved)

	login, err := f.svc.Login(ctx, &request.LoginRequest{Email: "alice@example.com", Password: "supersecret"})
	require.NoError(t, err)

	require.NoError(t, f.svc.Logout(ctx, user.ID))

	stored, _ := f.users.FindByID(ctx, user.ID)
	assert.Empty(t, stored.RefreshToken)

	_, err = f.svc.Refresh(ctx, &request.RefreshRequest{RefreshToken: login.RefreshToken})
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestChangePassword(t *testing.T) {
	ctx := context.Background()

	t.Run("success invalidates the session", func(t *testing.T) {
		f := newAuthFixture(t)
		user := f.seedAccount(t, "alice@example.com", "supersecret", entity.RoleCandidate, entity.AccountApproved)
		require.NoError(t, f.users.UpdateRefreshToken(ctx, user.ID, "live-session"))

		err := f.svc.ChangePassword(ctx, user.ID, &request.ChangePasswordRequest{
			CurrentPassword: "supersecret",
			NewPassword:     "evenmoresecret",
		})
		require.NoError(t, err)

		stored, _ := f.users.FindByID(ctx, user.ID)
		assert.Empty(t, stored.RefreshToken)
		assert.True(t, utils.CheckPasswordHash("evenmoresecret", stored.PasswordHash))
	})

	t.Run("wrong current password", func(t *testing.T) {
		f := newAuthFixture(t)
		user := f.seedAccount(t, "alice@example.com", "supersecret", entity.RoleCandidate, entity.AccountApproved)

		err := f.svc.ChangePassword(ctx, user.ID, &request.ChangePasswordRequest{
			CurrentPassword: "notitnotit",
			NewPassword:     "evenmoresecret",
		})
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("external provider accounts have no password", func(t *testing.T) {
		f := newAuthFixture(t)
		user := f.seedAccount(t, "alice@example.com", "supersecret", entity.RoleCandidate, entity.AccountApproved)
		user.AuthProvider = entity.ProviderGoogle
		require.NoError(t, f.users.Update(ctx, user))

		err := f.svc.ChangePassword(ctx, user.ID, &request.ChangePasswordRequest{
			CurrentPassword: "supersecret",
			NewPassword:     "evenmoresecret",
		})
		assert.ErrorIs(t, err, entity.ErrWrongProvider)
	})
}

func TestUploadAvatar(t *testing.T) {
	ctx := context.Background()

	t.Run("stores the image and points the profile at it", func(t *testing.T) {
		f := newAuthFixture(t)
		user := f.seedAccount(t, "alice@example.com", "supersecret", entity.RoleCandidate, entity.AccountApproved)

		resp, err := f.svc.UploadAvatar(ctx, user.ID, strings.NewReader("png bytes"), "image/png")
		require.NoError(t, err)
		require.NotNil(t, resp.ProfilePic)
		assert.Contains(t, *resp.ProfilePic, "avatars/")

		stored, _ := f.users.FindByID(ctx, user.ID)
		require.NotNil(t, stored.ProfilePic)
		assert.Equal(t, *resp.ProfilePic, *stored.ProfilePic)
		assert.Len(t, f.blobs.uploads, 1)
	})

	t.Run("failed upload leaves the profile untouched", func(t *testing.T) {
		f := newAuthFixture(t)
		user := f.seedAccount(t, "alice@example.com", "supersecret", entity.RoleCandidate, entity.AccountApproved)
		f.blobs.uploadErr = assert.AnError

		_, err := f.svc.UploadAvatar(ctx, user.ID, strings.NewReader("png bytes"), "image/png")
		require.Error(t, err)

		stored, _ := f.users.FindByID(ctx, user.ID)
		assert.Nil(t, stored.ProfilePic)
	})

	t.Run("unknown user", func(t *testing.T) {
		f := newAuthFixture(t)
		_, err := f.svc.UploadAvatar(ctx, utils.GenerateUUID(), strings.NewReader("png bytes"), "image/png")
		assert.ErrorIs(t, err, ErrNotFound)
		assert.Empty(t, f.blobs.uploads)
	})
}

func TestPasswordReset(t *testing.T) {
	ctx := context.Background()

	t.Run("full forgot-then-reset flow", func(t *testing.T) {
		f := newAuthFixture(t)
		user := f.seedAccount(t, "alice@example.com", "supersecret", entity.RoleCandidate, entity.AccountApproved)
		require.NoError(t, f.users.UpdateRefreshToken(ctx, user.ID, "live-session"))

		require.NoError(t, f.svc.ForgotPassword(ctx, &request.ForgotPasswordRequest{Email: "alice@example.com"}))
		assert.Equal(t, 1, f.otps.countFor("alice@example.com", entity.OTPPurposePasswordReset))

		otp, err := f.otps.FindLatest(ctx, "alice@example.com", entity.OTPPurposePasswordReset)
		require.NoError(t, err)

		err = f.svc.ResetPassword(ctx, &request.ResetPasswordRequest{
			Email:       "alice@example.com",
			OTP:         otp.Code,
			NewPassword: "freshsecret",
		})
		require.NoError(t, err)

		stored, _ := f.users.FindByID(ctx, user.ID)
		assert.True(t, utils.CheckPasswordHash("freshsecret", stored.PasswordHash))
		assert.Empty(t, stored.RefreshToken)

		// The code is consumed
		err = f.svc.ResetPassword(ctx, &request.ResetPasswordRequest{
			Email:       "alice@example.com",
			OTP:         otp.Code,
			NewPassword: "freshsecret",
		})
		assert.ErrorIs(t, err, ErrOTPNotFound)
	})

	t.Run("unknown address succeeds silently without a code", func(t *testing.T) {
		f := newAuthFixture(t)
		require.NoError(t, f.svc.ForgotPassword(ctx, &request.ForgotPasswordRequest{Email: "nobody@example.com"}))
		assert.Equal(t, 0, f.mail.otpSends())
	})

	t.Run("external accounts never get a reset code", func(t *testing.T) {
		f := newAuthFixture(t)
		user := f.seedAccount(t, "alice@example.com", "supersecret", entity.RoleCandidate, entity.AccountApproved)
		user.AuthProvider = entity.ProviderGoogle
		require.NoError(t, f.users.Update(ctx, user))

		require.NoError(t, f.svc.ForgotPassword(ctx, &request.ForgotPasswordRequest{Email: "alice@example.com"}))
		assert.Equal(t, 0, f.otps.countFor("alice@example.com", entity.OTPPurposePasswordReset))
	})
}
