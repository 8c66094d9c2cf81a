package usecase

import (
	"context"
	"testing"
	"time"

	"job-portal/internal/data/entity"
	"job-portal/internal/data/repository"
	"job-portal/internal/dto/request"
	"job-portal/pkg/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type registrationFixture struct {
	svc       *registrationService
	users     *fakeUserRepo
	approvals *fakeApprovalRepo
	otps      *fakeOTPRepo
	limits    *fakeRateLimitRepo
	tokens    *fakeTokenIssuer
}

func newRegistrationFixture(t *testing.T) *registrationFixture {
	t.Helper()

	repo, users, approvals, otps, limits, _ := newTestRepository()
	mail := &fakeMailer{}
	config := testConfig()
	log := zap.NewNop()

	otpSvc := &otpService{
		repo:   repo,
		mail:   mail,
		config: config,
		log:    log,
		now:    time.Now,
	}
	tokens := &fakeTokenIssuer{}

	return &registrationFixture{
		svc: &registrationService{
			repo:   repo,
			otp:    otpSvc,
			tokens: tokens,
			config: config,
			log:    log,
		},
		users:     users,
		approvals: approvals,
		otps:      otps,
		limits:    limits,
		tokens:    tokens,
	}
}

func candidateRequest(email string) *request.StartRegistrationRequest {
	return &request.StartRegistrationRequest{
		Fullname: "Alice Tan",
		Email:    email,
		Password: "supersecret",
		Role:     "candidate",
	}
}

func recruiterRequest(email, company string) *request.StartRegistrationRequest {
	designation := "HR Manager"
	return &request.StartRegistrationRequest{
		Fullname:    "Bob Recruiter",
		Email:       email,
		Password:    "supersecret",
		Role:        "recruiter",
		CompanyName: &company,
		Designation: &designation,
	}
}

// completion resubmits the start payload together with the emailed code
func completion(start *request.StartRegistrationRequest, code string) *request.CompleteRegistrationRequest {
	return &request.CompleteRegistrationRequest{
		Fullname:       start.Fullname,
		Email:          start.Email,
		Password:       start.Password,
		Role:           start.Role,
		CompanyName:    start.CompanyName,
		CompanyWebsite: start.CompanyWebsite,
		Designation:    start.Designation,
		OTP:            code,
	}
}

func seedVerifiedUser(t *testing.T, f *registrationFixture, email string, role entity.UserRole) *entity.User {
	t.Helper()
	now := time.Now()
	user := &entity.User{
		Base:          entity.Base{ID: utils.GenerateUUID(), CreatedAt: now, UpdatedAt: now},
		Fullname:      "Existing User",
		Email:         email,
		PasswordHash:  "irrelevant",
		AuthProvider:  entity.ProviderLocal,
		Role:          role,
		AccountStatus: entity.DefaultAccountStatus(role),
		EmailVerified: true,
		IsActive:      true,
	}
	require.NoError(t, f.users.Create(context.Background(), user))
	return user
}

func userCount(t *testing.T, f *registrationFixture) int64 {
	t.Helper()
	count, err := f.users.CountAll(context.Background(), repository.UserFilter{})
	require.NoError(t, err)
	return count
}

func TestRegistrationStart(t *testing.T) {
	ctx := context.Background()

	t.Run("issues a code without creating an account", func(t *testing.T) {
		f := newRegistrationFixture(t)

		resp, err := f.svc.Start(ctx, candidateRequest("alice@example.com"))
		require.NoError(t, err)
		assert.Equal(t, "alice@example.com", resp.Email)

		user, err := f.users.FindByEmail(ctx, "alice@example.com")
		require.NoError(t, err)
		assert.Nil(t, user)
		assert.Equal(t, 1, f.otps.countFor("alice@example.com", entity.OTPPurposeRegistration))
	})

	t.Run("a recruiter start reserves nothing", func(t *testing.T) {
		f := newRegistrationFixture(t)

		_, err := f.svc.Start(ctx, recruiterRequest("bob@acme.com", "Acme Corp"))
		require.NoError(t, err)

		// No account, no approval record, no claim on the company: a
		// second applicant for the same company can still start
		user, err := f.users.FindByEmail(ctx, "bob@acme.com")
		require.NoError(t, err)
		assert.Nil(t, user)
		record, err := f.approvals.FindActiveByCompany(ctx, "Acme Corp")
		require.NoError(t, err)
		assert.Nil(t, record)

		_, err = f.svc.Start(ctx, recruiterRequest("carol@acme.com", "Acme Corp"))
		assert.NoError(t, err)
	})

	t.Run("taken email cannot register again", func(t *testing.T) {
		f := newRegistrationFixture(t)
		seedVerifiedUser(t, f, "alice@example.com", entity.RoleCandidate)

		_, err := f.svc.Start(ctx, candidateRequest("alice@example.com"))
		assert.ErrorIs(t, err, ErrEmailTaken)
	})

	t.Run("restart hands out a fresh code", func(t *testing.T) {
		f := newRegistrationFixture(t)
		_, err := f.svc.Start(ctx, candidateRequest("alice@example.com"))
		require.NoError(t, err)

		_, err = f.svc.Start(ctx, candidateRequest("alice@example.com"))
		require.NoError(t, err)

		assert.Equal(t, int64(0), userCount(t, f))
		assert.Equal(t, 1, f.otps.countFor("alice@example.com", entity.OTPPurposeRegistration))
	})

	t.Run("recruiter without a company name", func(t *testing.T) {
		f := newRegistrationFixture(t)

		req := recruiterRequest("bob@acme.com", "Acme Corp")
		req.CompanyName = nil
		_, err := f.svc.Start(ctx, req)

		var verr *ValidationError
		require.ErrorAs(t, err, &verr)
		assert.Contains(t, verr.Fields, "company_name")
	})

	t.Run("bad payload fails validation", func(t *testing.T) {
		f := newRegistrationFixture(t)

		req := candidateRequest("not-an-email")
		req.Password = "short"
		_, err := f.svc.Start(ctx, req)

		var verr *ValidationError
		require.ErrorAs(t, err, &verr)
	})

	t.Run("company with a pending application is refused", func(t *testing.T) {
		f := newRegistrationFixture(t)
		start := recruiterRequest("bob@acme.com", "Acme Corp")
		_, err := f.svc.Start(ctx, start)
		require.NoError(t, err)
		code := storedCode(t, f.otps, "bob@acme.com")
		_, err = f.svc.Complete(ctx, completion(start, code))
		require.NoError(t, err)

		// Only the verified application holds the company
		_, err = f.svc.Start(ctx, recruiterRequest("carol@acme.com", "Acme Corp"))
		assert.ErrorIs(t, err, ErrCompanyApplicationPending)
	})

	t.Run("rejected company under a live block is refused", func(t *testing.T) {
		f := newRegistrationFixture(t)
		blockedUntil := time.Now().Add(5 * 24 * time.Hour)
		seedRejectedCompany(t, f, "Acme Corp", entity.BlockOneWeek, &blockedUntil)

		_, err := f.svc.Start(ctx, recruiterRequest("bob@acme.com", "Acme Corp"))

		var blocked *ReapplyBlockedError
		require.ErrorAs(t, err, &blocked)
		assert.False(t, blocked.Permanent)
		require.NotNil(t, blocked.BlockedUntil)
		assert.Equal(t, blockedUntil, *blocked.BlockedUntil)
	})

	t.Run("permanently blocked company is refused forever", func(t *testing.T) {
		f := newRegistrationFixture(t)
		seedRejectedCompany(t, f, "Acme Corp", entity.BlockPermanent, nil)

		_, err := f.svc.Start(ctx, recruiterRequest("bob@acme.com", "Acme Corp"))

		var blocked *ReapplyBlockedError
		require.ErrorAs(t, err, &blocked)
		assert.True(t, blocked.Permanent)
	})

	t.Run("expired block allows a new application", func(t *testing.T) {
		f := newRegistrationFixture(t)
		blockedUntil := time.Now().Add(-24 * time.Hour)
		seedRejectedCompany(t, f, "Acme Corp", entity.BlockTwoWeeks, &blockedUntil)

		_, err := f.svc.Start(ctx, recruiterRequest("bob@acme.com", "Acme Corp"))
		assert.NoError(t, err)
	})
}

func seedRejectedCompany(t *testing.T, f *registrationFixture, company string, duration entity.BlockDuration, blockedUntil *time.Time) {
	t.Helper()
	reason := "policy violation"
	approval := &entity.RecruiterApproval{
		BaseNoDelete: entity.BaseNoDelete{
			ID:        utils.GenerateUUID(),
			CreatedAt: time.Now().Add(-30 * 24 * time.Hour),
			UpdatedAt: time.Now().Add(-30 * 24 * time.Hour),
		},
		UserID:          utils.GenerateUUID(),
		Status:          entity.ApprovalRejected,
		CompanyName:     company,
		RejectionReason: &reason,
		BlockDuration:   duration,
		BlockedUntil:    blockedUntil,
	}
	require.NoError(t, f.approvals.Create(context.Background(), approval))
}

func TestRegistrationRateLimit(t *testing.T) {
	ctx := context.Background()
	f := newRegistrationFixture(t)

	_, err := f.svc.Start(ctx, candidateRequest("alice@example.com"))
	require.NoError(t, err)

	// Budget spent: the next resend must be refused
	f.limits.counts[otpRateLimitNS+":alice@example.com"] = otpSendLimit

	_, err = f.svc.Resend(ctx, &request.ResendOTPRequest{
		Email:   "alice@example.com",
		Purpose: "registration",
	})
	assert.ErrorIs(t, err, ErrTooManyRequests)
}

func TestRegistrationRateLimitFailsOpen(t *testing.T) {
	ctx := context.Background()
	f := newRegistrationFixture(t)

	_, err := f.svc.Start(ctx, candidateRequest("alice@example.com"))
	require.NoError(t, err)

	f.limits.err = assert.AnError

	_, err = f.svc.Resend(ctx, &request.ResendOTPRequest{
		Email:   "alice@example.com",
		Purpose: "registration",
	})
	assert.NoError(t, err)
}

func TestRegistrationComplete(t *testing.T) {
	ctx := context.Background()

	t.Run("candidate account exists only after the code checks out", func(t *testing.T) {
		f := newRegistrationFixture(t)
		start := candidateRequest("alice@example.com")
		_, err := f.svc.Start(ctx, start)
		require.NoError(t, err)
		code := storedCode(t, f.otps, "alice@example.com")

		resp, err := f.svc.Complete(ctx, completion(start, code))
		require.NoError(t, err)

		assert.False(t, resp.PendingApproval)
		require.NotNil(t, resp.Tokens)
		assert.Equal(t, 1, f.tokens.issued)

		user, err := f.users.FindByEmail(ctx, "alice@example.com")
		require.NoError(t, err)
		require.NotNil(t, user)
		assert.True(t, user.EmailVerified)
		assert.Equal(t, entity.AccountApproved, user.AccountStatus)
		assert.Equal(t, entity.RoleCandidate, user.Role)
	})

	t.Run("recruiter is created pending with an approval record", func(t *testing.T) {
		f := newRegistrationFixture(t)
		start := recruiterRequest("bob@acme.com", "Acme Corp")
		_, err := f.svc.Start(ctx, start)
		require.NoError(t, err)
		code := storedCode(t, f.otps, "bob@acme.com")

		resp, err := f.svc.Complete(ctx, completion(start, code))
		require.NoError(t, err)

		assert.True(t, resp.PendingApproval)
		assert.Nil(t, resp.Tokens)
		assert.Equal(t, 0, f.tokens.issued)

		user, err := f.users.FindByEmail(ctx, "bob@acme.com")
		require.NoError(t, err)
		require.NotNil(t, user)
		assert.True(t, user.EmailVerified)
		assert.Equal(t, entity.AccountPending, user.AccountStatus)

		approval, err := f.approvals.FindByUserID(ctx, user.ID)
		require.NoError(t, err)
		require.NotNil(t, approval)
		assert.Equal(t, entity.ApprovalPending, approval.Status)
		assert.Equal(t, "Acme Corp", approval.CompanyName)
	})

	t.Run("wrong code creates nothing", func(t *testing.T) {
		f := newRegistrationFixture(t)
		start := candidateRequest("alice@example.com")
		_, err := f.svc.Start(ctx, start)
		require.NoError(t, err)
		code := storedCode(t, f.otps, "alice@example.com")
		wrong := "000000"
		if wrong == code {
			wrong = "000001"
		}

		_, err = f.svc.Complete(ctx, completion(start, wrong))

		var invalid *InvalidOTPError
		require.ErrorAs(t, err, &invalid)
		assert.Equal(t, int64(0), userCount(t, f))
	})

	t.Run("no outstanding code", func(t *testing.T) {
		f := newRegistrationFixture(t)
		_, err := f.svc.Complete(ctx, completion(candidateRequest("nobody@example.com"), "123456"))
		assert.ErrorIs(t, err, ErrOTPNotFound)
	})

	t.Run("taken email is refused before the code is spent", func(t *testing.T) {
		f := newRegistrationFixture(t)
		start := candidateRequest("alice@example.com")
		_, err := f.svc.Start(ctx, start)
		require.NoError(t, err)
		code := storedCode(t, f.otps, "alice@example.com")

		seedVerifiedUser(t, f, "alice@example.com", entity.RoleCandidate)

		_, err = f.svc.Complete(ctx, completion(start, code))
		assert.ErrorIs(t, err, ErrEmailTaken)
	})

	t.Run("address case does not matter between start and complete", func(t *testing.T) {
		f := newRegistrationFixture(t)
		start := candidateRequest("Alice@Example.COM")
		_, err := f.svc.Start(ctx, start)
		require.NoError(t, err)
		code := storedCode(t, f.otps, "alice@example.com")

		done := completion(start, code)
		done.Email = "ALICE@example.com"
		_, err = f.svc.Complete(ctx, done)
		require.NoError(t, err)

		// Stored lowercase, so later logins and lookups agree on one key
		user, err := f.users.FindByEmail(ctx, "alice@example.com")
		require.NoError(t, err)
		require.NotNil(t, user)
		assert.Equal(t, "alice@example.com", user.Email)
	})
}

func TestRegistrationExhaustThenResend(t *testing.T) {
	ctx := context.Background()
	f := newRegistrationFixture(t)

	start := candidateRequest("alice@example.com")
	_, err := f.svc.Start(ctx, start)
	require.NoError(t, err)
	code := storedCode(t, f.otps, "alice@example.com")
	wrong := "000000"
	if wrong == code {
		wrong = "000001"
	}

	// Burn the whole attempt budget
	for i := 0; i < 3; i++ {
		_, err = f.svc.Complete(ctx, completion(start, wrong))
		var invalid *InvalidOTPError
		require.ErrorAs(t, err, &invalid)
	}

	// Even the correct code is dead now
	_, err = f.svc.Complete(ctx, completion(start, code))
	assert.ErrorIs(t, err, ErrOTPAttemptsExceeded)
	assert.Equal(t, int64(0), userCount(t, f))

	// A resend starts a fresh budget and the new code verifies
	_, err = f.svc.Resend(ctx, &request.ResendOTPRequest{
		Email:   "alice@example.com",
		Purpose: "registration",
	})
	require.NoError(t, err)

	fresh := storedCode(t, f.otps, "alice@example.com")
	resp, err := f.svc.Complete(ctx, completion(start, fresh))
	require.NoError(t, err)
	require.NotNil(t, resp.Tokens)
}

func TestRegistrationResend(t *testing.T) {
	ctx := context.Background()

	t.Run("pending signup gets a replacement code", func(t *testing.T) {
		f := newRegistrationFixture(t)
		_, err := f.svc.Start(ctx, candidateRequest("alice@example.com"))
		require.NoError(t, err)

		_, err = f.svc.Resend(ctx, &request.ResendOTPRequest{
			Email:   "alice@example.com",
			Purpose: "registration",
		})
		require.NoError(t, err)

		// Still exactly one live code after the replacement
		assert.Equal(t, 1, f.otps.countFor("alice@example.com", entity.OTPPurposeRegistration))
	})

	t.Run("existing account cannot request a registration code", func(t *testing.T) {
		f := newRegistrationFixture(t)
		seedVerifiedUser(t, f, "alice@example.com", entity.RoleCandidate)

		_, err := f.svc.Resend(ctx, &request.ResendOTPRequest{
			Email:   "alice@example.com",
			Purpose: "registration",
		})
		assert.ErrorIs(t, err, ErrEmailTaken)
	})

	t.Run("password reset codes need an account", func(t *testing.T) {
		f := newRegistrationFixture(t)
		_, err := f.svc.Resend(ctx, &request.ResendOTPRequest{
			Email:   "nobody@example.com",
			Purpose: "password-reset",
		})
		assert.ErrorIs(t, err, ErrNotFound)
	})
}
