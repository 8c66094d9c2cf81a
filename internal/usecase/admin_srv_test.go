package usecase

import (
	"context"
	"testing"
	"time"

	"job-portal/internal/data/entity"
	"job-portal/internal/dto/request"
	"job-portal/pkg/utils"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type adminFixture struct {
	svc       *adminService
	users     *fakeUserRepo
	approvals *fakeApprovalRepo
	audits    *fakeAuditRepo
	now       time.Time
	adminID   uuid.UUID
}

func newAdminFixture(t *testing.T) *adminFixture {
	t.Helper()

	repo, users, approvals, _, _, audits := newTestRepository()
	now := time.Date(2026, 6, 15, 9, 30, 0, 0, time.UTC)

	return &adminFixture{
		svc: &adminService{
			repo: repo,
			mail: &fakeMailer{},
			log:  zap.NewNop(),
			now:  func() time.Time { return now },
		},
		users:     users,
		approvals: approvals,
		audits:    audits,
		now:       now,
		adminID:   utils.GenerateUUID(),
	}
}

// seedRecruiter creates a verified recruiter with a pending approval record
func (f *adminFixture) seedRecruiter(t *testing.T, email, company string) (*entity.User, *entity.RecruiterApproval) {
	t.Helper()
	ctx := context.Background()

	user := &entity.User{
		Base: entity.Base{
			ID:        utils.GenerateUUID(),
			CreatedAt: f.now.Add(-time.Hour),
			UpdatedAt: f.now.Add(-time.Hour),
		},
		Fullname:      "Bob Recruiter",
		Email:         email,
		AuthProvider:  entity.ProviderLocal,
		Role:          entity.RoleRecruiter,
		AccountStatus: entity.AccountPending,
		EmailVerified: true,
		IsActive:      true,
	}
	approval := &entity.RecruiterApproval{
		BaseNoDelete: entity.BaseNoDelete{
			ID:        utils.GenerateUUID(),
			CreatedAt: f.now.Add(-time.Hour),
			UpdatedAt: f.now.Add(-time.Hour),
		},
		UserID:        user.ID,
		Status:        entity.ApprovalPending,
		CompanyName:   company,
		BlockDuration: entity.BlockNone,
	}
	require.NoError(t, f.users.CreateWithApproval(ctx, user, approval))
	return user, approval
}

func TestAdminApprove(t *testing.T) {
	ctx := context.Background()

	t.Run("approval unlocks the recruiter account", func(t *testing.T) {
		f := newAdminFixture(t)
		user, approval := f.seedRecruiter(t, "bob@acme.com", "Acme Corp")

		resp, err := f.svc.Approve(ctx, approval.ID, f.adminID, &request.ApproveRecruiterRequest{})
		require.NoError(t, err)
		require.NotNil(t, resp)

		stored, _ := f.approvals.FindByID(ctx, approval.ID)
		assert.Equal(t, entity.ApprovalApproved, stored.Status)
		require.NotNil(t, stored.ApprovedBy)
		assert.Equal(t, f.adminID, *stored.ApprovedBy)

		account, _ := f.users.FindByID(ctx, user.ID)
		assert.Equal(t, entity.AccountApproved, account.AccountStatus)

		assert.Equal(t, "APPROVE_RECRUITER", f.audits.lastAction())
	})

	t.Run("second decision loses", func(t *testing.T) {
		f := newAdminFixture(t)
		_, approval := f.seedRecruiter(t, "bob@acme.com", "Acme Corp")

		_, err := f.svc.Approve(ctx, approval.ID, f.adminID, &request.ApproveRecruiterRequest{})
		require.NoError(t, err)

		_, err = f.svc.Approve(ctx, approval.ID, f.adminID, &request.ApproveRecruiterRequest{})
		assert.ErrorIs(t, err, entity.ErrAlreadyApproved)
	})

	t.Run("unknown approval", func(t *testing.T) {
		f := newAdminFixture(t)
		_, err := f.svc.Approve(ctx, utils.GenerateUUID(), f.adminID, &request.ApproveRecruiterRequest{})
		assert.ErrorIs(t, err, ErrNotFound)
	})
}

func TestAdminReject(t *testing.T) {
	ctx := context.Background()

	t.Run("plain rejection leaves the account rejected", func(t *testing.T) {
		f := newAdminFixture(t)
		user, approval := f.seedRecruiter(t, "bob@acme.com", "Acme Corp")

		_, err := f.svc.Reject(ctx, approval.ID, f.adminID, &request.RejectRecruiterRequest{
			Reason:        "company could not be verified",
			BlockDuration: "none",
		})
		require.NoError(t, err)

		stored, _ := f.approvals.FindByID(ctx, approval.ID)
		assert.Equal(t, entity.ApprovalRejected, stored.Status)
		assert.Nil(t, stored.BlockedUntil)

		account, _ := f.users.FindByID(ctx, user.ID)
		assert.Equal(t, entity.AccountRejected, account.AccountStatus)

		assert.Equal(t, "REJECT_RECRUITER", f.audits.lastAction())
	})

	t.Run("timed block stays on the approval record", func(t *testing.T) {
		f := newAdminFixture(t)
		user, approval := f.seedRecruiter(t, "bob@acme.com", "Acme Corp")

		_, err := f.svc.Reject(ctx, approval.ID, f.adminID, &request.RejectRecruiterRequest{
			Reason:        "fake job postings",
			BlockDuration: "1week",
		})
		require.NoError(t, err)

		stored, _ := f.approvals.FindByID(ctx, approval.ID)
		require.NotNil(t, stored.BlockedUntil)
		assert.Equal(t, f.now.Add(7*24*time.Hour), *stored.BlockedUntil)

		// The account mirrors the rejection regardless of the block; the
		// block only governs reapplying for the same company
		account, _ := f.users.FindByID(ctx, user.ID)
		assert.Equal(t, entity.AccountRejected, account.AccountStatus)
	})

	t.Run("permanent block carries no deadline", func(t *testing.T) {
		f := newAdminFixture(t)
		user, approval := f.seedRecruiter(t, "bob@acme.com", "Acme Corp")

		_, err := f.svc.Reject(ctx, approval.ID, f.adminID, &request.RejectRecruiterRequest{
			Reason:        "repeated fraud",
			BlockDuration: "permanent",
		})
		require.NoError(t, err)

		stored, _ := f.approvals.FindByID(ctx, approval.ID)
		assert.Equal(t, entity.BlockPermanent, stored.BlockDuration)
		assert.Nil(t, stored.BlockedUntil)

		account, _ := f.users.FindByID(ctx, user.ID)
		assert.Equal(t, entity.AccountRejected, account.AccountStatus)
	})

	t.Run("reason is mandatory", func(t *testing.T) {
		f := newAdminFixture(t)
		_, approval := f.seedRecruiter(t, "bob@acme.com", "Acme Corp")

		_, err := f.svc.Reject(ctx, approval.ID, f.adminID, &request.RejectRecruiterRequest{
			BlockDuration: "none",
		})

		var verr *ValidationError
		assert.ErrorAs(t, err, &verr)
	})

	t.Run("unknown block duration fails validation", func(t *testing.T) {
		f := newAdminFixture(t)
		_, approval := f.seedRecruiter(t, "bob@acme.com", "Acme Corp")

		_, err := f.svc.Reject(ctx, approval.ID, f.adminID, &request.RejectRecruiterRequest{
			Reason:        "spam",
			BlockDuration: "3weeks",
		})

		var verr *ValidationError
		assert.ErrorAs(t, err, &verr)
	})

	t.Run("approved records cannot be rejected", func(t *testing.T) {
		f := newAdminFixture(t)
		_, approval := f.seedRecruiter(t, "bob@acme.com", "Acme Corp")

		_, err := f.svc.Approve(ctx, approval.ID, f.adminID, &request.ApproveRecruiterRequest{})
		require.NoError(t, err)

		_, err = f.svc.Reject(ctx, approval.ID, f.adminID, &request.RejectRecruiterRequest{
			Reason:        "changed my mind",
			BlockDuration: "none",
		})
		assert.ErrorIs(t, err, entity.ErrInvalidTransition)
	})
}

func TestAdminDeleteApproval(t *testing.T) {
	ctx := context.Background()

	t.Run("pending application takes its account with it", func(t *testing.T) {
		f := newAdminFixture(t)
		user, approval := f.seedRecruiter(t, "bob@acme.com", "Acme Corp")

		require.NoError(t, f.svc.DeleteApproval(ctx, approval.ID, f.adminID))

		gone, _ := f.approvals.FindByID(ctx, approval.ID)
		assert.Nil(t, gone)

		account, _ := f.users.FindByID(ctx, user.ID)
		assert.Nil(t, account)

		assert.Equal(t, "DELETE_APPROVAL", f.audits.lastAction())
	})

	t.Run("decided application keeps the account", func(t *testing.T) {
		f := newAdminFixture(t)
		user, approval := f.seedRecruiter(t, "bob@acme.com", "Acme Corp")

		_, err := f.svc.Reject(ctx, approval.ID, f.adminID, &request.RejectRecruiterRequest{
			Reason:        "unverifiable",
			BlockDuration: "none",
		})
		require.NoError(t, err)

		require.NoError(t, f.svc.DeleteApproval(ctx, approval.ID, f.adminID))

		account, _ := f.users.FindByID(ctx, user.ID)
		assert.NotNil(t, account)
	})

	t.Run("unknown approval", func(t *testing.T) {
		f := newAdminFixture(t)
		err := f.svc.DeleteApproval(ctx, utils.GenerateUUID(), f.adminID)
		assert.ErrorIs(t, err, ErrNotFound)
	})
}

func TestAdminSetUserActive(t *testing.T) {
	ctx := context.Background()

	t.Run("deactivation kills the live session", func(t *testing.T) {
		f := newAdminFixture(t)
		user, _ := f.seedRecruiter(t, "bob@acme.com", "Acme Corp")
		require.NoError(t, f.users.UpdateRefreshToken(ctx, user.ID, "live-session-token"))

		require.NoError(t, f.svc.SetUserActive(ctx, user.ID, f.adminID, false))

		account, _ := f.users.FindByID(ctx, user.ID)
		assert.False(t, account.IsActive)
		assert.Empty(t, account.RefreshToken)
		assert.Equal(t, "DEACTIVATE_USER", f.audits.lastAction())
	})

	t.Run("reactivation", func(t *testing.T) {
		f := newAdminFixture(t)
		user, _ := f.seedRecruiter(t, "bob@acme.com", "Acme Corp")
		require.NoError(t, f.svc.SetUserActive(ctx, user.ID, f.adminID, false))

		require.NoError(t, f.svc.SetUserActive(ctx, user.ID, f.adminID, true))

		account, _ := f.users.FindByID(ctx, user.ID)
		assert.True(t, account.IsActive)
		assert.Equal(t, "ACTIVATE_USER", f.audits.lastAction())
	})

	t.Run("unknown user", func(t *testing.T) {
		f := newAdminFixture(t)
		err := f.svc.SetUserActive(ctx, utils.GenerateUUID(), f.adminID, false)
		assert.ErrorIs(t, err, ErrNotFound)
	})
}

func TestAdminSetUserRole(t *testing.T) {
	ctx := context.Background()

	t.Run("promotion to recruiter without approval goes pending", func(t *testing.T) {
		f := newAdminFixture(t)
		user := &entity.User{
			Base: entity.Base{
				ID:        utils.GenerateUUID(),
				CreatedAt: f.now.Add(-time.Hour),
				UpdatedAt: f.now.Add(-time.Hour),
			},
			Fullname:      "Alice Tan",
			Email:         "alice@example.com",
			AuthProvider:  entity.ProviderLocal,
			Role:          entity.RoleCandidate,
			AccountStatus: entity.AccountApproved,
			EmailVerified: true,
			IsActive:      true,
		}
		require.NoError(t, f.users.Create(ctx, user))

		require.NoError(t, f.svc.SetUserRole(ctx, user.ID, f.adminID, entity.RoleRecruiter))

		account, _ := f.users.FindByID(ctx, user.ID)
		assert.Equal(t, entity.RoleRecruiter, account.Role)
		assert.Equal(t, entity.AccountPending, account.AccountStatus)
		assert.Equal(t, "UPDATE_USER_ROLE", f.audits.lastAction())
	})

	t.Run("approved recruiter keeps approval on re-grant", func(t *testing.T) {
		f := newAdminFixture(t)
		user, approval := f.seedRecruiter(t, "bob@acme.com", "Acme Corp")
		_, err := f.svc.Approve(ctx, approval.ID, f.adminID, &request.ApproveRecruiterRequest{})
		require.NoError(t, err)

		// Demote and promote again; the approved record carries over
		require.NoError(t, f.svc.SetUserRole(ctx, user.ID, f.adminID, entity.RoleCandidate))
		require.NoError(t, f.svc.SetUserRole(ctx, user.ID, f.adminID, entity.RoleRecruiter))

		account, _ := f.users.FindByID(ctx, user.ID)
		assert.Equal(t, entity.AccountApproved, account.AccountStatus)
	})

	t.Run("unknown user", func(t *testing.T) {
		f := newAdminFixture(t)
		err := f.svc.SetUserRole(ctx, utils.GenerateUUID(), f.adminID, entity.RoleAdmin)
		assert.ErrorIs(t, err, ErrNotFound)
	})
}

func TestAdminDeleteUser(t *testing.T) {
	ctx := context.Background()
	f := newAdminFixture(t)
	user, _ := f.seedRecruiter(t, "bob@acme.com", "Acme Corp")

	require.NoError(t, f.svc.DeleteUser(ctx, user.ID, f.adminID))

	account, err := f.users.FindByID(ctx, user.ID)
	require.NoError(t, err)
	assert.Nil(t, account)
	assert.Equal(t, "DELETE_USER", f.audits.lastAction())

	// Deleting twice reports not found
	assert.ErrorIs(t, f.svc.DeleteUser(ctx, user.ID, f.adminID), ErrNotFound)
}
