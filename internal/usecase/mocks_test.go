package usecase

import (
	"context"
	"errors"
	"io"
	"sync"
	"time"

	"job-portal/internal/data/entity"
	"job-portal/internal/data/repository"
	"job-portal/internal/dto/response"

	"github.com/google/uuid"
)

// In-memory repository fakes. Each covers just enough of the interface
// contract for the services under test; unused methods return zero values.

type fakeUserRepo struct {
	users     map[uuid.UUID]*entity.User
	approvals *fakeApprovalRepo
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[uuid.UUID]*entity.User)}
}

func (f *fakeUserRepo) Create(_ context.Context, user *entity.User) error {
	cp := *user
	f.users[user.ID] = &cp
	return nil
}

func (f *fakeUserRepo) CreateWithApproval(ctx context.Context, user *entity.User, approval *entity.RecruiterApproval) error {
	if err := f.Create(ctx, user); err != nil {
		return err
	}
	return f.approvals.Create(ctx, approval)
}

func (f *fakeUserRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.User, error) {
	user, ok := f.users[id]
	if !ok || user.DeletedAt != nil {
		return nil, nil
	}
	cp := *user
	return &cp, nil
}

func (f *fakeUserRepo) FindByEmail(_ context.Context, email string) (*entity.User, error) {
	for _, user := range f.users {
		if user.Email == email && user.DeletedAt == nil {
			cp := *user
			return &cp, nil
		}
	}
	return nil, nil
}

func (f *fakeUserRepo) FindAll(_ context.Context, _ repository.UserFilter, _, _ int) ([]*entity.User, error) {
	var out []*entity.User
	for _, user := range f.users {
		if user.DeletedAt == nil {
			cp := *user
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (f *fakeUserRepo) CountAll(_ context.Context, _ repository.UserFilter) (int64, error) {
	var count int64
	for _, user := range f.users {
		if user.DeletedAt == nil {
			count++
		}
	}
	return count, nil
}

func (f *fakeUserRepo) Update(_ context.Context, user *entity.User) error {
	if _, ok := f.users[user.ID]; !ok {
		return errors.New("user not found")
	}
	cp := *user
	f.users[user.ID] = &cp
	return nil
}

func (f *fakeUserRepo) UpdateRefreshToken(_ context.Context, id uuid.UUID, refreshToken string) error {
	user, ok := f.users[id]
	if !ok {
		return errors.New("user not found")
	}
	user.RefreshToken = refreshToken
	return nil
}

func (f *fakeUserRepo) UpdateAccountStatus(_ context.Context, id uuid.UUID, status entity.AccountStatus) error {
	user, ok := f.users[id]
	if !ok {
		return errors.New("user not found")
	}
	user.AccountStatus = status
	return nil
}

func (f *fakeUserRepo) Delete(_ context.Context, id uuid.UUID) error {
	user, ok := f.users[id]
	if !ok || user.DeletedAt != nil {
		return errors.New("user not found")
	}
	now := time.Now()
	user.DeletedAt = &now
	return nil
}

func (f *fakeUserRepo) AddBookmark(_ context.Context, _, _ uuid.UUID) error    { return nil }
func (f *fakeUserRepo) RemoveBookmark(_ context.Context, _, _ uuid.UUID) error { return nil }
func (f *fakeUserRepo) FindBookmarks(_ context.Context, _ uuid.UUID) ([]uuid.UUID, error) {
	return nil, nil
}

func (f *fakeUserRepo) CountByRole(_ context.Context, role entity.UserRole) (int64, error) {
	var count int64
	for _, user := range f.users {
		if user.Role == role && user.DeletedAt == nil {
			count++
		}
	}
	return count, nil
}

type fakeApprovalRepo struct {
	approvals map[uuid.UUID]*entity.RecruiterApproval
	users     *fakeUserRepo
}

func newFakeApprovalRepo() *fakeApprovalRepo {
	return &fakeApprovalRepo{approvals: make(map[uuid.UUID]*entity.RecruiterApproval)}
}

func (f *fakeApprovalRepo) Create(_ context.Context, approval *entity.RecruiterApproval) error {
	cp := *approval
	f.approvals[approval.ID] = &cp
	return nil
}

func (f *fakeApprovalRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.RecruiterApproval, error) {
	approval, ok := f.approvals[id]
	if !ok {
		return nil, nil
	}
	cp := *approval
	return &cp, nil
}

func (f *fakeApprovalRepo) FindByUserID(_ context.Context, userID uuid.UUID) (*entity.RecruiterApproval, error) {
	for _, approval := range f.approvals {
		if approval.UserID == userID {
			cp := *approval
			return &cp, nil
		}
	}
	return nil, nil
}

func (f *fakeApprovalRepo) FindActiveByCompany(_ context.Context, companyName string) (*entity.RecruiterApproval, error) {
	var latest *entity.RecruiterApproval
	for _, approval := range f.approvals {
		if approval.CompanyName != companyName {
			continue
		}
		if approval.Status != entity.ApprovalPending && approval.Status != entity.ApprovalRejected {
			continue
		}
		if latest == nil || approval.CreatedAt.After(latest.CreatedAt) {
			latest = approval
		}
	}
	if latest == nil {
		return nil, nil
	}
	cp := *latest
	return &cp, nil
}

func (f *fakeApprovalRepo) FindAll(_ context.Context, status string, _, _ int) ([]*entity.RecruiterApproval, error) {
	var out []*entity.RecruiterApproval
	for _, approval := range f.approvals {
		if status != "" && status != "all" && string(approval.Status) != status {
			continue
		}
		cp := *approval
		out = append(out, &cp)
	}
	return out, nil
}

func (f *fakeApprovalRepo) CountAll(_ context.Context, status string) (int64, error) {
	all, _ := f.FindAll(context.Background(), status, 0, 0)
	return int64(len(all)), nil
}

func (f *fakeApprovalRepo) CountByStatus(_ context.Context, status entity.ApprovalStatus) (int64, error) {
	var count int64
	for _, approval := range f.approvals {
		if approval.Status == status {
			count++
		}
	}
	return count, nil
}

func (f *fakeApprovalRepo) FindRecent(_ context.Context, limit int) ([]*entity.RecruiterApproval, error) {
	all, _ := f.FindAll(context.Background(), "", 0, 0)
	if len(all) > limit {
		all = all[:limit]
	}
	return all, nil
}

func (f *fakeApprovalRepo) Update(_ context.Context, approval *entity.RecruiterApproval) error {
	if _, ok := f.approvals[approval.ID]; !ok {
		return errors.New("approval not found")
	}
	cp := *approval
	f.approvals[approval.ID] = &cp
	return nil
}

func (f *fakeApprovalRepo) DeleteWithPendingUser(ctx context.Context, approval *entity.RecruiterApproval) error {
	if _, ok := f.approvals[approval.ID]; !ok {
		return errors.New("approval not found")
	}
	delete(f.approvals, approval.ID)
	if approval.Status == entity.ApprovalPending && f.users != nil {
		_ = f.users.Delete(ctx, approval.UserID)
	}
	return nil
}

type fakeOTPRepo struct {
	entries   map[uuid.UUID]*entity.OTPEntry
	createErr error
}

func newFakeOTPRepo() *fakeOTPRepo {
	return &fakeOTPRepo{entries: make(map[uuid.UUID]*entity.OTPEntry)}
}

func (f *fakeOTPRepo) Create(_ context.Context, otp *entity.OTPEntry) error {
	if f.createErr != nil {
		return f.createErr
	}
	cp := *otp
	f.entries[otp.ID] = &cp
	return nil
}

func (f *fakeOTPRepo) FindLatest(_ context.Context, email string, purpose entity.OTPPurpose) (*entity.OTPEntry, error) {
	var latest *entity.OTPEntry
	for _, otp := range f.entries {
		if otp.Email != email || otp.Purpose != purpose {
			continue
		}
		if latest == nil || otp.CreatedAt.After(latest.CreatedAt) {
			latest = otp
		}
	}
	if latest == nil {
		return nil, nil
	}
	cp := *latest
	return &cp, nil
}

func (f *fakeOTPRepo) IncrementAttempts(_ context.Context, id uuid.UUID) (int, error) {
	otp, ok := f.entries[id]
	if !ok {
		return 0, errors.New("otp not found")
	}
	otp.Attempts++
	return otp.Attempts, nil
}

func (f *fakeOTPRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(f.entries, id)
	return nil
}

func (f *fakeOTPRepo) DeleteByEmailPurpose(_ context.Context, email string, purpose entity.OTPPurpose) error {
	for id, otp := range f.entries {
		if otp.Email == email && otp.Purpose == purpose {
			delete(f.entries, id)
		}
	}
	return nil
}

func (f *fakeOTPRepo) DeleteExpired(_ context.Context) (int64, error) {
	var deleted int64
	now := time.Now()
	for id, otp := range f.entries {
		if otp.IsExpired(now) {
			delete(f.entries, id)
			deleted++
		}
	}
	return deleted, nil
}

// countFor reports how many codes are outstanding for an address
func (f *fakeOTPRepo) countFor(email string, purpose entity.OTPPurpose) int {
	count := 0
	for _, otp := range f.entries {
		if otp.Email == email && otp.Purpose == purpose {
			count++
		}
	}
	return count
}

type fakeRateLimitRepo struct {
	counts map[string]int
	err    error
}

func newFakeRateLimitRepo() *fakeRateLimitRepo {
	return &fakeRateLimitRepo{counts: make(map[string]int)}
}

func (f *fakeRateLimitRepo) Hit(_ context.Context, key string, _ time.Duration) (int, error) {
	if f.err != nil {
		return 0, f.err
	}
	f.counts[key]++
	return f.counts[key], nil
}

func (f *fakeRateLimitRepo) Reset(_ context.Context, key string) error {
	delete(f.counts, key)
	return nil
}

func (f *fakeRateLimitRepo) DeleteStale(_ context.Context, _ time.Duration) (int64, error) {
	return 0, nil
}

type fakeAuditRepo struct {
	entries []*entity.AuditLog
}

func (f *fakeAuditRepo) Create(_ context.Context, entry *entity.AuditLog) error {
	cp := *entry
	f.entries = append(f.entries, &cp)
	return nil
}

func (f *fakeAuditRepo) FindAll(_ context.Context, _ *uuid.UUID, _ string, _, _ int) ([]*entity.AuditLog, error) {
	return f.entries, nil
}

func (f *fakeAuditRepo) CountAll(_ context.Context, _ *uuid.UUID, _ string) (int64, error) {
	return int64(len(f.entries)), nil
}

// lastAction returns the most recent audit action, or "" when none exist
func (f *fakeAuditRepo) lastAction() string {
	if len(f.entries) == 0 {
		return ""
	}
	return f.entries[len(f.entries)-1].Action
}

// fakeMailer records sends; approval and rejection notices go out on
// goroutines, so access is guarded.
type fakeMailer struct {
	mu      sync.Mutex
	otps    []string
	failOTP bool
}

func (f *fakeMailer) SendOTPEmail(toEmail, code, _ string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failOTP {
		return errors.New("mail provider unavailable")
	}
	f.otps = append(f.otps, toEmail+":"+code)
	return nil
}

func (f *fakeMailer) SendApprovalEmail(_, _ string) error { return nil }

func (f *fakeMailer) SendRejectionEmail(_, _, _, _ string) error { return nil }

func (f *fakeMailer) otpSends() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.otps)
}

// fakeBlobStore records uploads and deletes by key
type fakeBlobStore struct {
	uploads   map[string]string
	deleted   []string
	uploadErr error
}

func newFakeBlobStore() *fakeBlobStore {
	return &fakeBlobStore{uploads: make(map[string]string)}
}

func (f *fakeBlobStore) Upload(_ context.Context, key string, _ io.Reader, contentType string) (string, error) {
	if f.uploadErr != nil {
		return "", f.uploadErr
	}
	f.uploads[key] = contentType
	return "https://cdn.test/" + key, nil
}

func (f *fakeBlobStore) Delete(_ context.Context, key string) error {
	f.deleted = append(f.deleted, key)
	return nil
}

type fakeTokenIssuer struct {
	issued int
}

func (f *fakeTokenIssuer) IssuePair(_ context.Context, user *entity.User) (*response.TokenPairResponse, error) {
	f.issued++
	return &response.TokenPairResponse{
		AccessToken:  "access-" + user.ID.String(),
		RefreshToken: "refresh-" + user.ID.String(),
		ExpiresAt:    time.Now().Add(15 * time.Minute),
	}, nil
}

// newTestRepository wires the fakes into the aggregate the services expect
func newTestRepository() (*repository.Repository, *fakeUserRepo, *fakeApprovalRepo, *fakeOTPRepo, *fakeRateLimitRepo, *fakeAuditRepo) {
	users := newFakeUserRepo()
	approvals := newFakeApprovalRepo()
	users.approvals = approvals
	approvals.users = users

	otps := newFakeOTPRepo()
	limits := newFakeRateLimitRepo()
	audits := &fakeAuditRepo{}

	repo := &repository.Repository{
		User:      users,
		OTP:       otps,
		Approval:  approvals,
		RateLimit: limits,
		Audit:     audits,
	}
	return repo, users, approvals, otps, limits, audits
}
