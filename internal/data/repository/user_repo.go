package repository

import (
	"context"
	"fmt"
	"time"

	"job-portal/internal/data/entity"
	"job-portal/pkg/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type UserFilter struct {
	Role          string
	AccountStatus string
	Search        string
}

type UserRepository interface {
	Create(ctx context.Context, user *entity.User) error
	CreateWithApproval(ctx context.Context, user *entity.User, approval *entity.RecruiterApproval) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error)
	FindByEmail(ctx context.Context, email string) (*entity.User, error)
	FindAll(ctx context.Context, filter UserFilter, limit, offset int) ([]*entity.User, error)
	CountAll(ctx context.Context, filter UserFilter) (int64, error)
	Update(ctx context.Context, user *entity.User) error
	UpdateRefreshToken(ctx context.Context, id uuid.UUID, refreshToken string) error
	UpdateAccountStatus(ctx context.Context, id uuid.UUID, status entity.AccountStatus) error
	Delete(ctx context.Context, id uuid.UUID) error
	AddBookmark(ctx context.Context, userID, jobID uuid.UUID) error
	RemoveBookmark(ctx context.Context, userID, jobID uuid.UUID) error
	FindBookmarks(ctx context.Context, userID uuid.UUID) ([]uuid.UUID, error)
	CountByRole(ctx context.Context, role entity.UserRole) (int64, error)
}

type userRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewUserRepository(db database.PgxIface, log *zap.Logger) UserRepository {
	return &userRepository{
		db:  db,
		log: log.With(zap.String("repository", "user")),
	}
}

const userColumns = `id, fullname, email, password, auth_provider, provider_id, role,
	       account_status, email_verified, is_active, refresh_token, profile_pic,
	       created_at, updated_at, deleted_at`

func scanUser(row pgx.Row) (*entity.User, error) {
	var user entity.User
	err := row.Scan(
		&user.ID,
		&user.Fullname,
		&user.Email,
		&user.PasswordHash,
		&user.AuthProvider,
		&user.ProviderID,
		&user.Role,
		&user.AccountStatus,
		&user.EmailVerified,
		&user.IsActive,
		&user.RefreshToken,
		&user.ProfilePic,
		&user.CreatedAt,
		&user.UpdatedAt,
		&user.DeletedAt,
	)
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (ur *userRepository) Create(ctx context.Context, user *entity.User) error {
	query := `
		INSERT INTO users (id, fullname, email, password, auth_provider, provider_id,
		                  role, account_status, email_verified, is_active, refresh_token,
		                  profile_pic, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
	`

	_, err := ur.db.Exec(ctx, query,
		user.ID,
		user.Fullname,
		user.Email,
		user.PasswordHash,
		user.AuthProvider,
		user.ProviderID,
		user.Role,
		user.AccountStatus,
		user.EmailVerified,
		user.IsActive,
		user.RefreshToken,
		user.ProfilePic,
		user.CreatedAt,
		user.UpdatedAt,
	)

	if err != nil {
		ur.log.Error("Failed to create user",
			zap.Error(err),
			zap.String("email", user.Email),
		)
		return fmt.Errorf("create user %s: %w", user.Email, err)
	}

	return nil
}

// CreateWithApproval inserts the user and its approval record in one
// transaction so a failed second write cannot orphan the user.
func (ur *userRepository) CreateWithApproval(ctx context.Context, user *entity.User, approval *entity.RecruiterApproval) error {
	tx, err := ur.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback(ctx)

	userQuery := `
		INSERT INTO users (id, fullname, email, password, auth_provider, provider_id,
		                  role, account_status, email_verified, is_active, refresh_token,
		                  profile_pic, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
	`
	_, err = tx.Exec(ctx, userQuery,
		user.ID, user.Fullname, user.Email, user.PasswordHash, user.AuthProvider,
		user.ProviderID, user.Role, user.AccountStatus, user.EmailVerified,
		user.IsActive, user.RefreshToken, user.ProfilePic, user.CreatedAt, user.UpdatedAt,
	)
	if err != nil {
		ur.log.Error("Failed to create user in tx", zap.Error(err), zap.String("email", user.Email))
		return fmt.Errorf("create user %s: %w", user.Email, err)
	}

	approvalQuery := `
		INSERT INTO recruiter_approvals (id, user_id, status, company_name, company_website,
		                  designation, rejection_reason, block_duration, blocked_until,
		                  approved_by, approved_at, rejected_by, rejected_at, admin_notes,
		                  created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)
	`
	_, err = tx.Exec(ctx, approvalQuery,
		approval.ID, approval.UserID, approval.Status, approval.CompanyName,
		approval.CompanyWebsite, approval.Designation, approval.RejectionReason,
		approval.BlockDuration, approval.BlockedUntil, approval.ApprovedBy,
		approval.ApprovedAt, approval.RejectedBy, approval.RejectedAt,
		approval.AdminNotes, approval.CreatedAt, approval.UpdatedAt,
	)
	if err != nil {
		ur.log.Error("Failed to create approval in tx", zap.Error(err), zap.String("company", approval.CompanyName))
		return fmt.Errorf("create approval for %s: %w", approval.CompanyName, err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit user+approval: %w", err)
	}

	return nil
}

func (ur *userRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1 AND deleted_at IS NULL`

	user, err := scanUser(ur.db.QueryRow(ctx, query, id))
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		ur.log.Error("Failed to find user by ID", zap.Error(err), zap.String("user_id", id.String()))
		return nil, fmt.Errorf("find user by ID %s: %w", id.String(), err)
	}

	return user, nil
}

func (ur *userRepository) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE email = $1 AND deleted_at IS NULL`

	user, err := scanUser(ur.db.QueryRow(ctx, query, email))
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		ur.log.Error("Failed to find user by email", zap.Error(err), zap.String("email", email))
		return nil, fmt.Errorf("find user by email %s: %w", email, err)
	}

	return user, nil
}

func (ur *userRepository) FindAll(ctx context.Context, filter UserFilter, limit, offset int) ([]*entity.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE deleted_at IS NULL`
	args := []any{}
	idx := 1

	if filter.Role != "" {
		query += fmt.Sprintf(" AND role = $%d", idx)
		args = append(args, filter.Role)
		idx++
	}
	if filter.AccountStatus != "" {
		query += fmt.Sprintf(" AND account_status = $%d", idx)
		args = append(args, filter.AccountStatus)
		idx++
	}
	if filter.Search != "" {
		query += fmt.Sprintf(" AND (fullname ILIKE $%d OR email ILIKE $%d)", idx, idx)
		args = append(args, "%"+filter.Search+"%")
		idx++
	}

	query += fmt.Sprintf(" ORDER BY created_at DESC LIMIT $%d OFFSET $%d", idx, idx+1)
	args = append(args, limit, offset)

	rows, err := ur.db.Query(ctx, query, args...)
	if err != nil {
		ur.log.Error("Failed to list users", zap.Error(err))
		return nil, fmt.Errorf("find all users: %w", err)
	}
	defer rows.Close()

	var users []*entity.User
	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("scan user row: %w", err)
		}
		users = append(users, user)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate users rows: %w", err)
	}

	return users, nil
}

func (ur *userRepository) CountAll(ctx context.Context, filter UserFilter) (int64, error) {
	query := `SELECT COUNT(*) FROM users WHERE deleted_at IS NULL`
	args := []any{}
	idx := 1

	if filter.Role != "" {
		query += fmt.Sprintf(" AND role = $%d", idx)
		args = append(args, filter.Role)
		idx++
	}
	if filter.AccountStatus != "" {
		query += fmt.Sprintf(" AND account_status = $%d", idx)
		args = append(args, filter.AccountStatus)
		idx++
	}
	if filter.Search != "" {
		query += fmt.Sprintf(" AND (fullname ILIKE $%d OR email ILIKE $%d)", idx, idx)
		args = append(args, "%"+filter.Search+"%")
	}

	var count int64
	if err := ur.db.QueryRow(ctx, query, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("count users: %w", err)
	}

	return count, nil
}

func (ur *userRepository) Update(ctx context.Context, user *entity.User) error {
	query := `
		UPDATE users
		SET fullname = $2, email = $3, password = $4, role = $5,
		    account_status = $6, email_verified = $7, is_active = $8,
		    profile_pic = $9, updated_at = $10
		WHERE id = $1 AND deleted_at IS NULL
	`

	result, err := ur.db.Exec(ctx, query,
		user.ID,
		user.Fullname,
		user.Email,
		user.PasswordHash,
		user.Role,
		user.AccountStatus,
		user.EmailVerified,
		user.IsActive,
		user.ProfilePic,
		user.UpdatedAt,
	)

	if err != nil {
		ur.log.Error("Failed to update user", zap.Error(err), zap.String("user_id", user.ID.String()))
		return fmt.Errorf("update user %s: %w", user.ID.String(), err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("user %s not found or already deleted", user.ID.String())
	}

	return nil
}

func (ur *userRepository) UpdateRefreshToken(ctx context.Context, id uuid.UUID, refreshToken string) error {
	query := `UPDATE users SET refresh_token = $2, updated_at = NOW() WHERE id = $1 AND deleted_at IS NULL`

	result, err := ur.db.Exec(ctx, query, id, refreshToken)
	if err != nil {
		ur.log.Error("Failed to update refresh token", zap.Error(err), zap.String("user_id", id.String()))
		return fmt.Errorf("update refresh token for %s: %w", id.String(), err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("user %s not found", id.String())
	}

	return nil
}

func (ur *userRepository) UpdateAccountStatus(ctx context.Context, id uuid.UUID, status entity.AccountStatus) error {
	query := `UPDATE users SET account_status = $2, updated_at = NOW() WHERE id = $1 AND deleted_at IS NULL`

	result, err := ur.db.Exec(ctx, query, id, status)
	if err != nil {
		ur.log.Error("Failed to update account status",
			zap.Error(err),
			zap.String("user_id", id.String()),
			zap.String("status", string(status)),
		)
		return fmt.Errorf("update account status for %s: %w", id.String(), err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("user %s not found", id.String())
	}

	return nil
}

func (ur *userRepository) Delete(ctx context.Context, id uuid.UUID) error {
	query := `UPDATE users SET deleted_at = NOW() WHERE id = $1 AND deleted_at IS NULL`

	result, err := ur.db.Exec(ctx, query, id)
	if err != nil {
		ur.log.Error("Failed to delete user", zap.Error(err), zap.String("id", id.String()))
		return fmt.Errorf("delete user %s: %w", id.String(), err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("user %s not found", id.String())
	}

	ur.log.Info("User deleted", zap.String("id", id.String()))
	return nil
}

func (ur *userRepository) AddBookmark(ctx context.Context, userID, jobID uuid.UUID) error {
	query := `
		INSERT INTO user_bookmarks (user_id, job_id, created_at)
		VALUES ($1, $2, $3)
		ON CONFLICT (user_id, job_id) DO NOTHING
	`

	_, err := ur.db.Exec(ctx, query, userID, jobID, time.Now())
	if err != nil {
		return fmt.Errorf("add bookmark %s/%s: %w", userID.String(), jobID.String(), err)
	}

	return nil
}

func (ur *userRepository) RemoveBookmark(ctx context.Context, userID, jobID uuid.UUID) error {
	query := `DELETE FROM user_bookmarks WHERE user_id = $1 AND job_id = $2`

	_, err := ur.db.Exec(ctx, query, userID, jobID)
	if err != nil {
		return fmt.Errorf("remove bookmark %s/%s: %w", userID.String(), jobID.String(), err)
	}

	return nil
}

func (ur *userRepository) FindBookmarks(ctx context.Context, userID uuid.UUID) ([]uuid.UUID, error) {
	query := `SELECT job_id FROM user_bookmarks WHERE user_id = $1 ORDER BY created_at DESC`

	rows, err := ur.db.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("find bookmarks for %s: %w", userID.String(), err)
	}
	defer rows.Close()

	var jobIDs []uuid.UUID
	for rows.Next() {
		var jobID uuid.UUID
		if err := rows.Scan(&jobID); err != nil {
			return nil, fmt.Errorf("scan bookmark row: %w", err)
		}
		jobIDs = append(jobIDs, jobID)
	}

	return jobIDs, rows.Err()
}

func (ur *userRepository) CountByRole(ctx context.Context, role entity.UserRole) (int64, error) {
	query := `SELECT COUNT(*) FROM users WHERE role = $1 AND deleted_at IS NULL`

	var count int64
	if err := ur.db.QueryRow(ctx, query, role).Scan(&count); err != nil {
		return 0, fmt.Errorf("count users by role %s: %w", role, err)
	}

	return count, nil
}
