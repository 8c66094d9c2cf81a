package repository

import (
	"context"
	"fmt"

	"job-portal/internal/data/entity"
	"job-portal/pkg/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type ApprovalRepository interface {
	Create(ctx context.Context, approval *entity.RecruiterApproval) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.RecruiterApproval, error)
	FindByUserID(ctx context.Context, userID uuid.UUID) (*entity.RecruiterApproval, error)
	FindActiveByCompany(ctx context.Context, companyName string) (*entity.RecruiterApproval, error)
	FindAll(ctx context.Context, status string, limit, offset int) ([]*entity.RecruiterApproval, error)
	CountAll(ctx context.Context, status string) (int64, error)
	CountByStatus(ctx context.Context, status entity.ApprovalStatus) (int64, error)
	FindRecent(ctx context.Context, limit int) ([]*entity.RecruiterApproval, error)
	Update(ctx context.Context, approval *entity.RecruiterApproval) error
	DeleteWithPendingUser(ctx context.Context, approval *entity.RecruiterApproval) error
}

type approvalRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewApprovalRepository(db database.PgxIface, log *zap.Logger) ApprovalRepository {
	return &approvalRepository{
		db:  db,
		log: log.With(zap.String("repository", "approval")),
	}
}

const approvalColumns = `id, user_id, status, company_name, company_website, designation,
	       rejection_reason, block_duration, blocked_until, approved_by, approved_at,
	       rejected_by, rejected_at, admin_notes, created_at, updated_at`

func scanApproval(row pgx.Row) (*entity.RecruiterApproval, error) {
	var a entity.RecruiterApproval
	err := row.Scan(
		&a.ID,
		&a.UserID,
		&a.Status,
		&a.CompanyName,
		&a.CompanyWebsite,
		&a.Designation,
		&a.RejectionReason,
		&a.BlockDuration,
		&a.BlockedUntil,
		&a.ApprovedBy,
		&a.ApprovedAt,
		&a.RejectedBy,
		&a.RejectedAt,
		&a.AdminNotes,
		&a.CreatedAt,
		&a.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *approvalRepository) Create(ctx context.Context, approval *entity.RecruiterApproval) error {
	query := `
		INSERT INTO recruiter_approvals (id, user_id, status, company_name, company_website,
		                  designation, rejection_reason, block_duration, blocked_until,
		                  approved_by, approved_at, rejected_by, rejected_at, admin_notes,
		                  created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)
	`

	_, err := r.db.Exec(ctx, query,
		approval.ID, approval.UserID, approval.Status, approval.CompanyName,
		approval.CompanyWebsite, approval.Designation, approval.RejectionReason,
		approval.BlockDuration, approval.BlockedUntil, approval.ApprovedBy,
		approval.ApprovedAt, approval.RejectedBy, approval.RejectedAt,
		approval.AdminNotes, approval.CreatedAt, approval.UpdatedAt,
	)

	if err != nil {
		r.log.Error("Failed to create approval record",
			zap.Error(err),
			zap.String("company", approval.CompanyName),
		)
		return fmt.Errorf("create approval for %s: %w", approval.CompanyName, err)
	}

	return nil
}

func (r *approvalRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.RecruiterApproval, error) {
	query := `SELECT ` + approvalColumns + ` FROM recruiter_approvals WHERE id = $1`

	approval, err := scanApproval(r.db.QueryRow(ctx, query, id))
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find approval by ID", zap.Error(err), zap.String("id", id.String()))
		return nil, fmt.Errorf("find approval %s: %w", id.String(), err)
	}

	return approval, nil
}

func (r *approvalRepository) FindByUserID(ctx context.Context, userID uuid.UUID) (*entity.RecruiterApproval, error) {
	query := `SELECT ` + approvalColumns + ` FROM recruiter_approvals WHERE user_id = $1 ORDER BY created_at DESC LIMIT 1`

	approval, err := scanApproval(r.db.QueryRow(ctx, query, userID))
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find approval for user %s: %w", userID.String(), err)
	}

	return approval, nil
}

// FindActiveByCompany returns the latest pending-or-rejected record for a
// company, the one that gates reapplication.
func (r *approvalRepository) FindActiveByCompany(ctx context.Context, companyName string) (*entity.RecruiterApproval, error) {
	query := `
		SELECT ` + approvalColumns + `
		FROM recruiter_approvals
		WHERE company_name = $1 AND status IN ('pending', 'rejected')
		ORDER BY created_at DESC
		LIMIT 1
	`

	approval, err := scanApproval(r.db.QueryRow(ctx, query, companyName))
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find approval by company", zap.Error(err), zap.String("company", companyName))
		return nil, fmt.Errorf("find approval for company %s: %w", companyName, err)
	}

	return approval, nil
}

func (r *approvalRepository) FindAll(ctx context.Context, status string, limit, offset int) ([]*entity.RecruiterApproval, error) {
	query := `SELECT ` + approvalColumns + ` FROM recruiter_approvals`
	args := []any{}

	if status != "" && status != "all" {
		query += ` WHERE status = $1 ORDER BY created_at DESC LIMIT $2 OFFSET $3`
		args = append(args, status, limit, offset)
	} else {
		query += ` ORDER BY created_at DESC LIMIT $1 OFFSET $2`
		args = append(args, limit, offset)
	}

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		r.log.Error("Failed to list approvals", zap.Error(err), zap.String("status", status))
		return nil, fmt.Errorf("find approvals: %w", err)
	}
	defer rows.Close()

	var approvals []*entity.RecruiterApproval
	for rows.Next() {
		approval, err := scanApproval(rows)
		if err != nil {
			return nil, fmt.Errorf("scan approval row: %w", err)
		}
		approvals = append(approvals, approval)
	}

	return approvals, rows.Err()
}

func (r *approvalRepository) CountAll(ctx context.Context, status string) (int64, error) {
	query := `SELECT COUNT(*) FROM recruiter_approvals`
	args := []any{}

	if status != "" && status != "all" {
		query += ` WHERE status = $1`
		args = append(args, status)
	}

	var count int64
	if err := r.db.QueryRow(ctx, query, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("count approvals: %w", err)
	}

	return count, nil
}

func (r *approvalRepository) CountByStatus(ctx context.Context, status entity.ApprovalStatus) (int64, error) {
	var count int64
	err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM recruiter_approvals WHERE status = $1`, status).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count approvals by status %s: %w", status, err)
	}
	return count, nil
}

func (r *approvalRepository) FindRecent(ctx context.Context, limit int) ([]*entity.RecruiterApproval, error) {
	query := `SELECT ` + approvalColumns + ` FROM recruiter_approvals ORDER BY created_at DESC LIMIT $1`

	rows, err := r.db.Query(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("find recent approvals: %w", err)
	}
	defer rows.Close()

	var approvals []*entity.RecruiterApproval
	for rows.Next() {
		approval, err := scanApproval(rows)
		if err != nil {
			return nil, fmt.Errorf("scan approval row: %w", err)
		}
		approvals = append(approvals, approval)
	}

	return approvals, rows.Err()
}

func (r *approvalRepository) Update(ctx context.Context, approval *entity.RecruiterApproval) error {
	query := `
		UPDATE recruiter_approvals
		SET status = $2, rejection_reason = $3, block_duration = $4, blocked_until = $5,
		    approved_by = $6, approved_at = $7, rejected_by = $8, rejected_at = $9,
		    admin_notes = $10, updated_at = $11
		WHERE id = $1
	`

	result, err := r.db.Exec(ctx, query,
		approval.ID, approval.Status, approval.RejectionReason, approval.BlockDuration,
		approval.BlockedUntil, approval.ApprovedBy, approval.ApprovedAt,
		approval.RejectedBy, approval.RejectedAt, approval.AdminNotes, approval.UpdatedAt,
	)

	if err != nil {
		r.log.Error("Failed to update approval", zap.Error(err), zap.String("id", approval.ID.String()))
		return fmt.Errorf("update approval %s: %w", approval.ID.String(), err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("approval %s not found", approval.ID.String())
	}

	return nil
}

// DeleteWithPendingUser removes the record and, when the application was
// still pending, the abandoned user account with it, in one transaction.
func (r *approvalRepository) DeleteWithPendingUser(ctx context.Context, approval *entity.RecruiterApproval) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, `DELETE FROM recruiter_approvals WHERE id = $1`, approval.ID); err != nil {
		return fmt.Errorf("delete approval %s: %w", approval.ID.String(), err)
	}

	if approval.Status == entity.ApprovalPending {
		if _, err := tx.Exec(ctx, `UPDATE users SET deleted_at = NOW() WHERE id = $1 AND deleted_at IS NULL`, approval.UserID); err != nil {
			return fmt.Errorf("delete pending user %s: %w", approval.UserID.String(), err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit approval delete: %w", err)
	}

	r.log.Info("Approval record deleted",
		zap.String("id", approval.ID.String()),
		zap.String("status", string(approval.Status)),
	)
	return nil
}
