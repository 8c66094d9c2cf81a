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

type OTPRepository interface {
	Create(ctx context.Context, otp *entity.OTPEntry) error
	FindLatest(ctx context.Context, email string, purpose entity.OTPPurpose) (*entity.OTPEntry, error)
	IncrementAttempts(ctx context.Context, id uuid.UUID) (int, error)
	Delete(ctx context.Context, id uuid.UUID) error
	DeleteByEmailPurpose(ctx context.Context, email string, purpose entity.OTPPurpose) error
	DeleteExpired(ctx context.Context) (int64, error)
}

type otpRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewOTPRepository(db database.PgxIface, log *zap.Logger) OTPRepository {
	return &otpRepository{
		db:  db,
		log: log.With(zap.String("repository", "otp")),
	}
}

func (r *otpRepository) Create(ctx context.Context, otp *entity.OTPEntry) error {
	query := `
		INSERT INTO otps (id, email, code, purpose, expires_at, attempts, verified, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`

	_, err := r.db.Exec(ctx, query,
		otp.ID,
		otp.Email,
		otp.Code,
		otp.Purpose,
		otp.ExpiresAt,
		otp.Attempts,
		otp.Verified,
		otp.CreatedAt,
	)

	if err != nil {
		r.log.Error("Failed to create OTP",
			zap.Error(err),
			zap.String("email", otp.Email),
			zap.String("purpose", string(otp.Purpose)),
		)
		return fmt.Errorf("create OTP for %s: %w", otp.Email, err)
	}

	return nil
}

func (r *otpRepository) FindLatest(ctx context.Context, email string, purpose entity.OTPPurpose) (*entity.OTPEntry, error) {
	query := `
		SELECT id, email, code, purpose, expires_at, attempts, verified, created_at
		FROM otps
		WHERE email = $1 AND purpose = $2
		ORDER BY created_at DESC
		LIMIT 1
	`

	var otp entity.OTPEntry
	err := r.db.QueryRow(ctx, query, email, purpose).Scan(
		&otp.ID,
		&otp.Email,
		&otp.Code,
		&otp.Purpose,
		&otp.ExpiresAt,
		&otp.Attempts,
		&otp.Verified,
		&otp.CreatedAt,
	)

	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find OTP", zap.Error(err), zap.String("email", email))
		return nil, fmt.Errorf("find OTP for %s: %w", email, err)
	}

	return &otp, nil
}

// IncrementAttempts bumps the wrong-code counter and returns the new value
func (r *otpRepository) IncrementAttempts(ctx context.Context, id uuid.UUID) (int, error) {
	query := `UPDATE otps SET attempts = attempts + 1 WHERE id = $1 RETURNING attempts`

	var attempts int
	err := r.db.QueryRow(ctx, query, id).Scan(&attempts)
	if err != nil {
		r.log.Error("Failed to increment OTP attempts", zap.Error(err), zap.String("otp_id", id.String()))
		return 0, fmt.Errorf("increment attempts for OTP %s: %w", id.String(), err)
	}

	return attempts, nil
}

func (r *otpRepository) Delete(ctx context.Context, id uuid.UUID) error {
	query := `DELETE FROM otps WHERE id = $1`

	_, err := r.db.Exec(ctx, query, id)
	if err != nil {
		r.log.Error("Failed to delete OTP", zap.Error(err), zap.String("otp_id", id.String()))
		return fmt.Errorf("delete OTP %s: %w", id.String(), err)
	}

	return nil
}

// DeleteByEmailPurpose removes all outstanding codes for an address so a
// fresh issue is the only valid one.
func (r *otpRepository) DeleteByEmailPurpose(ctx context.Context, email string, purpose entity.OTPPurpose) error {
	query := `DELETE FROM otps WHERE email = $1 AND purpose = $2`

	_, err := r.db.Exec(ctx, query, email, purpose)
	if err != nil {
		r.log.Error("Failed to delete OTPs", zap.Error(err), zap.String("email", email))
		return fmt.Errorf("delete OTPs for %s: %w", email, err)
	}

	return nil
}

// DeleteExpired trims stale rows. Verification never trusts a stale row,
// so this is housekeeping only.
func (r *otpRepository) DeleteExpired(ctx context.Context) (int64, error) {
	query := `DELETE FROM otps WHERE expires_at < NOW()`

	result, err := r.db.Exec(ctx, query)
	if err != nil {
		return 0, fmt.Errorf("delete expired OTPs: %w", err)
	}

	return result.RowsAffected(), nil
}
