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

type ApplicationRepository interface {
	Create(ctx context.Context, app *entity.Application) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Application, error)
	FindByUserAndJob(ctx context.Context, userID, jobID uuid.UUID) (*entity.Application, error)
	FindByJob(ctx context.Context, jobID uuid.UUID, limit, offset int) ([]*entity.Application, error)
	FindByUser(ctx context.Context, userID uuid.UUID, limit, offset int) ([]*entity.Application, error)
	CountByJob(ctx context.Context, jobID uuid.UUID) (int64, error)
	CountByUser(ctx context.Context, userID uuid.UUID) (int64, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status entity.ApplicationStatus) error
	Delete(ctx context.Context, id uuid.UUID) error
	StatusCountsForRecruiter(ctx context.Context, recruiterID uuid.UUID) (map[entity.ApplicationStatus]int64, error)
	StatusCountsForUser(ctx context.Context, userID uuid.UUID) (map[entity.ApplicationStatus]int64, error)
}

type applicationRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewApplicationRepository(db database.PgxIface, log *zap.Logger) ApplicationRepository {
	return &applicationRepository{
		db:  db,
		log: log.With(zap.String("repository", "application")),
	}
}

const applicationColumns = `id, user_id, job_id, resume_url, resume_key, status, created_at, updated_at`

func scanApplication(row pgx.Row) (*entity.Application, error) {
	var app entity.Application
	err := row.Scan(
		&app.ID,
		&app.UserID,
		&app.JobID,
		&app.ResumeURL,
		&app.ResumeKey,
		&app.Status,
		&app.CreatedAt,
		&app.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &app, nil
}

func (r *applicationRepository) Create(ctx context.Context, app *entity.Application) error {
	query := `
		INSERT INTO applications (id, user_id, job_id, resume_url, resume_key, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`

	_, err := r.db.Exec(ctx, query,
		app.ID, app.UserID, app.JobID, app.ResumeURL, app.ResumeKey,
		app.Status, app.CreatedAt, app.UpdatedAt,
	)

	if err != nil {
		r.log.Error("Failed to create application",
			zap.Error(err),
			zap.String("user_id", app.UserID.String()),
			zap.String("job_id", app.JobID.String()),
		)
		return fmt.Errorf("create application: %w", err)
	}

	return nil
}

func (r *applicationRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Application, error) {
	query := `SELECT ` + applicationColumns + ` FROM applications WHERE id = $1`

	app, err := scanApplication(r.db.QueryRow(ctx, query, id))
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find application %s: %w", id.String(), err)
	}

	return app, nil
}

func (r *applicationRepository) FindByUserAndJob(ctx context.Context, userID, jobID uuid.UUID) (*entity.Application, error) {
	query := `SELECT ` + applicationColumns + ` FROM applications WHERE user_id = $1 AND job_id = $2`

	app, err := scanApplication(r.db.QueryRow(ctx, query, userID, jobID))
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find application for user %s job %s: %w", userID.String(), jobID.String(), err)
	}

	return app, nil
}

func (r *applicationRepository) findMany(ctx context.Context, query string, args ...any) ([]*entity.Application, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query applications: %w", err)
	}
	defer rows.Close()

	var apps []*entity.Application
	for rows.Next() {
		app, err := scanApplication(rows)
		if err != nil {
			return nil, fmt.Errorf("scan application row: %w", err)
		}
		apps = append(apps, app)
	}

	return apps, rows.Err()
}

func (r *applicationRepository) FindByJob(ctx context.Context, jobID uuid.UUID, limit, offset int) ([]*entity.Application, error) {
	query := `SELECT ` + applicationColumns + ` FROM applications WHERE job_id = $1 ORDER BY created_at DESC LIMIT $2 OFFSET $3`
	return r.findMany(ctx, query, jobID, limit, offset)
}

func (r *applicationRepository) FindByUser(ctx context.Context, userID uuid.UUID, limit, offset int) ([]*entity.Application, error) {
	query := `SELECT ` + applicationColumns + ` FROM applications WHERE user_id = $1 ORDER BY created_at DESC LIMIT $2 OFFSET $3`
	return r.findMany(ctx, query, userID, limit, offset)
}

func (r *applicationRepository) CountByJob(ctx context.Context, jobID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM applications WHERE job_id = $1`, jobID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count applications for job %s: %w", jobID.String(), err)
	}
	return count, nil
}

func (r *applicationRepository) CountByUser(ctx context.Context, userID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM applications WHERE user_id = $1`, userID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count applications for user %s: %w", userID.String(), err)
	}
	return count, nil
}

func (r *applicationRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status entity.ApplicationStatus) error {
	query := `UPDATE applications SET status = $2, updated_at = NOW() WHERE id = $1`

	result, err := r.db.Exec(ctx, query, id, status)
	if err != nil {
		r.log.Error("Failed to update application status",
			zap.Error(err),
			zap.String("application_id", id.String()),
			zap.String("status", string(status)),
		)
		return fmt.Errorf("update application %s status: %w", id.String(), err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("application %s not found", id.String())
	}

	return nil
}

func (r *applicationRepository) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := r.db.Exec(ctx, `DELETE FROM applications WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete application %s: %w", id.String(), err)
	}
	return nil
}

func (r *applicationRepository) statusCounts(ctx context.Context, query string, id uuid.UUID) (map[entity.ApplicationStatus]int64, error) {
	rows, err := r.db.Query(ctx, query, id)
	if err != nil {
		return nil, fmt.Errorf("count applications by status: %w", err)
	}
	defer rows.Close()

	counts := make(map[entity.ApplicationStatus]int64)
	for rows.Next() {
		var status entity.ApplicationStatus
		var count int64
		if err := rows.Scan(&status, &count); err != nil {
			return nil, fmt.Errorf("scan status count row: %w", err)
		}
		counts[status] = count
	}

	return counts, rows.Err()
}

// StatusCountsForRecruiter aggregates applicants across all of a recruiter's jobs
func (r *applicationRepository) StatusCountsForRecruiter(ctx context.Context, recruiterID uuid.UUID) (map[entity.ApplicationStatus]int64, error) {
	query := `
		SELECT a.status, COUNT(*)
		FROM applications a
		JOIN jobs j ON j.id = a.job_id
		WHERE j.created_by = $1 AND j.deleted_at IS NULL
		GROUP BY a.status
	`
	return r.statusCounts(ctx, query, recruiterID)
}

func (r *applicationRepository) StatusCountsForUser(ctx context.Context, userID uuid.UUID) (map[entity.ApplicationStatus]int64, error) {
	query := `SELECT status, COUNT(*) FROM applications WHERE user_id = $1 GROUP BY status`
	return r.statusCounts(ctx, query, userID)
}
