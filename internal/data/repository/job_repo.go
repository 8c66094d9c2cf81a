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

type JobRepository interface {
	Create(ctx context.Context, job *entity.Job) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Job, error)
	FindByIDs(ctx context.Context, ids []uuid.UUID) ([]*entity.Job, error)
	FindAll(ctx context.Context, filter entity.JobFilter, limit, offset int) ([]*entity.Job, error)
	CountAll(ctx context.Context, filter entity.JobFilter) (int64, error)
	Update(ctx context.Context, job *entity.Job) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type jobRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewJobRepository(db database.PgxIface, log *zap.Logger) JobRepository {
	return &jobRepository{
		db:  db,
		log: log.With(zap.String("repository", "job")),
	}
}

const jobColumns = `id, title, responsibilities, skills, company, company_website, location,
	       type, job_time, salary_min, salary_max, created_by, created_at, updated_at, deleted_at`

func scanJob(row pgx.Row) (*entity.Job, error) {
	var job entity.Job
	err := row.Scan(
		&job.ID,
		&job.Title,
		&job.Responsibilities,
		&job.Skills,
		&job.Company,
		&job.CompanyWebsite,
		&job.Location,
		&job.Type,
		&job.JobTime,
		&job.SalaryMin,
		&job.SalaryMax,
		&job.CreatedBy,
		&job.CreatedAt,
		&job.UpdatedAt,
		&job.DeletedAt,
	)
	if err != nil {
		return nil, err
	}
	return &job, nil
}

func (r *jobRepository) Create(ctx context.Context, job *entity.Job) error {
	query := `
		INSERT INTO jobs (id, title, responsibilities, skills, company, company_website,
		                  location, type, job_time, salary_min, salary_max, created_by,
		                  created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
	`

	_, err := r.db.Exec(ctx, query,
		job.ID, job.Title, job.Responsibilities, job.Skills, job.Company,
		job.CompanyWebsite, job.Location, job.Type, job.JobTime,
		job.SalaryMin, job.SalaryMax, job.CreatedBy, job.CreatedAt, job.UpdatedAt,
	)

	if err != nil {
		r.log.Error("Failed to create job", zap.Error(err), zap.String("title", job.Title))
		return fmt.Errorf("create job %s: %w", job.Title, err)
	}

	return nil
}

func (r *jobRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Job, error) {
	query := `SELECT ` + jobColumns + ` FROM jobs WHERE id = $1 AND deleted_at IS NULL`

	job, err := scanJob(r.db.QueryRow(ctx, query, id))
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find job by ID", zap.Error(err), zap.String("job_id", id.String()))
		return nil, fmt.Errorf("find job %s: %w", id.String(), err)
	}

	return job, nil
}

func (r *jobRepository) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]*entity.Job, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	query := `SELECT ` + jobColumns + ` FROM jobs WHERE id = ANY($1) AND deleted_at IS NULL ORDER BY created_at DESC`

	rows, err := r.db.Query(ctx, query, ids)
	if err != nil {
		return nil, fmt.Errorf("find jobs by ids: %w", err)
	}
	defer rows.Close()

	var jobs []*entity.Job
	for rows.Next() {
		job, err := scanJob(rows)
		if err != nil {
			return nil, fmt.Errorf("scan job row: %w", err)
		}
		jobs = append(jobs, job)
	}

	return jobs, rows.Err()
}

func buildJobFilter(filter entity.JobFilter) (string, []any) {
	clause := ""
	args := []any{}
	idx := 1

	if filter.Search != "" {
		clause += fmt.Sprintf(" AND (title ILIKE $%d OR company ILIKE $%d)", idx, idx)
		args = append(args, "%"+filter.Search+"%")
		idx++
	}
	if filter.Location != "" {
		clause += fmt.Sprintf(" AND location ILIKE $%d", idx)
		args = append(args, "%"+filter.Location+"%")
		idx++
	}
	if filter.Type != "" {
		clause += fmt.Sprintf(" AND type = $%d", idx)
		args = append(args, filter.Type)
		idx++
	}
	if filter.JobTime != "" {
		clause += fmt.Sprintf(" AND job_time = $%d", idx)
		args = append(args, filter.JobTime)
		idx++
	}
	if filter.SalaryMin != nil {
		clause += fmt.Sprintf(" AND salary_max >= $%d", idx)
		args = append(args, *filter.SalaryMin)
		idx++
	}
	if filter.SalaryMax != nil {
		clause += fmt.Sprintf(" AND salary_min <= $%d", idx)
		args = append(args, *filter.SalaryMax)
		idx++
	}
	if filter.CreatedBy != nil {
		clause += fmt.Sprintf(" AND created_by = $%d", idx)
		args = append(args, *filter.CreatedBy)
	}

	return clause, args
}

func (r *jobRepository) FindAll(ctx context.Context, filter entity.JobFilter, limit, offset int) ([]*entity.Job, error) {
	clause, args := buildJobFilter(filter)
	query := `SELECT ` + jobColumns + ` FROM jobs WHERE deleted_at IS NULL` + clause
	query += fmt.Sprintf(" ORDER BY created_at DESC LIMIT $%d OFFSET $%d", len(args)+1, len(args)+2)
	args = append(args, limit, offset)

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		r.log.Error("Failed to list jobs", zap.Error(err))
		return nil, fmt.Errorf("find all jobs: %w", err)
	}
	defer rows.Close()

	var jobs []*entity.Job
	for rows.Next() {
		job, err := scanJob(rows)
		if err != nil {
			return nil, fmt.Errorf("scan job row: %w", err)
		}
		jobs = append(jobs, job)
	}

	return jobs, rows.Err()
}

func (r *jobRepository) CountAll(ctx context.Context, filter entity.JobFilter) (int64, error) {
	clause, args := buildJobFilter(filter)
	query := `SELECT COUNT(*) FROM jobs WHERE deleted_at IS NULL` + clause

	var count int64
	if err := r.db.QueryRow(ctx, query, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("count jobs: %w", err)
	}

	return count, nil
}

func (r *jobRepository) Update(ctx context.Context, job *entity.Job) error {
	query := `
		UPDATE jobs
		SET title = $2, responsibilities = $3, skills = $4, company = $5,
		    company_website = $6, location = $7, type = $8, job_time = $9,
		    salary_min = $10, salary_max = $11, updated_at = $12
		WHERE id = $1 AND deleted_at IS NULL
	`

	result, err := r.db.Exec(ctx, query,
		job.ID, job.Title, job.Responsibilities, job.Skills, job.Company,
		job.CompanyWebsite, job.Location, job.Type, job.JobTime,
		job.SalaryMin, job.SalaryMax, job.UpdatedAt,
	)

	if err != nil {
		r.log.Error("Failed to update job", zap.Error(err), zap.String("job_id", job.ID.String()))
		return fmt.Errorf("update job %s: %w", job.ID.String(), err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("job %s not found", job.ID.String())
	}

	return nil
}

func (r *jobRepository) Delete(ctx context.Context, id uuid.UUID) error {
	query := `UPDATE jobs SET deleted_at = NOW() WHERE id = $1 AND deleted_at IS NULL`

	result, err := r.db.Exec(ctx, query, id)
	if err != nil {
		r.log.Error("Failed to delete job", zap.Error(err), zap.String("job_id", id.String()))
		return fmt.Errorf("delete job %s: %w", id.String(), err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("job %s not found", id.String())
	}

	return nil
}
