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
	"job-portal/pkg/blob"
	"job-portal/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type JobService interface {
	Create(ctx context.Context, recruiterID uuid.UUID, req *request.JobRequest) (*response.JobResponse, error)
	Get(ctx context.Context, jobID uuid.UUID, viewerID *uuid.UUID) (*response.JobDetailResponse, error)
	List(ctx context.Context, query request.JobListQuery) (*response.PaginatedResponse[response.JobResponse], error)
	Update(ctx context.Context, jobID, userID uuid.UUID, role entity.UserRole, req *request.JobUpdateRequest) (*response.JobResponse, error)
	Delete(ctx context.Context, jobID, userID uuid.UUID, role entity.UserRole) error
	Apply(ctx context.Context, jobID, userID uuid.UUID, resume io.Reader, contentType string) (*response.ApplicationResponse, error)
	Withdraw(ctx context.Context, applicationID, userID uuid.UUID) error
	ListApplicationsForJob(ctx context.Context, jobID, recruiterID uuid.UUID, page request.PaginatedRequest) (*response.PaginatedResponse[response.ApplicationResponse], error)
	ListMyApplications(ctx context.Context, userID uuid.UUID, page request.PaginatedRequest) (*response.PaginatedResponse[response.ApplicationResponse], error)
	UpdateApplicationStatus(ctx context.Context, applicationID, recruiterID uuid.UUID, req *request.ApplicationStatusRequest) (*response.ApplicationResponse, error)
	AddBookmark(ctx context.Context, userID, jobID uuid.UUID) error
	RemoveBookmark(ctx context.Context, userID, jobID uuid.UUID) error
	ListBookmarks(ctx context.Context, userID uuid.UUID) ([]response.JobResponse, error)
	RecruiterStats(ctx context.Context, recruiterID uuid.UUID) (*response.RecruiterStatsResponse, error)
	CandidateStats(ctx context.Context, userID uuid.UUID) (*response.CandidateStatsResponse, error)
}

type jobService struct {
	repo *repository.Repository
	blob blob.Store
	log  *zap.Logger
}

func NewJobService(
	repo *repository.Repository,
	blobStore blob.Store,
	log *zap.Logger,
) JobService {
	return &jobService{
		repo: repo,
		blob: blobStore,
		log:  log,
	}
}

func (s *jobService) Create(ctx context.Context, recruiterID uuid.UUID, req *request.JobRequest) (*response.JobResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return nil, &ValidationError{Fields: errs}
	}

	if req.SalaryMin != nil && req.SalaryMax != nil && *req.SalaryMin > *req.SalaryMax {
		return nil, &ValidationError{Fields: map[string]string{"salary_min": "Must not exceed salary_max"}}
	}

	now := time.Now()
	job := &entity.Job{
		Base: entity.Base{
			ID:        utils.GenerateUUID(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		Title:            req.Title,
		Responsibilities: req.Responsibilities,
		Skills:           req.Skills,
		Company:          req.Company,
		CompanyWebsite:   req.CompanyWebsite,
		Location:         req.Location,
		Type:             entity.JobType(req.Type),
		JobTime:          entity.JobTime(req.JobTime),
		SalaryMin:        req.SalaryMin,
		SalaryMax:        req.SalaryMax,
		CreatedBy:        recruiterID,
	}

	if err := s.repo.Job.Create(ctx, job); err != nil {
		return nil, err
	}

	s.log.Info("Job created",
		zap.String("job_id", job.ID.String()),
		zap.String("recruiter_id", recruiterID.String()))

	resp := response.JobToResponse(job)
	return &resp, nil
}

func (s *jobService) Get(ctx context.Context, jobID uuid.UUID, viewerID *uuid.UUID) (*response.JobDetailResponse, error) {
	job, err := s.repo.Job.FindByID(ctx, jobID)
	if err != nil {
		return nil, err
	}
	if job == nil {
		return nil, ErrNotFound
	}

	applicants, err := s.repo.Application.CountByJob(ctx, jobID)
	if err != nil {
		return nil, err
	}

	detail := &response.JobDetailResponse{
		JobResponse:    response.JobToResponse(job),
		ApplicantCount: applicants,
		UpdatedAt:      &job.UpdatedAt,
	}

	if viewerID != nil {
		bookmarks, err := s.repo.User.FindBookmarks(ctx, *viewerID)
		if err == nil {
			for _, id := range bookmarks {
				if id == jobID {
					detail.IsBookmarked = true
					break
				}
			}
		}
		app, err := s.repo.Application.FindByUserAndJob(ctx, *viewerID, jobID)
		if err == nil && app != nil {
			detail.HasApplied = true
		}
	}

	return detail, nil
}

func (s *jobService) List(ctx context.Context, query request.JobListQuery) (*response.PaginatedResponse[response.JobResponse], error) {
	filter := entity.JobFilter{
		Search:    query.Search,
		Location:  query.Location,
		Type:      query.Type,
		JobTime:   query.JobTime,
		SalaryMin: query.SalaryMin,
		SalaryMax: query.SalaryMax,
	}

	page := request.PaginatedRequest{Page: query.Page, PerPage: query.PerPage}

	jobs, err := s.repo.Job.FindAll(ctx, filter, page.Limit(), page.Offset())
	if err != nil {
		return nil, err
	}

	total, err := s.repo.Job.CountAll(ctx, filter)
	if err != nil {
		return nil, err
	}

	items := make([]response.JobResponse, 0, len(jobs))
	for _, job := range jobs {
		items = append(items, response.JobToResponse(job))
	}

	return response.NewPaginatedResponse(items, page.Page, page.Limit(), total), nil
}

// ownedJob loads the job and enforces ownership; admins bypass the check
func (s *jobService) ownedJob(ctx context.Context, jobID, userID uuid.UUID, role entity.UserRole) (*entity.Job, error) {
	job, err := s.repo.Job.FindByID(ctx, jobID)
	if err != nil {
		return nil, err
	}
	if job == nil {
		return nil, ErrNotFound
	}
	if job.CreatedBy != userID && role != entity.RoleAdmin {
		return nil, ErrForbidden
	}
	return job, nil
}

func (s *jobService) Update(ctx context.Context, jobID, userID uuid.UUID, role entity.UserRole, req *request.JobUpdateRequest) (*response.JobResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return nil, &ValidationError{Fields: errs}
	}

	job, err := s.ownedJob(ctx, jobID, userID, role)
	if err != nil {
		return nil, err
	}

	if req.Title != nil {
		job.Title = *req.Title
	}
	if req.Responsibilities != nil {
		job.Responsibilities = req.Responsibilities
	}
	if req.Skills != nil {
		job.Skills = req.Skills
	}
	if req.Company != nil {
		job.Company = *req.Company
	}
	if req.CompanyWebsite != nil {
		job.CompanyWebsite = req.CompanyWebsite
	}
	if req.Location != nil {
		job.Location = *req.Location
	}
	if req.Type != nil {
		job.Type = entity.JobType(*req.Type)
	}
	if req.JobTime != nil {
		job.JobTime = entity.JobTime(*req.JobTime)
	}
	if req.SalaryMin != nil {
		job.SalaryMin = req.SalaryMin
	}
	if req.SalaryMax != nil {
		job.SalaryMax = req.SalaryMax
	}
	job.UpdatedAt = time.Now()

	if err := s.repo.Job.Update(ctx, job); err != nil {
		return nil, err
	}

	resp := response.JobToResponse(job)
	return &resp, nil
}

func (s *jobService) Delete(ctx context.Context, jobID, userID uuid.UUID, role entity.UserRole) error {
	if _, err := s.ownedJob(ctx, jobID, userID, role); err != nil {
		return err
	}
	return s.repo.Job.Delete(ctx, jobID)
}

// Apply uploads the resume before touching the database; a failed insert
// removes the orphaned object.
func (s *jobService) Apply(ctx context.Context, jobID, userID uuid.UUID, resume io.Reader, contentType string) (*response.ApplicationResponse, error) {
	job, err := s.repo.Job.FindByID(ctx, jobID)
	if err != nil {
		return nil, err
	}
	if job == nil {
		return nil, ErrNotFound
	}

	existing, err := s.repo.Application.FindByUserAndJob(ctx, userID, jobID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrAlreadyApplied
	}

	key := utils.GenerateStorageKey("resumes")
	resumeURL, err := s.blob.Upload(ctx, key, resume, contentType)
	if err != nil {
		s.log.Error("Failed to upload resume", zap.Error(err), zap.String("user_id", userID.String()))
		return nil, fmt.Errorf("upload resume: %w", err)
	}

	now := time.Now()
	app := &entity.Application{
		BaseNoDelete: entity.BaseNoDelete{
			ID:        utils.GenerateUUID(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		UserID:    userID,
		JobID:     jobID,
		ResumeURL: resumeURL,
		ResumeKey: key,
		Status:    entity.ApplicationApplied,
	}

	if err := s.repo.Application.Create(ctx, app); err != nil {
		if delErr := s.blob.Delete(ctx, key); delErr != nil {
			s.log.Warn("Failed to clean up orphaned resume", zap.Error(delErr), zap.String("key", key))
		}
		return nil, err
	}

	s.notify(ctx, &entity.Notification{
		RecipientID:        job.CreatedBy,
		SenderID:           &userID,
		Type:               entity.NotificationApplication,
		Title:              "New application",
		Message:            fmt.Sprintf("A candidate applied to %s", job.Title),
		RelatedJobID:       &jobID,
		RelatedApplication: &app.ID,
	})

	s.log.Info("Application submitted",
		zap.String("application_id", app.ID.String()),
		zap.String("job_id", jobID.String()))

	resp := response.ApplicationToResponse(app, job, nil)
	return &resp, nil
}

func (s *jobService) Withdraw(ctx context.Context, applicationID, userID uuid.UUID) error {
	app, err := s.repo.Application.FindByID(ctx, applicationID)
	if err != nil {
		return err
	}
	if app == nil {
		return ErrNotFound
	}
	if app.UserID != userID {
		return ErrForbidden
	}

	if err := s.repo.Application.Delete(ctx, applicationID); err != nil {
		return err
	}

	if app.ResumeKey != "" {
		if err := s.blob.Delete(ctx, app.ResumeKey); err != nil {
			s.log.Warn("Failed to delete withdrawn resume", zap.Error(err), zap.String("key", app.ResumeKey))
		}
	}

	return nil
}

func (s *jobService) ListApplicationsForJob(ctx context.Context, jobID, recruiterID uuid.UUID, page request.PaginatedRequest) (*response.PaginatedResponse[response.ApplicationResponse], error) {
	job, err := s.repo.Job.FindByID(ctx, jobID)
	if err != nil {
		return nil, err
	}
	if job == nil {
		return nil, ErrNotFound
	}
	if job.CreatedBy != recruiterID {
		return nil, ErrForbidden
	}

	apps, err := s.repo.Application.FindByJob(ctx, jobID, page.Limit(), page.Offset())
	if err != nil {
		return nil, err
	}

	total, err := s.repo.Application.CountByJob(ctx, jobID)
	if err != nil {
		return nil, err
	}

	items := make([]response.ApplicationResponse, 0, len(apps))
	for _, app := range apps {
		applicant, err := s.repo.User.FindByID(ctx, app.UserID)
		if err != nil {
			s.log.Warn("Failed to load applicant", zap.Error(err))
		}
		items = append(items, response.ApplicationToResponse(app, nil, applicant))
	}

	return response.NewPaginatedResponse(items, page.Page, page.Limit(), total), nil
}

func (s *jobService) ListMyApplications(ctx context.Context, userID uuid.UUID, page request.PaginatedRequest) (*response.PaginatedResponse[response.ApplicationResponse], error) {
	apps, err := s.repo.Application.FindByUser(ctx, userID, page.Limit(), page.Offset())
	if err != nil {
		return nil, err
	}

	total, err := s.repo.Application.CountByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	items := make([]response.ApplicationResponse, 0, len(apps))
	for _, app := range apps {
		job, err := s.repo.Job.FindByID(ctx, app.JobID)
		if err != nil {
			s.log.Warn("Failed to load job for application", zap.Error(err))
		}
		items = append(items, response.ApplicationToResponse(app, job, nil))
	}

	return response.NewPaginatedResponse(items, page.Page, page.Limit(), total), nil
}

func (s *jobService) UpdateApplicationStatus(ctx context.Context, applicationID, recruiterID uuid.UUID, req *request.ApplicationStatusRequest) (*response.ApplicationResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return nil, &ValidationError{Fields: errs}
	}

	app, err := s.repo.Application.FindByID(ctx, applicationID)
	if err != nil {
		return nil, err
	}
	if app == nil {
		return nil, ErrNotFound
	}

	job, err := s.repo.Job.FindByID(ctx, app.JobID)
	if err != nil {
		return nil, err
	}
	if job == nil {
		return nil, ErrNotFound
	}
	if job.CreatedBy != recruiterID {
		return nil, ErrForbidden
	}

	status := entity.ApplicationStatus(req.Status)
	if err := s.repo.Application.UpdateStatus(ctx, applicationID, status); err != nil {
		return nil, err
	}
	app.Status = status

	s.notify(ctx, &entity.Notification{
		RecipientID:        app.UserID,
		SenderID:           &recruiterID,
		Type:               entity.NotificationStatusUpdate,
		Title:              "Application update",
		Message:            fmt.Sprintf("Your application for %s is now %s", job.Title, req.Status),
		RelatedJobID:       &app.JobID,
		RelatedApplication: &app.ID,
	})

	resp := response.ApplicationToResponse(app, job, nil)
	return &resp, nil
}

func (s *jobService) AddBookmark(ctx context.Context, userID, jobID uuid.UUID) error {
	job, err := s.repo.Job.FindByID(ctx, jobID)
	if err != nil {
		return err
	}
	if job == nil {
		return ErrNotFound
	}
	return s.repo.User.AddBookmark(ctx, userID, jobID)
}

func (s *jobService) RemoveBookmark(ctx context.Context, userID, jobID uuid.UUID) error {
	return s.repo.User.RemoveBookmark(ctx, userID, jobID)
}

func (s *jobService) ListBookmarks(ctx context.Context, userID uuid.UUID) ([]response.JobResponse, error) {
	jobIDs, err := s.repo.User.FindBookmarks(ctx, userID)
	if err != nil {
		return nil, err
	}

	jobs, err := s.repo.Job.FindByIDs(ctx, jobIDs)
	if err != nil {
		return nil, err
	}

	items := make([]response.JobResponse, 0, len(jobs))
	for _, job := range jobs {
		items = append(items, response.JobToResponse(job))
	}

	return items, nil
}

func (s *jobService) RecruiterStats(ctx context.Context, recruiterID uuid.UUID) (*response.RecruiterStatsResponse, error) {
	filter := entity.JobFilter{CreatedBy: &recruiterID}
	jobsPosted, err := s.repo.Job.CountAll(ctx, filter)
	if err != nil {
		return nil, err
	}

	byStatus, err := s.repo.Application.StatusCountsForRecruiter(ctx, recruiterID)
	if err != nil {
		return nil, err
	}

	var total int64
	for _, count := range byStatus {
		total += count
	}

	return &response.RecruiterStatsResponse{
		JobsPosted:      jobsPosted,
		TotalApplicants: total,
		ByStatus:        byStatus,
	}, nil
}

func (s *jobService) CandidateStats(ctx context.Context, userID uuid.UUID) (*response.CandidateStatsResponse, error) {
	applications, err := s.repo.Application.CountByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	bookmarks, err := s.repo.User.FindBookmarks(ctx, userID)
	if err != nil {
		return nil, err
	}

	byStatus, err := s.repo.Application.StatusCountsForUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	return &response.CandidateStatsResponse{
		Applications: applications,
		Bookmarks:    len(bookmarks),
		ByStatus:     byStatus,
	}, nil
}

func (s *jobService) notify(ctx context.Context, n *entity.Notification) {
	now := time.Now()
	n.BaseNoDelete = entity.BaseNoDelete{
		ID:        utils.GenerateUUID(),
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.repo.Notification.Create(ctx, n); err != nil {
		s.log.Warn("Failed to create notification",
			zap.Error(err),
			zap.String("recipient_id", n.RecipientID.String()))
	}
}
