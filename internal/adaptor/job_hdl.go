package adaptor

import (
	"encoding/json"
	"net/http"
	"strconv"

	"job-portal/internal/data/entity"
	"job-portal/internal/dto/request"
	"job-portal/internal/usecase"
	"job-portal/pkg/utils"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const maxResumeSize = 10 << 20 // 10 MiB

type JobHandler struct {
	service usecase.JobService
	log     *zap.Logger
}

func NewJobHandler(service usecase.JobService, log *zap.Logger) *JobHandler {
	return &JobHandler{
		service: service,
		log:     log,
	}
}

func parsePage(r *http.Request) request.PaginatedRequest {
	return request.PaginatedRequest{
		Page:    utils.ParseInt(r.URL.Query().Get("page"), 1),
		PerPage: utils.ParseInt(r.URL.Query().Get("per_page"), 10),
	}
}

func pathUUID(r *http.Request, name string) (uuid.UUID, bool) {
	id, err := utils.ParseUUID(chi.URLParam(r, name))
	return id, err == nil
}

// List handles GET /api/jobs
func (h *JobHandler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	query := request.JobListQuery{
		Search:   q.Get("search"),
		Location: q.Get("location"),
		Type:     q.Get("type"),
		JobTime:  q.Get("job_time"),
		Page:     utils.ParseInt(q.Get("page"), 1),
		PerPage:  utils.ParseInt(q.Get("per_page"), 10),
	}

	if raw := q.Get("salary_min"); raw != "" {
		if v, err := strconv.ParseInt(raw, 10, 64); err == nil {
			query.SalaryMin = &v
		}
	}
	if raw := q.Get("salary_max"); raw != "" {
		if v, err := strconv.ParseInt(raw, 10, 64); err == nil {
			query.SalaryMax = &v
		}
	}

	resp, err := h.service.List(r.Context(), query)
	if err != nil {
		handleServiceError(w, h.log, err, "list jobs")
		return
	}

	utils.ResponseSuccess(w, "Jobs retrieved", resp)
}

// Get handles GET /api/jobs/{id}
func (h *JobHandler) Get(w http.ResponseWriter, r *http.Request) {
	jobID, ok := pathUUID(r, "id")
	if !ok {
		utils.ResponseBadRequest(w, "Invalid job ID", nil)
		return
	}

	var viewerID *uuid.UUID
	if id, ok := utils.GetUserIDFromContext(r.Context()); ok {
		viewerID = &id
	}

	resp, err := h.service.Get(r.Context(), jobID, viewerID)
	if err != nil {
		handleServiceError(w, h.log, err, "get job")
		return
	}

	utils.ResponseSuccess(w, "Job retrieved", resp)
}

// Create handles POST /api/jobs
func (h *JobHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Not authenticated")
		return
	}

	var req request.JobRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	resp, err := h.service.Create(r.Context(), userID, &req)
	if err != nil {
		handleServiceError(w, h.log, err, "create job")
		return
	}

	utils.ResponseCreated(w, "Job created", resp)
}

// Update handles PUT /api/jobs/{id}
func (h *JobHandler) Update(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Not authenticated")
		return
	}

	jobID, ok := pathUUID(r, "id")
	if !ok {
		utils.ResponseBadRequest(w, "Invalid job ID", nil)
		return
	}

	var req request.JobUpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	role, _ := utils.GetRoleFromContext(r.Context())
	resp, err := h.service.Update(r.Context(), jobID, userID, entity.UserRole(role), &req)
	if err != nil {
		handleServiceError(w, h.log, err, "update job")
		return
	}

	utils.ResponseSuccess(w, "Job updated", resp)
}

// Delete handles DELETE /api/jobs/{id}
func (h *JobHandler) Delete(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Not authenticated")
		return
	}

	jobID, ok := pathUUID(r, "id")
	if !ok {
		utils.ResponseBadRequest(w, "Invalid job ID", nil)
		return
	}

	role, _ := utils.GetRoleFromContext(r.Context())
	if err := h.service.Delete(r.Context(), jobID, userID, entity.UserRole(role)); err != nil {
		handleServiceError(w, h.log, err, "delete job")
		return
	}

	utils.ResponseSuccess(w, "Job deleted", nil)
}

// Apply handles POST /api/jobs/{id}/apply with a multipart resume upload
func (h *JobHandler) Apply(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Not authenticated")
		return
	}

	jobID, ok := pathUUID(r, "id")
	if !ok {
		utils.ResponseBadRequest(w, "Invalid job ID", nil)
		return
	}

	if err := r.ParseMultipartForm(maxResumeSize); err != nil {
		utils.ResponseBadRequest(w, "Invalid multipart form or file too large", nil)
		return
	}

	file, header, err := r.FormFile("resume")
	if err != nil {
		utils.ResponseBadRequest(w, "Resume file is required", nil)
		return
	}
	defer file.Close()

	contentType := header.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	resp, err := h.service.Apply(r.Context(), jobID, userID, file, contentType)
	if err != nil {
		handleServiceError(w, h.log, err, "apply to job")
		return
	}

	utils.ResponseCreated(w, "Application submitted", resp)
}

// ListApplicationsForJob handles GET /api/jobs/{id}/applications
func (h *JobHandler) ListApplicationsForJob(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Not authenticated")
		return
	}

	jobID, ok := pathUUID(r, "id")
	if !ok {
		utils.ResponseBadRequest(w, "Invalid job ID", nil)
		return
	}

	resp, err := h.service.ListApplicationsForJob(r.Context(), jobID, userID, parsePage(r))
	if err != nil {
		handleServiceError(w, h.log, err, "list job applications")
		return
	}

	utils.ResponseSuccess(w, "Applications retrieved", resp)
}

// ListMyApplications handles GET /api/applications
func (h *JobHandler) ListMyApplications(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Not authenticated")
		return
	}

	resp, err := h.service.ListMyApplications(r.Context(), userID, parsePage(r))
	if err != nil {
		handleServiceError(w, h.log, err, "list my applications")
		return
	}

	utils.ResponseSuccess(w, "Applications retrieved", resp)
}

// Withdraw handles DELETE /api/applications/{id}
func (h *JobHandler) Withdraw(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Not authenticated")
		return
	}

	appID, ok := pathUUID(r, "id")
	if !ok {
		utils.ResponseBadRequest(w, "Invalid application ID", nil)
		return
	}

	if err := h.service.Withdraw(r.Context(), appID, userID); err != nil {
		handleServiceError(w, h.log, err, "withdraw application")
		return
	}

	utils.ResponseSuccess(w, "Application withdrawn", nil)
}

// UpdateApplicationStatus handles PUT /api/applications/{id}/status
func (h *JobHandler) UpdateApplicationStatus(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Not authenticated")
		return
	}

	appID, ok := pathUUID(r, "id")
	if !ok {
		utils.ResponseBadRequest(w, "Invalid application ID", nil)
		return
	}

	var req request.ApplicationStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	resp, err := h.service.UpdateApplicationStatus(r.Context(), appID, userID, &req)
	if err != nil {
		handleServiceError(w, h.log, err, "update application status")
		return
	}

	utils.ResponseSuccess(w, "Application status updated", resp)
}

// AddBookmark handles POST /api/jobs/{id}/bookmark
func (h *JobHandler) AddBookmark(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Not authenticated")
		return
	}

	jobID, ok := pathUUID(r, "id")
	if !ok {
		utils.ResponseBadRequest(w, "Invalid job ID", nil)
		return
	}

	if err := h.service.AddBookmark(r.Context(), userID, jobID); err != nil {
		handleServiceError(w, h.log, err, "add bookmark")
		return
	}

	utils.ResponseSuccess(w, "Job bookmarked", nil)
}

// RemoveBookmark handles DELETE /api/jobs/{id}/bookmark
func (h *JobHandler) RemoveBookmark(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Not authenticated")
		return
	}

	jobID, ok := pathUUID(r, "id")
	if !ok {
		utils.ResponseBadRequest(w, "Invalid job ID", nil)
		return
	}

	if err := h.service.RemoveBookmark(r.Context(), userID, jobID); err != nil {
		handleServiceError(w, h.log, err, "remove bookmark")
		return
	}

	utils.ResponseSuccess(w, "Bookmark removed", nil)
}

// ListBookmarks handles GET /api/bookmarks
func (h *JobHandler) ListBookmarks(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Not authenticated")
		return
	}

	resp, err := h.service.ListBookmarks(r.Context(), userID)
	if err != nil {
		handleServiceError(w, h.log, err, "list bookmarks")
		return
	}

	utils.ResponseSuccess(w, "Bookmarks retrieved", resp)
}

// RecruiterStats handles GET /api/stats/recruiter
func (h *JobHandler) RecruiterStats(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Not authenticated")
		return
	}

	resp, err := h.service.RecruiterStats(r.Context(), userID)
	if err != nil {
		handleServiceError(w, h.log, err, "recruiter stats")
		return
	}

	utils.ResponseSuccess(w, "Stats retrieved", resp)
}

// CandidateStats handles GET /api/stats/candidate
func (h *JobHandler) CandidateStats(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Not authenticated")
		return
	}

	resp, err := h.service.CandidateStats(r.Context(), userID)
	if err != nil {
		handleServiceError(w, h.log, err, "candidate stats")
		return
	}

	utils.ResponseSuccess(w, "Stats retrieved", resp)
}
