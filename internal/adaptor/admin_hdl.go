package adaptor

import (
	"encoding/json"
	"net/http"

	"job-portal/internal/data/entity"
	"job-portal/internal/data/repository"
	"job-portal/internal/dto/request"
	"job-portal/internal/usecase"
	"job-portal/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type AdminHandler struct {
	service usecase.AdminService
	log     *zap.Logger
}

func NewAdminHandler(service usecase.AdminService, log *zap.Logger) *AdminHandler {
	return &AdminHandler{
		service: service,
		log:     log,
	}
}

// ListApprovals handles GET /api/admin/approvals?status=pending
func (h *AdminHandler) ListApprovals(w http.ResponseWriter, r *http.Request) {
	status := r.URL.Query().Get("status")

	resp, err := h.service.ListApprovals(r.Context(), status, parsePage(r))
	if err != nil {
		handleServiceError(w, h.log, err, "list approvals")
		return
	}

	utils.ResponseSuccess(w, "Approvals retrieved", resp)
}

// GetApproval handles GET /api/admin/approvals/{id}
func (h *AdminHandler) GetApproval(w http.ResponseWriter, r *http.Request) {
	approvalID, ok := pathUUID(r, "id")
	if !ok {
		utils.ResponseBadRequest(w, "Invalid approval ID", nil)
		return
	}

	resp, err := h.service.GetApproval(r.Context(), approvalID)
	if err != nil {
		handleServiceError(w, h.log, err, "get approval")
		return
	}

	utils.ResponseSuccess(w, "Approval retrieved", resp)
}

// Approve handles POST /api/admin/approvals/{id}/approve
func (h *AdminHandler) Approve(w http.ResponseWriter, r *http.Request) {
	adminID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Not authenticated")
		return
	}

	approvalID, ok := pathUUID(r, "id")
	if !ok {
		utils.ResponseBadRequest(w, "Invalid approval ID", nil)
		return
	}

	var req request.ApproveRecruiterRequest
	if r.ContentLength > 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			utils.ResponseBadRequest(w, "Invalid request body", nil)
			return
		}
	}

	resp, err := h.service.Approve(r.Context(), approvalID, adminID, &req)
	if err != nil {
		handleServiceError(w, h.log, err, "approve recruiter")
		return
	}

	utils.ResponseSuccess(w, "Recruiter approved", resp)
}

// Reject handles POST /api/admin/approvals/{id}/reject
func (h *AdminHandler) Reject(w http.ResponseWriter, r *http.Request) {
	adminID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Not authenticated")
		return
	}

	approvalID, ok := pathUUID(r, "id")
	if !ok {
		utils.ResponseBadRequest(w, "Invalid approval ID", nil)
		return
	}

	var req request.RejectRecruiterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	resp, err := h.service.Reject(r.Context(), approvalID, adminID, &req)
	if err != nil {
		handleServiceError(w, h.log, err, "reject recruiter")
		return
	}

	utils.ResponseSuccess(w, "Recruiter rejected", resp)
}

// DeleteApproval handles DELETE /api/admin/approvals/{id}
func (h *AdminHandler) DeleteApproval(w http.ResponseWriter, r *http.Request) {
	adminID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Not authenticated")
		return
	}

	approvalID, ok := pathUUID(r, "id")
	if !ok {
		utils.ResponseBadRequest(w, "Invalid approval ID", nil)
		return
	}

	if err := h.service.DeleteApproval(r.Context(), approvalID, adminID); err != nil {
		handleServiceError(w, h.log, err, "delete approval")
		return
	}

	utils.ResponseSuccess(w, "Approval record deleted", nil)
}

// Stats handles GET /api/admin/stats
func (h *AdminHandler) Stats(w http.ResponseWriter, r *http.Request) {
	resp, err := h.service.Stats(r.Context())
	if err != nil {
		handleServiceError(w, h.log, err, "platform stats")
		return
	}

	utils.ResponseSuccess(w, "Stats retrieved", resp)
}

// ListUsers handles GET /api/admin/users
func (h *AdminHandler) ListUsers(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filter := repository.UserFilter{
		Role:          q.Get("role"),
		AccountStatus: q.Get("account_status"),
		Search:        q.Get("search"),
	}

	resp, err := h.service.ListUsers(r.Context(), filter, parsePage(r))
	if err != nil {
		handleServiceError(w, h.log, err, "list users")
		return
	}

	utils.ResponseSuccess(w, "Users retrieved", resp)
}

// SetUserActive handles PUT /api/admin/users/{id}/status
func (h *AdminHandler) SetUserActive(w http.ResponseWriter, r *http.Request) {
	adminID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Not authenticated")
		return
	}

	userID, ok := pathUUID(r, "id")
	if !ok {
		utils.ResponseBadRequest(w, "Invalid user ID", nil)
		return
	}

	var req request.UpdateUserStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	if err := h.service.SetUserActive(r.Context(), userID, adminID, req.IsActive); err != nil {
		handleServiceError(w, h.log, err, "set user status")
		return
	}

	message := "User activated"
	if !req.IsActive {
		message = "User deactivated"
	}
	utils.ResponseSuccess(w, message, nil)
}

// SetUserRole handles PUT /api/admin/users/{id}/role
func (h *AdminHandler) SetUserRole(w http.ResponseWriter, r *http.Request) {
	adminID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Not authenticated")
		return
	}

	userID, ok := pathUUID(r, "id")
	if !ok {
		utils.ResponseBadRequest(w, "Invalid user ID", nil)
		return
	}

	var req request.UpdateUserRoleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}
	if errs := utils.ValidateStruct(&req); len(errs) > 0 {
		utils.ResponseBadRequest(w, "Validation failed", errs)
		return
	}

	if err := h.service.SetUserRole(r.Context(), userID, adminID, entity.UserRole(req.Role)); err != nil {
		handleServiceError(w, h.log, err, "set user role")
		return
	}

	utils.ResponseSuccess(w, "User role updated", nil)
}

// DeleteUser handles DELETE /api/admin/users/{id}
func (h *AdminHandler) DeleteUser(w http.ResponseWriter, r *http.Request) {
	adminID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Not authenticated")
		return
	}

	userID, ok := pathUUID(r, "id")
	if !ok {
		utils.ResponseBadRequest(w, "Invalid user ID", nil)
		return
	}

	if err := h.service.DeleteUser(r.Context(), userID, adminID); err != nil {
		handleServiceError(w, h.log, err, "delete user")
		return
	}

	utils.ResponseSuccess(w, "User deleted", nil)
}

// ListAuditLogs handles GET /api/admin/audit-logs
func (h *AdminHandler) ListAuditLogs(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	var userID *uuid.UUID
	if raw := q.Get("user_id"); raw != "" {
		id, err := utils.ParseUUID(raw)
		if err != nil {
			utils.ResponseBadRequest(w, "Invalid user_id filter", nil)
			return
		}
		userID = &id
	}

	resp, err := h.service.ListAuditLogs(r.Context(), userID, q.Get("action"), parsePage(r))
	if err != nil {
		handleServiceError(w, h.log, err, "list audit logs")
		return
	}

	utils.ResponseSuccess(w, "Audit logs retrieved", resp)
}
