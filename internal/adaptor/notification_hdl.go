package adaptor

import (
	"net/http"

	"job-portal/internal/usecase"
	"job-portal/pkg/utils"

	"go.uber.org/zap"
)

type NotificationHandler struct {
	service usecase.NotificationService
	log     *zap.Logger
}

func NewNotificationHandler(service usecase.NotificationService, log *zap.Logger) *NotificationHandler {
	return &NotificationHandler{
		service: service,
		log:     log,
	}
}

// List handles GET /api/notifications?unread=true
func (h *NotificationHandler) List(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Not authenticated")
		return
	}

	unreadOnly := r.URL.Query().Get("unread") == "true"

	resp, err := h.service.List(r.Context(), userID, unreadOnly, parsePage(r))
	if err != nil {
		handleServiceError(w, h.log, err, "list notifications")
		return
	}

	utils.ResponseSuccess(w, "Notifications retrieved", resp)
}

// UnreadCount handles GET /api/notifications/unread-count
func (h *NotificationHandler) UnreadCount(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Not authenticated")
		return
	}

	count, err := h.service.UnreadCount(r.Context(), userID)
	if err != nil {
		handleServiceError(w, h.log, err, "unread count")
		return
	}

	utils.ResponseSuccess(w, "Unread count retrieved", map[string]int64{"count": count})
}

// MarkRead handles PUT /api/notifications/{id}/read
func (h *NotificationHandler) MarkRead(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Not authenticated")
		return
	}

	notifID, ok := pathUUID(r, "id")
	if !ok {
		utils.ResponseBadRequest(w, "Invalid notification ID", nil)
		return
	}

	if err := h.service.MarkRead(r.Context(), notifID, userID); err != nil {
		handleServiceError(w, h.log, err, "mark notification read")
		return
	}

	utils.ResponseSuccess(w, "Notification marked as read", nil)
}

// MarkAllRead handles PUT /api/notifications/read-all
func (h *NotificationHandler) MarkAllRead(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Not authenticated")
		return
	}

	count, err := h.service.MarkAllRead(r.Context(), userID)
	if err != nil {
		handleServiceError(w, h.log, err, "mark all notifications read")
		return
	}

	utils.ResponseSuccess(w, "Notifications marked as read", map[string]int64{"updated": count})
}

// Delete handles DELETE /api/notifications/{id}
func (h *NotificationHandler) Delete(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Not authenticated")
		return
	}

	notifID, ok := pathUUID(r, "id")
	if !ok {
		utils.ResponseBadRequest(w, "Invalid notification ID", nil)
		return
	}

	if err := h.service.Delete(r.Context(), notifID, userID); err != nil {
		handleServiceError(w, h.log, err, "delete notification")
		return
	}

	utils.ResponseSuccess(w, "Notification deleted", nil)
}
