package adaptor

import (
	"encoding/json"
	"net/http"

	"job-portal/internal/dto/request"
	"job-portal/internal/usecase"
	"job-portal/pkg/utils"

	"go.uber.org/zap"
)

type MessageHandler struct {
	service usecase.MessageService
	log     *zap.Logger
}

func NewMessageHandler(service usecase.MessageService, log *zap.Logger) *MessageHandler {
	return &MessageHandler{
		service: service,
		log:     log,
	}
}

// StartConversation handles POST /api/conversations
func (h *MessageHandler) StartConversation(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Not authenticated")
		return
	}

	var req request.StartConversationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	resp, err := h.service.StartConversation(r.Context(), userID, &req)
	if err != nil {
		handleServiceError(w, h.log, err, "start conversation")
		return
	}

	utils.ResponseCreated(w, "Conversation started", resp)
}

// ListConversations handles GET /api/conversations
func (h *MessageHandler) ListConversations(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Not authenticated")
		return
	}

	resp, err := h.service.ListConversations(r.Context(), userID, parsePage(r))
	if err != nil {
		handleServiceError(w, h.log, err, "list conversations")
		return
	}

	utils.ResponseSuccess(w, "Conversations retrieved", resp)
}

// Send handles POST /api/conversations/{id}/messages
func (h *MessageHandler) Send(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Not authenticated")
		return
	}

	convID, ok := pathUUID(r, "id")
	if !ok {
		utils.ResponseBadRequest(w, "Invalid conversation ID", nil)
		return
	}

	var req request.SendMessageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	resp, err := h.service.Send(r.Context(), convID, userID, &req)
	if err != nil {
		handleServiceError(w, h.log, err, "send message")
		return
	}

	utils.ResponseCreated(w, "Message sent", resp)
}

// ListMessages handles GET /api/conversations/{id}/messages
func (h *MessageHandler) ListMessages(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Not authenticated")
		return
	}

	convID, ok := pathUUID(r, "id")
	if !ok {
		utils.ResponseBadRequest(w, "Invalid conversation ID", nil)
		return
	}

	resp, err := h.service.ListMessages(r.Context(), convID, userID, parsePage(r))
	if err != nil {
		handleServiceError(w, h.log, err, "list messages")
		return
	}

	utils.ResponseSuccess(w, "Messages retrieved", resp)
}

// MarkRead handles PUT /api/conversations/{id}/read
func (h *MessageHandler) MarkRead(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Not authenticated")
		return
	}

	convID, ok := pathUUID(r, "id")
	if !ok {
		utils.ResponseBadRequest(w, "Invalid conversation ID", nil)
		return
	}

	if err := h.service.MarkRead(r.Context(), convID, userID); err != nil {
		handleServiceError(w, h.log, err, "mark conversation read")
		return
	}

	utils.ResponseSuccess(w, "Conversation marked as read", nil)
}

// UnreadCount handles GET /api/conversations/unread-count
func (h *MessageHandler) UnreadCount(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Not authenticated")
		return
	}

	count, err := h.service.UnreadCount(r.Context(), userID)
	if err != nil {
		handleServiceError(w, h.log, err, "count unread messages")
		return
	}

	utils.ResponseSuccess(w, "Unread count retrieved", map[string]int64{"unread_count": count})
}

// DeleteConversation handles DELETE /api/conversations/{id}
func (h *MessageHandler) DeleteConversation(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Not authenticated")
		return
	}

	convID, ok := pathUUID(r, "id")
	if !ok {
		utils.ResponseBadRequest(w, "Invalid conversation ID", nil)
		return
	}

	if err := h.service.DeleteConversation(r.Context(), convID, userID); err != nil {
		handleServiceError(w, h.log, err, "delete conversation")
		return
	}

	utils.ResponseSuccess(w, "Conversation deleted", nil)
}
