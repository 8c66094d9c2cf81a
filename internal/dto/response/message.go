package response

import (
	"time"

	"job-portal/internal/data/entity"
)

type ConversationResponse struct {
	ID                 string     `json:"id"`
	Participants       []string   `json:"participants"`
	RelatedJobID       *string    `json:"related_job_id,omitempty"`
	RelatedApplication *string    `json:"related_application_id,omitempty"`
	LastMessageAt      time.Time  `json:"last_message_at"`
	UnreadCount        int64      `json:"unread_count"`
	LastMessage        *MessageResponse `json:"last_message,omitempty"`
}

type MessageResponse struct {
	ID             string     `json:"id"`
	ConversationID string     `json:"conversation_id"`
	SenderID       string     `json:"sender_id"`
	Content        string     `json:"content"`
	IsRead         bool       `json:"is_read"`
	ReadAt         *time.Time `json:"read_at,omitempty"`
	CreatedAt      time.Time  `json:"created_at"`
}

// Helper converters
func MessageToResponse(msg *entity.Message) MessageResponse {
	return MessageResponse{
		ID:             msg.ID.String(),
		ConversationID: msg.ConversationID.String(),
		SenderID:       msg.SenderID.String(),
		Content:        msg.Content,
		IsRead:         msg.IsRead,
		ReadAt:         msg.ReadAt,
		CreatedAt:      msg.CreatedAt,
	}
}

func ConversationToResponse(conv *entity.Conversation, unread int64, last *entity.Message) ConversationResponse {
	participants := make([]string, 0, len(conv.Participants))
	for _, p := range conv.Participants {
		participants = append(participants, p.String())
	}

	resp := ConversationResponse{
		ID:            conv.ID.String(),
		Participants:  participants,
		LastMessageAt: conv.LastMessageAt,
		UnreadCount:   unread,
	}

	if conv.RelatedJobID != nil {
		s := conv.RelatedJobID.String()
		resp.RelatedJobID = &s
	}
	if conv.RelatedApplication != nil {
		s := conv.RelatedApplication.String()
		resp.RelatedApplication = &s
	}
	if last != nil {
		msgResp := MessageToResponse(last)
		resp.LastMessage = &msgResp
	}

	return resp
}
