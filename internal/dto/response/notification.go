package response

import (
	"time"

	"job-portal/internal/data/entity"
)

type NotificationResponse struct {
	ID                 string                  `json:"id"`
	Type               entity.NotificationType `json:"type"`
	Title              string                  `json:"title"`
	Message            string                  `json:"message"`
	SenderID           *string                 `json:"sender_id,omitempty"`
	RelatedJobID       *string                 `json:"related_job_id,omitempty"`
	RelatedApplication *string                 `json:"related_application_id,omitempty"`
	IsRead             bool                    `json:"is_read"`
	Link               *string                 `json:"link,omitempty"`
	CreatedAt          time.Time               `json:"created_at"`
}

func NotificationToResponse(n *entity.Notification) NotificationResponse {
	resp := NotificationResponse{
		ID:        n.ID.String(),
		Type:      n.Type,
		Title:     n.Title,
		Message:   n.Message,
		IsRead:    n.IsRead,
		Link:      n.Link,
		CreatedAt: n.CreatedAt,
	}

	if n.SenderID != nil {
		s := n.SenderID.String()
		resp.SenderID = &s
	}
	if n.RelatedJobID != nil {
		s := n.RelatedJobID.String()
		resp.RelatedJobID = &s
	}
	if n.RelatedApplication != nil {
		s := n.RelatedApplication.String()
		resp.RelatedApplication = &s
	}

	return resp
}
