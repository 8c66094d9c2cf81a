package entity

import "github.com/google/uuid"

type NotificationType string

const (
	NotificationApplication  NotificationType = "application"
	NotificationStatusUpdate NotificationType = "status_update"
	NotificationJobPosted    NotificationType = "job_posted"
)

type Notification struct {
	BaseNoDelete
	RecipientID        uuid.UUID        `db:"recipient_id"`
	SenderID           *uuid.UUID       `db:"sender_id"`
	Type               NotificationType `db:"type"`
	Title              string           `db:"title"`
	Message            string           `db:"message"`
	RelatedJobID       *uuid.UUID       `db:"related_job_id"`
	RelatedApplication *uuid.UUID       `db:"related_application_id"`
	IsRead             bool             `db:"is_read"`
	Link               *string          `db:"link"`
}
