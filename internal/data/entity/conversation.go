package entity

import (
	"time"

	"github.com/google/uuid"
)

type Conversation struct {
	BaseNoDelete
	Participants       []uuid.UUID `db:"-"`
	RelatedJobID       *uuid.UUID  `db:"related_job_id"`
	RelatedApplication *uuid.UUID  `db:"related_application_id"`
	LastMessageID      *uuid.UUID  `db:"last_message_id"`
	LastMessageAt      time.Time   `db:"last_message_at"`
}

type Message struct {
	BaseSimple
	ConversationID uuid.UUID  `db:"conversation_id"`
	SenderID       uuid.UUID  `db:"sender_id"`
	Content        string     `db:"content"`
	IsRead         bool       `db:"is_read"`
	ReadAt         *time.Time `db:"read_at"`
}
