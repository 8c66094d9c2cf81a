package entity

import "github.com/google/uuid"

type AuditLog struct {
	BaseSimple
	UserID   uuid.UUID      `db:"user_id"`
	Action   string         `db:"action"` // e.g. APPROVE_RECRUITER, DELETE_JOB
	Metadata map[string]any `db:"metadata"`
}
