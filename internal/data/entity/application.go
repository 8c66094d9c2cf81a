package entity

import "github.com/google/uuid"

type ApplicationStatus string

const (
	ApplicationApplied     ApplicationStatus = "applied"
	ApplicationShortlisted ApplicationStatus = "shortlisted"
	ApplicationRejected    ApplicationStatus = "rejected"
	ApplicationHired       ApplicationStatus = "hired"
)

// ValidApplicationStatus reports whether s is an accepted status literal
func ValidApplicationStatus(s string) bool {
	switch ApplicationStatus(s) {
	case ApplicationApplied, ApplicationShortlisted, ApplicationRejected, ApplicationHired:
		return true
	}
	return false
}

type Application struct {
	BaseNoDelete
	UserID    uuid.UUID         `db:"user_id"`
	JobID     uuid.UUID         `db:"job_id"`
	ResumeURL string            `db:"resume_url"`
	ResumeKey string            `db:"resume_key"`
	Status    ApplicationStatus `db:"status"`
}
