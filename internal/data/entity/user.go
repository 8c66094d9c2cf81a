package entity

import "github.com/google/uuid"

type UserRole string

const (
	RoleCandidate UserRole = "candidate"
	RoleRecruiter UserRole = "recruiter"
	RoleAdmin     UserRole = "admin"
)

type AuthProvider string

const (
	ProviderLocal  AuthProvider = "local"
	ProviderGoogle AuthProvider = "google"
	ProviderApple  AuthProvider = "apple"
)

type AccountStatus string

const (
	AccountPending  AccountStatus = "pending"
	AccountApproved AccountStatus = "approved"
	AccountRejected AccountStatus = "rejected"
	AccountBlocked  AccountStatus = "blocked"
)

type User struct {
	Base
	Fullname      string        `db:"fullname"`
	Email         string        `db:"email"`
	PasswordHash  string        `db:"password"`
	AuthProvider  AuthProvider  `db:"auth_provider"`
	ProviderID    *string       `db:"provider_id"`
	Role          UserRole      `db:"role"`
	AccountStatus AccountStatus `db:"account_status"`
	EmailVerified bool          `db:"email_verified"`
	IsActive      bool          `db:"is_active"`
	RefreshToken  string        `db:"refresh_token"`
	ProfilePic    *string       `db:"profile_pic"`
	Bookmarks     []uuid.UUID   `db:"-"`
}

// DefaultAccountStatus returns the status a freshly created account starts
// with: recruiters wait for admin approval, everyone else is approved.
func DefaultAccountStatus(role UserRole) AccountStatus {
	if role == RoleRecruiter {
		return AccountPending
	}
	return AccountApproved
}
