package response

import (
	"time"

	"job-portal/internal/data/entity"
)

type RegistrationStartedResponse struct {
	Email     string    `json:"email"`
	ExpiresAt time.Time `json:"expires_at"`
}

type AuthResponse struct {
	User         UserResponse `json:"user"`
	AccessToken  string       `json:"access_token"`
	RefreshToken string       `json:"refresh_token"`
	ExpiresAt    time.Time    `json:"expires_at"`
}

type RegistrationCompletedResponse struct {
	User            UserResponse       `json:"user"`
	Tokens          *TokenPairResponse `json:"tokens,omitempty"`
	PendingApproval bool               `json:"pending_approval"`
}

type TokenPairResponse struct {
	AccessToken  string    `json:"access_token"`
	RefreshToken string    `json:"refresh_token"`
	ExpiresAt    time.Time `json:"expires_at"`
}

type UserResponse struct {
	ID            string               `json:"id"`
	Fullname      string               `json:"fullname"`
	Email         string               `json:"email"`
	Role          entity.UserRole      `json:"role"`
	AccountStatus entity.AccountStatus `json:"account_status"`
	AuthProvider  entity.AuthProvider  `json:"auth_provider"`
	EmailVerified bool                 `json:"email_verified"`
	IsActive      bool                 `json:"is_active"`
	ProfilePic    *string              `json:"profile_pic,omitempty"`
	CreatedAt     time.Time            `json:"created_at"`
}

// Helper converters
func UserToResponse(user *entity.User) UserResponse {
	return UserResponse{
		ID:            user.ID.String(),
		Fullname:      user.Fullname,
		Email:         user.Email,
		Role:          user.Role,
		AccountStatus: user.AccountStatus,
		AuthProvider:  user.AuthProvider,
		EmailVerified: user.EmailVerified,
		IsActive:      user.IsActive,
		ProfilePic:    user.ProfilePic,
		CreatedAt:     user.CreatedAt,
	}
}

func AuthToResponse(user *entity.User, accessToken, refreshToken string, expiresAt time.Time) AuthResponse {
	return AuthResponse{
		User:         UserToResponse(user),
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		ExpiresAt:    expiresAt,
	}
}
