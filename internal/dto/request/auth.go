package request

type StartRegistrationRequest struct {
	Fullname       string  `json:"fullname" validate:"required,min=2,max=100"`
	Email          string  `json:"email" validate:"required,email"`
	Password       string  `json:"password" validate:"required,min=8"`
	Role           string  `json:"role" validate:"required,oneof=candidate recruiter"`
	CompanyName    *string `json:"company_name,omitempty" validate:"omitempty,min=2,max=200"`
	CompanyWebsite *string `json:"company_website,omitempty" validate:"omitempty,url"`
	Designation    *string `json:"designation,omitempty" validate:"omitempty,max=100"`
}

// CompleteRegistrationRequest resubmits the registration fields together
// with the emailed code; the account is only created once the code checks
// out, so Start stores nothing the client could rely on.
type CompleteRegistrationRequest struct {
	Fullname       string  `json:"fullname" validate:"required,min=2,max=100"`
	Email          string  `json:"email" validate:"required,email"`
	Password       string  `json:"password" validate:"required,min=8"`
	Role           string  `json:"role" validate:"required,oneof=candidate recruiter"`
	CompanyName    *string `json:"company_name,omitempty" validate:"omitempty,min=2,max=200"`
	CompanyWebsite *string `json:"company_website,omitempty" validate:"omitempty,url"`
	Designation    *string `json:"designation,omitempty" validate:"omitempty,max=100"`
	OTP            string  `json:"otp" validate:"required,len=6,numeric"`
}

type ResendOTPRequest struct {
	Email   string `json:"email" validate:"required,email"`
	Purpose string `json:"purpose" validate:"required,oneof=registration password-reset"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type RefreshRequest struct {
	RefreshToken string `json:"refresh_token" validate:"required"`
}

type ForgotPasswordRequest struct {
	Email string `json:"email" validate:"required,email"`
}

type ResetPasswordRequest struct {
	Email       string `json:"email" validate:"required,email"`
	OTP         string `json:"otp" validate:"required,len=6,numeric"`
	NewPassword string `json:"new_password" validate:"required,min=8"`
}

type UpdateProfileRequest struct {
	Fullname   *string `json:"fullname,omitempty" validate:"omitempty,min=2,max=100"`
	ProfilePic *string `json:"profile_pic,omitempty" validate:"omitempty,url"`
}

type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password" validate:"required"`
	NewPassword     string `json:"new_password" validate:"required,min=8"`
}
