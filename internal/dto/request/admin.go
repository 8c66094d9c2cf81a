package request

type ApproveRecruiterRequest struct {
	AdminNotes *string `json:"admin_notes,omitempty" validate:"omitempty,max=1000"`
}

type RejectRecruiterRequest struct {
	Reason        string  `json:"reason" validate:"required,min=3,max=1000"`
	BlockDuration string  `json:"block_duration" validate:"required,oneof=none 1week 2weeks 1month 2months permanent"`
	AdminNotes    *string `json:"admin_notes,omitempty" validate:"omitempty,max=1000"`
}

type UpdateUserStatusRequest struct {
	IsActive bool `json:"is_active"`
}

type UpdateUserRoleRequest struct {
	Role string `json:"role" validate:"required,oneof=candidate recruiter admin"`
}
