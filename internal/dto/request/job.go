package request

type JobRequest struct {
	Title            string   `json:"title" validate:"required,min=2,max=200"`
	Responsibilities []string `json:"responsibilities" validate:"required,min=1,dive,min=1"`
	Skills           []string `json:"skills" validate:"required,min=1,dive,min=1"`
	Company          string   `json:"company" validate:"required,min=2,max=200"`
	CompanyWebsite   *string  `json:"company_website,omitempty" validate:"omitempty,url"`
	Location         string   `json:"location" validate:"required,max=200"`
	Type             string   `json:"type" validate:"required,oneof=on-site hybrid remote"`
	JobTime          string   `json:"job_time" validate:"required,oneof=full-time part-time"`
	SalaryMin        *int64   `json:"salary_min,omitempty" validate:"omitempty,min=0"`
	SalaryMax        *int64   `json:"salary_max,omitempty" validate:"omitempty,min=0"`
}

type JobUpdateRequest struct {
	Title            *string  `json:"title,omitempty" validate:"omitempty,min=2,max=200"`
	Responsibilities []string `json:"responsibilities,omitempty" validate:"omitempty,min=1,dive,min=1"`
	Skills           []string `json:"skills,omitempty" validate:"omitempty,min=1,dive,min=1"`
	Company          *string  `json:"company,omitempty" validate:"omitempty,min=2,max=200"`
	CompanyWebsite   *string  `json:"company_website,omitempty" validate:"omitempty,url"`
	Location         *string  `json:"location,omitempty" validate:"omitempty,max=200"`
	Type             *string  `json:"type,omitempty" validate:"omitempty,oneof=on-site hybrid remote"`
	JobTime          *string  `json:"job_time,omitempty" validate:"omitempty,oneof=full-time part-time"`
	SalaryMin        *int64   `json:"salary_min,omitempty" validate:"omitempty,min=0"`
	SalaryMax        *int64   `json:"salary_max,omitempty" validate:"omitempty,min=0"`
}

// JobListQuery mirrors the query string of the job listing endpoint
type JobListQuery struct {
	Search    string
	Location  string
	Type      string
	JobTime   string
	SalaryMin *int64
	SalaryMax *int64
	Page      int
	PerPage   int
}

type ApplicationStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=applied shortlisted rejected hired"`
}
