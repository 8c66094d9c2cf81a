package response

import (
	"time"

	"job-portal/internal/data/entity"
)

type JobResponse struct {
	ID               string         `json:"id"`
	Title            string         `json:"title"`
	Responsibilities []string       `json:"responsibilities"`
	Skills           []string       `json:"skills"`
	Company          string         `json:"company"`
	CompanyWebsite   *string        `json:"company_website,omitempty"`
	Location         string         `json:"location"`
	Type             entity.JobType `json:"type"`
	JobTime          entity.JobTime `json:"job_time"`
	SalaryMin        *int64         `json:"salary_min,omitempty"`
	SalaryMax        *int64         `json:"salary_max,omitempty"`
	CreatedBy        string         `json:"created_by"`
	CreatedAt        time.Time      `json:"created_at"`
}

type JobDetailResponse struct {
	JobResponse
	ApplicantCount int64      `json:"applicant_count"`
	IsBookmarked   bool       `json:"is_bookmarked"`
	HasApplied     bool       `json:"has_applied"`
	UpdatedAt      *time.Time `json:"updated_at,omitempty"`
}

type ApplicationResponse struct {
	ID        string                   `json:"id"`
	JobID     string                   `json:"job_id"`
	UserID    string                   `json:"user_id"`
	ResumeURL string                   `json:"resume_url"`
	Status    entity.ApplicationStatus `json:"status"`
	Job       *JobResponse             `json:"job,omitempty"`
	Applicant *UserResponse            `json:"applicant,omitempty"`
	CreatedAt time.Time                `json:"created_at"`
}

type RecruiterStatsResponse struct {
	JobsPosted      int64                               `json:"jobs_posted"`
	TotalApplicants int64                               `json:"total_applicants"`
	ByStatus        map[entity.ApplicationStatus]int64  `json:"by_status"`
}

type CandidateStatsResponse struct {
	Applications int64                              `json:"applications"`
	Bookmarks    int                                `json:"bookmarks"`
	ByStatus     map[entity.ApplicationStatus]int64 `json:"by_status"`
}

// Helper converters
func JobToResponse(job *entity.Job) JobResponse {
	return JobResponse{
		ID:               job.ID.String(),
		Title:            job.Title,
		Responsibilities: job.Responsibilities,
		Skills:           job.Skills,
		Company:          job.Company,
		CompanyWebsite:   job.CompanyWebsite,
		Location:         job.Location,
		Type:             job.Type,
		JobTime:          job.JobTime,
		SalaryMin:        job.SalaryMin,
		SalaryMax:        job.SalaryMax,
		CreatedBy:        job.CreatedBy.String(),
		CreatedAt:        job.CreatedAt,
	}
}

func ApplicationToResponse(app *entity.Application, job *entity.Job, applicant *entity.User) ApplicationResponse {
	resp := ApplicationResponse{
		ID:        app.ID.String(),
		JobID:     app.JobID.String(),
		UserID:    app.UserID.String(),
		ResumeURL: app.ResumeURL,
		Status:    app.Status,
		CreatedAt: app.CreatedAt,
	}

	if job != nil {
		jobResp := JobToResponse(job)
		resp.Job = &jobResp
	}
	if applicant != nil {
		userResp := UserToResponse(applicant)
		resp.Applicant = &userResp
	}

	return resp
}
