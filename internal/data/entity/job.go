package entity

import "github.com/google/uuid"

type JobType string

const (
	JobOnSite JobType = "on-site"
	JobHybrid JobType = "hybrid"
	JobRemote JobType = "remote"
)

type JobTime string

const (
	JobFullTime JobTime = "full-time"
	JobPartTime JobTime = "part-time"
)

type Job struct {
	Base
	Title            string   `db:"title"`
	Responsibilities []string `db:"responsibilities"`
	Skills           []string `db:"skills"`
	Company          string   `db:"company"`
	CompanyWebsite   *string  `db:"company_website"`
	Location         string   `db:"location"`
	Type             JobType  `db:"type"`
	JobTime          JobTime  `db:"job_time"`
	SalaryMin        *int64   `db:"salary_min"`
	SalaryMax        *int64   `db:"salary_max"`
	CreatedBy        uuid.UUID `db:"created_by"`
}

// JobFilter narrows job listings; zero values mean "no filter"
type JobFilter struct {
	Search    string
	Location  string
	Type      string
	JobTime   string
	SalaryMin *int64
	SalaryMax *int64
	CreatedBy *uuid.UUID
}
