package domain

import "time"

// JobStatus is the publication state of a job posting.
type JobStatus string

const (
	JobStatusDraft  JobStatus = "draft"
	JobStatusOpen   JobStatus = "open"
	JobStatusClosed JobStatus = "closed"
)

// JobType classifies the engagement.
type JobType string

const (
	JobTypeFullTime JobType = "full-time"
	JobTypePartTime JobType = "part-time"
	JobTypeContract JobType = "contract"
	JobTypeRemote   JobType = "remote"
)

// Job is a posting owned by exactly one employer (PostedBy). Ownership never transfers.
type Job struct {
	ID           string    `json:"id" db:"id"`
	Title        string    `json:"title" db:"title"`
	Description  string    `json:"description" db:"description"`
	Company      string    `json:"company" db:"company"`
	Location     string    `json:"location" db:"location"`
	JobType      JobType   `json:"job_type" db:"job_type"`
	SalaryMin    *int64    `json:"salary_min,omitempty" db:"salary_min"`
	SalaryMax    *int64    `json:"salary_max,omitempty" db:"salary_max"`
	Requirements string    `json:"requirements" db:"requirements"`
	Status       JobStatus `json:"status" db:"status"`
	PostedBy     string    `json:"posted_by" db:"posted_by"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
	UpdatedAt    time.Time `json:"updated_at" db:"updated_at"`
}

// IsOpen reports whether candidates may apply.
func (j *Job) IsOpen() bool {
	return j.Status == JobStatusOpen
}
