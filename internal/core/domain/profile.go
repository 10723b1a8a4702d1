package domain

import "time"

// Profile holds the public-facing details of a user.
type Profile struct {
	UserID          string    `json:"user_id"`
	Bio             string    `json:"bio"`
	Skills          []string  `json:"skills"`
	ExperienceYears int       `json:"experience_years"`
	Location        string    `json:"location"`
	HourlyRate      *float64  `json:"hourly_rate,omitempty"`
	Availability    string    `json:"availability"`
	ProfileImageURL string    `json:"profile_image_url"`
	ResumeURL       string    `json:"resume_url"`
	PortfolioURL    string    `json:"portfolio_url"`
	LinkedinURL     string    `json:"linkedin_url"`
	GithubURL       string    `json:"github_url"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// Talent is a candidate as listed in the public talent directory.
type Talent struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Profile
}

// JobLikes is the like state of a job as seen by one user.
type JobLikes struct {
	JobID      string `json:"job_id"`
	IsLiked    bool   `json:"is_liked"`
	LikesCount int64  `json:"likes_count"`
}
