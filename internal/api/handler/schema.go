package handler

import (
	"time"

	"github.com/talentbridge/marketplace/internal/core/domain"
)

// errorResponse is the standard error envelope returned on all 4xx/5xx responses.
type errorResponse struct {
	Error string `json:"error"`
}

type messageResponse struct {
	Message string `json:"message"`
}

// --- Auth ---

type registerRequest struct {
	Name     string `json:"name"     validate:"required,max=120"`
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required,min=6,max=72"`
	Role     string `json:"role"`
}

type loginRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type authResponse struct {
	Token string       `json:"token,omitempty"`
	User  *domain.User `json:"user,omitempty"`
}

type changeRoleRequest struct {
	Role string `json:"role" validate:"required,oneof=candidate employer admin"`
}

// --- Jobs ---

// jobRequest is shared by create and update; required fields are checked by
// the service so partial updates stay possible.
type jobRequest struct {
	Title        string `json:"title"        validate:"max=200"`
	Description  string `json:"description"`
	Company      string `json:"company"      validate:"max=200"`
	Location     string `json:"location"     validate:"max=200"`
	JobType      string `json:"job_type"     validate:"omitempty,oneof=full-time part-time contract remote"`
	SalaryMin    *int64 `json:"salary_min"   validate:"omitempty,gte=0"`
	SalaryMax    *int64 `json:"salary_max"   validate:"omitempty,gte=0"`
	Requirements string `json:"requirements"`
	Status       string `json:"status"       validate:"omitempty,oneof=draft open closed"`
}

type jobListQuery struct {
	Title     string `query:"title"`
	Location  string `query:"location"`
	JobType   string `query:"job_type"   validate:"omitempty,oneof=full-time part-time contract remote"`
	SalaryMin *int64 `query:"salary_min" validate:"omitempty,gte=0"`
	SalaryMax *int64 `query:"salary_max" validate:"omitempty,gte=0"`
}

// --- Applications ---

type applyRequest struct {
	FullName       string `json:"full_name"       validate:"max=200"`
	Email          string `json:"email"           validate:"omitempty,email"`
	Phone          string `json:"phone"           validate:"max=32"`
	CoverLetter    string `json:"cover_letter"    validate:"max=10000"`
	ResumeURL      string `json:"resume_url"      validate:"omitempty,url"`
	ResumeFilename string `json:"resume_filename" validate:"max=255"`
}

// statusRequest leaves the status value to the service so an unknown or
// empty value is reported as an invalid status rather than a validation failure.
type statusRequest struct {
	Status string `json:"status"`
}

// --- Bookings ---

type createBookingRequest struct {
	CandidateID     string    `json:"candidate_id"     validate:"required,uuid"`
	EmployerID      string    `json:"employer_id"      validate:"required,uuid"`
	JobID           string    `json:"job_id"           validate:"omitempty,uuid"`
	ScheduledAt     time.Time `json:"scheduled_at"     validate:"required"`
	DurationMinutes int       `json:"duration_minutes" validate:"omitempty,min=1,max=480"`
	MeetingLink     string    `json:"meeting_link"     validate:"omitempty,url"`
	Notes           string    `json:"notes"            validate:"max=2000"`
}

type updateBookingRequest struct {
	Status      *string    `json:"status"       validate:"omitempty,oneof=scheduled completed cancelled no-show"`
	ScheduledAt *time.Time `json:"scheduled_at"`
	MeetingLink *string    `json:"meeting_link" validate:"omitempty,url"`
	Notes       *string    `json:"notes"        validate:"omitempty,max=2000"`
}

// --- Profiles ---

type profileRequest struct {
	Bio             string   `json:"bio"               validate:"max=5000"`
	Skills          []string `json:"skills"            validate:"max=50,dive,max=60"`
	ExperienceYears int      `json:"experience_years"  validate:"gte=0,lte=80"`
	Location        string   `json:"location"          validate:"max=200"`
	HourlyRate      *float64 `json:"hourly_rate"       validate:"omitempty,gte=0"`
	Availability    string   `json:"availability"      validate:"max=100"`
	ProfileImageURL string   `json:"profile_image_url" validate:"omitempty,url"`
	ResumeURL       string   `json:"resume_url"        validate:"omitempty,url"`
	PortfolioURL    string   `json:"portfolio_url"     validate:"omitempty,url"`
	LinkedinURL     string   `json:"linkedin_url"      validate:"omitempty,url"`
	GithubURL       string   `json:"github_url"        validate:"omitempty,url"`
}

// --- Testimonials ---

type testimonialRequest struct {
	Name            string `json:"name"             validate:"required,max=120"`
	Role            string `json:"role"             validate:"max=120"`
	Company         string `json:"company"          validate:"max=200"`
	Location        string `json:"location"         validate:"max=200"`
	Rating          int    `json:"rating"           validate:"required,min=1,max=5"`
	TestimonialText string `json:"testimonial_text" validate:"required,max=5000"`
	Outcome         string `json:"outcome"          validate:"max=500"`
	Category        string `json:"category"         validate:"omitempty,oneof=job-seeker employer"`
}

// talentListQuery: skills is a comma-separated list.
type talentListQuery struct {
	Search     string `query:"search"`
	Skills     string `query:"skills"`
	Experience *int   `query:"experience" validate:"omitempty,gte=0"`
	Limit      int    `query:"limit"      validate:"gte=0"`
	Offset     int    `query:"offset"     validate:"gte=0"`
}

type testimonialListQuery struct {
	Category string `query:"category" validate:"omitempty,oneof=job-seeker employer"`
	Limit    int    `query:"limit"    validate:"gte=0"`
	Offset   int    `query:"offset"   validate:"gte=0"`
}
