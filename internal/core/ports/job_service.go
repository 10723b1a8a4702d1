package ports

import (
	"context"
	"time"

	"github.com/talentbridge/marketplace/internal/core/domain"
)

// JobInput carries the writable fields of a job. On update, empty strings and
// nil salaries leave the stored value untouched.
type JobInput struct {
	Title        string
	Description  string
	Company      string
	Location     string
	JobType      string
	SalaryMin    *int64
	SalaryMax    *int64
	Requirements string
	Status       string
}

type JobService interface {
	List(ctx context.Context, filter JobFilter) ([]*domain.Job, error)
	Get(ctx context.Context, id string) (*domain.Job, error)
	Create(ctx context.Context, p domain.Principal, in JobInput) (*domain.Job, error)
	Update(ctx context.Context, p domain.Principal, id string, in JobInput) (*domain.Job, error)
	Delete(ctx context.Context, p domain.Principal, id string) error
	ListMine(ctx context.Context, p domain.Principal) ([]*domain.Job, error)
}

// SubmitApplicationInput carries the contact details a candidate attaches to an application.
type SubmitApplicationInput struct {
	JobID          string
	FullName       string
	Email          string
	Phone          string
	CoverLetter    string
	ResumeURL      string
	ResumeFilename string
}

// ApplicationService drives the application lifecycle.
type ApplicationService interface {
	Submit(ctx context.Context, p domain.Principal, in SubmitApplicationInput) (*domain.Application, error)
	SetStatus(ctx context.Context, p domain.Principal, applicationID, status string) (*domain.Application, error)
	List(ctx context.Context, p domain.Principal) ([]*domain.Application, error)
	ListForJob(ctx context.Context, p domain.Principal, jobID string) ([]*domain.Application, error)
	History(ctx context.Context, p domain.Principal, applicationID string) ([]*domain.ApplicationEvent, error)
}

// CreateBookingInput carries the fields for scheduling a call.
type CreateBookingInput struct {
	CandidateID     string
	EmployerID      string
	JobID           string
	ScheduledAt     time.Time
	DurationMinutes int
	MeetingLink     string
	Notes           string
}

// UpdateBookingInput carries the mutable fields of a booking. Nil leaves the field untouched.
type UpdateBookingInput struct {
	Status      *string
	ScheduledAt *time.Time
	MeetingLink *string
	Notes       *string
}

type BookingService interface {
	List(ctx context.Context, p domain.Principal, status string) ([]*domain.Booking, error)
	Create(ctx context.Context, p domain.Principal, in CreateBookingInput) (*domain.Booking, error)
	Update(ctx context.Context, p domain.Principal, id string, in UpdateBookingInput) (*domain.Booking, error)
	Delete(ctx context.Context, p domain.Principal, id string) error
}
