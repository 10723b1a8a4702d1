package ports

import (
	"context"

	"github.com/talentbridge/marketplace/internal/core/domain"
)

// JobFilter carries the optional query parameters for listing jobs.
// Zero values mean "no filter".
type JobFilter struct {
	Title     string // partial, case-insensitive
	Location  string // partial, case-insensitive
	JobType   domain.JobType
	SalaryMin *int64 // salary_max >= SalaryMin
	SalaryMax *int64 // salary_min <= SalaryMax
	Status    domain.JobStatus
	PostedBy  string
}

// JobRepository defines persistence operations for job postings.
type JobRepository interface {
	FindByID(ctx context.Context, id string) (*domain.Job, error)
	Create(ctx context.Context, job *domain.Job) error
	Update(ctx context.Context, job *domain.Job) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, filter JobFilter) ([]*domain.Job, error)
}
