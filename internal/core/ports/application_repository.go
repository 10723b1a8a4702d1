package ports

import (
	"context"

	"github.com/talentbridge/marketplace/internal/core/domain"
)

// ApplicationFilter scopes an application listing. Empty fields are ignored;
// an all-empty filter lists everything.
type ApplicationFilter struct {
	JobID      string
	UserID     string
	EmployerID string // applications to jobs posted by this user
}

// ApplicationRepository defines persistence operations for applications.
type ApplicationRepository interface {
	// Create inserts a new application. A violation of the (job_id, user_id)
	// uniqueness constraint is reported as domain.ErrDuplicateApplication.
	Create(ctx context.Context, app *domain.Application) error
	FindByID(ctx context.Context, id string) (*domain.Application, error)
	FindByJobAndUser(ctx context.Context, jobID, userID string) (*domain.Application, error)
	// UpdateStatus moves the application from one status to another only if it
	// is still in from. A concurrent change is reported as domain.ErrIllegalTransition.
	UpdateStatus(ctx context.Context, id string, from, to domain.ApplicationStatus) (*domain.Application, error)
	List(ctx context.Context, filter ApplicationFilter) ([]*domain.Application, error)
}
