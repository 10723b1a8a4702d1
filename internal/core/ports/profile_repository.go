package ports

import (
	"context"

	"github.com/talentbridge/marketplace/internal/core/domain"
)

// ProfileRepository stores one profile per user.
type ProfileRepository interface {
	FindByUserID(ctx context.Context, userID string) (*domain.Profile, error)
	Upsert(ctx context.Context, p *domain.Profile) (*domain.Profile, error)
	// ListCandidates returns candidates that have a profile, newest first.
	ListCandidates(ctx context.Context, filter TalentFilter) ([]*domain.Talent, error)
}

// TalentFilter narrows the talent directory. Zero values mean "no filter".
type TalentFilter struct {
	Search        string   // name or bio, partial, case-insensitive
	Skills        []string // any overlap
	MinExperience *int
	Limit         int
	Offset        int
}

// LikeRepository stores job likes keyed by (job_id, user_id).
type LikeRepository interface {
	// Add fails with domain.ErrAlreadyLiked when the pair exists.
	Add(ctx context.Context, jobID, userID string) error
	// Remove fails with domain.ErrNotLiked when the pair does not exist.
	Remove(ctx context.Context, jobID, userID string) error
	Exists(ctx context.Context, jobID, userID string) (bool, error)
	Count(ctx context.Context, jobID string) (int64, error)
}

// TestimonialFilter pages through approved testimonials.
type TestimonialFilter struct {
	Category domain.TestimonialCategory
	Limit    int
	Offset   int
}

// TestimonialRepository defines persistence operations for testimonials.
type TestimonialRepository interface {
	Create(ctx context.Context, t *domain.Testimonial) error
	ListApproved(ctx context.Context, filter TestimonialFilter) ([]*domain.Testimonial, error)
	Approve(ctx context.Context, id string) (*domain.Testimonial, error)
}
