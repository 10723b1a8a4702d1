package ports

import (
	"context"

	"github.com/talentbridge/marketplace/internal/core/domain"
)

// ProfileInput replaces the editable profile fields.
type ProfileInput struct {
	Bio             string
	Skills          []string
	ExperienceYears int
	Location        string
	HourlyRate      *float64
	Availability    string
	ProfileImageURL string
	ResumeURL       string
	PortfolioURL    string
	LinkedinURL     string
	GithubURL       string
}

type ProfileService interface {
	// Get returns the caller's profile, creating an empty one on first access.
	Get(ctx context.Context, p domain.Principal) (*domain.Profile, error)
	Update(ctx context.Context, p domain.Principal, in ProfileInput) (*domain.Profile, error)
	GetForUser(ctx context.Context, p domain.Principal, userID string) (*domain.Profile, error)
	// ListTalents is public.
	ListTalents(ctx context.Context, filter TalentFilter) ([]*domain.Talent, error)
}

type LikeService interface {
	Like(ctx context.Context, p domain.Principal, jobID string) (*domain.JobLikes, error)
	Unlike(ctx context.Context, p domain.Principal, jobID string) (*domain.JobLikes, error)
	Status(ctx context.Context, p domain.Principal, jobID string) (*domain.JobLikes, error)
}

// TestimonialInput carries a testimonial submission.
type TestimonialInput struct {
	Name            string
	Role            string
	Company         string
	Location        string
	Rating          int
	TestimonialText string
	Outcome         string
	Category        string
}

type TestimonialService interface {
	ListApproved(ctx context.Context, filter TestimonialFilter) ([]*domain.Testimonial, error)
	Submit(ctx context.Context, p domain.Principal, in TestimonialInput) (*domain.Testimonial, error)
	Approve(ctx context.Context, p domain.Principal, id string) (*domain.Testimonial, error)
}
