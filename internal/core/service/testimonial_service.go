package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/talentbridge/marketplace/internal/core/domain"
	"github.com/talentbridge/marketplace/internal/core/policy"
	"github.com/talentbridge/marketplace/internal/core/ports"
)

const (
	defaultTestimonialLimit = 10
	maxTestimonialLimit     = 100
)

type TestimonialService struct {
	testimonials ports.TestimonialRepository
	log          zerolog.Logger
}

func NewTestimonialService(testimonials ports.TestimonialRepository, log zerolog.Logger) *TestimonialService {
	return &TestimonialService{testimonials: testimonials, log: log}
}

// ListApproved is public and only ever returns approved testimonials.
func (s *TestimonialService) ListApproved(ctx context.Context, filter ports.TestimonialFilter) ([]*domain.Testimonial, error) {
	if filter.Limit <= 0 {
		filter.Limit = defaultTestimonialLimit
	}
	if filter.Limit > maxTestimonialLimit {
		filter.Limit = maxTestimonialLimit
	}
	if filter.Offset < 0 {
		filter.Offset = 0
	}
	if filter.Category != "" {
		if _, err := parseCategory(string(filter.Category)); err != nil {
			return nil, err
		}
	}
	return s.testimonials.ListApproved(ctx, filter)
}

// Submit stores a testimonial pending admin approval.
func (s *TestimonialService) Submit(ctx context.Context, p domain.Principal, in ports.TestimonialInput) (*domain.Testimonial, error) {
	name := strings.TrimSpace(in.Name)
	text := strings.TrimSpace(in.TestimonialText)
	if name == "" || text == "" {
		return nil, fmt.Errorf("%w: name and testimonial_text are required", domain.ErrInvalidInput)
	}
	if in.Rating < 1 || in.Rating > 5 {
		return nil, fmt.Errorf("%w: rating must be between 1 and 5", domain.ErrInvalidInput)
	}

	category := domain.CategoryJobSeeker
	if in.Category != "" {
		var err error
		if category, err = parseCategory(in.Category); err != nil {
			return nil, err
		}
	}

	userID := p.ID
	t := &domain.Testimonial{
		ID:              uuid.NewString(),
		UserID:          &userID,
		Name:            name,
		Role:            in.Role,
		Company:         in.Company,
		Location:        in.Location,
		Rating:          in.Rating,
		TestimonialText: text,
		Outcome:         in.Outcome,
		Category:        category,
		IsApproved:      false,
		CreatedAt:       time.Now().UTC(),
	}
	if err := s.testimonials.Create(ctx, t); err != nil {
		return nil, fmt.Errorf("submit testimonial: %w", err)
	}
	return t, nil
}

func (s *TestimonialService) Approve(ctx context.Context, p domain.Principal, id string) (*domain.Testimonial, error) {
	if err := policy.RequireRole(p, policy.AdminOnly); err != nil {
		return nil, err
	}
	t, err := s.testimonials.Approve(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("approve testimonial: %w", err)
	}
	s.log.Info().Str("testimonial_id", id).Str("actor", p.ID).Msg("testimonial approved")
	return t, nil
}

func parseCategory(s string) (domain.TestimonialCategory, error) {
	switch c := domain.TestimonialCategory(s); c {
	case domain.CategoryJobSeeker, domain.CategoryEmployer:
		return c, nil
	default:
		return "", fmt.Errorf("%w: category must be job-seeker or employer", domain.ErrInvalidInput)
	}
}
