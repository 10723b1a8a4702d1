package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/talentbridge/marketplace/internal/core/domain"
	"github.com/talentbridge/marketplace/internal/core/policy"
	"github.com/talentbridge/marketplace/internal/core/ports"
)

const (
	defaultTalentLimit = 20
	maxTalentLimit     = 100
)

type ProfileService struct {
	profiles ports.ProfileRepository
	log      zerolog.Logger
}

func NewProfileService(profiles ports.ProfileRepository, log zerolog.Logger) *ProfileService {
	return &ProfileService{profiles: profiles, log: log}
}

func (s *ProfileService) Get(ctx context.Context, p domain.Principal) (*domain.Profile, error) {
	profile, err := s.profiles.FindByUserID(ctx, p.ID)
	if err == nil {
		return profile, nil
	}
	if !errors.Is(err, domain.ErrProfileNotFound) {
		return nil, fmt.Errorf("get profile: %w", err)
	}

	now := time.Now().UTC()
	created, err := s.profiles.Upsert(ctx, &domain.Profile{
		UserID:    p.ID,
		Skills:    []string{},
		CreatedAt: now,
		UpdatedAt: now,
	})
	if err != nil {
		return nil, fmt.Errorf("create default profile: %w", err)
	}
	s.log.Debug().Str("user_id", p.ID).Msg("default profile created")
	return created, nil
}

func (s *ProfileService) Update(ctx context.Context, p domain.Principal, in ports.ProfileInput) (*domain.Profile, error) {
	if in.ExperienceYears < 0 {
		return nil, fmt.Errorf("%w: experience_years must not be negative", domain.ErrInvalidInput)
	}
	if in.HourlyRate != nil && *in.HourlyRate < 0 {
		return nil, fmt.Errorf("%w: hourly_rate must not be negative", domain.ErrInvalidInput)
	}
	skills := in.Skills
	if skills == nil {
		skills = []string{}
	}

	now := time.Now().UTC()
	updated, err := s.profiles.Upsert(ctx, &domain.Profile{
		UserID:          p.ID,
		Bio:             in.Bio,
		Skills:          skills,
		ExperienceYears: in.ExperienceYears,
		Location:        in.Location,
		HourlyRate:      in.HourlyRate,
		Availability:    in.Availability,
		ProfileImageURL: in.ProfileImageURL,
		ResumeURL:       in.ResumeURL,
		PortfolioURL:    in.PortfolioURL,
		LinkedinURL:     in.LinkedinURL,
		GithubURL:       in.GithubURL,
		CreatedAt:       now,
		UpdatedAt:       now,
	})
	if err != nil {
		return nil, fmt.Errorf("update profile: %w", err)
	}
	return updated, nil
}

// GetForUser reads someone else's profile; only the owner or an admin may.
func (s *ProfileService) GetForUser(ctx context.Context, p domain.Principal, userID string) (*domain.Profile, error) {
	if err := policy.Authorize(p, policy.AnyRole, userID); err != nil {
		return nil, err
	}
	return s.profiles.FindByUserID(ctx, userID)
}

// ListTalents pages through the public candidate directory.
func (s *ProfileService) ListTalents(ctx context.Context, filter ports.TalentFilter) ([]*domain.Talent, error) {
	if filter.Limit <= 0 {
		filter.Limit = defaultTalentLimit
	}
	if filter.Limit > maxTalentLimit {
		filter.Limit = maxTalentLimit
	}
	if filter.Offset < 0 {
		filter.Offset = 0
	}
	if filter.MinExperience != nil && *filter.MinExperience < 0 {
		return nil, fmt.Errorf("%w: experience must not be negative", domain.ErrInvalidInput)
	}
	return s.profiles.ListCandidates(ctx, filter)
}
