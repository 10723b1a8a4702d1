package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/talentbridge/marketplace/internal/core/domain"
	"github.com/talentbridge/marketplace/internal/core/policy"
	"github.com/talentbridge/marketplace/internal/core/ports"
)

// LikeService keeps job likes in durable storage.
type LikeService struct {
	likes ports.LikeRepository
	jobs  ports.JobRepository
	log   zerolog.Logger
}

func NewLikeService(likes ports.LikeRepository, jobs ports.JobRepository, log zerolog.Logger) *LikeService {
	return &LikeService{likes: likes, jobs: jobs, log: log}
}

func (s *LikeService) Like(ctx context.Context, p domain.Principal, jobID string) (*domain.JobLikes, error) {
	if err := s.precheck(ctx, p, jobID); err != nil {
		return nil, err
	}
	if err := s.likes.Add(ctx, jobID, p.ID); err != nil {
		return nil, fmt.Errorf("like job: %w", err)
	}
	return s.snapshot(ctx, jobID, p.ID)
}

func (s *LikeService) Unlike(ctx context.Context, p domain.Principal, jobID string) (*domain.JobLikes, error) {
	if err := s.precheck(ctx, p, jobID); err != nil {
		return nil, err
	}
	if err := s.likes.Remove(ctx, jobID, p.ID); err != nil {
		return nil, fmt.Errorf("unlike job: %w", err)
	}
	return s.snapshot(ctx, jobID, p.ID)
}

func (s *LikeService) Status(ctx context.Context, p domain.Principal, jobID string) (*domain.JobLikes, error) {
	if err := s.precheck(ctx, p, jobID); err != nil {
		return nil, err
	}
	return s.snapshot(ctx, jobID, p.ID)
}

func (s *LikeService) precheck(ctx context.Context, p domain.Principal, jobID string) error {
	if err := policy.RequireRole(p, policy.CandidateOnly); err != nil {
		return err
	}
	_, err := s.jobs.FindByID(ctx, jobID)
	return err
}

func (s *LikeService) snapshot(ctx context.Context, jobID, userID string) (*domain.JobLikes, error) {
	liked, err := s.likes.Exists(ctx, jobID, userID)
	if err != nil {
		return nil, fmt.Errorf("like status: %w", err)
	}
	count, err := s.likes.Count(ctx, jobID)
	if err != nil {
		return nil, fmt.Errorf("like count: %w", err)
	}
	return &domain.JobLikes{JobID: jobID, IsLiked: liked, LikesCount: count}, nil
}
