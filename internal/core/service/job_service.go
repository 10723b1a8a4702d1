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

type JobService struct {
	jobs ports.JobRepository
	log  zerolog.Logger
}

func NewJobService(jobs ports.JobRepository, log zerolog.Logger) *JobService {
	return &JobService{jobs: jobs, log: log}
}

// List is public. Without an explicit status only open jobs are returned.
func (s *JobService) List(ctx context.Context, filter ports.JobFilter) ([]*domain.Job, error) {
	if filter.Status == "" {
		filter.Status = domain.JobStatusOpen
	}
	return s.jobs.List(ctx, filter)
}

func (s *JobService) Get(ctx context.Context, id string) (*domain.Job, error) {
	return s.jobs.FindByID(ctx, id)
}

func (s *JobService) Create(ctx context.Context, p domain.Principal, in ports.JobInput) (*domain.Job, error) {
	if err := policy.RequireRole(p, policy.EmployerOrAdmin); err != nil {
		return nil, err
	}

	if strings.TrimSpace(in.Title) == "" || strings.TrimSpace(in.Description) == "" ||
		strings.TrimSpace(in.Location) == "" || in.JobType == "" {
		return nil, fmt.Errorf("%w: title, description, location and job_type are required", domain.ErrInvalidInput)
	}

	jobType, err := parseJobType(in.JobType)
	if err != nil {
		return nil, err
	}
	status := domain.JobStatusDraft
	if in.Status != "" {
		if status, err = parseJobStatus(in.Status); err != nil {
			return nil, err
		}
	}
	if err := checkSalaryRange(in.SalaryMin, in.SalaryMax); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	job := &domain.Job{
		ID:           uuid.NewString(),
		Title:        strings.TrimSpace(in.Title),
		Description:  in.Description,
		Company:      in.Company,
		Location:     strings.TrimSpace(in.Location),
		JobType:      jobType,
		SalaryMin:    in.SalaryMin,
		SalaryMax:    in.SalaryMax,
		Requirements: in.Requirements,
		Status:       status,
		PostedBy:     p.ID,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.jobs.Create(ctx, job); err != nil {
		return nil, fmt.Errorf("create job: %w", err)
	}

	s.log.Info().Str("job_id", job.ID).Str("posted_by", p.ID).Str("status", string(job.Status)).Msg("job created")
	return job, nil
}

// Update applies the non-empty fields of in. Only the poster or an admin may update.
func (s *JobService) Update(ctx context.Context, p domain.Principal, id string, in ports.JobInput) (*domain.Job, error) {
	job, err := s.ownedJob(ctx, p, id)
	if err != nil {
		return nil, err
	}

	if in.Title != "" {
		job.Title = strings.TrimSpace(in.Title)
	}
	if in.Description != "" {
		job.Description = in.Description
	}
	if in.Company != "" {
		job.Company = in.Company
	}
	if in.Location != "" {
		job.Location = strings.TrimSpace(in.Location)
	}
	if in.Requirements != "" {
		job.Requirements = in.Requirements
	}
	if in.JobType != "" {
		if job.JobType, err = parseJobType(in.JobType); err != nil {
			return nil, err
		}
	}
	if in.Status != "" {
		if job.Status, err = parseJobStatus(in.Status); err != nil {
			return nil, err
		}
	}
	if in.SalaryMin != nil {
		job.SalaryMin = in.SalaryMin
	}
	if in.SalaryMax != nil {
		job.SalaryMax = in.SalaryMax
	}
	if err := checkSalaryRange(job.SalaryMin, job.SalaryMax); err != nil {
		return nil, err
	}
	job.UpdatedAt = time.Now().UTC()

	if err := s.jobs.Update(ctx, job); err != nil {
		return nil, fmt.Errorf("update job: %w", err)
	}
	return job, nil
}

func (s *JobService) Delete(ctx context.Context, p domain.Principal, id string) error {
	if _, err := s.ownedJob(ctx, p, id); err != nil {
		return err
	}
	if err := s.jobs.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete job: %w", err)
	}
	s.log.Info().Str("job_id", id).Str("actor", p.ID).Msg("job deleted")
	return nil
}

func (s *JobService) ListMine(ctx context.Context, p domain.Principal) ([]*domain.Job, error) {
	if err := policy.RequireRole(p, policy.EmployerOrAdmin); err != nil {
		return nil, err
	}
	return s.jobs.List(ctx, ports.JobFilter{PostedBy: p.ID})
}

// ownedJob runs the role gate, loads the job and then runs the ownership gate.
func (s *JobService) ownedJob(ctx context.Context, p domain.Principal, id string) (*domain.Job, error) {
	if err := policy.RequireRole(p, policy.EmployerOrAdmin); err != nil {
		return nil, err
	}
	job, err := s.jobs.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := policy.Authorize(p, policy.EmployerOrAdmin, job.PostedBy); err != nil {
		return nil, err
	}
	return job, nil
}

func parseJobType(s string) (domain.JobType, error) {
	switch t := domain.JobType(s); t {
	case domain.JobTypeFullTime, domain.JobTypePartTime, domain.JobTypeContract, domain.JobTypeRemote:
		return t, nil
	default:
		return "", fmt.Errorf("%w: job_type must be one of full-time, part-time, contract, remote", domain.ErrInvalidInput)
	}
}

func parseJobStatus(s string) (domain.JobStatus, error) {
	switch st := domain.JobStatus(s); st {
	case domain.JobStatusDraft, domain.JobStatusOpen, domain.JobStatusClosed:
		return st, nil
	default:
		return "", fmt.Errorf("%w: status must be one of draft, open, closed", domain.ErrInvalidInput)
	}
}

func checkSalaryRange(lo, hi *int64) error {
	if (lo != nil && *lo < 0) || (hi != nil && *hi < 0) {
		return fmt.Errorf("%w: salary must not be negative", domain.ErrInvalidInput)
	}
	if lo != nil && hi != nil && *lo > *hi {
		return fmt.Errorf("%w: salary_min must not exceed salary_max", domain.ErrInvalidInput)
	}
	return nil
}
