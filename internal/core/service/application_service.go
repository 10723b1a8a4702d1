package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/nyaruka/phonenumbers"
	"github.com/rs/zerolog"

	"github.com/talentbridge/marketplace/internal/core/domain"
	"github.com/talentbridge/marketplace/internal/core/policy"
	"github.com/talentbridge/marketplace/internal/core/ports"
)

const defaultPhoneRegion = "US"

// ApplicationService is the lifecycle manager: it is the only writer of
// Application.Status.
type ApplicationService struct {
	apps        ports.ApplicationRepository
	jobs        ports.JobRepository
	events      ports.ApplicationEventRepository // optional
	publisher   ports.ApplicationEventPublisher  // optional
	phoneRegion string
	now         func() time.Time
	log         zerolog.Logger
}

// NewApplicationService wires the lifecycle manager. events and publisher may
// be nil, in which case the audit trail is disabled.
func NewApplicationService(
	apps ports.ApplicationRepository,
	jobs ports.JobRepository,
	events ports.ApplicationEventRepository,
	publisher ports.ApplicationEventPublisher,
	phoneRegion string,
	log zerolog.Logger,
) *ApplicationService {
	if phoneRegion == "" {
		phoneRegion = defaultPhoneRegion
	}
	return &ApplicationService{
		apps:        apps,
		jobs:        jobs,
		events:      events,
		publisher:   publisher,
		phoneRegion: phoneRegion,
		now:         time.Now,
		log:         log,
	}
}

// Submit creates an application in the applied state.
//
// Checks run in order: candidate role, job exists, job open, no prior
// application. The final insert is still guarded by the storage uniqueness
// constraint, so two concurrent submissions yield exactly one success.
func (s *ApplicationService) Submit(ctx context.Context, p domain.Principal, in ports.SubmitApplicationInput) (*domain.Application, error) {
	if err := policy.RequireRole(p, policy.CandidateOnly); err != nil {
		return nil, err
	}

	job, err := s.jobs.FindByID(ctx, in.JobID)
	if err != nil {
		return nil, fmt.Errorf("submit application: %w", err)
	}
	if !job.IsOpen() {
		return nil, fmt.Errorf("submit application to %s job: %w", job.Status, domain.ErrJobNotOpen)
	}

	if _, err := s.apps.FindByJobAndUser(ctx, job.ID, p.ID); err == nil {
		return nil, domain.ErrDuplicateApplication
	} else if !errors.Is(err, domain.ErrApplicationNotFound) {
		return nil, fmt.Errorf("submit application: %w", err)
	}

	phone, err := s.normalizePhone(in.Phone)
	if err != nil {
		return nil, err
	}

	email := strings.TrimSpace(in.Email)
	if email == "" {
		email = p.Email
	}

	now := s.now().UTC()
	app := &domain.Application{
		ID:             uuid.NewString(),
		JobID:          job.ID,
		UserID:         p.ID,
		Status:         domain.ApplicationApplied,
		FullName:       strings.TrimSpace(in.FullName),
		Email:          email,
		Phone:          phone,
		CoverLetter:    in.CoverLetter,
		ResumeURL:      in.ResumeURL,
		ResumeFilename: in.ResumeFilename,
		AppliedAt:      now,
		UpdatedAt:      now,
	}

	if err := s.apps.Create(ctx, app); err != nil {
		if errors.Is(err, domain.ErrDuplicateApplication) {
			return nil, domain.ErrDuplicateApplication
		}
		s.log.Error().Err(err).Str("job_id", job.ID).Msg("failed to create application")
		return nil, fmt.Errorf("submit application: %w", err)
	}

	s.log.Info().Str("application_id", app.ID).Str("job_id", job.ID).Str("user_id", p.ID).Msg("application submitted")
	return app, nil
}

// SetStatus moves an application through the transition table. Only an admin
// or the employer who posted the application's job may do so; the job is
// always looked up from the stored application, never taken from the caller.
func (s *ApplicationService) SetStatus(ctx context.Context, p domain.Principal, applicationID, status string) (*domain.Application, error) {
	if err := policy.RequireRole(p, policy.EmployerOrAdmin); err != nil {
		return nil, err
	}

	target, err := domain.ParseApplicationStatus(status)
	if err != nil {
		return nil, err
	}

	app, err := s.apps.FindByID(ctx, applicationID)
	if err != nil {
		return nil, fmt.Errorf("set status: %w", err)
	}

	job, err := s.jobs.FindByID(ctx, app.JobID)
	if err != nil {
		return nil, fmt.Errorf("set status: load job %s: %w", app.JobID, err)
	}
	if err := policy.Authorize(p, policy.EmployerOrAdmin, job.PostedBy); err != nil {
		return nil, err
	}

	// These messages reach the client verbatim.
	if app.Status.IsTerminal() {
		return nil, fmt.Errorf("%w: %s is terminal", domain.ErrIllegalTransition, app.Status)
	}
	if !app.Status.CanTransitionTo(target) {
		return nil, fmt.Errorf("%w: %s -> %s", domain.ErrIllegalTransition, app.Status, target)
	}

	updated, err := s.apps.UpdateStatus(ctx, app.ID, app.Status, target)
	if err != nil {
		if errors.Is(err, domain.ErrIllegalTransition) {
			return nil, err
		}
		return nil, fmt.Errorf("set status: %w", err)
	}

	if s.publisher != nil {
		s.publisher.Publish(domain.ApplicationEvent{
			ApplicationID: app.ID,
			JobID:         app.JobID,
			ActorID:       p.ID,
			ActorRole:     p.Role,
			From:          app.Status,
			To:            target,
			OccurredAt:    s.now().UTC(),
		})
	}

	s.log.Info().
		Str("application_id", app.ID).
		Str("from", string(app.Status)).
		Str("to", string(target)).
		Str("actor", p.ID).
		Msg("application status changed")

	return updated, nil
}

// List scopes applications by role: admins see all, candidates their own and
// employers those sent to their jobs.
func (s *ApplicationService) List(ctx context.Context, p domain.Principal) ([]*domain.Application, error) {
	var filter ports.ApplicationFilter
	switch p.Role {
	case domain.RoleAdmin:
	case domain.RoleCandidate:
		filter.UserID = p.ID
	case domain.RoleEmployer:
		filter.EmployerID = p.ID
	default:
		return nil, domain.ErrInsufficientRole
	}
	return s.apps.List(ctx, filter)
}

func (s *ApplicationService) ListForJob(ctx context.Context, p domain.Principal, jobID string) ([]*domain.Application, error) {
	if err := policy.RequireRole(p, policy.EmployerOrAdmin); err != nil {
		return nil, err
	}
	job, err := s.jobs.FindByID(ctx, jobID)
	if err != nil {
		return nil, err
	}
	if err := policy.Authorize(p, policy.EmployerOrAdmin, job.PostedBy); err != nil {
		return nil, err
	}
	return s.apps.List(ctx, ports.ApplicationFilter{JobID: job.ID})
}

// History returns the recorded transitions. The applicant, the job poster and
// admins may read it.
func (s *ApplicationService) History(ctx context.Context, p domain.Principal, applicationID string) ([]*domain.ApplicationEvent, error) {
	app, err := s.apps.FindByID(ctx, applicationID)
	if err != nil {
		return nil, err
	}
	job, err := s.jobs.FindByID(ctx, app.JobID)
	if err != nil {
		return nil, fmt.Errorf("history: load job %s: %w", app.JobID, err)
	}
	if err := policy.Authorize(p, policy.AnyRole, app.UserID, job.PostedBy); err != nil {
		return nil, err
	}

	if s.events == nil {
		return []*domain.ApplicationEvent{}, nil
	}
	return s.events.ListByApplication(ctx, app.ID)
}

func (s *ApplicationService) normalizePhone(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", nil
	}
	num, err := phonenumbers.Parse(raw, s.phoneRegion)
	if err != nil || !phonenumbers.IsValidNumber(num) {
		return "", fmt.Errorf("%w: phone number %q is not valid", domain.ErrInvalidInput, raw)
	}
	return phonenumbers.Format(num, phonenumbers.E164), nil
}
