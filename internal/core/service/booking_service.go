package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/talentbridge/marketplace/internal/core/domain"
	"github.com/talentbridge/marketplace/internal/core/policy"
	"github.com/talentbridge/marketplace/internal/core/ports"
)

const maxBookingDuration = 8 * 60

type BookingService struct {
	bookings ports.BookingRepository
	users    ports.UserRepository
	jobs     ports.JobRepository
	now      func() time.Time
	log      zerolog.Logger
}

func NewBookingService(bookings ports.BookingRepository, users ports.UserRepository, jobs ports.JobRepository, log zerolog.Logger) *BookingService {
	return &BookingService{bookings: bookings, users: users, jobs: jobs, now: time.Now, log: log}
}

// List returns every booking for an admin, otherwise those the caller takes part in.
func (s *BookingService) List(ctx context.Context, p domain.Principal, status string) ([]*domain.Booking, error) {
	filter := ports.BookingFilter{}
	if p.Role != domain.RoleAdmin {
		filter.ParticipantID = p.ID
	}
	if status != "" {
		st, err := domain.ParseBookingStatus(status)
		if err != nil {
			return nil, err
		}
		filter.Status = st
	}
	return s.bookings.List(ctx, filter)
}

// Create schedules a call. Candidates may only book for themselves as the
// candidate and employers only as the employer.
func (s *BookingService) Create(ctx context.Context, p domain.Principal, in ports.CreateBookingInput) (*domain.Booking, error) {
	if in.CandidateID == "" || in.EmployerID == "" || in.ScheduledAt.IsZero() {
		return nil, fmt.Errorf("%w: candidate_id, employer_id and scheduled_at are required", domain.ErrInvalidInput)
	}

	var side string
	switch p.Role {
	case domain.RoleCandidate:
		side = in.CandidateID
	case domain.RoleEmployer:
		side = in.EmployerID
	}
	if err := policy.Authorize(p, policy.AnyRole, side); err != nil {
		return nil, err
	}

	now := s.now().UTC()
	if !in.ScheduledAt.After(now) {
		return nil, domain.ErrBookingInPast
	}

	duration := in.DurationMinutes
	if duration == 0 {
		duration = domain.DefaultBookingDuration
	}
	if duration < 0 || duration > maxBookingDuration {
		return nil, fmt.Errorf("%w: duration_minutes must be between 1 and %d", domain.ErrInvalidInput, maxBookingDuration)
	}

	if err := s.checkParticipant(ctx, in.CandidateID, domain.RoleCandidate); err != nil {
		return nil, err
	}
	if err := s.checkParticipant(ctx, in.EmployerID, domain.RoleEmployer); err != nil {
		return nil, err
	}

	if in.JobID != "" {
		if _, err := s.jobs.FindByID(ctx, in.JobID); err != nil {
			if errors.Is(err, domain.ErrJobNotFound) {
				return nil, fmt.Errorf("%w: job %s does not exist", domain.ErrInvalidInput, in.JobID)
			}
			return nil, fmt.Errorf("create booking: %w", err)
		}
	}

	b := &domain.Booking{
		ID:              uuid.NewString(),
		CandidateID:     in.CandidateID,
		EmployerID:      in.EmployerID,
		ScheduledAt:     in.ScheduledAt.UTC(),
		DurationMinutes: duration,
		Status:          domain.BookingScheduled,
		MeetingLink:     strings.TrimSpace(in.MeetingLink),
		Notes:           in.Notes,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	if in.JobID != "" {
		jobID := in.JobID
		b.JobID = &jobID
	}

	if err := s.bookings.Create(ctx, b); err != nil {
		return nil, fmt.Errorf("create booking: %w", err)
	}
	s.log.Info().Str("booking_id", b.ID).Str("actor", p.ID).Time("scheduled_at", b.ScheduledAt).Msg("booking created")
	return b, nil
}

func (s *BookingService) Update(ctx context.Context, p domain.Principal, id string, in ports.UpdateBookingInput) (*domain.Booking, error) {
	b, err := s.ownedBooking(ctx, p, id)
	if err != nil {
		return nil, err
	}

	if in.Status != nil {
		if b.Status, err = domain.ParseBookingStatus(*in.Status); err != nil {
			return nil, err
		}
	}
	if in.ScheduledAt != nil {
		if !in.ScheduledAt.After(s.now()) {
			return nil, domain.ErrBookingInPast
		}
		b.ScheduledAt = in.ScheduledAt.UTC()
	}
	if in.MeetingLink != nil {
		b.MeetingLink = strings.TrimSpace(*in.MeetingLink)
	}
	if in.Notes != nil {
		b.Notes = *in.Notes
	}
	b.UpdatedAt = s.now().UTC()

	if err := s.bookings.Update(ctx, b); err != nil {
		return nil, fmt.Errorf("update booking: %w", err)
	}
	return b, nil
}

func (s *BookingService) Delete(ctx context.Context, p domain.Principal, id string) error {
	if _, err := s.ownedBooking(ctx, p, id); err != nil {
		return err
	}
	if err := s.bookings.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete booking: %w", err)
	}
	return nil
}

func (s *BookingService) ownedBooking(ctx context.Context, p domain.Principal, id string) (*domain.Booking, error) {
	b, err := s.bookings.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := policy.Authorize(p, policy.AnyRole, b.Owners()...); err != nil {
		return nil, err
	}
	return b, nil
}

func (s *BookingService) checkParticipant(ctx context.Context, id string, role domain.Role) error {
	u, err := s.users.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return fmt.Errorf("%w: %s %s does not exist", domain.ErrInvalidInput, role, id)
		}
		return fmt.Errorf("create booking: %w", err)
	}
	if u.Role != role {
		return fmt.Errorf("%w: user %s is not a %s", domain.ErrInvalidInput, id, role)
	}
	return nil
}
