package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/talentbridge/marketplace/internal/core/domain"
	"github.com/talentbridge/marketplace/internal/core/ports"
)

type auditService struct {
	events ports.ApplicationEventRepository
	log    zerolog.Logger
}

// NewAuditService returns the consumer that persists application events.
// With a nil repository events are only logged.
func NewAuditService(events ports.ApplicationEventRepository, log zerolog.Logger) ports.ApplicationEventRecorder {
	return &auditService{events: events, log: log}
}

// Record validates and stores one event.
func (s *auditService) Record(ctx context.Context, event domain.ApplicationEvent) error {
	if event.ApplicationID == "" || event.To == "" {
		return fmt.Errorf("record event: %w: missing application or target status", domain.ErrInvalidInput)
	}
	if s.events != nil {
		if err := s.events.Insert(ctx, &event); err != nil {
			return fmt.Errorf("record event: %w", err)
		}
	}

	s.log.Info().
		Str("application_id", event.ApplicationID).
		Str("actor_id", event.ActorID).
		Str("from", string(event.From)).
		Str("to", string(event.To)).
		Bool("persisted", s.events != nil).
		Msg("application status changed")
	return nil
}
