package ports

import (
	"context"

	"github.com/talentbridge/marketplace/internal/core/domain"
)

// ApplicationEventRepository persists the application status audit trail.
type ApplicationEventRepository interface {
	Insert(ctx context.Context, event *domain.ApplicationEvent) error
	ListByApplication(ctx context.Context, applicationID string) ([]*domain.ApplicationEvent, error)
}

// ApplicationEventPublisher hands an event off for asynchronous recording.
// Publish must not block the request path for long.
type ApplicationEventPublisher interface {
	Publish(event domain.ApplicationEvent)
}

// ApplicationEventRecorder consumes published events.
type ApplicationEventRecorder interface {
	Record(ctx context.Context, event domain.ApplicationEvent) error
}
