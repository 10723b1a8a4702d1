package ports

import (
	"context"

	"github.com/talentbridge/marketplace/internal/core/domain"
)

// BookingFilter scopes a booking listing.
type BookingFilter struct {
	ParticipantID string // candidate_id or employer_id; empty = everyone (admin)
	Status        domain.BookingStatus
}

// BookingRepository defines persistence operations for call bookings.
type BookingRepository interface {
	Create(ctx context.Context, b *domain.Booking) error
	FindByID(ctx context.Context, id string) (*domain.Booking, error)
	Update(ctx context.Context, b *domain.Booking) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, filter BookingFilter) ([]*domain.Booking, error)
}
