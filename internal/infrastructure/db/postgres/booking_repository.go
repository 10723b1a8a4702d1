package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/talentbridge/marketplace/internal/core/domain"
	"github.com/talentbridge/marketplace/internal/core/ports"
)

const bookingColumns = `id, candidate_id, employer_id, job_id, scheduled_at, duration_minutes, status,
	meeting_link, notes, created_at, updated_at`

type BookingRepository struct {
	db *sqlx.DB
}

func NewBookingRepository(db *sqlx.DB) ports.BookingRepository {
	return &BookingRepository{db: db}
}

func (r *BookingRepository) Create(ctx context.Context, b *domain.Booking) error {
	_, err := r.db.NamedExecContext(ctx, `INSERT INTO call_bookings (`+bookingColumns+`)
		VALUES (:id, :candidate_id, :employer_id, :job_id, :scheduled_at, :duration_minutes, :status,
			:meeting_link, :notes, :created_at, :updated_at)`, b)
	if err != nil {
		if isForeignKeyViolation(err) {
			return fmt.Errorf("%w: booking references a missing user or job", domain.ErrInvalidInput)
		}
		return fmt.Errorf("insert booking: %w", err)
	}
	return nil
}

func (r *BookingRepository) FindByID(ctx context.Context, id string) (*domain.Booking, error) {
	if !validID(id) {
		return nil, domain.ErrBookingNotFound
	}
	var b domain.Booking
	if err := r.db.GetContext(ctx, &b, `SELECT `+bookingColumns+` FROM call_bookings WHERE id = $1`, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrBookingNotFound
		}
		return nil, fmt.Errorf("find booking: %w", err)
	}
	return &b, nil
}

func (r *BookingRepository) Update(ctx context.Context, b *domain.Booking) error {
	res, err := r.db.NamedExecContext(ctx, `UPDATE call_bookings SET
			scheduled_at = :scheduled_at, status = :status, meeting_link = :meeting_link,
			notes = :notes, updated_at = :updated_at
		WHERE id = :id`, b)
	if err != nil {
		return fmt.Errorf("update booking: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.ErrBookingNotFound
	}
	return nil
}

func (r *BookingRepository) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM call_bookings WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete booking: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.ErrBookingNotFound
	}
	return nil
}

func (r *BookingRepository) List(ctx context.Context, f ports.BookingFilter) ([]*domain.Booking, error) {
	// Empty arguments disable their predicate.
	query := `SELECT ` + bookingColumns + ` FROM call_bookings
		WHERE ($1 = '' OR candidate_id::text = $1 OR employer_id::text = $1)
		  AND ($2 = '' OR status = $2)
		ORDER BY scheduled_at ASC`

	bookings := []*domain.Booking{}
	if err := r.db.SelectContext(ctx, &bookings, query, f.ParticipantID, string(f.Status)); err != nil {
		return nil, fmt.Errorf("list bookings: %w", err)
	}
	return bookings, nil
}
