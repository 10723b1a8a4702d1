package domain

import "time"

// BookingStatus is the state of a scheduled call.
type BookingStatus string

const (
	BookingScheduled BookingStatus = "scheduled"
	BookingCompleted BookingStatus = "completed"
	BookingCancelled BookingStatus = "cancelled"
	BookingNoShow    BookingStatus = "no-show"
)

const DefaultBookingDuration = 30

// ParseBookingStatus validates a booking status string.
func ParseBookingStatus(s string) (BookingStatus, error) {
	switch st := BookingStatus(s); st {
	case BookingScheduled, BookingCompleted, BookingCancelled, BookingNoShow:
		return st, nil
	default:
		return "", ErrInvalidStatus
	}
}

// Booking is a call between a candidate and an employer. Both parties own it.
type Booking struct {
	ID              string        `json:"id" db:"id"`
	CandidateID     string        `json:"candidate_id" db:"candidate_id"`
	EmployerID      string        `json:"employer_id" db:"employer_id"`
	JobID           *string       `json:"job_id,omitempty" db:"job_id"`
	ScheduledAt     time.Time     `json:"scheduled_at" db:"scheduled_at"`
	DurationMinutes int           `json:"duration_minutes" db:"duration_minutes"`
	Status          BookingStatus `json:"status" db:"status"`
	MeetingLink     string        `json:"meeting_link" db:"meeting_link"`
	Notes           string        `json:"notes" db:"notes"`
	CreatedAt       time.Time     `json:"created_at" db:"created_at"`
	UpdatedAt       time.Time     `json:"updated_at" db:"updated_at"`
}

// Owners lists the ids allowed to act on the booking besides an admin.
func (b *Booking) Owners() []string {
	return []string{b.CandidateID, b.EmployerID}
}
