package domain

import "time"

// TestimonialCategory splits testimonials by audience.
type TestimonialCategory string

const (
	CategoryJobSeeker TestimonialCategory = "job-seeker"
	CategoryEmployer  TestimonialCategory = "employer"
)

// Testimonial is user-submitted feedback shown publicly once approved.
type Testimonial struct {
	ID              string              `json:"id" db:"id"`
	UserID          *string             `json:"user_id,omitempty" db:"user_id"`
	Name            string              `json:"name" db:"name"`
	Role            string              `json:"role" db:"role"`
	Company         string              `json:"company" db:"company"`
	Location        string              `json:"location" db:"location"`
	Rating          int                 `json:"rating" db:"rating"`
	TestimonialText string              `json:"testimonial_text" db:"testimonial_text"`
	Outcome         string              `json:"outcome" db:"outcome"`
	Category        TestimonialCategory `json:"category" db:"category"`
	IsApproved      bool                `json:"is_approved" db:"is_approved"`
	CreatedAt       time.Time           `json:"created_at" db:"created_at"`
}
