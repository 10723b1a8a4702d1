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

const testimonialColumns = `id, user_id, name, role, company, location, rating, testimonial_text,
	outcome, category, is_approved, created_at`

type TestimonialRepository struct {
	db *sqlx.DB
}

func NewTestimonialRepository(db *sqlx.DB) ports.TestimonialRepository {
	return &TestimonialRepository{db: db}
}

func (r *TestimonialRepository) Create(ctx context.Context, t *domain.Testimonial) error {
	_, err := r.db.NamedExecContext(ctx, `INSERT INTO testimonials (`+testimonialColumns+`)
		VALUES (:id, :user_id, :name, :role, :company, :location, :rating, :testimonial_text,
			:outcome, :category, :is_approved, :created_at)`, t)
	if err != nil {
		return fmt.Errorf("insert testimonial: %w", err)
	}
	return nil
}

func (r *TestimonialRepository) ListApproved(ctx context.Context, f ports.TestimonialFilter) ([]*domain.Testimonial, error) {
	items := []*domain.Testimonial{}
	err := r.db.SelectContext(ctx, &items, `SELECT `+testimonialColumns+` FROM testimonials
		WHERE is_approved AND ($1 = '' OR category = $1)
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3`, string(f.Category), f.Limit, f.Offset)
	if err != nil {
		return nil, fmt.Errorf("list testimonials: %w", err)
	}
	return items, nil
}

func (r *TestimonialRepository) Approve(ctx context.Context, id string) (*domain.Testimonial, error) {
	if !validID(id) {
		return nil, domain.ErrTestimonialNotFound
	}
	var t domain.Testimonial
	err := r.db.GetContext(ctx, &t, `UPDATE testimonials SET is_approved = TRUE WHERE id = $1
		RETURNING `+testimonialColumns, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrTestimonialNotFound
		}
		return nil, fmt.Errorf("approve testimonial: %w", err)
	}
	return &t, nil
}
