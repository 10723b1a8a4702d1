package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/talentbridge/marketplace/internal/core/domain"
	"github.com/talentbridge/marketplace/internal/core/ports"
)

const applicationColumns = `id, job_id, user_id, status, full_name, email, phone, cover_letter,
	resume_url, resume_filename, applied_at, updated_at`

// ApplicationRepository implements ports.ApplicationRepository. The
// (job_id, user_id) unique constraint is the source of truth for duplicates.
type ApplicationRepository struct {
	db *sqlx.DB
}

func NewApplicationRepository(db *sqlx.DB) ports.ApplicationRepository {
	return &ApplicationRepository{db: db}
}

func (r *ApplicationRepository) Create(ctx context.Context, app *domain.Application) error {
	_, err := r.db.NamedExecContext(ctx, `INSERT INTO applications (`+applicationColumns+`)
		VALUES (:id, :job_id, :user_id, :status, :full_name, :email, :phone, :cover_letter,
			:resume_url, :resume_filename, :applied_at, :updated_at)`, app)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicateApplication
		}
		return fmt.Errorf("insert application: %w", err)
	}
	return nil
}

func (r *ApplicationRepository) FindByID(ctx context.Context, id string) (*domain.Application, error) {
	if !validID(id) {
		return nil, domain.ErrApplicationNotFound
	}
	return r.findOne(ctx, `SELECT `+applicationColumns+` FROM applications WHERE id = $1`, id)
}

func (r *ApplicationRepository) FindByJobAndUser(ctx context.Context, jobID, userID string) (*domain.Application, error) {
	return r.findOne(ctx, `SELECT `+applicationColumns+` FROM applications WHERE job_id = $1 AND user_id = $2`, jobID, userID)
}

func (r *ApplicationRepository) findOne(ctx context.Context, query string, args ...any) (*domain.Application, error) {
	var app domain.Application
	if err := r.db.GetContext(ctx, &app, query, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrApplicationNotFound
		}
		return nil, fmt.Errorf("find application: %w", err)
	}
	return &app, nil
}

// UpdateStatus is a compare-and-set on the status column. When no row
// matches, the application either vanished or moved on concurrently.
func (r *ApplicationRepository) UpdateStatus(ctx context.Context, id string, from, to domain.ApplicationStatus) (*domain.Application, error) {
	var app domain.Application
	err := r.db.GetContext(ctx, &app, `UPDATE applications SET status = $1, updated_at = $2
		WHERE id = $3 AND status = $4
		RETURNING `+applicationColumns, to, time.Now().UTC(), id, from)
	if err == nil {
		return &app, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("update application status: %w", err)
	}

	if _, err := r.FindByID(ctx, id); err != nil {
		return nil, err
	}
	return nil, fmt.Errorf("%w: status changed concurrently", domain.ErrIllegalTransition)
}

func (r *ApplicationRepository) List(ctx context.Context, f ports.ApplicationFilter) ([]*domain.Application, error) {
	var (
		query string
		args  []any
	)
	switch {
	case f.EmployerID != "":
		query = `SELECT a.id, a.job_id, a.user_id, a.status, a.full_name, a.email, a.phone, a.cover_letter,
				a.resume_url, a.resume_filename, a.applied_at, a.updated_at
			FROM applications a
			JOIN jobs j ON j.id = a.job_id
			WHERE j.posted_by = $1
			ORDER BY a.applied_at DESC`
		args = []any{f.EmployerID}
	case f.JobID != "":
		query = `SELECT ` + applicationColumns + ` FROM applications WHERE job_id = $1 ORDER BY applied_at DESC`
		args = []any{f.JobID}
	case f.UserID != "":
		query = `SELECT ` + applicationColumns + ` FROM applications WHERE user_id = $1 ORDER BY applied_at DESC`
		args = []any{f.UserID}
	default:
		query = `SELECT ` + applicationColumns + ` FROM applications ORDER BY applied_at DESC`
	}

	apps := []*domain.Application{}
	if err := r.db.SelectContext(ctx, &apps, query, args...); err != nil {
		return nil, fmt.Errorf("list applications: %w", err)
	}
	return apps, nil
}
