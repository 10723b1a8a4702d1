package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/jmoiron/sqlx"

	"github.com/talentbridge/marketplace/internal/core/domain"
	"github.com/talentbridge/marketplace/internal/core/ports"
)

const jobColumns = `id, title, description, company, location, job_type, salary_min, salary_max,
	requirements, status, posted_by, created_at, updated_at`

// JobRepository implements ports.JobRepository on the jobs table.
type JobRepository struct {
	db *sqlx.DB
}

func NewJobRepository(db *sqlx.DB) ports.JobRepository {
	return &JobRepository{db: db}
}

func (r *JobRepository) FindByID(ctx context.Context, id string) (*domain.Job, error) {
	if !validID(id) {
		return nil, domain.ErrJobNotFound
	}
	var job domain.Job
	if err := r.db.GetContext(ctx, &job, `SELECT `+jobColumns+` FROM jobs WHERE id = $1`, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrJobNotFound
		}
		return nil, fmt.Errorf("find job: %w", err)
	}
	return &job, nil
}

func (r *JobRepository) Create(ctx context.Context, job *domain.Job) error {
	_, err := r.db.NamedExecContext(ctx, `INSERT INTO jobs (`+jobColumns+`)
		VALUES (:id, :title, :description, :company, :location, :job_type, :salary_min, :salary_max,
			:requirements, :status, :posted_by, :created_at, :updated_at)`, job)
	if err != nil {
		return fmt.Errorf("insert job: %w", err)
	}
	return nil
}

func (r *JobRepository) Update(ctx context.Context, job *domain.Job) error {
	res, err := r.db.NamedExecContext(ctx, `UPDATE jobs SET
			title = :title, description = :description, company = :company, location = :location,
			job_type = :job_type, salary_min = :salary_min, salary_max = :salary_max,
			requirements = :requirements, status = :status, updated_at = :updated_at
		WHERE id = :id`, job)
	if err != nil {
		return fmt.Errorf("update job: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.ErrJobNotFound
	}
	return nil
}

func (r *JobRepository) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM jobs WHERE id = $1`, id)
	if err != nil {
		if isForeignKeyViolation(err) {
			return fmt.Errorf("delete job: %w", domain.ErrHasApplications)
		}
		return fmt.Errorf("delete job: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.ErrJobNotFound
	}
	return nil
}

func (r *JobRepository) List(ctx context.Context, f ports.JobFilter) ([]*domain.Job, error) {
	var (
		where []string
		args  []any
	)
	add := func(cond string, arg any) {
		args = append(args, arg)
		where = append(where, strings.ReplaceAll(cond, "?", "$"+strconv.Itoa(len(args))))
	}

	if f.Status != "" {
		add("status = ?", f.Status)
	}
	if f.PostedBy != "" {
		add("posted_by = ?", f.PostedBy)
	}
	if f.Title != "" {
		add("title ILIKE ?", "%"+f.Title+"%")
	}
	if f.Location != "" {
		add("location ILIKE ?", "%"+f.Location+"%")
	}
	if f.JobType != "" {
		add("job_type = ?", f.JobType)
	}
	if f.SalaryMin != nil {
		add("salary_max >= ?", *f.SalaryMin)
	}
	if f.SalaryMax != nil {
		add("salary_min <= ?", *f.SalaryMax)
	}

	query := `SELECT ` + jobColumns + ` FROM jobs`
	if len(where) > 0 {
		query += ` WHERE ` + strings.Join(where, " AND ")
	}
	query += ` ORDER BY created_at DESC`

	jobs := []*domain.Job{}
	if err := r.db.SelectContext(ctx, &jobs, query, args...); err != nil {
		return nil, fmt.Errorf("list jobs: %w", err)
	}
	return jobs, nil
}
