package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/talentbridge/marketplace/internal/core/domain"
	"github.com/talentbridge/marketplace/internal/core/ports"
)

const profileColumns = `user_id, bio, skills, experience_years, location, hourly_rate, availability,
	profile_image_url, resume_url, portfolio_url, linkedin_url, github_url, created_at, updated_at`

// profileRow maps the profiles table; skills is a text[] column.
type profileRow struct {
	UserID          string          `db:"user_id"`
	Bio             string          `db:"bio"`
	Skills          pq.StringArray  `db:"skills"`
	ExperienceYears int             `db:"experience_years"`
	Location        string          `db:"location"`
	HourlyRate      sql.NullFloat64 `db:"hourly_rate"`
	Availability    string          `db:"availability"`
	ProfileImageURL string          `db:"profile_image_url"`
	ResumeURL       string          `db:"resume_url"`
	PortfolioURL    string          `db:"portfolio_url"`
	LinkedinURL     string          `db:"linkedin_url"`
	GithubURL       string          `db:"github_url"`
	CreatedAt       time.Time       `db:"created_at"`
	UpdatedAt       time.Time       `db:"updated_at"`
}

func toProfileRow(p *domain.Profile) profileRow {
	row := profileRow{
		UserID:          p.UserID,
		Bio:             p.Bio,
		Skills:          pq.StringArray(p.Skills),
		ExperienceYears: p.ExperienceYears,
		Location:        p.Location,
		Availability:    p.Availability,
		ProfileImageURL: p.ProfileImageURL,
		ResumeURL:       p.ResumeURL,
		PortfolioURL:    p.PortfolioURL,
		LinkedinURL:     p.LinkedinURL,
		GithubURL:       p.GithubURL,
		CreatedAt:       p.CreatedAt,
		UpdatedAt:       p.UpdatedAt,
	}
	if row.Skills == nil {
		row.Skills = pq.StringArray{}
	}
	if p.HourlyRate != nil {
		row.HourlyRate = sql.NullFloat64{Float64: *p.HourlyRate, Valid: true}
	}
	return row
}

func (row profileRow) toDomain() *domain.Profile {
	p := &domain.Profile{
		UserID:          row.UserID,
		Bio:             row.Bio,
		Skills:          []string(row.Skills),
		ExperienceYears: row.ExperienceYears,
		Location:        row.Location,
		Availability:    row.Availability,
		ProfileImageURL: row.ProfileImageURL,
		ResumeURL:       row.ResumeURL,
		PortfolioURL:    row.PortfolioURL,
		LinkedinURL:     row.LinkedinURL,
		GithubURL:       row.GithubURL,
		CreatedAt:       row.CreatedAt,
		UpdatedAt:       row.UpdatedAt,
	}
	if p.Skills == nil {
		p.Skills = []string{}
	}
	if row.HourlyRate.Valid {
		rate := row.HourlyRate.Float64
		p.HourlyRate = &rate
	}
	return p
}

type ProfileRepository struct {
	db *sqlx.DB
}

func NewProfileRepository(db *sqlx.DB) ports.ProfileRepository {
	return &ProfileRepository{db: db}
}

func (r *ProfileRepository) FindByUserID(ctx context.Context, userID string) (*domain.Profile, error) {
	if !validID(userID) {
		return nil, domain.ErrProfileNotFound
	}
	var row profileRow
	if err := r.db.GetContext(ctx, &row, `SELECT `+profileColumns+` FROM profiles WHERE user_id = $1`, userID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrProfileNotFound
		}
		return nil, fmt.Errorf("find profile: %w", err)
	}
	return row.toDomain(), nil
}

// Upsert inserts the profile or replaces every editable column, keeping the
// original created_at.
func (r *ProfileRepository) Upsert(ctx context.Context, p *domain.Profile) (*domain.Profile, error) {
	query, args, err := r.db.BindNamed(`INSERT INTO profiles (`+profileColumns+`)
		VALUES (:user_id, :bio, :skills, :experience_years, :location, :hourly_rate, :availability,
			:profile_image_url, :resume_url, :portfolio_url, :linkedin_url, :github_url, :created_at, :updated_at)
		ON CONFLICT (user_id) DO UPDATE SET
			bio = EXCLUDED.bio,
			skills = EXCLUDED.skills,
			experience_years = EXCLUDED.experience_years,
			location = EXCLUDED.location,
			hourly_rate = EXCLUDED.hourly_rate,
			availability = EXCLUDED.availability,
			profile_image_url = EXCLUDED.profile_image_url,
			resume_url = EXCLUDED.resume_url,
			portfolio_url = EXCLUDED.portfolio_url,
			linkedin_url = EXCLUDED.linkedin_url,
			github_url = EXCLUDED.github_url,
			updated_at = EXCLUDED.updated_at
		RETURNING `+profileColumns, toProfileRow(p))
	if err != nil {
		return nil, fmt.Errorf("bind profile: %w", err)
	}

	var row profileRow
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		return nil, fmt.Errorf("upsert profile: %w", err)
	}
	return row.toDomain(), nil
}

type talentRow struct {
	ID    string `db:"id"`
	Name  string `db:"name"`
	Email string `db:"email"`
	profileRow
}

// ListCandidates reads the talent directory: candidate users joined with
// their profiles.
func (r *ProfileRepository) ListCandidates(ctx context.Context, f ports.TalentFilter) ([]*domain.Talent, error) {
	where := []string{"u.role = 'candidate'"}
	var args []any
	add := func(cond string, arg any) {
		args = append(args, arg)
		where = append(where, strings.ReplaceAll(cond, "?", "$"+strconv.Itoa(len(args))))
	}

	if f.Search != "" {
		add("(u.name ILIKE ? OR p.bio ILIKE ?)", "%"+f.Search+"%")
	}
	if len(f.Skills) > 0 {
		add("p.skills && ?", pq.Array(f.Skills))
	}
	if f.MinExperience != nil {
		add("p.experience_years >= ?", *f.MinExperience)
	}

	args = append(args, f.Limit, f.Offset)

	query := `SELECT u.id, u.name, u.email, p.user_id, p.bio, p.skills, p.experience_years, p.location,
			p.hourly_rate, p.availability, p.profile_image_url, p.resume_url, p.portfolio_url,
			p.linkedin_url, p.github_url, p.created_at, p.updated_at
		FROM users u
		JOIN profiles p ON p.user_id = u.id
		WHERE ` + strings.Join(where, " AND ") + `
		ORDER BY u.created_at DESC
		LIMIT $` + strconv.Itoa(len(args)-1) + ` OFFSET $` + strconv.Itoa(len(args))

	var rows []talentRow
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list talents: %w", err)
	}

	talents := make([]*domain.Talent, 0, len(rows))
	for _, row := range rows {
		talents = append(talents, &domain.Talent{
			ID:      row.ID,
			Name:    row.Name,
			Email:   row.Email,
			Profile: *row.profileRow.toDomain(),
		})
	}
	return talents, nil
}

// LikeRepository implements ports.LikeRepository on job_likes.
type LikeRepository struct {
	db *sqlx.DB
}

func NewLikeRepository(db *sqlx.DB) ports.LikeRepository {
	return &LikeRepository{db: db}
}

func (r *LikeRepository) Add(ctx context.Context, jobID, userID string) error {
	_, err := r.db.ExecContext(ctx, `INSERT INTO job_likes (job_id, user_id, created_at) VALUES ($1, $2, $3)`,
		jobID, userID, time.Now().UTC())
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrAlreadyLiked
		}
		return fmt.Errorf("insert like: %w", err)
	}
	return nil
}

func (r *LikeRepository) Remove(ctx context.Context, jobID, userID string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM job_likes WHERE job_id = $1 AND user_id = $2`, jobID, userID)
	if err != nil {
		return fmt.Errorf("delete like: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.ErrNotLiked
	}
	return nil
}

func (r *LikeRepository) Exists(ctx context.Context, jobID, userID string) (bool, error) {
	var exists bool
	err := r.db.GetContext(ctx, &exists, `SELECT EXISTS (SELECT 1 FROM job_likes WHERE job_id = $1 AND user_id = $2)`, jobID, userID)
	if err != nil {
		return false, fmt.Errorf("check like: %w", err)
	}
	return exists, nil
}

func (r *LikeRepository) Count(ctx context.Context, jobID string) (int64, error) {
	var n int64
	if err := r.db.GetContext(ctx, &n, `SELECT COUNT(*) FROM job_likes WHERE job_id = $1`, jobID); err != nil {
		return 0, fmt.Errorf("count likes: %w", err)
	}
	return n, nil
}
