package repository

import (
	"context"
	"errors"

	"jobstream/internal/database"
	"jobstream/internal/domain/job"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

var ErrJobNotFound = errors.New("job not found")

type JobRepository interface {
	ListActive(ctx context.Context) ([]job.Job, error)
	GetByID(ctx context.Context, id uuid.UUID) (job.Job, error)
}

type PostgresJobRepository struct {
	db database.DB
}

func NewPostgresJobRepository(db database.DB) *PostgresJobRepository {
	return &PostgresJobRepository{db: db}
}

const jobColumns = `id, COALESCE(title, ''), COALESCE(company_name, ''), COALESCE(location, ''),
	COALESCE(job_type, ''), salary_min, salary_max, posted_at, COALESCE(is_remote, FALSE),
	COALESCE(experience_level, ''), COALESCE(tags, '{}'), COALESCE(description, ''),
	COALESCE(requirements, '{}'), COALESCE(benefits, '{}'), applicants_count,
	COALESCE(application_url, ''), COALESCE(is_active, FALSE)`

func (r *PostgresJobRepository) ListActive(ctx context.Context) ([]job.Job, error) {
	rows, err := r.db.Query(ctx,
		`SELECT `+jobColumns+`
		 FROM jobs
		 WHERE is_active = TRUE
		 ORDER BY posted_at DESC`,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]job.Job, 0)
	for rows.Next() {
		j, err := scanJob(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, j)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *PostgresJobRepository) GetByID(ctx context.Context, id uuid.UUID) (job.Job, error) {
	row := r.db.QueryRow(ctx, `SELECT `+jobColumns+` FROM jobs WHERE id = $1`, id)
	j, err := scanJob(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return job.Job{}, ErrJobNotFound
		}
		return job.Job{}, err
	}
	return j, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanJob(s scanner) (job.Job, error) {
	var j job.Job
	err := s.Scan(
		&j.ID, &j.Title, &j.CompanyName, &j.Location,
		&j.JobType, &j.SalaryMin, &j.SalaryMax, &j.PostedAt, &j.IsRemote,
		&j.ExperienceLevel, &j.Tags, &j.Description,
		&j.Requirements, &j.Benefits, &j.ApplicantsCount,
		&j.ApplicationURL, &j.IsActive,
	)
	return j, err
}
