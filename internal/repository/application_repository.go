package repository

import (
	"context"
	"errors"

	"jobstream/internal/database"
	"jobstream/internal/domain/application"
	"jobstream/internal/usecase"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// ErrAlreadyApplied carries the exact message the UI shows for a
// duplicate submission.
var ErrAlreadyApplied = errors.New("Already applied")

type PostgresApplicationRepository struct {
	db database.DB
}

func NewPostgresApplicationRepository(db database.DB) *PostgresApplicationRepository {
	return &PostgresApplicationRepository{db: db}
}

var _ usecase.ApplicationRepository = (*PostgresApplicationRepository)(nil)

const applicationColumns = `id, user_id, job_id, status, cover_letter, resume_url, notes, applied_at`

func (r *PostgresApplicationRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]application.Application, error) {
	rows, err := r.db.Query(ctx,
		`SELECT `+applicationColumns+`
		 FROM applications
		 WHERE user_id = $1
		 ORDER BY applied_at DESC`,
		userID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]application.Application, 0)
	for rows.Next() {
		a, err := scanApplication(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *PostgresApplicationRepository) Insert(ctx context.Context, userID, jobID uuid.UUID, coverLetter, resumeURL *string) (application.Application, error) {
	row := r.db.QueryRow(ctx,
		`INSERT INTO applications (id, user_id, job_id, status, cover_letter, resume_url)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 RETURNING `+applicationColumns,
		uuid.New(), userID, jobID, application.StatusApplied, coverLetter, resumeURL,
	)

	a, err := scanApplication(row)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return application.Application{}, ErrAlreadyApplied
		}
		return application.Application{}, err
	}
	return a, nil
}

func (r *PostgresApplicationRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status application.Status, notes *string) (application.Application, error) {
	row := r.db.QueryRow(ctx,
		`UPDATE applications
		 SET status = $2, notes = COALESCE($3, notes)
		 WHERE id = $1
		 RETURNING `+applicationColumns,
		id, status, notes,
	)

	a, err := scanApplication(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return application.Application{}, usecase.ErrApplicationNotFound
		}
		return application.Application{}, err
	}
	return a, nil
}

func scanApplication(s scanner) (application.Application, error) {
	var a application.Application
	err := s.Scan(&a.ID, &a.UserID, &a.JobID, &a.Status, &a.CoverLetter, &a.ResumeURL, &a.Notes, &a.AppliedAt)
	return a, err
}
