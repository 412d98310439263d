package repository

import (
	"context"
	"errors"

	"jobstream/internal/database"
	"jobstream/internal/domain/savedjob"
	"jobstream/internal/usecase"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

var ErrAlreadySaved = errors.New("job already saved")

type PostgresSavedJobRepository struct {
	db database.DB
}

func NewPostgresSavedJobRepository(db database.DB) *PostgresSavedJobRepository {
	return &PostgresSavedJobRepository{db: db}
}

var _ usecase.SavedJobRepository = (*PostgresSavedJobRepository)(nil)

func (r *PostgresSavedJobRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]savedjob.SavedJob, error) {
	rows, err := r.db.Query(ctx,
		`SELECT id, user_id, job_id, notes, created_at
		 FROM saved_jobs
		 WHERE user_id = $1
		 ORDER BY created_at DESC`,
		userID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]savedjob.SavedJob, 0)
	for rows.Next() {
		var (
			id uuid.UUID
			s  savedjob.SavedJob
		)
		if err := rows.Scan(&id, &s.UserID, &s.JobID, &s.Notes, &s.CreatedAt); err != nil {
			return nil, err
		}
		s.ID = id.String()
		out = append(out, s)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *PostgresSavedJobRepository) Insert(ctx context.Context, userID, jobID uuid.UUID, notes *string) (savedjob.SavedJob, error) {
	row := r.db.QueryRow(ctx,
		`INSERT INTO saved_jobs (id, user_id, job_id, notes)
		 VALUES ($1, $2, $3, $4)
		 RETURNING id, user_id, job_id, notes, created_at`,
		uuid.New(), userID, jobID, notes,
	)

	var (
		id uuid.UUID
		s  savedjob.SavedJob
	)
	if err := row.Scan(&id, &s.UserID, &s.JobID, &s.Notes, &s.CreatedAt); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return savedjob.SavedJob{}, ErrAlreadySaved
		}
		return savedjob.SavedJob{}, err
	}
	s.ID = id.String()
	return s, nil
}

func (r *PostgresSavedJobRepository) UpdateNotes(ctx context.Context, userID, jobID uuid.UUID, notes *string) (savedjob.SavedJob, error) {
	row := r.db.QueryRow(ctx,
		`UPDATE saved_jobs
		 SET notes = $3
		 WHERE user_id = $1 AND job_id = $2
		 RETURNING id, user_id, job_id, notes, created_at`,
		userID, jobID, notes,
	)

	var (
		id uuid.UUID
		s  savedjob.SavedJob
	)
	if err := row.Scan(&id, &s.UserID, &s.JobID, &s.Notes, &s.CreatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return savedjob.SavedJob{}, savedjob.ErrNotFound
		}
		return savedjob.SavedJob{}, err
	}
	s.ID = id.String()
	return s, nil
}

func (r *PostgresSavedJobRepository) Delete(ctx context.Context, userID, jobID uuid.UUID) error {
	_, err := r.db.Exec(ctx,
		`DELETE FROM saved_jobs WHERE user_id = $1 AND job_id = $2`,
		userID, jobID,
	)
	return err
}
