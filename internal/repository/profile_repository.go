package repository

import (
	"context"
	"errors"

	"jobstream/internal/database"
	"jobstream/internal/domain/user"
	"jobstream/internal/usecase"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type PostgresProfileRepository struct {
	db database.DB
}

func NewPostgresProfileRepository(db database.DB) *PostgresProfileRepository {
	return &PostgresProfileRepository{db: db}
}

var _ usecase.ProfileRepository = (*PostgresProfileRepository)(nil)

const profileColumns = `user_id, COALESCE(full_name, ''), COALESCE(headline, ''),
	COALESCE(location, ''), COALESCE(phone, ''), COALESCE(skills, '{}'),
	resume_url, avatar_url, updated_at`

func (r *PostgresProfileRepository) Get(ctx context.Context, userID uuid.UUID) (user.Profile, bool, error) {
	row := r.db.QueryRow(ctx, `SELECT `+profileColumns+` FROM profiles WHERE user_id = $1`, userID)

	p, err := scanProfile(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return user.Profile{}, false, nil
		}
		return user.Profile{}, false, err
	}
	return p, true, nil
}

func (r *PostgresProfileRepository) Upsert(ctx context.Context, p user.Profile) (user.Profile, error) {
	row := r.db.QueryRow(ctx,
		`INSERT INTO profiles (user_id, full_name, headline, location, phone, skills, resume_url, avatar_url)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		 ON CONFLICT (user_id) DO UPDATE SET
		        full_name = EXCLUDED.full_name,
		        headline = EXCLUDED.headline,
		        location = EXCLUDED.location,
		        phone = EXCLUDED.phone,
		        skills = EXCLUDED.skills,
		        resume_url = EXCLUDED.resume_url,
		        avatar_url = EXCLUDED.avatar_url,
		        updated_at = NOW()
		 RETURNING `+profileColumns,
		p.UserID, p.FullName, p.Headline, p.Location, p.Phone, p.Skills, p.ResumeURL, p.AvatarURL,
	)
	saved, err := scanProfile(row)
	if err != nil {
		return user.Profile{}, err
	}
	return saved, nil
}

func scanProfile(s scanner) (user.Profile, error) {
	var p user.Profile
	err := s.Scan(
		&p.UserID, &p.FullName, &p.Headline,
		&p.Location, &p.Phone, &p.Skills,
		&p.ResumeURL, &p.AvatarURL, &p.UpdatedAt,
	)
	return p, err
}
