package repository

import (
	"context"
	"errors"

	"jobstream/internal/database"
	"jobstream/internal/domain/settings"
	"jobstream/internal/usecase"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type PostgresSettingsRepository struct {
	db database.DB
}

func NewPostgresSettingsRepository(db database.DB) *PostgresSettingsRepository {
	return &PostgresSettingsRepository{db: db}
}

var _ usecase.SettingsRepository = (*PostgresSettingsRepository)(nil)

func (r *PostgresSettingsRepository) Get(ctx context.Context, userID uuid.UUID) (settings.Settings, bool, error) {
	row := r.db.QueryRow(ctx,
		`SELECT theme, email_notifications, push_notifications, application_updates,
		        job_recommendations, marketing_emails, language, compact_view,
		        show_salary, auto_apply_profile
		 FROM user_settings
		 WHERE user_id = $1`,
		userID,
	)

	var s settings.Settings
	err := row.Scan(
		&s.Theme, &s.EmailNotifications, &s.PushNotifications, &s.ApplicationUpdates,
		&s.JobRecommendations, &s.MarketingEmails, &s.Language, &s.CompactView,
		&s.ShowSalary, &s.AutoApplyProfile,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return settings.Settings{}, false, nil
		}
		return settings.Settings{}, false, err
	}
	return s, true, nil
}

func (r *PostgresSettingsRepository) Upsert(ctx context.Context, userID uuid.UUID, s settings.Settings) error {
	_, err := r.db.Exec(ctx,
		`INSERT INTO user_settings (user_id, theme, email_notifications, push_notifications,
		        application_updates, job_recommendations, marketing_emails, language,
		        compact_view, show_salary, auto_apply_profile)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		 ON CONFLICT (user_id) DO UPDATE SET
		        theme = EXCLUDED.theme,
		        email_notifications = EXCLUDED.email_notifications,
		        push_notifications = EXCLUDED.push_notifications,
		        application_updates = EXCLUDED.application_updates,
		        job_recommendations = EXCLUDED.job_recommendations,
		        marketing_emails = EXCLUDED.marketing_emails,
		        language = EXCLUDED.language,
		        compact_view = EXCLUDED.compact_view,
		        show_salary = EXCLUDED.show_salary,
		        auto_apply_profile = EXCLUDED.auto_apply_profile,
		        updated_at = NOW()`,
		userID, s.Theme, s.EmailNotifications, s.PushNotifications,
		s.ApplicationUpdates, s.JobRecommendations, s.MarketingEmails, s.Language,
		s.CompactView, s.ShowSalary, s.AutoApplyProfile,
	)
	return err
}
